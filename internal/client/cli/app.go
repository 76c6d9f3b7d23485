package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"os"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/triptracker/internal/client/api"
	"github.com/dmitrijs2005/triptracker/internal/client/client"
	"github.com/dmitrijs2005/triptracker/internal/client/config"
	"github.com/dmitrijs2005/triptracker/internal/client/localdb"
	"github.com/dmitrijs2005/triptracker/internal/client/models"
	"github.com/dmitrijs2005/triptracker/internal/client/navigation"
	"github.com/dmitrijs2005/triptracker/internal/client/services"
	"github.com/dmitrijs2005/triptracker/internal/client/session"
	"github.com/dmitrijs2005/triptracker/internal/filex"
	"github.com/dmitrijs2005/triptracker/internal/logging"
)

// tripsService is the slice of the catalog used by the trip commands.
// *api.TripsAPI satisfies it.
type tripsService interface {
	Create(ctx context.Context, startTime time.Time) (*models.Trip, error)
	AddCoordinate(ctx context.Context, tripID string, c models.Coordinate) (models.Object, error)
	AddCoordinatesBatch(ctx context.Context, tripID string, cs []models.Coordinate) (models.Object, error)
	Complete(ctx context.Context, tripID string, endTime time.Time) (*models.Trip, error)
	GetHistory(ctx context.Context) ([]models.Trip, error)
	GetDetail(ctx context.Context, tripID string) (*models.Trip, error)
	Delete(ctx context.Context, tripID string) error
}

// pathsService is the slice of the catalog used by the path commands.
// *api.PathsAPI satisfies it.
type pathsService interface {
	Search(ctx context.Context, params url.Values) ([]models.Path, error)
	GetDetail(ctx context.Context, pathID string) (*models.Path, error)
	CreateManual(ctx context.Context, fields models.Object) (*models.Path, error)
}

type tokenSource interface {
	GetToken(ctx context.Context) (string, error)
}

// now is a test seam for timestamps sent to the API.
var now = time.Now

type App struct {
	config      *config.Config
	db          *sql.DB
	log         logging.Logger
	authService services.AuthService
	trips       tripsService
	paths       pathsService
	tokens      tokenSource
	reader      *bufio.Reader
	out         io.Writer

	activeTrip     string
	loginRequested atomic.Bool
}

// NewApp opens the session database and wires the gateway, catalog and
// services for c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel)

	if _, err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		logger.Error(ctx, "error preparing database directory", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	db, err := localdb.Open(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	a := &App{
		config: c,
		db:     db,
		log:    logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	nav := navigation.NavigatorFunc(a.navigate)
	store := session.NewStore(db, nav)
	gw := client.NewGateway(c.APIBaseURL, store,
		client.WithNavigator(nav),
		client.WithLogger(logger.With("component", "gateway")),
	)
	catalog := api.New(gw)

	a.authService = services.NewAuthService(catalog, store)
	a.trips = catalog.Trips
	a.paths = catalog.Paths
	a.tokens = store

	logger.Debug(ctx, "client initialized", "api", gw.BaseURL(), "db", c.DatabasePath)
	return a, nil
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	fmt.Fprintln(a.out, "Welcome to Trip Tracker CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

// navigate is the client's navigation effect. The only route the core
// requests is the login view, which the REPL serves by prompting for
// credentials after the current command.
func (a *App) navigate(ctx context.Context, route string) {
	if route != navigation.LoginRoute {
		a.log.Debug(ctx, "ignoring navigation", "route", route)
		return
	}
	a.loginRequested.Store(true)
}

func (a *App) requireAuth(ctx context.Context) (bool, error) {
	return a.authService.RequireAuth(ctx)
}

// afterCommand serves a pending login request raised while c ran. Requests
// raised by public commands (login itself, logout) are dropped.
func (a *App) afterCommand(ctx context.Context, c command) {
	if !a.loginRequested.Swap(false) || !c.protected {
		return
	}
	fmt.Fprintln(a.out, "Session expired or missing, please log in.")
	if err := a.Login(ctx, nil); err != nil {
		printError(a.out, err)
	}
	// a failed prompt must not leave a stale request behind
	a.loginRequested.Store(false)
}

func (a *App) getStatus(ctx context.Context) string {
	u, ok, err := a.authService.CurrentUser(ctx)
	if err != nil || !ok {
		return ""
	}
	s := u.Email
	if a.activeTrip != "" {
		s += " trip:" + a.activeTrip
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) commands() []command {
	return []command{
		{name: "register", usage: "register", run: a.Register},
		{name: "login", usage: "login", run: a.Login},
		{name: "logout", usage: "logout", run: a.Logout},
		{name: "whoami", usage: "whoami", protected: true, run: a.WhoAmI},
		{name: "profile", usage: "profile", protected: true, run: a.Profile},
		{name: "profile-update", usage: "profile-update", protected: true, run: a.ProfileUpdate},
		{name: "trip-start", usage: "trip-start", protected: true, run: a.TripStart},
		{name: "trip-point", usage: "trip-point [lat lon [altitude [speed [accuracy]]]]", protected: true, run: a.TripPoint},
		{name: "trip-batch", usage: "trip-batch", protected: true, run: a.TripBatch},
		{name: "trip-finish", usage: "trip-finish [trip-id]", protected: true, run: a.TripFinish},
		{name: "trips", usage: "trips", protected: true, run: a.Trips},
		{name: "trip", usage: "trip <trip-id>", protected: true, run: a.Trip},
		{name: "trip-delete", usage: "trip-delete <trip-id>", protected: true, run: a.TripDelete},
		{name: "path-search", usage: "path-search [key=value ...]", protected: true, run: a.PathSearch},
		{name: "path", usage: "path <path-id>", protected: true, run: a.Path},
		{name: "path-add", usage: "path-add", protected: true, run: a.PathAdd},
	}
}
