package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/triptracker/internal/client/client"
	"github.com/dmitrijs2005/triptracker/internal/client/models"
	"github.com/dmitrijs2005/triptracker/internal/client/navigation"
	"github.com/dmitrijs2005/triptracker/internal/logging"
)

// ---- fakes ----

type fakeAuth struct {
	loginEmail, loginPass string
	loginErr              error
	registered            models.Object
	logoutCalled          bool
	logoutErr             error
	user                  *models.User
	authed                bool
	updated               models.Object
	onRequireAuth         func()
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*models.User, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.authed = true
	f.user = &models.User{ID: "u1", Email: email}
	return f.user, nil
}

func (f *fakeAuth) Register(_ context.Context, fields models.Object) (models.Object, error) {
	f.registered = fields
	return models.Object{"id": "u1"}, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	f.authed = false
	return f.logoutErr
}

func (f *fakeAuth) CurrentUser(context.Context) (*models.User, bool, error) {
	return f.user, f.user != nil, nil
}

func (f *fakeAuth) RequireAuth(context.Context) (bool, error) {
	if !f.authed && f.onRequireAuth != nil {
		f.onRequireAuth()
	}
	return f.authed, nil
}

func (f *fakeAuth) Profile(context.Context) (*models.User, error) { return f.user, nil }

func (f *fakeAuth) UpdateProfile(_ context.Context, fields models.Object) (*models.User, error) {
	f.updated = fields
	return f.user, nil
}

type fakeTrips struct {
	created    time.Time
	tripID     string
	point      models.Coordinate
	batch      []models.Coordinate
	completeID string
	deleted    string
	history    []models.Trip
	err        error
}

func (f *fakeTrips) Create(_ context.Context, start time.Time) (*models.Trip, error) {
	f.created = start
	return &models.Trip{ID: "t1", StartTime: start}, f.err
}

func (f *fakeTrips) AddCoordinate(_ context.Context, id string, c models.Coordinate) (models.Object, error) {
	f.tripID, f.point = id, c
	return models.Object{"ok": true}, f.err
}

func (f *fakeTrips) AddCoordinatesBatch(_ context.Context, id string, cs []models.Coordinate) (models.Object, error) {
	f.tripID, f.batch = id, cs
	return models.Object{"added": len(cs)}, f.err
}

func (f *fakeTrips) Complete(_ context.Context, id string, end time.Time) (*models.Trip, error) {
	f.completeID = id
	return &models.Trip{ID: id, EndTime: &end}, f.err
}

func (f *fakeTrips) GetHistory(context.Context) ([]models.Trip, error) { return f.history, f.err }

func (f *fakeTrips) GetDetail(_ context.Context, id string) (*models.Trip, error) {
	return &models.Trip{ID: id}, f.err
}

func (f *fakeTrips) Delete(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}

type fakePaths struct {
	params url.Values
	fields models.Object
}

func (f *fakePaths) Search(_ context.Context, params url.Values) ([]models.Path, error) {
	f.params = params
	return []models.Path{{ID: "p1", Name: "Canal loop", Status: models.PathStatusOptimal}}, nil
}

func (f *fakePaths) GetDetail(_ context.Context, id string) (*models.Path, error) {
	return &models.Path{ID: id}, nil
}

func (f *fakePaths) CreateManual(_ context.Context, fields models.Object) (*models.Path, error) {
	f.fields = fields
	return &models.Path{ID: "p2"}, nil
}

type fakeTokens string

func (f fakeTokens) GetToken(context.Context) (string, error) { return string(f), nil }

// ---- helpers ----

var fixedNow = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

func stubNow(t *testing.T) {
	t.Helper()
	orig := now
	now = func() time.Time { return fixedNow }
	t.Cleanup(func() { now = orig })
}

// stubAnswers feeds answers to getSimpleText in order and pw to getPassword.
func stubAnswers(t *testing.T, pw string, answers ...string) *[]string {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	prompts := &[]string{}
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		*prompts = append(*prompts, prompt)
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
	return prompts
}

func stubLines(t *testing.T, lines ...string) {
	t.Helper()
	orig := getLines
	getLines = func(*bufio.Reader, string, io.Writer) ([]string, error) { return lines, nil }
	t.Cleanup(func() { getLines = orig })
}

func newFakeApp() (*App, *fakeAuth, *fakeTrips, *fakePaths, *bytes.Buffer) {
	out := &bytes.Buffer{}
	auth := &fakeAuth{}
	trips := &fakeTrips{}
	paths := &fakePaths{}
	a := &App{
		log:         logging.Discard(),
		authService: auth,
		trips:       trips,
		paths:       paths,
		tokens:      fakeTokens(""),
		reader:      rdr(""),
		out:         out,
	}
	return a, auth, trips, paths, out
}

// ---- auth commands ----

func TestApp_Login(t *testing.T) {
	a, auth, _, _, out := newFakeApp()
	stubAnswers(t, "pw", "ada@example.com")

	require.NoError(t, a.Login(context.Background(), nil))
	assert.Equal(t, "ada@example.com", auth.loginEmail)
	assert.Equal(t, "pw", auth.loginPass)
	assert.Contains(t, out.String(), "Logged in as ada@example.com")
	assert.Equal(t, "(ada@example.com)", a.getStatus(context.Background()))
}

func TestApp_LoginFailure(t *testing.T) {
	a, auth, _, _, _ := newFakeApp()
	auth.loginErr = &client.APIError{StatusCode: 400, Message: "Incorrect email or password"}
	stubAnswers(t, "bad", "ada@example.com")

	err := a.Login(context.Background(), nil)
	require.EqualError(t, err, "Incorrect email or password")
}

func TestApp_Register(t *testing.T) {
	a, auth, _, _, out := newFakeApp()
	stubAnswers(t, "pw", "ada@example.com", "ada", "Ada", "")

	require.NoError(t, a.Register(context.Background(), nil))
	assert.Equal(t, models.Object{
		"email":      "ada@example.com",
		"username":   "ada",
		"password":   "pw",
		"first_name": "Ada",
	}, auth.registered)
	assert.Contains(t, out.String(), "Success!")
}

func TestApp_LogoutClearsActiveTrip(t *testing.T) {
	a, auth, _, _, out := newFakeApp()
	a.activeTrip = "t1"

	require.NoError(t, a.Logout(context.Background(), nil))
	assert.True(t, auth.logoutCalled)
	assert.Empty(t, a.activeTrip)
	assert.Contains(t, out.String(), "Logged out")
}

func TestApp_WhoAmI(t *testing.T) {
	stubNow(t)
	a, auth, _, _, out := newFakeApp()
	auth.user = &models.User{ID: "u1", Email: "ada@example.com"}

	exp := fixedNow.Add(time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	a.tokens = fakeTokens(token)

	require.NoError(t, a.WhoAmI(context.Background(), nil))
	assert.Contains(t, out.String(), "User: ada@example.com (id u1)")
	assert.Contains(t, out.String(), "Token subject: u1")
	assert.Contains(t, out.String(), "Token valid until "+exp.Format(time.RFC3339))
}

func TestApp_WhoAmI_OpaqueToken(t *testing.T) {
	a, _, _, _, out := newFakeApp()
	a.tokens = fakeTokens("not-a-jwt")

	require.NoError(t, a.WhoAmI(context.Background(), nil))
	assert.Contains(t, out.String(), "User: unknown")
	assert.NotContains(t, out.String(), "Token")
}

func TestApp_ProfileUpdate(t *testing.T) {
	a, auth, _, _, _ := newFakeApp()
	auth.user = &models.User{ID: "u1"}

	stubAnswers(t, "", "", "Ada", "")
	require.NoError(t, a.ProfileUpdate(context.Background(), nil))
	assert.Equal(t, models.Object{"first_name": "Ada"}, auth.updated)

	stubAnswers(t, "", "", "", "")
	require.ErrorIs(t, a.ProfileUpdate(context.Background(), nil), errNothingToUpdate)
}

// ---- trips ----

func TestApp_TripLifecycle(t *testing.T) {
	stubNow(t)
	a, _, trips, _, out := newFakeApp()
	ctx := context.Background()

	require.ErrorIs(t, a.TripPoint(ctx, []string{"45", "9"}), errNoActiveTrip)

	require.NoError(t, a.TripStart(ctx, nil))
	assert.Equal(t, fixedNow, trips.created)
	assert.Equal(t, "t1", a.activeTrip)
	assert.Contains(t, out.String(), "Trip t1 started")

	require.NoError(t, a.TripPoint(ctx, []string{"45.47", "9.18", "120", "5.5"}))
	assert.Equal(t, "t1", trips.tripID)
	assert.Equal(t, 45.47, trips.point.Latitude)
	assert.Equal(t, 9.18, trips.point.Longitude)
	require.NotNil(t, trips.point.Altitude)
	assert.Equal(t, 120.0, *trips.point.Altitude)
	require.NotNil(t, trips.point.Speed)
	assert.Equal(t, 5.5, *trips.point.Speed)
	assert.Nil(t, trips.point.Accuracy)
	assert.Equal(t, fixedNow, trips.point.Timestamp)

	stubLines(t, "45.1,9.1", "45.2 9.2")
	require.NoError(t, a.TripBatch(ctx, nil))
	require.Len(t, trips.batch, 2)
	assert.Equal(t, 45.2, trips.batch[1].Latitude)

	require.NoError(t, a.TripFinish(ctx, nil))
	assert.Equal(t, "t1", trips.completeID)
	assert.Empty(t, a.activeTrip)
}

func TestApp_TripPointPrompted(t *testing.T) {
	a, _, trips, _, _ := newFakeApp()
	a.activeTrip = "t9"
	stubAnswers(t, "", "45.5, 9.25")

	require.NoError(t, a.TripPoint(context.Background(), nil))
	assert.Equal(t, 45.5, trips.point.Latitude)
	assert.Equal(t, 9.25, trips.point.Longitude)
}

func TestApp_TripBatchBadLine(t *testing.T) {
	a, _, trips, _, _ := newFakeApp()
	a.activeTrip = "t1"
	stubLines(t, "45,9", "north,east")

	err := a.TripBatch(context.Background(), nil)
	require.ErrorContains(t, err, "line 2")
	assert.Nil(t, trips.batch)
}

func TestApp_TripFinishOtherTripKeepsActive(t *testing.T) {
	a, _, trips, _, _ := newFakeApp()
	a.activeTrip = "t1"

	require.NoError(t, a.TripFinish(context.Background(), []string{"t0"}))
	assert.Equal(t, "t0", trips.completeID)
	assert.Equal(t, "t1", a.activeTrip)
}

func TestApp_TripsAndDelete(t *testing.T) {
	a, _, trips, _, out := newFakeApp()
	ctx := context.Background()

	require.NoError(t, a.Trips(ctx, nil))
	assert.Contains(t, out.String(), "No trips yet")

	end := fixedNow.Add(time.Hour)
	trips.history = []models.Trip{
		{ID: "t1", StartTime: fixedNow, EndTime: &end},
		{ID: "t2", StartTime: fixedNow},
	}
	require.NoError(t, a.Trips(ctx, nil))
	assert.Contains(t, out.String(), "t1  2025-05-01 08:00  completed")
	assert.Contains(t, out.String(), "t2  2025-05-01 08:00  in progress")

	require.ErrorIs(t, a.TripDelete(ctx, nil), errTripIDNeeded)
	a.activeTrip = "t2"
	require.NoError(t, a.TripDelete(ctx, []string{"t2"}))
	assert.Equal(t, "t2", trips.deleted)
	assert.Empty(t, a.activeTrip)
}

func TestApp_TripDeleteWithoutResponseBody(t *testing.T) {
	a, _, trips, _, out := newFakeApp()
	var v any
	trips.err = json.Unmarshal(nil, &v)

	require.NoError(t, a.TripDelete(context.Background(), []string{"t3"}))
	assert.Contains(t, out.String(), "Trip t3 deleted")

	trips.err = json.Unmarshal([]byte(`{"ok":`), &v)
	require.Error(t, a.TripDelete(context.Background(), []string{"t3"}), "a truncated body is still an error")
}

func TestApp_TripErrorsPropagate(t *testing.T) {
	a, _, trips, _, _ := newFakeApp()
	trips.err = client.ErrUnauthorized

	err := a.Trip(context.Background(), []string{"t1"})
	require.True(t, errors.Is(err, client.ErrUnauthorized))
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"lat lon", []string{"0", "0"}, false},
		{"all optional", []string{"1", "2", "3", "4", "5"}, false},
		{"too few", []string{"1"}, true},
		{"too many", []string{"1", "2", "3", "4", "5", "6"}, true},
		{"not a number", []string{"x", "2"}, true},
		{"latitude range", []string{"91", "0"}, true},
		{"longitude range", []string{"0", "-181"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCoordinate(tt.args)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// ---- paths ----

func TestApp_PathSearch(t *testing.T) {
	a, _, _, paths, out := newFakeApp()
	ctx := context.Background()

	require.NoError(t, a.PathSearch(ctx, []string{"origin=Duomo", "status=OPTIMAL"}))
	assert.Equal(t, url.Values{"origin": {"Duomo"}, "status": {"OPTIMAL"}}, paths.params)
	assert.Contains(t, out.String(), "p1  Canal loop  OPTIMAL")

	require.Error(t, a.PathSearch(ctx, []string{"oops"}))

	stubAnswers(t, "", "", "Navigli")
	require.NoError(t, a.PathSearch(ctx, nil))
	assert.Equal(t, url.Values{"destination": {"Navigli"}}, paths.params)
}

func TestApp_PathAdd(t *testing.T) {
	a, _, _, paths, _ := newFakeApp()
	stubAnswers(t, "", "Canal loop", "optimal", "Duomo", "")
	stubLines(t, "45.46,9.19", "45.45,9.17")

	require.NoError(t, a.PathAdd(context.Background(), nil))
	assert.Equal(t, "Canal loop", paths.fields["name"])
	assert.Equal(t, "OPTIMAL", paths.fields["status"])
	assert.Equal(t, "Duomo", paths.fields["origin"])
	assert.NotContains(t, paths.fields, "destination")
	assert.Len(t, paths.fields["coordinates"], 2)
}

func TestApp_PathAddRejectsUnknownStatus(t *testing.T) {
	a, _, _, paths, _ := newFakeApp()
	stubAnswers(t, "", "Canal loop", "great")

	require.ErrorContains(t, a.PathAdd(context.Background(), nil), `unknown path status "GREAT"`)
	assert.Nil(t, paths.fields)
}

// ---- navigation ----

func TestApp_NavigationPromptsLoginAfterProtectedCommand(t *testing.T) {
	a, auth, _, _, out := newFakeApp()
	auth.onRequireAuth = func() { a.navigate(context.Background(), navigation.LoginRoute) }
	stubAnswers(t, "pw", "ada@example.com")

	runREPL(context.Background(), a, a.getStatus, rdr("trips\n"), out)

	assert.Contains(t, out.String(), "Session expired or missing, please log in.")
	assert.Equal(t, "ada@example.com", auth.loginEmail)
	assert.False(t, a.loginRequested.Load())
}

func TestApp_NavigationIgnoredAfterPublicCommand(t *testing.T) {
	a, auth, _, _, out := newFakeApp()
	a.navigate(context.Background(), navigation.LoginRoute)

	a.afterCommand(context.Background(), command{name: "logout"})
	assert.Empty(t, auth.loginEmail)
	assert.False(t, a.loginRequested.Load())
	assert.Empty(t, out.String())
}

func TestApp_NavigationOtherRoutes(t *testing.T) {
	a, _, _, _, out := newFakeApp()
	a.navigate(context.Background(), "/dashboard")

	assert.False(t, a.loginRequested.Load())
	assert.Empty(t, out.String())
}
