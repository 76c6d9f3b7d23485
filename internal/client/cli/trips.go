package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/triptracker/internal/client/models"
)

var (
	errNoActiveTrip = errors.New("no active trip, run trip-start first")
	errTripIDNeeded = errors.New("trip id required")
)

// TripStart creates a trip starting now and makes it the active trip.
func (a *App) TripStart(ctx context.Context, _ []string) error {
	trip, err := a.trips.Create(ctx, now().UTC())
	if err != nil {
		return err
	}
	a.activeTrip = trip.ID
	fmt.Fprintf(a.out, "Trip %s started\n", trip.ID)
	return nil
}

// TripPoint records one GPS fix on the active trip. Without arguments the
// coordinates are prompted for.
func (a *App) TripPoint(ctx context.Context, args []string) error {
	if a.activeTrip == "" {
		return errNoActiveTrip
	}

	if len(args) == 0 {
		line, err := getSimpleText(a.reader, "Enter latitude and longitude", a.out)
		if err != nil {
			return err
		}
		args = splitCoordinate(line)
	}

	c, err := parseCoordinate(args)
	if err != nil {
		return err
	}
	c.Timestamp = now().UTC()

	resp, err := a.trips.AddCoordinate(ctx, a.activeTrip, c)
	if err != nil {
		return err
	}
	return printJSON(a.out, resp)
}

// TripBatch uploads several fixes at once, one "lat,lon" line each.
func (a *App) TripBatch(ctx context.Context, _ []string) error {
	if a.activeTrip == "" {
		return errNoActiveTrip
	}

	lines, err := getLines(a.reader, "Enter one 'latitude,longitude' per line", a.out)
	if err != nil {
		return err
	}

	ts := now().UTC()
	cs := make([]models.Coordinate, 0, len(lines))
	for i, line := range lines {
		c, err := parseCoordinate(splitCoordinate(line))
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		c.Timestamp = ts
		cs = append(cs, c)
	}

	resp, err := a.trips.AddCoordinatesBatch(ctx, a.activeTrip, cs)
	if err != nil {
		return err
	}
	return printJSON(a.out, resp)
}

// TripFinish completes the given trip, or the active one.
func (a *App) TripFinish(ctx context.Context, args []string) error {
	id := a.activeTrip
	if len(args) > 0 {
		id = args[0]
	}
	if id == "" {
		return errNoActiveTrip
	}

	trip, err := a.trips.Complete(ctx, id, now().UTC())
	if err != nil {
		return err
	}
	if id == a.activeTrip {
		a.activeTrip = ""
	}
	return printJSON(a.out, trip)
}

// Trips prints the trip history.
func (a *App) Trips(ctx context.Context, _ []string) error {
	trips, err := a.trips.GetHistory(ctx)
	if err != nil {
		return err
	}
	if len(trips) == 0 {
		fmt.Fprintln(a.out, "No trips yet")
		return nil
	}
	for _, t := range trips {
		state := "in progress"
		if t.EndTime != nil {
			state = "completed"
		}
		fmt.Fprintf(a.out, "%s  %s  %s\n", t.ID, t.StartTime.Format("2006-01-02 15:04"), state)
	}
	return nil
}

// Trip prints one trip with its coordinates.
func (a *App) Trip(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errTripIDNeeded
	}
	trip, err := a.trips.GetDetail(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(a.out, trip)
}

// TripDelete removes a trip.
func (a *App) TripDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errTripIDNeeded
	}
	if err := a.trips.Delete(ctx, args[0]); err != nil && !emptyResponse(err) {
		return err
	}
	if args[0] == a.activeTrip {
		a.activeTrip = ""
	}
	fmt.Fprintf(a.out, "Trip %s deleted\n", args[0])
	return nil
}

// emptyResponse reports whether err is the decode failure of a successful
// response that carried no body at all, such as a 204.
func emptyResponse(err error) bool {
	var se *json.SyntaxError
	return errors.As(err, &se) && se.Offset == 0
}

// splitCoordinate accepts "lat,lon" as well as whitespace separated values.
func splitCoordinate(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// parseCoordinate reads latitude, longitude and the optional altitude,
// speed and accuracy, in that order.
func parseCoordinate(args []string) (models.Coordinate, error) {
	var c models.Coordinate
	if len(args) < 2 || len(args) > 5 {
		return c, fmt.Errorf("expected latitude and longitude, got %d values", len(args))
	}

	vals := make([]float64, len(args))
	for i, s := range args {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return c, fmt.Errorf("invalid number %q", s)
		}
		vals[i] = v
	}

	c.Latitude, c.Longitude = vals[0], vals[1]
	if c.Latitude < -90 || c.Latitude > 90 {
		return c, fmt.Errorf("latitude %v out of range", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return c, fmt.Errorf("longitude %v out of range", c.Longitude)
	}

	if len(vals) > 2 {
		c.Altitude = &vals[2]
	}
	if len(vals) > 3 {
		c.Speed = &vals[3]
	}
	if len(vals) > 4 {
		c.Accuracy = &vals[4]
	}
	return c, nil
}
