package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/triptracker/internal/client/models"
)

var errPathIDNeeded = errors.New("path id required")

// PathSearch searches paths by key=value arguments. Without arguments it
// prompts for origin and destination.
func (a *App) PathSearch(ctx context.Context, args []string) error {
	params := url.Values{}
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return fmt.Errorf("invalid search parameter %q, want key=value", arg)
		}
		params.Add(k, v)
	}

	if len(args) == 0 {
		for _, key := range []string{"origin", "destination"} {
			v, err := getSimpleText(a.reader, "Enter "+key+" (optional)", a.out)
			if err != nil {
				return err
			}
			if v != "" {
				params.Set(key, v)
			}
		}
	}

	paths, err := a.paths.Search(ctx, params)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintln(a.out, "No paths found")
		return nil
	}
	for _, p := range paths {
		fmt.Fprintf(a.out, "%s  %s  %s\n", p.ID, p.Name, p.Status)
	}
	return nil
}

// Path prints one path.
func (a *App) Path(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errPathIDNeeded
	}
	p, err := a.paths.GetDetail(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(a.out, p)
}

// PathAdd prompts for a manually entered path and submits it.
func (a *App) PathAdd(ctx context.Context, _ []string) error {
	name, err := getSimpleText(a.reader, "Enter path name", a.out)
	if err != nil {
		return err
	}
	status, err := getSimpleText(a.reader, "Enter status ("+strings.Join(models.PathStatuses, ", ")+")", a.out)
	if err != nil {
		return err
	}
	status = strings.ToUpper(status)
	if !models.ValidPathStatus(status) {
		return fmt.Errorf("unknown path status %q", status)
	}

	fields := models.Object{"name": name, "status": status}
	if err := a.promptOptional(fields, "origin", "Enter origin (optional)"); err != nil {
		return err
	}
	if err := a.promptOptional(fields, "destination", "Enter destination (optional)"); err != nil {
		return err
	}

	lines, err := getLines(a.reader, "Enter the path as 'latitude,longitude' lines", a.out)
	if err != nil {
		return err
	}
	points := make([]models.Object, 0, len(lines))
	for i, line := range lines {
		c, err := parseCoordinate(splitCoordinate(line))
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		points = append(points, models.Object{"latitude": c.Latitude, "longitude": c.Longitude})
	}
	if len(points) > 0 {
		fields["coordinates"] = points
	}

	p, err := a.paths.CreateManual(ctx, fields)
	if err != nil {
		return err
	}
	return printJSON(a.out, p)
}
