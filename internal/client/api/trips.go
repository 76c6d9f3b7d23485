package api

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/triptracker/internal/client/models"
)

const tripsPath = "/api/trips"

type TripsAPI struct {
	r Requester
}

// Create starts a new trip at startTime.
func (t *TripsAPI) Create(ctx context.Context, startTime time.Time) (*models.Trip, error) {
	var out models.Trip
	if err := t.r.Do(ctx, http.MethodPost, tripsPath, models.TripStart{StartTime: startTime}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TripsAPI) AddCoordinate(ctx context.Context, tripID string, c models.Coordinate) (models.Object, error) {
	var out models.Object
	if err := t.r.Do(ctx, http.MethodPost, resource(tripsPath, tripID, "coordinates"), c, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *TripsAPI) AddCoordinatesBatch(ctx context.Context, tripID string, cs []models.Coordinate) (models.Object, error) {
	if cs == nil {
		cs = []models.Coordinate{}
	}
	var out models.Object
	body := models.CoordinateBatch{Coordinates: cs}
	if err := t.r.Do(ctx, http.MethodPost, resource(tripsPath, tripID, "coordinates", "batch"), body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Complete closes the trip at endTime.
func (t *TripsAPI) Complete(ctx context.Context, tripID string, endTime time.Time) (*models.Trip, error) {
	var out models.Trip
	if err := t.r.Do(ctx, http.MethodPut, resource(tripsPath, tripID, "complete"), models.TripEnd{EndTime: endTime}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TripsAPI) GetHistory(ctx context.Context) ([]models.Trip, error) {
	var out []models.Trip
	if err := t.r.Do(ctx, http.MethodGet, tripsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *TripsAPI) GetDetail(ctx context.Context, tripID string) (*models.Trip, error) {
	var out models.Trip
	if err := t.r.Do(ctx, http.MethodGet, resource(tripsPath, tripID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *TripsAPI) Delete(ctx context.Context, tripID string) error {
	return t.r.Do(ctx, http.MethodDelete, resource(tripsPath, tripID), nil, nil)
}
