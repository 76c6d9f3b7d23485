package models

import "time"

// Coordinate is one recorded GPS fix.
type Coordinate struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
	Altitude  *float64  `json:"altitude,omitempty"`
	Speed     *float64  `json:"speed,omitempty"`
	Accuracy  *float64  `json:"accuracy,omitempty"`
}

// Trip is a recorded ride. EndTime is nil while the trip is in progress.
type Trip struct {
	ID          string       `json:"id"`
	StartTime   time.Time    `json:"startTime"`
	EndTime     *time.Time   `json:"endTime,omitempty"`
	Status      string       `json:"status,omitempty"`
	Distance    float64      `json:"distance,omitempty"`
	Duration    float64      `json:"duration,omitempty"`
	AvgSpeed    float64      `json:"avgSpeed,omitempty"`
	Coordinates []Coordinate `json:"coordinates,omitempty"`
}

// TripStart is the body of the create-trip call.
type TripStart struct {
	StartTime time.Time `json:"startTime"`
}

// TripEnd is the body of the complete-trip call.
type TripEnd struct {
	EndTime time.Time `json:"endTime"`
}

// CoordinateBatch is the body of the batch upload call.
type CoordinateBatch struct {
	Coordinates []Coordinate `json:"coordinates"`
}
