// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

// Location is a named geographic point managed as a reference entity.
// The ID is server-assigned and immutable; uniqueness of names is a
// backend concern.
type Location struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationRequest is the write shape for creating or updating a
// location. The backend returns the full Location in response.
type LocationRequest struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TransportationType classifies a transportation segment.
type TransportationType string

const (
	// TypeFlight is a flight segment.
	TypeFlight TransportationType = "FLIGHT"
	// TypeOther is any non-flight segment (bus, rail, ferry, ...).
	TypeOther TransportationType = "OTHER"
)

// TransportationTypes lists the valid types in display order.
var TransportationTypes = []TransportationType{TypeFlight, TypeOther}

// Transportation is a directed connection between two locations. The
// embedded locations are a read model resolved server-side; writes
// carry location ids instead (see TransportationRequest).
type Transportation struct {
	ID                int64              `json:"id"`
	Name              string             `json:"name"`
	Type              TransportationType `json:"type"`
	FromLocation      Location           `json:"fromLocation"`
	ToLocation        Location           `json:"toLocation"`
	Price             *float64           `json:"price"`
	DurationInMinutes *int64             `json:"durationInMinutes"`
}

// TransportationRequest is the write shape for creating or updating a
// transportation. Price and duration are optional; nil means unknown.
type TransportationRequest struct {
	Name              string             `json:"name"`
	Type              TransportationType `json:"type"`
	FromLocationID    int64              `json:"fromLocationId"`
	ToLocationID      int64              `json:"toLocationId"`
	Price             *float64           `json:"price,omitempty"`
	DurationInMinutes *int64             `json:"durationInMinutes,omitempty"`
}

// Route is an ephemeral, read-only itinerary produced by route search.
// It is never created, edited, or deleted; it has no backend identity.
// Each leg's ToLocation equals the next leg's FromLocation. Totals are
// computed by the backend and displayed verbatim — the console never
// re-derives them from the legs.
type Route struct {
	Transportations []Transportation `json:"transportations"`
	TotalDuration   *int64           `json:"totalDuration"`
	TotalPrice      *float64         `json:"totalPrice"`
}

// Page is the backend's Spring-style page envelope. Number is the
// 0-based index of the current page.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
}

// SearchOption is the projection of Location used by the incremental
// lookup: just enough to render a candidate row and carry the id.
type SearchOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
