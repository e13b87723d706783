// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"

	"github.com/routedeck/routedeck/lib/api"
)

// Service is the backend surface the console drives. *api.Client
// implements it; tests substitute a fake.
type Service interface {
	ListLocations(ctx context.Context, page, size int) (api.Page[api.Location], error)
	CreateLocation(ctx context.Context, request api.LocationRequest) (api.Location, error)
	UpdateLocation(ctx context.Context, id int64, request api.LocationRequest) (api.Location, error)
	DeleteLocation(ctx context.Context, id int64) error
	SearchLocations(ctx context.Context, query string) ([]api.SearchOption, error)

	ListTransportations(ctx context.Context, page, size int) (api.Page[api.Transportation], error)
	CreateTransportation(ctx context.Context, request api.TransportationRequest) (api.Transportation, error)
	UpdateTransportation(ctx context.Context, id int64, request api.TransportationRequest) (api.Transportation, error)
	DeleteTransportation(ctx context.Context, id int64) error

	SearchRoutes(ctx context.Context, fromLocationID, toLocationID int64) ([]api.Route, error)
}
