// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/routedeck/routedeck/lib/api"
	"github.com/routedeck/routedeck/lib/lookup"
	"github.com/routedeck/routedeck/lib/tui"
)

// locationsLoadedMsg delivers the outcome of a location page load.
// The generation ties it back to the StartLoad that issued it.
type locationsLoadedMsg struct {
	generation uint64
	page       api.Page[api.Location]
	err        error
}

// transportationsLoadedMsg delivers the outcome of a transportation
// page load.
type transportationsLoadedMsg struct {
	generation uint64
	page       api.Page[api.Transportation]
	err        error
}

// mutationResultMsg is sent when an asynchronous create, update, or
// delete completes. On success the affected tab refreshes; on error
// the message is displayed in the status bar.
type mutationResultMsg struct {
	tab    Tab
	id     int64 // Affected entity, for the row glow. 0 for deletes.
	notice string
	err    error
}

// routesLoadedMsg delivers the outcome of a route search.
type routesLoadedMsg struct {
	generation uint64
	routes     []api.Route
	err        error
}

// lookupEventMsg wraps a resolver event for delivery through the
// bubbletea message loop. The field names which endpoint picker the
// event belongs to.
type lookupEventMsg struct {
	field string
	event lookup.Event
}

// noticeFadeMsg clears the status bar notice. The sequence number
// guards against an old fade timer clearing a newer notice.
type noticeFadeMsg struct {
	seq int
}

// heatTickMsg drives the row glow decay animation. While any rows are
// hot, a new tick is scheduled after each one.
type heatTickMsg struct{}

// noticeFadeDelay is how long a success notice stays visible.
const noticeFadeDelay = 3 * time.Second

// requestTimeout bounds every backend call issued from the event loop.
const requestTimeout = 15 * time.Second

func loadLocations(service Service, generation uint64, page, size int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		loaded, err := service.ListLocations(ctx, page, size)
		return locationsLoadedMsg{generation: generation, page: loaded, err: err}
	}
}

func loadTransportations(service Service, generation uint64, page, size int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		loaded, err := service.ListTransportations(ctx, page, size)
		return transportationsLoadedMsg{generation: generation, page: loaded, err: err}
	}
}

func searchRoutes(service Service, generation uint64, fromID, toID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		routes, err := service.SearchRoutes(ctx, fromID, toID)
		return routesLoadedMsg{generation: generation, routes: routes, err: err}
	}
}

// listenForLookupEvent returns a tea.Cmd that blocks until the next
// resolver event for the named picker field, then delivers it as a
// lookupEventMsg. Re-armed after every delivery.
func listenForLookupEvent(field string, events <-chan lookup.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return lookupEventMsg{field: field, event: event}
	}
}

func scheduleNoticeFade(seq int) tea.Cmd {
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{seq: seq}
	})
}

func scheduleHeatTick() tea.Cmd {
	return tea.Tick(tui.HeatTickInterval, func(time.Time) tea.Msg {
		return heatTickMsg{}
	})
}
