// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/routedeck/routedeck/lib/api"
	"github.com/routedeck/routedeck/lib/clock"
)

// fakeService is an in-memory Service backed by slices, paging the
// way the backend does.
type fakeService struct {
	mu sync.Mutex

	locations       []api.Location
	transportations []api.Transportation
	routes          []api.Route
	options         []api.SearchOption

	listErr   error
	mutateErr error

	createdLocations       []api.LocationRequest
	updatedLocations       map[int64]api.LocationRequest
	deletedLocations       []int64
	createdTransportations []api.TransportationRequest
	deletedTransportations []int64
	searchQueries          []string
	routeSearches          [][2]int64
}

func newFakeService() *fakeService {
	return &fakeService{updatedLocations: make(map[int64]api.LocationRequest)}
}

func pageOf[T any](items []T, page, size int) api.Page[T] {
	start := page * size
	if start > len(items) {
		start = len(items)
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	totalPages := (len(items) + size - 1) / size
	return api.Page[T]{
		Content:       items[start:end],
		TotalElements: int64(len(items)),
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
	}
}

func (s *fakeService) ListLocations(_ context.Context, page, size int) (api.Page[api.Location], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return api.Page[api.Location]{}, s.listErr
	}
	return pageOf(s.locations, page, size), nil
}

func (s *fakeService) CreateLocation(_ context.Context, request api.LocationRequest) (api.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mutateErr != nil {
		return api.Location{}, s.mutateErr
	}
	s.createdLocations = append(s.createdLocations, request)
	created := api.Location{ID: int64(100 + len(s.createdLocations)), Name: request.Name,
		Latitude: request.Latitude, Longitude: request.Longitude}
	s.locations = append(s.locations, created)
	return created, nil
}

func (s *fakeService) UpdateLocation(_ context.Context, id int64, request api.LocationRequest) (api.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mutateErr != nil {
		return api.Location{}, s.mutateErr
	}
	s.updatedLocations[id] = request
	return api.Location{ID: id, Name: request.Name, Latitude: request.Latitude, Longitude: request.Longitude}, nil
}

func (s *fakeService) DeleteLocation(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mutateErr != nil {
		return s.mutateErr
	}
	s.deletedLocations = append(s.deletedLocations, id)
	return nil
}

func (s *fakeService) SearchLocations(_ context.Context, query string) ([]api.SearchOption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQueries = append(s.searchQueries, query)
	return s.options, nil
}

func (s *fakeService) ListTransportations(_ context.Context, page, size int) (api.Page[api.Transportation], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return api.Page[api.Transportation]{}, s.listErr
	}
	return pageOf(s.transportations, page, size), nil
}

func (s *fakeService) CreateTransportation(_ context.Context, request api.TransportationRequest) (api.Transportation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mutateErr != nil {
		return api.Transportation{}, s.mutateErr
	}
	s.createdTransportations = append(s.createdTransportations, request)
	return api.Transportation{ID: int64(200 + len(s.createdTransportations)), Type: request.Type}, nil
}

func (s *fakeService) UpdateTransportation(_ context.Context, id int64, request api.TransportationRequest) (api.Transportation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mutateErr != nil {
		return api.Transportation{}, s.mutateErr
	}
	return api.Transportation{ID: id, Type: request.Type}, nil
}

func (s *fakeService) DeleteTransportation(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mutateErr != nil {
		return s.mutateErr
	}
	s.deletedTransportations = append(s.deletedTransportations, id)
	return nil
}

func (s *fakeService) SearchRoutes(_ context.Context, fromID, toID int64) ([]api.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.routeSearches = append(s.routeSearches, [2]int64{fromID, toID})
	return s.routes, nil
}

// seedLocations fills the fake with n sequentially named locations.
func seedLocations(service *fakeService, n int) {
	for index := 1; index <= n; index++ {
		service.locations = append(service.locations, api.Location{
			ID:        int64(index),
			Name:      fmt.Sprintf("City %02d", index),
			Latitude:  float64(index),
			Longitude: -float64(index),
		})
	}
}

// newTestModel builds a model sized for tests, runs Init, and applies
// the first page load.
func newTestModel(t *testing.T, service *fakeService) Model {
	t.Helper()

	model := NewModel(service, Options{
		PageSize: 10,
		Clock:    clock.Fake(time.Unix(0, 0)),
	})

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model = updated.(Model)

	// Run the initial location load synchronously.
	generation := model.locations.StartLoad(0)
	page, err := service.ListLocations(context.Background(), 0, 10)
	updated, _ = model.Update(locationsLoadedMsg{generation: generation, page: page, err: err})
	return updated.(Model)
}

func keyRunes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func pressKey(t *testing.T, model Model, message tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := model.Update(message)
	return updated.(Model), cmd
}

func TestInitialLoadPopulatesLocations(t *testing.T) {
	service := newFakeService()
	seedLocations(service, 21)
	model := newTestModel(t, service)

	if got := len(model.locations.Items()); got != 10 {
		t.Errorf("items = %d, want 10", got)
	}
	if model.locations.Meta().TotalElements != 21 {
		t.Errorf("total = %d, want 21", model.locations.Meta().TotalElements)
	}
	if label := model.locations.RangeLabel(); label != "Showing 1 to 10 of 21 results" {
		t.Errorf("range label = %q", label)
	}
}

func TestPaginationKeys(t *testing.T) {
	service := newFakeService()
	seedLocations(service, 21)
	model := newTestModel(t, service)

	// Next page issues a load for page 1.
	model, cmd := pressKey(t, model, keyRunes("l"))
	if cmd == nil {
		t.Fatal("next page should issue a load command")
	}
	message := cmd()
	loaded, ok := message.(locationsLoadedMsg)
	if !ok {
		t.Fatalf("unexpected message %T", message)
	}
	updated, _ := model.Update(loaded)
	model = updated.(Model)
	if model.locations.Page() != 1 {
		t.Errorf("page = %d, want 1", model.locations.Page())
	}

	// Previous past the first page is a no-op.
	model = newTestModel(t, service)
	model, cmd = pressKey(t, model, keyRunes("h"))
	if cmd != nil {
		t.Error("previous page on page 0 should be a no-op")
	}
}

func TestFailedLoadKeepsItemsAndShowsError(t *testing.T) {
	service := newFakeService()
	seedLocations(service, 5)
	model := newTestModel(t, service)

	generation := model.locations.Refresh()
	updated, _ := model.Update(locationsLoadedMsg{generation: generation, err: errors.New("backend down")})
	model = updated.(Model)

	if len(model.locations.Items()) != 5 {
		t.Errorf("items = %d, want 5 (last known good)", len(model.locations.Items()))
	}
	if model.notice != "backend down" || !model.noticeErr {
		t.Errorf("notice = %q (err=%v)", model.notice, model.noticeErr)
	}
}

func TestTabSwitchLazyLoadsTransportations(t *testing.T) {
	service := newFakeService()
	seedLocations(service, 3)
	model := newTestModel(t, service)

	model, cmd := pressKey(t, model, keyRunes("2"))
	if model.activeTab != TabTransportations {
		t.Fatalf("activeTab = %v", model.activeTab)
	}
	if cmd == nil {
		t.Fatal("first visit should load the transportation page")
	}

	// A second visit does not reload.
	model, _ = pressKey(t, model, keyRunes("1"))
	message := cmd()
	updated, _ := model.Update(message)
	model = updated.(Model)
	model, cmd = pressKey(t, model, keyRunes("2"))
	if cmd != nil {
		t.Error("already-loaded tab should not reload on switch")
	}
}

func TestTwoPhaseDelete(t *testing.T) {
	service := newFakeService()
	seedLocations(service, 3)
	model := newTestModel(t, service)

	// First press arms.
	model, cmd := pressKey(t, model, keyRunes("d"))
	if cmd != nil {
		t.Fatal("arming must not issue the delete")
	}
	if model.armed == nil || model.armed.id != 1 {
		t.Fatalf("armed = %+v", model.armed)
	}

	// Second press confirms.
	model, cmd = pressKey(t, model, keyRunes("d"))
	if model.armed != nil {
		t.Error("confirmation should disarm")
	}
	if cmd == nil {
		t.Fatal("confirmation should issue the delete")
	}
	message := cmd().(mutationResultMsg)
	if message.err != nil {
		t.Fatalf("delete failed: %v", message.err)
	}
	if len(service.deletedLocations) != 1 || service.deletedLocations[0] != 1 {
		t.Errorf("deleted = %v, want [1]", service.deletedLocations)
	}
}

func TestDeleteDisarmedByOtherAction(t *testing.T) {
	service := newFakeService()
	seedLocations(service, 3)
	model := newTestModel(t, service)

	model, _ = pressKey(t, model, keyRunes("d"))
	if model.armed == nil {
		t.Fatal("expected armed delete")
	}

	// Moving the cursor disarms; the next delete press arms the new row.
	model, _ = pressKey(t, model, keyRunes("j"))
	if model.armed != nil {
		t.Error("navigation should disarm the pending delete")
	}

	model, _ = pressKey(t, model, keyRunes("d"))
	if model.armed == nil || model.armed.id != 2 {
		t.Errorf("armed = %+v, want row 2", model.armed)
	}
}

func TestDeleteRefreshShrinksTotals(t *testing.T) {
	service := newFakeService()
	seedLocations(service, 11)
	model := newTestModel(t, service)

	// Delete through the service, then apply the mutation result: the
	// refresh reflects the smaller dataset.
	service.locations = service.locations[:10]
	updated, cmd := model.Update(mutationResultMsg{tab: TabLocations, notice: "Location deleted"})
	model = updated.(Model)
	if cmd == nil {
		t.Fatal("mutation success should schedule a refresh")
	}

	message := findMessage[locationsLoadedMsg](t, cmd)
	updated, _ = model.Update(message)
	model = updated.(Model)

	if model.locations.Meta().TotalElements != 10 {
		t.Errorf("total = %d, want 10", model.locations.Meta().TotalElements)
	}
	if model.notice != "Location deleted" {
		t.Errorf("notice = %q", model.notice)
	}
}

// findMessage executes a possibly batched command tree and returns the
// first message of type T.
func findMessage[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	var zero T
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		message := next()
		if batch, ok := message.(tea.BatchMsg); ok {
			for _, sub := range batch {
				queue = append(queue, sub)
			}
			continue
		}
		if typed, ok := message.(T); ok {
			return typed
		}
	}
	t.Fatalf("no %T message produced", zero)
	return zero
}

func TestNoticeFadeGuardedBySequence(t *testing.T) {
	service := newFakeService()
	seedLocations(service, 1)
	model := newTestModel(t, service)

	updated, _ := model.Update(mutationResultMsg{tab: TabLocations, notice: "Location created", id: 1})
	model = updated.(Model)
	firstSeq := model.noticeSeq

	updated, _ = model.Update(mutationResultMsg{tab: TabLocations, notice: "Location updated", id: 1})
	model = updated.(Model)

	// The stale fade timer must not clear the newer notice.
	updated, _ = model.Update(noticeFadeMsg{seq: firstSeq})
	model = updated.(Model)
	if model.notice != "Location updated" {
		t.Errorf("notice = %q, stale fade cleared it", model.notice)
	}

	updated, _ = model.Update(noticeFadeMsg{seq: model.noticeSeq})
	model = updated.(Model)
	if model.notice != "" {
		t.Errorf("notice = %q, want cleared", model.notice)
	}
}

func TestFilterNarrowsRows(t *testing.T) {
	service := newFakeService()
	service.locations = []api.Location{
		{ID: 1, Name: "Ankara"},
		{ID: 2, Name: "Istanbul"},
		{ID: 3, Name: "Antalya"},
	}
	model := newTestModel(t, service)

	model, _ = pressKey(t, model, keyRunes("/"))
	if model.focusRegion != FocusFilter {
		t.Fatal("/ should focus the filter")
	}
	model, _ = pressKey(t, model, keyRunes("ank"))

	matches := model.activeMatches()
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if service.locations[matches[0].Index].Name != "Ankara" {
		t.Errorf("matched %q", service.locations[matches[0].Index].Name)
	}

	// Escape clears the filter entirely.
	model, _ = pressKey(t, model, tea.KeyMsg{Type: tea.KeyEscape})
	if got := len(model.activeMatches()); got != 3 {
		t.Errorf("matches after clear = %d, want 3", got)
	}
}

func TestTransportationListShowsNameAndRoute(t *testing.T) {
	service := newFakeService()
	service.transportations = []api.Transportation{{
		ID:           1,
		Name:         "TK-101",
		Type:         api.TypeFlight,
		FromLocation: api.Location{ID: 7, Name: "Ankara"},
		ToLocation:   api.Location{ID: 8, Name: "Istanbul"},
	}}
	model := newTestModel(t, service)

	model, cmd := pressKey(t, model, keyRunes("2"))
	updated, _ := model.Update(cmd())
	model = updated.(Model)

	view := model.View()
	for _, want := range []string{"TK-101", "Ankara → Istanbul"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewSmoke(t *testing.T) {
	service := newFakeService()
	seedLocations(service, 5)
	model := newTestModel(t, service)

	view := model.View()
	if view == "" {
		t.Fatal("empty view")
	}
	for _, want := range []string{"1:Locations", "City 01", "Showing 1 to 5 of 5 results"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
