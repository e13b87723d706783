// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/routedeck/routedeck/lib/api"
	"github.com/routedeck/routedeck/lib/clock"
	"github.com/routedeck/routedeck/lib/testutil"
)

// newTestModelWithClock is newTestModel with the fake clock exposed,
// for tests that drive the debounced endpoint lookups.
func newTestModelWithClock(t *testing.T, service *fakeService) (Model, *clock.FakeClock) {
	t.Helper()

	clk := clock.Fake(time.Unix(0, 0))
	model := NewModel(service, Options{PageSize: 10, Clock: clk})

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model = updated.(Model)

	generation := model.locations.StartLoad(0)
	page, err := service.ListLocations(context.Background(), 0, 10)
	updated, _ = model.Update(locationsLoadedMsg{generation: generation, page: page, err: err})
	return updated.(Model), clk
}

func TestLocationCreateFlow(t *testing.T) {
	service := newFakeService()
	model := newTestModel(t, service)

	model, _ = pressKey(t, model, keyRunes("a"))
	if model.form == nil || model.form.tab != TabLocations {
		t.Fatal("a should open the location form")
	}

	model, _ = pressKey(t, model, keyRunes("Ankara"))
	model, _ = pressKey(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model, _ = pressKey(t, model, keyRunes("39.93"))
	model, _ = pressKey(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model, _ = pressKey(t, model, keyRunes("32.85"))

	model, cmd := pressKey(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("submit should issue the create")
	}
	if !model.form.submitting {
		t.Error("form should guard against double submission while in flight")
	}

	message := cmd().(mutationResultMsg)
	if message.err != nil {
		t.Fatalf("create failed: %v", message.err)
	}
	if len(service.createdLocations) != 1 {
		t.Fatalf("created = %d requests", len(service.createdLocations))
	}
	request := service.createdLocations[0]
	if request.Name != "Ankara" || request.Latitude != 39.93 || request.Longitude != 32.85 {
		t.Errorf("request = %+v", request)
	}

	updated, _ := model.Update(message)
	model = updated.(Model)
	if model.form != nil {
		t.Error("form should close on success")
	}
	if model.notice != "Location created" {
		t.Errorf("notice = %q", model.notice)
	}
}

func TestLocationValidationRequiresName(t *testing.T) {
	service := newFakeService()
	model := newTestModel(t, service)

	model, _ = pressKey(t, model, keyRunes("a"))
	model, cmd := pressKey(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("invalid form must not submit")
	}
	if model.form == nil {
		t.Fatal("form should stay open")
	}
	if model.form.modal.Fields[fieldLocationName].Error != "required" {
		t.Errorf("name error = %q", model.form.modal.Fields[fieldLocationName].Error)
	}
}

func TestNumericFieldsCoerceToZero(t *testing.T) {
	service := newFakeService()
	model := newTestModel(t, service)

	model, _ = pressKey(t, model, keyRunes("a"))
	model, _ = pressKey(t, model, keyRunes("Nowhere"))
	model, _ = pressKey(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model, _ = pressKey(t, model, keyRunes("not a number"))

	_, cmd := pressKey(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit")
	}
	cmd()
	request := service.createdLocations[0]
	if request.Latitude != 0 || request.Longitude != 0 {
		t.Errorf("coordinates = %v/%v, want 0/0", request.Latitude, request.Longitude)
	}
}

func TestEditSeedsAndUpdates(t *testing.T) {
	service := newFakeService()
	service.locations = []api.Location{{ID: 42, Name: "Izmir", Latitude: 38.42, Longitude: 27.14}}
	model := newTestModel(t, service)

	model, _ = pressKey(t, model, keyRunes("e"))
	if model.form == nil || model.form.editID != 42 {
		t.Fatalf("form = %+v", model.form)
	}
	if got := model.form.modal.Value(fieldLocationName); got != "Izmir" {
		t.Errorf("seeded name = %q", got)
	}
	if got := model.form.modal.Value(fieldLocationLatitude); got != "38.42" {
		t.Errorf("seeded latitude = %q", got)
	}

	// Append to the seeded name and submit.
	model, _ = pressKey(t, model, keyRunes("!"))
	_, cmd := pressKey(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit")
	}
	cmd()
	request, ok := service.updatedLocations[42]
	if !ok {
		t.Fatal("UpdateLocation not called")
	}
	if request.Name != "Izmir!" {
		t.Errorf("updated name = %q", request.Name)
	}
}

func TestSubmittingGuardIgnoresInput(t *testing.T) {
	service := newFakeService()
	model := newTestModel(t, service)

	model, _ = pressKey(t, model, keyRunes("a"))
	model, _ = pressKey(t, model, keyRunes("Ankara"))
	model, cmd := pressKey(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit")
	}

	// Further input while the request is in flight is ignored.
	model, cmd = pressKey(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("second enter must not double-submit")
	}
	model, _ = pressKey(t, model, keyRunes("xyz"))
	if got := model.form.modal.Value(fieldLocationName); got != "Ankara" {
		t.Errorf("name = %q, typing leaked through the submit guard", got)
	}
}

func TestTransportationEndpointPickerFlow(t *testing.T) {
	service := newFakeService()
	service.options = []api.SearchOption{
		{ID: 7, Name: "Ankara"},
		{ID: 8, Name: "Antalya"},
	}
	model, clk := newTestModelWithClock(t, service)

	// Open the transportation form on its tab.
	model, cmd := pressKey(t, model, keyRunes("2"))
	updated, _ := model.Update(cmd())
	model = updated.(Model)
	model, _ = pressKey(t, model, keyRunes("a"))
	if model.form == nil || model.form.tab != TabTransportations {
		t.Fatal("a should open the transportation form")
	}

	// Fill the name, then move to the From field. Typing there arms
	// the debounced lookup; nothing fires until the quiet period
	// elapses.
	model, _ = pressKey(t, model, keyRunes("TK-101"))
	model, _ = pressKey(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model, _ = pressKey(t, model, keyRunes("an"))
	if len(service.searchQueries) != 0 {
		t.Fatalf("requests before debounce = %v", service.searchQueries)
	}
	clk.Advance(300 * time.Millisecond)

	event := testutil.RequireReceive(t, model.form.fromResolver.Events(), 5*time.Second, "from lookup")
	updated, _ = model.Update(lookupEventMsg{field: pickerFrom, event: event})
	model = updated.(Model)
	if model.form.picker == nil {
		t.Fatal("candidates should open the picker")
	}

	// Select the second candidate.
	model, _ = pressKey(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model, _ = pressKey(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.form.fromID != 8 {
		t.Errorf("fromID = %d, want 8", model.form.fromID)
	}
	if got := model.form.modal.Value(fieldTransportationFrom); got != "Antalya" {
		t.Errorf("from field = %q", got)
	}
	if model.form.picker != nil {
		t.Error("picker should close on selection")
	}
}

func TestTransportationValidation(t *testing.T) {
	service := newFakeService()
	model, _ := newTestModelWithClock(t, service)

	model, cmd := pressKey(t, model, keyRunes("2"))
	updated, _ := model.Update(cmd())
	model = updated.(Model)
	model, _ = pressKey(t, model, keyRunes("a"))

	// Nothing filled in: name and both endpoints are required.
	model, cmd = pressKey(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("must not submit an empty form")
	}
	if model.form.modal.Fields[fieldTransportationName].Error != "required" {
		t.Errorf("name error = %q", model.form.modal.Fields[fieldTransportationName].Error)
	}
	if model.form.modal.Fields[fieldTransportationFrom].Error == "" ||
		model.form.modal.Fields[fieldTransportationTo].Error == "" {
		t.Error("expected endpoint errors")
	}

	// A name plus resolved endpoints submit, with optional numerics
	// blank -> nil.
	model.form.modal.SetValue(fieldTransportationName, "TK-101")
	model.form.fromID = 5
	model.form.toID = 6
	_, cmd = pressKey(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit")
	}
	cmd()
	request := service.createdTransportations[0]
	if request.Name != "TK-101" {
		t.Errorf("name = %q, want TK-101", request.Name)
	}
	if request.FromLocationID != 5 || request.ToLocationID != 6 {
		t.Errorf("endpoints = %d -> %d", request.FromLocationID, request.ToLocationID)
	}
	if request.Type != api.TypeFlight {
		t.Errorf("type = %q, want default %q", request.Type, api.TypeFlight)
	}
	if request.Price != nil || request.DurationInMinutes != nil {
		t.Error("blank optional fields should be omitted")
	}
}

func TestTransportationEditSeedsFields(t *testing.T) {
	service := newFakeService()
	price := 99.5
	duration := int64(75)
	service.transportations = []api.Transportation{{
		ID:                31,
		Name:              "TK-101",
		Type:              api.TypeFlight,
		FromLocation:      api.Location{ID: 7, Name: "Ankara"},
		ToLocation:        api.Location{ID: 8, Name: "Istanbul"},
		Price:             &price,
		DurationInMinutes: &duration,
	}}
	model, _ := newTestModelWithClock(t, service)

	model, cmd := pressKey(t, model, keyRunes("2"))
	updated, _ := model.Update(cmd())
	model = updated.(Model)
	model, _ = pressKey(t, model, keyRunes("e"))
	if model.form == nil || model.form.editID != 31 {
		t.Fatalf("form = %+v", model.form)
	}

	wantValues := map[int]string{
		fieldTransportationName:     "TK-101",
		fieldTransportationFrom:     "Ankara",
		fieldTransportationTo:       "Istanbul",
		fieldTransportationType:     "FLIGHT",
		fieldTransportationPrice:    "99.5",
		fieldTransportationDuration: "75",
	}
	for field, want := range wantValues {
		if got := model.form.modal.Value(field); got != want {
			t.Errorf("field %d = %q, want %q", field, got, want)
		}
	}
	if model.form.fromID != 7 || model.form.toID != 8 {
		t.Errorf("endpoint ids = %d -> %d, want 7 -> 8", model.form.fromID, model.form.toID)
	}
}

func TestMutationErrorKeepsFormOpen(t *testing.T) {
	service := newFakeService()
	service.mutateErr = &api.APIError{StatusCode: 400, Reason: "Bad Request", Messages: []string{"name already exists"}}
	model := newTestModel(t, service)

	model, _ = pressKey(t, model, keyRunes("a"))
	model, _ = pressKey(t, model, keyRunes("Ankara"))
	model, cmd := pressKey(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit")
	}

	updated, _ := model.Update(cmd())
	model = updated.(Model)
	if model.form == nil {
		t.Fatal("form should stay open after a failed mutation")
	}
	if model.form.submitting {
		t.Error("submit guard should release on failure")
	}
	if model.notice != "name already exists" || !model.noticeErr {
		t.Errorf("notice = %q (err=%v)", model.notice, model.noticeErr)
	}
}
