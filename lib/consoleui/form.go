// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/routedeck/routedeck/lib/api"
	"github.com/routedeck/routedeck/lib/lookup"
	"github.com/routedeck/routedeck/lib/tui"
)

// Picker field names shared by the transportation form and the route
// composer. They key lookup events back to the resolver that issued
// the request.
const (
	pickerFrom = "from"
	pickerTo   = "to"
)

// Location form field indexes.
const (
	fieldLocationName = iota
	fieldLocationLatitude
	fieldLocationLongitude
)

// Transportation form field indexes.
const (
	fieldTransportationName = iota
	fieldTransportationFrom
	fieldTransportationTo
	fieldTransportationType
	fieldTransportationPrice
	fieldTransportationDuration
)

// entityForm is the state behind an open create/edit modal. The modal
// widget handles editing and navigation; this struct owns validation,
// endpoint resolution, and submission.
type entityForm struct {
	tab    Tab
	editID int64 // 0 for create.

	// submitting guards against double submission: once a request is
	// in flight, all input is ignored until the result comes back.
	submitting bool

	modal tui.FormModal

	// Transportation endpoint pickers. The resolvers are shared with
	// the route composer; the form resets them on open and close.
	fromResolver *lookup.Resolver
	toResolver   *lookup.Resolver
	fromID       int64
	toID         int64
	picker       *tui.DropdownOverlay
}

// openCreateForm opens an empty modal for the active entity tab.
func (model Model) openCreateForm() (tea.Model, tea.Cmd) {
	switch model.activeTab {
	case TabLocations:
		model.form = newLocationForm(model.theme, nil)
	case TabTransportations:
		model.form = newTransportationForm(model.theme, nil, &model.composer)
	default:
		return model, nil
	}
	model.focusRegion = FocusForm
	return model, nil
}

// openEditForm opens a modal seeded with the row under the cursor.
func (model Model) openEditForm() (tea.Model, tea.Cmd) {
	switch model.activeTab {
	case TabLocations:
		location, ok := model.selectedLocation()
		if !ok {
			return model, nil
		}
		model.form = newLocationForm(model.theme, &location)
	case TabTransportations:
		transportation, ok := model.selectedTransportation()
		if !ok {
			return model, nil
		}
		model.form = newTransportationForm(model.theme, &transportation, &model.composer)
	default:
		return model, nil
	}
	model.focusRegion = FocusForm
	return model, nil
}

func newLocationForm(theme tui.Theme, seed *api.Location) *entityForm {
	title := "New Location"
	if seed != nil {
		title = "Edit Location #" + strconv.FormatInt(seed.ID, 10)
	}

	form := &entityForm{
		tab: TabLocations,
		modal: tui.NewFormModal(title, theme,
			tui.FormField{Label: "Name"},
			tui.FormField{Label: "Latitude"},
			tui.FormField{Label: "Longitude"},
		),
	}

	if seed != nil {
		form.editID = seed.ID
		form.modal.SetValue(fieldLocationName, seed.Name)
		form.modal.SetValue(fieldLocationLatitude, formatCoordinate(seed.Latitude))
		form.modal.SetValue(fieldLocationLongitude, formatCoordinate(seed.Longitude))
	}
	return form
}

func newTransportationForm(theme tui.Theme, seed *api.Transportation, composer *ComposerModel) *entityForm {
	title := "New Transportation"
	if seed != nil {
		title = "Edit Transportation #" + strconv.FormatInt(seed.ID, 10)
	}

	typeChoices := make([]string, len(api.TransportationTypes))
	for index, transportationType := range api.TransportationTypes {
		typeChoices[index] = string(transportationType)
	}

	form := &entityForm{
		tab: TabTransportations,
		modal: tui.NewFormModal(title, theme,
			tui.FormField{Label: "Name"},
			tui.FormField{Label: "From"},
			tui.FormField{Label: "To"},
			tui.FormField{Label: "Type", Kind: tui.FieldChoice, Choices: typeChoices},
			tui.FormField{Label: "Price"},
			tui.FormField{Label: "Duration (min)"},
		),
		fromResolver: composer.fromResolver,
		toResolver:   composer.toResolver,
	}
	form.fromResolver.Reset()
	form.toResolver.Reset()

	if seed != nil {
		form.editID = seed.ID
		form.fromID = seed.FromLocation.ID
		form.toID = seed.ToLocation.ID
		form.modal.SetValue(fieldTransportationName, seed.Name)
		form.modal.SetValue(fieldTransportationFrom, seed.FromLocation.Name)
		form.modal.SetValue(fieldTransportationTo, seed.ToLocation.Name)
		form.modal.SetChoice(fieldTransportationType, string(seed.Type))
		if seed.Price != nil {
			form.modal.SetValue(fieldTransportationPrice, strconv.FormatFloat(*seed.Price, 'f', -1, 64))
		}
		if seed.DurationInMinutes != nil {
			form.modal.SetValue(fieldTransportationDuration, strconv.FormatInt(*seed.DurationInMinutes, 10))
		}
	}
	return form
}

// Close releases the form's hold on the shared endpoint resolvers.
func (form *entityForm) Close() {
	if form.fromResolver != nil {
		form.fromResolver.Reset()
	}
	if form.toResolver != nil {
		form.toResolver.Reset()
	}
}

// focusedPickerField returns which endpoint picker the focused field
// belongs to, or "" when the focus is not on an endpoint field.
func (form *entityForm) focusedPickerField() string {
	if form.tab != TabTransportations {
		return ""
	}
	switch form.modal.Focus {
	case fieldTransportationFrom:
		return pickerFrom
	case fieldTransportationTo:
		return pickerTo
	}
	return ""
}

func (form *entityForm) resolverFor(field string) *lookup.Resolver {
	if field == pickerTo {
		return form.toResolver
	}
	return form.fromResolver
}

// ApplyLookup feeds a resolver event into the form's candidate picker.
// Stale generations are dropped by the resolver; candidates only show
// for the endpoint field that currently has focus.
func (form *entityForm) ApplyLookup(field string, event lookup.Event) {
	resolver := form.resolverFor(field)
	if resolver == nil || !resolver.Apply(event) {
		return
	}
	if form.focusedPickerField() != field {
		return
	}
	form.showPicker(field, resolver.Options())
}

// showPicker opens or refreshes the candidate dropdown for an
// endpoint field. An empty candidate list hides it.
func (form *entityForm) showPicker(field string, options []api.SearchOption) {
	if len(options) == 0 {
		form.picker = nil
		return
	}

	dropdownOptions := make([]tui.DropdownOption, len(options))
	for index, option := range options {
		dropdownOptions[index] = tui.DropdownOption{
			Label: option.Name,
			Value: strconv.FormatInt(option.ID, 10),
		}
	}

	if form.picker != nil && form.picker.Field == field {
		form.picker.SetOptions(dropdownOptions)
		return
	}
	form.picker = &tui.DropdownOverlay{
		Options: dropdownOptions,
		Field:   field,
	}
}

// handleFormKeys routes keyboard input while a modal is open.
func (model Model) handleFormKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := model.form
	if form.submitting {
		return model, nil
	}

	// The candidate picker captures navigation and selection while
	// visible; typing falls through to the field underneath.
	if form.picker != nil {
		switch message.Type {
		case tea.KeyUp:
			form.picker.MoveUp()
			return model, nil
		case tea.KeyDown:
			form.picker.MoveDown()
			return model, nil
		case tea.KeyEnter:
			model.selectPickerCandidate()
			return model, nil
		case tea.KeyEscape:
			form.picker = nil
			return model, nil
		case tea.KeyTab, tea.KeyShiftTab:
			form.picker = nil
			// Fall through to field navigation below.
		}
	}

	switch message.Type {
	case tea.KeyEscape:
		form.Close()
		model.form = nil
		model.focusRegion = FocusList
		return model, nil

	case tea.KeyEnter:
		return model.submitForm()
	}

	previousField := form.focusedPickerField()
	form.modal.Update(message)

	// Leaving an endpoint field abandons its pending lookup.
	currentField := form.focusedPickerField()
	if previousField != "" && currentField != previousField {
		form.resolverFor(previousField).Reset()
		form.picker = nil
	}

	// Editing an endpoint field invalidates the previous selection and
	// re-arms the debounced lookup for the new text.
	if currentField != "" && isEditingKey(message) {
		if currentField == pickerFrom {
			form.fromID = 0
		} else {
			form.toID = 0
		}
		form.modal.Fields[form.modal.Focus].Error = ""
		form.resolverFor(currentField).Input(form.modal.Value(form.modal.Focus))
	}

	return model, nil
}

// isEditingKey reports whether a key mutates the focused text field.
func isEditingKey(message tea.KeyMsg) bool {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace, tea.KeyDelete:
		return true
	}
	return false
}

// selectPickerCandidate commits the highlighted lookup candidate to
// the focused endpoint field.
func (model Model) selectPickerCandidate() {
	form := model.form
	selected := form.picker.Selected()
	id, err := strconv.ParseInt(selected.Value, 10, 64)
	if err != nil {
		return
	}

	field := form.picker.Field
	if field == pickerFrom {
		form.fromID = id
	} else {
		form.toID = id
	}

	fieldIndex := fieldTransportationFrom
	if field == pickerTo {
		fieldIndex = fieldTransportationTo
	}
	form.modal.SetValue(fieldIndex, selected.Label)
	form.modal.Fields[fieldIndex].Error = ""
	form.picker = nil
	form.resolverFor(field).Reset()
}

// submitForm validates the open modal and issues the mutation.
func (model Model) submitForm() (tea.Model, tea.Cmd) {
	form := model.form
	form.modal.ClearErrors()

	switch form.tab {
	case TabLocations:
		request, ok := form.locationRequest()
		if !ok {
			return model, nil
		}
		form.submitting = true
		return model, submitLocation(model.service, form.editID, request)

	case TabTransportations:
		request, ok := form.transportationRequest()
		if !ok {
			return model, nil
		}
		form.submitting = true
		return model, submitTransportation(model.service, form.editID, request)
	}
	return model, nil
}

// locationRequest builds the create/update payload, writing validation
// messages into the fields when the form is incomplete.
func (form *entityForm) locationRequest() (api.LocationRequest, bool) {
	name := strings.TrimSpace(form.modal.Value(fieldLocationName))
	if name == "" {
		form.modal.Fields[fieldLocationName].Error = "required"
		return api.LocationRequest{}, false
	}

	return api.LocationRequest{
		Name:      name,
		Latitude:  parseDecimal(form.modal.Value(fieldLocationLatitude)),
		Longitude: parseDecimal(form.modal.Value(fieldLocationLongitude)),
	}, true
}

// transportationRequest builds the create/update payload. The name is
// required and both endpoints must be resolved through the picker;
// whether the two may coincide is the backend's rule, not ours.
func (form *entityForm) transportationRequest() (api.TransportationRequest, bool) {
	valid := true
	name := strings.TrimSpace(form.modal.Value(fieldTransportationName))
	if name == "" {
		form.modal.Fields[fieldTransportationName].Error = "required"
		valid = false
	}
	if form.fromID == 0 {
		form.modal.Fields[fieldTransportationFrom].Error = "select a location"
		valid = false
	}
	if form.toID == 0 {
		form.modal.Fields[fieldTransportationTo].Error = "select a location"
		valid = false
	}
	if !valid {
		return api.TransportationRequest{}, false
	}

	return api.TransportationRequest{
		Name:              name,
		FromLocationID:    form.fromID,
		ToLocationID:      form.toID,
		Type:              api.TransportationType(form.modal.Value(fieldTransportationType)),
		Price:             parseOptionalPrice(form.modal.Value(fieldTransportationPrice)),
		DurationInMinutes: parseOptionalMinutes(form.modal.Value(fieldTransportationDuration)),
	}, true
}

// parseDecimal parses a coordinate or price. Unparseable input
// (including empty) coerces to zero rather than erroring, matching
// how the backend treats missing numeric fields.
func parseDecimal(text string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}
	return value
}

// parseOptionalPrice returns nil for blank input so the field is
// omitted from the payload entirely.
func parseOptionalPrice(text string) *float64 {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	value := parseDecimal(text)
	return &value
}

// parseOptionalMinutes returns nil for blank input; unparseable
// non-blank input coerces to zero.
func parseOptionalMinutes(text string) *int64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		zero := int64(0)
		return &zero
	}
	return &value
}

func submitLocation(service Service, editID int64, request api.LocationRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if editID == 0 {
			created, err := service.CreateLocation(ctx, request)
			return mutationResultMsg{tab: TabLocations, id: created.ID, notice: "Location created", err: err}
		}
		updated, err := service.UpdateLocation(ctx, editID, request)
		return mutationResultMsg{tab: TabLocations, id: updated.ID, notice: "Location updated", err: err}
	}
}

func submitTransportation(service Service, editID int64, request api.TransportationRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if editID == 0 {
			created, err := service.CreateTransportation(ctx, request)
			return mutationResultMsg{tab: TabTransportations, id: created.ID, notice: "Transportation created", err: err}
		}
		updated, err := service.UpdateTransportation(ctx, editID, request)
		return mutationResultMsg{tab: TabTransportations, id: updated.ID, notice: "Transportation updated", err: err}
	}
}

// deleteEntity issues the delete for a confirmed two-phase delete.
func deleteEntity(service Service, tab Tab, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if tab == TabLocations {
			err := service.DeleteLocation(ctx, id)
			return mutationResultMsg{tab: TabLocations, notice: "Location deleted", err: err}
		}
		err := service.DeleteTransportation(ctx, id)
		return mutationResultMsg{tab: TabTransportations, notice: "Transportation deleted", err: err}
	}
}
