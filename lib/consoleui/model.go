// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/routedeck/routedeck/lib/api"
	"github.com/routedeck/routedeck/lib/clock"
	"github.com/routedeck/routedeck/lib/pager"
	"github.com/routedeck/routedeck/lib/tui"
)

// Tab identifies which view is active.
type Tab int

const (
	// TabLocations shows the paginated location list.
	TabLocations Tab = iota
	// TabTransportations shows the paginated transportation list.
	TabTransportations
	// TabRoutes shows the route composer.
	TabRoutes
)

// FocusRegion identifies where keyboard input routes on the entity
// tabs. The route composer tracks its own internal focus.
type FocusRegion int

const (
	// FocusList means navigation keys move the entity list cursor.
	FocusList FocusRegion = iota
	// FocusFilter means keystrokes go to the filter input.
	FocusFilter
	// FocusForm means a create/edit modal is active and all keyboard
	// input routes to it until submit or cancel.
	FocusForm
)

// armedDelete records a pending two-phase delete: the first press of
// the delete key arms it, the second press on the same row confirms.
// Any other action disarms.
type armedDelete struct {
	tab   Tab
	id    int64
	label string
}

// Options configures a Model. Zero values fall back to defaults.
type Options struct {
	PageSize         int
	DebounceInterval time.Duration
	Clock            clock.Clock
	Logger           *slog.Logger
}

// Model is the top-level bubbletea model for the console.
type Model struct {
	service Service
	theme   tui.Theme
	keys    KeyMap
	logger  *slog.Logger

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	activeTab   Tab
	focusRegion FocusRegion

	locations            *pager.Controller[api.Location]
	transportations      *pager.Controller[api.Transportation]
	locationCursor       int
	transportationCursor int

	filter FilterModel

	// form is non-nil while a create/edit modal is open.
	form *entityForm

	// armed is non-nil while a delete is waiting for confirmation.
	armed *armedDelete

	// Status bar notice. The sequence number ties each fade timer to
	// the notice it was scheduled for.
	notice    string
	noticeErr bool
	noticeSeq int

	// Row glow for recently-mutated entities.
	heatTracker *tui.HeatTracker
	tickRunning bool

	composer ComposerModel
}

// NewModel creates a Model driving the given backend service.
func NewModel(service Service, options Options) Model {
	if options.PageSize <= 0 {
		options.PageSize = 10
	}
	if options.DebounceInterval <= 0 {
		options.DebounceInterval = 300 * time.Millisecond
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}

	return Model{
		service:         service,
		theme:           tui.DefaultTheme,
		keys:            DefaultKeyMap,
		logger:          options.Logger,
		locations:       pager.New[api.Location](options.PageSize),
		transportations: pager.New[api.Transportation](options.PageSize),
		heatTracker:     tui.NewHeatTracker(),
		composer:        newComposer(service, options.Clock, options.DebounceInterval),
	}
}

// Init implements tea.Model. Kicks off the first location page load
// and starts listening for endpoint lookup events.
func (model Model) Init() tea.Cmd {
	generation := model.locations.StartLoad(0)
	return tea.Batch(
		loadLocations(model.service, generation, 0, model.locations.PageSize()),
		listenForLookupEvent(pickerFrom, model.composer.fromResolver.Events()),
		listenForLookupEvent(pickerTo, model.composer.toResolver.Events()),
	)
}

// Update implements tea.Model. Routes keyboard events based on the
// active tab and focus region, and feeds asynchronous results back
// into the owning state machines.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.composer.SetSize(message.Width, message.Height-4)
		return model, nil

	case locationsLoadedMsg:
		applied, err := model.locations.Apply(message.generation, message.page, message.err)
		if err != nil {
			model.logger.Error("location page load failed", "error", err)
			return model.setErrorNotice(userMessage(err))
		}
		if applied {
			model.clampCursor()
		}
		return model, nil

	case transportationsLoadedMsg:
		applied, err := model.transportations.Apply(message.generation, message.page, message.err)
		if err != nil {
			model.logger.Error("transportation page load failed", "error", err)
			return model.setErrorNotice(userMessage(err))
		}
		if applied {
			model.clampCursor()
		}
		return model, nil

	case mutationResultMsg:
		return model.handleMutationResult(message)

	case routesLoadedMsg:
		notice := model.composer.ApplyRoutes(message)
		if notice != "" {
			model.logger.Error("route search failed", "error", message.err)
			return model.setErrorNotice(notice)
		}
		return model, nil

	case lookupEventMsg:
		// Re-arm the listener no matter what; the event itself only
		// applies when it is still the latest issued generation.
		rearm := listenForLookupEvent(message.field, model.composer.resolverFor(message.field).Events())
		if model.form != nil {
			model.form.ApplyLookup(message.field, message.event)
		} else {
			model.composer.ApplyLookup(message.field, message.event)
		}
		return model, rearm

	case noticeFadeMsg:
		if message.seq == model.noticeSeq && !model.noticeErr {
			model.notice = ""
		}
		return model, nil

	case heatTickMsg:
		if model.heatTracker.HasHot(time.Now()) {
			return model, scheduleHeatTick()
		}
		model.tickRunning = false
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)
	}

	return model, nil
}

// handleKey routes a keypress to the active overlay, filter, composer,
// or entity list.
func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.form != nil {
		return model.handleFormKeys(message)
	}
	if model.focusRegion == FocusFilter {
		return model.handleFilterKeys(message)
	}

	// A focused endpoint query swallows printable keys, so only the
	// non-typing quit chord stays global there.
	if model.activeTab == TabRoutes && model.composer.capturesText() {
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}
		var cmd tea.Cmd
		model.composer, cmd = model.composer.HandleKey(message, model.keys)
		return model, cmd
	}

	// Global bindings available everywhere outside overlays.
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.TabLocations):
		return model.switchTab(TabLocations)
	case key.Matches(message, model.keys.TabTransportations):
		return model.switchTab(TabTransportations)
	case key.Matches(message, model.keys.TabRoutes):
		return model.switchTab(TabRoutes)
	}

	if model.activeTab == TabRoutes {
		var cmd tea.Cmd
		model.composer, cmd = model.composer.HandleKey(message, model.keys)
		return model, cmd
	}

	return model.handleListKeys(message)
}

// handleListKeys processes keys on the entity tabs. Every action other
// than the confirming delete press disarms a pending delete.
func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.disarm()
		model.moveCursor(-1)

	case key.Matches(message, model.keys.Down):
		model.disarm()
		model.moveCursor(1)

	case key.Matches(message, model.keys.PrevPage):
		model.disarm()
		return model.changePage(-1)

	case key.Matches(message, model.keys.NextPage):
		model.disarm()
		return model.changePage(1)

	case key.Matches(message, model.keys.Refresh):
		model.disarm()
		return model.refreshActive()

	case key.Matches(message, model.keys.FilterActivate):
		model.disarm()
		model.filter.Active = true
		model.focusRegion = FocusFilter

	case key.Matches(message, model.keys.FilterClear):
		model.disarm()
		if model.filter.Input != "" {
			model.filter.Clear()
			model.clampCursor()
		}

	case key.Matches(message, model.keys.Add):
		model.disarm()
		return model.openCreateForm()

	case key.Matches(message, model.keys.Edit):
		model.disarm()
		return model.openEditForm()

	case key.Matches(message, model.keys.Delete):
		return model.handleDelete()

	default:
		model.disarm()
	}

	return model, nil
}

// handleFilterKeys processes keys while the filter input has focus.
func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape:
		model.filter.Clear()
		model.focusRegion = FocusList
		model.clampCursor()

	case tea.KeyEnter:
		// Keep the filter text, return focus to the list.
		model.filter.Active = false
		model.focusRegion = FocusList

	case tea.KeyBackspace:
		if model.filter.HandleBackspace() {
			model.clampCursor()
		}

	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			model.filter.HandleRune(character)
		}
		model.clampCursor()
	}

	return model, nil
}

// handleDelete implements the two-phase delete: first press arms,
// second press on the same row confirms and issues the request.
func (model Model) handleDelete() (tea.Model, tea.Cmd) {
	id, label, ok := model.selectedEntity()
	if !ok {
		return model, nil
	}

	if model.armed != nil && model.armed.tab == model.activeTab && model.armed.id == id {
		model.armed = nil
		return model, deleteEntity(model.service, model.activeTab, id)
	}

	model.armed = &armedDelete{tab: model.activeTab, id: id, label: label}
	return model, nil
}

// handleMutationResult processes the outcome of a create, update, or
// delete: close the form on success, surface the error otherwise, and
// refresh the affected tab so the list reflects backend state.
func (model Model) handleMutationResult(message mutationResultMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		model.logger.Error("mutation failed", "error", message.err)
		if model.form != nil {
			model.form.submitting = false
		}
		return model.setErrorNotice(userMessage(message.err))
	}

	if model.form != nil && model.form.tab == message.tab {
		model.form.Close()
		model.form = nil
		model.focusRegion = FocusList
	}

	var cmds []tea.Cmd
	if message.id != 0 {
		model.heatTracker.Ignite(message.id, time.Now())
		if !model.tickRunning {
			model.tickRunning = true
			cmds = append(cmds, scheduleHeatTick())
		}
	}

	updated, noticeCmd := model.setSuccessNotice(message.notice)
	model = updated
	cmds = append(cmds, noticeCmd)

	switch message.tab {
	case TabLocations:
		generation := model.locations.Refresh()
		cmds = append(cmds, loadLocations(model.service, generation, model.locations.Page(), model.locations.PageSize()))
	case TabTransportations:
		generation := model.transportations.Refresh()
		cmds = append(cmds, loadTransportations(model.service, generation, model.transportations.Page(), model.transportations.PageSize()))
	}

	return model, tea.Batch(cmds...)
}

// switchTab changes the active tab, loading its first page if it has
// never been loaded.
func (model Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	model.disarm()
	model.activeTab = tab
	model.focusRegion = FocusList

	switch tab {
	case TabTransportations:
		if model.transportations.Meta() == nil && !model.transportations.Loading() {
			generation := model.transportations.StartLoad(0)
			return model, loadTransportations(model.service, generation, 0, model.transportations.PageSize())
		}
	case TabLocations:
		if model.locations.Meta() == nil && !model.locations.Loading() {
			generation := model.locations.StartLoad(0)
			return model, loadLocations(model.service, generation, 0, model.locations.PageSize())
		}
	}
	return model, nil
}

// changePage moves the active entity tab by delta pages. Out-of-range
// moves are a no-op.
func (model Model) changePage(delta int) (tea.Model, tea.Cmd) {
	switch model.activeTab {
	case TabLocations:
		generation, ok := model.locations.GoToPage(model.locations.Page() + delta)
		if !ok {
			return model, nil
		}
		model.locationCursor = 0
		return model, loadLocations(model.service, generation, model.locations.Page(), model.locations.PageSize())
	case TabTransportations:
		generation, ok := model.transportations.GoToPage(model.transportations.Page() + delta)
		if !ok {
			return model, nil
		}
		model.transportationCursor = 0
		return model, loadTransportations(model.service, generation, model.transportations.Page(), model.transportations.PageSize())
	}
	return model, nil
}

// refreshActive reloads the active tab's current page.
func (model Model) refreshActive() (tea.Model, tea.Cmd) {
	switch model.activeTab {
	case TabLocations:
		generation := model.locations.Refresh()
		return model, loadLocations(model.service, generation, model.locations.Page(), model.locations.PageSize())
	case TabTransportations:
		generation := model.transportations.Refresh()
		return model, loadTransportations(model.service, generation, model.transportations.Page(), model.transportations.PageSize())
	}
	return model, nil
}

// disarm cancels any pending delete confirmation.
func (model *Model) disarm() {
	model.armed = nil
}

// setSuccessNotice shows a fading status bar notice.
func (model Model) setSuccessNotice(text string) (Model, tea.Cmd) {
	model.notice = text
	model.noticeErr = false
	model.noticeSeq++
	return model, scheduleNoticeFade(model.noticeSeq)
}

// setErrorNotice shows a sticky error notice. Errors stay visible
// until the next notice replaces them.
func (model Model) setErrorNotice(text string) (Model, tea.Cmd) {
	model.notice = text
	model.noticeErr = true
	model.noticeSeq++
	return model, nil
}

// userMessage extracts a presentable message from an error: backend
// error envelopes render their first message, everything else renders
// verbatim.
func userMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}

// View implements tea.Model. Renders the active tab with the header,
// content area, and status bar, then splices any active overlays.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	var sections []string

	// Top chrome line: either the tab bar or the filter bar. The
	// filter bar replaces the tab bar so the layout doesn't shift.
	filterView := ""
	if model.activeTab != TabRoutes {
		filterView = model.filter.View(model.theme, model.width)
	}
	if filterView != "" {
		sections = append(sections, filterView)
	} else {
		sections = append(sections, model.renderHeader())
	}

	switch model.activeTab {
	case TabLocations:
		sections = append(sections, model.renderLocationList())
	case TabTransportations:
		sections = append(sections, model.renderTransportationList())
	case TabRoutes:
		sections = append(sections, model.composer.View(model.theme, model.keys))
	}

	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))
	sections = append(sections, separator)
	sections = append(sections, model.renderStatusBar())

	output := strings.Join(sections, "\n")

	if model.form != nil {
		modalLines, anchorX, anchorY := model.form.modal.Render(model.width, model.height)
		output = tui.SpliceOverlay(output, modalLines, anchorX, anchorY)
		if picker := model.form.picker; picker != nil {
			// Anchor the candidate list just under the focused field:
			// border (1) + title (1) + blank (1) above the field rows.
			picker.AnchorX = anchorX + 4
			picker.AnchorY = anchorY + 3 + model.form.modal.Focus + 1
			output = tui.SpliceOverlay(output, picker.Render(model.theme), picker.AnchorX, picker.AnchorY)
		}
	} else if model.activeTab == TabRoutes {
		if dropdown := model.composer.activeDropdown(); dropdown != nil {
			dropdownLines := dropdown.Render(model.theme)
			output = tui.SpliceOverlay(output, dropdownLines, dropdown.AnchorX, dropdown.AnchorY)
		}
	}

	return output
}

// tabDefs is the fixed list of tab definitions for the header bar.
var tabDefs = []struct {
	label string
	tab   Tab
}{
	{"1:Locations", TabLocations},
	{"2:Transportations", TabTransportations},
	{"3:Routes", TabRoutes},
}

// renderHeader renders the combined tab bar + separator as a single
// line in the btop style: tab labels embedded in a horizontal rule
// with the active tab's range label on the right.
func (model Model) renderHeader() string {
	separatorStyle := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor)
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.Accent)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)
	statsStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)

	sep := separatorStyle.Render("─")

	leftParts := sep + sep + sep
	cursor := 3

	for index, tabDef := range tabDefs {
		leftParts += " "
		cursor++

		if model.activeTab == tabDef.tab {
			leftParts += activeStyle.Render(tabDef.label)
		} else {
			leftParts += inactiveStyle.Render(tabDef.label)
		}
		cursor += lipgloss.Width(tabDef.label)

		leftParts += " "
		cursor++

		sepCount := 3
		if index == len(tabDefs)-1 {
			sepCount = 1
		}
		for range sepCount {
			leftParts += sep
			cursor++
		}
	}

	statsText := model.rangeLabel()
	statsRendered := statsStyle.Render(statsText)
	statsWidth := lipgloss.Width(statsText)

	rightPortion := " " + statsRendered + " " + sep
	rightWidth := 1 + statsWidth + 1 + 1

	fillCount := model.width - cursor - rightWidth
	if fillCount < 1 {
		fillCount = 1
	}
	fill := ""
	for range fillCount {
		fill += sep
	}

	return leftParts + fill + rightPortion
}

// rangeLabel returns the header's right-side text for the active tab.
func (model Model) rangeLabel() string {
	switch model.activeTab {
	case TabLocations:
		if model.locations.Loading() {
			return "loading…"
		}
		return model.locations.RangeLabel()
	case TabTransportations:
		if model.transportations.Loading() {
			return "loading…"
		}
		return model.transportations.RangeLabel()
	default:
		return model.composer.rangeLabel()
	}
}

// renderStatusBar renders the bottom bar with key hints, a pending
// delete confirmation, and the latest notice.
func (model Model) renderStatusBar() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	var help string
	switch {
	case model.form != nil:
		help = " Enter save  Tab next field  Esc cancel"
	case model.focusRegion == FocusFilter:
		help = " type to filter  Enter keep  Esc clear"
	case model.activeTab == TabRoutes:
		help = " Tab field  type to search locations  Enter search  Space expand  1/2/3 tabs  q quit"
	default:
		help = " a add  e edit  d delete  r refresh  / filter  h/l pages  1/2/3 tabs  q quit"
	}

	if model.armed != nil {
		confirmStyle := lipgloss.NewStyle().
			Foreground(model.theme.ErrorNotice).
			Bold(true)
		help += "  " + confirmStyle.Render(fmt.Sprintf("Delete %s? d confirms", model.armed.label))
	}

	if model.notice != "" {
		color := model.theme.SuccessNotice
		if model.noticeErr {
			color = model.theme.ErrorNotice
		}
		noticeStyle := lipgloss.NewStyle().
			Foreground(color).
			Bold(true)
		help += "  " + noticeStyle.Render(model.notice)
	}

	return style.Render(help)
}
