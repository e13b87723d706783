// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/routedeck/routedeck/lib/api"
	"github.com/routedeck/routedeck/lib/clock"
	"github.com/routedeck/routedeck/lib/lookup"
	"github.com/routedeck/routedeck/lib/tui"
)

// composerFocus identifies which part of the route composer has
// keyboard focus.
type composerFocus int

const (
	// composerFocusFrom means keystrokes edit the origin query.
	composerFocusFrom composerFocus = iota
	// composerFocusTo means keystrokes edit the destination query.
	composerFocusTo
	// composerFocusResults means navigation keys move through the
	// found routes.
	composerFocusResults
)

// ComposerModel is the route search pane: two endpoint pickers backed
// by debounced lookups, and a scrollable result list with expandable
// multi-leg itineraries.
type ComposerModel struct {
	service Service

	fromResolver *lookup.Resolver
	toResolver   *lookup.Resolver

	focus composerFocus

	fromQuery []rune
	toQuery   []rune

	// Resolved endpoints. Editing a query clears its selection; the
	// search only runs when both are set.
	fromSelected *api.SearchOption
	toSelected   *api.SearchOption

	// dropdown holds lookup candidates for the focused query field.
	dropdown *tui.DropdownOverlay

	// generation tags route searches so a stale response cannot
	// overwrite a newer result set.
	generation uint64
	searching  bool
	searched   bool
	routes     []api.Route

	hint string // Inline guidance, e.g. when a search is attempted too early.

	cursor       int
	expanded     map[int]bool
	scrollOffset int

	width  int
	height int
}

// newComposer wires the endpoint resolvers to the location search
// endpoint.
func newComposer(service Service, clk clock.Clock, debounce time.Duration) ComposerModel {
	return ComposerModel{
		service:      service,
		fromResolver: lookup.NewResolver(service.SearchLocations, clk, debounce),
		toResolver:   lookup.NewResolver(service.SearchLocations, clk, debounce),
		expanded:     make(map[int]bool),
	}
}

// SetSize records the pane dimensions for rendering and scrolling.
func (composer *ComposerModel) SetSize(width, height int) {
	composer.width = width
	composer.height = height
	composer.ensureCursorVisible()
}

// resolverFor maps a picker field name to its resolver.
func (composer *ComposerModel) resolverFor(field string) *lookup.Resolver {
	if field == pickerTo {
		return composer.toResolver
	}
	return composer.fromResolver
}

// focusedField returns the picker field name for the focused query
// input, or "" when the results list has focus.
func (composer *ComposerModel) focusedField() string {
	switch composer.focus {
	case composerFocusFrom:
		return pickerFrom
	case composerFocusTo:
		return pickerTo
	}
	return ""
}

// capturesText reports whether the composer currently owns printable
// keystrokes (an endpoint query field has focus).
func (composer *ComposerModel) capturesText() bool {
	return composer.focus == composerFocusFrom || composer.focus == composerFocusTo
}

// activeDropdown exposes the candidate overlay for view splicing.
func (composer *ComposerModel) activeDropdown() *tui.DropdownOverlay {
	return composer.dropdown
}

// ApplyLookup feeds a resolver event into the candidate dropdown.
// The resolver discards stale generations; candidates only show for
// the field that still has focus.
func (composer *ComposerModel) ApplyLookup(field string, event lookup.Event) {
	resolver := composer.resolverFor(field)
	if !resolver.Apply(event) {
		return
	}
	if composer.focusedField() != field {
		return
	}
	composer.showDropdown(field, resolver.Options())
}

func (composer *ComposerModel) showDropdown(field string, options []api.SearchOption) {
	if len(options) == 0 {
		composer.dropdown = nil
		return
	}

	dropdownOptions := make([]tui.DropdownOption, len(options))
	for index, option := range options {
		dropdownOptions[index] = tui.DropdownOption{
			Label: option.Name,
			Value: strconv.FormatInt(option.ID, 10),
		}
	}

	if composer.dropdown != nil && composer.dropdown.Field == field {
		composer.dropdown.SetOptions(dropdownOptions)
		composer.positionDropdown()
		return
	}
	composer.dropdown = &tui.DropdownOverlay{
		Options: dropdownOptions,
		Field:   field,
	}
	composer.positionDropdown()
}

// positionDropdown anchors the candidate overlay under its query
// field. Field row is the second content line (header above).
func (composer *ComposerModel) positionDropdown() {
	if composer.dropdown == nil {
		return
	}
	composer.dropdown.AnchorY = 3
	if composer.dropdown.Field == pickerTo {
		composer.dropdown.AnchorX = composer.fieldWidth() + 4
	} else {
		composer.dropdown.AnchorX = 1
	}
}

// fieldWidth is the rendered width of one endpoint input box.
func (composer *ComposerModel) fieldWidth() int {
	width := composer.width/2 - 4
	if width < 20 {
		width = 20
	}
	if width > 44 {
		width = 44
	}
	return width
}

// ApplyRoutes feeds a search outcome back into the composer. Returns
// a user-facing error message when the load failed, or "" on success
// or a discarded stale response.
func (composer *ComposerModel) ApplyRoutes(message routesLoadedMsg) string {
	if message.generation != composer.generation {
		return ""
	}
	composer.searching = false
	if message.err != nil {
		return userMessage(message.err)
	}

	composer.searched = true
	composer.routes = message.routes
	composer.cursor = 0
	composer.scrollOffset = 0
	composer.expanded = make(map[int]bool)
	return ""
}

// HandleKey processes a keypress while the routes tab is active.
func (composer ComposerModel) HandleKey(message tea.KeyMsg, keys KeyMap) (ComposerModel, tea.Cmd) {
	composer.hint = ""

	if key.Matches(message, keys.FocusNext) {
		composer.leaveQueryField()
		composer.focus = (composer.focus + 1) % 3
		return composer, nil
	}

	if composer.focus == composerFocusResults {
		return composer.handleResultsKey(message, keys)
	}
	return composer.handleQueryKey(message)
}

// leaveQueryField abandons any pending lookup when focus moves away
// from a query input.
func (composer *ComposerModel) leaveQueryField() {
	if field := composer.focusedField(); field != "" {
		composer.resolverFor(field).Reset()
	}
	composer.dropdown = nil
}

// handleQueryKey edits the focused endpoint query and drives its
// candidate dropdown.
func (composer ComposerModel) handleQueryKey(message tea.KeyMsg) (ComposerModel, tea.Cmd) {
	field := composer.focusedField()
	query := &composer.fromQuery
	selected := &composer.fromSelected
	if composer.focus == composerFocusTo {
		query = &composer.toQuery
		selected = &composer.toSelected
	}

	switch message.Type {
	case tea.KeyUp:
		if composer.dropdown != nil {
			composer.dropdown.MoveUp()
		}
		return composer, nil

	case tea.KeyDown:
		if composer.dropdown != nil {
			composer.dropdown.MoveDown()
		}
		return composer, nil

	case tea.KeyEnter:
		if composer.dropdown != nil {
			composer.selectCandidate(query, selected)
			return composer, nil
		}
		return composer.triggerSearch()

	case tea.KeyEscape:
		if composer.dropdown != nil {
			composer.dropdown = nil
			return composer, nil
		}
		*query = nil
		*selected = nil
		composer.resolverFor(field).Input("")
		return composer, nil

	case tea.KeyBackspace:
		if len(*query) > 0 {
			*query = (*query)[:len(*query)-1]
			*selected = nil
			composer.resolverFor(field).Input(string(*query))
			if len([]rune(string(*query))) < lookup.MinQueryLength {
				composer.dropdown = nil
			}
		}
		return composer, nil

	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			*query = append(*query, character)
		}
		*selected = nil
		composer.resolverFor(field).Input(string(*query))
		return composer, nil
	}

	return composer, nil
}

// selectCandidate commits the highlighted candidate as the endpoint.
func (composer *ComposerModel) selectCandidate(query *[]rune, selected **api.SearchOption) {
	option := composer.dropdown.Selected()
	id, err := strconv.ParseInt(option.Value, 10, 64)
	if err != nil {
		return
	}
	*selected = &api.SearchOption{ID: id, Name: option.Label}
	*query = []rune(option.Label)
	composer.resolverFor(composer.dropdown.Field).Reset()
	composer.dropdown = nil
}

// handleResultsKey navigates the route list and toggles itinerary
// expansion.
func (composer ComposerModel) handleResultsKey(message tea.KeyMsg, keys KeyMap) (ComposerModel, tea.Cmd) {
	switch {
	case key.Matches(message, keys.Up):
		if composer.cursor > 0 {
			composer.cursor--
			composer.ensureCursorVisible()
		}

	case key.Matches(message, keys.Down):
		if composer.cursor < len(composer.routes)-1 {
			composer.cursor++
			composer.ensureCursorVisible()
		}

	case key.Matches(message, keys.Expand):
		if len(composer.routes) > 0 {
			composer.expanded[composer.cursor] = !composer.expanded[composer.cursor]
			composer.ensureCursorVisible()
		}

	case key.Matches(message, keys.Search):
		return composer.triggerSearch()
	}
	return composer, nil
}

// triggerSearch runs the route search when both endpoints are
// resolved; otherwise it surfaces an inline hint.
func (composer ComposerModel) triggerSearch() (ComposerModel, tea.Cmd) {
	if composer.fromSelected == nil || composer.toSelected == nil {
		composer.hint = "Select both an origin and a destination first"
		return composer, nil
	}

	composer.generation++
	composer.searching = true
	return composer, searchRoutes(composer.service, composer.generation,
		composer.fromSelected.ID, composer.toSelected.ID)
}

// rangeLabel returns the header's right-side text for the routes tab.
func (composer *ComposerModel) rangeLabel() string {
	switch {
	case composer.searching:
		return "searching…"
	case !composer.searched:
		return ""
	case len(composer.routes) == 1:
		return "1 route"
	default:
		return fmt.Sprintf("%d routes", len(composer.routes))
	}
}

// routeHeight returns the number of rendered lines for a route row:
// one header line, plus the itinerary when expanded.
func (composer *ComposerModel) routeHeight(index int) int {
	if !composer.expanded[index] {
		return 1
	}
	legs := len(composer.routes[index].Transportations)
	// Header + origin/leg pairs + terminal marker + totals line.
	return 1 + legs*2 + 2
}

// cursorLine returns the flattened line index of the cursor's route
// header within the result list.
func (composer *ComposerModel) cursorLine() int {
	line := 0
	for index := 0; index < composer.cursor && index < len(composer.routes); index++ {
		line += composer.routeHeight(index)
	}
	return line
}

// resultViewHeight is the number of result lines visible under the
// endpoint fields and their chrome.
func (composer *ComposerModel) resultViewHeight() int {
	height := composer.height - 4
	if height < 1 {
		height = 1
	}
	return height
}

// ensureCursorVisible scrolls the result list so the cursor's route
// header (and as much of its itinerary as fits) is on screen.
func (composer *ComposerModel) ensureCursorVisible() {
	visible := composer.resultViewHeight()
	line := composer.cursorLine()
	if line < composer.scrollOffset {
		composer.scrollOffset = line
	}
	bottom := line + composer.routeHeight(composer.cursor)
	if bottom > composer.scrollOffset+visible {
		composer.scrollOffset = bottom - visible
		if composer.scrollOffset > line {
			composer.scrollOffset = line
		}
	}
}

// View renders the composer pane: endpoint fields, then the result
// list with a scrollbar.
func (composer ComposerModel) View(theme tui.Theme, keys KeyMap) string {
	var sections []string
	sections = append(sections, "")
	sections = append(sections, composer.renderFields(theme))
	sections = append(sections, "")

	resultLines := composer.renderResults(theme)

	visible := composer.resultViewHeight()
	offset := composer.scrollOffset
	if offset > len(resultLines) {
		offset = len(resultLines)
	}
	end := offset + visible
	if end > len(resultLines) {
		end = len(resultLines)
	}
	window := resultLines[offset:end]

	scrollbar := tui.RenderScrollbar(theme, visible,
		len(resultLines), visible, offset,
		composer.focus == composerFocusResults)

	contentStyle := lipgloss.NewStyle().
		Width(composer.width - 2).
		Height(visible)
	content := lipgloss.JoinHorizontal(lipgloss.Top,
		contentStyle.Render(strings.Join(window, "\n")),
		scrollbar,
	)
	sections = append(sections, content)

	return strings.Join(sections, "\n")
}

// renderFields renders the From and To inputs side by side.
func (composer ComposerModel) renderFields(theme tui.Theme) string {
	return " " + composer.renderField(theme, "From", composer.fromQuery,
		composer.fromSelected, composer.focus == composerFocusFrom) +
		"  " + composer.renderField(theme, "To", composer.toQuery,
		composer.toSelected, composer.focus == composerFocusTo)
}

func (composer ComposerModel) renderField(theme tui.Theme, label string, query []rune, selected *api.SearchOption, focused bool) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	if focused {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	}

	valueStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	if selected != nil {
		valueStyle = lipgloss.NewStyle().Foreground(theme.SuccessNotice)
	}

	text := string(query)
	width := composer.fieldWidth()
	value := valueStyle.Render(text)
	if focused {
		value += lipgloss.NewStyle().Reverse(true).Render(" ")
	}
	filler := width - len([]rune(text))
	if focused {
		filler--
	}
	if filler > 0 {
		value += lipgloss.NewStyle().
			Foreground(theme.BorderColor).
			Render(strings.Repeat("·", filler))
	}

	return labelStyle.Render(label+":") + " " + value
}

// renderResults renders the flattened result list lines.
func (composer ComposerModel) renderResults(theme tui.Theme) []string {
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	if composer.hint != "" {
		return []string{faint.Render(" " + composer.hint)}
	}
	if composer.searching {
		return []string{faint.Render(" searching…")}
	}
	if !composer.searched {
		return []string{faint.Render(" Pick an origin and a destination, then press Enter.")}
	}
	if len(composer.routes) == 0 {
		return []string{faint.Render(fmt.Sprintf(" No route found between %s and %s.",
			composer.endpointName(composer.fromSelected), composer.endpointName(composer.toSelected)))}
	}

	var lines []string
	for index, route := range composer.routes {
		lines = append(lines, composer.renderRouteHeader(theme, index, route))
		if composer.expanded[index] {
			lines = append(lines, composer.renderItinerary(theme, route)...)
		}
	}
	return lines
}

func (composer ComposerModel) endpointName(option *api.SearchOption) string {
	if option == nil {
		return "?"
	}
	return option.Name
}

// renderRouteHeader renders the one-line route summary: the stop
// chain, leg count, and totals.
func (composer ComposerModel) renderRouteHeader(theme tui.Theme, index int, route api.Route) string {
	selected := index == composer.cursor && composer.focus == composerFocusResults

	marker := "▸"
	if composer.expanded[index] {
		marker = "▾"
	}

	style := lipgloss.NewStyle().Foreground(theme.NormalText)
	if selected {
		style = lipgloss.NewStyle().
			Foreground(theme.SelectedForeground).
			Background(theme.SelectedBackground)
	}
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	if selected {
		faint = style
	}

	legs := len(route.Transportations)
	legLabel := fmt.Sprintf("%d legs", legs)
	if legs == 1 {
		legLabel = "1 leg"
	}

	summary := fmt.Sprintf(" %s %s", marker, routeEndpoints(route))
	details := "  " + legLabel
	if route.TotalDuration != nil {
		details += "  " + formatDuration(route.TotalDuration)
	}
	if route.TotalPrice != nil {
		details += "  " + formatPrice(route.TotalPrice)
	}

	return style.Render(summary) + faint.Render(details)
}

// routeEndpoints renders the collapsed row's identity: the route's
// origin and final destination. Intermediate stops only appear in the
// expanded itinerary.
func routeEndpoints(route api.Route) string {
	legs := route.Transportations
	if len(legs) == 0 {
		return ""
	}
	return legs[0].FromLocation.Name + " → " + legs[len(legs)-1].ToLocation.Name
}

// renderItinerary renders the expanded leg-by-leg view: each stop with
// a marker, the leg details between stops, the terminal destination
// marker, and the route totals.
func (composer ComposerModel) renderItinerary(theme tui.Theme, route api.Route) []string {
	stopStyle := lipgloss.NewStyle().Foreground(theme.NormalText).Bold(true)
	originMarker := lipgloss.NewStyle().Foreground(theme.MarkerOrigin).Render("●")
	terminalMarker := lipgloss.NewStyle().Foreground(theme.MarkerDestination).Render("◉")
	connector := lipgloss.NewStyle().Foreground(theme.BorderColor).Render("│")
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	var lines []string
	for _, leg := range route.Transportations {
		lines = append(lines, "   "+originMarker+" "+stopStyle.Render(leg.FromLocation.Name))

		typeStyle := lipgloss.NewStyle().Foreground(theme.TypeColor(leg.Type))
		detail := "   " + connector + "   "
		if leg.Name != "" {
			detail += lipgloss.NewStyle().Foreground(theme.NormalText).Render(leg.Name) + " "
		}
		detail += typeStyle.Render("(" + string(leg.Type) + ")")
		if leg.DurationInMinutes != nil {
			detail += faint.Render("  " + formatDuration(leg.DurationInMinutes))
		}
		if leg.Price != nil {
			detail += faint.Render("  " + formatPrice(leg.Price))
		}
		lines = append(lines, detail)
	}

	if last := len(route.Transportations) - 1; last >= 0 {
		lines = append(lines, "   "+terminalMarker+" "+stopStyle.Render(route.Transportations[last].ToLocation.Name))
	}

	totals := "     Total:"
	if route.TotalDuration != nil {
		totals += "  " + formatDuration(route.TotalDuration)
	}
	if route.TotalPrice != nil {
		totals += "  " + formatPrice(route.TotalPrice)
	}
	lines = append(lines, faint.Render(totals))

	return lines
}
