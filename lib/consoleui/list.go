// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/routedeck/routedeck/lib/api"
)

// Column widths for the entity tables.
const (
	columnID            = 5
	columnName          = 30
	columnNumber        = 12
	columnTransportName = 16
	columnEndpoint      = 38
	columnType          = 8
	columnMoney         = 10
)

// locationSearchTexts returns the filterable text for each location
// row: the name.
func locationSearchTexts(items []api.Location) []string {
	texts := make([]string, len(items))
	for index, item := range items {
		texts[index] = item.Name
	}
	return texts
}

// transportationSearchTexts returns the filterable text for each
// transportation row. The displayed endpoint label is the prefix so
// that match positions line up with the rendered route column; the
// name and type are appended so they are filterable even though their
// matches aren't highlighted.
func transportationSearchTexts(items []api.Transportation) []string {
	texts := make([]string, len(items))
	for index, item := range items {
		texts[index] = endpointLabel(item) + " " + item.Name + " " + string(item.Type)
	}
	return texts
}

// activeMatches returns the filtered row set for the active entity
// tab: indexes into the current page's items plus match highlights.
func (model Model) activeMatches() []filterMatch {
	switch model.activeTab {
	case TabLocations:
		return applyFilter(model.filter.Input, locationSearchTexts(model.locations.Items()))
	case TabTransportations:
		return applyFilter(model.filter.Input, transportationSearchTexts(model.transportations.Items()))
	}
	return nil
}

// cursorRef returns a pointer to the active tab's cursor.
func (model *Model) cursorRef() *int {
	if model.activeTab == TabTransportations {
		return &model.transportationCursor
	}
	return &model.locationCursor
}

// clampCursor keeps the cursor within the filtered row set after a
// page load or filter change.
func (model *Model) clampCursor() {
	matches := model.activeMatches()
	cursor := model.cursorRef()
	if *cursor >= len(matches) {
		*cursor = len(matches) - 1
	}
	if *cursor < 0 {
		*cursor = 0
	}
}

// moveCursor moves the selection within the filtered row set.
func (model *Model) moveCursor(delta int) {
	matches := model.activeMatches()
	if len(matches) == 0 {
		return
	}
	cursor := model.cursorRef()
	*cursor += delta
	if *cursor < 0 {
		*cursor = 0
	}
	if *cursor >= len(matches) {
		*cursor = len(matches) - 1
	}
}

// selectedLocation returns the location under the cursor.
func (model Model) selectedLocation() (api.Location, bool) {
	if model.activeTab != TabLocations {
		return api.Location{}, false
	}
	matches := model.activeMatches()
	if model.locationCursor < 0 || model.locationCursor >= len(matches) {
		return api.Location{}, false
	}
	return model.locations.Items()[matches[model.locationCursor].Index], true
}

// selectedTransportation returns the transportation under the cursor.
func (model Model) selectedTransportation() (api.Transportation, bool) {
	if model.activeTab != TabTransportations {
		return api.Transportation{}, false
	}
	matches := model.activeMatches()
	if model.transportationCursor < 0 || model.transportationCursor >= len(matches) {
		return api.Transportation{}, false
	}
	return model.transportations.Items()[matches[model.transportationCursor].Index], true
}

// selectedEntity returns the ID and display label of the row under
// the cursor on the active entity tab.
func (model Model) selectedEntity() (int64, string, bool) {
	switch model.activeTab {
	case TabLocations:
		location, ok := model.selectedLocation()
		if !ok {
			return 0, "", false
		}
		return location.ID, location.Name, true
	case TabTransportations:
		transportation, ok := model.selectedTransportation()
		if !ok {
			return 0, "", false
		}
		return transportation.ID, endpointLabel(transportation), true
	}
	return 0, "", false
}

// endpointLabel renders "From → To" for a transportation row.
func endpointLabel(transportation api.Transportation) string {
	return transportation.FromLocation.Name + " → " + transportation.ToLocation.Name
}

// formatCoordinate renders a latitude or longitude without trailing
// zeros, matching the backend's JSON representation.
func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// formatPrice renders "$210.5" for a set price and a dash when unset.
func formatPrice(price *float64) string {
	if price == nil {
		return "—"
	}
	return "$" + strconv.FormatFloat(*price, 'f', -1, 64)
}

// formatDuration renders "185 min" for a set duration and a dash when
// unset.
func formatDuration(minutes *int64) string {
	if minutes == nil {
		return "—"
	}
	return fmt.Sprintf("%d min", *minutes)
}

// padColumn truncates or pads text to a fixed column width.
func padColumn(text string, width int) string {
	textWidth := ansi.StringWidth(text)
	if textWidth > width {
		return ansi.Truncate(text, width-1, "…") + " "
	}
	return text + strings.Repeat(" ", width-textWidth)
}

// highlightText styles text with highlight applied to matched rune
// positions, grouping consecutive runs to keep escape sequences down.
func highlightText(text string, positions []int, base, highlight lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(text)
	}

	matched := make(map[int]bool, len(positions))
	for _, position := range positions {
		matched[position] = true
	}

	runes := []rune(text)
	var builder strings.Builder
	runStart := 0
	runMatched := matched[0]
	flush := func(end int) {
		if end <= runStart {
			return
		}
		segment := string(runes[runStart:end])
		if runMatched {
			builder.WriteString(highlight.Render(segment))
		} else {
			builder.WriteString(base.Render(segment))
		}
	}
	for index := 1; index < len(runes); index++ {
		if matched[index] != runMatched {
			flush(index)
			runStart = index
			runMatched = matched[index]
		}
	}
	flush(len(runes))
	return builder.String()
}

// renderLocationList renders the locations table: header row, data
// rows with selection and heat styling, and a pagination footer.
func (model Model) renderLocationList() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground)

	header := " " + padColumn("ID", columnID) +
		padColumn("Name", columnName) +
		padColumn("Latitude", columnNumber) +
		padColumn("Longitude", columnNumber)

	lines := []string{headerStyle.Render(header)}

	matches := model.activeMatches()
	switch {
	case model.locations.Loading() && model.locations.Meta() == nil:
		lines = append(lines, model.faintLine(" loading…"))
	case model.locations.Empty():
		lines = append(lines, model.faintLine(" No locations yet — press a to add one"))
	case len(matches) == 0:
		lines = append(lines, model.faintLine(" No rows match the filter"))
	default:
		now := time.Now()
		items := model.locations.Items()
		for rowIndex, match := range matches {
			location := items[match.Index]
			selected := rowIndex == model.locationCursor

			row := " " + padColumn(strconv.FormatInt(location.ID, 10), columnID)
			base := lipgloss.NewStyle().Foreground(model.theme.NormalText)
			highlight := lipgloss.NewStyle().
				Foreground(model.theme.NormalText).
				Background(model.theme.SearchHighlightBackground)
			if selected {
				base = lipgloss.NewStyle().
					Foreground(model.theme.SelectedForeground).
					Background(model.theme.SelectedBackground)
				highlight = highlight.Foreground(model.theme.SelectedForeground)
			}

			name := highlightText(padColumn(location.Name, columnName), match.Positions, base, highlight)
			row += name
			row += padColumn(formatCoordinate(location.Latitude), columnNumber)
			row += padColumn(formatCoordinate(location.Longitude), columnNumber)

			lines = append(lines, model.styleRow(row, location.ID, selected, now))
		}
	}

	lines = append(lines, model.pageFooter(model.locations.Page(), model.locations.Meta() != nil, model.locationsTotalPages()))
	return strings.Join(lines, "\n")
}

// renderTransportationList renders the transportations table.
func (model Model) renderTransportationList() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground)

	header := " " + padColumn("ID", columnID) +
		padColumn("Name", columnTransportName) +
		padColumn("Route", columnEndpoint) +
		padColumn("Type", columnType) +
		padColumn("Price", columnMoney) +
		padColumn("Duration", columnMoney)

	lines := []string{headerStyle.Render(header)}

	matches := model.activeMatches()
	switch {
	case model.transportations.Loading() && model.transportations.Meta() == nil:
		lines = append(lines, model.faintLine(" loading…"))
	case model.transportations.Empty():
		lines = append(lines, model.faintLine(" No transportations yet — press a to add one"))
	case len(matches) == 0:
		lines = append(lines, model.faintLine(" No rows match the filter"))
	default:
		now := time.Now()
		items := model.transportations.Items()
		for rowIndex, match := range matches {
			transportation := items[match.Index]
			selected := rowIndex == model.transportationCursor

			base := lipgloss.NewStyle().Foreground(model.theme.NormalText)
			highlight := lipgloss.NewStyle().
				Foreground(model.theme.NormalText).
				Background(model.theme.SearchHighlightBackground)
			typeStyle := lipgloss.NewStyle().Foreground(model.theme.TypeColor(transportation.Type))
			if selected {
				base = lipgloss.NewStyle().
					Foreground(model.theme.SelectedForeground).
					Background(model.theme.SelectedBackground)
				highlight = highlight.Foreground(model.theme.SelectedForeground)
				typeStyle = base
			}

			row := " " + padColumn(strconv.FormatInt(transportation.ID, 10), columnID)
			row += base.Render(padColumn(transportation.Name, columnTransportName))
			row += highlightText(padColumn(endpointLabel(transportation), columnEndpoint), match.Positions, base, highlight)
			row += typeStyle.Render(padColumn(string(transportation.Type), columnType))
			row += base.Render(padColumn(formatPrice(transportation.Price), columnMoney))
			row += base.Render(padColumn(formatDuration(transportation.DurationInMinutes), columnMoney))

			lines = append(lines, model.styleRow(row, transportation.ID, selected, now))
		}
	}

	lines = append(lines, model.pageFooter(model.transportations.Page(), model.transportations.Meta() != nil, model.transportationsTotalPages()))
	return strings.Join(lines, "\n")
}

// styleRow applies the heat tint to recently-mutated rows. Selection
// highlight takes priority over heat.
func (model Model) styleRow(row string, id int64, selected bool, now time.Time) string {
	if selected {
		return row
	}
	if heat := model.heatTracker.Heat(id, now); heat > 0 {
		return lipgloss.NewStyle().
			Background(model.theme.HotAccent).
			Render(row)
	}
	return row
}

func (model Model) faintLine(text string) string {
	return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(text)
}

func (model Model) locationsTotalPages() int {
	if meta := model.locations.Meta(); meta != nil {
		return meta.TotalPages
	}
	return 0
}

func (model Model) transportationsTotalPages() int {
	if meta := model.transportations.Meta(); meta != nil {
		return meta.TotalPages
	}
	return 0
}

// pageFooter renders the pagination line under the table.
func (model Model) pageFooter(page int, loaded bool, totalPages int) string {
	style := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	if !loaded || totalPages == 0 {
		return style.Render("")
	}
	return style.Render(fmt.Sprintf(" ‹ h  page %d/%d  l ›", page+1, totalPages))
}
