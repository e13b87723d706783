// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FieldKind distinguishes free-text fields from fixed-choice fields.
type FieldKind int

const (
	// FieldText is a single-line text input.
	FieldText FieldKind = iota
	// FieldChoice cycles through a fixed set of values with left/right.
	FieldChoice
)

// FormField is one labeled input in a form modal.
type FormField struct {
	Label   string
	Kind    FieldKind
	Choices []string // FieldChoice only.
	Choice  int      // Index into Choices.
	Error   string   // Validation message shown next to the field.

	value  []rune
	cursor int
}

// FormModal is a centered modal overlay holding a vertical stack of
// labeled single-line fields. It implements cursor tracking and field
// navigation; the owner decides what enter and escape mean and runs
// validation, writing messages into each field's Error.
type FormModal struct {
	// Title is shown in the modal header (e.g., "New Location",
	// "Edit Transportation #12").
	Title string

	Fields []FormField
	Focus  int // Index of the focused field.

	theme Theme
}

// NewFormModal creates a FormModal with the given fields. The first
// field starts focused.
func NewFormModal(title string, theme Theme, fields ...FormField) FormModal {
	return FormModal{
		Title:  title,
		Fields: fields,
		theme:  theme,
	}
}

// Value returns the text content of a field. For choice fields it
// returns the selected choice.
func (modal *FormModal) Value(index int) string {
	field := &modal.Fields[index]
	if field.Kind == FieldChoice {
		if len(field.Choices) == 0 {
			return ""
		}
		return field.Choices[field.Choice]
	}
	return string(field.value)
}

// SetValue seeds a text field's content, placing the cursor at the
// end. Used when opening the modal in edit mode.
func (modal *FormModal) SetValue(index int, value string) {
	field := &modal.Fields[index]
	field.value = []rune(value)
	field.cursor = len(field.value)
}

// SetChoice selects the choice matching value. Unknown values leave
// the selection on the first choice.
func (modal *FormModal) SetChoice(index int, value string) {
	field := &modal.Fields[index]
	field.Choice = 0
	for choiceIndex, choice := range field.Choices {
		if choice == value {
			field.Choice = choiceIndex
			return
		}
	}
}

// ClearErrors wipes all validation messages. Called before
// re-validating on submit.
func (modal *FormModal) ClearErrors() {
	for index := range modal.Fields {
		modal.Fields[index].Error = ""
	}
}

// NextField moves focus down, wrapping to the top.
func (modal *FormModal) NextField() {
	modal.Focus = (modal.Focus + 1) % len(modal.Fields)
}

// PrevField moves focus up, wrapping to the bottom.
func (modal *FormModal) PrevField() {
	modal.Focus--
	if modal.Focus < 0 {
		modal.Focus = len(modal.Fields) - 1
	}
}

// Update processes a key message for the focused field. Enter and
// escape are not handled here; the owner intercepts them for submit
// and cancel.
func (modal *FormModal) Update(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyTab, tea.KeyDown:
		modal.NextField()
		return
	case tea.KeyShiftTab, tea.KeyUp:
		modal.PrevField()
		return
	}

	field := &modal.Fields[modal.Focus]
	if field.Kind == FieldChoice {
		switch message.Type {
		case tea.KeyLeft:
			field.Choice--
			if field.Choice < 0 {
				field.Choice = len(field.Choices) - 1
			}
		case tea.KeyRight, tea.KeySpace:
			field.Choice = (field.Choice + 1) % len(field.Choices)
		}
		return
	}

	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			newValue := make([]rune, len(field.value)+1)
			copy(newValue, field.value[:field.cursor])
			newValue[field.cursor] = character
			copy(newValue[field.cursor+1:], field.value[field.cursor:])
			field.value = newValue
			field.cursor++
		}

	case tea.KeyBackspace:
		if field.cursor > 0 {
			field.value = append(field.value[:field.cursor-1], field.value[field.cursor:]...)
			field.cursor--
		}

	case tea.KeyDelete:
		if field.cursor < len(field.value) {
			field.value = append(field.value[:field.cursor], field.value[field.cursor+1:]...)
		}

	case tea.KeyLeft:
		if field.cursor > 0 {
			field.cursor--
		}

	case tea.KeyRight:
		if field.cursor < len(field.value) {
			field.cursor++
		}

	case tea.KeyHome, tea.KeyCtrlA:
		field.cursor = 0

	case tea.KeyEnd, tea.KeyCtrlE:
		field.cursor = len(field.value)
	}
}

// Modal chrome overhead: 2 columns border + 2 columns padding = 4
// columns horizontal; 2 lines border + 1 title + 1 footer = 4 lines
// vertical. The field stack gets the remainder.
const (
	formModalChromeWidth = 4
	// Minimum inner width: label column plus a usable input area.
	formModalMinInnerWidth = 40
	formModalInnerWidth    = 52
)

// Render produces the modal overlay lines for splicing onto the view.
// Returns the rendered lines and the anchor position (top-left corner
// in screen coordinates).
func (modal FormModal) Render(screenWidth, screenHeight int) ([]string, int, int) {
	innerWidth := formModalInnerWidth
	if innerWidth+formModalChromeWidth > screenWidth {
		innerWidth = screenWidth - formModalChromeWidth
	}
	if innerWidth < formModalMinInnerWidth {
		innerWidth = formModalMinInnerWidth
	}

	bgStyle := lipgloss.NewStyle().
		Background(modal.theme.TooltipBackground)
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.theme.HeaderForeground).
		Background(modal.theme.TooltipBackground)
	labelStyle := lipgloss.NewStyle().
		Foreground(modal.theme.FaintText).
		Background(modal.theme.TooltipBackground)
	focusedLabelStyle := lipgloss.NewStyle().
		Foreground(modal.theme.Accent).
		Background(modal.theme.TooltipBackground)
	textStyle := lipgloss.NewStyle().
		Foreground(modal.theme.NormalText).
		Background(modal.theme.TooltipBackground)
	errorStyle := lipgloss.NewStyle().
		Foreground(modal.theme.ErrorNotice).
		Background(modal.theme.TooltipBackground)
	cursorStyle := lipgloss.NewStyle().
		Reverse(true)
	footerStyle := lipgloss.NewStyle().
		Foreground(modal.theme.FaintText).
		Background(modal.theme.TooltipBackground)

	labelWidth := 0
	for _, field := range modal.Fields {
		if width := ansi.StringWidth(field.Label); width > labelWidth {
			labelWidth = width
		}
	}

	pad := func(line string) string {
		lineWidth := ansi.StringWidth(line)
		if lineWidth < innerWidth {
			line += bgStyle.Render(strings.Repeat(" ", innerWidth-lineWidth))
		}
		return line
	}

	var contentLines []string
	contentLines = append(contentLines, pad(titleStyle.Render(modal.Title)))
	contentLines = append(contentLines, pad(""))

	for index, field := range modal.Fields {
		focused := index == modal.Focus

		label := field.Label + strings.Repeat(" ", labelWidth-ansi.StringWidth(field.Label))
		var renderedLabel string
		if focused {
			renderedLabel = focusedLabelStyle.Render("▸ " + label + "  ")
		} else {
			renderedLabel = labelStyle.Render("  " + label + "  ")
		}

		var renderedValue string
		switch field.Kind {
		case FieldChoice:
			choice := ""
			if len(field.Choices) > 0 {
				choice = field.Choices[field.Choice]
			}
			if focused {
				renderedValue = textStyle.Render("‹ "+choice+" ›") + bgStyle.Render("")
			} else {
				renderedValue = textStyle.Render(choice)
			}
		default:
			value := field.value
			if focused {
				if field.cursor >= len(value) {
					renderedValue = textStyle.Render(string(value)) + cursorStyle.Render(" ")
				} else {
					before := textStyle.Render(string(value[:field.cursor]))
					atCursor := cursorStyle.Render(string(value[field.cursor : field.cursor+1]))
					after := textStyle.Render(string(value[field.cursor+1:]))
					renderedValue = before + atCursor + after
				}
			} else {
				renderedValue = textStyle.Render(string(value))
			}
		}

		line := renderedLabel + renderedValue
		if field.Error != "" {
			line += errorStyle.Render("  " + field.Error)
		}
		contentLines = append(contentLines, pad(line))
	}

	contentLines = append(contentLines, pad(""))
	contentLines = append(contentLines, pad(footerStyle.Render("Enter save  Tab next field  Esc cancel")))

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.theme.BorderColor).
		Background(modal.theme.TooltipBackground)

	rendered := borderStyle.Render(strings.Join(contentLines, "\n"))

	resultLines := strings.Split(rendered, "\n")
	renderedWidth := 0
	if len(resultLines) > 0 {
		renderedWidth = ansi.StringWidth(resultLines[0])
	}

	anchorX := (screenWidth - renderedWidth) / 2
	anchorY := (screenHeight - len(resultLines)) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	if anchorY < 0 {
		anchorY = 0
	}

	return resultLines, anchorX, anchorY
}
