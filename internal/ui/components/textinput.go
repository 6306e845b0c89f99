package components

import (
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stepcoach/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and an error line.
type TextInput struct {
	Label string
	Model textinput.Model
	Err   string
}

// NewTextInput creates a single-line input limited to charLimit runes.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Label: label, Model: ti}
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label, the input and any error.
func (t TextInput) View() string {
	return renderField(t.Label, t.Model.View(), t.Model.Focused(), t.Err)
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// TextArea wraps bubbles/textarea for multi-line entry.
type TextArea struct {
	Label string
	Model textarea.Model
	Err   string
}

// NewTextArea creates a multi-line input of the given size.
func NewTextArea(label, placeholder string, width, height int) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetWidth(width)
	ta.SetHeight(height)
	return TextArea{Label: label, Model: ta}
}

// Focus gives the area keyboard focus.
func (t *TextArea) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextArea) Blur() {
	t.Model.Blur()
}

// Update handles messages.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label, the area and any error.
func (t TextArea) View() string {
	return renderField(t.Label, t.Model.View(), t.Model.Focused(), t.Err)
}

// Value returns the current text.
func (t TextArea) Value() string {
	return t.Model.Value()
}

func renderField(label, body string, focused bool, errMsg string) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if focused {
		labelStyle = theme.Label
	}
	s := labelStyle.Render(label) + "\n" + body
	if errMsg != "" {
		s += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+errMsg)
	}
	return s
}
