package components

import (
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stepcoach/internal/ui/theme"
)

// Choice is a horizontal single-select, cycled with left/right.
type Choice struct {
	Label    string
	Options  []string
	Selected int
	Focused  bool

	// Colors optionally tints each option when selected.
	Colors map[string]color.Color
}

// NewChoice creates a selector with the first option selected.
func NewChoice(label string, options []string) Choice {
	return Choice{Label: label, Options: options}
}

// Update handles left/right while focused.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if !c.Focused || len(c.Options) == 0 {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch kmsg.String() {
	case "left", "h":
		c.Selected = (c.Selected - 1 + len(c.Options)) % len(c.Options)
	case "right", "l", "space":
		c.Selected = (c.Selected + 1) % len(c.Options)
	}
	return c, nil
}

// Value returns the selected option, or "" when there are none.
func (c Choice) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected]
}

// SetValue selects opt if present.
func (c *Choice) SetValue(opt string) {
	for i, o := range c.Options {
		if o == opt {
			c.Selected = i
			return
		}
	}
}

// View renders the options in a row with the selection highlighted.
func (c Choice) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if c.Focused {
		labelStyle = theme.Label
	}

	parts := make([]string, len(c.Options))
	for i, opt := range c.Options {
		if i == c.Selected {
			fg := theme.Primary
			if col, ok := c.Colors[opt]; ok {
				fg = col
			}
			parts[i] = lipgloss.NewStyle().Foreground(fg).Bold(true).Render("[" + opt + "]")
		} else {
			parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(" " + opt + " ")
		}
	}

	row := strings.Join(parts, " ")
	if c.Focused {
		row = lipgloss.NewStyle().Foreground(theme.TextDim).Render("◂ ") + row +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(" ▸")
	}
	return labelStyle.Render(c.Label) + "\n" + row
}
