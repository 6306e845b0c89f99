package components

import (
	"image/color"

	"github.com/abhisek/stepcoach/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked sections
// so boxes line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw - 2).
		Render(content)
}

// AccentCard is a Card with a colored border.
func AccentCard(content string, cw int, border color.Color) string {
	return theme.Card.
		BorderForeground(border).
		Width(cw - 2).
		Render(content)
}
