package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stepcoach/internal/quota"
	"github.com/abhisek/stepcoach/internal/ui/theme"
)

// QuotaMeter renders remaining answer checks as filled and hollow dots
// followed by a short status line.
func QuotaMeter(st quota.Status) string {
	col := theme.Success
	switch quota.ToneFor(st.Remaining) {
	case quota.ToneLow:
		col = theme.Accent
	case quota.ToneEmpty:
		col = theme.Error
	}

	filled := lipgloss.NewStyle().Foreground(col).Render(strings.Repeat("● ", st.Remaining))
	hollow := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("○ ", max(st.Max-st.Remaining, 0)))

	var status string
	if st.Remaining == 0 {
		status = fmt.Sprintf("No checks left. Resets in %d day%s.", st.DaysUntilReset, plural(st.DaysUntilReset))
	} else {
		status = fmt.Sprintf("%d of %d answer checks left this week.", st.Remaining, st.Max)
	}
	return strings.TrimRight(filled+hollow, " ") + "  " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(status)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
