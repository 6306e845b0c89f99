package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stepcoach/internal/ui/theme"
)

const bannerArt = `┏━┓╺┳╸┏━╸┏━┓┏━╸┏━┓┏━┓┏━╸╻ ╻
┗━┓ ┃ ┣╸ ┣━┛┃  ┃ ┃┣━┫┃  ┣━┫
┗━┛ ╹ ┗━╸╹  ┗━╸┗━┛╹ ╹┗━╸╹ ╹`

const bannerCompact = "S T E P C O A C H"

// RenderBanner returns the banner styled in the primary color.
// Uses a compact fallback for very narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 32 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
