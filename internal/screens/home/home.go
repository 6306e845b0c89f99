package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stepcoach/internal/router"
	"github.com/abhisek/stepcoach/internal/screen"
	"github.com/abhisek/stepcoach/internal/screens/history"
	"github.com/abhisek/stepcoach/internal/screens/input"
	"github.com/abhisek/stepcoach/internal/screens/picker"
	"github.com/abhisek/stepcoach/internal/steps"
	"github.com/abhisek/stepcoach/internal/ui/components"
	"github.com/abhisek/stepcoach/internal/ui/layout"
	"github.com/abhisek/stepcoach/internal/ui/theme"
)

const tagline = "Work the problem step by step. Answers are a last resort."

// HomeScreen is the main menu.
type HomeScreen struct {
	deps screen.Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screen.Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: "New problem", Detail: "type in your own", Action: func() tea.Cmd {
			return push(input.New(deps))
		}},
		{Label: "Pick a problem", Detail: "samples and saved", Action: func() tea.Cmd {
			return push(picker.New(deps))
		}},
		{Label: "History", Detail: "past answer checks", Disabled: deps.Events == nil, Action: func() tea.Cmd {
			return push(history.New(deps.Events))
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Refresh is a no-op; the quota meter is read on every render.
func (h *HomeScreen) Refresh() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections,
		theme.Title.Width(cw).Render("Stepcoach"),
		theme.Subtitle.Width(cw).Render(tagline),
	)

	overview := make([]string, 0, steps.Count())
	for _, st := range steps.All() {
		overview = append(overview, theme.Hint.Render(st.Title))
	}
	sections = append(sections, components.Card(
		theme.Label.Render("The method")+"\n"+strings.Join(overview, theme.Hint.Render(" → ")),
		cw,
	))

	sections = append(sections,
		components.Card(h.menu.View(), cw),
		components.QuotaMeter(h.deps.QuotaStatus()),
	)

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
