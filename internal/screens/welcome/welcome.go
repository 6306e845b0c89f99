package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stepcoach/internal/router"
	"github.com/abhisek/stepcoach/internal/screen"
	"github.com/abhisek/stepcoach/internal/steps"
	"github.com/abhisek/stepcoach/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	stepInterval = 300 * time.Millisecond
)

// Tagline is shown under the banner.
const Tagline = "Think first. Check answers last."

// totalDur is long enough to reveal every step, then the banner.
var totalDur = time.Duration(steps.Count()+1) * stepInterval

type tickMsg time.Time

// WelcomeScreen reveals the coaching steps one at a time, then the banner.
// Any key skips to the next screen.
type WelcomeScreen struct {
	nextFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by nextFactory.
func New(nextFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		nextFactory: nextFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			// Fully revealed; stop ticking.
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.nextFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// revealed returns how many steps are visible.
func (w *WelcomeScreen) revealed() int {
	n := int(w.elapsed/stepInterval) + 1
	return min(n, steps.Count())
}

func (w *WelcomeScreen) done() bool {
	return w.elapsed >= totalDur
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	var lines []string
	for i, st := range steps.All()[:w.revealed()] {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == w.revealed()-1 && !w.done() {
			style = style.Foreground(theme.Accent).Bold(true)
		}
		lines = append(lines, style.Render(fmt.Sprintf("%d. %s", st.Number, st.Title)))
	}
	sections = append(sections, strings.Join(lines, "\n"))

	if w.done() {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Tagline),
		)
	}

	sections = append(sections, "",
		lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"))

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
