package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stepcoach/internal/guide"
	"github.com/abhisek/stepcoach/internal/screen"
	"github.com/abhisek/stepcoach/internal/store"
	"github.com/abhisek/stepcoach/internal/ui/layout"
	"github.com/abhisek/stepcoach/internal/ui/theme"
)

// pageSize caps how many events the screen loads.
const pageSize = 50

type historyLoadedMsg struct {
	Events []store.RevealEventRecord
	Err    error
}

// HistoryScreen lists past answer-check requests, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	events    []store.RevealEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.Refresher = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		events, err := repo.QueryRevealEvents(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Events: events, Err: err}
	}
}

// Refresh reloads events.
func (s *HistoryScreen) Refresh() tea.Cmd {
	return s.Init()
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.errMsg = ""
			s.events = msg.Events
			s.expanded = make(map[int]bool)
			if s.selected >= len(s.events) {
				s.selected = 0
			}
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No answer checks yet. Work through a problem first!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, ev := range s.events {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-28s  %-6s  step %d  %s",
			prefix, ev.Timestamp.Local().Format("Jan 02 15:04"),
			truncate(ev.ProblemTitle, 28), ev.Difficulty, ev.StepIndex+1, OutcomeLabel(ev.Outcome))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    session %s · %s", shortID(ev.SessionID), remainingText(ev.Remaining))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(outcomeColor(ev.Outcome)).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// OutcomeLabel renders a stored outcome for people.
func OutcomeLabel(outcome string) string {
	switch guide.Outcome(outcome) {
	case guide.Granted:
		return "granted"
	case guide.DeniedNoQuota:
		return "denied: no checks left"
	case guide.DeniedAlreadyAsked:
		return "denied: already asked"
	default:
		return outcome
	}
}

func outcomeColor(outcome string) color.Color {
	switch guide.Outcome(outcome) {
	case guide.Granted:
		return theme.Success
	case guide.DeniedNoQuota:
		return theme.Error
	default:
		return theme.Accent
	}
}

func remainingText(n int) string {
	if n < 0 {
		return "checks left unknown"
	}
	return fmt.Sprintf("%d checks left after", n)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
