package picker

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stepcoach/internal/problem"
	"github.com/abhisek/stepcoach/internal/router"
	"github.com/abhisek/stepcoach/internal/screen"
	guidescreen "github.com/abhisek/stepcoach/internal/screens/guide"
	"github.com/abhisek/stepcoach/internal/screens/input"
	"github.com/abhisek/stepcoach/internal/ui/components"
	"github.com/abhisek/stepcoach/internal/ui/layout"
	"github.com/abhisek/stepcoach/internal/ui/theme"
)

type catalogLoadedMsg struct {
	Problems []problem.Problem
	Err      error
}

type entry struct {
	problem problem.Problem
	saved   bool // from the catalog, so it can be deleted
}

// PickerScreen lists built-in samples and saved problems.
type PickerScreen struct {
	deps     screen.Deps
	entries  []entry
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)
var _ screen.Refresher = (*PickerScreen)(nil)

// New creates a PickerScreen.
func New(deps screen.Deps) *PickerScreen {
	return &PickerScreen{deps: deps}
}

func (s *PickerScreen) Init() tea.Cmd {
	return s.load()
}

// Refresh reloads the catalog.
func (s *PickerScreen) Refresh() tea.Cmd {
	return s.load()
}

func (s *PickerScreen) load() tea.Cmd {
	repo := s.deps.Problems
	return func() tea.Msg {
		if repo == nil {
			return catalogLoadedMsg{}
		}
		list, err := repo.ListProblems(context.Background())
		return catalogLoadedMsg{Problems: list, Err: err}
	}
}

func (s *PickerScreen) Title() string {
	return "Pick a Problem"
}

func (s *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "X", Description: "Delete saved"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.entries = merge(problem.Samples(), msg.Problems)
		if s.selected >= len(s.entries) {
			s.selected = max(len(s.entries)-1, 0)
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
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			return s, s.start()
		case "x":
			return s, s.deleteSelected()
		}
	}
	return s, nil
}

func (s *PickerScreen) start() tea.Cmd {
	if s.selected < 0 || s.selected >= len(s.entries) {
		return nil
	}
	s.deps.Session.Start(s.entries[s.selected].problem)
	deps := s.deps
	next := guidescreen.New(deps, func() screen.Screen { return input.New(deps) })
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *PickerScreen) deleteSelected() tea.Cmd {
	if s.deps.Problems == nil || s.selected >= len(s.entries) || !s.entries[s.selected].saved {
		return nil
	}
	title := s.entries[s.selected].problem.Title
	if _, err := s.deps.Problems.DeleteProblem(context.Background(), title); err != nil {
		slog.Warn("delete problem", "title", title, "error", err)
		s.errMsg = err.Error()
		return nil
	}
	return s.load()
}

// merge lists saved problems first, then samples whose titles are not
// already saved.
func merge(samples, saved []problem.Problem) []entry {
	seen := make(map[string]bool, len(saved))
	out := make([]entry, 0, len(samples)+len(saved))
	for _, p := range saved {
		seen[p.Title] = true
		out = append(out, entry{problem: p, saved: true})
	}
	for _, p := range samples {
		if !seen[p.Title] {
			out = append(out, entry{problem: p})
		}
	}
	return out
}

func (s *PickerScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading problems...")
	}

	cw := components.ContentWidth(width)
	items := make([]components.MenuItem, len(s.entries))
	for i, e := range s.entries {
		tag := "sample"
		if e.saved {
			tag = "saved"
		}
		items[i] = components.MenuItem{
			Label:  e.problem.Title,
			Detail: fmt.Sprintf("%s · %s", e.problem.Difficulty, tag),
		}
	}
	menu := components.Menu{Items: items, Selected: s.selected}

	body := theme.Title.Width(cw).Render("Choose a problem") + "\n\n" + menu.View()

	if s.selected < len(s.entries) {
		p := s.entries[s.selected].problem
		preview := lipgloss.NewStyle().Foreground(theme.DifficultyColor(string(p.Difficulty))).Render(string(p.Difficulty)) +
			"  " + theme.Hint.Render(p.Difficulty.ComplexityHint()) + "\n" +
			theme.Body.Width(cw-10).Render(p.Description)
		body += "\n" + components.Card(preview, cw)
	}
	if s.errMsg != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
