package input

import (
	"context"
	"errors"
	"image/color"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stepcoach/internal/problem"
	"github.com/abhisek/stepcoach/internal/router"
	"github.com/abhisek/stepcoach/internal/screen"
	guidescreen "github.com/abhisek/stepcoach/internal/screens/guide"
	"github.com/abhisek/stepcoach/internal/ui/components"
	"github.com/abhisek/stepcoach/internal/ui/layout"
	"github.com/abhisek/stepcoach/internal/ui/theme"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDifficulty
	fieldCount
)

// InputScreen collects a problem from the learner and starts the guide.
type InputScreen struct {
	deps        screen.Deps
	title       components.TextInput
	description components.TextArea
	difficulty  components.Choice
	focus       int
	errMsg      string
}

var _ screen.Screen = (*InputScreen)(nil)
var _ screen.KeyHintProvider = (*InputScreen)(nil)
var _ screen.InputCapturer = (*InputScreen)(nil)

// New creates an empty problem form.
func New(deps screen.Deps) *InputScreen {
	names := make([]string, len(problem.Difficulties))
	colors := make(map[string]color.Color, len(problem.Difficulties))
	for i, d := range problem.Difficulties {
		names[i] = string(d)
		colors[string(d)] = theme.DifficultyColor(string(d))
	}
	diff := components.NewChoice("Difficulty", names)
	diff.Colors = colors

	return &InputScreen{
		deps:        deps,
		title:       components.NewTextInput("Problem title", "e.g. Two Sum", 120),
		description: components.NewTextArea("Description", "Paste the problem statement...", 60, 6),
		difficulty:  diff,
	}
}

func (s *InputScreen) Init() tea.Cmd {
	return s.setFocus(fieldTitle)
}

func (s *InputScreen) Title() string {
	return "New Problem"
}

func (s *InputScreen) CapturingInput() bool {
	return s.focus != fieldDifficulty
}

func (s *InputScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Start guide"},
		{Key: "Esc", Description: "Back"},
	}
	if s.focus == fieldDifficulty {
		hints = append([]layout.KeyHint{{Key: "←→", Description: "Change"}}, hints...)
	}
	return hints
}

func (s *InputScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab":
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab":
			return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case "ctrl+s":
			return s, s.submit()
		case "enter":
			switch s.focus {
			case fieldTitle:
				return s, s.setFocus(fieldDescription)
			case fieldDifficulty:
				return s, s.submit()
			}
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldTitle:
		s.title, cmd = s.title.Update(msg)
	case fieldDescription:
		s.description, cmd = s.description.Update(msg)
	case fieldDifficulty:
		s.difficulty, cmd = s.difficulty.Update(msg)
	}
	return s, cmd
}

func (s *InputScreen) setFocus(field int) tea.Cmd {
	s.focus = field
	s.title.Blur()
	s.description.Blur()
	s.difficulty.Focused = false

	switch field {
	case fieldTitle:
		return s.title.Focus()
	case fieldDescription:
		return s.description.Focus()
	default:
		s.difficulty.Focused = true
		return nil
	}
}

// submit validates the form, saves the problem to the catalog and opens
// the guide in place of this screen.
func (s *InputScreen) submit() tea.Cmd {
	s.title.Err, s.description.Err, s.errMsg = "", "", ""

	d, _ := problem.ParseDifficulty(s.difficulty.Value())
	p, err := problem.New(s.title.Value(), s.description.Value(), d)
	if err != nil {
		var verr *problem.ValidationError
		if errors.As(err, &verr) {
			switch verr.Field {
			case "title":
				s.title.Err = "Title " + verr.Reason
				return s.setFocus(fieldTitle)
			case "description":
				s.description.Err = "Description " + verr.Reason
				return s.setFocus(fieldDescription)
			}
		}
		s.errMsg = err.Error()
		return nil
	}

	if s.deps.Problems != nil {
		if err := s.deps.Problems.SaveProblem(context.Background(), p); err != nil {
			slog.Warn("save problem", "title", p.Title, "error", err)
		}
	}

	s.deps.Session.Start(p)
	deps := s.deps
	next := guidescreen.New(deps, func() screen.Screen { return New(deps) })
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *InputScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	heading := theme.Title.Width(cw).Render("What are you working on?")
	sub := theme.Subtitle.Width(cw).Render("Describe the problem and we'll walk through it one step at a time.")

	parts := []string{
		heading,
		sub,
		"",
		s.title.View(),
		"",
		s.description.View(),
		"",
		s.difficulty.View(),
	}

	d, err := problem.ParseDifficulty(s.difficulty.Value())
	if err == nil {
		parts = append(parts, theme.Hint.Render("Aim for "+d.ComplexityHint()))
	}
	if s.errMsg != "" {
		parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	form := components.Card(strings.Join(parts, "\n"), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, form)
}
