package guide

import (
	"context"
	"errors"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	coach "github.com/abhisek/stepcoach/internal/guide"
	"github.com/abhisek/stepcoach/internal/quota"
	"github.com/abhisek/stepcoach/internal/router"
	"github.com/abhisek/stepcoach/internal/screen"
	"github.com/abhisek/stepcoach/internal/ui/layout"
)

// GuideScreen walks the active problem step by step.
type GuideScreen struct {
	deps       screen.Deps
	newProblem func() screen.Screen

	showHint bool
	outcome  coach.Outcome // last answer request, "" if none on this problem
	notice   string
}

var _ screen.Screen = (*GuideScreen)(nil)
var _ screen.KeyHintProvider = (*GuideScreen)(nil)
var _ screen.BackHandler = (*GuideScreen)(nil)

// New creates a GuideScreen for the problem already started on deps.Session.
// newProblem builds the screen shown by the "new problem" key.
func New(deps screen.Deps, newProblem func() screen.Screen) *GuideScreen {
	return &GuideScreen{
		deps:       deps,
		newProblem: newProblem,
	}
}

func (s *GuideScreen) Init() tea.Cmd {
	return nil
}

func (s *GuideScreen) Title() string {
	return "Guide"
}

func (s *GuideScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Step"},
		{Key: "1-6", Description: "Jump"},
		{Key: "H", Description: "Hint"},
		{Key: "A", Description: "Answer check"},
		{Key: "N", Description: "New problem"},
		{Key: "Esc", Description: "Home"},
	}
}

// Back ends the session and returns home.
func (s *GuideScreen) Back() tea.Cmd {
	s.deps.Session.Reset()
	return func() tea.Msg { return router.PopToRootMsg{} }
}

func (s *GuideScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	sess := s.deps.Session
	key := kmsg.String()
	switch key {
	case "right", "l":
		s.move(sess.Index() + 1)
	case "left":
		s.move(sess.Index() - 1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		s.move(int(key[0] - '1'))
	case "h", "?":
		s.showHint = !s.showHint
	case "a":
		s.requestAnswer()
	case "n":
		sess.Reset()
		if s.newProblem == nil {
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
		next := s.newProblem()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return s, nil
}

func (s *GuideScreen) move(index int) {
	before := s.deps.Session.Index()
	s.deps.Session.GoTo(index)
	if s.deps.Session.Index() != before {
		s.showHint = false
	}
}

func errorNotice(err error) string {
	var se *quota.StorageError
	if !errors.As(err, &se) {
		return err.Error()
	}
	if se.Op == "read" {
		return "Could not read your check count; treating this as a fresh week."
	}
	return "Could not save your check count; it will be retried."
}

func (s *GuideScreen) requestAnswer() {
	outcome, err := s.deps.Session.RequestAnswer(context.Background())
	if err != nil {
		slog.Warn("answer request", "outcome", outcome, "error", err)
		s.notice = errorNotice(err)
	} else {
		s.notice = ""
	}
	if outcome != "" {
		s.outcome = outcome
	}
}
