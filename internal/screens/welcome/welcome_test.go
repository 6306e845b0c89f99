package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stepcoach/internal/router"
	"github.com/abhisek/stepcoach/internal/screen"
	"github.com/abhisek/stepcoach/internal/steps"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newTestWelcomeWithCounter() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestStepsRevealInOrder(t *testing.T) {
	w, _ := newTestWelcomeWithCounter()
	all := steps.All()

	view := w.View(80, 24)
	if !strings.Contains(view, all[0].Title) {
		t.Error("first step should be visible at start")
	}
	if strings.Contains(view, all[1].Title) {
		t.Error("second step should not be visible at start")
	}
	if strings.Contains(view, Tagline) {
		t.Error("tagline should not be visible at start")
	}

	// 3 ticks = one step interval.
	sendTicks(w, 3)
	if !strings.Contains(w.View(80, 24), all[1].Title) {
		t.Error("second step should be visible after one interval")
	}
}

func TestBannerAfterAllSteps(t *testing.T) {
	w, _ := newTestWelcomeWithCounter()

	sendTicks(w, int(totalDur/tickInterval))
	view := w.View(80, 24)
	for _, st := range steps.All() {
		if !strings.Contains(view, st.Title) {
			t.Errorf("step %q missing after animation", st.Title)
		}
	}
	if !strings.Contains(view, Tagline) {
		t.Error("tagline should be visible after animation")
	}
}

func TestTickingStopsWhenDone(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter()

	if cmd := sendTicks(w, 100); cmd != nil {
		t.Error("ticks should stop once the animation is done")
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
}

func TestKeypressSkipsAnimation(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter()
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress during animation should trigger transition")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter()

	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestCompactBanner(t *testing.T) {
	if !strings.Contains(RenderBanner(20), bannerCompact) {
		t.Error("narrow terminals should get the compact banner")
	}
}
