package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stepcoach/internal/router"
	"github.com/abhisek/stepcoach/internal/screen"
	"github.com/abhisek/stepcoach/internal/screens/input"
	"github.com/abhisek/stepcoach/internal/screens/picker"
)

func TestMenuPushesScreens(t *testing.T) {
	h := New(screen.Deps{})

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*input.InputScreen); !ok {
		t.Errorf("first item pushed %T", msg.Screen)
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg = cmd().(router.PushScreenMsg)
	if _, ok := msg.Screen.(*picker.PickerScreen); !ok {
		t.Errorf("second item pushed %T", msg.Screen)
	}
}

func TestHistoryDisabledWithoutStore(t *testing.T) {
	h := New(screen.Deps{})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if got := h.menu.Items[h.menu.Selected].Label; got != "Quit" {
		t.Errorf("selected %q, want Quit (History disabled)", got)
	}
}

func TestViewShowsMeter(t *testing.T) {
	view := New(screen.Deps{}).View(100, 40)
	for _, want := range []string{"Stepcoach", "Understand the Problem", "4 of 4 answer checks left"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
