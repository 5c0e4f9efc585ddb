package unavailable

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/EkalavyanS/Flashy/internal/router"
)

func TestView(t *testing.T) {
	u := New("Quiz", "")
	if u.Title() != "Quiz" {
		t.Errorf("title = %q", u.Title())
	}
	view := u.View(100, 30)
	if !strings.Contains(view, "AI unavailable") || !strings.Contains(view, "GEMINI_API_KEY") {
		t.Errorf("view = %q", view)
	}
}

func TestAnyKeyGoesBack(t *testing.T) {
	u := New("Flashcards", "Set OPENAI_API_KEY.")
	_, cmd := u.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("msg = %T, want PopScreenMsg", cmd())
	}
}
