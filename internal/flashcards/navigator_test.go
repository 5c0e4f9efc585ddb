package flashcards

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/EkalavyanS/Flashy/internal/activation"
	"github.com/EkalavyanS/Flashy/internal/content"
)

func testDeck(n int) content.Deck {
	deck := make(content.Deck, n)
	for i := range deck {
		deck[i] = content.Slide{Title: fmt.Sprintf("Slide %d", i+1), Explanation: "Body"}
	}
	return deck
}

func req() content.Request {
	return content.Request{Topic: "Photosynthesis", GradeLevel: "5th Grade"}
}

func loaded(t *testing.T, n int) *Navigator {
	t.Helper()
	nav := New(nil)
	tok := nav.Activate(req())
	if !nav.Load(tok, testDeck(n), nil) {
		t.Fatal("load rejected")
	}
	return nav
}

func TestActivateAndLoad(t *testing.T) {
	nav := New(nil)
	if nav.State() != Idle {
		t.Fatalf("state = %v, want idle", nav.State())
	}

	tok := nav.Activate(req())
	if nav.State() != Loading {
		t.Fatalf("state = %v, want loading", nav.State())
	}
	if _, ok := nav.Current(); ok {
		t.Error("no slide should be visible while loading")
	}
	if nav.Advance(Forward) {
		t.Error("advance must be ignored while loading")
	}

	if !nav.Load(tok, testDeck(10), nil) {
		t.Fatal("load rejected")
	}
	if nav.State() != Ready || nav.Len() != 10 || nav.Index() != 0 {
		t.Fatalf("state=%v len=%d index=%d", nav.State(), nav.Len(), nav.Index())
	}
	s, ok := nav.Current()
	if !ok || s.Title != "Slide 1" {
		t.Errorf("current = %+v, %v", s, ok)
	}
}

func TestAdvanceClamps(t *testing.T) {
	nav := loaded(t, 3)

	if nav.Advance(Backward) {
		t.Error("backward at start should be a no-op")
	}
	if nav.Index() != 0 {
		t.Fatalf("index = %d, want 0", nav.Index())
	}

	nav.Advance(Forward)
	nav.Advance(Forward)
	if nav.Index() != 2 || !nav.AtEnd() {
		t.Fatalf("index = %d, want 2", nav.Index())
	}
	if nav.Advance(Forward) {
		t.Error("forward at end should be a no-op")
	}
	if nav.Index() != 2 {
		t.Fatalf("index = %d, want 2", nav.Index())
	}

	nav.Advance(Backward)
	if nav.Index() != 1 {
		t.Fatalf("index = %d, want 1", nav.Index())
	}
}

func TestProgress(t *testing.T) {
	if p := New(nil).Progress(); p != 0 {
		t.Errorf("empty progress = %v, want 0", p)
	}

	nav := loaded(t, 10)
	if p := nav.Progress(); math.Abs(p-0.1) > 1e-9 {
		t.Errorf("progress = %v, want 0.1", p)
	}
	for nav.Advance(Forward) {
	}
	if p := nav.Progress(); p != 1 {
		t.Errorf("progress at end = %v, want 1", p)
	}
}

func TestLoadFailure(t *testing.T) {
	nav := New(nil)
	tok := nav.Activate(req())
	genErr := &content.GenerationError{Op: "flashcards", Err: errors.New("down")}

	if !nav.Load(tok, nil, genErr) {
		t.Fatal("load rejected")
	}
	if nav.State() != Failed {
		t.Fatalf("state = %v, want failed", nav.State())
	}
	if !errors.Is(nav.Err(), genErr) {
		t.Errorf("err = %v", nav.Err())
	}
	if nav.Len() != 0 || nav.Progress() != 0 {
		t.Error("failed activation must have no deck")
	}
	if nav.Load(tok, testDeck(10), nil) {
		t.Error("second load for the same activation must be ignored")
	}
}

func TestStaleResultIgnored(t *testing.T) {
	nav := New(nil)
	first := nav.Activate(req())
	second := nav.Activate(content.Request{Topic: "Volcanoes", GradeLevel: "3rd Grade"})

	if nav.Load(first, testDeck(10), nil) {
		t.Fatal("stale result was applied")
	}
	if nav.State() != Loading {
		t.Fatalf("state = %v, want loading", nav.State())
	}
	if !nav.Load(second, testDeck(4), nil) {
		t.Fatal("current result rejected")
	}
	if nav.Len() != 4 || nav.Request().Topic != "Volcanoes" {
		t.Errorf("len=%d topic=%q", nav.Len(), nav.Request().Topic)
	}
}

func TestReactivateResetsPosition(t *testing.T) {
	nav := loaded(t, 5)
	nav.Advance(Forward)
	nav.Advance(Forward)

	tok := nav.Activate(req())
	if nav.Index() != 0 || nav.Len() != 0 {
		t.Fatalf("activate should clear the deck, index=%d len=%d", nav.Index(), nav.Len())
	}
	nav.Load(tok, testDeck(5), nil)
	if nav.Index() != 0 {
		t.Errorf("index = %d after reload, want 0", nav.Index())
	}
}

func TestSharedCounter(t *testing.T) {
	var tokens activation.Counter
	a := New(&tokens)
	b := New(&tokens)

	ta := a.Activate(req())
	tb := b.Activate(req())
	if ta == tb {
		t.Fatal("navigators sharing a counter must get distinct tokens")
	}
	// Activating b does not invalidate a's own activation.
	if !a.Load(ta, testDeck(2), nil) {
		t.Error("a's result should still apply")
	}
}
