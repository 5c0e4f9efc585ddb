// Package flashcards tracks the position of a learner paging through a
// generated deck.
package flashcards

import (
	"github.com/EkalavyanS/Flashy/internal/activation"
	"github.com/EkalavyanS/Flashy/internal/content"
)

// State is the lifecycle of one activation.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Direction moves the navigator one card.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Navigator owns the position over an immutable Deck.
// It is not safe for concurrent use; drive it from one goroutine.
type Navigator struct {
	tokens *activation.Counter
	token  activation.Token

	req   content.Request
	state State
	deck  content.Deck
	index int
	err   error
}

// New creates a Navigator that draws activation tokens from tokens.
// A nil counter gives the navigator a private one.
func New(tokens *activation.Counter) *Navigator {
	if tokens == nil {
		tokens = &activation.Counter{}
	}
	return &Navigator{tokens: tokens}
}

// Activate starts a new activation for req and returns its token. The
// previous deck is discarded and any result for an older token will be
// ignored.
func (n *Navigator) Activate(req content.Request) activation.Token {
	n.token = n.tokens.Next()
	n.req = req
	n.state = Loading
	n.deck = nil
	n.index = 0
	n.err = nil
	return n.token
}

// Load delivers the result of the activation identified by tok. It
// reports false, changing nothing, when tok is stale or no activation is
// loading.
func (n *Navigator) Load(tok activation.Token, deck content.Deck, err error) bool {
	if tok != n.token || n.state != Loading {
		return false
	}
	if err != nil {
		n.state = Failed
		n.err = err
		return true
	}
	n.deck = deck
	n.index = 0
	n.state = Ready
	return true
}

// Advance moves one card in dir, clamped to the deck. It reports whether
// the position changed.
func (n *Navigator) Advance(dir Direction) bool {
	if n.state != Ready || len(n.deck) == 0 {
		return false
	}
	next := n.index + int(dir)
	if next < 0 || next >= len(n.deck) {
		return false
	}
	n.index = next
	return true
}

// Progress is (index+1)/len(deck), or 0 with no deck.
func (n *Navigator) Progress() float64 {
	if len(n.deck) == 0 {
		return 0
	}
	return float64(n.index+1) / float64(len(n.deck))
}

// Current returns the slide at the current position.
func (n *Navigator) Current() (content.Slide, bool) {
	if n.state != Ready || len(n.deck) == 0 {
		return content.Slide{}, false
	}
	return n.deck[n.index], true
}

func (n *Navigator) Index() int { return n.index }
func (n *Navigator) Len() int { return len(n.deck) }
func (n *Navigator) State() State { return n.state }
func (n *Navigator) Err() error { return n.err }
func (n *Navigator) Request() content.Request { return n.req }
func (n *Navigator) Token() activation.Token { return n.token }
func (n *Navigator) AtStart() bool { return n.index == 0 }
func (n *Navigator) AtEnd() bool { return n.index >= len(n.deck)-1 }
