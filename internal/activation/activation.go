// Package activation issues the tokens that tie an asynchronous
// generation result to the activation that requested it.
package activation

import "sync/atomic"

// Token identifies one activation. The zero Token never matches a
// live activation.
type Token uint64

// Counter hands out strictly increasing tokens. It is safe for
// concurrent use, so one Counter can be shared by every navigator.
type Counter struct {
	last atomic.Uint64
}

// Next returns a token greater than every token returned before.
func (c *Counter) Next() Token {
	return Token(c.last.Add(1))
}

// Current returns the most recently issued token.
func (c *Counter) Current() Token {
	return Token(c.last.Load())
}

// IsCurrent reports whether t is the most recently issued token.
func (c *Counter) IsCurrent(t Token) bool {
	return t != 0 && t == c.Current()
}
