package components

import (
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/EkalavyanS/Flashy/internal/ui/theme"
)

const (
	confettiFrame    = 80 * time.Millisecond
	confettiDensity  = 40 // particles per 1000 cells
	confettiGlyphSet = "*+•◆▪✦"
)

// ConfettiTickMsg advances a running Confetti animation.
type ConfettiTickMsg struct {
	ID int
}

type particle struct {
	x, y  float64
	vy    float64
	glyph rune
	color int
}

// Confetti is a falling-particle celebration that runs for a fixed
// duration. Each instance only reacts to its own ticks.
type Confetti struct {
	id        int
	duration  time.Duration
	elapsed   time.Duration
	rng       *rand.Rand
	particles []particle
	width     int
	height    int
}

var confettiIDs atomic.Int64

// NewConfetti creates a celebration lasting d. seed makes the particle
// layout reproducible.
func NewConfetti(d time.Duration, seed uint64) Confetti {
	return Confetti{
		id:       int(confettiIDs.Add(1)),
		duration: d,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Start returns the first tick.
func (c Confetti) Start() tea.Cmd {
	return c.tick()
}

func (c Confetti) tick() tea.Cmd {
	id := c.id
	return tea.Tick(confettiFrame, func(time.Time) tea.Msg {
		return ConfettiTickMsg{ID: id}
	})
}

// ID identifies the ticks that belong to this animation.
func (c Confetti) ID() int {
	return c.id
}

// Running reports whether the animation is still playing.
func (c Confetti) Running() bool {
	return c.elapsed < c.duration
}

// Stop ends the animation early.
func (c *Confetti) Stop() {
	c.elapsed = c.duration
	c.particles = nil
}

// Update advances the particles. It returns the next tick while running.
func (c Confetti) Update(msg tea.Msg) (Confetti, tea.Cmd) {
	tick, ok := msg.(ConfettiTickMsg)
	if !ok || tick.ID != c.id || !c.Running() {
		return c, nil
	}

	c.elapsed += confettiFrame
	if !c.Running() {
		c.particles = nil
		return c, nil
	}

	alive := c.particles[:0]
	for _, p := range c.particles {
		p.y += p.vy
		if int(p.y) < c.height {
			alive = append(alive, p)
		}
	}
	c.particles = alive
	c.spawn()
	return c, c.tick()
}

// Resize sets the area particles fall through.
func (c *Confetti) Resize(width, height int) {
	c.width, c.height = width, height
}

func (c *Confetti) spawn() {
	if c.width <= 0 || c.height <= 0 {
		return
	}
	glyphs := []rune(confettiGlyphSet)
	want := c.width * c.height * confettiDensity / 1000
	for len(c.particles) < want {
		c.particles = append(c.particles, particle{
			x:     float64(c.rng.IntN(c.width)),
			y:     0,
			vy:    0.3 + c.rng.Float64()*0.7,
			glyph: glyphs[c.rng.IntN(len(glyphs))],
			color: c.rng.IntN(len(theme.ConfettiColors)),
		})
	}
}

// Overlay draws the particles over blank cells of content, which must
// already be laid out at the confetti's width and height.
func (c Confetti) Overlay(content string) string {
	if !c.Running() || len(c.particles) == 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	grid := make(map[[2]int]particle, len(c.particles))
	for _, p := range c.particles {
		grid[[2]int{int(p.y), int(p.x)}] = p
	}

	for y, line := range lines {
		if strings.ContainsRune(line, '\x1b') {
			continue
		}
		runes := []rune(line)
		var b strings.Builder
		for x, r := range runes {
			p, ok := grid[[2]int{y, x}]
			if ok && r == ' ' {
				b.WriteString(theme.ConfettiColors[p.color].Render(string(p.glyph)))
				continue
			}
			b.WriteRune(r)
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
