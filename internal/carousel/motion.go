package carousel

import (
	"sort"
	"time"

	"github.com/charmbracelet/harmonica"
)

// SpringConfig parameterizes slide motion.
type SpringConfig struct {
	Frequency float64 // angular frequency
	Damping   float64 // damping ratio, 1 is critical
	FPS       int     // fixed simulation rate
}

// DefaultSpring is a slightly overdamped spring that settles in ~0.3 s.
func DefaultSpring() SpringConfig {
	return SpringConfig{Frequency: 13.3, Damping: 1.08, FPS: 60}
}

// Slides enter and leave transparent at 98% scale; the hovered active card
// grows to 102%.
const (
	enterScale   = 0.98
	hoverScale   = 1.02
	settledAlpha = 0.01
)

type axis struct {
	pos, vel float64
}

func (a *axis) step(s harmonica.Spring, target float64) {
	a.pos, a.vel = s.Update(a.pos, a.vel, target)
}

type animated struct {
	item    Item
	offset  axis
	scale   axis
	blur    axis
	opacity axis
	leaving bool
}

func (a *animated) current() Transform {
	t := a.item.Transform
	t.OffsetX = float32(a.offset.pos)
	t.Scale = float32(a.scale.pos)
	t.Blur = float32(a.blur.pos)
	t.Opacity = clamp01(float32(a.opacity.pos))
	return t
}

// AnimatedItem is an item with its interpolated transform. Leaving items
// have dropped out of the frame and are fading away.
type AnimatedItem struct {
	Item
	Leaving bool
}

// Motion interpolates each slide from its previous transform toward the
// target published by the engine. It is a rendering aid; the engine's frame
// stays authoritative.
type Motion struct {
	spring  harmonica.Spring
	step    time.Duration
	acc     time.Duration
	items   map[int]*animated
	hovered int
}

// NewMotion returns an empty motion state.
func NewMotion(cfg SpringConfig) *Motion {
	def := DefaultSpring()
	if cfg.FPS <= 0 {
		cfg.FPS = def.FPS
	}
	if cfg.Frequency <= 0 {
		cfg.Frequency = def.Frequency
	}
	if cfg.Damping <= 0 {
		cfg.Damping = def.Damping
	}
	return &Motion{
		spring:  harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.Frequency, cfg.Damping),
		step:    time.Second / time.Duration(cfg.FPS),
		items:   make(map[int]*animated),
		hovered: -1,
	}
}

// SetHovered marks slide index as hovered; the active card scales up
// slightly while hovered. Pass -1 to clear.
func (m *Motion) SetHovered(index int) {
	m.hovered = index
}

// Sync adopts f as the new target. Slides entering the window start
// transparent, slides leaving it fade out.
func (m *Motion) Sync(f Frame) {
	seen := make(map[int]bool, len(f.Items))
	for _, it := range f.Items {
		seen[it.Index] = true
		a, ok := m.items[it.Index]
		if !ok {
			tr := it.Transform
			a = &animated{
				offset:  axis{pos: float64(tr.OffsetX)},
				scale:   axis{pos: float64(tr.Scale * enterScale)},
				blur:    axis{pos: float64(tr.Blur)},
				opacity: axis{pos: 0},
			}
			m.items[it.Index] = a
		}
		a.item = it
		a.leaving = false
		if f.Dragging {
			a.offset = axis{pos: float64(it.Transform.OffsetX)}
		}
	}
	for idx, a := range m.items {
		if !seen[idx] {
			a.leaving = true
		}
	}
}

// Update advances the springs by dt in fixed steps.
func (m *Motion) Update(dt time.Duration) {
	m.acc += dt
	// Bound catch-up after a stall.
	if limit := 10 * m.step; m.acc > limit {
		m.acc = limit
	}
	for m.acc >= m.step {
		m.acc -= m.step
		m.advance()
	}
}

func (m *Motion) advance() {
	for idx, a := range m.items {
		tr := a.item.Transform
		opacity := float64(tr.Opacity)
		scale := float64(tr.Scale)
		if a.leaving {
			opacity = 0
			scale *= enterScale
		} else if idx == m.hovered && a.item.Slot == 0 {
			scale *= hoverScale
		}
		a.offset.step(m.spring, float64(tr.OffsetX))
		a.scale.step(m.spring, scale)
		a.blur.step(m.spring, float64(tr.Blur))
		a.opacity.step(m.spring, opacity)
		if a.leaving && a.opacity.pos < settledAlpha {
			delete(m.items, idx)
		}
	}
}

// Settled reports whether every slide rests at its target.
func (m *Motion) Settled() bool {
	const eps = 0.005
	for _, a := range m.items {
		if a.leaving {
			return false
		}
		cur, tr := a.current(), a.item.Transform
		if abs32(cur.OffsetX-tr.OffsetX) > 0.5 ||
			abs32(cur.Opacity-tr.Opacity) > eps ||
			abs32(cur.Blur-tr.Blur) > eps {
			return false
		}
	}
	return true
}

// Items returns the interpolated items in paint order.
func (m *Motion) Items() []AnimatedItem {
	out := make([]AnimatedItem, 0, len(m.items))
	for _, a := range m.items {
		it := a.item
		it.Transform = a.current()
		out = append(out, AnimatedItem{Item: it, Leaving: a.leaving})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Transform.Z != out[j].Transform.Z {
			return out[i].Transform.Z < out[j].Transform.Z
		}
		if out[i].Leaving != out[j].Leaving {
			return out[i].Leaving
		}
		return out[i].Index < out[j].Index
	})
	return out
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
