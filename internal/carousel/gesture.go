package carousel

import "time"

// Decision is the outcome of a finished drag.
type Decision int

const (
	SnapBack Decision = iota
	CommitNext
	CommitPrev
)

func (d Decision) String() string {
	switch d {
	case CommitNext:
		return "next"
	case CommitPrev:
		return "prev"
	default:
		return "snap-back"
	}
}

// velocityWindow bounds the pointer history used for release velocity.
const velocityWindow = 100 * time.Millisecond

// Thresholds configure drag recognition.
type Thresholds struct {
	Distance float32 // px
	Velocity float32 // px/s
	Elastic  float32 // fraction of the pointer offset applied while dragging
}

// DefaultThresholds returns 120 px, 600 px/s and an elastic factor of 0.18.
func DefaultThresholds() Thresholds {
	return Thresholds{Distance: 120, Velocity: 600, Elastic: 0.18}
}

// withDefaults fills unset fields from DefaultThresholds. A zero value is
// the default set; otherwise an Elastic of 0 is kept and disables following.
func (th Thresholds) withDefaults() Thresholds {
	def := DefaultThresholds()
	if th == (Thresholds{}) {
		return def
	}
	if th.Distance <= 0 {
		th.Distance = def.Distance
	}
	if th.Velocity <= 0 {
		th.Velocity = def.Velocity
	}
	if th.Elastic < 0 {
		th.Elastic = def.Elastic
	}
	return th
}

// Decide maps a release offset (px, negative = left) and velocity (px/s) to
// a navigation decision. Leftward travel advances, rightward goes back.
func Decide(offset, velocity float32, th Thresholds) Decision {
	switch {
	case offset < -th.Distance || velocity < -th.Velocity:
		return CommitNext
	case offset > th.Distance || velocity > th.Velocity:
		return CommitPrev
	default:
		return SnapBack
	}
}

type pointerSample struct {
	x float32
	t time.Duration
}

// DragController tracks one horizontal drag: Idle, then Dragging(offset),
// then a Decision on release or cancel, then Idle again.
type DragController struct {
	th       Thresholds
	dragging bool
	startX   float32
	offset   float32
	travel   float32
	samples  []pointerSample
}

// NewDragController returns an idle controller.
func NewDragController(th Thresholds) *DragController {
	return &DragController{th: th}
}

// Thresholds returns the active thresholds.
func (d *DragController) Thresholds() Thresholds {
	return d.th
}

// Begin starts a drag at pointer position x. A drag already in progress is
// restarted.
func (d *DragController) Begin(x float32, t time.Duration) {
	d.dragging = true
	d.startX = x
	d.offset = 0
	d.travel = 0
	d.samples = append(d.samples[:0], pointerSample{x: x, t: t})
}

// Move updates the offset. It is ignored while idle.
func (d *DragController) Move(x float32, t time.Duration) {
	if !d.dragging {
		return
	}
	d.offset = x - d.startX
	if a := abs32(d.offset); a > d.travel {
		d.travel = a
	}
	d.record(x, t)
}

// End finishes the drag at x and returns the decision. The offset is reset
// to zero whatever the outcome. Ending while idle snaps back.
func (d *DragController) End(x float32, t time.Duration) Decision {
	if !d.dragging {
		return SnapBack
	}
	d.Move(x, t)
	decision := Decide(d.offset, d.Velocity(), d.th)
	d.reset()
	return decision
}

// Cancel abandons the drag. It behaves like a sub-threshold release.
func (d *DragController) Cancel() Decision {
	d.reset()
	return SnapBack
}

// Dragging reports whether a drag is in progress.
func (d *DragController) Dragging() bool {
	return d.dragging
}

// Offset returns the raw pointer offset since Begin.
func (d *DragController) Offset() float32 {
	return d.offset
}

// Travel returns the largest absolute offset seen during this drag.
func (d *DragController) Travel() float32 {
	return d.travel
}

// VisualOffset is the damped offset slides follow while dragging.
func (d *DragController) VisualOffset() float32 {
	return d.offset * d.th.Elastic
}

// Velocity estimates px/s from the samples of the last 100 ms.
func (d *DragController) Velocity() float32 {
	if len(d.samples) < 2 {
		return 0
	}
	first, last := d.samples[0], d.samples[len(d.samples)-1]
	dt := (last.t - first.t).Seconds()
	if dt <= 0 {
		return 0
	}
	return float32(float64(last.x-first.x) / dt)
}

func (d *DragController) record(x float32, t time.Duration) {
	d.samples = append(d.samples, pointerSample{x: x, t: t})
	keep := 0
	for keep < len(d.samples)-1 && t-d.samples[keep].t > velocityWindow {
		keep++
	}
	if keep > 0 {
		d.samples = append(d.samples[:0], d.samples[keep:]...)
	}
}

func (d *DragController) reset() {
	d.dragging = false
	d.offset = 0
	d.travel = 0
	d.samples = d.samples[:0]
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
