package carousel

// Breakpoint selects the responsive column of the slot table.
type Breakpoint int

const (
	BreakpointCompact Breakpoint = iota
	BreakpointWide
)

// DefaultWideMinWidth is the viewport width at which the wide table applies.
const DefaultWideMinWidth = 900

// MaxVisibleWindow is the largest supported number of slots on each side of
// the active slide.
const MaxVisibleWindow = 2

func (b Breakpoint) String() string {
	if b == BreakpointWide {
		return "wide"
	}
	return "compact"
}

// BreakpointFor returns the breakpoint for a viewport width.
func BreakpointFor(width, wideMin int) Breakpoint {
	if wideMin <= 0 {
		wideMin = DefaultWideMinWidth
	}
	if width >= wideMin {
		return BreakpointWide
	}
	return BreakpointCompact
}

// Responsive holds one value per breakpoint.
type Responsive struct {
	Compact float32 `yaml:"compact"`
	Wide    float32 `yaml:"wide"`
}

// At returns the value for bp.
func (r Responsive) At(bp Breakpoint) float32 {
	if bp == BreakpointWide {
		return r.Wide
	}
	return r.Compact
}

// Transform is the visual state of a slide at a slot.
type Transform struct {
	OffsetX float32 // horizontal offset from the stage center in px
	Scale   float32
	Blur    float32 // px
	Opacity float32
	Z       int
	Visible bool
}

// Geometry is the tunable part of the slot table.
type Geometry struct {
	Window        int
	NearOffset    Responsive
	FarMultiplier float32
	CenterScale   float32
	NearScale     float32
	FarScale      float32
	NearBlur      Responsive
	FarBlurExtra  float32
	NearOpacity   float32
	FarOpacity    float32
}

// DefaultGeometry returns the stock table: ±1 at 220/320 px, ±2 at 1.9x that.
func DefaultGeometry() Geometry {
	return Geometry{
		Window:        2,
		NearOffset:    Responsive{Compact: 220, Wide: 320},
		FarMultiplier: 1.9,
		CenterScale:   1.0,
		NearScale:     0.86,
		FarScale:      0.76,
		NearBlur:      Responsive{Compact: 1, Wide: 2},
		FarBlurExtra:  1,
		NearOpacity:   0.8,
		FarOpacity:    0.5,
	}
}

// withDefaults fills unset fields from DefaultGeometry. A zero Geometry is
// the default table. Otherwise Window and the blur radii are kept as given,
// since zero is a valid setting for them; offsets, scales and opacities
// must be positive.
func (g Geometry) withDefaults() Geometry {
	def := DefaultGeometry()
	if g == (Geometry{}) {
		return def
	}
	positive := func(v *float32, d float32) {
		if *v <= 0 {
			*v = d
		}
	}
	positive(&g.NearOffset.Compact, def.NearOffset.Compact)
	positive(&g.NearOffset.Wide, def.NearOffset.Wide)
	positive(&g.FarMultiplier, def.FarMultiplier)
	positive(&g.CenterScale, def.CenterScale)
	positive(&g.NearScale, def.NearScale)
	positive(&g.FarScale, def.FarScale)
	positive(&g.NearOpacity, def.NearOpacity)
	positive(&g.FarOpacity, def.FarOpacity)
	return g
}

// Hidden is the transform of any slot outside the table.
var Hidden = Transform{Scale: 0.6, Blur: 3, Opacity: 0, Z: 1}

// Resolver maps a slot to its transform.
type Resolver struct {
	geo Geometry
}

// NewResolver returns a resolver for geo. The window is clamped to
// [0, MaxVisibleWindow].
func NewResolver(geo Geometry) Resolver {
	geo.Window = ClampWindow(geo.Window)
	return Resolver{geo: geo}
}

// ClampWindow clamps a visible window size into the supported range.
func ClampWindow(w int) int {
	if w < 0 {
		return 0
	}
	if w > MaxVisibleWindow {
		return MaxVisibleWindow
	}
	return w
}

// Window returns the effective visible window.
func (r Resolver) Window() int {
	return r.geo.Window
}

// Geometry returns the resolver's table.
func (r Resolver) Geometry() Geometry {
	return r.geo
}

// Resolve returns the transform for slot at bp. Slots beyond the visible
// window resolve to Hidden.
func (r Resolver) Resolve(slot int, bp Breakpoint) Transform {
	abs := slot
	if abs < 0 {
		abs = -abs
	}
	if abs > r.geo.Window {
		return Hidden
	}

	sign := float32(1)
	if slot < 0 {
		sign = -1
	}
	near := r.geo.NearOffset.At(bp)
	nearBlur := r.geo.NearBlur.At(bp)

	switch abs {
	case 0:
		return Transform{Scale: r.geo.CenterScale, Opacity: 1, Z: 5, Visible: true}
	case 1:
		return Transform{
			OffsetX: sign * near,
			Scale:   r.geo.NearScale,
			Blur:    nearBlur,
			Opacity: r.geo.NearOpacity,
			Z:       4,
			Visible: true,
		}
	case 2:
		return Transform{
			OffsetX: sign * near * r.geo.FarMultiplier,
			Scale:   r.geo.FarScale,
			Blur:    nearBlur + r.geo.FarBlurExtra,
			Opacity: r.geo.FarOpacity,
			Z:       3,
			Visible: true,
		}
	}
	return Hidden
}
