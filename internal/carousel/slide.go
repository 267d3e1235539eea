// Package carousel implements the circular media carousel: wrap-around index
// arithmetic, the slot to transform table, drag gesture recognition,
// autoplay, and the engine that publishes a render-ready frame.
//
// The package is headless. It never draws and never loads assets; a
// renderer paints the Frame it publishes and feeds input back in.
package carousel

// Vec3 is a plain 3-component value used by model transform hints.
type Vec3 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// ModelHints frame differently authored assets consistently.
type ModelHints struct {
	Scale    Vec3 `yaml:"scale"`    // per-axis scale, zero components mean 1
	Position Vec3 `yaml:"position"` // translation applied after scale and rotation
	Rotation Vec3 `yaml:"rotation"` // Euler angles in degrees
}

// ModelRef references a 3D asset shown in the lightbox instead of the image.
type ModelRef struct {
	Geometry string     `yaml:"geometry"`
	Material string     `yaml:"material,omitempty"`
	Hints    ModelHints `yaml:"hints"`
}

// Slide is one selectable item.
type Slide struct {
	Primary    string    `yaml:"src"`
	Enlarged   string    `yaml:"modal_src,omitempty"`
	Label      string    `yaml:"alt,omitempty"`
	Background string    `yaml:"bg,omitempty"`
	Model      *ModelRef `yaml:"model,omitempty"`
}

// EnlargedMedia returns the lightbox image, falling back to Primary.
func (s Slide) EnlargedMedia() string {
	if s.Enlarged != "" {
		return s.Enlarged
	}
	return s.Primary
}

// HasModel reports whether the slide declares a usable model reference.
func (s Slide) HasModel() bool {
	return s.Model != nil && s.Model.Geometry != ""
}

// AltText returns the label or a generic fallback.
func (s Slide) AltText() string {
	if s.Label != "" {
		return s.Label
	}
	return "slide"
}

// EffectiveScale returns the scale hint with zero components replaced by 1.
func (h ModelHints) EffectiveScale() Vec3 {
	s := h.Scale
	if s.X == 0 {
		s.X = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	if s.Z == 0 {
		s.Z = 1
	}
	return s
}
