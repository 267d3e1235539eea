// Package camera provides the orbit camera used by the model viewer.
package camera

import (
	gomath "math"

	"github.com/charmbracelet/harmonica"

	"github.com/Faultbox/gear-carousel/pkg/math"
)

// OrbitCamera orbits around a center point. Orbit input rotates the camera
// immediately; once input stops, the last motion coasts to a halt.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians, positive looks down on the model
	Yaw      float32 // radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32 // radians per pixel
	ZoomSensitivity float32 // fraction of distance per wheel step

	FOV       float32 // vertical, degrees
	Near, Far float32

	velYaw, velPitch float64
	accYaw, accPitch float64
	touched          bool
	decay            harmonica.Spring
}

// NewOrbitCamera creates a camera with defaults suited to a single model.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        6,
		Pitch:           0.35,
		MinDistance:     1.5,
		MaxDistance:     40,
		MinPitch:        -1.4,
		MaxPitch:        1.4,
		DragSensitivity: 0.01,
		ZoomSensitivity: 0.12,
		FOV:             45,
		Near:            0.05,
		Far:             500,
		decay:           harmonica.NewSpring(harmonica.FPS(60), 6.0, 1.0),
	}
}

// SetDistanceRange sets the zoom limits and re-clamps the distance.
func (c *OrbitCamera) SetDistanceRange(min, max float32) {
	c.MinDistance, c.MaxDistance = min, max
	c.Distance = clamp(c.Distance, min, max)
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cp := gomath.Cos(float64(c.Pitch))
	return math.Vec3{
		X: c.Center.X + c.Distance*float32(cp*gomath.Sin(float64(c.Yaw))),
		Y: c.Center.Y + c.Distance*float32(gomath.Sin(float64(c.Pitch))),
		Z: c.Center.Z + c.Distance*float32(cp*gomath.Cos(float64(c.Yaw))),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(math.Radians(c.FOV), aspect, c.Near, c.Far)
}

// Orbit rotates by a pointer delta in pixels.
func (c *OrbitCamera) Orbit(dx, dy float32) {
	dYaw := -dx * c.DragSensitivity
	dPitch := dy * c.DragSensitivity
	c.rotate(dYaw, dPitch)
	c.velYaw, c.velPitch = float64(dYaw), float64(dPitch)
	c.accYaw, c.accPitch = 0, 0
	c.touched = true
}

// Zoom moves toward (positive) or away from (negative) the center,
// clamped to the distance range.
func (c *OrbitCamera) Zoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// Step advances coasting by one frame. Frames that received orbit input do
// not coast.
func (c *OrbitCamera) Step() {
	if c.touched {
		c.touched = false
		return
	}
	if gomath.Abs(c.velYaw) < 1e-5 && gomath.Abs(c.velPitch) < 1e-5 {
		c.velYaw, c.velPitch = 0, 0
		return
	}
	c.rotate(float32(c.velYaw), float32(c.velPitch))
	c.velYaw, c.accYaw = c.decay.Update(c.velYaw, c.accYaw, 0)
	c.velPitch, c.accPitch = c.decay.Update(c.velPitch, c.accPitch, 0)
}

// Coasting reports whether the camera is still moving without input.
func (c *OrbitCamera) Coasting() bool {
	return c.velYaw != 0 || c.velPitch != 0
}

// FitToBounds centers on the box and backs off until it fills the view.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Center = min.Add(max).Scale(0.5)
	radius := max.Sub(min).Length() / 2
	if radius <= 0 {
		radius = 1
	}
	half := math.Radians(c.FOV) / 2
	dist := radius / float32(gomath.Sin(float64(half))) * 1.1

	c.MinDistance = radius * 0.6
	c.MaxDistance = dist * 6
	c.Distance = dist
	c.Near = max32(dist/1000, 0.01)
	c.Far = dist * 20
	c.Pitch = 0.35
	c.Yaw = 0.6
	c.velYaw, c.velPitch = 0, 0
}

func (c *OrbitCamera) rotate(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = clamp(c.Pitch+dPitch, c.MinPitch, c.MaxPitch)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
