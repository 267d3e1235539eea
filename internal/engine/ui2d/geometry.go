package ui2d

// Rect is a rectangle in logical window units.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Expand grows r by d on every side.
func (r Rect) Expand(d float32) Rect {
	return Rect{r.X - d, r.Y - d, r.W + 2*d, r.H + 2*d}
}

// Offset moves r by (dx, dy).
func (r Rect) Offset(dx, dy float32) Rect {
	return Rect{r.X + dx, r.Y + dy, r.W, r.H}
}

// CoverUV returns the texture window that fills a rect of size (w, h) with
// an image of size (imgW, imgH), cropping the overflow evenly.
func CoverUV(imgW, imgH int, w, h float32) (u0, v0, u1, v1 float32) {
	if imgW <= 0 || imgH <= 0 || w <= 0 || h <= 0 {
		return 0, 0, 1, 1
	}
	imgAspect := float32(imgW) / float32(imgH)
	aspect := w / h
	if imgAspect > aspect {
		// Image is wider: crop left and right.
		frac := aspect / imgAspect
		return (1 - frac) / 2, 0, (1 + frac) / 2, 1
	}
	frac := imgAspect / aspect
	return 0, (1 - frac) / 2, 1, (1 + frac) / 2
}

// Contain returns the largest rect with the image's aspect ratio that fits
// inside r, centered.
func Contain(imgW, imgH int, r Rect) Rect {
	if imgW <= 0 || imgH <= 0 || r.W <= 0 || r.H <= 0 {
		return r
	}
	s := min(r.W/float32(imgW), r.H/float32(imgH))
	w, h := float32(imgW)*s, float32(imgH)*s
	return Rect{r.X + (r.W-w)/2, r.Y + (r.H-h)/2, w, h}
}
