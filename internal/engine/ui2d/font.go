package ui2d

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Printable ASCII range baked into the atlas.
const (
	firstGlyph  = 32
	lastGlyph   = 126
	atlasCols   = 16
	glyphMissed = '?'
)

// Font is a fixed-width bitmap font baked into a texture atlas.
type Font struct {
	atlas  *image.RGBA
	glyphW int
	glyphH int
	tex    uint32
}

// NewFont bakes basicfont's 7x13 face into an atlas. The texture is
// uploaded on first use.
func NewFont() *Font {
	face := basicfont.Face7x13
	gw, gh := face.Advance, face.Height
	count := lastGlyph - firstGlyph + 1
	rows := (count + atlasCols - 1) / atlasCols

	atlas := image.NewRGBA(image.Rect(0, 0, atlasCols*gw, rows*gh))
	d := font.Drawer{Dst: atlas, Src: image.White, Face: face}
	for r := firstGlyph; r <= lastGlyph; r++ {
		i := r - firstGlyph
		x, y := (i%atlasCols)*gw, (i/atlasCols)*gh
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(rune(r)))
	}

	return &Font{atlas: atlas, glyphW: gw, glyphH: gh}
}

// GlyphSize returns the unscaled cell size.
func (f *Font) GlyphSize() (int, int) {
	return f.glyphW, f.glyphH
}

// Atlas returns the baked glyph image.
func (f *Font) Atlas() *image.RGBA {
	return f.atlas
}

// GlyphUV returns the atlas UV rectangle for r. Runes outside the atlas
// render as '?'.
func (f *Font) GlyphUV(r rune) (u0, v0, u1, v1 float32) {
	if r < firstGlyph || r > lastGlyph {
		r = glyphMissed
	}
	i := int(r) - firstGlyph
	b := f.atlas.Bounds()
	x, y := (i%atlasCols)*f.glyphW, (i/atlasCols)*f.glyphH
	u0 = float32(x) / float32(b.Dx())
	v0 = float32(y) / float32(b.Dy())
	u1 = float32(x+f.glyphW) / float32(b.Dx())
	v1 = float32(y+f.glyphH) / float32(b.Dy())
	return
}

// MeasureText returns the size of text at scale. Newlines start new lines.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	var maxCols, cols int
	lines := 1
	for _, r := range text {
		if r == '\n' {
			lines++
			cols = 0
			continue
		}
		cols++
		maxCols = max(maxCols, cols)
	}
	return float32(maxCols*f.glyphW) * scale, float32(lines*f.glyphH) * scale
}
