package ui2d

import (
	"testing"
)

func approx(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ffffff", Color{1, 1, 1, 1}},
		{"000", Color{0, 0, 0, 1}},
		{"#ff000080", Color{1, 0, 0, 128.0 / 255}},
		{" #fff ", Color{1, 1, 1, 1}},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if err != nil {
			t.Errorf("ParseHex(%q): %v", tt.in, err)
			continue
		}
		if !approx(got.R, tt.want.R) || !approx(got.G, tt.want.G) ||
			!approx(got.B, tt.want.B) || !approx(got.A, tt.want.A) {
			t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseHexGold(t *testing.T) {
	got, err := ParseHex("#d8b14a")
	if err != nil {
		t.Fatal(err)
	}
	if got != ColorGold {
		t.Errorf("ParseHex(#d8b14a) = %+v, want %+v", got, ColorGold)
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#12345", "#gggggg", "#1234567890"} {
		if _, err := ParseHex(in); err == nil {
			t.Errorf("ParseHex(%q) should fail", in)
		}
	}
	if got := HexOr("nope", ColorBlack); got != ColorBlack {
		t.Errorf("HexOr fallback = %+v", got)
	}
}

func TestPremul(t *testing.T) {
	got := Color{1, 0.5, 0, 0.5}.premul()
	want := [4]float32{0.5, 0.25, 0, 0.5}
	if got != want {
		t.Errorf("premul = %v, want %v", got, want)
	}
}

func TestCoverUV(t *testing.T) {
	// 2:1 image into a square: crop a quarter off each side.
	u0, v0, u1, v1 := CoverUV(200, 100, 50, 50)
	if !approx(u0, 0.25) || !approx(u1, 0.75) || v0 != 0 || v1 != 1 {
		t.Errorf("wide image: (%v,%v)-(%v,%v)", u0, v0, u1, v1)
	}

	// 1:2 image into a square: crop top and bottom.
	u0, v0, u1, v1 = CoverUV(100, 200, 50, 50)
	if u0 != 0 || u1 != 1 || !approx(v0, 0.25) || !approx(v1, 0.75) {
		t.Errorf("tall image: (%v,%v)-(%v,%v)", u0, v0, u1, v1)
	}

	// Unknown size shows the whole texture.
	u0, v0, u1, v1 = CoverUV(0, 0, 50, 50)
	if u0 != 0 || v0 != 0 || u1 != 1 || v1 != 1 {
		t.Errorf("unknown size: (%v,%v)-(%v,%v)", u0, v0, u1, v1)
	}
}

func TestContain(t *testing.T) {
	got := Contain(200, 100, Rect{0, 0, 100, 100})
	want := Rect{0, 25, 100, 50}
	if got != want {
		t.Errorf("Contain = %+v, want %+v", got, want)
	}

	got = Contain(100, 400, Rect{10, 10, 100, 100})
	want = Rect{47.5, 10, 25, 100}
	if got != want {
		t.Errorf("Contain tall = %+v, want %+v", got, want)
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{10, 10, 20, 10}
	if got := r.Expand(5); got != (Rect{5, 5, 30, 20}) {
		t.Errorf("Expand = %+v", got)
	}
	if !r.Contains(10, 10) || r.Contains(30, 10) {
		t.Error("Contains edges wrong")
	}
}

func TestLodBias(t *testing.T) {
	if lodBias(0) != 0 {
		t.Error("no blur should not bias")
	}
	if !(lodBias(1) < lodBias(3)) {
		t.Error("bias should grow with blur")
	}
}

func TestFontAtlas(t *testing.T) {
	f := NewFont()
	gw, gh := f.GlyphSize()
	if gw != 7 || gh != 13 {
		t.Fatalf("GlyphSize = %dx%d, want 7x13", gw, gh)
	}

	// 'A' has ink somewhere in its cell.
	u0, v0, _, _ := f.GlyphUV('A')
	b := f.Atlas().Bounds()
	x0, y0 := int(u0*float32(b.Dx())+0.5), int(v0*float32(b.Dy())+0.5)
	ink := false
	for y := y0; y < y0+gh; y++ {
		for x := x0; x < x0+gw; x++ {
			if f.Atlas().RGBAAt(x, y).A > 0 {
				ink = true
			}
		}
	}
	if !ink {
		t.Error("glyph 'A' cell is empty")
	}

	// Unknown runes fall back to '?'.
	a0, a1, a2, a3 := f.GlyphUV('€')
	q0, q1, q2, q3 := f.GlyphUV('?')
	if a0 != q0 || a1 != q1 || a2 != q2 || a3 != q3 {
		t.Error("unknown rune did not map to '?'")
	}
}

func TestMeasureText(t *testing.T) {
	f := NewFont()
	w, h := f.MeasureText("abc\nde", 2)
	if w != 3*7*2 || h != 2*13*2 {
		t.Errorf("MeasureText = %vx%v, want 42x52", w, h)
	}
}
