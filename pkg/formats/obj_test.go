package formats

import (
	"errors"
	"testing"
)

const cubeFace = `# one quad
mtllib gear.mtl
o barrel
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl metal
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJ_Quad(t *testing.T) {
	obj, err := ParseOBJ([]byte(cubeFace), nil)
	if err != nil {
		t.Fatalf("ParseOBJ() error = %v", err)
	}

	if len(obj.Positions) != 4 {
		t.Errorf("expected 4 positions, got %d", len(obj.Positions))
	}
	if len(obj.Faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(obj.Faces))
	}
	if got := obj.TriangleCount(); got != 2 {
		t.Errorf("TriangleCount() = %d, want 2", got)
	}

	face := obj.Faces[0]
	if face.Material != "metal" {
		t.Errorf("expected material 'metal', got %q", face.Material)
	}
	if face.Group != "barrel" {
		t.Errorf("expected group 'barrel', got %q", face.Group)
	}
	if face.Corners[2] != (OBJIndex{V: 2, VT: 2, VN: 0}) {
		t.Errorf("unexpected corner: %+v", face.Corners[2])
	}
	if len(obj.MaterialLibs) != 1 || obj.MaterialLibs[0] != "gear.mtl" {
		t.Errorf("unexpected material libs: %v", obj.MaterialLibs)
	}
}

func TestParseOBJ_CornerForms(t *testing.T) {
	tests := []struct {
		name string
		face string
		want OBJIndex
	}{
		{"position only", "f 1 2 3", OBJIndex{V: 0, VT: -1, VN: -1}},
		{"position and texcoord", "f 1/1 2/1 3/1", OBJIndex{V: 0, VT: 0, VN: -1}},
		{"position and normal", "f 1//1 2//1 3//1", OBJIndex{V: 0, VT: -1, VN: 0}},
		{"relative", "f -3/-1/-1 -2/-1/-1 -1/-1/-1", OBJIndex{V: 0, VT: 0, VN: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\n" + tt.face + "\n"
			obj, err := ParseOBJ([]byte(src), nil)
			if err != nil {
				t.Fatalf("ParseOBJ() error = %v", err)
			}
			if got := obj.Faces[0].Corners[0]; got != tt.want {
				t.Errorf("corner = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{"empty", "", ErrEmptyOBJ},
		{"vertices only", "v 0 0 0\nv 1 0 0\n", ErrEmptyOBJ},
		{"bad vertex", "v 0 zero 0\n", ErrMalformedOBJ},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrMalformedOBJ},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n", ErrInvalidOBJIndex},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ErrInvalidOBJIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ([]byte(tt.src), nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseOBJ() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseOBJ_Progress(t *testing.T) {
	var reports []float32
	_, err := ParseOBJ([]byte(cubeFace), func(p float32) {
		reports = append(reports, p)
	})
	if err != nil {
		t.Fatalf("ParseOBJ() error = %v", err)
	}

	if len(reports) == 0 {
		t.Fatal("expected progress reports")
	}
	for i := 1; i < len(reports); i++ {
		if reports[i] < reports[i-1] {
			t.Errorf("progress went backwards: %v", reports)
		}
	}
	if last := reports[len(reports)-1]; last != 1 {
		t.Errorf("final progress = %v, want 1", last)
	}
}

func TestOBJ_Materials(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl a\nf 1 2 3\nusemtl b\nf 1 2 3\nusemtl a\nf 1 2 3\n"
	obj, err := ParseOBJ([]byte(src), nil)
	if err != nil {
		t.Fatalf("ParseOBJ() error = %v", err)
	}
	got := obj.Materials()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Materials() = %v, want [a b]", got)
	}
}

func TestParseMTL(t *testing.T) {
	src := `# exported
newmtl metal
Kd 0.5 0.5 0.6
Ks 1 1 1
Ns 32
map_Kd -s 1 1 1 textures/metal.png

newmtl glass
d 0.25
`
	lib, err := ParseMTL([]byte(src))
	if err != nil {
		t.Fatalf("ParseMTL() error = %v", err)
	}
	if len(lib) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(lib))
	}

	metal := lib["metal"]
	if metal.Diffuse != [3]float32{0.5, 0.5, 0.6} {
		t.Errorf("unexpected diffuse: %v", metal.Diffuse)
	}
	if metal.Shininess != 32 {
		t.Errorf("expected shininess 32, got %v", metal.Shininess)
	}
	if metal.DiffuseMap != "textures/metal.png" {
		t.Errorf("expected diffuse map textures/metal.png, got %q", metal.DiffuseMap)
	}
	if metal.Opacity != 1 {
		t.Errorf("expected default opacity 1, got %v", metal.Opacity)
	}

	if glass := lib["glass"]; glass.Opacity != 0.25 {
		t.Errorf("expected glass opacity 0.25, got %v", glass.Opacity)
	}
}

func TestParseMTL_Malformed(t *testing.T) {
	_, err := ParseMTL([]byte("newmtl x\nKd red green blue\n"))
	if !errors.Is(err, ErrMalformedMTL) {
		t.Errorf("ParseMTL() error = %v, want %v", err, ErrMalformedMTL)
	}
}
