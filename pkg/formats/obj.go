package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrEmptyOBJ        = errors.New("OBJ contains no faces")
	ErrMalformedOBJ    = errors.New("malformed OBJ statement")
	ErrInvalidOBJIndex = errors.New("OBJ index out of range")
)

// OBJIndex references one face corner. Indices are zero-based; -1 marks a
// missing texture coordinate or normal.
type OBJIndex struct {
	V  int
	VT int
	VN int
}

// OBJFace is a polygon with three or more corners.
type OBJFace struct {
	Corners  []OBJIndex
	Material string // active usemtl at the time of the face
	Group    string // active o/g name
}

// OBJ holds parsed Wavefront geometry.
type OBJ struct {
	Positions    [][3]float32
	TexCoords    [][2]float32
	Normals      [][3]float32
	Faces        []OBJFace
	MaterialLibs []string
}

// TriangleCount returns the number of triangles after fan triangulation.
func (o *OBJ) TriangleCount() int {
	n := 0
	for _, f := range o.Faces {
		n += len(f.Corners) - 2
	}
	return n
}

// Materials returns the distinct material names in first-use order.
func (o *OBJ) Materials() []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range o.Faces {
		if f.Material == "" || seen[f.Material] {
			continue
		}
		seen[f.Material] = true
		names = append(names, f.Material)
	}
	return names
}

// ParseOBJ parses Wavefront OBJ data. progress, if non-nil, receives the
// consumed fraction of the input in [0,1] as parsing advances.
func ParseOBJ(data []byte, progress func(float32)) (*OBJ, error) {
	obj := &OBJ{}
	var material, group string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	total := float32(len(data))
	var consumed int
	var reported float32
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		consumed += len(line) + 1

		if progress != nil && total > 0 {
			if frac := float32(consumed) / total; frac-reported >= progressStep {
				reported = min(frac, 1)
				progress(reported)
			}
		}

		keyword, args := fields(line)
		switch keyword {
		case "":
			continue
		case "v":
			var p [3]float32
			if !parseFloats(args, p[:]) {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, ErrMalformedOBJ)
			}
			obj.Positions = append(obj.Positions, p)
		case "vt":
			var uv [2]float32
			// vt may carry a single u component
			if len(args) == 1 {
				args = append(args, "0")
			}
			if !parseFloats(args, uv[:]) {
				return nil, fmt.Errorf("line %d: texcoord: %w", lineNo, ErrMalformedOBJ)
			}
			obj.TexCoords = append(obj.TexCoords, uv)
		case "vn":
			var n [3]float32
			if !parseFloats(args, n[:]) {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, ErrMalformedOBJ)
			}
			obj.Normals = append(obj.Normals, n)
		case "f":
			if len(args) < 3 {
				return nil, fmt.Errorf("line %d: face needs 3 corners: %w", lineNo, ErrMalformedOBJ)
			}
			face := OBJFace{Material: material, Group: group, Corners: make([]OBJIndex, 0, len(args))}
			for _, a := range args {
				idx, err := obj.parseCorner(a)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				face.Corners = append(face.Corners, idx)
			}
			obj.Faces = append(obj.Faces, face)
		case "usemtl":
			material = strings.Join(args, " ")
		case "mtllib":
			obj.MaterialLibs = append(obj.MaterialLibs, args...)
		case "o", "g":
			group = strings.Join(args, " ")
		default:
			// s, l, p and vendor extensions are not rendered
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}
	if len(obj.Faces) == 0 {
		return nil, ErrEmptyOBJ
	}
	if progress != nil && reported < 1 {
		progress(1)
	}
	return obj, nil
}

// parseCorner resolves "v", "v/vt", "v//vn" or "v/vt/vn" against the
// elements read so far. Negative indices are relative to the end.
func (o *OBJ) parseCorner(s string) (OBJIndex, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return OBJIndex{}, ErrMalformedOBJ
	}

	idx := OBJIndex{V: -1, VT: -1, VN: -1}
	var err error
	if idx.V, err = resolveIndex(parts[0], len(o.Positions)); err != nil || idx.V < 0 {
		if err == nil {
			err = ErrMalformedOBJ
		}
		return OBJIndex{}, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if idx.VT, err = resolveIndex(parts[1], len(o.TexCoords)); err != nil {
			return OBJIndex{}, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if idx.VN, err = resolveIndex(parts[2], len(o.Normals)); err != nil {
			return OBJIndex{}, err
		}
	}
	return idx, nil
}

func resolveIndex(s string, count int) (int, error) {
	if s == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrMalformedOBJ
	}
	switch {
	case n > 0 && n <= count:
		return n - 1, nil
	case n < 0 && -n <= count:
		return count + n, nil
	default:
		return 0, ErrInvalidOBJIndex
	}
}
