package model

import (
	gomath "math"

	"github.com/Faultbox/gear-carousel/pkg/formats"
	"github.com/Faultbox/gear-carousel/pkg/math"
)

// BuildOptions contains options for mesh building.
type BuildOptions struct {
	// Transform is applied to every position and normal. The zero value
	// means identity.
	Transform math.Mat4
	// Materials resolves usemtl names. Unknown names get a default material.
	Materials map[string]formats.Material
	// Center moves the bounds center to the origin after transforming.
	Center bool
}

// BuildMesh triangulates obj into a mesh grouped by material.
// Returns nil if no face survives (all degenerate or out of range).
func BuildMesh(obj *formats.OBJ, opts BuildOptions) *Mesh {
	if obj == nil || len(obj.Faces) == 0 {
		return nil
	}

	xf := opts.Transform
	if xf == (math.Mat4{}) {
		xf = math.Identity()
	}

	var vertices []Vertex
	groups := make(map[string][]uint32)
	var order []string
	missingNormals := false

	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}

	corner := func(c formats.OBJIndex, faceNormal [3]float32) Vertex {
		p := xf.TransformPoint(math.V3(obj.Positions[c.V])).Array()
		updateBounds(&bounds, p)

		n := faceNormal
		if c.VN >= 0 && c.VN < len(obj.Normals) {
			n = normalize(xf.TransformDirection(math.V3(obj.Normals[c.VN])).Array())
		} else {
			missingNormals = true
		}

		var uv [2]float32
		if c.VT >= 0 && c.VT < len(obj.TexCoords) {
			tc := obj.TexCoords[c.VT]
			// OBJ has V pointing up; textures are uploaded top row first.
			uv = [2]float32{tc[0], 1 - tc[1]}
		}
		return Vertex{Position: p, Normal: n, TexCoord: uv}
	}

	for _, face := range obj.Faces {
		if len(face.Corners) < 3 || !cornersValid(face.Corners, len(obj.Positions)) {
			continue
		}
		if _, ok := groups[face.Material]; !ok {
			order = append(order, face.Material)
		}

		// Fan triangulation around the first corner.
		for i := 1; i+1 < len(face.Corners); i++ {
			tri := [3]formats.OBJIndex{face.Corners[0], face.Corners[i], face.Corners[i+1]}

			var pos [3][3]float32
			for j, c := range tri {
				pos[j] = xf.TransformPoint(math.V3(obj.Positions[c.V])).Array()
			}
			fn := cross(sub(pos[1], pos[0]), sub(pos[2], pos[0]))
			if length(fn) < 1e-9 {
				continue
			}
			fn = normalize(fn)

			base := uint32(len(vertices))
			for _, c := range tri {
				vertices = append(vertices, corner(c, fn))
			}
			groups[face.Material] = append(groups[face.Material], base, base+1, base+2)
		}
	}

	if len(vertices) == 0 {
		return nil
	}

	if missingNormals {
		SmoothNormals(vertices)
	}

	mesh := &Mesh{Vertices: vertices, Bounds: bounds}
	for _, name := range order {
		idxs := groups[name]
		if len(idxs) == 0 {
			continue
		}
		mat, ok := opts.Materials[name]
		if !ok {
			mat = formats.DefaultMaterial(name)
		}
		mesh.Groups = append(mesh.Groups, MaterialGroup{
			Material:   mat,
			StartIndex: int32(len(mesh.Indices)),
			IndexCount: int32(len(idxs)),
		})
		mesh.Indices = append(mesh.Indices, idxs...)
	}

	if opts.Center {
		CenterMesh(mesh)
	}
	return mesh
}

// CenterMesh translates the mesh so its bounds are centered on the origin.
// Returns the offset that was subtracted.
func CenterMesh(m *Mesh) [3]float32 {
	c := m.Bounds.Center()
	for i := range m.Vertices {
		for k := 0; k < 3; k++ {
			m.Vertices[i].Position[k] -= c[k]
		}
	}
	for k := 0; k < 3; k++ {
		m.Bounds.Min[k] -= c[k]
		m.Bounds.Max[k] -= c[k]
	}
	return c
}

// SmoothNormals averages normals at shared vertex positions.
// This reduces faceted appearance on models exported without normals.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(vertices[i].Position[0] / epsilon),
			int32(vertices[i].Position[1] / epsilon),
			int32(vertices[i].Position[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}
		var sum [3]float32
		for _, i := range idxs {
			n := vertices[i].Normal
			sum[0] += n[0]
			sum[1] += n[1]
			sum[2] += n[2]
		}
		if length(sum) < 1e-6 {
			continue
		}
		avg := normalize(sum)
		for _, i := range idxs {
			vertices[i].Normal = avg
		}
	}
}

func cornersValid(corners []formats.OBJIndex, n int) bool {
	for _, c := range corners {
		if c.V < 0 || c.V >= n {
			return false
		}
	}
	return true
}

func updateBounds(b *Bounds, p [3]float32) {
	for k := 0; k < 3; k++ {
		if p[k] < b.Min[k] {
			b.Min[k] = p[k]
		}
		if p[k] > b.Max[k] {
			b.Max[k] = p[k]
		}
	}
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func length(v [3]float32) float32 {
	return float32(gomath.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

func normalize(v [3]float32) [3]float32 {
	l := length(v)
	if l < 0.0001 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
