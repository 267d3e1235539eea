package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedMTL is returned for MTL statements with unparsable values.
var ErrMalformedMTL = errors.New("malformed MTL statement")

// Material is one newmtl block of an MTL library.
type Material struct {
	Name       string
	Ambient    [3]float32
	Diffuse    [3]float32
	Specular   [3]float32
	Shininess  float32
	Opacity    float32
	DiffuseMap string // map_Kd path, relative to the library
}

// DefaultMaterial returns a material with the values most exporters assume
// when a statement is omitted.
func DefaultMaterial(name string) Material {
	return Material{
		Name:    name,
		Ambient: [3]float32{0.2, 0.2, 0.2},
		Diffuse: [3]float32{0.8, 0.8, 0.8},
		Opacity: 1,
	}
}

// ParseMTL parses a material library into a name-keyed map.
func ParseMTL(data []byte) (map[string]Material, error) {
	lib := make(map[string]Material)
	var cur *Material

	flush := func() {
		if cur != nil {
			lib[cur.Name] = *cur
		}
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		keyword, args := fields(scanner.Text())
		if keyword == "" {
			continue
		}
		if keyword == "newmtl" {
			flush()
			m := DefaultMaterial(strings.Join(args, " "))
			cur = &m
			continue
		}
		if cur == nil {
			// statements before the first newmtl have nothing to apply to
			continue
		}

		ok := true
		switch keyword {
		case "Ka":
			ok = parseFloats(args, cur.Ambient[:])
		case "Kd":
			ok = parseFloats(args, cur.Diffuse[:])
		case "Ks":
			ok = parseFloats(args, cur.Specular[:])
		case "Ns":
			var ns [1]float32
			ok = parseFloats(args, ns[:])
			cur.Shininess = ns[0]
		case "d":
			var d [1]float32
			ok = parseFloats(args, d[:])
			cur.Opacity = d[0]
		case "Tr":
			var tr [1]float32
			ok = parseFloats(args, tr[:])
			cur.Opacity = 1 - tr[0]
		case "map_Kd":
			if len(args) == 0 {
				ok = false
				break
			}
			// options such as -s 1 1 1 precede the file name
			cur.DiffuseMap = args[len(args)-1]
		}
		if !ok {
			return nil, fmt.Errorf("line %d: %s: %w", lineNo, keyword, ErrMalformedMTL)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading MTL: %w", err)
	}
	flush()
	return lib, nil
}
