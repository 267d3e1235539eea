// Package formats provides parsers for the asset formats shown in the
// lightbox: Wavefront OBJ geometry and its MTL material libraries.
package formats

import (
	"strconv"
	"strings"
)

// progressStep is the minimum fraction of input between two progress reports.
const progressStep = 1.0 / 64

// fields splits a statement into keyword and arguments, dropping comments.
func fields(line string) (string, []string) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	f := strings.Fields(line)
	if len(f) == 0 {
		return "", nil
	}
	return f[0], f[1:]
}

// parseFloats parses exactly len(dst) leading args into dst. Extra args are
// ignored (OBJ allows an optional w component).
func parseFloats(args []string, dst []float32) bool {
	if len(args) < len(dst) {
		return false
	}
	for i := range dst {
		v, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return false
		}
		dst[i] = float32(v)
	}
	return true
}
