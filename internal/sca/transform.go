package sca

import (
	"strconv"
	"strings"
)

// DefaultDirective is the QC command that carries a variant's origin offset.
const DefaultDirective = "$origin"

// Transform is the origin offset applied to one animation variant: three
// spatial offsets and a rotation around Z. The zero value is the default.
type Transform struct {
	X    float64 `toml:"x"`
	Y    float64 `toml:"y"`
	Z    float64 `toml:"z"`
	ZRot float64 `toml:"z_rot"`
}

// IsModified reports whether any field differs from zero. Comparison is
// exact; negative zero counts as zero.
func (t Transform) IsModified() bool {
	return t.X != 0 || t.Y != 0 || t.Z != 0 || t.ZRot != 0
}

// Reset zeroes every field.
func (t *Transform) Reset() {
	*t = Transform{}
}

// Directive renders the line prepended to a build script, terminated by a
// newline, e.g. "$origin 1 2 3 4\n".
func (t Transform) Directive(keyword string) string {
	var b strings.Builder
	b.WriteString(keyword)
	for _, v := range [...]float64{t.X, t.Y, t.Z, t.ZRot} {
		b.WriteByte(' ')
		b.WriteString(formatFloat(v))
	}
	b.WriteByte('\n')
	return b.String()
}

// formatFloat uses the shortest decimal form that round-trips, never an
// exponent: 1 -> "1", 0.5 -> "0.5".
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
