// Package generator compiles a frozen cluster into its artifact documents.
// Both generators are pure: identical clusters always produce byte-identical
// text, and neither performs any I/O. Persisting output is the caller's
// responsibility.
package generator

import (
	"strings"
)

// indentUnit is the indentation applied per nesting level in both artifacts.
const indentUnit = "  "

// doc accumulates artifact text line by line.
type doc struct {
	b strings.Builder
}

// line writes one line at the given nesting level.
func (d *doc) line(level int, s string) {
	for i := 0; i < level; i++ {
		d.b.WriteString(indentUnit)
	}
	d.b.WriteString(s)
	d.b.WriteByte('\n')
}

// blank writes an empty separator line.
func (d *doc) blank() {
	d.b.WriteByte('\n')
}

func (d *doc) String() string {
	return d.b.String()
}
