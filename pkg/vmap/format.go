package vmap

import (
	"bytes"
	"fmt"
	"slices"
)

// header is written at the top of every serialized map.
const header = "# This version map is maintained by symver. Edit released\n# blocks at your own risk.\n"

// Format serializes the graph into canonical map source: the header
// comment, then one block per release in graph order separated by blank
// lines. Symbols are sorted lexicographically and indented with four
// spaces; the closing brace carries the parent reference when one is set.
// Output always ends with a newline, and parsing it back yields a graph
// equal to g.
func Format(g *Graph) []byte {
	var b bytes.Buffer
	b.WriteString(header)
	for _, r := range g.Releases() {
		b.WriteByte('\n')
		formatRelease(&b, r)
	}
	return b.Bytes()
}

func formatRelease(b *bytes.Buffer, r *Release) {
	b.WriteString(r.Name)
	if !r.Released {
		b.WriteByte(' ')
		b.WriteString(openKeyword)
	}
	b.WriteString(" {\n")
	symbols := r.Symbols()
	slices.Sort(symbols)
	for _, s := range symbols {
		fmt.Fprintf(b, "    %s;\n", s)
	}
	if r.Parent != "" {
		fmt.Fprintf(b, "} %s;\n", r.Parent)
	} else {
		b.WriteString("};\n")
	}
}
