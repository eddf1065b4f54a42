package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteASCIISTL serializes the document as ASCII STL:
//
//	solid <name>
//	  facet normal nx ny nz
//	    outer loop
//	      vertex x y z
//	      ...
//	    endloop
//	  endfacet
//	endsolid <name>
//
// Every numeric value is formatted with exactly six decimal digits so output
// is reproducible byte-for-byte across runs and platforms.
func WriteASCIISTL(w io.Writer, d *Document) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "solid %s\n", d.Name); err != nil {
		return fmt.Errorf("failed to write STL header: %w", err)
	}
	for _, t := range d.Triangles {
		fmt.Fprintf(bw, "  facet normal %.6f %.6f %.6f\n", t.Normal.X, t.Normal.Y, t.Normal.Z)
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range t.V {
			fmt.Fprintf(bw, "      vertex %.6f %.6f %.6f\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	if _, err := fmt.Fprintf(bw, "endsolid %s\n", d.Name); err != nil {
		return fmt.Errorf("failed to write STL footer: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush STL output: %w", err)
	}
	return nil
}

// ASCII returns the document serialized as an ASCII STL string.
func (d *Document) ASCII() string {
	var sb strings.Builder
	// strings.Builder never returns write errors.
	_ = WriteASCIISTL(&sb, d)
	return sb.String()
}
