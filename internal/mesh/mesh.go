package mesh

import "math"

// Vec3 is a point or direction in model space, in millimeters.
type Vec3 struct {
	X, Y, Z float64
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Cross returns the cross product v x w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Normalized returns v scaled to unit length, or the zero vector if v has
// no length.
func (v Vec3) Normalized() Vec3 {
	n := math.Sqrt(v.Dot(v))
	if n == 0 {
		return Vec3{}
	}
	return Vec3{v.X / n, v.Y / n, v.Z / n}
}

// Triangle is one facet of the solid: three vertices and a single flat
// normal shared by all of them.
type Triangle struct {
	V      [3]Vec3
	Normal Vec3
}

// GeometricNormal computes the normal implied by the triangle's winding via
// the right-hand rule. For degenerate (zero-area) triangles it returns the
// zero vector. Builder output keeps this aligned with the declared Normal;
// tests verify the two agree.
func (t Triangle) GeometricNormal() Vec3 {
	return t.V[1].Sub(t.V[0]).Cross(t.V[2].Sub(t.V[0])).Normalized()
}

// Document is an ordered, append-only sequence of triangles forming a
// closed, outward-consistent solid. Once built it is not modified.
type Document struct {
	// Name is the solid name emitted in the STL header and footer.
	Name string

	Triangles []Triangle
}

// add appends a facet with an explicit flat normal.
func (d *Document) add(normal Vec3, a, b, c Vec3) {
	d.Triangles = append(d.Triangles, Triangle{V: [3]Vec3{a, b, c}, Normal: normal})
}

// SignedVolume returns the volume enclosed by the document's triangles,
// computed as the sum of signed tetrahedron volumes against the origin.
// Positive for a closed solid with outward-consistent winding.
func (d *Document) SignedVolume() float64 {
	var six float64
	for _, t := range d.Triangles {
		six += t.V[0].Dot(t.V[1].Cross(t.V[2]))
	}
	return six / 6.0
}
