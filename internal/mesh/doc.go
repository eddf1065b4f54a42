// Package mesh triangulates a height field into a closed, 3D-printable
// solid and serializes it as ASCII STL.
//
// The builder emits a triangle soup: every facet carries its own three
// vertices plus one flat normal, with no vertex deduplication or indexing.
// Slicers neither need nor reward an indexed mesh for this geometry, and the
// soup keeps the 3-vertices-1-normal invariant type-checked instead of
// convention-based.
//
// # Geometry Conventions
//
// The model is centered at the origin in X and Y and sits on the z=0 plane.
// Pixel coordinates convert to millimeters by dividing by the resolution
// multiplier; pixel (0,0) maps to the (-width/2, -height/2) corner. Normals
// point out of the solid, and the winding of every triangle follows the
// right-hand rule against its declared normal.
package mesh
