package mesh

import (
	"github.com/ironsheep/lithophane-mcp/internal/field"
)

// frameLipMM is how far the optional frame rises above the relief surface.
const frameLipMM = 1.0

// BuildOptions controls the triangulation of a height field.
type BuildOptions struct {
	// Name is the solid name for the STL header.
	Name string

	// WidthMM and HeightMM are the physical footprint of the relief. The
	// model is centered so it spans [-WidthMM/2, ...] x [-HeightMM/2, ...].
	WidthMM  float64
	HeightMM float64

	// ThicknessMM is the total model thickness; the frame rises frameLipMM
	// above it.
	ThicknessMM float64

	// ResolutionMultiplier converts grid indices to millimeters: one pixel
	// spans 1/ResolutionMultiplier mm.
	ResolutionMultiplier int

	// FrameEnabled adds a raised rectangular border around the relief.
	FrameEnabled bool

	// FrameWidthMM is how far the frame extends beyond the relief footprint
	// on every side.
	FrameWidthMM float64
}

// Build triangulates a final height field into a closed solid:
// the relief top surface, a flat base at z=0, four side walls, and the
// optional raised frame.
//
// Triangle counts are deterministic in the grid size: 2*(W-1)*(H-1) for the
// top, 2 for the base, 2*(H-1) for each of the left/right walls, 2*(W-1)
// for each of the front/back walls, and 24 for the frame when enabled.
func Build(hf *field.Field, opts BuildOptions) *Document {
	doc := &Document{Name: opts.Name}

	res := float64(opts.ResolutionMultiplier)
	if res <= 0 {
		res = 1
	}
	// Grid index -> centered physical coordinate.
	px := func(x int) float64 { return float64(x)/res - opts.WidthMM/2 }
	py := func(y int) float64 { return float64(y)/res - opts.HeightMM/2 }

	w, h := hf.W, hf.H
	minX, maxX := px(0), px(w-1)
	minY, maxY := py(0), py(h-1)

	up := Vec3{0, 0, 1}
	down := Vec3{0, 0, -1}

	// Top relief surface: two triangles per 2x2 block, CCW seen from +Z.
	for y := 0; y < h-1; y++ {
		for x := 0; x < w-1; x++ {
			p00 := Vec3{px(x), py(y), hf.At(x, y)}
			p10 := Vec3{px(x + 1), py(y), hf.At(x+1, y)}
			p01 := Vec3{px(x), py(y + 1), hf.At(x, y+1)}
			p11 := Vec3{px(x + 1), py(y + 1), hf.At(x+1, y+1)}
			doc.add(up, p00, p10, p11)
			doc.add(up, p00, p11, p01)
		}
	}

	// Base: the full rectangle at z=0, facing down.
	b00 := Vec3{minX, minY, 0}
	b10 := Vec3{maxX, minY, 0}
	b01 := Vec3{minX, maxY, 0}
	b11 := Vec3{maxX, maxY, 0}
	doc.add(down, b00, b11, b10)
	doc.add(down, b00, b01, b11)

	// Front wall (y = minY, outward -Y) and back wall (y = maxY, outward +Y).
	for x := 0; x < w-1; x++ {
		x0, x1 := px(x), px(x+1)

		a0 := Vec3{x0, minY, 0}
		a1 := Vec3{x1, minY, 0}
		t0 := Vec3{x0, minY, hf.At(x, 0)}
		t1 := Vec3{x1, minY, hf.At(x+1, 0)}
		doc.add(Vec3{0, -1, 0}, a0, t1, t0)
		doc.add(Vec3{0, -1, 0}, a0, a1, t1)

		a0 = Vec3{x0, maxY, 0}
		a1 = Vec3{x1, maxY, 0}
		t0 = Vec3{x0, maxY, hf.At(x, h-1)}
		t1 = Vec3{x1, maxY, hf.At(x+1, h-1)}
		doc.add(Vec3{0, 1, 0}, a0, t0, t1)
		doc.add(Vec3{0, 1, 0}, a0, t1, a1)
	}

	// Left wall (x = minX, outward -X) and right wall (x = maxX, outward +X).
	for y := 0; y < h-1; y++ {
		y0, y1 := py(y), py(y+1)

		a0 := Vec3{minX, y0, 0}
		a1 := Vec3{minX, y1, 0}
		t0 := Vec3{minX, y0, hf.At(0, y)}
		t1 := Vec3{minX, y1, hf.At(0, y+1)}
		doc.add(Vec3{-1, 0, 0}, a0, t0, t1)
		doc.add(Vec3{-1, 0, 0}, a0, t1, a1)

		a0 = Vec3{maxX, y0, 0}
		a1 = Vec3{maxX, y1, 0}
		t0 = Vec3{maxX, y0, hf.At(w-1, y)}
		t1 = Vec3{maxX, y1, hf.At(w-1, y+1)}
		doc.add(Vec3{1, 0, 0}, a0, t1, t0)
		doc.add(Vec3{1, 0, 0}, a0, a1, t1)
	}

	if opts.FrameEnabled && opts.FrameWidthMM > 0 {
		buildFrame(doc, minX, maxX, minY, maxY, opts.FrameWidthMM, opts.ThicknessMM+frameLipMM)
	}

	return doc
}

// buildFrame adds the raised rectangular border: a flat ring at z=0 facing
// down, a flat ring at the frame height facing up, and the outer wall.
// That is 3 rings of 4 quads = 24 triangles. The inner face of the ring is
// coincident with the model's own side walls and is not emitted; slicers
// union the overlapping solids.
func buildFrame(doc *Document, ix0, ix1, iy0, iy1, frameWidth, frameHeight float64) {
	ox0, ox1 := ix0-frameWidth, ix1+frameWidth
	oy0, oy1 := iy0-frameWidth, iy1+frameWidth

	// The ring decomposes into four strips: two full-width spans above and
	// below the relief, two side spans between them.
	strips := [4][4]float64{
		{ox0, oy0, ox1, iy0}, // front
		{ox0, iy1, ox1, oy1}, // back
		{ox0, iy0, ix0, iy1}, // left
		{ix1, iy0, ox1, iy1}, // right
	}

	up := Vec3{0, 0, 1}
	down := Vec3{0, 0, -1}
	for _, s := range strips {
		x0, y0, x1, y1 := s[0], s[1], s[2], s[3]

		q00 := Vec3{x0, y0, frameHeight}
		q10 := Vec3{x1, y0, frameHeight}
		q01 := Vec3{x0, y1, frameHeight}
		q11 := Vec3{x1, y1, frameHeight}
		doc.add(up, q00, q10, q11)
		doc.add(up, q00, q11, q01)

		q00.Z, q10.Z, q01.Z, q11.Z = 0, 0, 0, 0
		doc.add(down, q00, q11, q10)
		doc.add(down, q00, q01, q11)
	}

	// Outer wall, one quad per side, z=0 up to the frame height.
	addWall := func(normal Vec3, a0, a1 Vec3) {
		t0 := Vec3{a0.X, a0.Y, frameHeight}
		t1 := Vec3{a1.X, a1.Y, frameHeight}
		// Winding per side so the declared outward normal holds.
		if normal.Y < 0 || normal.X > 0 {
			doc.add(normal, a0, t1, t0)
			doc.add(normal, a0, a1, t1)
		} else {
			doc.add(normal, a0, t0, t1)
			doc.add(normal, a0, t1, a1)
		}
	}
	addWall(Vec3{0, -1, 0}, Vec3{ox0, oy0, 0}, Vec3{ox1, oy0, 0})
	addWall(Vec3{0, 1, 0}, Vec3{ox0, oy1, 0}, Vec3{ox1, oy1, 0})
	addWall(Vec3{-1, 0, 0}, Vec3{ox0, oy0, 0}, Vec3{ox0, oy1, 0})
	addWall(Vec3{1, 0, 0}, Vec3{ox1, oy0, 0}, Vec3{ox1, oy1, 0})
}
