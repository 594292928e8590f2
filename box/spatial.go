package box

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// extendEps keeps previously-outbound points strictly inside after the
// cell grows around them.
const extendEps = 1e-7

// Check classifies each point against the cell. For every point it takes
// the signed distance to all six faces: the three lo faces use the
// negated face normals against the lo-relative position, the three hi
// faces use the normals against the position relative to the far corner
// (lo shifted by the sum of the lattice vectors). A point is inbound iff
// its minimum face distance is >= 0, so a point exactly on a face counts
// as inside.
//
// Outbound points are advisory, not an error: their indices go to the
// debug log and the caller decides whether to Extend or Wrap.
// Complexity: O(n).
func (b *Box) Check(pts []r3.Vec) Containment {
	g := b.Geometry()

	n := len(pts)
	c := Containment{
		Inbound:  make([]bool, n),
		Outbound: make([]bool, n),
	}
	if n == 0 {
		return c
	}
	c.Dist = mat.NewDense(n, 6, nil)

	vsum := r3.Add(r3.Add(g.V[0], g.V[1]), g.V[2])

	var outIdx []int
	for k, p := range pts {
		lo := r3.Sub(g.Lo, p)
		hi := r3.Add(lo, vsum)

		d := [6]float64{
			-r3.Dot(g.BN[0], lo),
			-r3.Dot(g.BN[1], lo),
			-r3.Dot(g.BN[2], lo),
			r3.Dot(g.BN[0], hi),
			r3.Dot(g.BN[1], hi),
			r3.Dot(g.BN[2], hi),
		}
		c.Dist.SetRow(k, d[:])

		minDist := d[0]
		for _, x := range d[1:] {
			if x < minDist {
				minDist = x
			}
		}
		c.Inbound[k] = minDist >= 0
		c.Outbound[k] = !c.Inbound[k]
		if c.Outbound[k] {
			outIdx = append(outIdx, k)
		}
	}

	if len(outIdx) > 0 {
		logger.Debug("box: points outside of bounding box",
			"count", len(outIdx), "indices", outIdx)
	}

	return c
}

// Extend grows the cell in place until it encloses every outbound point,
// with an extendEps margin, working along the cell's own (possibly
// tilted) directions independently. chk may carry a precomputed Check
// result for pts; pass nil to compute it here. pbc broadcasts to the
// three cell directions (default: no periodicity); a periodic direction
// is never grown, since wrapping, not growth, handles overflow there.
//
// Returns false when all points were already inside, true otherwise.
func (b *Box) Extend(pts []r3.Vec, chk *Containment, pbc []bool) bool {
	g := b.Geometry()

	if chk == nil {
		c := b.Check(pts)
		chk = &c
	}
	if chk.NumOutbound() == 0 {
		return false
	}
	per := broadcastPBC(pbc, false)

	var out []r3.Vec
	for k, o := range chk.Outbound {
		if o {
			out = append(out, pts[k])
		}
	}

	// New lo corner: component-wise min of (outbound - eps) and the
	// current corner. Periodic components collapse to zero.
	lo0 := g.Lo
	lo1 := lo0
	for _, p := range out {
		lo1.X = math.Min(lo1.X, p.X-extendEps)
		lo1.Y = math.Min(lo1.Y, p.Y-extendEps)
		lo1.Z = math.Min(lo1.Z, p.Z-extendEps)
	}
	if per[0] {
		lo1.X = 0
	}
	if per[1] {
		lo1.Y = 0
	}
	if per[2] {
		lo1.Z = 0
	}
	b.in.X0, b.in.Y0, b.in.Z0 = lo1.X, lo1.Y, lo1.Z

	// The lo move expressed in the cell frame, to keep the hi corner put.
	delta := r3.Sub(lo1, lo0)
	var shift [3]float64
	for i := 0; i < 3; i++ {
		shift[i] = r3.Dot(g.U[i], delta)
	}

	// Required extent per cell direction: the farthest outbound point
	// projected on each unit row, clamped below by the current length.
	dmax := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range out {
		rel := r3.Sub(p, lo0)
		for i := 0; i < 3; i++ {
			if d := r3.Dot(g.U[i], rel); d > dmax[i] {
				dmax[i] = d
			}
		}
	}

	basis := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		want := dmax[i] + extendEps
		if per[i] {
			want = 0
		}
		extent := math.Max(want, r3.Norm(g.V[i])) - shift[i]
		row := r3.Scale(extent, g.U[i])
		basis = append(basis, row.X, row.Y, row.Z)
	}
	b.apply(fromBasis(basis))

	return true
}

// Wrap translates outbound points back into the cell by whole lattice
// vectors and returns them as a new slice; the input is never mutated.
// For each negative face distance the number of repeats is
// |floor(dist/|v|)| of the matching lattice vector, applied positively
// for the lo faces and negatively for the hi faces. Non-periodic
// directions (pbc, default fully periodic) contribute nothing. When no
// point is outbound the input slice is returned unchanged.
func (b *Box) Wrap(pts []r3.Vec, chk *Containment, pbc []bool) []r3.Vec {
	g := b.Geometry()

	if chk == nil {
		c := b.Check(pts)
		chk = &c
	}
	if chk.NumOutbound() == 0 {
		return pts
	}
	per := broadcastPBC(pbc, true)

	vlen := [3]float64{r3.Norm(g.V[0]), r3.Norm(g.V[1]), r3.Norm(g.V[2])}
	dirs := [6]r3.Vec{
		g.V[0], g.V[1], g.V[2],
		r3.Scale(-1, g.V[0]), r3.Scale(-1, g.V[1]), r3.Scale(-1, g.V[2]),
	}

	out := make([]r3.Vec, len(pts))
	for k, p := range pts {
		shift := r3.Vec{}
		for col := 0; col < 6; col++ {
			d := chk.Dist.At(k, col)
			if d >= 0 || !per[col%3] {
				continue
			}
			rep := math.Abs(math.Floor(d / vlen[col%3]))
			shift = r3.Add(shift, r3.Scale(rep, dirs[col]))
		}
		out[k] = r3.Add(p, shift)
	}

	return out
}

// GhostIter lazily yields the periodic ghost images of a point set:
// first the full diagonal-shifted copy, then the three single-direction
// copies, then the three pairwise-direction copies. Exactly seven
// batches for a fully periodic 3D cell; a fresh iterator from Box.Ghost
// restarts the identical sequence.
type GhostIter struct {
	ref    []r3.Vec
	side   []float64
	shifts [7]r3.Vec
	next   int
}

// Ghost builds a ghost-image iterator over pts, which must already be
// wrapped inside the cell (wrap first: pts = b.Wrap(pts, nil, nil)).
// pbc broadcasts to the three cell directions, default fully periodic.
//
// The translation sign is chosen per point by comparing its squared
// distance to the minus- and plus-diagonal images and keeping the nearer
// one; that per-point sign then applies to every batch. Do not assume
// the rule generalizes to a different neighbor convention.
func (b *Box) Ghost(pts []r3.Vec, pbc []bool) *GhostIter {
	g := b.Geometry()
	per := broadcastPBC(pbc, true)

	L := [3]float64{g.A, g.B, g.C}
	for i := 0; i < 3; i++ {
		if !per[i] {
			L[i] = 0
		}
	}
	axis := [3]r3.Vec{
		r3.Scale(L[0], g.U[0]),
		r3.Scale(L[1], g.U[1]),
		r3.Scale(L[2], g.U[2]),
	}
	diag := r3.Add(r3.Add(axis[0], axis[1]), axis[2])

	side := make([]float64, len(pts))
	for k, p := range pts {
		minus := r3.Norm2(r3.Sub(p, diag))
		plus := r3.Norm2(r3.Add(p, diag))
		if minus <= plus {
			side[k] = -1
		} else {
			side[k] = 1
		}
	}

	return &GhostIter{
		ref:  pts,
		side: side,
		shifts: [7]r3.Vec{
			diag,
			axis[0], axis[1], axis[2],
			r3.Add(axis[0], axis[1]),
			r3.Add(axis[1], axis[2]),
			r3.Add(axis[2], axis[0]),
		},
	}
}

// Next advances to the following image batch, reporting false after the
// seventh.
func (it *GhostIter) Next() bool {
	if it.next >= len(it.shifts) {
		return false
	}
	it.next++

	return true
}

// Points materializes the current batch: each reference point translated
// by its own sign times the batch shift. Call only after Next returned
// true.
func (it *GhostIter) Points() []r3.Vec {
	s := it.shifts[it.next-1]
	out := make([]r3.Vec, len(it.ref))
	for k, p := range it.ref {
		out[k] = r3.Add(p, r3.Scale(it.side[k], s))
	}

	return out
}
