package box

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

// round9 rounds to 9 decimals, suppressing magnitudes below 1e-9 that are
// floating-point noise from the trig conversions.
func round9(x float64) float64 {
	return math.Round(x*1e9) / 1e9
}

func round9Vec(v r3.Vec) r3.Vec {
	return r3.Vec{X: round9(v.X), Y: round9(v.Y), Z: round9(v.Z)}
}

func round9Rows(rows [3]r3.Vec) [3]r3.Vec {
	return [3]r3.Vec{round9Vec(rows[0]), round9Vec(rows[1]), round9Vec(rows[2])}
}

// unit returns v scaled to unit length. The zero vector maps to itself
// rather than NaN so degenerate rows pass through unchanged.
func unit(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n == 0 {
		return v
	}

	return r3.Scale(1/n, v)
}

// denseRows packs three vector rows into a 3x3 dense matrix.
func denseRows(rows [3]r3.Vec) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		rows[0].X, rows[0].Y, rows[0].Z,
		rows[1].X, rows[1].Y, rows[1].Z,
		rows[2].X, rows[2].Y, rows[2].Z,
	})
}

// Geometry derives the full geometric view of the cell from the
// canonical parameters.
//
// Derivation, with ca/cb/cg the angle cosines:
//
//	a  = lx
//	b  = ly / sqrt(1-cg²)
//	c  = lz / sqrt(1 - cb² - (ca-cg·cb)²/(1-cg²))
//	xy = b·cg,  xz = c·cb,  yz = (b·c·ca - xy·xz)/ly
//
// The basis matrix V is lower-triangular from those values, U is V
// row-normalized, UInv its inverse, and BN the pairwise cyclic cross
// products of U's rows (the unit face normals). Everything is computed at
// full precision and rounded to 9 decimals at the end.
//
// The view is recomputed on every call and never cached; callers that
// query repeatedly against an unchanged cell should hold on to the
// returned value. Complexity: O(1), small fixed-size matrix work.
func (b *Box) Geometry() Geometry {
	p := b.in

	ca := math.Cos(p.Alpha * deg2rad)
	cb := math.Cos(p.Beta * deg2rad)
	cg := math.Cos(p.Gamma * deg2rad)

	la := p.Lx
	lb := p.Ly / math.Sqrt(1-cg*cg)
	lc := p.Lz / math.Sqrt(1-cb*cb-(ca-cg*cb)*(ca-cg*cb)/(1-cg*cg))

	xy := lb * cg
	xz := lc * cb
	yz := (lb*lc*ca - xy*xz) / p.Ly

	v := [3]r3.Vec{
		{X: p.Lx},
		{X: xy, Y: p.Ly},
		{X: xz, Y: yz, Z: p.Lz},
	}
	u := [3]r3.Vec{unit(v[0]), unit(v[1]), unit(v[2])}

	var uinv mat.Dense
	if err := uinv.Inverse(denseRows(u)); err != nil {
		// Only degenerate angle combinations produce a singular U; the
		// approximate inverse gonum still stores is all we can offer.
		logger.Warn("box: near-singular basis matrix", "err", err)
	}
	uinv.Apply(func(_, _ int, x float64) float64 { return round9(x) }, &uinv)

	bn := [3]r3.Vec{
		unit(r3.Cross(u[1], u[2])),
		unit(r3.Cross(u[2], u[0])),
		unit(r3.Cross(u[0], u[1])),
	}

	return Geometry{
		Lo:       round9Vec(r3.Vec{X: p.X0, Y: p.Y0, Z: p.Z0}),
		Hi:       round9Vec(r3.Vec{X: p.X0 + p.Lx, Y: p.Y0 + p.Ly, Z: p.Z0 + p.Lz}),
		CosAlpha: round9(ca),
		CosBeta:  round9(cb),
		CosGamma: round9(cg),
		A:        round9(la),
		B:        round9(lb),
		C:        round9(lc),
		XY:       round9(xy),
		XZ:       round9(xz),
		YZ:       round9(yz),
		V:        round9Rows(v),
		U:        round9Rows(u),
		UInv:     &uinv,
		BN:       round9Rows(bn),
	}
}

// Fractional converts cartesian points to fractional cell coordinates:
// the lo-relative position projected on each face normal, divided by the
// spacing between that pair of parallel faces (the per-row norm of V·BNᵀ,
// which accounts for non-unit spacing in tilted cells).
func (b *Box) Fractional(pts []r3.Vec) []r3.Vec {
	g := b.Geometry()

	var spacing [3]float64
	for i := 0; i < 3; i++ {
		var s float64
		for j := 0; j < 3; j++ {
			d := r3.Dot(g.V[i], g.BN[j])
			s += d * d
		}
		spacing[i] = math.Sqrt(s)
	}

	out := make([]r3.Vec, len(pts))
	for k, p := range pts {
		rel := r3.Sub(p, g.Lo)
		out[k] = r3.Vec{
			X: r3.Dot(rel, g.BN[0]) / spacing[0],
			Y: r3.Dot(rel, g.BN[1]) / spacing[1],
			Z: r3.Dot(rel, g.BN[2]) / spacing[2],
		}
	}

	return out
}
