package box

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// patch is the partial parameter update a converter produces. Converters
// touch only the nine geometric fields; flags and boundary codes are
// never set by a conversion.
type patch struct {
	origin             bool
	x0, y0, z0         float64
	lx, ly, lz         float64
	alpha, beta, gamma float64
}

// convertFunc turns a raw value array of the variant's arity into a patch.
// Each converter is pure; dispatch happens over the closed Variant set.
type convertFunc func(values []float64) patch

var converters = map[Variant]convertFunc{
	Basis:   fromBasis,
	Lattice: fromLattice,
	LmpData: fromLmpData,
	LmpDump: fromLmpDump,
	DCD:     fromDCD,
}

// apply writes a converter patch into the canonical store and enforces
// the conversion-side tilt rule: a non-orthogonal result always allows
// tilt, whatever the caller had set.
func (b *Box) apply(p patch) {
	if p.origin {
		b.in.X0, b.in.Y0, b.in.Z0 = p.x0, p.y0, p.z0
	}
	b.in.Lx, b.in.Ly, b.in.Lz = p.lx, p.ly, p.lz
	b.in.Alpha, b.in.Beta, b.in.Gamma = p.alpha, p.beta, p.gamma
	if b.in.tilted() {
		b.in.AllowTilt = true
	}
}

// fromBasis reads nine values as a row-major 3x3 matrix of lattice
// vectors v_a, v_b, v_c. Lengths come from the diagonal; angles from the
// arccosines of the pairwise dot products of the normalized rows.
func fromBasis(values []float64) patch {
	rows := [3]r3.Vec{
		{X: values[0], Y: values[1], Z: values[2]},
		{X: values[3], Y: values[4], Z: values[5]},
		{X: values[6], Y: values[7], Z: values[8]},
	}
	u := [3]r3.Vec{unit(rows[0]), unit(rows[1]), unit(rows[2])}

	return patch{
		lx:    values[0],
		ly:    values[4],
		lz:    values[8],
		alpha: math.Acos(r3.Dot(u[1], u[2])) * rad2deg,
		beta:  math.Acos(r3.Dot(u[0], u[2])) * rad2deg,
		gamma: math.Acos(r3.Dot(u[0], u[1])) * rad2deg,
	}
}

// fromLmpData reads xlo,xhi,ylo,yhi,zlo,zhi,xy,xz,yz: the origin is the
// lo corner and the spans plus tilt factors rebuild a basis matrix that
// delegates to fromBasis for lengths and angles.
func fromLmpData(values []float64) patch {
	xlo, xhi := values[0], values[1]
	ylo, yhi := values[2], values[3]
	zlo, zhi := values[4], values[5]
	xy, xz, yz := values[6], values[7], values[8]

	p := fromBasis([]float64{
		xhi - xlo, 0, 0,
		xy, yhi - ylo, 0,
		xz, yz, zhi - zlo,
	})
	p.origin = true
	p.x0, p.y0, p.z0 = xlo, ylo, zlo

	return p
}

// lmpDumpOrder permutes the dump-header field order
// xlo,xhi,xy,ylo,yhi,xz,zlo,zhi,yz into data-file order.
var lmpDumpOrder = [9]int{0, 1, 3, 4, 6, 7, 2, 5, 8}

// fromLmpDump permutes the dump-header fields and delegates to fromLmpData.
func fromLmpDump(values []float64) patch {
	ordered := make([]float64, 9)
	for i, j := range lmpDumpOrder {
		ordered[i] = values[j]
	}

	return fromLmpData(ordered)
}

// fromDCD reads a, cos_gamma, b, cos_beta, cos_alpha, c. Edge lengths
// project the lattice lengths onto the cartesian axes of the
// lower-triangular convention.
func fromDCD(values []float64) patch {
	a, cg := values[0], values[1]
	bb, cb := values[2], values[3]
	ca, c := values[4], values[5]

	ly := bb * math.Sqrt(1-cg*cg)
	lz := c * math.Sqrt(1-cb*cb-(ca-cg*cb)*(ca-cg*cb)/(1-cg*cg))

	return patch{
		lx:    a,
		ly:    ly,
		lz:    lz,
		alpha: math.Acos(ca) * rad2deg,
		beta:  math.Acos(cb) * rad2deg,
		gamma: math.Acos(cg) * rad2deg,
	}
}

// fromLattice reads a,b,c,alpha,beta,gamma (degrees), takes cosines and
// delegates to fromDCD.
func fromLattice(values []float64) patch {
	a, bb, c := values[0], values[1], values[2]
	ca := math.Cos(values[3] * deg2rad)
	cb := math.Cos(values[4] * deg2rad)
	cg := math.Cos(values[5] * deg2rad)

	return fromDCD([]float64{a, cg, bb, cb, ca, c})
}
