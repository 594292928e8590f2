// Package box defines core types, sentinel errors and the representation
// tags for the simulation-cell geometry engine of github.com/mdkit/simbox.
package box

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sentinel errors for box operations.
var (
	// ErrMissingParams indicates no input values were supplied.
	ErrMissingParams = errors.New("box: missing input parameters")
	// ErrInvalidParams indicates input values of unusable length or type.
	ErrInvalidParams = errors.New("box: invalid input parameters")
	// ErrUnknownField indicates a strict single-field write to a name
	// outside the closed parameter set.
	ErrUnknownField = errors.New("box: not a box input parameter")
	// ErrUnknownVariant indicates an unrecognized representation token.
	ErrUnknownVariant = errors.New("box: unknown representation type")
	// ErrUnsupportedFormat indicates a box description form that is not
	// implemented, such as reading the cell from a file reference.
	ErrUnsupportedFormat = errors.New("box: unsupported input format")
)

// Variant tags one of the five external cell representations.
type Variant int

const (
	// Basis is a 3x3 row-major matrix of lattice vectors (9 values).
	Basis Variant = iota
	// Lattice is a,b,c,alpha,beta,gamma with angles in degrees (6 values).
	Lattice
	// LmpData is the LAMMPS data-file form xlo,xhi,ylo,yhi,zlo,zhi,xy,xz,yz.
	LmpData
	// LmpDump is the LAMMPS dump-header form xlo,xhi,xy,ylo,yhi,xz,zlo,zhi,yz.
	LmpDump
	// DCD is the DCD trajectory form a,cos_gamma,b,cos_beta,cos_alpha,c.
	DCD
)

// variantNames maps canonical tokens and their aliases to a Variant.
// vmd files carry lattice parameters; POSCAR/VASP files carry basis vectors.
var variantNames = map[string]Variant{
	"basis":   Basis,
	"poscar":  Basis,
	"vasp":    Basis,
	"lattice": Lattice,
	"vmd":     Lattice,
	"lmpdata": LmpData,
	"lmpdump": LmpDump,
	"dcd":     DCD,
}

// String returns the canonical token for v.
func (v Variant) String() string {
	switch v {
	case Basis:
		return "basis"
	case Lattice:
		return "lattice"
	case LmpData:
		return "lmpdata"
	case LmpDump:
		return "lmpdump"
	case DCD:
		return "dcd"
	}

	return fmt.Sprintf("Variant(%d)", int(v))
}

// Arity returns the number of raw values the representation expects.
func (v Variant) Arity() int {
	switch v {
	case Lattice, DCD:
		return 6
	default:
		return 9
	}
}

// ParseVariant resolves a representation token, accepting the aliases
// vmd (lattice) and poscar/vasp (basis). Matching is exact and lowercase.
// Returns ErrUnknownVariant for anything else.
func ParseVariant(tok string) (Variant, error) {
	v, ok := variantNames[tok]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, tok)
	}

	return v, nil
}

// Params is the canonical nine-parameter-plus-flags cell store:
// origin, edge lengths, inter-edge angles in degrees, the tilt-allow flag
// and per-axis boundary codes ("pp" = periodic-periodic).
//
// The field set is closed: mutation goes through Box.Set / Box.Update so
// the tilt-consistency invariant is re-checked on every write. Alpha is
// the angle between edges b and c, Beta between a and c, Gamma between
// a and b; Lx runs along edge a.
type Params struct {
	X0, Y0, Z0         float64
	Lx, Ly, Lz         float64
	Alpha, Beta, Gamma float64
	AllowTilt          bool
	Bx, By, Bz         string
}

// DefaultParams returns the default cell: a unit cube at the origin,
// right angles everywhere, tilt disallowed, periodic on all axes.
func DefaultParams() Params {
	return Params{
		Lx: 1, Ly: 1, Lz: 1,
		Alpha: 90, Beta: 90, Gamma: 90,
		Bx: "pp", By: "pp", Bz: "pp",
	}
}

// tilted reports whether any cell angle departs from 90 degrees.
func (p Params) tilted() bool {
	return p.Alpha != 90 || p.Beta != 90 || p.Gamma != 90
}

// Geometry is the ephemeral derived view of a cell. It has no identity:
// Box.Geometry recomputes it from the canonical parameters on every call
// and never caches it, so there is no invalidation hazard. All values are
// rounded to 9 decimals to absorb floating-point noise.
type Geometry struct {
	// Lo and Hi are the cell corners (Hi = Lo + (Lx,Ly,Lz) per axis).
	Lo, Hi r3.Vec
	// CosAlpha, CosBeta, CosGamma are the cosines of the cell angles.
	CosAlpha, CosBeta, CosGamma float64
	// A, B, C are the lattice edge lengths.
	A, B, C float64
	// XY, XZ, YZ are the tilt factors of the basis matrix.
	XY, XZ, YZ float64
	// V holds the lattice vectors row-wise in the lower-triangular
	// convention: V[0]=(Lx,0,0), V[1]=(XY,Ly,0), V[2]=(XZ,YZ,Lz).
	V [3]r3.Vec
	// U is V with each row normalized to unit length.
	U [3]r3.Vec
	// UInv is the 3x3 inverse of U, for undoing coordinate transforms.
	UInv *mat.Dense
	// BN holds the unit face normals: BN[0]=U[1]xU[2], BN[1]=U[2]xU[0],
	// BN[2]=U[0]xU[1]. The opposite face of each pair reuses the normal
	// with its sign flipped.
	BN [3]r3.Vec
}

// Containment is the outcome of Box.Check for a point set.
type Containment struct {
	// Inbound[i] is true when point i lies inside the cell or exactly on
	// a face (zero distance counts as inbound).
	Inbound []bool
	// Outbound is the negation of Inbound.
	Outbound []bool
	// Dist is the n x 6 matrix of signed distances from each point to the
	// cell faces, columns ordered xlo, ylo, zlo, xhi, yhi, zhi.
	Dist *mat.Dense
}

// NumOutbound returns the number of points outside the cell.
func (c Containment) NumOutbound() int {
	var n int
	for _, out := range c.Outbound {
		if out {
			n++
		}
	}

	return n
}

// broadcastPBC expands a periodicity flag list to the three cell
// directions a, b, c: nil yields (def,def,def), a single flag is repeated,
// and two or more flags are taken as-is (missing tail filled with def).
func broadcastPBC(pbc []bool, def bool) [3]bool {
	out := [3]bool{def, def, def}
	switch len(pbc) {
	case 0:
	case 1:
		out[0], out[1], out[2] = pbc[0], pbc[0], pbc[0]
	default:
		for i := 0; i < 3 && i < len(pbc); i++ {
			out[i] = pbc[i]
		}
	}

	return out
}
