package box

import (
	"fmt"
	"strings"
)

// Report renders the cell in the representation named by typ, resolving
// the same aliases as ingestion (vmd, poscar, vasp). Any other token,
// including "" and "all", yields the full report: every representation
// under a section header, preceded by the raw input parameters.
func (b *Box) Report(typ string) string {
	g := b.Geometry()

	if v, err := ParseVariant(typ); err == nil {
		switch v {
		case Basis:
			return b.formatBasis(g)
		case Lattice:
			return b.formatLattice(g)
		case LmpData:
			return b.formatLmpData(g)
		case LmpDump:
			return b.formatLmpDump(g)
		case DCD:
			return b.formatDCD(g)
		}
	}

	var sb strings.Builder
	sb.WriteString("\n# ----- input parameters (origin, bb-length, angle, boundary) -----\n")
	sb.WriteString(b.formatParams() + "\n")
	sb.WriteString("\n# ----- basis Vectors -----\n")
	sb.WriteString(b.formatBasis(g) + "\n")
	sb.WriteString("\n# ----- lattice Parameters -----\n")
	sb.WriteString(b.formatLattice(g) + "\n")
	sb.WriteString("# alpha is between b c, beta a c, gamma a b\n")
	sb.WriteString("\n# ----- lammps data file -----\n")
	sb.WriteString(b.formatLmpData(g) + "\n")
	sb.WriteString("\n# ----- lammps dump file -----\n")
	sb.WriteString(b.formatLmpDump(g) + "\n")
	sb.WriteString("\n# ----- dcd file ----\n")
	sb.WriteString(b.formatDCD(g) + "\n")

	return sb.String()
}

// formatParams lists the raw canonical parameters in declaration order.
func (b *Box) formatParams() string {
	p := b.in

	return fmt.Sprintf(
		"x0=%g y0=%g z0=%g lx=%g ly=%g lz=%g alpha=%g beta=%g gamma=%g allow_tilt=%t bx=%s by=%s bz=%s",
		p.X0, p.Y0, p.Z0, p.Lx, p.Ly, p.Lz,
		round9(p.Alpha), round9(p.Beta), round9(p.Gamma),
		p.AllowTilt, p.Bx, p.By, p.Bz)
}

// formatBasis prints the three lattice vectors, 9 decimals in
// 15-character fields.
func (b *Box) formatBasis(g Geometry) string {
	return fmt.Sprintf(
		" %15.9f  %15.9f  %15.9f\n %15.9f  %15.9f  %15.9f\n %15.9f  %15.9f  %15.9f",
		g.V[0].X, g.V[0].Y, g.V[0].Z,
		g.V[1].X, g.V[1].Y, g.V[1].Z,
		g.V[2].X, g.V[2].Y, g.V[2].Z)
}

func (b *Box) formatLattice(g Geometry) string {
	return fmt.Sprintf("%g %g %g %g %g %g  a b c alpha beta gamma",
		g.A, g.B, g.C,
		round9(b.in.Alpha), round9(b.in.Beta), round9(b.in.Gamma))
}

func (b *Box) formatLmpData(g Geometry) string {
	return fmt.Sprintf(
		" %.7f %.7f  xlo xhi\n %.7f %.7f  ylo yhi\n %.7f %.7f  zlo zhi\n %.7f %.7f %.7f  xy xz yz",
		g.Lo.X, g.Hi.X, g.Lo.Y, g.Hi.Y, g.Lo.Z, g.Hi.Z,
		g.XY, g.XZ, g.YZ)
}

func (b *Box) formatLmpDump(g Geometry) string {
	return fmt.Sprintf(
		"ITEM: BOX BOUNDS xy xz yz %s %s %s\n%.7f %.7f %.7f  xlo xhi xy\n%.7f %.7f %.7f  ylo yhi xz\n%.7f %.7f %.7f  zlo zhi yz",
		b.in.Bx, b.in.By, b.in.Bz,
		g.Lo.X, g.Hi.X, g.XY,
		g.Lo.Y, g.Hi.Y, g.XZ,
		g.Lo.Z, g.Hi.Z, g.YZ)
}

func (b *Box) formatDCD(g Geometry) string {
	return fmt.Sprintf("%g %g %g %g %g %g  a cos_gamma b cos_beta cos_alpha c",
		g.A, g.CosGamma, g.B, g.CosBeta, g.CosAlpha, g.C)
}
