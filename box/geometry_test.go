package box_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mdkit/simbox/box"
)

// TestDefaultGeometry verifies the end-to-end default: identity basis,
// unit corners, identity inverse and axis-aligned face normals.
func TestDefaultGeometry(t *testing.T) {
	g := box.New().Geometry()

	require.Equal(t, r3.Vec{}, g.Lo)
	require.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, g.Hi)
	require.Equal(t, r3.Vec{X: 1}, g.V[0])
	require.Equal(t, r3.Vec{Y: 1}, g.V[1])
	require.Equal(t, r3.Vec{Z: 1}, g.V[2])
	require.Equal(t, g.V, g.U)
	require.Equal(t, g.V, g.BN)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			require.Equal(t, want, g.UInv.At(i, j), "UInv[%d][%d]", i, j)
		}
	}

	require.Equal(t, 1.0, g.A)
	require.Equal(t, 1.0, g.B)
	require.Equal(t, 1.0, g.C)
	require.Equal(t, 0.0, g.CosAlpha)
	require.Equal(t, 0.0, g.CosBeta)
	require.Equal(t, 0.0, g.CosGamma)
}

// TestTriclinicGeometry pins the derived quantities of a 60-degree
// monoclinic cell against hand-computed values.
func TestTriclinicGeometry(t *testing.T) {
	b := box.New()
	_, err := b.ReadValues([]float64{4, 4, 4, 90, 90, 60}, "lattice")
	require.NoError(t, err)

	g := b.Geometry()
	const (
		sin60 = 0.866025404 // rounded at 9 decimals, like the geometry
		tol   = 1e-9
	)

	require.True(t, scalar.EqualWithinAbs(g.B, 4, 1e-6), "b = %v", g.B)
	require.True(t, scalar.EqualWithinAbs(g.XY, 2, 1e-6), "xy = %v", g.XY)
	require.True(t, scalar.EqualWithinAbs(g.XZ, 0, tol), "xz = %v", g.XZ)
	require.True(t, scalar.EqualWithinAbs(g.YZ, 0, tol), "yz = %v", g.YZ)

	// V rows follow the lower-triangular convention.
	require.True(t, scalar.EqualWithinAbs(g.V[1].X, 2, 1e-6))
	require.True(t, scalar.EqualWithinAbs(g.V[1].Y, 4*sin60, 1e-6))

	// U rows are unit length; BN[1] = U[2] x U[0] is the +y normal here.
	require.True(t, scalar.EqualWithinAbs(r3.Norm(g.U[1]), 1, tol))
	require.True(t, scalar.EqualWithinAbs(g.BN[1].Y, 1, tol))
	require.True(t, scalar.EqualWithinAbs(g.BN[0].X, sin60, 1e-6))
	require.True(t, scalar.EqualWithinAbs(g.BN[0].Y, -0.5, 1e-6))
}

// TestGeometryNotCached verifies that mutation is visible on the next
// Geometry call, since the view is recomputed every time.
func TestGeometryNotCached(t *testing.T) {
	b := box.New()
	g1 := b.Geometry()
	require.NoError(t, b.Set("lx", 3.0))
	g2 := b.Geometry()

	require.Equal(t, 1.0, g1.Hi.X)
	require.Equal(t, 3.0, g2.Hi.X)
}

// TestFractional verifies fractional coordinates on the unit cube and on
// a tilted cell, where the far corner must still map to (1,1,1).
func TestFractional(t *testing.T) {
	b := box.New()
	fr := b.Fractional([]r3.Vec{{}, {X: 1, Y: 1, Z: 1}, {X: 0.5, Y: 0.25, Z: 0}})
	require.Equal(t, r3.Vec{}, fr[0])
	require.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, fr[1])
	require.Equal(t, r3.Vec{X: 0.5, Y: 0.25, Z: 0}, fr[2])

	tilted := box.New()
	_, err := tilted.ReadValues([]float64{4, 4, 4, 90, 90, 60}, "lattice")
	require.NoError(t, err)

	g := tilted.Geometry()
	corner := r3.Add(r3.Add(g.V[0], g.V[1]), g.V[2])
	fr = tilted.Fractional([]r3.Vec{corner})
	require.True(t, scalar.EqualWithinAbs(fr[0].X, 1, 1e-6), "frac x = %v", fr[0].X)
	require.True(t, scalar.EqualWithinAbs(fr[0].Y, 1, 1e-6), "frac y = %v", fr[0].Y)
	require.True(t, scalar.EqualWithinAbs(fr[0].Z, 1, 1e-6), "frac z = %v", fr[0].Z)
}
