package box_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mdkit/simbox/box"
)

// GuardSuite exercises the validated parameter store: strict single
// writes, lenient bulk updates and the tilt-consistency invariant.
type GuardSuite struct {
	suite.Suite
}

// TestDefaults verifies the default cell: unit cube at the origin,
// orthogonal, fully periodic, tilt disallowed.
func (s *GuardSuite) TestDefaults() {
	p := box.New().Params()
	require.Equal(s.T(), 0.0, p.X0)
	require.Equal(s.T(), 1.0, p.Lx)
	require.Equal(s.T(), 1.0, p.Ly)
	require.Equal(s.T(), 1.0, p.Lz)
	require.Equal(s.T(), 90.0, p.Alpha)
	require.Equal(s.T(), 90.0, p.Beta)
	require.Equal(s.T(), 90.0, p.Gamma)
	require.False(s.T(), p.AllowTilt)
	require.Equal(s.T(), "pp", p.Bx)
	require.Equal(s.T(), "pp", p.By)
	require.Equal(s.T(), "pp", p.Bz)
}

// TestSetUnknownField verifies that a strict write to an unknown name
// fails with ErrUnknownField.
func (s *GuardSuite) TestSetUnknownField() {
	b := box.New()
	err := b.Set("volume", 1.0)
	require.ErrorIs(s.T(), err, box.ErrUnknownField)
}

// TestSetWrongType verifies that a wrongly-typed strict write fails with
// ErrInvalidParams and leaves the field untouched.
func (s *GuardSuite) TestSetWrongType() {
	b := box.New()
	require.ErrorIs(s.T(), b.Set("lx", "wide"), box.ErrInvalidParams)
	require.ErrorIs(s.T(), b.Set("allow_tilt", 1), box.ErrInvalidParams)
	require.ErrorIs(s.T(), b.Set("bx", 3.0), box.ErrInvalidParams)
	require.Equal(s.T(), 1.0, b.Params().Lx)
}

// TestSetAngleEnablesTilt verifies invariant I1: writing a non-90 angle
// flips AllowTilt to true.
func (s *GuardSuite) TestSetAngleEnablesTilt() {
	b := box.New()
	require.NoError(s.T(), b.Set("gamma", 120.0))
	require.True(s.T(), b.Params().AllowTilt)
	require.Equal(s.T(), 120.0, b.Params().Gamma)
}

// TestTiltCannotBeDisabled verifies that disabling AllowTilt on a
// non-orthogonal cell is overridden back to true.
func (s *GuardSuite) TestTiltCannotBeDisabled() {
	b := box.New()
	require.NoError(s.T(), b.Set("alpha", 80.0))
	require.NoError(s.T(), b.Set("allow_tilt", false))
	require.True(s.T(), b.Params().AllowTilt)
}

// TestTiltInvariantInBulkUpdate verifies that a bulk update setting an
// angle and allow_tilt=false together still ends with AllowTilt true.
func (s *GuardSuite) TestTiltInvariantInBulkUpdate() {
	b := box.New()
	b.Update(map[string]any{"alpha": 120.0, "allow_tilt": false})
	require.True(s.T(), b.Params().AllowTilt)
	require.Equal(s.T(), 120.0, b.Params().Alpha)
}

// TestUpdateDropsUnknownKeys verifies graceful degradation: unknown keys
// are dropped with a warning while known keys apply.
func (s *GuardSuite) TestUpdateDropsUnknownKeys() {
	var buf bytes.Buffer
	box.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer box.SetLogger(nil)

	b := box.New()
	b.Update(map[string]any{"lx": 5.0, "volume": 125.0, "shape": "cube"})

	require.Equal(s.T(), 5.0, b.Params().Lx)
	require.Contains(s.T(), buf.String(), "ignored invalid input parameters")
	require.Contains(s.T(), buf.String(), "volume")
	require.Contains(s.T(), buf.String(), "shape")
}

// TestNewWith verifies construction with overrides.
func (s *GuardSuite) TestNewWith() {
	b := box.NewWith(map[string]any{"lx": 2.0, "ly": 3.0, "bz": "ff"})
	p := b.Params()
	require.Equal(s.T(), 2.0, p.Lx)
	require.Equal(s.T(), 3.0, p.Ly)
	require.Equal(s.T(), "ff", p.Bz)
}

// TestIntCoercion verifies numeric fields accept untyped int literals.
func (s *GuardSuite) TestIntCoercion() {
	b := box.New()
	require.NoError(s.T(), b.Set("alpha", 60))
	require.Equal(s.T(), 60.0, b.Params().Alpha)
	require.True(s.T(), b.Params().AllowTilt)
}

func TestGuardSuite(t *testing.T) {
	suite.Run(t, new(GuardSuite))
}

// TestParseVariant verifies token and alias resolution both ways.
func TestParseVariant(t *testing.T) {
	cases := []struct {
		tok  string
		want box.Variant
	}{
		{"basis", box.Basis},
		{"poscar", box.Basis},
		{"vasp", box.Basis},
		{"lattice", box.Lattice},
		{"vmd", box.Lattice},
		{"lmpdata", box.LmpData},
		{"lmpdump", box.LmpDump},
		{"dcd", box.DCD},
	}
	for _, tc := range cases {
		t.Run(tc.tok, func(t *testing.T) {
			v, err := box.ParseVariant(tc.tok)
			if err != nil {
				t.Fatalf("ParseVariant(%q) error: %v", tc.tok, err)
			}
			if v != tc.want {
				t.Errorf("ParseVariant(%q) = %v; want %v", tc.tok, v, tc.want)
			}
		})
	}

	if _, err := box.ParseVariant("cif"); !errors.Is(err, box.ErrUnknownVariant) {
		t.Errorf("ParseVariant(cif) error = %v; want ErrUnknownVariant", err)
	}
}

// TestVariantArity pins the expected input arity per representation.
func TestVariantArity(t *testing.T) {
	arities := map[box.Variant]int{
		box.Basis:   9,
		box.LmpData: 9,
		box.LmpDump: 9,
		box.Lattice: 6,
		box.DCD:     6,
	}
	for v, want := range arities {
		if got := v.Arity(); got != want {
			t.Errorf("%v.Arity() = %d; want %d", v, got, want)
		}
	}
}
