package box

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Box owns one simulation cell. All state lives in a single canonical
// Params value; every mutation goes through Set, Update or the ingestion
// entry points so the tilt-consistency invariant holds after each write.
//
// A Box is not safe for concurrent mutation; callers sharing one across
// goroutines must serialize access themselves.
type Box struct {
	in Params
}

// New returns a Box with default parameters: a unit cube at the origin,
// right angles, periodic on all axes.
func New() *Box {
	return &Box{in: DefaultParams()}
}

// NewWith returns a Box with defaults overridden by kv, applied with
// Update semantics (unknown keys dropped with a warning).
func NewWith(kv map[string]any) *Box {
	b := New()
	b.Update(kv)

	return b
}

// Params returns a copy of the canonical cell parameters.
func (b *Box) Params() Params {
	return b.in
}

// Set writes a single parameter by name. Unknown names return
// ErrUnknownField; a value of the wrong dynamic type returns
// ErrInvalidParams. Numeric fields accept float64 or int.
//
// Setting any angle away from 90 degrees enables AllowTilt; explicitly
// disabling AllowTilt while an angle is non-orthogonal is overridden back
// to true. Both corrections log a warning.
func (b *Box) Set(key string, value any) error {
	switch key {
	case "x0", "y0", "z0", "lx", "ly", "lz", "alpha", "beta", "gamma":
		f, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("%w: %s must be numeric, got %T", ErrInvalidParams, key, value)
		}
		*b.numField(key) = f
		if isAngle(key) && f != 90 && !b.in.AllowTilt {
			logger.Warn("box: non-orthogonal cell, enabling allow_tilt", "angle", key, "value", f)
			b.in.AllowTilt = true
		}
	case "allow_tilt":
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: allow_tilt must be bool, got %T", ErrInvalidParams, value)
		}
		b.in.AllowTilt = v
		if !v && b.in.tilted() {
			logger.Warn("box: non-orthogonal cell, keeping allow_tilt = true")
			b.in.AllowTilt = true
		}
	case "bx", "by", "bz":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s must be string, got %T", ErrInvalidParams, key, value)
		}
		switch key {
		case "bx":
			b.in.Bx = s
		case "by":
			b.in.By = s
		default:
			b.in.Bz = s
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}

	return nil
}

// Update applies a bulk parameter patch. Unlike Set it degrades
// gracefully: keys that are unknown or carry an unusable value are
// dropped, and one warning lists them. Keys apply in sorted order so the
// outcome is deterministic.
func (b *Box) Update(kv map[string]any) {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var dropped []string
	for _, k := range keys {
		if err := b.Set(k, kv[k]); err != nil {
			dropped = append(dropped, k)
		}
	}
	if len(dropped) > 0 {
		logger.Warn("box: ignored invalid input parameters", "keys", dropped)
	}
}

// numField maps a numeric parameter name to its storage. Callers pass
// only names accepted by Set.
func (b *Box) numField(key string) *float64 {
	switch key {
	case "x0":
		return &b.in.X0
	case "y0":
		return &b.in.Y0
	case "z0":
		return &b.in.Z0
	case "lx":
		return &b.in.Lx
	case "ly":
		return &b.in.Ly
	case "lz":
		return &b.in.Lz
	case "alpha":
		return &b.in.Alpha
	case "beta":
		return &b.in.Beta
	default:
		return &b.in.Gamma
	}
}

func isAngle(key string) bool {
	return key == "alpha" || key == "beta" || key == "gamma"
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}

	return 0, false
}

// GuessVariant infers which representation a raw value array encodes.
//
// The heuristic is order-dependent: a 9-array with
// monotonic (0,1),(2,3),(4,5) pairs reads as LmpData, else with monotonic
// (0,1),(3,4),(6,7) pairs as LmpDump, else as Basis; a 6-array whose
// positions 1, 3 and 4 are all ≤ 1 reads as DCD (those slots hold
// cosines), else as Lattice. Values exactly at a comparison boundary are
// ambiguous by construction; pass an explicit type to disambiguate.
//
// Returns ErrMissingParams for nil input and ErrInvalidParams for any
// other length.
func GuessVariant(values []float64) (Variant, error) {
	if values == nil {
		return 0, ErrMissingParams
	}
	switch len(values) {
	case 9:
		if values[0] < values[1] && values[2] < values[3] && values[4] < values[5] {
			return LmpData, nil
		}
		if values[0] < values[1] && values[3] < values[4] && values[6] < values[7] {
			return LmpDump, nil
		}

		return Basis, nil
	case 6:
		if values[1] <= 1 && values[3] <= 1 && values[4] <= 1 {
			return DCD, nil
		}

		return Lattice, nil
	}

	return 0, fmt.Errorf("%w: got %d values, want 6 or 9", ErrInvalidParams, len(values))
}

// ReadValues ingests a raw value array in the representation named by
// typ ("" means guess, aliases vmd/poscar/vasp accepted) and updates the
// cell in place. The guessed or resolved variant is returned.
//
// Converters only ever set the nine geometric fields. After conversion
// AllowTilt is forced true whenever any resulting angle is not 90
// degrees, regardless of its prior value.
func (b *Box) ReadValues(values []float64, typ string) (Variant, error) {
	var (
		v   Variant
		err error
	)
	if typ == "" {
		v, err = GuessVariant(values)
	} else {
		v, err = ParseVariant(typ)
	}
	if err != nil {
		return 0, err
	}
	if values == nil {
		return 0, ErrMissingParams
	}
	if len(values) != v.Arity() {
		return 0, fmt.Errorf("%w: %s expects %d values, got %d",
			ErrInvalidParams, v, v.Arity(), len(values))
	}

	b.apply(converters[v](values))

	return v, nil
}

// ReadString tokenizes s on whitespace and commas and ingests the result
// via ReadValues. A single token would be a file reference; reading the
// cell from a file is not implemented and returns ErrUnsupportedFormat.
func (b *Box) ReadString(s, typ string) (Variant, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	switch len(fields) {
	case 0:
		return 0, ErrMissingParams
	case 1:
		return 0, fmt.Errorf("%w: reading a cell from file %q is not implemented",
			ErrUnsupportedFormat, fields[0])
	}

	values := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not numeric", ErrInvalidParams, f)
		}
		values[i] = x
	}

	return b.ReadValues(values, typ)
}
