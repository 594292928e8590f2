// Package box models the simulation cell of atomistic post-processing:
// a possibly triclinic parallelepiped around a set of particle
// coordinates, with periodic boundaries.
//
// What:
//
//   - Box owns the canonical cell parameters (origin, edge lengths,
//     angles, tilt flag, boundary codes) behind validated setters.
//   - Five external representations convert in and out: basis vectors,
//     lattice parameters, LAMMPS data, LAMMPS dump and DCD, with the
//     aliases vmd (lattice) and poscar/vasp (basis). GuessVariant infers
//     the representation of a raw 6- or 9-value array.
//   - Geometry derives the basis matrix, its normalized form and inverse,
//     and the unit face normals, fresh on every call.
//   - Check, Extend, Wrap and Ghost answer spatial questions: boundary-
//     inclusive containment, in-place growth around stray points,
//     periodic re-mapping, and the seven periodic image batches.
//   - Report renders any representation bit-stable for file writers.
//
// Why:
//
//   - Trajectory and structure formats disagree on how a cell is written;
//     one canonical store keeps them mutually consistent under mutation.
//   - Post-processing needs the derived quantities (fractional
//     coordinates, face distances, ghost images) far more often than the
//     raw parameters.
//
// Invariants:
//
//   - A cell with any angle away from 90 degrees always has AllowTilt
//     true; writes violating this are auto-corrected with a warning, not
//     rejected.
//   - The parameter set is closed: no name outside it is ever accepted.
//
// Errors:
//
//   - ErrMissingParams: no input values supplied.
//   - ErrInvalidParams: value array length not 6 or 9, non-numeric token,
//     or a wrongly-typed strict write.
//   - ErrUnknownField: strict single-field write to an unknown name.
//   - ErrUnknownVariant: unrecognized representation token.
//   - ErrUnsupportedFormat: cell description given as a file reference.
//
// Boxes are not safe for concurrent mutation; wrap shared instances in
// your own synchronization. All queries are O(1) or O(n) in the number
// of points.
package box
