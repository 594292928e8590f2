// Package simbox is an in-memory toolkit for the geometry of atomistic
// simulation cells (orthogonal or triclinic) and for lazy reading of
// multi-frame text trajectories.
//
// What is simbox?
//
//	A small, focused library that brings together:
//		• box:    the cell geometry engine. Canonical parameters, five
//		          interchangeable external representations (basis vectors,
//		          lattice parameters, LAMMPS data, LAMMPS dump, DCD),
//		          derived basis/inverse/face-normal geometry, containment,
//		          extension, periodic wrapping and ghost images
//		• frames: byte-offset indexing of multi-frame trajectory files,
//		          with lazy per-frame decoding and transparent gzip
//
// Why simbox?
//
//   - One canonical representation: every external format converts in and
//     out of the same nine-parameter store, so formats never drift apart
//   - No hidden caching: derived geometry is recomputed from the canonical
//     parameters on every query, so what you read is always current
//   - gonum under the hood: vectors and matrices are gonum's, not ours
//
// Start with box.New, feed it values with ReadValues or ReadString, and ask
// it questions: Geometry, Check, Wrap, Ghost, Report.
//
//	go get github.com/mdkit/simbox
package simbox
