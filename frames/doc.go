// Package frames reads multi-frame text trajectories lazily: one pass
// builds a byte-offset index, and frames decode on demand.
//
// What:
//
//   - Open scans a file once, calling a SplitFunc per line to locate
//     frame starts; only the offsets are kept.
//   - Frame/Text read a single frame by index, negative indices counting
//     from the end; Slice and Pick build Views that share the index.
//   - Iter walks frames in bufio.Scanner style and restarts cleanly.
//   - Files ending in ".gz" decompress transparently.
//   - Parser is the consumer contract: the reader locates frames,
//     format-specific parsers interpret their text.
//
// Why:
//
//   - Trajectories routinely outgrow memory; indexing costs one pass and
//     O(frames) memory, after which any frame is one bounded read away.
//
// Errors:
//
//   - ErrNoIndex: Open called without a SplitFunc.
//   - ErrFrameRange: frame index or slice outside the indexed range.
//
// Complexity: Open is O(file size); Frame is O(frame size) for plain
// files and O(offset) for gzip (the stream is decompressed up to the
// frame).
package frames
