package frames

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// File is a byte-offset index over a multi-frame text trajectory. Open
// scans the file once, recording where each frame starts; frame content
// is read lazily on demand and never held in memory. Files ending in
// ".gz" are decompressed transparently, with offsets counted in the
// decompressed stream.
//
// A File is read-only by design: trajectory formats that support writing
// implement it elsewhere, against the Parser contract.
type File struct {
	path    string
	gz      bool
	offsets []int64
}

// Open indexes the trajectory at path. split is called for every line
// (terminator included) and a true return marks the start of a new
// frame; a trailing sentinel offset at end-of-data closes the last
// frame. Returns ErrNoIndex when split is nil.
//
// Complexity: one sequential pass, O(file size) time, O(frames) memory.
func Open(path string, split SplitFunc) (*File, error) {
	if split == nil {
		return nil, ErrNoIndex
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("frames: open %s: %w", path, err)
	}
	defer f.Close()

	gz := strings.HasSuffix(path, ".gz")
	var r io.Reader = f
	if gz {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("frames: open %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	br := bufio.NewReader(r)
	var (
		offsets []int64
		pos     int64
	)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			if split(line) {
				offsets = append(offsets, pos)
			}
			pos += int64(len(line))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("frames: index %s: %w", path, err)
		}
	}
	offsets = append(offsets, pos)

	return &File{path: path, gz: gz, offsets: offsets}, nil
}

// Len returns the number of indexed frames.
func (f *File) Len() int {
	return len(f.offsets) - 1
}

// resolve maps a possibly-negative frame index to its absolute position,
// or ErrFrameRange when out of bounds.
func (f *File) resolve(i int) (int, error) {
	n := f.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: %d frames, index %d", ErrFrameRange, n, i)
	}

	return i, nil
}

// Frame returns the raw bytes of frame i. Negative indices count from
// the end. Each call reopens the file and reads only the requested
// range.
func (f *File) Frame(i int) ([]byte, error) {
	ix, err := f.resolve(i)
	if err != nil {
		return nil, err
	}

	return f.readRange(f.offsets[ix], f.offsets[ix+1]-f.offsets[ix])
}

// Text returns frame i decoded as a string with trailing whitespace
// stripped.
func (f *File) Text(i int) (string, error) {
	raw, err := f.Frame(i)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(string(raw), " \t\r\n"), nil
}

// ParseFrame hands the decoded text of frame i to p.
func (f *File) ParseFrame(i int, p Parser) error {
	text, err := f.Text(i)
	if err != nil {
		return err
	}

	return p.Parse(text)
}

// readRange reads length bytes at off in the decompressed stream. Plain
// files seek directly; gzip files decompress and discard up to off.
func (f *File) readRange(off, length int64) ([]byte, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("frames: open %s: %w", f.path, err)
	}
	defer file.Close()

	buf := make([]byte, length)
	if f.gz {
		zr, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("frames: read %s: %w", f.path, err)
		}
		defer zr.Close()
		if _, err := io.CopyN(io.Discard, zr, off); err != nil {
			return nil, fmt.Errorf("frames: read %s: %w", f.path, err)
		}
		if _, err := io.ReadFull(zr, buf); err != nil {
			return nil, fmt.Errorf("frames: read %s: %w", f.path, err)
		}

		return buf, nil
	}

	if _, err := file.ReadAt(buf, off); err != nil && err != io.EOF {
		return nil, fmt.Errorf("frames: read %s: %w", f.path, err)
	}

	return buf, nil
}

// Slice returns a view over frames [start, stop) with the given step,
// using the usual negative-index and clamping conventions. step must be
// non-zero; a negative step walks backwards (stop exclusive). The view
// shares the root index, so no data is copied.
func (f *File) Slice(start, stop, step int) (*View, error) {
	if step == 0 {
		return nil, fmt.Errorf("%w: slice step must be non-zero", ErrFrameRange)
	}
	n := f.Len()

	clamp := func(i, lo, hi int) int {
		if i < 0 {
			i += n
		}
		if i < lo {
			return lo
		}
		if i > hi {
			return hi
		}
		return i
	}

	var indices []int
	if step > 0 {
		start, stop = clamp(start, 0, n), clamp(stop, 0, n)
		for i := start; i < stop; i += step {
			indices = append(indices, i)
		}
	} else {
		start, stop = clamp(start, -1, n-1), clamp(stop, -1, n-1)
		for i := start; i > stop; i += step {
			indices = append(indices, i)
		}
	}

	return &View{root: f, frames: indices}, nil
}

// Pick returns a view over the given frame indices, each resolved with
// negative-index support. Returns ErrFrameRange if any index is out of
// bounds.
func (f *File) Pick(indices []int) (*View, error) {
	resolved := make([]int, len(indices))
	for k, i := range indices {
		ix, err := f.resolve(i)
		if err != nil {
			return nil, err
		}
		resolved[k] = ix
	}

	return &View{root: f, frames: resolved}, nil
}

// Frames returns a restartable iterator over all frames in order.
func (f *File) Frames() *Iter {
	return &Iter{src: f, i: -1}
}

// View is a re-indexed window onto a File, produced by Slice or Pick.
// It reads through the root's byte-offset index.
type View struct {
	root   *File
	frames []int
}

// Len returns the number of frames in the view.
func (v *View) Len() int {
	return len(v.frames)
}

// Frame returns the raw bytes of view frame i (negative counts from the
// end of the view).
func (v *View) Frame(i int) ([]byte, error) {
	if i < 0 {
		i += len(v.frames)
	}
	if i < 0 || i >= len(v.frames) {
		return nil, fmt.Errorf("%w: %d frames in view, index %d", ErrFrameRange, len(v.frames), i)
	}

	return v.root.Frame(v.frames[i])
}

// Text returns view frame i decoded with trailing whitespace stripped.
func (v *View) Text(i int) (string, error) {
	raw, err := v.Frame(i)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(string(raw), " \t\r\n"), nil
}

// ParseFrame hands the decoded text of view frame i to p.
func (v *View) ParseFrame(i int, p Parser) error {
	text, err := v.Text(i)
	if err != nil {
		return err
	}

	return p.Parse(text)
}

// Frames returns a restartable iterator over the view in order.
func (v *View) Frames() *Iter {
	return &Iter{src: v, i: -1}
}

// source is the minimal frame access both File and View provide.
type source interface {
	Len() int
	Frame(i int) ([]byte, error)
}

// Iter walks a frame source in the bufio.Scanner style:
//
//	it := f.Frames()
//	for it.Scan() {
//		use(it.Text())
//	}
//	if err := it.Err(); err != nil { ... }
type Iter struct {
	src source
	i   int
	buf []byte
	err error
}

// Scan advances to the next frame, reading it eagerly. It returns false
// at the end of the sequence or on the first read error.
func (it *Iter) Scan() bool {
	if it.err != nil || it.i+1 >= it.src.Len() {
		return false
	}
	it.i++
	it.buf, it.err = it.src.Frame(it.i)

	return it.err == nil
}

// Bytes returns the raw content of the current frame.
func (it *Iter) Bytes() []byte {
	return it.buf
}

// Text returns the current frame decoded with trailing whitespace
// stripped.
func (it *Iter) Text() string {
	return strings.TrimRight(string(it.buf), " \t\r\n")
}

// Err returns the first error encountered by Scan, if any.
func (it *Iter) Err() error {
	return it.err
}
