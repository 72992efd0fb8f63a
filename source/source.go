// Package source defines the byte-level pull interface the filter layer
// reads from, plus a small set of concrete sources for driving the reader
// from memory, an io.Reader, or a file.
package source

import (
	"errors"
	"io"
	"math"
	"os"

	"github.com/aledsdavies/shastina/errkind"
)

// Sentinel values returned by Source.ReadByte in place of an actual byte.
const (
	EOF   = -2
	IOErr = -1
)

// Source is the external interface the filter layer pulls bytes from. It is
// synchronous and single-threaded: a Source is never read from more than
// one goroutine at a time.
type Source interface {
	// ReadByte returns the next byte as an int in [0,255], or one of the
	// EOF/IOErr sentinels.
	ReadByte() int

	// ByteCount returns the number of bytes delivered so far, saturating at
	// math.MaxInt64 rather than wrapping.
	ByteCount() int64

	// IsMultipass reports whether Rewind is supported.
	IsMultipass() bool

	// Rewind resets the source to its beginning and zeroes ByteCount. It
	// returns an error if the source is not multipass.
	Rewind() error

	// ConsumeTrailingBlank reads the rest of the source up to EOF. It
	// returns nil if every remaining byte is a space, tab, CR, or LF,
	// errkind.Trailer at the first other byte, and errkind.IoErr on an
	// I/O failure.
	ConsumeTrailingBlank() error
}

// ErrNotMultipass is returned by Rewind on a single-pass source.
var ErrNotMultipass = errors.New("source: not multipass")

func bump(count *int64) {
	if *count < math.MaxInt64 {
		*count++
	}
}

// consumeTrailingBlank drains readByte until EOF, an I/O error, or a byte
// that isn't space, tab, CR, or LF. It's shared by every concrete Source
// since the rule doesn't depend on where the bytes come from.
func consumeTrailingBlank(readByte func() int) error {
	for {
		b := readByte()
		switch b {
		case EOF:
			return nil
		case IOErr:
			return errkind.IoErr
		case ' ', '\t', '\r', '\n':
			continue
		default:
			return errkind.Trailer
		}
	}
}

// Memory is a multipass Source reading from an in-memory byte slice. It is
// the source the CLI parses a file's contents from, and the one the package
// tests in this module drive the reader with.
type Memory struct {
	data []byte
	pos  int
	n    int64
}

// NewMemory returns a Memory source over data. data is not copied; callers
// must not mutate it while the source is in use.
func NewMemory(data []byte) *Memory {
	return &Memory{data: data}
}

func (m *Memory) ReadByte() int {
	if m.pos >= len(m.data) {
		return EOF
	}
	b := m.data[m.pos]
	m.pos++
	bump(&m.n)
	return int(b)
}

func (m *Memory) ByteCount() int64            { return m.n }
func (m *Memory) IsMultipass() bool           { return true }
func (m *Memory) Rewind() error               { m.pos = 0; m.n = 0; return nil }
func (m *Memory) ConsumeTrailingBlank() error { return consumeTrailingBlank(m.ReadByte) }

// Reader is a single-pass Source wrapping an io.Reader, for stdin or any
// other stream that cannot be rewound.
type Reader struct {
	r   io.Reader
	n   int64
	buf [1]byte
	err error
}

// NewReader returns a single-pass Source reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (s *Reader) ReadByte() int {
	if s.err != nil {
		if s.err == io.EOF {
			return EOF
		}
		return IOErr
	}
	n, err := s.r.Read(s.buf[:])
	if n == 1 {
		bump(&s.n)
		// A reader that returns both data and an error on the same call is
		// allowed by io.Reader; deliver the byte now and remember the
		// error for the next call.
		s.err = err
		return int(s.buf[0])
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	s.err = err
	if err == io.EOF {
		return EOF
	}
	return IOErr
}

func (s *Reader) ByteCount() int64            { return s.n }
func (s *Reader) IsMultipass() bool           { return false }
func (s *Reader) Rewind() error               { return ErrNotMultipass }
func (s *Reader) ConsumeTrailingBlank() error { return consumeTrailingBlank(s.ReadByte) }

// File is a multipass Source backed by an *os.File, seeking back to the
// start on Rewind.
type File struct {
	f   *os.File
	n   int64
	buf [1]byte
	err error
}

// NewFile wraps f as a multipass Source. The caller retains ownership of f
// and is responsible for closing it.
func NewFile(f *os.File) *File {
	return &File{f: f}
}

func (s *File) ReadByte() int {
	if s.err != nil {
		if s.err == io.EOF {
			return EOF
		}
		return IOErr
	}
	n, err := s.f.Read(s.buf[:])
	if n == 1 {
		bump(&s.n)
		s.err = err
		return int(s.buf[0])
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	s.err = err
	if err == io.EOF {
		return EOF
	}
	return IOErr
}

func (s *File) ByteCount() int64  { return s.n }
func (s *File) IsMultipass() bool { return true }

func (s *File) Rewind() error {
	if _, err := s.f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	s.n = 0
	s.err = nil
	return nil
}

func (s *File) ConsumeTrailingBlank() error { return consumeTrailingBlank(s.ReadByte) }
