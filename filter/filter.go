// Package filter turns a byte Source into a codepoint stream: it decodes
// UTF-8, strips a leading byte-order mark, normalizes line endings to a bare
// LF, reassembles UTF-16 surrogate pairs, synthesizes a trailing LF if the
// input didn't end in one, and counts lines. It is the second stage of the
// reader pipeline, sitting between Source and Tokenizer.
package filter

import (
	"math"

	"github.com/aledsdavies/shastina/codec"
	"github.com/aledsdavies/shastina/errkind"
	"github.com/aledsdavies/shastina/source"
)

const byteOrderMark = 0xFEFF

// Filter decodes a Source into normalized codepoints. It holds exactly one
// codepoint of pushback; a second Pushback call without an intervening
// ReadCode is a caller fault and panics, matching the contract in the core
// spec.
type Filter struct {
	src source.Source

	first bool // true until the very first codepoint has been examined

	line int64

	hasPending bool
	pendingVal int32
	lastVal    int32

	lastWasLF       bool
	injectedFinalLF bool

	latched    bool
	latchedErr error
}

// New returns a Filter reading from src.
func New(src source.Source) *Filter {
	return &Filter{src: src, first: true, line: 1}
}

// ReadCode returns the next normalized codepoint, or an error (one of
// errkind's Kind values, including Eof once the stream is exhausted). Once
// an error is returned, every subsequent call returns the same error.
func (f *Filter) ReadCode() (int32, error) {
	if f.latched {
		return 0, f.latchedErr
	}
	if f.hasPending {
		f.hasPending = false
		return f.pendingVal, nil
	}
	cp, err := f.decode()
	if err != nil {
		f.latched = true
		f.latchedErr = err
		return 0, err
	}
	f.lastVal = cp
	return cp, nil
}

// Pushback un-reads the codepoint most recently returned by ReadCode, so the
// next ReadCode call returns it again. Calling it twice without an
// intervening ReadCode is a contract violation and panics. Calling it once
// the stream has already latched a terminal error or Eof is harmless: the
// next read still yields the latched value, since there is nothing
// meaningful left to push back.
func (f *Filter) Pushback() {
	if f.latched {
		return
	}
	if f.hasPending {
		panic("filter: pushback without an intervening read")
	}
	f.hasPending = true
	f.pendingVal = f.lastVal
}

// LineCount returns the 1-based line number reached so far. Per the
// reference implementation's own quirk (preserved here deliberately, see
// SPEC_FULL.md), the counter increments the instant a line feed is decoded,
// even if that line feed is later pushed back by a caller that hasn't
// "consumed" it from its own point of view.
func (f *Filter) LineCount() int64 {
	return f.line
}

func (f *Filter) bumpLine() {
	if f.line < math.MaxInt64 {
		f.line++
	}
}

// readRaw pulls one UTF-8 sequence directly from the source, with no BOM,
// CRLF, or surrogate handling. eof is true only when the source had nothing
// left to offer a fresh lead byte.
func (f *Filter) readRaw() (cp int32, eof bool, err error) {
	lead := f.src.ReadByte()
	switch lead {
	case source.EOF:
		return 0, true, nil
	case source.IOErr:
		return 0, false, errkind.IoErr
	}
	trail, ok := codec.Trail(byte(lead))
	if !ok {
		return 0, false, errkind.Utf8
	}
	if trail == 0 {
		return int32(lead), false, nil
	}
	var cont [3]byte
	for i := 0; i < trail; i++ {
		b := f.src.ReadByte()
		switch b {
		case source.EOF:
			// Running out of input mid-sequence is a malformed encoding,
			// not a clean end of stream.
			return 0, false, errkind.Utf8
		case source.IOErr:
			return 0, false, errkind.IoErr
		}
		cont[i] = byte(b)
	}
	val, ok := codec.Decode(byte(lead), trail, cont[:trail])
	if !ok {
		return 0, false, errkind.Utf8
	}
	return val, false, nil
}

// decodeNormalized applies BOM suppression (first codepoint only), CR/LF
// normalization, and surrogate-pair reassembly on top of readRaw.
func (f *Filter) decodeNormalized() (cp int32, eof bool, err error) {
	raw, isEOF, rerr := f.readRaw()
	if rerr != nil {
		return 0, false, rerr
	}
	if isEOF {
		return 0, true, nil
	}
	if f.first {
		f.first = false
		if raw == byteOrderMark {
			return f.decodeNormalized()
		}
	}
	switch {
	case raw == '\r':
		next, nEOF, nerr := f.readRaw()
		if nerr != nil {
			return 0, false, nerr
		}
		if nEOF || next != '\n' {
			return 0, false, errkind.BadCr
		}
		raw = '\n'
	case codec.IsHighSurrogate(raw):
		next, nEOF, nerr := f.readRaw()
		if nerr != nil {
			return 0, false, nerr
		}
		if nEOF || !codec.IsLowSurrogate(next) {
			return 0, false, errkind.Unpaired
		}
		raw = codec.Unpair(raw, next)
	case codec.IsLowSurrogate(raw):
		return 0, false, errkind.Unpaired
	}
	return raw, false, nil
}

// decode is the full per-codepoint algorithm: normalize, then apply final-LF
// synthesis and line counting.
func (f *Filter) decode() (int32, error) {
	cp, isEOF, err := f.decodeNormalized()
	if err != nil {
		return 0, err
	}
	if isEOF {
		if f.injectedFinalLF || f.lastWasLF {
			return 0, errkind.Eof
		}
		f.injectedFinalLF = true
		f.lastWasLF = true
		f.bumpLine()
		return '\n', nil
	}
	if cp == '\n' {
		f.lastWasLF = true
		f.bumpLine()
	} else {
		f.lastWasLF = false
	}
	return cp, nil
}
