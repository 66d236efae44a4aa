// Package token defines the lexical token categories of the language and the
// addressable byte ranges ("spans") used to report positions in source text.
package token

import "fmt"

// Span is a half-open byte range [Start, End) into a single canonical source
// string. A zero-value Span (Start == End == 0) is an ordinary empty range at
// offset 0 (the scanner gives one to the EOF token of an empty file), not the
// "unknown" sentinel; use Unknown to build the sentinel.
type Span struct {
	Start, End int
}

// unknownSpan is the sentinel returned by Unknown. Negative bounds cannot
// collide with any real byte offset.
var unknownSpan = Span{Start: -1, End: -1}

// Unknown returns the sentinel Span used when no source position is
// available (e.g. for compiler-synthesized nodes).
func Unknown() Span { return unknownSpan }

// IsUnknown reports whether s is the Unknown sentinel.
func (s Span) IsUnknown() bool { return s == unknownSpan }

// Contains reports whether the byte offset pos falls within the span.
func (s Span) Contains(pos int) bool {
	if s.IsUnknown() {
		return false
	}
	return pos >= s.Start && pos < s.End
}

// Length returns the number of bytes covered by the span.
func (s Span) Length() int {
	if s.IsUnknown() {
		return 0
	}
	return s.End - s.Start
}

// To returns the smallest span enclosing both s and other. If either is
// unknown, the other is returned unchanged (and if both are unknown, the
// result is unknown).
func (s Span) To(other Span) Span {
	if s.IsUnknown() {
		return other
	}
	if other.IsUnknown() {
		return s
	}
	res := s
	if other.Start < res.Start {
		res.Start = other.Start
	}
	if other.End > res.End {
		res.End = other.End
	}
	return res
}

func (s Span) String() string {
	if s.IsUnknown() {
		return "<unknown>"
	}
	return fmt.Sprintf("%d:%d", s.Start, s.End)
}

// Slice returns the text s addresses within src. It panics if s is unknown or
// out of bounds, the same way a slice expression would.
func (s Span) Slice(src string) string {
	return src[s.Start:s.End]
}
