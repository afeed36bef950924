// Package typewriter renders a markdown document as if it were being typed.
//
// A Sequence yields one frame per character of the source: the converted
// prefix followed by a cursor marker. After the last character it yields a
// final frame with the whole document and no cursor. Frames are computed
// lazily and a Sequence is consumed as it is read; it cannot be rewound.
//
// Every Sequence carries the session generation it was started for so a
// caller can drop frames that belong to a superseded analysis.
package typewriter

import (
	"iter"
	"strings"
)

// Converter turns markdown into display text. Implementations must accept
// incomplete markdown without failing hard.
type Converter interface {
	Convert(markdown string) (string, error)
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc func(string) (string, error)

func (f ConverterFunc) Convert(markdown string) (string, error) { return f(markdown) }

// DefaultCursor is appended to every non-final frame.
const DefaultCursor = "▌"

// Frame is one snapshot of the document being typed.
type Frame struct {
	Index int // characters shown minus one; the final frame uses the document length
	Text  string
	Final bool
}

// Sequence is a lazy, single-pass series of frames for one document.
type Sequence struct {
	gen    uint64
	runes  []rune
	pos    int
	conv   Converter
	cursor string
	done   bool
}

// New starts a Sequence for document, tagged with generation gen.
func New(gen uint64, document string, conv Converter, cursor string) *Sequence {
	return &Sequence{
		gen:    gen,
		runes:  []rune(document),
		conv:   conv,
		cursor: cursor,
	}
}

// Generation returns the session generation the Sequence belongs to.
func (s *Sequence) Generation() uint64 { return s.gen }

// Done reports whether the final frame has been produced.
func (s *Sequence) Done() bool { return s.done }

// Len returns the number of characters in the document.
func (s *Sequence) Len() int { return len(s.runes) }

// Next produces the next frame. It returns false once the final frame has
// already been produced.
func (s *Sequence) Next() (Frame, bool) {
	if s.done {
		return Frame{}, false
	}
	if s.pos >= len(s.runes) {
		return s.finish(), true
	}

	s.pos++
	prefix := string(s.runes[:s.pos])
	text := strings.TrimRight(s.convert(prefix), "\n") + s.cursor
	return Frame{Index: s.pos - 1, Text: text}, true
}

// Skip jumps straight to the final frame.
func (s *Sequence) Skip() Frame {
	if s.done {
		return Frame{Index: len(s.runes), Text: s.convert(string(s.runes)), Final: true}
	}
	s.pos = len(s.runes)
	return s.finish()
}

// Frames drains the remaining frames.
func (s *Sequence) Frames() iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for {
			f, ok := s.Next()
			if !ok || !yield(f) {
				return
			}
		}
	}
}

func (s *Sequence) finish() Frame {
	s.done = true
	if len(s.runes) == 0 {
		return Frame{Final: true}
	}
	return Frame{Index: len(s.runes), Text: s.convert(string(s.runes)), Final: true}
}

// convert falls back to the raw text when the converter rejects a prefix.
func (s *Sequence) convert(md string) string {
	if s.conv == nil {
		return md
	}
	out, err := s.conv.Convert(md)
	if err != nil {
		return md
	}
	return out
}
