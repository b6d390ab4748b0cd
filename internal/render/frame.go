// Package render turns a byte store and a view state into a Frame, and
// writes Frames to terminals.
package render

import (
	"io"
	"strings"
)

type Marker int

const (
	MarkerClear Marker = iota
	MarkerHome
)

type LineKind int

const (
	KindTitle LineKind = iota
	KindMode
	KindSeparator
	KindGrid
	KindChar
	KindBlank
	KindDetail
	KindHelp
)

// Span is a run of text drawn with or without the cursor highlight.
type Span struct {
	Text      string
	Highlight bool
}

type Line struct {
	Kind  LineKind
	Spans []Span
}

func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Frame is one full screen. Markers are emitted before the lines.
type Frame struct {
	Markers []Marker
	Lines   []Line
}

func (f Frame) String() string {
	var b strings.Builder
	for i, l := range f.Lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(l.Text())
	}
	return b.String()
}

const (
	ansiHome         = "\033[H"
	ansiClear        = "\033[2J\033[3J"
	ansiHighlightOn  = "\033[7m"
	ansiHighlightOff = "\033[0m"
)

// WriteANSI writes f using raw VT100 escape sequences.
func WriteANSI(w io.Writer, f Frame) error {
	var b strings.Builder
	for _, m := range f.Markers {
		switch m {
		case MarkerHome:
			b.WriteString(ansiHome)
		case MarkerClear:
			b.WriteString(ansiClear)
		}
	}
	for i, l := range f.Lines {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, s := range l.Spans {
			if s.Highlight {
				b.WriteString(ansiHighlightOn)
				b.WriteString(s.Text)
				b.WriteString(ansiHighlightOff)
			} else {
				b.WriteString(s.Text)
			}
		}
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}
