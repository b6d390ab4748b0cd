package render

import (
	"fmt"
	"strings"

	"bytedit/internal/codec"
	"bytedit/internal/view"
)

// Source is the read-only view of a byte store needed to draw a frame.
type Source interface {
	Size() int64
	Get(offset int64) byte
	Filename() string
	IsModified() bool
}

var separator = strings.Repeat("-", 56)

var helpLines = []string{
	"Commands: [Arrows] Navigate",
	"    View Mode    [1] Hex    [2] Bin    [3] Char",
	"    Edit Mode    [H] Hex    [B] Bin    [C] Char",
	"    [S] Save    [Q] Quit",
}

// Render draws the buffer as seen through st. It does not modify either.
func Render(src Source, st view.State) Frame {
	f := Frame{Markers: []Marker{MarkerHome, MarkerClear}}

	title := "File: " + src.Filename()
	if src.IsModified() {
		title += " [Modified]"
	}
	f.Lines = append(f.Lines,
		textLine(KindTitle, title),
		textLine(KindMode, fmt.Sprintf("Mode: [%s]", st.Mode())),
		textLine(KindSeparator, separator),
	)

	if st.Mode().Grid() {
		f.Lines = append(f.Lines, gridLines(src, st)...)
	} else {
		f.Lines = append(f.Lines, charLine(src, st.Cursor()))
	}

	f.Lines = append(f.Lines, detailLines(src, st.Cursor())...)
	return f
}

func gridLines(src Source, st view.State) []Line {
	size := src.Size()
	cell := codec.ToHex
	if st.Mode() == view.ModeBinary {
		cell = codec.ToBinary
	}

	var lines []Line
	for r := 0; r < view.VisibleRows; r++ {
		rowStart := st.WindowStart() + int64(r*view.RowWidth)
		if rowStart >= size {
			break
		}

		line := Line{Kind: KindGrid}
		for c := 0; c < view.RowWidth; c++ {
			offset := rowStart + int64(c)
			if offset >= size {
				break
			}
			if c > 0 {
				line.Spans = append(line.Spans, Span{Text: " "})
			}
			line.Spans = append(line.Spans, Span{
				Text:      cell(src.Get(offset)),
				Highlight: offset == st.Cursor(),
			})
		}
		lines = append(lines, line)
	}
	return lines
}

// charLine renders the whole buffer raw. Line feeds stay inside the span
// text; the sink turns them into line breaks.
func charLine(src Source, cursor int64) Line {
	size := src.Size()
	line := Line{Kind: KindChar}

	var run []byte
	flush := func() {
		if len(run) > 0 {
			line.Spans = append(line.Spans, Span{Text: string(run)})
			run = run[:0]
		}
	}
	for i := int64(0); i < size; i++ {
		b := src.Get(i)
		if i == cursor {
			flush()
			line.Spans = append(line.Spans, Span{Text: string([]byte{b}), Highlight: true})
			continue
		}
		run = append(run, b)
	}
	flush()
	return line
}

func detailLines(src Source, cursor int64) []Line {
	b := src.Get(cursor)
	lines := []Line{
		{Kind: KindBlank},
		textLine(KindDetail, fmt.Sprintf("Selected Offset (Dec): %d", cursor)),
		textLine(KindDetail, fmt.Sprintf("Current Value  Hex: %s | Bin: %s | Char: %c",
			codec.ToHex(b), codec.ToBinary(b), codec.ToChar(b))),
	}
	for _, h := range helpLines {
		lines = append(lines, textLine(KindHelp, h))
	}
	return lines
}

func textLine(kind LineKind, text string) Line {
	return Line{Kind: kind, Spans: []Span{{Text: text}}}
}
