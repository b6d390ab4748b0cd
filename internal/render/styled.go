package render

import (
	"strings"

	"bytedit/internal/config"

	"github.com/charmbracelet/lipgloss"
)

const modifiedSuffix = " [Modified]"

// Styled renders f for the TUI. Char-mode bytes that would disturb the
// terminal are shown as '.', and a highlighted line feed becomes a
// highlighted blank so the cursor stays visible.
func Styled(f Frame, s *config.Styles) string {
	var b strings.Builder
	for i, l := range f.Lines {
		if i > 0 {
			b.WriteString("\n")
		}
		switch l.Kind {
		case KindTitle:
			text := l.Text()
			if strings.HasSuffix(text, modifiedSuffix) {
				b.WriteString(s.Title.Render(strings.TrimSuffix(text, modifiedSuffix)))
				b.WriteString(s.Modified.Render(modifiedSuffix))
			} else {
				b.WriteString(s.Title.Render(text))
			}
		case KindMode:
			b.WriteString(s.Mode.Render(l.Text()))
		case KindSeparator:
			b.WriteString(s.Separator.Render(l.Text()))
		case KindGrid:
			for _, sp := range l.Spans {
				b.WriteString(styleFor(sp, s.Cell, s).Render(sp.Text))
			}
		case KindChar:
			writeChar(&b, l, s)
		case KindDetail:
			b.WriteString(s.Detail.Render(l.Text()))
		case KindHelp:
			b.WriteString(s.Help.Render(l.Text()))
		default:
			b.WriteString(l.Text())
		}
	}
	return b.String()
}

func writeChar(b *strings.Builder, l Line, s *config.Styles) {
	for _, sp := range l.Spans {
		if sp.Highlight {
			if sp.Text == "\n" {
				b.WriteString(s.Cursor.Render(" "))
				b.WriteString("\n")
			} else {
				b.WriteString(s.Cursor.Render(terminalSafe(sp.Text)))
			}
			continue
		}
		for i, part := range strings.Split(sp.Text, "\n") {
			if i > 0 {
				b.WriteString("\n")
			}
			if part != "" {
				b.WriteString(s.Cell.Render(terminalSafe(part)))
			}
		}
	}
}

func styleFor(sp Span, base lipgloss.Style, s *config.Styles) lipgloss.Style {
	if sp.Highlight {
		return s.Cursor
	}
	return base
}

func terminalSafe(text string) string {
	out := []byte(text)
	for i, c := range out {
		if (c < 0x20 && c != '\t') || c >= 0x7F {
			out[i] = '.'
		}
	}
	return string(out)
}
