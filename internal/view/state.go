// Package view holds the cursor, scroll window and display mode of an
// editing session.
package view

const (
	// RowWidth is the number of bytes in one grid row.
	RowWidth = 16
	// VisibleRows is the number of grid rows shown at once.
	VisibleRows = 20
)

type Mode int

const (
	ModeHex Mode = iota
	ModeBinary
	ModeChar
)

func (m Mode) String() string {
	switch m {
	case ModeHex:
		return "HEX"
	case ModeBinary:
		return "BINARY"
	case ModeChar:
		return "CHAR"
	}
	return "UNKNOWN"
}

// Grid reports whether the mode renders bytes as a windowed grid.
func (m Mode) Grid() bool {
	return m != ModeChar
}

// ByteSource is the read side of the byte store the cursor moves over.
type ByteSource interface {
	Size() int64
	Get(offset int64) byte
}

// State is the (cursor, window, mode) triple. The zero value is the
// initial state: cursor 0, window 0, hex mode.
type State struct {
	cursor int64
	window int64
	mode   Mode
}

func New() *State {
	return &State{}
}

func (s *State) Cursor() int64 {
	return s.cursor
}

func (s *State) WindowStart() int64 {
	return s.window
}

func (s *State) Mode() Mode {
	return s.mode
}

// SetMode switches the display mode. Grid modes align the window to the
// cursor's row; char mode has no window of its own.
func (s *State) SetMode(m Mode) {
	s.mode = m
	if m.Grid() {
		s.window = rowStart(s.cursor)
	} else {
		s.window = 0
	}
}

// MoveCursor moves the cursor by delta bytes, or by lines in char mode
// when delta is not ±1. It reports whether the cursor moved; a move that
// would leave the buffer is rejected.
func (s *State) MoveCursor(delta int64, src ByteSource) bool {
	if s.mode == ModeChar {
		return s.moveChar(delta, src)
	}
	return s.moveGrid(delta, src.Size())
}

func (s *State) moveGrid(delta, size int64) bool {
	next := s.cursor + delta
	if next < 0 || next >= size {
		return false
	}
	s.cursor = next

	span := int64(VisibleRows * RowWidth)
	if s.cursor < s.window {
		s.window = rowStart(s.cursor)
	} else if s.cursor >= s.window+span {
		s.window = rowStart(s.cursor) - span + RowWidth
	}
	return true
}

func (s *State) moveChar(delta int64, src ByteSource) bool {
	size := src.Size()

	switch {
	case delta == 1 || delta == -1:
		next := s.cursor + delta
		if next < 0 || next >= size {
			return false
		}
		s.cursor = next
		return true

	case delta > 0:
		for i := s.cursor; i < size; i++ {
			if src.Get(i) == '\n' {
				if i+1 < size {
					s.cursor = i + 1
					return true
				}
				return false
			}
		}
		return false

	case delta < 0:
		if s.cursor == 0 {
			return false
		}
		search := s.cursor - 1
		// At a line start the preceding byte is our own line feed.
		if search > 0 && src.Get(search) == '\n' {
			search--
		}
		for search > 0 && src.Get(search) != '\n' {
			search--
		}
		prev := s.cursor
		if src.Get(search) == '\n' {
			s.cursor = search + 1
		} else {
			s.cursor = 0
		}
		return s.cursor != prev
	}
	return false
}

func rowStart(offset int64) int64 {
	return offset / RowWidth * RowWidth
}
