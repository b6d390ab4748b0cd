package editor

import (
	tea "github.com/charmbracelet/bubbletea"
)

type Command int

const (
	Unrecognized Command = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	SetModeHex
	SetModeBinary
	SetModeChar
	EditHex
	EditBinary
	EditChar
	Save
	Quit
)

var commandNames = map[Command]string{
	Unrecognized:  "unrecognized",
	MoveUp:        "move_up",
	MoveDown:      "move_down",
	MoveLeft:      "move_left",
	MoveRight:     "move_right",
	SetModeHex:    "set_mode_hex",
	SetModeBinary: "set_mode_binary",
	SetModeChar:   "set_mode_char",
	EditHex:       "edit_hex",
	EditBinary:    "edit_binary",
	EditChar:      "edit_char",
	Save:          "save",
	Quit:          "quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unrecognized"
}

// Decode maps a key press to a Command. Arrow keys arrive from bubbletea
// already decoded from their escape sequences.
func Decode(msg tea.KeyMsg) Command {
	switch msg.String() {
	case "up":
		return MoveUp
	case "down":
		return MoveDown
	case "left":
		return MoveLeft
	case "right":
		return MoveRight
	case "1":
		return SetModeHex
	case "2":
		return SetModeBinary
	case "3":
		return SetModeChar
	case "h", "H":
		return EditHex
	case "b", "B":
		return EditBinary
	case "c", "C":
		return EditChar
	case "s", "S", "ctrl+s":
		return Save
	case "q", "Q", "ctrl+c":
		return Quit
	}
	return Unrecognized
}
