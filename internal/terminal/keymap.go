package terminal

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rtledit/rtl-decimal/internal/field"
)

// InputKind classifies a user action read from the terminal.
type InputKind int

const (
	// InputKey is a key delivered to the focused field as a press and release.
	InputKey InputKind = iota
	// InputBackspace deletes the selection or the character before the cursor.
	InputBackspace
	// InputClear empties the focused field.
	InputClear
	InputSelectAll
	InputCursorLeft
	InputCursorRight
	InputCursorHome
	InputCursorEnd
	InputNextField
	InputSubmit
	InputQuit
)

func (k InputKind) String() string {
	switch k {
	case InputKey:
		return "key"
	case InputBackspace:
		return "backspace"
	case InputClear:
		return "clear"
	case InputSelectAll:
		return "select-all"
	case InputCursorLeft:
		return "left"
	case InputCursorRight:
		return "right"
	case InputCursorHome:
		return "home"
	case InputCursorEnd:
		return "end"
	case InputNextField:
		return "next-field"
	case InputSubmit:
		return "submit"
	case InputQuit:
		return "quit"
	default:
		return fmt.Sprintf("input(%d)", int(k))
	}
}

// Input is one user action.
type Input struct {
	Kind InputKind
	Key  field.KeyCode
}

func keyInput(code field.KeyCode) Input {
	return Input{Kind: InputKey, Key: code}
}

// Translate maps a Bubble Tea key message to the actions it stands for.
// Typed or pasted text arrives as one message and yields one input per rune.
func Translate(msg tea.KeyMsg) []Input {
	switch msg.Type {
	case tea.KeyRunes:
		inputs := make([]Input, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			code := field.KeyOther
			if r >= '0' && r <= '9' && !msg.Alt {
				code, _ = field.DigitKey(int(r - '0'))
			}
			inputs = append(inputs, keyInput(code))
		}
		return inputs
	case tea.KeyEnter, tea.KeyCtrlJ:
		return []Input{keyInput(field.KeyEnter)}
	case tea.KeyDelete:
		return []Input{keyInput(field.KeyDelete)}
	case tea.KeyTab:
		return []Input{{Kind: InputNextField}}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []Input{{Kind: InputBackspace}}
	case tea.KeyCtrlU:
		return []Input{{Kind: InputClear}}
	case tea.KeyCtrlA:
		return []Input{{Kind: InputSelectAll}}
	case tea.KeyLeft:
		return []Input{{Kind: InputCursorLeft}}
	case tea.KeyRight:
		return []Input{{Kind: InputCursorRight}}
	case tea.KeyHome:
		return []Input{{Kind: InputCursorHome}}
	case tea.KeyEnd:
		return []Input{{Kind: InputCursorEnd}}
	case tea.KeyCtrlS:
		return []Input{{Kind: InputSubmit}}
	case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyCtrlQ, tea.KeyEsc:
		return []Input{{Kind: InputQuit}}
	default:
		return []Input{keyInput(field.KeyOther)}
	}
}
