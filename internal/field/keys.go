package field

import "fmt"

// KeyCode identifies a physical or soft key.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyEnter
	KeyDelete
	KeyOther
)

// Action tells whether a key went down or came back up.
type Action int

const (
	ActionDown Action = iota
	ActionUp
)

// KeyEvent is a single key transition delivered by the host.
type KeyEvent struct {
	Code   KeyCode
	Action Action
}

// Press returns the down and up events of a full key press.
func Press(code KeyCode) []KeyEvent {
	return []KeyEvent{{Code: code, Action: ActionDown}, {Code: code, Action: ActionUp}}
}

// DigitKey returns the key code for digit d.
func DigitKey(d int) (KeyCode, error) {
	if d < 0 || d > 9 {
		return KeyUnknown, fmt.Errorf("no key for digit %d", d)
	}
	return Key0 + KeyCode(d), nil
}

// Digit returns the digit a key stands for.
func (k KeyCode) Digit() (int, bool) {
	if k >= Key0 && k <= Key9 {
		return int(k - Key0), true
	}
	return 0, false
}

func (k KeyCode) String() string {
	if d, ok := k.Digit(); ok {
		return fmt.Sprintf("KEY_%d", d)
	}
	switch k {
	case KeyEnter:
		return "KEY_ENTER"
	case KeyDelete:
		return "KEY_DEL"
	case KeyOther:
		return "KEY_OTHER"
	default:
		return "KEY_UNKNOWN"
	}
}
