package terminal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtledit/rtl-decimal/internal/field"
)

func TestTranslate_Runes(t *testing.T) {
	got := Translate(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("70x")})
	assert.Equal(t, []Input{
		{Kind: InputKey, Key: field.Key7},
		{Kind: InputKey, Key: field.Key0},
		{Kind: InputKey, Key: field.KeyOther},
	}, got)

	got = Translate(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("5"), Alt: true})
	assert.Equal(t, []Input{{Kind: InputKey, Key: field.KeyOther}}, got)
}

func TestTranslate_Keys(t *testing.T) {
	testCases := []struct {
		key  tea.KeyType
		want Input
	}{
		{tea.KeyEnter, Input{Kind: InputKey, Key: field.KeyEnter}},
		{tea.KeyCtrlJ, Input{Kind: InputKey, Key: field.KeyEnter}},
		{tea.KeyDelete, Input{Kind: InputKey, Key: field.KeyDelete}},
		{tea.KeySpace, Input{Kind: InputKey, Key: field.KeyOther}},
		{tea.KeyUp, Input{Kind: InputKey, Key: field.KeyOther}},
		{tea.KeyTab, Input{Kind: InputNextField}},
		{tea.KeyBackspace, Input{Kind: InputBackspace}},
		{tea.KeyCtrlH, Input{Kind: InputBackspace}},
		{tea.KeyCtrlU, Input{Kind: InputClear}},
		{tea.KeyCtrlA, Input{Kind: InputSelectAll}},
		{tea.KeyLeft, Input{Kind: InputCursorLeft}},
		{tea.KeyRight, Input{Kind: InputCursorRight}},
		{tea.KeyHome, Input{Kind: InputCursorHome}},
		{tea.KeyEnd, Input{Kind: InputCursorEnd}},
		{tea.KeyCtrlS, Input{Kind: InputSubmit}},
		{tea.KeyCtrlC, Input{Kind: InputQuit}},
		{tea.KeyCtrlD, Input{Kind: InputQuit}},
		{tea.KeyCtrlQ, Input{Kind: InputQuit}},
		{tea.KeyEsc, Input{Kind: InputQuit}},
	}
	for _, tc := range testCases {
		t.Run(tea.KeyMsg{Type: tc.key}.String(), func(t *testing.T) {
			got := Translate(tea.KeyMsg{Type: tc.key})
			require.Len(t, got, 1)
			assert.Equal(t, tc.want, got[0])
		})
	}
}

func TestDeleteBackward(t *testing.T) {
	assert.Equal(t, "1.23", deleteBackward("1.234", 5, 5))
	assert.Equal(t, "1.34", deleteBackward("1.234", 3, 3))
	assert.Equal(t, "1.234", deleteBackward("1.234", 0, 0))
	assert.Equal(t, "", deleteBackward("1.234", 0, 5))
	assert.Equal(t, "1.4", deleteBackward("1.234", 2, 4))
}
