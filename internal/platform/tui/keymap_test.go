package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starfall/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runeKey("a"), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", runeKey("d"), core.ActionRight, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionUp, false},
		{"r", runeKey("r"), core.ActionRestart, false},
		{"p", runeKey("p"), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("z"), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{runeKey("l"), MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}
