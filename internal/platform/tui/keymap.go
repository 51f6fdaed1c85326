package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rocket/internal/core"
)

// DefaultHold is used when no hold window is configured.
const DefaultHold = 120 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
//
// Terminals report key presses (and auto-repeats) but never releases, so the
// mapper remembers when each continuous action was last pressed and keeps it
// held until the hold window has passed.
type KeyMapper struct {
	hold      time.Duration
	lastPress map[core.Action]time.Time
	now       func() time.Time
}

// NewKeyMapper creates a key mapper with the default hold window.
func NewKeyMapper() *KeyMapper {
	return NewKeyMapperWithHold(DefaultHold)
}

// NewKeyMapperWithHold creates a key mapper with the given hold window.
func NewKeyMapperWithHold(hold time.Duration) *KeyMapper {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &KeyMapper{
		hold:      hold,
		lastPress: make(map[core.Action]time.Time),
		now:       time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (km *KeyMapper) SetClock(now func() time.Time) {
	km.now = now
}

// Hold returns the hold window.
func (km *KeyMapper) Hold() time.Duration {
	return km.hold
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case " ", "w", "up":
		return core.ActionThrust, false
	case "a", "left":
		return core.ActionRotateLeft, false
	case "d", "right":
		return core.ActionRotateRight, false
	case "l":
		return core.ActionNextScene, false
	case "c":
		return core.ActionToggleCollisions, false
	case "p":
		return core.ActionPause, false
	case "b", "esc":
		return core.ActionBack, false
	case "enter":
		return core.ActionConfirm, false
	}

	return core.ActionNone, false
}

// continuous reports whether an action is held rather than tapped.
func continuous(a core.Action) bool {
	switch a {
	case core.ActionThrust, core.ActionRotateLeft, core.ActionRotateRight:
		return true
	}
	return false
}

// MapKeyToFrame records a key press into the frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action == core.ActionNone {
		return isQuit
	}
	frame.Set(action)
	if continuous(action) {
		km.lastPress[action] = km.now()
	}
	return isQuit
}

// ApplyHeld marks every continuous action pressed within the hold window as
// held in the frame, and forgets the ones that expired.
func (km *KeyMapper) ApplyHeld(frame *core.InputFrame) {
	now := km.now()
	for a, at := range km.lastPress {
		if now.Sub(at) > km.hold {
			delete(km.lastPress, a)
			continue
		}
		frame.SetHeld(a)
	}
}

// Release forgets all held keys, e.g. after a pause or a screen change.
func (km *KeyMapper) Release() {
	for a := range km.lastPress {
		delete(km.lastPress, a)
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScores
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScores
	}

	return MenuActionNone
}
