package internal

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings for every panel. Digits on the keypad panel
// are read from the rune directly and have no binding.
type KeyMap struct {
	Stopwatch key.Binding
	Timer     key.Binding
	History   key.Binding

	Toggle key.Binding // Start, pause or continue.
	Clear  key.Binding
	Set    key.Binding // Commit the keypad entry.
	Erase  key.Binding // Clear the keypad entry.
	Edit   key.Binding // Back from the timer to the keypad.
	Wipe   key.Binding // Delete recorded history.

	Back key.Binding
	Quit key.Binding
}

var DefaultKeyMap = KeyMap{
	Stopwatch: key.NewBinding(
		key.WithKeys("s", "1"),
		key.WithHelp("s", "stopwatch"),
	),
	Timer: key.NewBinding(
		key.WithKeys("t", "2"),
		key.WithHelp("t", "timer"),
	),
	History: key.NewBinding(
		key.WithKeys("l", "3"),
		key.WithHelp("l", "history"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "start/pause"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear"),
	),
	Set: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "set"),
	),
	Erase: key.NewBinding(
		key.WithKeys("backspace", "c"),
		key.WithHelp("c", "clear"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Wipe: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "wipe"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// panelHelp adapts a binding list to help.KeyMap.
type panelHelp []key.Binding

func (p panelHelp) ShortHelp() []key.Binding  { return p }
func (p panelHelp) FullHelp() [][]key.Binding { return [][]key.Binding{p} }

func (k KeyMap) help(panel Panel) panelHelp {
	switch panel {
	case PanelStopwatch:
		return panelHelp{k.Toggle, k.Clear, k.Back, k.Quit}
	case PanelSetup:
		return panelHelp{k.Set, k.Erase, k.Back, k.Quit}
	case PanelCountdown:
		return panelHelp{k.Toggle, k.Clear, k.Edit, k.Back, k.Quit}
	case PanelHistory:
		return panelHelp{k.Wipe, k.Back, k.Quit}
	default:
		return panelHelp{k.Stopwatch, k.Timer, k.History, k.Quit}
	}
}
