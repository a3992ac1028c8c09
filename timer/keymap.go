package timer

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	togglePlay key.Binding
	switchKind key.Binding
	reset      key.Binding
	nextTask   key.Binding
	nextTrack  key.Binding
	prevTrack  key.Binding
	music      key.Binding
	volumeUp   key.Binding
	volumeDown key.Binding
	clearTasks key.Binding
	quit       key.Binding
}

var defaultKeymap = keymap{
	togglePlay: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "start/pause"),
	),
	switchKind: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "focus/break"),
	),
	reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	nextTask: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "next task"),
	),
	nextTrack: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next track"),
	),
	prevTrack: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "prev track"),
	),
	music: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "music on/off"),
	),
	volumeUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "volume up"),
	),
	volumeDown: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "volume down"),
	),
	clearTasks: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear tasks"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
