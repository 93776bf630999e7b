package watch

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	togglePlay key.Binding
	stop       key.Binding
	quit       key.Binding
}

var defaultKeymap = keyMap{
	togglePlay: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p", "pause/resume"),
	),
	stop: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stop and save"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "detach"),
	),
}
