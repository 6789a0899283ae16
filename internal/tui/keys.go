package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit key.Binding
	Skip   key.Binding
	Pause  key.Binding
	Next   key.Binding
	Prev   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Skip:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Pause:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Next:   key.NewBinding(key.WithKeys("right", "n"), key.WithHelp("→/n", "next")),
		Prev:   key.NewBinding(key.WithKeys("left", "b"), key.WithHelp("←/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists the bindings shown while a question is on screen.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Skip, k.Pause, k.Quit}
}

// FullHelp lists every binding.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Skip, k.Pause}, {k.Next, k.Prev, k.Quit}}
}

func (k keyMap) reviewHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Quit}
}

// optionIndex maps "1".."9" and "a".."z" to an option index.
func optionIndex(s string) (int, bool) {
	if len(s) != 1 {
		return 0, false
	}
	c := s[0]
	switch {
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	}
	return 0, false
}
