package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Tap      key.Binding
	Up       key.Binding
	Down     key.Binding
	BigUp    key.Binding
	BigDown  key.Binding
	Prev     key.Binding
	Next     key.Binding
	Add      key.Binding
	Remove   key.Binding
	Edit     key.Binding
	Rename   key.Binding
	Quit     key.Binding
	Submit   key.Binding
	Cancel   key.Binding
	NextItem key.Binding
	PrevItem key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Tap:      key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "+1")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "swipe")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		BigUp:    key.NewBinding(key.WithKeys("pgup", "K"), key.WithHelp("pgup/pgdn", "long swipe")),
		BigDown:  key.NewBinding(key.WithKeys("pgdown", "J")),
		Prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "switch")),
		Next:     key.NewBinding(key.WithKeys("right", "l")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Remove:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Rename:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "name")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextItem: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevItem: key.NewBinding(key.WithKeys("shift+tab")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap, k.Up, k.BigUp, k.Prev, k.Add, k.Remove, k.Edit, k.Rename, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type formKeyMap struct{ keyMap }

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.NextItem}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
