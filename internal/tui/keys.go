package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Style  key.Binding
	Rotate key.Binding
	Random key.Binding
	Edit   key.Binding
	Copy   key.Binding
	Apply  key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Style:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "style")),
		Rotate: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rotation")),
		Random: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "random")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Copy:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Apply:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Style, k.Rotate, k.Random, k.Edit, k.Copy, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Apply, k.Cancel}}
}

type editKeyMap struct {
	keyMap
}

func (k editKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Cancel}
}
