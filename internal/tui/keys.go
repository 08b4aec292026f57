package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Open   key.Binding
	Start  key.Binding
	Reset  key.Binding
	Margin key.Binding
	Delay  key.Binding
	Preset key.Binding
	Theme  key.Binding
	Help   key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Open:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open file")),
		Start:  key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter/s", "start")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Margin: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "margin")),
		Delay:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "delay")),
		Preset: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "next pattern")),
		Theme:  key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "theme")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Start, k.Preset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Preset, k.Start, k.Reset},
		{k.Margin, k.Delay, k.Theme},
		{k.Cancel, k.Help, k.Quit},
	}
}
