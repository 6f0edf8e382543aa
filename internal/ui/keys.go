package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	SortName       key.Binding
	SortSymbol     key.Binding
	Shuffle        key.Binding
	FilterUSA      key.Binding
	FilterTestMode key.Binding
	Up             key.Binding
	Down           key.Binding
	Help           key.Binding
	Quit           key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SortName, k.SortSymbol, k.Shuffle, k.FilterUSA, k.FilterTestMode, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.SortName, k.SortSymbol, k.Shuffle},
		{k.FilterUSA, k.FilterTestMode},
		{k.Help, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		SortName: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "sort name"),
		),
		SortSymbol: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort symbol"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "shuffle"),
		),
		FilterUSA: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "usa only"),
		),
		FilterTestMode: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "test mode"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
