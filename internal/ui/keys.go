package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Open        key.Binding
	Back        key.Binding
	Toggle      key.Binding
	Search      key.Binding
	Saved       key.Binding
	Menu        key.Binding
	Filters     key.Binding
	Remove      key.Binding
	Reset       key.Binding
	Close       key.Binding
	CloseSearch key.Binding
	Outside     key.Binding
	Clear       key.Binding
	Reload      key.Binding
	Debug       key.Binding
	Escape      key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
	Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
	Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:        key.NewBinding(key.WithKeys("backspace", "h"), key.WithHelp("h", "back")),
	Toggle:      key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "save")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Saved:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "saved")),
	Menu:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
	Filters:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
	Remove:      key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
	Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Close:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "close")),
	CloseSearch: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "close")),
	Outside:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "backdrop")),
	Clear:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	Reload:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
	Debug:       key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "debug")),
	Escape:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close all")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
