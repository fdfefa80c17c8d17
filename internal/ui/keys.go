package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"porch/internal/config"
)

type keyMap struct {
	Quit           key.Binding
	NextFocus      key.Binding
	PrevFocus      key.Binding
	Up             key.Binding
	Down           key.Binding
	Left           key.Binding
	Right          key.Binding
	Toggle         key.Binding
	Delete         key.Binding
	ClearCompleted key.Binding
	FilterAll      key.Binding
	FilterActive   key.Binding
	FilterDone     key.Binding
	Confirm        key.Binding
	Submit         key.Binding
	GotoHome       key.Binding
	GotoTodo       key.Binding
	GotoContact    key.Binding
	PageUp         key.Binding
	PageDown       key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	bind := func(help string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(displayKey(keys[0]), help))
	}
	return keyMap{
		Quit:           bind("quit", k.Quit),
		NextFocus:      bind("next", k.NextFocus),
		PrevFocus:      bind("prev", k.PrevFocus),
		Up:             bind("up", k.Up, "k"),
		Down:           bind("down", k.Down, "j"),
		Left:           bind("left", "left", "h"),
		Right:          bind("right", "right", "l"),
		Toggle:         bind("toggle", k.Toggle),
		Delete:         bind("delete", k.Delete),
		ClearCompleted: bind("clear completed", k.ClearCompleted),
		FilterAll:      bind("all", k.FilterAll),
		FilterActive:   bind("active", k.FilterActive),
		FilterDone:     bind("completed", k.FilterDone),
		Confirm:        bind("confirm", k.Confirm),
		Submit:         bind("send", k.Submit),
		GotoHome:       bind("home", k.GotoHome),
		GotoTodo:       bind("to-do", k.GotoTodo),
		GotoContact:    bind("contact", k.GotoContact),
		PageUp:         bind("page up", "pgup"),
		PageDown:       bind("page down", "pgdown"),
	}
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += " • "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
