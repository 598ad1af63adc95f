// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/cfgscrub/cfgscrub/internal/i18n"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Copy   key.Binding
	Path   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (km keyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Up, km.Down, km.Select, km.Back, km.Help}
}

func (km keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{km.Up, km.Down, km.Select}, {km.Back, km.Copy, km.Path}, {km.Help, km.Quit}}
}

var _ help.KeyMap = keyMap{}

// newKeyMap builds the bindings with help text in the active language.
func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", i18n.T("keys.up")),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", i18n.T("keys.down")),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", i18n.T("keys.select")),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", i18n.T("keys.back")),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", i18n.T("keys.copy")),
		),
		Path: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", i18n.T("keys.path")),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", i18n.T("keys.help")),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", i18n.T("keys.quit")),
		),
	}
}
