// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cfgscrub/cfgscrub/internal/i18n"
)

// pickerModel wraps the bubbles file picker. "q" leaves without a choice
// since esc navigates to the parent directory.
type pickerModel struct {
	fp filepicker.Model
}

func newPickerModel(dir string) pickerModel {
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.ShowHidden = false
	return pickerModel{fp: fp}
}

func (m pickerModel) Init() tea.Cmd { return m.fp.Init() }

func (m pickerModel) Update(msg tea.Msg) (pickerModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "q" {
		return m, func() tea.Msg { return backToMenuMsg{} }
	}
	var cmd tea.Cmd
	m.fp, cmd = m.fp.Update(msg)
	if ok, path := m.fp.DidSelectFile(msg); ok {
		return m, func() tea.Msg { return fileChosenMsg{path: path} }
	}
	return m, cmd
}

func (m pickerModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(i18n.T("picker.title")),
		helpStyle.Render(m.fp.CurrentDirectory),
		"",
		m.fp.View(),
		helpStyle.Render(i18n.T("picker.help")),
	)
}

// pathModel accepts a typed local path or sftp:// reference.
type pathModel struct {
	input textinput.Model
}

func newPathModel() pathModel {
	t := textinput.New()
	t.Placeholder = "sftp://admin@core1:22/etc/router.cfg"
	t.CharLimit = 1024
	t.Width = 50
	t.Focus()
	return pathModel{input: t}
}

func (m pathModel) Init() tea.Cmd { return textinput.Blink }

func (m pathModel) Update(msg tea.Msg) (pathModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			return m, func() tea.Msg { return backToMenuMsg{} }
		case "enter":
			path := m.input.Value()
			return m, func() tea.Msg { return fileChosenMsg{path: path} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m pathModel) View() string {
	return dialogBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(i18n.T("path.title")),
		m.input.View(),
		"",
		helpStyle.Render(i18n.T("path.help")),
	))
}
