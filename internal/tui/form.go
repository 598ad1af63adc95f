// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cfgscrub/cfgscrub/internal/core"
	"github.com/cfgscrub/cfgscrub/internal/i18n"
	"github.com/cfgscrub/cfgscrub/internal/transform"
)

type formKind int

const (
	octetForm formKind = iota
	passwordForm
	datesForm
)

// formModel is a small stack of text inputs. Enter moves to the next field
// and submits on the last one; esc cancels the operation.
type formModel struct {
	kind   formKind
	mode   transform.Mode
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
}

func newInput(placeholder string) textinput.Model {
	t := textinput.New()
	t.Placeholder = placeholder
	t.CharLimit = 256
	t.Width = 40
	return t
}

func newOctetForm(mode transform.Mode) formModel {
	f := formModel{
		kind:   octetForm,
		mode:   mode,
		title:  "form.octet.title",
		labels: []string{"form.octet.label"},
		inputs: []textinput.Model{newInput("10")},
	}
	f.inputs[0].CharLimit = 16
	f.inputs[0].Focus()
	return f
}

func newPasswordForm() formModel {
	f := formModel{
		kind:   passwordForm,
		mode:   transform.ModePassword,
		title:  "form.password.title",
		labels: []string{"form.password.old", "form.password.new"},
		inputs: []textinput.Model{newInput(""), newInput("")},
	}
	for i := range f.inputs {
		f.inputs[i].EchoMode = textinput.EchoPassword
		f.inputs[i].EchoCharacter = '•'
	}
	f.inputs[0].Focus()
	return f
}

func newDatesForm() formModel {
	f := formModel{
		kind:   datesForm,
		title:  "form.dates.title",
		labels: []string{"form.dates.created", "form.dates.modified"},
		inputs: []textinput.Model{newInput("YYYY-MM-DD HH:MM:SS"), newInput("YYYY-MM-DD HH:MM:SS")},
	}
	for i := range f.inputs {
		f.inputs[i].CharLimit = 19
	}
	f.inputs[0].Focus()
	return f
}

func (f formModel) Init() tea.Cmd { return textinput.Blink }

func (f formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			return f, func() tea.Msg { return cancelledMsg{} }
		case "tab", "down":
			cmd := f.setFocus(f.focus + 1)
			return f, cmd
		case "shift+tab", "up":
			cmd := f.setFocus(f.focus - 1)
			return f, cmd
		case "enter":
			if f.focus < len(f.inputs)-1 {
				cmd := f.setFocus(f.focus + 1)
				return f, cmd
			}
			return f, f.submit()
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// setFocus moves the cursor to field i, wrapping around.
func (f *formModel) setFocus(i int) tea.Cmd {
	n := len(f.inputs)
	f.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (f formModel) submit() tea.Cmd {
	switch f.kind {
	case passwordForm:
		oldPw, newPw := f.inputs[0].Value(), f.inputs[1].Value()
		// An empty answer is a cancelled prompt.
		if oldPw == "" || newPw == "" {
			return func() tea.Msg { return cancelledMsg{} }
		}
		return submit(core.Request{Mode: transform.ModePassword, OldPassword: oldPw, NewPassword: newPw})
	case datesForm:
		created, modified := f.inputs[0].Value(), f.inputs[1].Value()
		return func() tea.Msg { return submitDatesMsg{created: created, modified: modified} }
	default:
		return submit(core.Request{Mode: f.mode, Octet: f.inputs[0].Value()})
	}
}

func (f formModel) View() string {
	rows := []string{titleStyle.Render(i18n.T(f.title))}
	if f.kind == octetForm {
		rows = append(rows, helpStyle.Render(i18n.T("form.octet.hint", string(f.mode))), "")
	}
	for i, in := range f.inputs {
		label := formLabelStyle.Render(i18n.T(f.labels[i]))
		if i == f.focus {
			label = formSelectedItemStyle.Render(i18n.T(f.labels[i]))
		}
		rows = append(rows, label, in.View(), "")
	}
	rows = append(rows, helpStyle.Render(fmt.Sprintf("(%s)", i18n.T("form.help"))))
	return dialogBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
