// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cfgscrub/cfgscrub/internal/core"
	"github.com/cfgscrub/cfgscrub/internal/filetime"
	"github.com/cfgscrub/cfgscrub/internal/i18n"
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

type copiedMsg struct{ err error }

// resultModel is the dialog shown after every operation.
type resultModel struct {
	kind   core.Kind
	lines  []string
	output string
	status string
}

func newReportResult(rep core.Report) resultModel {
	lines := []string{
		i18n.T("result.written", rep.Output),
		i18n.T("result.lines", rep.LinesIn, rep.LinesOut),
	}
	if rep.Replacements > 0 {
		lines = append(lines, i18n.T("result.replacements", rep.Replacements))
	}
	if rep.Replaced {
		lines = append(lines, i18n.T("result.overwritten"))
	}
	lines = append(lines, helpStyle.Render("blake3 "+rep.Digest))
	return resultModel{kind: core.KindNone, lines: lines, output: rep.Output}
}

func newDatesResult(res filetime.Result) resultModel {
	lines := []string{
		i18n.T("result.dates_changed", res.Path),
		i18n.T("result.modified", res.Modified.Format(time.DateTime)),
	}
	if res.CreationApplied {
		lines = append(lines, i18n.T("result.created", res.Created.Format(time.DateTime)))
	} else {
		lines = append(lines, helpStyle.Render(i18n.T("result.creation_unsupported")))
	}
	return resultModel{kind: core.KindNone, lines: lines, output: res.Path}
}

func newOpenedResult(dir string) resultModel {
	return resultModel{kind: core.KindNone, lines: []string{i18n.T("result.opened", dir)}, output: dir}
}

func newErrorResult(err error) resultModel {
	return resultModel{kind: core.KindOf(err), lines: []string{core.Describe(err)}}
}

func (m resultModel) Update(msg tea.Msg, keys keyMap) (resultModel, tea.Cmd) {
	switch msg := msg.(type) {
	case copiedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(i18n.T("result.copy_failed", msg.err.Error()))
		} else {
			m.status = successStyle.Render(i18n.T("result.copied"))
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Copy) && m.output != "":
			path := m.output
			return m, func() tea.Msg { return copiedMsg{err: writeClipboard(path)} }
		case key.Matches(msg, keys.Back), key.Matches(msg, keys.Select), msg.String() == "q":
			return m, func() tea.Msg { return backToMenuMsg{} }
		}
	}
	return m, nil
}

func (m resultModel) title() string {
	switch m.kind {
	case core.KindNone:
		return successStyle.Render(i18n.T("result.success"))
	case core.KindValidation:
		return specialStyle.Render(i18n.T("result.warning"))
	case core.KindCancelled:
		return helpStyle.Render(i18n.T("result.cancelled"))
	default:
		return errorStyle.Render(i18n.T("result.error"))
	}
}

func (m resultModel) View() string {
	body := []string{m.title(), "", strings.Join(m.lines, "\n")}
	if m.status != "" {
		body = append(body, "", m.status)
	}
	buttons := activeButtonStyle.Render(i18n.T("result.ok"))
	if m.output != "" {
		buttons = lipgloss.JoinHorizontal(lipgloss.Top, buttons, "  ", buttonStyle.Render(i18n.T("result.copy")))
	}
	body = append(body, buttons)
	return dialogBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}
