// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cfgscrub/cfgscrub/internal/history"
	"github.com/cfgscrub/cfgscrub/internal/i18n"
)

const historyLimit = 50

type historyLoadedMsg struct {
	runs []history.Run
	err  error
}

func loadHistoryCmd(h HistoryLister) tea.Cmd {
	if h == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		runs, err := h.Recent(ctx, historyLimit)
		return historyLoadedMsg{runs: runs, err: err}
	}
}

type historyModel struct {
	enabled bool
	loading bool
	runs    []history.Run
	err     error
	offset  int
}

func newHistoryModel(enabled bool) historyModel {
	return historyModel{enabled: enabled, loading: enabled}
}

func (m historyModel) Update(msg tea.Msg, keys keyMap) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.loading = false
		m.runs, m.err = msg.runs, msg.err
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back), msg.String() == "q":
			return m, func() tea.Msg { return backToMenuMsg{} }
		case key.Matches(msg, keys.Up):
			if m.offset > 0 {
				m.offset--
			}
		case key.Matches(msg, keys.Down):
			if m.offset < len(m.runs)-1 {
				m.offset++
			}
		}
	}
	return m, nil
}

func (m historyModel) View(width int) string {
	title := titleStyle.Render(i18n.T("history.title"))
	var body string
	switch {
	case !m.enabled:
		body = specialStyle.Render(i18n.T("history.disabled"))
	case m.loading:
		body = helpStyle.Render(i18n.T("history.loading"))
	case m.err != nil:
		body = errorStyle.Render(i18n.T("error.io", m.err.Error()))
	case len(m.runs) == 0:
		body = helpStyle.Render(i18n.T("history.empty"))
	default:
		rows := make([]string, 0, len(m.runs)-m.offset)
		for _, r := range m.runs[m.offset:] {
			rows = append(rows, formatRun(r))
		}
		body = strings.Join(rows, "\n")
	}
	if width < 60 {
		width = 60
	}
	footer := footerStyle.Render(AlignFooter(i18n.T("history.help"), "", width-4))
	return lipgloss.JoinVertical(lipgloss.Left, title, paneStyle.Render(body), "", footer)
}

func formatRun(r history.Run) string {
	line := fmt.Sprintf("%s  %-12s %s", r.CreatedAt.Local().Format(time.DateTime), r.Mode, r.Source)
	if r.Output != "" && r.Output != r.Source {
		line += " → " + r.Output
	}
	if r.Error != "" {
		return errorStyle.Render(line + "  " + r.Error)
	}
	return itemStyle.Render(line)
}
