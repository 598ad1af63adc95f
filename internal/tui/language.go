// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"sort"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cfgscrub/cfgscrub/internal/i18n"
)

// languageModel holds the state for the language selection menu.
type languageModel struct {
	choices     map[string]string // lang code to display name
	orderedKeys []string
	cursor      int
}

func newLanguageModel() languageModel {
	choices := i18n.GetAvailableLocales()
	keys := make([]string, 0, len(choices))
	for k := range choices {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cursor := 0
	for i, k := range keys {
		if k == i18n.GetLang() {
			cursor = i
		}
	}
	return languageModel{choices: choices, orderedKeys: keys, cursor: cursor}
}

func (m languageModel) Update(msg tea.Msg, keys keyMap) (languageModel, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, keys.Back), k.String() == "q":
		return m, func() tea.Msg { return backToMenuMsg{} }
	case key.Matches(k, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, keys.Down):
		if m.cursor < len(m.orderedKeys)-1 {
			m.cursor++
		}
	case key.Matches(k, keys.Select):
		if len(m.orderedKeys) > 0 {
			lang := m.orderedKeys[m.cursor]
			return m, func() tea.Msg { return languageChosenMsg{lang: lang} }
		}
	}
	return m, nil
}

func (m languageModel) View() string {
	items := []string{titleStyle.Render(i18n.T("language.select"))}
	for i, code := range m.orderedKeys {
		name := m.choices[code]
		if i == m.cursor {
			items = append(items, selectedItemStyle.Render("▸ "+name))
		} else {
			items = append(items, itemStyle.Render("  "+name))
		}
	}
	listPane := paneStyle.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, items...))
	helpLine := footerStyle.Render(AlignFooter(i18n.T("language.help"), "", 60))
	return lipgloss.JoinVertical(lipgloss.Left, mainTitleStyle.Render("🌐 "+i18n.T("menu.language")), listPane, "", helpLine)
}
