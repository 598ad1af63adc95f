// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cfgscrub/cfgscrub/internal/core"
	"github.com/cfgscrub/cfgscrub/internal/i18n"
)

type menuAction int

const (
	actionSelectFile menuAction = iota
	actionEnterPath
	actionStrip
	actionReplace
	actionReplaceKeep
	actionEnumerate
	actionPassword
	actionDates
	actionOpenDir
	actionHistory
	actionLanguage
	actionQuit
)

// menuEntries pairs every action with its label message ID, in display order.
var menuEntries = []struct {
	action menuAction
	label  string
}{
	{actionSelectFile, "menu.select_file"},
	{actionEnterPath, "menu.enter_path"},
	{actionStrip, "menu.strip"},
	{actionReplace, "menu.replace"},
	{actionReplaceKeep, "menu.replace_keep"},
	{actionEnumerate, "menu.enumerate"},
	{actionPassword, "menu.password"},
	{actionDates, "menu.dates"},
	{actionOpenDir, "menu.open_dir"},
	{actionHistory, "menu.history"},
	{actionLanguage, "menu.language"},
	{actionQuit, "menu.quit"},
}

// menuModel holds the state for the main menu.
type menuModel struct {
	cursor int
}

func newMenuModel() menuModel { return menuModel{} }

func (m menuModel) selected() menuAction { return menuEntries[m.cursor].action }

func (m menuModel) Update(msg tea.KeyMsg, keys keyMap) menuModel {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}
	}
	return m
}

func (m menuModel) View(s *core.Session, version, helpLine string, width int) string {
	title := mainTitleStyle.Render("cfgscrub " + version)
	about := helpStyle.Render(i18n.T("app.about"))

	var src string
	if ref, err := s.Selected(); err == nil {
		src = itemStyle.Render(i18n.T("menu.source", ref))
	} else {
		src = specialStyle.Render(i18n.T("menu.no_source"))
	}

	items := make([]string, 0, len(menuEntries))
	for i, e := range menuEntries {
		label := i18n.T(e.label)
		if i == m.cursor {
			items = append(items, selectedItemStyle.Render("▸ "+label))
		} else {
			items = append(items, itemStyle.Render("  "+label))
		}
	}
	list := paneStyle.Width(60).Render(strings.Join(items, "\n"))

	if width < 60 {
		width = 60
	}
	footer := footerStyle.Render(AlignFooter(helpLine, "", width-4))
	return lipgloss.JoinVertical(lipgloss.Left, title, about, "", src, "", list, "", footer)
}
