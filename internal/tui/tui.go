// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface for cfgscrub.
// This file, tui.go, is the main entry point for the TUI, containing the
// top-level model that acts as a router to all other sub-views.
package tui // import "github.com/cfgscrub/cfgscrub/internal/tui"

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cfgscrub/cfgscrub/internal/core"
	"github.com/cfgscrub/cfgscrub/internal/filetime"
	"github.com/cfgscrub/cfgscrub/internal/history"
	"github.com/cfgscrub/cfgscrub/internal/i18n"
	"github.com/cfgscrub/cfgscrub/internal/logging"
	"github.com/cfgscrub/cfgscrub/internal/transform"
)

// Operator runs the file operations. *core.Runner satisfies it.
type Operator interface {
	Run(ctx context.Context, s *core.Session, req core.Request) (core.Report, error)
	ChangeDates(ctx context.Context, s *core.Session, created, modified string) (filetime.Result, error)
	OpenOutputDir() (string, error)
}

// HistoryLister lists recorded runs. *history.Store satisfies it.
type HistoryLister interface {
	Recent(ctx context.Context, limit int) ([]history.Run, error)
}

// Options configures Run.
type Options struct {
	Operator Operator
	// History is nil when run history is disabled.
	History HistoryLister
	// Session may carry a preselected source.
	Session *core.Session
	// StartDir is where the file picker opens.
	StartDir string
	// OnLanguage persists a language choice; may be nil.
	OnLanguage func(lang string) error
	Version    string
}

// viewState represents which part of the UI is currently active.
type viewState int

const (
	menuView viewState = iota
	pickerView
	pathView
	formView
	runningView
	resultView
	historyView
	languageView
)

// Messages exchanged between the sub-views and the router.
type (
	backToMenuMsg  struct{}
	cancelledMsg   struct{}
	fileChosenMsg  struct{ path string }
	submitMsg      struct{ req core.Request }
	submitDatesMsg struct{ created, modified string }
	opDoneMsg      struct {
		report core.Report
		err    error
	}
	datesDoneMsg struct {
		result filetime.Result
		err    error
	}
	languageChosenMsg struct{ lang string }
	openedMsg         struct {
		dir string
		err error
	}
)

// mainModel is the top-level model. It owns the session and routes
// messages to the active sub-view.
type mainModel struct {
	opts    Options
	session *core.Session
	state   viewState
	keys    keyMap
	help    help.Model

	menu     menuModel
	picker   pickerModel
	path     pathModel
	form     formModel
	result   resultModel
	history  historyModel
	language languageModel

	cancel        context.CancelFunc
	width, height int
}

func newModel(opts Options) mainModel {
	s := opts.Session
	if s == nil {
		s = &core.Session{}
	}
	if opts.StartDir == "" {
		opts.StartDir, _ = os.Getwd()
	}
	return mainModel{
		opts:    opts,
		session: s,
		state:   menuView,
		keys:    newKeyMap(),
		help:    help.New(),
		menu:    newMenuModel(),
	}
}

// Init is the first function that will be called by the Bubble Tea runtime.
func (m mainModel) Init() tea.Cmd { return nil }

// Update is the main message loop.
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case backToMenuMsg:
		m.state = menuView
		return m, nil

	case cancelledMsg:
		m.result = newErrorResult(core.ErrCancelled)
		m.state = resultView
		return m, nil

	case fileChosenMsg:
		if err := m.session.Select(msg.path); err != nil {
			m.result = newErrorResult(err)
			m.state = resultView
			return m, nil
		}
		logging.Debugf("selected source %s", msg.path)
		m.state = menuView
		return m, nil

	case submitMsg:
		return m.start(func(ctx context.Context) tea.Msg {
			rep, err := m.opts.Operator.Run(ctx, m.session, msg.req)
			return opDoneMsg{report: rep, err: err}
		})

	case submitDatesMsg:
		return m.start(func(ctx context.Context) tea.Msg {
			res, err := m.opts.Operator.ChangeDates(ctx, m.session, msg.created, msg.modified)
			return datesDoneMsg{result: res, err: err}
		})

	case opDoneMsg:
		m.cancel = nil
		if msg.err != nil {
			m.result = newErrorResult(msg.err)
		} else {
			m.result = newReportResult(msg.report)
		}
		m.state = resultView
		return m, nil

	case datesDoneMsg:
		m.cancel = nil
		if msg.err != nil {
			m.result = newErrorResult(msg.err)
		} else {
			m.result = newDatesResult(msg.result)
		}
		m.state = resultView
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.result = newErrorResult(msg.err)
		} else {
			m.result = newOpenedResult(msg.dir)
		}
		m.state = resultView
		return m, nil

	case languageChosenMsg:
		i18n.SetLang(msg.lang)
		if m.opts.OnLanguage != nil {
			if err := m.opts.OnLanguage(msg.lang); err != nil {
				logging.Warnf("could not save language: %v", err)
			}
		}
		// Key help carries translated text.
		m.keys = newKeyMap()
		m.state = menuView
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case menuView:
		return m.updateMenu(msg)
	case pickerView:
		m.picker, cmd = m.picker.Update(msg)
	case pathView:
		m.path, cmd = m.path.Update(msg)
	case formView:
		m.form, cmd = m.form.Update(msg)
	case runningView:
		if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Back) && m.cancel != nil {
			m.cancel()
		}
	case resultView:
		m.result, cmd = m.result.Update(msg, m.keys)
	case historyView:
		m.history, cmd = m.history.Update(msg, m.keys)
	case languageView:
		m.language, cmd = m.language.Update(msg, m.keys)
	}
	return m, cmd
}

// start runs op in the background with a cancellable context.
func (m mainModel) start(op func(ctx context.Context) tea.Msg) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.state = runningView
	return m, func() tea.Msg {
		defer cancel()
		return op(ctx)
	}
}

func (m mainModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(k, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(k, m.keys.Select):
		return m.activate(m.menu.selected())
	}
	m.menu = m.menu.Update(k, m.keys)
	return m, nil
}

// activate opens the view behind a menu entry.
func (m mainModel) activate(a menuAction) (tea.Model, tea.Cmd) {
	switch a {
	case actionSelectFile:
		m.picker = newPickerModel(m.opts.StartDir)
		m.state = pickerView
		size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
		if size.Height == 0 {
			size = tea.WindowSizeMsg{Width: 80, Height: 24}
		}
		return m, tea.Batch(m.picker.Init(), func() tea.Msg { return size })
	case actionEnterPath:
		m.path = newPathModel()
		m.state = pathView
		return m, m.path.Init()
	case actionHistory:
		m.history = newHistoryModel(m.opts.History != nil)
		m.state = historyView
		return m, loadHistoryCmd(m.opts.History)
	case actionLanguage:
		m.language = newLanguageModel()
		m.state = languageView
		return m, nil
	case actionOpenDir:
		op := m.opts.Operator
		return m, func() tea.Msg {
			dir, err := op.OpenOutputDir()
			return openedMsg{dir: dir, err: err}
		}
	case actionQuit:
		return m, tea.Quit
	}

	// Every remaining entry operates on the selected source.
	if !m.session.HasSource() {
		m.result = newErrorResult(core.ErrNoSource)
		m.state = resultView
		return m, nil
	}
	switch a {
	case actionStrip:
		return m, submit(core.Request{Mode: transform.ModeStrip})
	case actionEnumerate:
		return m, submit(core.Request{Mode: transform.ModeEnumerate})
	case actionReplace:
		m.form = newOctetForm(transform.ModeReplace)
	case actionReplaceKeep:
		m.form = newOctetForm(transform.ModeReplaceKeep)
	case actionPassword:
		m.form = newPasswordForm()
	case actionDates:
		m.form = newDatesForm()
	default:
		return m, nil
	}
	m.state = formView
	return m, m.form.Init()
}

func submit(req core.Request) tea.Cmd {
	return func() tea.Msg { return submitMsg{req: req} }
}

// View renders the active sub-view.
func (m mainModel) View() string {
	switch m.state {
	case pickerView:
		return docStyle.Render(m.picker.View())
	case pathView:
		return m.place(m.path.View())
	case formView:
		return m.place(m.form.View())
	case runningView:
		return m.place(dialogBoxStyle.Render(statusMessageStyle.Render(i18n.T("running.working")) + "\n\n" + helpStyle.Render(i18n.T("running.help"))))
	case resultView:
		return m.place(m.result.View())
	case historyView:
		return docStyle.Render(m.history.View(m.width))
	case languageView:
		return docStyle.Render(m.language.View())
	}
	return docStyle.Render(m.menu.View(m.session, m.opts.Version, m.help.View(m.keys), m.width))
}

// place centers s when the terminal size is known.
func (m mainModel) place(s string) string {
	if m.width == 0 || m.height == 0 {
		return s
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	if _, err := tea.NewProgram(newModel(opts), tea.WithAltScreen()).Run(); err != nil {
		logging.Errorf("TUI run error: %v", err)
		return err
	}
	return nil
}
