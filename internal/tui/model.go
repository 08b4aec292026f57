// Package tui is the terminal front end of the player.
package tui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/lifeplayer/internal/bridge"
	"github.com/san-kum/lifeplayer/internal/config"
	"github.com/san-kum/lifeplayer/internal/experiment"
	"github.com/san-kum/lifeplayer/internal/life"
	"github.com/san-kum/lifeplayer/internal/notify"
	"github.com/san-kum/lifeplayer/internal/player"
	"github.com/san-kum/lifeplayer/internal/schedule"
	"github.com/san-kum/lifeplayer/internal/viz"
)

const (
	sidebarWidth = 36
	chartHeight  = 8
	spinEvery    = 80 * time.Millisecond
	noticeText   = "New data loaded. Press enter to start."
)

type mode int

const (
	modeNormal mode = iota
	modePicker
	modeMargin
	modeDelay
)

// runMsg carries a callback posted by a timer or the file reader. It runs
// inside Update, so the controller only ever sees one goroutine.
type runMsg struct{ fn func() }

type loadMsg struct{ arg string }

type spinMsg struct{}

type Model struct {
	ctrl     *player.Controller
	canvas   *viz.Canvas
	monitor  *bridge.Monitor
	registry *experiment.Registry
	logger   *slog.Logger

	styles viz.Styles
	keys   keyMap
	help   help.Model
	view   viewport.Model
	picker filepicker.Model
	input  textinput.Model
	mode   mode

	initial  string
	next     int
	flash    string
	frame    int
	spinning bool

	width, height int
}

type deps struct {
	scheduler schedule.Scheduler
	reader    player.Reader
}

func newModel(cfg *config.Config, initial string, d deps, logger *slog.Logger) (Model, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	canvas := viz.NewCanvas(0, 0)
	engine := life.NewEngine(life.WithMaxCells(cfg.MaxCells), life.WithLogger(logger))
	monitor := bridge.NewMonitor(engine, logger)

	ctrl, err := player.New(player.Options{
		Engine:    monitor,
		Surface:   canvas,
		Context:   canvas,
		Reader:    d.reader,
		Scheduler: d.scheduler,
		Notifier:  notify.New(d.scheduler),
		Logger:    logger,
		Margin:    cfg.Margin,
		Delay:     cfg.Delay(),
	})
	if err != nil {
		return Model{}, err
	}

	picker := filepicker.New()
	picker.AllowedTypes = experiment.PatternExts
	picker.AutoHeight = true
	picker.CurrentDirectory = "."
	if cfg.PatternDir != "" {
		picker.CurrentDirectory = cfg.PatternDir
	}

	input := textinput.New()
	input.CharLimit = 7
	input.Width = 10

	return Model{
		ctrl:     ctrl,
		canvas:   canvas,
		monitor:  monitor,
		registry: experiment.NewRegistry(cfg.PatternDir),
		logger:   logger,
		styles:   viz.NewStyles(viz.GetTheme(cfg.Theme)),
		keys:     defaultKeyMap(),
		help:     help.New(),
		view:     viewport.New(80, 20),
		picker:   picker,
		input:    input,
		initial:  initial,
	}, nil
}

func (m Model) Init() tea.Cmd {
	if m.initial == "" {
		return nil
	}
	arg := m.initial
	return func() tea.Msg { return loadMsg{arg: arg} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runMsg:
		msg.fn()
		m.refresh()
		cmd := m.spin()
		return m, cmd
	case loadMsg:
		m.load(msg.arg)
		m.refresh()
		cmd := m.spin()
		return m, cmd
	case spinMsg:
		m.spinning = false
		m.frame++
		cmd := m.spin()
		return m, cmd
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// directory listings for the file picker
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modePicker:
		return m.pickerKey(msg)
	case modeMargin, modeDelay:
		return m.inputKey(msg)
	}

	m.flash = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Open):
		m.mode = modePicker
		return m, m.picker.Init()
	case key.Matches(msg, m.keys.Start):
		m.report(m.ctrl.Start())
	case key.Matches(msg, m.keys.Reset):
		m.report(m.ctrl.Reset())
	case key.Matches(msg, m.keys.Margin):
		cmd := m.openInput(modeMargin, strconv.Itoa(m.ctrl.Status().Margin))
		return m, cmd
	case key.Matches(msg, m.keys.Delay):
		cmd := m.openInput(modeDelay, strconv.FormatInt(m.ctrl.Status().Delay.Milliseconds(), 10))
		return m, cmd
	case key.Matches(msg, m.keys.Preset):
		m.nextSource()
	case key.Matches(msg, m.keys.Theme):
		m.styles = viz.NewStyles(viz.NextTheme(m.styles.Theme.Name))
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.DismissError()
	default:
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}

	m.refresh()
	cmd := m.spin()
	return m, cmd
}

func (m Model) pickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.ctrl.Close()
		return m, tea.Quit
	case "esc":
		m.mode = modeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.mode = modeNormal
		m.ctrl.SelectFiles(path)
		m.refresh()
		spin := m.spin()
		return m, tea.Batch(cmd, spin)
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.flash = fmt.Sprintf("%s is not a pattern file", filepath.Base(path))
	}
	return m, cmd
}

func (m Model) inputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.ctrl.Close()
		return m, tea.Quit
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	case tea.KeyEnter:
		m.commitInput()
		m.closeInput()
		m.refresh()
		cmd := m.spin()
		return m, cmd
	case tea.KeyRunes:
		if !digitsOnly(msg.Runes) {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) openInput(md mode, value string) tea.Cmd {
	m.mode = md
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
}

// commitInput applies the typed value. Empty or invalid input keeps the
// previous setting.
func (m *Model) commitInput() {
	value := m.input.Value()
	switch m.mode {
	case modeMargin:
		n, err := player.ParseMargin(value)
		if err != nil {
			m.flash = "margin unchanged"
			return
		}
		m.report(m.ctrl.SetMargin(n))
	case modeDelay:
		d, err := player.ParseDelay(value)
		if err != nil {
			m.flash = "delay unchanged"
			return
		}
		m.report(m.ctrl.SetDelay(d))
		if m.ctrl.State() == player.Playing {
			m.flash = "delay applies on next start"
		}
	}
}

func (m *Model) report(err error) {
	if err == nil {
		return
	}
	m.flash = err.Error()
	m.logger.Debug("tui: action rejected", "error", err, "state", m.ctrl.State())
}

func (m *Model) nextSource() {
	srcs, err := m.registry.List()
	if err != nil {
		m.report(err)
		return
	}
	if len(srcs) == 0 {
		return
	}
	src := srcs[m.next%len(srcs)]
	m.next++
	m.loadSource(src)
}

func (m *Model) load(arg string) {
	src, err := m.registry.Resolve(arg)
	if err != nil {
		m.report(err)
		return
	}
	m.loadSource(src)
}

func (m *Model) loadSource(src experiment.Source) {
	if src.Path == "" {
		m.ctrl.LoadText(src.Name, src.Text)
		return
	}
	m.ctrl.SelectFiles(src.Path)
}

func (m *Model) spin() tea.Cmd {
	if m.spinning || !m.ctrl.Status().Loading {
		return nil
	}
	m.spinning = true
	return tea.Tick(spinEvery, func(time.Time) tea.Msg { return spinMsg{} })
}

func (m *Model) refresh() {
	m.view.SetContent(m.styles.Cells.Render(strings.TrimSuffix(m.canvas.String(), "\n")))
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.view.Width = max(w-sidebarWidth-6, 10)
	m.view.Height = max(h-8, 3)
	m.help.Width = w
}

func digitsOnly(rs []rune) bool {
	for _, r := range rs {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
