// Package tui renders a grid.Viewer in the terminal with bubbletea.
// All keyboard semantics live in the grid package; this layer only
// translates messages, draws the viewport, and acts on the outcomes
// the dispatcher hands back (prompts, modals, clipboard, reload).
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/pinwheel-labs/tabulon/grid"
	"github.com/pinwheel-labs/tabulon/loader"
)

type LoadState int

const (
	LoadStateLoading LoadState = iota
	LoadStateLoaded
	LoadStateError
)

// uiMode tracks which surface owns the keyboard.
type uiMode int

const (
	modeGrid uiMode = iota
	modeSearch
	modeModal
)

// ModalKind selects the content of the popup overlay.
type ModalKind int

const (
	ModalCell ModalKind = iota
	ModalMeta
	ModalHelp
)

type loadCompleteMsg struct {
	source   *loader.Source
	duration time.Duration
}

type loadErrorMsg struct {
	err error
}

type Model struct {
	path     string
	loadOpts loader.Options
	gridOpts grid.Options

	source *loader.Source
	viewer *grid.Viewer

	mode        uiMode
	activeModal ModalKind
	modal       viewport.Model
	searchInput textinput.Model

	width    int
	height   int
	ready    bool
	quitting bool

	loadState      LoadState
	loadingSpinner spinner.Model
	loadTime       time.Duration

	// one-shot status bar message, cleared by the next grid key
	flash string

	err error
}

// NewModel creates a model that loads path asynchronously on Init.
func NewModel(path string, loadOpts loader.Options, gridOpts grid.Options) *Model {
	return &Model{
		path:           path,
		loadOpts:       loadOpts,
		gridOpts:       gridOpts,
		loadState:      LoadStateLoading,
		loadingSpinner: createLoadingSpinner(),
		searchInput:    createSearchInput(),
	}
}

// NewModelFromSource creates a model over an already loaded source.
func NewModelFromSource(src *loader.Source, gridOpts grid.Options) *Model {
	m := &Model{
		gridOpts:    gridOpts,
		loadState:   LoadStateLoaded,
		searchInput: createSearchInput(),
	}
	m.attachSource(src)
	return m
}

func (m *Model) Init() tea.Cmd {
	if m.loadState == LoadStateLoaded {
		return nil
	}
	return tea.Batch(
		m.loadingSpinner.Tick,
		m.loadSource(),
	)
}

func (m *Model) loadSource() tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		src, err := loader.Load(m.path, m.loadOpts)
		if err != nil {
			return loadErrorMsg{err: err}
		}
		return loadCompleteMsg{source: src, duration: time.Since(start)}
	}
}

// attachSource rebuilds the table and viewer over a new source. The
// first data row becomes the header.
func (m *Model) attachSource(src *loader.Source) {
	m.source = src
	opts := m.gridOpts
	if m.width > 0 {
		opts.Width = m.width
		opts.Height = m.gridHeight()
	}
	m.viewer = grid.NewViewer(grid.NewTable(src.Rows()), opts)
}

// gridHeight is the terminal height minus the status bar.
func (m *Model) gridHeight() int {
	h := m.height - statusBarHeight
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if m.loadState == LoadStateLoading {
		m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	switch msg := msg.(type) {
	case loadCompleteMsg:
		m.loadState = LoadStateLoaded
		m.loadTime = msg.duration
		m.attachSource(msg.source)
		return m, nil

	case loadErrorMsg:
		m.loadState = LoadStateError
		m.err = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if m.viewer != nil {
			m.viewer.Resize(m.width, m.gridHeight())
		}
		if m.mode == modeModal {
			m.sizeModal()
		}
		return m, tea.Batch(cmds...)

	case tea.KeyPressMsg:
		if m.loadState != LoadStateLoaded {
			if key := msg.String(); key == "q" || key == "ctrl+c" {
				m.quitting = true
				return m, tea.Quit
			}
			return m, tea.Batch(cmds...)
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeModal:
			return m.updateModal(msg)
		default:
			return m.dispatch(msg.String())
		}
	}

	return m, tea.Batch(cmds...)
}

// dispatch feeds one key to the engine and acts on the outcome.
func (m *Model) dispatch(key string) (tea.Model, tea.Cmd) {
	m.flash = ""

	outcome := m.viewer.HandleKey(key)
	switch outcome.Kind {
	case grid.OutcomeQuit:
		m.quitting = true
		return m, tea.Quit

	case grid.OutcomeReload:
		m.reload(outcome.Settings)

	case grid.OutcomePromptSearch:
		m.mode = modeSearch
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()

	case grid.OutcomeShowCell:
		// nothing to pop up for an empty cell
		if outcome.Cell != "" {
			m.openModal(ModalCell)
		}

	case grid.OutcomeShowMeta:
		m.openModal(ModalMeta)

	case grid.OutcomeShowHelp:
		m.openModal(ModalHelp)

	case grid.OutcomeYank:
		abs := m.viewer.Absolute()
		if err := clipboard.WriteAll(outcome.Cell); err != nil {
			m.flash = fmt.Sprintf("yank failed: %v", err)
		} else {
			m.flash = fmt.Sprintf("yanked %s", cellLabel(abs.X, abs.Y))
		}
	}

	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		term := strings.TrimSpace(m.searchInput.Value())
		m.mode = modeGrid
		m.searchInput.Blur()
		if term != "" {
			m.viewer.RunSearch(term)
		}
		return m, nil

	case "esc", "ctrl+c":
		m.mode = modeGrid
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) updateModal(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "enter":
		m.mode = modeGrid
		return m, nil
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

// reload re-reads the file and restores the user-visible settings
// onto a fresh viewer, clamped against whatever the file holds now.
func (m *Model) reload(s grid.Settings) {
	headerVisible := m.viewer.HeaderVisible()

	src, err := m.source.Reload()
	if err != nil {
		m.flash = fmt.Sprintf("reload failed: %v", err)
		return
	}
	changed := m.source.Changed(src)

	m.attachSource(src)
	if !headerVisible {
		m.viewer.ToggleHeader()
	}
	m.viewer.Restore(s)

	if changed {
		m.flash = fmt.Sprintf("reloaded %s", src.Name())
	} else {
		m.flash = "file unchanged"
	}
}

func createSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "search"
	return ti
}
