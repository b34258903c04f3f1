// Package ui renders the committed widget tree of a plugin view in the
// terminal and turns keyboard input into widget events.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/yanmxa/gauntlet/internal/actionpanel"
	"github.com/yanmxa/gauntlet/internal/focus"
	"github.com/yanmxa/gauntlet/internal/log"
	"github.com/yanmxa/gauntlet/internal/property"
	"github.com/yanmxa/gauntlet/internal/runtime"
	"github.com/yanmxa/gauntlet/internal/tree"
	"github.com/yanmxa/gauntlet/internal/widget"
)

// Options configures one view session.
type Options struct {
	Runtime  runtime.Runtime
	Tree     *tree.Tree
	Location tree.Location

	// Title is shown in the bottom bar, usually the entrypoint name.
	Title string

	// Shortcuts maps action ids to their shortcuts.
	Shortcuts map[string]actionpanel.Shortcut
}

type (
	commandsMsg struct {
		requests []runtime.Request
		closed   bool
	}
	runtimeClosedMsg struct{}
	runtimeErrMsg    struct{ err error }
)

// fieldState is the local state of one form field. prop is the value
// property last copied from the plugin.
type fieldState struct {
	input    textinput.Model
	checked  bool
	selected string
	prop     property.Value
}

type model struct {
	rt        runtime.Runtime
	tree      *tree.Tree
	location  tree.Location
	title     string
	shortcuts map[string]actionpanel.Shortcut
	logger    *zap.Logger

	screen screen
	layout *focus.Layout

	viewport   viewport.Model
	search     textinput.Model
	searchProp property.Value
	spinner    spinner.Model
	spinning   bool
	fields     map[widget.ID]*fieldState

	listFocus  *focus.ScrollHandle[string, *tree.Node]
	gridFocus  *focus.ScrollHandle[string, *tree.Node]
	formFocus  *focus.ScrollHandle[widget.ID, *tree.Node]
	panelFocus *focus.ScrollHandle[int, actionpanel.Action]

	panelOpen   bool
	panelLines  []string
	panelOffset int

	content contentRenderer
	width   int
	height  int
	ready   bool
	err     error
}

// Run shows the view until the user quits or the runtime exits.
func Run(opts Options) error {
	p := tea.NewProgram(
		New(opts),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// New returns the bubbletea model of a view session.
func New(opts Options) tea.Model {
	m := newModel(opts)
	return m
}

func newModel(opts Options) model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Search..."
	ti.PlaceholderStyle = hintStyle
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    80 * time.Millisecond,
	}
	sp.Style = spinnerStyle

	m := model{
		rt:         opts.Runtime,
		tree:       opts.Tree,
		location:   opts.Location,
		title:      opts.Title,
		shortcuts:  opts.Shortcuts,
		logger:     log.Named("ui"),
		layout:     focus.NewLayout(),
		viewport:   viewport.New(defaultWidth, defaultHeight-frameHeight),
		search:     ti,
		spinner:    sp,
		fields:     make(map[widget.ID]*fieldState),
		listFocus:  focus.NewScrollHandle[string, *tree.Node](scrollList),
		gridFocus:  focus.NewScrollHandle[string, *tree.Node](scrollGrid),
		formFocus:  focus.NewScrollHandle[widget.ID, *tree.Node](scrollForm),
		panelFocus: focus.NewScrollHandle[int, actionpanel.Action](scrollActions),
		content:    contentRenderer{md: createMarkdownRenderer(defaultWidth)},
		width:      defaultWidth,
		height:     defaultHeight,
	}
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForCommands(m.rt.Commands()), textinput.Blink)
}

// waitForCommands blocks for one command, then takes whatever else is
// already buffered so that a burst is rendered once.
func waitForCommands(ch <-chan runtime.Request) tea.Cmd {
	return func() tea.Msg {
		req, ok := <-ch
		if !ok {
			return runtimeClosedMsg{}
		}
		batch := []runtime.Request{req}
		for len(batch) < runtime.CommandBuffer {
			select {
			case req, ok := <-ch:
				if !ok {
					return commandsMsg{requests: batch, closed: true}
				}
				batch = append(batch, req)
			default:
				return commandsMsg{requests: batch}
			}
		}
		return commandsMsg{requests: batch}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case commandsMsg:
		return m.handleCommands(msg)

	case runtimeClosedMsg:
		m.logger.Info("Plugin runtime exited")
		return m, tea.Quit

	case runtimeErrMsg:
		m.err = msg.err
		m.logger.Warn("Runtime call failed", zap.Error(msg.err))
		return m, nil

	case focus.ScrollRequestMsg:
		return m.handleScrollRequest(msg)

	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)

	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.screen.search != nil {
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	}
	if st, ok := m.focusedField(); ok {
		st.input, cmd = st.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	separator := separatorStyle.Render(strings.Repeat("─", m.width))

	body := m.viewport.View()
	if m.panelOpen {
		body = m.renderPanel()
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s",
		m.renderTopBar(), separator, body, separator, m.renderBottomBar())
}

// refresh re-renders the body into the viewport and records a fresh layout
// for scroll requests.
func (m *model) refresh() {
	m.layout = focus.NewLayout()

	width := m.viewport.Width
	m.viewport.SetContent(m.renderBody(width))
	if name := m.screen.scrollable(); name != "" {
		m.layout.Record(name, focus.Rect{Width: width, Height: m.viewport.Height})
	}

	if m.panelOpen {
		m.panelLines = m.renderPanelLines(panelWidth - 4)
		m.layout.Record(scrollActions, focus.Rect{
			Width:  panelWidth,
			Height: min(panelMaxVisible, len(m.panelLines)),
		})
	}
}
