package console

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tejzpr/vibeque-hq/internal/queue"
)

// DefaultRunTimeout bounds a single pipeline run started from the TUI.
const DefaultRunTimeout = 30 * time.Second

// chromeHeight is the number of lines below the viewport.
const chromeHeight = 3

type keyMap struct {
	Unplayed key.Binding
	Sort     key.Binding
	NextUser key.Binding
	PrevUser key.Binding
	View     key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Unplayed: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "only unplayed")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		NextUser: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next submitter")),
		PrevUser: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev submitter")),
		View:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "table/cards")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Unplayed, k.Sort, k.NextUser, k.View, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.PrevUser}}
}

// boardMsg carries the result of run number seq.
type boardMsg struct {
	seq   int
	board *queue.Board
	err   error
}

// Model is the interactive queue view. Every control change runs the
// pipeline again; nothing refreshes on a timer.
type Model struct {
	runner   queue.Runner
	renderer *Renderer
	timeout  time.Duration

	opts    queue.Options
	mode    queue.DisplayMode
	board   *queue.Board
	err     error
	loading bool
	seq     int

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model
	ready    bool
}

func NewModel(runner queue.Runner, renderer *Renderer, opts queue.Options, mode queue.DisplayMode) Model {
	if opts.Sort == "" {
		opts.Sort = queue.SortNone
	}
	if opts.Submitter == "" {
		opts.Submitter = queue.AllSubmitters
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		runner:   runner,
		renderer: renderer,
		timeout:  DefaultRunTimeout,
		opts:     opts,
		mode:     mode,
		keys:     defaultKeys(),
		help:     help.New(),
		spinner:  sp,
		loading:  true,
		seq:      1,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m Model) fetch() tea.Cmd {
	runner, opts, seq, timeout := m.runner, m.opts, m.seq, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		b, err := runner.Run(ctx, opts)
		return boardMsg{seq: seq, board: b, err: err}
	}
}

// rerun starts a new run and drops any still in flight.
func (m Model) rerun() (Model, tea.Cmd) {
	m.seq++
	m.loading = true
	return m, m.fetch()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.renderer.Width = msg.Width
		m.help.Width = msg.Width
		h := max(1, msg.Height-chromeHeight)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}
		m.refreshContent()
		return m, nil

	case boardMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.board, m.err = msg.board, msg.err
		m.refreshContent()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Unplayed):
			m.opts.OnlyUnplayed = !m.opts.OnlyUnplayed
			return m.rerun()
		case key.Matches(msg, m.keys.Sort):
			m.opts.Sort = nextSort(m.opts.Sort)
			return m.rerun()
		case key.Matches(msg, m.keys.NextUser):
			m.opts.Submitter = m.cycleSubmitter(1)
			return m.rerun()
		case key.Matches(msg, m.keys.PrevUser):
			m.opts.Submitter = m.cycleSubmitter(-1)
			return m.rerun()
		case key.Matches(msg, m.keys.View):
			if m.mode == queue.DisplayCards {
				m.mode = queue.DisplayTable
			} else {
				m.mode = queue.DisplayCards
			}
			return m.rerun()
		case key.Matches(msg, m.keys.Refresh):
			return m.rerun()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func nextSort(s queue.SortOrder) queue.SortOrder {
	switch s {
	case queue.SortNewest:
		return queue.SortOldest
	case queue.SortOldest:
		return queue.SortNone
	}
	return queue.SortNewest
}

// cycleSubmitter steps through "All" followed by the submitters of the
// last board.
func (m Model) cycleSubmitter(step int) string {
	choices := []string{queue.AllSubmitters}
	if m.board != nil {
		choices = append(choices, m.board.Submitters...)
	}
	i := slices.Index(choices, m.opts.Submitter)
	if i < 0 {
		i = 0
	}
	i = (i + step + len(choices)) % len(choices)
	return choices[i]
}

func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.content())
}

func (m Model) content() string {
	switch {
	case m.err != nil:
		return m.renderer.Error(m.err)
	case m.board != nil:
		return m.renderer.Board(m.board, m.mode)
	}
	return ""
}

func (m Model) View() string {
	body := m.content()
	if m.ready {
		body = m.viewport.View()
	}

	status := m.controls()
	if m.loading {
		status = m.spinner.View() + " syncing  " + status
	}
	return strings.Join([]string{
		body,
		m.renderer.Styles.Controls.Render(status),
		m.help.View(m.keys),
	}, "\n")
}

func (m Model) controls() string {
	onOff := "off"
	if m.opts.OnlyUnplayed {
		onOff = "on"
	}
	return fmt.Sprintf("only unplayed: %s  ·  submitter: %s  ·  sort: %s  ·  view: %s",
		onOff, m.opts.Submitter, m.opts.Sort, m.mode)
}

// Options returns the current view controls.
func (m Model) Options() queue.Options { return m.opts }

// RunTUI runs the interactive view until the operator quits or ctx ends.
func RunTUI(ctx context.Context, m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
