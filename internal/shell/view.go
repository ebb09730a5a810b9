package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/conn-castle/devstarter/internal/messages"
	"github.com/conn-castle/devstarter/internal/provision"
)

const (
	minLogHeight = 5
	// chromeHeight is the number of lines around the log: title, bar, notice, help, borders.
	chromeHeight = 8
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	logStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type viewKeys struct {
	Cancel    key.Binding
	Interrupt key.Binding
	Restart   key.Binding
	Quit      key.Binding
}

func newViewKeys() viewKeys {
	return viewKeys{
		Cancel:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel")),
		Interrupt: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "cancel/quit")),
		Restart:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new setup")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// eventMsg carries one worker event into the program.
type eventMsg provision.Event

// doneMsg is sent once the event channel is closed.
type doneMsg struct {
	result provision.Result
}

// waitForEvent reads the next event from run. The worker never blocks on the
// view, so the view only ever waits on the channel.
func waitForEvent(run *provision.Run) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-run.Events()
		if !ok {
			return doneMsg{result: run.Wait()}
		}
		return eventMsg(e)
	}
}

// model displays one run: a progress bar, a spinner while running, and the
// append-only log.
type model struct {
	run   *provision.Run
	keys  viewKeys
	help  help.Model
	bar   progress.Model
	spin  spinner.Model
	log   viewport.Model
	lines []string

	percent  int
	finished bool
	result   provision.Result
	notice   string
	restart  bool
	quitting bool
}

func newModel(run *provision.Run, width int) model {
	m := model{
		run:  run,
		keys: newViewKeys(),
		help: help.New(),
		bar:  progress.New(progress.WithDefaultGradient()),
		spin: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		log:  viewport.New(width, minLogHeight),
	}
	m.resize(width, minLogHeight+chromeHeight)
	return m
}

func (m *model) resize(width, height int) {
	inner := max(width-4, 10)
	m.bar.Width = inner
	m.log.Width = inner
	m.log.Height = max(height-chromeHeight, minLogHeight)
	m.help.Width = width
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.run), m.spin.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.log.GotoBottom()
		return m, nil
	case eventMsg:
		m.append(provision.Event(msg))
		return m, waitForEvent(m.run)
	case doneMsg:
		m.finished = true
		m.result = msg.result
		m.notice = ""
		return m, nil
	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.log, cmd = m.log.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Interrupt):
		if m.finished || m.run.CancelRequested() {
			m.quitting = true
			return m, tea.Quit
		}
		m.requestCancel()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		if !m.finished {
			m.requestCancel()
		}
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		if !m.finished {
			m.notice = messages.ShellViewAlreadyRunning
			return m, nil
		}
		m.restart = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Quit):
		if m.finished {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.log, cmd = m.log.Update(msg)
	return m, cmd
}

// viewFilter routes an external SIGINT through the same path as Ctrl+C.
func viewFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.InterruptMsg); ok {
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return msg
}

func (m *model) requestCancel() {
	m.run.Cancel()
	m.notice = messages.ShellViewCancelPending
}

// append adds an event to the log. Lines are never edited or removed.
func (m *model) append(e provision.Event) {
	line := e.Display()
	if e.Kind == provision.EventError {
		line = errorStyle.Render(line)
	}
	m.lines = append(m.lines, line)
	m.percent = e.Percent
	m.log.SetContent(strings.Join(m.lines, "\n"))
	m.log.GotoBottom()
}

func (m model) View() string {
	var b strings.Builder

	state := messages.ShellViewRunning
	if m.finished {
		state = messages.ShellViewFinished
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf(messages.ShellViewTitleFmt, m.run.Request.Folder)))
	b.WriteString(" ")
	b.WriteString(faintStyle.Render(fmt.Sprintf(messages.ShellViewRunIDFmt, m.run.ID)))
	b.WriteString("\n")

	if !m.finished {
		b.WriteString(m.spin.View())
		b.WriteString(" ")
	}
	b.WriteString(state)
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(float64(m.percent) / 100))
	b.WriteString("\n")
	b.WriteString(logStyle.Render(m.log.View()))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.help.ShortHelpView(m.activeKeys()))
	b.WriteString("\n")
	return b.String()
}

func (m model) activeKeys() []key.Binding {
	if m.finished {
		return []key.Binding{m.keys.Restart, m.keys.Quit}
	}
	return []key.Binding{m.keys.Cancel, m.keys.Interrupt}
}
