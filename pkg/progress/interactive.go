package progress

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aholstenson/gocurl/pkg/network"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var quitKey = key.NewBinding(
	key.WithKeys("ctrl+c"),
)

var styleTime = lipgloss.NewStyle().
	Width(5)

var styleAction = lipgloss.NewStyle().
	PaddingLeft(1).
	PaddingRight(1)

var styleMethod = lipgloss.NewStyle().
	Bold(true).
	PaddingRight(1)

var styleURL = lipgloss.NewStyle().Faint(true)

var styleBody = lipgloss.NewStyle().
	PaddingLeft(2)

var styleDefault = lipgloss.NewStyle().
	Bold(true).
	PaddingRight(1)

var style2xx = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#04B575")).
	PaddingRight(1)

var style3xx = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FDD835")).
	PaddingRight(1)

var style4xx = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFA726")).
	PaddingRight(1)

var style5xx = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FF7043")).
	PaddingRight(1)

type interactiveReporter struct {
	ctxCancel func()
	verbose   bool

	events       []any
	eventChannel chan any

	action        string
	actionChannel chan string

	program   *tea.Program
	stopwatch stopwatch.Model
	spinner   spinner.Model

	done chan struct{}
}

// NewInteractiveReporter renders a spinner and elapsed time while the
// request is in flight and keeps a short log of what happened. The cancel
// function is invoked when the user quits.
func NewInteractiveReporter(verbose bool, cancel func()) (Reporter, error) {
	m := &interactiveReporter{
		ctxCancel: cancel,
		verbose:   verbose,

		events:       make([]any, 0),
		eventChannel: make(chan any),

		actionChannel: make(chan string),

		stopwatch: stopwatch.NewWithInterval(time.Millisecond * 100),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),

		done: make(chan struct{}),
	}

	p := tea.NewProgram(m)
	m.program = p
	go func() {
		if _, err := p.Run(); err != nil {
			os.Exit(1)
		}

		close(m.done)
		cancel()
	}()

	return m, nil
}

func (m *interactiveReporter) Close() error {
	m.program.Quit()
	<-m.done
	return nil
}

// send delivers an event unless the program has already quit, in which case
// the event is dropped instead of blocking forever.
func (m *interactiveReporter) send(event any) {
	select {
	case m.eventChannel <- event:
	case <-m.done:
	}
}

func (m *interactiveReporter) Action(msg string) {
	select {
	case m.actionChannel <- msg:
	case <-m.done:
	}
}

func (m *interactiveReporter) Info(msg string) {
	m.send(infoMessage(msg))
}

func (m *interactiveReporter) Debug(msg string) {
	if !m.verbose {
		return
	}

	m.send(debugMessage(msg))
}

func (m *interactiveReporter) Error(err error, msg string) {
	m.send(errorMessage(msg + ": " + err.Error()))
}

func (m *interactiveReporter) Request(req *network.Request) {
	m.send(req)
}

func (m *interactiveReporter) Response(res *network.Response) {
	m.send(res)
}

func (m *interactiveReporter) Init() tea.Cmd {
	return tea.Batch(
		m.waitForEvent(m.eventChannel),
		m.waitForAction(m.actionChannel),
		m.stopwatch.Init(),
		m.spinner.Tick,
	)
}

func (m *interactiveReporter) View() string {
	s := m.spinner.View() + styleTime.Render(m.stopwatch.View()) + styleAction.Render(m.action) + "\n\n"
	for _, e := range m.events {
		switch event := e.(type) {
		case *network.Request:
			s += styleMethod.Render(event.Method) + styleURL.Render(event.URL) + "\n"
		case *network.Response:
			statusStyle := styleDefault
			if event.StatusCode >= 200 && event.StatusCode < 300 {
				statusStyle = style2xx
			} else if event.StatusCode >= 300 && event.StatusCode < 400 {
				statusStyle = style3xx
			} else if event.StatusCode >= 400 && event.StatusCode < 500 {
				statusStyle = style4xx
			} else if event.StatusCode >= 500 && event.StatusCode < 600 {
				statusStyle = style5xx
			}
			s += statusStyle.Render(strconv.Itoa(event.StatusCode)+" "+event.StatusPhrase) + styleURL.Render(event.URL) + "\n"
			if len(event.Body) > 0 {
				s += styleBody.Render(strings.TrimRight(string(event.Body), "\n")) + "\n"
			}
		case infoMessage:
			s += string(event) + "\n"
		case debugMessage:
			s += string(event) + "\n"
		case errorMessage:
			s += "❌ " + string(event) + "\n"
		}
	}
	return s
}

func (m *interactiveReporter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, quitKey):
			return m, tea.Quit
		}
	case actionMsg:
		m.action = string(msg)
		return m, m.waitForAction(m.actionChannel)
	case eventMsg:
		m.events = append(m.events, msg.data)
		return m, m.waitForEvent(m.eventChannel)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case stopwatch.TickMsg, stopwatch.StartStopMsg:
		var cmd tea.Cmd
		m.stopwatch, cmd = m.stopwatch.Update(msg)
		return m, cmd
	default:
		return m, nil
	}

	return m, nil
}

func (m *interactiveReporter) waitForEvent(c chan any) tea.Cmd {
	return func() tea.Msg {
		return eventMsg{
			data: <-c,
		}
	}
}

func (m *interactiveReporter) waitForAction(c chan string) tea.Cmd {
	return func() tea.Msg {
		return actionMsg(<-c)
	}
}

type eventMsg struct {
	data any
}

type actionMsg string

type infoMessage string

type debugMessage string

type errorMessage string

var _ Reporter = &interactiveReporter{}
