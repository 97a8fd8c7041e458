// Package ui renders batch replay progress in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"irmodel/internal/replay"
)

type progressModel struct {
	title   string
	events  <-chan replay.Event
	spinner spinner.Model
	prog    progress.Model
	items   []streamItem
	width   int
	done    bool
	// interrupted is set when the user quit before the batch finished.
	interrupted bool
}

type streamItem struct {
	name   string
	status replay.Status
	note   string
}

type eventMsg replay.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model showing one line per stream.
// It quits once events is closed.
func NewProgressModel(title string, names []string, events <-chan replay.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]streamItem, len(names))
	for i, name := range names {
		items[i] = streamItem{name: name, status: replay.StatusQueued}
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		width:   80,
	}
}

// Interrupted reports whether the progress view returned by
// NewProgressModel was quit before its events were exhausted.
func Interrupted(m tea.Model) bool {
	pm, ok := m.(*progressModel)
	return ok && pm.interrupted
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(replay.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s %s", m.spinner.View(), m.title)
	if m.done {
		header = "done: " + m.title
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 10
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range m.items {
		status := styleStatus(item.status).Render(fmt.Sprintf("%*s", statusWidth, item.status))
		line := fmt.Sprintf("  %s %s", status, truncate(item.name, nameWidth))
		if item.note != "" {
			line += "  " + item.note
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev replay.Event) tea.Cmd {
	if ev.Index < 0 || ev.Index >= len(m.items) {
		return nil
	}
	item := &m.items[ev.Index]
	item.status = ev.Status
	switch ev.Status {
	case replay.StatusDone:
		item.note = fmt.Sprintf("%.1f ms", float64(ev.Elapsed.Microseconds())/1000)
	case replay.StatusError:
		if ev.Err != nil {
			item.note = truncate(ev.Err.Error(), 60)
		}
	}
	return m.prog.SetPercent(m.fraction())
}

// fraction counts finished streams fully and running ones as half done.
func (m *progressModel) fraction() float64 {
	total := 0.0
	for _, item := range m.items {
		switch item.status {
		case replay.StatusDone, replay.StatusError:
			total += 1.0
		case replay.StatusWorking:
			total += 0.5
		}
	}
	return total / float64(len(m.items))
}

func styleStatus(status replay.Status) lipgloss.Style {
	switch status {
	case replay.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case replay.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case replay.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
