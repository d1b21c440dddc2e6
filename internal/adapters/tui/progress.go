package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	itemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type advanceMsg struct{ item string }

type doneMsg struct{}

type progressModel struct {
	bar     progress.Model
	label   string
	total   int
	done    int
	current string
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		m.done++
		m.current = msg.item
		return m, nil
	case doneMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}
	return fmt.Sprintf("%s %s %d/%d %s\n",
		labelStyle.Render(m.label),
		m.bar.ViewAs(pct),
		m.done, m.total,
		itemStyle.Render(m.current))
}

// Reporter renders a terminal progress bar for one batch, implementing
// ports.ProgressReporter. The bubbletea program runs on its own goroutine;
// the reconciliation loop stays synchronous and just sends events.
type Reporter struct {
	program  *tea.Program
	finished chan struct{}
}

// NewReporter creates a new progress reporter
func NewReporter() *Reporter {
	return &Reporter{}
}

// Start begins rendering a bar for total items under the given label
func (r *Reporter) Start(label string, total int) {
	if total <= 0 {
		return
	}

	model := progressModel{
		bar:   progress.New(progress.WithDefaultGradient()),
		label: label,
		total: total,
	}
	r.program = tea.NewProgram(model, tea.WithInput(nil), tea.WithOutput(os.Stderr))
	r.finished = make(chan struct{})

	go func() {
		// rendering failures must never break the batch
		_, _ = r.program.Run()
		close(r.finished)
	}()
}

// Advance marks one item as processed
func (r *Reporter) Advance(item string) {
	if r.program != nil {
		r.program.Send(advanceMsg{item: item})
	}
}

// Done stops the bar and waits for the final frame to be flushed
func (r *Reporter) Done() {
	if r.program == nil {
		return
	}
	r.program.Send(doneMsg{})
	<-r.finished
	r.program = nil
}
