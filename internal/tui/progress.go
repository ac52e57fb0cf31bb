// Package tui renders a live progress bar for clean runs. The engine is
// strictly sequential, so events only ever arrive between files; the model
// just counts them.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Xaia/clean-ass-from-specular/internal/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

type fileMsg struct{ rel string }

type doneMsg struct {
	res engine.Result
	err error
}

type model struct {
	spin    spinner.Model
	bar     progress.Model
	total   int
	done    int
	current string

	events   chan tea.Msg
	res      engine.Result
	err      error
	finished bool
}

func newModel(total int, events chan tea.Msg) model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	return model{
		spin:   sp,
		bar:    progress.New(progress.WithDefaultGradient()),
		total:  total,
		events: events,
	}
}

func waitForEvent(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg { return <-ch }
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, waitForEvent(m.events))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fileMsg:
		m.done++
		m.current = msg.rel
		return m, waitForEvent(m.events)
	case doneMsg:
		m.res = msg.res
		m.err = msg.err
		m.finished = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		// no mid-file cancellation: keys are ignored while the batch runs
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	if m.finished {
		return ""
	}
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}
	s := titleStyle.Render("Cleaning scene files") + "\n"
	s += fmt.Sprintf("%s %s %d/%d\n", m.spin.View(), m.bar.ViewAs(pct), m.done, m.total)
	if m.current != "" {
		s += fileStyle.Render(m.current) + "\n"
	}
	return s
}

// RunClean executes engine.Run behind a progress display on stderr and
// returns the engine's result and error.
func RunClean(cfg engine.Config, total int) (engine.Result, error) {
	events := make(chan tea.Msg, 16)
	cfg.Progress = func(rel string) { events <- fileMsg{rel: rel} }
	go func() {
		res, err := engine.Run(cfg)
		events <- doneMsg{res: res, err: err}
	}()

	out, err := tea.NewProgram(newModel(total, events), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return engine.Result{}, fmt.Errorf("error running progress UI: %w", err)
	}
	m := out.(model)
	return m.res, m.err
}
