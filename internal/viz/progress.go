package viz

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/mira/internal/dynamo"
)

const tickInterval = 100 * time.Millisecond

// Tracker counts retained orbit points. It satisfies sim.Observer and is
// safe to read from the UI goroutine while the generator writes to it.
type Tracker struct {
	done  atomic.Int64
	total int64
}

func NewTracker(total int) *Tracker {
	return &Tracker{total: int64(total)}
}

func (t *Tracker) OnStep(_ dynamo.Point, _ int) {
	t.done.Add(1)
}

func (t *Tracker) Done() int64  { return t.done.Load() }
func (t *Tracker) Total() int64 { return t.total }

// Fraction reports progress in [0,1].
func (t *Tracker) Fraction() float64 {
	if t.total <= 0 {
		return 0
	}
	f := float64(t.done.Load()) / float64(t.total)
	if f > 1 {
		f = 1
	}
	return f
}

type tickMsg time.Time

type finishedMsg struct{ err error }

// ProgressModel is a bubbletea model that polls a Tracker until the work
// it watches reports completion.
type ProgressModel struct {
	tracker *Tracker
	label   string
	start   time.Time
	frame   int
	err     error
	done    bool
}

func NewProgressModel(label string, tracker *Tracker) ProgressModel {
	return ProgressModel{tracker: tracker, label: label, start: time.Now()}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m ProgressModel) Init() tea.Cmd {
	return tick()
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.err = fmt.Errorf("interrupted")
			return m, tea.Quit
		}
	case tickMsg:
		m.frame++
		return m, tick()
	case finishedMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) View() string {
	elapsed := time.Since(m.start).Round(time.Millisecond)
	if m.done {
		if m.err != nil {
			return ErrorText.Render("failed: "+m.err.Error()) + "\n"
		}
		return fmt.Sprintf("%s %s %s\n", Title.Render(m.label), ProgressBar(1, 40), Subtle.Render(elapsed.String()))
	}
	return fmt.Sprintf("%s %s %s %5.1f%% %s\n",
		Spinner(m.frame),
		Title.Render(m.label),
		ProgressBar(m.tracker.Fraction(), 40),
		100*m.tracker.Fraction(),
		Subtle.Render(fmt.Sprintf("%d/%d  %s", m.tracker.Done(), m.tracker.Total(), elapsed)))
}

// RunWithProgress runs work in a goroutine while displaying its progress on
// out. Interrupting the display cancels the context handed to work.
func RunWithProgress(ctx context.Context, out io.Writer, label string, tracker *Tracker, work func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgressModel(label, tracker), tea.WithOutput(out), tea.WithContext(ctx))

	errc := make(chan error, 1)
	go func() {
		err := work(ctx)
		errc <- err
		p.Send(finishedMsg{err: err})
	}()

	final, runErr := p.Run()
	if fm, ok := final.(ProgressModel); ok && !fm.done {
		cancel()
		workErr := <-errc
		if fm.err != nil {
			return fm.err
		}
		if runErr != nil {
			return runErr
		}
		return workErr
	}
	return <-errc
}
