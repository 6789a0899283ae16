// Package tui plays a quiz session in the terminal.
package tui

import (
	"errors"
	"sort"
	"time"

	"practice-quiz-service/internal/app"
	"practice-quiz-service/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// FinishFunc records a completed session and returns the stored attempt.
type FinishFunc func(session *app.Session) (domain.AttemptRecord, error)

// Options configures the terminal model.
type Options struct {
	Title        string
	NoColor      bool
	TickInterval time.Duration
	Finish       FinishFunc
}

// Model drives an active session from key presses and clock ticks.
type Model struct {
	session      *app.Session
	title        string
	noColor      bool
	tickInterval time.Duration
	finish       FinishFunc
	keys         keyMap
	help         help.Model

	selected map[int]bool
	message  string

	record      *domain.AttemptRecord
	review      []domain.ReviewEntry
	reviewIndex int
	finishErr   error
}

// NewModel wraps a started session.
func NewModel(session *app.Session, opts Options) Model {
	interval := opts.TickInterval
	if interval <= 0 {
		interval = time.Second
	}
	return Model{
		session:      session,
		title:        opts.Title,
		noColor:      opts.NoColor,
		tickInterval: interval,
		finish:       opts.Finish,
		keys:         defaultKeys(),
		help:         help.New(),
		selected:     map[int]bool{},
	}
}

type tickMsg time.Time

type finishedMsg struct {
	record domain.AttemptRecord
	err    error
}

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the clock for timed sessions.
func (m Model) Init() tea.Cmd {
	if m.session.TimeLimited() && m.session.State() == app.StateActive {
		return tick(m.tickInterval)
	}
	return nil
}

// Update applies key presses and clock ticks to the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
		return m, nil
	case tickMsg:
		if m.session.State() != app.StateActive {
			return m, nil
		}
		if err := m.session.Tick(); err != nil {
			return m, nil
		}
		if m.session.State() == app.StateCompleted {
			return m.completed()
		}
		return m, tick(m.tickInterval)
	case finishedMsg:
		if typed.err != nil {
			m.finishErr = typed.err
			return m, nil
		}
		record := typed.record
		m.record = &record
		return m, nil
	case tea.KeyMsg:
		if m.session.State() == app.StateActive {
			return m.handleQuestionKey(typed)
		}
		return m.handleReviewKey(typed)
	}
	return m, nil
}

func (m Model) handleQuestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q, _ := m.session.CurrentQuestion()

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Submit) {
		selected := m.selection()
		notice := m.session.SelectionNotice(selected)
		if err := m.session.SubmitAnswer(selected); err != nil {
			if errors.Is(err, domain.ErrEmptySelection) {
				m.message = "Please select an answer or press s to skip."
			} else {
				m.message = err.Error()
			}
			return m, nil
		}
		m.message = notice
		return m.advanced()
	}
	// An in-range option letter wins over the command keys.
	if idx, ok := optionIndex(msg.String()); ok && idx < len(q.Options) {
		m.toggle(idx, q.Multiple)
		m.message = ""
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Skip):
		if err := m.session.Skip(); err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.message = ""
		return m.advanced()
	case key.Matches(msg, m.keys.Pause):
		if _, err := m.session.TogglePause(); err != nil {
			m.message = "This quiz is not timed."
			return m, nil
		}
		m.message = ""
	}
	return m, nil
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		if m.reviewIndex < len(m.review)-1 {
			m.reviewIndex++
		}
	case key.Matches(msg, m.keys.Prev):
		if m.reviewIndex > 0 {
			m.reviewIndex--
		}
	}
	return m, nil
}

// advanced resets the per-question state after a submit or skip.
func (m Model) advanced() (tea.Model, tea.Cmd) {
	m.selected = map[int]bool{}
	if m.session.State() == app.StateCompleted {
		return m.completed()
	}
	return m, nil
}

func (m Model) completed() (tea.Model, tea.Cmd) {
	review, err := m.session.Review()
	if err != nil {
		m.finishErr = err
		return m, nil
	}
	m.review = review
	m.reviewIndex = 0
	if m.finish == nil {
		return m, nil
	}
	session, finish := m.session, m.finish
	return m, func() tea.Msg {
		record, err := finish(session)
		return finishedMsg{record: record, err: err}
	}
}

func (m Model) toggle(idx int, multiple bool) {
	if !multiple {
		for k := range m.selected {
			delete(m.selected, k)
		}
		m.selected[idx] = true
		return
	}
	if m.selected[idx] {
		delete(m.selected, idx)
		return
	}
	m.selected[idx] = true
}

func (m Model) selection() []int {
	out := make([]int, 0, len(m.selected))
	for idx := range m.selected {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Session exposes the underlying session, mainly for callers inspecting the
// final model returned by tea.Program.Run.
func (m Model) Session() *app.Session { return m.session }

// Record returns the stored attempt once the session has been recorded.
func (m Model) Record() (domain.AttemptRecord, bool) {
	if m.record == nil {
		return domain.AttemptRecord{}, false
	}
	return *m.record, true
}
