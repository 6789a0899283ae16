package app

import (
	"fmt"
	"sort"

	"practice-quiz-service/internal/domain"
)

// State is the lifecycle phase of a Session.
type State int

const (
	StateConfiguring State = iota
	StateActive
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateConfiguring:
		return "configuring"
	case StateActive:
		return "active"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// AnswerLog maps a question index to the selected option indices.
// An empty selection marks an explicit skip; a missing key means the
// question was never reached.
type AnswerLog map[int][]int

// Session is one attempt over a selected pool. It is driven by discrete
// events (submit, skip, tick, pause) and is not safe for concurrent use;
// callers serialize events onto a single goroutine.
type Session struct {
	id        string
	state     State
	pool      []domain.Question
	current   int
	answers   AnswerLog
	timeLimit int
	remaining int
	paused    bool
	points    int
	timedOut  bool
	result    domain.Result
}

// NewSession returns a session in the configuring state.
func NewSession(id string) *Session {
	return &Session{id: id, state: StateConfiguring, answers: make(AnswerLog)}
}

// Start moves the session to the active state. timeLimitSeconds of zero
// means the attempt is untimed.
func (s *Session) Start(pool []domain.Question, pointsPerQuestion, timeLimitSeconds int) error {
	if s.state != StateConfiguring {
		return domain.ErrSessionAlreadyStarted
	}
	if len(pool) == 0 {
		return &domain.ConfigurationError{Field: "count", Err: domain.ErrInvalidCount}
	}
	if timeLimitSeconds < 0 {
		return &domain.ConfigurationError{Field: "time limit", Err: domain.ErrInvalidTimeLimit}
	}

	s.pool = make([]domain.Question, len(pool))
	for i, q := range pool {
		s.pool[i] = q.Clone()
	}
	s.current = 0
	s.answers = make(AnswerLog)
	s.timeLimit = timeLimitSeconds
	s.remaining = timeLimitSeconds
	s.paused = false
	s.points = pointsPerQuestion
	s.state = StateActive
	return nil
}

// SubmitAnswer records a non-empty selection for the current question and
// advances. Selections are treated as sets: order and duplicates are ignored.
func (s *Session) SubmitAnswer(selected []int) error {
	if s.state != StateActive {
		return domain.ErrSessionNotActive
	}
	if len(selected) == 0 {
		return domain.ErrEmptySelection
	}
	normalized, err := normalizeSelection(selected, len(s.pool[s.current].Options))
	if err != nil {
		return err
	}
	s.answers[s.current] = normalized
	s.advance()
	return nil
}

// Skip records the current question as explicitly skipped and advances.
func (s *Session) Skip() error {
	if s.state != StateActive {
		return domain.ErrSessionNotActive
	}
	s.answers[s.current] = []int{}
	s.advance()
	return nil
}

// Tick consumes one second of the time limit. Ticks while paused are
// ignored. When the clock reaches zero the session completes and every
// unreached question is scored as skipped.
func (s *Session) Tick() error {
	if s.state != StateActive {
		return domain.ErrSessionNotActive
	}
	if s.timeLimit == 0 {
		return domain.ErrNotTimeLimited
	}
	if s.paused {
		return nil
	}
	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.current = len(s.pool)
		s.timedOut = true
		s.complete()
	}
	return nil
}

// TogglePause flips the paused flag and returns the new value.
func (s *Session) TogglePause() (bool, error) {
	if s.state != StateActive {
		return s.paused, domain.ErrSessionNotActive
	}
	if s.timeLimit == 0 {
		return false, domain.ErrNotTimeLimited
	}
	s.paused = !s.paused
	return s.paused, nil
}

// CurrentQuestion returns the question awaiting an answer.
func (s *Session) CurrentQuestion() (domain.Question, bool) {
	if s.state != StateActive {
		return domain.Question{}, false
	}
	return s.pool[s.current], true
}

// SelectionNotice returns an informational hint when fewer options were
// selected than the current question has correct answers. It never blocks
// submission.
func (s *Session) SelectionNotice(selected []int) string {
	q, ok := s.CurrentQuestion()
	if !ok || len(selected) == 0 {
		return ""
	}
	if len(q.CorrectAnswers) > 1 && len(selected) < len(q.CorrectAnswers) {
		return fmt.Sprintf("This question requires %d answers. You've selected %d.", len(q.CorrectAnswers), len(selected))
	}
	return ""
}

func (s *Session) Progress() domain.Progress {
	return domain.Progress{Index: s.current, Total: len(s.pool)}
}

// TimeDisplay renders the remaining time for the current session.
func (s *Session) TimeDisplay() string {
	return FormatRemaining(s.remaining, s.timeLimit > 0)
}

// Result returns the score of a completed session.
func (s *Session) Result() (domain.Result, error) {
	if s.state != StateCompleted {
		return domain.Result{}, domain.ErrSessionNotCompleted
	}
	return s.result, nil
}

// Review returns the per-question comparison of a completed session.
func (s *Session) Review() ([]domain.ReviewEntry, error) {
	if s.state != StateCompleted {
		return nil, domain.ErrSessionNotCompleted
	}
	return BuildReview(s.pool, s.answers), nil
}

func (s *Session) ID() string { return s.id }
func (s *Session) State() State { return s.state }
func (s *Session) Remaining() int { return s.remaining }
func (s *Session) Paused() bool { return s.paused }
func (s *Session) TimeLimited() bool { return s.timeLimit > 0 }
func (s *Session) TimedOut() bool { return s.timedOut }
func (s *Session) PointsPerQuestion() int { return s.points }

// Answers returns a copy of the answer log.
func (s *Session) Answers() AnswerLog {
	out := make(AnswerLog, len(s.answers))
	for idx, sel := range s.answers {
		out[idx] = append([]int{}, sel...)
	}
	return out
}

func (s *Session) advance() {
	s.current++
	if s.current == len(s.pool) {
		s.complete()
	}
}

func (s *Session) complete() {
	s.state = StateCompleted
	s.paused = false
	s.result = Score(s.pool, s.answers, s.points)
}

// FormatRemaining renders seconds as "Time left: MM:SS", or "Unlimited Time"
// for untimed sessions.
func FormatRemaining(seconds int, timeLimited bool) string {
	if !timeLimited {
		return "Unlimited Time"
	}
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("Time left: %02d:%02d", seconds/60, seconds%60)
}

func normalizeSelection(selected []int, optionCount int) ([]int, error) {
	seen := make(map[int]struct{}, len(selected))
	out := make([]int, 0, len(selected))
	for _, idx := range selected {
		if idx < 0 || idx >= optionCount {
			return nil, fmt.Errorf("option %d: %w", idx, domain.ErrInvalidOption)
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	sort.Ints(out)
	return out, nil
}
