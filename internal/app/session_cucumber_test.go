//go:build cucumber

package app_test

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"practice-quiz-service/internal/app"
	"practice-quiz-service/internal/domain"
	"github.com/cucumber/godog"
)

// TestSessionScenarios runs the session engine feature scenarios.
func TestSessionScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "session",
		ScenarioInitializer: InitializeSessionScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{"features/session.feature"},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeSessionScenario wires the session steps.
func InitializeSessionScenario(ctx *godog.ScenarioContext) {
	state := &sessionScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a pool of (\d+) single-answer questions$`, state.givenSinglePool)
	ctx.Step(`^a multiple-answer question with correct answers "([^"]*)"$`, state.givenMultipleQuestion)
	ctx.Step(`^a started session without a time limit$`, state.givenUntimedSession)
	ctx.Step(`^a started session with a (\d+) second limit$`, state.givenTimedSession)
	ctx.Step(`^I answer correctly$`, state.whenAnswerCorrectly)
	ctx.Step(`^I answer incorrectly$`, state.whenAnswerIncorrectly)
	ctx.Step(`^I skip$`, state.whenSkip)
	ctx.Step(`^I submit "([^"]*)"$`, state.whenSubmit)
	ctx.Step(`^the clock ticks$`, state.whenTick)
	ctx.Step(`^I toggle pause$`, state.whenTogglePause)
	ctx.Step(`^the session is completed$`, state.thenCompleted)
	ctx.Step(`^the session timed out$`, state.thenTimedOut)
	ctx.Step(`^the result has (\d+) correct, (\d+) skipped and a score of (\d+)$`, state.thenResult)
	ctx.Step(`^the percentage is (\d+)$`, state.thenPercentage)
	ctx.Step(`^the attempt did not pass$`, state.thenFailed)
	ctx.Step(`^no error is returned$`, state.thenNoError)
	ctx.Step(`^the review verdict for question (\d+) is "([^"]*)"$`, state.thenVerdict)
	ctx.Step(`^(\d+) seconds remain$`, state.thenRemaining)
}

type sessionScenarioState struct {
	pool    []domain.Question
	session *app.Session
	lastErr error
}

func (s *sessionScenarioState) reset() {
	s.pool = nil
	s.session = nil
	s.lastErr = nil
}

func (s *sessionScenarioState) givenSinglePool(n int) error {
	s.pool = make([]domain.Question, n)
	for i := range s.pool {
		s.pool[i] = domain.Question{
			ID:             i + 1,
			Text:           fmt.Sprintf("question %d", i+1),
			Options:        []string{"a", "b", "c"},
			CorrectAnswers: []int{0},
		}
	}
	return nil
}

func (s *sessionScenarioState) givenMultipleQuestion(raw string) error {
	correct, err := parseIndices(raw)
	if err != nil {
		return err
	}
	s.pool = []domain.Question{{
		ID:             1,
		Text:           "pick all that apply",
		Options:        []string{"a", "b", "c", "d"},
		CorrectAnswers: correct,
		Multiple:       true,
	}}
	return nil
}

func (s *sessionScenarioState) start(seconds int) error {
	s.session = app.NewSession("scenario")
	return s.session.Start(s.pool, app.PointsPerQuestion(len(s.pool)), seconds)
}

func (s *sessionScenarioState) givenUntimedSession() error {
	return s.start(0)
}

func (s *sessionScenarioState) givenTimedSession(seconds int) error {
	return s.start(seconds)
}

func (s *sessionScenarioState) current() (domain.Question, error) {
	q, ok := s.session.CurrentQuestion()
	if !ok {
		return q, fmt.Errorf("no current question in state %s", s.session.State())
	}
	return q, nil
}

func (s *sessionScenarioState) whenAnswerCorrectly() error {
	q, err := s.current()
	if err != nil {
		return err
	}
	return s.session.SubmitAnswer(q.CorrectAnswers)
}

func (s *sessionScenarioState) whenAnswerIncorrectly() error {
	q, err := s.current()
	if err != nil {
		return err
	}
	wrong := (q.CorrectAnswers[0] + 1) % len(q.Options)
	return s.session.SubmitAnswer([]int{wrong})
}

func (s *sessionScenarioState) whenSkip() error {
	return s.session.Skip()
}

func (s *sessionScenarioState) whenSubmit(raw string) error {
	selected, err := parseIndices(raw)
	if err != nil {
		return err
	}
	s.lastErr = s.session.SubmitAnswer(selected)
	return nil
}

func (s *sessionScenarioState) whenTick() error {
	return s.session.Tick()
}

func (s *sessionScenarioState) whenTogglePause() error {
	_, err := s.session.TogglePause()
	return err
}

func (s *sessionScenarioState) thenCompleted() error {
	if s.session.State() != app.StateCompleted {
		return fmt.Errorf("expected completed session, got %s", s.session.State())
	}
	return nil
}

func (s *sessionScenarioState) thenTimedOut() error {
	if !s.session.TimedOut() {
		return fmt.Errorf("expected session to have timed out")
	}
	return nil
}

func (s *sessionScenarioState) thenResult(correct, skipped, score int) error {
	result, err := s.session.Result()
	if err != nil {
		return err
	}
	if result.CorrectCount != correct || result.SkippedCount != skipped || result.Score != score {
		return fmt.Errorf("unexpected result %+v", result)
	}
	again, _ := s.session.Result()
	if again != result {
		return fmt.Errorf("result changed between calls: %+v vs %+v", result, again)
	}
	return nil
}

func (s *sessionScenarioState) thenPercentage(want int) error {
	result, err := s.session.Result()
	if err != nil {
		return err
	}
	if result.Percentage != want {
		return fmt.Errorf("percentage = %d, want %d", result.Percentage, want)
	}
	return nil
}

func (s *sessionScenarioState) thenFailed() error {
	result, err := s.session.Result()
	if err != nil {
		return err
	}
	if result.Passed {
		return fmt.Errorf("expected a failing attempt, got %+v", result)
	}
	return nil
}

func (s *sessionScenarioState) thenNoError() error {
	return s.lastErr
}

func (s *sessionScenarioState) thenVerdict(index int, want string) error {
	review, err := s.session.Review()
	if err != nil {
		return err
	}
	if index < 1 || index > len(review) {
		return fmt.Errorf("no review entry %d", index)
	}
	if got := string(review[index-1].Verdict); got != want {
		return fmt.Errorf("verdict = %s, want %s", got, want)
	}
	return nil
}

func (s *sessionScenarioState) thenRemaining(want int) error {
	if got := s.session.Remaining(); got != want {
		return fmt.Errorf("remaining = %d, want %d", got, want)
	}
	return nil
}

func parseIndices(raw string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
