package app_test

import (
	"errors"
	"testing"
	"time"

	"practice-quiz-service/internal/app"
	"practice-quiz-service/internal/domain"
)

func TestParseSessionConfig(t *testing.T) {
	cases := []struct {
		name      string
		set       string
		count     string
		timeLimit string
		want      app.SessionConfig
		wantErr   error
	}{
		{"all unlimited", "quiz1.json", "all", "unlimited", app.SessionConfig{SetID: "quiz1.json"}, nil},
		{"defaults", "quiz1.json", "", "", app.SessionConfig{SetID: "quiz1.json"}, nil},
		{"counted", "quiz1.json", "25", "100", app.SessionConfig{SetID: "quiz1.json", Count: 25, TimeLimit: 100 * time.Minute}, nil},
		{"zero minutes", "quiz1.json", "10", "0", app.SessionConfig{SetID: "quiz1.json", Count: 10}, nil},
		{"no set", " ", "10", "5", app.SessionConfig{}, domain.ErrNoQuizSet},
		{"bad count", "quiz1.json", "ten", "5", app.SessionConfig{}, domain.ErrInvalidCount},
		{"zero count", "quiz1.json", "0", "5", app.SessionConfig{}, domain.ErrInvalidCount},
		{"negative time", "quiz1.json", "5", "-1", app.SessionConfig{}, domain.ErrInvalidTimeLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := app.ParseSessionConfig(tc.set, tc.count, tc.timeLimit)
			if tc.wantErr != nil {
				var cfgErr *domain.ConfigurationError
				if !errors.Is(err, tc.wantErr) || !errors.As(err, &cfgErr) {
					t.Fatalf("expected configuration error wrapping %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}
