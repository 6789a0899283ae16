package cli

import (
	"context"
	"fmt"

	"practice-quiz-service/internal/app"
	"practice-quiz-service/internal/domain"
	"practice-quiz-service/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type playOptions struct {
	setID     string
	count     string
	timeLimit string
	noColor   bool
}

// NewPlayCmd plays a quiz in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	opts := &playOptions{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Take a practice quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, *configPath, opts)
		},
	}
	cmd.Flags().StringVar(&opts.setID, "set", "", "quiz set id (defaults to the catalog default)")
	cmd.Flags().StringVar(&opts.count, "count", "", `number of questions or "all" (defaults to config)`)
	cmd.Flags().StringVar(&opts.timeLimit, "time", "", `time limit in minutes or "unlimited" (defaults to config)`)
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colors")
	return cmd
}

func runPlay(cmd *cobra.Command, configPath string, opts *playOptions) error {
	ctx := cmd.Context()
	cfg, svc, err := loadServices(ctx, configPath)
	if err != nil {
		return err
	}
	defer svc.close()

	set, err := resolveSet(ctx, svc.quizzes, opts.setID)
	if err != nil {
		return err
	}
	count := opts.count
	if count == "" {
		count = cfg.Quiz.DefaultCount
	}
	timeLimit := opts.timeLimit
	if timeLimit == "" {
		timeLimit = cfg.Quiz.DefaultTimeLimit
	}
	sessionCfg, err := app.ParseSessionConfig(set.ID, count, timeLimit)
	if err != nil {
		return err
	}
	session, err := svc.quizzes.StartSession(ctx, sessionCfg)
	if err != nil {
		return err
	}

	model := tui.NewModel(session, tui.Options{
		Title:   set.Name,
		NoColor: opts.noColor,
		Finish: func(s *app.Session) (domain.AttemptRecord, error) {
			return svc.quizzes.Finish(ctx, set.ID, s)
		},
	})
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout()), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(tui.Model); ok {
		if result, err := m.Session().Result(); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d (%d%%)\n", set.Name, result.Score, result.MaxScore, result.Percentage)
		}
	}
	return nil
}

// resolveSet finds setID in the catalog, or the default set when empty.
func resolveSet(ctx context.Context, quizzes *app.QuizService, setID string) (domain.QuizSet, error) {
	catalog, err := quizzes.Catalog(ctx)
	if err != nil {
		return domain.QuizSet{}, err
	}
	if setID == "" {
		set, ok := catalog.Default()
		if !ok {
			return domain.QuizSet{}, fmt.Errorf("no quiz sets available: %w", domain.ErrNoQuizSet)
		}
		return set, nil
	}
	if set, ok := catalog.Find(setID); ok {
		return set, nil
	}
	// Sets outside the catalog can still be played by document name.
	return domain.QuizSet{ID: setID, Name: setID}, nil
}
