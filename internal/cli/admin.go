package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"practice-quiz-service/internal/app"
	"github.com/spf13/cobra"
)

// NewImportCmd converts a plain-text question file into a stored quiz set.
func NewImportCmd(configPath *string) *cobra.Command {
	var id, name, description string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a plain-text question file as a quiz set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			_, svc, err := loadServices(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer svc.close()

			created, err := svc.admin.CreateQuizSet(cmd.Context(), app.CreateQuizSetRequest{
				ID:          id,
				Name:        name,
				Description: description,
				Text:        string(text),
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "created %s: %s\n", created.Set.ID, created.Set.Name)
			fmt.Fprintf(out, "questions found: %d, imported: %d\n", created.Report.Found, len(created.Report.Questions))
			for _, num := range created.Report.Skipped {
				fmt.Fprintf(out, "skipped question %d\n", num)
			}
			for _, warning := range created.Report.Warnings {
				fmt.Fprintf(out, "warning: %s\n", warning)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "quiz id, stored as quiz_<id>.json")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// NewCatalogCmd lists the available quiz sets.
func NewCatalogCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List available quiz sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := loadServices(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer svc.close()

			catalog, err := svc.quizzes.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tQUESTIONS\tDIFFICULTY\tDEFAULT")
			for _, set := range catalog.Sets {
				def := ""
				if set.IsDefault {
					def = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", set.ID, set.Name, set.QuestionCount, set.Difficulty, def)
			}
			return w.Flush()
		},
	}
}

// NewHistoryCmd prints recent attempts for a quiz set.
func NewHistoryCmd(configPath *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history <set-id>",
		Short: "Show recent attempts for a quiz set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := loadServices(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer svc.close()

			records, err := svc.quizzes.History(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no attempts recorded")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COMPLETED\tSCORE\tPERCENT\tRESULT\tATTEMPT")
			for _, r := range records {
				verdict := "fail"
				if r.Result.Passed {
					verdict = "pass"
				}
				if r.TimedOut {
					verdict += " (timed out)"
				}
				fmt.Fprintf(w, "%s\t%d/%d\t%d%%\t%s\t%s\n",
					r.CompletedAt.Local().Format("2006-01-02 15:04"), r.Result.Score, r.Result.MaxScore, r.Result.Percentage, verdict, r.ID)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of attempts to show")
	return cmd
}
