package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/studyplan/internal/calendar"
	"github.com/abhisek/studyplan/internal/planner"
	"github.com/abhisek/studyplan/internal/store"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Record quiz scores",
}

var scoreAddCmd = &cobra.Command{
	Use:   "add <course-id> <milestone> <score> <total>",
	Short: "Record a quiz score and adapt the course plan",
	Long: `Record a quiz score for one milestone of a course (for example J7).
A low score adds a remedial session, a high score spaces out the next one.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID, err := parseID(args[0], "course")
		if err != nil {
			return err
		}
		var raw, total int
		if _, err := fmt.Sscanf(args[2], "%d", &raw); err != nil {
			return fmt.Errorf("invalid score %q: %w", args[2], err)
		}
		if _, err := fmt.Sscanf(args[3], "%d", &total); err != nil {
			return fmt.Errorf("invalid total %q: %w", args[3], err)
		}
		evaluated := calendar.Today()
		if dateFlag, _ := cmd.Flags().GetString("date"); dateFlag != "" {
			if evaluated, err = calendar.Parse(dateFlag); err != nil {
				return err
			}
		}

		score := store.Score{
			CourseID:    courseID,
			Milestone:   args[1],
			Raw:         raw,
			Total:       total,
			EvaluatedOn: evaluated,
		}
		if err := score.Validate(); err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		if err := a.repo.CreateScore(ctx, &score); err != nil {
			return fmt.Errorf("save score: %w", err)
		}
		res, err := a.scheduler.OnScoreRecorded(ctx, score)
		if err != nil {
			return fmt.Errorf("replan: %w", err)
		}

		fmt.Printf("Score %d: %d/%d on %s\n", score.ID, score.Raw, score.Total, score.Milestone)
		switch res.Action {
		case planner.ActionRemedial:
			r := res.Remedial
			fmt.Printf("Low score: remedial session %d (%s) on %s, %d min\n",
				r.ID, r.Milestone, calendar.Format(r.FinalDate), r.Duration)
		case planner.ActionSpaced:
			m := res.Moved
			fmt.Printf("High score: session %d (%s) moved %s -> %s\n",
				m.SessionID, m.Milestone, calendar.Format(m.From), calendar.Format(m.To))
		default:
			fmt.Println("Plan unchanged.")
		}
		return nil
	},
}

var scoreListCmd = &cobra.Command{
	Use:   "list <course-id>",
	Short: "List recorded scores of a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID, err := parseID(args[0], "course")
		if err != nil {
			return err
		}
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		scores, err := a.repo.ListScoresByCourse(cmd.Context(), courseID)
		if err != nil {
			return fmt.Errorf("list scores: %w", err)
		}
		if len(scores) == 0 {
			fmt.Println("No scores recorded.")
			return nil
		}

		fmt.Printf("%-5s %-10s %-9s %6s %s\n", "ID", "DATE", "MILESTONE", "SCORE", "RATIO")
		fmt.Println(strings.Repeat("─", 42))
		for _, s := range scores {
			fmt.Printf("%-5d %-10s %-9s %6s %4.0f%%\n",
				s.ID, calendar.Format(s.EvaluatedOn), s.Milestone,
				fmt.Sprintf("%d/%d", s.Raw, s.Total), 100*float64(s.Raw)/float64(s.Total))
		}
		return nil
	},
}

func init() {
	scoreAddCmd.Flags().String("date", "", "Evaluation date, YYYY-MM-DD (default today)")

	scoreCmd.AddCommand(scoreAddCmd)
	scoreCmd.AddCommand(scoreListCmd)
}
