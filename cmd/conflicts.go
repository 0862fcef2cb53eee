package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/studyplan/internal/calendar"
	"github.com/abhisek/studyplan/internal/planner"
	"github.com/spf13/cobra"
)

var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "List overbooked days across all exams",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		reports, err := a.scheduler.DetectConflicts(cmd.Context())
		if err != nil {
			return fmt.Errorf("detect conflicts: %w", err)
		}
		if len(reports) == 0 {
			fmt.Println("No conflicts.")
			return nil
		}

		fmt.Printf("%-10s  %-9s  %-11s  %s\n", "Date", "Sessions", "Minutes", "Exams")
		fmt.Println(strings.Repeat("─", 50))
		for _, r := range reports {
			exams := make([]string, len(r.ExamIDs))
			for i, id := range r.ExamIDs {
				exams[i] = fmt.Sprint(id)
			}
			fmt.Printf("%-10s  %-9s  %-11s  %s\n",
				calendar.Format(r.Date),
				fmt.Sprintf("%d/%d", r.Sessions, r.MaxPerDay),
				fmt.Sprintf("%d/%d", r.Minutes, r.Capacity),
				strings.Join(exams, ","),
			)
		}
		fmt.Printf("\n%d overbooked days\n", len(reports))
		return nil
	},
}

var rebalanceCmd = &cobra.Command{
	Use:   "rebalance [exam-id]",
	Short: "Move low-priority sessions off overbooked days",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")

		scope := planner.GlobalScope
		switch {
		case len(args) == 1 && global:
			return fmt.Errorf("use an exam ID or --global, not both")
		case len(args) == 1:
			id, err := parseID(args[0], "exam")
			if err != nil {
				return err
			}
			scope = planner.ExamScope(id)
		case !global:
			return fmt.Errorf("give an exam ID or --global")
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.scheduler.Rebalance(cmd.Context(), scope)
		if err != nil {
			return fmt.Errorf("rebalance: %w", err)
		}

		for _, adj := range res.AdjustmentDetails {
			fmt.Printf("moved session %-5d  %-6s  %s -> %s  %3d min  %s\n",
				adj.SessionID, adj.Milestone,
				calendar.Format(adj.From), calendar.Format(adj.To),
				adj.Duration, adj.CourseTitle)
		}
		for _, s := range res.Unresolved {
			fmt.Printf("no room for session %d (%s) on %s\n", s.ID, s.Milestone, calendar.Format(s.FinalDate))
		}
		fmt.Printf("%d sessions moved, %d conflicts resolved, %d unresolved\n",
			res.AdjustmentsCount, res.ConflictsResolved, len(res.Unresolved))
		return nil
	},
}

func init() {
	rebalanceCmd.Flags().Bool("global", false, "Rebalance every exam")
}
