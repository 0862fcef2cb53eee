package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/studyplan/internal/agenda"
	"github.com/abhisek/studyplan/internal/calendar"
	"github.com/abhisek/studyplan/internal/planner"
	"github.com/abhisek/studyplan/internal/store"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and inspect study plans",
}

var planRegenerateCmd = &cobra.Command{
	Use:   "regenerate <exam-id>",
	Short: "Rebuild the plan of every course of an exam",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		examID, err := parseID(args[0], "exam")
		if err != nil {
			return err
		}
		keepDone, _ := cmd.Flags().GetBool("keep-done")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		sessions, err := a.scheduler.RegeneratePlanForExam(ctx, examID, planner.RegenerateOptions{KeepDone: keepDone})
		if err != nil {
			return fmt.Errorf("regenerate plan: %w", err)
		}
		titles, err := courseTitles(cmd, a, examID)
		if err != nil {
			return err
		}
		printSessions(sessions, titles)
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show [exam-id]",
	Short: "Show planned sessions, for one exam or all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		var (
			sessions []store.Session
			titles   map[int]string
		)
		if len(args) == 1 {
			examID, err := parseID(args[0], "exam")
			if err != nil {
				return err
			}
			if sessions, err = a.repo.ListSessionsByExam(ctx, examID); err != nil {
				return fmt.Errorf("list sessions: %w", err)
			}
			if titles, err = courseTitles(cmd, a, examID); err != nil {
				return err
			}
		} else {
			if sessions, err = a.repo.ListSessions(ctx); err != nil {
				return fmt.Errorf("list sessions: %w", err)
			}
			if titles, err = courseTitles(cmd, a, 0); err != nil {
				return err
			}
		}

		if pendingOnly, _ := cmd.Flags().GetBool("pending"); pendingOnly {
			kept := sessions[:0]
			for _, s := range sessions {
				if !s.Done() {
					kept = append(kept, s)
				}
			}
			sessions = kept
		}
		printSessions(sessions, titles)
		return nil
	},
}

var planDoneCmd = &cobra.Command{
	Use:   "done <session-id>",
	Short: "Mark a session as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "session")
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		s, err := a.repo.GetSession(ctx, id)
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		if s == nil {
			return fmt.Errorf("session %d not found", id)
		}
		s.Status = store.StatusDone
		if _, err := a.repo.SaveSession(ctx, *s); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		fmt.Printf("Session %d (%s on %s) marked done.\n", s.ID, s.Milestone, calendar.Format(s.FinalDate))
		return nil
	},
}

var planAgendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Show overdue sessions and those coming up",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		sessions, err := a.repo.ListSessions(cmd.Context())
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		titles, err := courseTitles(cmd, a, 0)
		if err != nil {
			return err
		}

		items := agenda.Build(sessions, calendar.Today(), days)
		if len(items) == 0 {
			fmt.Println("Nothing to study.")
			return nil
		}

		fmt.Printf("%-5s  %-10s  %-9s  %-6s  %4s  %s\n", "ID", "Date", "Status", "Step", "Min", "Course")
		fmt.Println(strings.Repeat("─", 70))
		for _, it := range items {
			status := string(it.Status)
			switch it.Status {
			case agenda.StatusOverdue:
				status = fmt.Sprintf("late %dd", it.Days)
			case agenda.StatusUpcoming:
				status = fmt.Sprintf("in %dd", it.Days)
			}
			s := it.Session
			fmt.Printf("%-5d  %-10s  %-9s  %-6s  %4d  %s\n",
				s.ID, calendar.Format(s.FinalDate), status, s.Milestone, s.Duration, titles[s.CourseID])
		}
		return nil
	},
}

func init() {
	planAgendaCmd.Flags().Int("days", 7, "How many days ahead to show")
	planRegenerateCmd.Flags().Bool("keep-done", false, "Keep sessions already marked done")
	planShowCmd.Flags().Bool("pending", false, "Only show pending sessions")

	planCmd.AddCommand(planRegenerateCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planDoneCmd)
	planCmd.AddCommand(planAgendaCmd)
}

// courseTitles maps course IDs to titles for one exam, or for every exam
// when examID is 0.
func courseTitles(cmd *cobra.Command, a *app, examID int) (map[int]string, error) {
	ctx := cmd.Context()
	examIDs := []int{examID}
	if examID == 0 {
		exams, err := a.repo.ListExams(ctx)
		if err != nil {
			return nil, fmt.Errorf("list exams: %w", err)
		}
		examIDs = examIDs[:0]
		for _, e := range exams {
			examIDs = append(examIDs, e.ID)
		}
	}

	titles := make(map[int]string)
	for _, id := range examIDs {
		courses, err := a.repo.ListCoursesByExam(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("list courses: %w", err)
		}
		for _, c := range courses {
			titles[c.ID] = c.Title
		}
	}
	return titles, nil
}

func printSessions(sessions []store.Session, titles map[int]string) {
	if len(sessions) == 0 {
		fmt.Println("No sessions planned.")
		return
	}

	fmt.Printf("%-5s  %-10s  %-10s  %-6s  %4s  %-7s  %s\n",
		"ID", "Date", "Target", "Step", "Min", "Status", "Course")
	fmt.Println(strings.Repeat("─", 80))

	minutes := 0
	for _, s := range sessions {
		title := titles[s.CourseID]
		if len(title) > 30 {
			title = title[:27] + "..."
		}
		fmt.Printf("%-5d  %-10s  %-10s  %-6s  %4d  %-7s  %s\n",
			s.ID,
			calendar.Format(s.FinalDate),
			calendar.Format(s.TargetDate),
			s.Milestone,
			s.Duration,
			s.Status,
			title,
		)
		minutes += s.Duration
	}
	fmt.Printf("\n%d sessions, %d minutes\n", len(sessions), minutes)
}
