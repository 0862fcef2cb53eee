package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/studyplan/internal/calendar"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show plan progress per exam",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		exams, err := a.repo.ListExams(ctx)
		if err != nil {
			return fmt.Errorf("list exams: %w", err)
		}
		if len(exams) == 0 {
			fmt.Println("No exams found.")
			return nil
		}

		today := calendar.Today()
		fmt.Printf("%-5s  %-10s  %7s  %7s  %9s  %-10s  %s\n",
			"ID", "Exam", "Done", "Pending", "Min left", "Next", "Title")
		fmt.Println(strings.Repeat("─", 80))
		for _, e := range exams {
			sessions, err := a.repo.ListSessionsByExam(ctx, e.ID)
			if err != nil {
				return fmt.Errorf("list sessions of exam %d: %w", e.ID, err)
			}

			done, pending, minutesLeft := 0, 0, 0
			next := "-"
			for _, s := range sessions {
				if s.Done() {
					done++
					continue
				}
				pending++
				minutesLeft += s.Duration
				if next == "-" && !s.FinalDate.Before(today) {
					next = calendar.Format(s.FinalDate)
				}
			}
			fmt.Printf("%-5d  %-10s  %7d  %7d  %9d  %-10s  %s\n",
				e.ID, calendar.Format(e.Date), done, pending, minutesLeft, next, e.Title)
		}
		return nil
	},
}
