package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/studyplan/internal/calendar"
	"github.com/abhisek/studyplan/internal/store"
	"github.com/spf13/cobra"
)

var examCmd = &cobra.Command{
	Use:   "exam",
	Short: "Manage exams",
}

var examAddCmd = &cobra.Command{
	Use:   "add <title> <date>",
	Short: "Add an exam (date as YYYY-MM-DD)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := calendar.Parse(args[1])
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		exam := store.Exam{Title: args[0], Date: date}
		if err := a.repo.CreateExam(cmd.Context(), &exam); err != nil {
			return fmt.Errorf("create exam: %w", err)
		}
		fmt.Printf("Exam %d: %s on %s\n", exam.ID, exam.Title, calendar.Format(exam.Date))
		return nil
	},
}

var examListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exams",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		exams, err := a.repo.ListExams(cmd.Context())
		if err != nil {
			return fmt.Errorf("list exams: %w", err)
		}
		if len(exams) == 0 {
			fmt.Println("No exams found.")
			return nil
		}

		today := calendar.Today()
		fmt.Printf("%-5s  %-10s  %9s  %s\n", "ID", "Date", "Days left", "Title")
		fmt.Println(strings.Repeat("─", 60))
		for _, e := range exams {
			fmt.Printf("%-5d  %-10s  %9d  %s\n",
				e.ID, calendar.Format(e.Date), calendar.DaysBetween(today, e.Date), e.Title)
		}
		return nil
	},
}

var examDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an exam with its courses, scores and sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "exam")
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.repo.DeleteExam(cmd.Context(), id); err != nil {
			return fmt.Errorf("delete exam %d: %w", id, err)
		}
		fmt.Printf("Deleted exam %d.\n", id)
		return nil
	},
}

func init() {
	examCmd.AddCommand(examAddCmd)
	examCmd.AddCommand(examListCmd)
	examCmd.AddCommand(examDeleteCmd)
}
