package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/studyplan/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent scheduling runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		operation, _ := cmd.Flags().GetString("operation")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		events, err := a.store.EventRepo().QueryRunEvents(cmd.Context(), store.QueryOpts{
			Limit:     limit,
			Operation: operation,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No runs found.")
			return nil
		}

		// Header.
		fmt.Printf("%-5s  %-19s  %-15s  %-5s  %-7s  %-5s  %-10s  %-6s  %s\n",
			"Seq", "Timestamp", "Operation", "Exam", "Created", "Moved", "Unresolved", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 100))

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗ " + e.ErrorMessage
			}
			exam := "-"
			if e.ExamID != 0 {
				exam = fmt.Sprint(e.ExamID)
			}
			fmt.Printf("%-5d  %-19s  %-15s  %-5s  %-7d  %-5d  %-10d  %-6d  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Operation,
				exam,
				e.SessionsCreated,
				e.SessionsMoved,
				e.Unresolved,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to show")
	historyCmd.Flags().String("operation", "", "Only show runs of this operation (regenerate, generate-course, score, detect, rebalance)")
}
