package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete planned sessions of every exam, keeping exams and courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		keepDone, _ := cmd.Flags().GetBool("keep-done")
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("this deletes every planned session; rerun with --yes to confirm")
		}

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
		for _, e := range exams {
			if err := a.repo.DeleteSessionsByExam(ctx, e.ID, keepDone); err != nil {
				return fmt.Errorf("delete sessions of exam %d: %w", e.ID, err)
			}
		}
		fmt.Printf("Cleared sessions of %d exams.\n", len(exams))
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("keep-done", false, "Keep sessions already marked done")
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
