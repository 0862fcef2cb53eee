package cmd

import (
	"os"

	"github.com/abhisek/studyplan/internal/config"
	"github.com/abhisek/studyplan/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "studyplan",
	Short:        "Spaced-repetition study planner",
	Long:         "studyplan schedules revision sessions for the courses of each exam, keeps every day within its time budget and adapts the plan to quiz scores.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYPLAN_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides STUDYPLAN_CONFIG env var)")

	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(conflictsCmd)
	rootCmd.AddCommand(rebalanceCmd)
	rootCmd.AddCommand(paramsCmd)
	rootCmd.AddCommand(availabilityCmd)
	rootCmd.AddCommand(revisionsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file named by --config, STUDYPLAN_CONFIG or
// the default XDG location.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flagValue, _ := cmd.Flags().GetString("config")
	path, err := config.ResolvePath(flagValue)
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDYPLAN_DB env var, then the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if os.Getenv("STUDYPLAN_DB") == "" && cfg.Database != "" {
		return cfg.Database, store.EnsureDir(cfg.Database)
	}
	return store.DefaultDBPath()
}
