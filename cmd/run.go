package cmd

import (
	"fmt"
	"strconv"

	"github.com/abhisek/studyplan/internal/planner"
	"github.com/abhisek/studyplan/internal/store"
	"github.com/spf13/cobra"
)

// app bundles the dependencies of a command run.
type app struct {
	store     *store.Store
	repo      store.Repo
	scheduler planner.Scheduler
}

// openApp opens the store, seeds missing defaults and builds the scheduler.
// Callers must Close the returned app.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	repo := st.Repo()
	if err := repo.EnsureDefaults(cmd.Context(), cfg.StoreDefaults()); err != nil {
		st.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}

	return &app{
		store:     st,
		repo:      repo,
		scheduler: planner.WithRunLog(planner.New(repo), st.EventRepo()),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// parseID parses a positive integer argument.
func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID %q", what, arg)
	}
	return id, nil
}
