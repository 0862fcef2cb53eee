package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/studyplan/internal/calendar"
	"github.com/abhisek/studyplan/internal/settings"
	"github.com/spf13/cobra"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Inspect and tune scheduling parameters",
}

var paramsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduling parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		values, err := a.repo.Parameters(cmd.Context())
		if err != nil {
			return fmt.Errorf("load parameters: %w", err)
		}

		fmt.Printf("%-14s  %6s  %s\n", "Name", "Value", "Description")
		fmt.Println(strings.Repeat("─", 80))
		for _, k := range settings.Keys() {
			v, ok := values[k]
			if !ok {
				v = settings.DefaultValues[k]
			}
			fmt.Printf("%-14s  %6d  %s\n", k, v, settings.Descriptions[k])
		}
		return nil
	},
}

var paramsSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Set a scheduling parameter",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !settings.IsKnown(name) {
			return fmt.Errorf("unknown parameter %q (known: %s)", name, strings.Join(settings.Keys(), ", "))
		}
		value, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", args[1], err)
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		current, err := a.repo.Parameters(ctx)
		if err != nil {
			return fmt.Errorf("load parameters: %w", err)
		}
		current[name] = value
		if _, err := settings.Resolve(current); err != nil {
			return err
		}

		if err := a.repo.SetParameter(ctx, name, value, settings.Descriptions[name]); err != nil {
			return fmt.Errorf("set parameter: %w", err)
		}
		fmt.Printf("%s = %d\n", name, value)
		return nil
	},
}

var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Manage study minutes available per weekday or date",
}

var availabilityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List availability entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		entries, err := a.repo.Availability(ctx)
		if err != nil {
			return fmt.Errorf("load availability: %w", err)
		}
		raw, err := a.repo.Parameters(ctx)
		if err != nil {
			return fmt.Errorf("load parameters: %w", err)
		}
		params, err := settings.Resolve(raw)
		if err != nil {
			return err
		}

		days := make([]string, 0, len(entries))
		for d := range entries {
			days = append(days, d)
		}
		sort.Strings(days)

		fmt.Printf("Default: %d minutes per day\n", params.DefaultDailyMinutes())
		if len(days) == 0 {
			return nil
		}
		fmt.Println(strings.Repeat("─", 30))
		for _, d := range days {
			fmt.Printf("%-12s  %5d\n", d, entries[d])
		}
		return nil
	},
}

var availabilitySetCmd = &cobra.Command{
	Use:   "set <weekday|YYYY-MM-DD> <minutes>",
	Short: "Set the minutes available on a weekday or a date",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := normalizeDay(args[0])
		if err != nil {
			return err
		}
		minutes, err := strconv.Atoi(args[1])
		if err != nil || minutes < 0 {
			return fmt.Errorf("invalid minutes %q", args[1])
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.repo.SetAvailability(cmd.Context(), day, minutes); err != nil {
			return fmt.Errorf("set availability: %w", err)
		}
		fmt.Printf("%s: %d minutes\n", day, minutes)
		return nil
	},
}

var availabilityUnsetCmd = &cobra.Command{
	Use:   "unset <weekday|YYYY-MM-DD>",
	Short: "Remove an availability entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := normalizeDay(args[0])
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.repo.DeleteAvailability(cmd.Context(), day); err != nil {
			return fmt.Errorf("unset availability %s: %w", day, err)
		}
		fmt.Printf("%s: default\n", day)
		return nil
	},
}

var revisionsCmd = &cobra.Command{
	Use:   "revisions",
	Short: "Manage the number of sessions per priority",
}

var revisionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions per priority",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		raw, err := a.repo.RevisionTable(cmd.Context())
		if err != nil {
			return fmt.Errorf("load revision table: %w", err)
		}
		table := settings.RevisionTable(raw)

		fmt.Printf("%-8s  %s\n", "Priority", "Sessions")
		fmt.Println(strings.Repeat("─", 20))
		for p := settings.MinPriority; p <= settings.MaxPriority; p++ {
			fmt.Printf("%-8d  %d\n", p, table.SessionsFor(p))
		}
		return nil
	},
}

var revisionsSetCmd = &cobra.Command{
	Use:   "set <priority> <sessions>",
	Short: "Set the number of sessions for a priority",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		priority, err := strconv.Atoi(args[0])
		if err != nil || priority < settings.MinPriority || priority > settings.MaxPriority {
			return fmt.Errorf("priority must be between %d and %d", settings.MinPriority, settings.MaxPriority)
		}
		sessions, err := strconv.Atoi(args[1])
		if err != nil || sessions < 1 {
			return fmt.Errorf("sessions must be a positive integer")
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.repo.SetRevisionCount(cmd.Context(), priority, sessions); err != nil {
			return fmt.Errorf("set revision count: %w", err)
		}
		fmt.Printf("priority %d: %d sessions\n", priority, sessions)
		return nil
	},
}

func init() {
	paramsCmd.AddCommand(paramsListCmd)
	paramsCmd.AddCommand(paramsSetCmd)

	availabilityCmd.AddCommand(availabilityListCmd)
	availabilityCmd.AddCommand(availabilitySetCmd)
	availabilityCmd.AddCommand(availabilityUnsetCmd)

	revisionsCmd.AddCommand(revisionsListCmd)
	revisionsCmd.AddCommand(revisionsSetCmd)
}

// normalizeDay canonicalises an availability key: weekdays are stored in
// lower case, dates as YYYY-MM-DD.
func normalizeDay(arg string) (string, error) {
	if _, err := calendar.ParseWeekday(arg); err == nil {
		return strings.ToLower(strings.TrimSpace(arg)), nil
	}
	d, err := calendar.Parse(arg)
	if err != nil {
		return "", fmt.Errorf("%q is neither a weekday nor a YYYY-MM-DD date", arg)
	}
	return calendar.Format(d), nil
}
