package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/studyplan/internal/calendar"
	"github.com/abhisek/studyplan/internal/settings"
	"github.com/abhisek/studyplan/internal/store"
	"github.com/spf13/cobra"
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Manage courses",
}

var courseAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a course to an exam and plan its sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		examID, _ := cmd.Flags().GetInt("exam")
		kindFlag, _ := cmd.Flags().GetString("kind")
		startFlag, _ := cmd.Flags().GetString("start")
		duration, _ := cmd.Flags().GetInt("duration")
		estimated, _ := cmd.Flags().GetInt("estimated")
		priority, _ := cmd.Flags().GetInt("priority")

		if examID <= 0 {
			return fmt.Errorf("--exam is required")
		}
		kind, err := store.ParseCourseKind(kindFlag)
		if err != nil {
			return err
		}
		start := calendar.Today()
		if startFlag != "" {
			if start, err = calendar.Parse(startFlag); err != nil {
				return err
			}
		}
		if priority < settings.MinPriority || priority > settings.MaxPriority {
			return fmt.Errorf("priority must be between %d and %d", settings.MinPriority, settings.MaxPriority)
		}
		if duration <= 0 {
			return fmt.Errorf("--duration must be positive")
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		course := store.Course{
			ExamID:            examID,
			Title:             args[0],
			Kind:              kind,
			StartDate:         start,
			BaseDuration:      duration,
			EstimatedDuration: estimated,
			Priority:          priority,
		}
		if err := a.repo.CreateCourse(ctx, &course); err != nil {
			return fmt.Errorf("create course: %w", err)
		}
		fmt.Printf("Course %d: %s (%s, priority %d)\n", course.ID, course.Title, course.Kind, course.Priority)

		sessions, err := a.scheduler.GeneratePlanForCourse(ctx, course)
		if err != nil {
			return fmt.Errorf("plan course %d: %w", course.ID, err)
		}
		printSessions(sessions, map[int]string{course.ID: course.Title})
		return nil
	},
}

var courseListCmd = &cobra.Command{
	Use:   "list <exam-id>",
	Short: "List the courses of an exam",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		examID, err := parseID(args[0], "exam")
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		courses, err := a.repo.ListCoursesByExam(cmd.Context(), examID)
		if err != nil {
			return fmt.Errorf("list courses: %w", err)
		}
		if len(courses) == 0 {
			fmt.Println("No courses found.")
			return nil
		}

		fmt.Printf("%-5s  %-6s  %3s  %-10s  %5s  %s\n", "ID", "Kind", "Pri", "Start", "Min", "Title")
		fmt.Println(strings.Repeat("─", 70))
		for _, c := range courses {
			fmt.Printf("%-5d  %-6s  %3d  %-10s  %5d  %s\n",
				c.ID, c.Kind, c.Priority, calendar.Format(c.StartDate), c.EffectiveDuration(), c.Title)
		}
		return nil
	},
}

var courseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a course with its scores and sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "course")
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.repo.DeleteCourse(cmd.Context(), id); err != nil {
			return fmt.Errorf("delete course %d: %w", id, err)
		}
		fmt.Printf("Deleted course %d.\n", id)
		return nil
	},
}

func init() {
	courseAddCmd.Flags().Int("exam", 0, "Exam ID the course belongs to")
	courseAddCmd.Flags().String("kind", "minor", "Course kind (major or minor)")
	courseAddCmd.Flags().String("start", "", "First day of study, YYYY-MM-DD (default today)")
	courseAddCmd.Flags().Int("duration", 60, "Base study duration in minutes")
	courseAddCmd.Flags().Int("estimated", 0, "Estimated duration in minutes, overrides --duration")
	courseAddCmd.Flags().Int("priority", 5, "Priority index from 0 to 10")

	courseCmd.AddCommand(courseAddCmd)
	courseCmd.AddCommand(courseListCmd)
	courseCmd.AddCommand(courseDeleteCmd)
}
