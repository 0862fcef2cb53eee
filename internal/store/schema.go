package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	examsTable        = "exams"
	coursesTable      = "courses"
	scoresTable       = "scores"
	sessionsTable     = "sessions"
	availabilityTable = "availability"
	revisionsTable    = "revision_counts"
	parametersTable   = "parameters"
	runEventsTable    = "run_events"
)

// Dates are stored as YYYY-MM-DD text so they compare and group lexically.
var (
	// ExamsColumns holds the columns for the "exams" table.
	ExamsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "title", Type: field.TypeString},
		{Name: "exam_date", Type: field.TypeString},
	}
	// ExamsTable holds the schema information for the "exams" table.
	ExamsTable = &schema.Table{
		Name:       examsTable,
		Columns:    ExamsColumns,
		PrimaryKey: []*schema.Column{ExamsColumns[0]},
	}

	// CoursesColumns holds the columns for the "courses" table.
	CoursesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "title", Type: field.TypeString},
		{Name: "kind", Type: field.TypeEnum, Enums: []string{"major", "minor"}},
		{Name: "start_date", Type: field.TypeString},
		{Name: "base_duration", Type: field.TypeInt},
		{Name: "estimated_duration", Type: field.TypeInt, Nullable: true},
		{Name: "priority", Type: field.TypeInt, Default: 0},
		{Name: "exam_id", Type: field.TypeInt},
	}
	// CoursesTable holds the schema information for the "courses" table.
	CoursesTable = &schema.Table{
		Name:       coursesTable,
		Columns:    CoursesColumns,
		PrimaryKey: []*schema.Column{CoursesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "courses_exams_courses",
				Columns:    []*schema.Column{CoursesColumns[7]},
				RefColumns: []*schema.Column{ExamsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "course_exam_id",
				Unique:  false,
				Columns: []*schema.Column{CoursesColumns[7]},
			},
		},
	}

	// ScoresColumns holds the columns for the "scores" table.
	ScoresColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "milestone", Type: field.TypeString},
		{Name: "score", Type: field.TypeInt},
		{Name: "total", Type: field.TypeInt},
		{Name: "evaluated_on", Type: field.TypeString},
		{Name: "course_id", Type: field.TypeInt},
	}
	// ScoresTable holds the schema information for the "scores" table.
	ScoresTable = &schema.Table{
		Name:       scoresTable,
		Columns:    ScoresColumns,
		PrimaryKey: []*schema.Column{ScoresColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "scores_courses_scores",
				Columns:    []*schema.Column{ScoresColumns[5]},
				RefColumns: []*schema.Column{CoursesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	// SessionsColumns holds the columns for the "sessions" table.
	SessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "milestone", Type: field.TypeString},
		{Name: "target_date", Type: field.TypeString},
		{Name: "final_date", Type: field.TypeString},
		{Name: "duration", Type: field.TypeInt},
		{Name: "status", Type: field.TypeEnum, Enums: []string{"pending", "done"}, Default: "pending"},
		{Name: "course_id", Type: field.TypeInt},
		{Name: "exam_id", Type: field.TypeInt},
	}
	// SessionsTable holds the schema information for the "sessions" table.
	SessionsTable = &schema.Table{
		Name:       sessionsTable,
		Columns:    SessionsColumns,
		PrimaryKey: []*schema.Column{SessionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "sessions_courses_sessions",
				Columns:    []*schema.Column{SessionsColumns[6]},
				RefColumns: []*schema.Column{CoursesColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "sessions_exams_sessions",
				Columns:    []*schema.Column{SessionsColumns[7]},
				RefColumns: []*schema.Column{ExamsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "session_exam_id",
				Unique:  false,
				Columns: []*schema.Column{SessionsColumns[7]},
			},
			{
				Name:    "session_final_date",
				Unique:  false,
				Columns: []*schema.Column{SessionsColumns[3]},
			},
		},
	}

	// AvailabilityColumns holds the columns for the "availability" table.
	AvailabilityColumns = []*schema.Column{
		{Name: "day", Type: field.TypeString},
		{Name: "minutes", Type: field.TypeInt},
	}
	// AvailabilityTable holds the schema information for the "availability" table.
	AvailabilityTable = &schema.Table{
		Name:       availabilityTable,
		Columns:    AvailabilityColumns,
		PrimaryKey: []*schema.Column{AvailabilityColumns[0]},
	}

	// RevisionCountsColumns holds the columns for the "revision_counts" table.
	RevisionCountsColumns = []*schema.Column{
		{Name: "priority", Type: field.TypeInt},
		{Name: "sessions", Type: field.TypeInt},
	}
	// RevisionCountsTable holds the schema information for the "revision_counts" table.
	RevisionCountsTable = &schema.Table{
		Name:       revisionsTable,
		Columns:    RevisionCountsColumns,
		PrimaryKey: []*schema.Column{RevisionCountsColumns[0]},
	}

	// ParametersColumns holds the columns for the "parameters" table.
	ParametersColumns = []*schema.Column{
		{Name: "name", Type: field.TypeString},
		{Name: "value", Type: field.TypeInt},
		{Name: "description", Type: field.TypeString, Nullable: true},
	}
	// ParametersTable holds the schema information for the "parameters" table.
	ParametersTable = &schema.Table{
		Name:       parametersTable,
		Columns:    ParametersColumns,
		PrimaryKey: []*schema.Column{ParametersColumns[0]},
	}

	// RunEventsColumns holds the columns for the "run_events" table.
	RunEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeString},
		{Name: "run_id", Type: field.TypeString},
		{Name: "operation", Type: field.TypeString},
		{Name: "exam_id", Type: field.TypeInt, Nullable: true},
		{Name: "sessions_created", Type: field.TypeInt, Default: 0},
		{Name: "sessions_moved", Type: field.TypeInt, Default: 0},
		{Name: "unresolved", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Nullable: true},
	}
	// RunEventsTable holds the schema information for the "run_events" table.
	RunEventsTable = &schema.Table{
		Name:       runEventsTable,
		Columns:    RunEventsColumns,
		PrimaryKey: []*schema.Column{RunEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "runevent_operation",
				Unique:  false,
				Columns: []*schema.Column{RunEventsColumns[4]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ExamsTable,
		CoursesTable,
		ScoresTable,
		SessionsTable,
		AvailabilityTable,
		RevisionCountsTable,
		ParametersTable,
		RunEventsTable,
	}
)

func init() {
	CoursesTable.ForeignKeys[0].RefTable = ExamsTable
	ScoresTable.ForeignKeys[0].RefTable = CoursesTable
	SessionsTable.ForeignKeys[0].RefTable = CoursesTable
	SessionsTable.ForeignKeys[1].RefTable = ExamsTable
}
