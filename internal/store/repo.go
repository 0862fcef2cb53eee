package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// CourseKind separates major courses from minor ones.
type CourseKind string

const (
	KindMajor CourseKind = "major"
	KindMinor CourseKind = "minor"
)

// ParseCourseKind accepts English or French spellings of a course kind.
func ParseCourseKind(s string) (CourseKind, error) {
	switch s {
	case "major", "Major", "majeur", "Majeur":
		return KindMajor, nil
	case "minor", "Minor", "mineur", "Mineur":
		return KindMinor, nil
	}
	return "", fmt.Errorf("unknown course kind %q", s)
}

// SessionStatus tracks whether a study session has been completed.
type SessionStatus string

const (
	StatusPending SessionStatus = "pending"
	StatusDone    SessionStatus = "done"
)

// Exam is a deadline anchoring the study plans of its courses.
type Exam struct {
	ID    int
	Title string
	Date  time.Time
}

// Course is a unit of study material attached to an exam.
type Course struct {
	ID        int
	ExamID    int
	Title     string
	Kind      CourseKind
	StartDate time.Time // J0

	BaseDuration      int // minutes
	EstimatedDuration int // minutes, 0 when unset; overrides BaseDuration
	Priority          int // 0-10
}

// EffectiveDuration returns the duration the duration curve starts from.
func (c Course) EffectiveDuration() int {
	if c.EstimatedDuration > 0 {
		return c.EstimatedDuration
	}
	return c.BaseDuration
}

// Score is a graded quiz outcome for one milestone of a course.
type Score struct {
	ID          int
	CourseID    int
	Milestone   string
	Raw         int
	Total       int
	EvaluatedOn time.Time
}

// ErrInvalidScore is returned for scores that cannot be graded.
var ErrInvalidScore = errors.New("invalid score")

// Validate enforces 0 <= Raw <= Total and Total > 0.
func (s Score) Validate() error {
	switch {
	case s.Total <= 0:
		return fmt.Errorf("%w: total must be positive, got %d", ErrInvalidScore, s.Total)
	case s.Raw < 0:
		return fmt.Errorf("%w: score must not be negative, got %d", ErrInvalidScore, s.Raw)
	case s.Raw > s.Total:
		return fmt.Errorf("%w: score %d exceeds total %d", ErrInvalidScore, s.Raw, s.Total)
	}
	return nil
}

// Session is one scheduled study occurrence of a course.
type Session struct {
	ID         int
	CourseID   int
	ExamID     int
	Milestone  string
	TargetDate time.Time
	FinalDate  time.Time
	Duration   int // minutes
	Status     SessionStatus
}

// Done reports whether the session has been completed.
func (s Session) Done() bool {
	return s.Status == StatusDone
}

// PlanRepo is everything the scheduling engine reads and writes. Lookups of
// a single entity return nil, nil when it does not exist.
type PlanRepo interface {
	GetExam(ctx context.Context, id int) (*Exam, error)
	ListExams(ctx context.Context) ([]Exam, error)
	GetCourse(ctx context.Context, id int) (*Course, error)
	ListCoursesByExam(ctx context.Context, examID int) ([]Course, error)

	ListSessions(ctx context.Context) ([]Session, error)
	ListSessionsByExam(ctx context.Context, examID int) ([]Session, error)
	ListSessionsByCourse(ctx context.Context, courseID int) ([]Session, error)
	// CreateSessions inserts sessions and returns them with ids assigned.
	CreateSessions(ctx context.Context, sessions []Session) ([]Session, error)
	// SaveSession updates an existing session, or inserts it when ID is 0.
	SaveSession(ctx context.Context, s Session) (Session, error)
	DeleteSessionsByCourse(ctx context.Context, courseID int) error
	// DeleteSessionsByExam removes an exam's sessions, keeping done ones
	// when keepDone is set.
	DeleteSessionsByExam(ctx context.Context, examID int, keepDone bool) error

	// Availability returns minutes keyed by YYYY-MM-DD date or weekday name.
	Availability(ctx context.Context) (map[string]int, error)
	RevisionTable(ctx context.Context) (map[int]int, error)
	Parameters(ctx context.Context) (map[string]int, error)
}

// Repo extends PlanRepo with the record keeping done around the engine.
type Repo interface {
	PlanRepo

	CreateExam(ctx context.Context, e *Exam) error
	DeleteExam(ctx context.Context, id int) error
	CreateCourse(ctx context.Context, c *Course) error
	DeleteCourse(ctx context.Context, id int) error
	CreateScore(ctx context.Context, s *Score) error
	ListScoresByCourse(ctx context.Context, courseID int) ([]Score, error)
	GetSession(ctx context.Context, id int) (*Session, error)

	SetAvailability(ctx context.Context, day string, minutes int) error
	DeleteAvailability(ctx context.Context, day string) error
	SetRevisionCount(ctx context.Context, priority, sessions int) error
	SetParameter(ctx context.Context, name string, value int, description string) error

	// EnsureDefaults fills missing parameters, revision counts and
	// availability rows without touching existing ones.
	EnsureDefaults(ctx context.Context, d Defaults) error
}

// Defaults are the values seeded into an empty store.
type Defaults struct {
	Parameters   map[string]int
	Descriptions map[string]string
	Revisions    map[int]int
	Availability map[string]int
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	Operation string // exact operation match ("" = any)
}

// RunEventData captures one scheduling run.
type RunEventData struct {
	RunID           string
	Operation       string
	ExamID          int // 0 when the run is not tied to one exam
	SessionsCreated int
	SessionsMoved   int
	Unresolved      int
	LatencyMs       int64
	Success         bool
	ErrorMessage    string
}

// RunEventRecord is a stored run event.
type RunEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	RunEventData
}

// EventRepo provides append and query access to run events.
type EventRepo interface {
	AppendRunEvent(ctx context.Context, data RunEventData) error
	QueryRunEvents(ctx context.Context, opts QueryOpts) ([]RunEventRecord, error)
}
