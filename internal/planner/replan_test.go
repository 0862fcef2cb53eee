package planner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyplan/internal/calendar"
	"github.com/abhisek/studyplan/internal/store"
)

// seedCourse adds a minor course with one pending session per date, labelled
// J7, J14, J21 and so on.
func seedCourse(repo *memRepo, examDate time.Time, dates ...time.Time) (store.Exam, store.Course) {
	exam := repo.addExam(store.Exam{Title: "Finals", Date: examDate})
	course := repo.addCourse(store.Course{
		ExamID: exam.ID, Title: "Pharmacology", Kind: store.KindMinor,
		StartDate: calendar.Date(2025, 1, 1), BaseDuration: 60, Priority: 3,
	})
	labels := []string{"J7", "J14", "J21", "J28"}
	for i, d := range dates {
		repo.addSession(store.Session{
			ExamID: exam.ID, CourseID: course.ID, Milestone: labels[i],
			TargetDate: d, FinalDate: d, Duration: 30,
		})
	}
	return exam, course
}

func TestLowScoreAddsRemedialSession(t *testing.T) {
	repo := newMemRepo()
	exam, course := seedCourse(repo, calendar.Date(2025, 3, 1),
		calendar.Date(2025, 1, 8), calendar.Date(2025, 1, 15))

	res, err := New(repo).OnScoreRecorded(context.Background(), store.Score{
		ID: 7, CourseID: course.ID, Milestone: "J7", Raw: 5, Total: 10,
		EvaluatedOn: calendar.Date(2025, 1, 10),
	})
	require.NoError(t, err)
	require.Equal(t, ActionRemedial, res.Action)
	require.NotNil(t, res.Remedial)

	r := res.Remedial
	assert.NotZero(t, r.ID)
	assert.Equal(t, "JR7", r.Milestone)
	assert.Equal(t, calendar.Date(2025, 1, 12), r.TargetDate)
	assert.Equal(t, calendar.Date(2025, 1, 12), r.FinalDate)
	assert.Equal(t, exam.ID, r.ExamID)
	assert.Equal(t, 30, r.Duration)

	sessions, _ := repo.ListSessionsByCourse(context.Background(), course.ID)
	assert.Len(t, sessions, 3)
}

func TestLowScoreNearExamStaysBeforeExam(t *testing.T) {
	repo := newMemRepo()
	_, course := seedCourse(repo, calendar.Date(2025, 3, 1))

	res, err := New(repo).OnScoreRecorded(context.Background(), store.Score{
		ID: 1, CourseID: course.ID, Milestone: "J7", Raw: 0, Total: 20,
		EvaluatedOn: calendar.Date(2025, 2, 28),
	})
	require.NoError(t, err)
	require.NotNil(t, res.Remedial)
	assert.Equal(t, calendar.Date(2025, 2, 28), res.Remedial.TargetDate)
	assert.Equal(t, calendar.Date(2025, 2, 28), res.Remedial.FinalDate)
}

func TestHighScoreSpacesOutNextSession(t *testing.T) {
	repo := newMemRepo()
	_, course := seedCourse(repo, calendar.Date(2025, 3, 1),
		calendar.Date(2025, 1, 15), calendar.Date(2025, 1, 20), calendar.Date(2025, 1, 25))

	res, err := New(repo).OnScoreRecorded(context.Background(), store.Score{
		ID: 3, CourseID: course.ID, Milestone: "J7", Raw: 9, Total: 10,
		EvaluatedOn: calendar.Date(2025, 1, 15),
	})
	require.NoError(t, err)
	require.Equal(t, ActionSpaced, res.Action)
	require.NotNil(t, res.Moved)
	assert.Equal(t, "J14", res.Moved.Milestone)
	assert.Equal(t, calendar.Date(2025, 1, 20), res.Moved.From)
	assert.Equal(t, calendar.Date(2025, 1, 22), res.Moved.To)

	stored := repo.sessions[res.Moved.SessionID]
	assert.Equal(t, calendar.Date(2025, 1, 22), stored.FinalDate)
	assert.Equal(t, calendar.Date(2025, 1, 20), stored.TargetDate)
}

func TestHighScoreNoOps(t *testing.T) {
	tests := []struct {
		name      string
		milestone string
		dates     []time.Time
		done      bool
	}{
		{
			name:      "capped by the session after next",
			milestone: "J7",
			dates:     []time.Time{calendar.Date(2025, 1, 15), calendar.Date(2025, 1, 20), calendar.Date(2025, 1, 21)},
		},
		{
			name:      "scored milestone is the last session",
			milestone: "J14",
			dates:     []time.Time{calendar.Date(2025, 1, 15), calendar.Date(2025, 1, 20)},
		},
		{
			name:      "unknown milestone",
			milestone: "J99",
			dates:     []time.Time{calendar.Date(2025, 1, 15), calendar.Date(2025, 1, 20)},
		},
		{
			name:      "next session already done",
			milestone: "J7",
			dates:     []time.Time{calendar.Date(2025, 1, 15), calendar.Date(2025, 1, 20)},
			done:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			_, course := seedCourse(repo, calendar.Date(2025, 3, 1), tt.dates...)
			if tt.done {
				for id, s := range repo.sessions {
					if s.Milestone == "J14" {
						s.Status = store.StatusDone
						repo.sessions[id] = s
					}
				}
			}
			before, _ := repo.ListSessionsByCourse(context.Background(), course.ID)

			res, err := New(repo).OnScoreRecorded(context.Background(), store.Score{
				ID: 1, CourseID: course.ID, Milestone: tt.milestone, Raw: 10, Total: 10,
				EvaluatedOn: calendar.Date(2025, 1, 15),
			})
			require.NoError(t, err)
			assert.Equal(t, ActionNone, res.Action)

			after, _ := repo.ListSessionsByCourse(context.Background(), course.ID)
			assert.Equal(t, before, after)
		})
	}
}

func TestHighScoreNextIsLastCappedByExam(t *testing.T) {
	repo := newMemRepo()
	_, course := seedCourse(repo, calendar.Date(2025, 3, 1),
		calendar.Date(2025, 1, 15), calendar.Date(2025, 2, 27))

	res, err := New(repo).OnScoreRecorded(context.Background(), store.Score{
		ID: 1, CourseID: course.ID, Milestone: "J7", Raw: 17, Total: 20,
		EvaluatedOn: calendar.Date(2025, 1, 15),
	})
	require.NoError(t, err)
	require.NotNil(t, res.Moved)
	assert.Equal(t, calendar.Date(2025, 2, 28), res.Moved.To)
}

func TestMiddleScoreLeavesPlanAlone(t *testing.T) {
	repo := newMemRepo()
	_, course := seedCourse(repo, calendar.Date(2025, 3, 1),
		calendar.Date(2025, 1, 15), calendar.Date(2025, 1, 20))

	res, err := New(repo).OnScoreRecorded(context.Background(), store.Score{
		ID: 1, CourseID: course.ID, Milestone: "J7", Raw: 7, Total: 10,
		EvaluatedOn: calendar.Date(2025, 1, 15),
	})
	require.NoError(t, err)
	assert.Equal(t, ActionNone, res.Action)
	assert.Nil(t, res.Remedial)
	assert.Nil(t, res.Moved)
	assert.Len(t, repo.sessions, 2)
}

func TestOnScoreRecordedErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid score", func(t *testing.T) {
		repo := newMemRepo()
		_, course := seedCourse(repo, calendar.Date(2025, 3, 1))
		_, err := New(repo).OnScoreRecorded(ctx, store.Score{CourseID: course.ID, Raw: 11, Total: 10})
		assert.ErrorIs(t, err, ErrInvalidScore)
	})

	t.Run("zero total", func(t *testing.T) {
		_, err := New(newMemRepo()).OnScoreRecorded(ctx, store.Score{CourseID: 1, Raw: 0, Total: 0})
		assert.ErrorIs(t, err, ErrInvalidScore)
	})

	t.Run("missing course", func(t *testing.T) {
		_, err := New(newMemRepo()).OnScoreRecorded(ctx, store.Score{CourseID: 5, Raw: 1, Total: 10})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing exam", func(t *testing.T) {
		repo := newMemRepo()
		course := repo.addCourse(store.Course{ExamID: 77, Title: "lost", Kind: store.KindMinor})
		_, err := New(repo).OnScoreRecorded(ctx, store.Score{CourseID: course.ID, Raw: 1, Total: 10})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
