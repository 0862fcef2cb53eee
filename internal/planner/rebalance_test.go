package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyplan/internal/calendar"
	"github.com/abhisek/studyplan/internal/settings"
	"github.com/abhisek/studyplan/internal/store"
)

// crowdDay books one 30 minute session of a fresh minor course per priority
// on day.
func crowdDay(repo *memRepo, exam store.Exam, day string, priorities ...int) map[int]store.Session {
	d, _ := calendar.Parse(day)
	out := make(map[int]store.Session)
	for _, p := range priorities {
		c := repo.addCourse(store.Course{
			ExamID: exam.ID, Title: "course", Kind: store.KindMinor,
			StartDate: calendar.Date(2025, 1, 1), BaseDuration: 60, Priority: p,
		})
		out[p] = repo.addSession(store.Session{
			ExamID: exam.ID, CourseID: c.ID, Milestone: "J9",
			TargetDate: d, FinalDate: d, Duration: 30,
		})
	}
	return out
}

func TestRebalanceMovesOverflow(t *testing.T) {
	repo := newMemRepo()
	repo.params[settings.KeyMaxPerDay] = 3
	exam := repo.addExam(store.Exam{Title: "Finals", Date: calendar.Date(2025, 2, 1)})
	booked := crowdDay(repo, exam, "2025-01-10", 6, 5, 4, 3, 2)

	engine := New(repo)
	reports, err := engine.DetectConflicts(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 5, reports[0].Sessions)
	assert.Equal(t, []int{exam.ID}, reports[0].ExamIDs)

	res, err := engine.Rebalance(context.Background(), ExamScope(exam.ID))
	require.NoError(t, err)
	assert.Equal(t, 2, res.AdjustmentsCount)
	assert.Equal(t, 1, res.ConflictsResolved)
	assert.Empty(t, res.Unresolved)

	for _, p := range []int{6, 5, 4} {
		assert.Equal(t, calendar.Date(2025, 1, 10), repo.sessions[booked[p].ID].FinalDate, "priority %d kept", p)
	}
	for _, p := range []int{3, 2} {
		assert.Equal(t, calendar.Date(2025, 1, 11), repo.sessions[booked[p].ID].FinalDate, "priority %d moved", p)
	}
	for _, adj := range res.AdjustmentDetails {
		assert.Equal(t, calendar.Date(2025, 1, 10), adj.From)
		assert.Equal(t, 30, adj.Duration)
	}

	reports, err = engine.DetectConflicts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestRebalanceKeepsMajorFirst(t *testing.T) {
	repo := newMemRepo()
	repo.params[settings.KeyMaxPerDay] = 1
	exam := repo.addExam(store.Exam{Title: "Finals", Date: calendar.Date(2025, 2, 1)})
	booked := crowdDay(repo, exam, "2025-01-10", 9)
	major := repo.addCourse(store.Course{
		ExamID: exam.ID, Title: "major", Kind: store.KindMajor,
		StartDate: calendar.Date(2025, 1, 1), BaseDuration: 60, Priority: 1,
	})
	majorSession := repo.addSession(store.Session{
		ExamID: exam.ID, CourseID: major.ID, Milestone: "J9",
		TargetDate: calendar.Date(2025, 1, 10), FinalDate: calendar.Date(2025, 1, 10), Duration: 30,
	})

	res, err := New(repo).Rebalance(context.Background(), GlobalScope)
	require.NoError(t, err)
	require.Len(t, res.AdjustmentDetails, 1)
	assert.Equal(t, booked[9].ID, res.AdjustmentDetails[0].SessionID)
	assert.Equal(t, calendar.Date(2025, 1, 10), repo.sessions[majorSession.ID].FinalDate)
}

func TestRebalanceHonoursMinimumGap(t *testing.T) {
	repo := newMemRepo()
	repo.params[settings.KeyMaxPerDay] = 1
	exam := repo.addExam(store.Exam{Title: "Finals", Date: calendar.Date(2025, 2, 1)})
	booked := crowdDay(repo, exam, "2025-01-10", 5, 2)
	low := repo.sessions[booked[2].ID]
	repo.addSession(store.Session{
		ExamID: exam.ID, CourseID: low.CourseID, Milestone: "J10",
		TargetDate: calendar.Date(2025, 1, 11), FinalDate: calendar.Date(2025, 1, 11), Duration: 30,
	})

	res, err := New(repo).Rebalance(context.Background(), ExamScope(exam.ID))
	require.NoError(t, err)
	require.Len(t, res.AdjustmentDetails, 1)
	assert.Equal(t, low.ID, res.AdjustmentDetails[0].SessionID)
	assert.Equal(t, calendar.Date(2025, 1, 13), res.AdjustmentDetails[0].To)
}

func TestRebalanceSkipsDaysWithoutAvailability(t *testing.T) {
	repo := newMemRepo()
	repo.params[settings.KeyMaxPerDay] = 1
	repo.params[settings.KeyMinGapDays] = 0
	repo.avail["2025-01-11"] = 0
	repo.avail["2025-01-12"] = 20
	exam := repo.addExam(store.Exam{Title: "Finals", Date: calendar.Date(2025, 2, 1)})
	booked := crowdDay(repo, exam, "2025-01-10", 5, 2)

	res, err := New(repo).Rebalance(context.Background(), ExamScope(exam.ID))
	require.NoError(t, err)
	require.Len(t, res.AdjustmentDetails, 1)
	assert.Equal(t, calendar.Date(2025, 1, 13), repo.sessions[booked[2].ID].FinalDate)
}

func TestRebalanceUnresolvedWhenExamTooClose(t *testing.T) {
	repo := newMemRepo()
	repo.params[settings.KeyMaxPerDay] = 1
	exam := repo.addExam(store.Exam{Title: "Quiz", Date: calendar.Date(2025, 1, 11)})
	booked := crowdDay(repo, exam, "2025-01-10", 5, 2)

	res, err := New(repo).Rebalance(context.Background(), ExamScope(exam.ID))
	require.NoError(t, err)
	assert.Zero(t, res.AdjustmentsCount)
	assert.Zero(t, res.ConflictsResolved)
	require.Len(t, res.Unresolved, 1)
	assert.Equal(t, booked[2].ID, res.Unresolved[0].ID)
	assert.Equal(t, calendar.Date(2025, 1, 10), repo.sessions[booked[2].ID].FinalDate)
}

func TestRebalanceExamScopeLeavesOtherExams(t *testing.T) {
	repo := newMemRepo()
	repo.params[settings.KeyMaxPerDay] = 1
	first := repo.addExam(store.Exam{Title: "First", Date: calendar.Date(2025, 2, 1)})
	second := repo.addExam(store.Exam{Title: "Second", Date: calendar.Date(2025, 2, 1)})
	crowdDay(repo, first, "2025-01-10", 5, 2)
	crowdDay(repo, second, "2025-01-20", 5, 2)

	res, err := New(repo).Rebalance(context.Background(), ExamScope(first.ID))
	require.NoError(t, err)
	require.Len(t, res.AdjustmentDetails, 1)
	assert.Equal(t, first.ID, res.AdjustmentDetails[0].ExamID)

	reports, err := New(repo).DetectConflicts(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, calendar.Date(2025, 1, 20), reports[0].Date)

	_, err = New(repo).Rebalance(context.Background(), ExamScope(999))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRebalanceExamScopeCountsOtherExamsLoad(t *testing.T) {
	repo := newMemRepo()
	repo.params[settings.KeyMaxPerDay] = 1
	first := repo.addExam(store.Exam{Title: "First", Date: calendar.Date(2025, 2, 1)})
	second := repo.addExam(store.Exam{Title: "Second", Date: calendar.Date(2025, 2, 1)})
	booked := crowdDay(repo, first, "2025-01-10", 5, 2)
	crowdDay(repo, second, "2025-01-11", 5)

	engine := New(repo)
	res, err := engine.Rebalance(context.Background(), ExamScope(first.ID))
	require.NoError(t, err)
	require.Len(t, res.AdjustmentDetails, 1)
	assert.Equal(t, booked[2].ID, res.AdjustmentDetails[0].SessionID)
	assert.Equal(t, calendar.Date(2025, 1, 12), res.AdjustmentDetails[0].To)
	assert.Equal(t, 1, res.ConflictsResolved)

	reports, err := engine.DetectConflicts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestRebalanceExamScopeMovesAroundOtherExams(t *testing.T) {
	repo := newMemRepo()
	repo.params[settings.KeyMaxPerDay] = 1
	first := repo.addExam(store.Exam{Title: "First", Date: calendar.Date(2025, 2, 1)})
	second := repo.addExam(store.Exam{Title: "Second", Date: calendar.Date(2025, 2, 1)})
	mine := crowdDay(repo, first, "2025-01-10", 2)
	theirs := crowdDay(repo, second, "2025-01-10", 9)

	res, err := New(repo).Rebalance(context.Background(), ExamScope(first.ID))
	require.NoError(t, err)
	require.Len(t, res.AdjustmentDetails, 1)
	assert.Equal(t, mine[2].ID, res.AdjustmentDetails[0].SessionID)
	assert.Equal(t, calendar.Date(2025, 1, 10), repo.sessions[theirs[9].ID].FinalDate)
	assert.Equal(t, 1, res.ConflictsResolved)
}

func TestRebalanceGapAppliesToLaterSessions(t *testing.T) {
	repo := newMemRepo()
	repo.params[settings.KeyMaxPerDay] = 1
	repo.params[settings.KeyMinGapDays] = 2
	exam := repo.addExam(store.Exam{Title: "Finals", Date: calendar.Date(2025, 2, 1)})
	booked := crowdDay(repo, exam, "2025-01-10", 5, 2)
	low := repo.sessions[booked[2].ID]
	repo.addSession(store.Session{
		ExamID: exam.ID, CourseID: low.CourseID, Milestone: "J11",
		TargetDate: calendar.Date(2025, 1, 12), FinalDate: calendar.Date(2025, 1, 12), Duration: 30,
	})

	res, err := New(repo).Rebalance(context.Background(), ExamScope(exam.ID))
	require.NoError(t, err)
	require.Len(t, res.AdjustmentDetails, 1)
	assert.Equal(t, low.ID, res.AdjustmentDetails[0].SessionID)
	assert.Equal(t, calendar.Date(2025, 1, 14), res.AdjustmentDetails[0].To)
}

func TestDetectConflictsAcrossExams(t *testing.T) {
	repo := newMemRepo()
	repo.avail["2025-01-10"] = 40
	first := repo.addExam(store.Exam{Title: "First", Date: calendar.Date(2025, 2, 1)})
	second := repo.addExam(store.Exam{Title: "Second", Date: calendar.Date(2025, 3, 1)})
	crowdDay(repo, second, "2025-01-10", 4)
	crowdDay(repo, first, "2025-01-10", 3)
	done := crowdDay(repo, first, "2025-01-12", 1, 2)
	for _, s := range done {
		s.Status = store.StatusDone
		s.Duration = 70
		repo.sessions[s.ID] = s
	}
	repo.avail["2025-01-12"] = 10

	reports, err := New(repo).DetectConflicts(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	r := reports[0]
	assert.Equal(t, calendar.Date(2025, 1, 10), r.Date)
	assert.Equal(t, 2, r.Sessions)
	assert.Equal(t, 60, r.Minutes)
	assert.Equal(t, 40, r.Capacity)
	assert.Equal(t, []int{first.ID, second.ID}, r.ExamIDs)
}

func TestDetectConflictsUsesWeekdayAvailability(t *testing.T) {
	repo := newMemRepo()
	repo.avail["friday"] = 45 // 2025-01-10 is a Friday
	exam := repo.addExam(store.Exam{Title: "Finals", Date: calendar.Date(2025, 2, 1)})
	crowdDay(repo, exam, "2025-01-10", 4, 3)
	crowdDay(repo, exam, "2025-01-11", 4, 3)

	reports, err := New(repo).DetectConflicts(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 45, reports[0].Capacity)
}
