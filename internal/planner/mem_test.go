package planner

import (
	"context"
	"errors"
	"sort"

	"github.com/abhisek/studyplan/internal/store"
)

// memRepo is an in-memory store.PlanRepo.
type memRepo struct {
	exams    map[int]store.Exam
	courses  map[int]store.Course
	sessions map[int]store.Session
	nextID   int

	params map[string]int
	avail  map[string]int
	table  map[int]int

	failSave bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		exams:    make(map[int]store.Exam),
		courses:  make(map[int]store.Course),
		sessions: make(map[int]store.Session),
		params:   make(map[string]int),
		avail:    make(map[string]int),
		table:    make(map[int]int),
	}
}

func (m *memRepo) id() int {
	m.nextID++
	return m.nextID
}

func (m *memRepo) addExam(e store.Exam) store.Exam {
	e.ID = m.id()
	m.exams[e.ID] = e
	return e
}

func (m *memRepo) addCourse(c store.Course) store.Course {
	c.ID = m.id()
	m.courses[c.ID] = c
	return c
}

func (m *memRepo) addSession(s store.Session) store.Session {
	s.ID = m.id()
	if s.Status == "" {
		s.Status = store.StatusPending
	}
	m.sessions[s.ID] = s
	return s
}

func (m *memRepo) GetExam(_ context.Context, id int) (*store.Exam, error) {
	e, ok := m.exams[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *memRepo) ListExams(context.Context) ([]store.Exam, error) {
	var out []store.Exam
	for _, e := range m.exams {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) GetCourse(_ context.Context, id int) (*store.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memRepo) ListCoursesByExam(_ context.Context, examID int) ([]store.Course, error) {
	var out []store.Course
	for _, c := range m.courses {
		if c.ExamID == examID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) filter(keep func(store.Session) bool) []store.Session {
	var out []store.Session
	for _, s := range m.sessions {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FinalDate.Equal(out[j].FinalDate) {
			return out[i].FinalDate.Before(out[j].FinalDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *memRepo) ListSessions(context.Context) ([]store.Session, error) {
	return m.filter(func(store.Session) bool { return true }), nil
}

func (m *memRepo) ListSessionsByExam(_ context.Context, examID int) ([]store.Session, error) {
	return m.filter(func(s store.Session) bool { return s.ExamID == examID }), nil
}

func (m *memRepo) ListSessionsByCourse(_ context.Context, courseID int) ([]store.Session, error) {
	return m.filter(func(s store.Session) bool { return s.CourseID == courseID }), nil
}

func (m *memRepo) CreateSessions(_ context.Context, sessions []store.Session) ([]store.Session, error) {
	out := make([]store.Session, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, m.addSession(s))
	}
	return out, nil
}

func (m *memRepo) SaveSession(_ context.Context, s store.Session) (store.Session, error) {
	if m.failSave {
		return store.Session{}, errors.New("disk full")
	}
	if s.ID == 0 {
		return m.addSession(s), nil
	}
	if _, ok := m.sessions[s.ID]; !ok {
		return store.Session{}, store.ErrNotFound
	}
	m.sessions[s.ID] = s
	return s, nil
}

func (m *memRepo) DeleteSessionsByCourse(_ context.Context, courseID int) error {
	for id, s := range m.sessions {
		if s.CourseID == courseID {
			delete(m.sessions, id)
		}
	}
	return nil
}

func (m *memRepo) DeleteSessionsByExam(_ context.Context, examID int, keepDone bool) error {
	for id, s := range m.sessions {
		if s.ExamID == examID && !(keepDone && s.Done()) {
			delete(m.sessions, id)
		}
	}
	return nil
}

func (m *memRepo) Availability(context.Context) (map[string]int, error) { return m.avail, nil }
func (m *memRepo) RevisionTable(context.Context) (map[int]int, error)   { return m.table, nil }
func (m *memRepo) Parameters(context.Context) (map[string]int, error)   { return m.params, nil }

// memEvents collects run events.
type memEvents struct {
	events []store.RunEventData
	err    error
}

func (m *memEvents) AppendRunEvent(_ context.Context, data store.RunEventData) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, data)
	return nil
}

func (m *memEvents) QueryRunEvents(context.Context, store.QueryOpts) ([]store.RunEventRecord, error) {
	out := make([]store.RunEventRecord, 0, len(m.events))
	for i, e := range m.events {
		out = append(out, store.RunEventRecord{ID: i + 1, Sequence: int64(i + 1), RunEventData: e})
	}
	return out, nil
}
