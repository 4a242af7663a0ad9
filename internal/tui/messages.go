package tui

import "github.com/jask/schoolreg/internal/api"

// List messages carry the request sequence they were issued under; Update
// drops any list whose sequence is older than the latest issued for that
// collection, so a slow refresh can never overwrite a newer one.
type studentsMsg struct {
	seq  uint64
	list []api.Student
}

type coursesMsg struct {
	seq  uint64
	list []api.Course
}

type registrationsMsg struct {
	seq  uint64
	list []api.Registration
}

// Aggregator messages are keyed by student id instead; a result for a
// student who is no longer selected is discarded.
type studentDetailMsg struct {
	studentID string
	student   api.Student
	err       error
}

type studentCoursesMsg struct {
	studentID string
	courses   []api.Course
	err       error
}

type regAddedMsg struct {
	studentID string
	course    api.Course
	err       error
}

type regRemovedMsg struct {
	studentID string
	courseID  string
	soft      string
	err       error
}

type saveDoneMsg struct {
	tab activeTab
	err error
}

type deleteDoneMsg struct {
	tab  activeTab
	id   string
	soft string
	err  error
}

type errMsg struct{ error }
