// Package tui is the terminal front end: one Elm-style model owning the
// three entity collections, the active tab, the detail/confirm modals,
// the entity form, and the registration aggregator. All backend I/O runs
// in tea.Cmds; results come back as typed messages.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/schoolreg/internal/api"
	"github.com/jask/schoolreg/internal/config"
)

// activeTab selects which entity view is shown. Exactly one is active at
// any time; the type makes three-booleans drift impossible.
type activeTab string

const (
	tabStudents      activeTab = "students"
	tabCourses       activeTab = "courses"
	tabRegistrations activeTab = "registrations"
)

type modalState string

const (
	modalNone          modalState = ""
	modalStudentDetail modalState = "studentDetail"
	modalCourseDetail  modalState = "courseDetail"
	modalConfirmDelete modalState = "confirmDelete"
)

// App ties together the views.
type App struct {
	ctx    context.Context
	client *api.Client
	cfg    config.Config
	log    *zap.Logger

	tab activeTab

	// Each tab's collection is held independently; switching tabs never
	// clears the previous tab's data.
	students      []api.Student
	studentCursor int
	courses       []api.Course
	courseCursor  int
	registrations []api.Registration
	regStudents   []string
	regCursor     int

	// Monotonic request sequences, one per collection. Only the list
	// response matching the latest issued sequence is applied.
	studentsReq uint64
	coursesReq  uint64
	regsReq     uint64

	modal           modalState
	selectedStudent *api.Student
	selectedCourse  *api.Course
	pendingDelete   string // id awaiting confirmation, for the active tab

	form   form
	regSel regSelection

	status string
}

func New(ctx context.Context, cfg config.Config, client *api.Client, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		ctx:    ctx,
		client: client,
		cfg:    cfg,
		log:    log,
		tab:    tabStudents,
		regSel: newRegSelection(),
	}
}

func (a *App) Init() tea.Cmd {
	// Students is the default tab, preloaded at startup.
	return a.loadStudents()
}

// loaders

func (a *App) loadStudents() tea.Cmd {
	a.studentsReq++
	seq := a.studentsReq
	return func() tea.Msg {
		list, err := a.client.ListStudents(a.ctx)
		if err != nil {
			return errMsg{fmt.Errorf("fetch students: %w", err)}
		}
		return studentsMsg{seq: seq, list: list}
	}
}

func (a *App) loadCourses() tea.Cmd {
	a.coursesReq++
	seq := a.coursesReq
	return func() tea.Msg {
		list, err := a.client.ListCourses(a.ctx)
		if err != nil {
			return errMsg{fmt.Errorf("fetch courses: %w", err)}
		}
		return coursesMsg{seq: seq, list: list}
	}
}

func (a *App) loadRegistrations() tea.Cmd {
	a.regsReq++
	seq := a.regsReq
	return func() tea.Msg {
		list, err := a.client.ListRegistrations(a.ctx)
		if err != nil {
			return errMsg{fmt.Errorf("fetch registrations: %w", err)}
		}
		return registrationsMsg{seq: seq, list: list}
	}
}

func (a *App) deleteCmd(tab activeTab, id string) tea.Cmd {
	return func() tea.Msg {
		var res api.DeleteResult
		var err error
		if tab == tabCourses {
			res, err = a.client.DeleteCourse(a.ctx, id)
		} else {
			res, err = a.client.DeleteStudent(a.ctx, id)
		}
		return deleteDoneMsg{tab: tab, id: id, soft: res.SoftError, err: err}
	}
}

// switchTab activates a tab; activation is the only trigger for that
// tab's list fetch.
func (a *App) switchTab(tab activeTab) tea.Cmd {
	a.tab = tab
	a.status = ""
	switch tab {
	case tabCourses:
		return a.loadCourses()
	case tabRegistrations:
		return a.loadRegistrations()
	default:
		return a.loadStudents()
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.form.visible {
			return a.handleFormKey(m)
		}
		if a.regSel.active() {
			return a.handleRegModalKey(m)
		}
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		return a.handleKey(m)

	case studentsMsg:
		if m.seq != a.studentsReq {
			a.log.Debug("dropping stale student list", zap.Uint64("seq", m.seq))
			return a, nil
		}
		a.students = m.list
		if a.studentCursor >= len(a.students) {
			a.studentCursor = 0
		}
	case coursesMsg:
		if m.seq != a.coursesReq {
			a.log.Debug("dropping stale course list", zap.Uint64("seq", m.seq))
			return a, nil
		}
		a.courses = m.list
		if a.courseCursor >= len(a.courses) {
			a.courseCursor = 0
		}
	case registrationsMsg:
		if m.seq != a.regsReq {
			a.log.Debug("dropping stale registration list", zap.Uint64("seq", m.seq))
			return a, nil
		}
		a.registrations = m.list
		a.regStudents = uniqueStudents(m.list)
		if a.regCursor >= len(a.regStudents) {
			a.regCursor = 0
		}

	case studentDetailMsg, studentCoursesMsg, regAddedMsg, regRemovedMsg:
		return a, a.applyRegMsg(msg)

	case saveDoneMsg:
		return a, a.applySaveDone(m)

	case deleteDoneMsg:
		return a, a.applyDeleteDone(m)

	case errMsg:
		a.log.Warn("request failed", zap.Error(m.error))
		a.status = "error: " + m.Error()
	}
	return a, nil
}

// applySaveDone closes the form and refreshes the owning collection on
// success; a failure keeps the form open so nothing typed is lost.
func (a *App) applySaveDone(m saveDoneMsg) tea.Cmd {
	if m.err != nil {
		a.log.Warn("save failed", zap.Error(m.err))
		if m.tab == tabCourses {
			a.status = "Error saving course data. Please try again."
		} else {
			a.status = "Error saving student data. Please try again."
		}
		return nil
	}
	mode := a.form.mode
	a.form.reset()
	a.selectedStudent = nil
	a.selectedCourse = nil
	a.modal = modalNone
	entity := "Student"
	if m.tab == tabCourses {
		entity = "Course"
	}
	if mode == formEdit {
		a.status = entity + " updated successfully!"
	} else {
		a.status = entity + " created successfully!"
	}
	if m.tab == tabCourses {
		return a.loadCourses()
	}
	return a.loadStudents()
}

// applyDeleteDone refreshes the collection exactly once no matter how the
// delete went: success, soft backend error, or transport failure (already
// logged). This mirrors the permissive delete policy of the backend's
// other clients.
func (a *App) applyDeleteDone(m deleteDoneMsg) tea.Cmd {
	if m.err != nil {
		a.log.Warn("delete request failed", zap.String("id", m.id), zap.Error(m.err))
	}
	switch {
	case m.soft != "":
		a.status = m.soft
	case m.tab == tabCourses:
		a.status = fmt.Sprintf("Deleted course with ID: %s", m.id)
	default:
		a.status = fmt.Sprintf("Deleted student with ID: %s", m.id)
	}
	if m.tab == tabCourses {
		return a.loadCourses()
	}
	return a.loadStudents()
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "1":
		return a, a.switchTab(tabStudents)
	case "2":
		return a, a.switchTab(tabCourses)
	case "3":
		return a, a.switchTab(tabRegistrations)
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	case "n":
		if a.tab != tabRegistrations {
			a.form.toggle(a.tab)
			a.status = ""
		}
	case "e":
		// Courses have no edit affordance; only students do.
		if a.tab == tabStudents && len(a.students) > 0 {
			a.form.open(tabStudents, formEdit, studentValues(a.students[a.studentCursor]))
			a.status = ""
		}
	case "v", "enter":
		return a, a.openSelection()
	case "d", "backspace", "delete":
		if a.tab == tabRegistrations {
			return a, nil
		}
		id := a.cursorID()
		if id == "" {
			return a, nil
		}
		if !a.cfg.UI.ConfirmDeletes {
			return a, a.deleteCmd(a.tab, id)
		}
		a.pendingDelete = id
		a.modal = modalConfirmDelete
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	move := func(cursor *int, n int) {
		next := *cursor + delta
		if next >= 0 && next < n {
			*cursor = next
		}
	}
	switch a.tab {
	case tabStudents:
		move(&a.studentCursor, len(a.students))
	case tabCourses:
		move(&a.courseCursor, len(a.courses))
	case tabRegistrations:
		move(&a.regCursor, len(a.regStudents))
	}
}

func (a *App) cursorID() string {
	switch a.tab {
	case tabStudents:
		if len(a.students) > 0 {
			return a.students[a.studentCursor].StudentID
		}
	case tabCourses:
		if len(a.courses) > 0 {
			return a.courses[a.courseCursor].CourseID
		}
	}
	return ""
}

// openSelection opens the detail modal for the cursor row, or on the
// Registrations tab starts the per-student aggregation.
func (a *App) openSelection() tea.Cmd {
	switch a.tab {
	case tabStudents:
		if len(a.students) == 0 {
			return nil
		}
		s := a.students[a.studentCursor]
		a.selectedStudent = &s
		a.modal = modalStudentDetail
	case tabCourses:
		if len(a.courses) == 0 {
			return nil
		}
		c := a.courses[a.courseCursor]
		a.selectedCourse = &c
		a.modal = modalCourseDetail
	case tabRegistrations:
		if len(a.regStudents) == 0 {
			return nil
		}
		return a.selectRegStudent(a.regStudents[a.regCursor])
	}
	return nil
}

func (a *App) closeDetails() {
	a.modal = modalNone
	a.selectedStudent = nil
	a.selectedCourse = nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalStudentDetail, modalCourseDetail:
		switch m.String() {
		case "esc", "enter", "q":
			a.closeDetails()
		}
	case modalConfirmDelete:
		switch m.String() {
		case "y", "Y":
			id := a.pendingDelete
			a.pendingDelete = ""
			a.modal = modalNone
			return a, a.deleteCmd(a.tab, id)
		case "n", "N", "esc":
			a.pendingDelete = ""
			a.modal = modalNone
			a.status = "Action canceled."
		}
	}
	return a, nil
}
