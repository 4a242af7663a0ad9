package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/schoolreg/internal/api"
)

// regSelection is the per-student modal state on the Registrations tab.
// Selecting a student moves it idle → loading → ready; closing resets all
// fields together so nothing leaks into the next selection.
type regSelection struct {
	studentID   string
	detail      *api.Student
	detailErr   string
	detailDone  bool
	courses     []api.Course
	coursesErr  string
	coursesDone bool
	cursor      int
	adding      bool
	addInput    textinput.Model
	removeID    string
}

func newRegSelection() regSelection {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "Course ID"
	in.CharLimit = 100
	return regSelection{addInput: in}
}

func (s *regSelection) active() bool { return s.studentID != "" }

func (s *regSelection) ready() bool {
	return s.active() && s.detailDone && s.coursesDone
}

func (s *regSelection) reset() {
	*s = newRegSelection()
}

// uniqueStudents reduces the flat registration feed to the distinct
// student ids in first-seen order.
func uniqueStudents(regs []api.Registration) []string {
	seen := make(map[string]struct{}, len(regs))
	var out []string
	for _, r := range regs {
		if _, ok := seen[r.StudentID]; ok {
			continue
		}
		seen[r.StudentID] = struct{}{}
		out = append(out, r.StudentID)
	}
	return out
}

// selectRegStudent opens the modal for one student and issues the detail
// fetch followed by the course-list fetch. Each result is keyed by the
// student id and carries its own error, so one failure leaves the other
// field intact.
func (a *App) selectRegStudent(id string) tea.Cmd {
	a.regSel.reset()
	a.regSel.studentID = id
	return tea.Sequence(a.loadRegStudentDetail(id), a.loadRegStudentCourses(id))
}

func (a *App) loadRegStudentDetail(id string) tea.Cmd {
	return func() tea.Msg {
		s, err := a.client.GetStudent(a.ctx, id)
		return studentDetailMsg{studentID: id, student: s, err: err}
	}
}

func (a *App) loadRegStudentCourses(id string) tea.Cmd {
	return func() tea.Msg {
		courses, err := a.client.StudentCourses(a.ctx, id)
		return studentCoursesMsg{studentID: id, courses: courses, err: err}
	}
}

func (a *App) addRegCourseCmd(studentID, courseID string) tea.Cmd {
	return func() tea.Msg {
		course, err := a.client.CreateRegistration(a.ctx, studentID, courseID)
		return regAddedMsg{studentID: studentID, course: course, err: err}
	}
}

func (a *App) removeRegCourseCmd(studentID, courseID string) tea.Cmd {
	return func() tea.Msg {
		res, err := a.client.DeleteRegistration(a.ctx, studentID, courseID)
		return regRemovedMsg{studentID: studentID, courseID: courseID, soft: res.SoftError, err: err}
	}
}

func (a *App) handleRegModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel := &a.regSel

	if sel.removeID != "" {
		switch m.String() {
		case "y", "Y":
			courseID := sel.removeID
			sel.removeID = ""
			return a, a.removeRegCourseCmd(sel.studentID, courseID)
		case "n", "N", "esc":
			sel.removeID = ""
			a.status = "Action canceled."
		}
		return a, nil
	}

	if sel.adding {
		switch m.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "esc":
			sel.adding = false
			sel.addInput.SetValue("")
			return a, nil
		case "enter":
			courseID := strings.TrimSpace(sel.addInput.Value())
			if courseID == "" {
				a.status = "Please enter a valid Course ID."
				return a, nil
			}
			return a, a.addRegCourseCmd(sel.studentID, courseID)
		}
		var cmd tea.Cmd
		sel.addInput, cmd = sel.addInput.Update(m)
		return a, cmd
	}

	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		sel.reset()
		a.status = ""
	case "up", "k":
		if sel.cursor > 0 {
			sel.cursor--
		}
	case "down", "j":
		if sel.cursor < len(sel.courses)-1 {
			sel.cursor++
		}
	case "a":
		sel.adding = true
		sel.addInput.Focus()
	case "d", "backspace", "delete":
		if len(sel.courses) == 0 {
			return a, nil
		}
		courseID := sel.courses[sel.cursor].CourseID
		if !a.cfg.UI.ConfirmDeletes {
			return a, a.removeRegCourseCmd(sel.studentID, courseID)
		}
		sel.removeID = courseID
	}
	return a, nil
}

// applyRegMsg folds aggregator messages into the selection, dropping any
// result for a student who is no longer the selected one.
func (a *App) applyRegMsg(msg tea.Msg) tea.Cmd {
	sel := &a.regSel
	switch m := msg.(type) {
	case studentDetailMsg:
		if m.studentID != sel.studentID {
			return nil
		}
		sel.detailDone = true
		if m.err != nil {
			sel.detailErr = "Failed to fetch student details."
			if errors.Is(m.err, api.ErrNotFound) {
				sel.detailErr = "Student not found."
			}
			a.log.Warn("student detail fetch failed", zap.String("student_id", m.studentID), zap.Error(m.err))
			return nil
		}
		s := m.student
		sel.detail = &s
	case studentCoursesMsg:
		if m.studentID != sel.studentID {
			return nil
		}
		sel.coursesDone = true
		if m.err != nil {
			sel.coursesErr = "Failed to fetch courses for the student."
			return nil
		}
		sel.courses = m.courses
	case regAddedMsg:
		if m.studentID != sel.studentID {
			return nil
		}
		if m.err != nil {
			a.status = rejectionText("Failed to add course", m.err)
			return nil
		}
		sel.courses = append(sel.courses, m.course)
		sel.addInput.SetValue("")
		sel.adding = false
		a.status = "Course added successfully."
	case regRemovedMsg:
		if m.studentID != sel.studentID {
			return nil
		}
		if m.err != nil {
			a.status = rejectionText("Failed to delete", m.err)
			return nil
		}
		kept := sel.courses[:0]
		for _, course := range sel.courses {
			if course.CourseID != m.courseID {
				kept = append(kept, course)
			}
		}
		sel.courses = kept
		if sel.cursor >= len(sel.courses) && sel.cursor > 0 {
			sel.cursor = len(sel.courses) - 1
		}
		if m.soft != "" {
			a.status = m.soft
		} else {
			a.status = "Course registration deleted successfully."
		}
	}
	return nil
}

// rejectionText surfaces the backend's own message when it sent one.
func rejectionText(prefix string, err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return fmt.Sprintf("%s: %s", prefix, apiErr.Message)
	}
	return prefix + "."
}
