package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/schoolreg/internal/api"
)

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	tabStyle    = lipgloss.NewStyle().Padding(0, 1)
	activeStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
)

func (a *App) View() string {
	var body string
	switch a.tab {
	case tabCourses:
		body = a.renderCourses()
	case tabRegistrations:
		body = a.renderRegistrations()
	default:
		body = a.renderStudents()
	}

	out := a.renderTabBar() + "\n" + body
	if a.form.visible {
		out += "\n\n" + a.renderForm()
	}
	if a.regSel.active() {
		out += "\n\n" + a.renderRegModal()
	}
	if a.modal != modalNone {
		out += "\n\n" + a.renderModal()
	}
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderTabBar() string {
	render := func(tab activeTab, label string) string {
		if a.tab == tab {
			return activeStyle.Render(label)
		}
		return tabStyle.Render(label)
	}
	return render(tabStudents, "[1] Students") +
		render(tabCourses, "[2] Courses") +
		render(tabRegistrations, "[3] Registrations")
}

func (a *App) renderStudents() string {
	out := titleStyle.Render("All Students") + "\n"
	if len(a.students) == 0 {
		out += "(no students)\n"
	}
	for i, s := range a.students {
		marker := " "
		if i == a.studentCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-12s %-24s %s\n", marker, s.StudentID, s.Name, s.Email)
	}
	out += "[n] Create  [e] Edit  [v] Full details  [d] Delete  [q] Quit"
	return out
}

func (a *App) renderCourses() string {
	out := titleStyle.Render("All Courses") + "\n"
	if len(a.courses) == 0 {
		out += "(no courses)\n"
	}
	for i, c := range a.courses {
		marker := " "
		if i == a.courseCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-12s %-28s %s cr\n", marker, c.CourseID, c.CourseName, c.Credits)
	}
	out += "[n] Create  [v] Full details  [d] Delete  [q] Quit"
	return out
}

func (a *App) renderRegistrations() string {
	out := titleStyle.Render("Student Registrations") + "\n"
	if len(a.regStudents) == 0 {
		out += "(no registrations)\n"
	}
	for i, id := range a.regStudents {
		marker := " "
		if i == a.regCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %s\n", marker, id)
	}
	out += "[enter] View details  [q] Quit"
	return out
}

func (a *App) renderForm() string {
	f := &a.form
	entity := "Student"
	if f.tab == tabCourses {
		entity = "Course"
	}
	verb := "Create"
	if f.mode == formEdit {
		verb = "Update"
	}
	out := titleStyle.Render(verb+" "+entity) + "\n"
	for i, spec := range f.specs {
		out += labelStyle.Render(spec.label) + ": " + f.inputs[i].View() + "\n"
		if msg, ok := f.errs[spec.name]; ok {
			out += errStyle.Render("  "+msg) + "\n"
		}
	}
	out += "[enter] Next/Submit  [tab] Next field  [esc] Close"
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalStudentDetail:
		if a.selectedStudent == nil {
			return ""
		}
		return renderStudentDetail(*a.selectedStudent)
	case modalCourseDetail:
		if a.selectedCourse == nil {
			return ""
		}
		c := *a.selectedCourse
		out := titleStyle.Render("Course Details") + "\n"
		out += labelStyle.Render("COURSE ID: ") + c.CourseID + "\n"
		out += labelStyle.Render("COURSE NAME: ") + c.CourseName + "\n"
		out += labelStyle.Render("COURSE DESCRIPTION: ") + c.CourseDescription + "\n"
		out += labelStyle.Render("CREDITS: ") + c.Credits.String() + "\n"
		out += "[esc] Close"
		return out
	case modalConfirmDelete:
		return titleStyle.Render("Are you sure you want to delete?") +
			fmt.Sprintf("\nID: %s\n[y] Yes  [n] No", a.pendingDelete)
	default:
		return ""
	}
}

func renderStudentDetail(s api.Student) string {
	out := titleStyle.Render("Student Details") + "\n"
	out += labelStyle.Render("STUDENT ID: ") + s.StudentID + "\n"
	out += labelStyle.Render("NAME: ") + s.Name + "\n"
	out += labelStyle.Render("EMAIL: ") + s.Email + "\n"
	out += labelStyle.Render("PHONE: ") + s.Phone + "\n"
	out += labelStyle.Render("BATCH NO: ") + s.BatchNo + "\n"
	out += labelStyle.Render("ADDRESS: ") + s.Address + "\n"
	out += "[esc] Close"
	return out
}

func (a *App) renderRegModal() string {
	sel := &a.regSel
	var out string

	switch {
	case sel.detail != nil:
		d := sel.detail
		out = titleStyle.Render(fmt.Sprintf("Details for Student: %s (%s)", d.Name, d.StudentID)) + "\n"
		out += labelStyle.Render("Email: ") + d.Email + "\n"
		out += labelStyle.Render("Phone: ") + d.Phone + "\n"
		out += labelStyle.Render("Batch: ") + d.BatchNo + "\n"
		out += labelStyle.Render("Address: ") + d.Address + "\n"
	case sel.detailErr != "":
		out = titleStyle.Render("Student: "+sel.studentID) + "\n"
		out += errStyle.Render(sel.detailErr) + "\n"
	default:
		out = titleStyle.Render("Student: "+sel.studentID) + "\nLoading...\n"
	}

	out += "\n" + labelStyle.Render("Registered Courses:") + "\n"
	switch {
	case sel.coursesErr != "":
		out += errStyle.Render(sel.coursesErr) + "\n"
	case !sel.coursesDone:
		out += "Loading...\n"
	case len(sel.courses) == 0:
		out += "No courses found for this student.\n"
	default:
		for i, c := range sel.courses {
			marker := " "
			if i == sel.cursor {
				marker = "▶"
			}
			out += fmt.Sprintf("%s %-12s %-28s %s cr  %s\n", marker, c.CourseID, c.CourseName, c.Credits, c.CourseDescription)
		}
	}

	if sel.removeID != "" {
		out += fmt.Sprintf("\nDelete course %s for student %s? [y] Yes  [n] No", sel.removeID, sel.studentID)
		return out
	}
	if sel.adding {
		out += "\n" + labelStyle.Render("Add a Course: ") + sel.addInput.View()
		out += "\n[enter] Add  [esc] Cancel"
		return out
	}
	out += "\n[a] Add course  [d] Delete course  [esc] Close"
	return out
}
