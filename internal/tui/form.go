package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"

	"github.com/jask/schoolreg/internal/api"
)

type formMode string

const (
	formCreate formMode = "create"
	formEdit   formMode = "edit"
)

// fieldSpec describes one form field: its wire name (json tag) and the
// label shown to the operator.
type fieldSpec struct {
	name  string
	label string
}

var studentFields = []fieldSpec{
	{"student_id", "Student ID"},
	{"name", "Name"},
	{"email", "Email"},
	{"phone", "Phone"},
	{"batch_no", "Batch No"},
	{"address", "Address"},
}

var courseFields = []fieldSpec{
	{"course_id", "Course ID"},
	{"course_name", "Course Name"},
	{"course_description", "Course Description"},
	{"credits", "Credits"},
}

// form is the create-or-edit form for the active tab's entity. Closing it
// always resets to create mode with empty fields.
type form struct {
	visible bool
	mode    formMode
	tab     activeTab
	specs   []fieldSpec
	inputs  []textinput.Model
	focus   int
	errs    map[string]string
	editID  string
}

// validate reports field names by json tag so validation errors line up
// with fieldSpec names.
var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

func specsFor(tab activeTab) []fieldSpec {
	if tab == tabCourses {
		return courseFields
	}
	return studentFields
}

func (f *form) open(tab activeTab, mode formMode, seed map[string]string) {
	f.visible = true
	f.mode = mode
	f.tab = tab
	f.specs = specsFor(tab)
	f.inputs = make([]textinput.Model, len(f.specs))
	f.errs = map[string]string{}
	f.focus = 0
	f.editID = ""
	for i, spec := range f.specs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = spec.label
		in.CharLimit = 200
		if mode == formEdit {
			in.SetValue(seed[spec.name])
		}
		f.inputs[i] = in
	}
	if mode == formEdit {
		f.editID = seed[f.specs[0].name]
	}
	f.inputs[0].Focus()
}

// toggle flips visibility. Reopening is always a fresh create form; any
// edit pre-fill is discarded without prompting.
func (f *form) toggle(tab activeTab) {
	if f.visible {
		f.reset()
		return
	}
	f.open(tab, formCreate, nil)
}

func (f *form) reset() {
	*f = form{}
}

func (f *form) setFocus(i int) {
	if i < 0 || i >= len(f.inputs) {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f *form) values() map[string]string {
	out := make(map[string]string, len(f.specs))
	for i, spec := range f.specs {
		out[spec.name] = strings.TrimSpace(f.inputs[i].Value())
	}
	return out
}

func (f *form) labelFor(name string) string {
	for _, spec := range f.specs {
		if spec.name == name {
			return spec.label
		}
	}
	return name
}

// checkRequired runs presence validation and fills f.errs per field.
// Returns true when the form may be submitted.
func (f *form) checkRequired() bool {
	vals := f.values()
	var err error
	if f.tab == tabCourses {
		err = validate.Struct(courseFromValues(vals))
	} else {
		err = validate.Struct(studentFromValues(vals))
	}
	f.errs = map[string]string{}
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		f.errs[f.specs[0].name] = err.Error()
		return false
	}
	for _, e := range verrs {
		f.errs[e.Field()] = fmt.Sprintf("%s is required", f.labelFor(e.Field()))
	}
	return false
}

func studentFromValues(vals map[string]string) api.Student {
	return api.Student{
		StudentID: vals["student_id"],
		Name:      vals["name"],
		Email:     vals["email"],
		Phone:     vals["phone"],
		BatchNo:   vals["batch_no"],
		Address:   vals["address"],
	}
}

func courseFromValues(vals map[string]string) api.Course {
	return api.Course{
		CourseID:          vals["course_id"],
		CourseName:        vals["course_name"],
		CourseDescription: vals["course_description"],
		Credits:           json.Number(vals["credits"]),
	}
}

func studentValues(s api.Student) map[string]string {
	return map[string]string{
		"student_id": s.StudentID,
		"name":       s.Name,
		"email":      s.Email,
		"phone":      s.Phone,
		"batch_no":   s.BatchNo,
		"address":    s.Address,
	}
}

// submit validates and, on pass, returns the save command. A validation
// failure returns nil and no network call happens.
func (a *App) submitForm() tea.Cmd {
	if !a.form.checkRequired() {
		return nil
	}
	vals := a.form.values()
	mode := a.form.mode
	tab := a.form.tab
	editID := a.form.editID
	return func() tea.Msg {
		var err error
		if tab == tabCourses {
			course := courseFromValues(vals)
			if mode == formEdit {
				_, err = a.client.UpdateCourse(a.ctx, editID, course)
			} else {
				_, err = a.client.CreateCourse(a.ctx, course)
			}
		} else {
			student := studentFromValues(vals)
			if mode == formEdit {
				_, err = a.client.UpdateStudent(a.ctx, editID, student)
			} else {
				_, err = a.client.CreateStudent(a.ctx, student)
			}
		}
		return saveDoneMsg{tab: tab, err: err}
	}
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.form.reset()
		a.status = ""
		return a, nil
	case "tab", "down":
		a.form.setFocus((a.form.focus + 1) % len(a.form.inputs))
		return a, nil
	case "shift+tab", "up":
		a.form.setFocus((a.form.focus - 1 + len(a.form.inputs)) % len(a.form.inputs))
		return a, nil
	case "enter":
		if a.form.focus < len(a.form.inputs)-1 {
			a.form.setFocus(a.form.focus + 1)
			return a, nil
		}
		if cmd := a.submitForm(); cmd != nil {
			a.status = "saving..."
			return a, cmd
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.form.inputs[a.form.focus], cmd = a.form.inputs[a.form.focus].Update(m)
	return a, cmd
}
