package tui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormRequiresEveryField(t *testing.T) {
	t.Parallel()
	b := newTestBackend(t)
	a := newTestApp(t, b)

	a.form.open(tabStudents, formCreate, nil)
	cmd := a.submitForm()
	require.Nil(t, cmd, "validation failure must not issue a network call")
	require.Zero(t, b.writes.Load())
	for _, spec := range studentFields {
		require.Equal(t, spec.label+" is required", a.form.errs[spec.name])
	}
}

func TestFormErrorsNameOnlyEmptyFields(t *testing.T) {
	t.Parallel()
	b := newTestBackend(t)
	a := newTestApp(t, b)

	a.form.open(tabCourses, formCreate, nil)
	a.form.inputs[0].SetValue("C1")
	a.form.inputs[1].SetValue("Maths")

	cmd := a.submitForm()
	require.Nil(t, cmd)
	require.NotContains(t, a.form.errs, "course_id")
	require.NotContains(t, a.form.errs, "course_name")
	require.Contains(t, a.form.errs, "course_description")
	require.Contains(t, a.form.errs, "credits")
}

func TestFormSubmitCreatesAndRefreshes(t *testing.T) {
	t.Parallel()
	b := newTestBackend(t)
	a := newTestApp(t, b)

	a.form.open(tabCourses, formCreate, nil)
	values := []string{"C1", "Maths", "Algebra and calculus", "3"}
	for i, v := range values {
		a.form.inputs[i].SetValue(v)
	}

	cmd := a.submitForm()
	require.NotNil(t, cmd)
	msg := cmd()
	require.EqualValues(t, 1, b.writes.Load())

	gets := b.gets.Load()
	_, refresh := a.Update(msg)
	require.False(t, a.form.visible, "form closes on successful save")
	require.Equal(t, "Course created successfully!", a.status)
	require.NotNil(t, refresh)
	_, _ = a.Update(refresh())
	require.Equal(t, gets+1, b.gets.Load())
}

func TestFormToggleDiscardsEditPrefill(t *testing.T) {
	t.Parallel()
	b := newTestBackend(t)
	a := newTestApp(t, b)
	_, _ = a.Update(a.loadStudents()())

	a.form.open(tabStudents, formEdit, studentValues(a.students[0]))
	require.Equal(t, "S1", a.form.inputs[0].Value())

	a.form.toggle(tabStudents)
	require.False(t, a.form.visible)

	a.form.toggle(tabStudents)
	require.True(t, a.form.visible)
	require.Equal(t, formCreate, a.form.mode)
	for i := range a.form.inputs {
		require.Empty(t, a.form.inputs[i].Value(), "reopened form must be entirely empty")
	}
}

func TestFormKeepsOpenOnSaveFailure(t *testing.T) {
	t.Parallel()
	b := newTestBackend(t)
	a := newTestApp(t, b)

	a.form.open(tabStudents, formCreate, nil)
	_, cmd := a.Update(saveDoneMsg{tab: tabStudents, err: errTest})
	require.Nil(t, cmd, "no refresh on save failure")
	require.True(t, a.form.visible)
	require.Equal(t, "Error saving student data. Please try again.", a.status)
}

var errTest = errSentinel("boom")

type errSentinel string

func (e errSentinel) Error() string { return string(e) }
