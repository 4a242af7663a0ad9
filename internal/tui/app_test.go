package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/schoolreg/internal/api"
	"github.com/jask/schoolreg/internal/config"
)

// testBackend counts requests per method+path so tests can assert how
// many fetches a flow issued.
type testBackend struct {
	srv    *httptest.Server
	gets   atomic.Int64
	dels   atomic.Int64
	writes atomic.Int64
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	b := &testBackend{}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			b.gets.Add(1)
			switch r.URL.Path {
			case "/students":
				_ = json.NewEncoder(w).Encode([]api.Student{{StudentID: "S1", Name: "Asha"}})
			case "/courses":
				_ = json.NewEncoder(w).Encode([]api.Course{{CourseID: "C1", CourseName: "Maths"}})
			case "/registrations":
				_, _ = w.Write([]byte(`{"registration":[{"student_id":"S1","course_id":"C1"}]}`))
			default:
				_, _ = w.Write([]byte(`[]`))
			}
		case http.MethodDelete:
			b.dels.Add(1)
			_, _ = w.Write([]byte(`{}`))
		default:
			b.writes.Add(1)
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func newTestApp(t *testing.T, b *testBackend) *App {
	t.Helper()
	client := api.NewClient(b.srv.URL, 2*time.Second, nil)
	cfg := config.Config{UI: config.UIConfig{ConfirmDeletes: true}}
	return New(context.Background(), cfg, client, nil)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestTabSwitchKeepsOtherCollections(t *testing.T) {
	t.Parallel()
	b := newTestBackend(t)
	a := newTestApp(t, b)

	// seed the students tab as Init would
	cmd := a.loadStudents()
	_, _ = a.Update(cmd())
	require.Len(t, a.students, 1)

	got := b.gets.Load()
	_, cmd = a.Update(keyMsg("2"))
	require.Equal(t, tabCourses, a.tab)
	require.NotNil(t, cmd, "activating a tab must trigger its fetch")
	_, _ = a.Update(cmd())

	require.Len(t, a.students, 1, "student collection must survive a tab switch")
	require.Len(t, a.courses, 1)
	require.Equal(t, got+1, b.gets.Load(), "only the courses fetch should have run")
}

func TestStaleListResponseIsDropped(t *testing.T) {
	t.Parallel()
	b := newTestBackend(t)
	a := newTestApp(t, b)

	first := a.loadStudents()
	second := a.loadStudents()

	// newer response lands first
	_, _ = a.Update(second())
	a.students[0].Name = "newer"

	// the older response completes late and must not overwrite
	_, _ = a.Update(first())
	require.Equal(t, "newer", a.students[0].Name)
}

func TestDeleteConfirmCancelMakesNoCall(t *testing.T) {
	t.Parallel()
	b := newTestBackend(t)
	a := newTestApp(t, b)
	_, _ = a.Update(a.loadStudents()())

	_, cmd := a.Update(keyMsg("d"))
	require.Nil(t, cmd)
	require.Equal(t, modalConfirmDelete, a.modal)

	_, cmd = a.Update(keyMsg("n"))
	require.Nil(t, cmd)
	require.Equal(t, modalNone, a.modal)
	require.Equal(t, "Action canceled.", a.status)
	require.Zero(t, b.dels.Load())
}

func TestDeleteRefreshesExactlyOnce(t *testing.T) {
	t.Parallel()
	b := newTestBackend(t)
	a := newTestApp(t, b)
	_, _ = a.Update(a.loadStudents()())

	_, _ = a.Update(keyMsg("d"))
	_, cmd := a.Update(keyMsg("y"))
	require.NotNil(t, cmd)

	msg := cmd() // runs the DELETE
	require.EqualValues(t, 1, b.dels.Load())

	gets := b.gets.Load()
	_, cmd = a.Update(msg)
	require.NotNil(t, cmd, "delete completion must refresh the list")
	_, _ = a.Update(cmd())
	require.Equal(t, gets+1, b.gets.Load(), "exactly one refresh after delete")
	require.Equal(t, "Deleted student with ID: S1", a.status)
}

func TestDeleteSoftErrorStillRefreshes(t *testing.T) {
	t.Parallel()
	b := newTestBackend(t)
	a := newTestApp(t, b)
	a.tab = tabCourses
	_, _ = a.Update(a.loadCourses()())

	gets := b.gets.Load()
	_, cmd := a.Update(deleteDoneMsg{tab: tabCourses, id: "C1", soft: "not found"})
	require.NotNil(t, cmd)
	_, _ = a.Update(cmd())
	require.Equal(t, gets+1, b.gets.Load())
	require.Equal(t, "not found", a.status, "soft error text replaces the success notice")
}

func TestDetailModalSingleSelection(t *testing.T) {
	t.Parallel()
	b := newTestBackend(t)
	a := newTestApp(t, b)
	_, _ = a.Update(a.loadStudents()())

	_, _ = a.Update(keyMsg("v"))
	require.Equal(t, modalStudentDetail, a.modal)
	require.NotNil(t, a.selectedStudent)
	require.Equal(t, "S1", a.selectedStudent.StudentID)

	_, _ = a.Update(keyMsg("esc"))
	require.Equal(t, modalNone, a.modal)
	require.Nil(t, a.selectedStudent)
}

func TestCoursesTabHasNoEditAction(t *testing.T) {
	t.Parallel()
	b := newTestBackend(t)
	a := newTestApp(t, b)
	a.tab = tabCourses
	_, _ = a.Update(a.loadCourses()())

	_, cmd := a.Update(keyMsg("e"))
	require.Nil(t, cmd)
	require.False(t, a.form.visible, "edit must not open on the courses tab")
}

func TestRegistrationsTabDerivesUniqueStudents(t *testing.T) {
	t.Parallel()
	b := newTestBackend(t)
	a := newTestApp(t, b)

	_, cmd := a.Update(keyMsg("3"))
	require.Equal(t, tabRegistrations, a.tab)
	_, _ = a.Update(cmd())
	require.Equal(t, []string{"S1"}, a.regStudents)
}
