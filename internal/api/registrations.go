package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListRegistrations fetches the flat registration feed. The backend wraps
// the rows in a {"registration": [...]} envelope.
func (c *Client) ListRegistrations(ctx context.Context) ([]Registration, error) {
	var out struct {
		Registration []Registration `json:"registration"`
	}
	if err := c.getJSON(ctx, "/registrations", &out); err != nil {
		return nil, err
	}
	return out.Registration, nil
}

// StudentCourses fetches the courses a student is registered for, from
// the {"courses": [...]} envelope.
func (c *Client) StudentCourses(ctx context.Context, studentID string) ([]Course, error) {
	var out struct {
		Courses []Course `json:"courses"`
	}
	if err := c.getJSON(ctx, "/registrations/"+url.PathEscape(studentID), &out); err != nil {
		return nil, err
	}
	return out.Courses, nil
}

// CreateRegistration registers a student for a course and returns the
// record the backend created, with course fields denormalized in.
func (c *Client) CreateRegistration(ctx context.Context, studentID, courseID string) (Course, error) {
	body := Registration{StudentID: studentID, CourseID: courseID}
	var out Course
	if err := c.sendJSON(ctx, http.MethodPost, "/registrations", body, &out); err != nil {
		return Course{}, err
	}
	return out, nil
}

// DeleteRegistration removes one (student, course) pair. See DeleteResult
// for the soft-error contract.
func (c *Client) DeleteRegistration(ctx context.Context, studentID, courseID string) (DeleteResult, error) {
	return c.deleteJSON(ctx, "/registrations/"+url.PathEscape(studentID)+"/"+url.PathEscape(courseID))
}
