package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListCourses fetches every course.
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var out []Course
	if err := c.getJSON(ctx, "/courses", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCourse posts a new course and returns the created record.
func (c *Client) CreateCourse(ctx context.Context, course Course) (Course, error) {
	var out Course
	if err := c.sendJSON(ctx, http.MethodPost, "/courses", course, &out); err != nil {
		return Course{}, err
	}
	return out, nil
}

// UpdateCourse replaces the course with the given id. No view currently
// triggers this; it exists so a course edit action can be wired without
// touching the client.
func (c *Client) UpdateCourse(ctx context.Context, id string, course Course) (Course, error) {
	var out Course
	if err := c.sendJSON(ctx, http.MethodPut, "/courses/"+url.PathEscape(id), course, &out); err != nil {
		return Course{}, err
	}
	return out, nil
}

// DeleteCourse removes a course. See DeleteResult for the soft-error
// contract.
func (c *Client) DeleteCourse(ctx context.Context, id string) (DeleteResult, error) {
	return c.deleteJSON(ctx, "/courses/"+url.PathEscape(id))
}
