package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListStudents fetches every student.
func (c *Client) ListStudents(ctx context.Context) ([]Student, error) {
	var out []Student
	if err := c.getJSON(ctx, "/students", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStudent fetches one student by id. The backend answers with a
// one-element array; an empty array means no such student.
func (c *Client) GetStudent(ctx context.Context, id string) (Student, error) {
	var out []Student
	if err := c.getJSON(ctx, "/students/"+url.PathEscape(id), &out); err != nil {
		return Student{}, err
	}
	if len(out) == 0 {
		return Student{}, ErrNotFound
	}
	return out[0], nil
}

// CreateStudent posts a new student and returns the created record.
func (c *Client) CreateStudent(ctx context.Context, s Student) (Student, error) {
	var out Student
	if err := c.sendJSON(ctx, http.MethodPost, "/students", s, &out); err != nil {
		return Student{}, err
	}
	return out, nil
}

// UpdateStudent replaces the student with the given id.
func (c *Client) UpdateStudent(ctx context.Context, id string, s Student) (Student, error) {
	var out Student
	if err := c.sendJSON(ctx, http.MethodPut, "/students/"+url.PathEscape(id), s, &out); err != nil {
		return Student{}, err
	}
	return out, nil
}

// DeleteStudent removes a student. See DeleteResult for the soft-error
// contract.
func (c *Client) DeleteStudent(ctx context.Context, id string) (DeleteResult, error) {
	return c.deleteJSON(ctx, "/students/"+url.PathEscape(id))
}
