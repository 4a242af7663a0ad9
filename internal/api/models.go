package api

import "encoding/json"

// Student represents a student record as served by the backend.
type Student struct {
	StudentID string `json:"student_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	BatchNo   string `json:"batch_no" validate:"required"`
	Address   string `json:"address" validate:"required"`
}

// Course represents a course record. Credits stays a json.Number because
// the backend is loose about whether it sends a number or a string.
type Course struct {
	CourseID          string      `json:"course_id" validate:"required"`
	CourseName        string      `json:"course_name" validate:"required"`
	CourseDescription string      `json:"course_description" validate:"required"`
	Credits           json.Number `json:"credits" validate:"required"`
}

// Registration is one row of the flat registration feed. The backend
// denormalizes course fields into it for display.
type Registration struct {
	StudentID         string      `json:"student_id"`
	CourseID          string      `json:"course_id"`
	CourseName        string      `json:"course_name,omitempty"`
	CourseDescription string      `json:"course_description,omitempty"`
	Credits           json.Number `json:"credits,omitempty"`
}
