package models

import (
	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

// CourseRoster relates a course to its enrollments for reporting.
// It is assembled by the storage layer; the course does not own it.
type CourseRoster struct {
	course      *Course
	enrollments []*Enrollment
}

// NewCourseRoster starts an empty roster for the course.
func NewCourseRoster(course *Course) *CourseRoster {
	return &CourseRoster{course: course}
}

// Course returns the course the roster belongs to.
func (r *CourseRoster) Course() *Course { return r.course }

// AddEnrollment appends an enrollment in insertion order. Duplicates are not checked here.
func (r *CourseRoster) AddEnrollment(enrollment *Enrollment) error {
	if enrollment == nil {
		return appErrors.Clone(appErrors.ErrNilArgument, "enrollment is required")
	}
	if r.course != nil && enrollment.CourseID() != r.course.ID() {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "enrollment belongs to another course")
	}
	r.enrollments = append(r.enrollments, enrollment)
	return nil
}

// Enrollments returns a snapshot of the roster.
func (r *CourseRoster) Enrollments() []*Enrollment {
	out := make([]*Enrollment, len(r.enrollments))
	copy(out, r.enrollments)
	return out
}
