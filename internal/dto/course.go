package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/course-enrollment-api/internal/models"
)

// RegisterCourseRequest defines payload for registering a course.
type RegisterCourseRequest struct {
	Name            string          `json:"name"`
	RegistrationFee decimal.Decimal `json:"registrationFee"`
	StartDate       time.Time       `json:"startDate" validate:"required"`
	EndDate         time.Time       `json:"endDate" validate:"required"`
}

// RegisteredCourse is returned after a course is registered or fetched.
type RegisteredCourse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	RegistrationFee decimal.Decimal `json:"registrationFee"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         time.Time       `json:"endDate"`
}

// CourseSummary is the short course reference embedded in enrollment summaries.
type CourseSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CourseWithStudents is one entry of the course report.
type CourseWithStudents struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	StartDate time.Time        `json:"startDate"`
	EndDate   time.Time        `json:"endDate"`
	Students  []StudentSummary `json:"students"`
}

// CourseReportFilter bounds the report window.
type CourseReportFilter struct {
	From time.Time
	To   time.Time
}

// ToRegisteredCourse maps a course to its registration view.
func ToRegisteredCourse(course *models.Course) RegisteredCourse {
	return RegisteredCourse{
		ID:              course.ID(),
		Name:            course.Name(),
		RegistrationFee: course.RegistrationFee(),
		StartDate:       course.StartDate(),
		EndDate:         course.EndDate(),
	}
}

// ToCourseSummary maps a course to its short reference.
func ToCourseSummary(course *models.Course) CourseSummary {
	return CourseSummary{ID: course.ID(), Name: course.Name()}
}

// ToCourseWithStudents maps a roster to a report entry, students in enrollment order.
func ToCourseWithStudents(roster *models.CourseRoster) CourseWithStudents {
	course := roster.Course()
	enrollments := roster.Enrollments()
	students := make([]StudentSummary, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Student() == nil {
			continue
		}
		students = append(students, ToStudentSummary(e.Student()))
	}
	return CourseWithStudents{
		ID:        course.ID(),
		Name:      course.Name(),
		StartDate: course.StartDate(),
		EndDate:   course.EndDate(),
		Students:  students,
	}
}
