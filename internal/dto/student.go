package dto

import "github.com/noah-isme/course-enrollment-api/internal/models"

// BirthDateLayout is the calendar date format accepted for birth dates.
const BirthDateLayout = "2006-01-02"

// RegisterStudentRequest defines payload for registering a student.
type RegisterStudentRequest struct {
	Name      string `json:"name"`
	BirthDate string `json:"birthDate" validate:"required,datetime=2006-01-02"`
}

// StudentSummary is the flat view of a student.
type StudentSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// ToStudentSummary maps a student to its summary.
func ToStudentSummary(student *models.Student) StudentSummary {
	return StudentSummary{
		ID:   student.ID(),
		Name: student.Name(),
		Age:  student.Age(),
	}
}
