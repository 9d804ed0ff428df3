package dto

import "github.com/noah-isme/course-enrollment-api/internal/models"

// EnrollStudentRequest describes an enrollment request.
type EnrollStudentRequest struct {
	CourseID  string `json:"courseId" validate:"required"`
	StudentID string `json:"studentId" validate:"required"`
}

// EnrollmentSummary is returned once an enrollment is persisted.
type EnrollmentSummary struct {
	EnrollmentID  string         `json:"enrollmentId"`
	Course        CourseSummary  `json:"course"`
	Student       StudentSummary `json:"student"`
	PaymentStatus string         `json:"paymentStatus"`
}

// ToEnrollmentSummary maps a saved enrollment to its summary.
func ToEnrollmentSummary(enrollment *models.Enrollment) EnrollmentSummary {
	return EnrollmentSummary{
		EnrollmentID:  enrollment.ID(),
		Course:        ToCourseSummary(enrollment.Course()),
		Student:       ToStudentSummary(enrollment.Student()),
		PaymentStatus: enrollment.PaymentStatus().String(),
	}
}
