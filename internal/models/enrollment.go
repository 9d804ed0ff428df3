package models

import (
	"time"

	"github.com/google/uuid"

	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

// PaymentStatus represents the financial settlement of an enrollment.
type PaymentStatus string

// Possible payment statuses.
const (
	PaymentStatusNotRequired       PaymentStatus = "NotRequired"
	PaymentStatusWaitingForPayment PaymentStatus = "WaitingForPayment"
	PaymentStatusPaid              PaymentStatus = "Paid"
	PaymentStatusFailed            PaymentStatus = "Failed"
)

// String returns the status name.
func (s PaymentStatus) String() string { return string(s) }

// IsValid reports whether s is a known status.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusNotRequired, PaymentStatusWaitingForPayment, PaymentStatusPaid, PaymentStatusFailed:
		return true
	default:
		return false
	}
}

// Enrollment links one student to one course. It does not own either side.
type Enrollment struct {
	id            string
	courseID      string
	course        *Course
	studentID     string
	student       *Student
	paymentStatus PaymentStatus
	enrolledAt    time.Time
}

// NewEnrollment creates an enrollment for a course that has not started yet.
// The payment status starts as WaitingForPayment when the course has a fee.
func NewEnrollment(course *Course, student *Student) (*Enrollment, error) {
	return newEnrollmentAt(course, student, time.Now())
}

func newEnrollmentAt(course *Course, student *Student, now time.Time) (*Enrollment, error) {
	if course == nil {
		return nil, appErrors.Clone(appErrors.ErrNilArgument, "course is required")
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNilArgument, "student is required")
	}
	if course.HasStartedAt(now) {
		return nil, appErrors.ErrCourseStarted
	}
	status := PaymentStatusNotRequired
	if course.IsPaymentRequired() {
		status = PaymentStatusWaitingForPayment
	}
	return &Enrollment{
		id:            uuid.NewString(),
		courseID:      course.ID(),
		course:        course,
		studentID:     student.ID(),
		student:       student,
		paymentStatus: status,
		enrolledAt:    now.UTC(),
	}, nil
}

// RestoreEnrollment rebuilds a persisted enrollment.
func RestoreEnrollment(id string, course *Course, student *Student, status PaymentStatus, enrolledAt time.Time) *Enrollment {
	e := &Enrollment{id: id, course: course, student: student, paymentStatus: status, enrolledAt: enrolledAt}
	if course != nil {
		e.courseID = course.ID()
	}
	if student != nil {
		e.studentID = student.ID()
	}
	return e
}

func (e *Enrollment) ID() string                   { return e.id }
func (e *Enrollment) CourseID() string             { return e.courseID }
func (e *Enrollment) Course() *Course              { return e.course }
func (e *Enrollment) StudentID() string            { return e.studentID }
func (e *Enrollment) Student() *Student            { return e.student }
func (e *Enrollment) PaymentStatus() PaymentStatus { return e.paymentStatus }
func (e *Enrollment) EnrolledAt() time.Time        { return e.enrolledAt }

// UpdatePaymentStatus records the outcome of the single payment attempt.
// Only WaitingForPayment may move, and only to Paid or Failed.
func (e *Enrollment) UpdatePaymentStatus(status PaymentStatus) error {
	if e.paymentStatus != PaymentStatusWaitingForPayment {
		return appErrors.Clone(appErrors.ErrInvalidPaymentTransition,
			"payment status "+e.paymentStatus.String()+" is final")
	}
	if status != PaymentStatusPaid && status != PaymentStatusFailed {
		return appErrors.Clone(appErrors.ErrInvalidPaymentTransition,
			"cannot move payment status to "+status.String())
	}
	e.paymentStatus = status
	return nil
}
