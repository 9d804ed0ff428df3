package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/course-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

const (
	uniqueViolation            = pq.ErrorCode("23505")
	enrollmentUniqueConstraint = "enrollments_student_course_key"
)

type enrollmentRow struct {
	ID            string    `db:"id"`
	CourseID      string    `db:"course_id"`
	StudentID     string    `db:"student_id"`
	PaymentStatus string    `db:"payment_status"`
	EnrolledAt    time.Time `db:"enrolled_at"`
}

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// IsStudentEnrolled checks whether the student already holds an enrollment in the course.
func (r *EnrollmentRepository) IsStudentEnrolled(ctx context.Context, student *models.Student, course *models.Course) (bool, error) {
	const query = `SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, student.ID(), course.ID()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return true, nil
}

// Create persists a new enrollment record. A concurrent duplicate that slipped past
// IsStudentEnrolled is rejected by the unique constraint and reported as already enrolled.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	row := enrollmentRow{
		ID:            enrollment.ID(),
		CourseID:      enrollment.CourseID(),
		StudentID:     enrollment.StudentID(),
		PaymentStatus: enrollment.PaymentStatus().String(),
		EnrolledAt:    enrollment.EnrolledAt(),
	}
	const query = `INSERT INTO enrollments (id, course_id, student_id, payment_status, enrolled_at)
        VALUES (:id, :course_id, :student_id, :payment_status, :enrolled_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == enrollmentUniqueConstraint {
			return appErrors.Wrap(err, appErrors.ErrAlreadyEnrolled.Code, appErrors.ErrAlreadyEnrolled.Status, appErrors.ErrAlreadyEnrolled.Message)
		}
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}
