package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/course-enrollment-api/internal/models"
)

type courseRow struct {
	ID              string          `db:"id"`
	Name            string          `db:"name"`
	RegistrationFee decimal.Decimal `db:"registration_fee"`
	StartDate       time.Time       `db:"start_date"`
	EndDate         time.Time       `db:"end_date"`
	CreatedAt       time.Time       `db:"created_at"`
}

func (r courseRow) toModel() *models.Course {
	return models.RestoreCourse(r.ID, r.Name, r.RegistrationFee, r.StartDate, r.EndDate, r.CreatedAt)
}

type courseRosterRow struct {
	courseRow
	EnrollmentID     sql.NullString `db:"enrollment_id"`
	PaymentStatus    sql.NullString `db:"payment_status"`
	EnrolledAt       sql.NullTime   `db:"enrolled_at"`
	StudentID        sql.NullString `db:"student_id"`
	StudentName      sql.NullString `db:"student_name"`
	StudentBirthDate sql.NullTime   `db:"student_birth_date"`
	StudentCreatedAt sql.NullTime   `db:"student_created_at"`
}

// CourseRepository handles persistence of courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindByID returns a course by its ID. It returns sql.ErrNoRows when absent.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, name, registration_fee, start_date, end_date, created_at FROM courses WHERE id = $1`
	var row courseRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// Create persists a new course record.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	row := courseRow{
		ID:              course.ID(),
		Name:            course.Name(),
		RegistrationFee: course.RegistrationFee(),
		StartDate:       course.StartDate(),
		EndDate:         course.EndDate(),
		CreatedAt:       course.CreatedAt(),
	}
	const query = `INSERT INTO courses (id, name, registration_fee, start_date, end_date, created_at)
        VALUES (:id, :name, :registration_fee, :start_date, :end_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// ListWithEnrollmentsBetween returns courses starting after from and ending before to,
// each with its enrollments in the order they were made.
func (r *CourseRepository) ListWithEnrollmentsBetween(ctx context.Context, from, to time.Time) ([]*models.CourseRoster, error) {
	const query = `SELECT c.id, c.name, c.registration_fee, c.start_date, c.end_date, c.created_at,
        e.id AS enrollment_id, e.payment_status, e.enrolled_at,
        s.id AS student_id, s.name AS student_name, s.birth_date AS student_birth_date, s.created_at AS student_created_at
        FROM courses c
        LEFT JOIN enrollments e ON e.course_id = c.id
        LEFT JOIN students s ON s.id = e.student_id
        WHERE c.start_date > $1 AND c.end_date < $2
        ORDER BY c.start_date, c.id, e.enrolled_at, e.id`

	var rows []courseRosterRow
	if err := r.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("list courses with enrollments: %w", err)
	}

	rosters := make([]*models.CourseRoster, 0)
	index := make(map[string]*models.CourseRoster)
	for _, row := range rows {
		roster, ok := index[row.ID]
		if !ok {
			roster = models.NewCourseRoster(row.courseRow.toModel())
			index[row.ID] = roster
			rosters = append(rosters, roster)
		}
		if !row.EnrollmentID.Valid || !row.StudentID.Valid {
			continue
		}
		student := models.RestoreStudent(row.StudentID.String, row.StudentName.String, row.StudentBirthDate.Time, row.StudentCreatedAt.Time)
		enrollment := models.RestoreEnrollment(row.EnrollmentID.String, roster.Course(), student,
			models.PaymentStatus(row.PaymentStatus.String), row.EnrolledAt.Time)
		if err := roster.AddEnrollment(enrollment); err != nil {
			return nil, fmt.Errorf("build course roster: %w", err)
		}
	}
	return rosters, nil
}
