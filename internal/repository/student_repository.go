package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-enrollment-api/internal/models"
)

type studentRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	BirthDate time.Time `db:"birth_date"`
	CreatedAt time.Time `db:"created_at"`
}

func (r studentRow) toModel() *models.Student {
	return models.RestoreStudent(r.ID, r.Name, r.BirthDate, r.CreatedAt)
}

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByID fetches a student by ID. It returns sql.ErrNoRows when absent.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, name, birth_date, created_at FROM students WHERE id = $1`
	var row studentRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	row := studentRow{
		ID:        student.ID(),
		Name:      student.Name(),
		BirthDate: student.BirthDate(),
		CreatedAt: student.CreatedAt(),
	}
	const query = `INSERT INTO students (id, name, birth_date, created_at)
        VALUES (:id, :name, :birth_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}
