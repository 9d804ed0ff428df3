package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/course-enrollment-api/internal/dto"
	"github.com/noah-isme/course-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

type mockStudentRepo struct {
	students  map[string]*models.Student
	created   []*models.Student
	findCalls []string
	findErr   error
	createErr error
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	m.findCalls = append(m.findCalls, id)
	if m.findErr != nil {
		return nil, m.findErr
	}
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.students == nil {
		m.students = make(map[string]*models.Student)
	}
	m.students[student.ID()] = student
	m.created = append(m.created, student)
	return nil
}

func birthDateYearsAgo(years int) string {
	return time.Now().UTC().AddDate(-years, 0, -1).Format(dto.BirthDateLayout)
}

func TestStudentServiceRegister(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, nil, zap.NewNop())

	summary, err := svc.Register(context.Background(), dto.RegisterStudentRequest{Name: "Blas", BirthDate: birthDateYearsAgo(25)})
	require.NoError(t, err)
	assert.NotEmpty(t, summary.ID)
	assert.Equal(t, "Blas", summary.Name)
	assert.Equal(t, 25, summary.Age)
	require.Len(t, repo.created, 1)
	assert.Equal(t, summary.ID, repo.created[0].ID())
}

func TestStudentServiceRegisterValidation(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, nil, nil)

	_, err := svc.Register(context.Background(), dto.RegisterStudentRequest{Name: "Blas", BirthDate: "15/06/2000"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.Register(context.Background(), dto.RegisterStudentRequest{Name: "B", BirthDate: birthDateYearsAgo(25)})
	assert.True(t, errors.Is(err, appErrors.ErrInvalidName))

	_, err = svc.Register(context.Background(), dto.RegisterStudentRequest{Name: "", BirthDate: birthDateYearsAgo(25)})
	assert.True(t, errors.Is(err, appErrors.ErrInvalidName))

	_, err = svc.Register(context.Background(), dto.RegisterStudentRequest{Name: "   ", BirthDate: birthDateYearsAgo(25)})
	assert.True(t, errors.Is(err, appErrors.ErrInvalidName))

	_, err = svc.Register(context.Background(), dto.RegisterStudentRequest{Name: "Blas", BirthDate: birthDateYearsAgo(17)})
	assert.True(t, errors.Is(err, appErrors.ErrInvalidAge))

	assert.Empty(t, repo.created)
}

func TestStudentServiceRegisterRepoError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewStudentService(&mockStudentRepo{createErr: boom}, nil, nil)

	_, err := svc.Register(context.Background(), dto.RegisterStudentRequest{Name: "Blas", BirthDate: birthDateYearsAgo(30)})
	assert.Same(t, boom, err)
}

func TestStudentServiceGet(t *testing.T) {
	student, err := models.NewStudent("Blas", time.Now().AddDate(-30, 0, -1))
	require.NoError(t, err)
	repo := &mockStudentRepo{students: map[string]*models.Student{student.ID(): student}}
	svc := NewStudentService(repo, nil, nil)

	summary, err := svc.Get(context.Background(), student.ID())
	require.NoError(t, err)
	assert.Equal(t, 30, summary.Age)

	absent := uuid.NewString()
	_, err = svc.Get(context.Background(), absent)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrEntityNotFound))
	assert.Contains(t, err.Error(), "Student not found by id: "+absent)

	_, err = svc.Get(context.Background(), "abc")
	assert.True(t, errors.Is(err, appErrors.ErrEntityNotFound))
	assert.Equal(t, []string{student.ID(), absent}, repo.findCalls)
}
