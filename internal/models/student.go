package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

const (
	studentMinNameLength = 2
	studentMinimumAge    = 18
)

// Student represents a learner registered in the institution.
type Student struct {
	id        string
	name      string
	birthDate time.Time
	createdAt time.Time
}

// NewStudent validates the input and creates a Student with a fresh identity.
func NewStudent(name string, birthDate time.Time) (*Student, error) {
	return newStudentAt(name, birthDate, time.Now())
}

func newStudentAt(name string, birthDate time.Time, now time.Time) (*Student, error) {
	trimmed, err := validateName(name, "Student", studentMinNameLength)
	if err != nil {
		return nil, err
	}
	birth := DateOf(birthDate)
	if ageOn(birth, now) < studentMinimumAge {
		return nil, appErrors.ErrInvalidAge
	}
	return &Student{
		id:        uuid.NewString(),
		name:      trimmed,
		birthDate: birth,
		createdAt: now.UTC(),
	}, nil
}

// RestoreStudent rebuilds a persisted student. Age is validated only at creation.
func RestoreStudent(id, name string, birthDate, createdAt time.Time) *Student {
	return &Student{id: id, name: name, birthDate: DateOf(birthDate), createdAt: createdAt}
}

// ID returns the student identity.
func (s *Student) ID() string { return s.id }

// Name returns the trimmed student name.
func (s *Student) Name() string { return s.name }

// BirthDate returns the calendar birth date at midnight UTC.
func (s *Student) BirthDate() time.Time { return s.birthDate }

// CreatedAt returns when the student was registered.
func (s *Student) CreatedAt() time.Time { return s.createdAt }

// Age returns the age in whole years as of today.
func (s *Student) Age() int {
	return s.AgeAt(time.Now())
}

// AgeAt returns the age in whole years on the calendar date of today.
func (s *Student) AgeAt(today time.Time) int {
	return ageOn(s.birthDate, today)
}

// DateOf strips the time component, keeping the calendar date as seen in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ageOn(birth, today time.Time) int {
	today = DateOf(today)
	age := today.Year() - birth.Year()
	if today.Before(birth.AddDate(age, 0, 0)) {
		age--
	}
	return age
}

func validateName(name, entity string, minLength int) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || utf8.RuneCountInString(trimmed) < minLength {
		return "", appErrors.Clone(appErrors.ErrInvalidName,
			fmt.Sprintf("%s name must have at least %d characters", entity, minLength))
	}
	return trimmed, nil
}
