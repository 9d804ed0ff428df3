package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

var fixedNow = time.Date(2026, time.June, 15, 10, 30, 0, 0, time.UTC)

func TestNewStudentRejectsShortNames(t *testing.T) {
	birth := fixedNow.AddDate(-20, 0, 0)
	for _, name := range []string{"", "   ", "A", " B ", "\tC\n"} {
		_, err := newStudentAt(name, birth, fixedNow)
		require.Error(t, err, "name %q", name)
		assert.True(t, errors.Is(err, appErrors.ErrInvalidName), "name %q", name)
	}
}

func TestNewStudentTrimsName(t *testing.T) {
	student, err := newStudentAt("  Jo  ", fixedNow.AddDate(-20, 0, 0), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "Jo", student.Name())
	assert.NotEmpty(t, student.ID())
}

func TestNewStudentAgeBoundary(t *testing.T) {
	eighteenToday := time.Date(2008, time.June, 15, 0, 0, 0, 0, time.UTC)
	student, err := newStudentAt("Blas", eighteenToday, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 18, student.AgeAt(fixedNow))

	eighteenTomorrow := time.Date(2008, time.June, 16, 0, 0, 0, 0, time.UTC)
	_, err = newStudentAt("Blas", eighteenTomorrow, fixedNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidAge))
}

func TestNewStudentRejectsMinorsAndFutureBirthDates(t *testing.T) {
	for _, birth := range []time.Time{
		fixedNow.AddDate(-17, 0, 0),
		fixedNow.AddDate(-1, 0, 0),
		fixedNow.AddDate(1, 0, 0),
	} {
		_, err := newStudentAt("Student", birth, fixedNow)
		assert.True(t, errors.Is(err, appErrors.ErrInvalidAge), "birth %s", birth)
	}
}

func TestStudentNameCheckedBeforeAge(t *testing.T) {
	_, err := newStudentAt("x", fixedNow.AddDate(-5, 0, 0), fixedNow)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidName))
}

func TestStudentAgeAt(t *testing.T) {
	student := RestoreStudent("s1", "Blas", time.Date(2000, time.December, 31, 0, 0, 0, 0, time.UTC), fixedNow)

	assert.Equal(t, 25, student.AgeAt(time.Date(2026, time.December, 30, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, 26, student.AgeAt(time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)))
}

func TestStudentAgeLeapDayBirthday(t *testing.T) {
	student := RestoreStudent("s1", "Leap", time.Date(2008, time.February, 29, 0, 0, 0, 0, time.UTC), fixedNow)

	assert.Equal(t, 17, student.AgeAt(time.Date(2026, time.February, 28, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 18, student.AgeAt(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)))
}

func TestStudentBirthDateDropsTime(t *testing.T) {
	birth := time.Date(2001, time.March, 3, 22, 15, 0, 0, time.FixedZone("WIB", 7*3600))
	student, err := newStudentAt("Ana", birth, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2001, time.March, 3, 0, 0, 0, 0, time.UTC), student.BirthDate())
}

func TestStudentsWithSameInputGetDistinctIDs(t *testing.T) {
	birth := fixedNow.AddDate(-30, 0, 0)
	a, err := newStudentAt("Same Name", birth, fixedNow)
	require.NoError(t, err)
	b, err := newStudentAt("Same Name", birth, fixedNow)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestRestoreStudentSkipsAgeValidation(t *testing.T) {
	student := RestoreStudent("s1", "Kid", fixedNow.AddDate(-10, 0, 0), fixedNow)
	assert.Equal(t, 10, student.AgeAt(fixedNow))
}
