package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

func testCourse(fee int64, start time.Time) *Course {
	return RestoreCourse("course-1", "Course", decimal.NewFromInt(fee), start, start.Add(10*time.Hour), fixedNow)
}

func testStudent() *Student {
	return RestoreStudent("student-1", "Student", fixedNow.AddDate(-20, 0, 0), fixedNow)
}

func TestNewEnrollmentInitialPaymentStatus(t *testing.T) {
	start := fixedNow.Add(time.Hour)

	free, err := newEnrollmentAt(testCourse(0, start), testStudent(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusNotRequired, free.PaymentStatus())

	paid, err := newEnrollmentAt(testCourse(10, start), testStudent(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusWaitingForPayment, paid.PaymentStatus())
	assert.Equal(t, "course-1", paid.CourseID())
	assert.Equal(t, "student-1", paid.StudentID())
	assert.NotEmpty(t, paid.ID())
}

func TestNewEnrollmentRequiresReferences(t *testing.T) {
	_, err := newEnrollmentAt(nil, testStudent(), fixedNow)
	assert.True(t, errors.Is(err, appErrors.ErrNilArgument))

	_, err = newEnrollmentAt(testCourse(0, fixedNow.Add(time.Hour)), nil, fixedNow)
	assert.True(t, errors.Is(err, appErrors.ErrNilArgument))
}

func TestNewEnrollmentRejectsStartedCourse(t *testing.T) {
	_, err := newEnrollmentAt(testCourse(0, fixedNow.Add(-time.Minute)), testStudent(), fixedNow)
	assert.True(t, errors.Is(err, appErrors.ErrCourseStarted))

	_, err = newEnrollmentAt(testCourse(0, fixedNow), testStudent(), fixedNow)
	assert.True(t, errors.Is(err, appErrors.ErrCourseStarted))
}

func TestUpdatePaymentStatusTransitionsOnce(t *testing.T) {
	enrollment, err := newEnrollmentAt(testCourse(10, fixedNow.Add(time.Hour)), testStudent(), fixedNow)
	require.NoError(t, err)

	require.NoError(t, enrollment.UpdatePaymentStatus(PaymentStatusFailed))
	assert.Equal(t, PaymentStatusFailed, enrollment.PaymentStatus())

	err = enrollment.UpdatePaymentStatus(PaymentStatusPaid)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidPaymentTransition))
	assert.Equal(t, PaymentStatusFailed, enrollment.PaymentStatus())
}

func TestUpdatePaymentStatusRejectsInvalidTargets(t *testing.T) {
	enrollment, err := newEnrollmentAt(testCourse(10, fixedNow.Add(time.Hour)), testStudent(), fixedNow)
	require.NoError(t, err)
	err = enrollment.UpdatePaymentStatus(PaymentStatusNotRequired)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidPaymentTransition))

	free, err := newEnrollmentAt(testCourse(0, fixedNow.Add(time.Hour)), testStudent(), fixedNow)
	require.NoError(t, err)
	err = free.UpdatePaymentStatus(PaymentStatusPaid)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidPaymentTransition))
}

func TestCourseRosterAddEnrollment(t *testing.T) {
	course := testCourse(0, fixedNow.Add(time.Hour))
	roster := NewCourseRoster(course)

	err := roster.AddEnrollment(nil)
	assert.True(t, errors.Is(err, appErrors.ErrNilArgument))

	first := RestoreEnrollment("e1", course, RestoreStudent("s1", "Ana", fixedNow.AddDate(-20, 0, 0), fixedNow), PaymentStatusNotRequired, fixedNow)
	second := RestoreEnrollment("e2", course, RestoreStudent("s2", "Budi", fixedNow.AddDate(-21, 0, 0), fixedNow), PaymentStatusNotRequired, fixedNow)
	require.NoError(t, roster.AddEnrollment(first))
	require.NoError(t, roster.AddEnrollment(second))

	snapshot := roster.Enrollments()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "e1", snapshot[0].ID())
	assert.Equal(t, "e2", snapshot[1].ID())

	snapshot[0] = nil
	assert.Equal(t, "e1", roster.Enrollments()[0].ID())
}

func TestCourseRosterRejectsForeignEnrollment(t *testing.T) {
	roster := NewCourseRoster(testCourse(0, fixedNow.Add(time.Hour)))
	other := RestoreCourse("course-2", "Other", decimal.Zero, fixedNow.Add(time.Hour), fixedNow.Add(2*time.Hour), fixedNow)
	err := roster.AddEnrollment(RestoreEnrollment("e1", other, testStudent(), PaymentStatusNotRequired, fixedNow))
	assert.Error(t, err)
	assert.Empty(t, roster.Enrollments())
}
