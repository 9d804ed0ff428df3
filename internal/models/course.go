package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

const (
	courseMinNameLength = 3
	// Fees are stored as NUMERIC(12, 2).
	courseFeeScale      = 2
)

var courseFeeLimit = decimal.New(1, 10)

// Course validation messages.
const (
	MsgCourseFeePrecision  = "registration fee cannot have more than two decimal places"
	MsgCourseFeeTooLarge   = "registration fee exceeds the supported maximum"
	MsgCourseStartAfterEnd = "course start date cannot be after its end date"
	MsgCourseStartInPast   = "course cannot start in the past"
)

// Course represents an academic offering open for enrollment until it starts.
type Course struct {
	id              string
	name            string
	registrationFee decimal.Decimal
	startDate       time.Time
	endDate         time.Time
	createdAt       time.Time
}

// NewCourse validates name, fee and schedule, in that order, and creates a Course.
func NewCourse(name string, fee decimal.Decimal, startDate, endDate time.Time) (*Course, error) {
	return newCourseAt(name, fee, startDate, endDate, time.Now())
}

func newCourseAt(name string, fee decimal.Decimal, startDate, endDate, now time.Time) (*Course, error) {
	trimmed, err := validateName(name, "Course", courseMinNameLength)
	if err != nil {
		return nil, err
	}
	if fee.IsNegative() {
		return nil, appErrors.ErrInvalidRegistrationFee
	}
	if !fee.Equal(fee.Truncate(courseFeeScale)) {
		return nil, appErrors.Clone(appErrors.ErrInvalidRegistrationFee, MsgCourseFeePrecision)
	}
	if fee.GreaterThanOrEqual(courseFeeLimit) {
		return nil, appErrors.Clone(appErrors.ErrInvalidRegistrationFee, MsgCourseFeeTooLarge)
	}
	if startDate.After(endDate) {
		return nil, appErrors.Clone(appErrors.ErrInvalidCourseDate, MsgCourseStartAfterEnd)
	}
	if !startDate.After(now) {
		return nil, appErrors.Clone(appErrors.ErrInvalidCourseDate, MsgCourseStartInPast)
	}
	return &Course{
		id:              uuid.NewString(),
		name:            trimmed,
		registrationFee: fee,
		startDate:       startDate,
		endDate:         endDate,
		createdAt:       now.UTC(),
	}, nil
}

// RestoreCourse rebuilds a persisted course without re-validating its schedule.
func RestoreCourse(id, name string, fee decimal.Decimal, startDate, endDate, createdAt time.Time) *Course {
	return &Course{
		id:              id,
		name:            name,
		registrationFee: fee,
		startDate:       startDate,
		endDate:         endDate,
		createdAt:       createdAt,
	}
}

func (c *Course) ID() string                       { return c.id }
func (c *Course) Name() string                     { return c.name }
func (c *Course) RegistrationFee() decimal.Decimal { return c.registrationFee }
func (c *Course) StartDate() time.Time             { return c.startDate }
func (c *Course) EndDate() time.Time               { return c.endDate }
func (c *Course) CreatedAt() time.Time             { return c.createdAt }

// IsPaymentRequired reports whether enrolling costs a non-zero fee.
func (c *Course) IsPaymentRequired() bool {
	return c.registrationFee.IsPositive()
}

// HasStarted reports whether the registration window is closed.
func (c *Course) HasStarted() bool {
	return c.HasStartedAt(time.Now())
}

// HasStartedAt reports whether now is at or after the start date.
func (c *Course) HasStartedAt(now time.Time) bool {
	return !now.Before(c.startDate)
}
