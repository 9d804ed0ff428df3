package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-enrollment-api/internal/dto"
	"github.com/noah-isme/course-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

type enrollmentRepository interface {
	IsStudentEnrolled(ctx context.Context, student *models.Student, course *models.Course) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
}

type courseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type paymentGateway interface {
	ProcessPayment(ctx context.Context, student *models.Student, course *models.Course) (bool, error)
}

// EnrollmentService enrolls students into courses, charging the registration fee when one applies.
type EnrollmentService struct {
	repo      enrollmentRepository
	courses   courseReader
	students  studentReader
	payments  paymentGateway
	cache     reportCache
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs the enrollment service. Cache and metrics are optional.
func NewEnrollmentService(repo enrollmentRepository, courses courseReader, students studentReader, payments paymentGateway, cache reportCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		repo:      repo,
		courses:   courses,
		students:  students,
		payments:  payments,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// Enroll registers the student in the course. A declined payment still persists the
// enrollment with status Failed; a gateway error persists nothing.
func (s *EnrollmentService) Enroll(ctx context.Context, req dto.EnrollStudentRequest) (*dto.EnrollmentSummary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	if err := ensureEntityID("Course", req.CourseID); err != nil {
		return nil, err
	}
	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, lookupError("Course", req.CourseID, err)
	}
	if err := ensureEntityID("Student", req.StudentID); err != nil {
		return nil, err
	}
	student, err := s.students.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, lookupError("Student", req.StudentID, err)
	}
	enrolled, err := s.repo.IsStudentEnrolled(ctx, student, course)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, appErrors.ErrAlreadyEnrolled
	}

	enrollment, err := models.NewEnrollment(course, student)
	if err != nil {
		return nil, err
	}
	if course.IsPaymentRequired() {
		if err := s.charge(ctx, enrollment); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	s.metrics.RecordEnrollment(enrollment.PaymentStatus())
	s.logger.Info("student enrolled",
		zap.String("enrollment_id", enrollment.ID()),
		zap.String("course_id", course.ID()),
		zap.String("student_id", student.ID()),
		zap.String("payment_status", enrollment.PaymentStatus().String()),
	)
	invalidateReports(ctx, s.cache, s.logger)

	summary := dto.ToEnrollmentSummary(enrollment)
	return &summary, nil
}

func (s *EnrollmentService) charge(ctx context.Context, enrollment *models.Enrollment) error {
	approved, err := s.payments.ProcessPayment(ctx, enrollment.Student(), enrollment.Course())
	if err != nil {
		s.metrics.RecordPaymentAttempt(PaymentOutcomeError)
		return err
	}
	status := models.PaymentStatusFailed
	outcome := PaymentOutcomeDeclined
	if approved {
		status = models.PaymentStatusPaid
		outcome = PaymentOutcomeApproved
	}
	s.metrics.RecordPaymentAttempt(outcome)
	return enrollment.UpdatePaymentStatus(status)
}
