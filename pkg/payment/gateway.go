package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-enrollment-api/internal/models"
	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

const maxErrorBody = 512

// Gateway charges a student for a course. It reports approval, or an error when the outcome is unknown.
type Gateway interface {
	ProcessPayment(ctx context.Context, student *models.Student, course *models.Course) (bool, error)
}

// Config configures the HTTP payment gateway.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type chargeRequest struct {
	Reference   string `json:"reference"`
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	CourseID    string `json:"course_id"`
	Amount      string `json:"amount"`
}

type chargeResponse struct {
	Approved *bool `json:"approved"`
}

// HTTPGateway charges course registration fees against a remote payment provider.
type HTTPGateway struct {
	client *http.Client
	config Config
	logger *zap.Logger
}

// NewHTTPGateway constructs a gateway. A nil client gets one bound to the configured timeout.
func NewHTTPGateway(cfg Config, client *http.Client, logger *zap.Logger) *HTTPGateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &HTTPGateway{client: client, config: cfg, logger: logger}
}

// ProcessPayment charges the course fee for the student. A declined charge is not an error.
func (g *HTTPGateway) ProcessPayment(ctx context.Context, student *models.Student, course *models.Course) (bool, error) {
	if student == nil || course == nil {
		return false, appErrors.Clone(appErrors.ErrNilArgument, "student and course are required for payment")
	}
	payload, err := json.Marshal(chargeRequest{
		Reference:   course.ID() + ":" + student.ID(),
		StudentID:   student.ID(),
		StudentName: student.Name(),
		CourseID:    course.ID(),
		Amount:      course.RegistrationFee().StringFixed(2),
	})
	if err != nil {
		return false, gatewayError(err, "encode charge request")
	}

	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.BaseURL+"/charges", bytes.NewReader(payload))
	if err != nil {
		return false, gatewayError(err, "build charge request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if g.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.config.APIKey)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		return false, gatewayError(err, "send charge request")
	}
	defer resp.Body.Close()

	g.logger.Debug("payment gateway responded",
		zap.String("course_id", course.ID()),
		zap.String("student_id", student.ID()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return false, gatewayError(fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), "charge rejected by gateway")
	}
	var decoded chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return false, gatewayError(err, "decode charge response")
	}
	if decoded.Approved == nil {
		return false, gatewayError(fmt.Errorf("missing approved field"), "decode charge response")
	}
	return *decoded.Approved, nil
}

var (
	_ Gateway = (*HTTPGateway)(nil)
	_ Gateway = StaticGateway{}
)

func gatewayError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrPaymentGateway.Code, appErrors.ErrPaymentGateway.Status, message)
}

// StaticGateway answers every charge with a fixed outcome. Used when PAYMENT_MODE=stub.
type StaticGateway struct {
	Approve bool
}

// ProcessPayment returns the configured outcome.
func (g StaticGateway) ProcessPayment(ctx context.Context, _ *models.Student, _ *models.Course) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return g.Approve, nil
}
