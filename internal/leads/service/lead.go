package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	leadserrors "leadform/internal/leads/errors"
	"leadform/internal/leads/lock"
	"leadform/internal/leads/repository"
	"leadform/internal/leads/validator"
	"leadform/pkg/config"
	apperrors "leadform/pkg/errors"
	"leadform/pkg/kafka"
	"leadform/pkg/locale"
	"leadform/pkg/metrics"
	"leadform/pkg/middleware"
	"leadform/pkg/model"
	"leadform/pkg/sanitizer"
)

const (
	EventLeadCreated   = "lead.created"
	eventSchemaVersion = "1"
)

// EventPublisher is satisfied by *kafka.Producer.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type LeadService interface {
	Submit(ctx context.Context, raw model.RawLead) (*model.Lead, error)
}

type leadService struct {
	repo      repository.LeadRepository
	validator *validator.LeadValidator
	locker    lock.Locker
	publisher EventPublisher
	metrics   *metrics.Metrics
	cfg       *config.Config
}

// NewLeadService wires the submission pipeline. publisher may be nil when
// event publishing is disabled.
func NewLeadService(
	repo repository.LeadRepository,
	validator *validator.LeadValidator,
	locker lock.Locker,
	publisher EventPublisher,
	m *metrics.Metrics,
	cfg *config.Config,
) LeadService {
	return &leadService{
		repo:      repo,
		validator: validator,
		locker:    locker,
		publisher: publisher,
		metrics:   m,
		cfg:       cfg,
	}
}

func (s *leadService) Submit(ctx context.Context, raw model.RawLead) (*model.Lead, error) {
	result := s.validator.Validate(raw)
	if !result.Valid() {
		s.metrics.ObserveLead(metrics.OutcomeInvalid)
		s.cfg.Log.Warn("Lead rejected by validation",
			"request_id", middleware.GetRequestID(ctx),
			"field", result.Field,
			"reason", result.Reason,
		)
		return nil, apperrors.Validation(result.Message, result.Details())
	}

	lead := normalize(raw)

	unlock, err := s.locker.Lock(ctx, "email:"+lead.Email, "phone:"+lead.Phone)
	if err != nil {
		s.metrics.ObserveLead(metrics.OutcomeUnavailable)
		s.cfg.Log.Error("Failed to acquire lead lock",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		appErr := apperrors.Unavailable("Lead submission")
		appErr.Err = fmt.Errorf("%w: %v", leadserrors.ErrLockUnavailable, err)
		return nil, appErr
	}
	defer unlock()

	if err := s.verifyDuplication(ctx, lead); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, s.createFailed(ctx, err)
	}

	s.metrics.ObserveLead(metrics.OutcomeCreated)
	s.cfg.Log.Info("Lead created successfully",
		"request_id", middleware.GetRequestID(ctx),
		"email", lead.Email,
	)

	s.publishCreated(ctx, lead)
	return lead, nil
}

func normalize(raw model.RawLead) *model.Lead {
	age, _ := validator.ParseAge(raw.Age)
	return &model.Lead{
		Name:  sanitizer.NormalizeName(raw.Name),
		Phone: sanitizer.NormalizePhone(raw.Phone),
		Email: sanitizer.NormalizeEmail(raw.Email),
		Age:   age,
	}
}

// verifyDuplication fails closed: a query that cannot be answered never
// leads to a create.
func (s *leadService) verifyDuplication(ctx context.Context, lead *model.Lead) error {
	exists, err := s.repo.FindExisting(ctx, lead.Email, lead.Phone)
	if err != nil {
		s.metrics.ObserveLead(metrics.OutcomeQueryError)
		if errors.Is(err, leadserrors.ErrMissingConfiguration) {
			return apperrors.Configuration("Record store is not configured", err)
		}

		s.cfg.Log.Error("Duplicate check failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		appErr := apperrors.UpstreamQuery("Duplicate check failed", err)
		var upstreamErr *leadserrors.UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.Responded() {
			appErr = appErr.WithDetails(map[string]any{"upstream_status": upstreamErr.Status})
		}
		return appErr
	}

	if exists {
		s.metrics.ObserveLead(metrics.OutcomeDuplicate)
		s.cfg.Log.Info("Duplicate lead rejected",
			"request_id", middleware.GetRequestID(ctx),
			"email", lead.Email,
		)
		appErr := apperrors.Conflict("A lead with this email or phone already exists")
		appErr.Err = leadserrors.ErrDuplicateLead
		return appErr
	}

	return nil
}

func (s *leadService) createFailed(ctx context.Context, err error) error {
	s.metrics.ObserveLead(metrics.OutcomeWriteError)

	if errors.Is(err, leadserrors.ErrMissingConfiguration) {
		return apperrors.Configuration("Record store is not configured", err)
	}

	status := 0
	var upstreamErr *leadserrors.UpstreamError
	if errors.As(err, &upstreamErr) {
		status = upstreamErr.Status
	}

	s.cfg.Log.Error("Failed to create lead",
		"request_id", middleware.GetRequestID(ctx),
		"upstream_status", status,
		"error", err,
	)
	return apperrors.UpstreamWrite("Failed to submit lead", status, err)
}

// publishCreated emits lead.created. Failures are logged only: the record
// already exists upstream and the response must reflect that.
func (s *leadService) publishCreated(ctx context.Context, lead *model.Lead) {
	if s.publisher == nil {
		return
	}

	timeout := 3 * time.Second
	if s.cfg.Kafka != nil && s.cfg.Kafka.PublishTimeout > 0 {
		timeout = s.cfg.Kafka.PublishTimeout
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	e164 := sanitizer.PhoneE164(lead.Phone)
	event := model.LeadCreatedEvent{
		Name:      lead.Name,
		Phone:     lead.Phone,
		PhoneE164: e164,
		Timezone:  locale.TimezoneFromE164(e164),
		Email:     lead.Email,
		Age:       lead.Age,
		CreatedAt: time.Now().UTC(),
	}
	if country := locale.CountryFromE164(e164); country != nil {
		event.Country = country.Code
	}

	msg := kafka.NewMessage().
		WithKey(lead.Email).
		WithValue(event).
		WithEventType(EventLeadCreated).
		WithSchemaVersion(eventSchemaVersion).
		WithSource(s.cfg.ServiceName).
		WithRequestID(middleware.GetRequestID(ctx)).
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish lead event",
			"request_id", middleware.GetRequestID(ctx),
			"event_type", EventLeadCreated,
			"error", err,
		)
	}
}
