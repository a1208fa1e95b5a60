package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	leadserrors "leadform/internal/leads/errors"
	"leadform/internal/leads/lock"
	"leadform/internal/leads/validator"
	"leadform/pkg/config"
	apperrors "leadform/pkg/errors"
	"leadform/pkg/kafka"
	"leadform/pkg/logger"
	"leadform/pkg/metrics"
	"leadform/pkg/model"
)

// ────────────────────────────────────────────────
// Mocks
// ────────────────────────────────────────────────

type mockLeadRepository struct {
	mu             sync.Mutex
	findExistingFn func(ctx context.Context, email, phone string) (bool, error)
	createFn       func(ctx context.Context, lead *model.Lead) error
	findCalls      int
	created        []*model.Lead
	lastQueryEmail string
	lastQueryPhone string
}

func (m *mockLeadRepository) FindExisting(ctx context.Context, email, phone string) (bool, error) {
	m.mu.Lock()
	m.findCalls++
	m.lastQueryEmail, m.lastQueryPhone = email, phone
	m.mu.Unlock()

	if m.findExistingFn != nil {
		return m.findExistingFn(ctx, email, phone)
	}
	return false, nil
}

func (m *mockLeadRepository) Create(ctx context.Context, lead *model.Lead) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, lead); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.created = append(m.created, lead)
	m.mu.Unlock()
	return nil
}

type mockPublisher struct {
	err      error
	messages []kafka.Message
}

func (p *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	p.messages = append(p.messages, msg)
	return p.err
}

type failingLocker struct{}

func (failingLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	return nil, errors.New("redis: connection refused")
}

func newTestService(repo *mockLeadRepository, publisher EventPublisher, locker lock.Locker) LeadService {
	log := logger.Discard()
	if locker == nil {
		locker = lock.NewKeyedMutex()
	}
	return NewLeadService(
		repo,
		validator.NewLeadValidator(log),
		locker,
		publisher,
		metrics.New(prometheus.NewRegistry()),
		&config.Config{ServiceName: "test", Log: log},
	)
}

func scenarioLead() model.RawLead {
	return model.RawLead{
		Name:  "Dana Cohen",
		Phone: "(052) 123-4567",
		Email: "Dana@Example.COM",
		Age:   "30",
	}
}

func requireAppError(t *testing.T, err error, code string, status int) *apperrors.AppError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code || appErr.StatusCode() != status {
		t.Fatalf("expected %s/%d, got %s/%d", code, status, appErr.Code, appErr.StatusCode())
	}
	return appErr
}

// ────────────────────────────────────────────────
// End-to-end scenarios
// ────────────────────────────────────────────────

func TestSubmit_ScenarioA_CreatesNormalizedLead(t *testing.T) {
	repo := &mockLeadRepository{}
	svc := newTestService(repo, nil, nil)

	lead, err := svc.Submit(context.Background(), scenarioLead())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lead.Phone != "0521234567" {
		t.Errorf("expected normalized phone 0521234567, got %q", lead.Phone)
	}
	if lead.Email != "dana@example.com" {
		t.Errorf("expected normalized email, got %q", lead.Email)
	}
	if lead.Name != "Dana Cohen" || lead.Age != 30 {
		t.Errorf("unexpected lead: %+v", lead)
	}
	if repo.lastQueryEmail != "dana@example.com" || repo.lastQueryPhone != "0521234567" {
		t.Errorf("duplicate check used %q/%q", repo.lastQueryEmail, repo.lastQueryPhone)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected exactly one create call, got %d", len(repo.created))
	}
}

func TestSubmit_ScenarioB_InvalidAgeMakesNoExternalCalls(t *testing.T) {
	repo := &mockLeadRepository{}
	svc := newTestService(repo, nil, nil)

	raw := scenarioLead()
	raw.Age = "abc"

	_, err := svc.Submit(context.Background(), raw)
	appErr := requireAppError(t, err, apperrors.CodeValidation, http.StatusUnprocessableEntity)

	if appErr.Details["reason"] != validator.ReasonInvalidAge {
		t.Errorf("expected INVALID_AGE, got %v", appErr.Details["reason"])
	}
	if repo.findCalls != 0 || len(repo.created) != 0 {
		t.Errorf("expected no external calls, got find=%d create=%d", repo.findCalls, len(repo.created))
	}
}

func TestSubmit_ScenarioC_DuplicateNeverCreates(t *testing.T) {
	repo := &mockLeadRepository{
		findExistingFn: func(ctx context.Context, email, phone string) (bool, error) {
			return true, nil
		},
	}
	svc := newTestService(repo, nil, nil)

	_, err := svc.Submit(context.Background(), scenarioLead())
	requireAppError(t, err, apperrors.CodeConflict, http.StatusConflict)
	if !errors.Is(err, leadserrors.ErrDuplicateLead) {
		t.Errorf("expected error to wrap ErrDuplicateLead, got %v", err)
	}

	if len(repo.created) != 0 {
		t.Errorf("expected no create call, got %d", len(repo.created))
	}
}

func TestSubmit_ScenarioD_UpstreamRejectionForwardsStatus(t *testing.T) {
	createCalls := 0
	repo := &mockLeadRepository{
		createFn: func(ctx context.Context, lead *model.Lead) error {
			createCalls++
			return &leadserrors.UpstreamError{
				Op:     leadserrors.OpCreate,
				Status: http.StatusUnprocessableEntity,
				Body:   []byte(`{"error":{"type":"INVALID_VALUE_FOR_COLUMN"}}`),
			}
		},
	}
	svc := newTestService(repo, nil, nil)

	_, err := svc.Submit(context.Background(), scenarioLead())
	requireAppError(t, err, apperrors.CodeUpstreamWrite, http.StatusUnprocessableEntity)

	var upstreamErr *leadserrors.UpstreamError
	if !errors.As(err, &upstreamErr) || string(upstreamErr.Body) == "" {
		t.Errorf("expected upstream body to be reachable, got %v", err)
	}
	if createCalls != 1 {
		t.Errorf("expected exactly one create attempt, got %d", createCalls)
	}
}

// ────────────────────────────────────────────────
// Failure paths
// ────────────────────────────────────────────────

func TestSubmit_QueryTransportErrorFailsClosed(t *testing.T) {
	repo := &mockLeadRepository{
		findExistingFn: func(ctx context.Context, email, phone string) (bool, error) {
			return false, &leadserrors.UpstreamError{Op: leadserrors.OpQuery, Err: errors.New("dial tcp: connection refused")}
		},
	}
	svc := newTestService(repo, nil, nil)

	_, err := svc.Submit(context.Background(), scenarioLead())
	requireAppError(t, err, apperrors.CodeUpstreamQuery, http.StatusBadGateway)

	if len(repo.created) != 0 {
		t.Errorf("expected no create call, got %d", len(repo.created))
	}
}

func TestSubmit_CreateTransportErrorIsInternal(t *testing.T) {
	repo := &mockLeadRepository{
		createFn: func(ctx context.Context, lead *model.Lead) error {
			return &leadserrors.UpstreamError{Op: leadserrors.OpCreate, Err: context.DeadlineExceeded}
		},
	}
	svc := newTestService(repo, nil, nil)

	_, err := svc.Submit(context.Background(), scenarioLead())
	requireAppError(t, err, apperrors.CodeUpstreamWrite, http.StatusInternalServerError)
}

func TestSubmit_MissingConfiguration(t *testing.T) {
	repo := &mockLeadRepository{
		findExistingFn: func(ctx context.Context, email, phone string) (bool, error) {
			return false, leadserrors.ErrMissingConfiguration
		},
	}
	svc := newTestService(repo, nil, nil)

	_, err := svc.Submit(context.Background(), scenarioLead())
	requireAppError(t, err, apperrors.CodeConfiguration, http.StatusInternalServerError)
}

func TestSubmit_LockUnavailable(t *testing.T) {
	repo := &mockLeadRepository{}
	svc := newTestService(repo, nil, failingLocker{})

	_, err := svc.Submit(context.Background(), scenarioLead())
	requireAppError(t, err, apperrors.CodeUnavailable, http.StatusServiceUnavailable)
	if !errors.Is(err, leadserrors.ErrLockUnavailable) {
		t.Errorf("expected error to wrap ErrLockUnavailable, got %v", err)
	}

	if repo.findCalls != 0 || len(repo.created) != 0 {
		t.Errorf("expected no external calls, got find=%d create=%d", repo.findCalls, len(repo.created))
	}
}

// ────────────────────────────────────────────────
// Concurrency and events
// ────────────────────────────────────────────────

func TestSubmit_ConcurrentDuplicatesCreateOnce(t *testing.T) {
	repo := &mockLeadRepository{}
	repo.findExistingFn = func(ctx context.Context, email, phone string) (bool, error) {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		for _, l := range repo.created {
			if l.Email == email || l.Phone == phone {
				return true, nil
			}
		}
		return false, nil
	}
	svc := newTestService(repo, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Submit(context.Background(), scenarioLead())
		}()
	}
	wg.Wait()

	if len(repo.created) != 1 {
		t.Errorf("expected one record for concurrent duplicates, got %d", len(repo.created))
	}
}

func TestSubmit_PublishesLeadCreated(t *testing.T) {
	publisher := &mockPublisher{}
	svc := newTestService(&mockLeadRepository{}, publisher, nil)

	if _, err := svc.Submit(context.Background(), scenarioLead()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(publisher.messages) != 1 {
		t.Fatalf("expected one event, got %d", len(publisher.messages))
	}
	msg := publisher.messages[0]
	if msg.Key != "dana@example.com" || msg.EventType() != EventLeadCreated {
		t.Errorf("unexpected message: key=%q type=%q", msg.Key, msg.EventType())
	}

	var event model.LeadCreatedEvent
	if err := msg.DecodeValue(&event); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if event.PhoneE164 != "+972521234567" {
		t.Errorf("expected E.164 phone, got %q", event.PhoneE164)
	}
	if event.Country != "IL" || event.Timezone != "Asia/Jerusalem" {
		t.Errorf("expected Israeli locale, got %q %q", event.Country, event.Timezone)
	}
}

func TestSubmit_PublishFailureDoesNotFailSubmission(t *testing.T) {
	publisher := &mockPublisher{err: errors.New("broker down")}
	repo := &mockLeadRepository{}
	svc := newTestService(repo, publisher, nil)

	if _, err := svc.Submit(context.Background(), scenarioLead()); err != nil {
		t.Fatalf("expected success despite publish failure, got %v", err)
	}
	if len(repo.created) != 1 {
		t.Errorf("expected lead to be created, got %d", len(repo.created))
	}
}

func TestSubmit_NoEventOnFailure(t *testing.T) {
	publisher := &mockPublisher{}
	repo := &mockLeadRepository{
		findExistingFn: func(ctx context.Context, email, phone string) (bool, error) { return true, nil },
	}
	svc := newTestService(repo, publisher, nil)

	_, _ = svc.Submit(context.Background(), scenarioLead())

	if len(publisher.messages) != 0 {
		t.Errorf("expected no events, got %d", len(publisher.messages))
	}
}
