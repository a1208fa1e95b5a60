package repository

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	leadserrors "leadform/internal/leads/errors"
	"leadform/pkg/client"
	"leadform/pkg/config"
	"leadform/pkg/metrics"
	"leadform/pkg/model"
)

type LeadRepository interface {
	// FindExisting reports whether a record with the same email or phone exists.
	FindExisting(ctx context.Context, email, phone string) (bool, error)
	Create(ctx context.Context, lead *model.Lead) error
}

type airtableLeadRepository struct {
	client    *client.HttpClient
	tablePath string
	timeout   time.Duration
	metrics   *metrics.Metrics
}

type airtableFields map[string]any

type airtableRecord struct {
	ID     string         `json:"id,omitempty"`
	Fields airtableFields `json:"fields"`
}

type airtableRecords struct {
	Records []airtableRecord `json:"records"`
}

func NewAirtableLeadRepository(cfg *config.Config, m *metrics.Metrics) (LeadRepository, error) {
	if err := cfg.ValidateAirtable(); err != nil {
		return nil, fmt.Errorf("%w: %v", leadserrors.ErrMissingConfiguration, err)
	}

	httpClient := client.NewHttpClient(cfg.AirtableAPIURL, cfg.AirtableTimeout).
		WithHeader("Authorization", "Bearer "+cfg.AirtablePAT)

	return &airtableLeadRepository{
		client:    httpClient,
		tablePath: "/v0/" + url.PathEscape(cfg.AirtableBaseID) + "/" + url.PathEscape(cfg.AirtableTableName),
		timeout:   cfg.AirtableTimeout,
		metrics:   m,
	}, nil
}

// withTimeout uses the shorter of the remaining request deadline or the
// configured upstream timeout.
func (r *airtableLeadRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < r.timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *airtableLeadRepository) FindExisting(ctx context.Context, email, phone string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := url.Values{}
	query.Set("filterByFormula", duplicateFormula(email, phone))
	query.Set("maxRecords", "1")
	query.Set("pageSize", "1")

	start := time.Now()
	resp, err := r.client.GET(ctx, r.tablePath, query)
	if err != nil {
		r.metrics.ObserveUpstream(leadserrors.OpQuery, "error", time.Since(start).Seconds())
		return false, &leadserrors.UpstreamError{Op: leadserrors.OpQuery, Err: err}
	}
	r.metrics.ObserveUpstream(leadserrors.OpQuery, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if !resp.IsSuccess() {
		return false, &leadserrors.UpstreamError{Op: leadserrors.OpQuery, Status: resp.StatusCode, Body: resp.Body}
	}

	var result airtableRecords
	if err := resp.DecodeJSON(&result); err != nil {
		return false, &leadserrors.UpstreamError{
			Op:     leadserrors.OpQuery,
			Status: resp.StatusCode,
			Body:   resp.Body,
			Err:    fmt.Errorf("failed to decode records: %w", err),
		}
	}

	return len(result.Records) > 0, nil
}

func (r *airtableLeadRepository) Create(ctx context.Context, lead *model.Lead) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	body := airtableRecords{
		Records: []airtableRecord{{
			Fields: airtableFields{
				FieldName:  lead.Name,
				FieldPhone: lead.Phone,
				FieldEmail: lead.Email,
				FieldAge:   lead.Age,
			},
		}},
	}

	start := time.Now()
	resp, err := r.client.POST(ctx, r.tablePath, body)
	if err != nil {
		r.metrics.ObserveUpstream(leadserrors.OpCreate, "error", time.Since(start).Seconds())
		return &leadserrors.UpstreamError{Op: leadserrors.OpCreate, Err: err}
	}
	r.metrics.ObserveUpstream(leadserrors.OpCreate, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if !resp.IsSuccess() {
		return &leadserrors.UpstreamError{Op: leadserrors.OpCreate, Status: resp.StatusCode, Body: resp.Body}
	}

	return nil
}
