package client

import (
	"context"
	"net/url"
	"time"
)

const leadPath = "/api/lead"

// LeadClient talks to a running lead server. Redirects are not followed so
// callers can see the 303 issued for form posts.
type LeadClient struct {
	httpClient *HttpClient
}

func NewLeadClient(baseURL string) *LeadClient {
	return &LeadClient{
		httpClient: NewHttpClient(baseURL, 10*time.Second).WithoutRedirects(),
	}
}

func (c *LeadClient) SubmitJSON(ctx context.Context, lead map[string]any) (*Response, error) {
	return c.httpClient.POST(ctx, leadPath, lead)
}

func (c *LeadClient) SubmitJSONWithIdempotencyKey(ctx context.Context, lead map[string]any, key string) (*Response, error) {
	return c.httpClient.POSTWithHeaders(ctx, leadPath, lead, map[string]string{"Idempotency-Key": key})
}

func (c *LeadClient) SubmitForm(ctx context.Context, form url.Values) (*Response, error) {
	return c.httpClient.POSTForm(ctx, leadPath, form)
}

func (c *LeadClient) Ping(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, leadPath+"/ping", nil)
}

func (c *LeadClient) Health(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/health", nil)
}

func (c *LeadClient) BaseURL() string {
	return c.httpClient.BaseURL
}
