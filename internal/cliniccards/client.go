// Package cliniccards is a REST client for the ClinicCards CRM, the
// upstream system of record for schedules, visits, and patients. All
// reads and writes the availability engine needs go through this client;
// no call is retried and no response is cached.
package cliniccards

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/smilecare/booking-api/internal/observability/metrics"
	"github.com/smilecare/booking-api/pkg/logging"
)

const (
	defaultBaseURL = "https://cliniccards.com/api"
	defaultTimeout = 20 * time.Second
)

// Client talks to the ClinicCards REST API using token-header auth.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *logging.Logger
	metrics    *metrics.BookingMetrics
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests and self-hosted
// CRM installs).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithMetrics attaches CRM call latency observation.
func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a ClinicCards API client.
func NewClient(token string, logger *logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		baseURL: defaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connected reports whether the client has an API token configured.
func (c *Client) Connected() bool {
	return c.token != ""
}

// ScheduleSpaces returns the raw shift/block records for a date range.
func (c *Client) ScheduleSpaces(ctx context.Context, from, to string) ([]ScheduleSpace, error) {
	body, err := c.do(ctx, http.MethodGet, "/schedule-spaces?"+rangeQuery(from, to), nil)
	if err != nil {
		return nil, err
	}
	var env listEnvelope[ScheduleSpace]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("cliniccards: decode schedule spaces: %w", err)
	}
	return env.Data, nil
}

// Visits returns the existing visits for a date range.
func (c *Client) Visits(ctx context.Context, from, to string) ([]Visit, error) {
	body, err := c.do(ctx, http.MethodGet, "/visits?"+rangeQuery(from, to), nil)
	if err != nil {
		return nil, err
	}
	var env listEnvelope[Visit]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("cliniccards: decode visits: %w", err)
	}
	return env.Data, nil
}

// CreatePatient creates a patient record and returns its id.
func (c *Client) CreatePatient(ctx context.Context, p NewPatient) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/patients", p)
	if err != nil {
		return "", err
	}
	return patientIDFromResponse(body)
}

// CreateVisit creates a visit and returns the new visit id when the CRM
// reports one.
func (c *Client) CreateVisit(ctx context.Context, v NewVisit) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/visits", v)
	if err != nil {
		return "", err
	}
	return visitIDFromResponse(body), nil
}

// Cabinets returns the raw cabinets payload for pass-through endpoints.
func (c *Client) Cabinets(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/cabinets", nil)
}

// Staff returns the raw staff payload for pass-through endpoints.
func (c *Client) Staff(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/staff", nil)
}

// Patient returns one raw patient record for pass-through endpoints.
func (c *Client) Patient(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/patients/"+url.PathEscape(id), nil)
}

// ScheduleSpacesRaw returns the unparsed schedule-spaces payload for
// pass-through endpoints.
func (c *Client) ScheduleSpacesRaw(ctx context.Context, from, to string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/schedule-spaces?"+rangeQuery(from, to), nil)
}

// VisitsRaw returns the unparsed visits payload for pass-through
// endpoints.
func (c *Client) VisitsRaw(ctx context.Context, from, to string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/visits?"+rangeQuery(from, to), nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("cliniccards: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("cliniccards: create request: %w", err)
	}
	req.Header.Set("Token", c.token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveCRMLatency(method+" "+pathOnly(endpoint), time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("cliniccards: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cliniccards: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := string(body)
		if len(msg) > 300 {
			msg = msg[:300]
		}
		c.logger.Error("CRM call failed", "method", method, "endpoint", endpoint, "status", resp.StatusCode)
		return nil, fmt.Errorf("cliniccards: %s %s: status %d: %s", method, endpoint, resp.StatusCode, msg)
	}
	return body, nil
}

func rangeQuery(from, to string) string {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	return q.Encode()
}

func pathOnly(endpoint string) string {
	path, _, _ := strings.Cut(endpoint, "?")
	return path
}
