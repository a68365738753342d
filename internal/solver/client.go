// Package solver talks to the external PDE solver service over HTTP. The
// request payload is passed through opaquely; this package neither validates
// nor interprets the equation, initial condition, or boundary parameters.
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sebastiengilbert73/auto-pde/internal/dataset"
)

// Domain describes the solve grid in the service's wire format.
type Domain struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
	TMax float64 `json:"t_max"`
	NX   int     `json:"nx"`
	NY   int     `json:"ny"`
	Dt   float64 `json:"dt"`
}

// Request is a problem description for the solver. Equation, IC, and BC are
// opaque strings and parameters the service interprets.
type Request struct {
	Equation string         `json:"equation"`
	IC       string         `json:"ic"`
	BC       map[string]any `json:"bc,omitempty"`
	Domain   Domain         `json:"domain"`
}

// envelope is the service's response wrapper for both endpoints.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	base string
	hc   *http.Client
}

// DefaultBaseURL matches the solver service's development address.
const DefaultBaseURL = "http://localhost:5000"

func NewClient(base string) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		// solves can run for minutes on fine grids
		hc: &http.Client{Timeout: 5 * time.Minute},
	}
}

// Health pings GET /health and returns an error unless the service reports
// itself healthy.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("solver: health check: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("solver: health check: %w", err)
	}
	if resp.StatusCode != http.StatusOK || env.Status != "healthy" {
		return fmt.Errorf("solver: service unhealthy: %s", env.Status)
	}
	return nil
}

// Solve posts the problem description to POST /solve and decodes the
// completed dataset from the response. Service-side failures come back as an
// error status with a message; those never reach the playback core as data.
func (c *Client) Solve(ctx context.Context, sr Request) (*dataset.Dataset, error) {
	body, err := json.Marshal(sr)
	if err != nil {
		return nil, fmt.Errorf("solver: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/solve", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("solver: solve: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("solver: decode response: %w", err)
	}
	if env.Status != "success" {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("http %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("solver: solve failed: %s", msg)
	}
	return dataset.Decode(bytes.NewReader(env.Data))
}
