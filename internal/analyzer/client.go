// Package analyzer is the client for the remote image-to-recipe analysis
// service. The service receives 1-6 base64 images and returns a structured
// draft recipe; it can fail or hang, so every call is bounded by a timeout.
package analyzer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/GuotongWu/CookNote/internal/metrics"
	"github.com/GuotongWu/CookNote/internal/models"
)

// Image count limits accepted by the service.
const (
	MinImages = 1
	MaxImages = 6
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// Analyzer turns recipe photos into a draft.
type Analyzer interface {
	Analyze(ctx context.Context, images []string) (*models.Draft, error)
}

// Compile-time interface checks.
var (
	_ Analyzer = (*Client)(nil)
	_ Analyzer = (*Mock)(nil)
)

// request is the body sent to POST /analyze.
type request struct {
	Images []string `json:"images"`
}

// errorBody is the failure response shape.
type errorBody struct {
	Error string `json:"error"`
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithTimeout bounds each Analyze call.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithMetrics records call outcomes into m.
func WithMetrics(m *metrics.Metrics) ClientOption {
	return func(c *Client) { c.metrics = m }
}

// Client calls the analysis service over HTTP.
type Client struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
	metrics  *metrics.Metrics
}

// NewClient creates a client for the given endpoint (the full /analyze URL).
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		timeout:  60 * time.Second,
		http:     &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// EncodeImages base64-encodes raw image bytes for Analyze.
func EncodeImages(raw [][]byte) []string {
	out := make([]string, len(raw))
	for i, b := range raw {
		out[i] = base64.StdEncoding.EncodeToString(b)
	}
	return out
}

// Analyze sends the base64 images and decodes the draft.
// Remote failures are returned as *ServiceError.
func (c *Client) Analyze(ctx context.Context, images []string) (*models.Draft, error) {
	if len(images) < MinImages || len(images) > MaxImages {
		return nil, ErrImageCount
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	slog.Info("Analysis starting", "endpoint", c.endpoint, "images", len(images))

	draft, err := c.do(ctx, images)
	if err != nil {
		outcome := "error"
		if se, ok := err.(*ServiceError); ok {
			outcome = string(se.Kind)
		}
		c.metrics.Analyzed(outcome)
		slog.Error("Analysis failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return nil, err
	}

	c.metrics.Analyzed("ok")
	slog.Info("Analysis completed",
		"name", draft.Name,
		"ingredients", len(draft.Ingredients),
		"steps", len(draft.Steps),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return draft, nil
}

func (c *Client) do(ctx context.Context, images []string) (*models.Draft, error) {
	data, err := json.Marshal(request{Images: images})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, &ServiceError{Kind: KindNetwork, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ServiceError{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &ServiceError{Kind: KindNetwork, Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		return nil, &ServiceError{
			Kind:    KindHTTP,
			Status:  resp.StatusCode,
			Message: eb.Error,
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	draft, err := ParseDraft(body)
	if err != nil {
		return nil, &ServiceError{Kind: KindMalformed, Status: resp.StatusCode, Err: err}
	}
	return draft, nil
}

// ParseDraft decodes and validates a success body. Markdown code fences
// around the JSON are tolerated.
func ParseDraft(body []byte) (*models.Draft, error) {
	text := strings.TrimSpace(string(body))
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var draft models.Draft
	dec := json.NewDecoder(strings.NewReader(text))
	if err := dec.Decode(&draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	if strings.TrimSpace(draft.Name) == "" {
		return nil, fmt.Errorf("draft has no name")
	}
	for i, ing := range draft.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return nil, fmt.Errorf("ingredient %d has no name", i)
		}
		if ing.Amount < 0 {
			return nil, fmt.Errorf("ingredient %q has negative amount", ing.Name)
		}
		draft.Ingredients[i].Category = string(models.ParseCategory(ing.Category))
	}
	return &draft, nil
}
