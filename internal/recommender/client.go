// Package recommender is the client for the external recommendation service.
package recommender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "internmatch-web/internal/common/errors"
	commonhttp "internmatch-web/internal/common/http"
	"internmatch-web/internal/common/logger"
	"internmatch-web/internal/common/metrics"
	"internmatch-web/internal/common/observability"
	"internmatch-web/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Operation names used in logs, metrics and spans.
const (
	OpListInternships  = "list_internships"
	OpGetInternship    = "get_internship"
	OpAddInternship    = "add_internship"
	OpDeleteInternship = "delete_internship"
	OpRecommend        = "recommend"
)

// maxErrorBody bounds how much of an unparseable error body ends up in error details.
const maxErrorBody = 256

// API is the set of calls the views and tools make.
type API interface {
	ListInternships(ctx context.Context) ([]models.Internship, error)
	GetInternship(ctx context.Context, id string) (*models.Internship, error)
	AddInternship(ctx context.Context, in models.NewInternship) (*models.MutationResult, error)
	DeleteInternship(ctx context.Context, id string) (*models.MutationResult, error)
	Recommend(ctx context.Context, candidate models.Candidate) (*models.RecommendationResponse, error)
}

// Client talks JSON to the recommendation service. Every call is one
// request/response cycle; nothing is retried.
type Client struct {
	baseURL string
	http    *commonhttp.Client
	logger  logger.Logger
	tracer  trace.Tracer
	obs     *observability.Observability
}

type Option func(*Client)

// WithTracing emits a span per call.
func WithTracing(t *observability.Tracing) Option {
	return func(c *Client) { c.tracer = t.Tracer() }
}

// WithObservability records OpenTelemetry call metrics.
func WithObservability(o *observability.Observability) Option {
	return func(c *Client) { c.obs = o }
}

func NewClient(baseURL string, httpClient *commonhttp.Client, log logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  log.WithFields(map[string]interface{}{"component": "recommender"}),
		tracer:  (*observability.Tracing)(nil).Tracer(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListInternships fetches every internship. Items that fail validation are
// dropped and logged so one bad record does not hide the rest.
func (c *Client) ListInternships(ctx context.Context) ([]models.Internship, error) {
	var raw []json.RawMessage
	err := c.call(ctx, request{
		op:     OpListInternships,
		method: http.MethodGet,
		path:   "/internships",
		schema: schemaInternshipList,
		out:    &raw,
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.Internship, 0, len(raw))
	for i, item := range raw {
		in, reason := decodeInternship(item)
		if reason != "" {
			c.logger.Warn("Dropping invalid internship from list", map[string]interface{}{
				"operation": OpListInternships,
				"index":     i,
				"error":     reason,
			})
			continue
		}
		out = append(out, in)
	}
	return out, nil
}

// decodeInternship validates one list item; reason is empty when it is usable.
func decodeInternship(item json.RawMessage) (models.Internship, string) {
	var in models.Internship
	result, err := schemas.ValidateJSON(schemaInternship, item)
	if err != nil {
		return in, err.Error()
	}
	if !result.Valid {
		return in, strings.Join(result.Messages(), "; ")
	}
	if err := json.Unmarshal(item, &in); err != nil {
		return in, err.Error()
	}
	return in, ""
}

func (c *Client) GetInternship(ctx context.Context, id string) (*models.Internship, error) {
	var out models.Internship
	err := c.call(ctx, request{
		op:     OpGetInternship,
		method: http.MethodGet,
		path:   "/internship/" + url.PathEscape(id),
		schema: schemaInternship,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddInternship(ctx context.Context, in models.NewInternship) (*models.MutationResult, error) {
	var out models.MutationResult
	err := c.call(ctx, request{
		op:        OpAddInternship,
		method:    http.MethodPost,
		path:      "/add_internship",
		body:      in,
		schema:    schemaMutation,
		out:       &out,
		emptyBody: true,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteInternship(ctx context.Context, id string) (*models.MutationResult, error) {
	var out models.MutationResult
	err := c.call(ctx, request{
		op:        OpDeleteInternship,
		method:    http.MethodDelete,
		path:      "/delete_internship/" + url.PathEscape(id),
		schema:    schemaMutation,
		out:       &out,
		emptyBody: true,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Recommend submits the candidate. A response whose parallel lists differ in
// length is rejected, so callers only ever hold index-aligned results.
func (c *Client) Recommend(ctx context.Context, candidate models.Candidate) (*models.RecommendationResponse, error) {
	var out models.RecommendationResponse
	err := c.call(ctx, request{
		op:     OpRecommend,
		method: http.MethodPost,
		path:   "/recommend",
		body:   candidate,
		schema: schemaRecommendation,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	if !out.Consistent() {
		err := apperrors.NewUpstreamResponseInvalidError(OpRecommend,
			fmt.Sprintf("%d internships but %d match scores", len(out.Internships), len(out.MatchScores)))
		c.logger.Error("Recommendation response rejected", map[string]interface{}{
			"operation": OpRecommend,
			"error":     err.Details,
		})
		return nil, err
	}
	return &out, nil
}

type request struct {
	op        string
	method    string
	path      string
	body      interface{}
	schema    string
	out       interface{}
	emptyBody bool // a 2xx with no body is a success
}

func (c *Client) call(ctx context.Context, req request) (err error) {
	ctx, span := c.tracer.Start(ctx, "recommender."+req.op, trace.WithAttributes(
		attribute.String("http.method", req.method),
		attribute.String("recommender.path", req.path),
	))
	defer span.End()

	start := time.Now()
	outcome := "success"
	defer func() {
		elapsed := time.Since(start)
		metrics.UpstreamRequests.WithLabelValues(req.op, outcome).Inc()
		metrics.UpstreamDuration.WithLabelValues(req.op).Observe(elapsed.Seconds())
		c.obs.RecordCall(ctx, req.op, outcome, elapsed)

		fields := map[string]interface{}{
			"operation":  req.op,
			"outcome":    outcome,
			"durationMs": elapsed.Milliseconds(),
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
			fields["error"] = err.Error()
			c.logger.Warn("Recommendation service call failed", fields)
			return
		}
		c.logger.Debug("Recommendation service call completed", fields)
	}()

	resp, err := c.http.DoJSON(ctx, req.method, c.baseURL+req.path, req.body)
	if err != nil {
		outcome = "unavailable"
		return apperrors.NewUpstreamUnavailableError(req.op, err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if !resp.OK() {
		outcome = "status"
		return apperrors.NewUpstreamStatusError(req.op, resp.StatusCode, errorMessage(resp.Body))
	}

	if len(bytes.TrimSpace(resp.Body)) == 0 && req.emptyBody {
		return nil
	}

	if !json.Valid(resp.Body) {
		outcome = "decode"
		return apperrors.NewUpstreamDecodeError(req.op, fmt.Errorf("response is not valid JSON"))
	}

	if req.schema != "" {
		result, verr := schemas.ValidateJSON(req.schema, resp.Body)
		if verr != nil {
			outcome = "invalid"
			return apperrors.NewUpstreamResponseInvalidError(req.op, verr.Error())
		}
		if !result.Valid {
			outcome = "invalid"
			return apperrors.NewUpstreamResponseInvalidError(req.op, strings.Join(result.Messages(), "; "))
		}
	}

	if err := json.Unmarshal(resp.Body, req.out); err != nil {
		outcome = "decode"
		return apperrors.NewUpstreamDecodeError(req.op, err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} from a failure body, falling back to the raw text.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	return text
}
