package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/diwise/vrs/pkg/vrs"
	"github.com/diwise/vrs/pkg/vrs/record"
	"github.com/diwise/vrs/pkg/vrs/types"
)

// ValidationClient talks to a remote vrs-validator service
type ValidationClient interface {
	Families(ctx context.Context) ([]Family, error)
	Validate(ctx context.Context, family string, rec record.Record) error
	ValidateEntity(ctx context.Context, family string, entity types.Entity) error
	Normalize(ctx context.Context, family string, rec record.Record) (types.Entity, error)
}

type Family struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

func Debug(enabled string) func(*vrsClient) {
	return func(c *vrsClient) {
		c.debug = (enabled == "true")
	}
}

func Token(token string) func(*vrsClient) {
	return func(c *vrsClient) {
		c.token = token
	}
}

func NewValidationClient(baseURL string, options ...func(*vrsClient)) ValidationClient {
	c := &vrsClient{
		baseURL: baseURL,
		debug:   false,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

const TraceAttributeFamily string = "vrs-family"

var tracer = otel.Tracer("vrs-client")

type vrsClient struct {
	baseURL string
	token   string
	debug   bool
}

func (c vrsClient) Families(ctx context.Context) ([]Family, error) {
	var err error

	ctx, span := tracer.Start(ctx, "list-families")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	resp, respBody, err := c.callValidator(ctx, http.MethodGet, c.baseURL+"/vrs/v1/families", nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		err = NewErrorFromProblemReport(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected response code %d (%w)", resp.StatusCode, ErrInternal)
		return nil, err
	}

	families := []Family{}
	err = json.Unmarshal(respBody, &families)
	if err != nil {
		err = fmt.Errorf("failed to unmarshal response: %s (%w)", err.Error(), ErrBadResponse)
		return nil, err
	}

	return families, nil
}

func (c vrsClient) Validate(ctx context.Context, family string, rec record.Record) error {
	var err error

	ctx, span := tracer.Start(ctx, "validate",
		trace.WithAttributes(attribute.String(TraceAttributeFamily, family)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	resp, respBody, err := c.post(ctx, family, "validate", rec)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		err = NewErrorFromProblemReport(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
		return err
	}

	if resp.StatusCode != http.StatusNoContent {
		err = fmt.Errorf("unexpected response code %d (%w)", resp.StatusCode, ErrInternal)
		return err
	}

	return nil
}

func (c vrsClient) ValidateEntity(ctx context.Context, family string, entity types.Entity) error {
	if entity == nil {
		return fmt.Errorf("refusing to validate a nil entity (%w)", ErrRequest)
	}
	return c.Validate(ctx, family, vrs.Serialize(entity))
}

// Normalize asks the service for the normalized form of rec and constructs the
// returned record locally
func (c vrsClient) Normalize(ctx context.Context, family string, rec record.Record) (types.Entity, error) {
	var err error

	ctx, span := tracer.Start(ctx, "normalize",
		trace.WithAttributes(attribute.String(TraceAttributeFamily, family)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	resp, respBody, err := c.post(ctx, family, "normalize", rec)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		err = NewErrorFromProblemReport(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected response code %d (%w)", resp.StatusCode, ErrInternal)
		return nil, err
	}

	entity, err := vrs.ConstructJSON(family, respBody)
	if err != nil {
		err = fmt.Errorf("normalized response could not be constructed: %w (%w)", err, ErrBadResponse)
		return nil, err
	}

	return entity, nil
}

func (c vrsClient) post(ctx context.Context, family, operation string, rec record.Record) (*http.Response, []byte, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal record: %s (%w)", err.Error(), ErrRequest)
	}

	endpoint := fmt.Sprintf("%s/vrs/v1/families/%s/%s", c.baseURL, url.PathEscape(family), operation)
	return c.callValidator(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
}

func (c vrsClient) callValidator(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, []byte, error) {
	httpClient := http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %s (%w)", err.Error(), ErrInternal)
	}

	req.Header.Add("Accept", "application/json")
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Add("Authorization", "Bearer "+c.token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send request: %s (%w)", err.Error(), ErrRequest)
	}

	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %s (%w)", err.Error(), ErrBadResponse)
	}

	if c.debug && resp.StatusCode >= http.StatusBadRequest && resp.StatusCode != http.StatusUnauthorized {
		reqbytes, _ := httputil.DumpRequest(req, false)
		respbytes, _ := httputil.DumpResponse(resp, false)

		log := logging.GetFromContext(ctx)
		log.Error("request failed", "request", string(reqbytes), "response", string(respbytes))
	}

	return resp, respBody, nil
}
