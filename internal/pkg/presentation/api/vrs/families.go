package vrsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/diwise/vrs/internal/pkg/application/validator"
	"github.com/diwise/vrs/internal/pkg/presentation/api/vrs/auth"
	problems "github.com/diwise/vrs/internal/pkg/presentation/api/vrs/errors"
	"github.com/diwise/vrs/pkg/vrs"
	vrserrors "github.com/diwise/vrs/pkg/vrs/errors"
	"github.com/diwise/vrs/pkg/vrs/record"
)

var tracer = otel.Tracer("vrs-validator/api/families")

// NewListFamiliesHandler handles GET requests for the families that can be validated
func NewListFamiliesHandler(app validator.Validator, authenticator auth.Enticator) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "list-families")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		traceID, ctx, log := startRequest(ctx, span)

		err = authenticator.CheckAccess(ctx, r, "")
		if err != nil {
			log.Warn("access denied", "err", err.Error())
			problems.ReportUnauthorizedRequest(w, err.Error(), traceID)
			return
		}

		body, err := json.Marshal(app.Families(ctx))
		if err != nil {
			problems.ReportNewInternalError(w, err.Error(), traceID)
			return
		}

		w.Header().Add("Content-Type", ContentTypeJSON)
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})
}

// NewValidateHandler handles POST requests that validate a record as a member of a family
func NewValidateHandler(app validator.Validator, authenticator auth.Enticator) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "validate")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		family := familyFromRequest(r, span)
		traceID, ctx, log := startRequest(ctx, span, "family", family)

		err = authenticator.CheckAccess(ctx, r, family)
		if err != nil {
			log.Warn("access denied", "err", err.Error())
			problems.ReportUnauthorizedRequest(w, err.Error(), traceID)
			return
		}

		rec, err := decodeRecord(r)
		if err != nil {
			reportBadRequest(w, err, traceID)
			return
		}

		err = app.Validate(ctx, family, rec)
		if err != nil {
			reportError(w, log, err, traceID)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// NewNormalizeHandler handles POST requests that validate a record and respond
// with its serialized form
func NewNormalizeHandler(app validator.Validator, authenticator auth.Enticator) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "normalize")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		family := familyFromRequest(r, span)
		traceID, ctx, log := startRequest(ctx, span, "family", family)

		err = authenticator.CheckAccess(ctx, r, family)
		if err != nil {
			log.Warn("access denied", "err", err.Error())
			problems.ReportUnauthorizedRequest(w, err.Error(), traceID)
			return
		}

		rec, err := decodeRecord(r)
		if err != nil {
			reportBadRequest(w, err, traceID)
			return
		}

		normalized, err := app.Normalize(ctx, family, rec)
		if err != nil {
			reportError(w, log, err, traceID)
			return
		}

		contentType := ContentTypeJSON
		var body []byte

		if isYAML(r.Header.Get("Accept")) {
			contentType = ContentTypeYAML
			body, err = yaml.Marshal(record.PlainNumbers(normalized))
		} else {
			body, err = json.Marshal(normalized)
		}

		if err != nil {
			problems.ReportNewInternalError(w, err.Error(), traceID)
			return
		}

		w.Header().Add("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})
}

func familyFromRequest(r *http.Request, span trace.Span) string {
	family := chi.URLParam(r, "family")

	span.SetAttributes(attribute.String(TraceAttributeFamily, family))
	if labeler, found := otelhttp.LabelerFromContext(r.Context()); found {
		labeler.Add(attribute.String(TraceAttributeFamily, family))
	}

	return family
}

// startRequest stores a logger with the trace id in the context. Requests that
// are not traced get a random id so that problem reports can still be matched
// with log entries.
func startRequest(ctx context.Context, span trace.Span, kv ...any) (string, context.Context, *slog.Logger) {
	logger := logging.GetFromContext(ctx)
	if len(kv) > 0 {
		logger = logger.With(kv...)
	}

	traceID, ctx, logger := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)
	if traceID == "" {
		traceID = uuid.NewString()
		logger = logger.With(slog.String("traceID", traceID))
		ctx = logging.NewContextWithLogger(ctx, logger)
	}

	return traceID, ctx, logger
}

func decodeRecord(r *http.Request) (record.Record, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read request body: %w", err)
	}
	defer r.Body.Close()

	if isYAML(r.Header.Get("Content-Type")) {
		return vrs.DecodeYAML(body)
	}

	return vrs.DecodeJSON(body)
}

func reportBadRequest(w http.ResponseWriter, err error, traceID string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		problems.ReportRequestTooLarge(w, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), traceID)
		return
	}
	problems.ReportNewBadRequestData(w, err.Error(), traceID)
}

func reportError(w http.ResponseWriter, log *slog.Logger, err error, traceID string) {
	switch {
	case errors.Is(err, validator.ErrUnknownFamily):
		problems.ReportUnknownFamily(w, err.Error(), traceID)
	case errors.Is(err, validator.ErrFamilyNotAllowed):
		problems.ReportFamilyNotAllowed(w, err.Error(), traceID)
	case vrserrors.KindOf(err) != nil:
		problems.ReportValidationProblem(w, err, traceID)
	default:
		log.Error("unexpected error", "err", err.Error())
		problems.ReportNewInternalError(w, err.Error(), traceID)
	}
}
