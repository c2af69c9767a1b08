package vrsapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	"github.com/diwise/vrs/internal/pkg/application/validator"
	"github.com/diwise/vrs/internal/pkg/presentation/api/vrs/auth"
)

const (
	ContentTypeJSON string = "application/json"
	ContentTypeYAML string = "application/yaml"

	TraceAttributeFamily string = "vrs-family"

	DefaultMaxBodySize int64 = 1 << 20
)

type apiConfig struct {
	maxBodySize int64
}

type Option func(*apiConfig)

// WithMaxBodySize limits the size of request bodies. Non-positive limits are ignored.
func WithMaxBodySize(limit int64) Option {
	return func(cfg *apiConfig) {
		if limit > 0 {
			cfg.maxBodySize = limit
		}
	}
}

func RegisterHandlers(ctx context.Context, r chi.Router, policies io.Reader, app validator.Validator, options ...Option) error {
	cfg := &apiConfig{maxBodySize: DefaultMaxBodySize}
	for _, option := range options {
		option(cfg)
	}

	authenticator, err := auth.NewAuthenticator(ctx, policies)
	if err != nil {
		return fmt.Errorf("failed to create api authenticator: %w", err)
	}

	logger := logging.GetFromContext(ctx)

	r.Route("/vrs/v1", func(r chi.Router) {
		r.Use(
			Logger(logger),
			RequiredContentTypes([]string{ContentTypeJSON, ContentTypeYAML, "application/x-yaml"}),
			MaxBodySize(cfg.maxBodySize),
		)

		r.Get("/families", NewListFamiliesHandler(app, authenticator))

		r.Route("/families/{family}", func(r chi.Router) {
			r.Post("/validate", NewValidateHandler(app, authenticator))
			r.Post("/normalize", NewNormalizeHandler(app, authenticator))
		})
	})

	return nil
}

func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(
				trace.SpanFromContext(ctx),
				logger,
				ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequiredContentTypes(validTypes []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType := r.Header.Get("Content-Type")
			isValidContentType := true

			if len(contentType) > 0 {
				isValidContentType = false

				for _, t := range validTypes {
					if strings.HasPrefix(contentType, t) {
						isValidContentType = true
						break
					}
				}
			}

			if isValidContentType {
				next.ServeHTTP(w, r)
			} else {
				http.Error(w, "unsupported media type", http.StatusUnsupportedMediaType)
			}
		})
	}
}

func MaxBodySize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isYAML(mediaType string) bool {
	return strings.HasPrefix(mediaType, ContentTypeYAML) || strings.HasPrefix(mediaType, "application/x-yaml")
}
