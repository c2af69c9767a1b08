package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	vrserrors "github.com/diwise/vrs/pkg/vrs/errors"
	"github.com/diwise/vrs/pkg/vrs/record"
	"github.com/diwise/vrs/pkg/vrs/registry"
	"github.com/diwise/vrs/pkg/vrs/types"
)

var ErrUnknownFamily = fmt.Errorf("unknown family")
var ErrFamilyNotAllowed = fmt.Errorf("family not allowed")

const (
	TraceAttributeFamily string = "vrs-family"
	TraceAttributeType   string = "vrs-type"
)

var tracer = otel.Tracer("vrs-validator/app")

//go:generate moq -rm -out validator_mock.go . Validator

type Validator interface {
	// Validate constructs the record as a member of family and discards the result
	Validate(ctx context.Context, family string, rec record.Record) error
	// Normalize constructs the record and returns its serialized form, with
	// defaults such as omitted type discriminators filled in
	Normalize(ctx context.Context, family string, rec record.Record) (record.Record, error)
	// Families lists the families that this validator accepts, with their types
	Families(ctx context.Context) []FamilyInfo
}

type FamilyInfo struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

type validatorImpl struct {
	cfg           *Config
	policy        record.Policy
	constructions *prometheus.CounterVec
}

// New creates a Validator and registers its metrics with reg. A nil reg skips
// registration.
func New(cfg *Config, reg prometheus.Registerer) (Validator, error) {
	if cfg == nil {
		cfg = DefaultConfiguration()
	}

	for _, family := range cfg.Families {
		if !registry.Known(family) {
			return nil, fmt.Errorf("configured family %q: %w", family, ErrUnknownFamily)
		}
	}

	v := &validatorImpl{
		cfg:    cfg,
		policy: cfg.Policy(),
		constructions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vrs_constructions_total",
				Help: "Number of constructed records by family and outcome.",
			},
			[]string{"family", "outcome"},
		),
	}

	if reg != nil {
		if err := reg.Register(v.constructions); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	return v, nil
}

func (v *validatorImpl) Validate(ctx context.Context, family string, rec record.Record) error {
	_, err := v.construct(ctx, "validate", family, rec)
	return err
}

func (v *validatorImpl) Normalize(ctx context.Context, family string, rec record.Record) (record.Record, error) {
	e, err := v.construct(ctx, "normalize", family, rec)
	if err != nil {
		return nil, err
	}
	return e.Record(), nil
}

func (v *validatorImpl) Families(ctx context.Context) []FamilyInfo {
	names := append(registry.Families(), registry.Types()...)

	result := []FamilyInfo{}
	for _, name := range names {
		if v.cfg.Allows(name) {
			result = append(result, FamilyInfo{Name: name, Types: registry.Leaves(name)})
		}
	}

	return result
}

func (v *validatorImpl) construct(ctx context.Context, operation, family string, rec record.Record) (types.Entity, error) {
	var err error

	ctx, span := tracer.Start(ctx, operation, trace.WithAttributes(attribute.String(TraceAttributeFamily, family)))
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx).With(slog.String("family", family))

	if !registry.Known(family) {
		err = fmt.Errorf("%q: %w", family, ErrUnknownFamily)
		v.constructions.WithLabelValues("unknown", "rejected").Inc()
		return nil, err
	}

	if !v.cfg.Allows(family) {
		err = fmt.Errorf("%q: %w", family, ErrFamilyNotAllowed)
		v.constructions.WithLabelValues(family, "rejected").Inc()
		return nil, err
	}

	var e types.Entity
	e, err = registry.ConstructWithPolicy(family, rec, v.policy)
	if err != nil {
		v.constructions.WithLabelValues(family, "invalid").Inc()

		var ve *vrserrors.ValidationError
		if errors.As(err, &ve) {
			log.Debug("record failed validation", slog.String("path", ve.Path()), "err", err.Error())
		} else {
			log.Error("construction failed", "err", err.Error())
		}

		return nil, err
	}

	span.SetAttributes(attribute.String(TraceAttributeType, e.Type()))
	v.constructions.WithLabelValues(family, "valid").Inc()
	log.Debug("record is valid", slog.String("type", e.Type()))

	return e, nil
}
