package errors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownDiscriminator = fmt.Errorf("unknown discriminator")
var ErrUnexpectedField = fmt.Errorf("unexpected field")
var ErrMissingRequiredField = fmt.Errorf("missing required field")
var ErrShapeMismatch = fmt.Errorf("shape mismatch")
var ErrInvariantViolation = fmt.Errorf("invariant violation")
var ErrDepthLimitExceeded = fmt.Errorf("depth limit exceeded")

// Kinds lists every validation error kind in a stable order
var Kinds = []error{
	ErrUnknownDiscriminator,
	ErrUnexpectedField,
	ErrMissingRequiredField,
	ErrShapeMismatch,
	ErrInvariantViolation,
	ErrDepthLimitExceeded,
}

// ValidationError reports a single failed check together with the location of the
// offending value inside the input graph.
type ValidationError struct {
	kind   error
	path   []string
	detail string
}

func (e *ValidationError) Error() string {
	if len(e.path) == 0 {
		return fmt.Sprintf("%s: %s", e.kind, e.detail)
	}
	return fmt.Sprintf("%s at %s: %s", e.kind, e.Path(), e.detail)
}

func (e *ValidationError) Is(target error) bool { return target == e.kind }

func (e *ValidationError) Kind() error    { return e.kind }
func (e *ValidationError) Detail() string { return e.detail }

// Segments returns a copy of the path segments. Field names are plain strings and
// list positions are rendered as "[i]".
func (e *ValidationError) Segments() []string {
	return append([]string(nil), e.path...)
}

// Path renders the segments as e.g. members[0].location.start
func (e *ValidationError) Path() string {
	return JoinPath(e.path)
}

func New(kind error, path []string, format string, args ...any) *ValidationError {
	return &ValidationError{
		kind:   kind,
		path:   append([]string(nil), path...),
		detail: fmt.Sprintf(format, args...),
	}
}

func NewUnknownDiscriminatorError(format string, args ...any) error {
	return New(ErrUnknownDiscriminator, nil, format, args...)
}

func NewUnexpectedFieldError(field string) error {
	return New(ErrUnexpectedField, []string{field}, "field %q is not declared", field)
}

func NewMissingRequiredFieldError(field string) error {
	return New(ErrMissingRequiredField, []string{field}, "field %q is required", field)
}

func NewShapeMismatchError(field string, format string, args ...any) error {
	var path []string
	if field != "" {
		path = []string{field}
	}
	return New(ErrShapeMismatch, path, format, args...)
}

func NewInvariantViolationError(path []string, format string, args ...any) error {
	return New(ErrInvariantViolation, path, format, args...)
}

func NewDepthLimitExceededError(limit int) error {
	return New(ErrDepthLimitExceeded, nil, "nesting deeper than %d levels", limit)
}

// Index renders a list position as a path segment
func Index(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

func JoinPath(segments []string) string {
	var b strings.Builder
	for _, s := range segments {
		if b.Len() > 0 && !strings.HasPrefix(s, "[") {
			b.WriteByte('.')
		}
		b.WriteString(s)
	}
	return b.String()
}

// Within prefixes the path of every validation error carried by err with the
// supplied segments. Errors joined with errors.Join are rewritten one by one.
func Within(err error, segments ...string) error {
	if err == nil || len(segments) == 0 {
		return err
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs := joined.Unwrap()
		prefixed := make([]error, 0, len(errs))
		for _, e := range errs {
			prefixed = append(prefixed, Within(e, segments...))
		}
		return errors.Join(prefixed...)
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		path := make([]string, 0, len(segments)+len(ve.path))
		path = append(path, segments...)
		path = append(path, ve.path...)
		return &ValidationError{kind: ve.kind, path: path, detail: ve.detail}
	}

	return err
}

// Flatten returns the individual errors of a (possibly joined) error
func Flatten(err error) []error {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		result := []error{}
		for _, e := range joined.Unwrap() {
			result = append(result, Flatten(e)...)
		}
		return result
	}

	return []error{err}
}

// KindOf returns the sentinel kind of the first validation error in err, or nil
func KindOf(err error) error {
	for _, e := range Flatten(err) {
		var ve *ValidationError
		if errors.As(e, &ve) {
			return ve.kind
		}
	}
	return nil
}

// ProblemTypeBase prefixes the problem type URI of every validation error kind
const ProblemTypeBase string = "https://diwise.io/vrs/errors/"

var kindNames = map[error]string{
	ErrUnknownDiscriminator: "UnknownDiscriminator",
	ErrUnexpectedField:      "UnexpectedField",
	ErrMissingRequiredField: "MissingRequiredField",
	ErrShapeMismatch:        "ShapeMismatch",
	ErrInvariantViolation:   "InvariantViolation",
	ErrDepthLimitExceeded:   "DepthLimitExceeded",
}

// Name returns the short name of a validation error kind, e.g. ShapeMismatch
func Name(kind error) string {
	return kindNames[kind]
}

// ProblemType returns the RFC 7807 problem type URI used for a kind
func ProblemType(kind error) string {
	if name, ok := kindNames[kind]; ok {
		return ProblemTypeBase + name
	}
	return ""
}

// KindFromProblemType is the inverse of ProblemType
func KindFromProblemType(typ string) (error, bool) {
	for kind, name := range kindNames {
		if typ == ProblemTypeBase+name {
			return kind, true
		}
	}
	return nil, false
}
