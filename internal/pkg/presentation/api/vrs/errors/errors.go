package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	vrserrors "github.com/diwise/vrs/pkg/vrs/errors"
)

// ProblemDetails stores details about a certain problem according to RFC7807
// See https://tools.ietf.org/html/rfc7807
type ProblemDetails interface {
	ContentType() string
	Type() string
	Title() string
	Detail() string
	MarshalJSON() ([]byte, error)
	WriteResponse(w http.ResponseWriter)
}

// Violation is a single failed check of a record, reported as an extension
// member of a validation problem
type Violation struct {
	Type   string `json:"type"`
	Path   string `json:"path,omitempty"`
	Detail string `json:"detail"`
}

// ProblemDetailsImpl is an implementation of the ProblemDetails interface
type ProblemDetailsImpl struct {
	typ        string
	title      string
	detail     string
	code       int
	traceID    string
	violations []Violation
}

const (
	// ProblemReportContentType as required by https://tools.ietf.org/html/rfc7807
	ProblemReportContentType string = "application/problem+json"
)

func (p *ProblemDetailsImpl) Type() string   { return p.typ }
func (p *ProblemDetailsImpl) Title() string  { return p.title }
func (p *ProblemDetailsImpl) Detail() string { return p.detail }

func (p *ProblemDetailsImpl) Violations() []Violation {
	return append([]Violation{}, p.violations...)
}

// NewValidationProblem reports every validation error in err. The problem type
// is that of the first error.
func NewValidationProblem(err error, traceID string) *ProblemDetailsImpl {
	violations := []Violation{}
	details := []string{}

	for _, e := range vrserrors.Flatten(err) {
		v := Violation{Detail: e.Error()}

		var ve *vrserrors.ValidationError
		if errors.As(e, &ve) {
			v.Type = vrserrors.ProblemType(ve.Kind())
			v.Path = ve.Path()
			v.Detail = ve.Detail()
		}

		violations = append(violations, v)
		details = append(details, e.Error())
	}

	kind := vrserrors.KindOf(err)
	if kind == nil {
		return NewBadRequestData(strings.Join(details, "; "), traceID)
	}

	name := vrserrors.Name(kind)
	return &ProblemDetailsImpl{
		typ:        vrserrors.ProblemType(kind),
		title:      titleFromName(name),
		detail:     strings.Join(details, "; "),
		code:       http.StatusBadRequest,
		traceID:    traceID,
		violations: violations,
	}
}

// ReportValidationProblem creates a validation problem and sends it to the supplied http.ResponseWriter
func ReportValidationProblem(w http.ResponseWriter, err error, traceID string) {
	NewValidationProblem(err, traceID).WriteResponse(w)
}

func NewBadRequestData(detail, traceID string) *ProblemDetailsImpl {
	return &ProblemDetailsImpl{
		typ:     vrserrors.ProblemTypeBase + "BadRequestData",
		title:   "Bad Request Data",
		detail:  detail,
		code:    http.StatusBadRequest,
		traceID: traceID,
	}
}

// ReportNewBadRequestData creates a BadRequestData problem and sends it to the supplied http.ResponseWriter
func ReportNewBadRequestData(w http.ResponseWriter, detail, traceID string) {
	NewBadRequestData(detail, traceID).WriteResponse(w)
}

func NewRequestTooLarge(detail, traceID string) *ProblemDetailsImpl {
	return &ProblemDetailsImpl{
		typ:     vrserrors.ProblemTypeBase + "RequestTooLarge",
		title:   "Request Too Large",
		detail:  detail,
		code:    http.StatusRequestEntityTooLarge,
		traceID: traceID,
	}
}

// ReportRequestTooLarge creates a RequestTooLarge problem and sends it to the supplied http.ResponseWriter
func ReportRequestTooLarge(w http.ResponseWriter, detail, traceID string) {
	NewRequestTooLarge(detail, traceID).WriteResponse(w)
}

func NewUnknownFamily(detail, traceID string) *ProblemDetailsImpl {
	return &ProblemDetailsImpl{
		typ:     vrserrors.ProblemTypeBase + "UnknownFamily",
		title:   "Unknown Family",
		detail:  detail,
		code:    http.StatusNotFound,
		traceID: traceID,
	}
}

// ReportUnknownFamily creates an UnknownFamily problem and sends it to the supplied http.ResponseWriter
func ReportUnknownFamily(w http.ResponseWriter, detail, traceID string) {
	NewUnknownFamily(detail, traceID).WriteResponse(w)
}

func NewFamilyNotAllowed(detail, traceID string) *ProblemDetailsImpl {
	return &ProblemDetailsImpl{
		typ:     vrserrors.ProblemTypeBase + "FamilyNotAllowed",
		title:   "Family Not Allowed",
		detail:  detail,
		code:    http.StatusForbidden,
		traceID: traceID,
	}
}

// ReportFamilyNotAllowed creates a FamilyNotAllowed problem and sends it to the supplied http.ResponseWriter
func ReportFamilyNotAllowed(w http.ResponseWriter, detail, traceID string) {
	NewFamilyNotAllowed(detail, traceID).WriteResponse(w)
}

func NewUnauthorizedRequest(detail, traceID string) *ProblemDetailsImpl {
	return &ProblemDetailsImpl{
		typ:     vrserrors.ProblemTypeBase + "UnauthorizedRequest",
		title:   "Unauthorized Request",
		detail:  detail,
		code:    http.StatusUnauthorized,
		traceID: traceID,
	}
}

// ReportUnauthorizedRequest creates an UnauthorizedRequest problem and sends it to the supplied http.ResponseWriter
func ReportUnauthorizedRequest(w http.ResponseWriter, detail, traceID string) {
	NewUnauthorizedRequest(detail, traceID).WriteResponse(w)
}

func NewInternalError(detail, traceID string) *ProblemDetailsImpl {
	return &ProblemDetailsImpl{
		typ:     vrserrors.ProblemTypeBase + "InternalError",
		title:   "Internal Error",
		detail:  detail,
		code:    http.StatusInternalServerError,
		traceID: traceID,
	}
}

// ReportNewInternalError creates an InternalError problem and sends it to the supplied http.ResponseWriter
func ReportNewInternalError(w http.ResponseWriter, detail, traceID string) {
	NewInternalError(detail, traceID).WriteResponse(w)
}

// ContentType returns the ContentType to be used when returning this problem
func (p *ProblemDetailsImpl) ContentType() string {
	return ProblemReportContentType
}

// MarshalJSON is called when a ProblemDetailsImpl instance should be serialized to JSON
func (p *ProblemDetailsImpl) MarshalJSON() ([]byte, error) {
	var traceID *string

	if p.traceID != "" {
		traceID = &p.traceID
	}

	return json.Marshal(struct {
		Type       string      `json:"type"`
		Title      string      `json:"title"`
		Detail     string      `json:"detail"`
		TraceID    *string     `json:"traceID,omitempty"`
		Violations []Violation `json:"violations,omitempty"`
	}{
		Type:       p.typ,
		Title:      p.title,
		Detail:     p.detail,
		TraceID:    traceID,
		Violations: p.violations,
	})
}

// ResponseCode returns the HTTP response code to be used when returning a specific problem
func (p *ProblemDetailsImpl) ResponseCode() int {

	if p.code != 0 {
		return p.code
	}

	return http.StatusBadRequest
}

// WriteResponse writes the contents of this instance to a http.ResponseWriter
func (p *ProblemDetailsImpl) WriteResponse(w http.ResponseWriter) {
	w.Header().Add("Content-Type", p.ContentType())
	w.Header().Add("Content-Language", "en")
	w.WriteHeader(p.ResponseCode())

	pdbytes, err := json.MarshalIndent(p, "", "  ")
	if err == nil {
		w.Write(pdbytes)
	}
}

// titleFromName turns a kind name such as ShapeMismatch into "Shape Mismatch"
func titleFromName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
