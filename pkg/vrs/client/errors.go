package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	vrserrors "github.com/diwise/vrs/pkg/vrs/errors"
)

var ErrBadResponse = fmt.Errorf("bad response")
var ErrInternal = fmt.Errorf("internal error")
var ErrRequest = fmt.Errorf("request error")
var ErrUnknownFamily = fmt.Errorf("unknown family")
var ErrFamilyNotAllowed = fmt.Errorf("family not allowed")
var ErrUnauthorized = fmt.Errorf("unauthorized")

// RemoteError is a failure reported by a validation service. It matches the
// sentinel that the problem type maps to when tested with errors.Is.
type RemoteError struct {
	msg    string
	path   string
	target error
}

func (e *RemoteError) Error() string {
	if e.path == "" {
		return e.msg
	}
	return fmt.Sprintf("%s (at %s)", e.msg, e.path)
}

func (e *RemoteError) Is(target error) bool { return target == e.target }

// Path is where in the submitted record the service located the failure
func (e *RemoteError) Path() string { return e.path }

func newRemoteError(target error, path, detail string) error {
	if detail == "" {
		detail = target.Error()
	}
	return &RemoteError{msg: detail, path: path, target: target}
}

// NewErrorFromProblemReport translates an RFC 7807 response into errors that
// match either a validation kind or one of the client sentinels.
func NewErrorFromProblemReport(code int, contentType string, body []byte) error {
	report := &struct {
		Type       string `json:"type"`
		Title      string `json:"title"`
		Detail     string `json:"detail"`
		Violations []struct {
			Type   string `json:"type"`
			Path   string `json:"path"`
			Detail string `json:"detail"`
		} `json:"violations"`
	}{}

	if !strings.HasPrefix(contentType, "application/problem+json") && !strings.HasPrefix(contentType, "application/json") {
		return fmt.Errorf("unexpected content type %q in response with code %d (%w)", contentType, code, ErrBadResponse)
	}

	err := json.Unmarshal(body, report)
	if err != nil {
		return fmt.Errorf("failed to process problem report: %s (%w)", err.Error(), ErrBadResponse)
	}

	if len(report.Violations) > 0 {
		errs := make([]error, 0, len(report.Violations))
		for _, v := range report.Violations {
			kind, ok := vrserrors.KindFromProblemType(v.Type)
			if !ok {
				kind = ErrInternal
			}
			errs = append(errs, newRemoteError(kind, v.Path, v.Detail))
		}
		return errors.Join(errs...)
	}

	if kind, ok := vrserrors.KindFromProblemType(report.Type); ok {
		return newRemoteError(kind, "", report.Detail)
	}

	switch {
	case code == http.StatusNotFound || report.Type == vrserrors.ProblemTypeBase+"UnknownFamily":
		return newRemoteError(ErrUnknownFamily, "", report.Detail)
	case code == http.StatusForbidden || report.Type == vrserrors.ProblemTypeBase+"FamilyNotAllowed":
		return newRemoteError(ErrFamilyNotAllowed, "", report.Detail)
	case code == http.StatusUnauthorized || report.Type == vrserrors.ProblemTypeBase+"UnauthorizedRequest":
		return newRemoteError(ErrUnauthorized, "", report.Detail)
	case code == http.StatusRequestEntityTooLarge || report.Type == vrserrors.ProblemTypeBase+"BadRequestData":
		return newRemoteError(ErrRequest, "", report.Detail)
	}

	return newRemoteError(ErrInternal, "",
		fmt.Sprintf("[code: %d] unknown problem report of type \"%s\" with detail \"%s\" received",
			code, report.Type, report.Detail,
		),
	)
}
