package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"

	problems "github.com/diwise/vrs/internal/pkg/presentation/api/vrs/errors"
	"github.com/diwise/vrs/pkg/vrs"
	vrserrors "github.com/diwise/vrs/pkg/vrs/errors"
	"github.com/diwise/vrs/pkg/vrs/record"
	"github.com/diwise/vrs/pkg/vrs/types"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var anyInput = expects.AnyInput
var method = expects.RequestMethod
var path = expects.RequestPath
var body = expects.RequestBody

func TestListFamilies(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, method(http.MethodGet), path("/vrs/v1/families")),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`[{"name":"CopyNumber","types":["AbsoluteCopyNumber","RelativeCopyNumber"]}]`)),
		),
	)
	defer s.Close()

	c := NewValidationClient(s.URL())

	families, err := c.Families(context.Background())
	is.NoErr(err)
	is.Equal(len(families), 1)
	is.Equal(families[0].Name, "CopyNumber")
	is.Equal(families[0].Types, []string{"AbsoluteCopyNumber", "RelativeCopyNumber"})
}

func TestValidate(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPost),
			path("/vrs/v1/families/Location/validate"),
			body(`{"chr":"19","end":"q13.33","start":"q13.32","type":"ChromosomeLocation"}`),
		),
		Returns(response.Code(http.StatusNoContent)),
	)
	defer s.Close()

	c := NewValidationClient(s.URL())

	err := c.Validate(context.Background(), "Location", record.Record{
		"type":  "ChromosomeLocation",
		"chr":   "19",
		"start": "q13.32",
		"end":   "q13.33",
	})
	is.NoErr(err)
}

func TestValidateEntitySendsSerializedForm(t *testing.T) {
	is := is.New(t)

	e, err := vrs.ConstructJSON("Location", []byte(`{"type":"ChromosomeLocation","chr":"19","start":"q13.32","end":"q13.33"}`))
	is.NoErr(err)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			path("/vrs/v1/families/Location/validate"),
			body(`{"chr":"19","end":"q13.33","species_id":"taxonomy:9606","start":"q13.32","type":"ChromosomeLocation"}`),
		),
		Returns(response.Code(http.StatusNoContent)),
	)
	defer s.Close()

	c := NewValidationClient(s.URL())

	is.NoErr(c.ValidateEntity(context.Background(), "Location", e))
}

func TestValidateThrowsErrorOnUnexpectedSuccessCode(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(response.Code(http.StatusOK)),
	)
	defer s.Close()

	c := NewValidationClient(s.URL())

	err := c.Validate(context.Background(), "Location", record.Record{})

	is.True(err != nil)
	is.Equal(err.Error(), "unexpected response code 200 (internal error)")
}

func TestValidateMapsViolationsToValidationKinds(t *testing.T) {
	is := is.New(t)

	verr := errors.Join(
		vrserrors.Within(vrserrors.NewMissingRequiredFieldError("state"), "members", vrserrors.Index(0)),
		vrserrors.NewUnexpectedFieldError("colour"),
	)
	b, _ := json.Marshal(problems.NewValidationProblem(verr, "traceID"))

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType("application/problem+json"),
			response.Code(http.StatusBadRequest),
			response.Body(b),
		),
	)
	defer s.Close()

	c := NewValidationClient(s.URL())

	err := c.Validate(context.Background(), "Variation", record.Record{"type": "Haplotype"})

	is.True(errors.Is(err, vrserrors.ErrMissingRequiredField))
	is.True(errors.Is(err, vrserrors.ErrUnexpectedField))
	is.True(!errors.Is(err, vrserrors.ErrShapeMismatch))

	var remote *RemoteError
	is.True(errors.As(err, &remote))
	is.Equal(remote.Path(), "members[0].state")
}

func TestValidateHandlesUnknownFamily(t *testing.T) {
	is := is.New(t)

	b, _ := json.Marshal(problems.NewUnknownFamily("no such family", "traceID"))

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType("application/problem+json"),
			response.Code(http.StatusNotFound),
			response.Body(b),
		),
	)
	defer s.Close()

	c := NewValidationClient(s.URL())

	err := c.Validate(context.Background(), "Nope", record.Record{})
	is.True(errors.Is(err, ErrUnknownFamily))
}

func TestNormalize(t *testing.T) {
	is := is.New(t)

	normalized := `{"chr":"19","end":"q13.33","species_id":"taxonomy:9606","start":"q13.32","type":"ChromosomeLocation"}`

	s := testutils.NewMockServiceThat(
		Expects(is, method(http.MethodPost), path("/vrs/v1/families/Location/normalize")),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(normalized)),
		),
	)
	defer s.Close()

	c := NewValidationClient(s.URL())

	e, err := c.Normalize(context.Background(), "Location", record.Record{
		"type":  "ChromosomeLocation",
		"chr":   "19",
		"start": "q13.32",
		"end":   "q13.33",
	})
	is.NoErr(err)

	loc, ok := e.(*types.ChromosomeLocation)
	is.True(ok)
	is.Equal(loc.SpeciesID(), "taxonomy:9606")
}

func TestNormalizeRejectsMalformedResponse(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`{"type":"ChromosomeLocation"}`)),
		),
	)
	defer s.Close()

	c := NewValidationClient(s.URL())

	_, err := c.Normalize(context.Background(), "Location", record.Record{})
	is.True(errors.Is(err, ErrBadResponse))
	is.True(errors.Is(err, vrserrors.ErrMissingRequiredField))
}

func TestNewErrorFromProblemReportRejectsUnknownContentType(t *testing.T) {
	is := is.New(t)

	err := NewErrorFromProblemReport(http.StatusBadGateway, "text/html", []byte("<html></html>"))
	is.True(errors.Is(err, ErrBadResponse))
}
