package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/diwise/service-chassis/pkg/infrastructure/servicerunner"
	"github.com/matryer/is"

	"github.com/diwise/vrs/pkg/vrs/client"
	vrserrors "github.com/diwise/vrs/pkg/vrs/errors"
	"github.com/diwise/vrs/pkg/vrs/record"
)

var dowork = servicerunner.WithWorker[AppConfig]

func DefaultTestFlags() FlagMap {
	return FlagMap{
		listenAddress: "",  // listen on all ipv4 and ipv6 interfaces
		servicePort:   "0", //
		controlPort:   "",  // control port disabled by default

		logFormat: "json",
	}
}

func TestIntegrateValidateReportsAllViolations(t *testing.T) {
	is := is.New(t)
	ctx, cancelTest := context.WithCancel(t.Context())

	app, err := initialize(ctx, DefaultTestFlags(), newTestAppConfig())
	is.NoErr(err)

	app.Run(ctx, dowork(func(ctx context.Context, appConfig *AppConfig) error {
		defer cancelTest()

		c := newTestClient(appConfig)
		err := c.Validate(ctx, "Variation", record.Record{
			"type":    "Haplotype",
			"members": []any{map[string]any{"type": "Allele", "colour": "red"}},
		})

		is.True(errors.Is(err, vrserrors.ErrUnexpectedField))
		is.True(errors.Is(err, vrserrors.ErrMissingRequiredField))

		return nil
	}))
}

func TestIntegrateNormalize(t *testing.T) {
	is := is.New(t)
	ctx, cancelTest := context.WithCancel(t.Context())

	app, err := initialize(ctx, DefaultTestFlags(), newTestAppConfig())
	is.NoErr(err)

	app.Run(ctx, dowork(func(ctx context.Context, appConfig *AppConfig) error {
		defer cancelTest()

		c := newTestClient(appConfig)
		e, err := c.Normalize(ctx, "Location", record.Record{
			"type":  "ChromosomeLocation",
			"chr":   "19",
			"start": "q13.32",
			"end":   "q13.33",
		})

		is.NoErr(err)
		is.Equal(e.Type(), "ChromosomeLocation")

		return nil
	}))
}

func TestIntegrateFamilyOutsideAllowList(t *testing.T) {
	is := is.New(t)
	ctx, cancelTest := context.WithCancel(t.Context())

	app, err := initialize(ctx, DefaultTestFlags(), newTestAppConfig())
	is.NoErr(err)

	app.Run(ctx, dowork(func(ctx context.Context, appConfig *AppConfig) error {
		defer cancelTest()

		c := newTestClient(appConfig)
		err := c.Validate(ctx, "CopyNumber", record.Record{"type": "RelativeCopyNumber"})

		is.True(errors.Is(err, client.ErrFamilyNotAllowed))

		return nil
	}))
}

func TestIntegrateMetrics(t *testing.T) {
	is := is.New(t)
	ctx, cancelTest := context.WithCancel(t.Context())

	app, err := initialize(ctx, DefaultTestFlags(), newTestAppConfig())
	is.NoErr(err)

	app.Run(ctx, dowork(func(ctx context.Context, appConfig *AppConfig) error {
		defer cancelTest()

		c := newTestClient(appConfig)
		_ = c.Validate(ctx, "Location", record.Record{"type": "ChromosomeLocation"})

		response, responseBody := testRequest(appConfig.publicPort, http.MethodGet, "/metrics", nil)

		is.Equal(response.StatusCode, http.StatusOK)
		is.True(strings.Contains(responseBody, `vrs_constructions_total{family="Location",outcome="invalid"} 1`))

		return nil
	}))
}

func TestIntegrateOversizedBodyIsRejected(t *testing.T) {
	is := is.New(t)
	ctx, cancelTest := context.WithCancel(t.Context())

	cfg := newTestAppConfig()
	cfg.validatorConfig = io.NopCloser(strings.NewReader(validatorConfigYAML + "api:\n  maxBodySize: 64\n"))

	app, err := initialize(ctx, DefaultTestFlags(), cfg)
	is.NoErr(err)

	app.Run(ctx, dowork(func(ctx context.Context, appConfig *AppConfig) error {
		defer cancelTest()

		c := newTestClient(appConfig)
		err := c.Validate(ctx, "Location", record.Record{
			"type": "ChromosomeLocation",
			"chr":  strings.Repeat("1", 128),
		})

		is.True(errors.Is(err, client.ErrRequest))

		return nil
	}))
}

func TestControlPortServesLiveness(t *testing.T) {
	is := is.New(t)
	ctx, cancelTest := context.WithCancel(t.Context())

	flags := DefaultTestFlags()
	flags[controlPort] = "0"

	app, err := initialize(ctx, flags, newTestAppConfig())
	is.NoErr(err)

	app.Run(ctx, dowork(func(ctx context.Context, appConfig *AppConfig) error {
		defer cancelTest()

		is.True(appConfig.controlPort != "")
		is.True(appConfig.controlPort != appConfig.publicPort)

		response, _ := testRequest(appConfig.controlPort, http.MethodGet, "/livez", nil)
		is.Equal(response.StatusCode, http.StatusNoContent)

		response, _ = testRequest(appConfig.publicPort, http.MethodGet, "/livez", nil)
		is.Equal(response.StatusCode, http.StatusNotFound)

		return nil
	}))
}

func TestControlPortIsDisabledByDefault(t *testing.T) {
	is := is.New(t)
	ctx, cancelTest := context.WithCancel(t.Context())

	app, err := initialize(ctx, DefaultTestFlags(), newTestAppConfig())
	is.NoErr(err)

	app.Run(ctx, dowork(func(ctx context.Context, appConfig *AppConfig) error {
		defer cancelTest()

		is.Equal(appConfig.controlPort, "")
		is.True(appConfig.publicPort != "")

		return nil
	}))
}

func TestInitializeRequiresPolicies(t *testing.T) {
	is := is.New(t)

	_, err := initialize(t.Context(), DefaultTestFlags(), &AppConfig{})
	is.True(err != nil)
}

func TestInvalidPoliciesFailTheRunner(t *testing.T) {
	is := is.New(t)

	cfg := newTestAppConfig()
	cfg.opaConfig = io.NopCloser(strings.NewReader("package broken\n\nallow {"))

	app, err := initialize(t.Context(), DefaultTestFlags(), cfg)
	is.NoErr(err)

	err = app.Run(t.Context())
	is.True(err != nil)
}

func newTestClient(appConfig *AppConfig) client.ValidationClient {
	return client.NewValidationClient("http://127.0.0.1:" + appConfig.publicPort)
}

func testRequest(port, method, path string, body io.Reader) (*http.Response, string) {
	req, _ := http.NewRequest(method, fmt.Sprintf("http://127.0.0.1:%s%s", port, path), body)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, ""
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	return resp, string(respBody)
}

func newTestAppConfig() *AppConfig {
	return &AppConfig{
		validatorConfig: io.NopCloser(strings.NewReader(validatorConfigYAML)),
		opaConfig:       io.NopCloser(bytes.NewBufferString(opaModule)),
	}
}

const validatorConfigYAML string = `
validation:
  maxDepth: 16
  collectAll: true
families:
  - Variation
  - Location
`

const opaModule string = `
package example.authz

default allow := false

allow = response {
    response := {
    }
}
`
