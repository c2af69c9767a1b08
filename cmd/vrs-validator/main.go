package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/servicerunner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/diwise/vrs/internal/pkg/application/validator"
	"github.com/diwise/vrs/internal/pkg/infrastructure/router"
	vrsapi "github.com/diwise/vrs/internal/pkg/presentation/api/vrs"
)

const serviceName string = "vrs-validator"

func DefaultFlags() FlagMap {
	return FlagMap{
		listenAddress: "",     // listen on all ipv4 and ipv6 interfaces
		servicePort:   "8080", //
		controlPort:   "",     // control port disabled by default

		configPath: "/opt/diwise/config/vrs.yaml",
		opaPath:    "/opt/diwise/config/authz.rego",

		logFormat: "json",
	}
}

func main() {
	ctx, flags := parseExternalConfig(context.Background(), DefaultFlags())

	serviceVersion := buildinfo.SourceVersion()
	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, flags[logFormat])
	defer cleanup()

	cfg := &AppConfig{}

	if configFile, err := os.Open(flags[configPath]); err == nil {
		cfg.validatorConfig = configFile
	} else {
		logger.Info("no configuration file found, using defaults", "path", flags[configPath])
	}

	policies, err := os.Open(flags[opaPath])
	exitIf(err, logger, "failed to open opa policy file", "path", flags[opaPath])
	cfg.opaConfig = policies

	runner, err := initialize(ctx, flags, cfg)
	exitIf(err, logger, "failed to initialize service runner")

	err = runner.Run(ctx)
	exitIf(err, logger, "failed to start service runner")
}

func initialize(ctx context.Context, flags FlagMap, cfg *AppConfig) (servicerunner.Runner[AppConfig], error) {
	var err error

	validatorConfig := validator.DefaultConfiguration()
	if cfg.validatorConfig != nil {
		defer cfg.validatorConfig.Close()

		validatorConfig, err = validator.LoadConfiguration(cfg.validatorConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	if cfg.opaConfig == nil {
		return nil, errors.New("an opa policy is required")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	app, err := validator.New(validatorConfig, registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create validator: %w", err)
	}

	_, runner := servicerunner.New(ctx, *cfg,
		ifnot(flags[controlPort] == "",
			webserver("control", listen(flags[listenAddress]), port(flags[controlPort]),
				pprof(), liveness(func() error { return nil }),
				muxinit(func(_ context.Context, _, servingPort string, svcCfg *AppConfig, _ *http.ServeMux) error {
					svcCfg.controlPort = servingPort
					return nil
				}),
			)),
		webserver("public", listen(flags[listenAddress]), port(flags[servicePort]),
			muxinit(func(ctx context.Context, _, servingPort string, svcCfg *AppConfig, handler *http.ServeMux) error {
				defer svcCfg.opaConfig.Close()

				r := router.New(serviceName, router.WithMetrics(registry))

				err := vrsapi.RegisterHandlers(ctx, r, svcCfg.opaConfig, app,
					vrsapi.WithMaxBodySize(validatorConfig.API.MaxBodySize),
				)
				if err != nil {
					return fmt.Errorf("failed to register api handlers: %w", err)
				}

				handler.Handle("/", r)
				svcCfg.publicPort = servingPort

				return nil
			}),
		),
	)

	return runner, nil
}

var ifnot = servicerunner.IfNot[AppConfig]
var webserver = servicerunner.WithHTTPServeMux[AppConfig]
var muxinit = servicerunner.OnMuxInit[AppConfig]
var listen = servicerunner.WithListenAddr[AppConfig]
var port = servicerunner.WithPort[AppConfig]
var pprof = servicerunner.WithPPROF[AppConfig]
var liveness = servicerunner.WithK8SLivenessProbe[AppConfig]

func parseExternalConfig(ctx context.Context, flags FlagMap) (context.Context, FlagMap) {
	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefault
	flags[listenAddress] = envOrDef(ctx, "LISTEN_ADDRESS", flags[listenAddress])
	flags[servicePort] = envOrDef(ctx, "SERVICE_PORT", flags[servicePort])
	flags[controlPort] = envOrDef(ctx, "CONTROL_PORT", flags[controlPort])
	flags[configPath] = envOrDef(ctx, "VRS_CONFIG_PATH", flags[configPath])
	flags[opaPath] = envOrDef(ctx, "VRS_POLICY_PATH", flags[opaPath])
	flags[logFormat] = envOrDef(ctx, "LOG_FORMAT", flags[logFormat])

	apply := func(f FlagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("config", "path to the validator configuration file", apply(configPath))
	flag.Func("policies", "path to an authorization policy file", apply(opaPath))
	flag.Func("port", "port to serve the api on", apply(servicePort))
	flag.Func("control-port", "port to serve health checks and pprof on", apply(controlPort))
	flag.Parse()

	return ctx, flags
}

func exitIf(err error, logger *slog.Logger, msg string, args ...any) {
	if err != nil {
		logger.With(args...).Error(msg, "err", err.Error())
		os.Exit(1)
	}
}
