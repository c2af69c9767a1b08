package main

import "io"

type FlagType int
type FlagMap map[FlagType]string

const (
	listenAddress FlagType = iota
	servicePort
	controlPort

	configPath
	opaPath

	logFormat
)

type AppConfig struct {
	validatorConfig io.ReadCloser
	opaConfig       io.ReadCloser

	publicPort  string
	controlPort string
}
