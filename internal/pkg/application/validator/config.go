package validator

import (
	"io"

	yaml "gopkg.in/yaml.v2"

	"github.com/diwise/vrs/pkg/vrs/record"
)

type ValidationConfig struct {
	MaxDepth   int  `yaml:"maxDepth"`
	CollectAll bool `yaml:"collectAll"`
}

// APIConfig holds limits applied by the http api. Zero values mean defaults.
type APIConfig struct {
	MaxBodySize int64 `yaml:"maxBodySize"`
}

type Config struct {
	Validation ValidationConfig `yaml:"validation"`
	API        APIConfig        `yaml:"api"`
	// Families limits the families that can be validated. All families are
	// allowed if the list is empty.
	Families []string `yaml:"families"`
}

func (c *Config) Policy() record.Policy {
	return record.NewPolicy(
		record.MaxDepth(c.Validation.MaxDepth),
		record.CollectAll(c.Validation.CollectAll),
	)
}

func (c *Config) Allows(family string) bool {
	if len(c.Families) == 0 {
		return true
	}

	for _, f := range c.Families {
		if f == family {
			return true
		}
	}

	return false
}

func DefaultConfiguration() *Config {
	return &Config{Validation: ValidationConfig{MaxDepth: record.DefaultMaxDepth}}
}

func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfiguration()
	err = yaml.Unmarshal(buf, &cfg)

	return cfg, err
}
