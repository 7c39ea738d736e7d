package config

import (
	"os"

	"github.com/m-kurosawa/ahasync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Policy holds the tracked-field policy table location
type Policy struct {
	Path string
}

// Flags returns CLI flags for field-policy configuration
func (c *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "field-policy",
			Usage:       "TOML file overriding the tracked-field / empty-value policy table",
			Destination: &c.Path,
			Sources:     cli.EnvVars("AHASYNC_FIELD_POLICY"),
		},
	}
}

// Load returns the field policy: the built-in defaults, overlaid with
// the TOML file when one is configured. Keys absent from the file keep
// their default values.
func (c *Policy) Load() (model.FieldPolicy, error) {
	policy := model.DefaultFieldPolicy()
	if c.Path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return policy, goerr.Wrap(err, "failed to read field policy file", goerr.V("path", c.Path))
	}
	if err := toml.Unmarshal(data, &policy); err != nil {
		return policy, goerr.Wrap(err, "failed to parse field policy file", goerr.V("path", c.Path))
	}

	return policy, nil
}
