package config

import (
	"github.com/m-kurosawa/ahasync/pkg/domain/interfaces"
	"github.com/m-kurosawa/ahasync/pkg/infra/aha"
	"github.com/urfave/cli/v3"
)

// Aha holds source API configuration
type Aha struct {
	URL    string
	APIKey string `masq:"secret"`
}

// Flags returns CLI flags for source API configuration
func (c *Aha) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "aha-url",
			Usage:       "Aha! account base URL (e.g. https://example.aha.io)",
			Required:    true,
			Destination: &c.URL,
			Sources:     cli.EnvVars("AHASYNC_AHA_URL"),
		},
		&cli.StringFlag{
			Name:        "aha-api-key",
			Usage:       "Aha! API bearer token",
			Required:    true,
			Destination: &c.APIKey,
			Sources:     cli.EnvVars("AHASYNC_AHA_API_KEY"),
		},
	}
}

// Client builds the source client from this configuration
func (c *Aha) Client() interfaces.SourceClient {
	return aha.New(c.URL, c.APIKey)
}
