package config

import (
	"github.com/m-kurosawa/ahasync/pkg/domain/interfaces"
	"github.com/m-kurosawa/ahasync/pkg/infra/notion"
	"github.com/urfave/cli/v3"
)

// Notion holds target API configuration
type Notion struct {
	Token      string `masq:"secret"`
	ReleasesDB string
	FeaturesDB string
}

// Flags returns CLI flags for target API configuration
func (c *Notion) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "notion-token",
			Usage:       "Notion integration token",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("AHASYNC_NOTION_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "notion-releases-db",
			Usage:       "Notion database ID of the Releases collection",
			Required:    true,
			Destination: &c.ReleasesDB,
			Sources:     cli.EnvVars("AHASYNC_NOTION_RELEASES_DB"),
		},
		&cli.StringFlag{
			Name:        "notion-features-db",
			Usage:       "Notion database ID of the Features collection",
			Required:    true,
			Destination: &c.FeaturesDB,
			Sources:     cli.EnvVars("AHASYNC_NOTION_FEATURES_DB"),
		},
	}
}

// Client builds the target store client from this configuration
func (c *Notion) Client() interfaces.TargetStore {
	return notion.New(c.Token)
}
