package config

import "github.com/urfave/cli/v3"

// Notify holds optional error-reporting and notification configuration
type Notify struct {
	SentryDSN       string
	SlackWebhookURL string `masq:"secret"`
}

// Flags returns CLI flags for notification configuration
func (c *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for fatal error reporting (disabled when empty)",
			Destination: &c.SentryDSN,
			Sources:     cli.EnvVars("AHASYNC_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming-webhook URL for run summaries (disabled when empty)",
			Destination: &c.SlackWebhookURL,
			Sources:     cli.EnvVars("AHASYNC_SLACK_WEBHOOK_URL"),
		},
	}
}
