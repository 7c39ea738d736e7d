package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/getsentry/sentry-go"
	"github.com/m-kurosawa/ahasync/pkg/cli/config"
	"github.com/m-kurosawa/ahasync/pkg/domain/model"
	"github.com/m-kurosawa/ahasync/pkg/domain/types"
	slackinfra "github.com/m-kurosawa/ahasync/pkg/infra/slack"
	"github.com/m-kurosawa/ahasync/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdSync() *cli.Command {
	var (
		ahaCfg    config.Aha
		notionCfg config.Notion
		notifyCfg config.Notify
		policyCfg config.Policy
	)

	flags := append(ahaCfg.Flags(), notionCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)

	return &cli.Command{
		Name:    "sync",
		Aliases: []string{"s"},
		Usage:   "Run one full incremental synchronization",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if notifyCfg.SentryDSN != "" {
				if err := sentry.Init(sentry.ClientOptions{
					Dsn:     notifyCfg.SentryDSN,
					Release: types.AppName + "@" + types.Version,
				}); err != nil {
					return goerr.Wrap(err, "failed to initialize sentry")
				}
				defer sentry.Flush(2 * time.Second)
			}

			policy, err := policyCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "failed to load field policy")
			}

			logger.Info("Starting sync",
				"aha", ahaCfg,
				"notion", notionCfg,
			)

			engine := usecase.New(
				ahaCfg.Client(),
				notionCfg.Client(),
				notionCfg.ReleasesDB,
				notionCfg.FeaturesDB,
				usecase.WithFieldPolicy(policy),
			)

			summary, err := engine.Run(ctx)
			if err != nil {
				if notifyCfg.SentryDSN != "" {
					sentry.CaptureException(err)
				}
				return goerr.Wrap(err, "sync run failed")
			}

			printSummary(summary)

			if notifyCfg.SlackWebhookURL != "" {
				notifier := slackinfra.NewNotifier(notifyCfg.SlackWebhookURL)
				if err := notifier.NotifySummary(ctx, summary); err != nil {
					logger.Warn("Failed to send Slack notification", "error", err)
				}
			}

			return nil
		},
	}
}

func printSummary(s *model.RunSummary) {
	bold := color.New(color.Bold)
	_, _ = bold.Printf("Sync %s finished in %s\n", s.RunID, s.Elapsed.Round(time.Millisecond))
	printStats("Releases", s.Releases)
	printStats("Features", s.Features)
	fmt.Printf("  Relations: %d updated, %d errors\n", s.RelationsUpdated, s.RelationErrors)
}

func printStats(label string, stats model.SyncStats) {
	line := fmt.Sprintf("  %s: %d created, %d updated, %d unchanged, %d errors",
		label, stats.Created, stats.Updated, stats.Unchanged, stats.Errors)
	if stats.Errors > 0 {
		_, _ = color.New(color.FgYellow).Println(line)
		return
	}
	_, _ = color.New(color.FgGreen).Println(line)
}
