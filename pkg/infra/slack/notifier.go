package slack

import (
	"context"
	"fmt"
	"time"

	"github.com/m-kurosawa/ahasync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	slackapi "github.com/slack-go/slack"
)

// Notifier posts run summaries to a Slack incoming webhook
type Notifier struct {
	webhookURL string
}

// NewNotifier creates a Notifier for the given webhook URL
func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{webhookURL: webhookURL}
}

// NotifySummary posts a human-readable run summary
func (n *Notifier) NotifySummary(ctx context.Context, s *model.RunSummary) error {
	text := fmt.Sprintf(
		"ahasync run `%s` finished in %s\n"+
			"Releases: %d created / %d updated / %d unchanged / %d errors\n"+
			"Features: %d created / %d updated / %d unchanged / %d errors\n"+
			"Relations: %d updated / %d errors",
		s.RunID, s.Elapsed.Round(time.Millisecond),
		s.Releases.Created, s.Releases.Updated, s.Releases.Unchanged, s.Releases.Errors,
		s.Features.Created, s.Features.Updated, s.Features.Unchanged, s.Features.Errors,
		s.RelationsUpdated, s.RelationErrors,
	)

	msg := &slackapi.WebhookMessage{Text: text}
	if err := slackapi.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post run summary to Slack")
	}
	return nil
}
