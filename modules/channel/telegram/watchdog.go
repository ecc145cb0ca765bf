package telegram

import (
	"context"
	"log/slog"

	"github.com/tolkabot/tolka/internal/cron"
)

// watchdogJob periodically verifies that the webhook registered with
// Telegram still points at the configured URL and re-registers it when it
// drifted. Hosting platforms that recycle instances occasionally hand the
// bot token's webhook to a stale deployment.
type watchdogJob struct {
	client *Client
	config Config
	logger *slog.Logger
}

func newWatchdogJob(client *Client, config Config, logger *slog.Logger) cron.Job {
	return &watchdogJob{client: client, config: config, logger: logger}
}

func (j *watchdogJob) Name() string { return "telegram-webhook-watchdog" }

func (j *watchdogJob) Schedule() string { return j.config.WatchdogSchedule }

func (j *watchdogJob) Run(ctx context.Context) error {
	info, err := j.client.GetWebhookInfo(ctx)
	if err != nil {
		return err
	}

	if info.LastErrorMessage != "" {
		j.logger.Warn("telegram reported webhook delivery errors",
			"last_error", info.LastErrorMessage,
			"pending", info.PendingUpdateCount,
		)
	}

	if info.URL == j.config.WebhookURL {
		return nil
	}

	j.logger.Warn("webhook registration drifted, re-registering",
		"registered", info.URL,
		"expected", j.config.WebhookURL,
	)
	return j.client.SetWebhook(ctx, SetWebhookRequest{
		URL:            j.config.WebhookURL,
		SecretToken:    j.config.WebhookSecret,
		AllowedUpdates: j.config.AllowedUpdates,
	})
}
