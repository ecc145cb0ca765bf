package telegram

import (
	"fmt"
	"net/url"
	"regexp"
)

// tokenPattern matches the Telegram bot token format: <digits>:<alphanum+dash>.
var tokenPattern = regexp.MustCompile(`^\d+:[A-Za-z0-9_-]+$`)

// secretPattern is the character set Telegram accepts for secret_token.
var secretPattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,256}$`)

// Config holds the Telegram channel configuration.
type Config struct {
	Token          string   `yaml:"token"`
	Mode           string   `yaml:"mode"`
	PollingTimeout int      `yaml:"polling_timeout"`
	WebhookURL     string   `yaml:"webhook_url"`
	WebhookSecret  string   `yaml:"webhook_secret"`
	AllowedUpdates []string `yaml:"allowed_updates"`
	AllowUsers     []string `yaml:"allow_users"`
	AllowGroups    []string `yaml:"allow_groups"`
	APIURL         string   `yaml:"api_url"`

	// DropPendingUpdates discards updates queued while the bot was down
	// when the webhook is (re)registered.
	DropPendingUpdates bool `yaml:"drop_pending_updates"`

	// WatchdogSchedule is the cron spec for re-checking the webhook
	// registration. Empty disables the watchdog.
	WatchdogSchedule string `yaml:"watchdog_schedule"`
}

// defaults applies default values to unset fields.
func (c *Config) defaults() {
	if c.Mode == "" {
		c.Mode = "webhook"
	}
	if c.PollingTimeout == 0 {
		c.PollingTimeout = 30
	}
	if c.AllowedUpdates == nil {
		c.AllowedUpdates = []string{"message", "edited_message", "callback_query"}
	}
	if c.APIURL == "" {
		c.APIURL = "https://api.telegram.org"
	}
	if c.WatchdogSchedule == "" {
		c.WatchdogSchedule = "*/5 * * * *"
	}
}

// validate checks configuration field constraints beyond basic presence
// checks. It is called from Telegram.Validate after defaults have been applied.
func (c *Config) validate() error {
	if c.Token != "" && !tokenPattern.MatchString(c.Token) {
		return fmt.Errorf("telegram: token format invalid (expected <bot_id>:<hash>)")
	}

	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("telegram: api_url must be a valid http/https URL, got %q", c.APIURL)
		}
	}

	if c.WebhookURL != "" {
		u, err := url.Parse(c.WebhookURL)
		if err != nil || u.Scheme != "https" {
			return fmt.Errorf("telegram: webhook_url must be a valid https URL, got %q", c.WebhookURL)
		}
	}

	if c.WebhookSecret != "" && !secretPattern.MatchString(c.WebhookSecret) {
		return fmt.Errorf("telegram: webhook_secret must match [A-Za-z0-9_] and be at most 256 characters")
	}

	if c.PollingTimeout < 0 || c.PollingTimeout > 50 {
		return fmt.Errorf("telegram: polling_timeout must be 0-50, got %d", c.PollingTimeout)
	}

	return nil
}
