package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/tolkabot/tolka/internal/translator"
)

var (
	initTokenPattern  = regexp.MustCompile(`^\d+:[A-Za-z0-9_-]+$`)
	initSecretPattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,256}$`)
)

// initAnswers holds the wizard results used to render the config file.
type initAnswers struct {
	BotToken      string
	OpenAIKey     string
	Model         string
	Mode          string
	WebhookURL    string
	WebhookSecret string
	Language      string
}

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively generate a configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			outPath, _ := cmd.Flags().GetString("output")
			if outPath == "" {
				outPath = defaultConfigPath()
			}

			if _, err := os.Stat(outPath); err == nil {
				var overwrite bool
				confirm := huh.NewConfirm().
					Title(fmt.Sprintf("%s already exists. Overwrite?", outPath)).
					Value(&overwrite)
				if err := confirm.Run(); err != nil {
					return err
				}
				if !overwrite {
					return fmt.Errorf("aborted: %s already exists", outPath)
				}
			}

			answers, err := runInitForm()
			if err != nil {
				return err
			}

			if err := writeConfigFile(outPath, answers); err != nil {
				return err
			}

			fmt.Printf("Configuration written to %s\n", outPath)
			fmt.Println("Start the bot with: tolka start -c " + outPath)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Where to write the configuration file")
	return cmd
}

func runInitForm() (*initAnswers, error) {
	answers := &initAnswers{
		Model:    "gpt-3.5-turbo",
		Mode:     "webhook",
		Language: translator.DefaultLanguage,
	}

	langOptions := make([]huh.Option[string], 0, len(translator.Languages()))
	for _, lang := range translator.Languages() {
		label := fmt.Sprintf("%s %s (%s)", lang.Flag, lang.Name, lang.NativeName)
		langOptions = append(langOptions, huh.NewOption(label, lang.Code))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Telegram bot token").
				Description("From @BotFather, looks like 123456:ABC-DEF…").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if !initTokenPattern.MatchString(strings.TrimSpace(s)) {
						return fmt.Errorf("expected format <numeric_id>:<token>")
					}
					return nil
				}).
				Value(&answers.BotToken),
			huh.NewInput().
				Title("OpenAI API key").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("api key is required")
					}
					return nil
				}).
				Value(&answers.OpenAIKey),
			huh.NewInput().
				Title("OpenAI model").
				Value(&answers.Model),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Update delivery mode").
				Options(
					huh.NewOption("Webhook (recommended, requires a public HTTPS URL)", "webhook"),
					huh.NewOption("Long polling (no inbound connectivity needed)", "polling"),
				).
				Value(&answers.Mode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Public webhook base URL").
				Description("e.g. https://bot.example.com").
				Validate(func(s string) error {
					if !strings.HasPrefix(strings.TrimSpace(s), "https://") {
						return fmt.Errorf("webhook URL must use https")
					}
					return nil
				}).
				Value(&answers.WebhookURL),
			huh.NewInput().
				Title("Webhook secret token").
				Description("1-256 chars of A-Z, a-z, 0-9 or underscore").
				Validate(func(s string) error {
					if !initSecretPattern.MatchString(s) {
						return fmt.Errorf("secret must match [A-Za-z0-9_]{1,256}")
					}
					return nil
				}).
				Value(&answers.WebhookSecret),
		).WithHideFunc(func() bool {
			return answers.Mode != "webhook"
		}),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default translation language").
				Options(langOptions...).
				Value(&answers.Language),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	answers.BotToken = strings.TrimSpace(answers.BotToken)
	answers.OpenAIKey = strings.TrimSpace(answers.OpenAIKey)
	answers.WebhookURL = strings.TrimRight(strings.TrimSpace(answers.WebhookURL), "/")
	return answers, nil
}

func writeConfigFile(path string, answers *initAnswers) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("version: \"1\"\n\nmodules:\n")

	b.WriteString("  channel.telegram:\n")
	fmt.Fprintf(&b, "    token: %q\n", answers.BotToken)
	fmt.Fprintf(&b, "    mode: %s\n", answers.Mode)
	if answers.Mode == "webhook" {
		fmt.Fprintf(&b, "    webhook_url: %q\n", answers.WebhookURL+"/webhooks/telegram")
		fmt.Fprintf(&b, "    webhook_secret: %q\n", answers.WebhookSecret)
	}

	if answers.Mode == "webhook" {
		b.WriteString("\n  gateway.http:\n")
		b.WriteString("    bind: \"0.0.0.0:5000\"\n")
	}

	b.WriteString("\n  provider.openai:\n")
	fmt.Fprintf(&b, "    api_key: %q\n", answers.OpenAIKey)
	fmt.Fprintf(&b, "    model: %s\n", answers.Model)

	b.WriteString("\n  prefs.sqlite: {}\n")

	b.WriteString("\n  translator.engine:\n")
	fmt.Fprintf(&b, "    default_language: %s\n", answers.Language)

	if answers.Mode == "webhook" {
		b.WriteString("\n  schedule.cron: {}\n")
	}

	// Token and key end up in the file, keep it private.
	return os.WriteFile(path, []byte(b.String()), 0o600)
}
