package translator

import (
	"fmt"
	"time"
)

// Config holds translator engine configuration.
type Config struct {
	// Workers is the number of goroutines draining the inbound queue.
	Workers int `yaml:"workers"`

	// QueueSize bounds the inbound queue. When the queue is full new
	// updates are dropped rather than blocking the webhook handler.
	QueueSize int `yaml:"queue_size"`

	// RequestTimeout bounds the handling of a single inbound message,
	// including the provider round trip and reply delivery.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// MaxTokens and Temperature are forwarded to the provider.
	// Zero values let the provider use its own defaults.
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`

	// DefaultLanguage is the target language for users without a
	// stored preference.
	DefaultLanguage string `yaml:"default_language"`
}

func (c *Config) defaults() {
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 64
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 60 * time.Second
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = DefaultLanguage
	}
}

func (c *Config) validate() error {
	if _, ok := LookupLanguage(c.DefaultLanguage); !ok {
		return fmt.Errorf("translator: unsupported default_language %q", c.DefaultLanguage)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("translator: temperature out of range: %v", c.Temperature)
	}
	return nil
}
