// Package translator implements the translation engine: a worker pool that
// drains inbound messages from the configured channels, answers bot commands
// and language-menu callbacks, and turns plain text into translation requests
// against the completion provider.
package translator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/tolkabot/tolka/internal/channel"
	"github.com/tolkabot/tolka/internal/core"
	"github.com/tolkabot/tolka/internal/gateway"
	"github.com/tolkabot/tolka/internal/prefs"
	"github.com/tolkabot/tolka/internal/provider"
	"github.com/tolkabot/tolka/pkg/message"
)

func init() {
	core.RegisterModule(&Engine{})
}

var (
	_ core.Configurable = (*Engine)(nil)
	_ core.Provisioner  = (*Engine)(nil)
	_ core.Validator    = (*Engine)(nil)
	_ core.Starter      = (*Engine)(nil)
	_ core.Stopper      = (*Engine)(nil)
)

// Engine is the translator engine module. It owns the inbound queue and the
// worker pool; channels push into the queue via the inbox callback wired
// during Provision.
type Engine struct {
	config     Config
	logger     *slog.Logger
	dispatcher *channel.Dispatcher
	store      prefs.Store
	provider   provider.Provider
	metrics    *gateway.Metrics
	tracer     trace.Tracer

	inbox  chan message.InboundMessage
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// ModuleInfo implements core.Module.
func (e *Engine) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "translator.engine",
		New: func() core.Module { return &Engine{} },
	}
}

// Configure implements core.Configurable.
func (e *Engine) Configure(node *yaml.Node) error {
	if err := node.Decode(&e.config); err != nil {
		return fmt.Errorf("translator: decode config: %w", err)
	}
	e.config.defaults()
	return nil
}

// Provision implements core.Provisioner. The engine loads after every
// channel, store and provider module, so all of their services are already
// registered by the time this runs.
func (e *Engine) Provision(ctx *core.AppContext) error {
	e.config.defaults()
	e.logger = ctx.Logger
	e.dispatcher = channel.NewDispatcher()
	e.inbox = make(chan message.InboundMessage, e.config.QueueSize)
	e.tracer = otel.Tracer("tolka/translator")

	for _, name := range ctx.ServiceNames() {
		svc, ok := ctx.Service(name)
		if !ok {
			continue
		}
		switch {
		case strings.HasPrefix(name, "channel."):
			ch, ok := svc.(channel.Channel)
			if !ok {
				return fmt.Errorf("translator: service %s is not a channel", name)
			}
			if err := e.dispatcher.Register(name, ch); err != nil {
				return err
			}
			ch.SetInbox(e.Enqueue)
		case strings.HasPrefix(name, "provider."):
			p, ok := svc.(provider.Provider)
			if !ok {
				return fmt.Errorf("translator: service %s is not a provider", name)
			}
			if e.provider != nil {
				return fmt.Errorf("translator: multiple providers configured")
			}
			e.provider = p
		}
	}

	if svc, ok := ctx.Service("prefs.store"); ok {
		store, ok := svc.(prefs.Store)
		if !ok {
			return fmt.Errorf("translator: prefs.store service has wrong type")
		}
		e.store = store
	} else {
		e.logger.Warn("no preference store configured, language choices will not survive restarts")
		e.store = prefs.NewMemoryStore()
	}

	if svc, ok := ctx.Service("gateway.metrics"); ok {
		if m, ok := svc.(*gateway.Metrics); ok {
			e.metrics = m
		}
	}

	return nil
}

// Validate implements core.Validator.
func (e *Engine) Validate() error {
	if err := e.config.validate(); err != nil {
		return err
	}
	if e.provider == nil {
		return fmt.Errorf("translator: no provider module configured")
	}
	if len(e.dispatcher.Channels()) == 0 {
		return fmt.Errorf("translator: no channel modules configured")
	}
	return nil
}

// Start implements core.Starter.
func (e *Engine) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	for i := 0; i < e.config.Workers; i++ {
		e.wg.Add(1)
		go e.worker(ctx)
	}

	e.logger.Info("translator engine started",
		"workers", e.config.Workers,
		"queue_size", e.config.QueueSize,
		"channels", e.dispatcher.Channels(),
		"model", e.provider.ModelName())
	return nil
}

// Stop implements core.Stopper. In-flight messages finish within their own
// request timeout; queued but unstarted messages are abandoned.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Enqueue pushes an inbound message onto the queue. It never blocks: when
// the queue is full the message is dropped with a warning so the webhook
// handler can still acknowledge the update.
func (e *Engine) Enqueue(msg message.InboundMessage) error {
	select {
	case e.inbox <- msg:
		return nil
	default:
		e.logger.Warn("inbound queue full, dropping message",
			"channel", msg.Channel, "sender", msg.Sender.ID)
		e.metrics.RecordRejected(msg.Channel, "queue_full")
		return nil
	}
}

func (e *Engine) worker(ctx context.Context) {
	defer e.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-e.inbox:
			// Not derived from the worker context so that an in-flight
			// message can finish its reply during shutdown.
			msgCtx, cancel := context.WithTimeout(context.Background(), e.config.RequestTimeout)
			e.handle(msgCtx, msg)
			cancel()
		}
	}
}
