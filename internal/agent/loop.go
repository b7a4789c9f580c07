// Package agent runs the conversation loop: it drains the inbound bus,
// answers fast-path phrases directly, and otherwise drives the LLM
// through tool calls until a final reply.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rotina/rotina/internal/bus"
	"github.com/rotina/rotina/internal/config"
	"github.com/rotina/rotina/internal/favorites"
	"github.com/rotina/rotina/internal/history"
	"github.com/rotina/rotina/internal/provider"
	"github.com/rotina/rotina/internal/routine"
	"github.com/rotina/rotina/internal/session"
	"github.com/rotina/rotina/internal/tools"
)

const apologyReply = "I'm sorry, I'm having trouble reaching my language model right now. Please try again in a moment."

// LoopOptions carries the dependencies of a conversation loop.
type LoopOptions struct {
	Bus       *bus.MessageBus
	Provider  provider.LLMProvider
	Store     *routine.Store
	Resolver  *routine.Resolver
	Favorites *favorites.Store
	History   *history.Log
	Sessions  *session.Manager
	Config    *config.Config
}

// Loop is the conversation loop.
type Loop struct {
	opts     LoopOptions
	registry *tools.Registry
	cancel   context.CancelFunc
}

// NewLoop creates a loop with the default tool set registered.
func NewLoop(opts LoopOptions) *Loop {
	l := &Loop{
		opts:     opts,
		registry: tools.NewRegistry(),
	}
	l.registerDefaultTools()
	return l
}

func (l *Loop) registerDefaultTools() {
	l.registry.Register(tools.NewGetRoutineTool(l.opts.Store))
	l.registry.Register(tools.NewGetTaskByTimeTool(l.opts.Resolver))
	l.registry.Register(tools.NewAddRoutineEntryTool(l.opts.Store))
	l.registry.Register(tools.NewRemoveRoutineEntryTool(l.opts.Store))
	l.registry.Register(tools.NewGetFavoriteTool(l.opts.Favorites))
	l.registry.Register(tools.NewSetFavoriteTool(l.opts.Favorites))
	l.registry.Register(tools.NewWeatherTool(l.opts.Config.Weather))
	l.registry.Register(tools.NewJokeTool())
}

// Registry exposes the registered tools, for status reporting.
func (l *Loop) Registry() *tools.Registry {
	return l.registry
}

// Run consumes inbound messages until the context is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ctx, l.cancel = context.WithCancel(ctx)
	slog.Info("conversation loop started", "model", l.opts.Config.Model.Name)

	for {
		msg, err := l.opts.Bus.ConsumeInbound(ctx)
		if err != nil {
			return err
		}
		reply, err := l.process(ctx, msg)
		if err != nil {
			slog.Error("turn failed", "trace_id", msg.TraceID, "error", err)
			continue
		}
		l.opts.Bus.PublishOutbound(&bus.OutboundMessage{
			Channel: msg.Channel,
			TraceID: msg.TraceID,
			Kind:    bus.KindReply,
			Content: reply,
		})
	}
}

// Stop cancels a running loop.
func (l *Loop) Stop() {
	if l.cancel != nil {
		l.cancel()
	}
}

// ProcessDirect handles one utterance synchronously, bypassing the bus.
// Used for one-shot CLI invocations.
func (l *Loop) ProcessDirect(ctx context.Context, content, sessionKey string) (string, error) {
	return l.process(ctx, &bus.InboundMessage{
		Channel:   "direct",
		SessionID: sessionKey,
		TraceID:   uuid.NewString(),
		Content:   content,
	})
}

func (l *Loop) process(ctx context.Context, msg *bus.InboundMessage) (string, error) {
	start := time.Now()
	if msg.TraceID == "" {
		msg.TraceID = uuid.NewString()
	}
	log := slog.With("trace_id", msg.TraceID, "channel", msg.Channel)
	log.Info("handling turn", "content", msg.Content)

	sess := l.opts.Sessions.GetOrCreate(msg.SessionID)
	sess.AddMessage("user", msg.Content)

	var reply string
	var usedTools []string
	var usage provider.Usage

	if fast, ok := l.intercept(msg.Content); ok {
		log.Info("answered on fast path")
		reply = fast
	} else {
		var err error
		reply, usedTools, usage, err = l.runAgentLoop(ctx, sess)
		if err != nil {
			log.Error("provider unavailable", "error", err)
			reply = apologyReply
		}
	}

	sess.AddMessage("assistant", reply)
	if err := l.opts.Sessions.Save(sess); err != nil {
		log.Warn("session save failed", "error", err)
	}
	l.recordTurn(msg, reply, usedTools, usage, time.Since(start))
	return reply, nil
}

func (l *Loop) recordTurn(msg *bus.InboundMessage, reply string, usedTools []string, usage provider.Usage, dur time.Duration) {
	if l.opts.History == nil {
		return
	}
	err := l.opts.History.Record(&history.Turn{
		TraceID:          msg.TraceID,
		Channel:          msg.Channel,
		Input:            msg.Content,
		Output:           reply,
		Tools:            history.ToolNames(usedTools),
		DurationMS:       dur.Milliseconds(),
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
	})
	if err != nil {
		slog.Warn("history record failed", "trace_id", msg.TraceID, "error", err)
	}
}

// runAgentLoop drives the LLM through tool calls until it produces a
// plain reply or the iteration cap is hit.
func (l *Loop) runAgentLoop(ctx context.Context, sess *session.Session) (string, []string, provider.Usage, error) {
	cfg := l.opts.Config.Model
	messages := l.buildMessages(sess)

	var usedTools []string
	var usage provider.Usage

	for i := 0; i < cfg.MaxToolIterations; i++ {
		resp, err := l.opts.Provider.Chat(ctx, &provider.ChatRequest{
			Messages:    messages,
			Tools:       l.registry.Definitions(),
			Model:       cfg.Name,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			return "", usedTools, usage, fmt.Errorf("chat request: %w", err)
		}
		usage.Add(resp.Usage)

		if len(resp.ToolCalls) == 0 {
			return resp.Content, usedTools, usage, nil
		}

		messages = append(messages, provider.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})
		for _, call := range resp.ToolCalls {
			usedTools = append(usedTools, call.Name)
			result, err := l.registry.Execute(ctx, call.Name, call.Arguments)
			if err != nil {
				result = fmt.Sprintf(`{"status": "error", "message": %q}`, err.Error())
			}
			slog.Debug("tool executed", "tool", call.Name, "result", result)
			messages = append(messages, provider.Message{
				Role:       "tool",
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	return "I couldn't finish working on that request. Could you rephrase it?", usedTools, usage, nil
}
