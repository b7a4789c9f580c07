// Package bus provides the message bus decoupling input channels from
// the conversation loop.
package bus

import (
	"context"
	"sync"
	"time"
)

// Outbound message kinds.
const (
	KindReply        = "reply"        // answer to a user turn
	KindAnnouncement = "announcement" // proactive routine announcement
)

// InboundMessage represents a user utterance from a channel to the
// conversation loop.
type InboundMessage struct {
	Channel   string    `json:"channel"`
	SessionID string    `json:"session_id"`
	TraceID   string    `json:"trace_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// OutboundMessage represents a reply or announcement to a channel.
type OutboundMessage struct {
	Channel string `json:"channel"`
	TraceID string `json:"trace_id,omitempty"`
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

// MessageBus carries messages between channels and the loop. A single
// consumer drains inbound; outbound fans out to per-channel
// subscribers.
type MessageBus struct {
	inbound  chan *InboundMessage
	outbound chan *OutboundMessage
	subs     map[string][]func(*OutboundMessage)
	mu       sync.RWMutex
}

// NewMessageBus creates a new message bus.
func NewMessageBus() *MessageBus {
	return &MessageBus{
		inbound:  make(chan *InboundMessage, 16),
		outbound: make(chan *OutboundMessage, 16),
		subs:     make(map[string][]func(*OutboundMessage)),
	}
}

// PublishInbound sends a message from a channel to the loop.
func (b *MessageBus) PublishInbound(msg *InboundMessage) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	b.inbound <- msg
}

// ConsumeInbound blocks until a message is available or the context is
// cancelled.
func (b *MessageBus) ConsumeInbound(ctx context.Context) (*InboundMessage, error) {
	select {
	case msg := <-b.inbound:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// PublishOutbound sends a message from the loop to channels.
func (b *MessageBus) PublishOutbound(msg *OutboundMessage) {
	if msg.Kind == "" {
		msg.Kind = KindReply
	}
	b.outbound <- msg
}

// Subscribe registers a callback for outbound messages to one channel.
func (b *MessageBus) Subscribe(channel string, callback func(*OutboundMessage)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[channel] = append(b.subs[channel], callback)
}

// DispatchOutbound runs the outbound dispatcher until the context is
// cancelled. Run it as a goroutine.
func (b *MessageBus) DispatchOutbound(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-b.outbound:
			b.mu.RLock()
			callbacks := b.subs[msg.Channel]
			b.mu.RUnlock()
			for _, cb := range callbacks {
				cb(msg)
			}
		}
	}
}
