package channels

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rotina/rotina/internal/bus"
)

func TestConsoleListenPublishes(t *testing.T) {
	b := bus.NewMessageBus()
	var out bytes.Buffer
	c := NewConsole(b, strings.NewReader("what is my routine\n"), &out, "tty")

	done := make(chan error, 1)
	go func() { done <- c.Listen(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	msg, err := b.ConsumeInbound(ctx)
	if err != nil {
		t.Fatalf("ConsumeInbound failed: %v", err)
	}
	if msg.Channel != ChannelConsole {
		t.Errorf("unexpected channel: %q", msg.Channel)
	}
	if msg.Content != "what is my routine" {
		t.Errorf("unexpected content: %q", msg.Content)
	}
	if msg.SessionID != "tty" {
		t.Errorf("unexpected session: %q", msg.SessionID)
	}
	if msg.TraceID == "" {
		t.Error("expected a trace ID")
	}

	if err := <-done; err != nil {
		t.Errorf("Listen returned error on EOF: %v", err)
	}
}

func TestConsoleExitPhrase(t *testing.T) {
	b := bus.NewMessageBus()
	var out bytes.Buffer
	c := NewConsole(b, strings.NewReader("Thank you!\n"), &out, "tty")

	var farewell bool
	c.OnFarewell = func() { farewell = true }

	err := c.Listen(context.Background())
	if !errors.Is(err, ErrConversationOver) {
		t.Fatalf("expected ErrConversationOver, got %v", err)
	}
	if !farewell {
		t.Error("expected farewell callback")
	}
	if !strings.Contains(out.String(), "Goodbye") {
		t.Errorf("expected farewell message, got %q", out.String())
	}
}

func TestConsoleSkipsBlankLines(t *testing.T) {
	b := bus.NewMessageBus()
	var out bytes.Buffer
	c := NewConsole(b, strings.NewReader("\n   \nhello\n"), &out, "tty")

	go c.Listen(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	msg, err := b.ConsumeInbound(ctx)
	if err != nil {
		t.Fatalf("ConsumeInbound failed: %v", err)
	}
	if msg.Content != "hello" {
		t.Errorf("unexpected content: %q", msg.Content)
	}
}

func TestConsoleRender(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(bus.NewMessageBus(), strings.NewReader(""), &out, "tty")

	c.Render(&bus.OutboundMessage{Kind: bus.KindReply, Content: "Hello!"})
	c.Render(&bus.OutboundMessage{Kind: bus.KindAnnouncement, Content: "Time for: walk."})

	got := out.String()
	if !strings.Contains(got, "Hello!") {
		t.Errorf("missing reply: %q", got)
	}
	if !strings.Contains(got, "[reminder] Time for: walk.") {
		t.Errorf("missing announcement: %q", got)
	}
}

func TestConsoleSwitchMode(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(bus.NewMessageBus(), strings.NewReader("Change Mode\n"), &out, "tty")

	err := c.Listen(context.Background())
	if !errors.Is(err, ErrSwitchMode) {
		t.Fatalf("expected ErrSwitchMode, got %v", err)
	}
}

func TestIsExitPhrase(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"exit", true},
		{"Quit", true},
		{"goodbye!", true},
		{"  thank you  ", true},
		{"thanks for nothing", false},
		{"exit the building", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsExitPhrase(tt.in); got != tt.want {
			t.Errorf("IsExitPhrase(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
