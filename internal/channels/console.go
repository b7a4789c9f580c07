package channels

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/rotina/rotina/internal/bus"
)

// ChannelConsole is the channel name for the written console.
const ChannelConsole = "console"

// Phrases that end an interactive conversation.
var exitPhrases = []string{"exit", "quit", "goodbye", "bye", "thank you"}

// ErrConversationOver signals that the user said goodbye.
var ErrConversationOver = fmt.Errorf("conversation over")

// ErrSwitchMode signals that the user asked to switch between the
// written and voice channels.
var ErrSwitchMode = fmt.Errorf("switch mode")

const switchPhrase = "change mode"

// Console reads utterances from a terminal and prints replies.
type Console struct {
	bus        *bus.MessageBus
	in         *bufio.Reader
	out        io.Writer
	sessionID  string
	OnFarewell func() // called before Listen returns on an exit phrase
	WaitReply  func() // when set, called after publishing to block for the reply
}

// NewConsole creates a console channel over the given streams.
func NewConsole(b *bus.MessageBus, in io.Reader, out io.Writer, sessionID string) *Console {
	return &Console{
		bus:       b,
		in:        bufio.NewReader(in),
		out:       out,
		sessionID: sessionID,
	}
}

func (c *Console) Name() string { return ChannelConsole }

// Listen reads lines until EOF, an exit phrase, or cancellation.
// Each line is published as an inbound message.
func (c *Console) Listen(ctx context.Context) error {
	for {
		fmt.Fprint(c.out, color.GreenString("you> "))
		line, err := c.in.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, switchPhrase) {
			return ErrSwitchMode
		}
		if IsExitPhrase(line) {
			fmt.Fprintln(c.out, color.CyanString("rotina> Goodbye! Have a great day."))
			if c.OnFarewell != nil {
				c.OnFarewell()
			}
			return ErrConversationOver
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		c.bus.PublishInbound(&bus.InboundMessage{
			Channel:   ChannelConsole,
			SessionID: c.sessionID,
			TraceID:   uuid.NewString(),
			Content:   line,
		})
		if c.WaitReply != nil {
			c.WaitReply()
		}
	}
}

// Render prints an outbound message. Announcements get a bell prefix
// so they stand out from replies.
func (c *Console) Render(msg *bus.OutboundMessage) {
	switch msg.Kind {
	case bus.KindAnnouncement:
		fmt.Fprintln(c.out, color.YellowString("\n[reminder] %s", msg.Content))
	default:
		fmt.Fprintln(c.out, color.CyanString("rotina> %s", msg.Content))
	}
}

// IsExitPhrase reports whether the utterance ends the conversation.
func IsExitPhrase(content string) bool {
	q := strings.ToLower(strings.TrimSpace(content))
	q = strings.TrimRight(q, ".!?")
	for _, p := range exitPhrases {
		if q == p {
			return true
		}
	}
	return false
}
