// Package channels implements the user-facing input/output surfaces:
// the written console and the voice pipeline.
package channels

import (
	"context"

	"github.com/rotina/rotina/internal/bus"
)

// Channel is an input/output surface for conversations.
type Channel interface {
	// Name returns the channel name (e.g. "console").
	Name() string
	// Listen blocks reading user input until the context is cancelled.
	Listen(ctx context.Context) error
	// Render delivers an outbound reply or announcement to the user.
	Render(msg *bus.OutboundMessage)
}
