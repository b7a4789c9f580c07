package channels

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/rotina/rotina/internal/bus"
	"github.com/rotina/rotina/internal/config"
	"github.com/rotina/rotina/internal/provider"
	"github.com/rotina/rotina/internal/speech"
)

// ChannelVoice is the channel name for the voice pipeline.
const ChannelVoice = "voice"

// Voice captures microphone audio, transcribes it, and speaks replies.
type Voice struct {
	bus        *bus.MessageBus
	recorder   *speech.Recorder
	speaker    *speech.Speaker
	transcribe provider.LLMProvider
	cfg        config.SpeechConfig
	out        io.Writer
	sessionID  string
	OnFarewell func()
	WaitReply  func()
}

// NewVoice wires a voice channel from the resolved speech capabilities.
func NewVoice(b *bus.MessageBus, rec *speech.Recorder, spk *speech.Speaker, p provider.LLMProvider, cfg config.SpeechConfig, out io.Writer, sessionID string) *Voice {
	return &Voice{
		bus:        b,
		recorder:   rec,
		speaker:    spk,
		transcribe: p,
		cfg:        cfg,
		out:        out,
		sessionID:  sessionID,
	}
}

func (v *Voice) Name() string { return ChannelVoice }

// Available reports whether both capture and transcription can work.
func (v *Voice) Available() bool {
	return v.recorder != nil && v.recorder.Available()
}

// Listen loops capture-transcribe-publish until the context is
// cancelled or the user says goodbye.
func (v *Voice) Listen(ctx context.Context) error {
	if !v.Available() {
		return fmt.Errorf("voice input unavailable: no recording binary found")
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		text, err := v.captureUtterance(ctx)
		if err != nil {
			slog.Warn("voice capture failed", "error", err)
			fmt.Fprintln(v.out, color.YellowString("I didn't catch that. Please try again."))
			continue
		}
		if text == "" {
			continue
		}
		fmt.Fprintln(v.out, color.GreenString("you (heard)> %s", text))

		if strings.EqualFold(text, switchPhrase) {
			return ErrSwitchMode
		}
		if IsExitPhrase(text) {
			v.Render(&bus.OutboundMessage{Kind: bus.KindReply, Content: "Goodbye! Have a great day."})
			if v.OnFarewell != nil {
				v.OnFarewell()
			}
			return ErrConversationOver
		}
		v.bus.PublishInbound(&bus.InboundMessage{
			Channel:   ChannelVoice,
			SessionID: v.sessionID,
			TraceID:   uuid.NewString(),
			Content:   text,
		})
		if v.WaitReply != nil {
			v.WaitReply()
		}
	}
}

// captureUtterance records one clip and returns its transcription.
func (v *Voice) captureUtterance(ctx context.Context) (string, error) {
	dir, err := os.MkdirTemp("", "rotina-voice-*")
	if err != nil {
		return "", fmt.Errorf("create capture dir: %w", err)
	}
	defer os.RemoveAll(dir)

	clip := filepath.Join(dir, "utterance.wav")
	fmt.Fprintln(v.out, color.HiBlackString("listening..."))
	if err := v.recorder.Record(ctx, clip, v.cfg.ListenSeconds); err != nil {
		return "", err
	}

	resp, err := v.transcribe.Transcribe(ctx, &provider.AudioRequest{FilePath: clip})
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// Render prints the reply and speaks it when a speaker is available.
func (v *Voice) Render(msg *bus.OutboundMessage) {
	if msg.Kind == bus.KindAnnouncement {
		fmt.Fprintln(v.out, color.YellowString("\n[reminder] %s", msg.Content))
	} else {
		fmt.Fprintln(v.out, color.CyanString("rotina> %s", msg.Content))
	}
	if v.speaker != nil && v.speaker.Available() {
		if err := v.speaker.Say(context.Background(), msg.Content); err != nil {
			slog.Warn("speech output failed", "error", err)
		}
	}
}
