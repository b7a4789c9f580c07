package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rotina/rotina/internal/agent"
	"github.com/rotina/rotina/internal/bus"
	"github.com/rotina/rotina/internal/channels"
	"github.com/rotina/rotina/internal/config"
	"github.com/rotina/rotina/internal/favorites"
	"github.com/rotina/rotina/internal/history"
	"github.com/rotina/rotina/internal/provider"
	"github.com/rotina/rotina/internal/routine"
	"github.com/rotina/rotina/internal/scheduler"
	"github.com/rotina/rotina/internal/session"
	"github.com/rotina/rotina/internal/speech"
)

var (
	chatMessage string
	chatVoice   bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to your assistant",
	Long:  "Start an interactive conversation, or answer a single message with -m.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "answer a single message and exit")
	chatCmd.Flags().BoolVar(&chatVoice, "voice", false, "start in voice mode")
}

// runtime bundles everything a conversation needs.
type runtime struct {
	cfg     *config.Config
	bus     *bus.MessageBus
	loop    *agent.Loop
	store   *routine.Store
	history *history.Log
	llm     provider.LLMProvider
}

func buildRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Config warning: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	store := routine.NewStore(cfg.Paths.RoutineFile())
	log, err := history.Open(cfg.Paths.HistoryDB())
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	llm := provider.Resolve(cfg)
	b := bus.NewMessageBus()
	loop := agent.NewLoop(agent.LoopOptions{
		Bus:       b,
		Provider:  llm,
		Store:     store,
		Resolver:  routine.NewResolver(store),
		Favorites: favorites.NewStore(cfg.Paths.FavoritesFile()),
		History:   log,
		Sessions:  session.NewManager(cfg.Paths.SessionsDir()),
		Config:    cfg,
	})
	return &runtime{cfg: cfg, bus: b, loop: loop, store: store, history: log, llm: llm}, nil
}

func runChat() error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.history.Close()

	if chatMessage != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		reply, err := rt.loop.ProcessDirect(ctx, chatMessage, "direct")
		if err != nil {
			return err
		}
		fmt.Println(reply)
		return nil
	}
	return runInteractive(rt)
}

func runInteractive(rt *runtime) error {
	printHeader("💬 Rotina Chat")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go rt.loop.Run(ctx)
	go rt.bus.DispatchOutbound(ctx)

	announcer := scheduler.NewAnnouncer(rt.cfg.Announcer, rt.store, rt.bus, channels.ChannelConsole)
	go announcer.Run(ctx)

	console, voice := buildChannels(rt)

	var active channels.Channel = console
	if chatVoice {
		if voice.Available() {
			active = voice
		} else {
			fmt.Println(color.YellowString("Voice mode unavailable, falling back to written mode."))
		}
	}

	fmt.Println("Say \"change mode\" to switch between written and voice mode, or \"goodbye\" to leave.")
	for {
		err := active.Listen(ctx)
		switch {
		case errors.Is(err, channels.ErrSwitchMode):
			if active == console && voice.Available() {
				fmt.Println(color.YellowString("Switching to voice mode."))
				active = voice
			} else if active == console {
				fmt.Println(color.YellowString("Voice mode unavailable: no microphone binary found."))
			} else {
				fmt.Println(color.YellowString("Switching to written mode."))
				active = console
			}
		case errors.Is(err, channels.ErrConversationOver), err == nil:
			return nil
		case errors.Is(err, context.Canceled):
			fmt.Println()
			return nil
		default:
			return err
		}
	}
}

// buildChannels wires the console and voice channels with a reply
// handshake so the prompt is only shown after the answer arrives.
func buildChannels(rt *runtime) (*channels.Console, *channels.Voice) {
	// Both channels share one session so switching modes keeps the
	// conversation context.
	const sessionKey = "interactive"
	console := channels.NewConsole(rt.bus, os.Stdin, os.Stdout, sessionKey)
	recorder := speech.NewRecorder()
	speaker := speech.NewSpeaker(rt.cfg.Speech.Voice)
	if rt.cfg.Speech.Enabled && !speaker.Available() {
		slog.Debug("speech output requested but no TTS binary found")
	}
	voice := channels.NewVoice(rt.bus, recorder, speaker, rt.llm, rt.cfg.Speech, os.Stdout, sessionKey)

	consoleReplies := make(chan struct{}, 4)
	rt.bus.Subscribe(channels.ChannelConsole, func(msg *bus.OutboundMessage) {
		console.Render(msg)
		if msg.Kind == bus.KindReply {
			consoleReplies <- struct{}{}
		}
	})
	console.WaitReply = func() { <-consoleReplies }

	voiceReplies := make(chan struct{}, 4)
	rt.bus.Subscribe(channels.ChannelVoice, func(msg *bus.OutboundMessage) {
		voice.Render(msg)
		if msg.Kind == bus.KindReply {
			voiceReplies <- struct{}{}
		}
	})
	voice.WaitReply = func() { <-voiceReplies }

	return console, voice
}
