package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rotina/rotina/internal/agent"
	"github.com/rotina/rotina/internal/bus"
	"github.com/rotina/rotina/internal/config"
	"github.com/rotina/rotina/internal/favorites"
	"github.com/rotina/rotina/internal/history"
	"github.com/rotina/rotina/internal/provider"
	"github.com/rotina/rotina/internal/routine"
	"github.com/rotina/rotina/internal/session"
	"github.com/rotina/rotina/internal/speech"
	"github.com/rotina/rotina/internal/tools"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show assistant status",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader("📊 Rotina Status")
		fmt.Printf("Version: %s\n", version)

		configPath, err := config.ConfigPath()
		if err == nil {
			if _, statErr := os.Stat(configPath); statErr == nil {
				fmt.Println("Config:  ✓ Found (" + configPath + ")")
			} else {
				fmt.Println("Config:  ✗ Not found (run 'rotina configure' first)")
			}
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Config:  ? Unable to load (%v)\n", err)
			cfg = config.DefaultConfig()
		}
		fmt.Printf("Model:   %s via %s\n", cfg.Model.Name, cfg.Providers.Ollama.APIBase)

		store := routine.NewStore(cfg.Paths.RoutineFile())
		fmt.Printf("Routine: %d entries (%s)\n", len(store.List()), cfg.Paths.RoutineFile())

		if speech.NewRecorder().Available() {
			fmt.Println("Voice:   ✓ Microphone capture available")
		} else {
			fmt.Println("Voice:   ✗ No recording binary found")
		}
		if speech.NewSpeaker(cfg.Speech.Voice).Available() {
			fmt.Println("Speech:  ✓ Text-to-speech available")
		} else {
			fmt.Println("Speech:  ✗ No TTS binary found")
		}

		if log, err := history.Open(cfg.Paths.HistoryDB()); err == nil {
			if count, err := log.CountToday(); err == nil {
				fmt.Printf("Turns:   %d handled today\n", count)
			}
			log.Close()
		}

		fmt.Println("\nTools:")
		loop := agent.NewLoop(agent.LoopOptions{
			Bus:       bus.NewMessageBus(),
			Provider:  provider.Resolve(cfg),
			Store:     store,
			Resolver:  routine.NewResolver(store),
			Favorites: favorites.NewStore(cfg.Paths.FavoritesFile()),
			Sessions:  session.NewManager(cfg.Paths.SessionsDir()),
			Config:    cfg,
		})
		for _, tool := range loop.Registry().List() {
			fmt.Printf("  %-22s %-10s %s\n", tool.Name(), tierLabel(tools.ToolTier(tool)), tool.Description())
		}
	},
}

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent conversation turns",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}
		log, err := history.Open(cfg.Paths.HistoryDB())
		if err != nil {
			return err
		}
		defer log.Close()

		turns, err := log.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(turns) == 0 {
			fmt.Println("No conversation history yet.")
			return nil
		}
		for _, turn := range turns {
			fmt.Printf("%s  [%s]\n", turn.CreatedAt.Local().Format("2006-01-02 15:04"), turn.Channel)
			fmt.Printf("  you>    %s\n", turn.Input)
			fmt.Printf("  rotina> %s\n", turn.Output)
			if turn.Tools != "" {
				fmt.Printf("  tools:  %s\n", turn.Tools)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of turns to show")
}

func tierLabel(tier int) string {
	switch tier {
	case tools.TierWrite:
		return "[write]"
	case tools.TierExternal:
		return "[external]"
	default:
		return "[read]"
	}
}
