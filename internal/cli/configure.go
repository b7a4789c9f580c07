package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rotina/rotina/internal/config"
)

var (
	configureModel     string
	configureOllamaURL string
	configureVoice     bool
	configureQuiet     string
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Write or update the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		printHeader("⚙️ Rotina Configure")

		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}

		if configureModel != "" {
			cfg.Model.Name = configureModel
		}
		if configureOllamaURL != "" {
			cfg.Providers.Ollama.APIBase = configureOllamaURL
		}
		if cmd.Flags().Changed("voice") {
			cfg.Speech.Enabled = configureVoice
		}
		if cmd.Flags().Changed("quiet") {
			cfg.Announcer.QuietMask = configureQuiet
		}

		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		path, _ := config.ConfigPath()
		fmt.Println(color.GreenString("Configuration written to %s", path))
		fmt.Printf("Model:  %s\n", cfg.Model.Name)
		fmt.Printf("Ollama: %s\n", cfg.Providers.Ollama.APIBase)
		return nil
	},
}

func init() {
	configureCmd.Flags().StringVar(&configureModel, "model", "", "chat model name")
	configureCmd.Flags().StringVar(&configureOllamaURL, "ollama-url", "", "Ollama API base URL")
	configureCmd.Flags().BoolVar(&configureVoice, "voice", false, "enable spoken replies")
	configureCmd.Flags().StringVar(&configureQuiet, "quiet", "", "cron mask for announcement quiet hours")
}
