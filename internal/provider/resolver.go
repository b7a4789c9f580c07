package provider

import (
	"github.com/rotina/rotina/internal/config"
)

// Resolve builds the provider stack from config: the Ollama chat
// client, wrapped with local Whisper transcription when enabled.
func Resolve(cfg *config.Config) LLMProvider {
	var prov LLMProvider = NewOllamaProvider(cfg.Providers.Ollama.APIBase, cfg.Model.Name)
	if cfg.Providers.LocalWhisper.Enabled {
		prov = NewLocalWhisperProvider(cfg.Providers.LocalWhisper, prov)
	}
	return prov
}
