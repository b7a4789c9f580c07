// Package config provides configuration types and loading for rotina.
package config

import (
	"path/filepath"
)

// Config is the root configuration struct.
// Top-level groups: Paths, Model, Providers, Speech, Weather, Announcer.
type Config struct {
	Paths     PathsConfig     `json:"paths"`
	Model     ModelConfig     `json:"model"`
	Providers ProvidersConfig `json:"providers"`
	Speech    SpeechConfig    `json:"speech"`
	Weather   WeatherConfig   `json:"weather"`
	Announcer AnnouncerConfig `json:"announcer"`
}

// ---------------------------------------------------------------------------
// Paths – filesystem locations
// ---------------------------------------------------------------------------

// PathsConfig groups all filesystem path settings. Empty fields are
// resolved against DataDir.
type PathsConfig struct {
	DataDir   string `json:"dataDir" envconfig:"DATA_DIR"`
	Routine   string `json:"routine,omitempty" envconfig:"ROUTINE_FILE"`
	Favorites string `json:"favorites,omitempty" envconfig:"FAVORITES_FILE"`
	History   string `json:"history,omitempty" envconfig:"HISTORY_DB"`
	Sessions  string `json:"sessions,omitempty" envconfig:"SESSIONS_DIR"`
}

// RoutineFile returns the routine record path.
func (p PathsConfig) RoutineFile() string {
	if p.Routine != "" {
		return p.Routine
	}
	return filepath.Join(p.DataDir, "routine.json")
}

// FavoritesFile returns the favorites record path.
func (p PathsConfig) FavoritesFile() string {
	if p.Favorites != "" {
		return p.Favorites
	}
	return filepath.Join(p.DataDir, "favorites.json")
}

// HistoryDB returns the interaction log database path.
func (p PathsConfig) HistoryDB() string {
	if p.History != "" {
		return p.History
	}
	return filepath.Join(p.DataDir, "history.db")
}

// SessionsDir returns the conversation sessions directory.
func (p PathsConfig) SessionsDir() string {
	if p.Sessions != "" {
		return p.Sessions
	}
	return filepath.Join(p.DataDir, "sessions")
}

// ---------------------------------------------------------------------------
// Model – LLM behaviour
// ---------------------------------------------------------------------------

// ModelConfig groups model and conversation-loop settings.
type ModelConfig struct {
	Name              string  `json:"name" envconfig:"MODEL"`
	MaxTokens         int     `json:"maxTokens" envconfig:"MAX_TOKENS"`
	Temperature       float64 `json:"temperature" envconfig:"TEMPERATURE"`
	MaxToolIterations int     `json:"maxToolIterations" envconfig:"MAX_TOOL_ITERATIONS"`
	HistoryWindow     int     `json:"historyWindow" envconfig:"HISTORY_WINDOW"`
}

// ---------------------------------------------------------------------------
// Providers – LLM endpoints & speech-to-text
// ---------------------------------------------------------------------------

// ProvidersConfig contains LLM provider configurations.
type ProvidersConfig struct {
	Ollama       OllamaConfig       `json:"ollama"`
	LocalWhisper LocalWhisperConfig `json:"localWhisper"`
}

// OllamaConfig contains settings for the local Ollama endpoint.
type OllamaConfig struct {
	APIBase string `json:"apiBase" envconfig:"API_BASE"`
}

// LocalWhisperConfig contains settings for local Whisper transcription.
type LocalWhisperConfig struct {
	Enabled    bool   `json:"enabled" envconfig:"ENABLED"`
	Model      string `json:"model" envconfig:"MODEL"`
	BinaryPath string `json:"binaryPath" envconfig:"BINARY_PATH"`
	Language   string `json:"language,omitempty" envconfig:"LANGUAGE"`
}

// ---------------------------------------------------------------------------
// Speech – audio in/out
// ---------------------------------------------------------------------------

// SpeechConfig controls the voice channel. Speech stays off unless both
// this flag is set and a recorder/TTS command is found at startup.
type SpeechConfig struct {
	Enabled       bool   `json:"enabled" envconfig:"ENABLED"`
	Voice         string `json:"voice,omitempty" envconfig:"VOICE"`
	ListenSeconds int    `json:"listenSeconds" envconfig:"LISTEN_SECONDS"`
}

// ---------------------------------------------------------------------------
// Weather – OpenWeatherMap
// ---------------------------------------------------------------------------

// WeatherConfig configures the weather tool.
type WeatherConfig struct {
	APIKey  string `json:"apiKey" envconfig:"API_KEY"`
	APIBase string `json:"apiBase" envconfig:"API_BASE"`
	Units   string `json:"units" envconfig:"UNITS"`
}

// ---------------------------------------------------------------------------
// Announcer – scheduled routine announcements
// ---------------------------------------------------------------------------

// AnnouncerConfig controls start-of-entry announcements. QuietMask is a
// 5-field cron expression; minutes it matches are kept silent.
type AnnouncerConfig struct {
	Enabled   bool   `json:"enabled" envconfig:"ENABLED"`
	QuietMask string `json:"quietMask,omitempty" envconfig:"QUIET_MASK"`
}

// DefaultConfig returns a config with all defaults applied.
func DefaultConfig() *Config {
	home, _ := resolveHomeDir()
	return &Config{
		Paths: PathsConfig{
			DataDir: filepath.Join(home, ConfigDir),
		},
		Model: ModelConfig{
			Name:              "llama3",
			MaxTokens:         4096,
			Temperature:       0.7,
			MaxToolIterations: 5,
			HistoryWindow:     20,
		},
		Providers: ProvidersConfig{
			Ollama: OllamaConfig{
				APIBase: "http://localhost:11434",
			},
			LocalWhisper: LocalWhisperConfig{
				Model:      "base",
				BinaryPath: "whisper",
			},
		},
		Speech: SpeechConfig{
			ListenSeconds: 8,
		},
		Weather: WeatherConfig{
			APIBase: "https://api.openweathermap.org/data/2.5",
			Units:   "metric",
		},
		Announcer: AnnouncerConfig{
			Enabled: true,
		},
	}
}
