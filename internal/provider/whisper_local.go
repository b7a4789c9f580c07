package provider

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rotina/rotina/internal/config"
)

// LocalWhisperProvider adds transcription via a local Whisper binary on
// top of a chat provider.
type LocalWhisperProvider struct {
	config config.LocalWhisperConfig
	chat   LLMProvider
}

// NewLocalWhisperProvider creates a new local Whisper provider wrapping
// the given chat provider.
func NewLocalWhisperProvider(cfg config.LocalWhisperConfig, chat LLMProvider) *LocalWhisperProvider {
	return &LocalWhisperProvider{
		config: cfg,
		chat:   chat,
	}
}

func (p *LocalWhisperProvider) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	return p.chat.Chat(ctx, req)
}

func (p *LocalWhisperProvider) DefaultModel() string {
	return p.chat.DefaultModel()
}

// Transcribe converts audio to text using the command-line Whisper.
func (p *LocalWhisperProvider) Transcribe(ctx context.Context, req *AudioRequest) (*AudioResponse, error) {
	if !p.config.Enabled {
		return p.chat.Transcribe(ctx, req)
	}

	model := req.Model
	if model == "" {
		model = p.config.Model
	}

	tmpDir, err := os.MkdirTemp("", "whisper-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	args := []string{
		req.FilePath,
		"--model", model,
		"--output_dir", tmpDir,
		"--output_format", "txt",
		"--verbose", "False",
	}
	if p.config.Language != "" {
		args = append(args, "--language", p.config.Language)
	}

	cmd := exec.CommandContext(ctx, p.config.BinaryPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("whisper command failed: %w (output: %s)", err, string(output))
	}

	// Whisper writes <input-basename>.txt into the output dir.
	base := filepath.Base(req.FilePath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	txtData, err := os.ReadFile(filepath.Join(tmpDir, name+".txt"))
	if err != nil {
		return nil, fmt.Errorf("read transcription output: %w", err)
	}

	return &AudioResponse{
		Text: strings.TrimSpace(string(txtData)),
	}, nil
}
