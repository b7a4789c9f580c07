// Package speech provides optional text-to-speech and microphone
// capture, resolved at startup by probing for local binaries.
package speech

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
)

// Speaker speaks text aloud through a local TTS binary.
type Speaker struct {
	binary string
	voice  string
}

// NewSpeaker probes for a usable TTS binary. The returned Speaker
// reports Available() == false when none is installed.
func NewSpeaker(voice string) *Speaker {
	for _, candidate := range []string{"say", "espeak", "spd-say"} {
		if path, err := exec.LookPath(candidate); err == nil {
			slog.Debug("speech output enabled", "binary", path)
			return &Speaker{binary: candidate, voice: voice}
		}
	}
	return &Speaker{}
}

// Available reports whether a TTS binary was found.
func (s *Speaker) Available() bool {
	return s.binary != ""
}

// Say speaks text, blocking until playback finishes.
func (s *Speaker) Say(ctx context.Context, text string) error {
	if !s.Available() {
		return fmt.Errorf("no speech output binary available")
	}
	var args []string
	if s.voice != "" {
		switch s.binary {
		case "say":
			args = append(args, "-v", s.voice)
		case "espeak":
			args = append(args, "-v", s.voice)
		}
	}
	args = append(args, text)
	cmd := exec.CommandContext(ctx, s.binary, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("speech output failed: %w", err)
	}
	return nil
}

// Recorder captures microphone audio through a local recording binary.
type Recorder struct {
	binary string
}

// NewRecorder probes for a usable recording binary.
func NewRecorder() *Recorder {
	for _, candidate := range []string{"arecord", "rec", "ffmpeg"} {
		if path, err := exec.LookPath(candidate); err == nil {
			slog.Debug("speech input enabled", "binary", path)
			return &Recorder{binary: candidate}
		}
	}
	return &Recorder{}
}

// Available reports whether a recording binary was found.
func (r *Recorder) Available() bool {
	return r.binary != ""
}

// Record captures seconds of audio into the WAV file at dest.
func (r *Recorder) Record(ctx context.Context, dest string, seconds int) error {
	if !r.Available() {
		return fmt.Errorf("no recording binary available")
	}
	if seconds <= 0 {
		seconds = 5
	}
	dur := strconv.Itoa(seconds)

	var cmd *exec.Cmd
	switch r.binary {
	case "arecord":
		cmd = exec.CommandContext(ctx, r.binary, "-f", "cd", "-d", dur, dest)
	case "rec":
		cmd = exec.CommandContext(ctx, r.binary, dest, "trim", "0", dur)
	case "ffmpeg":
		cmd = exec.CommandContext(ctx, r.binary, "-y", "-f", "alsa", "-i", "default", "-t", dur, dest)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("recording failed: %w", err)
	}
	return nil
}
