package speech

import (
	"context"
	"testing"
)

func TestUnavailableSpeaker(t *testing.T) {
	s := &Speaker{}
	if s.Available() {
		t.Error("empty speaker should not be available")
	}
	if err := s.Say(context.Background(), "hello"); err == nil {
		t.Error("expected error from unavailable speaker")
	}
}

func TestUnavailableRecorder(t *testing.T) {
	r := &Recorder{}
	if r.Available() {
		t.Error("empty recorder should not be available")
	}
	if err := r.Record(context.Background(), "/tmp/out.wav", 3); err == nil {
		t.Error("expected error from unavailable recorder")
	}
}

func TestNewSpeakerNeverNil(t *testing.T) {
	if NewSpeaker("") == nil {
		t.Fatal("NewSpeaker returned nil")
	}
	if NewRecorder() == nil {
		t.Fatal("NewRecorder returned nil")
	}
}
