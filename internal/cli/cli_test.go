package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runRootCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	_, err := rootCmd.ExecuteC()
	rootCmd.SetArgs(nil)
	return strings.TrimSpace(buf.String()), err
}

func TestRoutineAddListRemove(t *testing.T) {
	t.Setenv("ROTINA_HOME", t.TempDir())

	if _, err := runRootCommand(t, "routine", "add", "07:00", "08:00", "morning", "run"); err != nil {
		t.Fatalf("routine add failed: %v", err)
	}
	if _, err := runRootCommand(t, "routine", "add", "06:30", "07:00", "stretch"); err != nil {
		t.Fatalf("routine add failed: %v", err)
	}

	store := openStore()
	entries := store.List()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Activity != "stretch" {
		t.Errorf("expected sorted order, got %q first", entries[0].Activity)
	}
	if entries[1].Activity != "morning run" {
		t.Errorf("expected joined activity, got %q", entries[1].Activity)
	}

	if _, err := runRootCommand(t, "routine", "remove", "run"); err != nil {
		t.Fatalf("routine remove failed: %v", err)
	}
	if got := len(openStore().List()); got != 1 {
		t.Errorf("expected 1 entry after remove, got %d", got)
	}
}

func TestRoutineAddRejectsBadTime(t *testing.T) {
	t.Setenv("ROTINA_HOME", t.TempDir())

	if _, err := runRootCommand(t, "routine", "add", "25:00", "26:00", "sleepwalk"); err == nil {
		t.Fatal("expected invalid time error")
	}
	if got := len(openStore().List()); got != 0 {
		t.Errorf("expected empty routine, got %d entries", got)
	}
}

func TestConfigureWritesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ROTINA_HOME", home)

	if _, err := runRootCommand(t, "configure", "--model", "llama3.1", "--ollama-url", "http://box:11434"); err != nil {
		t.Fatalf("configure failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(home, ".rotina", "config.json"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var cfg map[string]any
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	model, ok := cfg["model"].(map[string]any)
	if !ok {
		t.Fatal("missing model section")
	}
	if model["name"] != "llama3.1" {
		t.Errorf("unexpected model: %#v", model["name"])
	}
}
