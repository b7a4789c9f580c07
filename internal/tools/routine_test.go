package tools

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rotina/rotina/internal/routine"
)

func testRoutineStore(t *testing.T) *routine.Store {
	t.Helper()
	return routine.NewStore(filepath.Join(t.TempDir(), "routine.json"))
}

func decodePayload(t *testing.T, raw string) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("tool result is not JSON: %q (%v)", raw, err)
	}
	if _, ok := payload["status"]; !ok {
		t.Fatalf("tool result has no status field: %q", raw)
	}
	return payload
}

func TestGetRoutineToolEmpty(t *testing.T) {
	tool := NewGetRoutineTool(testRoutineStore(t))
	result, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if p := decodePayload(t, result); p["status"] != "not_found" {
		t.Errorf("expected not_found for empty routine, got %v", p)
	}
}

func TestGetRoutineToolSorted(t *testing.T) {
	store := testRoutineStore(t)
	store.Add("11:30", "12:30", "lunch")
	store.Add("09:00", "10:00", "meeting")

	tool := NewGetRoutineTool(store)
	result, err := tool.Execute(context.Background(), map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	p := decodePayload(t, result)
	if p["status"] != "success" {
		t.Fatalf("unexpected payload %v", p)
	}
	entries := p["entries"].([]any)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	first := entries[0].(map[string]any)
	if first["activity"] != "meeting" {
		t.Errorf("expected meeting first, got %v", first)
	}
}

func TestGetTaskByTimeTool(t *testing.T) {
	store := testRoutineStore(t)
	store.Add("09:00", "10:00", "meeting")
	tool := NewGetTaskByTimeTool(routine.NewResolver(store))

	result, err := tool.Execute(context.Background(), map[string]any{"query_time": "09:30"})
	if err != nil {
		t.Fatal(err)
	}
	p := decodePayload(t, result)
	if p["status"] != routine.StatusFound || p["activity"] != "meeting" {
		t.Errorf("unexpected payload %v", p)
	}
}

func TestGetTaskByTimeToolInvalidTime(t *testing.T) {
	tool := NewGetTaskByTimeTool(routine.NewResolver(testRoutineStore(t)))
	result, err := tool.Execute(context.Background(), map[string]any{"query_time": "half past nine"})
	if err != nil {
		t.Fatal(err)
	}
	if p := decodePayload(t, result); p["status"] != "error" {
		t.Errorf("expected error payload, got %v", p)
	}
}

func TestAddRoutineEntryTool(t *testing.T) {
	store := testRoutineStore(t)
	tool := NewAddRoutineEntryTool(store)

	result, err := tool.Execute(context.Background(), map[string]any{
		"start": "9:00", "end": "10:00", "activity": "meeting",
	})
	if err != nil {
		t.Fatal(err)
	}
	p := decodePayload(t, result)
	if p["status"] != "success" || p["start"] != "09:00" {
		t.Errorf("unexpected payload %v", p)
	}
	if got := store.List(); len(got) != 1 {
		t.Errorf("expected one persisted entry, got %v", got)
	}
}

func TestAddRoutineEntryToolInvalidTime(t *testing.T) {
	store := testRoutineStore(t)
	tool := NewAddRoutineEntryTool(store)

	result, err := tool.Execute(context.Background(), map[string]any{
		"start": "9-00", "end": "10:00", "activity": "bad",
	})
	if err != nil {
		t.Fatal(err)
	}
	if p := decodePayload(t, result); p["status"] != "error" {
		t.Errorf("expected error payload, got %v", p)
	}
	if got := store.List(); len(got) != 0 {
		t.Errorf("store must be untouched on failure, got %v", got)
	}
}

func TestAddRoutineEntryToolMissingArgs(t *testing.T) {
	tool := NewAddRoutineEntryTool(testRoutineStore(t))
	result, err := tool.Execute(context.Background(), map[string]any{"start": "09:00"})
	if err != nil {
		t.Fatal(err)
	}
	if p := decodePayload(t, result); p["status"] != "error" {
		t.Errorf("missing arguments must surface as an error payload, got %v", p)
	}
}

func TestRemoveRoutineEntryTool(t *testing.T) {
	store := testRoutineStore(t)
	store.Add("08:00", "08:30", "morning walk")
	store.Add("18:00", "18:30", "evening walk")
	tool := NewRemoveRoutineEntryTool(store)

	result, err := tool.Execute(context.Background(), map[string]any{"activity_keyword": "walk"})
	if err != nil {
		t.Fatal(err)
	}
	p := decodePayload(t, result)
	if p["status"] != "success" || p["removed_count"] != float64(2) {
		t.Errorf("unexpected payload %v", p)
	}

	result, err = tool.Execute(context.Background(), map[string]any{"activity_keyword": "walk"})
	if err != nil {
		t.Fatal(err)
	}
	if p := decodePayload(t, result); p["status"] != "not_found" {
		t.Errorf("expected not_found on second removal, got %v", p)
	}
}

func TestRegistryExecuteUnknownTool(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Execute(context.Background(), "no_such_tool", nil); err == nil {
		t.Fatal("expected error for unknown tool")
	}
}

func TestRegistryDefinitionsOrder(t *testing.T) {
	store := testRoutineStore(t)
	r := NewRegistry()
	r.Register(NewGetRoutineTool(store))
	r.Register(NewAddRoutineEntryTool(store))

	defs := r.Definitions()
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
	if defs[0].Function.Name != "get_routine" || defs[1].Function.Name != "add_routine_entry" {
		t.Errorf("definitions must keep registration order: %v", defs)
	}
	if defs[0].Type != "function" {
		t.Errorf("unexpected definition type %q", defs[0].Type)
	}
}

func TestToolTiers(t *testing.T) {
	store := testRoutineStore(t)
	if got := ToolTier(NewGetRoutineTool(store)); got != TierReadOnly {
		t.Errorf("get_routine tier = %d", got)
	}
	if got := ToolTier(NewAddRoutineEntryTool(store)); got != TierWrite {
		t.Errorf("add_routine_entry tier = %d", got)
	}
	if got := ToolTier(NewJokeTool()); got != TierExternal {
		t.Errorf("tell_joke tier = %d", got)
	}
}
