package tools

import (
	"context"
	"errors"

	"github.com/rotina/rotina/internal/clock"
	"github.com/rotina/rotina/internal/routine"
)

// GetRoutineTool lists the full daily routine.
type GetRoutineTool struct {
	store *routine.Store
}

func NewGetRoutineTool(store *routine.Store) *GetRoutineTool {
	return &GetRoutineTool{store: store}
}

func (t *GetRoutineTool) Name() string { return "get_routine" }
func (t *GetRoutineTool) Description() string {
	return "Retrieve the user's entire daily routine, sorted by start time."
}
func (t *GetRoutineTool) Tier() int { return TierReadOnly }

func (t *GetRoutineTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func (t *GetRoutineTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	entries := t.store.List()
	if len(entries) == 0 {
		return statusPayload(map[string]any{
			"status":  "not_found",
			"message": "No daily routine is set.",
		}), nil
	}
	return statusPayload(map[string]any{
		"status":  "success",
		"entries": entries,
	}), nil
}

// GetTaskByTimeTool finds the activity scheduled at a given time, or
// the next one to start.
type GetTaskByTimeTool struct {
	resolver *routine.Resolver
}

func NewGetTaskByTimeTool(resolver *routine.Resolver) *GetTaskByTimeTool {
	return &GetTaskByTimeTool{resolver: resolver}
}

func (t *GetTaskByTimeTool) Name() string { return "get_task_by_time" }
func (t *GetTaskByTimeTool) Description() string {
	return "Find the activity scheduled at a specific time (HH:MM). Without a time, uses the current time."
}
func (t *GetTaskByTimeTool) Tier() int { return TierReadOnly }

func (t *GetTaskByTimeTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query_time": map[string]any{
				"type":        "string",
				"description": "Time of day in HH:MM 24-hour format. Optional; defaults to now.",
			},
		},
	}
}

func (t *GetTaskByTimeTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	queryTime := GetString(params, "query_time", "")

	var res routine.Resolution
	if queryTime == "" {
		res = t.resolver.ResolveNow()
	} else {
		var err error
		res, err = t.resolver.Resolve(queryTime)
		if errors.Is(err, clock.ErrInvalidTimeFormat) {
			return errorPayload("Invalid time format. Please use HH:MM."), nil
		} else if err != nil {
			return errorPayload(err.Error()), nil
		}
	}

	data, err := resolutionPayload(res)
	if err != nil {
		return errorPayload(err.Error()), nil
	}
	return data, nil
}

func resolutionPayload(res routine.Resolution) (string, error) {
	fields := map[string]any{
		"status": res.Status,
		"time":   res.Time,
	}
	if res.Activity != "" {
		fields["start"] = res.Start
		fields["end"] = res.End
		fields["activity"] = res.Activity
	}
	if res.Message != "" {
		fields["message"] = res.Message
	}
	return statusPayload(fields), nil
}

// AddRoutineEntryTool adds a new routine entry.
type AddRoutineEntryTool struct {
	store *routine.Store
}

func NewAddRoutineEntryTool(store *routine.Store) *AddRoutineEntryTool {
	return &AddRoutineEntryTool{store: store}
}

func (t *AddRoutineEntryTool) Name() string { return "add_routine_entry" }
func (t *AddRoutineEntryTool) Description() string {
	return "Add a new entry to the daily routine. Start and end are HH:MM; an end at or before the start wraps past midnight."
}
func (t *AddRoutineEntryTool) Tier() int { return TierWrite }

func (t *AddRoutineEntryTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"start": map[string]any{
				"type":        "string",
				"description": "Start time in HH:MM 24-hour format",
			},
			"end": map[string]any{
				"type":        "string",
				"description": "End time in HH:MM 24-hour format",
			},
			"activity": map[string]any{
				"type":        "string",
				"description": "What the user does in this slot",
			},
		},
		"required": []string{"start", "end", "activity"},
	}
}

func (t *AddRoutineEntryTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	start := GetString(params, "start", "")
	end := GetString(params, "end", "")
	activity := GetString(params, "activity", "")
	if start == "" {
		return missingArg("start"), nil
	}
	if end == "" {
		return missingArg("end"), nil
	}
	if activity == "" {
		return missingArg("activity"), nil
	}

	entry, err := t.store.Add(start, end, activity)
	if errors.Is(err, clock.ErrInvalidTimeFormat) {
		return errorPayload("Invalid time format. Please ensure start and end are HH:MM (e.g. 09:00)."), nil
	} else if err != nil {
		return errorPayload(err.Error()), nil
	}

	return statusPayload(map[string]any{
		"status":   "success",
		"start":    entry.Start,
		"end":      entry.End,
		"activity": entry.Activity,
		"message":  "Added " + entry.Activity + " from " + entry.Start + " to " + entry.End + ".",
	}), nil
}

// RemoveRoutineEntryTool removes routine entries by activity keyword.
type RemoveRoutineEntryTool struct {
	store *routine.Store
}

func NewRemoveRoutineEntryTool(store *routine.Store) *RemoveRoutineEntryTool {
	return &RemoveRoutineEntryTool{store: store}
}

func (t *RemoveRoutineEntryTool) Name() string { return "remove_routine_entry" }
func (t *RemoveRoutineEntryTool) Description() string {
	return "Remove every routine entry whose activity matches a keyword (case-insensitive substring)."
}
func (t *RemoveRoutineEntryTool) Tier() int { return TierWrite }

func (t *RemoveRoutineEntryTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"activity_keyword": map[string]any{
				"type":        "string",
				"description": "Keyword matched against entry activities",
			},
		},
		"required": []string{"activity_keyword"},
	}
}

func (t *RemoveRoutineEntryTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	keyword := GetString(params, "activity_keyword", "")
	if keyword == "" {
		return missingArg("activity_keyword"), nil
	}

	outcome, err := t.store.Remove(keyword)
	if err != nil {
		return errorPayload(err.Error()), nil
	}
	if !outcome.Matched {
		return statusPayload(map[string]any{
			"status":  "not_found",
			"keyword": keyword,
		}), nil
	}
	return statusPayload(map[string]any{
		"status":        "success",
		"keyword":       keyword,
		"removed_count": outcome.Removed,
	}), nil
}
