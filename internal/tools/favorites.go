package tools

import (
	"context"

	"github.com/rotina/rotina/internal/favorites"
)

// GetFavoriteTool looks up a remembered preference.
type GetFavoriteTool struct {
	store *favorites.Store
}

func NewGetFavoriteTool(store *favorites.Store) *GetFavoriteTool {
	return &GetFavoriteTool{store: store}
}

func (t *GetFavoriteTool) Name() string { return "get_favorite" }
func (t *GetFavoriteTool) Description() string {
	return "Look up one of the user's remembered preferences, such as their favorite color."
}
func (t *GetFavoriteTool) Tier() int { return TierReadOnly }

func (t *GetFavoriteTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{
				"type":        "string",
				"description": "Preference name, e.g. \"color\". Defaults to color.",
			},
		},
	}
}

func (t *GetFavoriteTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	name := GetString(params, "name", "color")
	value, ok := t.store.Get(name)
	if !ok {
		return statusPayload(map[string]any{
			"status": "not_found",
			"name":   name,
		}), nil
	}
	return statusPayload(map[string]any{
		"status": "success",
		"name":   name,
		"value":  value,
	}), nil
}

// SetFavoriteTool stores a preference.
type SetFavoriteTool struct {
	store *favorites.Store
}

func NewSetFavoriteTool(store *favorites.Store) *SetFavoriteTool {
	return &SetFavoriteTool{store: store}
}

func (t *SetFavoriteTool) Name() string { return "set_favorite" }
func (t *SetFavoriteTool) Description() string {
	return "Remember one of the user's preferences, such as their favorite color."
}
func (t *SetFavoriteTool) Tier() int { return TierWrite }

func (t *SetFavoriteTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{
				"type":        "string",
				"description": "Preference name, e.g. \"color\". Defaults to color.",
			},
			"value": map[string]any{
				"type":        "string",
				"description": "The preference value to remember",
			},
		},
		"required": []string{"value"},
	}
}

func (t *SetFavoriteTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	name := GetString(params, "name", "color")
	value := GetString(params, "value", "")
	if value == "" {
		return missingArg("value"), nil
	}
	if err := t.store.Set(name, value); err != nil {
		return errorPayload(err.Error()), nil
	}
	return statusPayload(map[string]any{
		"status": "success",
		"name":   name,
		"value":  value,
	}), nil
}
