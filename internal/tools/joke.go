package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const defaultJokeAPI = "https://icanhazdadjoke.com"

// fallbackJoke is used whenever the joke service is unreachable.
const fallbackJoke = "Why do programmers prefer dark mode? Because light attracts bugs."

// JokeTool fetches a dad joke, degrading to a built-in one offline.
type JokeTool struct {
	apiBase    string
	httpClient *http.Client
}

func NewJokeTool() *JokeTool {
	return NewJokeToolWithAPI(defaultJokeAPI)
}

// NewJokeToolWithAPI overrides the joke endpoint (used in tests).
func NewJokeToolWithAPI(apiBase string) *JokeTool {
	return &JokeTool{
		apiBase: apiBase,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (t *JokeTool) Name() string { return "tell_joke" }
func (t *JokeTool) Description() string {
	return "Tell the user a short joke."
}
func (t *JokeTool) Tier() int { return TierExternal }

func (t *JokeTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func (t *JokeTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	joke := fallbackJoke

	httpReq, err := http.NewRequestWithContext(ctx, "GET", t.apiBase+"/", nil)
	if err == nil {
		httpReq.Header.Set("Accept", "application/json")
		if resp, err := t.httpClient.Do(httpReq); err == nil {
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				var data struct {
					Joke string `json:"joke"`
				}
				if json.NewDecoder(resp.Body).Decode(&data) == nil && data.Joke != "" {
					joke = data.Joke
				}
			}
		}
	}

	return statusPayload(map[string]any{
		"status": "success",
		"joke":   joke,
	}), nil
}
