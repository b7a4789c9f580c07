package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotina/rotina/internal/config"
)

// WeatherTool fetches current conditions from OpenWeatherMap.
type WeatherTool struct {
	cfg        config.WeatherConfig
	httpClient *http.Client
}

func NewWeatherTool(cfg config.WeatherConfig) *WeatherTool {
	return &WeatherTool{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (t *WeatherTool) Name() string { return "get_weather" }
func (t *WeatherTool) Description() string {
	return "Get the current weather conditions and temperature for a city."
}
func (t *WeatherTool) Tier() int { return TierExternal }

func (t *WeatherTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"city": map[string]any{
				"type":        "string",
				"description": "City name, e.g. \"London\"",
			},
		},
		"required": []string{"city"},
	}
}

func (t *WeatherTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	city := GetString(params, "city", "")
	if city == "" {
		return missingArg("city"), nil
	}
	if t.cfg.APIKey == "" {
		return errorPayload("No weather API key is configured."), nil
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", t.cfg.APIKey)
	q.Set("units", t.cfg.Units)
	reqURL := fmt.Sprintf("%s/weather?%s", t.cfg.APIBase, q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return errorPayload(err.Error()), nil
	}
	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return errorPayload("Sorry, there was an error fetching the weather."), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorPayload("Sorry, there was an error fetching the weather."), nil
	}
	if resp.StatusCode != http.StatusOK {
		return errorPayload("Couldn't get the weather. Is the city name correct?"), nil
	}

	var data struct {
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}
	if err := json.Unmarshal(body, &data); err != nil || len(data.Weather) == 0 {
		return errorPayload("Unexpected weather service response."), nil
	}

	return statusPayload(map[string]any{
		"status":      "success",
		"city":        city,
		"temperature": data.Main.Temp,
		"units":       t.cfg.Units,
		"conditions":  data.Weather[0].Description,
	}), nil
}
