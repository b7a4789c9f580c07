package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rotina/rotina/internal/config"
	"github.com/rotina/rotina/internal/favorites"
)

func testFavorites(t *testing.T) *favorites.Store {
	t.Helper()
	return favorites.NewStore(filepath.Join(t.TempDir(), "favorites.json"))
}

func TestFavoriteTools(t *testing.T) {
	store := testFavorites(t)
	get := NewGetFavoriteTool(store)
	set := NewSetFavoriteTool(store)
	ctx := context.Background()

	result, err := get.Execute(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p := decodePayload(t, result); p["status"] != "not_found" {
		t.Errorf("expected not_found before set, got %v", p)
	}

	result, err = set.Execute(ctx, map[string]any{"value": "blue"})
	if err != nil {
		t.Fatal(err)
	}
	if p := decodePayload(t, result); p["status"] != "success" {
		t.Errorf("unexpected set payload %v", p)
	}

	result, err = get.Execute(ctx, map[string]any{"name": "color"})
	if err != nil {
		t.Fatal(err)
	}
	p := decodePayload(t, result)
	if p["status"] != "success" || p["value"] != "blue" {
		t.Errorf("unexpected get payload %v", p)
	}
}

func TestSetFavoriteToolMissingValue(t *testing.T) {
	set := NewSetFavoriteTool(testFavorites(t))
	result, err := set.Execute(context.Background(), map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	if p := decodePayload(t, result); p["status"] != "error" {
		t.Errorf("expected error payload, got %v", p)
	}
}

func TestWeatherTool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "London" {
			t.Errorf("unexpected city %q", r.URL.Query().Get("q"))
		}
		if r.URL.Query().Get("appid") != "test-key" {
			t.Errorf("missing api key")
		}
		w.Write([]byte(`{"main":{"temp":14.5},"weather":[{"description":"light rain"}]}`))
	}))
	defer srv.Close()

	tool := NewWeatherTool(config.WeatherConfig{
		APIKey:  "test-key",
		APIBase: srv.URL,
		Units:   "metric",
	})
	result, err := tool.Execute(context.Background(), map[string]any{"city": "London"})
	if err != nil {
		t.Fatal(err)
	}
	p := decodePayload(t, result)
	if p["status"] != "success" || p["conditions"] != "light rain" {
		t.Errorf("unexpected payload %v", p)
	}
	if p["temperature"] != 14.5 {
		t.Errorf("unexpected temperature %v", p["temperature"])
	}
}

func TestWeatherToolBadCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":"404"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	tool := NewWeatherTool(config.WeatherConfig{APIKey: "k", APIBase: srv.URL, Units: "metric"})
	result, err := tool.Execute(context.Background(), map[string]any{"city": "Nowhereville"})
	if err != nil {
		t.Fatal(err)
	}
	if p := decodePayload(t, result); p["status"] != "error" {
		t.Errorf("expected error payload, got %v", p)
	}
}

func TestWeatherToolNoKey(t *testing.T) {
	tool := NewWeatherTool(config.WeatherConfig{APIBase: "http://localhost:0", Units: "metric"})
	result, err := tool.Execute(context.Background(), map[string]any{"city": "London"})
	if err != nil {
		t.Fatal(err)
	}
	if p := decodePayload(t, result); p["status"] != "error" {
		t.Errorf("expected error payload without api key, got %v", p)
	}
}

func TestJokeTool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Error("expected JSON accept header")
		}
		w.Write([]byte(`{"id":"x","joke":"A dad joke.","status":200}`))
	}))
	defer srv.Close()

	tool := NewJokeToolWithAPI(srv.URL)
	result, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	p := decodePayload(t, result)
	if p["status"] != "success" || p["joke"] != "A dad joke." {
		t.Errorf("unexpected payload %v", p)
	}
}

func TestJokeToolFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force a connection error

	tool := NewJokeToolWithAPI(srv.URL)
	result, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	p := decodePayload(t, result)
	if p["status"] != "success" || p["joke"] != fallbackJoke {
		t.Errorf("expected fallback joke, got %v", p)
	}
}
