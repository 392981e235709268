package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luca-patrignani/klondike/domain/deck"
	"github.com/luca-patrignani/klondike/domain/klondike"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Config{
		DrawCount:         1,
		PassLimit:         0,
		AutoplayMaxPasses: 25,
		LogLevel:          "info",
	}, cfg)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("KLONDIKE_DRAW_COUNT", "3")
	t.Setenv("KLONDIKE_PASS_LIMIT", "3")
	t.Setenv("KLONDIKE_SEED", "deal-42")
	t.Setenv("KLONDIKE_TIMED", "true")
	t.Setenv("KLONDIKE_AUTOPLAY_MAX_PASSES", "10")
	t.Setenv("KLONDIKE_LOG_LEVEL", "debug")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{
		DrawCount:         3,
		PassLimit:         3,
		Seed:              "deal-42",
		Timed:             true,
		AutoplayMaxPasses: 10,
		LogLevel:          "debug",
	}, cfg)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"draw count":     {"KLONDIKE_DRAW_COUNT": "2"},
		"not a number":   {"KLONDIKE_DRAW_COUNT": "one"},
		"pass limit":     {"KLONDIKE_PASS_LIMIT": "-1"},
		"max passes":     {"KLONDIKE_AUTOPLAY_MAX_PASSES": "0"},
		"log level":      {"KLONDIKE_LOG_LEVEL": "trace"},
		"timed not bool": {"KLONDIKE_TIMED": "sometimes"},
	}
	for name, environment := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(environment)
			assert.Error(t, err)
		})
	}
}

func TestSeededSourceIsReproducible(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{"KLONDIKE_SEED": "same"})
	require.NoError(t, err)
	a, b := deck.New(), deck.New()
	a.Shuffle(cfg.Source())
	b.Shuffle(cfg.Source())
	assert.Equal(t, a, b)
}

func TestGameOptions(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{"KLONDIKE_DRAW_COUNT": "3", "KLONDIKE_PASS_LIMIT": "2"})
	require.NoError(t, err)
	g, err := klondike.NewShuffledGame(cfg.Source(), cfg.GameOptions()...)
	require.NoError(t, err)
	assert.Equal(t, 3, g.DrawCount())
	assert.Equal(t, 2, g.PassLimit())
}
