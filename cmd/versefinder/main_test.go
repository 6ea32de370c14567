package main

import (
	"flag"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestAIConfigFromFlags(t *testing.T) {
	newContext := func(t *testing.T, args map[string]string) *cli.Context {
		t.Helper()
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("embedding-host", "http://localhost:11434/v1", "")
		set.String("embedding-model", "all-minilm", "")
		set.String("rerank-host", "", "")
		set.String("rerank-model", "", "")
		for name, value := range args {
			require.NoError(t, set.Set(name, value))
		}
		return cli.NewContext(nil, set, nil)
	}

	t.Run("defaults have no reranker", func(t *testing.T) {
		config, err := aiConfigFromFlags(newContext(t, nil))
		require.NoError(t, err)
		assert.Equal(t, "all-minilm", config.EmbeddingModel)
		assert.False(t, config.RerankEnabled())
	})

	t.Run("rerank model enables reranking", func(t *testing.T) {
		config, err := aiConfigFromFlags(newContext(t, map[string]string{
			"rerank-model": "ms-marco-minilm",
		}))
		require.NoError(t, err)
		assert.True(t, config.RerankEnabled())
		// Rerank host falls back to the embedding host.
		assert.Equal(t, config.EmbeddingHost, config.RerankHost)
	})

	t.Run("missing embedding model fails validation", func(t *testing.T) {
		_, err := aiConfigFromFlags(newContext(t, map[string]string{
			"embedding-model": "",
		}))
		assert.Error(t, err)
	})
}

func TestSetupLogger(t *testing.T) {
	defer slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	newContext := func(level string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", level, "")
		return cli.NewContext(nil, set, nil)
	}

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
			assert.NoError(t, setupLogger(newContext(level)), "level=%s", level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		err := setupLogger(newContext("verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestNormalizeCommandArgs(t *testing.T) {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:      "normalize",
				Action:    normalizeCommand,
				ArgsUsage: "<input.csv> <output.csv>",
			},
		},
	}

	t.Run("requires two arguments", func(t *testing.T) {
		err := app.Run([]string{"versefinder", "normalize", "only-one.csv"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected")
	})
}
