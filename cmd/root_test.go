package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/fighter-timeline/internal/app"
	"github.com/JakeFAU/fighter-timeline/internal/config"
	"github.com/JakeFAU/fighter-timeline/internal/highlights"
	"github.com/JakeFAU/fighter-timeline/internal/timeline"
)

const bio = "[2015] Debut\nWon.\n\n[2017] Title Shot\n\n[2019] Champion\nDefended twice."

func useTestApp(t *testing.T) {
	t.Helper()
	prev := newApp
	newApp = func(ctx context.Context, cfg config.Config, _ *zap.Logger) (*app.App, error) {
		return app.New(ctx, cfg, zap.NewNop(), prometheus.NewRegistry())
	}
	t.Cleanup(func() { newApp = prev })
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseCommandStdin(t *testing.T) {
	useTestApp(t)

	out, err := execute(t, bio, "parse")
	require.NoError(t, err)

	var view highlights.View
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Equal(t, timeline.ModeTimeline, view.Mode)
	require.Len(t, view.Events, 3)
	require.Equal(t, "Title Shot", view.Events[1].Title)
}

func TestParseCommandFileAndStore(t *testing.T) {
	useTestApp(t)

	dir := t.TempDir()
	bioPath := filepath.Join(dir, "bio.txt")
	require.NoError(t, os.WriteFile(bioPath, []byte("[2020] Debut"), 0o600))

	out, err := execute(t, "", "parse", "--compact", bioPath)
	require.NoError(t, err)
	require.JSONEq(t, `{"events":[{"date":"2020","title":"Debut","text":""}],"mode":"no_highlights","duration_ms":15000}`, out)

	seed := filepath.Join(dir, "fighters.json")
	records, err := json.Marshal([]map[string]any{{"id": 5, "name": "Five", "bio_long": bio}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(seed, records, 0o600))
	t.Setenv("TIMELINE_STORAGE_SEED_FILE", seed)

	out, err = execute(t, "", "parse", "--id", "5")
	require.NoError(t, err)
	var view highlights.View
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.NotNil(t, view.Fighter)
	require.Equal(t, "Five", view.Fighter.Name)

	_, err = execute(t, "", "parse", "--id", "6")
	require.ErrorContains(t, err, "load fighter 6")
}

func TestSimulateCommandCompletes(t *testing.T) {
	useTestApp(t)
	t.Setenv("TIMELINE_SCROLL_DURATION_MS", "40")
	t.Setenv("TIMELINE_SCROLL_SETTLE_DELAY_MS", "5")
	t.Setenv("TIMELINE_SCROLL_FRAME_INTERVAL_MS", "5")

	out, err := execute(t, "", "simulate", "--top", "100", "--height", "500", "--viewport", "400")
	require.NoError(t, err)
	require.Equal(t, "completed\n", out)
}

func TestRootCommandRejectsInvalidConfig(t *testing.T) {
	useTestApp(t)
	t.Setenv("TIMELINE_STORAGE_PROVIDER", "s3")

	_, err := execute(t, "", "parse")
	require.ErrorContains(t, err, "load config")
}
