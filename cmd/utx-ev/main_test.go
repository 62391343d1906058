package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newTestApp(t *testing.T, cli CLI) (*app, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	if cli.Config == "" {
		cli.Config = filepath.Join(t.TempDir(), "missing.hcl")
	}
	if cli.Format == "" {
		cli.Format = "text"
	}
	if cli.Progress == "" {
		cli.Progress = "none"
	}
	var stdout, stderr bytes.Buffer
	return &app{
		cli:    cli,
		stdout: &stdout,
		stderr: &stderr,
		clock:  quartz.NewMock(t),
	}, &stdout, &stderr
}

func TestRunTextReport(t *testing.T) {
	a, stdout, stderr := newTestApp(t, CLI{
		Trials: ptr(200),
		Seed:   ptr(int64(42)),
		Class:  []string{"AA", "72o"},
	})
	require.Equal(t, exitOK, a.run(context.Background()), stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2, "subset runs report no total")
	assert.True(t, strings.HasPrefix(lines[0], "AA => maxbet hand for "), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "72o => "), lines[1])
}

func TestRunIsReproducible(t *testing.T) {
	cli := CLI{Trials: ptr(100), Seed: ptr(int64(9)), Class: []string{"KQs", "T8o", "55"}}
	a, first, _ := newTestApp(t, cli)
	require.Equal(t, exitOK, a.run(context.Background()))

	cli.Workers = ptr(1)
	cli.Progress = "log"
	b, second, _ := newTestApp(t, cli)
	require.Equal(t, exitOK, b.run(context.Background()))

	assert.Equal(t, first.String(), second.String())
}

func TestRunConfigFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "utx.hcl")
	require.NoError(t, os.WriteFile(configPath, []byte(`
simulation {
  trials  = 50
  ranker  = "paulhankin"
  classes = ["AKs"]
}
`), 0o644))

	out := filepath.Join(dir, "report.json")
	a, stdout, stderr := newTestApp(t, CLI{
		Config: configPath,
		Trials: ptr(80),
		Format: "json",
		Output: out,
	})
	require.Equal(t, exitOK, a.run(context.Background()), stderr.String())
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var decoded struct {
		RunID  string `json:"run_id"`
		Trials int    `json:"trials"`
		Ranker string `json:"ranker"`
		Hands  []struct {
			Hand   string `json:"hand"`
			Trials int    `json:"trials"`
		} `json:"hands"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotEmpty(t, decoded.RunID)
	assert.Equal(t, 80, decoded.Trials)
	assert.Equal(t, "paulhankin", decoded.Ranker)
	require.Len(t, decoded.Hands, 1)
	assert.Equal(t, "AKs", decoded.Hands[0].Hand)
	assert.Equal(t, 80, decoded.Hands[0].Trials)
}

func TestRunRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name string
		cli  CLI
	}{
		{"unknown ranker", CLI{Ranker: "magic"}},
		{"zero trials", CLI{Trials: ptr(0)}},
		{"bad class", CLI{Class: []string{"AKx"}}},
		{"bad log level", CLI{LogLevel: "loud"}},
		{"bad format", CLI{Format: "yaml"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, stdout, _ := newTestApp(t, tc.cli)
			assert.Equal(t, exitError, a.run(context.Background()))
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRunInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, stdout, stderr := newTestApp(t, CLI{Trials: ptr(1000)})
	assert.Equal(t, exitInterrupted, a.run(ctx))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Interrupted")
}
