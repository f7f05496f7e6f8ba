package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/dep-autosync/internal/autosync"
	"github.com/conn-castle/dep-autosync/internal/config"
	"github.com/conn-castle/dep-autosync/internal/risk"
)

type stubCoordinator struct {
	scan       autosync.ScanResult
	plan       json.RawMessage
	upgradeErr error
	upgrades   []autosync.UpgradeRequest
}

func (s *stubCoordinator) Preflight(context.Context) (json.RawMessage, error) {
	return nil, nil
}

func (s *stubCoordinator) Guard(context.Context, json.RawMessage) (autosync.ScanResult, error) {
	return s.scan, nil
}

func (s *stubCoordinator) Upgrade(_ context.Context, req autosync.UpgradeRequest) (json.RawMessage, error) {
	s.upgrades = append(s.upgrades, req)
	return s.plan, s.upgradeErr
}

// useCoordinator swaps the coordinator factory for the duration of the test.
func useCoordinator(t *testing.T, coord autosync.Coordinator) {
	t.Helper()
	orig := newCoordinator
	t.Cleanup(func() { newCoordinator = orig })
	newCoordinator = func(*config.Config) (autosync.Coordinator, error) {
		return coord, nil
	}
}

// writeConfig writes an autosync.toml with the given thresholds body and returns its path.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "autosync.toml")
	content := body + `
[guard]
command = ["guard"]

[upgrade]
command = ["upgrade"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func sampleScan() autosync.ScanResult {
	return autosync.ScanResult{Packages: []risk.Candidate{
		{Name: "requests", Current: "2.31.0", Candidate: "2.32.0"},
		{Name: "urllib3", Current: "2.0.7", Candidate: "2.0.8"},
		{Name: "django", Current: "4.2.0", Candidate: "5.0.0"},
	}}
}
