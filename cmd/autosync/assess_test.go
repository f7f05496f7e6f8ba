package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const assessInput = `{"packages":[
	{"name":"requests","current":"2.31.0","candidate":"2.32.0"},
	{"name":"urllib3","current":"2.0.7","candidate":"2.0.8"},
	{"name":"django","current":"4.2.0","candidate":"5.0.0"},
	{"name":"weird","current":"1.0.0-beta","candidate":"1.0.0"}
]}`

func runAssess(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"assess"}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestAssessFromStdinJSON(t *testing.T) {
	out, err := runAssess(t, assessInput, "--json", "--max-major", "0")
	require.NoError(t, err)

	var payload struct {
		Assessment struct {
			Counts          map[string]int      `json:"counts"`
			PackagesByLevel map[string][]string `json:"packages_by_level"`
			Unclassified    []string            `json:"unclassified"`
		} `json:"assessment"`
		AutoApply struct {
			Allowed     bool     `json:"allowed"`
			Exceedances []string `json:"exceedances"`
			Applied     bool     `json:"applied"`
		} `json:"auto_apply"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, map[string]int{"major": 1, "minor": 1, "patch": 1}, payload.Assessment.Counts)
	require.Equal(t, []string{"weird"}, payload.Assessment.Unclassified)
	require.False(t, payload.AutoApply.Allowed)
	require.Equal(t, []string{"major"}, payload.AutoApply.Exceedances)
	require.False(t, payload.AutoApply.Applied)
}

func TestAssessUnsetThresholdsAreUnlimited(t *testing.T) {
	out, err := runAssess(t, assessInput)
	require.NoError(t, err)
	require.Contains(t, out, "Assessment")
	require.Contains(t, out, "unclassified (never auto-applied): weird")
	require.Contains(t, out, "Auto-apply disabled; 3 package(s) within thresholds")
}

func TestAssessFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.json")
	require.NoError(t, os.WriteFile(path, []byte(assessInput), 0o644))

	out, err := runAssess(t, "", "--input", path, "--max-patch", "0")
	require.NoError(t, err)
	require.Contains(t, out, "Auto-apply blocked: patch exceeded its threshold")
}

func TestAssessEmptyInput(t *testing.T) {
	out, err := runAssess(t, "")
	require.NoError(t, err)
	require.Contains(t, out, "Nothing to upgrade.")
}

func TestAssessRejectsNegativeThreshold(t *testing.T) {
	_, err := runAssess(t, assessInput, "--max-minor", "-1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid thresholds")
}

func TestAssessRejectsMalformedInput(t *testing.T) {
	_, err := runAssess(t, "{not json")
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode candidates stdin")
}

func TestAssessMissingFile(t *testing.T) {
	_, err := runAssess(t, "", "--input", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "read candidates")
}

func TestAssessWarnsOnStderr(t *testing.T) {
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(assessInput))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"assess"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, stderr.String(), "WARNING UNCLASSIFIED_VERSION")
	require.NotContains(t, stdout.String(), "WARNING")
}
