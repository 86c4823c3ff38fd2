package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epinet/config"
	"github.com/katalvlaran/epinet/report"
)

const smallScenario = `
run:
  days: 20
  seed: 5
  aging_interval: 0
population:
  size: 150
  max_age: 70
diseases:
  - name: flu
    states:
      - {name: S}
      - {name: E}
      - {name: I, infectivity: 1, symptoms: 1}
      - {name: R}
    groups:
      - initial_percent: [0, 0, 10, 0]
        hazards:
          - [0, 0, 0, 0]
          - [0, 0, 0.5, 0]
          - [0, 0, 0, 0.2]
          - [0, 0, 0, 0]
    period: 1
networks:
  - label: household
    mean_degree: 3
    contacts_per_link_per_day: 1
    transmission_per_contact: 0.3
    enroll:
      fraction: 1
logging:
  level: warn
`

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"EPINET_LOG_LEVEL", "EPINET_DB", "EPINET_SEED", "EPINET_DAYS"} {
		t.Setenv(k, "")
	}
}

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(smallScenario), 0600))
	return path
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "epinet version "+version+"\n", out)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	out, _, err := execute(t, "validate", "-c", writeScenario(t))
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 1 disease(s), 1 network(s)")
	assert.Contains(t, out, "flu: 4 states, 1 age group(s)")

	out, _, err = execute(t, "validate", "--json", "-c", writeScenario(t))
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, true, got["valid"])
}

func TestValidateRejectsBadConfig(t *testing.T) {
	clearEnv(t)
	bad := strings.Replace(smallScenario, "[0, 0, 0, 0.2]", "[0, 0.9, 0, 0.2]", 1)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(bad), 0600))

	_, _, err := execute(t, "validate", "-c", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flu")

	_, _, err = execute(t, "validate", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRunJSON(t *testing.T) {
	clearEnv(t)
	db := filepath.Join(t.TempDir(), "runs.db")
	out, _, err := execute(t, "run", "--json", "-c", writeScenario(t), "--db", db, "--days", "12", "--seed", "3")
	require.NoError(t, err)

	var s summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 12, s.Last.Day)
	assert.Equal(t, 150, s.Population)
	require.Len(t, s.Last.Diseases, 1)
	dd := s.Last.Diseases[0]
	total := 0
	for _, c := range dd.Counts {
		total += c
	}
	assert.Equal(t, 150, total)

	store, err := report.OpenSQLite(db)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, s.Run, runs[0].ID)
	assert.Equal(t, int64(3), runs[0].Seed)
	assert.Equal(t, 12, runs[0].LastDay)
}

func TestRunText(t *testing.T) {
	clearEnv(t)
	out, _, err := execute(t, "run", "-c", writeScenario(t), "--days", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "day 5, population 150")
	assert.Contains(t, out, "flu")
	assert.Contains(t, out, "incidence")
}

func TestRunRejectsBadFlags(t *testing.T) {
	clearEnv(t)
	_, _, err := execute(t, "run", "-c", writeScenario(t), "--days", "0")
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestRunLogsAtRequestedLevel(t *testing.T) {
	clearEnv(t)
	_, stderr, err := execute(t, "run", "-c", writeScenario(t), "--days", "2", "--log-level", "info")
	require.NoError(t, err)
	assert.Contains(t, stderr, "msg=setup")
	assert.Contains(t, stderr, "msg=finished")
}

func TestRunWritesEventLog(t *testing.T) {
	clearEnv(t)
	events := filepath.Join(t.TempDir(), "logs", "events.jsonl")
	_, _, err := execute(t, "run", "-c", writeScenario(t), "--days", "3",
		"--log-level", "debug", "--events", events)
	require.NoError(t, err)

	data, err := os.ReadFile(events)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"exposed"`)
}

func TestConfigDefaultRoundTrips(t *testing.T) {
	clearEnv(t)
	out, _, err := execute(t, "config", "default")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "default.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0600))
	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestConfigShowAppliesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("EPINET_DAYS", "42")
	out, _, err := execute(t, "config", "show", "-c", writeScenario(t))
	require.NoError(t, err)
	assert.Contains(t, out, "days: 42")
	assert.Contains(t, out, "label: household")
}
