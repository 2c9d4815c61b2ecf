package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameLine struct {
	AtMs  int64 `json:"at_ms"`
	State any   `json:"state"`
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCurvesCmd_Deterministic(t *testing.T) {
	a, err := run(t, "curves", "--seed", "7")
	require.NoError(t, err)
	b, err := run(t, "curves", "--seed", "7")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	var series map[string]any
	require.NoError(t, json.Unmarshal([]byte(a), &series))
	assert.Equal(t, float64(7), series["seed"])
	assert.NotEmpty(t, series["training"])
}

func TestTimelineCmd_Training(t *testing.T) {
	out, err := run(t, "timeline", "training")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 56)

	var last frameLine
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &last))
	assert.Equal(t, int64(22000), last.AtMs)
	assert.Equal(t, true, last.State.(map[string]any)["complete"])
}

func TestTimelineCmd_Provisioning(t *testing.T) {
	out, err := run(t, "timeline", "provisioning")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	var last frameLine
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &last))
	assert.Equal(t, int64(30100), last.AtMs)
}

func TestTimelineCmd_RejectsUnknownStage(t *testing.T) {
	_, err := run(t, "timeline", "deploy")
	assert.Error(t, err)

	_, err = run(t, "timeline", "generation", "--samples", "1234")
	assert.Error(t, err)
}

func TestSamplesCmd(t *testing.T) {
	out, err := run(t, "samples", "-n", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "id,persona,intent,customer,agent", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "sample_00001,"))
}
