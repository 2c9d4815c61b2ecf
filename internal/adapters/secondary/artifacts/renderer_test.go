package artifacts

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"finetune-sim/internal/core/domain"
	ports "finetune-sim/internal/core/ports/output"
	"finetune-sim/internal/sim/curves"
	"finetune-sim/internal/sim/stages"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

func testBundle(t *testing.T) ports.ArtifactBundle {
	t.Helper()
	p, err := domain.NewProject("Intent Classification Model", 1337)
	require.NoError(t, err)
	p.LoadTemplateGuidelines()
	p.Training.Dataset = stages.SyntheticDatasetName
	return ports.ArtifactBundle{
		Project: p,
		RunName: "hearty-disco-58",
		Curves:  curves.Generate(curves.DefaultConfig()),
		Samples: stages.SyntheticSamples(42, 10),
	}
}

func TestRender_MetricsCSV(t *testing.T) {
	b := testBundle(t)
	a, err := NewRenderer("").Render(context.Background(), "metrics.csv", b)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", a.ContentType)

	records, err := csv.NewReader(bytes.NewReader(a.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(b.Curves.Training)+1)
	assert.Equal(t, metricsHeader, records[0])
	assert.Equal(t, "0", records[1][0])
}

func TestRender_SyntheticSampleCSV(t *testing.T) {
	b := testBundle(t)
	a, err := NewRenderer("").Render(context.Background(), "synthetic_sample.csv", b)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(a.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 11)
	assert.Equal(t, stages.SampleColumns, records[0])
	assert.Equal(t, b.Samples[0].Record(), records[1])
}

func TestRender_EvalsJSON(t *testing.T) {
	a, err := NewRenderer("").Render(context.Background(), "evals.json", testBundle(t))
	require.NoError(t, err)
	assert.Equal(t, "application/json", a.ContentType)

	doc := gjson.ParseBytes(a.Data)
	assert.Equal(t, "hearty-disco-58", doc.Get("run_name").String())
	assert.Equal(t, "GPT-4o", doc.Get("baseline_model").String())
	assert.Equal(t, int64(4), doc.Get("traces.#").Int())
	assert.Equal(t, "99.2", doc.Get("metrics.trained.intent").String())
}

func TestRender_ConfigYAML(t *testing.T) {
	a, err := NewRenderer("").Render(context.Background(), "config.yaml", testBundle(t))
	require.NoError(t, err)

	var doc trainingDocument
	require.NoError(t, yaml.Unmarshal(a.Data, &doc))
	assert.Equal(t, domain.DefaultModel, doc.Model)
	assert.Equal(t, []string{"RL"}, doc.Strategies)
	assert.Equal(t, []string{"GRPO"}, doc.RL.Algorithms)
	assert.Equal(t, domain.DefaultRegex, doc.RL.RewardRegex)
	assert.Len(t, doc.RL.Guidelines, len(domain.TemplateGuidelines))
}

func TestRender_StaticPlaceholders(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "summary.pdf"), []byte("%PDF-1.4"), 0o600))
	r := NewRenderer(dir)

	a, err := r.Render(context.Background(), "summary.pdf", testBundle(t))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", a.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), a.Data)

	_, err = r.Render(context.Background(), "adapter.safetensors", testBundle(t))
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)

	_, err = NewRenderer("").Render(context.Background(), "summary.pdf", testBundle(t))
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestRender_Unknown(t *testing.T) {
	_, err := NewRenderer("").Render(context.Background(), "weights.bin", testBundle(t))
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}
