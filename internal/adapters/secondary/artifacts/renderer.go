// Package artifacts renders the downloadable run outputs.
package artifacts

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"finetune-sim/internal/core/domain"
	ports "finetune-sim/internal/core/ports/output"
	"finetune-sim/internal/sim/curves"
	"finetune-sim/internal/sim/stages"

	"gopkg.in/yaml.v3"
)

const (
	contentCSV    = "text/csv"
	contentJSON   = "application/json"
	contentYAML   = "application/yaml"
	contentBinary = "application/octet-stream"
	contentPDF    = "application/pdf"
)

var metricsHeader = []string{
	"training_step", "loss", "reward", "accuracy", "policy_loss", "value_loss",
	"kl_divergence", "reward_intent_match", "sampling_logp_diff",
}

type renderer struct {
	staticDir string
}

// NewRenderer builds a renderer. Binary placeholders are read from staticDir.
func NewRenderer(staticDir string) ports.ArtifactRenderer {
	return &renderer{staticDir: staticDir}
}

func (r *renderer) Render(ctx context.Context, name string, b ports.ArtifactBundle) (*ports.Artifact, error) {
	var (
		data        []byte
		contentType string
		err         error
	)
	switch name {
	case "metrics.csv":
		data, err = metricsCSV(b.Curves)
		contentType = contentCSV
	case "synthetic_sample.csv":
		data, err = sampleCSV(b)
		contentType = contentCSV
	case "evals.json":
		data, err = evalsJSON(b)
		contentType = contentJSON
	case "config.yaml":
		data, err = configYAML(b)
		contentType = contentYAML
	case "summary.pdf":
		data, err = r.static(name)
		contentType = contentPDF
	case "adapter.safetensors":
		data, err = r.static(name)
		contentType = contentBinary
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return &ports.Artifact{Name: name, ContentType: contentType, Data: data}, nil
}

func (r *renderer) static(name string) ([]byte, error) {
	if r.staticDir == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
	}
	data, err := os.ReadFile(filepath.Join(r.staticDir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
		}
		return nil, fmt.Errorf("read static artifact %s: %w", name, err)
	}
	return data, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func metricsCSV(s curves.Series) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(metricsHeader); err != nil {
		return nil, err
	}
	for i, p := range s.Training {
		row := []string{
			strconv.Itoa(p.Step),
			formatFloat(p.Loss),
			formatFloat(p.Reward),
			formatFloat(p.Accuracy),
			formatFloat(p.PolicyLoss),
			formatFloat(p.ValueLoss),
			pointValue(s.KL, i),
			pointValue(s.RewardIntent, i),
			pointValue(s.LogProbDiff, i),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write metrics.csv: %w", err)
	}
	return buf.Bytes(), nil
}

func pointValue(points []curves.Point, i int) string {
	if i >= len(points) {
		return ""
	}
	return formatFloat(points[i].Value)
}

func sampleCSV(b ports.ArtifactBundle) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(stages.SampleColumns); err != nil {
		return nil, err
	}
	for _, row := range b.Samples {
		if err := w.Write(row.Record()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write synthetic_sample.csv: %w", err)
	}
	return buf.Bytes(), nil
}

type evalReport struct {
	RunName  string         `json:"run_name"`
	Baseline string         `json:"baseline_model"`
	Model    string         `json:"model"`
	Metrics  domain.Metrics `json:"metrics"`
	Traces   []domain.Trace `json:"traces"`
}

func evalsJSON(b ports.ArtifactBundle) ([]byte, error) {
	p := b.Project
	report := evalReport{
		RunName:  b.RunName,
		Baseline: domain.BaselineModelName,
		Model:    trainingConfig(p).EffectiveModel(),
		Metrics:  p.Metrics,
		Traces:   domain.EvalTraces,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode evals.json: %w", err)
	}
	return append(data, '\n'), nil
}

type rlOptions struct {
	Algorithms  []string `yaml:"algorithms"`
	RewardRegex string   `yaml:"rlef_regex"`
	Guidelines  []string `yaml:"rlaif_guidelines,omitempty"`
}

type trainingDocument struct {
	Run             string    `yaml:"run"`
	Project         string    `yaml:"project"`
	Model           string    `yaml:"model"`
	Dataset         string    `yaml:"dataset"`
	AIJudge         string    `yaml:"ai_judge"`
	Strategies      []string  `yaml:"strategies"`
	RL              rlOptions `yaml:"rl"`
	OutputFormat    string    `yaml:"output_format"`
	ReasoningEffort string    `yaml:"reasoning_effort"`
	LatencySLAMs    int       `yaml:"latency_sla_ms"`
	Instance        string    `yaml:"instance_type"`
	Region          string    `yaml:"region"`
}

func configYAML(b ports.ArtifactBundle) ([]byte, error) {
	p := b.Project
	cfg := trainingConfig(p)

	doc := trainingDocument{
		Run:             b.RunName,
		Project:         p.Name,
		Model:           cfg.EffectiveModel(),
		Dataset:         cfg.Dataset,
		AIJudge:         cfg.AIJudge,
		OutputFormat:    cfg.OutputFormat,
		ReasoningEffort: cfg.ReasoningEffort,
		LatencySLAMs:    cfg.LatencySLAMs,
		Instance:        p.Environment.InstanceType,
		Region:          p.Environment.Region,
		RL:              rlOptions{RewardRegex: cfg.RewardRegex},
	}
	for _, s := range cfg.Strategies {
		doc.Strategies = append(doc.Strategies, string(s))
	}
	for _, a := range cfg.Algorithms {
		doc.RL.Algorithms = append(doc.RL.Algorithms, string(a))
	}
	for _, g := range p.Guidelines {
		doc.RL.Guidelines = append(doc.RL.Guidelines, g.Text)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode config.yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config.yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func trainingConfig(p *domain.Project) domain.TrainingConfig {
	if p.Run != nil {
		return p.Run.Config
	}
	return p.Training
}
