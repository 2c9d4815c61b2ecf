package domain

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"finetune-sim/internal/sim/stages"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/validation"
)

const (
	DefaultJudge = "Kimi K2 Thinking"
	DefaultModel = "Qwen3 235B A22B Instruct"
	DefaultRegex = "<intent>(.*?)</intent>"
)

var (
	outputFormats = sets.New("regex", "json")
	effortLevels  = sets.New("low", "medium", "high")
)

// TrainingConfig is the fine-tuning setup.
type TrainingConfig struct {
	Dataset         string      `json:"dataset"`
	AIJudge         string      `json:"ai_judge"`
	DefaultModel    string      `json:"default_model"`
	Model           string      `json:"model"`
	Strategies      []Strategy  `json:"strategies"`
	Algorithms      []Algorithm `json:"algorithms"`
	RewardRegex     string      `json:"reward_regex"`
	OutputFormat    string      `json:"output_format"`
	ReasoningEffort string      `json:"reasoning_effort"`
	LatencySLAMs    int         `json:"latency_sla_ms"`
}

func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		AIJudge:         DefaultJudge,
		DefaultModel:    DefaultModel,
		Strategies:      []Strategy{StrategyRL},
		Algorithms:      []Algorithm{AlgorithmGRPO},
		RewardRegex:     DefaultRegex,
		OutputFormat:    "regex",
		ReasoningEffort: "medium",
		LatencySLAMs:    500,
	}
}

// Validate checks model names, method sets and the reward regex
func (c TrainingConfig) Validate() error {
	if c.Model != "" && !IsKnownModel(c.Model) {
		return fmt.Errorf("%w: %q", ErrUnknownModel, c.Model)
	}
	if !IsKnownModel(c.DefaultModel) {
		return fmt.Errorf("%w: %q", ErrUnknownModel, c.DefaultModel)
	}
	if !IsKnownJudge(c.AIJudge) {
		return fmt.Errorf("%w: %q", ErrUnknownJudge, c.AIJudge)
	}
	if len(c.Strategies) == 0 || !Strategies.HasAll(c.Strategies...) {
		return ErrInvalidStrategy
	}
	if !Algorithms.HasAll(c.Algorithms...) {
		return ErrInvalidAlgorithm
	}
	if len(c.Algorithms) == 0 && slices.Contains(c.Strategies, StrategyRL) {
		return ErrInvalidAlgorithm
	}
	if _, err := regexp.Compile(c.RewardRegex); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRegex, err)
	}
	if c.Dataset != "" {
		if errs := validation.IsDNS1123Label(c.Dataset); len(errs) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalidDatasetName, strings.Join(errs, "; "))
		}
	}
	if !outputFormats.Has(c.OutputFormat) {
		return ErrInvalidOutput
	}
	if !effortLevels.Has(c.ReasoningEffort) {
		return ErrInvalidEffort
	}
	if c.LatencySLAMs <= 0 {
		return ErrInvalidLatencySLA
	}
	return nil
}

// EffectiveModel is the model to train, falling back to the default model.
func (c TrainingConfig) EffectiveModel() string {
	if c.Model != "" {
		return c.Model
	}
	return c.DefaultModel
}

// MethodDescription joins the dashboard labels of the selected strategies.
func (c TrainingConfig) MethodDescription() string {
	labels := make([]string, 0, len(c.Strategies))
	for _, s := range c.Strategies {
		labels = append(labels, StrategyLabel(s))
	}
	return strings.Join(labels, " + ")
}

// TrainingRunRecord is a started training run.
type TrainingRunRecord struct {
	Config    TrainingConfig `json:"config"`
	StartedAt time.Time      `json:"started_at"`
	Completed bool           `json:"completed"`
}

// Params converts the record into simulation input.
func (r TrainingRunRecord) Params() stages.TrainingParams {
	algos := make([]string, len(r.Config.Algorithms))
	for i, a := range r.Config.Algorithms {
		algos[i] = string(a)
	}
	return stages.TrainingParams{
		Model:      r.Config.EffectiveModel(),
		Judge:      r.Config.AIJudge,
		Algorithms: algos,
	}
}
