package dto

import (
	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/core/services"
	"finetune-sim/internal/sim/curves"

	"github.com/shopspring/decimal"
)

type MetricCard struct {
	Trained  string `json:"trained"`
	Baseline string `json:"baseline"`
	Delta    string `json:"delta"`
}

type DashboardResponse struct {
	RunName      string         `json:"run_name"`
	Title        string         `json:"title"`
	Model        string         `json:"model"`
	Method       string         `json:"method"`
	Judge        string         `json:"judge"`
	SampleCount  string         `json:"sample_count"`
	RunComplete  bool           `json:"run_complete"`
	BaselineName string         `json:"baseline_model"`
	Intent       MetricCard     `json:"intent_accuracy"`
	LatencyP50   MetricCard     `json:"latency_p50_ms"`
	Cost         MetricCard     `json:"cost_per_1k"`
	LatencyP95   MetricCard     `json:"latency_p95_ms"`
	Metrics      domain.Metrics `json:"metrics"`
	Curves       curves.Series  `json:"curves"`
	Traces       []domain.Trace `json:"traces"`
	Artifacts    []string       `json:"artifacts"`
}

func ToDashboardResponse(v *services.DashboardView) DashboardResponse {
	m := v.Metrics
	return DashboardResponse{
		RunName:      v.RunName,
		Title:        "Model Builder Run – " + v.RunName,
		Model:        v.Model,
		Method:       v.Method,
		Judge:        v.Judge,
		SampleCount:  v.SampleCount,
		RunComplete:  v.RunComplete,
		BaselineName: v.BaselineName,
		Intent: MetricCard{
			Trained:  m.Trained.Intent.String(),
			Baseline: m.Baseline.Intent.String(),
			Delta:    v.Deltas.IntentPoints,
		},
		LatencyP50: MetricCard{
			Trained:  decimal.NewFromInt(m.Trained.P50Ms).String(),
			Baseline: decimal.NewFromInt(m.Baseline.P50Ms).String(),
			Delta:    v.Deltas.LatencyPercent,
		},
		Cost: MetricCard{
			Trained:  m.Trained.CostPer1K.String(),
			Baseline: m.Baseline.CostPer1K.String(),
			Delta:    v.Deltas.CostPercent,
		},
		LatencyP95: MetricCard{
			Trained:  v.TrainedP95.String(),
			Baseline: v.BaselineP95.String(),
		},
		Metrics:   m,
		Curves:    v.Curves,
		Traces:    v.Traces,
		Artifacts: v.Artifacts,
	}
}
