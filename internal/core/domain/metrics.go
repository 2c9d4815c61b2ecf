package domain

import "github.com/shopspring/decimal"

// ModelMetrics are the evaluation results of one model.
type ModelMetrics struct {
	Intent    decimal.Decimal `json:"intent"`
	Policy    decimal.Decimal `json:"policy"`
	System    decimal.Decimal `json:"system"`
	P50Ms     int64           `json:"p50_ms"`
	CostPer1K decimal.Decimal `json:"cost_per_1k"`
}

// P95Ms estimates tail latency as 1.5x the median.
func (m ModelMetrics) P95Ms() decimal.Decimal {
	return decimal.NewFromInt(m.P50Ms).Mul(decimal.RequireFromString("1.5"))
}

// Metrics compares the baseline against the trained model.
type Metrics struct {
	Baseline ModelMetrics `json:"baseline"`
	Trained  ModelMetrics `json:"trained"`
}

const BaselineModelName = "GPT-4o"

func DefaultMetrics() Metrics {
	return Metrics{
		Baseline: ModelMetrics{
			Intent:    decimal.NewFromInt(95),
			Policy:    decimal.NewFromInt(95),
			System:    decimal.NewFromInt(93),
			P50Ms:     350,
			CostPer1K: decimal.RequireFromString("0.6"),
		},
		Trained: ModelMetrics{
			Intent:    decimal.RequireFromString("99.2"),
			Policy:    decimal.RequireFromString("97.5"),
			System:    decimal.RequireFromString("96.8"),
			P50Ms:     180,
			CostPer1K: decimal.RequireFromString("0.1"),
		},
	}
}
