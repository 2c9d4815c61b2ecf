// Package curves synthesizes RL training-metric series: an exponential trend
// per metric, regime-scaled noise from a seeded generator, and a floor clamp.
package curves

import (
	"math"

	"finetune-sim/internal/sim/seedrand"
)

const (
	DefaultSeed     uint32 = 123
	DefaultMaxStep         = 2000
	DefaultStepSize        = 50

	trainingTau = 720.0
	klTau       = 600.0
)

// Metric names as they appear in series and exports.
const (
	MetricLoss         = "loss"
	MetricReward       = "reward"
	MetricAccuracy     = "accuracy"
	MetricPolicyLoss   = "policy_loss"
	MetricValueLoss    = "value_loss"
	MetricKL           = "kl"
	MetricRewardIntent = "reward_intent"
	MetricLogProbDiff  = "logp_diff"
)

// MetricSpec describes one synthetic series.
type MetricSpec struct {
	Name        string
	Base        func(step float64) float64
	NoiseScale  float64
	AllowSpikes bool
	Floor       float64
	// Digits is the number of decimals kept; 0 rounds to an integer.
	Digits int
}

// Config controls the step grid and the seed.
type Config struct {
	Seed     uint32
	MaxStep  int
	StepSize int
}

func DefaultConfig() Config {
	return Config{Seed: DefaultSeed, MaxStep: DefaultMaxStep, StepSize: DefaultStepSize}
}

func (c Config) normalized() Config {
	if c.MaxStep <= 0 {
		c.MaxStep = DefaultMaxStep
	}
	if c.StepSize <= 0 {
		c.StepSize = DefaultStepSize
	}
	return c
}

// Steps returns the step indices 0, StepSize, ... up to MaxStep inclusive.
func (c Config) Steps() []int {
	c = c.normalized()
	steps := make([]int, 0, c.MaxStep/c.StepSize+1)
	for s := 0; s <= c.MaxStep; s += c.StepSize {
		steps = append(steps, s)
	}
	return steps
}

// TrainingPoint is one row of the main RL training chart.
type TrainingPoint struct {
	Step       int     `json:"training_step"`
	Loss       float64 `json:"loss"`
	Reward     float64 `json:"reward"`
	Accuracy   float64 `json:"accuracy"`
	PolicyLoss float64 `json:"policy_loss"`
	ValueLoss  float64 `json:"value_loss"`
}

// Point is a single-metric sample.
type Point struct {
	Step  int     `json:"training_step"`
	Value float64 `json:"value"`
}

// Series is the full dashboard chart set.
type Series struct {
	Seed         uint32          `json:"seed"`
	Training     []TrainingPoint `json:"training"`
	KL           []Point         `json:"kl_divergence"`
	RewardIntent []Point         `json:"reward_intent_match"`
	LogProbDiff  []Point         `json:"sampling_logp_diff"`
}

func decay(step, tau float64) float64 {
	return math.Exp(-step / tau)
}

func growth(step, tau float64) float64 {
	return 1 - math.Exp(-step/tau)
}

func lossBase(step float64) float64 {
	return float64(2.45 * decay(step, trainingTau))
}

// TrainingSpecs lists the training-chart metrics in draw order.
func TrainingSpecs() []MetricSpec {
	return []MetricSpec{
		{
			Name:        MetricLoss,
			Base:        func(t float64) float64 { return math.Max(0.15, lossBase(t)) },
			NoiseScale:  0.15,
			AllowSpikes: true,
			Floor:       0.15,
			Digits:      3,
		},
		{
			Name:        MetricReward,
			Base:        func(t float64) float64 { return math.Min(1.07, float64(1.07*growth(t, trainingTau))) },
			NoiseScale:  0.08,
			AllowSpikes: true,
			Floor:       0,
			Digits:      3,
		},
		{
			Name: MetricAccuracy,
			Base: func(t float64) float64 {
				return math.Min(98, RoundInt(72+float64(26*growth(t, trainingTau))))
			},
			NoiseScale:  2.5,
			AllowSpikes: false,
			Floor:       0,
			Digits:      0,
		},
		{
			Name:        MetricPolicyLoss,
			Base:        func(t float64) float64 { return math.Max(0.10, float64(lossBase(t)*0.7)) },
			NoiseScale:  0.12,
			AllowSpikes: true,
			Floor:       0.10,
			Digits:      3,
		},
		{
			Name:        MetricValueLoss,
			Base:        func(t float64) float64 { return math.Max(0.08, float64(lossBase(t)*0.35)) },
			NoiseScale:  0.06,
			AllowSpikes: true,
			Floor:       0.08,
			Digits:      3,
		},
	}
}

func KLSpec() MetricSpec {
	return MetricSpec{
		Name: MetricKL,
		Base: func(t float64) float64 {
			return math.Max(0.01, math.Min(0.30, float64(0.24*growth(t, klTau))))
		},
		NoiseScale:  0.025,
		AllowSpikes: true,
		Floor:       0.01,
		Digits:      3,
	}
}

func RewardIntentSpec() MetricSpec {
	return MetricSpec{
		Name: MetricRewardIntent,
		Base: func(t float64) float64 {
			return math.Min(0.85, 0.60+float64(0.20*growth(t, trainingTau)))
		},
		NoiseScale:  0.04,
		AllowSpikes: true,
		Floor:       0,
		Digits:      3,
	}
}

func LogProbDiffSpec() MetricSpec {
	return MetricSpec{
		Name: MetricLogProbDiff,
		Base: func(t float64) float64 {
			return math.Min(0.045, 0.010+float64(0.030*growth(t, trainingTau)))
		},
		NoiseScale:  0.006,
		AllowSpikes: true,
		Floor:       0,
		Digits:      4,
	}
}

// Generator produces series from a shared noise stream.
type Generator struct {
	cfg   Config
	rng   *seedrand.Generator
	noise *Noise
}

func NewGenerator(cfg Config) *Generator {
	cfg = cfg.normalized()
	rng := seedrand.New(cfg.Seed)
	return &Generator{cfg: cfg, rng: rng, noise: NewNoise(rng)}
}

// Sample evaluates one spec at one step, consuming draws from the shared stream.
func (g *Generator) Sample(spec MetricSpec, step int) float64 {
	progress := float64(step) / float64(g.cfg.MaxStep)
	v := g.noise.Add(spec.Base(float64(step)), spec.NoiseScale, progress, spec.AllowSpikes, spec.Floor)
	if spec.Digits == 0 {
		return RoundInt(v)
	}
	return RoundFixed(v, spec.Digits)
}

// Draws reports how many generator draws have been consumed so far.
func (g *Generator) Draws() int64 {
	return g.rng.Calls()
}

// Training generates the multi-metric training chart.
func (g *Generator) Training() []TrainingPoint {
	specs := TrainingSpecs()
	steps := g.cfg.Steps()
	out := make([]TrainingPoint, 0, len(steps))
	for _, step := range steps {
		out = append(out, TrainingPoint{
			Step:       step,
			Loss:       g.Sample(specs[0], step),
			Reward:     g.Sample(specs[1], step),
			Accuracy:   g.Sample(specs[2], step),
			PolicyLoss: g.Sample(specs[3], step),
			ValueLoss:  g.Sample(specs[4], step),
		})
	}
	return out
}

// Single generates one single-metric series.
func (g *Generator) Single(spec MetricSpec) []Point {
	steps := g.cfg.Steps()
	out := make([]Point, 0, len(steps))
	for _, step := range steps {
		out = append(out, Point{Step: step, Value: g.Sample(spec, step)})
	}
	return out
}

// Generate builds the full chart set in the canonical draw order:
// training, KL, reward intent match, sampling log-prob diff.
func Generate(cfg Config) Series {
	g := NewGenerator(cfg)
	s := Series{Seed: g.cfg.Seed}
	s.Training = g.Training()
	s.KL = g.Single(KLSpec())
	s.RewardIntent = g.Single(RewardIntentSpec())
	s.LogProbDiff = g.Single(LogProbDiffSpec())
	return s
}

// Floors maps each metric to its minimum value.
func Floors() map[string]float64 {
	floors := make(map[string]float64)
	for _, s := range TrainingSpecs() {
		floors[s.Name] = s.Floor
	}
	for _, s := range []MetricSpec{KLSpec(), RewardIntentSpec(), LogProbDiffSpec()} {
		floors[s.Name] = s.Floor
	}
	return floors
}
