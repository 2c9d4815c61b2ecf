package curves

import (
	"encoding/json"
	"math"
	"testing"

	"finetune-sim/internal/sim/seedrand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpikinessMultiplier(t *testing.T) {
	cases := []struct {
		progress float64
		want     float64
	}{
		{0, 1.8},
		{0.39, 1.8},
		{0.4, 1.2},
		{0.69, 1.2},
		{0.7, 0.4},
		{1, 0.4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SpikinessMultiplier(tc.progress), "progress %v", tc.progress)
	}
}

func TestGenerate_DefaultShape(t *testing.T) {
	s := Generate(DefaultConfig())

	require.Len(t, s.Training, 41)
	require.Len(t, s.KL, 41)
	require.Len(t, s.RewardIntent, 41)
	require.Len(t, s.LogProbDiff, 41)
	assert.Equal(t, 0, s.Training[0].Step)
	assert.Equal(t, 2000, s.Training[40].Step)
	assert.Equal(t, uint32(123), s.Seed)
}

func TestGenerate_GoldenFirstPoint(t *testing.T) {
	s := Generate(DefaultConfig())

	first := s.Training[0]
	assert.Equal(t, 1.73, first.Loss)
	assert.Equal(t, 0.0, first.Reward)
	assert.Equal(t, 70.0, first.Accuracy)
	assert.Equal(t, 1.76, first.PolicyLoss)
	assert.Equal(t, 1.143, first.ValueLoss)
	assert.Equal(t, 0.035, s.KL[0].Value)
}

func TestGenerator_TrainingDrawCount(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	g.Training()
	assert.Equal(t, int64(655), g.Draws())
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := Config{Seed: 987654, MaxStep: 2000, StepSize: 50}
	a, err := json.Marshal(Generate(cfg))
	require.NoError(t, err)
	b, err := json.Marshal(Generate(cfg))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	a := Generate(Config{Seed: 1})
	b := Generate(Config{Seed: 2})
	assert.NotEqual(t, a.Training, b.Training)
}

func TestGenerate_FloorsHold(t *testing.T) {
	floors := Floors()
	for seed := uint32(0); seed < 200; seed++ {
		s := Generate(Config{Seed: seed, MaxStep: 2000, StepSize: 25})
		for _, p := range s.Training {
			require.GreaterOrEqual(t, p.Loss, floors[MetricLoss])
			require.GreaterOrEqual(t, p.Reward, floors[MetricReward])
			require.GreaterOrEqual(t, p.Accuracy, floors[MetricAccuracy])
			require.GreaterOrEqual(t, p.PolicyLoss, floors[MetricPolicyLoss])
			require.GreaterOrEqual(t, p.ValueLoss, floors[MetricValueLoss])
		}
		for _, p := range s.KL {
			require.GreaterOrEqual(t, p.Value, floors[MetricKL])
		}
		for _, p := range s.RewardIntent {
			require.GreaterOrEqual(t, p.Value, floors[MetricRewardIntent])
		}
		for _, p := range s.LogProbDiff {
			require.GreaterOrEqual(t, p.Value, floors[MetricLogProbDiff])
		}
	}
}

func TestGenerate_AccuracyIsIntegral(t *testing.T) {
	s := Generate(DefaultConfig())
	for _, p := range s.Training {
		assert.Equal(t, math.Trunc(p.Accuracy), p.Accuracy)
	}
}

func TestNoise_NoSpikesDrawsExactlyThree(t *testing.T) {
	rng := seedrand.New(5)
	n := NewNoise(rng)
	for i := 0; i < 50; i++ {
		n.Add(10, 1, 0.1, false, 0)
	}
	assert.Equal(t, int64(150), rng.Calls())
}

func TestNoise_ClampsToFloor(t *testing.T) {
	n := NewNoise(seedrand.New(9))
	for i := 0; i < 1000; i++ {
		require.GreaterOrEqual(t, n.Add(0, 100, 0.1, true, 3.5), 3.5)
	}
}

func TestConfig_Steps(t *testing.T) {
	assert.Equal(t, []int{0, 10, 20, 30}, Config{MaxStep: 30, StepSize: 10}.Steps())
	assert.Len(t, Config{}.Steps(), 41)
}

func TestRoundFixed(t *testing.T) {
	assert.Equal(t, 0.063, RoundFixed(0.0625, 3), "exact ties round up")
	assert.Equal(t, 1.0, RoundFixed(1.0005, 3), "1.0005 is below the tie in binary")
	assert.Equal(t, 1.234, RoundFixed(1.2344, 3))
	assert.Equal(t, -0.063, RoundFixed(-0.0625, 3))
	assert.Equal(t, 0.15, RoundFixed(0.15, 3))
	assert.Equal(t, 0.0123, RoundFixed(0.01234, 4))
}

func TestRoundInt(t *testing.T) {
	assert.Equal(t, 3.0, RoundInt(2.5))
	assert.Equal(t, -2.0, RoundInt(-2.5))
	assert.Equal(t, 0.0, RoundInt(0.49999999999999994))
	assert.Equal(t, 97.0, RoundInt(96.7))
}
