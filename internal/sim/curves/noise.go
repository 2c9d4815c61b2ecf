package curves

import (
	"math"

	"finetune-sim/internal/sim/seedrand"
)

// Spikiness regimes by training progress.
const (
	earlyRegimeEnd = 0.4
	midRegimeEnd   = 0.7

	earlySpikiness = 1.8
	midSpikiness   = 1.2
	lateSpikiness  = 0.4

	baseSpikeChance    = 0.35
	spikeChanceDecay   = 0.25
	outlierChance      = 0.08
	outlierProgressEnd = 0.6

	spikeAmplitude   = 5
	outlierAmplitude = 8
)

// SpikinessMultiplier scales noise amplitude by progress in [0,1].
func SpikinessMultiplier(progress float64) float64 {
	switch {
	case progress < earlyRegimeEnd:
		return earlySpikiness
	case progress < midRegimeEnd:
		return midSpikiness
	default:
		return lateSpikiness
	}
}

// Noise injects regime-scaled jitter, spikes and outliers drawn from one generator.
type Noise struct {
	rng *seedrand.Generator
}

func NewNoise(rng *seedrand.Generator) *Noise {
	return &Noise{rng: rng}
}

// Add perturbs value and clamps the result to floor.
//
// Every call draws the base jitter plus one spike roll and one outlier roll,
// and one extra draw for each roll that hits. Products are converted
// explicitly so the compiler cannot fuse them into FMA instructions.
func (n *Noise) Add(value, scale, progress float64, allowSpikes bool, floor float64) float64 {
	m := SpikinessMultiplier(progress)

	base := float64((n.rng.Float64() - 0.5) * scale * 2.0 * m)

	spikeChance := 0.0
	if allowSpikes {
		spikeChance = baseSpikeChance - float64(progress*spikeChanceDecay)
	}
	spike := 0.0
	if n.rng.Float64() < spikeChance {
		spike = float64((n.rng.Float64() - 0.5) * scale * spikeAmplitude * m)
	}

	outChance := 0.0
	if allowSpikes && progress < outlierProgressEnd {
		outChance = outlierChance
	}
	outlier := 0.0
	if n.rng.Float64() < outChance {
		outlier = float64((n.rng.Float64() - 0.5) * scale * outlierAmplitude * m)
	}

	return math.Max(floor, value+base+spike+outlier)
}
