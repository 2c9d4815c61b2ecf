package stages

import (
	"math"
	"time"

	"finetune-sim/internal/sim/seedrand"
	"finetune-sim/internal/sim/timeline"
)

// DefaultGenerationSeed seeds the data generation stream.
const DefaultGenerationSeed uint32 = 42

const (
	GenerationWarmup   = 2500 * time.Millisecond
	generationFinalize = 1000 * time.Millisecond
	personaInterval    = 800 * time.Millisecond
	samplesInterval    = 600 * time.Millisecond
	pipelineInterval   = 600 * time.Millisecond
	activePersonas     = 5
	retryStageIndex    = 4
	retryChance        = 0.15
	retryBannerFor     = 4000 * time.Millisecond

	SyntheticDatasetName = "synthetic-customer-support"
	SyntheticDatasetCols = 5
)

// StageSpec is one named generation stage.
type StageSpec struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"-"`
}

var GenerationStages = []StageSpec{
	{"Loading seed examples", 3500 * time.Millisecond},
	{"Analyzing patterns and intents", 6000 * time.Millisecond},
	{"Generating persona variations", 8000 * time.Millisecond},
	{"Creating scenario templates", 7500 * time.Millisecond},
	{"Synthesizing conversations", 12000 * time.Millisecond},
	{"Applying quality filters", 9000 * time.Millisecond},
	{"Validating outputs", 7000 * time.Millisecond},
	{"Finalizing dataset", 5000 * time.Millisecond},
}

// SamplePersonas is the persona pool rotated through while generating.
var SamplePersonas = []string{
	"Professional Customer Service Rep",
	"Empathetic Support Specialist",
	"Concise Technical Assistant",
	"Friendly Retail Expert",
	"Patient Problem Solver",
	"Detail-Oriented Analyst",
	"Warm & Welcoming Host",
	"Solution-Focused Advisor",
	"Understanding Listener",
	"Efficient Task Manager",
	"Knowledgeable Consultant",
	"Calm Crisis Handler",
	"Proactive Helper",
	"Courteous Professional",
	"Resourceful Troubleshooter",
	"Diplomatic Mediator",
	"Enthusiastic Guide",
	"Methodical Planner",
	"Adaptable Communicator",
	"Reliable Partner",
}

// Pipeline is one generating model lane.
type Pipeline struct {
	ID    string        `json:"id"`
	Model string        `json:"model"`
	Share int           `json:"share_percent"`
	Start time.Duration `json:"-"`
	Base  float64       `json:"-"`
	Span  float64       `json:"-"`
}

var Pipelines = [4]Pipeline{
	{ID: "qwen3", Model: "Qwen3 235B A22B Instruct", Share: 28, Start: 0, Base: 0.80, Span: 0.35},
	{ID: "deepseek", Model: "DeepSeek V3.1 Terminus", Share: 26, Start: 2000 * time.Millisecond, Base: 0.85, Span: 0.35},
	{ID: "kimi", Model: "Kimi K2 Instruct 0905", Share: 24, Start: 3500 * time.Millisecond, Base: 0.85, Span: 0.40},
	{ID: "gptoss120b", Model: "OpenAI gpt-oss-120b", Share: 22, Start: 5000 * time.Millisecond, Base: 0.90, Span: 0.40},
}

// Allowed generation options.
var (
	SampleTargets     = []int{5000, 10000, 20000, 50000}
	DiversityLevels   = []string{"low", "medium", "high"}
	QualityThresholds = []float64{0.75, 0.85, 0.90, 0.95}
)

// GenerationParams configures a synthetic data run.
type GenerationParams struct {
	Seed         uint32
	Target       int
	Diversity    string
	Quality      float64
	Instructions string
}

// GenerationState is the generation progress at one instant.
type GenerationState struct {
	Generating       bool       `json:"generating"`
	Complete         bool       `json:"complete"`
	Stage            int        `json:"stage"`
	ShowRetry        bool       `json:"show_retry"`
	ActivePersonas   []string   `json:"active_personas"`
	SamplesProcessed int        `json:"samples_processed"`
	Pipelines        [4]float64 `json:"pipelines"`
}

// GenerationDuration is the time from start to completion.
func GenerationDuration() time.Duration {
	total := GenerationWarmup
	for _, s := range GenerationStages {
		total += s.Duration
	}
	return total + generationFinalize
}

// sampleIncrement is the per-tick sample growth, slow at both ends and
// fastest through the middle of the run.
func sampleIncrement(rng *seedrand.Generator, progress float64) int {
	var base float64
	switch {
	case progress < 0.15:
		base = 15 + float64(rng.Float64()*25)
	case progress < 0.3:
		base = 35 + float64(rng.Float64()*45)
	case progress < 0.75:
		base = 55 + float64(rng.Float64()*75)
	case progress < 0.9:
		base = 30 + float64(rng.Float64()*40)
	default:
		base = 15 + float64(rng.Float64()*25)
	}
	return int(math.Floor(base))
}

// Generation records a synthetic data run. Persona rotation, sample counting,
// the four pipelines and the retry roll all draw from one generator in timer
// order.
func Generation(p GenerationParams) *timeline.Timeline[GenerationState] {
	target := p.Target
	if target < 1 {
		target = 1
	}
	rng := seedrand.New(p.Seed)
	initial := GenerationState{Generating: true}

	return timeline.Record(initial, 0, func(l *timeline.Loop, emit func(GenerationState)) {
		state := initial

		personaID := l.SetInterval(personaInterval, func() {
			picked := make([]string, activePersonas)
			for i := range picked {
				picked[i] = SamplePersonas[rng.Intn(len(SamplePersonas))]
			}
			state.ActivePersonas = picked
			emit(state)
		})

		samplesID := l.SetInterval(samplesInterval, func() {
			progress := float64(state.SamplesProcessed) / float64(target)
			state.SamplesProcessed = min(target, state.SamplesProcessed+sampleIncrement(rng, progress))
			emit(state)
		})

		pipelineIDs := make([]timeline.TimerID, 0, len(Pipelines))
		for i, pl := range Pipelines {
			l.SetTimeout(pl.Start, func() {
				pipelineIDs = append(pipelineIDs, l.SetInterval(pipelineInterval, func() {
					step := pl.Base + float64(rng.Float64()*pl.Span)
					state.Pipelines[i] = math.Min(100, state.Pipelines[i]+step)
					emit(state)
				}))
			})
		}

		at := GenerationWarmup
		for i, st := range GenerationStages {
			at += st.Duration
			stage := i + 1
			l.SetTimeout(at, func() {
				state.Stage = stage
				if stage-1 == retryStageIndex && rng.Chance(retryChance) {
					state.ShowRetry = true
					l.SetTimeout(retryBannerFor, func() {
						state.ShowRetry = false
						emit(state)
					})
				}
				emit(state)
			})
		}

		l.SetTimeout(GenerationDuration(), func() {
			l.Clear(personaID)
			l.Clear(samplesID)
			for _, id := range pipelineIDs {
				l.Clear(id)
			}
			state.Complete = true
			state.Generating = false
			state.ActivePersonas = nil
			state.SamplesProcessed = target
			state.Pipelines = [4]float64{100, 100, 100, 100}
			emit(state)
		})
	})
}
