package services

import (
	"context"
	"fmt"
	"slices"

	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/core/ports/output"
	"finetune-sim/internal/sim/curves"
	"finetune-sim/internal/sim/seedrand"
	"finetune-sim/internal/sim/stages"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultSampleCount = "20k"
	modelNotSpecified  = "Not specified"
	sampleArtifactRows = 200
)

var (
	runAdjectives = []string{"hearty", "brisk", "quiet", "amber", "lucid", "nimble", "sunny", "velvet", "cosmic", "gentle"}
	runNouns      = []string{"disco", "harbor", "meadow", "falcon", "ember", "canyon", "lantern", "pixel", "tundra", "orbit"}
)

// MetricDeltas are the dashboard headline comparisons against the baseline.
type MetricDeltas struct {
	IntentPoints   string
	LatencyPercent string
	CostPercent    string
}

// DashboardView is the results page of a project.
type DashboardView struct {
	RunName      string
	Model        string
	Method       string
	Judge        string
	SampleCount  string
	RunComplete  bool
	Metrics      domain.Metrics
	BaselineName string
	BaselineP95  decimal.Decimal
	TrainedP95   decimal.Decimal
	Deltas       MetricDeltas
	Curves       curves.Series
	Traces       []domain.Trace
	Artifacts    []string
}

type DashboardService struct {
	projectStore
	renderer  ports.ArtifactRenderer
	curveSeed uint32
}

func NewDashboardService(repo ports.ProjectRepository, sim *Simulator, renderer ports.ArtifactRenderer, curveSeed uint32) *DashboardService {
	return &DashboardService{
		projectStore: projectStore{repo: repo, sim: sim},
		renderer:     renderer,
		curveSeed:    curveSeed,
	}
}

// Summary builds the dashboard. A nil seed uses the configured curve seed.
func (s *DashboardService) Summary(ctx context.Context, id uuid.UUID, seed *uint32) (*DashboardView, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	cfg := s.trainingConfig(p)
	model := cfg.Model
	if model == "" {
		model = modelNotSpecified
	}
	m := p.Metrics
	return &DashboardView{
		RunName:      RunName(p.Seed),
		Model:        model,
		Method:       cfg.MethodDescription(),
		Judge:        cfg.AIJudge,
		SampleCount:  SampleCount(p.Dataset),
		RunComplete:  p.Run != nil && p.Run.Completed,
		Metrics:      m,
		BaselineName: domain.BaselineModelName,
		BaselineP95:  m.Baseline.P95Ms(),
		TrainedP95:   m.Trained.P95Ms(),
		Deltas:       Deltas(m),
		Curves:       s.Curves(seed),
		Traces:       domain.EvalTraces,
		Artifacts:    domain.Artifacts,
	}, nil
}

// Curves generates the chart series. A nil seed uses the configured curve seed.
func (s *DashboardService) Curves(seed *uint32) curves.Series {
	cfg := curves.DefaultConfig()
	cfg.Seed = s.curveSeed
	if seed != nil {
		cfg.Seed = *seed
	}
	return curves.Generate(cfg)
}

// Artifact renders one of the downloadable files for a project.
func (s *DashboardService) Artifact(ctx context.Context, id uuid.UUID, name string) (*ports.Artifact, error) {
	if !slices.Contains(domain.Artifacts, name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
	}
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	genSeed := s.sim.dataGenSeed
	if p.Generation != nil {
		genSeed = p.Generation.Seed
	}
	return s.renderer.Render(ctx, name, ports.ArtifactBundle{
		Project: p,
		RunName: RunName(p.Seed),
		Curves:  s.Curves(nil),
		Samples: stages.SyntheticSamples(genSeed, sampleArtifactRows),
	})
}

// trainingConfig prefers the config of the last run over the draft config.
func (s *DashboardService) trainingConfig(p *domain.Project) domain.TrainingConfig {
	if p.Run != nil {
		return p.Run.Config
	}
	return p.Training
}

// RunName derives a readable run name such as "hearty-disco-58" from seed.
func RunName(seed uint32) string {
	rng := seedrand.New(seed)
	adj := rng.Pick(runAdjectives)
	noun := rng.Pick(runNouns)
	return fmt.Sprintf("%s-%s-%d", adj, noun, 10+rng.Intn(90))
}

// SampleCount formats the dataset size, abbreviating thousands.
func SampleCount(d *domain.Dataset) string {
	if d == nil {
		return defaultSampleCount
	}
	if d.Rows >= 1000 {
		return decimal.NewFromInt(int64(d.Rows)).Div(decimal.NewFromInt(1000)).StringFixed(0) + "k"
	}
	return fmt.Sprint(d.Rows)
}

// Deltas compares trained against baseline metrics. Intent is a difference in
// percentage points, latency and cost are relative changes where negative
// is better.
func Deltas(m domain.Metrics) MetricDeltas {
	hundred := decimal.NewFromInt(100)
	relative := func(trained, baseline decimal.Decimal) string {
		return trained.Sub(baseline).Div(baseline).Mul(hundred).StringFixed(1)
	}
	return MetricDeltas{
		IntentPoints:   m.Trained.Intent.Sub(m.Baseline.Intent).StringFixed(1),
		LatencyPercent: relative(decimal.NewFromInt(m.Trained.P50Ms), decimal.NewFromInt(m.Baseline.P50Ms)),
		CostPercent:    relative(m.Trained.CostPer1K, m.Baseline.CostPer1K),
	}
}
