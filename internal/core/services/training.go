package services

import (
	"context"
	"time"

	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/core/ports/output"
	"finetune-sim/internal/sim/stages"
	"finetune-sim/internal/sim/timeline"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// TrainingUpdate holds the fields of a config edit; nil leaves a field unchanged.
type TrainingUpdate struct {
	Dataset         *string
	AIJudge         *string
	Model           *string
	Strategies      []domain.Strategy
	Algorithms      []domain.Algorithm
	RewardRegex     *string
	OutputFormat    *string
	ReasoningEffort *string
	LatencySLAMs    *int
}

// TrainingRunView is a training run at one instant.
type TrainingRunView struct {
	Config  domain.TrainingConfig
	State   stages.TrainingState
	Logs    []string
	Elapsed time.Duration
}

type TrainingService struct {
	projectStore
}

func NewTrainingService(repo ports.ProjectRepository, sim *Simulator) *TrainingService {
	return &TrainingService{projectStore: projectStore{repo: repo, sim: sim}}
}

func (s *TrainingService) GetConfig(ctx context.Context, id uuid.UUID) (*domain.TrainingConfig, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &p.Training, nil
}

func (s *TrainingService) UpdateConfig(ctx context.Context, id uuid.UUID, u TrainingUpdate) (*domain.TrainingConfig, error) {
	p, err := s.update(ctx, id, func(p *domain.Project) error {
		if s.running(p) {
			return domain.ErrTrainingInProgress
		}

		cfg := p.Training
		if u.Dataset != nil {
			cfg.Dataset = *u.Dataset
		}
		if u.AIJudge != nil {
			cfg.AIJudge = *u.AIJudge
		}
		if u.Model != nil {
			cfg.Model = *u.Model
		}
		if u.Strategies != nil {
			cfg.Strategies = u.Strategies
		}
		if u.Algorithms != nil {
			cfg.Algorithms = u.Algorithms
		}
		if u.RewardRegex != nil {
			cfg.RewardRegex = *u.RewardRegex
		}
		if u.OutputFormat != nil {
			cfg.OutputFormat = *u.OutputFormat
		}
		if u.ReasoningEffort != nil {
			cfg.ReasoningEffort = *u.ReasoningEffort
		}
		if u.LatencySLAMs != nil {
			cfg.LatencySLAMs = *u.LatencySLAMs
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		p.Training = cfg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p.Training, nil
}

// StartRun starts a training run with the current config. The project needs
// guidelines and a dataset.
func (s *TrainingService) StartRun(ctx context.Context, id uuid.UUID) (*TrainingRunView, error) {
	p, err := s.update(ctx, id, func(p *domain.Project) error {
		if len(p.Guidelines) == 0 {
			return domain.ErrNoGuidelines
		}
		if p.Dataset == nil {
			return domain.ErrNoDataset
		}
		if s.running(p) {
			return domain.ErrTrainingInProgress
		}

		cfg := p.Training
		if cfg.Dataset == "" {
			cfg.Dataset = p.Dataset.Name
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		p.Training = cfg
		p.Run = &domain.TrainingRunRecord{Config: cfg, StartedAt: s.sim.Now()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"project_id": p.ID,
		"model":      p.Run.Config.EffectiveModel(),
		"method":     p.Run.Config.MethodDescription(),
	}).Info("training run started")
	return s.view(p, 0), nil
}

func (s *TrainingService) RunStatus(ctx context.Context, id uuid.UUID) (*TrainingRunView, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Run == nil {
		return nil, domain.ErrNoSimulation
	}
	return s.view(p, s.sim.Elapsed(p.Run.StartedAt)), nil
}

func (s *TrainingService) StreamRun(ctx context.Context, id uuid.UUID, fn func(*TrainingRunView) error) error {
	p, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if p.Run == nil {
		return domain.ErrNoSimulation
	}
	logs := stages.TrainingLogs(p.Run.Params())
	return newPlayer(s.sim, stages.Training(len(logs))).Play(ctx, p.Run.StartedAt, func(f timeline.Frame[stages.TrainingState]) error {
		return fn(&TrainingRunView{
			Config:  p.Run.Config,
			State:   f.State,
			Logs:    logs[:f.State.VisibleLogs],
			Elapsed: f.At,
		})
	})
}

func (s *TrainingService) running(p *domain.Project) bool {
	return p.Run != nil && !p.Run.Completed
}

func (s *TrainingService) view(p *domain.Project, elapsed time.Duration) *TrainingRunView {
	logs := stages.TrainingLogs(p.Run.Params())
	state := stages.Training(len(logs)).At(elapsed)
	return &TrainingRunView{
		Config:  p.Run.Config,
		State:   state,
		Logs:    logs[:state.VisibleLogs],
		Elapsed: elapsed,
	}
}
