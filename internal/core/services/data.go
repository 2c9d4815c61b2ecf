package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/core/ports/output"
	"finetune-sim/internal/sim/stages"
	"finetune-sim/internal/sim/timeline"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SeedUploadView is the seed upload progress at one instant.
type SeedUploadView struct {
	FileName  string
	SizeBytes int64
	State     stages.SeedUploadState
	Elapsed   time.Duration
	Dataset   *domain.Dataset
}

// GenerationView is the synthetic data run at one instant.
type GenerationView struct {
	Config    domain.GenerationConfig
	State     stages.GenerationState
	StageName string
	Elapsed   time.Duration
	Duration  time.Duration
	Dataset   *domain.Dataset
}

type DataService struct {
	projectStore
}

func NewDataService(repo ports.ProjectRepository, sim *Simulator) *DataService {
	return &DataService{projectStore: projectStore{repo: repo, sim: sim}}
}

// UploadSeed counts the examples in a seed file and starts the upload
// simulation.
func (s *DataService) UploadSeed(ctx context.Context, id uuid.UUID, filename string, data []byte) (*SeedUploadView, error) {
	if strings.TrimSpace(filename) == "" || len(data) == 0 {
		return nil, domain.ErrMissingSeedFile
	}
	rows, err := stages.CountRows(filename, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidSeedFile, filename)
	}

	p, err := s.update(ctx, id, func(p *domain.Project) error {
		if up := p.SeedUpload; up != nil && !up.Settled {
			return domain.ErrUploadInProgress
		}
		if s.generating(p) {
			return domain.ErrGenerationInProgress
		}

		p.SeedUpload = &domain.SeedUploadRecord{
			FileName:  filename,
			SizeBytes: int64(len(data)),
			Rows:      rows,
			StartedAt: s.sim.Now(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"project_id": p.ID, "file": filename, "rows": rows}).Info("seed upload started")
	return s.seedView(p, stages.SeedUpload(rows), 0), nil
}

func (s *DataService) SeedStatus(ctx context.Context, id uuid.UUID) (*SeedUploadView, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.SeedUpload == nil {
		return nil, domain.ErrSeedNotUploaded
	}
	return s.seedView(p, stages.SeedUpload(p.SeedUpload.Rows), s.sim.Elapsed(p.SeedUpload.StartedAt)), nil
}

func (s *DataService) StreamSeed(ctx context.Context, id uuid.UUID, fn func(*SeedUploadView) error) error {
	p, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if p.SeedUpload == nil {
		return domain.ErrSeedNotUploaded
	}
	tl := stages.SeedUpload(p.SeedUpload.Rows)
	return newPlayer(s.sim, tl).Play(ctx, p.SeedUpload.StartedAt, func(f timeline.Frame[stages.SeedUploadState]) error {
		return fn(s.seedView(p, tl, f.At))
	})
}

// StartGeneration starts a synthetic data run. The seed upload must have
// finished first.
func (s *DataService) StartGeneration(ctx context.Context, id uuid.UUID, cfg domain.GenerationConfig) (*GenerationView, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p, err := s.update(ctx, id, func(p *domain.Project) error {
		if p.SeedUpload == nil || !p.SeedUpload.Settled {
			return domain.ErrSeedNotUploaded
		}
		if s.generating(p) {
			return domain.ErrGenerationInProgress
		}

		p.Generation = &domain.GenerationRecord{
			Config:    cfg,
			Seed:      s.sim.dataGenSeed,
			StartedAt: s.sim.Now(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"project_id": p.ID,
		"seed":       p.Generation.Seed,
		"samples":    cfg.Samples,
	}).Info("synthetic generation started")
	return s.generationView(p, stages.Generation(p.Generation.Params()), 0), nil
}

func (s *DataService) GenerationStatus(ctx context.Context, id uuid.UUID) (*GenerationView, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Generation == nil {
		return nil, domain.ErrNoSimulation
	}
	tl := stages.Generation(p.Generation.Params())
	return s.generationView(p, tl, s.sim.Elapsed(p.Generation.StartedAt)), nil
}

func (s *DataService) StreamGeneration(ctx context.Context, id uuid.UUID, fn func(*GenerationView) error) error {
	p, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if p.Generation == nil {
		return domain.ErrNoSimulation
	}
	tl := stages.Generation(p.Generation.Params())
	return newPlayer(s.sim, tl).Play(ctx, p.Generation.StartedAt, func(f timeline.Frame[stages.GenerationState]) error {
		return fn(s.generationView(p, tl, f.At))
	})
}

func (s *DataService) generating(p *domain.Project) bool {
	return p.Generation != nil && !p.Generation.Settled
}

func (s *DataService) seedView(p *domain.Project, tl *timeline.Timeline[stages.SeedUploadState], elapsed time.Duration) *SeedUploadView {
	return &SeedUploadView{
		FileName:  p.SeedUpload.FileName,
		SizeBytes: p.SeedUpload.SizeBytes,
		State:     tl.At(elapsed),
		Elapsed:   elapsed,
		Dataset:   p.Dataset,
	}
}

func (s *DataService) generationView(p *domain.Project, tl *timeline.Timeline[stages.GenerationState], elapsed time.Duration) *GenerationView {
	state := tl.At(elapsed)
	v := &GenerationView{
		Config:   p.Generation.Config,
		State:    state,
		Elapsed:  elapsed,
		Duration: stages.GenerationDuration(),
	}
	if state.Stage < len(stages.GenerationStages) {
		v.StageName = stages.GenerationStages[state.Stage].Name
	}
	if state.Complete {
		d := p.Generation.SyntheticDataset()
		v.Dataset = &d
	}
	return v
}
