package services

import (
	"context"
	"time"

	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/core/ports/output"
	"finetune-sim/internal/sim/seedrand"
	"finetune-sim/internal/sim/stages"
	"finetune-sim/internal/sim/timeline"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// EnvironmentUpdate holds the fields of a config edit; nil leaves a field unchanged.
type EnvironmentUpdate struct {
	CloudProvider *string
	Region        *string
	InstanceType  *string
	VPCOption     *string
	ExistingVPCID *string
	StorageSize   *string
	Placement     *string
	Tenancy       *string
	EFA           *bool
}

// EnvironmentView is the environment page at one instant.
type EnvironmentView struct {
	Config    domain.EnvironmentConfig
	State     stages.ProvisioningState
	Resources *stages.Resources
	Console   []string
	Running   bool
	Uptime    time.Duration
	Elapsed   time.Duration
	Done      bool
}

type EnvironmentService struct {
	projectStore
}

func NewEnvironmentService(repo ports.ProjectRepository, sim *Simulator) *EnvironmentService {
	return &EnvironmentService{projectStore: projectStore{repo: repo, sim: sim}}
}

func (s *EnvironmentService) Get(ctx context.Context, id uuid.UUID) (*EnvironmentView, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.current(p), nil
}

// Update edits the config. The config is locked once a connection starts.
func (s *EnvironmentService) Update(ctx context.Context, id uuid.UUID, u EnvironmentUpdate) (*EnvironmentView, error) {
	p, err := s.update(ctx, id, func(p *domain.Project) error {
		if err := s.checkIdle(p); err != nil {
			return err
		}

		cfg := p.Environment
		if u.CloudProvider != nil {
			cfg.CloudProvider = *u.CloudProvider
		}
		if u.Region != nil {
			cfg.Region = *u.Region
		}
		if u.InstanceType != nil {
			cfg.InstanceType = *u.InstanceType
		}
		if u.VPCOption != nil {
			cfg.VPCOption = *u.VPCOption
		}
		if u.ExistingVPCID != nil {
			cfg.ExistingVPCID = *u.ExistingVPCID
		}
		if u.StorageSize != nil {
			cfg.StorageSize = *u.StorageSize
		}
		if u.Placement != nil {
			cfg.Placement = *u.Placement
		}
		if u.Tenancy != nil {
			cfg.Tenancy = *u.Tenancy
		}
		if u.EFA != nil {
			cfg.EFA = *u.EFA
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		p.Environment = cfg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.current(p), nil
}

// Connect starts provisioning. Resource ids are drawn from the project seed.
func (s *EnvironmentService) Connect(ctx context.Context, id uuid.UUID) (*EnvironmentView, error) {
	p, err := s.update(ctx, id, func(p *domain.Project) error {
		if err := s.checkIdle(p); err != nil {
			return err
		}
		if err := p.Environment.Validate(); err != nil {
			return err
		}

		params := p.Environment.ProvisioningParams()
		p.Provisioning = &domain.ProvisioningRecord{
			StartedAt: s.sim.Now(),
			Config:    p.Environment,
			Resources: stages.NewResources(seedrand.New(p.Seed), params),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"project_id":  p.ID,
		"seed":        p.Seed,
		"instance_id": p.Provisioning.Resources.InstanceID,
	}).Info("environment provisioning started")
	return s.current(p), nil
}

// Stream plays the provisioning console from the current instant on. Views
// carry the live elapsed time, so uptime keeps counting after the final frame.
func (s *EnvironmentService) Stream(ctx context.Context, id uuid.UUID, fn func(*EnvironmentView) error) error {
	p, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if p.Provisioning == nil {
		return domain.ErrNoSimulation
	}
	tl := stages.Provisioning()
	started := p.Provisioning.StartedAt
	return newPlayer(s.sim, tl).Play(ctx, started, func(f timeline.Frame[stages.ProvisioningState]) error {
		return fn(s.view(p, tl, max(f.At, s.sim.Elapsed(started))))
	})
}

func (s *EnvironmentService) checkIdle(p *domain.Project) error {
	if p.Environment.Connected {
		return domain.ErrEnvironmentConnected
	}
	if p.Provisioning != nil {
		return domain.ErrEnvironmentConnecting
	}
	return nil
}

func (s *EnvironmentService) current(p *domain.Project) *EnvironmentView {
	if p.Provisioning == nil {
		return &EnvironmentView{Config: p.Environment}
	}
	return s.view(p, stages.Provisioning(), s.sim.Elapsed(p.Provisioning.StartedAt))
}

func (s *EnvironmentService) view(p *domain.Project, tl *timeline.Timeline[stages.ProvisioningState], elapsed time.Duration) *EnvironmentView {
	rec := p.Provisioning
	state := tl.At(elapsed)
	lines := stages.ConsoleLines(rec.Config.ProvisioningParams(), rec.Resources)
	base := rec.StartedAt.Add(stages.ConnectDelay).UTC()

	console := make([]string, 0, state.VisibleLogs)
	for _, l := range lines[:min(state.VisibleLogs, len(lines))] {
		console = append(console, l.Format(base))
	}

	cfg := p.Environment
	cfg.Connected = state.Connected
	res := rec.Resources
	return &EnvironmentView{
		Config:    cfg,
		State:     state,
		Resources: &res,
		Console:   console,
		Running:   state.Running(),
		Uptime:    stages.Uptime(elapsed),
		Elapsed:   elapsed,
		Done:      tl.Done(elapsed),
	}
}
