package services

import (
	"context"

	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/core/ports/output"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ExampleProjects are created on an empty store so the project list is not blank.
var ExampleProjects = []string{
	"E-commerce Bot Fine-tune",
	"Healthcare Assistant",
	"Legal Document Analyzer",
}

type ProjectService struct {
	projectStore
	seed uint32
}

func NewProjectService(repo ports.ProjectRepository, sim *Simulator, seed uint32) *ProjectService {
	return &ProjectService{projectStore: projectStore{repo: repo, sim: sim}, seed: seed}
}

// seedStride spreads default seeds of consecutive projects across the
// generator's state space.
const seedStride = 0x9E3779B1

// Create stores a new project. A nil seed is the configured project seed
// offset by the number of stored projects, so the first project on an empty
// store gets the configured seed and later ones differ.
func (s *ProjectService) Create(ctx context.Context, name string, seed *uint32) (*domain.Project, error) {
	var sd uint32
	if seed != nil {
		sd = *seed
	} else {
		_, total, err := s.repo.List(ctx, ports.ProjectListFilter{Limit: 1})
		if err != nil {
			return nil, err
		}
		sd = s.seed + uint32(total)*seedStride
	}
	p, err := domain.NewProject(name, sd)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"project_id": p.ID, "seed": sd}).Info("project created")
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return s.load(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, filter ports.ProjectListFilter) ([]*domain.Project, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *ProjectService) Rename(ctx context.Context, id uuid.UUID, name string) (*domain.Project, error) {
	return s.update(ctx, id, func(p *domain.Project) error {
		return p.Rename(name)
	})
}

func (s *ProjectService) Navigate(ctx context.Context, id uuid.UUID, page domain.Page) (*domain.Project, error) {
	return s.update(ctx, id, func(p *domain.Project) error {
		return p.Navigate(page)
	})
}

func (s *ProjectService) AddGuideline(ctx context.Context, id uuid.UUID, guidelineID, text string) (*domain.Guideline, error) {
	var g domain.Guideline
	_, err := s.update(ctx, id, func(p *domain.Project) error {
		var err error
		g, err = p.AddGuideline(guidelineID, text)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *ProjectService) RemoveGuideline(ctx context.Context, id uuid.UUID, guidelineID string) error {
	_, err := s.update(ctx, id, func(p *domain.Project) error {
		return p.RemoveGuideline(guidelineID)
	})
	return err
}

// LoadTemplate replaces the project guidelines with the template set.
func (s *ProjectService) LoadTemplate(ctx context.Context, id uuid.UUID) ([]domain.Guideline, error) {
	p, err := s.update(ctx, id, func(p *domain.Project) error {
		p.LoadTemplateGuidelines()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p.Guidelines, nil
}

// SeedExamples creates ExampleProjects when the store holds no projects.
func (s *ProjectService) SeedExamples(ctx context.Context) error {
	_, total, err := s.repo.List(ctx, ports.ProjectListFilter{Limit: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}
	for _, name := range ExampleProjects {
		if _, err := s.Create(ctx, name, nil); err != nil {
			return err
		}
	}
	return nil
}

// Ping checks the project store.
func (s *ProjectService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
