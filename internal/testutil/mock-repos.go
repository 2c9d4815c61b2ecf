package testutil

import (
	"context"

	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/core/ports/output"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProjectRepo is a mock of ProjectRepository.
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepo) Update(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepo) List(ctx context.Context, filter ports.ProjectListFilter) ([]*domain.Project, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Project), args.Int(1), args.Error(2)
}

func (m *MockProjectRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockArtifactRenderer is a mock of ArtifactRenderer.
type MockArtifactRenderer struct {
	mock.Mock
}

func (m *MockArtifactRenderer) Render(ctx context.Context, name string, bundle ports.ArtifactBundle) (*ports.Artifact, error) {
	args := m.Called(ctx, name, bundle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Artifact), args.Error(1)
}
