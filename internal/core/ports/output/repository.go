package ports

import (
	"context"

	"finetune-sim/internal/core/domain"

	"github.com/google/uuid"
)

type ProjectListFilter struct {
	Search string
	Limit  int
	Offset int
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	List(ctx context.Context, filter ProjectListFilter) ([]*domain.Project, int, error)
	Ping(ctx context.Context) error
}
