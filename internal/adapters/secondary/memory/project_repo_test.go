package memory

import (
	"context"
	"testing"
	"time"

	"finetune-sim/internal/core/domain"
	ports "finetune-sim/internal/core/ports/output"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProject(t *testing.T, name string, updated time.Time) *domain.Project {
	t.Helper()
	p, err := domain.NewProject(name, 1)
	require.NoError(t, err)
	p.UpdatedAt = updated
	return p
}

func TestProjectRepo_CreateGetUpdate(t *testing.T) {
	repo := NewProjectRepository()
	ctx := context.Background()
	p := newProject(t, "Support Bot", time.Now())

	require.NoError(t, repo.Create(ctx, p))
	assert.ErrorIs(t, repo.Create(ctx, p), domain.ErrProjectConflict)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Support Bot", got.Name)
	assert.True(t, got.Metrics.Trained.Intent.Equal(p.Metrics.Trained.Intent))

	got.Name = "changed"
	reread, _ := repo.GetByID(ctx, p.ID)
	assert.Equal(t, "Support Bot", reread.Name, "returned projects are copies")

	require.NoError(t, repo.Update(ctx, got))
	reread, _ = repo.GetByID(ctx, p.ID)
	assert.Equal(t, "changed", reread.Name)
}

func TestProjectRepo_UpdateRejectsStaleVersion(t *testing.T) {
	repo := NewProjectRepository()
	ctx := context.Background()
	p := newProject(t, "Support Bot", time.Now())
	require.NoError(t, repo.Create(ctx, p))

	first, _ := repo.GetByID(ctx, p.ID)
	second, _ := repo.GetByID(ctx, p.ID)

	first.Name = "first"
	require.NoError(t, repo.Update(ctx, first))
	assert.Equal(t, int64(1), first.Version)

	second.Name = "second"
	assert.ErrorIs(t, repo.Update(ctx, second), domain.ErrProjectVersionConflict)
	assert.Equal(t, int64(0), second.Version, "failed update keeps the version")

	reread, _ := repo.GetByID(ctx, p.ID)
	assert.Equal(t, "first", reread.Name)
	assert.Equal(t, int64(1), reread.Version)
}

func TestProjectRepo_NotFound(t *testing.T) {
	repo := NewProjectRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	p := newProject(t, "ghost", time.Now())
	assert.ErrorIs(t, repo.Update(ctx, p), domain.ErrProjectNotFound)
}

func TestProjectRepo_List(t *testing.T) {
	repo := NewProjectRepository()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"Healthcare Assistant", "E-commerce Bot Fine-tune", "Legal Document Analyzer"} {
		require.NoError(t, repo.Create(ctx, newProject(t, name, base.Add(time.Duration(i)*time.Hour))))
	}

	all, total, err := repo.List(ctx, ports.ProjectListFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, "Legal Document Analyzer", all[0].Name)

	page, total, err := repo.List(ctx, ports.ProjectListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, "E-commerce Bot Fine-tune", page[0].Name)

	found, total, err := repo.List(ctx, ports.ProjectListFilter{Search: "BOT", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "E-commerce Bot Fine-tune", found[0].Name)

	none, total, err := repo.List(ctx, ports.ProjectListFilter{Limit: 10, Offset: 50})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, none)
}
