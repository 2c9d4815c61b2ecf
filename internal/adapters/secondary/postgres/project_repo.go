package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"finetune-sim/internal/core/domain"
	ports "finetune-sim/internal/core/ports/output"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
	CREATE TABLE IF NOT EXISTS finetune_project (
		id          UUID PRIMARY KEY,
		version     BIGINT      NOT NULL DEFAULT 0,
		name        TEXT        NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL,
		document    JSONB       NOT NULL
	);
	ALTER TABLE finetune_project ADD COLUMN IF NOT EXISTS version BIGINT NOT NULL DEFAULT 0;
	CREATE INDEX IF NOT EXISTS finetune_project_updated_idx ON finetune_project (updated_at DESC);
`

type projectRepo struct {
	pool *pgxpool.Pool
}

// NewProjectRepository creates a project repository storing each project as
// a JSONB document.
func NewProjectRepository(pool *pgxpool.Pool) ports.ProjectRepository {
	return &projectRepo{pool: pool}
}

// EnsureSchema creates the project table if it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create finetune_project schema: %w", err)
	}
	return nil
}

func (r *projectRepo) Create(ctx context.Context, p *domain.Project) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}

	query := `
		INSERT INTO finetune_project (id, version, name, created_at, updated_at, document)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.pool.Exec(ctx, query, p.ID, p.Version, p.Name, p.CreatedAt, p.UpdatedAt, doc)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrProjectConflict
		}
		return fmt.Errorf("insert finetune_project: %w", err)
	}
	return nil
}

func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, `SELECT document FROM finetune_project WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("get finetune_project by id: %w", err)
	}
	return decodeProject(doc)
}

// Update replaces the stored project when its version still matches
// p.Version and advances p.Version on success.
func (r *projectRepo) Update(ctx context.Context, p *domain.Project) error {
	next := *p
	next.Version++
	doc, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}

	query := `
		UPDATE finetune_project
		SET version = $1, name = $2, updated_at = $3, document = $4
		WHERE id = $5 AND version = $6
	`
	result, err := r.pool.Exec(ctx, query, next.Version, p.Name, p.UpdatedAt, doc, p.ID, p.Version)
	if err != nil {
		return fmt.Errorf("update finetune_project: %w", err)
	}
	if result.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM finetune_project WHERE id = $1)`, p.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check finetune_project: %w", err)
		}
		if !exists {
			return domain.ErrProjectNotFound
		}
		return domain.ErrProjectVersionConflict
	}
	p.Version = next.Version
	return nil
}

func (r *projectRepo) List(ctx context.Context, filter ports.ProjectListFilter) ([]*domain.Project, int, error) {
	where := "TRUE"
	args := []interface{}{}
	argPos := 1
	if filter.Search != "" {
		where = fmt.Sprintf("name ILIKE $%d", argPos)
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM finetune_project WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count finetune_projects: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT document FROM finetune_project
		WHERE %s
		ORDER BY updated_at DESC, id
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list finetune_projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, 0, fmt.Errorf("scan finetune_project: %w", err)
		}
		p, err := decodeProject(doc)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate finetune_projects: %w", err)
	}
	return projects, total, nil
}

func (r *projectRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func decodeProject(doc []byte) (*domain.Project, error) {
	var p domain.Project
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("decode finetune_project document: %w", err)
	}
	return &p, nil
}
