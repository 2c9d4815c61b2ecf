// Package memory is the default in-process project store.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"finetune-sim/internal/core/domain"
	ports "finetune-sim/internal/core/ports/output"

	"github.com/google/uuid"
)

// projectRepo keeps projects as encoded documents so callers never share
// state with the store, matching the postgres adapter.
type projectRepo struct {
	mu       sync.RWMutex
	projects map[uuid.UUID]document
}

type document struct {
	version int64
	data    []byte
}

func NewProjectRepository() ports.ProjectRepository {
	return &projectRepo{projects: make(map[uuid.UUID]document)}
}

func (r *projectRepo) Create(ctx context.Context, p *domain.Project) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[p.ID]; ok {
		return domain.ErrProjectConflict
	}
	r.projects[p.ID] = document{version: p.Version, data: doc}
	return nil
}

func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	r.mu.RLock()
	doc, ok := r.projects[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return decode(doc.data)
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

	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.projects[p.ID]
	if !ok {
		return domain.ErrProjectNotFound
	}
	if cur.version != p.Version {
		return domain.ErrProjectVersionConflict
	}
	r.projects[p.ID] = document{version: next.Version, data: doc}
	p.Version = next.Version
	return nil
}

func (r *projectRepo) List(ctx context.Context, filter ports.ProjectListFilter) ([]*domain.Project, int, error) {
	r.mu.RLock()
	all := make([]*domain.Project, 0, len(r.projects))
	for _, doc := range r.projects {
		p, err := decode(doc.data)
		if err != nil {
			r.mu.RUnlock()
			return nil, 0, err
		}
		all = append(all, p)
	}
	r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	matched := all[:0]
	for _, p := range all {
		if search == "" || strings.Contains(strings.ToLower(p.Name), search) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].UpdatedAt.Equal(matched[j].UpdatedAt) {
			return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	total := len(matched)
	start := min(max(filter.Offset, 0), total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return matched[start:end], total, nil
}

func (r *projectRepo) Ping(ctx context.Context) error {
	return nil
}

func decode(doc []byte) (*domain.Project, error) {
	var p domain.Project
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	return &p, nil
}
