package services

import (
	"context"
	"errors"
	"time"

	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/core/ports/output"
	"finetune-sim/internal/sim/stages"
	"finetune-sim/internal/sim/timeline"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// Simulator maps stored start times onto simulation time.
type Simulator struct {
	clock       clock.Clock
	speed       float64
	dataGenSeed uint32
}

// NewSimulator builds a simulator. A nil clock uses the wall clock and a
// non-positive speed plays in real time.
func NewSimulator(clk clock.Clock, speed float64, dataGenSeed uint32) *Simulator {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if speed <= 0 {
		speed = 1
	}
	return &Simulator{clock: clk, speed: speed, dataGenSeed: dataGenSeed}
}

func (s *Simulator) Now() time.Time {
	return s.clock.Now()
}

// Elapsed is the simulation time since started.
func (s *Simulator) Elapsed(started time.Time) time.Duration {
	return timeline.VirtualSince(s.clock, started, s.speed)
}

func newPlayer[S any](s *Simulator, tl *timeline.Timeline[S]) *timeline.Player[S] {
	return timeline.NewPlayer(tl, s.clock, s.speed)
}

// Settle applies the outcome of every finished simulation to p and reports
// whether anything changed.
func (s *Simulator) Settle(p *domain.Project) bool {
	changed := false

	if pr := p.Provisioning; pr != nil && !p.Environment.Connected {
		if s.Elapsed(pr.StartedAt) >= stages.ConnectDelay {
			p.Environment.Connected = true
			changed = true
		}
	}

	if up := p.SeedUpload; up != nil && !up.Settled {
		if stages.SeedUpload(up.Rows).Done(s.Elapsed(up.StartedAt)) {
			up.Settled = true
			if p.Dataset == nil {
				d := up.UploadedDataset()
				p.Dataset = &d
			}
			changed = true
		}
	}

	if gen := p.Generation; gen != nil && !gen.Settled {
		if s.Elapsed(gen.StartedAt) >= stages.GenerationDuration() {
			gen.Settled = true
			d := gen.SyntheticDataset()
			p.Dataset = &d
			if p.Training.Dataset == "" {
				p.Training.Dataset = d.Name
			}
			changed = true
		}
	}

	if run := p.Run; run != nil && !run.Completed {
		total := len(stages.TrainingLogs(run.Params()))
		if stages.Training(total).Done(s.Elapsed(run.StartedAt)) {
			run.Completed = true
			changed = true
		}
	}

	for i := range p.Setup {
		ex := &p.Setup[i]
		if ex.Applied || len(ex.Files) == 0 {
			continue
		}
		tl := stages.SetupChat(ex.Files)
		if !tl.Done(s.Elapsed(ex.SentAt)) {
			continue
		}
		if name := tl.Final().Rename; name != "" {
			p.Name = name
		}
		ex.Applied = true
		changed = true
	}

	if changed {
		p.Touch()
	}
	return changed
}

// projectStore loads projects with finished simulations settled.
type projectStore struct {
	repo ports.ProjectRepository
	sim  *Simulator
}

// maxWriteAttempts bounds retries of a read-modify-write that lost a version
// race against another writer.
const maxWriteAttempts = 5

func (st projectStore) load(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if id == uuid.Nil {
		return nil, domain.ErrMissingProjectID
	}
	for attempt := 1; ; attempt++ {
		p, err := st.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !st.sim.Settle(p) {
			return p, nil
		}
		err = st.repo.Update(ctx, p)
		switch {
		case err == nil:
			log.WithField("project_id", p.ID).Debug("settled finished simulations")
			return p, nil
		case errors.Is(err, domain.ErrProjectVersionConflict) && attempt < maxWriteAttempts:
			// Another writer got in first; its document is settled on the next read.
			continue
		case errors.Is(err, domain.ErrProjectVersionConflict):
			return p, nil
		default:
			return nil, err
		}
	}
}

// update runs fn on a freshly loaded project and saves the result. When the
// save loses a version race the whole read-modify-write is repeated, so fn
// must only depend on the project it is given.
func (st projectStore) update(ctx context.Context, id uuid.UUID, fn func(p *domain.Project) error) (*domain.Project, error) {
	for attempt := 1; ; attempt++ {
		p, err := st.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := fn(p); err != nil {
			return nil, err
		}
		p.Touch()
		err = st.repo.Update(ctx, p)
		if errors.Is(err, domain.ErrProjectVersionConflict) && attempt < maxWriteAttempts {
			log.WithFields(log.Fields{"project_id": id, "attempt": attempt}).Debug("project changed concurrently, retrying")
			continue
		}
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}
