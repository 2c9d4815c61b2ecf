package services

import (
	"context"
	"strings"
	"time"

	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/core/ports/output"
	"finetune-sim/internal/sim/stages"
	"finetune-sim/internal/sim/timeline"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ExchangeView is one user message with the assistant replies visible so far.
type ExchangeView struct {
	Index   int
	Message string
	Files   []stages.ChatFile
	SentAt  time.Time
	Elapsed time.Duration
	Reply   stages.SetupReplyState
}

type SetupService struct {
	projectStore
}

func NewSetupService(repo ports.ProjectRepository, sim *Simulator) *SetupService {
	return &SetupService{projectStore: projectStore{repo: repo, sim: sim}}
}

// SendMessage records a setup chat message. Messages with attachments
// configure the project once the assistant finishes replying.
func (s *SetupService) SendMessage(ctx context.Context, id uuid.UUID, message string, files []stages.ChatFile) (*ExchangeView, error) {
	message = strings.TrimSpace(message)
	if message == "" && len(files) == 0 {
		return nil, domain.ErrEmptyMessage
	}

	p, err := s.update(ctx, id, func(p *domain.Project) error {
		p.Setup = append(p.Setup, domain.SetupExchange{
			Message: message,
			Files:   files,
			SentAt:  s.sim.Now(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"project_id": p.ID, "files": len(files)}).Info("setup message received")
	idx := len(p.Setup) - 1
	return s.view(idx, p.Setup[idx], stages.SetupChat(files)), nil
}

// Conversation returns every exchange of the project in order.
func (s *SetupService) Conversation(ctx context.Context, id uuid.UUID) ([]ExchangeView, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]ExchangeView, 0, len(p.Setup))
	for i, ex := range p.Setup {
		out = append(out, *s.view(i, ex, stages.SetupChat(ex.Files)))
	}
	return out, nil
}

// StreamLatest plays the replies to the most recent message.
func (s *SetupService) StreamLatest(ctx context.Context, id uuid.UUID, fn func(*ExchangeView) error) error {
	p, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if len(p.Setup) == 0 {
		return domain.ErrNoSimulation
	}
	idx := len(p.Setup) - 1
	ex := p.Setup[idx]
	tl := stages.SetupChat(ex.Files)
	return newPlayer(s.sim, tl).Play(ctx, ex.SentAt, func(f timeline.Frame[stages.SetupReplyState]) error {
		return fn(&ExchangeView{
			Index:   idx,
			Message: ex.Message,
			Files:   ex.Files,
			SentAt:  ex.SentAt,
			Elapsed: f.At,
			Reply:   f.State,
		})
	})
}

func (s *SetupService) view(idx int, ex domain.SetupExchange, tl *timeline.Timeline[stages.SetupReplyState]) *ExchangeView {
	elapsed := s.sim.Elapsed(ex.SentAt)
	return &ExchangeView{
		Index:   idx,
		Message: ex.Message,
		Files:   ex.Files,
		SentAt:  ex.SentAt,
		Elapsed: elapsed,
		Reply:   tl.At(elapsed),
	}
}
