package ports

import (
	"context"

	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/sim/curves"
	"finetune-sim/internal/sim/stages"
)

// Artifact is a rendered download.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// ArtifactBundle is everything an artifact may be rendered from.
type ArtifactBundle struct {
	Project *domain.Project
	RunName string
	Curves  curves.Series
	Samples []stages.SampleRow
}

type ArtifactRenderer interface {
	Render(ctx context.Context, name string, bundle ArtifactBundle) (*Artifact, error)
}
