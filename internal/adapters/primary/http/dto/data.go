package dto

import (
	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/core/services"
	"finetune-sim/internal/sim/stages"
)

type StartGenerationRequest struct {
	Samples      int     `json:"num_samples" binding:"required"`
	Diversity    string  `json:"diversity" binding:"required"`
	Quality      float64 `json:"quality_threshold" binding:"required"`
	Instructions string  `json:"scenario_instructions"`
}

func (r StartGenerationRequest) ToConfig() domain.GenerationConfig {
	return domain.GenerationConfig{
		Samples:      r.Samples,
		Diversity:    r.Diversity,
		Quality:      r.Quality,
		Instructions: r.Instructions,
	}
}

type SeedUploadResponse struct {
	FileName  string                 `json:"file_name"`
	SizeBytes int64                  `json:"size_bytes"`
	ElapsedMs int64                  `json:"elapsed_ms"`
	Progress  stages.SeedUploadState `json:"progress"`
	Dataset   *domain.Dataset        `json:"dataset"`
}

func ToSeedUploadResponse(v *services.SeedUploadView) SeedUploadResponse {
	return SeedUploadResponse{
		FileName:  v.FileName,
		SizeBytes: v.SizeBytes,
		ElapsedMs: v.Elapsed.Milliseconds(),
		Progress:  v.State,
		Dataset:   v.Dataset,
	}
}

type PipelineProgress struct {
	ID       string  `json:"id"`
	Model    string  `json:"model"`
	Share    int     `json:"share"`
	Progress float64 `json:"progress"`
}

type GenerationResponse struct {
	Config           domain.GenerationConfig `json:"config"`
	Generating       bool                    `json:"generating"`
	Complete         bool                    `json:"complete"`
	Stage            int                     `json:"stage"`
	StageName        string                  `json:"stage_name,omitempty"`
	TotalStages      int                     `json:"total_stages"`
	ShowRetry        bool                    `json:"show_retry"`
	ActivePersonas   []string                `json:"active_personas"`
	SamplesProcessed int                     `json:"samples_processed"`
	Pipelines        []PipelineProgress      `json:"pipelines"`
	ElapsedMs        int64                   `json:"elapsed_ms"`
	DurationMs       int64                   `json:"duration_ms"`
	Dataset          *domain.Dataset         `json:"dataset"`
}

func ToGenerationResponse(v *services.GenerationView) GenerationResponse {
	pipelines := make([]PipelineProgress, 0, len(stages.Pipelines))
	for i, pl := range stages.Pipelines {
		pipelines = append(pipelines, PipelineProgress{
			ID:       pl.ID,
			Model:    pl.Model,
			Share:    pl.Share,
			Progress: v.State.Pipelines[i],
		})
	}
	personas := v.State.ActivePersonas
	if personas == nil {
		personas = []string{}
	}
	return GenerationResponse{
		Config:           v.Config,
		Generating:       v.State.Generating,
		Complete:         v.State.Complete,
		Stage:            v.State.Stage,
		StageName:        v.StageName,
		TotalStages:      len(stages.GenerationStages),
		ShowRetry:        v.State.ShowRetry,
		ActivePersonas:   personas,
		SamplesProcessed: v.State.SamplesProcessed,
		Pipelines:        pipelines,
		ElapsedMs:        v.Elapsed.Milliseconds(),
		DurationMs:       v.Duration.Milliseconds(),
		Dataset:          v.Dataset,
	}
}
