package dto

import (
	"time"

	"finetune-sim/internal/core/domain"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Name string  `json:"name" binding:"max=128"`
	Seed *uint32 `json:"seed"`
}

type RenameProjectRequest struct {
	Name string `json:"name" binding:"required,max=128"`
}

type NavigateRequest struct {
	Page string `json:"page" binding:"required"`
}

type AddGuidelineRequest struct {
	ID   string `json:"id"`
	Text string `json:"text" binding:"required"`
}

type ProjectResponse struct {
	ID          uuid.UUID          `json:"id"`
	CreatedAt   string             `json:"created_at"`
	UpdatedAt   string             `json:"updated_at"`
	Name        string             `json:"name"`
	Seed        uint32             `json:"seed"`
	CurrentPage string             `json:"current_page"`
	Guidelines  []domain.Guideline `json:"guidelines"`
	Connected   bool               `json:"environment_connected"`
	Dataset     *domain.Dataset    `json:"dataset"`
	RunComplete bool               `json:"run_complete"`
}

type ListProjectsResponse struct {
	Items      []ProjectResponse `json:"items"`
	Total      int               `json:"total"`
	PageSize   int               `json:"page_size"`
	NextOffset int               `json:"next_offset"`
}

func ToProjectResponse(p *domain.Project) ProjectResponse {
	guidelines := p.Guidelines
	if guidelines == nil {
		guidelines = []domain.Guideline{}
	}
	return ProjectResponse{
		ID:          p.ID,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
		Name:        p.Name,
		Seed:        p.Seed,
		CurrentPage: string(p.CurrentPage),
		Guidelines:  guidelines,
		Connected:   p.Environment.Connected,
		Dataset:     p.Dataset,
		RunComplete: p.Run != nil && p.Run.Completed,
	}
}

// CatalogResponse lists every selectable option.
type CatalogResponse struct {
	Models         []string              `json:"models"`
	Judges         []string              `json:"judges"`
	Regions        []domain.Region       `json:"regions"`
	InstanceTypes  []domain.InstanceType `json:"instance_types"`
	StorageOptions []StorageOptionDTO    `json:"storage_options"`
	SampleTargets  []int                 `json:"sample_targets"`
	Diversity      []string              `json:"diversity_levels"`
	Quality        []float64             `json:"quality_thresholds"`
	Templates      []domain.Guideline    `json:"template_guidelines"`
	Prompts        map[string]string     `json:"prompts"`
}

type StorageOptionDTO struct {
	Size           string `json:"size"`
	GB             int    `json:"gb"`
	VolumeType     string `json:"volume_type"`
	IOPS           int    `json:"iops"`
	ThroughputMBps int    `json:"throughput_mbps"`
}
