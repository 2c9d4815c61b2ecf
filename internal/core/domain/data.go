package domain

import (
	"slices"
	"time"

	"finetune-sim/internal/sim/stages"
)

type DatasetType string

const (
	DatasetUploaded  DatasetType = "uploaded"
	DatasetSynthetic DatasetType = "synthetic"
)

// Dataset is the training data attached to a project.
type Dataset struct {
	Name string      `json:"name"`
	Rows int         `json:"rows"`
	Cols int         `json:"cols"`
	Type DatasetType `json:"type"`
}

// SeedUploadRecord is a started seed file upload.
type SeedUploadRecord struct {
	FileName  string    `json:"file_name"`
	SizeBytes int64     `json:"size_bytes"`
	Rows      int       `json:"rows"`
	StartedAt time.Time `json:"started_at"`
	Settled   bool      `json:"settled"`
}

// GenerationConfig holds the synthetic data options.
type GenerationConfig struct {
	Samples      int     `json:"samples"`
	Diversity    string  `json:"diversity"`
	Quality      float64 `json:"quality_threshold"`
	Instructions string  `json:"scenario_instructions"`
}

func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{Samples: 20000, Diversity: "high", Quality: 0.85}
}

// Validate checks the options against the offered values
func (c GenerationConfig) Validate() error {
	if !slices.Contains(stages.SampleTargets, c.Samples) {
		return ErrInvalidSampleTarget
	}
	if !slices.Contains(stages.DiversityLevels, c.Diversity) {
		return ErrInvalidDiversity
	}
	if !slices.Contains(stages.QualityThresholds, c.Quality) {
		return ErrInvalidQuality
	}
	return nil
}

// GenerationRecord is a started synthetic data run.
type GenerationRecord struct {
	Config    GenerationConfig `json:"config"`
	Seed      uint32           `json:"seed"`
	StartedAt time.Time        `json:"started_at"`
	Settled   bool             `json:"settled"`
}

// Params converts the record into simulation input.
func (r GenerationRecord) Params() stages.GenerationParams {
	return stages.GenerationParams{
		Seed:         r.Seed,
		Target:       r.Config.Samples,
		Diversity:    r.Config.Diversity,
		Quality:      r.Config.Quality,
		Instructions: r.Config.Instructions,
	}
}

// SyntheticDataset is the dataset produced by a finished generation run.
func (r GenerationRecord) SyntheticDataset() Dataset {
	return Dataset{
		Name: stages.SyntheticDatasetName,
		Rows: r.Config.Samples,
		Cols: stages.SyntheticDatasetCols,
		Type: DatasetSynthetic,
	}
}

// SeedDatasetName is the dataset name given to an uploaded seed file.
const SeedDatasetName = "seed-examples"

// UploadedDataset is the dataset attached once a seed upload finishes.
func (r SeedUploadRecord) UploadedDataset() Dataset {
	return Dataset{Name: SeedDatasetName, Rows: r.Rows, Cols: seedDatasetCols, Type: DatasetUploaded}
}

const seedDatasetCols = 3
