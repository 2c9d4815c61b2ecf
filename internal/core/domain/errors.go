package domain

import "errors"

// ============================================================================
// Project Errors
// ============================================================================

var (
	ErrProjectNotFound        = errors.New("project not found")
	ErrProjectConflict        = errors.New("project with this ID already exists")
	ErrProjectVersionConflict = errors.New("project was modified concurrently")
	ErrMissingProjectID       = errors.New("project ID is required (Project-ID header)")
	ErrInvalidProjectName     = errors.New("project name is required")
	ErrInvalidPage            = errors.New("unknown page")
)

// ============================================================================
// Setup Errors
// ============================================================================

var (
	ErrGuidelineNotFound = errors.New("guideline not found")
	ErrInvalidGuideline  = errors.New("guideline text is required")
	ErrEmptyMessage      = errors.New("message text or files are required")
)

// ============================================================================
// Environment Errors
// ============================================================================

// Validation errors
var (
	ErrUnknownRegion       = errors.New("unknown region")
	ErrUnknownInstanceType = errors.New("unknown instance type")
	ErrInvalidStorageSize  = errors.New("storage size must be one of the offered volumes")
	ErrInvalidVPCOption    = errors.New("vpc option must be new or existing")
	ErrMissingVPCID        = errors.New("existing VPC ID is required")
	ErrInvalidProvider     = errors.New("unsupported cloud provider")
	ErrInvalidPlacement    = errors.New("unknown placement strategy")
	ErrInvalidTenancy      = errors.New("unknown instance tenancy")
)

// Business rule errors
var (
	ErrEnvironmentConnected  = errors.New("environment is already connected")
	ErrEnvironmentConnecting = errors.New("environment connection is in progress")
)

// ============================================================================
// Data Errors
// ============================================================================

var (
	ErrMissingSeedFile      = errors.New("seed file is required")
	ErrInvalidSeedFile      = errors.New("seed file could not be read")
	ErrSeedNotUploaded      = errors.New("seed examples must be uploaded before generation")
	ErrUploadInProgress     = errors.New("seed upload is in progress")
	ErrGenerationInProgress = errors.New("data generation is in progress")
	ErrInvalidSampleTarget  = errors.New("sample count must be 5000, 10000, 20000 or 50000")
	ErrInvalidDiversity     = errors.New("diversity must be low, medium or high")
	ErrInvalidQuality       = errors.New("quality threshold must be 0.75, 0.85, 0.90 or 0.95")
	ErrNoSimulation         = errors.New("simulation has not been started")
)

// ============================================================================
// Training Errors
// ============================================================================

// Validation errors
var (
	ErrUnknownModel       = errors.New("unknown model")
	ErrUnknownJudge       = errors.New("unknown judge model")
	ErrInvalidStrategy    = errors.New("strategies must be a non-empty subset of SFT, RL, OPD")
	ErrInvalidAlgorithm   = errors.New("algorithms must be a subset of PPO, DPO, GRPO")
	ErrInvalidRegex       = errors.New("reward regex does not compile")
	ErrInvalidDatasetName = errors.New("dataset name must be a DNS-1123 label")
	ErrInvalidOutput      = errors.New("output format must be regex or json")
	ErrInvalidEffort      = errors.New("reasoning effort must be low, medium or high")
	ErrInvalidLatencySLA  = errors.New("latency SLA must be positive")
)

// Business rule errors
var (
	ErrNoDataset          = errors.New("a dataset is required before training")
	ErrNoGuidelines       = errors.New("at least one guideline is required before training")
	ErrTrainingInProgress = errors.New("training run is in progress")
)

// ============================================================================
// Artifact Errors
// ============================================================================

var (
	ErrArtifactNotFound = errors.New("artifact not found")
)
