package handlers

import (
	"errors"
	"net/http"

	"finetune-sim/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"error": errorMessage(err)})
}

func errorMessage(err error) string {
	if errorStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

func errorStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrGuidelineNotFound),
		errors.Is(err, domain.ErrArtifactNotFound),
		errors.Is(err, domain.ErrSeedNotUploaded),
		errors.Is(err, domain.ErrNoSimulation):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, domain.ErrProjectConflict),
		errors.Is(err, domain.ErrProjectVersionConflict),
		errors.Is(err, domain.ErrEnvironmentConnected),
		errors.Is(err, domain.ErrEnvironmentConnecting),
		errors.Is(err, domain.ErrUploadInProgress),
		errors.Is(err, domain.ErrGenerationInProgress),
		errors.Is(err, domain.ErrTrainingInProgress):
		return http.StatusConflict

	// Bad request / validation errors
	case errors.Is(err, domain.ErrMissingProjectID),
		errors.Is(err, domain.ErrInvalidProjectName),
		errors.Is(err, domain.ErrInvalidPage),
		errors.Is(err, domain.ErrInvalidGuideline),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrUnknownRegion),
		errors.Is(err, domain.ErrUnknownInstanceType),
		errors.Is(err, domain.ErrInvalidStorageSize),
		errors.Is(err, domain.ErrInvalidVPCOption),
		errors.Is(err, domain.ErrMissingVPCID),
		errors.Is(err, domain.ErrInvalidProvider),
		errors.Is(err, domain.ErrInvalidPlacement),
		errors.Is(err, domain.ErrInvalidTenancy),
		errors.Is(err, domain.ErrMissingSeedFile),
		errors.Is(err, domain.ErrInvalidSeedFile),
		errors.Is(err, domain.ErrInvalidSampleTarget),
		errors.Is(err, domain.ErrInvalidDiversity),
		errors.Is(err, domain.ErrInvalidQuality),
		errors.Is(err, domain.ErrUnknownModel),
		errors.Is(err, domain.ErrUnknownJudge),
		errors.Is(err, domain.ErrInvalidStrategy),
		errors.Is(err, domain.ErrInvalidAlgorithm),
		errors.Is(err, domain.ErrInvalidRegex),
		errors.Is(err, domain.ErrInvalidDatasetName),
		errors.Is(err, domain.ErrInvalidOutput),
		errors.Is(err, domain.ErrInvalidEffort),
		errors.Is(err, domain.ErrInvalidLatencySLA),
		errors.Is(err, domain.ErrNoDataset),
		errors.Is(err, domain.ErrNoGuidelines):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
