package handlers

import (
	"context"
	"net/http"

	"finetune-sim/internal/adapters/primary/http/dto"
	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/core/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) GetTrainingConfig(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	cfg, err := h.trainingSvc.GetConfig(c.Request.Context(), projectID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTrainingConfigResponse(cfg))
}

func (h *Handler) UpdateTrainingConfig(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	var req dto.UpdateTrainingConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := h.trainingSvc.UpdateConfig(c.Request.Context(), projectID, req.ToUpdate())
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTrainingConfigResponse(cfg))
}

func (h *Handler) StartTrainingRun(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	v, err := h.trainingSvc.StartRun(c.Request.Context(), projectID)
	if err != nil {
		log.WithError(err).Error("start training run failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.ToTrainingRunResponse(v))
}

func (h *Handler) GetTrainingRun(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	v, err := h.trainingSvc.RunStatus(c.Request.Context(), projectID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTrainingRunResponse(v))
}

func (h *Handler) StreamTrainingRun(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	streamFrames(c, "stream training run",
		func(ctx context.Context, fn func(*services.TrainingRunView) error) error {
			return h.trainingSvc.StreamRun(ctx, projectID, fn)
		},
		dto.ToTrainingRunResponse,
	)
}
