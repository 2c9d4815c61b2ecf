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

func (h *Handler) GetEnvironment(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	v, err := h.envSvc.Get(c.Request.Context(), projectID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEnvironmentResponse(v))
}

func (h *Handler) UpdateEnvironment(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	var req dto.UpdateEnvironmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.envSvc.Update(c.Request.Context(), projectID, req.ToUpdate())
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEnvironmentResponse(v))
}

// ConnectEnvironment starts provisioning. Progress is polled through
// /environment/status or followed on /environment/stream.
func (h *Handler) ConnectEnvironment(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	v, err := h.envSvc.Connect(c.Request.Context(), projectID)
	if err != nil {
		log.WithError(err).Error("connect environment failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.ToEnvironmentResponse(v))
}

func (h *Handler) StreamEnvironment(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	streamFrames(c, "stream environment",
		func(ctx context.Context, fn func(*services.EnvironmentView) error) error {
			return h.envSvc.Stream(ctx, projectID, fn)
		},
		dto.ToEnvironmentResponse,
	)
}
