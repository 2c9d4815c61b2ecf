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

func (h *Handler) GetConversation(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	views, err := h.setupSvc.Conversation(c.Request.Context(), projectID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ExchangeResponse, 0, len(views))
	for i := range views {
		items = append(items, dto.ToExchangeResponse(&views[i]))
	}
	c.JSON(http.StatusOK, gin.H{"exchanges": items})
}

func (h *Handler) SendSetupMessage(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.setupSvc.SendMessage(c.Request.Context(), projectID, req.Message, req.ToFiles())
	if err != nil {
		log.WithError(err).Error("send setup message failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.ToExchangeResponse(v))
}

func (h *Handler) StreamSetup(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	streamFrames(c, "stream setup replies",
		func(ctx context.Context, fn func(*services.ExchangeView) error) error {
			return h.setupSvc.StreamLatest(ctx, projectID, fn)
		},
		dto.ToExchangeResponse,
	)
}
