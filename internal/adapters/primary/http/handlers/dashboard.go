package handlers

import (
	"fmt"
	"net/http"

	"finetune-sim/internal/adapters/primary/http/dto"
	"finetune-sim/internal/core/domain"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) GetDashboard(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}
	seed, ok := seedQuery(c)
	if !ok {
		return
	}

	v, err := h.dashboardSvc.Summary(c.Request.Context(), projectID, seed)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(v))
}

func (h *Handler) DownloadArtifact(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	a, err := h.dashboardSvc.Artifact(c.Request.Context(), projectID, c.Param("filename"))
	if err != nil {
		if errorStatus(err) >= http.StatusInternalServerError {
			log.WithError(err).Error("render artifact failed")
		}
		mapDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Name))
	c.Data(http.StatusOK, a.ContentType, a.Data)
}
