package handlers

import (
	"net/http"
	"strconv"

	"finetune-sim/internal/adapters/primary/http/dto"
	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/sim/stages"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetCatalog(c *gin.Context) {
	storage := make([]dto.StorageOptionDTO, 0, len(domain.StorageOptions))
	for _, o := range domain.StorageOptions {
		storage = append(storage, dto.StorageOptionDTO{
			Size:           strconv.Itoa(o.GB()),
			GB:             o.GB(),
			VolumeType:     o.VolumeType,
			IOPS:           o.IOPS,
			ThroughputMBps: o.ThroughputMBps,
		})
	}

	c.JSON(http.StatusOK, dto.CatalogResponse{
		Models:         domain.Models,
		Judges:         domain.Judges,
		Regions:        domain.Regions,
		InstanceTypes:  domain.InstanceTypes,
		StorageOptions: storage,
		SampleTargets:  stages.SampleTargets,
		Diversity:      stages.DiversityLevels,
		Quality:        stages.QualityThresholds,
		Templates:      domain.TemplateGuidelines,
		Prompts: map[string]string{
			"simple":   stages.SimplePrompt,
			"detailed": stages.DetailedPrompt,
		},
	})
}

// GetCurves returns the dashboard chart series for an optional seed without
// a project.
func (h *Handler) GetCurves(c *gin.Context) {
	seed, ok := seedQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.dashboardSvc.Curves(seed))
}

func seedQuery(c *gin.Context) (*uint32, bool) {
	raw := c.Query("seed")
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seed must be an unsigned 32-bit integer"})
		return nil, false
	}
	seed := uint32(v)
	return &seed, true
}
