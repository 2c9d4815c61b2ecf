package handlers

import (
	"context"
	"io"
	"net/http"

	"finetune-sim/internal/adapters/primary/http/dto"
	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/core/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const maxSeedFileBytes = 10 << 20

// UploadSeed accepts a multipart "file" field with seed examples in CSV,
// JSON, JSONL or plain text.
func (h *Handler) UploadSeed(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingSeedFile.Error()})
		return
	}
	if fh.Size > maxSeedFileBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "seed file exceeds 10MB"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		log.WithError(err).Error("open seed file failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidSeedFile.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSeedFileBytes))
	if err != nil {
		log.WithError(err).Error("read seed file failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidSeedFile.Error()})
		return
	}

	v, err := h.dataSvc.UploadSeed(c.Request.Context(), projectID, fh.Filename, data)
	if err != nil {
		log.WithError(err).WithField("filename", fh.Filename).Warn("seed upload rejected")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.ToSeedUploadResponse(v))
}

func (h *Handler) GetSeedUpload(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	v, err := h.dataSvc.SeedStatus(c.Request.Context(), projectID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSeedUploadResponse(v))
}

func (h *Handler) StreamSeedUpload(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	streamFrames(c, "stream seed upload",
		func(ctx context.Context, fn func(*services.SeedUploadView) error) error {
			return h.dataSvc.StreamSeed(ctx, projectID, fn)
		},
		dto.ToSeedUploadResponse,
	)
}

func (h *Handler) StartGeneration(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	var req dto.StartGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.dataSvc.StartGeneration(c.Request.Context(), projectID, req.ToConfig())
	if err != nil {
		log.WithError(err).Error("start generation failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.ToGenerationResponse(v))
}

func (h *Handler) GetGeneration(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	v, err := h.dataSvc.GenerationStatus(c.Request.Context(), projectID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGenerationResponse(v))
}

func (h *Handler) StreamGeneration(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	streamFrames(c, "stream generation",
		func(ctx context.Context, fn func(*services.GenerationView) error) error {
			return h.dataSvc.StreamGeneration(ctx, projectID, fn)
		},
		dto.ToGenerationResponse,
	)
}
