package handlers

import (
	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	projectSvc   *services.ProjectService
	setupSvc     *services.SetupService
	envSvc       *services.EnvironmentService
	dataSvc      *services.DataService
	trainingSvc  *services.TrainingService
	dashboardSvc *services.DashboardService
}

func New(
	projectSvc *services.ProjectService,
	setupSvc *services.SetupService,
	envSvc *services.EnvironmentService,
	dataSvc *services.DataService,
	trainingSvc *services.TrainingService,
	dashboardSvc *services.DashboardService,
) *Handler {
	return &Handler{
		projectSvc:   projectSvc,
		setupSvc:     setupSvc,
		envSvc:       envSvc,
		dataSvc:      dataSvc,
		trainingSvc:  trainingSvc,
		dashboardSvc: dashboardSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Catalog
	r.GET("/catalog", h.GetCatalog)
	r.GET("/curves", h.GetCurves)

	// Projects
	r.GET("/projects", h.ListProjects)
	r.POST("/projects", h.CreateProject)
	r.GET("/projects/:id", h.GetProject)
	r.PATCH("/projects/:id", h.RenameProject)

	// Project-scoped (Project-ID header)
	r.PUT("/page", h.Navigate)
	r.POST("/guidelines", h.AddGuideline)
	r.POST("/guidelines/template", h.LoadTemplateGuidelines)
	r.DELETE("/guidelines/:gid", h.RemoveGuideline)

	// Setup chat
	r.GET("/setup/messages", h.GetConversation)
	r.POST("/setup/messages", h.SendSetupMessage)
	r.GET("/setup/stream", h.StreamSetup)

	// Environment
	r.GET("/environment", h.GetEnvironment)
	r.PATCH("/environment", h.UpdateEnvironment)
	r.POST("/environment/connect", h.ConnectEnvironment)
	r.GET("/environment/status", h.GetEnvironment)
	r.GET("/environment/stream", h.StreamEnvironment)

	// Data
	r.POST("/data/seed", h.UploadSeed)
	r.GET("/data/seed", h.GetSeedUpload)
	r.GET("/data/seed/stream", h.StreamSeedUpload)
	r.POST("/data/generation", h.StartGeneration)
	r.GET("/data/generation", h.GetGeneration)
	r.GET("/data/generation/stream", h.StreamGeneration)

	// Training
	r.GET("/training/config", h.GetTrainingConfig)
	r.PATCH("/training/config", h.UpdateTrainingConfig)
	r.POST("/training/runs", h.StartTrainingRun)
	r.GET("/training/run", h.GetTrainingRun)
	r.GET("/training/run/stream", h.StreamTrainingRun)

	// Dashboard
	r.GET("/dashboard", h.GetDashboard)
	r.GET("/artifacts/:filename", h.DownloadArtifact)
}

func getProjectID(c *gin.Context) (uuid.UUID, error) {
	header := c.GetHeader("Project-ID")
	if header == "" {
		return uuid.Nil, domain.ErrMissingProjectID
	}
	return uuid.Parse(header)
}
