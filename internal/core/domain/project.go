package domain

import (
	"fmt"
	"strings"
	"time"

	"finetune-sim/internal/sim/stages"

	"github.com/google/uuid"
)

// ============================================================================
// Value Objects
// ============================================================================

// Page is a step of the project workflow.
type Page string

const (
	PageEnvironment Page = "environment"
	PageSetup       Page = "setup"
	PageData        Page = "data"
	PageFinetune    Page = "finetune"
	PageDashboard   Page = "dashboard"
)

// Pages lists the workflow in order.
var Pages = []Page{PageEnvironment, PageSetup, PageData, PageFinetune, PageDashboard}

// IsValid checks if the page is part of the workflow
func (p Page) IsValid() bool {
	for _, v := range Pages {
		if p == v {
			return true
		}
	}
	return false
}

const (
	DefaultProjectName = "Untitled Project"
	maxProjectNameLen  = 128
)

// ============================================================================
// Entities
// ============================================================================

// SetupExchange is one user message in the setup chat. The assistant replies
// are derived from the message files and SentAt.
type SetupExchange struct {
	Message string            `json:"message"`
	Files   []stages.ChatFile `json:"files,omitempty"`
	SentAt  time.Time         `json:"sent_at"`
	Applied bool              `json:"applied"`
}

// Project is the aggregate behind every workflow page. Simulations store
// their start time and inputs only; progress is recomputed on read.
type Project struct {
	ID          uuid.UUID   `json:"id"`
	Version     int64       `json:"version"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Name        string      `json:"name"`
	Seed        uint32      `json:"seed"`
	CurrentPage Page        `json:"current_page"`
	Guidelines  []Guideline `json:"guidelines"`

	Environment  EnvironmentConfig   `json:"environment"`
	Provisioning *ProvisioningRecord `json:"provisioning,omitempty"`

	SeedUpload *SeedUploadRecord `json:"seed_upload,omitempty"`
	Generation *GenerationRecord `json:"generation,omitempty"`
	Dataset    *Dataset          `json:"dataset,omitempty"`

	Training TrainingConfig     `json:"training"`
	Run      *TrainingRunRecord `json:"run,omitempty"`
	Metrics  Metrics            `json:"metrics"`

	Setup []SetupExchange `json:"setup,omitempty"`
}

// NewProject creates a project with the workflow defaults.
func NewProject(name string, seed uint32) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultProjectName
	}
	if len(name) > maxProjectNameLen {
		return nil, ErrInvalidProjectName
	}

	now := time.Now()
	return &Project{
		ID:          uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
		Name:        name,
		Seed:        seed,
		CurrentPage: PageEnvironment,
		Guidelines:  []Guideline{},
		Environment: DefaultEnvironmentConfig(),
		Training:    DefaultTrainingConfig(),
		Metrics:     DefaultMetrics(),
	}, nil
}

// Rename sets the project name
func (p *Project) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxProjectNameLen {
		return ErrInvalidProjectName
	}
	p.Name = name
	p.Touch()
	return nil
}

// Navigate moves the project to another workflow page
func (p *Project) Navigate(page Page) error {
	if !page.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPage, page)
	}
	p.CurrentPage = page
	p.Touch()
	return nil
}

// AddGuideline appends a guideline. An empty id gets a generated one.
func (p *Project) AddGuideline(id, text string) (Guideline, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Guideline{}, ErrInvalidGuideline
	}
	if id == "" {
		id = "guideline_" + uuid.NewString()[:8]
	}
	g := Guideline{ID: id, Text: text}
	p.Guidelines = append(p.Guidelines, g)
	p.Touch()
	return g, nil
}

// RemoveGuideline deletes the guideline with the given id.
func (p *Project) RemoveGuideline(id string) error {
	for i, g := range p.Guidelines {
		if g.ID == id {
			p.Guidelines = append(p.Guidelines[:i], p.Guidelines[i+1:]...)
			p.Touch()
			return nil
		}
	}
	return ErrGuidelineNotFound
}

// LoadTemplateGuidelines replaces the guidelines with the template set.
func (p *Project) LoadTemplateGuidelines() {
	p.Guidelines = make([]Guideline, len(TemplateGuidelines))
	copy(p.Guidelines, TemplateGuidelines)
	p.Touch()
}

// Touch marks the project as modified.
func (p *Project) Touch() {
	p.UpdatedAt = time.Now()
}
