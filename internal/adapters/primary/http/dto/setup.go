package dto

import (
	"time"

	"finetune-sim/internal/core/services"
	"finetune-sim/internal/sim/stages"
)

type ChatFileDTO struct {
	Name string `json:"name" binding:"required"`
	Size int64  `json:"size"`
}

type SendMessageRequest struct {
	Message string        `json:"message"`
	Files   []ChatFileDTO `json:"files" binding:"dive"`
}

func (r SendMessageRequest) ToFiles() []stages.ChatFile {
	if len(r.Files) == 0 {
		return nil
	}
	files := make([]stages.ChatFile, len(r.Files))
	for i, f := range r.Files {
		files[i] = stages.ChatFile{Name: f.Name, Size: f.Size}
	}
	return files
}

type ExchangeResponse struct {
	Index     int                `json:"index"`
	Message   string             `json:"message"`
	Files     []stages.ChatFile  `json:"files"`
	SentAt    string             `json:"sent_at"`
	ElapsedMs int64              `json:"elapsed_ms"`
	Replies   []stages.ChatReply `json:"replies"`
	Rename    string             `json:"rename,omitempty"`
	Done      bool               `json:"done"`
}

func ToExchangeResponse(v *services.ExchangeView) ExchangeResponse {
	files := v.Files
	if files == nil {
		files = []stages.ChatFile{}
	}
	replies := v.Reply.Replies
	if replies == nil {
		replies = []stages.ChatReply{}
	}
	return ExchangeResponse{
		Index:     v.Index,
		Message:   v.Message,
		Files:     files,
		SentAt:    v.SentAt.Format(time.RFC3339),
		ElapsedMs: v.Elapsed.Milliseconds(),
		Replies:   replies,
		Rename:    v.Reply.Rename,
		Done:      v.Reply.Done,
	}
}
