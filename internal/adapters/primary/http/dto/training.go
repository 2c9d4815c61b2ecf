package dto

import (
	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/core/services"
)

type UpdateTrainingConfigRequest struct {
	Dataset         *string  `json:"dataset"`
	AIJudge         *string  `json:"ai_judge"`
	Model           *string  `json:"model"`
	Strategies      []string `json:"strategies"`
	Algorithms      []string `json:"algorithms"`
	RewardRegex     *string  `json:"reward_regex"`
	OutputFormat    *string  `json:"output_format"`
	ReasoningEffort *string  `json:"reasoning_effort"`
	LatencySLAMs    *int     `json:"latency_sla_ms"`
}

func (r UpdateTrainingConfigRequest) ToUpdate() services.TrainingUpdate {
	u := services.TrainingUpdate{
		Dataset:         r.Dataset,
		AIJudge:         r.AIJudge,
		Model:           r.Model,
		RewardRegex:     r.RewardRegex,
		OutputFormat:    r.OutputFormat,
		ReasoningEffort: r.ReasoningEffort,
		LatencySLAMs:    r.LatencySLAMs,
	}
	if r.Strategies != nil {
		u.Strategies = make([]domain.Strategy, len(r.Strategies))
		for i, s := range r.Strategies {
			u.Strategies[i] = domain.Strategy(s)
		}
	}
	if r.Algorithms != nil {
		u.Algorithms = make([]domain.Algorithm, len(r.Algorithms))
		for i, a := range r.Algorithms {
			u.Algorithms[i] = domain.Algorithm(a)
		}
	}
	return u
}

type TrainingConfigResponse struct {
	domain.TrainingConfig
	EffectiveModel string `json:"effective_model"`
	Method         string `json:"method"`
}

func ToTrainingConfigResponse(c *domain.TrainingConfig) TrainingConfigResponse {
	return TrainingConfigResponse{
		TrainingConfig: *c,
		EffectiveModel: c.EffectiveModel(),
		Method:         c.MethodDescription(),
	}
}

type TrainingRunResponse struct {
	Config    domain.TrainingConfig `json:"config"`
	Running   bool                  `json:"running"`
	Complete  bool                  `json:"complete"`
	Progress  float64               `json:"progress"`
	Logs      []string              `json:"logs"`
	ElapsedMs int64                 `json:"elapsed_ms"`
}

func ToTrainingRunResponse(v *services.TrainingRunView) TrainingRunResponse {
	logs := v.Logs
	if logs == nil {
		logs = []string{}
	}
	return TrainingRunResponse{
		Config:    v.Config,
		Running:   v.State.Running,
		Complete:  v.State.Complete,
		Progress:  v.State.Progress,
		Logs:      logs,
		ElapsedMs: v.Elapsed.Milliseconds(),
	}
}
