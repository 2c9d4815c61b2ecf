package stages

import (
	"fmt"
	"strings"
	"time"

	"finetune-sim/internal/sim/timeline"
)

// TrainingLogInterval separates consecutive training log lines.
const TrainingLogInterval = 400 * time.Millisecond

// TrainingParams parameterizes the scripted training log.
type TrainingParams struct {
	Model      string
	Judge      string
	Algorithms []string
}

// TrainingState is a training run's progress at one instant.
type TrainingState struct {
	Running     bool    `json:"running"`
	Complete    bool    `json:"complete"`
	Progress    float64 `json:"progress"`
	VisibleLogs int     `json:"visible_logs"`
}

var trainingSteps = []string{
	"Training: training_step 1/2000 - loss=1.76, reward=0.12",
	"Training: training_step 50/2000 - loss=1.89, reward=0.18 - intent_acc=74%",
	"Training: training_step 100/2000 - loss=1.52, reward=0.31 - intent_acc=85%",
	"Training: training_step 150/2000 - loss=1.71, reward=0.25 - intent_acc=82%",
	"Training: training_step 200/2000 - loss=1.38, reward=0.42 - intent_acc=92%",
	"Eval checkpoint: intent=95%",
	"Training: training_step 250/2000 - loss=1.45, reward=0.38 - intent_acc=90%",
	"Training: training_step 300/2000 - loss=1.21, reward=0.51 - intent_acc=96%",
	"Training: training_step 350/2000 - loss=1.34, reward=0.47 - intent_acc=94%",
	"Training: training_step 400/2000 - loss=1.08, reward=0.59 - intent_acc=97%",
	"Eval checkpoint: intent=98%",
	"Training: training_step 450/2000 - loss=1.15, reward=0.55 - intent_acc=96%",
	"Training: training_step 500/2000 - loss=0.95, reward=0.68 - intent_acc=98%",
	"Training: training_step 550/2000 - loss=1.03, reward=0.62 - intent_acc=97%",
	"Training: training_step 600/2000 - loss=0.87, reward=0.74 - intent_acc=99%",
	"Eval checkpoint: intent=99%",
	"Training: training_step 650/2000 - loss=0.92, reward=0.71 - intent_acc=98%",
	"Training: training_step 700/2000 - loss=0.79, reward=0.81 - intent_acc=99%",
	"Training: training_step 750/2000 - loss=0.84, reward=0.77 - intent_acc=99%",
	"Training: training_step 800/2000 - loss=0.73, reward=0.86 - intent_acc=100%",
	"Eval checkpoint: intent=100%",
	"Training: training_step 850/2000 - loss=0.76, reward=0.84 - intent_acc=99%",
	"Training: training_step 900/2000 - loss=0.69, reward=0.89 - intent_acc=100%",
	"Training: training_step 950/2000 - loss=0.71, reward=0.87 - intent_acc=100%",
	"Training: training_step 1000/2000 - loss=0.67, reward=0.91 - intent_acc=100%",
	"Eval checkpoint: intent=100%",
	"Training: training_step 1100/2000 - loss=0.64, reward=0.93 - intent_acc=100%",
	"Training: training_step 1200/2000 - loss=0.61, reward=0.95 - intent_acc=100%",
	"Training: training_step 1300/2000 - loss=0.59, reward=0.96 - intent_acc=100%",
	"Training: training_step 1400/2000 - loss=0.57, reward=0.97 - intent_acc=100%",
	"Eval checkpoint: intent=100%",
	"Training: training_step 1500/2000 - loss=0.55, reward=0.98 - intent_acc=100%",
	"Training: training_step 1600/2000 - loss=0.53, reward=0.98 - intent_acc=100%",
	"Training: training_step 1700/2000 - loss=0.52, reward=0.99 - intent_acc=100%",
	"Training: training_step 1800/2000 - loss=0.51, reward=0.99 - intent_acc=100%",
	"Training: training_step 1900/2000 - loss=0.50, reward=0.99 - intent_acc=100%",
	"Training: training_step 2000/2000 - loss=0.49, reward=1.00 - intent_acc=100%",
	"Final eval: intent=100%",
	"Saving checkpoint: model_final.safetensors",
	"Saving adapter: adapter.safetensors",
	"Saving config: config.yaml",
	"Training complete!",
}

var warmupLosses = []struct {
	step int
	loss string
}{
	{1, "3.42"}, {10, "3.15"}, {25, "2.87"}, {40, "2.52"}, {50, "2.31"},
	{65, "2.11"}, {75, "1.98"}, {90, "1.85"}, {100, "1.76"},
}

// TrainingLogs returns the scripted run log for p.
func TrainingLogs(p TrainingParams) []string {
	algos := "GRPO"
	if len(p.Algorithms) > 0 {
		algos = strings.Join(p.Algorithms, " + ")
	}
	judge := p.Judge
	if judge == "" {
		judge = "Kimi K2 Thinking"
	}

	logs := make([]string, 0, 4+len(warmupLosses)+len(trainingSteps))
	logs = append(logs,
		"Loading training data...",
		"Initializing model: "+p.Model,
		fmt.Sprintf("Setting up %s optimizer", algos),
		"Configuring reward model: "+judge,
	)
	for _, w := range warmupLosses {
		logs = append(logs, fmt.Sprintf("Warmup: training_step %d/100 - loss=%s", w.step, w.loss))
	}
	return append(logs, trainingSteps...)
}

// Training records a run that reveals one log line every TrainingLogInterval
// and completes with the last line.
func Training(total int) *timeline.Timeline[TrainingState] {
	initial := TrainingState{Running: total > 0, Complete: total == 0}
	return timeline.Record(initial, 0, func(l *timeline.Loop, emit func(TrainingState)) {
		for i := 0; i < total; i++ {
			shown := i + 1
			l.SetTimeout(time.Duration(shown)*TrainingLogInterval, func() {
				st := TrainingState{
					Running:     true,
					Progress:    float64(shown) / float64(total) * 100,
					VisibleLogs: shown,
				}
				if shown == total {
					st.Running = false
					st.Complete = true
				}
				emit(st)
			})
		}
	})
}
