package stages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainingLogs(t *testing.T) {
	logs := TrainingLogs(TrainingParams{Model: "Qwen3-14B"})

	require.Len(t, logs, 55)
	assert.Equal(t, "Loading training data...", logs[0])
	assert.Equal(t, "Initializing model: Qwen3-14B", logs[1])
	assert.Equal(t, "Setting up GRPO optimizer", logs[2])
	assert.Equal(t, "Configuring reward model: Kimi K2 Thinking", logs[3])
	assert.Equal(t, "Warmup: training_step 1/100 - loss=3.42", logs[4])
	assert.Equal(t, "Training: training_step 1/2000 - loss=1.76, reward=0.12", logs[13])
	assert.Equal(t, "Training complete!", logs[54])
}

func TestTrainingLogs_Interpolation(t *testing.T) {
	logs := TrainingLogs(TrainingParams{
		Model:      "GLM-4.6",
		Judge:      "DeepSeek R1 0528",
		Algorithms: []string{"PPO", "DPO"},
	})
	assert.Equal(t, "Setting up PPO + DPO optimizer", logs[2])
	assert.Equal(t, "Configuring reward model: DeepSeek R1 0528", logs[3])
}

func TestTraining_Timeline(t *testing.T) {
	tl := Training(55)

	start := tl.At(0)
	assert.True(t, start.Running)
	assert.Equal(t, 0, start.VisibleLogs)

	assert.Equal(t, 0, tl.At(399*ms).VisibleLogs)
	assert.Equal(t, 1, tl.At(400*ms).VisibleLogs)
	assert.InDelta(t, 20.0, tl.At(4400*ms).Progress, 1e-9)

	final := tl.Final()
	assert.Equal(t, 22000*ms, tl.End())
	assert.True(t, final.Complete)
	assert.False(t, final.Running)
	assert.Equal(t, 55, final.VisibleLogs)
	assert.InDelta(t, 100.0, final.Progress, 1e-9)
}

func TestTraining_Empty(t *testing.T) {
	tl := Training(0)
	assert.True(t, tl.Final().Complete)
	assert.Equal(t, 1, tl.Len())
}
