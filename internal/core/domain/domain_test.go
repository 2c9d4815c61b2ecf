package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject_Defaults(t *testing.T) {
	p, err := NewProject("  ", 1337)
	require.NoError(t, err)

	assert.Equal(t, DefaultProjectName, p.Name)
	assert.Equal(t, PageEnvironment, p.CurrentPage)
	assert.Equal(t, uint32(1337), p.Seed)
	assert.Equal(t, "us-west-2", p.Environment.Region)
	assert.Equal(t, "p4d.24xlarge", p.Environment.InstanceType)
	assert.Equal(t, 500, p.Environment.StorageGB())
	assert.Equal(t, DefaultJudge, p.Training.AIJudge)
	assert.Equal(t, []Algorithm{AlgorithmGRPO}, p.Training.Algorithms)
	assert.NoError(t, p.Environment.Validate())
	assert.NoError(t, p.Training.Validate())
}

func TestProject_RenameAndNavigate(t *testing.T) {
	p, _ := NewProject("demo", 1)

	assert.ErrorIs(t, p.Rename(" "), ErrInvalidProjectName)
	require.NoError(t, p.Rename("Intent Classification Model"))
	assert.Equal(t, "Intent Classification Model", p.Name)

	assert.ErrorIs(t, p.Navigate("billing"), ErrInvalidPage)
	require.NoError(t, p.Navigate(PageDashboard))
	assert.Equal(t, PageDashboard, p.CurrentPage)
}

func TestProject_Guidelines(t *testing.T) {
	p, _ := NewProject("demo", 1)

	_, err := p.AddGuideline("", "   ")
	assert.ErrorIs(t, err, ErrInvalidGuideline)

	g, err := p.AddGuideline("", "Be concise")
	require.NoError(t, err)
	assert.Contains(t, g.ID, "guideline_")

	p.LoadTemplateGuidelines()
	require.Len(t, p.Guidelines, 8)
	assert.Equal(t, "analysis_output", p.Guidelines[0].ID)

	require.NoError(t, p.RemoveGuideline("keyword_extraction"))
	assert.Len(t, p.Guidelines, 7)
	assert.ErrorIs(t, p.RemoveGuideline("keyword_extraction"), ErrGuidelineNotFound)
	assert.Len(t, TemplateGuidelines, 8, "template must not be mutated")
}

func TestEnvironmentConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*EnvironmentConfig)
		want   error
	}{
		{"unknown region", func(c *EnvironmentConfig) { c.Region = "mars-1" }, ErrUnknownRegion},
		{"unknown instance", func(c *EnvironmentConfig) { c.InstanceType = "t2.micro" }, ErrUnknownInstanceType},
		{"odd storage", func(c *EnvironmentConfig) { c.StorageSize = "750" }, ErrInvalidStorageSize},
		{"existing vpc without id", func(c *EnvironmentConfig) { c.VPCOption = VPCExisting }, ErrMissingVPCID},
		{"bad vpc option", func(c *EnvironmentConfig) { c.VPCOption = "shared" }, ErrInvalidVPCOption},
		{"bad provider", func(c *EnvironmentConfig) { c.CloudProvider = "gcp" }, ErrInvalidProvider},
		{"bad placement", func(c *EnvironmentConfig) { c.Placement = "random" }, ErrInvalidPlacement},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultEnvironmentConfig()
			tc.mutate(&c)
			assert.ErrorIs(t, c.Validate(), tc.want)
		})
	}
}

func TestFindStorageOption(t *testing.T) {
	for _, size := range []string{"500", "500G", "1000", "1T", "2000", "5T"} {
		_, ok := FindStorageOption(size)
		assert.True(t, ok, size)
	}
	opt, ok := FindStorageOption("2000")
	require.True(t, ok)
	assert.Equal(t, "io2", opt.VolumeType)
	assert.Equal(t, 2000, opt.GB())

	_, ok = FindStorageOption("banana")
	assert.False(t, ok)
}

func TestTrainingConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*TrainingConfig)
		want   error
	}{
		{"unknown model", func(c *TrainingConfig) { c.Model = "gpt-5" }, ErrUnknownModel},
		{"unknown judge", func(c *TrainingConfig) { c.AIJudge = "GLM-4.6" }, ErrUnknownJudge},
		{"no strategies", func(c *TrainingConfig) { c.Strategies = nil }, ErrInvalidStrategy},
		{"bad strategy", func(c *TrainingConfig) { c.Strategies = []Strategy{"FT"} }, ErrInvalidStrategy},
		{"bad algorithm", func(c *TrainingConfig) { c.Algorithms = []Algorithm{"A2C"} }, ErrInvalidAlgorithm},
		{"rl without algorithm", func(c *TrainingConfig) { c.Algorithms = nil }, ErrInvalidAlgorithm},
		{"bad regex", func(c *TrainingConfig) { c.RewardRegex = "<intent>(.*?" }, ErrInvalidRegex},
		{"bad dataset name", func(c *TrainingConfig) { c.Dataset = "Customer_Support" }, ErrInvalidDatasetName},
		{"bad output", func(c *TrainingConfig) { c.OutputFormat = "xml" }, ErrInvalidOutput},
		{"bad effort", func(c *TrainingConfig) { c.ReasoningEffort = "max" }, ErrInvalidEffort},
		{"bad sla", func(c *TrainingConfig) { c.LatencySLAMs = 0 }, ErrInvalidLatencySLA},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultTrainingConfig()
			tc.mutate(&c)
			assert.ErrorIs(t, c.Validate(), tc.want)
		})
	}

	sft := DefaultTrainingConfig()
	sft.Strategies = []Strategy{StrategySFT}
	sft.Algorithms = nil
	sft.Dataset = "synthetic-customer-support"
	assert.NoError(t, sft.Validate())
}

func TestTrainingConfig_MethodDescription(t *testing.T) {
	c := DefaultTrainingConfig()
	c.Strategies = []Strategy{StrategySFT, StrategyRL, StrategyOPD}
	assert.Equal(t, "SFT + RLEF + RLAIF + On-Policy Distillation", c.MethodDescription())
}

func TestTrainingConfig_EffectiveModel(t *testing.T) {
	c := DefaultTrainingConfig()
	assert.Equal(t, DefaultModel, c.EffectiveModel())
	c.Model = "GLM-4.6"
	assert.Equal(t, "GLM-4.6", c.EffectiveModel())
}

func TestGenerationConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultGenerationConfig().Validate())

	c := DefaultGenerationConfig()
	c.Samples = 1234
	assert.ErrorIs(t, c.Validate(), ErrInvalidSampleTarget)

	c = DefaultGenerationConfig()
	c.Diversity = "extreme"
	assert.ErrorIs(t, c.Validate(), ErrInvalidDiversity)

	c = DefaultGenerationConfig()
	c.Quality = 0.5
	assert.ErrorIs(t, c.Validate(), ErrInvalidQuality)
}

func TestGenerationRecord_SyntheticDataset(t *testing.T) {
	r := GenerationRecord{Config: GenerationConfig{Samples: 5000}}
	d := r.SyntheticDataset()
	assert.Equal(t, Dataset{Name: "synthetic-customer-support", Rows: 5000, Cols: 5, Type: DatasetSynthetic}, d)
}

func TestMetrics_P95(t *testing.T) {
	m := DefaultMetrics()
	assert.Equal(t, "525", m.Baseline.P95Ms().String())
	assert.Equal(t, "270", m.Trained.P95Ms().String())
}
