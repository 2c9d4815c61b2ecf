package domain

import (
	"strconv"

	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/util/sets"
)

// ============================================================================
// Models
// ============================================================================

// Models lists every model selectable as a base or default model.
var Models = []string{
	"OpenAI gpt-oss-20b",
	"OpenAI gpt-oss-120b",
	"Qwen3-14B",
	"Qwen3 235B A22B Instruct",
	"Llama 3.1 8B Instruct",
	"DeepSeek R1 0528",
	"DeepSeek V3.1 Terminus",
	"Kimi K2 Thinking",
	"Kimi K2 Instruct 0905",
	"MiniMax M2",
	"GLM-4.6",
}

// Judges lists the models usable as AI judge.
var Judges = []string{
	"Qwen3 235B A22B Instruct",
	"DeepSeek R1 0528",
	"Kimi K2 Thinking",
}

var (
	modelSet = sets.New(Models...)
	judgeSet = sets.New(Judges...)
)

func IsKnownModel(name string) bool { return modelSet.Has(name) }

func IsKnownJudge(name string) bool { return judgeSet.Has(name) }

// ============================================================================
// Training methods
// ============================================================================

type Strategy string

const (
	StrategySFT Strategy = "SFT"
	StrategyRL  Strategy = "RL"
	StrategyOPD Strategy = "OPD"
)

type Algorithm string

const (
	AlgorithmPPO  Algorithm = "PPO"
	AlgorithmDPO  Algorithm = "DPO"
	AlgorithmGRPO Algorithm = "GRPO"
)

var (
	Strategies = sets.New(StrategySFT, StrategyRL, StrategyOPD)
	Algorithms = sets.New(AlgorithmPPO, AlgorithmDPO, AlgorithmGRPO)
)

// StrategyLabel is the method name shown on the dashboard.
func StrategyLabel(s Strategy) string {
	switch s {
	case StrategyRL:
		return "RLEF + RLAIF"
	case StrategyOPD:
		return "On-Policy Distillation"
	default:
		return string(s)
	}
}

// ============================================================================
// Infrastructure
// ============================================================================

type Region struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var Regions = []Region{
	{"us-west-2", "US West (Oregon)"},
	{"us-east-1", "US East (Virginia)"},
	{"eu-west-1", "EU West (Ireland)"},
	{"ap-northeast-1", "Asia Pacific (Tokyo)"},
	{"ap-southeast-1", "Asia Pacific (Singapore)"},
}

type InstanceType struct {
	Name        string `json:"name"`
	GPUCount    int    `json:"gpu_count"`
	GPU         string `json:"gpu"`
	GPUMemoryGB int    `json:"gpu_memory_gb"`
	VCPU        int    `json:"vcpu"`
	MemoryGB    int    `json:"memory_gb"`
	NetworkGbps int    `json:"network_gbps"`
}

var InstanceTypes = []InstanceType{
	{"p4d.24xlarge", 8, "A100", 320, 96, 1152, 400},
	{"p3.8xlarge", 4, "V100", 64, 32, 244, 10},
	{"g5.12xlarge", 4, "A10G", 96, 48, 192, 50},
	{"g5.48xlarge", 8, "A10G", 192, 192, 768, 100},
}

// StorageOption is an offered EBS volume size.
type StorageOption struct {
	Size           resource.Quantity `json:"size"`
	VolumeType     string            `json:"volume_type"`
	IOPS           int               `json:"iops"`
	ThroughputMBps int               `json:"throughput_mbps"`
}

// GB returns the size in decimal gigabytes.
func (o StorageOption) GB() int {
	return int(o.Size.ScaledValue(resource.Giga))
}

var StorageOptions = []StorageOption{
	{resource.MustParse("500G"), "gp3", 16000, 1000},
	{resource.MustParse("1T"), "gp3", 16000, 1000},
	{resource.MustParse("2T"), "io2", 32000, 4000},
	{resource.MustParse("5T"), "io2", 64000, 4000},
}

var (
	Placements = sets.New("cluster", "spread", "partition")
	Tenancies  = sets.New("default", "dedicated")
)

func FindRegion(code string) (Region, bool) {
	for _, r := range Regions {
		if r.Code == code {
			return r, true
		}
	}
	return Region{}, false
}

func FindInstanceType(name string) (InstanceType, bool) {
	for _, it := range InstanceTypes {
		if it.Name == name {
			return it, true
		}
	}
	return InstanceType{}, false
}

// FindStorageOption resolves a size such as "500", "500G" or "2T". A bare
// number is read as gigabytes.
func FindStorageOption(size string) (StorageOption, bool) {
	if gb, err := strconv.Atoi(size); err == nil {
		size = strconv.Itoa(gb) + "G"
	}
	q, err := resource.ParseQuantity(size)
	if err != nil {
		return StorageOption{}, false
	}
	for _, opt := range StorageOptions {
		if opt.Size.Cmp(q) == 0 {
			return opt, true
		}
	}
	return StorageOption{}, false
}

// ============================================================================
// Guidelines
// ============================================================================

type Guideline struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// TemplateGuidelines is the guideline set loaded by "load template".
var TemplateGuidelines = []Guideline{
	{
		ID:   "analysis_output",
		Text: "Always structure your response with <analysis> tags containing your reasoning process, followed by <intent> tags with the classified intent(s).",
	},
	{
		ID:   "intent_classification",
		Text: "Classify customer utterances into one of 356 predefined intent categories. Reference the comprehensive intent classification table and hierarchical structure (depth1~4) for accurate categorization.",
	},
	{
		ID:   "intent_vs_request",
		Text: "Distinguish between customer intent (root cause of inquiry) and request (desired action). Always prioritize identifying the underlying intent over the surface-level request.",
	},
	{
		ID:   "multi_intent_priority",
		Text: "When multiple intents are detected in a single utterance, apply priority hierarchy: P1 (primary intent) > P2 (secondary intent). Focus on the root cause over related topics.",
	},
	{
		ID:   "keyword_extraction",
		Text: "Detect and extract critical keywords including Intent_tags. Pay attention to domain-specific terminology: Coupang Eats, Coupang Play, WOW Membership, Rocket Mobile.",
	},
	{
		ID:   "filter_irrelevant",
		Text: "Filter out irrelevant utterances including simple acknowledgments (OK, thanks), feedback without actionable intent, and reactions. These should not be classified as having intent.",
	},
	{
		ID:   "accuracy_target",
		Text: "Maintain 95%+ accuracy for intent detection and 90%+ for request classification. Flag ambiguous cases and provide confidence scores when multiple intents are possible.",
	},
	{
		ID:   "context_awareness",
		Text: "Consider complete utterance context including temporal sequencing. For physical defects/damage, prioritize vendor-responsibility. Never rely solely on keyword matching without understanding full context.",
	},
}

// ============================================================================
// Evaluation traces
// ============================================================================

type Trace struct {
	ID       int    `json:"id"`
	Intent   string `json:"intent"`
	Input    string `json:"input"`
	Baseline string `json:"baseline"`
	Trained  string `json:"trained"`
	Result   string `json:"result"`
}

var EvalTraces = []Trace{
	{
		ID: 1, Intent: "track_order",
		Input:    "Where is my order?",
		Baseline: "Your order is on the way.",
		Trained:  "Thank you for reaching out. You can see your delivery date and detailed order whereabouts in your personal area. May I have your order ID?",
		Result:   "improved",
	},
	{
		ID: 2, Intent: "track_refund",
		Input:    "I want to check my refund.",
		Baseline: "Your refund is being processed.",
		Trained:  "Thank you for contacting us. To check your refund status, could you please provide your refund case ID? You should have received it via email.",
		Result:   "improved",
	},
	{
		ID: 3, Intent: "cancel_order",
		Input:    "Cancel my order please",
		Baseline: "Your order has been cancelled.",
		Trained:  "Thank you for reaching out. I can help you cancel your order. May I ask the reason for cancellation? Please note there is a $4.99 fee if delivery is less than 2 days away.",
		Result:   "improved",
	},
	{
		ID: 4, Intent: "change_order",
		Input:    "I want to change my order",
		Baseline: "What would you like to change?",
		Trained:  "Thank you for contacting us. I can help you change your order to the same brand only. Please note that changes cannot be made if delivery is less than 2 days away. What would you like to change?",
		Result:   "improved",
	},
}

// Artifacts lists the downloadable run outputs.
var Artifacts = []string{
	"summary.pdf",
	"metrics.csv",
	"evals.json",
	"config.yaml",
	"adapter.safetensors",
	"synthetic_sample.csv",
}
