package stages

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"finetune-sim/internal/sim/seedrand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ms = time.Millisecond

func defaultProvisioning() ProvisioningParams {
	return ProvisioningParams{Region: "us-west-2", InstanceType: "p4d.24xlarge", VPCOption: "new", StorageGB: 500}
}

func TestProvisioning_Phases(t *testing.T) {
	tl := Provisioning()

	start := tl.At(0)
	assert.True(t, start.Connecting)
	assert.False(t, start.Connected)
	assert.Equal(t, 0, start.VisibleLogs)

	assert.True(t, tl.At(3999*ms).Connecting)

	connected := tl.At(4000 * ms)
	assert.False(t, connected.Connecting)
	assert.True(t, connected.Connected)
	assert.Equal(t, 1, connected.VisibleLogs)

	assert.Equal(t, 2, tl.At(4800*ms).VisibleLogs)
	assert.Equal(t, 19, tl.At(29999*ms).VisibleLogs)

	running := tl.At(30000 * ms)
	assert.True(t, running.Running())
	assert.True(t, running.Streaming)

	assert.False(t, tl.At(30100*ms).Streaming)
	assert.Equal(t, 30100*ms, tl.End())
}

func TestUptime(t *testing.T) {
	assert.Equal(t, 30*time.Second, RunningAt())
	assert.Equal(t, time.Duration(0), Uptime(10*time.Second))
	assert.Equal(t, 2*time.Second, Uptime(RunningAt()+2500*ms))
}

func TestVolumeSpec(t *testing.T) {
	typ, iops := VolumeSpec(500)
	assert.Equal(t, "gp3", typ)
	assert.Equal(t, 16000, iops)

	typ, iops = VolumeSpec(2000)
	assert.Equal(t, "io2", typ)
	assert.Equal(t, 32000, iops)
}

func TestNewResources_Format(t *testing.T) {
	r := NewResources(seedrand.Default(), defaultProvisioning())

	assert.Regexp(t, regexp.MustCompile(`^i-[0-9a-z]{9}$`), r.InstanceID)
	assert.Regexp(t, regexp.MustCompile(`^vpc-[0-9a-z]{7}$`), r.VPCID)
	assert.Regexp(t, regexp.MustCompile(`^vol-[0-9a-z]{8}$`), r.VolumeID)

	octets := strings.Split(r.PublicIP, ".")
	require.Len(t, octets, 4)
	assert.Equal(t, "54", octets[0])
	for _, o := range octets[1:] {
		n, err := strconv.Atoi(o)
		require.NoError(t, err)
		assert.Less(t, n, 255)
	}
}

func TestNewResources_Deterministic(t *testing.T) {
	a := NewResources(seedrand.New(77), defaultProvisioning())
	b := NewResources(seedrand.New(77), defaultProvisioning())
	assert.Equal(t, a, b)

	rng := seedrand.New(77)
	NewResources(rng, defaultProvisioning())
	assert.Equal(t, int64(6), rng.Calls())
}

func TestNewResources_ExistingVPC(t *testing.T) {
	p := defaultProvisioning()
	p.VPCOption = "existing"
	p.ExistingVPCID = "vpc-0abc123"
	r := NewResources(seedrand.New(1), p)
	assert.Equal(t, "vpc-0abc123", r.VPCID)
}

func TestConsoleLines(t *testing.T) {
	p := defaultProvisioning()
	p.Region = "eu-west-1"
	p.StorageGB = 5000
	r := NewResources(seedrand.New(3), p)
	lines := ConsoleLines(p, r)

	require.Len(t, lines, len(ConsoleOffsets))
	assert.Contains(t, lines[8].Message, "eu-west-1a (10.0.1.0/24)")
	assert.Equal(t, "Provisioning EBS volume: 5000GB io2 @ 32000 IOPS", lines[12].Message)
	assert.Equal(t, "✓ Instance running. Public IP: "+r.PublicIP, lines[17].Message)

	base := time.Date(2025, 1, 14, 12, 34, 18, 0, time.UTC)
	assert.Equal(t, "2025-01-14 12:34:18 [workato-cli] Starting environment provisioning...", lines[0].Format(base))
	assert.Equal(t,
		"2025-01-14 12:35:14 [workato-cli] ✓ Environment provisioned successfully. Ready for training.",
		lines[19].Format(base))
}

func TestConsoleLines_ExistingVPC(t *testing.T) {
	p := defaultProvisioning()
	p.VPCOption = "existing"
	p.ExistingVPCID = "vpc-42"
	lines := ConsoleLines(p, NewResources(seedrand.New(3), p))
	assert.Equal(t, "Using existing VPC vpc-42", lines[6].Message)
	assert.Equal(t, "✓ VPC attached: vpc-42", lines[7].Message)
}
