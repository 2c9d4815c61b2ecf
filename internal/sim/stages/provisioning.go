// Package stages holds the scripted simulations: environment provisioning,
// seed upload, synthetic data generation, training runs and the setup chat.
// Each script is recorded into a timeline.Timeline so state at any elapsed
// time is a lookup.
package stages

import (
	"fmt"
	"time"

	"finetune-sim/internal/sim/seedrand"
	"finetune-sim/internal/sim/timeline"
)

const (
	ConnectDelay     = 4000 * time.Millisecond
	StreamEnd        = 26100 * time.Millisecond
	LargeVolumeGB    = 2000
	largeVolumeType  = "io2"
	largeVolumeIOPS  = 32000
	smallVolumeType  = "gp3"
	smallVolumeIOPS  = 16000
	vpcOptionNew     = "new"
	consoleTimestamp = "2006-01-02 15:04:05"
)

// ConsoleOffsets are the delays, after the connection completes, at which
// each provisioning console line appears.
var ConsoleOffsets = []time.Duration{
	0, 800 * time.Millisecond, 1400 * time.Millisecond, 2200 * time.Millisecond,
	3800 * time.Millisecond, 4500 * time.Millisecond, 5200 * time.Millisecond,
	6800 * time.Millisecond, 8200 * time.Millisecond, 9500 * time.Millisecond,
	11000 * time.Millisecond, 12800 * time.Millisecond, 14500 * time.Millisecond,
	16200 * time.Millisecond, 18000 * time.Millisecond, 19500 * time.Millisecond,
	21000 * time.Millisecond, 22800 * time.Millisecond, 24500 * time.Millisecond,
	26000 * time.Millisecond,
}

// consoleSeconds is the whole-second stamp printed on each console line,
// relative to the first line.
var consoleSeconds = []int{0, 1, 1, 4, 8, 9, 9, 14, 18, 21, 25, 28, 32, 36, 40, 43, 47, 52, 54, 56}

// ProvisioningParams is the environment configuration being provisioned.
type ProvisioningParams struct {
	Region        string
	InstanceType  string
	VPCOption     string
	ExistingVPCID string
	StorageGB     int
}

// Resources are the fabricated cloud identifiers of one environment.
type Resources struct {
	InstanceID string `json:"instance_id"`
	VPCID      string `json:"vpc_id"`
	VolumeID   string `json:"volume_id"`
	PublicIP   string `json:"public_ip"`
	VolumeType string `json:"volume_type"`
	IOPS       int    `json:"iops"`
}

// VolumeSpec returns the EBS volume type and IOPS for a storage size.
func VolumeSpec(storageGB int) (string, int) {
	if storageGB >= LargeVolumeGB {
		return largeVolumeType, largeVolumeIOPS
	}
	return smallVolumeType, smallVolumeIOPS
}

// NewResources draws identifiers in a fixed order: instance, public IP
// octets, VPC, volume.
func NewResources(rng *seedrand.Generator, p ProvisioningParams) Resources {
	r := Resources{}
	r.InstanceID = "i-" + rng.Base36(9)
	r.PublicIP = fmt.Sprintf("54.%d.%d.%d", rng.Intn(255), rng.Intn(255), rng.Intn(255))
	r.VPCID = "vpc-" + rng.Base36(7)
	r.VolumeID = "vol-" + rng.Base36(8)
	if p.VPCOption != "" && p.VPCOption != vpcOptionNew {
		r.VPCID = p.ExistingVPCID
	}
	r.VolumeType, r.IOPS = VolumeSpec(p.StorageGB)
	return r
}

// ConsoleLine is one provisioning console entry.
type ConsoleLine struct {
	Second  int
	Source  string
	Message string
}

// Format renders the line with a timestamp relative to base.
func (c ConsoleLine) Format(base time.Time) string {
	at := base.Add(time.Duration(c.Second) * time.Second)
	return fmt.Sprintf("%s [%s] %s", at.Format(consoleTimestamp), c.Source, c.Message)
}

// ConsoleLines builds the 20 provisioning console lines.
func ConsoleLines(p ProvisioningParams, r Resources) []ConsoleLine {
	const cli, prov = "workato-cli", "aws-provisioner"

	vpcStep := "Creating VPC (10.0.0.0/16) with 3 subnets across availability zones"
	vpcDone := fmt.Sprintf("✓ VPC created: %s (10.0.0.0/16)", r.VPCID)
	if p.VPCOption != "" && p.VPCOption != vpcOptionNew {
		vpcStep = "Using existing VPC " + p.ExistingVPCID
		vpcDone = fmt.Sprintf("✓ VPC attached: %s", p.ExistingVPCID)
	}

	msgs := []struct{ src, msg string }{
		{cli, "Starting environment provisioning..."},
		{cli, "Authenticating with AWS..."},
		{cli, "✓ Authenticated as arn:aws:iam::428571693842:role/WorkatoMLTrainingRole"},
		{prov, "Validating resource quotas and availability..."},
		{prov, "✓ Quota check passed for " + p.InstanceType},
		{prov, fmt.Sprintf("Requesting EC2 instance %s in %s", p.InstanceType, p.Region)},
		{prov, vpcStep},
		{prov, vpcDone},
		{prov, fmt.Sprintf("Creating subnets: %[1]sa (10.0.1.0/24), %[1]sb (10.0.2.0/24), %[1]sc (10.0.3.0/24)", p.Region)},
		{prov, "Configuring internet gateway and route tables..."},
		{prov, "Creating security group: workato-ml-training-sg"},
		{prov, "Allowing inbound: SSH (22), HTTPS (443), Jupyter (8888)"},
		{prov, fmt.Sprintf("Provisioning EBS volume: %dGB %s @ %d IOPS", p.StorageGB, r.VolumeType, r.IOPS)},
		{prov, "✓ Volume created: " + r.VolumeID},
		{prov, "Launching EC2 instance..."},
		{prov, fmt.Sprintf("✓ Instance %s in pending state", r.InstanceID)},
		{prov, "Waiting for instance to reach running state..."},
		{prov, "✓ Instance running. Public IP: " + r.PublicIP},
		{prov, "Running bootstrap script (CUDA, PyTorch, dependencies)..."},
		{cli, "✓ Environment provisioned successfully. Ready for training."},
	}

	lines := make([]ConsoleLine, len(msgs))
	for i, m := range msgs {
		lines[i] = ConsoleLine{Second: consoleSeconds[i], Source: m.src, Message: m.msg}
	}
	return lines
}

// ProvisioningState is the environment connection state at one instant.
type ProvisioningState struct {
	Connecting  bool `json:"connecting"`
	Connected   bool `json:"connected"`
	Streaming   bool `json:"streaming"`
	VisibleLogs int  `json:"visible_logs"`
}

// Running reports whether every console line is visible.
func (s ProvisioningState) Running() bool {
	return s.VisibleLogs >= len(ConsoleOffsets)
}

// RunningAt is the elapsed time at which the instance reaches running state.
func RunningAt() time.Duration {
	return ConnectDelay + ConsoleOffsets[len(ConsoleOffsets)-1]
}

// Uptime is the whole-second uptime counter at elapsed, zero before running.
func Uptime(elapsed time.Duration) time.Duration {
	since := elapsed - RunningAt()
	if since < 0 {
		return 0
	}
	return since.Truncate(time.Second)
}

// Provisioning records the connect sequence: the connection completes after
// ConnectDelay, then console lines stream at ConsoleOffsets.
func Provisioning() *timeline.Timeline[ProvisioningState] {
	initial := ProvisioningState{Connecting: true, Streaming: true}
	return timeline.Record(initial, 0, func(l *timeline.Loop, emit func(ProvisioningState)) {
		state := initial
		l.SetTimeout(ConnectDelay, func() {
			state.Connecting = false
			state.Connected = true
			emit(state)

			for i, off := range ConsoleOffsets {
				visible := i + 1
				l.SetTimeout(off, func() {
					state.VisibleLogs = visible
					emit(state)
				})
			}
			l.SetTimeout(StreamEnd, func() {
				state.Streaming = false
				emit(state)
			})
		})
	})
}
