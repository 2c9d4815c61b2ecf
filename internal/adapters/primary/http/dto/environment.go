package dto

import (
	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/core/services"
	"finetune-sim/internal/sim/stages"
)

type UpdateEnvironmentRequest struct {
	CloudProvider *string `json:"cloud_provider"`
	Region        *string `json:"region"`
	InstanceType  *string `json:"instance_type"`
	VPCOption     *string `json:"vpc_option"`
	ExistingVPCID *string `json:"existing_vpc_id"`
	StorageSize   *string `json:"storage_size"`
	Placement     *string `json:"placement"`
	Tenancy       *string `json:"tenancy"`
	EFA           *bool   `json:"efa"`
}

func (r UpdateEnvironmentRequest) ToUpdate() services.EnvironmentUpdate {
	return services.EnvironmentUpdate{
		CloudProvider: r.CloudProvider,
		Region:        r.Region,
		InstanceType:  r.InstanceType,
		VPCOption:     r.VPCOption,
		ExistingVPCID: r.ExistingVPCID,
		StorageSize:   r.StorageSize,
		Placement:     r.Placement,
		Tenancy:       r.Tenancy,
		EFA:           r.EFA,
	}
}

type EnvironmentResponse struct {
	Config         domain.EnvironmentConfig `json:"config"`
	Connecting     bool                     `json:"connecting"`
	Connected      bool                     `json:"connected"`
	Streaming      bool                     `json:"streaming"`
	Running        bool                     `json:"running"`
	Resources      *stages.Resources        `json:"resources,omitempty"`
	Console        []string                 `json:"console"`
	UptimeSeconds  int64                    `json:"uptime_seconds"`
	ElapsedMs      int64                    `json:"elapsed_ms"`
	Done           bool                     `json:"done"`
	InstanceStatus string                   `json:"instance_status"`
}

func ToEnvironmentResponse(v *services.EnvironmentView) EnvironmentResponse {
	status := "stopped"
	switch {
	case v.Running:
		status = "running"
	case v.State.Connecting || v.State.Connected:
		status = "pending"
	}
	console := v.Console
	if console == nil {
		console = []string{}
	}
	return EnvironmentResponse{
		Config:         v.Config,
		Connecting:     v.State.Connecting,
		Connected:      v.Config.Connected,
		Streaming:      v.State.Streaming,
		Running:        v.Running,
		Resources:      v.Resources,
		Console:        console,
		UptimeSeconds:  int64(v.Uptime.Seconds()),
		ElapsedMs:      v.Elapsed.Milliseconds(),
		Done:           v.Done,
		InstanceStatus: status,
	}
}
