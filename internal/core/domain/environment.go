package domain

import (
	"time"

	"finetune-sim/internal/sim/stages"
)

const (
	ProviderAWS = "aws"

	VPCNew      = "new"
	VPCExisting = "existing"
)

// EnvironmentConfig is the training infrastructure selection.
type EnvironmentConfig struct {
	CloudProvider string `json:"cloud_provider"`
	Region        string `json:"region"`
	InstanceType  string `json:"instance_type"`
	VPCOption     string `json:"vpc_option"`
	ExistingVPCID string `json:"existing_vpc_id"`
	StorageSize   string `json:"storage_size"`
	Placement     string `json:"placement"`
	Tenancy       string `json:"tenancy"`
	EFA           bool   `json:"efa"`
	Connected     bool   `json:"connected"`
}

func DefaultEnvironmentConfig() EnvironmentConfig {
	return EnvironmentConfig{
		CloudProvider: ProviderAWS,
		Region:        "us-west-2",
		InstanceType:  "p4d.24xlarge",
		VPCOption:     VPCNew,
		StorageSize:   "500",
		Placement:     "cluster",
		Tenancy:       "default",
		EFA:           true,
	}
}

// Validate checks every selection against the catalog
func (c EnvironmentConfig) Validate() error {
	if c.CloudProvider != ProviderAWS {
		return ErrInvalidProvider
	}
	if _, ok := FindRegion(c.Region); !ok {
		return ErrUnknownRegion
	}
	if _, ok := FindInstanceType(c.InstanceType); !ok {
		return ErrUnknownInstanceType
	}
	if _, ok := FindStorageOption(c.StorageSize); !ok {
		return ErrInvalidStorageSize
	}
	switch c.VPCOption {
	case VPCNew:
	case VPCExisting:
		if c.ExistingVPCID == "" {
			return ErrMissingVPCID
		}
	default:
		return ErrInvalidVPCOption
	}
	if !Placements.Has(c.Placement) {
		return ErrInvalidPlacement
	}
	if !Tenancies.Has(c.Tenancy) {
		return ErrInvalidTenancy
	}
	return nil
}

// StorageGB is the selected volume size in gigabytes, 0 if invalid.
func (c EnvironmentConfig) StorageGB() int {
	opt, ok := FindStorageOption(c.StorageSize)
	if !ok {
		return 0
	}
	return opt.GB()
}

// ProvisioningParams converts the config into simulation input.
func (c EnvironmentConfig) ProvisioningParams() stages.ProvisioningParams {
	return stages.ProvisioningParams{
		Region:        c.Region,
		InstanceType:  c.InstanceType,
		VPCOption:     c.VPCOption,
		ExistingVPCID: c.ExistingVPCID,
		StorageGB:     c.StorageGB(),
	}
}

// ProvisioningRecord is a started environment connection.
type ProvisioningRecord struct {
	StartedAt time.Time         `json:"started_at"`
	Config    EnvironmentConfig `json:"config"`
	Resources stages.Resources  `json:"resources"`
}
