package cdc

import (
	"sync"

	"github.com/endorses/cdcat/internal/pkg/constants"
	"github.com/spf13/viper"
)

var configOnce sync.Once

// Config holds the configurable engine parameters.
type Config struct {
	// FallbackBucket is the correlation key for records without a call id.
	FallbackBucket string `mapstructure:"fallback_bucket"`

	// TowerTable is the path of a tower lookup table to load, CSV or XLSX.
	// Empty disables tower resolution.
	TowerTable string `mapstructure:"tower_table"`

	// LogFile routes engine logs to a rotating file when set.
	LogFile string `mapstructure:"log_file"`
}

func initConfigDefaults() {
	viper.SetDefault("cdc.fallback_bucket", constants.FallbackBucket)
	viper.SetDefault("cdc.tower_table", "")
	viper.SetDefault("cdc.log_file", "")
}

// GetConfig returns the current engine configuration with defaults applied.
func GetConfig() *Config {
	configOnce.Do(initConfigDefaults)
	return &Config{
		FallbackBucket: viper.GetString("cdc.fallback_bucket"),
		TowerTable:     viper.GetString("cdc.tower_table"),
		LogFile:        viper.GetString("cdc.log_file"),
	}
}
