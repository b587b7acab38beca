package config

import "github.com/spf13/viper"

// Threshold defaults. They go through viper so an explicit 0 in the
// config file or environment survives FillDefaults.
const (
	DefaultAdjacentThreshold = 0.15
	DefaultOriginThreshold   = 0.3
	DefaultNewsThreshold     = 0.2
)

// SetDefaults registers defaults for keys whose zero value is valid.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("relevance.adjacent_threshold", DefaultAdjacentThreshold)
	v.SetDefault("relevance.default_threshold", DefaultOriginThreshold)
	v.SetDefault("pipeline.news_threshold", DefaultNewsThreshold)
}
