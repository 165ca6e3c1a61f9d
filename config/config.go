package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/adsmood/ctv-vast-engine/errortypes"
)

// Configuration holds the full server configuration.
type Configuration struct {
	// ExternalURL is the public origin this server is reachable at. It is
	// the default base for assembled tracking URLs.
	ExternalURL string `mapstructure:"external_url"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	AdminPort   int    `mapstructure:"admin_port"`
	EnableGzip  bool   `mapstructure:"enable_gzip"`

	Tracking  Tracking  `mapstructure:"tracking"`
	Creatives Creatives `mapstructure:"creatives"`
	Platforms Platforms `mapstructure:"platforms"`
	Vast      Vast      `mapstructure:"vast"`
	Metrics   Metrics   `mapstructure:"metrics"`
	CORS      CORS      `mapstructure:"cors"`
}

type Tracking struct {
	// Origin overrides ExternalURL as the base of tracking endpoint URLs.
	Origin string `mapstructure:"origin"`
}

type Creatives struct {
	// Directory holds one {creative_id}.json descriptor per creative.
	Directory string `mapstructure:"directory"`
}

type Platforms struct {
	// SpecDirectory optionally overlays the built-in platform capability
	// table with one {platform_id}.yaml file per platform.
	SpecDirectory string `mapstructure:"spec_directory"`
}

type Vast struct {
	// ValidateOnExport runs the validator on every built document and logs
	// violations before serving. Failures are reported, never auto-corrected.
	ValidateOnExport bool `mapstructure:"validate_on_export"`
}

type Metrics struct {
	Prometheus PrometheusMetrics `mapstructure:"prometheus"`
}

type PrometheusMetrics struct {
	Port      int    `mapstructure:"port"`
	Namespace string `mapstructure:"namespace"`
	Subsystem string `mapstructure:"subsystem"`
}

type CORS struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TrackingOrigin returns the base origin for assembled tracking URLs.
func (cfg *Configuration) TrackingOrigin() string {
	if cfg.Tracking.Origin != "" {
		return cfg.Tracking.Origin
	}
	return cfg.ExternalURL
}

func (cfg *Configuration) validate() error {
	var errs []error
	if cfg.Port <= 0 {
		errs = append(errs, fmt.Errorf("port must be positive, got %d", cfg.Port))
	}
	if cfg.AdminPort <= 0 {
		errs = append(errs, fmt.Errorf("admin_port must be positive, got %d", cfg.AdminPort))
	}
	if cfg.TrackingOrigin() == "" {
		errs = append(errs, fmt.Errorf("external_url or tracking.origin must be set"))
	}
	if cfg.Creatives.Directory == "" {
		errs = append(errs, fmt.Errorf("creatives.directory must be set"))
	}

	if len(errs) == 0 {
		return nil
	}
	return errortypes.NewAggregateErrors("validation errors are listed", errs)
}

// New uses viper to get our server configurations.
func New(v *viper.Viper) (*Configuration, error) {
	var c Configuration
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("viper failed to unmarshal app config: %v", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// SetupViper registers defaults and environment bindings. Environment
// variables use the CTV prefix with dots replaced by double underscores, e.g.
// CTV_METRICS__PROMETHEUS__PORT.
func SetupViper(v *viper.Viper, filename string) {
	if filename != "" {
		v.SetConfigName(filename)
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/config")
	}

	v.SetDefault("external_url", "http://localhost:8000")
	v.SetDefault("host", "")
	v.SetDefault("port", 8000)
	v.SetDefault("admin_port", 6060)
	v.SetDefault("enable_gzip", false)
	v.SetDefault("tracking.origin", "")
	v.SetDefault("creatives.directory", "./creatives")
	v.SetDefault("platforms.spec_directory", "")
	v.SetDefault("vast.validate_on_export", false)
	v.SetDefault("metrics.prometheus.port", 0)
	v.SetDefault("metrics.prometheus.namespace", "adsmood")
	v.SetDefault("metrics.prometheus.subsystem", "vast")
	v.SetDefault("cors.enabled", true)
	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetEnvPrefix("CTV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()
	v.ReadInConfig()
}
