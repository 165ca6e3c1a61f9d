// Package platforms holds the capability registry for the CTV platforms the
// ad engine can target. Every platform named by a creative's video variants
// must have an entry here; a missing entry is a fatal lookup error, never a
// silent default.
package platforms

// VideoFormat is one codec/resolution/fps/bitrate tuple a platform accepts.
type VideoFormat struct {
	Codec          string  `yaml:"codec" json:"codec"`
	Width          int     `yaml:"width" json:"width"`
	Height         int     `yaml:"height" json:"height"`
	FPS            int     `yaml:"fps" json:"fps"`
	MaxBitrateMbps float64 `yaml:"max_bitrate_mbps" json:"maxBitrateMbps"`
}

// Spec is the capability profile of one CTV platform. Specs are defined at
// process start and never mutated at runtime.
type Spec struct {
	ID                   string        `yaml:"id" json:"id"`
	Name                 string        `yaml:"name" json:"name"`
	VastVersion          string        `yaml:"vast_version" json:"vastVersion"`
	VideoFormats         []VideoFormat `yaml:"video_formats" json:"videoFormats"`
	InteractivitySupport bool          `yaml:"interactivity_support" json:"interactivitySupport"`
	MaxDurationSeconds   int           `yaml:"max_duration_seconds" json:"maxDurationSeconds"`
	SkipOffsetSeconds    *int          `yaml:"skip_offset_seconds" json:"skipOffsetSeconds,omitempty"`
	VpaidScriptURL       string        `yaml:"vpaid_script_url" json:"vpaidScriptUrl,omitempty"`
	OverlayURL           string        `yaml:"overlay_url" json:"overlayUrl,omitempty"`
}
