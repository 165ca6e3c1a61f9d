package platforms

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/golang/glog"
	"gopkg.in/yaml.v2"

	"github.com/adsmood/ctv-vast-engine/errortypes"
	"github.com/adsmood/ctv-vast-engine/util/ptrutil"
)

// Registry resolves a platform id to its capability Spec.
type Registry struct {
	specs map[string]Spec
}

// NewRegistry returns a registry holding the built-in platform table.
func NewRegistry() *Registry {
	specs := make(map[string]Spec, len(coreSpecs))
	for _, spec := range coreSpecs {
		specs[spec.ID] = spec
	}
	return &Registry{specs: specs}
}

// NewRegistryFromDir returns the built-in table overlaid with one YAML spec
// file per platform from directory, named "{platform_id}.yaml". Files may
// override existing entries or add new platforms.
func NewRegistryFromDir(directory string) (*Registry, error) {
	registry := NewRegistry()

	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		fileData, err := os.ReadFile(directory + "/" + entry.Name())
		if err != nil {
			return nil, err
		}

		var spec Spec
		if err := yaml.Unmarshal(fileData, &spec); err != nil {
			return nil, fmt.Errorf("error parsing platform spec from file %s: %v", entry.Name(), err)
		}

		id := strings.TrimSuffix(entry.Name(), ".yaml")
		if spec.ID != "" && spec.ID != id {
			return nil, fmt.Errorf("platform spec file %s declares mismatched id %q", entry.Name(), spec.ID)
		}
		spec.ID = id

		if err := validateSpec(spec); err != nil {
			return nil, err
		}

		if _, exists := registry.specs[id]; exists {
			glog.Infof("Platform spec for %s overridden from %s", id, entry.Name())
		}
		registry.specs[id] = spec
	}

	return registry, nil
}

// Lookup returns the Spec for platformID. A platform with no entry yields
// errortypes.UnknownPlatform; there is no fallback profile.
func (r *Registry) Lookup(platformID string) (Spec, error) {
	spec, ok := r.specs[platformID]
	if !ok {
		return Spec{}, &errortypes.UnknownPlatform{Message: fmt.Sprintf(`platform "%s" is not registered`, platformID)}
	}
	return spec, nil
}

// IDs returns the registered platform ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.specs))
	for id := range r.specs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func validateSpec(spec Spec) error {
	switch spec.VastVersion {
	case "3.0", "4.0", "4.1", "4.2":
	default:
		return fmt.Errorf("platform %s: unsupported VAST version %q", spec.ID, spec.VastVersion)
	}
	if spec.MaxDurationSeconds <= 0 {
		return fmt.Errorf("platform %s: max_duration_seconds must be positive", spec.ID)
	}
	return nil
}

// coreSpecs is the built-in platform capability table. The bitrate ceilings
// and codec sets track each vendor's certification requirements.
var coreSpecs = []Spec{
	{
		ID:          "roku",
		Name:        "Roku",
		VastVersion: "4.0",
		VideoFormats: []VideoFormat{
			{Codec: "h264", Width: 1920, Height: 1080, FPS: 30, MaxBitrateMbps: 15},
			{Codec: "h265", Width: 3840, Height: 2160, FPS: 30, MaxBitrateMbps: 25},
		},
		InteractivitySupport: true,
		MaxDurationSeconds:   60,
		SkipOffsetSeconds:    ptrutil.ToPtr(5),
		VpaidScriptURL:       "https://cdn.adsmood.com/vpaid/roku/interactive.js",
	},
	{
		ID:          "firetv",
		Name:        "Amazon Fire TV",
		VastVersion: "4.0",
		VideoFormats: []VideoFormat{
			{Codec: "h264", Width: 1920, Height: 1080, FPS: 30, MaxBitrateMbps: 15},
			{Codec: "h265", Width: 3840, Height: 2160, FPS: 60, MaxBitrateMbps: 25},
		},
		InteractivitySupport: true,
		MaxDurationSeconds:   60,
		SkipOffsetSeconds:    ptrutil.ToPtr(5),
		OverlayURL:           "https://cdn.adsmood.com/overlay/firetv/index.html",
	},
	{
		ID:          "appletv",
		Name:        "Apple TV",
		VastVersion: "4.1",
		VideoFormats: []VideoFormat{
			{Codec: "h264", Width: 1920, Height: 1080, FPS: 30, MaxBitrateMbps: 15},
			{Codec: "h265", Width: 3840, Height: 2160, FPS: 60, MaxBitrateMbps: 25},
		},
		InteractivitySupport: false,
		MaxDurationSeconds:   30,
	},
	{
		ID:          "androidtv",
		Name:        "Android TV",
		VastVersion: "4.0",
		VideoFormats: []VideoFormat{
			{Codec: "h264", Width: 1920, Height: 1080, FPS: 30, MaxBitrateMbps: 15},
			{Codec: "h265", Width: 3840, Height: 2160, FPS: 60, MaxBitrateMbps: 25},
		},
		InteractivitySupport: true,
		MaxDurationSeconds:   60,
		SkipOffsetSeconds:    ptrutil.ToPtr(5),
		OverlayURL:           "https://cdn.adsmood.com/overlay/androidtv/index.html",
	},
	{
		ID:          "samsung",
		Name:        "Samsung TV Plus",
		VastVersion: "4.1",
		VideoFormats: []VideoFormat{
			{Codec: "h264", Width: 1920, Height: 1080, FPS: 30, MaxBitrateMbps: 15},
			{Codec: "h265", Width: 3840, Height: 2160, FPS: 60, MaxBitrateMbps: 25},
		},
		InteractivitySupport: true,
		MaxDurationSeconds:   30,
		OverlayURL:           "https://cdn.adsmood.com/overlay/tizen/index.html",
	},
	{
		ID:          "lg",
		Name:        "LG webOS",
		VastVersion: "4.0",
		VideoFormats: []VideoFormat{
			{Codec: "h264", Width: 1920, Height: 1080, FPS: 30, MaxBitrateMbps: 15},
		},
		InteractivitySupport: true,
		MaxDurationSeconds:   30,
		OverlayURL:           "https://cdn.adsmood.com/overlay/webos/index.html",
	},
	{
		ID:          "vizio",
		Name:        "Vizio SmartCast",
		VastVersion: "3.0",
		VideoFormats: []VideoFormat{
			{Codec: "h264", Width: 1920, Height: 1080, FPS: 30, MaxBitrateMbps: 10},
		},
		InteractivitySupport: false,
		MaxDurationSeconds:   30,
	},
}
