// Package creative defines the descriptor model the VAST generation pipeline
// consumes. Descriptors are assembled by the editor/persistence layer and are
// read-only within this module.
package creative

import (
	"fmt"

	"github.com/adsmood/ctv-vast-engine/errortypes"
)

// Descriptor is the full input to an export: one ad's metadata, its transcoded
// video variants and its optional interactive layer.
type Descriptor struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	DurationSeconds int            `json:"durationSeconds"`
	VideoVariants   []VideoVariant `json:"videoVariants"`
	Interactive     *Interactive   `json:"interactive,omitempty"`
}

// VideoVariant is one platform-specific transcode of the creative's video.
type VideoVariant struct {
	Platform    string  `json:"platform"`
	URL         string  `json:"url"`
	Codec       string  `json:"codec"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	BitrateMbps float64 `json:"bitrateMbps"`
}

// VariantsForPlatform returns the video variants transcoded for the given
// platform, preserving source order.
func (d *Descriptor) VariantsForPlatform(platformID string) []VideoVariant {
	var matched []VideoVariant
	for _, variant := range d.VideoVariants {
		if variant.Platform == platformID {
			matched = append(matched, variant)
		}
	}
	return matched
}

// Validate checks the basic shape constraints a descriptor must satisfy before
// it can be exported. It accumulates all violations.
func (d *Descriptor) Validate() error {
	var errs []error

	if d.ID == "" {
		errs = append(errs, &errortypes.MalformedCreative{Message: "creative id is empty"})
	}
	if d.DurationSeconds <= 0 {
		errs = append(errs, &errortypes.MalformedCreative{Message: fmt.Sprintf("creative %s: durationSeconds must be positive, got %d", d.ID, d.DurationSeconds)})
	}
	for i, variant := range d.VideoVariants {
		if variant.Platform == "" {
			errs = append(errs, &errortypes.MalformedCreative{Message: fmt.Sprintf("creative %s: videoVariants[%d] has no platform", d.ID, i)})
		}
		if variant.URL == "" {
			errs = append(errs, &errortypes.MalformedCreative{Message: fmt.Sprintf("creative %s: videoVariants[%d] has no url", d.ID, i)})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errortypes.NewAggregateErrors(fmt.Sprintf("invalid creative %s", d.ID), errs)
}
