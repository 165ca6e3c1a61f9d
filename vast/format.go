// Package vast builds and validates the VAST XML documents served to CTV ad
// players. The document is assembled through an element tree rather than
// string templates, so tag ordering and CDATA wrapping hold by construction.
package vast

import (
	"fmt"
	"strings"
)

// SecToHHMMSS formats a duration in whole seconds as zero-padded HH:MM:SS.
// Negative input clamps to zero.
func SecToHHMMSS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// MimeTypeForCodec maps a variant codec to the MediaFile type attribute.
func MimeTypeForCodec(codec string) string {
	switch strings.ToLower(codec) {
	case "h265", "hevc":
		return "video/hevc"
	default:
		return "video/mp4"
	}
}

func mimeTypeForImage(url string) string {
	switch {
	case strings.HasSuffix(url, ".png"):
		return "image/png"
	case strings.HasSuffix(url, ".gif"):
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
