// Package tracking assembles the canonical tracking endpoint set the VAST
// builder embeds into every document. URLs are produced as templates carrying
// macro placeholders; substitution happens at document emission time so every
// endpoint of one export shares the same timestamp/cache-buster pair.
package tracking

import (
	"fmt"
	"strings"

	"github.com/adsmood/ctv-vast-engine/errortypes"
)

// Linear playback events, in the order VAST players fire them.
var PlaybackEvents = []string{
	"start",
	"firstQuartile",
	"midpoint",
	"thirdQuartile",
	"complete",
	"mute",
	"unmute",
	"pause",
	"resume",
}

// Interaction events emitted by the interactive overlay runtime.
var InteractionEvents = []string{
	"interactionView",
	"interactionClick",
	"carouselNext",
	"carouselPrevious",
	"galleryOpen",
	"triviaAnswer",
	"qrScan",
	"choiceSelect",
}

const trackingPathTemplate = "%s/track/%s/%s?ts=%s&cb=%s"

// Event pairs a tracking event name with its URL template. Order is
// significant: the builder emits Tracking elements in slice order, which keeps
// exports byte-stable.
type Event struct {
	Name string
	URL  string
}

// EndpointSet is the full set of canonical tracking URLs for one ad. All URLs
// are absolute and still contain macro placeholders.
type EndpointSet struct {
	Impression        string
	Error             string
	Click             string
	Events            []Event
	InteractionEvents []Event
}

// Assemble builds the endpoint set for adID against apiOrigin. It performs no
// network calls and no validation of apiOrigin beyond requiring it non-empty.
func Assemble(apiOrigin, adID string) (EndpointSet, error) {
	if apiOrigin == "" {
		return EndpointSet{}, &errortypes.InvalidOrigin{Message: "tracking api origin is empty"}
	}
	origin := strings.TrimSuffix(apiOrigin, "/")

	set := EndpointSet{
		Impression: eventURL(origin, "impression", adID),
		Error:      eventURL(origin, "error", adID),
		Click:      eventURL(origin, "click", adID),
	}

	set.Events = make([]Event, 0, len(PlaybackEvents))
	for _, name := range PlaybackEvents {
		set.Events = append(set.Events, Event{Name: name, URL: eventURL(origin, name, adID)})
	}

	set.InteractionEvents = make([]Event, 0, len(InteractionEvents))
	for _, name := range InteractionEvents {
		set.InteractionEvents = append(set.InteractionEvents, Event{Name: name, URL: eventURL(origin, name, adID)})
	}

	return set, nil
}

func eventURL(origin, event, adID string) string {
	return fmt.Sprintf(trackingPathTemplate, origin, event, adID, "[TIMESTAMP]", "[CACHEBUSTING]")
}
