// Package interactive resolves a creative's overlay elements into the
// platform-specific interactive payload embedded in the VAST document.
package interactive

// DeliveryType selects how the interactive layer reaches the player.
type DeliveryType string

const (
	DeliveryVPAID DeliveryType = "vpaid"
	DeliveryHTML5 DeliveryType = "html5"
	DeliveryNone  DeliveryType = "none"
)

// Sentinel navigation directions. These are not element ids: they tell the
// player to scroll the focused element in place instead of moving focus.
const (
	NavPrevious = "previous"
	NavNext     = "next"
)

// Resource is one asset the interactive runtime must fetch.
type Resource struct {
	Type string `json:"type"`
	URL  string `json:"url"`
	ID   string `json:"id"`
}

// Action is one interactive affordance and its click/selection target.
type Action struct {
	ID    string      `json:"id"`
	Type  string      `json:"type"`
	Label string      `json:"label,omitempty"`
	URL   string      `json:"url,omitempty"`
	Data  *ActionData `json:"data,omitempty"`
}

// ActionData carries the per-kind payload of an aggregate action. Items is
// always serialized, even when empty: an empty carousel is a valid state, not
// an error.
type ActionData struct {
	Items    []ItemSummary   `json:"items"`
	Question string          `json:"question,omitempty"`
	Options  []OptionSummary `json:"options,omitempty"`
}

// ItemSummary is the flattened form of a carousel/gallery item.
type ItemSummary struct {
	ID    string `json:"id"`
	Image string `json:"image"`
	Title string `json:"title,omitempty"`
	Price string `json:"price,omitempty"`
	URL   string `json:"url,omitempty"`
}

// OptionSummary is one selectable option of a trivia or choice action.
type OptionSummary struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// NavElement is one node of the remote-control navigation graph. Up/Down/Left/
// Right reference neighbor element ids, except for the NavPrevious/NavNext
// sentinels on scrollable elements. Out-of-range neighbors are omitted, never
// wrapped.
type NavElement struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Position int    `json:"position"`
	Up       string `json:"up,omitempty"`
	Down     string `json:"down,omitempty"`
	Left     string `json:"left,omitempty"`
	Right    string `json:"right,omitempty"`
	Action   string `json:"action"`
}

// NavigationMap is the directed focus graph over a config's actions, built
// once per export.
type NavigationMap struct {
	DefaultFocusID string       `json:"defaultFocusId,omitempty"`
	Elements       []NavElement `json:"elements"`
}

// Config is the resolved, platform-specific interactive payload. It is
// computed fresh on every export call and never cached.
type Config struct {
	DeliveryType  DeliveryType  `json:"deliveryType"`
	Framework     string        `json:"framework,omitempty"`
	Resources     []Resource    `json:"resources"`
	Actions       []Action      `json:"actions"`
	NavigationMap NavigationMap `json:"navigationMap"`
}
