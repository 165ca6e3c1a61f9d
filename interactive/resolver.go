package interactive

import (
	"fmt"

	"github.com/adsmood/ctv-vast-engine/creative"
	"github.com/adsmood/ctv-vast-engine/errortypes"
	"github.com/adsmood/ctv-vast-engine/platforms"
)

type delivery struct {
	deliveryType DeliveryType
	framework    string
}

// deliveryByPlatform maps a platform id to its interactive delivery mechanism.
// Platforms with interactivity support but no entry fall back to an HTML5
// overlay, which every certified runtime can host.
var deliveryByPlatform = map[string]delivery{
	"roku":      {DeliveryVPAID, "Roku-RAF"},
	"firetv":    {DeliveryHTML5, ""},
	"androidtv": {DeliveryHTML5, ""},
	"samsung":   {DeliveryHTML5, ""},
	"lg":        {DeliveryHTML5, ""},
}

// Resolve maps a creative's interactive elements to the payload for one
// platform. A creative without an interactive layer, or a platform that
// cannot execute interactive creatives, resolves to the none config.
func Resolve(c *creative.Descriptor, spec platforms.Spec) Config {
	if c.Interactive == nil || !spec.InteractivitySupport {
		return noneConfig()
	}

	mechanism, ok := deliveryByPlatform[spec.ID]
	if !ok {
		mechanism = delivery{DeliveryHTML5, ""}
	}

	cfg := Config{
		DeliveryType: mechanism.deliveryType,
		Framework:    mechanism.framework,
		Resources:    resolveResources(c.Interactive, spec, mechanism.deliveryType),
		Actions:      resolveActions(c.Interactive),
	}
	cfg.NavigationMap = buildNavigationMap(cfg.Actions, c.Interactive)
	return cfg
}

func noneConfig() Config {
	return Config{
		DeliveryType:  DeliveryNone,
		Resources:     []Resource{},
		Actions:       []Action{},
		NavigationMap: NavigationMap{Elements: []NavElement{}},
	}
}

func resolveResources(in *creative.Interactive, spec platforms.Spec, deliveryType DeliveryType) []Resource {
	resources := []Resource{}

	if deliveryType == DeliveryHTML5 && spec.OverlayURL != "" {
		resources = append(resources, Resource{Type: "html", URL: spec.OverlayURL, ID: "overlay"})
	}
	if in.Background != "" {
		resources = append(resources, Resource{Type: "image", URL: in.Background, ID: "background"})
	}
	for i, item := range in.Carousel {
		resources = append(resources, Resource{Type: "image", URL: item.Image, ID: fmt.Sprintf("carousel_%d", i)})
	}
	for i, item := range in.Gallery {
		resources = append(resources, Resource{Type: "image", URL: item.Image, ID: fmt.Sprintf("gallery_%d", i)})
	}

	return resources
}

// resolveActions preserves the editor's element order: buttons first, then
// carousel, gallery, trivia, qr, choice. The order is observable through the
// navigation map's default focus and tab order, so it is a contract.
func resolveActions(in *creative.Interactive) []Action {
	actions := []Action{}

	for i, button := range in.Buttons {
		actions = append(actions, Action{
			ID:    fmt.Sprintf("button_%d", i),
			Type:  string(creative.ElementButton),
			Label: button.Label,
			URL:   button.URL,
		})
	}

	if in.Carousel != nil {
		actions = append(actions, Action{
			ID:   "carousel",
			Type: string(creative.ElementCarousel),
			Data: &ActionData{Items: summarizeItems("carousel", in.Carousel)},
		})
	}

	if in.Gallery != nil {
		actions = append(actions, Action{
			ID:   "gallery",
			Type: string(creative.ElementGallery),
			Data: &ActionData{Items: summarizeItems("gallery", in.Gallery)},
		})
	}

	if in.Trivia != nil {
		options := make([]OptionSummary, 0, len(in.Trivia.Options))
		for _, option := range in.Trivia.Options {
			options = append(options, OptionSummary{Label: option})
		}
		actions = append(actions, Action{
			ID:    "trivia",
			Type:  string(creative.ElementTrivia),
			Label: in.Trivia.Question,
			URL:   in.Trivia.URL,
			Data:  &ActionData{Items: []ItemSummary{}, Question: in.Trivia.Question, Options: options},
		})
	}

	if in.QR != nil {
		actions = append(actions, Action{
			ID:   "qr",
			Type: string(creative.ElementQR),
			URL:  in.QR.URL,
		})
	}

	if in.Choice != nil {
		options := make([]OptionSummary, 0, len(in.Choice.Options))
		for _, option := range in.Choice.Options {
			options = append(options, OptionSummary{Label: option.Label, URL: option.URL})
		}
		actions = append(actions, Action{
			ID:    "choice",
			Type:  string(creative.ElementChoice),
			Label: in.Choice.Prompt,
			Data:  &ActionData{Items: []ItemSummary{}, Options: options},
		})
	}

	return actions
}

func summarizeItems(prefix string, items []creative.Item) []ItemSummary {
	summaries := make([]ItemSummary, 0, len(items))
	for i, item := range items {
		summaries = append(summaries, ItemSummary{
			ID:    fmt.Sprintf("%s_%d", prefix, i),
			Image: item.Image,
			Title: item.Title,
			Price: item.Price,
			URL:   item.URL,
		})
	}
	return summaries
}

// buildNavigationMap links buttons vertically to their adjacent button
// neighbors (no wrapping: out-of-range neighbors are omitted) and gives
// scrollable elements the previous/next sentinels so the player scrolls in
// place instead of moving focus.
func buildNavigationMap(actions []Action, in *creative.Interactive) NavigationMap {
	navMap := NavigationMap{Elements: []NavElement{}}
	if len(actions) == 0 {
		return navMap
	}
	navMap.DefaultFocusID = actions[0].ID

	buttonCount := len(in.Buttons)
	for i, action := range actions {
		element := NavElement{
			ID:       action.ID,
			Type:     action.Type,
			Position: i,
			Action:   action.ID,
		}

		switch action.Type {
		case string(creative.ElementButton):
			if i > 0 && i-1 < buttonCount {
				element.Up = fmt.Sprintf("button_%d", i-1)
			}
			if i+1 < buttonCount {
				element.Down = fmt.Sprintf("button_%d", i+1)
			}
		case string(creative.ElementCarousel), string(creative.ElementGallery):
			element.Left = NavPrevious
			element.Right = NavNext
		}

		navMap.Elements = append(navMap.Elements, element)
	}

	return navMap
}

// Validate checks the navigation map's referential integrity: every neighbor
// and action reference must name an existing action id, sentinels excepted.
// Dangling references are an error, never silently ignored.
func (cfg Config) Validate() error {
	ids := make(map[string]struct{}, len(cfg.Actions))
	for _, action := range cfg.Actions {
		ids[action.ID] = struct{}{}
	}

	var errs []error
	reference := func(elementID, direction, target string, sentinelOK bool) {
		if target == "" {
			return
		}
		if sentinelOK && (target == NavPrevious || target == NavNext) {
			return
		}
		if _, ok := ids[target]; !ok {
			errs = append(errs, &errortypes.BadInput{Message: fmt.Sprintf("navigation element %s: %s references unknown action %q", elementID, direction, target)})
		}
	}

	if cfg.NavigationMap.DefaultFocusID != "" {
		if _, ok := ids[cfg.NavigationMap.DefaultFocusID]; !ok {
			errs = append(errs, &errortypes.BadInput{Message: fmt.Sprintf("navigation map: defaultFocusId references unknown action %q", cfg.NavigationMap.DefaultFocusID)})
		}
	}
	for _, element := range cfg.NavigationMap.Elements {
		reference(element.ID, "up", element.Up, false)
		reference(element.ID, "down", element.Down, false)
		reference(element.ID, "left", element.Left, true)
		reference(element.ID, "right", element.Right, true)
		reference(element.ID, "action", element.Action, false)
	}

	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errortypes.NewAggregateErrors("invalid navigation map", errs)
}
