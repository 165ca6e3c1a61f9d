package vast

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/gofrs/uuid"
	"github.com/golang/glog"

	"github.com/adsmood/ctv-vast-engine/creative"
	"github.com/adsmood/ctv-vast-engine/errortypes"
	"github.com/adsmood/ctv-vast-engine/interactive"
	"github.com/adsmood/ctv-vast-engine/macros"
	"github.com/adsmood/ctv-vast-engine/platforms"
	"github.com/adsmood/ctv-vast-engine/tracking"
	"github.com/adsmood/ctv-vast-engine/util/randomutil"
	"github.com/adsmood/ctv-vast-engine/util/timeutil"
)

const (
	adSystemName    = "Adsmood CTV"
	adSystemVersion = "1.0"

	// interactivePayloadVersion tags the InteractiveCreativeFile JSON schema.
	interactivePayloadVersion = "1.0"

	// trackingSchemaVersion is recorded in the trailer extension of every
	// document so tracking consumers can detect incompatible exports.
	trackingSchemaVersion = "1.2"

	// Cache-busters are drawn from [0, 10^10).
	cacheBusterRange = int64(10_000_000_000)

	verificationVendor    = "doubleverify.com"
	verificationScriptURL = "https://cdn.doubleverify.com/dv-video-measurement.js"
)

// BuildOptions carries the per-request knobs of one export.
type BuildOptions struct {
	EnableVerification bool
	CampaignID         string
	CreativeID         string
	SamID              string
}

// Builder assembles VAST documents. The clock and random generator are
// injected so exports can be pinned in tests; one timestamp and one
// cache-buster are drawn per Build call and reused for every URL in that
// document.
type Builder struct {
	clock timeutil.Time
	rng   randomutil.RandomGenerator
}

func NewBuilder(clock timeutil.Time, rng randomutil.RandomGenerator) *Builder {
	return &Builder{clock: clock, rng: rng}
}

// Build produces the complete VAST document for one creative on one platform.
// It fails with MissingMediaFiles when the creative has no variant for the
// platform; optional creative fields degrade to omitted elements instead.
func (b *Builder) Build(c *creative.Descriptor, spec platforms.Spec, endpoints tracking.EndpointSet, interactiveCfg interactive.Config, opts BuildOptions) (string, error) {
	variants := c.VariantsForPlatform(spec.ID)
	if len(variants) == 0 {
		return "", &errortypes.MissingMediaFiles{Message: fmt.Sprintf(`creative "%s" has no video variant for platform "%s"`, c.ID, spec.ID)}
	}

	if interactiveCfg.DeliveryType != interactive.DeliveryNone {
		if err := interactiveCfg.Validate(); err != nil {
			return "", err
		}
	}

	if spec.MaxDurationSeconds > 0 && c.DurationSeconds > spec.MaxDurationSeconds {
		glog.Warningf("creative %s runs %ds, over the %ds limit of platform %s", c.ID, c.DurationSeconds, spec.MaxDurationSeconds, spec.ID)
	}

	timestamp := b.clock.Now().UnixMilli()
	cacheBuster := b.rng.GenerateInt63n(cacheBusterRange)
	values := macros.Values{
		Timestamp:   timestamp,
		CacheBuster: cacheBuster,
		CampaignID:  opts.CampaignID,
		CreativeID:  opts.CreativeID,
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("VAST")
	root.CreateAttr("version", spec.VastVersion)

	ad := root.CreateElement("Ad")
	ad.CreateAttr("id", adID(c.ID, timestamp))

	inline := ad.CreateElement("InLine")

	adSystem := inline.CreateElement("AdSystem")
	adSystem.CreateAttr("version", adSystemVersion)
	adSystem.SetText(adSystemName)

	inline.CreateElement("AdTitle").CreateCData(c.Title)
	inline.CreateElement("Description").CreateCData(c.Description)
	inline.CreateElement("Error").CreateCData(macros.Replace(endpoints.Error, values))

	impression := inline.CreateElement("Impression")
	impression.CreateAttr("id", fmt.Sprintf("imp-%d", cacheBuster))
	impression.CreateCData(macros.Replace(endpoints.Impression, values))

	if opts.EnableVerification {
		buildVerification(inline, opts)
	}

	creatives := inline.CreateElement("Creatives")
	b.buildLinearCreative(creatives, c, spec, endpoints, interactiveCfg, variants, values)
	buildCompanionCreative(creatives, c, values)

	buildExtensions(inline, spec, interactiveCfg, opts)

	doc.Indent(2)
	return doc.WriteToString()
}

// adID gives every export a distinct Ad id so two concurrent exports of the
// same creative never collide.
func adID(creativeID string, timestamp int64) string {
	suffix := uuid.Must(uuid.NewV4()).String()[:8]
	return fmt.Sprintf("%s-%d-%s", creativeID, timestamp, suffix)
}

func (b *Builder) buildLinearCreative(creatives *etree.Element, c *creative.Descriptor, spec platforms.Spec, endpoints tracking.EndpointSet, interactiveCfg interactive.Config, variants []creative.VideoVariant, values macros.Values) {
	creativeEl := creatives.CreateElement("Creative")
	creativeEl.CreateAttr("id", c.ID)
	creativeEl.CreateAttr("sequence", "1")

	linear := creativeEl.CreateElement("Linear")
	if spec.SkipOffsetSeconds != nil {
		linear.CreateAttr("skipoffset", SecToHHMMSS(*spec.SkipOffsetSeconds))
	}

	linear.CreateElement("Duration").SetText(SecToHHMMSS(c.DurationSeconds))

	trackingEvents := linear.CreateElement("TrackingEvents")
	for _, event := range endpoints.Events {
		appendTracking(trackingEvents, event, values)
	}
	for _, event := range endpoints.InteractionEvents {
		appendTracking(trackingEvents, event, values)
	}

	videoClicks := linear.CreateElement("VideoClicks")
	clickThrough := videoClicks.CreateElement("ClickThrough")
	clickThrough.CreateCData(macros.Replace(endpoints.Click, values))

	mediaFiles := linear.CreateElement("MediaFiles")
	for _, variant := range variants {
		appendMediaFile(mediaFiles, variant, values)
	}
	if interactiveCfg.DeliveryType == interactive.DeliveryVPAID && spec.VpaidScriptURL != "" {
		vpaid := mediaFiles.CreateElement("MediaFile")
		vpaid.CreateAttr("delivery", "progressive")
		vpaid.CreateAttr("type", "application/javascript")
		vpaid.CreateAttr("apiFramework", "VPAID")
		vpaid.CreateCData(macros.Replace(spec.VpaidScriptURL, values))
	}
	if interactiveCfg.DeliveryType != interactive.DeliveryNone {
		appendInteractiveCreativeFile(mediaFiles, interactiveCfg)
	}
}

func appendTracking(trackingEvents *etree.Element, event tracking.Event, values macros.Values) {
	trackingEl := trackingEvents.CreateElement("Tracking")
	trackingEl.CreateAttr("event", event.Name)
	trackingEl.CreateCData(macros.Replace(event.URL, values))
}

func appendMediaFile(mediaFiles *etree.Element, variant creative.VideoVariant, values macros.Values) {
	mediaFile := mediaFiles.CreateElement("MediaFile")
	mediaFile.CreateAttr("delivery", "progressive")
	mediaFile.CreateAttr("type", MimeTypeForCodec(variant.Codec))
	mediaFile.CreateAttr("width", strconv.Itoa(variant.Width))
	mediaFile.CreateAttr("height", strconv.Itoa(variant.Height))
	mediaFile.CreateAttr("bitrate", strconv.Itoa(int(math.Round(variant.BitrateMbps*1_000_000))))
	mediaFile.CreateAttr("codec", strings.ToUpper(variant.Codec))
	mediaFile.CreateCData(macros.Replace(variant.URL, values))
}

func appendInteractiveCreativeFile(mediaFiles *etree.Element, interactiveCfg interactive.Config) {
	payload := struct {
		Version   string                 `json:"version"`
		Type      string                 `json:"type"`
		Framework string                 `json:"framework,omitempty"`
		Resources []interactive.Resource `json:"resources"`
		Actions   []interactive.Action   `json:"actions"`
	}{
		Version:   interactivePayloadVersion,
		Type:      string(interactiveCfg.DeliveryType),
		Framework: interactiveCfg.Framework,
		Resources: interactiveCfg.Resources,
		Actions:   interactiveCfg.Actions,
	}

	serialized, err := json.Marshal(payload)
	if err != nil {
		// The payload is built purely from plain structs, so this cannot
		// happen in practice; log and omit rather than emit a broken block.
		glog.Errorf("failed to serialize interactive payload: %v", err)
		return
	}

	file := mediaFiles.CreateElement("InteractiveCreativeFile")
	file.CreateAttr("type", "application/json")
	file.CreateCData(string(serialized))
}

func buildCompanionCreative(creatives *etree.Element, c *creative.Descriptor, values macros.Values) {
	if c.Interactive == nil || len(c.Interactive.Companions) == 0 {
		return
	}

	creativeEl := creatives.CreateElement("Creative")
	creativeEl.CreateAttr("id", c.ID+"-companions")
	companionAds := creativeEl.CreateElement("CompanionAds")

	for _, companion := range c.Interactive.Companions {
		companionEl := companionAds.CreateElement("Companion")
		companionEl.CreateAttr("width", strconv.Itoa(companion.Width))
		companionEl.CreateAttr("height", strconv.Itoa(companion.Height))

		static := companionEl.CreateElement("StaticResource")
		static.CreateAttr("creativeType", mimeTypeForImage(companion.ImageURL))
		static.CreateCData(macros.Replace(companion.ImageURL, values))

		companionEl.CreateElement("CompanionClickThrough").CreateCData(macros.Replace(companion.ClickThroughURL, values))
	}
}

func buildVerification(inline *etree.Element, opts BuildOptions) {
	verifications := inline.CreateElement("AdVerifications")
	verification := verifications.CreateElement("Verification")
	verification.CreateAttr("vendor", verificationVendor)

	script := verification.CreateElement("JavaScriptResource")
	script.CreateAttr("apiFramework", "omid")
	script.CreateAttr("browserOptional", "true")
	script.CreateCData(verificationScriptURL)

	params := fmt.Sprintf("campaign=%s&creative=%s", opts.CampaignID, opts.CreativeID)
	verification.CreateElement("VerificationParameters").CreateCData(params)
}

func buildExtensions(inline *etree.Element, spec platforms.Spec, interactiveCfg interactive.Config, opts BuildOptions) {
	extensions := inline.CreateElement("Extensions")

	if spec.ID == "samsung" && opts.SamID != "" {
		samsung := extensions.CreateElement("Extension")
		samsung.CreateAttr("type", "SAMID")
		samsung.CreateElement("SAMID").SetText(opts.SamID)
	}

	if opts.CampaignID != "" || opts.CreativeID != "" {
		dv360 := extensions.CreateElement("Extension")
		dv360.CreateAttr("type", "DV360")
		if opts.CampaignID != "" {
			dv360.CreateElement("CampaignId").SetText(opts.CampaignID)
		}
		if opts.CreativeID != "" {
			dv360.CreateElement("CreativeId").SetText(opts.CreativeID)
		}
	}

	if interactiveCfg.DeliveryType != interactive.DeliveryNone {
		interactiveExt := extensions.CreateElement("Extension")
		interactiveExt.CreateAttr("type", "AdsmoodInteractive")
		if interactiveCfg.Framework != "" {
			interactiveExt.CreateElement("Framework").SetText(interactiveCfg.Framework)
		}
		interactiveExt.CreateElement("RemoteControl").SetText("true")

		navJSON, err := json.Marshal(interactiveCfg.NavigationMap)
		if err != nil {
			glog.Errorf("failed to serialize navigation map: %v", err)
		} else {
			interactiveExt.CreateElement("NavigationMap").CreateCData(string(navJSON))
		}
	}

	trailer := extensions.CreateElement("Extension")
	trailer.CreateAttr("type", "AdsmoodMetadata")
	trailer.CreateElement("Platform").SetText(spec.ID)
	if interactiveCfg.DeliveryType != interactive.DeliveryNone {
		trailer.CreateElement("CreativeFormat").SetText("interactive")
	} else {
		trailer.CreateElement("CreativeFormat").SetText("video")
	}
	trailer.CreateElement("TrackingSchemaVersion").SetText(trackingSchemaVersion)
}
