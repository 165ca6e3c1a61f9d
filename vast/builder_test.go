package vast

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsmood/ctv-vast-engine/creative"
	"github.com/adsmood/ctv-vast-engine/errortypes"
	"github.com/adsmood/ctv-vast-engine/interactive"
	"github.com/adsmood/ctv-vast-engine/platforms"
	"github.com/adsmood/ctv-vast-engine/tracking"
	"github.com/adsmood/ctv-vast-engine/util/timeutil"
)

type fixedRandom struct {
	value int64
}

func (r fixedRandom) GenerateInt63() int64 {
	return r.value
}

func (r fixedRandom) GenerateInt63n(n int64) int64 {
	return r.value % n
}

func testBuilder() *Builder {
	clock := timeutil.NewMockClockAt(time.UnixMilli(1700000000000))
	return NewBuilder(clock, fixedRandom{value: 4242424242})
}

func lookupSpec(t *testing.T, id string) platforms.Spec {
	t.Helper()
	spec, err := platforms.NewRegistry().Lookup(id)
	require.NoError(t, err)
	return spec
}

func testEndpoints(t *testing.T, adID string) tracking.EndpointSet {
	t.Helper()
	set, err := tracking.Assemble("https://api.adsmood.com", adID)
	require.NoError(t, err)
	return set
}

func testCreative(platformID string) *creative.Descriptor {
	return &creative.Descriptor{
		ID:              "ad-1",
		Title:           "Launch Spot",
		Description:     "New flavor, now in stores",
		DurationSeconds: 30,
		VideoVariants: []creative.VideoVariant{
			{Platform: platformID, URL: "https://x/video.mp4", Codec: "h264", Width: 1920, Height: 1080, BitrateMbps: 15},
		},
		Interactive: &creative.Interactive{
			Buttons: []creative.Button{
				{Label: "Shop", URL: "https://x/shop", Position: creative.Position{X: 10, Y: 10}},
			},
		},
	}
}

func build(t *testing.T, c *creative.Descriptor, spec platforms.Spec, opts BuildOptions) string {
	t.Helper()
	interactiveCfg := interactive.Resolve(c, spec)
	xml, err := testBuilder().Build(c, spec, testEndpoints(t, c.ID), interactiveCfg, opts)
	require.NoError(t, err)
	return xml
}

// normalizeAdID replaces the random suffix of the Ad id so two documents from
// identically pinned builders can be compared byte for byte.
func normalizeAdID(t *testing.T, xml string) string {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	ad := doc.FindElement("//Ad")
	require.NotNil(t, ad)
	ad.RemoveAttr("id")
	ad.CreateAttr("id", "normalized")
	out, err := doc.WriteToString()
	require.NoError(t, err)
	return out
}

func TestBuildEndToEndScenario(t *testing.T) {
	spec := lookupSpec(t, "roku")
	xml := build(t, testCreative("roku"), spec, BuildOptions{})

	result := Validate(xml)
	assert.True(t, result.Valid, "errors: %v", result.Errors)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))

	mediaFiles := doc.FindElements("//MediaFile")
	videoFiles := 0
	for _, mediaFile := range mediaFiles {
		if mediaFile.SelectAttrValue("apiFramework", "") == "" {
			videoFiles++
			assert.Equal(t, "H264", mediaFile.SelectAttrValue("codec", ""))
			assert.Equal(t, "15000000", mediaFile.SelectAttrValue("bitrate", ""))
			assert.Equal(t, "video/mp4", mediaFile.SelectAttrValue("type", ""))
			assert.Equal(t, "progressive", mediaFile.SelectAttrValue("delivery", ""))
		}
	}
	assert.Equal(t, 1, videoFiles)

	interactiveFile := doc.FindElement("//InteractiveCreativeFile")
	require.NotNil(t, interactiveFile)

	var payload struct {
		Version string               `json:"version"`
		Type    string               `json:"type"`
		Actions []interactive.Action `json:"actions"`
	}
	require.NoError(t, json.Unmarshal([]byte(interactiveFile.Text()), &payload))
	assert.Equal(t, "vpaid", payload.Type)
	require.Len(t, payload.Actions, 1)
	assert.Equal(t, "button", payload.Actions[0].Type)
	assert.Equal(t, "Shop", payload.Actions[0].Label)
}

func TestBuildDeterministicModuloTime(t *testing.T) {
	spec := lookupSpec(t, "roku")
	c := testCreative("roku")

	first := build(t, c, spec, BuildOptions{CampaignID: "cmp-1"})
	second := build(t, c, spec, BuildOptions{CampaignID: "cmp-1"})

	assert.Equal(t, normalizeAdID(t, first), normalizeAdID(t, second))
}

func TestBuildSingleCacheBusterPerExport(t *testing.T) {
	spec := lookupSpec(t, "roku")
	xml := build(t, testCreative("roku"), spec, BuildOptions{})

	// The pinned generator draws 4242424242 % 10^10, so every substituted URL
	// and the impression id must carry the same value.
	assert.Contains(t, xml, `id="imp-4242424242"`)
	assert.Equal(t, 0, strings.Count(xml, "[CACHEBUSTING]"), "all cache-buster macros substituted")
	assert.Equal(t, 0, strings.Count(xml, "[TIMESTAMP]"), "all timestamp macros substituted")
	assert.Greater(t, strings.Count(xml, "cb=4242424242"), 10)
	assert.Greater(t, strings.Count(xml, "ts=1700000000000"), 10)
}

func TestBuildRoundTripValidatesOnEveryPlatform(t *testing.T) {
	registry := platforms.NewRegistry()

	for _, platformID := range registry.IDs() {
		t.Run(platformID, func(t *testing.T) {
			spec, err := registry.Lookup(platformID)
			require.NoError(t, err)

			xml := build(t, testCreative(platformID), spec, BuildOptions{})
			result := Validate(xml)
			assert.True(t, result.Valid, "errors: %v", result.Errors)
		})
	}
}

func TestBuildMissingMediaFilesIsFatal(t *testing.T) {
	spec := lookupSpec(t, "firetv")
	c := testCreative("roku") // no firetv variant

	interactiveCfg := interactive.Resolve(c, spec)
	_, err := testBuilder().Build(c, spec, testEndpoints(t, c.ID), interactiveCfg, BuildOptions{})

	require.Error(t, err)
	var missing *errortypes.MissingMediaFiles
	assert.ErrorAs(t, err, &missing)
}

func TestBuildInteractiveSuppression(t *testing.T) {
	spec := lookupSpec(t, "appletv")
	require.False(t, spec.InteractivitySupport)

	xml := build(t, testCreative("appletv"), spec, BuildOptions{})

	assert.NotContains(t, xml, "InteractiveCreativeFile")
	assert.NotContains(t, xml, "AdsmoodInteractive")
	assert.Contains(t, xml, "<CreativeFormat>video</CreativeFormat>")
}

func TestBuildSkipOffset(t *testing.T) {
	rokuXML := build(t, testCreative("roku"), lookupSpec(t, "roku"), BuildOptions{})
	assert.Contains(t, rokuXML, `skipoffset="00:00:05"`)

	samsungXML := build(t, testCreative("samsung"), lookupSpec(t, "samsung"), BuildOptions{})
	assert.NotContains(t, samsungXML, "skipoffset")
}

func TestBuildDuration(t *testing.T) {
	c := testCreative("roku")
	c.DurationSeconds = 3725

	xml := build(t, c, lookupSpec(t, "roku"), BuildOptions{})
	assert.Contains(t, xml, "<Duration>01:02:05</Duration>")
}

func TestBuildVpaidMediaFile(t *testing.T) {
	xml := build(t, testCreative("roku"), lookupSpec(t, "roku"), BuildOptions{})

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))

	var vpaid *etree.Element
	for _, mediaFile := range doc.FindElements("//MediaFile") {
		if mediaFile.SelectAttrValue("apiFramework", "") == "VPAID" {
			vpaid = mediaFile
		}
	}
	require.NotNil(t, vpaid)
	assert.Equal(t, "application/javascript", vpaid.SelectAttrValue("type", ""))
	assert.Contains(t, vpaid.Text(), "https://cdn.adsmood.com/vpaid/roku/interactive.js")
}

func TestBuildCompanions(t *testing.T) {
	c := testCreative("roku")
	c.Interactive.Companions = []creative.Companion{
		{Width: 300, Height: 250, ImageURL: "https://cdn.example.com/banner.png", ClickThroughURL: "https://x/shop"},
	}

	xml := build(t, c, lookupSpec(t, "roku"), BuildOptions{})

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))

	companion := doc.FindElement("//CompanionAds/Companion")
	require.NotNil(t, companion)
	assert.Equal(t, "300", companion.SelectAttrValue("width", ""))
	assert.Equal(t, "250", companion.SelectAttrValue("height", ""))

	static := companion.SelectElement("StaticResource")
	require.NotNil(t, static)
	assert.Equal(t, "image/png", static.SelectAttrValue("creativeType", ""))
	require.NotNil(t, companion.SelectElement("CompanionClickThrough"))
}

func TestBuildNoCompanionsNoBlock(t *testing.T) {
	xml := build(t, testCreative("roku"), lookupSpec(t, "roku"), BuildOptions{})
	assert.NotContains(t, xml, "CompanionAds")
}

func TestBuildSamsungExtension(t *testing.T) {
	samsungXML := build(t, testCreative("samsung"), lookupSpec(t, "samsung"), BuildOptions{SamID: "sam-123"})
	assert.Contains(t, samsungXML, "<SAMID>sam-123</SAMID>")

	// The SAMID extension is Samsung-only, whatever the options say.
	rokuXML := build(t, testCreative("roku"), lookupSpec(t, "roku"), BuildOptions{SamID: "sam-123"})
	assert.NotContains(t, rokuXML, "SAMID")
}

func TestBuildDV360Extension(t *testing.T) {
	xml := build(t, testCreative("roku"), lookupSpec(t, "roku"), BuildOptions{CampaignID: "cmp-1", CreativeID: "crt-2"})

	assert.Contains(t, xml, `<Extension type="DV360">`)
	assert.Contains(t, xml, "<CampaignId>cmp-1</CampaignId>")
	assert.Contains(t, xml, "<CreativeId>crt-2</CreativeId>")

	plain := build(t, testCreative("roku"), lookupSpec(t, "roku"), BuildOptions{})
	assert.NotContains(t, plain, "DV360")
}

func TestBuildVerificationOptIn(t *testing.T) {
	opts := BuildOptions{EnableVerification: true, CampaignID: "cmp-1", CreativeID: "crt-2"}
	xml := build(t, testCreative("roku"), lookupSpec(t, "roku"), opts)

	assert.Contains(t, xml, "<AdVerifications>")
	assert.Contains(t, xml, verificationScriptURL)
	assert.Contains(t, xml, "campaign=cmp-1&creative=crt-2")

	plain := build(t, testCreative("roku"), lookupSpec(t, "roku"), BuildOptions{})
	assert.NotContains(t, plain, "AdVerifications")
}

func TestBuildTrackingEventOrder(t *testing.T) {
	xml := build(t, testCreative("roku"), lookupSpec(t, "roku"), BuildOptions{})

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))

	trackingEls := doc.FindElements("//TrackingEvents/Tracking")
	require.GreaterOrEqual(t, len(trackingEls), len(tracking.PlaybackEvents))
	for i, name := range tracking.PlaybackEvents {
		assert.Equal(t, name, trackingEls[i].SelectAttrValue("event", ""))
	}
}

func TestBuildRejectsDanglingNavigationMap(t *testing.T) {
	spec := lookupSpec(t, "roku")
	c := testCreative("roku")

	interactiveCfg := interactive.Resolve(c, spec)
	interactiveCfg.NavigationMap.Elements[0].Down = "button_99"

	_, err := testBuilder().Build(c, spec, testEndpoints(t, c.ID), interactiveCfg, BuildOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "button_99")
}

func TestBuildAdIDIncorporatesTimestamp(t *testing.T) {
	xml := build(t, testCreative("roku"), lookupSpec(t, "roku"), BuildOptions{})

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	ad := doc.FindElement("//Ad")
	require.NotNil(t, ad)
	assert.True(t, strings.HasPrefix(ad.SelectAttrValue("id", ""), fmt.Sprintf("ad-1-%d-", int64(1700000000000))))
}

func TestBuildCDATAWrapping(t *testing.T) {
	c := testCreative("roku")
	c.Title = "Spot <with> & weird ]] chars"

	xml := build(t, c, lookupSpec(t, "roku"), BuildOptions{})

	assert.Contains(t, xml, "<![CDATA[Spot <with> & weird ]] chars]]>")

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	title := doc.FindElement("//AdTitle")
	require.NotNil(t, title)
	assert.Equal(t, "Spot <with> & weird ]] chars", title.Text())
}
