package macros

import (
	"strconv"
	"strings"
)

// Well-known macro tokens recognized inside tracking URL templates. The
// bracketed spelling matches what ad servers expect on the wire.
const (
	MacroTimestamp   = "[TIMESTAMP]"
	MacroCacheBuster = "[CACHEBUSTING]"
	MacroCampaignID  = "[CAMPAIGN_ID]"
	MacroCreativeID  = "[CREATIVE_ID]"
)

// Values holds the macro values for a single export. Timestamp and
// CacheBuster are generated once per build call and shared by every URL in
// the resulting document, so all endpoints of one export carry the same pair.
type Values struct {
	Timestamp   int64
	CacheBuster int64
	CampaignID  string
	CreativeID  string
}

// Replace substitutes the well-known macro tokens in template with their
// string forms. Tokens whose value is absent, and tokens this package does
// not know about, are left verbatim. Replace never fails.
func Replace(template string, values Values) string {
	pairs := []string{
		MacroTimestamp, strconv.FormatInt(values.Timestamp, 10),
		MacroCacheBuster, strconv.FormatInt(values.CacheBuster, 10),
	}
	if values.CampaignID != "" {
		pairs = append(pairs, MacroCampaignID, values.CampaignID)
	}
	if values.CreativeID != "" {
		pairs = append(pairs, MacroCreativeID, values.CreativeID)
	}

	return strings.NewReplacer(pairs...).Replace(template)
}
