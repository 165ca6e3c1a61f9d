package vast

import (
	"fmt"

	"github.com/beevik/etree"
)

// requiredElements are the elements every served VAST document must contain.
var requiredElements = []string{
	"VAST",
	"Ad",
	"InLine",
	"AdSystem",
	"AdTitle",
	"Impression",
	"Creatives",
	"Creative",
	"Linear",
	"Duration",
	"MediaFiles",
}

// requiredMediaFileAttrs are the attributes every MediaFile must carry.
var requiredMediaFileAttrs = []string{"delivery", "type", "width", "height", "codec"}

// Result is the validator's report. It is never persisted and validation
// never mutates the input document.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate parses xml and checks the structural contract of a served VAST
// document. A parse failure short-circuits; otherwise every violation is
// accumulated so a caller sees the full list at once. Violations are
// reported, never auto-corrected.
func Validate(xml string) Result {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		return Result{Valid: false, Errors: []string{fmt.Sprintf("failed to parse XML: %v", err)}}
	}

	var errors []string

	for _, name := range requiredElements {
		if doc.FindElement("//"+name) == nil {
			errors = append(errors, fmt.Sprintf("missing required element: %s", name))
		}
	}

	if root := doc.FindElement("//VAST"); root != nil {
		if root.SelectAttr("version") == nil {
			errors = append(errors, "VAST element is missing the version attribute")
		}
	}

	mediaFiles := doc.FindElements("//MediaFile")
	if len(mediaFiles) == 0 {
		errors = append(errors, "document contains no MediaFile elements")
	}
	for i, mediaFile := range mediaFiles {
		for _, attr := range requiredMediaFileAttrs {
			if mediaFile.SelectAttr(attr) == nil {
				errors = append(errors, fmt.Sprintf("MediaFile[%d] is missing the %s attribute", i, attr))
			}
		}
	}

	return Result{Valid: len(errors) == 0, Errors: errors}
}
