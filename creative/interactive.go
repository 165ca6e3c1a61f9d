package creative

// ElementKind tags the interactive element types the editor can place on the
// timeline. Each kind carries its own explicit field set below rather than a
// free-form config map, so the resolver can handle every kind exhaustively.
type ElementKind string

const (
	ElementButton   ElementKind = "button"
	ElementCarousel ElementKind = "carousel"
	ElementGallery  ElementKind = "gallery"
	ElementTrivia   ElementKind = "trivia"
	ElementQR       ElementKind = "qr"
	ElementChoice   ElementKind = "choice"
)

// Interactive holds the overlay layer of a creative. A nil Interactive means
// the creative is plain video.
type Interactive struct {
	Background string      `json:"background,omitempty"`
	Buttons    []Button    `json:"buttons,omitempty"`
	Carousel   []Item      `json:"carousel,omitempty"`
	Gallery    []Item      `json:"gallery,omitempty"`
	Trivia     *Trivia     `json:"trivia,omitempty"`
	QR         *QRCode     `json:"qr,omitempty"`
	Choice     *Choice     `json:"choice,omitempty"`
	Companions []Companion `json:"companions,omitempty"`
}

// Position is an element's placement on the overlay canvas, in percent of the
// video frame.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Style carries the subset of presentation attributes the 10-foot runtime
// renders itself.
type Style struct {
	Color      string `json:"color,omitempty"`
	Background string `json:"background,omitempty"`
	FontSize   int    `json:"fontSize,omitempty"`
}

// Button is a focusable click target.
type Button struct {
	Label    string   `json:"label"`
	URL      string   `json:"url"`
	Position Position `json:"position"`
	Style    *Style   `json:"style,omitempty"`
}

// Item is one entry of a carousel or gallery. The two element kinds share one
// payload shape.
type Item struct {
	Image string `json:"image"`
	Title string `json:"title,omitempty"`
	Price string `json:"price,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Trivia is a single-question quiz overlay.
type Trivia struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	URL          string   `json:"url,omitempty"`
}

// QRCode renders a scannable code pointing at URL.
type QRCode struct {
	URL      string   `json:"url"`
	Position Position `json:"position"`
}

// Choice is an A/B style prompt with multiple selectable options.
type Choice struct {
	Prompt  string         `json:"prompt"`
	Options []ChoiceOption `json:"options"`
}

// ChoiceOption is one selectable answer of a Choice element.
type ChoiceOption struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// Companion is a static companion creative served alongside the video.
type Companion struct {
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	ImageURL        string `json:"imageUrl"`
	ClickThroughURL string `json:"clickThroughUrl"`
}
