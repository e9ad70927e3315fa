package models

// BoundingBox is an axis-aligned rectangle in the pixel space of the
// full-page screenshot it was captured alongside. Boxes are fixed at
// capture time and never recomputed.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Heading is an h1-h6 element with its trimmed text and level (1-6).
type Heading struct {
	Text  string      `json:"text"`
	Level int         `json:"level"`
	Box   BoundingBox `json:"box"`
}

// Paragraph is a <p> element with trimmed text.
type Paragraph struct {
	Text string      `json:"text"`
	Box  BoundingBox `json:"box"`
}

// ListBlock is an <ul> or <ol> with its item texts.
// Kind is "ordered" or "unordered".
type ListBlock struct {
	Items []string    `json:"items"`
	Kind  string      `json:"kind"`
	Box   BoundingBox `json:"box"`
}

// Image is an <img> with its natural dimensions in CSS pixels.
type Image struct {
	Src    string      `json:"src"`
	Alt    string      `json:"alt"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Box    BoundingBox `json:"box"`
}

// Video is a <video> element or embedded player frame.
type Video struct {
	Src    string      `json:"src"`
	Poster string      `json:"poster,omitempty"`
	Box    BoundingBox `json:"box"`
}

// Script is an external or inline <script>.
type Script struct {
	Src    string `json:"src,omitempty"`
	Inline bool   `json:"inline"`
}

// Stylesheet is a <link rel="stylesheet">.
type Stylesheet struct {
	Href string `json:"href"`
}

// Font is a font file referenced by a preload or stylesheet link whose
// URL matches a font-file extension.
type Font struct {
	URL    string `json:"url"`
	Source string `json:"source"` // "preload" or "stylesheet"
}

// Button is a <button> or role="button" element.
type Button struct {
	Text string      `json:"text"`
	Box  BoundingBox `json:"box"`
}

// FormInput describes one input of a form.
type FormInput struct {
	Type        string `json:"type"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required"`
}

// Form is a <form> with its inputs.
type Form struct {
	Inputs []FormInput `json:"inputs"`
	Box    BoundingBox `json:"box"`
}

// Nav is a <nav> block with the texts of its links.
type Nav struct {
	Items []string    `json:"items"`
	Box   BoundingBox `json:"box"`
}

// Footer is the page <footer>.
type Footer struct {
	Text string      `json:"text"`
	Box  BoundingBox `json:"box"`
}

// Link is an anchor with its href resolved to an absolute URL.
type Link struct {
	URL  string      `json:"url"`
	Text string      `json:"text"`
	Box  BoundingBox `json:"box"`
}

// Metadata holds the page's head metadata. Every field is optional;
// absent tags yield empty strings.
type Metadata struct {
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	Keywords      string `json:"keywords,omitempty"`
	OGTitle       string `json:"ogTitle,omitempty"`
	OGDescription string `json:"ogDescription,omitempty"`
	OGImage       string `json:"ogImage,omitempty"`
}

// PageContent groups the textual and interactive records of a page.
// Every collection preserves document order. Absent elements yield
// empty collections, never nil-pointer special cases downstream.
type PageContent struct {
	Headings   []Heading   `json:"headings"`
	Paragraphs []Paragraph `json:"paragraphs"`
	Lists      []ListBlock `json:"lists"`
	Buttons    []Button    `json:"buttons"`
	Forms      []Form      `json:"forms"`
	Navs       []Nav       `json:"navs"`
	Footer     *Footer     `json:"footer,omitempty"`
	Metadata   Metadata    `json:"metadata"`
}

// Assets groups the page's loadable resources in document order.
type Assets struct {
	Images      []Image      `json:"images"`
	Stylesheets []Stylesheet `json:"stylesheets"`
	Scripts     []Script     `json:"scripts"`
	Videos      []Video      `json:"videos"`
	Fonts       []Font       `json:"fonts"`
}

// VisualReport is the visual-design analysis category.
type VisualReport struct {
	ExitPoints      []string `json:"exitPoints"`
	DesignIssues    []string `json:"designIssues"`
	Recommendations []string `json:"recommendations"`
}

// AssetReport is the asset analysis category.
type AssetReport struct {
	PerformanceIssues   []string `json:"performanceIssues"`
	AccessibilityIssues []string `json:"accessibilityIssues"`
	Recommendations     []string `json:"recommendations"`
}

// ContentReport is the content/SEO analysis category.
type ContentReport struct {
	SEOIssues       []string `json:"seoIssues"`
	ContentIssues   []string `json:"contentIssues"`
	Recommendations []string `json:"recommendations"`
}

// AnalysisResult holds the three fixed analysis categories. List order
// is parse order and stable.
type AnalysisResult struct {
	Visual  VisualReport  `json:"visual"`
	Assets  AssetReport   `json:"assets"`
	Content ContentReport `json:"content"`
}

// PageAnalysis is the complete audit of one page. All bounding boxes in
// Content, Assets, and Links share the coordinate space of Screenshot.
type PageAnalysis struct {
	URL        string         `json:"url"`
	Title      string         `json:"title"`
	Screenshot []byte         `json:"screenshot"` // PNG, base64 on the wire
	Content    PageContent    `json:"content"`
	Assets     Assets         `json:"assets"`
	Links      []Link         `json:"links"`
	Analysis   AnalysisResult `json:"analysis"`
}

// FullAnalysis is the response body of POST /analyze.
//
// AdditionalPages is a documented extension point for sibling-page
// analysis; the current pipeline never populates it.
type FullAnalysis struct {
	MainPage        PageAnalysis   `json:"mainPage"`
	AdditionalPages []PageAnalysis `json:"additionalPages"`
	AllLinks        []string       `json:"allLinks"`
}

// IssueCategory identifies which issue list a location request refers
// to. The set is closed; anything else resolves like CategoryOther.
type IssueCategory string

const (
	CategoryExitPoint     IssueCategory = "exit-point"
	CategoryDesignIssue   IssueCategory = "design-issue"
	CategoryPerformance   IssueCategory = "performance"
	CategoryAccessibility IssueCategory = "accessibility"
	CategorySEO           IssueCategory = "seo"
	CategoryContent       IssueCategory = "content"
	CategoryOther         IssueCategory = "other"
)
