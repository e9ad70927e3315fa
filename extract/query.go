package extract

import (
	"context"
	"math"

	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
)

// PageQuery is the in-page DOM querying capability the extractor runs
// on. Production uses a headless-browser driver; tests use an in-memory
// DOM fixture. The extractor itself never touches an automation engine.
type PageQuery interface {
	// QueryAll returns every element matching the CSS selector, in
	// document order, annotated with its bounding box in the captured
	// screenshot's coordinate space.
	QueryAll(ctx context.Context, selector string) ([]ElementInfo, error)
}

// ElementInfo is one matched element.
//
// Text is the element's visible text, trimmed, with block-level
// children on separate lines (both drivers derive it from the
// element's rendered text). Attrs holds the element's HTML attributes.
type ElementInfo struct {
	Tag   string
	Text  string
	Attrs map[string]string
	Box   models.BoundingBox
}

// Attr returns the named attribute or "".
func (e ElementInfo) Attr(name string) string {
	return e.Attrs[name]
}

// sanitizeBox forces the four fields to be finite and non-negative so
// every box the extractor emits is renderable over the screenshot.
func sanitizeBox(b models.BoundingBox) models.BoundingBox {
	fix := func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return 0
		}
		return v
	}
	return models.BoundingBox{
		X:      fix(b.X),
		Y:      fix(b.Y),
		Width:  fix(b.Width),
		Height: fix(b.Height),
	}
}
