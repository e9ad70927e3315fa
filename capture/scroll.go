package capture

import (
	"context"
	"time"

	"github.com/go-rod/rod"
)

// sweepOffsets plans the auto-scroll sweep: fixed-step offsets from the
// top to the scroll height recorded at sweep start, ending with the
// height itself. Bounding the sweep by the initial height guarantees
// termination even on infinite-scroll pages that keep growing.
func sweepOffsets(step, height int) []int {
	if step <= 0 || height <= 0 {
		return nil
	}
	offsets := make([]int, 0, height/step+1)
	for pos := step; pos < height; pos += step {
		offsets = append(offsets, pos)
	}
	offsets = append(offsets, height)
	return offsets
}

// autoScroll performs the bounded scroll sweep so lazy-loaded content
// renders before the screenshot, then returns to the top.
func autoScroll(ctx context.Context, p *rod.Page, step int, interval time.Duration) error {
	res, err := p.Eval(`() => document.documentElement.scrollHeight`)
	if err != nil {
		// A page without a measurable height still screenshots fine.
		return nil
	}
	height := res.Value.Int()

	for _, pos := range sweepOffsets(step, height) {
		if _, err := p.Eval(`(y) => window.scrollTo(0, y)`, pos); err != nil {
			return categorizeError(err, "scroll sweep failed")
		}
		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return categorizeError(ctx.Err(), "scroll sweep interrupted")
		}
	}

	if _, err := p.Eval(`() => window.scrollTo(0, 0)`); err != nil {
		return categorizeError(err, "scroll reset failed")
	}
	return nil
}
