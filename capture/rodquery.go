package capture

import (
	"context"

	"github.com/go-rod/rod"
	"github.com/ysmood/gson"

	"github.com/rohitmenonhart-xhunter/starweb-p1/extract"
	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
)

// queryAllJS collects every element matching a selector with its
// attributes and document-space bounding box in one round trip.
// Box coordinates add the scroll offset so they live in the same
// coordinate space as the full-page screenshot. For images the natural
// dimensions override the attribute values; for videos currentSrc
// backfills a missing src.
const queryAllJS = `(sel) => {
	const out = [];
	const sx = window.scrollX, sy = window.scrollY;
	for (const el of document.querySelectorAll(sel)) {
		const rect = el.getBoundingClientRect();
		const attrs = {};
		for (const a of el.attributes) attrs[a.name] = a.value;
		if (el.tagName === 'IMG') {
			attrs['width'] = String(el.naturalWidth || el.width || 0);
			attrs['height'] = String(el.naturalHeight || el.height || 0);
		}
		if (el.tagName === 'VIDEO' && !attrs['src'] && el.currentSrc) {
			attrs['src'] = el.currentSrc;
		}
		out.push({
			tag: el.tagName.toLowerCase(),
			text: (el.innerText || el.textContent || '').trim(),
			attrs: attrs,
			x: rect.left + sx,
			y: rect.top + sy,
			width: rect.width,
			height: rect.height,
		});
	}
	return out;
}`

// rodQuery implements extract.PageQuery against a live rod page.
type rodQuery struct {
	p *rod.Page
}

func (q *rodQuery) QueryAll(ctx context.Context, selector string) ([]extract.ElementInfo, error) {
	res, err := q.p.Context(ctx).Eval(queryAllJS, selector)
	if err != nil {
		return nil, err
	}

	arr := res.Value.Arr()
	out := make([]extract.ElementInfo, 0, len(arr))
	for _, item := range arr {
		out = append(out, decodeElement(item))
	}
	return out, nil
}

func decodeElement(item gson.JSON) extract.ElementInfo {
	attrs := make(map[string]string)
	for name, val := range item.Get("attrs").Map() {
		attrs[name] = val.Str()
	}
	return extract.ElementInfo{
		Tag:   item.Get("tag").Str(),
		Text:  item.Get("text").Str(),
		Attrs: attrs,
		Box: models.BoundingBox{
			X:      item.Get("x").Num(),
			Y:      item.Get("y").Num(),
			Width:  item.Get("width").Num(),
			Height: item.Get("height").Num(),
		},
	}
}
