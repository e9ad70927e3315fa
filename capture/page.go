package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/rohitmenonhart-xhunter/starweb-p1/extract"
	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
)

// Page is a navigated, scrolled page, valid only inside the WithPage
// callback.
type Page struct {
	p        *rod.Page
	url      string
	finalURL string
	status   int
}

// FinalURL is the URL after redirects.
func (cp *Page) FinalURL() string { return cp.finalURL }

// StatusCode is the HTTP status of the navigation, 0 when the page
// exposes no navigation timing entry.
func (cp *Page) StatusCode() int { return cp.status }

// Title returns document.title.
func (cp *Page) Title() string {
	return evalStringOrEmpty(cp.p, `() => document.title`)
}

// HTML returns the rendered page HTML.
func (cp *Page) HTML() (string, error) {
	return cp.p.HTML()
}

// Query exposes the page to the extractor as a PageQuery capability.
func (cp *Page) Query() extract.PageQuery {
	return &rodQuery{p: cp.p}
}

// Screenshot captures one full-page PNG after the scroll sweep.
func (cp *Page) Screenshot() ([]byte, error) {
	shot, err := cp.p.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, categorizeError(err, "failed to capture screenshot")
	}
	return shot, nil
}

// WithPage opens an isolated page for url, prepares it (viewport,
// navigation, bounded network wait, auto-scroll sweep), runs fn, and
// releases the page on every exit path.
//
// Lifecycle (numbered steps match the inline comments):
//
//  1. Timeout guard     – hard deadline on the entire operation
//  2. Preflight         – cheap reachability check before browser work
//  3. Acquire page      – borrow a tab from the pool (or create one)
//  4. DEFER: cleanup    – about:blank + return to pool (leak prevention)
//  5. Stealth injection – mask navigator.webdriver etc. (before navigation!)
//  6. Viewport          – fixed emulated viewport
//  7. Context binding   – propagate timeout to all Rod operations
//  8. Navigate + wait   – page load, bounded DOM-stable wait
//  9. Status check      – non-success HTTP status is a NavigationFailure
//  10. Scroll sweep     – bounded auto-scroll, back to top
//  11. fn               – caller captures screenshot and extracts
//
// Step 4's about:blank uses the ORIGINAL page reference (without the
// request context), so cleanup succeeds even after the deadline fired.
func (c *Capturer) WithPage(ctx context.Context, url string, fn func(*Page) error) error {
	// ── 1. Timeout guard ────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(ctx, c.captureCfg.MaxTimeout)
	defer cancel()

	// ── 2. Preflight ────────────────────────────────────────────────
	if c.preflight != nil {
		if err := c.preflight.check(ctx, url); err != nil {
			return err
		}
	}

	// ── 3. Acquire page from pool ───────────────────────────────────
	c.activePages.Add(1)
	defer c.activePages.Add(-1)

	page, acquireErr := c.pagePool.Get(func() (*rod.Page, error) {
		return c.browser.Page(proto.TargetCreateTarget{})
	})
	if acquireErr != nil {
		return models.NewAuditError(
			models.ErrCodeBrowserCrash,
			"failed to acquire page from pool",
			acquireErr,
		)
	}

	// ── 4. CRITICAL DEFER: prevent DOM memory leak + guarantee pool return
	defer func() {
		if navErr := page.Navigate("about:blank"); navErr != nil {
			slog.Warn("cleanup: failed to navigate to about:blank", "error", navErr)
		}
		c.pagePool.Put(page)
	}()

	// ── 5. Stealth injection ────────────────────────────────────────
	if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
		slog.Warn("stealth injection failed, proceeding without stealth", "error", evalErr)
	}

	// ── 6. Fixed viewport ───────────────────────────────────────────
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             c.captureCfg.ViewportWidth,
		Height:            c.captureCfg.ViewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return models.NewAuditError(models.ErrCodeBrowserCrash, "failed to set viewport", err)
	}

	// ── 7. Bind request context to page ─────────────────────────────
	p := page.Context(ctx)

	// ── 8. Navigate + bounded wait ──────────────────────────────────
	if navErr := p.Navigate(url); navErr != nil {
		return categorizeError(navErr, "navigation to target URL failed")
	}
	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM", "error", stableErr)
	}

	// ── 9. Status check via navigation timing (no CDP listeners) ────
	status := navigationStatus(p)
	if status >= 400 {
		return models.NewAuditError(
			models.ErrCodeNavigation,
			fmt.Sprintf("target returned HTTP %d", status),
			nil,
		)
	}

	// ── 10. Auto-scroll sweep, then back to top ─────────────────────
	if err := autoScroll(ctx, p, c.captureCfg.ScrollStep, c.captureCfg.ScrollInterval); err != nil {
		return err
	}

	// ── 11. Hand the prepared page to the caller ────────────────────
	cp := &Page{p: p, url: url, status: status}
	cp.finalURL = evalStringOrEmpty(p, `() => window.location.href`)
	if cp.finalURL == "" {
		cp.finalURL = url
	}

	return fn(cp)
}

// navigationStatus reads the HTTP status from
// performance.getEntriesByType("navigation"), which is available
// without any event listeners. 0 means the entry is missing.
func navigationStatus(p *rod.Page) int {
	res, err := p.Eval(`() => {
		try {
			const entries = performance.getEntriesByType("navigation");
			if (entries.length > 0) return entries[0].responseStatus || 0;
		} catch(e) {}
		return 0;
	}`)
	if err != nil {
		return 0
	}
	return res.Value.Int()
}

// evalStringOrEmpty evaluates a JS expression and returns the string
// result, swallowing any errors (useful for optional metadata).
func evalStringOrEmpty(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// categorizeError wraps raw errors into typed AuditErrors so the API
// layer can map them to appropriate HTTP status codes.
func categorizeError(err error, msg string) *models.AuditError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewAuditError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewAuditError(models.ErrCodeTimeout, "request canceled", err)
	default:
		return models.NewAuditError(models.ErrCodeNavigation, msg, err)
	}
}
