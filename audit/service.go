// Package audit wires the capture → extract → analyze pipeline into a
// single Analyze operation. Everything it produces lives only for the
// duration of one request.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/rohitmenonhart-xhunter/starweb-p1/analyzer"
	"github.com/rohitmenonhart-xhunter/starweb-p1/capture"
	"github.com/rohitmenonhart-xhunter/starweb-p1/extract"
	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
)

// Service runs the full audit pipeline for one URL at a time.
type Service struct {
	capturer  *capture.Capturer
	extractor *extract.Extractor

	// orchestrator is nil when no AI credential is configured; the
	// heuristic analyzer then produces the whole AnalysisResult. This
	// keeps the product usable without the external dependency.
	orchestrator *analyzer.Orchestrator
}

// NewService creates the pipeline. Pass a nil orchestrator to run in
// heuristic-only mode.
func NewService(capturer *capture.Capturer, extractor *extract.Extractor, orchestrator *analyzer.Orchestrator) *Service {
	return &Service{
		capturer:     capturer,
		extractor:    extractor,
		orchestrator: orchestrator,
	}
}

// Analyze captures, extracts, and analyzes one page.
//
// The browser page is held only for capture + extraction; analysis runs
// on the extracted snapshot after the page is released.
func (s *Service) Analyze(ctx context.Context, url string) (*models.FullAnalysis, error) {
	var (
		screenshot []byte
		title      string
		finalURL   string
		rawHTML    string
		extraction *extract.Extraction
	)

	captureStart := time.Now()
	err := s.capturer.WithPage(ctx, url, func(cp *capture.Page) error {
		shot, err := cp.Screenshot()
		if err != nil {
			return err
		}
		screenshot = shot
		title = cp.Title()
		finalURL = cp.FinalURL()

		if html, err := cp.HTML(); err == nil {
			rawHTML = html
		}

		extraction = s.extractor.Extract(ctx, cp.Query(), finalURL)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("page captured",
		"url", url,
		"finalURL", finalURL,
		"durationMs", time.Since(captureStart).Milliseconds(),
		"links", len(extraction.Links),
		"images", len(extraction.Assets.Images),
	)

	var analysis models.AnalysisResult
	if s.orchestrator != nil {
		analysis = s.orchestrator.Analyze(ctx, analyzer.Input{
			Screenshot: screenshot,
			Content:    &extraction.Content,
			Assets:     &extraction.Assets,
			Digest:     analyzer.ContentDigest(rawHTML, finalURL),
		})
	} else {
		analysis = analyzer.Heuristic(&extraction.Content, &extraction.Assets)
	}

	if title == "" {
		title = extraction.Content.Metadata.Title
	}

	return &models.FullAnalysis{
		MainPage: models.PageAnalysis{
			URL:        url,
			Title:      title,
			Screenshot: screenshot,
			Content:    extraction.Content,
			Assets:     extraction.Assets,
			Links:      extraction.Links,
			Analysis:   analysis,
		},
		// Sibling-page analysis is an extension point; the pipeline
		// audits exactly one page per request.
		AdditionalPages: []models.PageAnalysis{},
		AllLinks:        extraction.SiteLinks,
	}, nil
}
