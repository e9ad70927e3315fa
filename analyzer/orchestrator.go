package analyzer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rohitmenonhart-xhunter/starweb-p1/llm"
	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
)

// ChatClient is the capability the orchestrator needs from the
// language-model service. *llm.Client implements it; tests substitute
// a fake.
type ChatClient interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
}

// Orchestrator issues the three category critiques — visual, assets,
// content — as independent model requests and parses each reply into
// its category report. Failure is local: a failed category degrades to
// a single synthetic error entry and never touches the other two.
type Orchestrator struct {
	client  ChatClient
	timeout time.Duration
}

// NewOrchestrator creates an Orchestrator around an injected client.
func NewOrchestrator(client ChatClient, timeout time.Duration) *Orchestrator {
	return &Orchestrator{client: client, timeout: timeout}
}

// Input carries everything the three category prompts draw from.
type Input struct {
	Screenshot []byte
	Content    *models.PageContent
	Assets     *models.Assets

	// Digest is an optional markdown rendition of the page body,
	// attached to the content prompt.
	Digest string
}

// Analyze runs the three category requests concurrently and assembles
// the result once all three have resolved. No partial result is ever
// returned; a timed-out or failed category arrives degraded, not
// missing.
func (o *Orchestrator) Analyze(ctx context.Context, in Input) models.AnalysisResult {
	var result models.AnalysisResult
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		result.Visual = o.analyzeVisual(ctx, in.Screenshot)
	}()
	go func() {
		defer wg.Done()
		result.Assets = o.analyzeAssets(ctx, in.Assets)
	}()
	go func() {
		defer wg.Done()
		result.Content = o.analyzeContent(ctx, in.Content, in.Digest)
	}()
	wg.Wait()

	return result
}

func (o *Orchestrator) analyzeVisual(ctx context.Context, screenshot []byte) models.VisualReport {
	text, err := o.complete(ctx, llm.Request{
		System:   visualSystemPrompt,
		User:     "Critique the visual design of this page.",
		ImagePNG: screenshot,
	})
	if err != nil {
		slog.Warn("visual analysis failed", "error", err)
		return models.VisualReport{
			ExitPoints:      []string{},
			DesignIssues:    []string{"Error analyzing visual design with AI"},
			Recommendations: []string{},
		}
	}

	sections := SplitSections(text, visualLabels)
	return models.VisualReport{
		ExitPoints:      sections[0],
		DesignIssues:    sections[1],
		Recommendations: sections[2],
	}
}

func (o *Orchestrator) analyzeAssets(ctx context.Context, assets *models.Assets) models.AssetReport {
	text, err := o.complete(ctx, llm.Request{
		System: assetSystemPrompt,
		User:   assetStats(assets),
	})
	if err != nil {
		slog.Warn("asset analysis failed", "error", err)
		return models.AssetReport{
			PerformanceIssues:   []string{"Error analyzing assets with AI"},
			AccessibilityIssues: []string{},
			Recommendations:     []string{},
		}
	}

	sections := SplitSections(text, assetLabels)
	return models.AssetReport{
		PerformanceIssues:   sections[0],
		AccessibilityIssues: sections[1],
		Recommendations:     sections[2],
	}
}

func (o *Orchestrator) analyzeContent(ctx context.Context, content *models.PageContent, digest string) models.ContentReport {
	user := contentStats(content)
	if digest != "" {
		user += "\nPage body as markdown:\n" + digest
	}

	text, err := o.complete(ctx, llm.Request{
		System: contentSystemPrompt,
		User:   user,
	})
	if err != nil {
		slog.Warn("content analysis failed", "error", err)
		return models.ContentReport{
			SEOIssues:       []string{"Error analyzing content with AI"},
			ContentIssues:   []string{},
			Recommendations: []string{},
		}
	}

	sections := SplitSections(text, contentLabels)
	return models.ContentReport{
		SEOIssues:       sections[0],
		ContentIssues:   sections[1],
		Recommendations: sections[2],
	}
}

// complete runs one request under the per-request deadline. No retry:
// a failed request is terminal for its category.
func (o *Orchestrator) complete(ctx context.Context, req llm.Request) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	return o.client.Complete(reqCtx, req)
}
