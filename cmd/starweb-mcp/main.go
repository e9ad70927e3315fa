// starweb-mcp bridges the starweb HTTP API to MCP clients over stdio.
// It exposes two tools: analyze_page and generate_solution.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// analyzeRequest mirrors the starweb API request model.
type analyzeRequest struct {
	URL string `json:"url"`
}

// analyzeResponse captures the parts of a FullAnalysis worth relaying
// to an MCP client. The screenshot blob is intentionally omitted.
type analyzeResponse struct {
	MainPage struct {
		URL      string `json:"url"`
		Title    string `json:"title"`
		Analysis struct {
			Visual struct {
				ExitPoints      []string `json:"exitPoints"`
				DesignIssues    []string `json:"designIssues"`
				Recommendations []string `json:"recommendations"`
			} `json:"visual"`
			Assets struct {
				PerformanceIssues   []string `json:"performanceIssues"`
				AccessibilityIssues []string `json:"accessibilityIssues"`
				Recommendations     []string `json:"recommendations"`
			} `json:"assets"`
			Content struct {
				SEOIssues       []string `json:"seoIssues"`
				ContentIssues   []string `json:"contentIssues"`
				Recommendations []string `json:"recommendations"`
			} `json:"content"`
		} `json:"analysis"`
	} `json:"mainPage"`
	AllLinks []string `json:"allLinks"`
	Error    string   `json:"error"`
}

// solutionRequest mirrors the starweb API solution request.
type solutionRequest struct {
	Issue string `json:"issue"`
}

// solutionResponse mirrors the starweb API solution response.
type solutionResponse struct {
	Solution string `json:"solution"`
	Error    string `json:"error"`
}

func main() {
	apiURL := os.Getenv("STARWEB_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("STARWEB_API_KEY")

	s := server.NewMCPServer(
		"starweb",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	analyzeTool := mcp.NewTool("analyze_page",
		mcp.WithDescription("Audit a web page's UX, SEO and performance. Renders the page in a headless browser, extracts its structure, and returns categorized issue and recommendation lists."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the page to audit (http:// or https://)"),
		),
	)
	s.AddTool(analyzeTool, handleAnalyzePage(apiURL, apiKey))

	solutionTool := mcp.NewTool("generate_solution",
		mcp.WithDescription("Generate a short, actionable fix suggestion for one reported website issue."),
		mcp.WithString("issue",
			mcp.Required(),
			mcp.Description("The issue text to generate a fix for"),
		),
	)
	s.AddTool(solutionTool, handleGenerateSolution(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// postJSON sends one authenticated POST to the starweb API.
func postJSON(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload any) ([]byte, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

func handleAnalyzePage(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 180 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		respBody, status, err := postJSON(ctx, client, apiURL, apiKey, "/analyze", analyzeRequest{URL: url})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var analysis analyzeResponse
		if err := json.Unmarshal(respBody, &analysis); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if status != http.StatusOK {
			msg := analysis.Error
			if msg == "" {
				msg = fmt.Sprintf("analysis failed with status %d", status)
			}
			return mcp.NewToolResultError(msg), nil
		}

		return mcp.NewToolResultText(renderAnalysis(&analysis)), nil
	}
}

func handleGenerateSolution(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 60 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issue, err := request.RequireString("issue")
		if err != nil {
			return mcp.NewToolResultError("issue is required"), nil
		}

		respBody, status, err := postJSON(ctx, client, apiURL, apiKey, "/api/generate-solution", solutionRequest{Issue: issue})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var sol solutionResponse
		if err := json.Unmarshal(respBody, &sol); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if status != http.StatusOK {
			msg := sol.Error
			if msg == "" {
				msg = fmt.Sprintf("solution generation failed with status %d", status)
			}
			return mcp.NewToolResultError(msg), nil
		}

		return mcp.NewToolResultText(sol.Solution), nil
	}
}

// renderAnalysis flattens the categorized lists into readable text for
// the MCP client.
func renderAnalysis(a *analyzeResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Audit of %s (%q)\n", a.MainPage.URL, a.MainPage.Title)

	section := func(name string, lines []string) {
		if len(lines) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s:\n", name)
		for _, l := range lines {
			fmt.Fprintf(&b, "- %s\n", l)
		}
	}

	v := a.MainPage.Analysis.Visual
	section("Exit points", v.ExitPoints)
	section("Design issues", v.DesignIssues)
	section("Visual recommendations", v.Recommendations)

	as := a.MainPage.Analysis.Assets
	section("Performance issues", as.PerformanceIssues)
	section("Accessibility issues", as.AccessibilityIssues)
	section("Asset recommendations", as.Recommendations)

	ct := a.MainPage.Analysis.Content
	section("SEO issues", ct.SEOIssues)
	section("Content issues", ct.ContentIssues)
	section("Content recommendations", ct.Recommendations)

	fmt.Fprintf(&b, "\nSame-site links discovered: %d\n", len(a.AllLinks))
	return b.String()
}
