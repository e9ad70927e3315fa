package models

import "testing"

func TestAnalyzeRequest_ValidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"https", "https://example.com", true},
		{"http", "http://example.com", true},
		{"with path", "https://example.com/deep/page?q=1", true},
		{"leading whitespace", "  https://example.com", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"no scheme", "example.com", false},
		{"ftp", "ftp://example.com", false},
		{"javascript", "javascript:alert(1)", false},
		{"file", "file:///etc/passwd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := AnalyzeRequest{URL: tt.url}
			if got := r.ValidURL(); got != tt.want {
				t.Errorf("ValidURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
