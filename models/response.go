package models

// ErrorResponse is the flat error body used by the analyze endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SolutionResponse is the body for POST /api/generate-solution.
// The endpoint always answers 200 with a solution; AI failures degrade
// to a static fallback string instead of surfacing an error.
type SolutionResponse struct {
	Solution string `json:"solution"`
}

// LocateResponse is the body for POST /api/locate-issue.
// Found false means "no location" — an expected resolver outcome the
// caller renders as a generic indicator, not an error.
type LocateResponse struct {
	Found    bool         `json:"found"`
	Location *BoundingBox `json:"location,omitempty"`
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Status    string    `json:"status"` // "healthy" or "degraded"
	Uptime    string    `json:"uptime"`
	PoolStats PoolStats `json:"pool_stats"`
	Version   string    `json:"version"`
}

// PoolStats reports the state of the browser page pool.
type PoolStats struct {
	MaxPages    int `json:"max_pages"`
	ActivePages int `json:"active_pages"`
}
