package model

import "time"

// ChatResponse is the body returned by /api/chat. Successful replies carry
// Response; failures carry Error and, in development mode, Details.
type ChatResponse struct {
	Response string `json:"response,omitempty"`
	Cached   bool   `json:"cached,omitempty"`
	Error    string `json:"error,omitempty"`
	Details  string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Model     string    `json:"model,omitempty"`
}

type StatsResponse struct {
	APICalls    int        `json:"api_calls"`
	LastAPICall *time.Time `json:"last_api_call"`
}
