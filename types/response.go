package types

import "time"

// ApiResponse is the JSON envelope for staff/admin endpoints.
type ApiResponse struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Data    interface{} `json:"data,omitempty"`
}

// LogEntry represents a request log entry to be stored in the database
type LogEntry struct {
	ID           uint
	Method       string
	URL          string
	RequestBody  string
	ResponseBody string
	StatusCode   int
	CreatedAt    time.Time
}
