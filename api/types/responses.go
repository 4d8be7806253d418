package types

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// SubscriptionResponse wraps a single subscription
type SubscriptionResponse struct {
	BaseResponse
	Data *Subscription `json:"data"`
}

// SubscriptionsResponse is a page of subscriptions
type SubscriptionsResponse struct {
	BaseResponse
	Data  []Subscription `json:"data"`
	Count int            `json:"count"` // Number of results in this response
	Total int64          `json:"total"` // Total matching subscriptions
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ProfilesResponse lists quality profiles
type ProfilesResponse struct {
	BaseResponse
	Data  []Profile `json:"data"`
	Count int       `json:"count"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`   // Error code, e.g. ALREADY_SUBSCRIBED
	Details any    `json:"details,omitempty"` // Additional error details
}

// ComponentStatus is the health of one dependency
type ComponentStatus struct {
	Status  string `json:"status" example:"healthy"` // healthy, unhealthy or not configured
	Error   string `json:"error,omitempty"`
	Version string `json:"version,omitempty"`
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	Status     string          `json:"status" example:"ok"`
	Timestamp  string          `json:"timestamp"`
	Database   ComponentStatus `json:"database"`
	Downloader ComponentStatus `json:"downloader"`
}

// VersionResponse describes the running build
type VersionResponse struct {
	Name      string `json:"name" example:"subarr"`
	Version   string `json:"version" example:"1.0.0"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Status    string `json:"status" example:"running"`
}
