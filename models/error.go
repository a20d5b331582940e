package models

// ErrorMessageResponse is the error body returned by the registry API
type ErrorMessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// HealthCheckResponse is the body of the health check endpoint
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
