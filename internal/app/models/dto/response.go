package dto

// SuccessResponse represents a confirmation message for mutating endpoints
type SuccessResponse struct {
	Message string `json:"message" example:"student registered successfully"`
}

// APIResponse is the standard response envelope for API endpoints
type APIResponse struct {
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}
