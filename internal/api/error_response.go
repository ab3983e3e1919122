package api

// ErrorResponse is the uniform error body: {"message": "..."}.
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Message string `json:"message"`
}
