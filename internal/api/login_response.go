package api

// swagger:model api.LoginResponse
type LoginResponse struct {
	Token string       `json:"token" example:"eyJhbGciOi..."`
	User  UserIdentity `json:"user"`
}
