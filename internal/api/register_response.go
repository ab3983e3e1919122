package api

// swagger:model api.RegisterResponse
type RegisterResponse struct {
	Message string       `json:"message" example:"user registered"`
	User    UserIdentity `json:"user"`
}
