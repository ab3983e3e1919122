package api

// UserIdentity is the public identity returned by register and login.
// swagger:model api.UserIdentity
type UserIdentity struct {
	ID    int    `json:"id" example:"1"`
	Email string `json:"email" example:"alice@example.com"`
}
