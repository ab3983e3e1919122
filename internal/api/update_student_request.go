package api

// UpdateStudentRequest carries a partial update: nil fields keep the stored
// value.
// swagger:model api.UpdateStudentRequest
type UpdateStudentRequest struct {
	Name  *string `json:"name" example:"Ana"`
	Email *string `json:"email" validate:"omitempty,email" example:"ana@x.com"`
}
