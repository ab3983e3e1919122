package api

// swagger:model api.CreateStudentRequest
type CreateStudentRequest struct {
	Name  string `json:"name" validate:"required" example:"Ana"`
	Email string `json:"email" validate:"required,email" example:"ana@x.com"`
}
