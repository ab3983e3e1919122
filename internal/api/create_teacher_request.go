package api

// swagger:model api.CreateTeacherRequest
type CreateTeacherRequest struct {
	Name       string `json:"name" validate:"required" example:"Bob"`
	Department string `json:"department" example:"Mathematics"`
}
