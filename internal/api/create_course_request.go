package api

// swagger:model api.CreateCourseRequest
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required" example:"Algebra I"`
	Description string `json:"description" example:"Introductory algebra"`
	TeacherID   int    `json:"TeacherId" validate:"required" example:"1"`
}
