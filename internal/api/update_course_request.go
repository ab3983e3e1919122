package api

// UpdateCourseRequest carries a partial update: nil fields keep the stored
// value.
// swagger:model api.UpdateCourseRequest
type UpdateCourseRequest struct {
	Title       *string `json:"title" example:"Algebra II"`
	Description *string `json:"description" example:"Second-year algebra"`
	TeacherID   *int    `json:"TeacherId" example:"2"`
}
