package api

// UpdateTeacherRequest carries a partial update: nil fields keep the stored
// value.
// swagger:model api.UpdateTeacherRequest
type UpdateTeacherRequest struct {
	Name       *string `json:"name" example:"Bob"`
	Department *string `json:"department" example:"Physics"`
}
