package api

import "school-api/internal/query"

// ListResponse is the {meta, data} envelope returned by listing endpoints.
// swagger:model api.ListResponse
type ListResponse struct {
	Meta query.Meta `json:"meta"`
	Data any        `json:"data"`
}
