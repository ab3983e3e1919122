// Package query implements the list-query contract shared by every listing
// endpoint: pagination, creation-time sorting and relation eager-loading.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Direction is the normalized sort direction applied to created_at.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Relation names a loadable related resource. Each resource declares the
// relations it can load; populate values outside that set are dropped.
type Relation string

const (
	RelationTeacher Relation = "teacher"
	RelationStudent Relation = "student"
	RelationCourses Relation = "courses"
)

// Capability tables: resource -> loadable relations.
var (
	CourseRelations  = NewCapabilities(RelationTeacher, RelationStudent)
	TeacherRelations = NewCapabilities(RelationCourses)
	StudentRelations = NewCapabilities(RelationCourses)
)

// Capabilities is the set of relations a resource can eager-load.
type Capabilities map[Relation]struct{}

func NewCapabilities(rels ...Relation) Capabilities {
	c := make(Capabilities, len(rels))
	for _, r := range rels {
		c[r] = struct{}{}
	}
	return c
}

// Options is the parsed form of page/limit/sort/populate.
type Options struct {
	Page    int
	Limit   int
	Sort    Direction
	Include []Relation
}

// Parse reads the list parameters from raw query values. Non-numeric or
// non-positive page/limit fall back to the defaults instead of failing, and
// populate is intersected with the resource's capability table.
func Parse(values url.Values, caps Capabilities) Options {
	opts := Options{
		Page:  positiveInt(values.Get("page"), DefaultPage),
		Limit: positiveInt(values.Get("limit"), DefaultLimit),
		Sort:  Desc,
	}
	if strings.EqualFold(values.Get("sort"), string(Asc)) {
		opts.Sort = Asc
	}
	if populate := values.Get("populate"); populate != "" {
		for _, name := range strings.Split(populate, ",") {
			rel := Relation(strings.ToLower(strings.TrimSpace(name)))
			if _, ok := caps[rel]; ok && !opts.Has(rel) {
				opts.Include = append(opts.Include, rel)
			}
		}
	}
	return opts
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Offset is the number of records skipped before the requested page.
func (o Options) Offset() int {
	return (o.Page - 1) * o.Limit
}

// Has reports whether the relation survived the capability intersection.
func (o Options) Has(rel Relation) bool {
	for _, r := range o.Include {
		if r == rel {
			return true
		}
	}
	return false
}

// Meta is the envelope header returned alongside every listing page.
type Meta struct {
	TotalItems int       `json:"totalItems"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
	Limit      int       `json:"limit"`
	Sort       Direction `json:"sort"`
}

// NewMeta computes the envelope header for a total of `total` records.
// TotalPages is ceil(total/limit), zero when the resource is empty.
func NewMeta(total int, o Options) Meta {
	return Meta{
		TotalItems: total,
		Page:       o.Page,
		TotalPages: (total + o.Limit - 1) / o.Limit,
		Limit:      o.Limit,
		Sort:       o.Sort,
	}
}
