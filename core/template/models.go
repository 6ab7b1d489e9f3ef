package template

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
)

// Template is a published set of course categories that other users can import.
type Template struct {
	ID            string             `json:"id"`
	University    string             `json:"university"`
	CourseCode    string             `json:"course_code"`
	CourseTitle   string             `json:"course_title"`
	Instructor    string             `json:"instructor,omitempty"`
	Categories    []grading.Category `json:"categories"`
	Public        bool               `json:"public"`
	DownloadCount int                `json:"download_count"`
	CreatedAt     time.Time          `json:"created_at"` // UTC
	CreatedBy     string             `json:"created_by"`
}

// NewTemplate contains information needed to publish a Template.
type NewTemplate struct {
	University  string             `json:"university" validate:"notblank"`
	CourseCode  string             `json:"course_code" validate:"notblank"`
	CourseTitle string             `json:"course_title" validate:"notblank"`
	Instructor  string             `json:"instructor"`
	Categories  []grading.Category `json:"categories" validate:"required,min=1,dive"`
	Private     bool               `json:"private"`
}

func (nt *NewTemplate) Validate(validate *validator.Validate) error {
	nt.University = core.CleanString(nt.University)
	nt.CourseCode = core.CleanString(nt.CourseCode)
	nt.CourseTitle = core.CleanString(nt.CourseTitle)
	nt.Instructor = core.CleanString(nt.Instructor)
	return validate.Struct(nt)
}

// SearchFilter holds the params of a template search.
// Query does a case-insensitive match on one of CourseCode, CourseTitle or Instructor;
// University does a case-insensitive substring match.
type SearchFilter struct {
	Query      string `json:"query" query:"query"`
	University string `json:"university" query:"university"`
	core.PageRequest
}

type Page struct {
	Data       []Template      `json:"data"`
	Pagination core.Pagination `json:"pagination"`
}
