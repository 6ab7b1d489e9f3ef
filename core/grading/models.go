package grading

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
)

type Assignment struct {
	Score    float64 `json:"score" yaml:"score"`
	MaxScore float64 `json:"max_score" yaml:"max_score"`
}

// Percent is the fraction of the assignment earned; 0 when MaxScore is not positive.
func (a Assignment) Percent() float64 {
	if a.MaxScore <= 0 {
		return 0
	}
	return a.Score / a.MaxScore
}

// NewAssignment builds an Assignment from raw user input.
// Non-numeric input becomes 0 (score) or 1 (max score); max score is clamped to >= 1.
func NewAssignment(rawScore, rawMaxScore string) Assignment {
	maxScore := core.CoerceNumber(rawMaxScore, 1)
	if maxScore < 1 {
		maxScore = 1
	}
	return Assignment{
		Score:    core.CoerceNumber(rawScore, 0),
		MaxScore: maxScore,
	}
}

type DropPolicy struct {
	DropCount int  `json:"drop_count" yaml:"drop_count" validate:"min=0"`
	DropWith  *int `json:"drop_with,omitempty" yaml:"drop_with,omitempty"` // index of the replacement Category; nil drops completely
}

// active reports whether the policy applies to `n` assignments.
func (p *DropPolicy) active(n int) bool {
	return p != nil && p.DropCount > 0 && n > p.DropCount
}

type Category struct {
	Name           string       `json:"name" yaml:"name" validate:"notblank"`
	Weight         float64      `json:"weight" yaml:"weight" validate:"min=0"`
	EvenlyWeighted bool         `json:"evenly_weighted" yaml:"evenly_weighted"`
	DropPolicy     *DropPolicy  `json:"drop_policy,omitempty" yaml:"drop_policy,omitempty"`
	ExtraCredit    bool         `json:"extra_credit" yaml:"extra_credit"`
	Manual         bool         `json:"manual" yaml:"manual"`
	Grade          float64      `json:"grade" yaml:"grade"` // 0-100; authoritative only when Manual
	Assignments    []Assignment `json:"assignments,omitempty" yaml:"assignments,omitempty"`
}

func (cat Category) Clone() Category {
	if cat.DropPolicy != nil {
		p := *cat.DropPolicy
		if p.DropWith != nil {
			idx := *p.DropWith
			p.DropWith = &idx
		}
		cat.DropPolicy = &p
	}
	if cat.Assignments != nil {
		cat.Assignments = append(make([]Assignment, 0, len(cat.Assignments)), cat.Assignments...)
	}
	return cat
}

type Course struct {
	Name            string     `json:"name" yaml:"name" validate:"notblank"`
	Credits         float64    `json:"credits" yaml:"credits" validate:"min=0"`
	Manual          bool       `json:"manual" yaml:"manual"`
	Grade           float64    `json:"grade" yaml:"grade"` // 0-100; authoritative only when Manual
	GPA             *float64   `json:"gpa,omitempty" yaml:"gpa,omitempty"`
	FromExtraCredit float64    `json:"from_extra_credit" yaml:"from_extra_credit"`
	PartOfDegree    bool       `json:"part_of_degree" yaml:"part_of_degree"`
	Categories      []Category `json:"categories,omitempty" yaml:"categories,omitempty" validate:"dive"`
}

func (c Course) Clone() Course {
	if c.GPA != nil {
		gpa := *c.GPA
		c.GPA = &gpa
	}
	if c.Categories != nil {
		cats := make([]Category, 0, len(c.Categories))
		for _, cat := range c.Categories {
			cats = append(cats, cat.Clone())
		}
		c.Categories = cats
	}
	return c
}

// WeightTotal sums the weights of the non extra-credit categories.
func (c Course) WeightTotal() float64 {
	var total float64
	for _, cat := range c.Categories {
		if !cat.ExtraCredit {
			total += cat.Weight
		}
	}
	return total
}

// HasWeightWarning reports a calculated course whose regular weights do not add up to 100.
func (c Course) HasWeightWarning() bool {
	return !c.Manual && len(c.Categories) > 0 && c.WeightTotal() != 100
}

type GradingPeriod struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Name        string    `json:"name"`
	IsCompleted bool      `json:"is_completed"`
	Courses     []Course  `json:"courses"`
	Grade       float64   `json:"grade"`
	CoreGrade   *float64  `json:"core_grade,omitempty"`
	GPA         *float64  `json:"gpa,omitempty"`
	CoreGPA     *float64  `json:"core_gpa,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

func (gp GradingPeriod) Clone() GradingPeriod {
	courses := make([]Course, 0, len(gp.Courses))
	for _, c := range gp.Courses {
		courses = append(courses, c.Clone())
	}
	gp.Courses = courses
	gp.CoreGrade = clonePtr(gp.CoreGrade)
	gp.GPA = clonePtr(gp.GPA)
	gp.CoreGPA = clonePtr(gp.CoreGPA)
	return gp
}

// TotalCredits sums the credits of all (or only core) courses, graded or not.
func (gp GradingPeriod) TotalCredits(coreOnly bool) float64 {
	var total float64
	for _, c := range gp.Courses {
		if !coreOnly || c.PartOfDegree {
			total += c.Credits
		}
	}
	return total
}

func (gp GradingPeriod) validCourseIndex(idx int) bool {
	return idx >= 0 && idx < len(gp.Courses)
}

// NewGradingPeriod contains information needed to create a new GradingPeriod.
type NewGradingPeriod struct {
	Name        string   `json:"name" validate:"notblank"`
	IsCompleted bool     `json:"is_completed"`
	Courses     []Course `json:"courses" validate:"dive"`
}

func (ngp *NewGradingPeriod) Validate(validate *validator.Validate) error {
	ngp.Name = core.CleanString(ngp.Name)
	return validate.Struct(ngp)
}

// UpdateGradingPeriod defines what information may be provided to modify an existing GradingPeriod.
type UpdateGradingPeriod struct {
	Name        *string  `json:"name" validate:"omitempty,notblank"`
	IsCompleted *bool    `json:"is_completed"`
	Courses     []Course `json:"courses" validate:"omitempty,dive"`
}

func (ugp *UpdateGradingPeriod) Validate(validate *validator.Validate) error {
	if ugp.Name != nil {
		name := core.CleanString(*ugp.Name)
		ugp.Name = &name
	}
	return validate.Struct(ugp)
}

// ValidateCourse cleans up and validates a Course sent by a client.
func ValidateCourse(validate *validator.Validate, c *Course) error {
	c.Name = core.CleanString(c.Name)
	for i := range c.Categories {
		c.Categories[i].Name = core.CleanString(c.Categories[i].Name)
	}
	return validate.Struct(c)
}

func clonePtr(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
