package grading

import (
	"reflect"
	"sort"
)

// ResolveCategory returns the fractional grade (1.0 == 100%) of `cat`.
// `all` holds the categories of the same course; `drop_with` indices point into it.
// When `cat` is one of `all`, it resolves exactly like CategoryGrade at its index.
func ResolveCategory(cat Category, all []Category) float64 {
	r := newResolver(all)
	if idx := indexOf(cat, all); idx >= 0 {
		return r.at(idx)
	}
	return r.resolve(cat, -1)
}

// indexOf returns the index of the first category of `all` equal to `cat`, or -1.
func indexOf(cat Category, all []Category) int {
	for i := range all {
		if reflect.DeepEqual(all[i], cat) {
			return i
		}
	}
	return -1
}

// CategoryGrade returns the fractional grade of categories[idx]; 0 for an invalid index.
func CategoryGrade(categories []Category, idx int) float64 {
	if idx < 0 || idx >= len(categories) {
		return 0
	}
	return newResolver(categories).at(idx)
}

// CategoryGrades resolves every category of a course, sharing replacement lookups.
func CategoryGrades(categories []Category) []float64 {
	r := newResolver(categories)
	grades := make([]float64, len(categories))
	for i := range categories {
		grades[i] = r.at(i)
	}
	return grades
}

// ResolveCourse returns the fractional grade of a course.
// Extra-credit categories add to the numerator only, so the result may exceed 1.0.
func ResolveCourse(course Course) float64 {
	if course.Manual {
		return course.Grade / 100
	}
	if len(course.Categories) == 0 {
		return 0
	}

	grades := CategoryGrades(course.Categories)
	var earned, weights float64
	for i, cat := range course.Categories {
		earned += cat.Weight * grades[i]
		if !cat.ExtraCredit {
			weights += cat.Weight
		}
	}
	if weights <= 0 {
		return 0
	}
	return earned / weights
}

// resolver computes the category grades of one course.
// Categories on a `drop_with` cycle (including self-references) ignore their replacement
// and drop completely, so results never depend on resolution order.
type resolver struct {
	categories []Category
	grades     map[int]float64
}

func newResolver(categories []Category) *resolver {
	return &resolver{
		categories: categories,
		grades:     make(map[int]float64, len(categories)),
	}
}

func (r *resolver) at(idx int) float64 {
	if grade, ok := r.grades[idx]; ok {
		return grade
	}
	grade := r.resolve(r.categories[idx], idx)
	r.grades[idx] = grade
	return grade
}

// resolve computes the grade of `cat`, located at index `self` (-1 when it is not part of the course).
func (r *resolver) resolve(cat Category, self int) float64 {
	if cat.Manual {
		return cat.Grade / 100
	}
	if len(cat.Assignments) == 0 {
		return 0
	}

	working := r.applyDropPolicy(cat, self)
	if len(working) == 0 {
		return 0
	}

	if cat.EvenlyWeighted {
		var sum float64
		for _, a := range working {
			sum += a.Percent()
		}
		return sum / float64(len(working))
	}

	var score, maxScore float64
	for _, a := range working {
		score += a.Score
		maxScore += a.MaxScore
	}
	if maxScore <= 0 {
		return 0
	}
	return score / maxScore
}

// applyDropPolicy returns the assignments to average: the lowest ones removed, or replaced
// by the replacement category's grade.
func (r *resolver) applyDropPolicy(cat Category, self int) []Assignment {
	policy := cat.DropPolicy
	if !policy.active(len(cat.Assignments)) {
		return cat.Assignments
	}

	order := make([]int, len(cat.Assignments))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return cat.Assignments[order[i]].Percent() < cat.Assignments[order[j]].Percent()
	})
	dropped := make(map[int]bool, policy.DropCount)
	for _, i := range order[:policy.DropCount] {
		dropped[i] = true
	}

	if with, ok := r.replacement(cat, self); ok && !r.onCycle(self) {
		grade := r.at(with)
		working := make([]Assignment, len(cat.Assignments))
		for i, a := range cat.Assignments {
			if dropped[i] {
				a.Score = grade * a.MaxScore
			}
			working[i] = a
		}
		return working
	}

	working := make([]Assignment, 0, len(cat.Assignments)-policy.DropCount)
	for i, a := range cat.Assignments {
		if !dropped[i] {
			working = append(working, a)
		}
	}
	return working
}

// replacement returns the valid `drop_with` index of `cat`.
func (r *resolver) replacement(cat Category, self int) (int, bool) {
	if cat.Manual || !cat.DropPolicy.active(len(cat.Assignments)) || cat.DropPolicy.DropWith == nil {
		return 0, false
	}
	with := *cat.DropPolicy.DropWith
	if with < 0 || with >= len(r.categories) || with == self {
		return 0, false
	}
	return with, true
}

// onCycle reports whether following replacements from categories[idx] leads back to it.
func (r *resolver) onCycle(idx int) bool {
	if idx < 0 {
		return false
	}
	next := idx
	for range r.categories {
		var ok bool
		if next, ok = r.replacement(r.categories[next], next); !ok {
			return false
		}
		if next == idx {
			return true
		}
	}
	return false
}
