package grading

// WhatIf pairs a committed course with a draft copy that can be edited freely.
// Every edit returns a new WhatIf; Live is never modified.
type WhatIf struct {
	Live  Course
	Draft Course
}

func NewWhatIf(live Course) WhatIf {
	return WhatIf{Live: live.Clone(), Draft: live.Clone()}
}

// WithDraft replaces the draft, e.g. with one sent by a client.
func (w WhatIf) WithDraft(draft Course) WhatIf {
	return WhatIf{Live: w.Live, Draft: draft.Clone()}
}

func (w WhatIf) edit(fn func(draft *Course) error) (WhatIf, error) {
	draft := w.Draft.Clone()
	if err := fn(&draft); err != nil {
		return w, err
	}
	return WhatIf{Live: w.Live, Draft: draft}, nil
}

func (w WhatIf) SetAssignment(catIdx, idx int, a Assignment) (WhatIf, error) {
	return w.edit(func(draft *Course) error { return draft.SetAssignment(catIdx, idx, a) })
}

func (w WhatIf) AddAssignment(catIdx int, a Assignment) (WhatIf, error) {
	return w.edit(func(draft *Course) error {
		_, err := draft.AddAssignment(catIdx, a)
		return err
	})
}

func (w WhatIf) RemoveAssignment(catIdx, idx int) (WhatIf, error) {
	return w.edit(func(draft *Course) error { return draft.RemoveAssignment(catIdx, idx) })
}

func (w WhatIf) AddCategory(cat Category) WhatIf {
	nw, _ := w.edit(func(draft *Course) error {
		draft.AddCategory(cat)
		return nil
	})
	return nw
}

func (w WhatIf) UpdateCategory(idx int, cat Category) (WhatIf, error) {
	return w.edit(func(draft *Course) error { return draft.UpdateCategory(idx, cat) })
}

func (w WhatIf) RemoveCategory(idx int) (WhatIf, error) {
	return w.edit(func(draft *Course) error { return draft.RemoveCategory(idx) })
}

func (w WhatIf) SetManualGrade(catIdx int, grade float64) (WhatIf, error) {
	return w.edit(func(draft *Course) error { return draft.SetManualGrade(catIdx, grade) })
}

// CategoryDiff compares one draft category with the live category at the same index.
// Actual and Difference are nil for categories that only exist in the draft.
type CategoryDiff struct {
	Index      int      `json:"index"`
	Name       string   `json:"name"`
	Weight     float64  `json:"weight"`
	Actual     *float64 `json:"actual"`
	Simulated  float64  `json:"simulated"`
	Difference *float64 `json:"difference"`
}

// CourseDiff holds percentages (0-100) of the live and the draft course.
type CourseDiff struct {
	Actual     float64        `json:"actual"`
	Simulated  float64        `json:"simulated"`
	Difference float64        `json:"difference"`
	Categories []CategoryDiff `json:"categories"`
}

// Diff compares the draft against the live course; differences are simulated - actual.
func (w WhatIf) Diff() CourseDiff {
	actual := CategoryGrades(w.Live.Categories)
	simulated := CategoryGrades(w.Draft.Categories)

	diff := CourseDiff{
		Actual:     ResolveCourse(w.Live) * 100,
		Simulated:  ResolveCourse(w.Draft) * 100,
		Categories: make([]CategoryDiff, 0, len(w.Draft.Categories)),
	}
	diff.Difference = diff.Simulated - diff.Actual

	for i, cat := range w.Draft.Categories {
		cd := CategoryDiff{
			Index:     i,
			Name:      cat.Name,
			Weight:    cat.Weight,
			Simulated: simulated[i] * 100,
		}
		if i < len(actual) {
			a := actual[i] * 100
			d := cd.Simulated - a
			cd.Actual = &a
			cd.Difference = &d
		}
		diff.Categories = append(diff.Categories, cd)
	}
	return diff
}

// Commit returns the normalized draft, ready to replace the live course.
func (w WhatIf) Commit(scale Scale) Course {
	return NormalizeCourse(w.Draft, scale)
}
