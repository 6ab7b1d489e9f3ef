package grading

import "github.com/trezcool/gradebook/core"

var (
	ErrCategoryNotFound   = core.NewNotFoundError("category")
	ErrAssignmentNotFound = core.NewNotFoundError("assignment")
)

func (c *Course) category(idx int) (*Category, error) {
	if idx < 0 || idx >= len(c.Categories) {
		return nil, ErrCategoryNotFound
	}
	return &c.Categories[idx], nil
}

// AddCategory appends a category; a calculated category without assignments is seeded with a 0/100 one.
func (c *Course) AddCategory(cat Category) int {
	cat = cat.Clone()
	if !cat.Manual && len(cat.Assignments) == 0 {
		cat.Assignments = []Assignment{{Score: 0, MaxScore: 100}}
	}
	c.Categories = append(c.Categories, cat)
	return len(c.Categories) - 1
}

func (c *Course) UpdateCategory(idx int, cat Category) error {
	if _, err := c.category(idx); err != nil {
		return err
	}
	c.Categories[idx] = cat.Clone()
	return nil
}

// RemoveCategory splices out a category and shifts the `drop_with` references of the others.
// References to the removed category are cleared.
func (c *Course) RemoveCategory(idx int) error {
	if _, err := c.category(idx); err != nil {
		return err
	}
	c.Categories = append(c.Categories[:idx:idx], c.Categories[idx+1:]...)
	for i := range c.Categories {
		p := c.Categories[i].DropPolicy
		if p == nil || p.DropWith == nil {
			continue
		}
		switch with := *p.DropWith; {
		case with == idx:
			p.DropWith = nil
		case with > idx:
			with--
			p.DropWith = &with
		}
	}
	return nil
}

func (c *Course) AddAssignment(catIdx int, a Assignment) (int, error) {
	cat, err := c.category(catIdx)
	if err != nil {
		return 0, err
	}
	cat.Assignments = append(cat.Assignments, a)
	return len(cat.Assignments) - 1, nil
}

func (c *Course) SetAssignment(catIdx, idx int, a Assignment) error {
	cat, err := c.category(catIdx)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(cat.Assignments) {
		return ErrAssignmentNotFound
	}
	cat.Assignments[idx] = a
	return nil
}

func (c *Course) RemoveAssignment(catIdx, idx int) error {
	cat, err := c.category(catIdx)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(cat.Assignments) {
		return ErrAssignmentNotFound
	}
	cat.Assignments = append(cat.Assignments[:idx:idx], cat.Assignments[idx+1:]...)
	return nil
}

// SetManualGrade switches a category to a manually entered grade (0-100).
func (c *Course) SetManualGrade(catIdx int, grade float64) error {
	cat, err := c.category(catIdx)
	if err != nil {
		return err
	}
	cat.Manual = true
	cat.Grade = grade
	return nil
}
