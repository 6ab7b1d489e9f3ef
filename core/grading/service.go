package grading

import (
	"context"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("grading period")
	ErrCourseNotFound = core.NewNotFoundError("course")

	// OrderingFields maps the accepted `ordering` params to columns.
	OrderingFields = map[string]string{
		"name":         "name",
		"created_at":   "created_at",
		"updated_at":   "updated_at",
		"is_completed": "is_completed",
		"gpa":          "gpa",
		"grade":        "grade",
	}
)

type (
	// Repository stores grading periods; all lookups are scoped to the owning user.
	Repository interface {
		CreateGradingPeriod(ctx context.Context, gp GradingPeriod) (GradingPeriod, error)
		QueryGradingPeriods(ctx context.Context, userID string, ordering ...core.DBOrdering) ([]GradingPeriod, error)
		GetGradingPeriod(ctx context.Context, userID, id string) (GradingPeriod, error)
		// UpdateGradingPeriod replaces the whole document (last writer wins).
		UpdateGradingPeriod(ctx context.Context, gp GradingPeriod) (GradingPeriod, error)
		DeleteGradingPeriod(ctx context.Context, userID, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
	).CheckAndPanic()

	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, ngp NewGradingPeriod, scale Scale) (GradingPeriod, error) {
	now := time.Now().UTC()
	gp := NormalizePeriod(GradingPeriod{
		UserID:      userID,
		Name:        ngp.Name,
		IsCompleted: ngp.IsCompleted,
		Courses:     ngp.Courses,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, scale)
	return svc.repo.CreateGradingPeriod(ctx, gp)
}

func (svc *Service) Query(ctx context.Context, userID string, ordering ...core.DBOrdering) ([]GradingPeriod, error) {
	return svc.repo.QueryGradingPeriods(ctx, userID, core.CleanOrderings(ordering, OrderingFields)...)
}

func (svc *Service) Get(ctx context.Context, userID, id string) (GradingPeriod, error) {
	return svc.repo.GetGradingPeriod(ctx, userID, id)
}

func (svc *Service) GetCourse(ctx context.Context, userID, id string, idx int) (GradingPeriod, Course, error) {
	gp, err := svc.repo.GetGradingPeriod(ctx, userID, id)
	if err != nil {
		return GradingPeriod{}, Course{}, err
	}
	if !gp.validCourseIndex(idx) {
		return GradingPeriod{}, Course{}, ErrCourseNotFound
	}
	return gp, gp.Courses[idx], nil
}

// save normalizes and persists a modified grading period.
func (svc *Service) save(ctx context.Context, gp GradingPeriod, scale Scale) (GradingPeriod, error) {
	gp = NormalizePeriod(gp, scale)
	gp.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateGradingPeriod(ctx, gp)
}

func (svc *Service) Update(ctx context.Context, userID, id string, ugp UpdateGradingPeriod, scale Scale) (GradingPeriod, error) {
	gp, err := svc.repo.GetGradingPeriod(ctx, userID, id)
	if err != nil {
		return GradingPeriod{}, err
	}
	if ugp.Name != nil {
		gp.Name = *ugp.Name
	}
	if ugp.IsCompleted != nil {
		gp.IsCompleted = *ugp.IsCompleted
	}
	if ugp.Courses != nil {
		gp.Courses = ugp.Courses
	}
	return svc.save(ctx, gp, scale)
}

func (svc *Service) Delete(ctx context.Context, userID, id string) error {
	return svc.repo.DeleteGradingPeriod(ctx, userID, id)
}

// AddCourse appends a course and returns its index.
func (svc *Service) AddCourse(ctx context.Context, userID, id string, c Course, scale Scale) (GradingPeriod, int, error) {
	gp, err := svc.repo.GetGradingPeriod(ctx, userID, id)
	if err != nil {
		return GradingPeriod{}, 0, err
	}
	gp.Courses = append(gp.Courses, c)
	if gp, err = svc.save(ctx, gp, scale); err != nil {
		return GradingPeriod{}, 0, err
	}
	return gp, len(gp.Courses) - 1, nil
}

func (svc *Service) UpdateCourse(ctx context.Context, userID, id string, idx int, c Course, scale Scale) (GradingPeriod, error) {
	gp, err := svc.repo.GetGradingPeriod(ctx, userID, id)
	if err != nil {
		return GradingPeriod{}, err
	}
	if !gp.validCourseIndex(idx) {
		return GradingPeriod{}, ErrCourseNotFound
	}
	gp.Courses[idx] = c
	return svc.save(ctx, gp, scale)
}

func (svc *Service) RemoveCourse(ctx context.Context, userID, id string, idx int, scale Scale) (GradingPeriod, error) {
	gp, err := svc.repo.GetGradingPeriod(ctx, userID, id)
	if err != nil {
		return GradingPeriod{}, err
	}
	if !gp.validCourseIndex(idx) {
		return GradingPeriod{}, ErrCourseNotFound
	}
	gp.Courses = append(gp.Courses[:idx:idx], gp.Courses[idx+1:]...)
	return svc.save(ctx, gp, scale)
}

// Recalculate re-derives every cached grade of a grading period.
func (svc *Service) Recalculate(ctx context.Context, userID, id string, scale Scale) (GradingPeriod, error) {
	gp, err := svc.repo.GetGradingPeriod(ctx, userID, id)
	if err != nil {
		return GradingPeriod{}, err
	}
	return svc.save(ctx, gp, scale)
}

// RecalculateAll re-derives the grading periods of a user, e.g. after a scale change.
// It returns the number of periods updated.
func (svc *Service) RecalculateAll(ctx context.Context, userID string, scale Scale) (int, error) {
	periods, err := svc.repo.QueryGradingPeriods(ctx, userID)
	if err != nil {
		return 0, err
	}
	for i, gp := range periods {
		if _, err := svc.save(ctx, gp, scale); err != nil {
			return i, errors.Wrapf(err, "recalculating grading period %s", gp.ID)
		}
	}
	return len(periods), nil
}

// Summary aggregates the user's periods after recomputing them with `scale`; stored grades are not trusted.
func (svc *Service) Summary(ctx context.Context, userID string, scale Scale) (Summary, error) {
	periods, err := svc.repo.QueryGradingPeriods(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	for i := range periods {
		periods[i] = NormalizePeriod(periods[i], scale)
	}
	return Summarize(periods, scale), nil
}

// WhatIf compares a draft of a stored course against the course itself; nothing is persisted.
func (svc *Service) WhatIf(ctx context.Context, userID, id string, idx int, draft Course) (CourseDiff, error) {
	_, live, err := svc.GetCourse(ctx, userID, id, idx)
	if err != nil {
		return CourseDiff{}, err
	}
	return NewWhatIf(live).WithDraft(draft).Diff(), nil
}

// CommitWhatIf replaces a stored course with its normalized draft.
func (svc *Service) CommitWhatIf(ctx context.Context, userID, id string, idx int, draft Course, scale Scale) (GradingPeriod, error) {
	_, live, err := svc.GetCourse(ctx, userID, id, idx)
	if err != nil {
		return GradingPeriod{}, err
	}
	return svc.UpdateCourse(ctx, userID, id, idx, NewWhatIf(live).WithDraft(draft).Commit(scale), scale)
}
