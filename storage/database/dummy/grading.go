package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
)

type gradingPeriodRepository struct {
	db *gradingPeriodTable
}

var _ grading.Repository = (*gradingPeriodRepository)(nil) // interface compliance check

func NewGradingPeriodRepository(db *DB) grading.Repository {
	return &gradingPeriodRepository{db: db.gradingPeriod}
}

func (repo *gradingPeriodRepository) CreateGradingPeriod(_ context.Context, gp grading.GradingPeriod) (grading.GradingPeriod, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	gp = gp.Clone()
	gp.ID = uuid.New().String()
	repo.db.table[gp.ID] = &gp
	return gp.Clone(), nil
}

func (repo *gradingPeriodRepository) QueryGradingPeriods(_ context.Context, userID string, ordering ...core.DBOrdering) ([]grading.GradingPeriod, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	periods := make([]grading.GradingPeriod, 0)
	for _, gp := range repo.db.table {
		if gp.UserID == userID {
			periods = append(periods, gp.Clone())
		}
	}

	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "created_at", Ascending: true}}
	}
	sort.SliceStable(periods, func(i, j int) bool {
		for _, ord := range ordering {
			if c := compareGradingPeriods(periods[i], periods[j], ord.Field); c != 0 {
				return (c < 0) == ord.Ascending
			}
		}
		return periods[i].ID < periods[j].ID
	})
	return periods, nil
}

// compareGradingPeriods returns -1, 0 or 1; NULLs sort last.
func compareGradingPeriods(a, b grading.GradingPeriod, field string) int {
	switch field {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "updated_at":
		return compareTime(a.UpdatedAt.UnixNano(), b.UpdatedAt.UnixNano())
	case "is_completed":
		return compareBool(a.IsCompleted, b.IsCompleted)
	case "grade":
		return compareFloat(&a.Grade, &b.Grade)
	case "gpa":
		return compareFloat(a.GPA, b.GPA)
	default:
		return compareTime(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano())
	}
}

func compareTime(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

func compareFloat(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

func (repo *gradingPeriodRepository) GetGradingPeriod(_ context.Context, userID, id string) (grading.GradingPeriod, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if gp, ok := repo.db.table[id]; ok && gp.UserID == userID {
		return gp.Clone(), nil
	}
	return grading.GradingPeriod{}, grading.ErrNotFound
}

func (repo *gradingPeriodRepository) UpdateGradingPeriod(_ context.Context, gp grading.GradingPeriod) (grading.GradingPeriod, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[gp.ID]
	if !ok || orig.UserID != gp.UserID {
		return grading.GradingPeriod{}, grading.ErrNotFound
	}
	gp = gp.Clone()
	gp.CreatedAt = orig.CreatedAt
	repo.db.table[gp.ID] = &gp
	return gp.Clone(), nil
}

func (repo *gradingPeriodRepository) DeleteGradingPeriod(_ context.Context, userID, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if gp, ok := repo.db.table[id]; !ok || gp.UserID != userID {
		return grading.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
