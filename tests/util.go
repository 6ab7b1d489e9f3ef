package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/gradebook/core/grading"
	"github.com/trezcool/gradebook/storage/database"
)

// PrepareDB returns a migrated SQLite database living in the test's temp dir.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

func CreateGradingPeriod(
	t *testing.T,
	repo grading.Repository,
	userID, name string,
	courses []grading.Course,
	createdAt ...time.Time,
) grading.GradingPeriod {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	gp := grading.NormalizePeriod(grading.GradingPeriod{
		UserID:    userID,
		Name:      name,
		Courses:   courses,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}, grading.ScaleByName(grading.ScaleStandard40, nil))

	gp, err := repo.CreateGradingPeriod(context.Background(), gp)
	if err != nil {
		t.Fatalf("CreateGradingPeriod() failed: %v", err)
	}
	return gp
}

// Course returns a calculated course with one category per `grades` entry (equal weights).
func Course(name string, credits float64, partOfDegree bool, grades ...float64) grading.Course {
	c := grading.Course{Name: name, Credits: credits, PartOfDegree: partOfDegree}
	for _, g := range grades {
		c.Categories = append(c.Categories, grading.Category{
			Name:        "Category",
			Weight:      100 / float64(len(grades)),
			Assignments: []grading.Assignment{{Score: g, MaxScore: 100}},
		})
	}
	return c
}
