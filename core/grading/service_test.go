package grading_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
	"github.com/trezcool/gradebook/storage/database/dummy"
	"github.com/trezcool/gradebook/tests"
)

func newService(t *testing.T) (*grading.Service, grading.Repository) {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	repo := dummydb.NewGradingPeriodRepository(db)
	return grading.NewService(repo), repo
}

func TestService_CreateNormalizes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	standard := grading.ScaleByName(grading.ScaleStandard40, nil)

	course := testutil.Course("Calculus", 3, true, 95)
	course.Grade = 12 // stale cache
	gp, err := svc.Create(ctx, "u1", grading.NewGradingPeriod{
		Name:    "Fall",
		Courses: []grading.Course{course, testutil.Course("Lab", 4, false)},
	}, standard)

	assert.NoError(t, err)
	assert.NotEmpty(t, gp.ID)
	assert.Equal(t, 95.0, gp.Courses[0].Grade)
	assert.Equal(t, 95.0, gp.Grade)
	if assert.NotNil(t, gp.GPA) && assert.NotNil(t, gp.CoreGPA) {
		assert.Equal(t, 4.0, *gp.GPA)
		assert.Equal(t, 4.0, *gp.CoreGPA)
	}
}

func TestService_Courses(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)
	standard := grading.ScaleByName(grading.ScaleStandard40, nil)
	gp := testutil.CreateGradingPeriod(t, repo, "u1", "Fall", []grading.Course{testutil.Course("Calculus", 3, true, 95)})

	t.Run("add", func(t *testing.T) {
		got, idx, err := svc.AddCourse(ctx, "u1", gp.ID, testutil.Course("History", 3, false, 81), standard)
		assert.NoError(t, err)
		assert.Equal(t, 1, idx)
		assert.Len(t, got.Courses, 2)
		if assert.NotNil(t, got.GPA) {
			assert.InDelta(t, (4.0+2.7)/2, *got.GPA, 1e-9)
		}
	})

	t.Run("get", func(t *testing.T) {
		_, c, err := svc.GetCourse(ctx, "u1", gp.ID, 1)
		assert.NoError(t, err)
		assert.Equal(t, "History", c.Name)

		_, _, err = svc.GetCourse(ctx, "u1", gp.ID, 2)
		assert.Equal(t, grading.ErrCourseNotFound, err)
		_, _, err = svc.GetCourse(ctx, "u2", gp.ID, 0)
		assert.Equal(t, grading.ErrNotFound, err)
	})

	t.Run("update", func(t *testing.T) {
		got, err := svc.UpdateCourse(ctx, "u1", gp.ID, 1, grading.Course{Name: "History", Credits: 3, Manual: true, Grade: 0}, standard)
		assert.NoError(t, err)
		if assert.NotNil(t, got.GPA) {
			assert.Equal(t, 4.0, *got.GPA)
		}
		_, err = svc.UpdateCourse(ctx, "u1", gp.ID, -1, grading.Course{}, standard)
		assert.Equal(t, grading.ErrCourseNotFound, err)
	})

	t.Run("remove", func(t *testing.T) {
		got, err := svc.RemoveCourse(ctx, "u1", gp.ID, 0, standard)
		assert.NoError(t, err)
		if assert.Len(t, got.Courses, 1) {
			assert.Equal(t, "History", got.Courses[0].Name)
		}
		assert.Nil(t, got.GPA)
		assert.Equal(t, 0.0, got.Grade)
	})
}

func TestService_UpdateAndQuery(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)
	standard := grading.ScaleByName(grading.ScaleStandard40, nil)
	fall := testutil.CreateGradingPeriod(t, repo, "u1", "Fall", nil)
	_ = testutil.CreateGradingPeriod(t, repo, "u1", "Autumn", nil)

	name, completed := "Fall 2024", true
	got, err := svc.Update(ctx, "u1", fall.ID, grading.UpdateGradingPeriod{Name: &name, IsCompleted: &completed}, standard)
	assert.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.True(t, got.IsCompleted)

	periods, err := svc.Query(ctx, "u1", core.DBOrdering{Field: "NAME", Ascending: true}, core.DBOrdering{Field: "password"})
	assert.NoError(t, err)
	if assert.Len(t, periods, 2) {
		assert.Equal(t, "Autumn", periods[0].Name)
		assert.Equal(t, "Fall 2024", periods[1].Name)
	}

	assert.NoError(t, svc.Delete(ctx, "u1", fall.ID))
	assert.Equal(t, grading.ErrNotFound, svc.Delete(ctx, "u1", fall.ID))
}

func TestService_RecalculateAllAndSummary(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)
	_ = testutil.CreateGradingPeriod(t, repo, "u1", "Fall", []grading.Course{testutil.Course("Calculus", 3, true, 95)})
	_ = testutil.CreateGradingPeriod(t, repo, "u1", "Spring", []grading.Course{testutil.Course("Physics", 3, false, 85)})

	aus := grading.ScaleByName(grading.ScaleAustralia70, nil)
	n, err := svc.RecalculateAll(ctx, "u1", aus)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	periods, err := svc.Query(ctx, "u1")
	assert.NoError(t, err)
	for _, gp := range periods {
		if assert.NotNil(t, gp.Courses[0].GPA) {
			assert.Equal(t, 7.0, *gp.Courses[0].GPA)
		}
	}

	summary, err := svc.Summary(ctx, "u1", aus)
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.PeriodsCount)
	if assert.NotNil(t, summary.GPA) && assert.NotNil(t, summary.Grade) {
		assert.Equal(t, 7.0, *summary.GPA)
		assert.InDelta(t, 90.0, *summary.Grade, 1e-9)
	}
}

func TestService_SummaryRecomputesStoredGrades(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)

	course := testutil.Course("Calculus", 3, true, 95)
	course.Grade = 12 // stale cache, never normalized
	stale := 1.0
	course.GPA = &stale
	_, err := repo.CreateGradingPeriod(ctx, grading.GradingPeriod{
		UserID:  "u1",
		Name:    "Fall",
		Courses: []grading.Course{course},
		Grade:   12,
		GPA:     &stale,
	})
	assert.NoError(t, err)

	summary, err := svc.Summary(ctx, "u1", grading.ScaleByName(grading.ScaleStandard40, nil))
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.PeriodsCount)
	if assert.NotNil(t, summary.Grade) && assert.NotNil(t, summary.GPA) && assert.NotNil(t, summary.CoreGPA) {
		assert.InDelta(t, 95.0, *summary.Grade, 1e-9)
		assert.Equal(t, 4.0, *summary.GPA)
		assert.Equal(t, 4.0, *summary.CoreGPA)
	}
}

func TestService_WhatIf(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)
	standard := grading.ScaleByName(grading.ScaleStandard40, nil)
	gp := testutil.CreateGradingPeriod(t, repo, "u1", "Fall", []grading.Course{testutil.Course("Calculus", 3, true, 80)})

	draft := gp.Courses[0].Clone()
	draft.Categories[0].Assignments[0].Score = 100

	diff, err := svc.WhatIf(ctx, "u1", gp.ID, 0, draft)
	assert.NoError(t, err)
	assert.InDelta(t, 20.0, diff.Difference, 1e-9)

	stored, err := svc.Get(ctx, "u1", gp.ID)
	assert.NoError(t, err)
	assert.Equal(t, 80.0, stored.Courses[0].Grade)

	committed, err := svc.CommitWhatIf(ctx, "u1", gp.ID, 0, draft, standard)
	assert.NoError(t, err)
	assert.Equal(t, 100.0, committed.Courses[0].Grade)

	_, err = svc.WhatIf(ctx, "u1", gp.ID, 3, draft)
	assert.Equal(t, grading.ErrCourseNotFound, err)
}
