package sqlxrepos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
	"github.com/trezcool/gradebook/core/settings"
	"github.com/trezcool/gradebook/core/template"
	"github.com/trezcool/gradebook/tests"
)

func TestGradingPeriodRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGradingPeriodRepository(testutil.PrepareDB(t))

	now := time.Now().UTC().Truncate(time.Second)
	fall := testutil.CreateGradingPeriod(t, repo, "u1", "Fall", []grading.Course{
		testutil.Course("Calculus", 4, true, 95),
		testutil.Course("Art", 2, false),
	}, now.Add(-time.Hour))
	spring := testutil.CreateGradingPeriod(t, repo, "u1", "Spring", nil, now)
	_ = testutil.CreateGradingPeriod(t, repo, "u2", "Other", nil, now)

	t.Run("get round-trips the document", func(t *testing.T) {
		got, err := repo.GetGradingPeriod(ctx, "u1", fall.ID)
		assert.NoError(t, err)
		assert.Equal(t, fall.Name, got.Name)
		assert.Equal(t, fall.Courses, got.Courses)
		assert.Equal(t, fall.Grade, got.Grade)
		assert.Equal(t, fall.GPA, got.GPA)
		assert.Equal(t, fall.CoreGPA, got.CoreGPA)
		assert.Nil(t, got.Courses[1].GPA)
		assert.True(t, fall.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("get is scoped to the user", func(t *testing.T) {
		_, err := repo.GetGradingPeriod(ctx, "u2", fall.ID)
		assert.Equal(t, grading.ErrNotFound, err)
	})

	t.Run("query", func(t *testing.T) {
		got, err := repo.QueryGradingPeriods(ctx, "u1")
		assert.NoError(t, err)
		if assert.Len(t, got, 2) {
			assert.Equal(t, fall.ID, got[0].ID)
			assert.Equal(t, spring.ID, got[1].ID)
			assert.Empty(t, got[1].Courses)
		}

		got, err = repo.QueryGradingPeriods(ctx, "u1", core.DBOrdering{Field: "name", Ascending: false})
		assert.NoError(t, err)
		if assert.Len(t, got, 2) {
			assert.Equal(t, "Spring", got[0].Name)
		}
	})

	t.Run("update", func(t *testing.T) {
		gp := fall.Clone()
		gp.Name = "Fall 2024"
		gp.Courses = gp.Courses[:1]
		gp.IsCompleted = true

		got, err := repo.UpdateGradingPeriod(ctx, gp)
		assert.NoError(t, err)
		assert.Equal(t, "Fall 2024", got.Name)
		assert.True(t, got.IsCompleted)
		assert.Len(t, got.Courses, 1)

		gp.UserID = "u2"
		_, err = repo.UpdateGradingPeriod(ctx, gp)
		assert.Equal(t, grading.ErrNotFound, err)
	})

	t.Run("delete", func(t *testing.T) {
		assert.Equal(t, grading.ErrNotFound, repo.DeleteGradingPeriod(ctx, "u2", spring.ID))
		assert.NoError(t, repo.DeleteGradingPeriod(ctx, "u1", spring.ID))
		_, err := repo.GetGradingPeriod(ctx, "u1", spring.ID)
		assert.Equal(t, grading.ErrNotFound, err)
	})
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(testutil.PrepareDB(t))

	_, err := repo.GetSettings(ctx, "u1")
	assert.Equal(t, settings.ErrNotFound, err)

	s := settings.Default("u1")
	s.UpdatedAt = time.Now().UTC()
	got, err := repo.SaveSettings(ctx, s)
	assert.NoError(t, err)
	assert.Equal(t, grading.ScaleStandard40, got.GPAScale)
	assert.Nil(t, got.CustomScale)

	s.GPAScale = grading.ScaleCustom
	s.CustomScale = []grading.Step{{MinPercentage: 50, GPA: 1}, {MinPercentage: 0, GPA: 0}}
	s.University = "Yale University"
	got, err = repo.SaveSettings(ctx, s)
	assert.NoError(t, err)
	assert.Equal(t, grading.ScaleCustom, got.GPAScale)
	assert.Equal(t, s.CustomScale, got.CustomScale)
	assert.Equal(t, "Yale University", got.University)
}

func TestTemplateRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTemplateRepository(testutil.PrepareDB(t))

	cats := []grading.Category{
		{Name: "Exams", Weight: 70, Assignments: []grading.Assignment{{Score: 0, MaxScore: 100}}},
		{Name: "Participation", Weight: 30, Manual: true},
	}
	pub, err := repo.CreateTemplate(ctx, template.Template{
		University: "Yale University", CourseCode: "CS 101", CourseTitle: "Intro", Categories: cats,
		Public: true, CreatedAt: time.Now().UTC(), CreatedBy: "u1",
	})
	assert.NoError(t, err)
	priv, err := repo.CreateTemplate(ctx, template.Template{
		University: "Yale University", CourseCode: "CS 102", CourseTitle: "Data", Categories: cats,
		CreatedAt: time.Now().UTC(), CreatedBy: "u1",
	})
	assert.NoError(t, err)

	all, err := repo.QueryPublicTemplates(ctx)
	assert.NoError(t, err)
	if assert.Len(t, all, 1) {
		assert.Equal(t, pub.ID, all[0].ID)
		assert.Equal(t, cats, all[0].Categories)
	}

	_, err = repo.GetTemplate(ctx, priv.ID)
	assert.Equal(t, template.ErrNotFound, err)

	count, err := repo.IncrementDownloads(ctx, pub.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	count, err = repo.IncrementDownloads(ctx, pub.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = repo.IncrementDownloads(ctx, "nope")
	assert.Equal(t, template.ErrNotFound, err)
}
