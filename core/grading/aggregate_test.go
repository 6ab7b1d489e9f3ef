package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func TestPeriodGPA(t *testing.T) {
	standard := ScaleByName(ScaleStandard40, nil)

	tests := []struct {
		name     string
		courses  []Course
		scale    Scale
		coreOnly bool
		want     *float64
	}{
		{
			name:    "ungraded courses do not count",
			courses: []Course{{Grade: 95, Credits: 3}, {Grade: 0, Credits: 4}},
			scale:   standard,
			want:    floatPtr(4.0),
		},
		{
			name:    "credit weighted",
			courses: []Course{{Grade: 95, Credits: 3}, {Grade: 81, Credits: 1}},
			scale:   standard,
			want:    floatPtr((4.0*3 + 2.7*1) / 4),
		},
		{
			name:    "no courses",
			scale:   standard,
			want:    nil,
		},
		{
			name:    "zero credits",
			courses: []Course{{Grade: 95, Credits: 0}},
			scale:   standard,
			want:    nil,
		},
		{
			name:     "core only",
			courses:  []Course{{Grade: 95, Credits: 3}, {Grade: 81, Credits: 3, PartOfDegree: true}},
			scale:    standard,
			coreOnly: true,
			want:     floatPtr(2.7),
		},
		{
			name:     "core only without core courses",
			courses:  []Course{{Grade: 95, Credits: 3}},
			scale:    standard,
			coreOnly: true,
			want:     nil,
		},
		{
			name:    "WAM",
			courses: []Course{{Grade: 80, Credits: 1}, {Grade: 60, Credits: 3}},
			scale:   ScaleByName(ScaleWAM, nil),
			want:    floatPtr(65),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PeriodGPA(tt.courses, tt.scale, tt.coreOnly)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.InDelta(t, *tt.want, *got, delta)
			}
		})
	}
}

func TestPeriodGrade(t *testing.T) {
	courses := []Course{
		{Grade: 90, Credits: 3, PartOfDegree: true},
		{Grade: 70, Credits: 1},
		{Grade: 0, Credits: 10, PartOfDegree: true},
	}
	if got := PeriodGrade(courses, false); assert.NotNil(t, got) {
		assert.InDelta(t, 85.0, *got, delta)
	}
	if got := PeriodGrade(courses, true); assert.NotNil(t, got) {
		assert.InDelta(t, 90.0, *got, delta)
	}
	assert.Nil(t, PeriodGrade(nil, false))
}

func TestOverallGPA(t *testing.T) {
	standard := ScaleByName(ScaleStandard40, nil)
	fall := GradingPeriod{Name: "Fall", Courses: []Course{{Grade: 95, Credits: 3}, {Grade: 0, Credits: 4}}}
	spring := GradingPeriod{Name: "Spring", Courses: []Course{{Grade: 81, Credits: 3, PartOfDegree: true}}}
	empty := GradingPeriod{Name: "Summer"}

	t.Run("single period equals its own GPA", func(t *testing.T) {
		got := OverallGPA([]GradingPeriod{fall}, standard, false)
		if assert.NotNil(t, got) {
			assert.Equal(t, *PeriodGPA(fall.Courses, standard, false), *got)
			assert.Equal(t, 4.0, *got)
		}
	})

	t.Run("periods weighted by total credits", func(t *testing.T) {
		got := OverallGPA([]GradingPeriod{fall, spring, empty}, standard, false)
		if assert.NotNil(t, got) {
			// fall counts 7 credits (ungraded included), spring 3
			assert.InDelta(t, (4.0*7+2.7*3)/10, *got, delta)
		}
	})

	t.Run("core variant", func(t *testing.T) {
		got := OverallGPA([]GradingPeriod{fall, spring}, standard, true)
		if assert.NotNil(t, got) {
			assert.InDelta(t, 2.7, *got, delta)
		}
	})

	t.Run("no data", func(t *testing.T) {
		assert.Nil(t, OverallGPA(nil, standard, false))
		assert.Nil(t, OverallGPA([]GradingPeriod{empty}, standard, false))
		assert.Nil(t, OverallGPA([]GradingPeriod{empty, empty}, standard, false))
	})
}

func TestOverallGrade(t *testing.T) {
	periods := []GradingPeriod{
		{Courses: []Course{{Grade: 90, Credits: 4}}},
		{Courses: []Course{{Grade: 80, Credits: 2}, {Grade: 70, Credits: 2}}},
	}
	if got := OverallGrade(periods, false); assert.NotNil(t, got) {
		assert.InDelta(t, (90.0*4+75*4)/8, *got, delta)
	}
}

func TestSummarize(t *testing.T) {
	periods := []GradingPeriod{
		{Courses: []Course{{Grade: 95, Credits: 3, PartOfDegree: true}, {Grade: 0, Credits: 1}}},
	}
	s := Summarize(periods, ScaleByName(ScaleStandard40, nil))
	assert.Equal(t, ScaleStandard40, s.Scale)
	assert.Equal(t, 1, s.PeriodsCount)
	assert.Equal(t, 4.0, s.Credits)
	assert.Equal(t, 3.0, s.CoreCredits)
	assert.Equal(t, "A", s.LetterGrade)
	if assert.NotNil(t, s.GPA) && assert.NotNil(t, s.CoreGPA) {
		assert.Equal(t, 4.0, *s.GPA)
		assert.Equal(t, 4.0, *s.CoreGPA)
	}

	empty := Summarize(nil, ScaleByName(ScaleWAM, nil))
	assert.Nil(t, empty.GPA)
	assert.Nil(t, empty.Grade)
	assert.Empty(t, empty.LetterGrade)
}
