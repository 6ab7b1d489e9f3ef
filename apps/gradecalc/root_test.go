package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/gradebook/core/grading"
)

const (
	courseYAML = `
name: Calculus
credits: 3
part_of_degree: true
categories:
  - name: Exams
    weight: 60
    drop_policy:
      drop_count: 1
    assignments:
      - {score: 50, max_score: 100}
      - {score: 90, max_score: 100}
      - {score: 80, max_score: 100}
  - name: Homework
    weight: 40
    evenly_weighted: true
    assignments:
      - {score: 10, max_score: 10}
      - {score: 35, max_score: 50}
`
	fallJSON = `{
	"name": "Fall",
	"courses": [
		{"name": "Calculus", "credits": 3, "part_of_degree": true, "manual": true, "grade": 95},
		{"name": "Art", "credits": 1, "manual": true, "grade": 85},
		{"name": "Seminar", "credits": 2, "manual": true, "grade": 0}
	]
}`
	springYAML = `
courses:
  - {name: Physics, credits: 4, part_of_degree: true, manual: true, grade: 81}
`
	liveYAML = `
name: Biology
credits: 4
categories:
  - name: Labs
    weight: 100
    assignments: [{score: 80, max_score: 100}]
`
	draftYAML = `
name: Biology
credits: 4
categories:
  - name: Labs
    weight: 100
    assignments: [{score: 100, max_score: 100}]
`
	stepsYAML = `
- {minPercentage: 0, gpa: 5}
- {minPercentage: 90, gpa: 10}
`
)

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := ioutil.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func run(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGradecalc(t *testing.T) {
	dir := t.TempDir()
	course := writeFile(t, dir, "calculus.yaml", courseYAML)
	fall := writeFile(t, dir, "fall.json", fallJSON)
	spring := writeFile(t, dir, "spring-2025.yml", springYAML)
	live := writeFile(t, dir, "live.yaml", liveYAML)
	draft := writeFile(t, dir, "draft.yaml", draftYAML)
	steps := writeFile(t, dir, "steps.yaml", stepsYAML)
	typo := writeFile(t, dir, "typo.yaml", "name: Calculus\ncredit: 3\n")
	blank := writeFile(t, dir, "blank.json", `{"name": " ", "credits": 3}`)

	tests := []struct {
		name     string
		args     []string
		wantErr  string
		wantOuts []string
	}{
		{
			name:     "course",
			args:     []string{"course", course},
			wantOuts: []string{"Calculus (3 credits, core)", "1 lowest dropped", "evenly weighted", "Grade: 85.00% (B)  GPA: 3.00"},
		},
		{name: "course (WAM)", args: []string{"course", "--scale", grading.ScaleWAM, course}, wantOuts: []string{"GPA: 85.00%"}},
		{name: "course (custom scale)", args: []string{"course", "-s", grading.ScaleCustom, "--steps", steps, course}, wantOuts: []string{"GPA: 5.00"}},
		{name: "course (custom scale without steps)", args: []string{"course", "-s", grading.ScaleCustom, course}, wantErr: "the CUSTOM scale needs --steps"},
		{name: "course (unknown scale)", args: []string{"course", "-s", "STANDARD_10", course}, wantErr: `unknown scale "STANDARD_10"`},
		{name: "course (unknown field)", args: []string{"course", typo}, wantErr: "decoding " + typo},
		{name: "course (invalid)", args: []string{"course", blank}, wantErr: "invalid course in " + blank},
		{name: "course (missing file)", args: []string{"course", filepath.Join(dir, "nope.yaml")}, wantErr: "reading file"},
		{name: "course (no file)", args: []string{"course"}, wantErr: "accepts 1 arg(s), received 0"},
		{
			name:     "period",
			args:     []string{"period", fall},
			wantOuts: []string{"Fall", "Seminar", "GPA: 3.75  Core GPA: 4.00"},
		},
		{name: "period (WAM)", args: []string{"period", "--scale", grading.ScaleWAM, fall}, wantOuts: []string{"GPA: 92.50%  Core GPA: 95.00%"}},
		{name: "period (name from file)", args: []string{"period", spring}, wantOuts: []string{"spring-2025", "GPA: 2.70  Core GPA: 2.70"}},
		{
			name:     "summary",
			args:     []string{"summary", fall, spring},
			wantOuts: []string{"Standard 4.0, 2 grading period(s)", "Credits: 10 (core 7)"},
		},
		{
			name:     "whatif",
			args:     []string{"whatif", live, draft},
			wantOuts: []string{"Labs", "+20.00", "Course: 80.00% -> 100.00% (+20.00)", "GPA: 2.70 -> 4.00"},
		},
		{name: "scales", args: []string{"scales"}, wantOuts: []string{grading.ScaleStandard40, grading.ScaleWAM, "(percentage)", "93%=4"}},
		{name: "version", args: []string{"--version"}, wantOuts: []string{"gradecalc v" + version}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(tt.args...)
			if tt.wantErr != "" {
				if assert.Error(t, err) {
					assert.Contains(t, err.Error(), tt.wantErr)
				}
				return
			}
			assert.NoError(t, err)
			for _, want := range tt.wantOuts {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestGradecalc_json(t *testing.T) {
	dir := t.TempDir()
	course := writeFile(t, dir, "calculus.yaml", courseYAML)

	out, err := run("course", "--json", course)
	assert.NoError(t, err)

	var report courseReport
	if err = json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v", err)
	}
	assert.InDelta(t, 85.0, report.Grade, 1e-9)
	assert.Equal(t, "B", report.LetterGrade)
	assert.Equal(t, 100.0, report.WeightTotal)
	assert.False(t, report.WeightWarning)
	if assert.NotNil(t, report.GPA) {
		assert.Equal(t, 3.0, *report.GPA)
	}
	if assert.Len(t, report.Categories, 2) {
		assert.InDelta(t, 85.0, report.Categories[0].Grade, 1e-9)
		assert.InDelta(t, 85.0, report.Categories[1].Grade, 1e-9)
	}
}
