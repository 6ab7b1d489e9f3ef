package grading

// counts reports whether a course takes part in period aggregation.
func counts(c Course, coreOnly bool) bool {
	return c.Grade > 0 && (!coreOnly || c.PartOfDegree)
}

func creditWeightedMean(courses []Course, coreOnly bool, value func(Course) float64) *float64 {
	var total, credits float64
	for _, c := range courses {
		if !counts(c, coreOnly) {
			continue
		}
		total += value(c) * c.Credits
		credits += c.Credits
	}
	if credits == 0 {
		return nil
	}
	mean := total / credits
	return &mean
}

// PeriodGrade is the credit-weighted mean percentage of the graded courses; nil when no credits count.
func PeriodGrade(courses []Course, coreOnly bool) *float64 {
	return creditWeightedMean(courses, coreOnly, func(c Course) float64 { return c.Grade })
}

// PeriodGPA is the credit-weighted mean of the scale value of each graded course; nil when no credits count.
func PeriodGPA(courses []Course, scale Scale, coreOnly bool) *float64 {
	return creditWeightedMean(courses, coreOnly, func(c Course) float64 { return scale.Resolve(c.Grade) })
}

func overall(periods []GradingPeriod, coreOnly bool, value func(GradingPeriod) *float64) *float64 {
	if len(periods) == 1 {
		return value(periods[0])
	}

	var total, credits float64
	for _, gp := range periods {
		v := value(gp)
		periodCredits := gp.TotalCredits(coreOnly)
		if v == nil || periodCredits <= 0 {
			continue
		}
		total += *v * periodCredits
		credits += periodCredits
	}
	if credits == 0 {
		return nil
	}
	mean := total / credits
	return &mean
}

// OverallGrade weights each period's grade by the period's total credits.
// Period values are recomputed from their courses rather than read from the stored caches.
func OverallGrade(periods []GradingPeriod, coreOnly bool) *float64 {
	return overall(periods, coreOnly, func(gp GradingPeriod) *float64 { return PeriodGrade(gp.Courses, coreOnly) })
}

// OverallGPA weights each period's GPA by the period's total credits.
func OverallGPA(periods []GradingPeriod, scale Scale, coreOnly bool) *float64 {
	return overall(periods, coreOnly, func(gp GradingPeriod) *float64 { return PeriodGPA(gp.Courses, scale, coreOnly) })
}

// Summary rolls up every grading period of a user.
type Summary struct {
	Scale        string   `json:"scale"`
	GPA          *float64 `json:"gpa"`
	CoreGPA      *float64 `json:"core_gpa"`
	Grade        *float64 `json:"grade"`
	CoreGrade    *float64 `json:"core_grade"`
	LetterGrade  string   `json:"letter_grade,omitempty"`
	Credits      float64  `json:"credits"`
	CoreCredits  float64  `json:"core_credits"`
	PeriodsCount int      `json:"periods_count"`
}

func Summarize(periods []GradingPeriod, scale Scale) Summary {
	s := Summary{
		Scale:        scale.Name(),
		GPA:          OverallGPA(periods, scale, false),
		CoreGPA:      OverallGPA(periods, scale, true),
		Grade:        OverallGrade(periods, false),
		CoreGrade:    OverallGrade(periods, true),
		PeriodsCount: len(periods),
	}
	if s.Grade != nil {
		s.LetterGrade = LetterGrade(*s.Grade)
	}
	for _, gp := range periods {
		s.Credits += gp.TotalCredits(false)
		s.CoreCredits += gp.TotalCredits(true)
	}
	return s
}
