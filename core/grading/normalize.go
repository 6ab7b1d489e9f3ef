package grading

// NormalizeCourse recomputes the derived fields of a course: category grades, course grade,
// extra-credit share and GPA. Manual grades are kept as they are. The input is not modified.
func NormalizeCourse(course Course, scale Scale) Course {
	c := course.Clone()

	if len(c.Categories) > 0 {
		grades := CategoryGrades(c.Categories)
		for i := range c.Categories {
			if !c.Categories[i].Manual {
				c.Categories[i].Grade = grades[i] * 100
			}
		}
	}

	if c.Manual {
		c.FromExtraCredit = 0
	} else {
		c.Grade = ResolveCourse(c) * 100
		c.FromExtraCredit = extraCreditPoints(c)
	}

	c.GPA = nil
	if c.Grade > 0 {
		gpa := scale.Resolve(c.Grade)
		c.GPA = &gpa
	}
	return c
}

// extraCreditPoints is how many percentage points of the course grade come from extra credit.
func extraCreditPoints(c Course) float64 {
	weights := c.WeightTotal()
	if weights <= 0 {
		return 0
	}
	var points float64
	for _, cat := range c.Categories {
		if cat.ExtraCredit {
			points += cat.Weight * cat.Grade
		}
	}
	return points / weights
}

// NormalizePeriod normalizes every course and recomputes the period aggregates.
func NormalizePeriod(gp GradingPeriod, scale Scale) GradingPeriod {
	gp = gp.Clone()
	for i, c := range gp.Courses {
		gp.Courses[i] = NormalizeCourse(c, scale)
	}

	// grades of periods without graded credits are stored as 0, GPAs as absent
	gp.Grade = 0
	if grade := PeriodGrade(gp.Courses, false); grade != nil {
		gp.Grade = *grade
	}
	coreGrade := 0.0
	if grade := PeriodGrade(gp.Courses, true); grade != nil {
		coreGrade = *grade
	}
	gp.CoreGrade = &coreGrade
	gp.GPA = PeriodGPA(gp.Courses, scale, false)
	gp.CoreGPA = PeriodGPA(gp.Courses, scale, true)
	return gp
}
