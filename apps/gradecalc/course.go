package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trezcool/gradebook/core/grading"
)

type courseReport struct {
	grading.Course
	LetterGrade   string  `json:"letter_grade"`
	WeightTotal   float64 `json:"weight_total"`
	WeightWarning bool    `json:"weight_warning"`
}

func newCourseReport(c grading.Course) courseReport {
	return courseReport{
		Course:        c,
		LetterGrade:   grading.LetterGrade(c.Grade),
		WeightTotal:   c.WeightTotal(),
		WeightWarning: c.HasWeightWarning(),
	}
}

func newCourseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "course FILE",
		Short: "Resolve the category and course grades of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scale, err := opts.scale()
			if err != nil {
				return err
			}
			c, err := opts.readCourse(args[0])
			if err != nil {
				return err
			}

			report := newCourseReport(grading.NormalizeCourse(c, scale))
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), report)
			}
			printCourse(cmd.OutOrStdout(), report, scale)
			return nil
		},
	}
}

func printCourse(w io.Writer, r courseReport, scale grading.Scale) {
	kind := "elective"
	if r.PartOfDegree {
		kind = "core"
	}
	fmt.Fprintf(w, "%s (%g credits, %s)\n", r.Name, r.Credits, kind)

	if !r.Manual && len(r.Categories) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "CATEGORY\tWEIGHT\tGRADE\tNOTES")
		for _, cat := range r.Categories {
			fmt.Fprintf(tw, "%s\t%g\t%.2f%%\t%s\n", cat.Name, cat.Weight, cat.Grade, categoryNotes(cat))
		}
		_ = tw.Flush()
	}

	fmt.Fprintf(w, "Grade: %.2f%% (%s)  GPA: %s\n", r.Grade, r.LetterGrade, formatGPA(scale, r.GPA))
	if r.FromExtraCredit > 0 {
		fmt.Fprintf(w, "Extra credit: +%.2f%%\n", r.FromExtraCredit)
	}
	if r.WeightWarning {
		fmt.Fprintf(w, "Warning: category weights add up to %g, not 100\n", r.WeightTotal)
	}
}

func categoryNotes(cat grading.Category) string {
	var notes string
	add := func(note string) {
		if notes != "" {
			notes += ", "
		}
		notes += note
	}

	if cat.Manual {
		add("manual")
	}
	if cat.ExtraCredit {
		add("extra credit")
	}
	if cat.EvenlyWeighted {
		add("evenly weighted")
	}
	if p := cat.DropPolicy; p != nil && p.DropCount > 0 {
		if p.DropWith != nil {
			add(fmt.Sprintf("%d lowest replaced by #%d", p.DropCount, *p.DropWith))
		} else {
			add(fmt.Sprintf("%d lowest dropped", p.DropCount))
		}
	}
	return notes
}
