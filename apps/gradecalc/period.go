package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trezcool/gradebook/core/grading"
)

type periodReport struct {
	grading.GradingPeriod
	Courses []courseReport `json:"courses"`
}

func newPeriodCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "period FILE",
		Short: "Compute the grade & GPA of a grading period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scale, err := opts.scale()
			if err != nil {
				return err
			}
			gp, err := opts.readPeriod(args[0])
			if err != nil {
				return err
			}

			gp = grading.NormalizePeriod(gp, scale)
			if opts.jsonOut {
				report := periodReport{GradingPeriod: gp, Courses: make([]courseReport, 0, len(gp.Courses))}
				for _, c := range gp.Courses {
					report.Courses = append(report.Courses, newCourseReport(c))
				}
				return printJSON(cmd.OutOrStdout(), report)
			}
			printPeriod(cmd.OutOrStdout(), gp, scale)
			return nil
		},
	}
}

func printPeriod(w io.Writer, gp grading.GradingPeriod, scale grading.Scale) {
	fmt.Fprintln(w, gp.Name)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COURSE\tCREDITS\tCORE\tGRADE\tGPA")
	for _, c := range gp.Courses {
		isCore := ""
		if c.PartOfDegree {
			isCore = "yes"
		}
		fmt.Fprintf(tw, "%s\t%g\t%s\t%.2f%%\t%s\n", c.Name, c.Credits, isCore, c.Grade, formatGPA(scale, c.GPA))
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "Grade: %.2f%%  Core grade: %s\n", gp.Grade, formatPtr(gp.CoreGrade, "%.2f%%"))
	fmt.Fprintf(w, "GPA: %s  Core GPA: %s\n", formatGPA(scale, gp.GPA), formatGPA(scale, gp.CoreGPA))
}
