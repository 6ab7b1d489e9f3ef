package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trezcool/gradebook/core/grading"
)

func newSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary FILE...",
		Short: "Compute the overall grade & GPA across grading periods",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scale, err := opts.scale()
			if err != nil {
				return err
			}

			periods := make([]grading.GradingPeriod, 0, len(args))
			for _, path := range args {
				gp, err := opts.readPeriod(path)
				if err != nil {
					return err
				}
				periods = append(periods, grading.NormalizePeriod(gp, scale))
			}

			s := grading.Summarize(periods, scale)
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), s)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s, %d grading period(s)\n", grading.ScaleDisplayName(s.Scale), s.PeriodsCount)
			fmt.Fprintf(w, "GPA: %s  Core GPA: %s\n", formatGPA(scale, s.GPA), formatGPA(scale, s.CoreGPA))
			fmt.Fprintf(w, "Grade: %s  Core grade: %s\n", formatPtr(s.Grade, "%.2f%%"), formatPtr(s.CoreGrade, "%.2f%%"))
			if s.LetterGrade != "" {
				fmt.Fprintf(w, "Letter grade: %s\n", s.LetterGrade)
			}
			fmt.Fprintf(w, "Credits: %g (core %g)\n", s.Credits, s.CoreCredits)
			return nil
		},
	}
}
