package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trezcool/gradebook/core/grading"
)

func newWhatIfCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whatif COURSE_FILE DRAFT_FILE",
		Short: "Compare a draft of a course with the course itself",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scale, err := opts.scale()
			if err != nil {
				return err
			}
			live, err := opts.readCourse(args[0])
			if err != nil {
				return err
			}
			draft, err := opts.readCourse(args[1])
			if err != nil {
				return err
			}

			wi := grading.NewWhatIf(grading.NormalizeCourse(live, scale)).WithDraft(draft)
			diff := wi.Diff()
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), diff)
			}

			w := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tWEIGHT\tACTUAL\tSIMULATED\tDIFF")
			for _, cd := range diff.Categories {
				fmt.Fprintf(tw, "%s\t%g\t%s\t%.2f%%\t%s\n",
					cd.Name, cd.Weight, formatPtr(cd.Actual, "%.2f%%"), cd.Simulated, formatPtr(cd.Difference, "%+.2f"))
			}
			_ = tw.Flush()

			simulated := wi.Commit(scale)
			fmt.Fprintf(w, "Course: %.2f%% -> %.2f%% (%+.2f)\n", diff.Actual, diff.Simulated, diff.Difference)
			fmt.Fprintf(w, "GPA: %s -> %s\n", formatGPA(scale, wi.Live.GPA), formatGPA(scale, simulated.GPA))
			return nil
		},
	}
}
