package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trezcool/gradebook/core/grading"
	"github.com/trezcool/gradebook/core/settings"
)

func newScalesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scales",
		Short: "List the GPA scales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var custom []grading.Step
			if opts.stepsPath != "" {
				if err := readFile(opts.stepsPath, &custom); err != nil {
					return err
				}
			}

			infos := settings.Scales(custom)
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), infos)
			}

			w := cmd.OutOrStdout()
			for _, info := range infos {
				steps := make([]string, 0, len(info.Steps))
				for _, s := range info.Steps {
					steps = append(steps, fmt.Sprintf("%g%%=%g", s.MinPercentage, s.GPA))
				}
				if info.Percentage {
					steps = append(steps, "(percentage)")
				}
				fmt.Fprintf(w, "%-14s %-30s %s\n", info.Name, info.DisplayName, strings.Join(steps, " "))
			}
			return nil
		},
	}
}
