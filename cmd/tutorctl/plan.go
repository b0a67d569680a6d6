package main

import (
	"strings"

	"github.com/phrazzld/tutor-api/internal/tutor"
	"github.com/spf13/cobra"
)

func newPlanCmd(factory serviceFactory, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <topic>",
		Short: "Build a course plan spec for a topic",
		Long: `Ask the model whether a topic is a programming course and, if so,
print the course spec with alternative suggestions.

Several arguments are joined with spaces, so quoting is optional.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := setupService(cmd, factory, opts)
			if err != nil {
				return err
			}

			plan, err := svc.BuildCoursePlanSpec(cmd.Context(), tutor.TopicRequestBody{
				Topic: strings.Join(args, " "),
			})
			return writeResult(cmd.OutOrStdout(), plan, err)
		},
	}
}
