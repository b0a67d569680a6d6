package main

import (
	"fmt"
	"os"

	"github.com/phrazzld/tutor-api/internal/tutor"
	"github.com/spf13/cobra"
)

func newChatCmd(factory serviceFactory, opts *rootOptions) *cobra.Command {
	var (
		lessonPath string
		question   string
	)

	cmd := &cobra.Command{
		Use:   "chat --lesson <file.json> --question <text>",
		Short: "Ask a question about a lesson",
		Long: `Send a student's question about a lesson to the model and print the
answer with the lesson as it should look afterwards.

The lesson file holds a JSON object with title, summary, contentMD, tips
and miniChallenge, as accepted by POST /lesson-chat.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lesson, err := os.ReadFile(lessonPath)
			if err != nil {
				return fmt.Errorf("failed to read lesson file: %w", err)
			}

			svc, err := setupService(cmd, factory, opts)
			if err != nil {
				return err
			}

			result, err := svc.LessonChat(cmd.Context(), tutor.LessonChatRequestBody{
				Question: question,
				Lesson:   lesson,
			})
			return writeResult(cmd.OutOrStdout(), result, err)
		},
	}

	cmd.Flags().StringVarP(&lessonPath, "lesson", "l", "", "path to the lesson JSON file (required)")
	cmd.Flags().StringVarP(&question, "question", "q", "", "the student's question (required)")
	_ = cmd.MarkFlagRequired("lesson")
	_ = cmd.MarkFlagRequired("question")

	return cmd
}
