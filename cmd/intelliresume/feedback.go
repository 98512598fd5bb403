package main

import (
	"fmt"

	"github.com/jonathan/intelliresume/internal/types"
	"github.com/spf13/cobra"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Ask Gemini to critique a generated resume",
	RunE:  runFeedback,
}

var (
	feedbackResume       string
	feedbackHistoryID    string
	feedbackJob          string
	feedbackInstructions string
	feedbackRole         string
	feedbackIndustry     string
)

func init() {
	feedbackCmd.Flags().StringVar(&feedbackResume, "resume", "", "Path to a generated resume JSON file")
	feedbackCmd.Flags().StringVar(&feedbackHistoryID, "history-id", "", "ID of a history entry to review")
	feedbackCmd.Flags().StringVarP(&feedbackJob, "job", "j", "", "Path to a job description (plain text or HTML)")
	feedbackCmd.Flags().StringVar(&feedbackInstructions, "instructions", "", "Customization instructions used for the resume")
	feedbackCmd.Flags().StringVar(&feedbackRole, "role", "", "Target role")
	feedbackCmd.Flags().StringVar(&feedbackIndustry, "industry", "", "Target industry")

	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	doc, err := loadResume(ctx, feedbackResume, feedbackHistoryID)
	if err != nil {
		return err
	}

	job, err := readJobDescription(feedbackJob)
	if err != nil {
		return err
	}

	req := types.FeedbackRequest{
		Resume:                    *doc,
		JobDescription:            job,
		CustomizationInstructions: feedbackInstructions,
		TargetRole:                feedbackRole,
		TargetIndustry:            feedbackIndustry,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	gen, closeGen, err := newGenerator(ctx)
	if err != nil {
		return err
	}
	defer closeGen()

	feedback, err := gen.GetFeedback(ctx, req)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), feedback)
	return err
}
