package main

import (
	"fmt"

	"github.com/jonathan/intelliresume/internal/observability"
	"github.com/jonathan/intelliresume/internal/types"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a structured resume with Gemini",
	Long: `Generate a resume from your details (a JSON file in the builder's input format), an optional
existing resume (.txt or .md) and an optional job description. The resume is printed as JSON or
written to --out, and saved to the history unless --no-history is set.`,
	RunE: runGenerate,
}

var (
	generateInput        string
	generateResumeFile   string
	generateJob          string
	generateInstructions string
	generateOut          string
	generateNoHistory    bool
	generateVerbose      bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "input", "i", "", "Path to a JSON file with your personal details, experience, education and skills")
	generateCmd.Flags().StringVarP(&generateResumeFile, "resume-file", "r", "", "Existing resume to build from (.txt or .md)")
	generateCmd.Flags().StringVarP(&generateJob, "job", "j", "", "Path to a job description (plain text or HTML)")
	generateCmd.Flags().StringVar(&generateInstructions, "instructions", "", "Extra customization instructions for the model")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Write the resume JSON to this file instead of stdout")
	generateCmd.Flags().BoolVar(&generateNoHistory, "no-history", false, "Do not save the result to the history")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print a summary of the generated resume to stderr")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var req types.GenerateRequest
	if generateInput != "" {
		if err := readJSONFile(generateInput, &req.Input); err != nil {
			return err
		}
	}

	var err error
	if req.UploadedResumeText, err = readUploadedResume(generateResumeFile); err != nil {
		return err
	}
	if req.JobDescription, err = readJobDescription(generateJob); err != nil {
		return err
	}
	req.CustomizationInstructions = generateInstructions

	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	gen, closeGen, err := newGenerator(ctx)
	if err != nil {
		return err
	}
	defer closeGen()

	doc, err := gen.GenerateResume(ctx, req)
	if err != nil {
		return err
	}

	if generateVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintResume(doc)
	}

	if !generateNoHistory {
		manager, closeHistory, err := openHistory(ctx)
		if err != nil {
			return err
		}
		defer closeHistory()

		entry, err := manager.Add(ctx, *doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved to history as %s\n", entry.ID)
	}

	return writeJSON(cmd.OutOrStdout(), generateOut, doc)
}
