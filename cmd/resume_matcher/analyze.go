package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/schemas"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Long: "Score a PDF resume against a job description given as a file, inline text or a " +
		"job posting URL. Prints the similarity, feedback tier and skill gaps.",
	RunE: runAnalyze,
}

var (
	resumePath   string
	jobFile      string
	jobText      string
	jobURL       string
	outputFormat string
)

func init() {
	analyzeCmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to the resume PDF (required)")
	analyzeCmd.Flags().StringVarP(&jobFile, "job", "j", "", "Path to a job description text or PDF file")
	analyzeCmd.Flags().StringVar(&jobText, "job-text", "", "Job description text")
	analyzeCmd.Flags().StringVarP(&jobURL, "job-url", "u", "", "URL of a job posting to fetch")
	analyzeCmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or text")

	_ = analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagsOneRequired("job", "job-text", "job-url")
	analyzeCmd.MarkFlagsMutuallyExclusive("job", "job-text", "job-url")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if outputFormat != "json" && outputFormat != "text" {
		return fmt.Errorf("invalid --format %q: must be json or text", outputFormat)
	}

	document, err := os.ReadFile(resumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	description, err := loadDescription(cmd)
	if err != nil {
		return err
	}

	engine := matching.NewDefaultEngine(appConfig.Feedback.Organization, logger)
	result, err := engine.Analyze(document, description)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if outputFormat == "text" {
		observability.NewPrinter(cmd.OutOrStdout()).PrintMatchResult(result)
		return nil
	}
	return writeJSON(cmd, result)
}

// loadDescription reads the job description from whichever source flag was given.
func loadDescription(cmd *cobra.Command) (string, error) {
	switch {
	case jobFile != "":
		text, err := ingestion.FromFile(jobFile)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return text, nil
	case jobURL != "":
		// The operator picks the URL here, so private hosts such as an intranet job board are allowed.
		cfg := appConfig.Fetch
		cfg.AllowPrivateNetworks = true
		return ingestion.FromURL(cmd.Context(), newFetchClient(cfg), jobURL, logger)
	default:
		return jobText, nil
	}
}

func writeJSON(cmd *cobra.Command, result *matching.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := schemas.ValidateResultJSON(data); err != nil {
		return fmt.Errorf("result does not match schema: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
