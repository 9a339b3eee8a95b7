package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/skills"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List known skills, or the skills found in a file",
	Long:  "Without --file, print the skill vocabulary. With --file, print the vocabulary skills found in a text or PDF file.",
	RunE:  runSkills,
}

var skillsFile string

func init() {
	skillsCmd.Flags().StringVar(&skillsFile, "file", "", "Text or PDF file to scan for skills")
	rootCmd.AddCommand(skillsCmd)
}

func runSkills(cmd *cobra.Command, _ []string) error {
	vocab := skills.DefaultVocabulary()
	printer := observability.NewPrinter(cmd.OutOrStdout())

	if skillsFile == "" {
		printer.PrintSkills(fmt.Sprintf("Skill vocabulary (%d)", vocab.Len()), vocab.Entries())
		return nil
	}

	text, err := ingestion.FromFile(skillsFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", skillsFile, err)
	}

	found := skills.Extract(text, vocab)
	printer.PrintSkills(fmt.Sprintf("Skills found (%d)", found.Len()), found.Slice())
	return nil
}
