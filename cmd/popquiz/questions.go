package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/popquiz/internal/config"
	"github.com/vovakirdan/popquiz/internal/trivia"
)

var flagCategory string

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Show the question bank",
	Long: `List the questions of the bank in use, or print the embedded bank as
YAML to start a custom one.

Examples:
  popquiz questions
  popquiz questions --category science
  popquiz questions --questions ./my-bank.yaml
  popquiz questions --export > my-bank.yaml`,
	RunE: runQuestions,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default game configuration",
	Long: `Print the embedded game configuration as YAML. Save it to
~/.popquiz/configs/popquiz.yaml or pass it with --config to customize.`,
	Run: func(_ *cobra.Command, _ []string) {
		//nolint:errcheck // Nothing useful to do on a failed stdout write
		os.Stdout.Write(config.GetDefaultYAML())
	},
}

var flagExport bool

func init() {
	questionsCmd.Flags().StringVar(&flagCategory, "category", "", "Only show this category")
	questionsCmd.Flags().BoolVar(&flagExport, "export", false, "Print the embedded bank as YAML")
}

func runQuestions(_ *cobra.Command, _ []string) error {
	if flagExport {
		_, err := os.Stdout.Write(trivia.GetDefaultYAML())
		return err
	}

	bank, err := loadBank()
	if err != nil {
		return err
	}

	fmt.Printf("%d questions in %s\n\n", bank.Len(), strings.Join(bank.Categories(), ", "))
	for _, q := range bank.Questions() {
		if flagCategory != "" && q.Category != flagCategory {
			continue
		}
		fmt.Printf("  [%s] %s\n", q.Category, q.Prompt)
		fmt.Printf("      %s\n", strings.Join(q.Answers, " / "))
	}
	return nil
}
