package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/popquiz/internal/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List difficulty presets",
	Long:  `Shows every difficulty preset with its round settings.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	quiz, err := loadQuiz()
	if err != nil {
		return err
	}

	fmt.Println("Difficulties:")
	fmt.Println()
	fmt.Printf("  %-8s  %-6s  %-9s  %-5s  %s\n", "ID", "Colors", "New row", "Rows", "Target")
	fmt.Printf("  %-8s  %-6s  %-9s  %-5s  %s\n", "--", "------", "-------", "----", "------")

	for _, preset := range config.Presets() {
		p, err := quiz.Profile(preset)
		if err != nil {
			continue
		}
		target := "-"
		if !p.Endless() {
			target = fmt.Sprintf("%d", p.WinScore)
		}
		fmt.Printf("  %-8s  %-6d  %-9s  %-5d  %s\n", preset, p.Colors, p.SpawnInterval, p.InitialRows, target)
	}

	fmt.Println()
	fmt.Println("Run 'popquiz play <id>' to play.")
	return nil
}
