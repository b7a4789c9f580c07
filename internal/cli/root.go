// Package cli implements the rotina command tree.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// version can be overridden at build time via:
	// go build -ldflags "-X github.com/rotina/rotina/internal/cli.version=1.2.3"
	version = "0.3.0"
	logo    = "\n" +
		"             _   _\n" +
		"  _ __ ___ | |_(_)_ __   __ _\n" +
		" | '__/ _ \\| __| | '_ \\ / _` |\n" +
		" | | | (_) | |_| | | | | (_| |\n" +
		" |_|  \\___/ \\__|_|_| |_|\\__,_|\n"
)

var rootCmd = &cobra.Command{
	Use:   "rotina",
	Short: "Rotina - Personal Routine Assistant",
	Long:  color.CyanString(logo) + "\nA voice-and-text assistant that keeps track of your daily routine.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(routineCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(historyCmd)
}

func printHeader(title string) {
	fmt.Println(color.CyanString(logo))
	if title != "" {
		fmt.Println(title)
		fmt.Println("─────────────────────")
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader("🏷️ Rotina Version")
		fmt.Printf("Version: %s\n", version)
	},
}
