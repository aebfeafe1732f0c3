package main

import (
	"fmt"
	"os"

	"github.com/GNINE11/ProjAutomata-TC/internal/cli"
	"github.com/GNINE11/ProjAutomata-TC/internal/presentation/tui"
	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show a readable summary of a machine",
	Long:  `Loads a definition file and renders its states and transitions as a formatted fact sheet.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m, err := cli.Load(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		tui.PrintBanner()

		summary := cli.Summary(m)
		render := tui.NewRenderer()
		out, err := render(summary)
		if err != nil {
			// Fall back to the raw markdown when the terminal renderer chokes.
			fmt.Print(summary)
			return
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
