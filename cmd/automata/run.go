package main

import (
	"fmt"
	"os"

	"github.com/GNINE11/ProjAutomata-TC/internal/cli"
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <file> <input>",
	Short: "Run a machine against an input string",
	Long:  `Loads a definition file, feeds the machine the input string and reports the verdict.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		m, err := cli.Load(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		limit, _ := cmd.Flags().GetInt("step-limit")
		res, err := m.Run(args[1], machine.WithStepLimit(limit))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		switch {
		case res.Accepted():
			fmt.Println("Accepted ✅")
		case res.Diagnostic != "":
			fmt.Printf("Rejected ❌ (%s)\n", res.Diagnostic)
		default:
			fmt.Println("Rejected ❌")
		}
		fmt.Printf("Halted in state %s after %d steps\n", res.State, res.Steps)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
