package main

import (
	"fmt"
	"os"

	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Automata is a workbench for deterministic machines",
	Long: `Automata builds, runs and serves deterministic finite, pushdown and
Turing machines from simple YAML or JSON definition files.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Int("step-limit", machine.DefaultStepLimit, "Cap on transitions before a run is cut off")
}
