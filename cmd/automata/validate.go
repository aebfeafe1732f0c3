package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/GNINE11/ProjAutomata-TC/internal/cli"
	"github.com/GNINE11/ProjAutomata-TC/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a machine definition for consistency",
	Long: `Loads a definition file and reports the first construction rule it
violates, if any. Also warns about declared states that no chain of
transitions can reach.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m, err := cli.Load(args[0])
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		if unreachable := validator.Unreachable(m); len(unreachable) > 0 {
			parts := make([]string, len(unreachable))
			for i, st := range unreachable {
				parts[i] = string(st)
			}
			fmt.Printf("Warning: unreachable states: %s\n", strings.Join(parts, ", "))
		}

		fmt.Printf("%s definition is valid! ✅\n", strings.ToUpper(string(m.Kind())))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
