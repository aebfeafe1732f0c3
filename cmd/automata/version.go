package main

import (
	"fmt"
	"strings"

	automata "github.com/GNINE11/ProjAutomata-TC"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of automata",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("automata version %s\n", strings.TrimSpace(automata.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
