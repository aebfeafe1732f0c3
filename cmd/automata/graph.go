package main

import (
	"fmt"
	"os"

	"github.com/GNINE11/ProjAutomata-TC/internal/cli"
	"github.com/GNINE11/ProjAutomata-TC/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export the transition diagram",
	Long:  `Loads a definition file and outputs its transition diagram as Graphviz DOT or a Mermaid state diagram.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m, err := cli.Load(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "dot":
			fmt.Print(graph.GenerateDOT(m))
		case "mermaid":
			fmt.Print(graph.GenerateMermaid(m))
		default:
			fmt.Printf("Unknown format: %s. Supported: dot, mermaid\n", format)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringP("format", "f", "dot", "Diagram format: 'dot' or 'mermaid'")
}
