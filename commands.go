package main

import (
	"github.com/spf13/cobra"
)

var (
	labelList string

	rootCmd = &cobra.Command{
		Use:   "pctl",
		Short: "Parse, canonicalize and inspect probabilistic temporal-logic properties",
	}

	fmtCmd = &cobra.Command{
		Use:   "fmt [file]",
		Short: "Rewrite a .props file in canonical form on stdout",
		Args:  cobra.ExactArgs(1),
		Run:   runFmt, // Defined in cmd_props.go
	}

	inspectCmd = &cobra.Command{
		Use:   "inspect [file]",
		Short: "Report the operator kind and bound of every property in a file",
		Args:  cobra.ExactArgs(1),
		Run:   runInspect, // Defined in cmd_props.go
	}

	checkCmd = &cobra.Command{
		Use:   "check [file]",
		Short: "Evaluate the propositional parts of each property against a set of labels",
		Args:  cobra.ExactArgs(1),
		Run:   runCheck, // Defined in cmd_props.go
	}
)

func init() {
	checkCmd.Flags().StringVar(&labelList, "labels", "", "comma-separated labels that hold in the state under test")

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(checkCmd)
}
