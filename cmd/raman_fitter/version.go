package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of raman_fitter",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("raman_fitter %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
