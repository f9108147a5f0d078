package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	version = "1.0.0"
	gitRepo = "github.com/randcore/brngkit"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("brngtool version %s\n", version)
		fmt.Printf("Bit generators: MT19937, ThreeFry-4x32, Xoshiro256**\n")
		fmt.Printf("Repository: %s\n", gitRepo)
	},
}
