package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	seedinfoSeed uint64
	seedinfoBrng string
)

var seedinfoCmd = &cobra.Command{
	Use:   "seedinfo",
	Short: "Print a seed's first draws and its JSON snapshot",
	Long: `Seed one of the module's BRNG algorithms, print its first three
NextUint32 draws, and dump the resulting engine state as JSON — useful
for confirming two processes agree on what a given seed produces.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var seed *uint64
		if cmd.Flags().Changed("seed") {
			seed = &seedinfoSeed
		}
		h, err := newHandle(seedinfoBrng, seed)
		if err != nil {
			return err
		}
		fmt.Printf("brng: %s\n", h.Name())
		if seed == nil {
			fmt.Println("seed: <drawn from entropy>")
		} else {
			fmt.Printf("seed: %d\n", seedinfoSeed)
		}
		for i := 0; i < 3; i++ {
			fmt.Printf("next_uint32[%d]: %d\n", i, h.NextUint32())
		}
		snap := h.State()
		out, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	seedinfoCmd.Flags().Uint64Var(&seedinfoSeed, "seed", 0, "RNG seed")
	seedinfoCmd.Flags().StringVar(&seedinfoBrng, "brng", "xoshiro256**", "algorithm: mt19937, threefry, xoshiro256**")
}
