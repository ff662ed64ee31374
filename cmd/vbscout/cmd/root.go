package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	teamsFile string
	refsFile  string
	workers   int
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "vbscout",
	Short: "vbscout scrapes team rosters and statistics into joined per-player scouting records.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&teamsFile, "teams", "teams.json5", "teams config file")
	rootCmd.PersistentFlags().StringVar(&refsFile, "refs", "references.json5", "reference datasets config file")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 4, "max teams analyzed concurrently")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
