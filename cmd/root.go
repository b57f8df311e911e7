package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig string
	flagSource string
	flagDate   string
	flagSeed   uint64
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "meallottery",
	Short: "Draw a random kidney-friendly meal for today",
	Long: `meallottery loads a shared meal sheet (store, item, price, opening days) and
draws one option per meal slot from the stores that are open today.`,
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "CSV export URL (overrides source.url)")
	rootCmd.PersistentFlags().StringVar(&flagDate, "date", "", "draw as if today were this date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "seed for reproducible draws (0 = random)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "write debug logs")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(drawCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(openCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("meallottery %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
