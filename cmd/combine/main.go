package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	var verbose int

	rootCmd := &cobra.Command{
		Use:   "combine",
		Short: "Exercise the combine parser toolkit from the command line",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newCalcCmd())
	rootCmd.AddCommand(newCharsetCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
