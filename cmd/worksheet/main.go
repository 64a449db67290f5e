// Command worksheet converts budget worksheets into tabular records.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbose int
		logPath string
	)

	rootCmd := &cobra.Command{
		Use:          "worksheet",
		Short:        "Extract line items from budget worksheets",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(verbose, logPath)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write log to file instead of stderr")

	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newSpansCmd())

	return rootCmd
}

func configureLogging(verbose int, path string) {
	if path == "" {
		commonlog.Configure(verbose, nil)
		return
	}
	commonlog.Configure(verbose, &path)
}
