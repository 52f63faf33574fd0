package cli

import (
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the spendlens version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("spendlens", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
