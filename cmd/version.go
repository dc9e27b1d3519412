package cmd

import (
	"fmt"

	"github.com/birmacher/econ-bot/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the version of the Economics Explainer Bot`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Economics Explainer Bot v%s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
