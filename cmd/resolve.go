package cmd

import (
	"os"

	"github.com/mediathek-cli/mediathek/render"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.SetOut(os.Stdout)
}

var resolveCmd = &cobra.Command{
	Use:     "resolve <url>",
	Short:   "Print the URN a publisher page URL addresses",
	Example: "  mediathek resolve https://www.zdf.de/magazine/heute-journal-104",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		u, err := newDispatcher().ResolveURLToURN(args[0])
		handleErr(err)
		handleErr(render.Line(cmd.OutOrStdout(), "urn", u, render.FromConfig()))
	},
}
