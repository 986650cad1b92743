package cmd

import (
	"os"

	"github.com/mediathek-cli/mediathek/icon"
	"github.com/mediathek-cli/mediathek/render"
	"github.com/mediathek-cli/mediathek/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(itemCmd)
	itemCmd.SetOut(os.Stdout)
}

var itemCmd = &cobra.Command{
	Use:   "item <urn|url>",
	Short: "Print the metadata, streams and captions of a single video",
	Example: "  mediathek item urn:mediathek:ard:item:Y3JpZDovL2Rhc2Vyc3RlLmRlL3RhZ2Vzc2NoYXU\n" +
		"  mediathek item https://www.arte.tv/de/videos/098777-000-A/jackie-chan/",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d := newDispatcher()

		erase := util.PrintErasable(icon.Get(icon.Progress) + " Fetching item...")
		item, err := d.MetadataForItem(cmd.Context(), toURN(d, args[0]))
		erase()
		handleErr(err)

		handleErr(render.Item(cmd.OutOrStdout(), item, render.FromConfig()))
	},
}
