package cmd

import (
	"errors"
	"fmt"

	"github.com/mediathek-cli/mediathek/color"
	"github.com/mediathek-cli/mediathek/icon"
	"github.com/mediathek-cli/mediathek/open"
	"github.com/mediathek-cli/mediathek/source"
	"github.com/mediathek-cli/mediathek/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().BoolP("media", "m", false, "Open the first stream instead of the webpage")
	openCmd.Flags().StringP("with", "w", "", "Open with this application (e.g. mpv) instead of the default handler")
}

var openCmd = &cobra.Command{
	Use:   "open <urn|url>",
	Short: "Open the webpage or a stream of an item",
	Example: "  mediathek open urn:mediathek:zdf:item:blut-auf-gold-100 --media --with mpv\n" +
		"  mediathek open https://www.srf.ch/play/tv/sendung/video/x?id=8d56e7ed",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d := newDispatcher()
		item, err := d.MetadataForItem(cmd.Context(), toURN(d, args[0]))
		handleErr(err)

		target := item.WebpageURL
		if lo.Must(cmd.Flags().GetBool("media")) {
			media, ok := lo.Find(item.Media, func(m source.Media) bool { return m.URL != "" })
			if !ok {
				handleErr(errors.New("item has no streams"))
			}
			target = media.URL
		}
		if target == "" {
			handleErr(errors.New("item has no webpage"))
		}

		handleErr(open.Start(target, lo.Must(cmd.Flags().GetString("with"))))
		fmt.Printf("%s opened %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), target)
	},
}
