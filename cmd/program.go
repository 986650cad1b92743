package cmd

import (
	"fmt"
	"os"

	"github.com/mediathek-cli/mediathek/color"
	"github.com/mediathek-cli/mediathek/icon"
	"github.com/mediathek-cli/mediathek/query"
	"github.com/mediathek-cli/mediathek/render"
	"github.com/mediathek-cli/mediathek/source"
	"github.com/mediathek-cli/mediathek/style"
	"github.com/mediathek-cli/mediathek/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(programCmd)
	programCmd.SetOut(os.Stdout)
}

var programCmd = &cobra.Command{
	Use:     "program <urn|url>",
	Short:   "Print the metadata of a show or series",
	Example: "  mediathek program urn:mediathek:zdf:program:heute-journal-104",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d := newDispatcher()
		program, err := d.MetadataForProgram(cmd.Context(), toURN(d, args[0]))
		handleErr(err)
		handleErr(render.Program(cmd.OutOrStdout(), program, render.FromConfig()))
	},
}

func init() {
	rootCmd.AddCommand(feedCmd)
	feedCmd.Flags().StringP("select", "s", "all", "Narrow the items down: first, last, all, N, A-B or @text@")
	feedCmd.SetOut(os.Stdout)
}

var feedCmd = &cobra.Command{
	Use:   "feed <urn|url>",
	Short: "List the most recent items of a program",
	Example: "  mediathek feed https://www.zdf.de/magazine/heute-journal-104 --select first\n" +
		"  mediathek feed urn:mediathek:arte:program:RC-025017 --select @Konzert@",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		selector, err := render.ParseSelector(lo.Must(cmd.Flags().GetString("select")))
		handleErr(err)

		d := newDispatcher()

		erase := util.PrintErasable(icon.Get(icon.Progress) + " Fetching feed...")
		feed, err := d.ProgramFeed(cmd.Context(), toURN(d, args[0]))
		erase()
		handleErr(err)

		feed.Items = selector(feed.Items)
		handleErr(render.Feed(cmd.OutOrStdout(), feed, render.FromConfig()))
	},
}

func init() {
	rootCmd.AddCommand(programsCmd)
	programsCmd.Flags().StringP("filter", "f", "", "Only list programs whose name matches")
	programsCmd.SetOut(os.Stdout)
}

var programsCmd = &cobra.Command{
	Use:               "programs <publisher>",
	Short:             "List every program a publisher offers",
	Example:           "  mediathek programs 3sat --filter wissen",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionPublishers,
	Run: func(cmd *cobra.Command, args []string) {
		publisher := args[0]
		if _, err := source.ParsePublisher(publisher); err != nil {
			ids := lo.Map(source.Publishers(), func(p source.Publisher, _ int) string { return p.String() })
			if closest, ok := query.Closest(publisher, ids).Get(); ok {
				handleErr(errUnknownPublisher(publisher, closest))
			}
			handleErr(err)
		}

		erase := util.PrintErasable(icon.Get(icon.Progress) + " Fetching programs...")
		programs, err := newDispatcher().ProgramList(cmd.Context(), publisher)
		erase()
		handleErr(err)

		programs = query.Programs(programs, lo.Must(cmd.Flags().GetString("filter")))
		handleErr(render.Programs(cmd.OutOrStdout(), programs, render.FromConfig()))
	},
}

func errUnknownPublisher(publisher, closest string) error {
	return fmt.Errorf(
		"unknown publisher %s, did you mean %s?",
		style.Fg(color.Red)(publisher),
		style.Fg(color.Yellow)(closest),
	)
}
