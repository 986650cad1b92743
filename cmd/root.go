// Package cmd implements the command-line interface for mediathek.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/mediathek-cli/mediathek/color"
	"github.com/mediathek-cli/mediathek/constant"
	"github.com/mediathek-cli/mediathek/dispatch"
	"github.com/mediathek-cli/mediathek/icon"
	"github.com/mediathek-cli/mediathek/key"
	"github.com/mediathek-cli/mediathek/log"
	"github.com/mediathek-cli/mediathek/provider"
	"github.com/mediathek-cli/mediathek/source"
	"github.com/mediathek-cli/mediathek/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("json", "j", false, "Print records as JSON")
	lo.Must0(viper.BindPFlag(key.OutputJson, rootCmd.PersistentFlags().Lookup("json")))
}

// rootCmd defines the entry point for the mediathek application.
var rootCmd = &cobra.Command{
	Use:   constant.Mediathek,
	Short: "Query the video libraries of ARD, ZDF, 3sat, Arte and SRF",
	Long: style.Bold(constant.Mediathek) + "\n" +
		style.New().Italic(true).Foreground(color.HiCyan).Render("    - Query the video libraries of ARD, ZDF, 3sat, Arte and SRF"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}
		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

func newDispatcher() *dispatch.Dispatcher {
	deps, err := provider.DepsFromConfig()
	handleErr(err)
	return dispatch.New(deps)
}

// toURN accepts either a URN or a publisher page URL.
func toURN(d *dispatch.Dispatcher, arg string) string {
	if strings.HasPrefix(arg, "urn:") {
		return arg
	}
	u, err := d.ResolveURLToURN(arg)
	handleErr(err)
	return u.String()
}

func completionPublishers(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return lo.Map(source.Publishers(), func(p source.Publisher, _ int) string {
		return p.String()
	}), cobra.ShellCompDirectiveNoFileComp
}
