package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mediathek-cli/mediathek/color"
	"github.com/mediathek-cli/mediathek/icon"
	"github.com/mediathek-cli/mediathek/key"
	"github.com/mediathek-cli/mediathek/provider"
	"github.com/mediathek-cli/mediathek/render"
	"github.com/mediathek-cli/mediathek/style"
	"github.com/mediathek-cli/mediathek/token"
	"github.com/mediathek-cli/mediathek/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// tokenProviders returns the providers named in args, or every provider that
// depends on an API token when args is empty.
func tokenProviders(args []string) []*provider.Provider {
	withToken := lo.Filter(provider.Builtins(), func(p *provider.Provider, _ int) bool {
		return p.TokenName != ""
	})
	if len(args) == 0 {
		return withToken
	}

	return lo.Map(args, func(arg string, _ int) *provider.Provider {
		p, ok := provider.Get(arg)
		if !ok {
			handleErr(fmt.Errorf("unknown publisher %s", style.Fg(color.Red)(arg)))
		}
		if p.TokenName == "" {
			handleErr(fmt.Errorf("%s does not use an API token", p.Name))
		}
		return p
	})
}

func completionTokenPublishers(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(tokenProviders(nil), func(p *provider.Provider, _ int) string {
		return p.ID.String()
	}), cobra.ShellCompDirectiveNoFileComp
}

func mask(tok string) string {
	if len(tok) <= 8 {
		return strings.Repeat("*", len(tok))
	}
	return tok[:4] + strings.Repeat("*", len(tok)-8) + tok[len(tok)-4:]
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Inspect and manage the API tokens scraped from publisher pages",
}

type tokenStatus struct {
	Publisher string     `json:"publisher"`
	Name      string     `json:"name"`
	Stored    bool       `json:"stored"`
	Token     string     `json:"token,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func init() {
	tokenCmd.AddCommand(tokenShowCmd)
	tokenShowCmd.Flags().BoolP("reveal", "r", false, "Print tokens unmasked")
	tokenShowCmd.SetOut(os.Stdout)
}

var tokenShowCmd = &cobra.Command{
	Use:               "show [publisher...]",
	Short:             "Show which tokens are stored",
	ValidArgsFunction: completionTokenPublishers,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := token.FromConfig()
		handleErr(err)
		reveal := lo.Must(cmd.Flags().GetBool("reveal"))

		var records map[string]token.Record
		if file, ok := store.(*token.FileStore); ok {
			records = file.Records()
		}

		statuses := lo.Map(tokenProviders(args), func(p *provider.Provider, _ int) tokenStatus {
			tok, ok := store.Get(p.TokenName)
			if !reveal {
				tok = mask(tok)
			}
			status := tokenStatus{Publisher: p.Name, Name: p.TokenName, Stored: ok, Token: tok}
			if r, ok := records[p.TokenName]; ok {
				status.UpdatedAt = lo.ToPtr(r.UpdatedAt)
			}
			return status
		})

		if viper.GetBool(key.OutputJson) {
			handleErr(render.JSON(cmd.OutOrStdout(), statuses, viper.GetBool(key.OutputPretty)))
			return
		}

		cmd.Printf("%s %s\n", style.Faint("store"), viper.GetString(key.TokenStore))
		for _, s := range statuses {
			value := style.Fg(color.Red)("none")
			if s.Stored {
				value = style.Fg(color.Green)(s.Token)
			}
			if s.UpdatedAt != nil {
				value += " " + style.Faint(s.UpdatedAt.Format(time.DateTime))
			}
			cmd.Printf("%s %s %s %s\n", icon.Get(icon.Key), style.Bold(s.Publisher), style.Faint(s.Name), value)
		}
	},
}

func init() {
	tokenCmd.AddCommand(tokenRefreshCmd)
}

var tokenRefreshCmd = &cobra.Command{
	Use:               "refresh [publisher...]",
	Short:             "Scrape fresh tokens from the publisher pages",
	ValidArgsFunction: completionTokenPublishers,
	Run: func(cmd *cobra.Command, args []string) {
		deps, err := provider.DepsFromConfig()
		handleErr(err)

		if viper.GetString(key.TokenStore) == token.BackendMemory {
			cmd.PrintErrf("%s token.store is %q, refreshed tokens are dropped on exit\n", style.Fg(color.Yellow)("!"), token.BackendMemory)
		}

		for _, p := range tokenProviders(args) {
			erase := util.PrintErasable(fmt.Sprintf("%s Refreshing %s token...", icon.Get(icon.Progress), p.Name))
			_, err := deps.Tokens.Refresh(cmd.Context(), p.TokenName, p.TokenSeedURL)
			erase()
			handleErr(err)

			fmt.Printf("%s %s token refreshed\n", style.Fg(color.Green)(icon.Get(icon.Success)), p.Name)
		}
	},
}

func init() {
	tokenCmd.AddCommand(tokenClearCmd)
	tokenClearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var tokenClearCmd = &cobra.Command{
	Use:               "clear [publisher...]",
	Short:             "Delete stored tokens",
	ValidArgsFunction: completionTokenPublishers,
	Run: func(cmd *cobra.Command, args []string) {
		providers := tokenProviders(args)

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			names := lo.Map(providers, func(p *provider.Provider, _ int) string { return p.Name })
			confirm := survey.Confirm{
				Message: fmt.Sprintf("Delete the stored %s?", util.Quantify(len(names), "token", "tokens")+" ("+strings.Join(names, ", ")+")"),
				Default: false,
			}
			var response bool
			handleErr(survey.AskOne(&confirm, &response))
			if !response {
				return
			}
		}

		deps, err := provider.DepsFromConfig()
		handleErr(err)

		for _, p := range providers {
			handleErr(deps.Tokens.Forget(p.TokenName))
			fmt.Printf("%s %s token cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)), p.Name)
		}
	},
}
