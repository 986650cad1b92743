package cmd

import (
	"os"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/mediathek-cli/mediathek/render"
	"github.com/mediathek-cli/mediathek/source"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var schemaTargets = map[string]any{
	"item":     &source.Item{},
	"program":  &source.Program{},
	"feed":     &source.Feed{},
	"programs": []*source.Program{},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.SetOut(os.Stdout)
}

// schemaCmd generates JSON schemas for the records printed with --json.
var schemaCmd = &cobra.Command{
	Use:       "schema [item|program|feed|programs]",
	Short:     "Generate the JSON schema of a record printed with --json",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: lo.Keys(schemaTargets),
	Run: func(cmd *cobra.Command, args []string) {
		target := "item"
		if len(args) > 0 {
			target = args[0]
		}

		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return "mediathek." + t.Name()
		}

		handleErr(render.JSON(cmd.OutOrStdout(), reflector.Reflect(schemaTargets[target]), true))
	},
}
