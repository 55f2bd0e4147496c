package cmd

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"github.com/tmessages/buildvars/config"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
}

// schemaCmd prints the JSON schema of the registry values.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the build variables",
	RunE: func(cmd *cobra.Command, args []string) error {
		reflector := jsonschema.Reflector{DoNotReference: true}
		schema := reflector.Reflect(&config.Vars{})
		schema.Title = "buildvars"

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(schema)
	},
}
