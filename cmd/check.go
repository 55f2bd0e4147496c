package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tmessages/buildvars/color"
	"github.com/tmessages/buildvars/config"
	"github.com/tmessages/buildvars/icon"
	"github.com/tmessages/buildvars/key"
	"github.com/tmessages/buildvars/style"
	"github.com/tmessages/buildvars/util"
)

// feature is an optional capability of the client unlocked by credentials.
type feature struct {
	name    string
	enabled func(*config.Registry) bool
}

var features = []feature{
	{"platform API", func(r *config.Registry) bool {
		return r.Enabled(key.AppID) && r.Enabled(key.AppSecret)
	}},
	{"crash reporting", func(r *config.Registry) bool { return r.ActiveCrashKey() != "" }},
	{"search", func(r *config.Registry) bool { return r.Enabled(key.SearchKey) }},
	{"places", func(r *config.Registry) bool {
		return r.Enabled(key.PlacesKey) && r.Enabled(key.PlacesID)
	}},
	{"maps", func(r *config.Registry) bool { return r.Enabled(key.MapsKey) }},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("strict", false, "Exit with an error when any feature is disabled")
}

// checkCmd reports which optional client features have credentials configured.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report which client features are configured and which are disabled",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cmd)
		if err != nil {
			return err
		}

		disabled := lo.Filter(features, func(f feature, _ int) bool { return !f.enabled(reg) })

		for _, f := range features {
			on := f.enabled(reg)
			ic := icon.Get(icon.Success)
			if !on {
				ic = icon.Get(icon.Off)
			}
			cmd.Printf("%s %-16s %s\n", ic, f.name, style.Status(on))
		}

		if len(disabled) == 0 {
			return nil
		}

		names := lo.Map(disabled, func(f feature, _ int) string { return f.name })
		cmd.Println()
		cmd.Println(style.Box(color.Yellow, fmt.Sprintf(
			"%s disabled: %s\nSet the missing credentials with %s",
			util.Capitalize(util.Quantify(len(disabled), "feature", "features")),
			strings.Join(names, ", "),
			style.Bold("buildvars secret set <key>"),
		)))

		if lo.Must(cmd.Flags().GetBool("strict")) {
			return fmt.Errorf("%s disabled", util.Quantify(len(disabled), "feature", "features"))
		}

		return nil
	},
}
