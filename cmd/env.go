package cmd

import (
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tmessages/buildvars/color"
	"github.com/tmessages/buildvars/config"
	"github.com/tmessages/buildvars/style"
	"github.com/tmessages/buildvars/where"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

// envCmd displays the current process values for all supported environment variables.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the collection of supported environment variables",
	Long:  "Display the collection of supported environment variables and their current process values.\nCredential values are masked.",
	RunE: func(cmd *cobra.Command, args []string) error {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		names := lo.MapToSlice(config.Default, func(_ string, f config.Field) lo.Tuple2[string, bool] {
			return lo.T2(f.Env(), f.Secret)
		})
		names = append(names, lo.T2(where.EnvConfigPath, false))
		slices.SortFunc(names, func(a, b lo.Tuple2[string, bool]) int {
			if a.A < b.A {
				return -1
			}
			if a.A > b.A {
				return 1
			}
			return 0
		})

		for _, env := range names {
			value := os.Getenv(env.A)
			present := value != ""

			if !present && setOnly {
				continue
			}

			if present && unsetOnly {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(env.A))
			cmd.Print("=")

			switch {
			case !present:
				cmd.Println(style.Fg(color.Red)("unset"))
			case env.B:
				cmd.Println(style.Fg(color.Green)(config.Mask(value)))
			default:
				cmd.Println(style.Fg(color.Green)(value))
			}
		}

		return nil
	},
}
