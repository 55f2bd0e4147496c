// Package cmd implements the command-line interface for buildvars.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tmessages/buildvars/color"
	"github.com/tmessages/buildvars/config"
	"github.com/tmessages/buildvars/constant"
	"github.com/tmessages/buildvars/icon"
	"github.com/tmessages/buildvars/key"
	"github.com/tmessages/buildvars/log"
	"github.com/tmessages/buildvars/secret"
	"github.com/tmessages/buildvars/style"
)

// store holds credentials for the secret subcommands and for registry loading.
var store secret.Store = secret.NewKeyring()

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., emoji, plain, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Force the debug build flag for this invocation")
	bindFlags()

	rootCmd.SetOut(os.Stdout)
}

// bindFlags lets the persistent flags override their viper keys.
// Flag values are never written to the config file.
func bindFlags() {
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))
	lo.Must0(viper.BindPFlag(key.DebugEnabled, rootCmd.PersistentFlags().Lookup("debug")))
}

// rootCmd defines the entry point for the buildvars application.
var rootCmd = &cobra.Command{
	Use:   constant.Buildvars,
	Short: "Inspect and manage the build variables and API credentials of the messaging client",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Build variables and API credentials of the messaging client"),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Refresh()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("version") {
			return versionCmd.RunE(versionCmd, args)
		}

		return cmd.Help()
	},
}

// loadRegistry resolves the registry from the configured sources and the keyring.
func loadRegistry(cmd *cobra.Command) (*config.Registry, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return config.Load(ctx, store)
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

	handleErr(rootCmd.ExecuteContext(context.Background()))
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

// success prints a confirmation line prefixed with the success icon.
func success(cmd *cobra.Command, format string, args ...any) {
	cmd.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}
