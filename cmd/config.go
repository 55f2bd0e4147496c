package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tmessages/buildvars/color"
	"github.com/tmessages/buildvars/config"
	"github.com/tmessages/buildvars/filesystem"
	"github.com/tmessages/buildvars/icon"
	"github.com/tmessages/buildvars/key"
	"github.com/tmessages/buildvars/log"
	"github.com/tmessages/buildvars/style"
	"github.com/tmessages/buildvars/util"
	"github.com/tmessages/buildvars/where"
)

func errUnknownKey(k string) error {
	closest := lo.MinBy(lo.Keys(config.Default), func(a string, b string) bool {
		return levenshtein.Distance(k, a) < levenshtein.Distance(k, b)
	})
	msg := fmt.Sprintf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(k),
		style.Fg(color.Yellow)(closest),
	)

	return errors.New(msg)
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

// keyArg picks the key from the first positional argument or the --key flag.
func keyArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) >= 1 {
		return args[0], nil
	}

	if flagKey, _ := cmd.Flags().GetString("key"); flagKey != "" {
		return flagKey, nil
	}

	return "", errors.New("key is required as an argument or --key flag")
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// configCmd serves as the parent command for managing configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage build variables, credentials and tool settings",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Specify the configuration keys to retrieve information for")
	configInfoCmd.Flags().StringP("filter", "f", "", "Fuzzy filter keys")
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configInfoCmd displays metadata and descriptions for configuration fields.
var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display detailed information and descriptions for configuration fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			keys   = lo.Must(cmd.Flags().GetStringSlice("key"))
			filter = lo.Must(cmd.Flags().GetString("filter"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			fields = lo.Values(config.Default)
		)

		if len(keys) > 0 {
			fields = make([]config.Field, 0, len(keys))

			for _, k := range keys {
				if _, ok := config.Default[k]; !ok {
					return errUnknownKey(k)
				}

				fields = append(fields, config.Default[k])
			}
		}

		if filter != "" {
			matches := fuzzy.FindFold(filter, lo.Map(fields, func(f config.Field, _ int) string { return f.Key }))
			fields = lo.Filter(fields, func(f config.Field, _ int) bool {
				return lo.Contains(matches, f.Key)
			})
		}

		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})

		fields = lo.Map(fields, func(f config.Field, _ int) config.Field {
			return f.WithStore(store)
		})

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			return encoder.Encode(lo.Map(fields, func(f config.Field, _ int) *config.Field { return &f }))
		}

		for i, field := range fields {
			cmd.Print(field.Pretty())

			if i < len(fields)-1 {
				cmd.Println()
				cmd.Println()
			}
		}
		cmd.Println()

		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configSetCmd.Flags().StringP("key", "k", "", "The configuration key to update")
	configSetCmd.Flags().StringP("value", "v", "", "The new value to assign to the configuration key")
	configSetCmd.Flags().Bool("file", false, "Write credentials to the config file instead of the keyring")
	_ = configSetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configSetCmd updates the value of a specific configuration key.
var configSetCmd = &cobra.Command{
	Use:               "set [key] [value]",
	Short:             "Update the value of a specified configuration key",
	Long:              "Update the value of a configuration key.\nCredentials go to the system keyring unless --file is given.",
	Args:              cobra.MaximumNArgs(2),
	ValidArgsFunction: completionConfigKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := keyArg(cmd, args)
		if err != nil {
			return err
		}

		var raw string
		if len(args) >= 2 {
			raw = args[1]
		} else if cmd.Flags().Changed("value") {
			raw = lo.Must(cmd.Flags().GetString("value"))
		} else {
			return errors.New("value is required as an argument or --value flag")
		}

		field, ok := config.Default[k]
		if !ok {
			return errUnknownKey(k)
		}

		v, err := config.Coerce(k, raw)
		if err != nil {
			return err
		}

		if field.Secret && !lo.Must(cmd.Flags().GetBool("file")) {
			if err := store.Set(k, raw); err != nil {
				return err
			}
			log.Infof("stored %s in keyring", k)
			success(cmd, "stored %s in the keyring", style.Fg(color.Purple)(k))
			return nil
		}

		if err := config.Persist(map[string]any{k: v}); err != nil {
			return err
		}

		shown := fmt.Sprintf("%v", v)
		if field.Secret {
			shown = config.Mask(raw)
		}
		log.Infof("set %s", k)
		success(cmd, "set %s to %s", style.Fg(color.Purple)(k), style.Fg(color.Yellow)(shown))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configGetCmd.Flags().StringP("key", "k", "", "The specific configuration key to retrieve")
	configGetCmd.Flags().BoolP("reveal", "r", false, "Print credentials unmasked")
	_ = configGetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configGetCmd retrieves the current value of a configuration key.
var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Retrieve the current value of a specified configuration key",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := keyArg(cmd, args)
		if err != nil {
			return err
		}

		field, ok := config.Default[k]
		if !ok {
			return errUnknownKey(k)
		}

		if !config.IsRegistryKey(k) {
			cmd.Println(viper.Get(k))
			return nil
		}

		reg, err := loadRegistry(cmd)
		if err != nil {
			return err
		}

		v := reg.Lookup(k).MustGet()
		if field.Secret && !lo.Must(cmd.Flags().GetBool("reveal")) {
			v = config.Mask(fmt.Sprint(v))
		}

		cmd.Println(v)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Forcefully overwrite the existing configuration file")
}

// configWriteCmd writes a config file holding the non-credential defaults.
var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write a config file holding the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			force          = lo.Must(cmd.Flags().GetBool("force"))
			configFilePath = where.ConfigFile()
		)

		if filesystem.Exists(configFilePath) {
			if !force {
				return fmt.Errorf("config file %s already exists, use --force to overwrite it", configFilePath)
			}
			if err := util.Delete(configFilePath); err != nil {
				return err
			}
		}

		settings := lo.MapValues(
			lo.OmitBy(config.Default, func(_ string, f config.Field) bool { return f.Secret }),
			func(f config.Field, _ string) any { return f.Value },
		)
		if err := config.Persist(settings); err != nil {
			return err
		}

		success(cmd, "wrote config to %s", configFilePath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

// configDeleteCmd removes the configuration file.
var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Permanently remove the configuration file",
	Aliases: []string{"remove"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := util.Delete(where.ConfigFile()); err != nil {
			return err
		}

		success(cmd, "deleted config")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().StringP("key", "k", "", "The configuration key to restore to its default value")
	configResetCmd.Flags().BoolP("all", "a", false, "Restore all configuration settings to their defaults")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	configResetCmd.MarkFlagsOneRequired("key", "all")
	_ = configResetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configResetCmd restores configuration keys to their default values.
var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore a specified configuration key to its default value",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			k   = lo.Must(cmd.Flags().GetString("key"))
			all = lo.Must(cmd.Flags().GetBool("all"))
		)

		var defaults map[string]any
		if all {
			defaults = lo.MapValues(config.Default, func(f config.Field, _ string) any { return f.Value })
		} else if _, ok := config.Default[k]; !ok {
			return errUnknownKey(k)
		} else {
			defaults = map[string]any{k: config.Default[k].Value}
		}

		if err := config.Persist(defaults); err != nil {
			return err
		}

		if all {
			success(cmd, "reset %s", util.Quantify(len(config.Default), "config value", "config values"))
		} else {
			success(cmd, "reset %s to default value %s",
				style.Fg(color.Purple)(k),
				style.Fg(color.Yellow)(fmt.Sprintf("%v", config.Default[k].Value)),
			)
		}

		if key.IsSecret(k) || all {
			cmd.Printf("%s keyring entries are kept, use %s to remove them\n",
				icon.Get(icon.Lock), style.Bold("buildvars secret delete"))
		}
		return nil
	},
}
