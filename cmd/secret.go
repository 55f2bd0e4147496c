package cmd

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tmessages/buildvars/color"
	"github.com/tmessages/buildvars/config"
	"github.com/tmessages/buildvars/key"
	"github.com/tmessages/buildvars/log"
	"github.com/tmessages/buildvars/style"
)

func completionSecretKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return key.Secrets, cobra.ShellCompDirectiveNoFileComp
}

// secretArg validates the credential key given as the first argument.
func secretArg(args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("key is required")
	}

	k := args[0]
	if _, ok := config.Default[k]; !ok {
		return "", errUnknownKey(k)
	}
	if !key.IsSecret(k) {
		return "", fmt.Errorf("%s is not a credential, use %s", k, style.Bold("buildvars config set"))
	}

	return k, nil
}

func init() {
	rootCmd.AddCommand(secretCmd)
}

// secretCmd groups keyring operations for credential fields.
var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage credentials stored in the system keyring",
}

func init() {
	secretCmd.AddCommand(secretSetCmd)
}

var secretSetCmd = &cobra.Command{
	Use:               "set <key> [value]",
	Short:             "Store a credential in the keyring, prompting for it when no value is given",
	Args:              cobra.RangeArgs(1, 2),
	ValidArgsFunction: completionSecretKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := secretArg(args)
		if err != nil {
			return err
		}

		var value string
		if len(args) == 2 {
			value = args[1]
		} else {
			prompt := &survey.Password{Message: fmt.Sprintf("Value for %s:", k)}
			if err := survey.AskOne(prompt, &value); err != nil {
				return err
			}
		}

		if err := store.Set(k, value); err != nil {
			return err
		}

		log.Infof("stored %s in keyring", k)
		success(cmd, "stored %s", style.Fg(color.Purple)(k))
		return nil
	},
}

func init() {
	secretCmd.AddCommand(secretGetCmd)
	secretGetCmd.Flags().BoolP("reveal", "r", false, "Print the credential unmasked")
}

var secretGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print a credential stored in the keyring",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionSecretKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := secretArg(args)
		if err != nil {
			return err
		}

		value, err := store.Get(k)
		if err != nil {
			return err
		}

		if !lo.Must(cmd.Flags().GetBool("reveal")) {
			value = config.Mask(value)
		}

		cmd.Println(value)
		return nil
	},
}

func init() {
	secretCmd.AddCommand(secretDeleteCmd)
}

var secretDeleteCmd = &cobra.Command{
	Use:               "delete <key>",
	Short:             "Remove a credential from the keyring",
	Aliases:           []string{"remove"},
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionSecretKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := secretArg(args)
		if err != nil {
			return err
		}

		if err := store.Delete(k); err != nil {
			return err
		}

		success(cmd, "deleted %s", style.Fg(color.Purple)(k))
		return nil
	},
}
