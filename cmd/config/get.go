package config

import (
	"fmt"
	"strings"

	"github.com/minepkg/xsboot/internals/commands"
	"github.com/minepkg/xsboot/internals/settings"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:               "get <key>",
		Short:             "Gets a global config value",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeKeys,
	}, &getRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type getRunner struct{}

func (i *getRunner) RunE(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])

	if _, ok := settings.Entries[key]; !ok {
		return &commands.CliError{
			Text:        fmt.Sprintf("config key \"%s\" does not exist", key),
			Suggestions: []string{"Run \"xsboot config list\" to see all keys"},
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Printing config entry:")
	fmt.Fprintf(cmd.OutOrStdout(), "  %s: %v\n", key, viper.Get(key))

	return nil
}
