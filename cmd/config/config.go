package config

import (
	"fmt"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/xsboot/internals/commands"
	"github.com/minepkg/xsboot/internals/settings"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var SubCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global config options",
}

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "list",
		Short: "Lists all global config options",
		Args:  cobra.NoArgs,
	}, &listRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type listRunner struct{}

func (l *listRunner) RunE(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, key := range settings.Keys() {
		value := viper.Get(key)
		rendered := fmt.Sprintf("%v", value)
		if value == nil || rendered == "" || rendered == "[]" {
			rendered = gchalk.Gray("(unset)")
		}
		fmt.Fprintf(out, "  %s: %s\n", gchalk.Bold(key), rendered)
		fmt.Fprintf(out, "    %s\n", gchalk.Gray(settings.Entries[key].Help))
	}
	return nil
}

func completeKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	keys := []string{}
	for _, key := range settings.Keys() {
		if strings.HasPrefix(key, toComplete) {
			keys = append(keys, key)
		}
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}
