package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/xsboot/internals/commands"
	"github.com/minepkg/xsboot/internals/globals"
	"github.com/minepkg/xsboot/internals/settings"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:               "set <key> <value>",
		Short:             "Sets a global config value",
		Example:           "  xsboot config set repositories local,maven-central\n  xsboot config set throttle 5",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeKeys,
	}, &setRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type setRunner struct{}

func (i *setRunner) RunE(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])

	newValue, err := settings.ParseValue(key, args[1])
	if err != nil {
		return err
	}

	previousValue := viper.Get(key)
	previousStringValue := fmt.Sprintf("%v", previousValue)
	if previousValue == nil {
		previousStringValue = "(unset)"
	}
	viper.Set(key, newValue)

	fmt.Fprintf(
		cmd.OutOrStdout(),
		"Changing config entry:\n  %s: %s → %v\n",
		key,
		gchalk.Strikethrough(previousStringValue),
		gchalk.Bold(fmt.Sprintf("%v", newValue)),
	)

	if err := os.MkdirAll(globals.GlobalDir, 0755); err != nil {
		return err
	}
	return viper.WriteConfigAs(filepath.Join(globals.GlobalDir, "config.toml"))
}
