package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/manifoldco/promptui"
	"github.com/minepkg/xsboot/internals/commands"
	"github.com/minepkg/xsboot/internals/utils"
	"github.com/minepkg/xsboot/pkg/bootconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stoewer/go-strcase"
)

var projectName = regexp.MustCompile(`^([a-z0-9]|[a-z0-9][a-z0-9-]*[a-z0-9])$`)

func init() {
	runner := &initRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "init [name]",
		Short: "Creates a xsboot.toml in the current directory",
		Args:  cobra.MaximumNArgs(1),
	}, runner)

	cmd.Flags().BoolVarP(&runner.force, "force", "f", false, "Overwrite the xsboot.toml if one exists")
	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "Choose defaults for all questions. (same as --non-interactive)")

	rootCmd.AddCommand(cmd.Command)
}

type initRunner struct {
	force bool
	yes   bool
}

// defaultConfig uses the directory name as app name
func defaultConfig(dir string, name string) *bootconfig.Config {
	cfg := bootconfig.New()
	cfg.Scala.Version = viper.GetString("scalaversion")
	if cfg.Scala.Version == "" {
		cfg.Scala.Version = bootconfig.DefaultScalaVersion
	}
	if name == "" {
		name = strcase.KebabCase(filepath.Base(dir))
	}
	if projectName.MatchString(name) {
		cfg.App.Name = name
	}
	return cfg
}

func (i *initRunner) RunE(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := filepath.Join(wd, bootconfig.FileName)
	if _, err := os.Stat(target); err == nil && !i.force {
		return &commands.CliError{
			Text:        "This directory already contains a " + bootconfig.FileName,
			Suggestions: []string{"Use --force to overwrite it"},
		}
	}

	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	cfg := defaultConfig(wd, name)

	if !i.yes && utils.IsInteractive() {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	// an app without coordinates is allowed, a partial one is not
	if cfg.App.Org == "" && cfg.App.Version == "" {
		cfg.App.Name = ""
	}

	problems := cfg.Validate()
	for _, problem := range problems {
		if problem.Level == bootconfig.ErrorLevelWarn {
			logger.Warn(problem.Error())
		}
	}
	if err := problems.Fatal(); err != nil {
		return err
	}

	if err := os.WriteFile(target, cfg.Buffer().Bytes(), 0644); err != nil {
		return err
	}
	logger.Info(" ✓ Created " + bootconfig.FileName)
	return nil
}

func promptConfig(cfg *bootconfig.Config) error {
	logger.Info("[scala]")
	version, err := utils.StringPrompt(&promptui.Prompt{
		Label:   "Version",
		Default: cfg.Scala.Version,
		Validate: func(s string) error {
			if _, err := semver.NewVersion(s); err != nil {
				return errors.New("not a valid version")
			}
			return nil
		},
		AllowEdit: true,
	})
	if err != nil {
		return err
	}
	cfg.Scala.Version = version

	logger.Info("[app] (leave empty to skip)")
	fields := []struct {
		label string
		value *string
	}{
		{"Organization", &cfg.App.Org},
		{"Name", &cfg.App.Name},
		{"Version", &cfg.App.Version},
		{"Main class", &cfg.App.Class},
	}
	for _, field := range fields {
		value, err := utils.StringPrompt(&promptui.Prompt{
			Label:     field.label,
			Default:   *field.value,
			AllowEdit: true,
		})
		if err != nil {
			return err
		}
		*field.value = value
	}
	if cfg.App.Org == "" {
		return nil
	}

	crossVersioned, err := utils.SelectPrompt(&promptui.Select{
		Label: fmt.Sprintf("Append the scala binary version to %q", cfg.App.Name),
		Items: []string{"no", "yes"},
	})
	if err != nil {
		return err
	}
	cfg.App.CrossVersioned = crossVersioned == "yes"
	return nil
}
