package cmd

import (
	"fmt"

	"github.com/minepkg/xsboot/internals/commands"
	"github.com/minepkg/xsboot/internals/settings"
	"github.com/minepkg/xsboot/internals/utils"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the artifact cache",
}

func init() {
	info := commands.New(&cobra.Command{
		Use:   "info",
		Short: "Prints location and size of the artifact cache",
		Args:  cobra.NoArgs,
	}, &cacheInfoRunner{})

	cleanRunner := &cacheCleanRunner{}
	clean := commands.New(&cobra.Command{
		Use:   "clean",
		Short: "Deletes all cached artifacts",
		Args:  cobra.NoArgs,
	}, cleanRunner)
	clean.Flags().BoolVarP(&cleanRunner.yes, "yes", "y", false, "do not ask for confirmation")

	cacheCmd.AddCommand(info.Command, clean.Command)
	rootCmd.AddCommand(cacheCmd)
}

type cacheInfoRunner struct{}

func (c *cacheInfoRunner) RunE(cmd *cobra.Command, args []string) error {
	ws, err := settings.OpenWorkspace()
	if err != nil {
		return err
	}
	artifacts, err := ws.Cache()
	if err != nil {
		return err
	}
	stats, err := artifacts.Stats()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Location: %s\n", artifacts.Location())
	fmt.Fprintf(cmd.OutOrStdout(), "Files:    %s\n", utils.HumanInteger(stats.Files))
	fmt.Fprintf(cmd.OutOrStdout(), "Size:     %s\n", stats.HumanSize())
	return nil
}

type cacheCleanRunner struct {
	yes bool
}

func (c *cacheCleanRunner) RunE(cmd *cobra.Command, args []string) error {
	ws, err := settings.OpenWorkspace()
	if err != nil {
		return err
	}
	artifacts, err := ws.Cache()
	if err != nil {
		return err
	}
	stats, err := artifacts.Stats()
	if err != nil {
		return err
	}
	if stats.Files == 0 {
		logger.Info("The cache is empty")
		return nil
	}

	if !c.yes {
		if !utils.IsInteractive() {
			return &commands.CliError{
				Text:        "refusing to delete the cache without confirmation",
				Suggestions: []string{"Use --yes to delete it anyway"},
			}
		}
		question := fmt.Sprintf("Delete %d cached files (%s)?", stats.Files, stats.HumanSize())
		if !utils.Confirm(question) {
			logger.Info("Aborting")
			return nil
		}
	}

	if err := artifacts.Clean(); err != nil {
		return err
	}
	logger.Info(fmt.Sprintf(" ✓ Deleted %s", stats.HumanSize()))
	return nil
}
