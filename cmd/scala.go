package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/xsboot/internals/commands"
	"github.com/minepkg/xsboot/internals/fetch"
	"github.com/minepkg/xsboot/internals/settings"
	"github.com/minepkg/xsboot/internals/utils"
	"github.com/minepkg/xsboot/pkg/scala"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	runner := &scalaRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "scala [version]",
		Short: "Fetches a scala version and prints its class path",
		Long: `Fetches the scala library and compiler jars of a version and prints the
class paths of the library loader and the full loader.
Uses the version of the xsboot.toml if no version is passed.`,
		Example: strings.Join([]string{
			"  xsboot scala 2.13.12",
			"  xsboot scala 3.3.1 --library-only",
		}, "\n"),
		Args: cobra.MaximumNArgs(1),
	}, runner)

	cmd.Flags().BoolVar(&runner.libraryOnly, "library-only", false, "only print the library class path")
	cmd.Flags().StringVar(&runner.scala2Library, "scala2-library", "", "scala 2.13 library used by scala 3")

	rootCmd.AddCommand(cmd.Command)
}

type scalaRunner struct {
	libraryOnly   bool
	scala2Library string
}

func (s *scalaRunner) RunE(cmd *cobra.Command, args []string) error {
	ws, err := settings.OpenWorkspace()
	if err != nil {
		return err
	}

	version := ws.ScalaVersion(viper.GetString("scalaversion"))
	if len(args) == 1 {
		version = args[0]
	}
	library2 := s.scala2Library
	if library2 == "" && ws.HasConfig() {
		library2 = ws.Config.Scala.Library2
	}

	modules, err := scala.ModulesFor(version, library2)
	if err != nil {
		return &commands.CliError{
			Text:        err.Error(),
			Err:         err,
			Suggestions: []string{"Use a scala 2 or 3 version like 2.13.12 or 3.3.1"},
		}
	}

	fetcher, _, err := ws.Fetcher()
	if err != nil {
		return err
	}
	fetcher.Boot = true

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	task := logger.NewTask(2)
	task.Step("📚", "Fetching scala "+utils.PrettyVersion(version))

	spinner := utils.NewMaybeSpinner(utils.IsInteractive())
	spinner.Update(fmt.Sprintf("Fetching %d jars", len(modules.All())))
	spinner.Start()
	results, err := fetcher.FetchAll(ctx, modules.All(), nil)
	spinner.Stop()
	if err != nil {
		return notFoundError(err)
	}

	paths := fetch.Paths(results)
	libraryJars := paths[:len(modules.Library)]
	compilerJars := paths[len(modules.Library):]

	task.Step("🔧", "Creating class loaders")
	provider, err := scala.NewProvider(version, libraryJars, compilerJars)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, gchalk.Bold("library:"))
	fmt.Fprintln(out, provider.LoaderLibraryOnly().String())
	if s.libraryOnly {
		return nil
	}
	fmt.Fprintln(out, gchalk.Bold("full:"))
	fmt.Fprintln(out, provider.Loader().String())
	return nil
}
