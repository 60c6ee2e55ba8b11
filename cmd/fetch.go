package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/xsboot/internals/commands"
	"github.com/minepkg/xsboot/internals/fetch"
	"github.com/minepkg/xsboot/internals/settings"
	"github.com/minepkg/xsboot/internals/utils"
	"github.com/minepkg/xsboot/pkg/coord"
	"github.com/spf13/cobra"
)

func init() {
	runner := &fetchRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "fetch <org:name:revision>...",
		Short: "Fetches artifacts from the configured repositories",
		Long: `Fetches the named artifacts without their dependencies.
Artifacts from remote repositories are stored in the cache, artifacts
from file repositories are used in place.`,
		Example: strings.Join([]string{
			"  xsboot fetch org.scala-lang:scala-library:2.13.12",
			"  xsboot fetch org.scala-sbt:sbt-launch:1.9.7 --boot",
			"  xsboot fetch com.example:tool:1.0:sources@jar",
		}, "\n"),
		Args: cobra.MinimumNArgs(1),
	}, runner)

	cmd.Flags().BoolVar(&runner.boot, "boot", false, "also use bootOnly repositories")
	cmd.Flags().BoolVar(&runner.locate, "locate", false, "only print where the artifacts are, without downloading")

	rootCmd.AddCommand(cmd.Command)
}

type fetchRunner struct {
	boot   bool
	locate bool
}

func (f *fetchRunner) RunE(cmd *cobra.Command, args []string) error {
	ids := make([]coord.ID, len(args))
	for i, arg := range args {
		id, err := coord.Parse(arg)
		if err != nil {
			return &commands.CliError{
				Text:        err.Error(),
				Err:         err,
				Suggestions: []string{`Use "organization:name:revision", for example "org.scala-lang:scala-library:2.13.12"`},
			}
		}
		ids[i] = id
	}

	ws, err := settings.OpenWorkspace()
	if err != nil {
		return err
	}
	fetcher, effective, err := ws.Fetcher()
	if err != nil {
		return err
	}
	fetcher.Boot = f.boot
	fetcher.OnAttempt = func(id coord.ID, a fetch.Attempt) {
		logger.Debug(fmt.Sprintf("%s not in %s: %s", id, a.Repository, a.Err))
	}
	logger.Debug("Using repositories from " + string(effective.Origin))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if f.locate {
		for _, id := range ids {
			res, err := fetcher.Locate(ctx, id)
			if err != nil {
				return notFoundError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", id, gchalk.Gray(res.Repository+" "+res.URL.Redacted()))
		}
		return nil
	}

	spinner := utils.NewMaybeSpinner(utils.IsInteractive())
	spinner.Update(fmt.Sprintf("Fetching %d artifacts", len(ids)))
	spinner.Start()
	results, err := fetcher.FetchAll(ctx, ids, func(p int) {
		spinner.Update(fmt.Sprintf("Fetching %d artifacts (%d%%)", len(ids), p))
	})
	spinner.Stop()
	if err != nil {
		return notFoundError(err)
	}

	for _, res := range results {
		source := res.Repository
		if res.Cached {
			source += ", cached"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", res.Path, gchalk.Gray("("+source+")"))
	}
	return nil
}

// notFoundError adds suggestions to fetch.NotFoundError
func notFoundError(err error) error {
	var notFound *fetch.NotFoundError
	if !errors.As(err, &notFound) {
		return err
	}
	return &commands.CliError{
		Text: err.Error(),
		Err:  err,
		Suggestions: []string{
			`Check the configured repositories with "xsboot repos show"`,
			`Use --boot to include bootOnly repositories`,
			`Store credentials for private repositories with "xsboot credentials set <host>"`,
		},
	}
}
