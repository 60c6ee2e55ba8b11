package repos

import (
	"fmt"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/xsboot/internals/commands"
	"github.com/minepkg/xsboot/internals/repoconfig"
	"github.com/minepkg/xsboot/internals/settings"
	"github.com/minepkg/xsboot/pkg/repository"
	"github.com/spf13/cobra"
)

func newShow() *commands.Command {
	runner := &showRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "show",
		Short: "Shows the repositories in effect for the current directory",
		Long: `Shows the repositories used by fetch and scala.
The list comes from the first of: --repositories-file, xsboot.toml,
the global "repositories" config, ~/.sbt/repositories or the defaults.`,
		Args: cobra.NoArgs,
	}, runner)
	runner.output.register(cmd.Command)
	return cmd
}

type showRunner struct {
	output outputFlags
}

// effectiveEntry is the printed form of a configured repository
type effectiveEntry struct {
	ID         string   `json:"id" yaml:"id"`
	Kind       string   `json:"kind" yaml:"kind"`
	Definition string   `json:"definition" yaml:"definition"`
	Location   string   `json:"location" yaml:"location"`
	Options    []string `json:"options,omitempty" yaml:"options,omitempty"`
}

type showOutput struct {
	Origin       repoconfig.Origin `json:"origin" yaml:"origin"`
	Path         string            `json:"path,omitempty" yaml:"path,omitempty"`
	Repositories []effectiveEntry  `json:"repositories" yaml:"repositories"`
}

func options(repo repository.Repository) []string {
	opts := []string{}
	if repo.BootOnly() {
		opts = append(opts, "bootOnly")
	}
	if ivy, ok := repo.(repository.IvyRepository); ok {
		if ivy.MavenCompatible() {
			opts = append(opts, "mavenCompatible")
		}
		if ivy.DescriptorOptional() {
			opts = append(opts, "descriptorOptional")
		}
		if ivy.SkipConsistencyCheck() {
			opts = append(opts, "skipConsistencyCheck")
		}
	}
	return opts
}

func effectiveEntries(effective *repoconfig.Effective, loc repository.Locations) []effectiveEntry {
	entries := make([]effectiveEntry, len(effective.Repositories))
	resolved := repository.ResolveAll(effective.Repositories, loc)
	for i, repo := range effective.Repositories {
		entries[i] = effectiveEntry{
			ID:         repo.ID(),
			Kind:       kind(repo),
			Definition: fmt.Sprint(repo),
			Options:    options(resolved[i]),
		}
		if u := location(resolved[i]); u != nil {
			entries[i].Location = u.Redacted()
		}
	}
	return entries
}

func (s *showRunner) RunE(cmd *cobra.Command, args []string) error {
	ws, err := settings.OpenWorkspace()
	if err != nil {
		return err
	}
	effective, err := ws.Repositories()
	if err != nil {
		return &commands.CliError{
			Text:        err.Error(),
			Err:         err,
			Suggestions: []string{`Run "xsboot repos list --all" to see all predefined repositories`},
		}
	}
	loc, err := ws.Locations()
	if err != nil {
		return err
	}

	result := showOutput{
		Origin:       effective.Origin,
		Path:         effective.Path,
		Repositories: effectiveEntries(effective, loc),
	}
	if s.output.structured() {
		return s.output.write(cmd.OutOrStdout(), result)
	}

	out := cmd.OutOrStdout()
	origin := string(result.Origin)
	if result.Path != "" {
		origin += " " + gchalk.Gray(result.Path)
	}
	fmt.Fprintf(out, "Repositories from %s\n\n", origin)
	for _, entry := range result.Repositories {
		fmt.Fprintf(out, "  %s %s\n", gchalk.Bold(entry.ID), gchalk.Gray("("+entry.Kind+")"))
		fmt.Fprintf(out, "    %s\n", entry.Location)
		if len(entry.Options) > 0 {
			fmt.Fprintf(out, "    %s\n", gchalk.Gray(strings.Join(entry.Options, ", ")))
		}
	}
	return nil
}
