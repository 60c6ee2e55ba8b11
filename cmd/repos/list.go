package repos

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/minepkg/xsboot/internals/commands"
	"github.com/minepkg/xsboot/internals/settings"
	"github.com/minepkg/xsboot/internals/utils"
	"github.com/minepkg/xsboot/pkg/repository"
	"github.com/spf13/cobra"
)

func newList() *commands.Command {
	runner := &listRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "list",
		Short: "Lists the predefined repositories",
		Long: `Lists the repositories that can be referred to by label alone.
Deprecated repositories are hidden unless --all is passed.`,
		Args: cobra.NoArgs,
	}, runner)

	cmd.Flags().BoolVarP(&runner.all, "all", "a", false, "include deprecated repositories")
	runner.output.register(cmd.Command)
	return cmd
}

type listRunner struct {
	all    bool
	output outputFlags
}

// predefinedEntry is the printed form of a predefined repository
type predefinedEntry struct {
	Label       string `json:"label" yaml:"label"`
	Identifier  string `json:"identifier" yaml:"identifier"`
	Deprecated  bool   `json:"deprecated" yaml:"deprecated"`
	Replacement string `json:"replacement,omitempty" yaml:"replacement,omitempty"`
	Location    string `json:"location" yaml:"location"`
}

func predefinedEntries(all bool, loc repository.Locations) []predefinedEntry {
	entries := []predefinedEntry{}
	for _, p := range repository.AllPredefined() {
		if p.Deprecated() && !all {
			continue
		}
		entry := predefinedEntry{
			Label:      p.String(),
			Identifier: p.Identifier(),
			Deprecated: p.Deprecated(),
		}
		if replacement, ok := p.Replacement(); ok {
			entry.Replacement = replacement.String()
		}
		if u := location(repository.NewBuiltin(p).Resolve(loc)); u != nil {
			entry.Location = u.Redacted()
		}
		entries = append(entries, entry)
	}
	return entries
}

func (l *listRunner) RunE(cmd *cobra.Command, args []string) error {
	ws, err := settings.OpenWorkspace()
	if err != nil {
		return err
	}
	loc, err := ws.Locations()
	if err != nil {
		return err
	}

	entries := predefinedEntries(l.all, loc)
	if l.output.structured() {
		return l.output.write(cmd.OutOrStdout(), entries)
	}

	table := utils.Table{}
	table.AddColumn("Label", 24)
	table.AddColumn("Identifier", 22)
	table.AddColumn("Location", 58)

	hidden := 0
	for _, p := range repository.AllPredefined() {
		if p.Deprecated() && !l.all {
			hidden++
		}
	}

	for _, entry := range entries {
		row := table.AddRow([]string{entry.Label, entry.Identifier, entry.Location})
		if entry.Deprecated {
			row.Style = lipgloss.NewStyle().Faint(true)
			if entry.Replacement != "" {
				row.Cells[2] = "deprecated, use " + entry.Replacement
			} else {
				row.Cells[2] = "deprecated"
			}
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), table.Render())
	if hidden > 0 {
		logger.Log(fmt.Sprintf("%d deprecated repositories hidden. Use --all to show them", hidden))
	}
	return nil
}
