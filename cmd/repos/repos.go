package repos

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/minepkg/xsboot/internals/globals"
	"github.com/minepkg/xsboot/pkg/repository"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var logger = globals.Logger

// New returns the "repos" command with all sub commands
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "repos",
		Aliases: []string{"repositories"},
		Short:   "Inspect predefined and configured repositories",
	}
	cmd.AddCommand(newList().Command)
	cmd.AddCommand(newCheck().Command)
	cmd.AddCommand(newShow().Command)
	return cmd
}

// outputFlags adds --json and --yaml
type outputFlags struct {
	json bool
	yaml bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.json, "json", false, "print as json")
	cmd.Flags().BoolVar(&o.yaml, "yaml", false, "print as yaml")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func (o *outputFlags) structured() bool {
	return o.json || o.yaml
}

func (o *outputFlags) write(out io.Writer, v interface{}) error {
	if o.yaml {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// location returns the url of a resolved repository
func location(repo repository.Repository) *url.URL {
	switch r := repo.(type) {
	case repository.IvyRepository:
		return r.URL()
	case repository.MavenRepository:
		return r.URL()
	}
	return nil
}

// kind describes the layout of a repository
func kind(repo repository.Repository) string {
	switch repo.(type) {
	case repository.PredefinedRepository:
		return "predefined"
	case repository.IvyRepository:
		return "ivy"
	case repository.MavenRepository:
		return "maven"
	}
	return fmt.Sprintf("%T", repo)
}
