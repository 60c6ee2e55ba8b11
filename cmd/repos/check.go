package repos

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/manifoldco/promptui"
	"github.com/minepkg/xsboot/internals/commands"
	"github.com/minepkg/xsboot/internals/utils"
	"github.com/minepkg/xsboot/pkg/repository"
	"github.com/spf13/cobra"
	"github.com/stoewer/go-strcase"
	"golang.org/x/exp/slices"
)

func newCheck() *commands.Command {
	runner := &checkRunner{interactive: utils.IsInteractive}
	cmd := commands.New(&cobra.Command{
		Use:   "check <label>...",
		Short: "Checks if labels refer to predefined repositories",
		Example: strings.Join([]string{
			"  xsboot repos check maven-central",
			"  xsboot repos check local sonatype-oss-releases",
		}, "\n"),
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: repository.Labels(),
	}, runner)
	return cmd
}

type checkRunner struct {
	interactive func() bool
}

func (c *checkRunner) RunE(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	var firstErr error

	for _, label := range args {
		p, err := repository.ParsePredefined(label)
		if err != nil {
			var unknown *repository.UnknownLabelError
			if !errors.As(err, &unknown) {
				return err
			}
			if len(args) == 1 && c.interactive() {
				p, err = selectLabel(unknown)
				if err != nil {
					return err
				}
			} else {
				if firstErr == nil {
					firstErr = &commands.CliError{
						Text:        unknown.Error(),
						Suggestions: suggestLabels(label),
						Err:         unknown,
					}
				}
				fmt.Fprintf(out, "%s %s\n", gchalk.Red("✗"), label)
				continue
			}
		}

		fmt.Fprintf(out, "%s %s (%s)\n", gchalk.Green("✓"), p, p.Identifier())
		if p.Deprecated() {
			if replacement, ok := p.Replacement(); ok {
				logger.Warn(fmt.Sprintf("%s is deprecated, use %s instead", p, replacement))
			} else {
				logger.Warn(fmt.Sprintf("%s is deprecated", p))
			}
		}
	}

	return firstErr
}

// suggestLabels returns hints for an unknown label. Identifiers and other
// spellings ("MavenCentral", "maven_central") are converted to kebab case
func suggestLabels(input string) []string {
	normalized := strcase.KebabCase(strings.TrimSpace(input))

	if p, err := repository.ParsePredefined(normalized); err == nil {
		return []string{fmt.Sprintf("Use %q instead", p.String())}
	}

	similar := []string{}
	if normalized != "" {
		for _, label := range repository.Labels() {
			if strings.Contains(label, normalized) || strings.Contains(normalized, label) {
				similar = append(similar, label)
			}
		}
	}
	if len(similar) > 0 {
		return []string{"Did you mean " + quoteAll(similar) + "?"}
	}
	return []string{`Run "xsboot repos list --all" to see all predefined repositories`}
}

func quoteAll(labels []string) string {
	quoted := make([]string, len(labels))
	for i, label := range labels {
		quoted[i] = fmt.Sprintf("%q", label)
	}
	return strings.Join(quoted, " or ")
}

// selectLabel lets the user pick a label. Suggested labels are listed first
func selectLabel(unknown *repository.UnknownLabelError) (repository.Predefined, error) {
	items := append([]string{}, unknown.Expected...)
	normalized := strcase.KebabCase(unknown.Input)
	slices.SortStableFunc(items, func(a, b string) bool {
		return strings.Contains(a, normalized) && !strings.Contains(b, normalized)
	})

	logger.Warn(fmt.Sprintf("%q is not a predefined repository", unknown.Input))
	label, err := utils.SelectPrompt(&promptui.Select{
		Label: "Repository",
		Items: items,
	})
	if err != nil {
		return 0, err
	}
	return repository.ParsePredefined(label)
}
