package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainOutput renders lipgloss styles without escape codes for the duration of the test
func plainOutput(t *testing.T) {
	t.Helper()
	profile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(profile) })
}

type failingRunner struct {
	err error
}

func (f *failingRunner) RunE(cmd *cobra.Command, args []string) error {
	return f.err
}

func TestNew_reportsErrors(t *testing.T) {
	plainOutput(t)
	EmojiEnabled = false
	defer func() { EmojiEnabled = true }()

	code := -1
	exit = func(c int) { code = c }
	defer func() { exit = os.Exit }()

	cause := errors.New("boom")
	cmd := New(&cobra.Command{Use: "test"}, &failingRunner{&CliError{
		Text:        "could not do the thing",
		Suggestions: []string{"try again"},
		Err:         cause,
	}})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "could not do the thing")
	assert.Contains(t, out.String(), "try again")
}

func TestNew_success(t *testing.T) {
	called := false
	exit = func(int) { called = true }
	defer func() { exit = os.Exit }()

	cmd := New(&cobra.Command{Use: "test"}, &failingRunner{nil})
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.False(t, called)
}

func TestCliError_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	err := fmt.Errorf("wrapped: %w", &CliError{Text: "text", Err: cause})

	var cliErr *CliError
	require.True(t, errors.As(err, &cliErr))
	assert.ErrorIs(t, err, cause)
}

func TestReport_plainError(t *testing.T) {
	plainOutput(t)

	out := &bytes.Buffer{}
	Report(out, errors.New("plain failure"))
	assert.Contains(t, out.String(), "Error: plain failure")
}
