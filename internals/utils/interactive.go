package utils

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
)

// IsTerminal reports if stdout is a terminal
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// IsInteractive is false when "noninteractive" is configured or stdout is no terminal
func IsInteractive() bool {
	return !viper.GetBool("noninteractive") && IsTerminal()
}
