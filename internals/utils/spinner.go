package utils

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// MaybeSpinner is a spinner that can also just log text
type MaybeSpinner struct {
	Spin    bool
	Spinner *spinner.Spinner
	out     io.Writer
}

// Start might start the spinner
func (m *MaybeSpinner) Start() {
	if m.Spin {
		m.Spinner.Start()
	}
}

// Stop will stop the spinner
func (m *MaybeSpinner) Stop() {
	if m.Spin {
		m.Spinner.Stop()
	}
}

// Update will update the spinner text. Without spinning the text is printed
func (m *MaybeSpinner) Update(t string) {
	m.Spinner.Suffix = " " + t

	if !m.Spin {
		fmt.Fprintln(m.out, t)
	}
}

// NewMaybeSpinner will return a new MaybeSpinner
func NewMaybeSpinner(spin bool) *MaybeSpinner {
	s := &MaybeSpinner{
		Spin:    spin,
		Spinner: spinner.New(spinner.CharSets[9], 300*time.Millisecond),
		out:     os.Stdout,
	}
	s.Spinner.Prefix = " "
	return s
}
