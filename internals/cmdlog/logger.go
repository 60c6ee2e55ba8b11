package cmdlog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/jwalton/gchalk"
)

// Logger loggs pretty stuff to the console
type Logger struct {
	out       io.Writer
	emojis    bool
	chalk     *gchalk.Builder
	indention int
	// Verbose enables Debug output
	Verbose bool
}

// helper for indention
func (l *Logger) println(a string) {
	fmt.Fprintln(l.out, strings.Repeat(" ", l.indention)+a)
}

func (l *Logger) sprintEmoji(e string) string {
	if l.emojis {
		return e + " "
	}
	return ""
}

// Headline prints a cyan bold line
func (l *Logger) Headline(s string) {
	l.println(l.chalk.WithCyan().Bold(s))
}

// Info prints a "normal" line
func (l *Logger) Info(s string) {
	l.println(s)
}

// Log prints a gray line
func (l *Logger) Log(s string) {
	l.println(l.chalk.Gray(s))
}

// Debug prints a gray line, but only in verbose mode
func (l *Logger) Debug(s string) {
	if l.Verbose {
		l.Log(s)
	}
}

// Warn will print a warning
func (l *Logger) Warn(s string) {
	l.println(l.sprintEmoji("⚠️ ") + l.chalk.WithYellow().Bold(s))
}

// Error prints an error line without exiting
func (l *Logger) Error(s string) {
	l.println(l.sprintEmoji("💣") + l.chalk.WithRed().Bold("Error: ") + l.chalk.Bold(s))
}

// Fail will print the given message and then exit 1
func (l *Logger) Fail(s string) {
	l.Error(s)
	os.Exit(1)
}

// NewTask returns a new Task logger
func (l *Logger) NewTask(end int) *Task {
	logger := *l
	logger.indention = 2
	return &Task{&logger, 0, end}
}

// DisableColor turns off colors and emojis
func (l *Logger) DisableColor() {
	l.chalk.SetLevel(gchalk.LevelNone)
	l.emojis = false
}

// New returns a new Logger writing to stdout
func New() *Logger {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter returns a new Logger writing to out
func NewWithWriter(out io.Writer) *Logger {
	l := &Logger{
		out:    out,
		emojis: runtime.GOOS != "windows",
		chalk:  gchalk.New(),
	}

	// disable color for CI
	if os.Getenv("CI") != "" {
		l.DisableColor()
	}
	return l
}

// Task logs but with progress
type Task struct {
	*Logger
	current int
	end     int
}

// Step prints progress
func (t *Task) Step(e string, s string) {
	t.current++
	text := t.chalk.Cyan(fmt.Sprintf(
		"[%d / %d] %s%s",
		t.current,
		t.end,
		t.sprintEmoji(e),
		s,
	))

	// step headlines have no indentation
	fmt.Fprintln(t.out, text)
}
