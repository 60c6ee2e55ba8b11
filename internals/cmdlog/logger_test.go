package cmdlog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger() (*Logger, *bytes.Buffer) {
	out := &bytes.Buffer{}
	l := NewWithWriter(out)
	l.DisableColor()
	return l, out
}

func TestLogger(t *testing.T) {
	l, out := newTestLogger()

	l.Headline("Fetching")
	l.Info("info")
	l.Debug("hidden")
	l.Verbose = true
	l.Debug("shown")
	l.Warn("careful")
	l.Error("broken")

	assert.Equal(t, "Fetching\ninfo\nshown\ncareful\nError: broken\n", out.String())
}

func TestTask_Step(t *testing.T) {
	l, out := newTestLogger()

	task := l.NewTask(2)
	task.Step("📚", "library")
	task.Info("detail")
	task.Step("🔧", "compiler")

	assert.Equal(t, "[1 / 2] library\n  detail\n[2 / 2] compiler\n", out.String())
	// the parent logger keeps its indention
	l.Info("root")
	assert.Contains(t, out.String(), "\nroot\n")
}
