package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestChain(t *testing.T) {
	out, err := run(t, "chain", "--values", "1,2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `a=1 b=2 c="2" sum=3`)
	assert.Contains(t, lines[1], `a=2 b=4 c="4" sum=6`)
}

func TestAnimate(t *testing.T) {
	t.Run("prints frames", func(t *testing.T) {
		out, err := run(t, "animate", "--from", "0", "--to", "10", "--duration", "1s", "--fps", "4")
		require.NoError(t, err)

		assert.Contains(t, out, "   2.500  animating")
		assert.Contains(t, out, "   5.000  animating")
		assert.Contains(t, out, "  10.000  done")
	})

	t.Run("unknown easing", func(t *testing.T) {
		_, err := run(t, "animate", "--easing", "wobble")
		assert.EqualError(t, err, `unknown easing "wobble"`)
	})

	t.Run("invalid fps", func(t *testing.T) {
		_, err := run(t, "animate", "--fps", "0")
		assert.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Debug("hidden")
	assert.Equal(t, 0, buf.Len())

	logger.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLoggerFromContext(t *testing.T) {
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))

	l := log.New(&bytes.Buffer{})
	assert.Same(t, l, loggerFromContext(withLogger(context.Background(), l)))
}
