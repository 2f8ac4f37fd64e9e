package obj

import (
	"strings"
	"testing"
	"time"

	"github.com/milk9111/pandamonium/levels"
	"github.com/milk9111/pandamonium/prefabs"
	"github.com/stretchr/testify/require"
)

const tick = time.Second / 60

func parseMap(t *testing.T, rows ...string) *levels.Map {
	t.Helper()
	m, err := levels.ParseString(strings.Join(rows, "\n"), levels.Strict())
	require.NoError(t, err)
	return m
}

func newTestLevel(t *testing.T, tuning prefabs.Tuning, rows ...string) *Level {
	t.Helper()
	l, err := NewLevel(parseMap(t, rows...), tuning)
	require.NoError(t, err)
	return l
}

func mustLevel(t *testing.T, rows ...string) *Level {
	t.Helper()
	return newTestLevel(t, prefabs.DefaultTuning(), rows...)
}

func idleTick() TickInput {
	return TickInput{Elapsed: tick}
}
