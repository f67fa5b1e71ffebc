package plugin

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/themebuddy/internal/bridge"
	"github.com/asteroid-belt/themebuddy/internal/host"
)

// TestSession_OverStream drives a host through newline-delimited JSON, the
// way the host runs as a separate process.
func TestSession_OverStream(t *testing.T) {
	database := testDB(t)
	h := host.New(database)

	toHostR, toHostW := io.Pipe()
	toUIR, toUIW := io.Pipe()

	served := make(chan error, 1)
	go func() {
		served <- h.Serve(context.Background(), bridge.NewStream(toHostR, toUIW))
		_ = toUIW.Close()
	}()

	remote := bridge.NewRemoteHost(bridge.NewStream(toUIR, toHostW))
	s := NewSession(remote)

	_, err := s.LoadDesignSystem(twoColors())
	require.NoError(t, err)

	n, err := s.PushDesignSystem(context.Background())
	require.NoError(t, err)
	assert.Equal(t, s.Registry().Len(), n)

	require.NoError(t, s.Notify(context.Background(), "done", false))

	res, err := s.DebugVariables(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, res.Collections, 1)
	assert.Equal(t, n, res.Collections[0].Variables)

	require.NoError(t, toHostW.Close())
	require.NoError(t, <-served)
	require.NoError(t, remote.Close())
}
