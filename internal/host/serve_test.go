package host

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/themebuddy/internal/bridge"
)

func TestServe(t *testing.T) {
	logger := &bufLogger{}
	h, _ := newTestHost(t, WithLogger(logger))

	input := strings.Join([]string{
		`{"pluginMessage":{"type":"generate-design-system","collectionName":"Theme Buddy","modes":["light","dark"],"tokens":[{"name":"color/primary/base","kind":"color","values":{"light":"#3366FF","dark":"#3366FF"}}]}}`,
		`not json`,
		`{"pluginMessage":{"type":"notify","message":"hi"}}`,
		`{"pluginMessage":{"type":"update-design-token","tokenName":"color/primary/base","mode":"dark","value":"#000000"}}`,
		``,
	}, "\n")

	var out bytes.Buffer
	err := h.Serve(context.Background(), bridge.NewStream(strings.NewReader(input), &out))
	require.NoError(t, err)

	replies := bridge.NewStream(&out, nil)
	var got []bridge.Type
	for {
		m, err := replies.Receive()
		if err != nil {
			break
		}
		got = append(got, m.MessageType())
	}
	assert.Equal(t, []bridge.Type{bridge.TypeDesignSystemGenerated, bridge.TypeDesignTokenUpdated}, got)
	assert.Contains(t, logger.buf.String(), "skipped message")
}

func TestServe_InvalidRequestsGetFailedReplies(t *testing.T) {
	h, _ := newTestHost(t)

	input := strings.Join([]string{
		`{"pluginMessage":{"type":"update-design-token","tokenName":"color/primary/base","mode":"dark","value":""}}`,
		`{"pluginMessage":{"type":"copy-all-mode-variables","sourceMode":"light","targetMode":"light"}}`,
		`{"pluginMessage":{"type":"copy-all-mode-variables","collectionName":"missing","sourceMode":"light","targetMode":"dark"}}`,
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, h.Serve(context.Background(), bridge.NewStream(strings.NewReader(input), &out)))

	replies := bridge.NewStream(&out, nil)
	var got []bridge.Inbound
	for {
		m, err := replies.Receive()
		if err != nil {
			break
		}
		got = append(got, m.(bridge.Inbound))
	}
	require.Len(t, got, 3)

	assert.Equal(t, bridge.TypeDesignTokenUpdated, got[0].MessageType())
	assert.False(t, got[0].Outcome().Success)
	assert.Contains(t, got[0].Outcome().Error, "value is required")

	assert.Equal(t, bridge.TypeCopyModeVariablesResult, got[1].MessageType())
	assert.False(t, got[1].Outcome().Success)
	assert.Contains(t, got[1].Outcome().Error, "source and target mode")

	assert.False(t, got[2].Outcome().Success)
	assert.Contains(t, got[2].Outcome().Error, "missing")
}
