package bridge

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHost answers every request successfully and records what it saw.
type recordingHost struct {
	mu   sync.Mutex
	seen []Type
}

func (h *recordingHost) record(t Type) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = append(h.seen, t)
}

func (h *recordingHost) UpdateDesignToken(_ context.Context, m UpdateDesignToken) DesignTokenUpdated {
	h.record(m.MessageType())
	return DesignTokenUpdated{Result: OK(), TokenName: m.TokenName, Mode: m.Mode, Value: m.Value}
}

func (h *recordingHost) CopyTokenValue(_ context.Context, m CopyTokenValue) TokenValueCopied {
	h.record(m.MessageType())
	return TokenValueCopied{Result: OK(), TokenName: m.TokenName, Value: m.Value}
}

func (h *recordingHost) CopyAllModeVariables(_ context.Context, m CopyAllModeVariables) CopyModeVariablesResult {
	h.record(m.MessageType())
	return CopyModeVariablesResult{Result: OK(), Copied: 2}
}

func (h *recordingHost) DuplicateTokensFile(_ context.Context, m DuplicateTokensFile) TokensFileDuplicated {
	h.record(m.MessageType())
	return TokensFileDuplicated{Result: Failed(errors.New("read only"))}
}

func (h *recordingHost) GenerateDesignSystem(_ context.Context, m GenerateDesignSystem) DesignSystemGenerated {
	h.record(m.MessageType())
	return DesignSystemGenerated{Result: OK(), Collection: m.Collection, Variables: len(m.Tokens)}
}

func (h *recordingHost) Notify(_ context.Context, m Notify) {
	h.record(m.MessageType())
}

func (h *recordingHost) BulkUpdateNavbarLinks(_ context.Context, m BulkUpdateNavbarLinks) NavbarLinksUpdated {
	h.record(m.MessageType())
	return NavbarLinksUpdated{Result: OK(), Count: len(m.Links)}
}

func (h *recordingHost) BulkUpdateStatusbarLinks(_ context.Context, m BulkUpdateStatusbarLinks) StatusbarLinksUpdated {
	h.record(m.MessageType())
	return StatusbarLinksUpdated{Result: OK(), Count: len(m.Links)}
}

func (h *recordingHost) DebugVariableOperations(_ context.Context, m DebugVariableOperations) DebugVariableOperationsResult {
	h.record(m.MessageType())
	return DebugVariableOperationsResult{Result: OK(), Links: 0}
}

type recordingUI struct {
	got []Inbound
}

func (u *recordingUI) OnDesignTokenUpdated(m DesignTokenUpdated) {
	u.got = append(u.got, m)
}

func (u *recordingUI) OnTokenValueCopied(m TokenValueCopied) {
	u.got = append(u.got, m)
}

func (u *recordingUI) OnCopyModeVariablesResult(m CopyModeVariablesResult) {
	u.got = append(u.got, m)
}

func (u *recordingUI) OnTokensFileDuplicated(m TokensFileDuplicated) {
	u.got = append(u.got, m)
}

func (u *recordingUI) OnDesignSystemGenerated(m DesignSystemGenerated) {
	u.got = append(u.got, m)
}

func (u *recordingUI) OnNavbarLinksUpdated(m NavbarLinksUpdated) {
	u.got = append(u.got, m)
}

func (u *recordingUI) OnStatusbarLinksUpdated(m StatusbarLinksUpdated) {
	u.got = append(u.got, m)
}

func (u *recordingUI) OnDebugVariableOperationsResult(m DebugVariableOperationsResult) {
	u.got = append(u.got, m)
}

func allOutbound() []Outbound {
	return []Outbound{
		UpdateDesignToken{TokenName: "a", Mode: "light", Value: "#000000"},
		CopyTokenValue{TokenName: "a", Value: "#000000"},
		CopyAllModeVariables{SourceMode: "light", TargetMode: "dark"},
		DuplicateTokensFile{Collection: "c"},
		GenerateDesignSystem{Collection: "c", Modes: []string{"light"}, Tokens: []TokenPayload{{Name: "a"}}},
		Notify{Message: "hi"},
		BulkUpdateNavbarLinks{},
		BulkUpdateStatusbarLinks{},
		DebugVariableOperations{},
	}
}

func TestDispatchOutbound_RepliesWithMatchingType(t *testing.T) {
	h := &recordingHost{}
	ctx := context.Background()

	for _, m := range allOutbound() {
		reply, err := DispatchOutbound(ctx, h, m)
		require.NoError(t, err)

		want, hasReply := ReplyType(m.MessageType())
		if !hasReply {
			assert.Nil(t, reply, m.MessageType())
			continue
		}
		require.NotNil(t, reply, m.MessageType())
		assert.Equal(t, want, reply.MessageType())
	}
	assert.Len(t, h.seen, 9)
}

func TestDispatchOutbound_Nil(t *testing.T) {
	_, err := DispatchOutbound(context.Background(), &recordingHost{}, nil)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestDispatchInbound(t *testing.T) {
	h := &recordingHost{}
	ui := &recordingUI{}

	for _, m := range allOutbound() {
		reply, err := DispatchOutbound(context.Background(), h, m)
		require.NoError(t, err)
		if reply != nil {
			require.NoError(t, DispatchInbound(ui, reply))
		}
	}
	assert.Len(t, ui.got, 8)

	assert.ErrorIs(t, DispatchInbound(ui, nil), ErrUnknownType)
}

func TestLocalPost(t *testing.T) {
	h := &recordingHost{}
	p := Local{Handler: h}

	reply, err := p.Post(context.Background(), CopyAllModeVariables{SourceMode: "light", TargetMode: "dark"})
	require.NoError(t, err)
	assert.Equal(t, CopyModeVariablesResult{Result: OK(), Copied: 2}, reply)

	_, err = p.Post(context.Background(), CopyAllModeVariables{SourceMode: "light"})
	assert.ErrorIs(t, err, ErrInvalidMessage)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Post(ctx, DebugVariableOperations{})
	assert.ErrorIs(t, err, context.Canceled)

	assert.Len(t, h.seen, 1)
}
