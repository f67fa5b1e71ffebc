package bridge

import (
	"context"
	"fmt"
)

// OutboundHandler handles every outbound message. The host implements it.
type OutboundHandler interface {
	UpdateDesignToken(ctx context.Context, m UpdateDesignToken) DesignTokenUpdated
	CopyTokenValue(ctx context.Context, m CopyTokenValue) TokenValueCopied
	CopyAllModeVariables(ctx context.Context, m CopyAllModeVariables) CopyModeVariablesResult
	DuplicateTokensFile(ctx context.Context, m DuplicateTokensFile) TokensFileDuplicated
	GenerateDesignSystem(ctx context.Context, m GenerateDesignSystem) DesignSystemGenerated
	Notify(ctx context.Context, m Notify)
	BulkUpdateNavbarLinks(ctx context.Context, m BulkUpdateNavbarLinks) NavbarLinksUpdated
	BulkUpdateStatusbarLinks(ctx context.Context, m BulkUpdateStatusbarLinks) StatusbarLinksUpdated
	DebugVariableOperations(ctx context.Context, m DebugVariableOperations) DebugVariableOperationsResult
}

// InboundHandler handles every host reply. The UI session implements it.
type InboundHandler interface {
	OnDesignTokenUpdated(m DesignTokenUpdated)
	OnTokenValueCopied(m TokenValueCopied)
	OnCopyModeVariablesResult(m CopyModeVariablesResult)
	OnTokensFileDuplicated(m TokensFileDuplicated)
	OnDesignSystemGenerated(m DesignSystemGenerated)
	OnNavbarLinksUpdated(m NavbarLinksUpdated)
	OnStatusbarLinksUpdated(m StatusbarLinksUpdated)
	OnDebugVariableOperationsResult(m DebugVariableOperationsResult)
}

// DispatchOutbound routes m to h and returns the reply, or nil for Notify.
func DispatchOutbound(ctx context.Context, h OutboundHandler, m Outbound) (Inbound, error) {
	switch m := m.(type) {
	case UpdateDesignToken:
		return h.UpdateDesignToken(ctx, m), nil
	case CopyTokenValue:
		return h.CopyTokenValue(ctx, m), nil
	case CopyAllModeVariables:
		return h.CopyAllModeVariables(ctx, m), nil
	case DuplicateTokensFile:
		return h.DuplicateTokensFile(ctx, m), nil
	case GenerateDesignSystem:
		return h.GenerateDesignSystem(ctx, m), nil
	case Notify:
		h.Notify(ctx, m)
		return nil, nil
	case BulkUpdateNavbarLinks:
		return h.BulkUpdateNavbarLinks(ctx, m), nil
	case BulkUpdateStatusbarLinks:
		return h.BulkUpdateStatusbarLinks(ctx, m), nil
	case DebugVariableOperations:
		return h.DebugVariableOperations(ctx, m), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownType, m)
	}
}

// DispatchInbound routes m to h.
func DispatchInbound(h InboundHandler, m Inbound) error {
	switch m := m.(type) {
	case DesignTokenUpdated:
		h.OnDesignTokenUpdated(m)
	case TokenValueCopied:
		h.OnTokenValueCopied(m)
	case CopyModeVariablesResult:
		h.OnCopyModeVariablesResult(m)
	case TokensFileDuplicated:
		h.OnTokensFileDuplicated(m)
	case DesignSystemGenerated:
		h.OnDesignSystemGenerated(m)
	case NavbarLinksUpdated:
		h.OnNavbarLinksUpdated(m)
	case StatusbarLinksUpdated:
		h.OnStatusbarLinksUpdated(m)
	case DebugVariableOperationsResult:
		h.OnDebugVariableOperationsResult(m)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownType, m)
	}
	return nil
}

// Poster delivers an outbound message and returns the host's reply. The
// reply is nil for messages that have none.
type Poster interface {
	Post(ctx context.Context, m Outbound) (Inbound, error)
}

// Local posts straight to an in-process handler.
type Local struct {
	Handler OutboundHandler
}

// Post validates m and dispatches it to the handler.
func (l Local) Post(ctx context.Context, m Outbound) (Inbound, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil message", ErrMalformed)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return DispatchOutbound(ctx, l.Handler, m)
}
