package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned when decoding a message whose type is not
	// part of the protocol.
	ErrUnknownType = errors.New("unknown plugin message type")

	// ErrMalformed is returned for input that is not a plugin message envelope.
	ErrMalformed = errors.New("malformed plugin message")

	// ErrWrongDirection is returned by DecodeOutbound for an inbound message
	// and by DecodeInbound for an outbound one.
	ErrWrongDirection = errors.New("plugin message in wrong direction")
)

type envelope struct {
	PluginMessage json.RawMessage `json:"pluginMessage"`
}

type typeProbe struct {
	Type Type `json:"type"`
}

func decodeAs[T Message](data []byte) (Message, error) {
	var m T
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

var decoders = map[Type]func([]byte) (Message, error){
	TypeUpdateDesignToken:        decodeAs[UpdateDesignToken],
	TypeCopyTokenValue:           decodeAs[CopyTokenValue],
	TypeCopyAllModeVariables:     decodeAs[CopyAllModeVariables],
	TypeDuplicateTokensFile:      decodeAs[DuplicateTokensFile],
	TypeGenerateDesignSystem:     decodeAs[GenerateDesignSystem],
	TypeNotify:                   decodeAs[Notify],
	TypeBulkUpdateNavbarLinks:    decodeAs[BulkUpdateNavbarLinks],
	TypeBulkUpdateStatusbarLinks: decodeAs[BulkUpdateStatusbarLinks],
	TypeDebugVariableOperations:  decodeAs[DebugVariableOperations],

	TypeDesignTokenUpdated:            decodeAs[DesignTokenUpdated],
	TypeTokenValueCopied:              decodeAs[TokenValueCopied],
	TypeCopyModeVariablesResult:       decodeAs[CopyModeVariablesResult],
	TypeTokensFileDuplicated:          decodeAs[TokensFileDuplicated],
	TypeDesignSystemGenerated:         decodeAs[DesignSystemGenerated],
	TypeNavbarLinksUpdated:            decodeAs[NavbarLinksUpdated],
	TypeStatusbarLinksUpdated:         decodeAs[StatusbarLinksUpdated],
	TypeDebugVariableOperationsResult: decodeAs[DebugVariableOperationsResult],
}

// Types lists every message type the protocol knows.
func Types() []Type {
	out := make([]Type, 0, len(decoders))
	for t := range decoders {
		out = append(out, t)
	}
	return out
}

// Encode validates m and wraps it in a pluginMessage envelope.
func Encode(m Message) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil message", ErrMalformed)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", m.MessageType(), err)
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("marshal %s: %w", m.MessageType(), err)
	}
	typ, _ := json.Marshal(m.MessageType())
	fields["type"] = typ

	inner, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", m.MessageType(), err)
	}
	return json.Marshal(envelope{PluginMessage: inner})
}

// Decode parses an envelope into its concrete message type and validates it.
func Decode(data []byte) (Message, error) {
	m, err := decodeUnchecked(data)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// decodeUnchecked parses an envelope without validating the message.
func decodeUnchecked(data []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(env.PluginMessage) == 0 || string(env.PluginMessage) == "null" {
		return nil, fmt.Errorf("%w: missing pluginMessage", ErrMalformed)
	}

	var probe typeProbe
	if err := json.Unmarshal(env.PluginMessage, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if probe.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrMalformed)
	}

	decode, ok := decoders[probe.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, probe.Type)
	}
	m, err := decode(env.PluginMessage)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, probe.Type, err)
	}
	return m, nil
}

// DecodeOutbound decodes a message the host receives.
func DecodeOutbound(data []byte) (Outbound, error) {
	m, err := Decode(data)
	if err != nil {
		return nil, err
	}
	out, ok := m.(Outbound)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a reply", ErrWrongDirection, m.MessageType())
	}
	return out, nil
}

// DecodeInbound decodes a reply the UI receives.
func DecodeInbound(data []byte) (Inbound, error) {
	m, err := Decode(data)
	if err != nil {
		return nil, err
	}
	in, ok := m.(Inbound)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a request", ErrWrongDirection, m.MessageType())
	}
	return in, nil
}
