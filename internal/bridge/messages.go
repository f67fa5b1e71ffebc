// Package bridge defines the plugin messages exchanged between the UI session
// and the variables host.
//
// Every message travels in an envelope of the form
//
//	{"pluginMessage": {"type": "<type>", ...fields}}
//
// Outbound messages go from the UI to the host; inbound messages are the
// host's replies. Both sets are closed: only the types declared here satisfy
// Outbound and Inbound, and the Dispatch functions switch over all of them.
package bridge

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidMessage is returned by Validate for a message with missing or
// inconsistent fields.
var ErrInvalidMessage = errors.New("invalid plugin message")

// Type is the discriminator carried in the "type" field.
type Type string

// Outbound types.
const (
	TypeUpdateDesignToken        Type = "update-design-token"
	TypeCopyTokenValue           Type = "copy-token-value"
	TypeCopyAllModeVariables     Type = "copy-all-mode-variables"
	TypeDuplicateTokensFile      Type = "duplicate-tokens-file"
	TypeGenerateDesignSystem     Type = "generate-design-system"
	TypeNotify                   Type = "notify"
	TypeBulkUpdateNavbarLinks    Type = "bulk-update-navbar-links"
	TypeBulkUpdateStatusbarLinks Type = "bulk-update-statusbar-links"
	TypeDebugVariableOperations  Type = "debug-variable-operations"
)

// Inbound types.
const (
	TypeDesignTokenUpdated            Type = "design-token-updated"
	TypeTokenValueCopied              Type = "token-value-copied"
	TypeCopyModeVariablesResult       Type = "copy-mode-variables-result"
	TypeTokensFileDuplicated          Type = "tokens-file-duplicated"
	TypeDesignSystemGenerated         Type = "design-system-generated"
	TypeNavbarLinksUpdated            Type = "navbar-links-updated"
	TypeStatusbarLinksUpdated         Type = "statusbar-links-updated"
	TypeDebugVariableOperationsResult Type = "debug-variable-operations-result"
)

var replyTypes = map[Type]Type{
	TypeUpdateDesignToken:        TypeDesignTokenUpdated,
	TypeCopyTokenValue:           TypeTokenValueCopied,
	TypeCopyAllModeVariables:     TypeCopyModeVariablesResult,
	TypeDuplicateTokensFile:      TypeTokensFileDuplicated,
	TypeGenerateDesignSystem:     TypeDesignSystemGenerated,
	TypeBulkUpdateNavbarLinks:    TypeNavbarLinksUpdated,
	TypeBulkUpdateStatusbarLinks: TypeStatusbarLinksUpdated,
	TypeDebugVariableOperations:  TypeDebugVariableOperationsResult,
}

// ReplyType returns the inbound type the host answers t with. Notify has no
// reply.
func ReplyType(t Type) (Type, bool) {
	r, ok := replyTypes[t]
	return r, ok
}

// Message is any plugin message.
type Message interface {
	MessageType() Type
	Validate() error
}

// Outbound is a message from the UI to the host.
type Outbound interface {
	Message
	outbound()
}

// Inbound is a reply from the host to the UI.
type Inbound interface {
	Message
	Outcome() Result
	inbound()
}

func invalid(t Type, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidMessage, t, fmt.Sprintf(format, args...))
}

func required(t Type, fields map[string]string) error {
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			return invalid(t, "%s is required", name)
		}
	}
	return nil
}

// Link is a navbar or statusbar entry.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

func validateLinks(t Type, links []Link) error {
	for i, l := range links {
		if strings.TrimSpace(l.Label) == "" {
			return invalid(t, "link %d: label is required", i)
		}
		u, err := url.Parse(l.URL)
		if err != nil {
			return invalid(t, "link %d: %v", i, err)
		}
		switch u.Scheme {
		case "http", "https":
			if u.Host == "" {
				return invalid(t, "link %d: url %q has no host", i, l.URL)
			}
		case "mailto":
		default:
			return invalid(t, "link %d: url %q must be http, https or mailto", i, l.URL)
		}
	}
	return nil
}

// TokenPayload is a token as carried by generate-design-system.
type TokenPayload struct {
	Name        string            `json:"name"`
	Kind        string            `json:"kind"`
	Description string            `json:"description,omitempty"`
	Values      map[string]string `json:"values"`
}

// UpdateDesignToken sets one token value in one mode.
type UpdateDesignToken struct {
	Collection string `json:"collectionName,omitempty"`
	TokenName  string `json:"tokenName"`
	Mode       string `json:"mode"`
	Value      string `json:"value"`
}

func (UpdateDesignToken) MessageType() Type { return TypeUpdateDesignToken }
func (UpdateDesignToken) outbound()         {}

func (m UpdateDesignToken) Validate() error {
	return required(m.MessageType(), map[string]string{"tokenName": m.TokenName, "mode": m.Mode, "value": m.Value})
}

// CopyTokenValue asks the host to put a token value on the clipboard.
type CopyTokenValue struct {
	TokenName string `json:"tokenName"`
	Mode      string `json:"mode,omitempty"`
	Value     string `json:"value"`
}

func (CopyTokenValue) MessageType() Type { return TypeCopyTokenValue }
func (CopyTokenValue) outbound()         {}

func (m CopyTokenValue) Validate() error {
	return required(m.MessageType(), map[string]string{"tokenName": m.TokenName, "value": m.Value})
}

// CopyAllModeVariables copies every variable value of one mode into another.
type CopyAllModeVariables struct {
	Collection string `json:"collectionName,omitempty"`
	SourceMode string `json:"sourceMode"`
	TargetMode string `json:"targetMode"`
}

func (CopyAllModeVariables) MessageType() Type { return TypeCopyAllModeVariables }
func (CopyAllModeVariables) outbound()         {}

func (m CopyAllModeVariables) Validate() error {
	if err := required(m.MessageType(), map[string]string{"sourceMode": m.SourceMode, "targetMode": m.TargetMode}); err != nil {
		return err
	}
	if m.SourceMode == m.TargetMode {
		return invalid(m.MessageType(), "source and target mode are both %q", m.SourceMode)
	}
	return nil
}

// DuplicateTokensFile copies a collection with its modes and variables.
type DuplicateTokensFile struct {
	Collection string `json:"collectionName"`
	NewName    string `json:"newName,omitempty"`
}

func (DuplicateTokensFile) MessageType() Type { return TypeDuplicateTokensFile }
func (DuplicateTokensFile) outbound()         {}

func (m DuplicateTokensFile) Validate() error {
	return required(m.MessageType(), map[string]string{"collectionName": m.Collection})
}

// GenerateDesignSystem writes a full token set into a collection.
type GenerateDesignSystem struct {
	Collection string         `json:"collectionName"`
	Modes      []string       `json:"modes"`
	Tokens     []TokenPayload `json:"tokens"`
}

func (GenerateDesignSystem) MessageType() Type { return TypeGenerateDesignSystem }
func (GenerateDesignSystem) outbound()         {}

func (m GenerateDesignSystem) Validate() error {
	t := m.MessageType()
	if err := required(t, map[string]string{"collectionName": m.Collection}); err != nil {
		return err
	}
	if len(m.Modes) == 0 {
		return invalid(t, "at least one mode is required")
	}
	if len(m.Tokens) == 0 {
		return invalid(t, "at least one token is required")
	}
	modes := make(map[string]bool, len(m.Modes))
	for _, mode := range m.Modes {
		modes[mode] = true
	}
	for i, tok := range m.Tokens {
		if strings.TrimSpace(tok.Name) == "" {
			return invalid(t, "token %d: name is required", i)
		}
		for mode := range tok.Values {
			if !modes[mode] {
				return invalid(t, "token %s: unknown mode %q", tok.Name, mode)
			}
		}
	}
	return nil
}

// Notify shows a toast in the host. It has no reply.
type Notify struct {
	Message string `json:"message"`
	Error   bool   `json:"error,omitempty"`
	Timeout int    `json:"timeout,omitempty"`
}

func (Notify) MessageType() Type { return TypeNotify }
func (Notify) outbound()         {}

func (m Notify) Validate() error {
	if err := required(m.MessageType(), map[string]string{"message": m.Message}); err != nil {
		return err
	}
	if m.Timeout < 0 {
		return invalid(m.MessageType(), "timeout must not be negative")
	}
	return nil
}

// BulkUpdateNavbarLinks replaces the navbar links.
type BulkUpdateNavbarLinks struct {
	Links []Link `json:"links"`
}

func (BulkUpdateNavbarLinks) MessageType() Type { return TypeBulkUpdateNavbarLinks }
func (BulkUpdateNavbarLinks) outbound()         {}
func (m BulkUpdateNavbarLinks) Validate() error { return validateLinks(m.MessageType(), m.Links) }

// BulkUpdateStatusbarLinks replaces the statusbar links.
type BulkUpdateStatusbarLinks struct {
	Links []Link `json:"links"`
}

func (BulkUpdateStatusbarLinks) MessageType() Type { return TypeBulkUpdateStatusbarLinks }
func (BulkUpdateStatusbarLinks) outbound()         {}
func (m BulkUpdateStatusbarLinks) Validate() error { return validateLinks(m.MessageType(), m.Links) }

// DebugVariableOperations asks the host for variable statistics.
type DebugVariableOperations struct {
	Collection string `json:"collectionName,omitempty"`
}

func (DebugVariableOperations) MessageType() Type { return TypeDebugVariableOperations }
func (DebugVariableOperations) outbound()         {}
func (DebugVariableOperations) Validate() error   { return nil }

// Result is the outcome every inbound reply carries.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// OK is a successful Result.
func OK() Result { return Result{Success: true} }

// Failed turns err into an unsuccessful Result.
func Failed(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

// Outcome returns r. Embedding Result gives replies their Outcome method.
func (r Result) Outcome() Result { return r }

// Err converts an unsuccessful Result back into an error.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return errors.New(r.Error)
}

func (r Result) validate(t Type) error {
	if r.Success && r.Error != "" {
		return invalid(t, "successful reply carries error %q", r.Error)
	}
	if !r.Success && r.Error == "" {
		return invalid(t, "failed reply has no error")
	}
	return nil
}

// DesignTokenUpdated answers UpdateDesignToken.
type DesignTokenUpdated struct {
	Result
	TokenName string `json:"tokenName,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Value     string `json:"value,omitempty"`
}

func (DesignTokenUpdated) MessageType() Type { return TypeDesignTokenUpdated }
func (DesignTokenUpdated) inbound()          {}
func (m DesignTokenUpdated) Validate() error { return m.validate(m.MessageType()) }

// TokenValueCopied answers CopyTokenValue.
type TokenValueCopied struct {
	Result
	TokenName string `json:"tokenName,omitempty"`
	Value     string `json:"value,omitempty"`
}

func (TokenValueCopied) MessageType() Type { return TypeTokenValueCopied }
func (TokenValueCopied) inbound()          {}
func (m TokenValueCopied) Validate() error { return m.validate(m.MessageType()) }

// CopyModeVariablesResult answers CopyAllModeVariables.
type CopyModeVariablesResult struct {
	Result
	Copied int `json:"copied"`
}

func (CopyModeVariablesResult) MessageType() Type { return TypeCopyModeVariablesResult }
func (CopyModeVariablesResult) inbound()          {}
func (m CopyModeVariablesResult) Validate() error { return m.validate(m.MessageType()) }

// TokensFileDuplicated answers DuplicateTokensFile.
type TokensFileDuplicated struct {
	Result
	Collection string `json:"collectionName,omitempty"`
	FileKey    string `json:"fileKey,omitempty"`
}

func (TokensFileDuplicated) MessageType() Type { return TypeTokensFileDuplicated }
func (TokensFileDuplicated) inbound()          {}
func (m TokensFileDuplicated) Validate() error { return m.validate(m.MessageType()) }

// DesignSystemGenerated answers GenerateDesignSystem.
type DesignSystemGenerated struct {
	Result
	Collection string `json:"collectionName,omitempty"`
	Variables  int    `json:"variables"`
}

func (DesignSystemGenerated) MessageType() Type { return TypeDesignSystemGenerated }
func (DesignSystemGenerated) inbound()          {}
func (m DesignSystemGenerated) Validate() error { return m.validate(m.MessageType()) }

// NavbarLinksUpdated answers BulkUpdateNavbarLinks.
type NavbarLinksUpdated struct {
	Result
	Count int `json:"count"`
}

func (NavbarLinksUpdated) MessageType() Type { return TypeNavbarLinksUpdated }
func (NavbarLinksUpdated) inbound()          {}
func (m NavbarLinksUpdated) Validate() error { return m.validate(m.MessageType()) }

// StatusbarLinksUpdated answers BulkUpdateStatusbarLinks.
type StatusbarLinksUpdated struct {
	Result
	Count int `json:"count"`
}

func (StatusbarLinksUpdated) MessageType() Type { return TypeStatusbarLinksUpdated }
func (StatusbarLinksUpdated) inbound()          {}
func (m StatusbarLinksUpdated) Validate() error { return m.validate(m.MessageType()) }

// CollectionStats is one collection in a debug report.
type CollectionStats struct {
	Name      string   `json:"name"`
	Modes     []string `json:"modes"`
	Variables int      `json:"variables"`
	Values    int      `json:"values"`
}

// DebugVariableOperationsResult answers DebugVariableOperations.
type DebugVariableOperationsResult struct {
	Result
	Collections []CollectionStats `json:"collections,omitempty"`
	Links       int               `json:"links"`
}

func (DebugVariableOperationsResult) MessageType() Type { return TypeDebugVariableOperationsResult }
func (DebugVariableOperationsResult) inbound()          {}
func (m DebugVariableOperationsResult) Validate() error { return m.validate(m.MessageType()) }
