package plugin

import (
	"strconv"

	"github.com/asteroid-belt/themebuddy/internal/bridge"
)

func (s *Session) logReply(m bridge.Inbound, detail string) {
	r := m.Outcome()
	if r.Success {
		s.logger.Printf("plugin: %s ok %s\n", m.MessageType(), detail)
		return
	}
	s.logger.Printf("plugin: %s failed: %s\n", m.MessageType(), r.Error)
}

func (s *Session) OnDesignTokenUpdated(m bridge.DesignTokenUpdated) {
	s.logReply(m, m.TokenName+"="+m.Value)
}

func (s *Session) OnTokenValueCopied(m bridge.TokenValueCopied) {
	s.logReply(m, m.TokenName)
}

func (s *Session) OnCopyModeVariablesResult(m bridge.CopyModeVariablesResult) {
	s.logReply(m, strconv.Itoa(m.Copied)+" copied")
}

func (s *Session) OnTokensFileDuplicated(m bridge.TokensFileDuplicated) {
	s.logReply(m, m.Collection)
}

func (s *Session) OnDesignSystemGenerated(m bridge.DesignSystemGenerated) {
	s.logReply(m, strconv.Itoa(m.Variables)+" variables")
}

func (s *Session) OnNavbarLinksUpdated(m bridge.NavbarLinksUpdated) {
	s.logReply(m, strconv.Itoa(m.Count)+" links")
}

func (s *Session) OnStatusbarLinksUpdated(m bridge.StatusbarLinksUpdated) {
	s.logReply(m, strconv.Itoa(m.Count)+" links")
}

func (s *Session) OnDebugVariableOperationsResult(m bridge.DebugVariableOperationsResult) {
	s.logReply(m, strconv.Itoa(len(m.Collections))+" collections")
}

var _ bridge.InboundHandler = (*Session)(nil)
