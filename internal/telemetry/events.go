package telemetry

import (
	"runtime"

	"github.com/asteroid-belt/themebuddy/pkg/version"
)

// Event names - CLI
const (
	EventAppStarted         = "app_started"
	EventAppExited          = "app_exited"
	EventCLICommandExecuted = "cli_command_executed"
	EventCLIErrorOccurred   = "cli_error_occurred"
	EventCLIHelpViewed      = "cli_help_viewed"
)

// Event names - colors and tokens
const (
	EventShadesGenerated       = "shades_generated"
	EventPaletteGenerated      = "palette_generated"
	EventDesignSystemGenerated = "design_system_generated"
	EventTokenUpdated          = "token_updated"
	EventFavoriteAdded         = "favorite_added"
	EventFavoriteRemoved       = "favorite_removed"
	EventHostMessage           = "host_message_handled"
	EventPreviewOpened         = "preview_opened"
	EventKeyboardShortcut      = "keyboard_shortcut_used"
	EventMCPToolCalled         = "mcp_tool_called"
)

// baseProperties returns common properties for all events.
func baseProperties() map[string]interface{} {
	return map[string]interface{}{
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"version":    version.Version,
		"prerelease": version.IsPrerelease(),
		"dev_build":  version.IsDevBuild(),
	}
}

// TrackAppStarted tracks application startup.
func (c *posthogClient) TrackAppStarted(mode string) {
	props := baseProperties()
	props["mode"] = mode
	c.Track(EventAppStarted, props)
}

// TrackAppExited tracks application exit.
func (c *posthogClient) TrackAppExited(mode string, sessionDurationMs int64, commandsRun int) {
	props := baseProperties()
	props["mode"] = mode
	props["session_duration_ms"] = sessionDurationMs
	props["commands_run"] = commandsRun
	c.Track(EventAppExited, props)
}

// TrackCLICommandExecuted tracks CLI command execution.
func (c *posthogClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {
	props := baseProperties()
	props["command_name"] = commandName
	props["has_flags"] = hasFlags
	props["execution_duration_ms"] = durationMs
	c.Track(EventCLICommandExecuted, props)
}

// TrackCLIError tracks a failed command by error class.
func (c *posthogClient) TrackCLIError(commandName, errorType string) {
	props := baseProperties()
	props["command_name"] = commandName
	props["error_type"] = errorType
	c.Track(EventCLIErrorOccurred, props)
}

// TrackCLIHelpViewed tracks help output.
func (c *posthogClient) TrackCLIHelpViewed(commandName string, cliArgs []string) {
	props := baseProperties()
	props["command_name"] = commandName
	props["cli_args"] = cliArgs
	c.Track(EventCLIHelpViewed, props)
}

// TrackShadesGenerated tracks a shade ramp.
func (c *posthogClient) TrackShadesGenerated(count int, mode, level string) {
	props := baseProperties()
	props["shade_count"] = count
	props["mode"] = mode
	props["level"] = level
	c.Track(EventShadesGenerated, props)
}

// TrackPaletteGenerated tracks a palette from a mood, harmony, image or AI.
func (c *posthogClient) TrackPaletteGenerated(source string, colorCount int) {
	props := baseProperties()
	props["source"] = source
	props["color_count"] = colorCount
	c.Track(EventPaletteGenerated, props)
}

// TrackDesignSystemGenerated tracks a full design-system generation.
func (c *posthogClient) TrackDesignSystemGenerated(roleCount, tokenCount int, format string) {
	props := baseProperties()
	props["role_count"] = roleCount
	props["token_count"] = tokenCount
	props["format"] = format
	c.Track(EventDesignSystemGenerated, props)
}

// TrackTokenUpdated tracks a token edit. Token names are not sent.
func (c *posthogClient) TrackTokenUpdated(kind, mode string) {
	props := baseProperties()
	props["token_kind"] = kind
	props["mode"] = mode
	c.Track(EventTokenUpdated, props)
}

// TrackFavoriteAdded tracks a saved swatch.
func (c *posthogClient) TrackFavoriteAdded(hex string) {
	props := baseProperties()
	props["hex"] = hex
	c.Track(EventFavoriteAdded, props)
}

// TrackFavoriteRemoved tracks a removed swatch.
func (c *posthogClient) TrackFavoriteRemoved(hex string) {
	props := baseProperties()
	props["hex"] = hex
	c.Track(EventFavoriteRemoved, props)
}

// TrackHostMessage tracks a plugin message handled by the host.
func (c *posthogClient) TrackHostMessage(messageType string, success bool) {
	props := baseProperties()
	props["message_type"] = messageType
	props["success"] = success
	c.Track(EventHostMessage, props)
}

// TrackPreviewOpened tracks the preview TUI starting.
func (c *posthogClient) TrackPreviewOpened(colorCount int) {
	props := baseProperties()
	props["color_count"] = colorCount
	c.Track(EventPreviewOpened, props)
}

// TrackKeyboardShortcut tracks a key used in the preview.
func (c *posthogClient) TrackKeyboardShortcut(shortcutKey, contextView string) {
	props := baseProperties()
	props["shortcut_key"] = shortcutKey
	props["context_view"] = contextView
	c.Track(EventKeyboardShortcut, props)
}

// TrackMCPToolCalled tracks an MCP tool invocation.
func (c *posthogClient) TrackMCPToolCalled(toolName string, durationMs int64, success bool) {
	props := baseProperties()
	props["tool_name"] = toolName
	props["duration_ms"] = durationMs
	props["success"] = success
	c.Track(EventMCPToolCalled, props)
}

// --- No-op implementations ---

func (c *noopClient) TrackAppStarted(mode string)                                                 {}
func (c *noopClient) TrackAppExited(mode string, sessionDurationMs int64, commandsRun int)        {}
func (c *noopClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {}
func (c *noopClient) TrackCLIError(commandName, errorType string)                                 {}
func (c *noopClient) TrackCLIHelpViewed(commandName string, cliArgs []string)                     {}
func (c *noopClient) TrackShadesGenerated(count int, mode, level string)                          {}
func (c *noopClient) TrackPaletteGenerated(source string, colorCount int)                         {}
func (c *noopClient) TrackDesignSystemGenerated(roleCount, tokenCount int, format string)         {}
func (c *noopClient) TrackTokenUpdated(kind, mode string)                                         {}
func (c *noopClient) TrackFavoriteAdded(hex string)                                               {}
func (c *noopClient) TrackFavoriteRemoved(hex string)                                             {}
func (c *noopClient) TrackHostMessage(messageType string, success bool)                           {}
func (c *noopClient) TrackPreviewOpened(colorCount int)                                           {}
func (c *noopClient) TrackKeyboardShortcut(shortcutKey, contextView string)                       {}
func (c *noopClient) TrackMCPToolCalled(toolName string, durationMs int64, success bool)          {}
