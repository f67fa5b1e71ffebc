package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions for the Theme Buddy MCP server.

// shadesTool returns the themebuddy_shades tool definition.
func shadesTool() mcp.Tool {
	return mcp.NewTool("themebuddy_shades",
		mcp.WithDescription("Generate a shade ramp for a base color in light and dark mode. Each shade carries the text color that reads best on it and its WCAG contrast ratio."),
		mcp.WithString("color",
			mcp.Required(),
			mcp.Description("Base color as #RRGGBB"),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of shades (default: configured count, max: 50)"),
		),
		mcp.WithString("mode",
			mcp.Description("'light' or 'dark' (default: both)"),
		),
		mcp.WithString("level",
			mcp.Description("Contrast level text must meet: AA, AAA or AA-large (default: configured level)"),
		),
	)
}

// contrastTool returns the themebuddy_contrast tool definition.
func contrastTool() mcp.Tool {
	return mcp.NewTool("themebuddy_contrast",
		mcp.WithDescription("Compute the WCAG 2.1 contrast ratio of two colors and which levels it passes."),
		mcp.WithString("foreground",
			mcp.Required(),
			mcp.Description("Text color as #RRGGBB"),
		),
		mcp.WithString("background",
			mcp.Required(),
			mcp.Description("Background color as #RRGGBB"),
		),
	)
}

// nameTool returns the themebuddy_name tool definition.
func nameTool() mcp.Tool {
	return mcp.NewTool("themebuddy_name",
		mcp.WithDescription("Give a color a human-readable name and color family."),
		mcp.WithString("color",
			mcp.Required(),
			mcp.Description("Color as #RRGGBB"),
		),
	)
}

// harmonyTool returns the themebuddy_harmony tool definition.
func harmonyTool() mcp.Tool {
	return mcp.NewTool("themebuddy_harmony",
		mcp.WithDescription("Derive harmonious colors from a base color by rotating its hue or stepping its lightness."),
		mcp.WithString("color",
			mcp.Required(),
			mcp.Description("Base color as #RRGGBB"),
		),
		mcp.WithString("harmony",
			mcp.Description("complementary, analogous, triadic, split-complementary, tetradic, square or monochromatic (default: all)"),
		),
	)
}

// moodTool returns the themebuddy_mood tool definition.
func moodTool() mcp.Tool {
	return mcp.NewTool("themebuddy_mood",
		mcp.WithDescription("Build a palette for a mood or a free-form description such as 'cozy autumn bakery'."),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("A mood name or a short description"),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of colors (default: 5, max: 12)"),
		),
		mcp.WithNumber("seed",
			mcp.Description("Seed for a reproducible palette (optional)"),
		),
	)
}

// generateTool returns the themebuddy_generate tool definition.
func generateTool() mcp.Tool {
	return mcp.NewTool("themebuddy_generate",
		mcp.WithDescription("Generate a design system from base colors: shade ramps per mode, text colors, gradients, a type scale and a spacing scale. Optionally write it to the variables host."),
		mcp.WithString("colors",
			mcp.Required(),
			mcp.Description("Base colors as #RRGGBB separated by commas or spaces, in role order: primary, secondary, accent, neutral"),
		),
		mcp.WithString("name",
			mcp.Description("Design system name (default: Theme Buddy)"),
		),
		mcp.WithString("level",
			mcp.Description("Contrast level: AA, AAA or AA-large (default: configured level)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: json, yaml, css or markdown (default: json)"),
		),
		mcp.WithBoolean("apply",
			mcp.Description("Write the tokens to the variables host and make the collection active (default: false)"),
		),
		mcp.WithString("collection",
			mcp.Description("Collection to write to when apply is set (default: the design system name)"),
		),
	)
}

// listTokensTool returns the themebuddy_list_tokens tool definition.
func listTokensTool() mcp.Tool {
	return mcp.NewTool("themebuddy_list_tokens",
		mcp.WithDescription("List the design tokens stored in a collection with their value in every mode."),
		mcp.WithString("collection",
			mcp.Description("Collection name (default: the active collection)"),
		),
		mcp.WithString("prefix",
			mcp.Description("Only tokens whose name starts with this, e.g. 'color/primary/'"),
		),
		mcp.WithString("kind",
			mcp.Description("Only tokens of this kind: color, gradient, dimension, fontFamily, fontWeight, number, string"),
		),
	)
}

// updateTokenTool returns the themebuddy_update_token tool definition.
func updateTokenTool() mcp.Tool {
	return mcp.NewTool("themebuddy_update_token",
		mcp.WithDescription("Set a token's value in one mode. New tokens get the kind their value looks like."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Token name, e.g. 'color/primary/500'"),
		),
		mcp.WithString("mode",
			mcp.Required(),
			mcp.Description("Mode name, e.g. 'light' or 'dark'"),
		),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("New value, e.g. '#3366FF' or '16px'"),
		),
		mcp.WithString("collection",
			mcp.Description("Collection name (default: the active collection)"),
		),
	)
}

// favoriteTool returns the themebuddy_favorite tool definition.
func favoriteTool() mcp.Tool {
	return mcp.NewTool("themebuddy_favorite",
		mcp.WithDescription("Save, remove or list favorite colors."),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("Action to perform: 'add', 'remove' or 'list'"),
		),
		mcp.WithString("color",
			mcp.Description("Color as #RRGGBB (required for add and remove)"),
		),
		mcp.WithString("name",
			mcp.Description("Name to save the color under (default: generated)"),
		),
	)
}
