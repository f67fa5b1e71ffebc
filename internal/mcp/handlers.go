package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/asteroid-belt/themebuddy/internal/color"
	"github.com/asteroid-belt/themebuddy/internal/designsystem"
	"github.com/asteroid-belt/themebuddy/internal/models"
	"github.com/asteroid-belt/themebuddy/internal/tokens"
)

// Limits for MCP tool arguments.
const (
	maxShades        = 50
	defaultMoodCount = 5
	maxMoodCount     = 12
)

// stringArg returns a trimmed string argument, or "" when absent.
func stringArg(arguments map[string]interface{}, key string) string {
	s, _ := arguments[key].(string)
	return strings.TrimSpace(s)
}

// parseLimit extracts and validates a numeric parameter from MCP tool
// arguments. Returns defaultVal if not present, caps at maxVal if exceeded.
func parseLimit(arguments map[string]interface{}, key string, defaultVal, maxVal int) int {
	if l, ok := arguments[key].(float64); ok && l > 0 {
		limit := int(l)
		if limit > maxVal {
			return maxVal
		}
		return limit
	}
	return defaultVal
}

// trackToolCall is a helper to track MCP tool invocations.
func (s *Server) trackToolCall(toolName string, start time.Time, success bool) {
	durationMs := time.Since(start).Milliseconds()
	s.telemetry.TrackMCPToolCalled(toolName, durationMs, success)
}

// fail tracks a failed call and returns msg as a tool error.
func (s *Server) fail(toolName string, start time.Time, msg string) (*mcp.CallToolResult, error) {
	s.trackToolCall(toolName, start, false)
	return mcp.NewToolResultError(msg), nil
}

// ok tracks a successful call and returns v as JSON text.
func (s *Server) ok(toolName string, start time.Time, v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return s.fail(toolName, start, fmt.Sprintf("failed to marshal result: %v", err))
	}
	s.trackToolCall(toolName, start, true)
	return mcp.NewToolResultText(string(data)), nil
}

// ShadesResponse is the result of themebuddy_shades.
type ShadesResponse struct {
	Base   string                       `json:"base"`
	Name   string                       `json:"name"`
	Level  color.Level                  `json:"level"`
	Shades map[color.Mode][]color.Shade `json:"shades"`
}

// ContrastResponse is the result of themebuddy_contrast.
type ContrastResponse struct {
	Foreground string  `json:"foreground"`
	Background string  `json:"background"`
	Ratio      float64 `json:"ratio"`
	Rating     string  `json:"rating"`
	AA         bool    `json:"aa"`
	AALarge    bool    `json:"aa_large"`
	AAA        bool    `json:"aaa"`
}

// NameResponse is the result of themebuddy_name.
type NameResponse struct {
	Hex    string `json:"hex"`
	Name   string `json:"name"`
	Family string `json:"family"`
}

// MoodResponse is the result of themebuddy_mood.
type MoodResponse struct {
	color.MoodResult
	// Similarity is 1 for a keyword match and the cosine similarity for a
	// semantic one.
	Similarity float32 `json:"similarity"`
}

// GenerateResponse is the result of themebuddy_generate.
type GenerateResponse struct {
	Name       string   `json:"name"`
	Roles      []string `json:"roles"`
	Tokens     int      `json:"tokens"`
	Format     string   `json:"format"`
	Output     string   `json:"output"`
	Collection string   `json:"collection,omitempty"`
	Variables  int      `json:"variables,omitempty"`
}

// TokenResponse is a stored token in MCP responses.
type TokenResponse struct {
	Name        string            `json:"name"`
	Kind        string            `json:"kind"`
	Description string            `json:"description,omitempty"`
	Values      map[string]string `json:"values"`
}

// TokenListResponse is the result of themebuddy_list_tokens.
type TokenListResponse struct {
	Collection string          `json:"collection"`
	Modes      []string        `json:"modes"`
	Tokens     []TokenResponse `json:"tokens"`
}

// UpdateResult is the result of themebuddy_update_token.
type UpdateResult struct {
	Collection string `json:"collection"`
	Name       string `json:"name"`
	Mode       string `json:"mode"`
	Value      string `json:"value"`
}

// FavoriteResult is the result of themebuddy_favorite.
type FavoriteResult struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Favorites []FavoriteEntry `json:"favorites,omitempty"`
}

// FavoriteEntry is a saved swatch in MCP responses.
type FavoriteEntry struct {
	Hex     string    `json:"hex"`
	Name    string    `json:"name"`
	AddedAt time.Time `json:"added_at"`
}

// handleShades handles the themebuddy_shades tool.
func (s *Server) handleShades(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "themebuddy_shades"
	start := time.Now()
	args := req.Params.Arguments

	base := stringArg(args, "color")
	if base == "" {
		return s.fail(tool, start, "color parameter is required")
	}
	base, err := color.Normalize(base)
	if err != nil {
		return s.fail(tool, start, err.Error())
	}

	settings, level := s.cfg.Shades.Settings()
	settings.NumberOfShades = parseLimit(args, "count", settings.NumberOfShades, maxShades)
	if l := stringArg(args, "level"); l != "" {
		if level, err = color.ParseLevel(l); err != nil {
			return s.fail(tool, start, err.Error())
		}
	}

	modes := color.Modes()
	if m := stringArg(args, "mode"); m != "" {
		mode, err := color.ParseMode(m)
		if err != nil {
			return s.fail(tool, start, err.Error())
		}
		modes = []color.Mode{mode}
	}

	name, err := color.NameColor(base)
	if err != nil {
		return s.fail(tool, start, err.Error())
	}
	resp := ShadesResponse{Base: base, Name: name, Level: level, Shades: make(map[color.Mode][]color.Shade)}
	for _, mode := range modes {
		shades, err := color.GenerateShades(base, settings, mode, level)
		if err != nil {
			return s.fail(tool, start, fmt.Sprintf("failed to generate shades: %v", err))
		}
		resp.Shades[mode] = shades
		s.telemetry.TrackShadesGenerated(len(shades), string(mode), string(level))
	}

	return s.ok(tool, start, resp)
}

// handleContrast handles the themebuddy_contrast tool.
func (s *Server) handleContrast(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "themebuddy_contrast"
	start := time.Now()

	fg := stringArg(req.Params.Arguments, "foreground")
	bg := stringArg(req.Params.Arguments, "background")
	if fg == "" || bg == "" {
		return s.fail(tool, start, "foreground and background parameters are required")
	}

	ratio, err := color.ContrastRatio(fg, bg)
	if err != nil {
		return s.fail(tool, start, err.Error())
	}
	fg, _ = color.Normalize(fg)
	bg, _ = color.Normalize(bg)

	return s.ok(tool, start, ContrastResponse{
		Foreground: fg,
		Background: bg,
		Ratio:      ratio,
		Rating:     color.Rating(ratio),
		AA:         color.Passes(ratio, color.LevelAA),
		AALarge:    color.Passes(ratio, color.LevelAALarge),
		AAA:        color.Passes(ratio, color.LevelAAA),
	})
}

// handleName handles the themebuddy_name tool.
func (s *Server) handleName(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "themebuddy_name"
	start := time.Now()

	hex := stringArg(req.Params.Arguments, "color")
	if hex == "" {
		return s.fail(tool, start, "color parameter is required")
	}
	hex, err := color.Normalize(hex)
	if err != nil {
		return s.fail(tool, start, err.Error())
	}

	name, err := color.NameColor(hex)
	if err != nil {
		return s.fail(tool, start, err.Error())
	}
	family, err := color.Family(hex)
	if err != nil {
		return s.fail(tool, start, err.Error())
	}

	return s.ok(tool, start, NameResponse{Hex: hex, Name: name, Family: family})
}

// handleHarmony handles the themebuddy_harmony tool.
func (s *Server) handleHarmony(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "themebuddy_harmony"
	start := time.Now()

	base := stringArg(req.Params.Arguments, "color")
	if base == "" {
		return s.fail(tool, start, "color parameter is required")
	}

	name := stringArg(req.Params.Arguments, "harmony")
	if name == "" {
		all, err := color.AllHarmonies(base)
		if err != nil {
			return s.fail(tool, start, err.Error())
		}
		return s.ok(tool, start, all)
	}

	kind, err := color.ParseHarmony(name)
	if err != nil {
		return s.fail(tool, start, err.Error())
	}
	colors, err := color.Harmonize(base, kind)
	if err != nil {
		return s.fail(tool, start, err.Error())
	}
	return s.ok(tool, start, map[color.Harmony][]string{kind: colors})
}

// handleMood handles the themebuddy_mood tool.
func (s *Server) handleMood(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "themebuddy_mood"
	start := time.Now()
	args := req.Params.Arguments

	description := stringArg(args, "description")
	if description == "" {
		return s.fail(tool, start, "description parameter is required")
	}
	count := parseLimit(args, "count", defaultMoodCount, maxMoodCount)

	var rng *rand.Rand
	if seed, ok := args["seed"].(float64); ok {
		rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	}

	mood, similarity, err := s.resolveMood(ctx, description)
	if err != nil {
		return s.fail(tool, start, err.Error())
	}

	result, err := color.MoodPalette(mood, count, "", rng)
	if err != nil {
		return s.fail(tool, start, err.Error())
	}
	s.telemetry.TrackPaletteGenerated("mood", len(result.Colors))

	return s.ok(tool, start, MoodResponse{MoodResult: result, Similarity: similarity})
}

// resolveMood matches keywords first and falls back to the mood index.
func (s *Server) resolveMood(ctx context.Context, description string) (color.Mood, float32, error) {
	if s.moods != nil {
		m, err := s.moods.Resolve(ctx, description)
		if err != nil {
			return "", 0, err
		}
		return m.Mood, m.Similarity, nil
	}
	if mood, ok := color.MoodForText(description); ok {
		return mood, 1, nil
	}
	return "", 0, fmt.Errorf("%w: %q", color.ErrNoMood, description)
}

// splitColors accepts hexes separated by commas and/or whitespace.
func splitColors(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// handleGenerate handles the themebuddy_generate tool.
func (s *Server) handleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "themebuddy_generate"
	start := time.Now()
	args := req.Params.Arguments

	hexes := splitColors(stringArg(args, "colors"))
	if len(hexes) == 0 {
		return s.fail(tool, start, "colors parameter is required")
	}

	format, err := designsystem.ParseFormat(stringArg(args, "format"))
	if err != nil {
		return s.fail(tool, start, err.Error())
	}

	opts := designsystem.DefaultOptions().WithColors(hexes...)
	opts.Shades, opts.Level = s.cfg.Shades.Settings()
	if name := stringArg(args, "name"); name != "" {
		opts.Name = name
	}
	if l := stringArg(args, "level"); l != "" {
		if opts.Level, err = color.ParseLevel(l); err != nil {
			return s.fail(tool, start, err.Error())
		}
	}

	resp := GenerateResponse{Format: string(format)}
	var ds *designsystem.DesignSystem

	if apply, _ := args["apply"].(bool); apply {
		collection := stringArg(args, "collection")
		if collection == "" {
			collection = opts.Name
		}
		sess := s.session(collection)
		if ds, err = sess.LoadDesignSystem(opts); err != nil {
			return s.fail(tool, start, fmt.Sprintf("failed to generate: %v", err))
		}
		if resp.Variables, err = sess.PushDesignSystem(ctx); err != nil {
			return s.fail(tool, start, fmt.Sprintf("failed to apply: %v", err))
		}
		resp.Collection = collection
	} else if ds, err = designsystem.Generate(opts); err != nil {
		return s.fail(tool, start, fmt.Sprintf("failed to generate: %v", err))
	}

	var out bytes.Buffer
	if err := designsystem.Export(ds, format, &out); err != nil {
		return s.fail(tool, start, fmt.Sprintf("failed to export: %v", err))
	}

	resp.Name = ds.Name
	resp.Tokens = len(ds.Tokens())
	resp.Output = out.String()
	for _, cr := range ds.Colors {
		resp.Roles = append(resp.Roles, cr.Role)
	}
	s.telemetry.TrackDesignSystemGenerated(len(ds.Colors), resp.Tokens, string(format))

	return s.ok(tool, start, resp)
}

// storedTokens reads every variable of collection with values keyed by mode
// name.
func (s *Server) storedTokens(collection string) (*models.Collection, []TokenResponse, error) {
	c, err := s.db.GetCollection(collection)
	if err != nil {
		return nil, nil, err
	}
	vars, err := s.db.ListVariables(collection)
	if err != nil {
		return nil, nil, err
	}

	out := make([]TokenResponse, 0, len(vars))
	for i := range vars {
		out = append(out, toTokenResponse(c, &vars[i]))
	}
	return c, out, nil
}

func toTokenResponse(c *models.Collection, v *models.Variable) TokenResponse {
	resp := TokenResponse{
		Name:        v.Name,
		Kind:        v.Kind,
		Description: v.Description,
		Values:      make(map[string]string, len(c.Modes)),
	}
	for _, m := range c.Modes {
		if value, ok := v.ValueFor(m.ID); ok {
			resp.Values[m.Name] = value
		}
	}
	return resp
}

// handleListTokens handles the themebuddy_list_tokens tool.
func (s *Server) handleListTokens(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "themebuddy_list_tokens"
	start := time.Now()
	args := req.Params.Arguments

	var kind tokens.Kind
	if k := stringArg(args, "kind"); k != "" {
		var err error
		if kind, err = tokens.ParseKind(k); err != nil {
			return s.fail(tool, start, err.Error())
		}
	}
	prefix := stringArg(args, "prefix")

	collection := s.activeCollection(stringArg(args, "collection"))
	c, all, err := s.storedTokens(collection)
	if err != nil {
		return s.fail(tool, start, fmt.Sprintf("failed to list tokens: %v", err))
	}

	resp := TokenListResponse{Collection: c.Name, Modes: c.ModeNames(), Tokens: []TokenResponse{}}
	for _, t := range all {
		if kind != "" && t.Kind != string(kind) {
			continue
		}
		if !strings.HasPrefix(t.Name, prefix) {
			continue
		}
		resp.Tokens = append(resp.Tokens, t)
	}

	return s.ok(tool, start, resp)
}

// handleUpdateToken handles the themebuddy_update_token tool.
func (s *Server) handleUpdateToken(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "themebuddy_update_token"
	start := time.Now()
	args := req.Params.Arguments

	name := stringArg(args, "name")
	mode := stringArg(args, "mode")
	value := stringArg(args, "value")
	if name == "" || mode == "" || value == "" {
		return s.fail(tool, start, "name, mode and value parameters are required")
	}

	collection := s.activeCollection(stringArg(args, "collection"))
	sess := s.session(collection)

	stored, kind, err := sess.UpsertToken(ctx, name, mode, value)
	if err != nil {
		return s.fail(tool, start, fmt.Sprintf("failed to update %s: %v", name, err))
	}
	s.telemetry.TrackTokenUpdated(string(kind), mode)

	return s.ok(tool, start, UpdateResult{Collection: collection, Name: name, Mode: mode, Value: stored})
}

// handleFavorite handles the themebuddy_favorite tool.
func (s *Server) handleFavorite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "themebuddy_favorite"
	start := time.Now()
	args := req.Params.Arguments

	if s.favorites == nil {
		return s.fail(tool, start, "favorites store not initialized")
	}

	action := stringArg(args, "action")
	hex := stringArg(args, "color")

	switch action {
	case "list":
		result := FavoriteResult{Success: true, Favorites: []FavoriteEntry{}}
		for _, f := range s.favorites.List() {
			result.Favorites = append(result.Favorites, FavoriteEntry{Hex: f.Hex, Name: f.Name, AddedAt: f.AddedAt})
		}
		result.Message = fmt.Sprintf("%d favorite colors", len(result.Favorites))
		return s.ok(tool, start, result)

	case "add":
		if hex == "" {
			return s.fail(tool, start, "color parameter is required")
		}
		fav, err := s.favorites.Add(hex, stringArg(args, "name"))
		if err != nil {
			return s.fail(tool, start, fmt.Sprintf("failed to add favorite: %v", err))
		}
		s.telemetry.TrackFavoriteAdded(fav.Hex)
		return s.ok(tool, start, FavoriteResult{
			Success: true,
			Message: fmt.Sprintf("%s (%s) added to favorites", fav.Name, fav.Hex),
		})

	case "remove":
		if hex == "" {
			return s.fail(tool, start, "color parameter is required")
		}
		removed, err := s.favorites.Remove(hex)
		if err != nil {
			return s.fail(tool, start, fmt.Sprintf("failed to remove favorite: %v", err))
		}
		if !removed {
			return s.ok(tool, start, FavoriteResult{Success: true, Message: hex + " was not a favorite"})
		}
		s.telemetry.TrackFavoriteRemoved(hex)
		return s.ok(tool, start, FavoriteResult{Success: true, Message: hex + " removed from favorites"})

	case "":
		return s.fail(tool, start, "action parameter is required")
	default:
		return s.fail(tool, start, "action must be 'add', 'remove' or 'list'")
	}
}
