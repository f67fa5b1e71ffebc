// Package plugin is the UI side of the plugin: a Session edits tokens in
// memory and forwards each change to the host through a bridge.Poster.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/asteroid-belt/themebuddy/internal/bridge"
	"github.com/asteroid-belt/themebuddy/internal/color"
	"github.com/asteroid-belt/themebuddy/internal/designsystem"
	"github.com/asteroid-belt/themebuddy/internal/extract"
	"github.com/asteroid-belt/themebuddy/internal/models"
	"github.com/asteroid-belt/themebuddy/internal/tokens"
)

// ErrNoReply is returned when the host answers a message with nothing.
var ErrNoReply = errors.New("host sent no reply")

// Logger receives replies and failures.
type Logger interface {
	Printf(format string, args ...interface{})
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}

// Session is one open plugin window.
type Session struct {
	poster     bridge.Poster
	logger     Logger
	httpClient *http.Client

	mu         sync.RWMutex
	registry   *tokens.Registry
	shades     color.ShadeSettings
	level      color.Level
	collection string
	system     *designsystem.DesignSystem
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithShadeSettings sets the settings used by LoadDesignSystem.
func WithShadeSettings(settings color.ShadeSettings, level color.Level) Option {
	return func(s *Session) {
		s.shades = settings
		s.level = level
	}
}

// WithCollection sets the collection messages target.
func WithCollection(name string) Option {
	return func(s *Session) {
		if name != "" {
			s.collection = name
		}
	}
}

// WithRegistry starts the session from reg instead of an empty registry,
// e.g. one loaded from the host's store.
func WithRegistry(reg *tokens.Registry) Option {
	return func(s *Session) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithHTTPClient sets the client used to fetch images by URL.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) { s.httpClient = c }
}

// NewSession creates a session that posts to poster.
func NewSession(poster bridge.Poster, opts ...Option) *Session {
	s := &Session{
		poster:     poster,
		logger:     discardLogger{},
		registry:   tokens.New(),
		shades:     color.DefaultShadeSettings(),
		level:      color.LevelAA,
		collection: models.DefaultCollectionName,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the session's token registry.
func (s *Session) Registry() *tokens.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry
}

// DesignSystem returns the last loaded design system, or nil.
func (s *Session) DesignSystem() *designsystem.DesignSystem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.system
}

// Collection returns the collection the session writes to.
func (s *Session) Collection() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection
}

// ShadeSettings returns the current shade settings and contrast level.
func (s *Session) ShadeSettings() (color.ShadeSettings, color.Level) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shades, s.level
}

// LoadDesignSystem generates a design system and replaces the registry with
// its tokens. Options without shade settings or level use the session's.
// Nothing is sent to the host; see PushDesignSystem.
func (s *Session) LoadDesignSystem(opts designsystem.Options) (*designsystem.DesignSystem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if opts.Shades.NumberOfShades == 0 {
		opts.Shades = s.shades
	}
	if opts.Level == "" {
		opts.Level = s.level
	}

	ds, err := designsystem.Generate(opts)
	if err != nil {
		return nil, err
	}
	reg := tokens.New()
	if err := ds.Populate(reg); err != nil {
		return nil, err
	}

	s.registry = reg
	s.system = ds
	return ds, nil
}

// post sends m and routes the reply back through the session. It returns
// the reply's error when the host reports failure.
func (s *Session) post(ctx context.Context, m bridge.Outbound) (bridge.Inbound, error) {
	reply, err := s.poster.Post(ctx, m)
	if err != nil {
		s.logger.Printf("plugin: %s: %v\n", m.MessageType(), err)
		return nil, err
	}
	if reply == nil {
		if _, expects := bridge.ReplyType(m.MessageType()); expects {
			return nil, fmt.Errorf("%s: %w", m.MessageType(), ErrNoReply)
		}
		return nil, nil
	}
	if err := bridge.DispatchInbound(s, reply); err != nil {
		return nil, err
	}
	return reply, reply.Outcome().Err()
}

// UpdateToken sets a token value locally and writes it to the host. When
// the host rejects the write the local token is restored.
func (s *Session) UpdateToken(ctx context.Context, name, mode, value string) (string, error) {
	reg := s.Registry()
	prev, err := reg.Get(name)
	if err != nil {
		return "", err
	}
	norm, err := reg.Set(name, mode, value)
	if err != nil {
		return "", err
	}
	_, err = s.post(ctx, bridge.UpdateDesignToken{
		Collection: s.Collection(),
		TokenName:  name,
		Mode:       mode,
		Value:      norm,
	})
	if err != nil {
		if rerr := reg.Register(prev); rerr != nil {
			s.logger.Printf("plugin: restore %s: %v\n", name, rerr)
		}
		return "", err
	}
	return norm, nil
}

// UpsertToken is UpdateToken for a token that may not exist yet. A new
// token gets the kind its value looks like and is dropped again if the
// write fails. It returns the stored value and the token's kind.
func (s *Session) UpsertToken(ctx context.Context, name, mode, value string) (string, tokens.Kind, error) {
	reg := s.Registry()
	tok, err := reg.Get(name)
	created := false
	switch {
	case err == nil:
	case errors.Is(err, tokens.ErrTokenNotFound):
		tok = tokens.Token{Name: name, Kind: tokens.InferKind(value), Values: map[string]string{}}
		if err := reg.Register(tok); err != nil {
			return "", "", err
		}
		created = true
	default:
		return "", "", err
	}

	stored, err := s.UpdateToken(ctx, name, mode, value)
	if err != nil {
		if created {
			_ = reg.Delete(name)
		}
		return "", "", err
	}
	return stored, tok.Kind, nil
}

// CopyTokenValue asks the host to copy a token value to the clipboard and
// returns the value copied.
func (s *Session) CopyTokenValue(ctx context.Context, name, mode string) (string, error) {
	tok, err := s.Registry().Get(name)
	if err != nil {
		return "", err
	}
	value, ok := tok.Value(mode)
	if !ok {
		return "", fmt.Errorf("%w: %s has no %s value", tokens.ErrUnknownMode, name, mode)
	}
	if _, err := s.post(ctx, bridge.CopyTokenValue{TokenName: name, Mode: mode, Value: value}); err != nil {
		return "", err
	}
	return value, nil
}

// CopyAllModeVariables copies every value of source to target, locally and
// in the host, and returns the host's count.
func (s *Session) CopyAllModeVariables(ctx context.Context, source, target string) (int, error) {
	reg := s.Registry()
	for _, tok := range reg.List(tokens.Filter{}) {
		v, ok := tok.Value(source)
		if !ok {
			continue
		}
		if _, err := reg.Set(tok.Name, target, v); err != nil {
			return 0, err
		}
	}

	reply, err := s.post(ctx, bridge.CopyAllModeVariables{
		Collection: s.Collection(),
		SourceMode: source,
		TargetMode: target,
	})
	if err != nil {
		return 0, err
	}
	return reply.(bridge.CopyModeVariablesResult).Copied, nil
}

// DuplicateTokensFile asks the host to copy the collection and returns the
// new collection's name.
func (s *Session) DuplicateTokensFile(ctx context.Context, newName string) (string, error) {
	reply, err := s.post(ctx, bridge.DuplicateTokensFile{Collection: s.Collection(), NewName: newName})
	if err != nil {
		return "", err
	}
	return reply.(bridge.TokensFileDuplicated).Collection, nil
}

// PushDesignSystem sends every registry token to the host and returns the
// number of variables written.
func (s *Session) PushDesignSystem(ctx context.Context) (int, error) {
	reg := s.Registry()
	list := reg.List(tokens.Filter{})
	if len(list) == 0 {
		return 0, designsystem.ErrNoColors
	}

	payload := make([]bridge.TokenPayload, len(list))
	for i, t := range list {
		payload[i] = bridge.TokenPayload{
			Name:        t.Name,
			Kind:        string(t.Kind),
			Description: t.Description,
			Values:      t.Values,
		}
	}

	reply, err := s.post(ctx, bridge.GenerateDesignSystem{
		Collection: s.Collection(),
		Modes:      reg.Modes(),
		Tokens:     payload,
	})
	if err != nil {
		return 0, err
	}
	return reply.(bridge.DesignSystemGenerated).Variables, nil
}

// Notify shows a message in the host.
func (s *Session) Notify(ctx context.Context, message string, isError bool) error {
	_, err := s.post(ctx, bridge.Notify{Message: message, Error: isError})
	return err
}

// UpdateNavbarLinks replaces the host's navbar links.
func (s *Session) UpdateNavbarLinks(ctx context.Context, links []bridge.Link) (int, error) {
	reply, err := s.post(ctx, bridge.BulkUpdateNavbarLinks{Links: links})
	if err != nil {
		return 0, err
	}
	return reply.(bridge.NavbarLinksUpdated).Count, nil
}

// UpdateStatusbarLinks replaces the host's statusbar links.
func (s *Session) UpdateStatusbarLinks(ctx context.Context, links []bridge.Link) (int, error) {
	reply, err := s.post(ctx, bridge.BulkUpdateStatusbarLinks{Links: links})
	if err != nil {
		return 0, err
	}
	return reply.(bridge.StatusbarLinksUpdated).Count, nil
}

// DebugVariables asks the host for variable counts. An empty collection
// covers all of them.
func (s *Session) DebugVariables(ctx context.Context, collection string) (bridge.DebugVariableOperationsResult, error) {
	reply, err := s.post(ctx, bridge.DebugVariableOperations{Collection: collection})
	if err != nil {
		return bridge.DebugVariableOperationsResult{}, err
	}
	return reply.(bridge.DebugVariableOperationsResult), nil
}

// ExtractColors extracts up to k swatches from a file path, an http(s) URL
// or a data URL.
func (s *Session) ExtractColors(ctx context.Context, src string, k int, seed uint64) ([]extract.Swatch, error) {
	return extract.FromSource(ctx, s.httpClient, src, k, seed)
}

// ColorsFromImage is ExtractColors returning only the colors. Failures are
// logged and yield an empty result.
func (s *Session) ColorsFromImage(ctx context.Context, src string, k int) []string {
	swatches, err := s.ExtractColors(ctx, src, k, 0)
	if err != nil {
		s.logger.Printf("plugin: extract colors: %v\n", err)
		return []string{}
	}
	return extract.Hexes(swatches)
}
