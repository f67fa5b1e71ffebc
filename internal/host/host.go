// Package host answers plugin messages against the local variable store.
// It plays the part of the design tool's plugin runtime: collections,
// modes and variables live in SQLite, toasts go to a Notifier and copied
// values to a Clipboard.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"

	"github.com/asteroid-belt/themebuddy/internal/bridge"
	"github.com/asteroid-belt/themebuddy/internal/db"
	"github.com/asteroid-belt/themebuddy/internal/models"
	"github.com/asteroid-belt/themebuddy/internal/telemetry"
	"github.com/asteroid-belt/themebuddy/internal/tokens"
)

// ErrNoClipboard is returned for copy-token-value when no clipboard is set.
var ErrNoClipboard = errors.New("clipboard unavailable")

// Logger receives one line per handled message.
type Logger interface {
	Printf(format string, args ...interface{})
}

// Clipboard receives copied token values.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// WriteAll copies text to the OS clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Notifier shows notify messages to the user.
type Notifier interface {
	Notify(message string, isError bool, timeout time.Duration)
}

// WriterNotifier prints notifications as lines on W.
type WriterNotifier struct {
	W io.Writer
}

// Notify writes message with a success or error marker.
func (n WriterNotifier) Notify(message string, isError bool, _ time.Duration) {
	mark := "✓"
	if isError {
		mark = "✗"
	}
	_, _ = fmt.Fprintf(n.W, "%s %s\n", mark, message)
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}

// Host implements bridge.OutboundHandler over a *db.DB.
type Host struct {
	db         *db.DB
	clipboard  Clipboard
	notifier   Notifier
	telemetry  telemetry.Client
	logger     Logger
	collection string
}

// Option configures a Host.
type Option func(*Host)

// WithClipboard sets the clipboard; nil disables copy-token-value.
func WithClipboard(c Clipboard) Option {
	return func(h *Host) { h.clipboard = c }
}

// WithNotifier sets where notify messages go.
func WithNotifier(n Notifier) Option {
	return func(h *Host) { h.notifier = n }
}

// WithTelemetry sets the telemetry client.
func WithTelemetry(tc telemetry.Client) Option {
	return func(h *Host) {
		if tc != nil {
			h.telemetry = tc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithCollection sets the collection used when a message names none.
func WithCollection(name string) Option {
	return func(h *Host) {
		if name != "" {
			h.collection = name
		}
	}
}

// New creates a Host over database.
func New(database *db.DB, opts ...Option) *Host {
	h := &Host{
		db:         database,
		clipboard:  SystemClipboard{},
		notifier:   WriterNotifier{W: io.Discard},
		telemetry:  telemetry.Noop(),
		logger:     discardLogger{},
		collection: models.DefaultCollectionName,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Serve answers every outbound message read from s until the reader is
// exhausted or ctx is done. Bad lines are logged and skipped.
func (h *Host) Serve(ctx context.Context, s *bridge.Stream) error {
	return bridge.Serve(ctx, s, h, func(err error) {
		h.logger.Printf("host: skipped message: %v\n", err)
	})
}

func (h *Host) collectionOr(name string) string {
	if name == "" {
		return h.collection
	}
	return name
}

// done logs and tracks the outcome of a message and returns r.
func (h *Host) done(t bridge.Type, err error) bridge.Result {
	h.telemetry.TrackHostMessage(string(t), err == nil)
	if err != nil {
		h.logger.Printf("host: %s failed: %v\n", t, err)
		return bridge.Failed(err)
	}
	h.logger.Printf("host: %s ok\n", t)
	return bridge.OK()
}

// UpdateDesignToken writes one value. An existing variable keeps its kind;
// a new one gets the kind its value looks like.
func (h *Host) UpdateDesignToken(_ context.Context, m bridge.UpdateDesignToken) bridge.DesignTokenUpdated {
	reply := bridge.DesignTokenUpdated{TokenName: m.TokenName, Mode: m.Mode}
	value, err := h.updateToken(m)
	reply.Result = h.done(m.MessageType(), err)
	if err == nil {
		reply.Value = value
	}
	return reply
}

func (h *Host) updateToken(m bridge.UpdateDesignToken) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	collection := h.collectionOr(m.Collection)

	kind := tokens.InferKind(m.Value)
	existing, err := h.db.GetVariable(collection, m.TokenName)
	switch {
	case err == nil:
		kind = tokens.Kind(existing.Kind)
	case !errors.Is(err, db.ErrVariableNotFound):
		return "", err
	}

	value, err := tokens.NormalizeValue(kind, m.Value)
	if err != nil {
		return "", fmt.Errorf("%s: %w", m.TokenName, err)
	}
	if err := h.db.SetValue(collection, m.TokenName, string(kind), m.Mode, value); err != nil {
		return "", err
	}
	return value, nil
}

// CopyTokenValue puts the value on the clipboard.
func (h *Host) CopyTokenValue(_ context.Context, m bridge.CopyTokenValue) bridge.TokenValueCopied {
	reply := bridge.TokenValueCopied{TokenName: m.TokenName, Value: m.Value}
	err := m.Validate()
	if err == nil {
		if h.clipboard == nil {
			err = ErrNoClipboard
		} else if cerr := h.clipboard.WriteAll(m.Value); cerr != nil {
			err = fmt.Errorf("%w: %w", ErrNoClipboard, cerr)
		}
	}
	reply.Result = h.done(m.MessageType(), err)
	return reply
}

// CopyAllModeVariables copies every value of the source mode to the target.
func (h *Host) CopyAllModeVariables(_ context.Context, m bridge.CopyAllModeVariables) bridge.CopyModeVariablesResult {
	var reply bridge.CopyModeVariablesResult
	err := m.Validate()
	if err == nil {
		reply.Copied, err = h.db.CopyModeValues(h.collectionOr(m.Collection), m.SourceMode, m.TargetMode)
	}
	reply.Result = h.done(m.MessageType(), err)
	return reply
}

// DuplicateTokensFile copies a collection under a new name and file key.
func (h *Host) DuplicateTokensFile(_ context.Context, m bridge.DuplicateTokensFile) bridge.TokensFileDuplicated {
	var reply bridge.TokensFileDuplicated
	err := m.Validate()
	if err == nil {
		var c *models.Collection
		if c, err = h.db.DuplicateCollection(m.Collection, m.NewName); err == nil {
			reply.Collection = c.Name
			reply.FileKey = c.FileKey
		}
	}
	reply.Result = h.done(m.MessageType(), err)
	return reply
}

// GenerateDesignSystem writes every token into the collection, creating it
// and its modes as needed, and makes it the active collection.
func (h *Host) GenerateDesignSystem(_ context.Context, m bridge.GenerateDesignSystem) bridge.DesignSystemGenerated {
	reply := bridge.DesignSystemGenerated{Collection: m.Collection}
	err := m.Validate()
	if err == nil {
		vars := make([]db.VariableInput, len(m.Tokens))
		for i, t := range m.Tokens {
			vars[i] = db.VariableInput{Name: t.Name, Kind: t.Kind, Description: t.Description, Values: t.Values}
		}
		reply.Variables, err = h.db.ApplyVariables(m.Collection, m.Modes, vars)
	}
	if err == nil {
		err = h.db.SetActiveCollection(m.Collection)
	}
	reply.Result = h.done(m.MessageType(), err)
	return reply
}

// Notify forwards the message to the notifier.
func (h *Host) Notify(_ context.Context, m bridge.Notify) {
	if err := m.Validate(); err != nil {
		h.done(m.MessageType(), err)
		return
	}
	h.notifier.Notify(m.Message, m.Error, time.Duration(m.Timeout)*time.Millisecond)
	h.done(m.MessageType(), nil)
}

// BulkUpdateNavbarLinks replaces the navbar links.
func (h *Host) BulkUpdateNavbarLinks(_ context.Context, m bridge.BulkUpdateNavbarLinks) bridge.NavbarLinksUpdated {
	var reply bridge.NavbarLinksUpdated
	err := m.Validate()
	if err == nil {
		err = h.db.ReplaceLinks(models.BarNavbar, linkInputs(m.Links))
	}
	if err == nil {
		reply.Count = len(m.Links)
	}
	reply.Result = h.done(m.MessageType(), err)
	return reply
}

// BulkUpdateStatusbarLinks replaces the statusbar links.
func (h *Host) BulkUpdateStatusbarLinks(_ context.Context, m bridge.BulkUpdateStatusbarLinks) bridge.StatusbarLinksUpdated {
	var reply bridge.StatusbarLinksUpdated
	err := m.Validate()
	if err == nil {
		err = h.db.ReplaceLinks(models.BarStatusbar, linkInputs(m.Links))
	}
	if err == nil {
		reply.Count = len(m.Links)
	}
	reply.Result = h.done(m.MessageType(), err)
	return reply
}

func linkInputs(links []bridge.Link) []db.LinkInput {
	out := make([]db.LinkInput, len(links))
	for i, l := range links {
		out[i] = db.LinkInput{Label: l.Label, URL: l.URL}
	}
	return out
}

// DebugVariableOperations reports counts for one collection, or all of
// them when the message names none.
func (h *Host) DebugVariableOperations(_ context.Context, m bridge.DebugVariableOperations) bridge.DebugVariableOperationsResult {
	var reply bridge.DebugVariableOperationsResult
	stats, err := h.db.Stats(m.Collection)
	if err == nil {
		reply.Collections = make([]bridge.CollectionStats, len(stats))
		for i, s := range stats {
			reply.Collections[i] = bridge.CollectionStats{
				Name:      s.Name,
				Modes:     s.Modes,
				Variables: int(s.Variables),
				Values:    int(s.Values),
			}
		}
		var links int64
		if links, err = h.db.CountLinks(); err == nil {
			reply.Links = int(links)
		}
	}
	reply.Result = h.done(m.MessageType(), err)
	return reply
}

var _ bridge.OutboundHandler = (*Host)(nil)
