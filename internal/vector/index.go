package vector

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/philippgille/chromem-go"

	"github.com/asteroid-belt/themebuddy/internal/color"
	"github.com/asteroid-belt/themebuddy/internal/embedding"
)

// MoodIndex is a chromem-go collection holding one document per mood.
type MoodIndex struct {
	db            *chromem.DB
	collection    *chromem.Collection
	provider      embedding.Provider
	minSimilarity float32
}

// New opens the mood index described by cfg. Call Build before querying.
func New(cfg Config) (*MoodIndex, error) {
	return newWithProvider(cfg, embedding.New(cfg.OpenAIKey, cfg.Model))
}

// newWithProvider opens the mood index using p for embeddings. Each
// provider gets its own collection since their vectors are not comparable.
func newWithProvider(cfg Config, p embedding.Provider) (*MoodIndex, error) {
	var db *chromem.DB
	if cfg.DataDir == "" {
		db = chromem.NewDB()
	} else {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("create vector dir: %w", err)
		}
		var err error
		db, err = chromem.NewPersistentDB(cfg.DataDir, false)
		if err != nil {
			return nil, fmt.Errorf("create chromem db: %w", err)
		}
	}

	name := "moods-" + strings.NewReplacer("/", "-", ".", "-").Replace(p.Name())
	collection, err := db.GetOrCreateCollection(name, map[string]string{"provider": p.Name()}, p.Embed)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &MoodIndex{
		db:            db,
		collection:    collection,
		provider:      p,
		minSimilarity: cfg.MinSimilarity,
	}, nil
}

// Build embeds every mood whose content changed since it was last indexed.
// It returns the number of moods embedded.
func (ix *MoodIndex) Build(ctx context.Context) (int, error) {
	var docs []chromem.Document
	for _, m := range color.Moods() {
		info, err := color.DescribeMood(m)
		if err != nil {
			return 0, err
		}
		content := MoodContent(info)
		contentHash := ContentHash(content)

		if existing, err := ix.collection.GetByID(ctx, string(m)); err == nil && existing.Metadata["content_hash"] == contentHash {
			continue
		}
		docs = append(docs, chromem.Document{
			ID:      string(m),
			Content: content,
			Metadata: map[string]string{
				"mood":         string(m),
				"content_hash": contentHash,
			},
		})
	}
	if len(docs) == 0 {
		return 0, nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}
	vectors, err := ix.provider.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed moods: %w", err)
	}
	for i := range docs {
		docs[i].Embedding = vectors[i]
	}

	if err := ix.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return 0, fmt.Errorf("add documents: %w", err)
	}
	return len(docs), nil
}

// Search returns up to limit moods ordered by similarity to text.
func (ix *MoodIndex) Search(ctx context.Context, text string, limit int) ([]Match, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", ErrNoMatch)
	}

	// chromem rejects limits above the collection size.
	count := ix.collection.Count()
	if limit <= 0 || limit > count {
		limit = count
	}
	if limit == 0 {
		return []Match{}, nil
	}

	results, err := ix.collection.Query(ctx, text, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	out := make([]Match, 0, len(results))
	for _, r := range results {
		out = append(out, Match{Mood: color.Mood(r.ID), Similarity: r.Similarity})
	}
	return out, nil
}

// Match returns the mood closest to text, or ErrNoMatch when even the
// closest is below the configured similarity.
func (ix *MoodIndex) Match(ctx context.Context, text string) (Match, error) {
	hits, err := ix.Search(ctx, text, 1)
	if err != nil {
		return Match{}, err
	}
	if len(hits) == 0 {
		return Match{}, fmt.Errorf("%w: index is empty", ErrNoMatch)
	}
	if hits[0].Similarity < ix.minSimilarity {
		return Match{}, fmt.Errorf("%w: best was %s at %.2f", ErrNoMatch, hits[0].Mood, hits[0].Similarity)
	}
	return hits[0], nil
}

// Resolve finds the mood of text: a keyword match first, with similarity 1,
// then the closest indexed mood.
func (ix *MoodIndex) Resolve(ctx context.Context, text string) (Match, error) {
	if m, ok := color.MoodForText(text); ok {
		return Match{Mood: m, Similarity: 1}, nil
	}
	return ix.Match(ctx, text)
}

// Count returns the number of indexed moods.
func (ix *MoodIndex) Count() int {
	return ix.collection.Count()
}

// Provider returns the name of the embedding provider.
func (ix *MoodIndex) Provider() string {
	return ix.provider.Name()
}

// Close releases resources.
func (ix *MoodIndex) Close() error {
	// chromem-go persists on write, no explicit close needed
	return nil
}
