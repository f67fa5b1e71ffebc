package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/themebuddy/internal/color"
	"github.com/asteroid-belt/themebuddy/internal/config"
	"github.com/asteroid-belt/themebuddy/internal/llm"
	"github.com/asteroid-belt/themebuddy/internal/vector"
)

var (
	moodCount    int
	moodSeed     int64
	moodStyle    string
	moodAI       bool
	moodProvider string
	moodModel    string
	moodList     bool
	moodJSON     bool
)

var moodCmd = &cobra.Command{
	Use:   "mood <description>...",
	Short: "Build a palette from a mood or description",
	Long: `Build a palette from a short description such as "calm ocean morning".

The first mood keyword in the description picks the palette. Descriptions
without one are matched against the local mood index. With --ai the
description goes to the configured LLM provider instead.`,
	Example: `  themebuddy mood calm ocean morning
  themebuddy mood "retro diner" --count 6 --seed 42
  themebuddy mood "a fintech app for teenagers" --ai
  themebuddy mood --list`,
	RunE: runMood,
}

func init() {
	moodCmd.Flags().IntVarP(&moodCount, "count", "n", 5, "Number of colors")
	moodCmd.Flags().Int64Var(&moodSeed, "seed", 0, "Random seed for a repeatable palette (0 = random)")
	moodCmd.Flags().StringVar(&moodStyle, "style", "", "monochromatic or analogous (default random)")
	moodCmd.Flags().BoolVar(&moodAI, "ai", false, "Ask the configured LLM provider")
	moodCmd.Flags().StringVar(&moodProvider, "provider", "", "LLM provider override: anthropic, openai or openrouter")
	moodCmd.Flags().StringVar(&moodModel, "model", "", "LLM model override")
	moodCmd.Flags().BoolVar(&moodList, "list", false, "List the known moods and their keywords")
	moodCmd.Flags().BoolVar(&moodJSON, "json", false, "Output as JSON")
}

type moodOutput struct {
	color.MoodResult
	Similarity float32 `json:"similarity"`
}

func runMood(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	if moodList {
		return listMoods(cmd)
	}
	if len(args) == 0 {
		return trackCLIError("mood", errors.New("a description is required (or use --list)"))
	}
	description := strings.Join(args, " ")

	cfg, err := config.Load()
	if err != nil {
		return trackCLIError("mood", fmt.Errorf("load config: %w", err))
	}

	if moodAI {
		return suggestPalette(cmd, cfg, description)
	}

	mood, similarity, err := resolveMood(cmd.Context(), cfg, description)
	if err != nil {
		return trackCLIError("mood", err)
	}

	var rng *rand.Rand
	if moodSeed != 0 {
		rng = rand.New(rand.NewPCG(uint64(moodSeed), uint64(moodSeed)))
	}
	result, err := color.MoodPalette(mood, moodCount, color.SpreadStyle(strings.ToLower(moodStyle)), rng)
	if err != nil {
		return trackCLIError("mood", err)
	}
	telemetryClient.TrackPaletteGenerated("mood", len(result.Colors))

	if moodJSON {
		return printJSON(w, moodOutput{MoodResult: result, Similarity: similarity})
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", titleStyle.Render(string(result.Mood)),
		mutedStyle.Render(fmt.Sprintf("(%s from %s, match %.2f)", result.Style, result.Seed, similarity)))
	for _, hex := range result.Colors {
		_, _ = fmt.Fprintf(w, "  %s\n", swatch(hex))
	}
	return nil
}

// resolveMood tries keywords first and only opens the mood index when none
// match.
func resolveMood(ctx context.Context, cfg *config.Config, description string) (color.Mood, float32, error) {
	if mood, ok := color.MoodForText(description); ok {
		return mood, 1, nil
	}

	ix, err := vector.New(vector.Config{
		DataDir:       config.GetPaths(cfg).Vectors,
		OpenAIKey:     cfg.Embedding.APIKey,
		Model:         cfg.Embedding.Model,
		MinSimilarity: cfg.Embedding.MinSimilarity,
	})
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", color.ErrNoMood, description)
	}
	defer func() { _ = ix.Close() }()

	if _, err := ix.Build(ctx); err != nil {
		return "", 0, fmt.Errorf("mood index: %w", err)
	}
	m, err := ix.Resolve(ctx, description)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", color.ErrNoMood, description)
	}
	return m.Mood, m.Similarity, nil
}

func suggestPalette(cmd *cobra.Command, cfg *config.Config, description string) error {
	provider, err := llm.NewProvider(cfg.LLM, moodProvider, moodModel)
	if err != nil {
		return trackCLIError("mood", err)
	}
	suggestion, err := llm.NewSuggester(provider, cfg.LLM.RequestsPerMinute).Suggest(cmd.Context(), description, moodCount)
	if err != nil {
		return trackCLIError("mood", err)
	}
	telemetryClient.TrackPaletteGenerated("ai", len(suggestion.Colors))

	w := cmd.OutOrStdout()
	if moodJSON {
		return printJSON(w, suggestion)
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", titleStyle.Render(description),
		mutedStyle.Render(fmt.Sprintf("(%s %s)", suggestion.Provider, suggestion.Model)))
	for _, hex := range suggestion.Colors {
		_, _ = fmt.Fprintf(w, "  %s\n", swatch(hex))
	}
	if suggestion.Rationale != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", mutedStyle.Render(suggestion.Rationale))
	}
	return nil
}

func listMoods(cmd *cobra.Command) error {
	infos := make([]color.MoodInfo, 0, len(color.Moods()))
	for _, m := range color.Moods() {
		info, err := color.DescribeMood(m)
		if err != nil {
			return trackCLIError("mood", err)
		}
		infos = append(infos, info)
	}

	w := cmd.OutOrStdout()
	if moodJSON {
		return printJSON(w, infos)
	}
	for _, info := range infos {
		_, _ = fmt.Fprintf(w, "%-12s %s\n", titleStyle.Render(string(info.Mood)), mutedStyle.Render(strings.Join(info.Keywords, ", ")))
	}
	return nil
}
