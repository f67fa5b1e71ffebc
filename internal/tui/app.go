// Package tui contains the Bubble Tea palette preview.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asteroid-belt/themebuddy/internal/color"
	"github.com/asteroid-belt/themebuddy/internal/telemetry"
	"github.com/asteroid-belt/themebuddy/internal/tui/theme"
)

// Shade count bounds for the +/- keys.
const (
	minShades = 1
	maxShades = 20
)

// ErrNoColors is returned by NewModel without base colors.
var ErrNoColors = errors.New("preview needs at least one color")

// levelOrder is the cycle the level key steps through.
var levelOrder = []color.Level{color.LevelAA, color.LevelAAA, color.LevelAALarge}

// Model is the preview state: one ramp of the selected base color plus
// its selected harmony.
type Model struct {
	colors   []string
	names    []string
	selected int

	mode       color.Mode
	level      color.Level
	harmonyIdx int
	settings   color.ShadeSettings

	shades  []color.Shade
	harmony []string
	err     error

	keys      Keymap
	help      help.Model
	styles    Styles
	telemetry telemetry.Client

	width    int
	height   int
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithShadeSettings sets the initial ramp settings and contrast level.
func WithShadeSettings(settings color.ShadeSettings, level color.Level) Option {
	return func(m *Model) {
		m.settings = settings
		if level != "" {
			m.level = level
		}
	}
}

// WithMode sets the initial mode.
func WithMode(mode color.Mode) Option {
	return func(m *Model) { m.mode = mode }
}

// WithTelemetry records key presses.
func WithTelemetry(tc telemetry.Client) Option {
	return func(m *Model) {
		if tc != nil {
			m.telemetry = tc
		}
	}
}

// NewModel creates a preview of colors. The chrome is themed from the
// palette itself.
func NewModel(colors []string, opts ...Option) (*Model, error) {
	if len(colors) == 0 {
		return nil, ErrNoColors
	}

	m := &Model{
		mode:      color.ModeLight,
		level:     color.LevelAA,
		settings:  color.DefaultShadeSettings(),
		keys:      DefaultKeymap(),
		help:      help.New(),
		telemetry: telemetry.Noop(),
	}
	for _, c := range colors {
		hex, err := color.Normalize(c)
		if err != nil {
			return nil, err
		}
		name, err := color.NameColor(hex)
		if err != nil {
			return nil, err
		}
		m.colors = append(m.colors, hex)
		m.names = append(m.names, name)
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.settings.NumberOfShades < minShades {
		m.settings.NumberOfShades = minShades
	}

	t, err := theme.FromPalette(m.colors...)
	if err != nil {
		return nil, err
	}
	m.styles = NewStyles(t)

	m.refresh()
	return m, nil
}

// refresh regenerates the ramp and harmony for the current state.
func (m *Model) refresh() {
	base := m.colors[m.selected]

	m.shades, m.err = color.GenerateShades(base, m.settings, m.mode, m.level)
	if m.err != nil {
		return
	}
	m.harmony, m.err = color.Harmonize(base, m.currentHarmony())
}

func (m *Model) currentHarmony() color.Harmony {
	all := color.Harmonies()
	return all[m.harmonyIdx%len(all)]
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.track(msg)
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.selected = (m.selected + 1) % len(m.colors)
	case key.Matches(msg, m.keys.Prev):
		m.selected = (m.selected - 1 + len(m.colors)) % len(m.colors)

	case key.Matches(msg, m.keys.Mode):
		if m.mode == color.ModeLight {
			m.mode = color.ModeDark
		} else {
			m.mode = color.ModeLight
		}
	case key.Matches(msg, m.keys.Level):
		m.level = nextLevel(m.level)
	case key.Matches(msg, m.keys.Harmony):
		m.harmonyIdx = (m.harmonyIdx + 1) % len(color.Harmonies())

	case key.Matches(msg, m.keys.More):
		if m.settings.NumberOfShades >= maxShades {
			return m, nil
		}
		m.settings.NumberOfShades++
	case key.Matches(msg, m.keys.Fewer):
		if m.settings.NumberOfShades <= minShades {
			return m, nil
		}
		m.settings.NumberOfShades--

	default:
		return m, nil
	}

	m.track(msg)
	m.refresh()
	return m, nil
}

func (m *Model) track(msg tea.KeyMsg) {
	m.telemetry.TrackKeyboardShortcut(msg.String(), "preview")
}

func nextLevel(l color.Level) color.Level {
	for i, lv := range levelOrder {
		if lv == l {
			return levelOrder[(i+1)%len(levelOrder)]
		}
	}
	return color.LevelAA
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader(), m.renderTabs()}
	if m.err != nil {
		sections = append(sections, m.styles.Error.Render("Error: "+m.err.Error()))
	} else {
		sections = append(sections,
			m.styles.Section.Render("Shades"),
			m.renderShades(),
			m.styles.Section.Render("Harmony: "+string(m.currentHarmony())),
			m.renderHarmony(),
		)
	}
	sections = append(sections, m.styles.Footer.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	title := m.styles.HeaderTitle.Render("Theme Buddy")
	meta := m.styles.HeaderMeta.Render(fmt.Sprintf("%s mode • %s • %d shades",
		m.mode, m.level, m.settings.NumberOfShades))
	return m.styles.Header.Render(title + "  " + meta)
}

func (m *Model) renderTabs() string {
	tabs := make([]string, len(m.colors))
	for i, hex := range m.colors {
		label := swatch(hex, "  ") + " " + m.names[i]
		if i == m.selected {
			tabs[i] = m.styles.TabSelected.Render(label)
		} else {
			tabs[i] = m.styles.Tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderShades() string {
	rows := make([]string, len(m.shades))
	for i, s := range m.shades {
		cell := lipgloss.NewStyle().
			Background(lipgloss.Color(s.Hex)).
			Foreground(lipgloss.Color(s.TextColor)).
			Width(18).
			Render(fmt.Sprintf(" %-5s %s", s.Name, s.Hex))

		badge := m.styles.Fail.Render("✗ " + string(m.level))
		if s.MeetsLevel {
			badge = m.styles.Pass.Render("✓ " + string(m.level))
		}
		ratio := m.styles.Muted.Render(fmt.Sprintf("%5.2f:1 %s", s.ContrastRatio, s.Rating))

		rows[i] = cell + " " + ratio + " " + badge
	}
	return m.styles.Box.Render(strings.Join(rows, "\n"))
}

func (m *Model) renderHarmony() string {
	cells := make([]string, len(m.harmony))
	for i, hex := range m.harmony {
		text, _, err := color.BestText(hex, "#000000", "#FFFFFF")
		if err != nil {
			text = "#FFFFFF"
		}
		cells[i] = lipgloss.NewStyle().
			Background(lipgloss.Color(hex)).
			Foreground(lipgloss.Color(text)).
			Padding(0, 1).
			Render(hex)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// swatch renders text on a solid block of hex.
func swatch(hex, text string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(text)
}

// Run executes the preview program.
func Run(colors []string, opts ...Option) error {
	model, err := NewModel(colors, opts...)
	if err != nil {
		return err
	}
	model.telemetry.TrackPreviewOpened(len(model.colors))

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running preview: %w", err)
	}
	return nil
}
