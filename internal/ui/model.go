package ui

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"coingrid/internal/config"
	"coingrid/internal/currency"
	"coingrid/internal/dashboard"
)

// mounts hands out a fresh id per Model so results from an old mount are dropped.
var mounts atomic.Uint64

type Model struct {
	cfg    config.Config
	source currency.Source
	logger *slog.Logger

	styles  styles
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	buttons []button

	width  int
	height int
	offset int

	mount       uint64
	state       dashboard.State
	sourceLabel string
}

// Option customises a Model.
type Option func(*Model)

// WithLogger sets where fetch failures are logged.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithRand fixes the shuffle source.
func WithRand(r *rand.Rand) Option {
	return func(m *Model) { m.buttons = newButtons(m.keys, r) }
}

// NewModel mounts a dashboard; the single fetch starts from Init.
func NewModel(cfg config.Config, source currency.Source, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	sourceLabel := cfg.Source.URL
	if _, ok := source.(*currency.MockSource); ok {
		sourceLabel = "mock"
	}

	keys := newKeyMap()
	m := Model{
		cfg:         cfg,
		source:      source,
		logger:      slog.Default(),
		styles:      newStyles(),
		keys:        keys,
		help:        h,
		spinner:     sp,
		buttons:     newButtons(keys, nil),
		mount:       mounts.Add(1),
		sourceLabel: sourceLabel,
	}
	for _, opt := range opts {
		opt(&m)
	}

	st := dashboard.New()
	if tag, err := cfg.LocaleTag(); err != nil {
		m.logger.Warn("invalid locale, using default collation", "locale", cfg.UI.Locale, "err", err)
	} else {
		st = st.WithLocale(tag)
	}
	m.state = st.Begin()
	return m
}

// State exposes the current dashboard state (read-only copy).
func (m Model) State() dashboard.State { return m.state }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.spinner.Tick)
}

type currenciesMsg struct {
	mount uint64
	items []currency.Item
	err   error
}

func (m Model) fetchCmd() tea.Cmd {
	src := m.source
	mount := m.mount
	timeout := m.cfg.Source.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		items, err := src.ListCurrencies(ctx)
		return currenciesMsg{mount: mount, items: items, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
		return m, nil
	case spinner.TickMsg:
		if m.state.Phase != dashboard.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case currenciesMsg:
		if msg.mount != m.mount || m.state.Phase != dashboard.Loading {
			m.logger.Debug("dropping stale currency result",
				"mount", msg.mount,
				"current", m.mount,
				"phase", m.state.Phase.String(),
			)
			return m, nil
		}
		if msg.err != nil {
			m.logger.Error("fetching currencies", "source", m.sourceLabel, "err", msg.err)
			m.state = m.state.Fail(msg.err)
			return m, nil
		}
		m.state = m.state.Load(msg.items)
		m.logger.Info("loaded currencies", "count", len(m.state.All))
		m.offset = 0
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.state = m.state.Unmount()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Up):
			if m.offset > 0 {
				m.offset--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.offset++
			m.clampOffset()
			return m, nil
		}
		for _, b := range m.buttons {
			if key.Matches(msg, b.binding) {
				m.state = b.activate(m.state)
				m.offset = 0
				return m, nil
			}
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := m.styles.Header.Width(m.width).Render("coingrid  [" + m.sourceLabel + "]")
	toolbar := m.renderButtons()
	total := m.styles.Total.Render(fmt.Sprintf("Total: %d", m.state.Total()))
	footer := m.styles.HelpBar.Width(m.width).Render(m.help.View(m.keys))

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(toolbar) - lipgloss.Height(total) - lipgloss.Height(footer)
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	body := m.renderBody(m.width, bodyHeight)

	return lipgloss.JoinVertical(lipgloss.Left, header, toolbar, total, body, footer)
}

func (m Model) renderButtons() string {
	parts := make([]string, 0, len(m.buttons))
	for _, b := range m.buttons {
		ind := b.state(m.state)
		text := b.label
		if icon := ind.icon(); icon != "" {
			text += " " + icon
		}
		text += " (" + b.binding.Help().Key + ")"
		style := m.styles.Button
		if ind.active() {
			style = m.styles.ButtonActive
		}
		parts = append(parts, style.Render(text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderBody(w, h int) string {
	// Frame: border (2) + horizontal padding (2).
	innerW := max(1, w-4)
	innerH := max(1, h-2)

	var content string
	switch m.state.Phase {
	case dashboard.Idle, dashboard.Loading:
		content = m.spinner.View() + " Loading..."
	case dashboard.Failed:
		content = m.styles.Error.Render(m.state.Message())
	default:
		if m.state.Total() == 0 {
			content = m.styles.Placeholder.Render("No currencies")
		} else {
			content = m.renderGrid(innerW, innerH)
		}
	}
	return m.styles.Grid.Width(max(1, w-2)).Height(innerH).Render(content)
}

func (m Model) columns(w int) int {
	return max(1, w/m.cellWidth())
}

func (m Model) cellWidth() int {
	if m.cfg.UI.CellWidth < 8 {
		return 8
	}
	return m.cfg.UI.CellWidth
}

func (m Model) renderGrid(w, h int) string {
	items := m.state.Derived
	cols := m.columns(w)
	rows := (len(items) + cols - 1) / cols
	start := clamp(m.offset, 0, max(0, rows-1))
	end := min(rows, start+h)

	lines := make([]string, 0, end-start)
	for r := start; r < end; r++ {
		cells := make([]string, 0, cols)
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(items) {
				break
			}
			cells = append(cells, m.renderCell(items[i]))
		}
		lines = append(lines, strings.Join(cells, ""))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderCell(it currency.Item) string {
	cw := m.cellWidth()
	symbol := it.Symbol
	symW := runewidth.StringWidth(symbol)
	nameW := max(1, cw-symW-3)
	name := runewidth.Truncate(it.Name, nameW, "…")
	pad := cw - runewidth.StringWidth(name) - symW - 1
	if pad < 1 {
		pad = 1
	}
	return m.styles.CellName.Render(name) + strings.Repeat(" ", pad) + m.styles.CellSymbol.Render(symbol) + " "
}

// clampOffset keeps the first visible grid row within range.
func (m *Model) clampOffset() {
	if m.width == 0 {
		m.offset = 0
		return
	}
	cols := m.columns(max(1, m.width-4))
	rows := (m.state.Total() + cols - 1) / cols
	m.offset = clamp(m.offset, 0, max(0, rows-1))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
