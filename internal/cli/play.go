package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/render/sink"
)

// chromeRows is the number of terminal rows used by header and footer.
const chromeRows = 4

// List styles
var (
	playSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	playNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	playDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	playFrameStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

// playCommand creates the play command, an animated terminal view.
func (c *CLI) playCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Animate the word cloud in the terminal",
		Long: `Play shows the cloud on a character grid and animates it at the configured
frame rate. Use ←/→ to pick a word, + and - to change its weight, r to reset
all weights and q to quit. Changes are saved as you go; a reset is only
saved with the next change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			term := sink.NewTerminal(80, 20)
			loop := render.NewLoop(term,
				render.WithTheme(cfg.Theme()),
				render.WithGlowScale(cfg.Render.GlowScale),
				render.WithLogger(c.Logger))
			measurer := fonts.NewMeasurer()
			defer measurer.Close()

			cl, store, err := c.openCloud(ctx, cfg, loop, measurer)
			if err != nil {
				return err
			}
			defer store.Close()
			defer cl.Close()

			m := newPlayModel(ctx, cl, loop, term, cfg.Render.FPS)
			// An interrupted context ends the program; that is a normal exit.
			if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
}

// =============================================================================
// playModel - Animated word cloud
// =============================================================================

type frameMsg time.Time

// playModel is the bubbletea model for the animated cloud.
type playModel struct {
	ctx      context.Context
	cloud    *cloud.Cloud
	loop     *render.Loop
	term     *sink.Terminal
	interval time.Duration

	cursor int
	status string
	width  int
}

func newPlayModel(ctx context.Context, cl *cloud.Cloud, loop *render.Loop, term *sink.Terminal, fps int) playModel {
	if fps <= 0 {
		fps = 30
	}
	return playModel{
		ctx:      ctx,
		cloud:    cl,
		loop:     loop,
		term:     term,
		interval: time.Second / time.Duration(fps),
		width:    80,
	}
}

func (m playModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m playModel) Init() tea.Cmd {
	return m.tick()
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.term.Resize(msg.Width-2, max(msg.Height-chromeRows-2, 3))
	case frameMsg:
		m.term.Highlight(m.selected())
		if err := m.loop.Frame(m.loop.Clock().Now()); err != nil {
			m.status = err.Error()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	labels := m.cloud.Entries().Labels()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(labels)-1 {
			m.cursor++
		}
	case "+", "=", "enter":
		m.status = m.apply("add", m.cloud.Add)
	case "-", "backspace":
		m.status = m.apply("remove", m.cloud.Remove)
	case "r":
		_ = m.cloud.ResetAll(m.ctx)
		m.status = "reset all weights"
	}
	return m, nil
}

// apply runs a label command on the selected word and returns a status line.
func (m playModel) apply(name string, cmd func(context.Context, string) error) string {
	label := m.selected()
	if label == "" {
		return ""
	}
	err := cmd(m.ctx, label)
	switch {
	case err == nil:
	case errors.IsWarning(err):
		return StyleWarning.Render(errors.UserMessage(err))
	default:
		return err.Error()
	}
	w, _ := m.cloud.Weight(label)
	return fmt.Sprintf("%s %s %s %d", name, label, iconArrow, w)
}

func (m playModel) selected() string {
	labels := m.cloud.Entries().Labels()
	if len(labels) == 0 {
		return ""
	}
	return labels[min(m.cursor, len(labels)-1)]
}

func (m playModel) View() string {
	var b strings.Builder

	st := m.loop.Stats()
	b.WriteString(StyleTitle.Render(appName))
	b.WriteString(playDimStyle.Render(fmt.Sprintf("  generation %d · %d words", st.Generation, st.Words)))
	b.WriteString("\n")
	b.WriteString(playFrameStyle.Render(m.term.String()))
	b.WriteString("\n")
	b.WriteString(m.wordStrip())
	b.WriteString("\n")
	help := "←/→ select  + add  - remove  r reset  q quit"
	if m.status != "" {
		help = m.status + "  " + help
	}
	b.WriteString(playDimStyle.Render(help))
	return b.String()
}

// wordStrip renders the entries around the cursor on one line.
func (m playModel) wordStrip() string {
	entries := m.cloud.Entries()
	if len(entries) == 0 {
		return playDimStyle.Render("no words")
	}
	cursor := min(m.cursor, len(entries)-1)

	var parts []string
	used := 0
	for i := cursor; i < len(entries) && used < m.width; i++ {
		e := entries[i]
		text := fmt.Sprintf("%s %s", e.Label, strings.Repeat(iconWord, e.Weight))
		used += len([]rune(text)) + 2
		switch {
		case i == cursor:
			parts = append(parts, playSelectedStyle.Render("▸ "+text))
		case e.Weight == 0:
			parts = append(parts, playDimStyle.Render(text))
		default:
			parts = append(parts, playNormalStyle.Render(text))
		}
	}
	return strings.Join(parts, "  ")
}
