package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studychef/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// PaletteHints lists the commands app.Model executes.
var PaletteHints = []string{
	"task <title>",
	"cook <recipe-id>",
	"buy <item-id>",
	"focus <minutes>",
	"break <minutes>",
	"scheme <chained|freeform>",
	"save",
}

// Palette is a one-line command prompt backed by bubbles/textinput.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 200
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette prefilled with prefix and returns the focus command.
func (p *Palette) Open(prefix string) tea.Cmd {
	p.visible = true
	p.input.SetValue(prefix)
	p.input.CursorEnd()
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	typed := strings.ToLower(strings.TrimSpace(p.input.Value()))
	var matching []string
	for _, h := range PaletteHints {
		verb, _, _ := strings.Cut(h, " ")
		if typed == "" || strings.HasPrefix(verb, typed) || strings.HasPrefix(typed, verb) {
			matching = append(matching, h)
		}
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Kitchen command") + "\n")
	sb.WriteString("> " + p.input.View() + "\n")
	if len(matching) > 0 {
		sb.WriteString("\n")
		for _, h := range matching {
			sb.WriteString(hintStyle.Render("  "+h) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
