package timer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	kitchendto "studychef/internal/modules/kitchen/dto"
	"studychef/internal/ui/theme"
)

// Model renders the countdown, the segment progress bar and the headline
// stats. It holds no state of its own beyond the last status it was given.
type Model struct {
	status kitchendto.StatusOutput
	bar    progress.Model
	width  int
	height int
}

func New() Model {
	bar := progress.New(progress.WithGradient(string(theme.Peach), string(theme.Pink)), progress.WithoutPercentage())
	return Model{bar: bar}
}

func (m *Model) SetStatus(status kitchendto.StatusOutput) {
	m.status = status
}

// SetTimer updates only the countdown, as after a tick.
func (m *Model) SetTimer(timer kitchendto.TimerOutput) {
	m.status.Timer = timer
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.bar.Width = max(size.Width-12, 10)
	}
	return m, nil
}

func (m Model) View() string {
	t := m.status.Timer
	mode := strings.ToUpper(t.Mode)
	if t.Paused {
		mode += " · paused"
	}
	header := lipgloss.NewStyle().Foreground(theme.ModeColor(t.Mode)).Bold(true).Render(mode)
	clock := theme.Clock.Render(ClockFace(t.RemainingSeconds))

	var sb strings.Builder
	sb.WriteString(header + "\n")
	sb.WriteString(clock + "\n")
	sb.WriteString(m.bar.ViewAs(Fraction(t)) + "\n\n")
	sb.WriteString(fmt.Sprintf("%s  %s  %s\n",
		theme.XP.Render(fmt.Sprintf("%d XP", m.status.XP)),
		theme.Coins.Render(fmt.Sprintf("%d coins", m.status.Coins)),
		theme.Hot.Render(fmt.Sprintf("🔥 %d (best %d)", m.status.Streak, m.status.BestStreak)),
	))
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("sessions %d · recipes %d · %.0f focused minutes",
		m.status.SessionsDone, m.status.RecipesCooked, m.status.TotalMinutes)) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("next: %d min focus / %d min break · %s",
		t.FocusMinutes, t.BreakMinutes, t.ConfiguredScheme)) + "\n")
	if b := m.status.Bonuses; b.XPMultiplier != 1 || b.CoinMultiplier != 1 || b.ExtraIngredient {
		sb.WriteString(theme.Good.Render(fmt.Sprintf("bonuses: XP x%.2f · coins x%.2f · extra ingredient %t",
			b.XPMultiplier, b.CoinMultiplier, b.ExtraIngredient)) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("s: focus  b: break  p: pause/resume"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}

// ClockFace renders seconds as mm:ss.
func ClockFace(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Fraction is how much of the running segment has elapsed, in [0, 1].
func Fraction(t kitchendto.TimerOutput) float64 {
	total := t.SegmentMinutes * 60
	if t.Mode == "idle" || total <= 0 {
		return 0
	}
	f := 1 - float64(t.RemainingSeconds)/float64(total)
	return min(max(f, 0), 1)
}
