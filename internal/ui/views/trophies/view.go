package trophies

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	kitchendto "studychef/internal/modules/kitchen/dto"
	"studychef/internal/ui/theme"
)

const barWidth = 30

// Model shows earned achievements and the recent focus history.
type Model struct {
	achievements []kitchendto.AchievementOutput
	history      []kitchendto.DayStatOutput
	width        int
	height       int
}

func New() Model {
	return Model{}
}

func (m *Model) SetData(achievements []kitchendto.AchievementOutput, history []kitchendto.DayStatOutput) {
	m.achievements = achievements
	m.history = history
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
	}
	return m, nil
}

func (m Model) View() string {
	var left strings.Builder
	left.WriteString(theme.Title.Render("Achievements") + "\n\n")
	for _, a := range m.achievements {
		if a.Earned {
			left.WriteString(theme.Good.Render("🏆 "+a.Name) + "\n")
		} else {
			left.WriteString(theme.Muted.Render("·  "+a.Name) + "\n")
		}
		left.WriteString(theme.Muted.Render("   "+a.Description) + "\n")
	}

	var right strings.Builder
	right.WriteString(theme.Title.Render("Last 7 days") + "\n\n")
	right.WriteString(Bars(m.history, barWidth))

	half := max(m.width/2-2, 20)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Pane.Width(half).Render(left.String()),
		theme.Pane.Width(half).Render(right.String()),
	)
}

// Bars renders one line per day with a bar scaled to the busiest day.
func Bars(days []kitchendto.DayStatOutput, width int) string {
	busiest := 0
	for _, d := range days {
		busiest = max(busiest, d.FocusMinutes)
	}
	var sb strings.Builder
	for _, d := range days {
		n := 0
		if busiest > 0 {
			n = d.FocusMinutes * width / busiest
		}
		label := d.Date
		if len(label) == len("2006-01-02") {
			label = label[5:]
		}
		sb.WriteString(fmt.Sprintf("%s %s %d min\n", label, strings.Repeat("█", n)+strings.Repeat("░", width-n), d.FocusMinutes))
	}
	return sb.String()
}
