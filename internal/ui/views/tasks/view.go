package tasks

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	kitchendto "studychef/internal/modules/kitchen/dto"
	"studychef/internal/ui/theme"
)

type taskItem struct {
	task kitchendto.TaskOutput
}

func (i taskItem) Title() string {
	if i.task.Done {
		return "[x] " + i.task.Title
	}
	return "[ ] " + i.task.Title
}

func (i taskItem) Description() string {
	if i.task.Tag == "" {
		return i.task.CreatedAt.Format("Jan 2 15:04")
	}
	return "#" + i.task.Tag + " · " + i.task.CreatedAt.Format("Jan 2 15:04")
}

func (i taskItem) FilterValue() string { return i.task.Title }

type Model struct {
	list   list.Model
	width  int
	height int
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Green).BorderForeground(theme.Green)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Subtext0).BorderForeground(theme.Green)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Study checklist"
	l.Styles.Title = theme.Title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("task", "tasks")
	return Model{list: l}
}

func (m *Model) SetData(tasks []kitchendto.TaskOutput) tea.Cmd {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = taskItem{task: t}
	}
	return m.list.SetItems(items)
}

func (m Model) Selected() (string, bool) {
	if item, ok := m.list.SelectedItem().(taskItem); ok {
		return item.task.ID, true
	}
	return "", false
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.list.SetSize(m.width, m.height-2)
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	hint := theme.Muted.Render("a: add  x: toggle done  delete: remove")
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), hint)
}
