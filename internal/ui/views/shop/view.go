package shop

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	kitchendto "studychef/internal/modules/kitchen/dto"
	"studychef/internal/ui/theme"
)

type upgradeItem struct {
	item kitchendto.ShopItemOutput
}

func (i upgradeItem) Title() string {
	switch {
	case i.item.Owned:
		return "★ " + i.item.Name
	case i.item.Affordable:
		return "· " + i.item.Name
	default:
		return "  " + i.item.Name
	}
}

func (i upgradeItem) Description() string {
	state := fmt.Sprintf("%d coins", i.item.Cost)
	if i.item.Owned {
		state = "owned"
	}
	return fmt.Sprintf("%s · %s · %s", state, i.item.Effect, i.item.Description)
}

func (i upgradeItem) FilterValue() string { return i.item.Name }

type Model struct {
	list   list.Model
	coins  int
	width  int
	height int
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Yellow).BorderForeground(theme.Yellow)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Peach).BorderForeground(theme.Yellow)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Upgrade shop"
	l.Styles.Title = theme.Title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return Model{list: l}
}

func (m *Model) SetData(items []kitchendto.ShopItemOutput, coins int) tea.Cmd {
	m.coins = coins
	out := make([]list.Item, len(items))
	for i, item := range items {
		out[i] = upgradeItem{item: item}
	}
	return m.list.SetItems(out)
}

func (m Model) Selected() (string, bool) {
	if item, ok := m.list.SelectedItem().(upgradeItem); ok {
		return item.item.ID, true
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
	wallet := theme.Coins.Render(fmt.Sprintf("wallet: %d coins", m.coins)) + "  " + theme.Muted.Render("u: buy selected")
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), wallet)
}
