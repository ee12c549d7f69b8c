package pantry

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	kitchendto "studychef/internal/modules/kitchen/dto"
	"studychef/internal/ui/theme"
)

type recipeItem struct {
	recipe kitchendto.RecipeOutput
}

func (i recipeItem) Title() string {
	if i.recipe.CanCook {
		return "✓ " + i.recipe.Name
	}
	return "  " + i.recipe.Name
}

func (i recipeItem) Description() string {
	parts := make([]string, 0, len(i.recipe.Needs))
	for _, n := range i.recipe.Needs {
		parts = append(parts, fmt.Sprintf("%s %d/%d", n.Ingredient, n.Have, n.Need))
	}
	return fmt.Sprintf("%s → +%d XP +%dc", strings.Join(parts, " · "), i.recipe.XP, i.recipe.Coins)
}

func (i recipeItem) FilterValue() string { return i.recipe.Name }

// Model lists recipes on the left and the inventory on the right.
type Model struct {
	list      list.Model
	inventory []kitchendto.InventoryLine
	width     int
	height    int
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Recipes"
	l.Styles.Title = theme.Title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return Model{list: l}
}

func (m *Model) SetData(recipes []kitchendto.RecipeOutput, inventory []kitchendto.InventoryLine) tea.Cmd {
	m.inventory = inventory
	items := make([]list.Item, len(recipes))
	for i, r := range recipes {
		items[i] = recipeItem{recipe: r}
	}
	return m.list.SetItems(items)
}

// Selected returns the highlighted recipe id.
func (m Model) Selected() (string, bool) {
	if item, ok := m.list.SelectedItem().(recipeItem); ok {
		return item.recipe.ID, true
	}
	return "", false
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.list.SetSize(m.width*6/10, m.height)
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	listW := m.width * 6 / 10
	left := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Pantry") + "\n\n")
	if len(m.inventory) == 0 {
		sb.WriteString(theme.Muted.Render("empty, finish a focus session to gather ingredients"))
	}
	for _, line := range m.inventory {
		sb.WriteString(fmt.Sprintf("%-10s %s\n", line.Ingredient, theme.Coins.Render(fmt.Sprintf("x%d", line.Quantity))))
	}
	sb.WriteString("\n" + theme.Muted.Render("c: cook selected"))
	right := theme.Pane.Width(max(m.width-listW-4, 10)).Height(max(m.height-2, 1)).Render(sb.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}
