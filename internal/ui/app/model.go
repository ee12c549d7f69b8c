package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	kitchendto "studychef/internal/modules/kitchen/dto"
	"studychef/internal/ui/components"
	"studychef/internal/ui/theme"
	pantryview "studychef/internal/ui/views/pantry"
	shopview "studychef/internal/ui/views/shop"
	tasksview "studychef/internal/ui/views/tasks"
	timerview "studychef/internal/ui/views/timer"
	trophiesview "studychef/internal/ui/views/trophies"
)

const (
	historyDays = 7
	toastTTL    = 4 * time.Second
)

// ─── port ────────────────────────────────────────────────────────────────────

// KitchenPort is everything the interactive kitchen calls.
type KitchenPort interface {
	Status(ctx context.Context) (kitchendto.StatusOutput, error)
	Start(ctx context.Context, mode string) (kitchendto.StartOutput, error)
	TogglePause(ctx context.Context) (kitchendto.TimerOutput, error)
	Tick(ctx context.Context) (kitchendto.TickOutput, error)
	Configure(ctx context.Context, input kitchendto.ConfigureInput) (kitchendto.TimerOutput, error)
	Recipes(ctx context.Context) ([]kitchendto.RecipeOutput, error)
	Cook(ctx context.Context, recipeID string) (kitchendto.CookOutput, error)
	Shop(ctx context.Context) ([]kitchendto.ShopItemOutput, error)
	Buy(ctx context.Context, itemID string) (kitchendto.BuyOutput, error)
	Tasks(ctx context.Context) ([]kitchendto.TaskOutput, error)
	AddTask(ctx context.Context, title string) (kitchendto.TaskOutput, error)
	ToggleTask(ctx context.Context, taskID string) (kitchendto.ToggleTaskOutput, error)
	RemoveTask(ctx context.Context, taskID string) error
	Achievements(ctx context.Context) ([]kitchendto.AchievementOutput, error)
	History(ctx context.Context, days int) ([]kitchendto.DayStatOutput, error)
	Save(ctx context.Context) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimer tabID = iota
	tabPantry
	tabShop
	tabTasks
	tabTrophies
	tabCount
)

var tabLabels = [tabCount]string{
	"Timer", "Pantry", "Shop", "Tasks", "Trophies",
}

// ─── async messages ───────────────────────────────────────────────────────────

type tickMsg time.Time

type tickedMsg struct {
	out kitchendto.TickOutput
	err error
}

type kitchenData struct {
	status       kitchendto.StatusOutput
	recipes      []kitchendto.RecipeOutput
	shop         []kitchendto.ShopItemOutput
	tasks        []kitchendto.TaskOutput
	achievements []kitchendto.AchievementOutput
	history      []kitchendto.DayStatOutput
}

type kitchenLoadedMsg struct {
	data kitchenData
	err  error
}

type actionDoneMsg struct {
	notice string
	events []kitchendto.EventOutput
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	BackTab key.Binding
	Focus   key.Binding
	Break   key.Binding
	Pause   key.Binding
	Cook    key.Binding
	Buy     key.Binding
	Toggle  key.Binding
	Remove  key.Binding
	AddTask key.Binding
	Palette key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		BackTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous tab")),
		Focus:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start focus")),
		Break:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "start break")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause/resume")),
		Cook:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cook recipe")),
		Buy:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "buy upgrade")),
		Toggle:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle task")),
		Remove:  key.NewBinding(key.WithKeys("delete", "backspace"), key.WithHelp("del", "remove task")),
		AddTask: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Break, k.Pause, k.Tab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Break, k.Pause},
		{k.Cook, k.Buy, k.Toggle, k.Remove, k.AddTask},
		{k.Tab, k.BackTab, k.Palette, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns the tick loop, tab routing,
// toasts, the help overlay and the command palette. Sub-views only render
// what the model hands them.
type Model struct {
	port KitchenPort
	tick time.Duration

	timerView    timerview.Model
	pantryView   pantryview.Model
	shopView     shopview.Model
	tasksView    tasksview.Model
	trophiesView trophiesview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	toasts    components.Toasts
	status    string
	width     int
	height    int
}

// NewModel builds the UI around port, ticking every tick.
func NewModel(port KitchenPort, tick time.Duration) Model {
	if tick <= 0 {
		tick = 250 * time.Millisecond
	}
	return Model{
		port:         port,
		tick:         tick,
		timerView:    timerview.New(),
		pantryView:   pantryview.New(),
		shopView:     shopview.New(),
		tasksView:    tasksview.New(),
		trophiesView: trophiesview.New(),
		activeTab:    tabTimer,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		toasts:       components.NewToasts(toastTTL),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.scheduleTick())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette takes every key while open; the tick loop keeps running.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, cmd
		}
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 72))
		m.help.Width = m.width
		m.propagateSize()
		return m, tea.Batch(cmds...)

	case tickMsg:
		m.toasts.Expire(time.Time(msg))
		return m, tea.Batch(append(cmds, m.tickCmd())...)

	case tickedMsg:
		cmds = append(cmds, m.scheduleTick())
		if msg.err != nil {
			m.status = "tick failed: " + msg.err.Error()
			return m, tea.Batch(cmds...)
		}
		m.timerView.SetTimer(msg.out.Timer)
		if len(msg.out.Events) > 0 {
			m.pushEvents(msg.out.Events)
			cmds = append(cmds, m.loadCmd())
		}
		return m, tea.Batch(cmds...)

	case kitchenLoadedMsg:
		if msg.err != nil {
			m.status = "load failed: " + msg.err.Error()
			return m, tea.Batch(cmds...)
		}
		cmds = append(cmds, m.apply(msg.data))
		return m, tea.Batch(cmds...)

	case actionDoneMsg:
		if msg.err != nil {
			m.status = "✗ " + msg.err.Error()
			return m, tea.Batch(cmds...)
		}
		if msg.notice != "" {
			m.status = msg.notice
		}
		m.pushEvents(msg.events)
		return m, tea.Batch(append(cmds, m.loadCmd())...)

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
		if msg.String() == "esc" {
			return m, nil
		}
	}

	// Everything else (list navigation) goes to the active tab.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabPantry:
		m.pantryView, tabCmd = m.pantryView.Update(msg)
	case tabShop:
		m.shopView, tabCmd = m.shopView.Update(msg)
	case tabTasks:
		m.tasksView, tabCmd = m.tasksView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// handleKey runs the global shortcuts. The bool reports whether msg was one.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Tab):
		m.activeTab = (m.activeTab + 1) % tabCount
	case key.Matches(msg, m.keys.BackTab):
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Palette):
		return m.palette.Open(""), true
	case key.Matches(msg, m.keys.AddTask):
		return m.palette.Open("task "), true
	case key.Matches(msg, m.keys.Focus):
		return m.startCmd("focus"), true
	case key.Matches(msg, m.keys.Break):
		return m.startCmd("break"), true
	case key.Matches(msg, m.keys.Pause):
		return m.pauseCmd(), true
	case key.Matches(msg, m.keys.Cook):
		id, ok := m.pantryView.Selected()
		if m.activeTab != tabPantry || !ok {
			return nil, true
		}
		return m.cookCmd(id), true
	case key.Matches(msg, m.keys.Buy):
		id, ok := m.shopView.Selected()
		if m.activeTab != tabShop || !ok {
			return nil, true
		}
		return m.buyCmd(id), true
	case key.Matches(msg, m.keys.Toggle):
		id, ok := m.tasksView.Selected()
		if m.activeTab != tabTasks || !ok {
			return nil, true
		}
		return m.toggleTaskCmd(id), true
	case key.Matches(msg, m.keys.Remove):
		id, ok := m.tasksView.Selected()
		if m.activeTab != tabTasks || !ok {
			return nil, true
		}
		return m.removeTaskCmd(id), true
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) apply(data kitchenData) tea.Cmd {
	m.timerView.SetStatus(data.status)
	m.trophiesView.SetData(data.achievements, data.history)
	return tea.Batch(
		m.pantryView.SetData(data.recipes, data.status.Inventory),
		m.shopView.SetData(data.shop, data.status.Coins),
		m.tasksView.SetData(data.tasks),
	)
}

func (m *Model) pushEvents(events []kitchendto.EventOutput) {
	now := time.Now()
	for _, e := range events {
		m.toasts.Push(e.Message, now)
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.FullHelpView(m.keys.FullHelp()))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
		if m.toasts.Len() > 0 {
			content = lipgloss.JoinVertical(lipgloss.Right, m.toasts.View(), content)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTimer:
		return m.timerView.View()
	case tabPantry:
		return m.pantryView.View()
	case tabShop:
		return m.shopView.View()
	case tabTasks:
		return m.tasksView.View()
	case tabTrophies:
		return m.trophiesView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "🍳 studychef  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :: command  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	verb, rest, _ := strings.Cut(strings.TrimSpace(input), " ")
	rest = strings.TrimSpace(rest)
	switch strings.ToLower(verb) {
	case "":
		return m, nil
	case "task":
		if rest == "" {
			m.status = "usage: task <title>"
			return m, nil
		}
		return m, m.addTaskCmd(rest)
	case "cook":
		return m, m.cookCmd(rest)
	case "buy":
		return m, m.buyCmd(rest)
	case "focus", "break":
		minutes, err := strconv.Atoi(rest)
		if err != nil {
			m.status = fmt.Sprintf("usage: %s <minutes>", verb)
			return m, nil
		}
		input := kitchendto.ConfigureInput{FocusMinutes: &minutes}
		if strings.EqualFold(verb, "break") {
			input = kitchendto.ConfigureInput{BreakMinutes: &minutes}
		}
		return m, m.configureCmd(input)
	case "scheme":
		return m, m.configureCmd(kitchendto.ConfigureInput{Scheme: &rest})
	case "save":
		return m, m.act(func(ctx context.Context) (string, []kitchendto.EventOutput, error) {
			return "saved", nil, m.port.Save(ctx)
		})
	default:
		m.status = "unknown command: " + verb
		return m, nil
	}
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: max(m.height-4, 1)}
	m.timerView, _ = m.timerView.Update(sz)
	m.pantryView, _ = m.pantryView.Update(sz)
	m.shopView, _ = m.shopView.Update(sz)
	m.tasksView, _ = m.tasksView.Update(sz)
	m.trophiesView, _ = m.trophiesView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) tickCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Tick(context.Background())
		return tickedMsg{out: out, err: err}
	}
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var data kitchenData
		var err error
		if data.status, err = m.port.Status(ctx); err != nil {
			return kitchenLoadedMsg{err: err}
		}
		if data.recipes, err = m.port.Recipes(ctx); err != nil {
			return kitchenLoadedMsg{err: err}
		}
		if data.shop, err = m.port.Shop(ctx); err != nil {
			return kitchenLoadedMsg{err: err}
		}
		if data.tasks, err = m.port.Tasks(ctx); err != nil {
			return kitchenLoadedMsg{err: err}
		}
		if data.achievements, err = m.port.Achievements(ctx); err != nil {
			return kitchenLoadedMsg{err: err}
		}
		if data.history, err = m.port.History(ctx, historyDays); err != nil {
			return kitchenLoadedMsg{err: err}
		}
		return kitchenLoadedMsg{data: data}
	}
}

func (m Model) act(fn func(ctx context.Context) (string, []kitchendto.EventOutput, error)) tea.Cmd {
	return func() tea.Msg {
		notice, events, err := fn(context.Background())
		return actionDoneMsg{notice: notice, events: events, err: err}
	}
}

func (m Model) startCmd(mode string) tea.Cmd {
	return m.act(func(ctx context.Context) (string, []kitchendto.EventOutput, error) {
		out, err := m.port.Start(ctx, mode)
		return mode + " started", out.Events, err
	})
}

func (m Model) pauseCmd() tea.Cmd {
	return m.act(func(ctx context.Context) (string, []kitchendto.EventOutput, error) {
		timer, err := m.port.TogglePause(ctx)
		switch {
		case err != nil:
			return "", nil, err
		case timer.Mode == "idle":
			return "nothing to pause", nil, nil
		case timer.Paused:
			return "paused", nil, nil
		default:
			return "resumed", nil, nil
		}
	})
}

func (m Model) configureCmd(input kitchendto.ConfigureInput) tea.Cmd {
	return m.act(func(ctx context.Context) (string, []kitchendto.EventOutput, error) {
		timer, err := m.port.Configure(ctx, input)
		return fmt.Sprintf("next segments: %d/%d min, %s", timer.FocusMinutes, timer.BreakMinutes, timer.ConfiguredScheme), nil, err
	})
}

func (m Model) cookCmd(recipeID string) tea.Cmd {
	return m.act(func(ctx context.Context) (string, []kitchendto.EventOutput, error) {
		out, err := m.port.Cook(ctx, recipeID)
		return "", out.Events, err
	})
}

func (m Model) buyCmd(itemID string) tea.Cmd {
	return m.act(func(ctx context.Context) (string, []kitchendto.EventOutput, error) {
		out, err := m.port.Buy(ctx, itemID)
		return fmt.Sprintf("%d coins left", out.CoinsLeft), out.Events, err
	})
}

func (m Model) addTaskCmd(title string) tea.Cmd {
	return m.act(func(ctx context.Context) (string, []kitchendto.EventOutput, error) {
		task, err := m.port.AddTask(ctx, title)
		return "added " + task.Title, nil, err
	})
}

func (m Model) toggleTaskCmd(taskID string) tea.Cmd {
	return m.act(func(ctx context.Context) (string, []kitchendto.EventOutput, error) {
		out, err := m.port.ToggleTask(ctx, taskID)
		return "", out.Events, err
	})
}

func (m Model) removeTaskCmd(taskID string) tea.Cmd {
	return m.act(func(ctx context.Context) (string, []kitchendto.EventOutput, error) {
		return "task removed", nil, m.port.RemoveTask(ctx, taskID)
	})
}
