package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"studychef/internal/bootstrap"
	kitchendto "studychef/internal/modules/kitchen/dto"
	"studychef/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var printer = message.NewPrinter(language.English)

func newRootCmd() *cobra.Command {
	var homePath string

	root := &cobra.Command{
		Use:           "studychef",
		Short:         "Pomodoro kitchen: focus, collect ingredients, cook",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&homePath, "home", "", "data directory (defaults to $STUDYCHEF_HOME or ~/.studychef)")

	root.AddCommand(newTUICmd(&homePath))
	root.AddCommand(newStatusCmd(&homePath))
	root.AddCommand(newStartCmd(&homePath))
	root.AddCommand(newPauseCmd(&homePath))
	root.AddCommand(newTickCmd(&homePath))
	root.AddCommand(newConfigCmd(&homePath))
	root.AddCommand(newRecipesCmd(&homePath))
	root.AddCommand(newCookCmd(&homePath))
	root.AddCommand(newShopCmd(&homePath))
	root.AddCommand(newBuyCmd(&homePath))
	root.AddCommand(newTasksCmd(&homePath))
	root.AddCommand(newAchievementsCmd(&homePath))
	root.AddCommand(newHistoryCmd(&homePath))
	root.AddCommand(newExportCmd(&homePath))
	root.AddCommand(newImportCmd(&homePath))
	root.AddCommand(newResetCmd(&homePath))
	root.AddCommand(newHooksCmd(&homePath))
	return root
}

// withApp loads the app, runs fn and releases it.
func withApp(homePath string, fn func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := config.Load(homePath)
	if err != nil {
		return err
	}
	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	if app.Opened.Recovered {
		_, _ = fmt.Fprintln(os.Stderr, "warning: saved progress was unreadable, started from defaults")
	}
	return fn(ctx, app)
}

func newTUICmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive kitchen",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(ctx, app)
			})
		},
	}
}

func newStatusCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show progression and timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				status, err := app.KitchenCLI.Status(ctx)
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), status)
				return nil
			})
		},
	}
}

func newStartCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "start [focus|break]",
		Short:     "Start a focus or break segment",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"focus", "break"},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := "focus"
			if len(args) == 1 {
				mode = args[0]
			}
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.KitchenCLI.Start(ctx, mode)
				if err != nil {
					return err
				}
				printTimer(cmd.OutOrStdout(), out.Timer)
				printEvents(cmd.OutOrStdout(), out.Events)
				return nil
			})
		},
	}
}

func newPauseCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause or resume the running segment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				timer, err := app.KitchenCLI.TogglePause(ctx)
				if err != nil {
					return err
				}
				printTimer(cmd.OutOrStdout(), timer)
				return nil
			})
		},
	}
}

func newTickCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tick",
		Short: "Advance the timer to now and settle finished segments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.KitchenCLI.Tick(ctx)
				if err != nil {
					return err
				}
				printTimer(cmd.OutOrStdout(), out.Timer)
				printEvents(cmd.OutOrStdout(), out.Events)
				return nil
			})
		},
	}
}

func newConfigCmd(homePath *string) *cobra.Command {
	var focus, brk int
	var scheme string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Change segment lengths or the timer scheme",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := kitchendto.ConfigureInput{}
			if cmd.Flags().Changed("focus") {
				input.FocusMinutes = &focus
			}
			if cmd.Flags().Changed("break") {
				input.BreakMinutes = &brk
			}
			if cmd.Flags().Changed("scheme") {
				input.Scheme = &scheme
			}
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				timer, err := app.KitchenCLI.Configure(ctx, input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "focus=%dm break=%dm scheme=%s\n", timer.FocusMinutes, timer.BreakMinutes, timer.ConfiguredScheme)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&focus, "focus", 25, "focus minutes (1..180)")
	cmd.Flags().IntVar(&brk, "break", 5, "break minutes (1..60)")
	cmd.Flags().StringVar(&scheme, "scheme", "chained", "timer scheme: chained|freeform")
	return cmd
}

func newRecipesCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "recipes",
		Short: "List recipes and what is missing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				recipes, err := app.KitchenCLI.Recipes(ctx)
				if err != nil {
					return err
				}
				for _, r := range recipes {
					mark := " "
					if r.CanCook {
						mark = "*"
					}
					needs := make([]string, 0, len(r.Needs))
					for _, n := range r.Needs {
						needs = append(needs, fmt.Sprintf("%s %d/%d", n.Ingredient, n.Have, n.Need))
					}
					_, _ = printer.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t+%d xp +%d coins\t%s\n", mark, r.ID, r.Name, r.XP, r.Coins, strings.Join(needs, ", "))
				}
				return nil
			})
		},
	}
}

func newCookCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "cook <recipe-id>",
		Short: "Cook a recipe from the pantry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.KitchenCLI.Cook(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = printer.Fprintf(cmd.OutOrStdout(), "cooked %s: +%d xp +%d coins\n", out.RecipeID, out.XP, out.Coins)
				printEvents(cmd.OutOrStdout(), out.Events)
				return nil
			})
		},
	}
}

func newShopCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "List upgrades",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.KitchenCLI.Shop(ctx)
				if err != nil {
					return err
				}
				for _, item := range items {
					state := "buy"
					switch {
					case item.Owned:
						state = "owned"
					case !item.Affordable:
						state = "locked"
					}
					_, _ = printer.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d coins\t%s\t%s\n", item.ID, item.Name, item.Category, item.Cost, state, item.Effect)
				}
				return nil
			})
		},
	}
}

func newBuyCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <item-id>",
		Short: "Purchase an upgrade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.KitchenCLI.Buy(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = printer.Fprintf(cmd.OutOrStdout(), "bought %s for %d coins, %d left\n", out.ItemID, out.Cost, out.CoinsLeft)
				printEvents(cmd.OutOrStdout(), out.Events)
				return nil
			})
		},
	}
}

func newTasksCmd(homePath *string) *cobra.Command {
	tasks := &cobra.Command{Use: "tasks", Short: "Study checklist"}

	tasks.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List checklist items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.KitchenCLI.Tasks(ctx)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
					return nil
				}
				for _, t := range items {
					mark := "[ ]"
					if t.Done {
						mark = "[x]"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%s\n", mark, t.ID, t.Title, t.Tag)
				}
				return nil
			})
		},
	})

	var tag string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a checklist item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				task, err := app.KitchenCLI.AddTask(ctx, strings.Join(args, " "), tag)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", task.Title, task.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&tag, "tag", "", "optional tag")

	done := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Toggle a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.KitchenCLI.ToggleTask(ctx, args[0])
				if err != nil {
					return err
				}
				state := "reopened"
				if out.Task.Done {
					state = "done"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, out.Task.Title)
				printEvents(cmd.OutOrStdout(), out.Events)
				return nil
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Remove a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.KitchenCLI.RemoveTask(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			})
		},
	}

	tasks.AddCommand(add, done, rm)
	return tasks
}

func newAchievementsCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List achievements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				list, err := app.KitchenCLI.Achievements(ctx)
				if err != nil {
					return err
				}
				for _, a := range list {
					mark := " "
					if a.Earned {
						mark = "*"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\n", mark, a.Name, a.Description)
				}
				return nil
			})
		},
	}
}

func newHistoryCmd(homePath *string) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Focus minutes per day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				stats, err := app.KitchenCLI.History(ctx, days)
				if err != nil {
					return err
				}
				for _, s := range stats {
					_, _ = printer.Fprintf(cmd.OutOrStdout(), "%s\t%dm\t%d sessions\n", s.Date, s.FocusMinutes, s.Sessions)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "number of days ending today")
	return cmd
}

func newExportCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the progression snapshot to file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				raw, err := app.KitchenCLI.Export(ctx)
				if err != nil {
					return err
				}
				if len(args) == 0 {
					_, err = cmd.OutOrStdout().Write(append(raw, '\n'))
					return err
				}
				if err := os.WriteFile(args[0], raw, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", args[0])
				return nil
			})
		},
	}
}

func newImportCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace progression with a previously exported snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				status, err := app.KitchenCLI.Import(ctx, raw)
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), status)
				return nil
			})
		},
	}
}

func newResetCmd(homePath *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard all progression",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("reset discards all progress; rerun with --yes")
			}
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				status, err := app.KitchenCLI.Reset(ctx)
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), status)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm reset")
	return cmd
}

func newHooksCmd(homePath *string) *cobra.Command {
	hooks := &cobra.Command{Use: "hooks", Short: "Event hook plugins"}

	hooks.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List installed hooks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.HooksCLI.List(ctx)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no hooks")
					return nil
				}
				for _, h := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tenabled=%t\t%s\n", h.Name, h.Version, h.Enabled, strings.Join(h.Events, ","))
				}
				return nil
			})
		},
	})

	hooks.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check hook binaries, checksums and handshakes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				results, err := app.HooksCLI.Doctor(ctx)
				if err != nil {
					return err
				}
				for _, r := range results {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tchecksum=%t\tbinary=%t\tlifecycle=%t\t%s\n", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK, r.Error)
				}
				return nil
			})
		},
	})

	hooks.AddCommand(&cobra.Command{
		Use:   "test <hook>",
		Short: "Send a test event to one hook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*homePath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.HooksCLI.Test(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s accepted=%t %s\n", out.Hook, out.Accepted, out.Message)
				return nil
			})
		},
	})
	return hooks
}

func printTimer(w io.Writer, t kitchendto.TimerOutput) {
	state := ""
	if t.Paused {
		state = " (paused)"
	}
	_, _ = fmt.Fprintf(w, "%s %02d:%02d%s scheme=%s\n", t.Mode, t.RemainingSeconds/60, t.RemainingSeconds%60, state, t.Scheme)
}

func printStatus(w io.Writer, s kitchendto.StatusOutput) {
	_, _ = printer.Fprintf(w, "xp %d  coins %d  streak %d (best %d)\n", s.XP, s.Coins, s.Streak, s.BestStreak)
	_, _ = printer.Fprintf(w, "sessions %d  recipes %d  focus %.0f min\n", s.SessionsDone, s.RecipesCooked, s.TotalMinutes)
	if len(s.Inventory) > 0 {
		parts := make([]string, 0, len(s.Inventory))
		for _, line := range s.Inventory {
			parts = append(parts, fmt.Sprintf("%s x%d", line.Ingredient, line.Quantity))
		}
		_, _ = fmt.Fprintf(w, "pantry: %s\n", strings.Join(parts, ", "))
	}
	if len(s.OwnedUpgrades) > 0 {
		_, _ = fmt.Fprintf(w, "upgrades: %s\n", strings.Join(s.OwnedUpgrades, ", "))
	}
	printTimer(w, s.Timer)
}

func printEvents(w io.Writer, events []kitchendto.EventOutput) {
	for _, e := range events {
		_, _ = fmt.Fprintf(w, "  %s\n", e.Message)
	}
}
