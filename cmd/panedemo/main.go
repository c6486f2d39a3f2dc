// Command panedemo shows a sign-up page through one of three front ends:
// the bubbletea toolkit (default), a tcell screen, or plain ANSI output.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/kungfusheep/pane"
	"github.com/kungfusheep/pane/tcellscreen"
	"github.com/kungfusheep/pane/teakit"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	mode := flag.String("mode", "tea", "front end: tea, tcell or ansi")
	flag.Parse()

	if err := run(*configPath, *mode); err != nil {
		fmt.Fprintln(os.Stderr, "panedemo:", err)
		os.Exit(1)
	}
}

func run(configPath, mode string) error {
	cfg := pane.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = pane.LoadConfig(configPath); err != nil {
			return err
		}
	}

	logger := pane.LoggerFromEnv()
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = pane.NewLogger(f, pane.ParseLevel(cfg.LogLevel))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch mode {
	case "tea":
		return runTea(ctx, cfg, logger)
	case "tcell":
		return runTcell(cfg, logger)
	case "ansi":
		return runANSI(cfg, logger)
	}
	return fmt.Errorf("unknown mode %q", mode)
}

func buildPage(height int, logger *slog.Logger) (*pane.Page, *pane.Assembly) {
	p := pane.NewPage(height, pane.WithTitle("Create account"), pane.WithLogger(logger))

	status := pane.NamedText("status", "")
	signup := pane.NewAssembly("signup",
		pane.Input("email", "Email").Placeholder("you@example.com"),
		pane.Input("password", "Password").Config("mask", true),
		pane.Select("plan", "Plan", "Free", "Pro", "Enterprise"),
		pane.Input("seats", "Seats").Placeholder("1"),
		pane.CheckboxList("topics", "Newsletters", "Releases", "Security", "Events"),
		pane.Button("submit", "Sign up"),
	).
		RequireField("email", pane.VRequired, pane.VEmail).
		RequireField("password", pane.VRequired, pane.VMinLen(8)).
		RequireField("seats", pane.VMatch(`^[0-9]+$`))

	_ = signup.HideField("seats")
	signup.
		OnFieldChange("plan", func(a *pane.Assembly, v pane.Value) {
			if v.String() == "Free" {
				_ = a.HideField("seats")
			} else {
				_ = a.ShowField("seats")
			}
		}).
		OnFieldChange("submit", func(a *pane.Assembly, _ pane.Value) {
			if err := a.Validate(); err != nil {
				_ = status.SetText(err.Error())
				return
			}
			a.Complete("submit")
		}).
		OnComplete("submit", func(a *pane.Assembly) {
			email, _ := a.FieldValue("email")
			_ = status.SetText("Welcome, " + email.String())
		})

	card := pane.NewCard("account", "Account", signup).Border(pane.BorderRounded).Class("accent")
	_ = p.Add(card)
	_ = p.Footer().Add(status, pane.Text("tab/shift+tab to move, esc to quit"))
	return p, signup
}

func runTea(ctx context.Context, cfg pane.Config, logger *slog.Logger) error {
	height := cfg.Height(40)
	p, _ := buildPage(height, logger)
	tk := teakit.New(cfg.Theme(), teakit.WithKeys(teakit.KeyMapFromConfig(cfg.Keys)))
	app, _ := teakit.Attach(p, tk, pane.WithTheme(cfg.Theme()))
	return app.Run(ctx)
}

func runANSI(cfg pane.Config, logger *slog.Logger) error {
	screen := pane.NewScreen(os.Stdout)
	p, _ := buildPage(cfg.Height(screen.Size().Height), logger)
	if err := p.Render(screen); err != nil {
		return err
	}
	fmt.Println()
	return nil
}

func runTcell(cfg pane.Config, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	_, h := screen.Size()
	p, _ := buildPage(cfg.Height(h), logger)
	w := tcellscreen.New(screen)

	render := func() error {
		err := p.Render(w)
		var oos *pane.OutOfSpaceError
		if errors.As(err, &oos) {
			logger.Warn("page does not fit", "element", oos.Element, "requested", oos.Requested)
			return nil
		}
		return err
	}
	if err := render(); err != nil {
		return err
	}

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			_, h := ev.Size()
			if err := p.Resize(h); err != nil {
				logger.Warn("resize", "err", err)
			}
			screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return nil
			case tcell.KeyTab:
				p.Focus().FocusNext()
			case tcell.KeyBacktab:
				p.Focus().FocusPrev()
			}
		case nil:
			return nil
		}
		if err := render(); err != nil {
			return err
		}
	}
}
