// Command pomrun drives the smoke scenario against a running application and reports
// each step on the console.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"

	"browser-pom/internal/application/usecase"
	"browser-pom/internal/di"
	"browser-pom/internal/infrastructure/console"
	"browser-pom/internal/infrastructure/env"
)

type opts struct {
	EnvDir   string        `long:"env-dir" default:"." description:"directory holding .env files"`
	BaseURL  string        `short:"u" long:"base-url" description:"application URL, overrides POM_BASE_URL"`
	Driver   string        `short:"d" long:"driver" choice:"rod" choice:"playwright" description:"browser driver, overrides POM_DRIVER"`
	Browser  string        `short:"b" long:"browser" choice:"chromium" choice:"firefox" choice:"edge" description:"browser, overrides POM_BROWSER"`
	Headed   bool          `long:"headed" description:"show the browser window"`
	Name     string        `short:"n" long:"name" default:"smoke" description:"scenario name used for logs and screenshots"`
	Code     string        `long:"code" env:"POM_LOGIN_CODE" description:"verification code entered when the login asks for one"`
	Menu     string        `short:"m" long:"menu" description:"sidebar entry to open after login"`
	Tab      string        `short:"t" long:"tab" description:"tab that must become active"`
	NoUsers  bool          `long:"no-users" description:"skip the users count step"`
	Timeout  time.Duration `long:"timeout" default:"5m" description:"overall run timeout"`
	Cleanup  time.Duration `long:"cleanup" description:"remove screenshots older than this before the run"`
	NoColor  bool          `long:"no-color" description:"disable color output"`
	LogLevel string        `short:"l" long:"log-level" description:"log level, overrides POM_LOG_LEVEL"`
}

func main() {
	var o opts
	parser := flags.NewParser(&o, flags.Default)

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if o.NoColor {
		color.NoColor = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, o); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o opts) error {
	settings, err := env.LoadSettings(env.NewEnvService(o.EnvDir))
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	settings = applyFlags(settings, o)
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	container, err := di.NewContainer(ctx, di.Config{Settings: settings, Name: o.Name})
	if err != nil {
		return err
	}
	defer container.Close()

	if o.Cleanup > 0 {
		removed, err := container.Recorder.Cleanup(o.Cleanup)
		if err != nil {
			container.Logger.Warn("screenshot cleanup failed", "error", err)
		} else {
			container.Logger.Info("old screenshots removed", "count", removed)
		}
	}

	scenario := usecase.NewSmokeScenario(container.Pages, container.Recorder, console.NewReporter(nil), container.Logger)
	_, err = scenario.Run(ctx, usecase.SmokeConfig{
		Name:      o.Name,
		BaseURL:   settings.BaseURL,
		Username:  settings.Username,
		Password:  settings.Password,
		Code:      o.Code,
		MenuItem:  o.Menu,
		Tab:       o.Tab,
		SkipUsers: o.NoUsers,
	})
	return err
}

func applyFlags(s env.Settings, o opts) env.Settings {
	if o.BaseURL != "" {
		s.BaseURL = o.BaseURL
	}
	if o.Driver != "" {
		s.Driver = o.Driver
	}
	if o.Browser != "" {
		s.Browser = o.Browser
	}
	if o.Headed {
		s.Headless = false
	}
	if o.LogLevel != "" {
		s.LogLevel = o.LogLevel
	}
	return s
}
