package di

import (
	"context"
	"errors"
	"fmt"

	"browser-pom/internal/application/interaction"
	"browser-pom/internal/application/port/output"
	"browser-pom/internal/application/service"
	"browser-pom/internal/application/wait"
	"browser-pom/internal/domain/locator"
	"browser-pom/internal/infrastructure/browser/playwright"
	"browser-pom/internal/infrastructure/browser/rod"
	"browser-pom/internal/infrastructure/diagnostics"
	"browser-pom/internal/infrastructure/env"
	"browser-pom/internal/infrastructure/locators"
	"browser-pom/internal/infrastructure/logger"
)

type Container struct {
	Settings   env.Settings
	Driver     output.DriverPort
	Logger     output.LoggerPort
	Catalog    locator.Catalog
	Waiter     *wait.Waiter
	Interactor *interaction.Interactor
	Pages      *service.PageFactory
	Recorder   *diagnostics.Recorder
}

type Config struct {
	Settings env.Settings
	// Name labels the log file, usually the test or scenario name.
	Name string
	// Driver replaces the browser the settings would launch. The container still
	// closes it.
	Driver output.DriverPort
	// Logger replaces the zap file/console logger.
	Logger output.LoggerPort
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	s := cfg.Settings

	log := cfg.Logger
	if log == nil {
		logCfg := logger.DefaultConfig(cfg.Name)
		logCfg.Dir = s.LogDir
		logCfg.Level = s.LogLevel
		l, err := logger.NewLoggerAdapter(logCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		log = l
	}

	catalog, err := locators.Load(s.LocatorsFile)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to load locators: %w", err)
	}

	driver := cfg.Driver
	if driver == nil {
		driver, err = newDriver(ctx, s)
		if err != nil {
			log.Close()
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		log.Info("browser started", "driver", s.Driver, "browser", s.Browser, "headless", s.Headless)
	}

	waiter := wait.NewWaiter(driver, wait.NewPoller(s.PollInterval, s.WaitTimeout), log)

	inCfg := interaction.DefaultConfig()
	inCfg.ActionTimeout = s.ActionTimeout
	inCfg.OptionTemplate = catalog.Common.OptionByText
	in := interaction.NewInteractor(driver, waiter, log, inCfg)

	return &Container{
		Settings:   s,
		Driver:     driver,
		Logger:     log,
		Catalog:    catalog,
		Waiter:     waiter,
		Interactor: in,
		Pages:      service.NewPageFactory(in, catalog, service.WithMaxPages(s.MaxPages)),
		Recorder:   diagnostics.NewRecorder(driver, log, diagnostics.Config{Dir: s.ScreenshotDir, FullPage: true}),
	}, nil
}

func newDriver(ctx context.Context, s env.Settings) (output.DriverPort, error) {
	switch s.Driver {
	case env.DriverPlaywright:
		cfg := playwright.DefaultConfig()
		cfg.Browser = s.Browser
		cfg.Headless = s.Headless
		cfg.SlowMotion = s.SlowMotion
		cfg.ActionTimeout = s.ActionTimeout
		return playwright.NewDriver(ctx, cfg)
	case env.DriverRod, "":
		cfg := rod.DefaultConfig()
		cfg.Headless = s.Headless
		cfg.SlowMotion = s.SlowMotion
		return rod.NewDriver(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported driver %q", s.Driver)
	}
}

// Close shuts the browser down, then flushes the logger.
func (c *Container) Close() error {
	var errs []error
	if c.Driver != nil {
		if err := c.Driver.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close driver: %w", err))
		}
	}
	if c.Logger != nil {
		if err := c.Logger.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close logger: %w", err))
		}
	}
	return errors.Join(errs...)
}
