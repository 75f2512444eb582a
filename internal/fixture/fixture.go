// Package fixture gives each test its own browser, page factory and diagnostics, and
// tears them down when the test ends.
package fixture

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"browser-pom/internal/application/port/output"
	"browser-pom/internal/di"
	"browser-pom/internal/infrastructure/env"
)

const teardownTimeout = 30 * time.Second

type Fixture struct {
	*di.Container

	RunID string
	Log   output.LoggerPort
	ctx   context.Context
}

type options struct {
	envDir     string
	settings   *env.Settings
	driver     output.DriverPort
	logger     output.LoggerPort
	noNavigate bool
}

type Option func(*options)

// WithDriver runs the test against d instead of launching a browser.
func WithDriver(d output.DriverPort) Option {
	return func(o *options) { o.driver = d }
}

func WithLogger(l output.LoggerPort) Option {
	return func(o *options) { o.logger = l }
}

// WithSettings skips the .env lookup.
func WithSettings(s env.Settings) Option {
	return func(o *options) { o.settings = &s }
}

// WithEnvDir reads .env files from dir instead of the working directory.
func WithEnvDir(dir string) Option {
	return func(o *options) { o.envDir = dir }
}

// WithoutNavigation leaves the page blank even when a base URL is configured.
func WithoutNavigation() Option {
	return func(o *options) { o.noNavigate = true }
}

// New boots a container for tb. When the test fails, cleanup saves a screenshot and DOM
// snapshot under the failures directory before the browser is closed.
func New(tb testing.TB, opts ...Option) *Fixture {
	tb.Helper()

	o := options{envDir: "."}
	for _, opt := range opts {
		opt(&o)
	}

	var s env.Settings
	if o.settings != nil {
		s = *o.settings
		if err := s.Validate(); err != nil {
			tb.Fatalf("fixture: invalid settings: %v", err)
		}
	} else {
		loaded, err := env.LoadSettings(env.NewEnvService(o.envDir))
		if err != nil {
			tb.Fatalf("fixture: load settings: %v", err)
		}
		s = loaded
	}

	ctx, cancel := context.WithCancel(context.Background())
	c, err := di.NewContainer(ctx, di.Config{
		Settings: s,
		Name:     tb.Name(),
		Driver:   o.driver,
		Logger:   o.logger,
	})
	if err != nil {
		cancel()
		tb.Fatalf("fixture: %v", err)
	}

	runID := uuid.NewString()
	f := &Fixture{
		Container: c,
		RunID:     runID,
		Log:       c.Logger.WithFields(map[string]any{"run_id": runID, "test": tb.Name()}),
		ctx:       ctx,
	}
	tb.Cleanup(func() {
		f.teardown(tb)
		cancel()
	})

	f.Log.Info("fixture ready", "driver", s.Driver, "browser", s.Browser)

	if s.BaseURL != "" && !o.noNavigate {
		if err := c.Interactor.Navigate(ctx, s.BaseURL); err != nil {
			tb.Fatalf("fixture: open %s: %v", s.BaseURL, err)
		}
	}
	return f
}

// Ctx is canceled once the test's cleanup has finished.
func (f *Fixture) Ctx() context.Context {
	return f.ctx
}

func (f *Fixture) teardown(tb testing.TB) {
	if tb.Failed() {
		ctx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
		defer cancel()

		path, err := f.Recorder.CaptureFailure(ctx, tb.Name())
		if err != nil {
			tb.Logf("fixture: failure screenshot: %v", err)
		} else {
			tb.Logf("fixture: failure screenshot saved to %s", path)
		}
	}

	f.Log.Info("fixture closing", "failed", tb.Failed())
	if err := f.Close(); err != nil {
		tb.Logf("fixture: close: %v", err)
	}
}
