package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"browser-pom/internal/application/port/output"
	"browser-pom/internal/application/service"
	"browser-pom/internal/domain/entity"
)

const DefaultScenarioName = "smoke"

var errPreviousStepFailed = errors.New("previous step failed")

// SmokeConfig describes one pass through the application. Empty optional fields skip
// their step.
type SmokeConfig struct {
	Name     string
	BaseURL  string
	Username string
	Password string

	// Code is entered when the login asks for a verification code.
	Code string
	// MenuItem is opened from the sidebar after login.
	MenuItem string
	// Tab must become active after a click.
	Tab        string
	TabTimeout time.Duration
	// SkipUsers leaves out the users count step.
	SkipUsers bool
}

// SmokeScenario logs in, walks the sidebar and a tab, and reads the users total. Steps
// after a failure are reported as skipped.
type SmokeScenario struct {
	pages    *service.PageFactory
	shots    output.ScreenshotPort
	reporter output.ReporterPort
	logger   output.LoggerPort
}

func NewSmokeScenario(pages *service.PageFactory, shots output.ScreenshotPort, reporter output.ReporterPort, logger output.LoggerPort) *SmokeScenario {
	return &SmokeScenario{
		pages:    pages,
		shots:    shots,
		reporter: reporter,
		logger:   logger,
	}
}

type step struct {
	name string
	// skip returns a reason when the step does not apply.
	skip func(ctx context.Context) string
	run  func(ctx context.Context) (string, error)
}

// Run executes every step in order. The returned error wraps the first failure.
func (uc *SmokeScenario) Run(ctx context.Context, cfg SmokeConfig) (entity.ScenarioResult, error) {
	if cfg.Name == "" {
		cfg.Name = DefaultScenarioName
	}
	res := entity.ScenarioResult{RunID: uuid.NewString()}
	log := uc.logger.WithFields(map[string]any{"run_id": res.RunID, "scenario": cfg.Name})

	uc.reporter.ScenarioStarted(ctx, res.RunID, cfg.Name)
	log.Info("scenario started", "base_url", cfg.BaseURL)

	var firstErr error
	for _, s := range uc.steps(cfg) {
		if firstErr != nil {
			r := entity.StepResult{Name: s.name, Status: entity.StepStatusSkipped, Detail: errPreviousStepFailed.Error()}
			res.Steps = append(res.Steps, r)
			uc.reporter.StepFinished(ctx, r)
			continue
		}

		r := uc.runStep(ctx, s)
		res.Steps = append(res.Steps, r)
		if r.Status == entity.StepStatusFailed {
			firstErr = fmt.Errorf("step %q: %w", s.name, r.Err)
			log.Error("step failed", "step", s.name, "error", r.Err)
		} else {
			log.Info("step finished", "step", s.name, "status", r.Status, "duration", r.Duration)
		}
	}

	res.Screenshot = uc.screenshot(ctx, cfg.Name, firstErr != nil, log)

	uc.reporter.ScenarioFinished(ctx, res)
	log.Info("scenario finished", "passed", res.Passed())
	return res, firstErr
}

func (uc *SmokeScenario) runStep(ctx context.Context, s step) entity.StepResult {
	uc.reporter.StepStarted(ctx, s.name)
	r := entity.StepResult{Name: s.name}

	if s.skip != nil {
		if reason := s.skip(ctx); reason != "" {
			r.Status = entity.StepStatusSkipped
			r.Detail = reason
			uc.reporter.StepFinished(ctx, r)
			return r
		}
	}

	start := time.Now()
	detail, err := s.run(ctx)
	r.Duration = time.Since(start)
	r.Detail = detail
	if err != nil {
		r.Status = entity.StepStatusFailed
		r.Err = err
	} else {
		r.Status = entity.StepStatusPassed
	}
	uc.reporter.StepFinished(ctx, r)
	return r
}

func (uc *SmokeScenario) steps(cfg SmokeConfig) []step {
	login := uc.pages.Login()

	return []step{
		{
			name: "open login page",
			run: func(ctx context.Context) (string, error) {
				if cfg.BaseURL == "" {
					return "", errors.New("base URL is not set")
				}
				return cfg.BaseURL, login.Open(ctx, cfg.BaseURL)
			},
		},
		{
			name: "sign in",
			run: func(ctx context.Context) (string, error) {
				if err := login.Login(ctx, cfg.Username, cfg.Password); err != nil {
					return "", err
				}
				if login.IsErrorMessageVisible(ctx) {
					return "", fmt.Errorf("login rejected: %s", login.ErrorMessage(ctx))
				}
				return "signed in as " + cfg.Username, nil
			},
		},
		{
			name: "verification code",
			skip: func(ctx context.Context) string {
				if cfg.Code == "" {
					return "no code configured"
				}
				if !login.IsCodeRequested(ctx) {
					return "code not requested"
				}
				return ""
			},
			run: func(ctx context.Context) (string, error) {
				return "code accepted", login.EnterCode(ctx, cfg.Code)
			},
		},
		{
			name: "sidebar navigation",
			skip: func(context.Context) string {
				if cfg.MenuItem == "" {
					return "no menu item configured"
				}
				return ""
			},
			run: func(ctx context.Context) (string, error) {
				if err := uc.pages.Sidebar().NavigateTo(ctx, cfg.MenuItem); err != nil {
					return "", err
				}
				uc.pages.Feedback().Settle(ctx)
				return "opened " + cfg.MenuItem, nil
			},
		},
		{
			name: "tab check",
			skip: func(context.Context) string {
				if cfg.Tab == "" {
					return "no tab configured"
				}
				return ""
			},
			run: func(ctx context.Context) (string, error) {
				if !uc.pages.Tabs().ClickTab(ctx, cfg.Tab, cfg.TabTimeout) {
					return "", fmt.Errorf("tab %q did not become active", cfg.Tab)
				}
				return fmt.Sprintf("tab %q active", cfg.Tab), nil
			},
		},
		{
			name: "users count",
			skip: func(context.Context) string {
				if cfg.SkipUsers {
					return "disabled"
				}
				return ""
			},
			run: func(ctx context.Context) (string, error) {
				users := uc.pages.Users()
				if err := users.Open(ctx, cfg.BaseURL); err != nil {
					return "", err
				}
				total, ok := users.TotalUserCount(ctx)
				if !ok {
					return "", errors.New("pagination footer not readable")
				}
				return fmt.Sprintf("%d users", total), nil
			},
		},
	}
}

func (uc *SmokeScenario) screenshot(ctx context.Context, name string, failed bool, log output.LoggerPort) string {
	if uc.shots == nil {
		return ""
	}
	capture := uc.shots.Capture
	if failed {
		capture = uc.shots.CaptureFailure
	}
	path, err := capture(ctx, name)
	if err != nil {
		log.Warn("could not save screenshot", "error", err)
		return ""
	}
	return path
}
