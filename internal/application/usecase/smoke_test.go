package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browser-pom/internal/application/interaction"
	"browser-pom/internal/application/service"
	"browser-pom/internal/application/wait"
	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
	"browser-pom/internal/infrastructure/browser/memory"
	"browser-pom/internal/infrastructure/locators"
	"browser-pom/internal/infrastructure/logger"
)

type recordingReporter struct {
	started  []string
	finished []entity.StepResult
	result   entity.ScenarioResult
}

func (r *recordingReporter) ScenarioStarted(ctx context.Context, runID, name string) {}

func (r *recordingReporter) StepStarted(ctx context.Context, name string) {
	r.started = append(r.started, name)
}

func (r *recordingReporter) StepFinished(ctx context.Context, s entity.StepResult) {
	r.finished = append(r.finished, s)
}

func (r *recordingReporter) ScenarioFinished(ctx context.Context, res entity.ScenarioResult) {
	r.result = res
}

type fakeShots struct {
	captured []string
	failures []string
	err      error
}

func (f *fakeShots) Capture(ctx context.Context, name string) (string, error) {
	f.captured = append(f.captured, name)
	return "shots/" + name + ".png", f.err
}

func (f *fakeShots) CaptureFailure(ctx context.Context, name string) (string, error) {
	f.failures = append(f.failures, name)
	return "shots/failures/FAILED_" + name + ".png", f.err
}

type smokeKit struct {
	uc       *SmokeScenario
	d        *memory.Driver
	cat      locator.Catalog
	reporter *recordingReporter
	shots    *fakeShots
}

func newSmokeKit() smokeKit {
	d := memory.New()
	log := logger.NewNop()
	w := wait.NewWaiter(d, wait.NewPoller(5*time.Millisecond, time.Second), log)
	in := interaction.NewInteractor(d, w, log, interaction.Config{ActionTimeout: 100 * time.Millisecond})
	cat := locators.Default()
	rep := &recordingReporter{}
	shots := &fakeShots{}
	return smokeKit{
		uc:       NewSmokeScenario(service.NewPageFactory(in, cat), shots, rep, log),
		d:        d,
		cat:      cat,
		reporter: rep,
		shots:    shots,
	}
}

func (k smokeKit) loginForm() {
	k.d.Set(k.cat.Login.EmailInput, &memory.Element{Tag: "input"})
	k.d.Set(k.cat.Login.PasswordInput, &memory.Element{Tag: "input"})
	k.d.Set(k.cat.Login.LoginButton, &memory.Element{Tag: "button", Text: "Sign in"})
}

func (k smokeKit) tabs() {
	overview := &memory.Element{Tag: "button", Text: "Overview", Attributes: map[string]string{"role": "tab", "aria-selected": "true"}}
	details := &memory.Element{Tag: "button", Text: "Details", Attributes: map[string]string{"role": "tab", "aria-selected": "false"}}
	details.OnClick = func(d *memory.Driver) {
		d.Mutate(func() {
			overview.SetAttr("aria-selected", "false")
			details.SetAttr("aria-selected", "true")
		})
	}
	k.d.Set(k.cat.Tabs.ARIA, overview, details)
}

func statuses(steps []entity.StepResult) []entity.StepStatus {
	out := make([]entity.StepStatus, len(steps))
	for i, s := range steps {
		out[i] = s.Status
	}
	return out
}

func TestSmokeScenario_HappyPath(t *testing.T) {
	k := newSmokeKit()
	k.loginForm()
	k.d.Set(locator.MustBuild(k.cat.Sidebar.MenuItem, "Reports"), &memory.Element{Tag: "button", Text: "Reports"})
	k.tabs()
	k.d.Set(k.cat.Common.PaginationStatus, &memory.Element{Tag: "p", Text: "1–10 of 42"})

	res, err := k.uc.Run(context.Background(), SmokeConfig{
		BaseURL:  "https://app.test/",
		Username: "admin@example.com",
		Password: "secret",
		MenuItem: "Reports",
		Tab:      "Details",
	})
	require.NoError(t, err)

	assert.True(t, res.Passed())
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, []entity.StepStatus{
		entity.StepStatusPassed,
		entity.StepStatusPassed,
		entity.StepStatusSkipped,
		entity.StepStatusPassed,
		entity.StepStatusPassed,
		entity.StepStatusPassed,
	}, statuses(res.Steps))
	assert.Equal(t, "no code configured", res.Steps[2].Detail)
	assert.Equal(t, "42 users", res.Steps[5].Detail)

	assert.Equal(t, "shots/smoke.png", res.Screenshot)
	assert.Equal(t, []string{"smoke"}, k.shots.captured)
	assert.Empty(t, k.shots.failures)
	assert.Equal(t, "https://app.test/users", k.d.CurrentURL())
	assert.Len(t, k.reporter.started, 6)
	assert.Equal(t, res, k.reporter.result)
}

func TestSmokeScenario_EntersRequestedCode(t *testing.T) {
	k := newSmokeKit()
	k.loginForm()
	k.d.Set(k.cat.Login.CodeInput, &memory.Element{Tag: "input"})
	k.d.Set(k.cat.Login.VerifyButton, &memory.Element{Tag: "button", Text: "Verify"})

	res, err := k.uc.Run(context.Background(), SmokeConfig{
		BaseURL:   "https://app.test",
		Code:      "123456",
		SkipUsers: true,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StepStatusPassed, res.Steps[2].Status)
	fills := k.d.ActionsOf("fill")
	require.NotEmpty(t, fills)
	assert.Equal(t, "123456", fills[len(fills)-1].Value)
	assert.Equal(t, entity.StepStatusSkipped, res.Steps[5].Status)
}

func TestSmokeScenario_FailureSkipsRemainingSteps(t *testing.T) {
	k := newSmokeKit()
	k.loginForm()
	k.d.Set(k.cat.Login.ErrorMessage, &memory.Element{Tag: "div", Text: "Invalid credentials"})

	res, err := k.uc.Run(context.Background(), SmokeConfig{Name: "login", BaseURL: "https://app.test"})
	require.Error(t, err)

	assert.Contains(t, err.Error(), `step "sign in"`)
	assert.Contains(t, err.Error(), "Invalid credentials")
	assert.False(t, res.Passed())
	assert.Equal(t, entity.StepStatusFailed, res.Steps[1].Status)
	for _, s := range res.Steps[2:] {
		assert.Equal(t, entity.StepStatusSkipped, s.Status)
		assert.Equal(t, "previous step failed", s.Detail)
	}

	assert.Equal(t, []string{"login"}, k.shots.failures)
	assert.Equal(t, "shots/failures/FAILED_login.png", res.Screenshot)
	assert.Len(t, k.reporter.started, 2)
}

func TestSmokeScenario_MissingBaseURL(t *testing.T) {
	k := newSmokeKit()

	_, err := k.uc.Run(context.Background(), SmokeConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base URL is not set")
}

func TestSmokeScenario_TabNotActivated(t *testing.T) {
	k := newSmokeKit()
	k.loginForm()
	k.d.Set(k.cat.Tabs.ARIA, &memory.Element{Tag: "button", Text: "Details", Attributes: map[string]string{"role": "tab", "aria-selected": "false"}})

	res, err := k.uc.Run(context.Background(), SmokeConfig{
		BaseURL:    "https://app.test",
		Tab:        "Details",
		TabTimeout: 30 * time.Millisecond,
	})
	require.Error(t, err)

	assert.Equal(t, entity.StepStatusFailed, res.Steps[4].Status)
	assert.Equal(t, entity.StepStatusSkipped, res.Steps[5].Status)
}

func TestSmokeScenario_ScreenshotErrorIsNotFatal(t *testing.T) {
	k := newSmokeKit()
	k.loginForm()
	k.shots.err = errors.New("disk full")
	k.d.Set(k.cat.Common.PaginationStatus, &memory.Element{Tag: "p", Text: "1-5 of 5"})

	res, err := k.uc.Run(context.Background(), SmokeConfig{BaseURL: "https://app.test"})
	require.NoError(t, err)
	assert.Empty(t, res.Screenshot)
}
