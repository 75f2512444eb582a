package env

import (
	"fmt"
	"slices"
	"time"

	"browser-pom/internal/application/port/output"
)

const (
	KeyBaseURL       = "POM_BASE_URL"
	KeyDriver        = "POM_DRIVER"
	KeyBrowser       = "POM_BROWSER"
	KeyHeadless      = "POM_HEADLESS"
	KeySlowMotion    = "POM_SLOW_MOTION_MS"
	KeyActionTimeout = "POM_ACTION_TIMEOUT_MS"
	KeyWaitTimeout   = "POM_WAIT_TIMEOUT_MS"
	KeyPollInterval  = "POM_POLL_INTERVAL_MS"
	KeyScreenshotDir = "POM_SCREENSHOT_DIR"
	KeyLogDir        = "POM_LOG_DIR"
	KeyLogLevel      = "POM_LOG_LEVEL"
	KeyLocatorsFile  = "POM_LOCATORS_FILE"
	KeyUsername      = "POM_USERNAME"
	KeyPassword      = "POM_PASSWORD"
	KeyMaxPages      = "POM_MAX_PAGES"
)

const (
	DriverRod        = "rod"
	DriverPlaywright = "playwright"
)

var (
	drivers  = []string{DriverRod, DriverPlaywright}
	browsers = []string{"chromium", "firefox", "edge"}
)

// Settings is the resolved run configuration.
type Settings struct {
	BaseURL       string
	Driver        string
	Browser       string
	Headless      bool
	SlowMotion    time.Duration
	ActionTimeout time.Duration
	WaitTimeout   time.Duration
	PollInterval  time.Duration
	ScreenshotDir string
	LogDir        string
	LogLevel      string
	LocatorsFile  string
	Username      string
	Password      string
	MaxPages      int
}

func LoadSettings(cfg output.ConfigPort) (Settings, error) {
	s := Settings{
		BaseURL:       cfg.Get(KeyBaseURL),
		Driver:        cfg.GetWithDefault(KeyDriver, DriverRod),
		Browser:       cfg.GetWithDefault(KeyBrowser, "chromium"),
		Headless:      cfg.GetBool(KeyHeadless, true),
		SlowMotion:    cfg.GetDuration(KeySlowMotion, 0),
		ActionTimeout: cfg.GetDuration(KeyActionTimeout, 10*time.Second),
		WaitTimeout:   cfg.GetDuration(KeyWaitTimeout, 30*time.Second),
		PollInterval:  cfg.GetDuration(KeyPollInterval, 100*time.Millisecond),
		ScreenshotDir: cfg.GetWithDefault(KeyScreenshotDir, "screenshots"),
		LogDir:        cfg.GetWithDefault(KeyLogDir, "log"),
		LogLevel:      cfg.GetWithDefault(KeyLogLevel, "info"),
		LocatorsFile:  cfg.Get(KeyLocatorsFile),
		Username:      cfg.Get(KeyUsername),
		Password:      cfg.Get(KeyPassword),
		MaxPages:      cfg.GetInt(KeyMaxPages, 50),
	}
	return s, s.Validate()
}

func (s Settings) Validate() error {
	if !slices.Contains(drivers, s.Driver) {
		return fmt.Errorf("%s: unsupported driver %q, want one of %v", KeyDriver, s.Driver, drivers)
	}
	if !slices.Contains(browsers, s.Browser) {
		return fmt.Errorf("%s: unsupported browser %q, want one of %v", KeyBrowser, s.Browser, browsers)
	}
	if s.Driver == DriverRod && s.Browser == "firefox" {
		return fmt.Errorf("%s: the rod driver only drives chromium-based browsers", KeyBrowser)
	}
	if s.ActionTimeout <= 0 || s.WaitTimeout <= 0 || s.PollInterval <= 0 {
		return fmt.Errorf("timeouts and poll interval must be positive")
	}
	return nil
}
