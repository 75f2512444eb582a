// Package diagnostics writes screenshots and DOM snapshots for test runs.
package diagnostics

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"browser-pom/internal/application/port/output"
)

const (
	failuresDir   = "failures"
	failurePrefix = "FAILED_"
	timeLayout    = "20060102_150405"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName builds "<test>_<yyyymmdd_hhmmss>.png", with the test name made path safe.
func FileName(test string, at time.Time) string {
	name := strings.Trim(unsafeChars.ReplaceAllString(test, "_"), "_")
	if name == "" {
		name = "screenshot"
	}
	return fmt.Sprintf("%s_%s.png", name, at.Format(timeLayout))
}

type Config struct {
	Dir string
	// MaxWidth downscales wider screenshots, keeping the aspect ratio. Zero keeps the
	// original size.
	MaxWidth int
	FullPage bool
}

type Recorder struct {
	driver output.DriverPort
	logger output.LoggerPort
	cfg    Config
	now    func() time.Time
}

func NewRecorder(driver output.DriverPort, logger output.LoggerPort, cfg Config) *Recorder {
	if cfg.Dir == "" {
		cfg.Dir = "screenshots"
	}
	return &Recorder{driver: driver, logger: logger, cfg: cfg, now: time.Now}
}

func (r *Recorder) Dir() string {
	return r.cfg.Dir
}

// Capture saves a screenshot of the current page and returns its path.
func (r *Recorder) Capture(ctx context.Context, test string) (string, error) {
	return r.capture(ctx, r.cfg.Dir, FileName(test, r.now()))
}

// CaptureFailure saves a screenshot and the cleaned DOM under failures/ with the FAILED_
// prefix. The screenshot path is returned; a DOM failure alone does not fail the call.
func (r *Recorder) CaptureFailure(ctx context.Context, test string) (string, error) {
	dir := filepath.Join(r.cfg.Dir, failuresDir)
	name := failurePrefix + FileName(test, r.now())

	path, err := r.capture(ctx, dir, name)
	if err != nil {
		return "", err
	}

	if err := r.writeDOM(ctx, strings.TrimSuffix(path, ".png")+".html"); err != nil {
		r.logger.Warn("could not save DOM snapshot", "test", test, "error", err)
	}
	r.logger.Error("test failed, diagnostics saved", "test", test, "screenshot", path)
	return path, nil
}

func (r *Recorder) capture(ctx context.Context, dir, name string) (string, error) {
	shot, err := r.driver.Screenshot(ctx, r.cfg.FullPage)
	if err != nil {
		return "", fmt.Errorf("take screenshot: %w", err)
	}

	data := shot.Data
	if r.cfg.MaxWidth > 0 && shot.Width > r.cfg.MaxWidth {
		data, err = downscale(data, r.cfg.MaxWidth)
		if err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	r.logger.Info("screenshot saved", "path", path)
	return path, nil
}

func (r *Recorder) writeDOM(ctx context.Context, path string) error {
	raw, err := r.driver.HTML(ctx)
	if err != nil {
		return fmt.Errorf("read DOM: %w", err)
	}
	return os.WriteFile(path, []byte(CleanDOM(raw, nil)), 0o644)
}

func downscale(data []byte, width int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	img = imaging.Resize(img, width, 0, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Cleanup removes screenshots and snapshots older than maxAge, failures included.
// It returns how many files were removed.
func (r *Recorder) Cleanup(maxAge time.Duration) (int, error) {
	cutoff := r.now().Add(-maxAge)
	removed := 0

	err := filepath.WalkDir(r.cfg.Dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".png" && ext != ".html" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("clean %s: %w", r.cfg.Dir, err)
	}
	return removed, nil
}
