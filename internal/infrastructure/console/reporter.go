// Package console prints scenario progress to a terminal.
package console

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"browser-pom/internal/application/port/output"
	"browser-pom/internal/domain/entity"
)

var _ output.ReporterPort = (*Reporter)(nil)

const maxDetailLen = 300

type Reporter struct {
	out io.Writer

	header  *color.Color
	step    *color.Color
	passed  *color.Color
	failed  *color.Color
	skipped *color.Color
	dim     *color.Color
}

// NewReporter writes to out, or to color.Output when out is nil.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = color.Output
	}
	return &Reporter{
		out:     out,
		header:  color.New(color.FgCyan, color.Bold),
		step:    color.New(color.FgYellow, color.Bold),
		passed:  color.New(color.FgGreen),
		failed:  color.New(color.FgRed),
		skipped: color.New(color.FgHiBlack),
		dim:     color.New(color.Faint),
	}
}

func (r *Reporter) ScenarioStarted(ctx context.Context, runID, name string) {
	r.header.Fprintf(r.out, "\n━━━ %s ━━━\n", name)
	r.dim.Fprintf(r.out, "   run %s\n", runID)
}

func (r *Reporter) StepStarted(ctx context.Context, name string) {
	r.step.Fprintf(r.out, "\n▶ %s\n", name)
}

func (r *Reporter) StepFinished(ctx context.Context, s entity.StepResult) {
	took := s.Duration.Round(time.Millisecond)
	switch s.Status {
	case entity.StepStatusPassed:
		r.passed.Fprintf(r.out, "✓ %s (%s)\n", orDefault(s.Detail, "ok"), took)
	case entity.StepStatusSkipped:
		r.skipped.Fprintf(r.out, "– skipped: %s\n", orDefault(s.Detail, "not configured"))
	default:
		r.failed.Fprint(r.out, "✗ failed: ")
		msg := s.Detail
		if s.Err != nil {
			msg = s.Err.Error()
		}
		r.dim.Fprintln(r.out, truncate(msg, maxDetailLen))
	}
}

func (r *Reporter) ScenarioFinished(ctx context.Context, res entity.ScenarioResult) {
	var passed, failed, skipped int
	for _, s := range res.Steps {
		switch s.Status {
		case entity.StepStatusPassed:
			passed++
		case entity.StepStatusFailed:
			failed++
		default:
			skipped++
		}
	}

	summary := fmt.Sprintf("\n%d passed, %d failed, %d skipped\n", passed, failed, skipped)
	if res.Passed() {
		r.passed.Fprint(r.out, summary)
	} else {
		r.failed.Fprint(r.out, summary)
	}
	if res.Screenshot != "" {
		r.dim.Fprintf(r.out, "   screenshot: %s\n", res.Screenshot)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
