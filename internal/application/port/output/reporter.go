package output

import (
	"context"

	"browser-pom/internal/domain/entity"
)

// ReporterPort shows scenario progress to whoever is watching the run.
type ReporterPort interface {
	ScenarioStarted(ctx context.Context, runID, name string)
	StepStarted(ctx context.Context, name string)
	StepFinished(ctx context.Context, step entity.StepResult)
	ScenarioFinished(ctx context.Context, result entity.ScenarioResult)
}

// ScreenshotPort persists page evidence. Both methods return the screenshot path.
type ScreenshotPort interface {
	Capture(ctx context.Context, name string) (string, error)
	CaptureFailure(ctx context.Context, name string) (string, error)
}
