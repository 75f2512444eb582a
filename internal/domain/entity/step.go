package entity

import "time"

type StepStatus string

const (
	StepStatusPassed  StepStatus = "passed"
	StepStatusFailed  StepStatus = "failed"
	StepStatusSkipped StepStatus = "skipped"
)

type StepResult struct {
	Name     string
	Status   StepStatus
	Detail   string
	Duration time.Duration
	Err      error
}

type ScenarioResult struct {
	RunID      string
	Steps      []StepResult
	Screenshot string
}

func (r ScenarioResult) Passed() bool {
	for _, s := range r.Steps {
		if s.Status == StepStatusFailed {
			return false
		}
	}
	return true
}
