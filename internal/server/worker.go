package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/vennlayout/internal/arrange"
	"github.com/cwbudde/vennlayout/internal/venn"
)

// runJob executes a layout job in the background.
func runJob(ctx context.Context, jm *JobManager, jobID string) error {
	job, exists := jm.GetJob(jobID)
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}

	if err := jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateRunning
	}); err != nil {
		return err
	}

	slog.Info("Starting layout job", "job_id", jobID, "areas", len(job.Config.Areas))

	// a layout run is one synchronous computation; honor cancellation
	// before committing to it
	select {
	case <-ctx.Done():
		markJobFailed(jm, jobID, ctx.Err())
		return ctx.Err()
	default:
	}

	start := time.Now()
	result, err := computeLayout(job.Config)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	now := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCompleted
		j.Result = result
		j.EndTime = &now
	})

	slog.Info("Layout job complete",
		"job_id", jobID,
		"elapsed", time.Since(start),
		"loss", result.Loss,
	)
	return nil
}

// computeLayout runs the full pipeline for a job: optimize, normalize,
// scale, and place label anchors.
func computeLayout(config JobConfig) (*JobResult, error) {
	params := venn.Params{
		MaxIterations: config.MaxIterations,
		Seed:          config.Seed,
	}

	solution, err := venn.Layout(config.Areas, params)
	if err != nil {
		return nil, fmt.Errorf("layout failed: %w", err)
	}

	normalized := arrange.NormalizeSolution(solution, arrange.DefaultOrientation)
	scaled := arrange.ScaleSolution(normalized, config.Width, config.Height, config.Padding, nil)

	return &JobResult{
		Circles:     scaled,
		TextCentres: arrange.ComputeTextCentres(scaled, config.Areas),
		Loss:        venn.Loss(solution, config.Areas),
	}, nil
}

// markJobFailed records a job failure.
func markJobFailed(jm *JobManager, jobID string, err error) {
	now := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateFailed
		j.Error = err.Error()
		j.EndTime = &now
	})
	slog.Error("Layout job failed", "job_id", jobID, "error", err)
}
