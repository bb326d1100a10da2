package server

import (
	"context"
	"testing"

	"github.com/cwbudde/vennlayout/internal/venn"
)

func TestRunJobCompletes(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(testConfig())

	if err := runJob(context.Background(), jm, job.ID); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got, _ := jm.GetJob(job.ID)
	if got.State != StateCompleted {
		t.Fatalf("Expected completed state, got %s (error: %s)", got.State, got.Error)
	}
	if got.Result == nil {
		t.Fatal("Expected a result")
	}
	if len(got.Result.Circles) != 2 {
		t.Errorf("Expected 2 circles, got %d", len(got.Result.Circles))
	}
	if len(got.Result.TextCentres) != 3 {
		t.Errorf("Expected 3 text centres, got %d", len(got.Result.TextCentres))
	}
	if got.EndTime == nil {
		t.Error("Expected end time to be set")
	}
}

func TestRunJobInvalidInput(t *testing.T) {
	jm := NewJobManager()
	config := testConfig()
	config.Areas = []venn.AreaSpec{{Sets: nil, Size: 1}}
	job := jm.CreateJob(config)

	if err := runJob(context.Background(), jm, job.ID); err == nil {
		t.Fatal("Expected error for invalid input")
	}

	got, _ := jm.GetJob(job.ID)
	if got.State != StateFailed {
		t.Errorf("Expected failed state, got %s", got.State)
	}
	if got.Error == "" {
		t.Error("Expected error message on the job")
	}
}

func TestRunJobMissing(t *testing.T) {
	jm := NewJobManager()
	if err := runJob(context.Background(), jm, "no-such-id"); err == nil {
		t.Error("Expected error for missing job")
	}
}

func TestRunJobCancelledContext(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runJob(ctx, jm, job.ID); err == nil {
		t.Fatal("Expected error for cancelled context")
	}

	got, _ := jm.GetJob(job.ID)
	if got.State != StateFailed {
		t.Errorf("Expected failed state, got %s", got.State)
	}
}

func TestComputeLayoutScalesToViewport(t *testing.T) {
	config := testConfig()
	result, err := computeLayout(config)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for id, c := range result.Circles {
		if c.X-c.Radius < config.Padding-1e-9 || c.X+c.Radius > config.Width-config.Padding+1e-9 {
			t.Errorf("Circle %s out of horizontal bounds", id)
		}
		if c.Y-c.Radius < config.Padding-1e-9 || c.Y+c.Radius > config.Height-config.Padding+1e-9 {
			t.Errorf("Circle %s out of vertical bounds", id)
		}
	}
}
