package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempProblem(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write temp problem: %v", err)
	}
	return path
}

func TestLoadProblemJSON(t *testing.T) {
	path := writeTempProblem(t, "problem.json", `{
		"areas": [
			{"sets": ["A"], "size": 10},
			{"sets": ["B"], "size": 10},
			{"sets": ["A", "B"], "size": 3, "weight": 2.5}
		]
	}`)

	problem, err := loadProblem(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(problem.Areas) != 3 {
		t.Fatalf("Expected 3 areas, got %d", len(problem.Areas))
	}
	if problem.Areas[2].Weight == nil || *problem.Areas[2].Weight != 2.5 {
		t.Error("Expected weight 2.5 on the pair spec")
	}
}

func TestLoadProblemTOML(t *testing.T) {
	path := writeTempProblem(t, "problem.toml", `
[[areas]]
sets = ["A"]
size = 10.0

[[areas]]
sets = ["B"]
size = 10.0

[[areas]]
sets = ["A", "B"]
size = 3.0
`)

	problem, err := loadProblem(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(problem.Areas) != 3 {
		t.Fatalf("Expected 3 areas, got %d", len(problem.Areas))
	}
	if problem.Areas[2].Sets[1] != "B" {
		t.Errorf("Expected pair spec sets [A B], got %v", problem.Areas[2].Sets)
	}
}

func TestLoadProblemUnsupportedExtension(t *testing.T) {
	path := writeTempProblem(t, "problem.yaml", "areas: []")
	if _, err := loadProblem(path); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}

func TestLoadProblemEmpty(t *testing.T) {
	path := writeTempProblem(t, "problem.json", `{"areas": []}`)
	if _, err := loadProblem(path); err == nil {
		t.Error("Expected error for empty problem")
	}
}

func TestLoadProblemMissingFile(t *testing.T) {
	if _, err := loadProblem(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
