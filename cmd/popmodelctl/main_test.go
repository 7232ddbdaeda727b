package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mbsabath/popmodel/pkg/popmodel"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	rootCmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "popmodelctl version "+version+"\n" {
		t.Fatalf("unexpected version output: %q", out)
	}

	out, _, err = execute(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json: %v", err)
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode version json: %v", err)
	}
	if payload["version"] != version {
		t.Fatalf("unexpected version payload: %v", payload)
	}
}

func TestRunCommandCSV(t *testing.T) {
	out, _, err := execute(t, "run", "--share", "0.5", "--xx", "3", "--xy", "0", "--yx", "0", "--yy", "2", "-n", "2", "--format", "csv")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "generation,share_x,share_y\n0,0.5,0.5\n1,0.6,0.4\n2,0.77143,0.22857\n"
	if out != want {
		t.Fatalf("unexpected csv:\n%s\nwant:\n%s", out, want)
	}
}

func TestRunCommandDefaultsToNeutralTenGenerations(t *testing.T) {
	out, _, err := execute(t, "run", "--format", "json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var rows []struct {
		Generation int     `json:"generation"`
		ShareX     float64 `json:"share_x"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if len(rows) != 11 {
		t.Fatalf("expected 11 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.Generation != i || row.ShareX != 0.5 {
			t.Fatalf("row %d: expected neutral share 0.5, got %+v", i, row)
		}
	}
}

func TestRunCommandSummary(t *testing.T) {
	_, errOut, err := execute(t, "run", "--xx", "3", "--xy", "0", "--yx", "0", "--yy", "2", "-n", "5", "--format", "csv", "--summary")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(errOut, "final_share=1 ") || !strings.Contains(errOut, "at_generation=3") {
		t.Fatalf("unexpected summary: %q", errOut)
	}
}

func TestRunCommandScenarioWithOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	body := "share: 0.3\ngenerations: 4\nmatrix:\n  xx: 3\n  xy: 0\n  yx: 5\n  yy: 1\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	out, _, err := execute(t, "run", "--scenario", path, "--format", "csv")
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 6 || lines[5] != "4,0.0001,0.9999" {
		t.Fatalf("unexpected scenario output: %v", lines)
	}

	out, _, err = execute(t, "run", "--scenario", path, "--format", "csv", "-n", "1")
	if err != nil {
		t.Fatalf("run scenario override: %v", err)
	}
	lines = strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || lines[2] != "1,0.14917,0.85083" {
		t.Fatalf("expected generations flag to override scenario, got %v", lines)
	}
}

func TestRunCommandRejectsInvalidShare(t *testing.T) {
	_, _, err := execute(t, "run", "--share", "1.01")
	if !errors.Is(err, popmodel.ErrInvalidShare) {
		t.Fatalf("expected invalid share error, got %v", err)
	}
}

func TestRunCommandRejectsUnknownFormat(t *testing.T) {
	if _, _, err := execute(t, "run", "--format", "xml"); err == nil {
		t.Fatal("expected unknown format error")
	}
}

func TestRunCommandZeroFitnessPrintsPartialTrajectory(t *testing.T) {
	out, _, err := execute(t, "run", "--xx", "0", "--xy", "0", "--yx", "0", "--yy", "0", "-n", "3", "--format", "csv")
	if !errors.Is(err, popmodel.ErrZeroFitness) {
		t.Fatalf("expected zero fitness error, got %v", err)
	}
	if out != "generation,share_x,share_y\n0,0.5,0.5\n" {
		t.Fatalf("expected only the initial row, got %q", out)
	}
}

func TestShowCommand(t *testing.T) {
	out, _, err := execute(t, "show", "--xx", "3", "--xy", "0", "--yx", "0", "--yy", "2", "--steps", "1")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	want := "share x: 0.6\n" +
		"share y: 0.4\n" +
		"Reproduction Matrix: \n" +
		"    x | y \n" +
		"   -------\n" +
		"x | 3 | 0 \n" +
		"   -------\n" +
		"y | 0 | 2 \n" +
		"Number of generations: 1\n"
	if out != want {
		t.Fatalf("unexpected show output:\n%s\nwant:\n%s", out, want)
	}
}

func TestShowCommandRejectsNegativeSteps(t *testing.T) {
	if _, _, err := execute(t, "show", "--steps", "-1"); err == nil {
		t.Fatal("expected negative steps to be rejected")
	}
}

func TestRunCommandScenarioWithoutShare(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no_share.yaml")
	if err := os.WriteFile(path, []byte("generations: 1\nmatrix:\n  xx: 3\n  xy: 0\n  yx: 0\n  yy: 2\n"), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	if _, _, err := execute(t, "run", "--scenario", path); !errors.Is(err, popmodel.ErrInvalidArgument) {
		t.Fatalf("expected missing share to be rejected, got %v", err)
	}

	out, _, err := execute(t, "run", "--scenario", path, "--share", "0.5", "--format", "csv")
	if err != nil {
		t.Fatalf("run with share flag: %v", err)
	}
	if out != "generation,share_x,share_y\n0,0.5,0.5\n1,0.6,0.4\n" {
		t.Fatalf("unexpected csv: %q", out)
	}
}
