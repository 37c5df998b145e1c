package sqllint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLintFlagsMissingMarker(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "q.go", "package q\n\nconst QBad = `select 1;`\n")

	violations, err := Lint(dir)
	if err != nil {
		t.Fatalf("Lint() error = %v", err)
	}
	if len(violations) != 1 || violations[0].Name != "QBad" {
		t.Fatalf("unexpected violations: %#v", violations)
	}
}

func TestLintFlagsDuplicateMarkers(t *testing.T) {
	dir := t.TempDir()
	marker := "--sql 11111111-2222-4333-8444-555555555555"
	writeFile(t, dir, "a.go", "package q\n\nconst QA = `"+marker+"\nselect 1;`\n")
	writeFile(t, dir, "b.go", "package q\n\nconst QB = `"+marker+"\nselect 2;`\n")

	violations, err := Lint(dir)
	if err != nil {
		t.Fatalf("Lint() error = %v", err)
	}
	if len(violations) != 2 {
		t.Fatalf("expected 2 duplicate violations, got %#v", violations)
	}
	for _, v := range violations {
		if !strings.HasPrefix(v.Message, "duplicate marker") {
			t.Fatalf("unexpected message %q", v.Message)
		}
	}
}

func TestLintIgnoresNonSQLAndTests(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plain.go", "package q\n\nconst greeting = \"hello there\"\n")
	writeFile(t, dir, "plain_test.go", "package q\n\nconst QT = `select 1;`\n")

	violations, err := Lint(dir)
	if err != nil {
		t.Fatalf("Lint() error = %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %#v", violations)
	}
}

func TestLintAcceptsWhatTheRunnerAccepts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.go", "package q\n\nconst QOK = `\n  --sql 11111111-2222-4333-8444-555555555555\nselect 1;`\n")
	writeFile(t, dir, "upper.go", "package q\n\nconst QUpper = `--sql 11111111-2222-4333-8444-55555555555A\nselect 2;`\n")

	violations, err := Lint(dir)
	if err != nil {
		t.Fatalf("Lint() error = %v", err)
	}
	if len(violations) != 1 || violations[0].Name != "QUpper" {
		t.Fatalf("unexpected violations: %#v", violations)
	}
}
