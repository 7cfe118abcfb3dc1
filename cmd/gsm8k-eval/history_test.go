package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stellarlinkco/gsm8k-eval/internal/report"
)

func writeStorageConfig(t *testing.T, dir, dbPath string) string {
	t.Helper()
	cfg := fmt.Sprintf("storage:\n  type: sqlite\n  path: %q\n", dbPath)
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

func TestHistoryCommand_Table(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "runs.db")
	cfgPath := writeStorageConfig(t, dir, dbPath)

	st, err := report.NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	run := &report.Run{
		Model:    "claude-3-5-haiku-20241022",
		Provider: "claude",
		Dataset:  "gsm8k_main_train_dev_subset",
		Total:    100,
		Correct:  82,
		Accuracy: 0.82,
		EvalDate: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := st.SaveRun(context.Background(), run, nil); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"history", "--config", cfgPath})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "MODEL") || !strings.Contains(got, "claude-3-5-haiku-20241022") {
		t.Fatalf("output: %q", got)
	}
	if !strings.Contains(got, "0.8200") {
		t.Fatalf("output missing accuracy: %q", got)
	}
}

func TestHistoryCommand_BadFlags(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeStorageConfig(t, dir, filepath.Join(dir, "runs.db"))

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"history", "--config", cfgPath, "--limit", "0"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected limit error")
	}

	root = newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"history", "--config", cfgPath, "--format", "xml"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected format error")
	}
}
