package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stellarlinkco/gsm8k-eval/api"
	"github.com/stellarlinkco/gsm8k-eval/internal/config"
	"github.com/stellarlinkco/gsm8k-eval/internal/report"
)

func saveServerGlobals(t *testing.T) func() {
	t.Helper()

	oldOsExit := osExit
	oldStderrWriter := stderrWriter
	oldLoadConfig := loadConfig
	oldOpenStore := openStore
	oldNewServer := newServer
	oldRunServer := runServer

	return func() {
		osExit = oldOsExit
		stderrWriter = oldStderrWriter
		loadConfig = oldLoadConfig
		openStore = oldOpenStore
		newServer = oldNewServer
		runServer = oldRunServer
	}
}

func TestRunMain_Success(t *testing.T) {
	t.Cleanup(saveServerGlobals(t))

	var errBuf bytes.Buffer
	stderrWriter = &errBuf

	loadConfig = func(path string) (*config.Config, error) {
		return &config.Config{Storage: config.StorageConfig{Type: "memory"}}, nil
	}

	var gotAddr string
	newServer = func(cfg *config.Config, st *report.Store) (*api.Server, error) {
		if st == nil {
			t.Fatalf("newServer: nil store")
		}
		return &api.Server{}, nil
	}
	runServer = func(s *api.Server, addr string) error {
		gotAddr = addr
		return nil
	}

	if code := runMain([]string{"-addr", ":9999"}); code != 0 {
		t.Fatalf("runMain: got %d want 0 (stderr: %s)", code, errBuf.String())
	}
	if gotAddr != ":9999" {
		t.Fatalf("addr: got %q want %q", gotAddr, ":9999")
	}
}

func TestRunMain_ConfigError(t *testing.T) {
	t.Cleanup(saveServerGlobals(t))

	var errBuf bytes.Buffer
	stderrWriter = &errBuf
	loadConfig = func(path string) (*config.Config, error) {
		return nil, errors.New("bad config")
	}

	if code := runMain(nil); code != 1 {
		t.Fatalf("runMain: got %d want 1", code)
	}
	if !strings.Contains(errBuf.String(), "bad config") {
		t.Fatalf("stderr: %q", errBuf.String())
	}
}

func TestRunMain_StoreError(t *testing.T) {
	t.Cleanup(saveServerGlobals(t))

	var errBuf bytes.Buffer
	stderrWriter = &errBuf
	loadConfig = func(path string) (*config.Config, error) {
		return &config.Config{Storage: config.StorageConfig{Type: "bogus"}}, nil
	}

	if code := runMain(nil); code != 1 {
		t.Fatalf("runMain: got %d want 1", code)
	}
	if !strings.Contains(errBuf.String(), "unsupported storage type") {
		t.Fatalf("stderr: %q", errBuf.String())
	}
}

func TestRunMain_ServerError(t *testing.T) {
	t.Cleanup(saveServerGlobals(t))

	var errBuf bytes.Buffer
	stderrWriter = &errBuf
	loadConfig = func(path string) (*config.Config, error) {
		return &config.Config{Storage: config.StorageConfig{Type: "memory"}}, nil
	}
	newServer = func(cfg *config.Config, st *report.Store) (*api.Server, error) {
		return nil, errors.New("api: missing auth configuration")
	}

	if code := runMain(nil); code != 1 {
		t.Fatalf("runMain: got %d want 1", code)
	}
	if !strings.Contains(errBuf.String(), "missing auth configuration") {
		t.Fatalf("stderr: %q", errBuf.String())
	}
}

func TestRunMain_BadFlag(t *testing.T) {
	t.Cleanup(saveServerGlobals(t))

	var errBuf bytes.Buffer
	stderrWriter = &errBuf

	if code := runMain([]string{"-bogus"}); code != 2 {
		t.Fatalf("runMain: got %d want 2", code)
	}
}
