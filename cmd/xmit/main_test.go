package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/xmit-co/xmit-npm/internal/dispatch"
	"github.com/xmit-co/xmit-npm/internal/platform"
	"github.com/xmit-co/xmit-npm/internal/release"
	"github.com/xmit-co/xmit-npm/internal/testutil"
)

// NOTE: Tests in this file replace loadConfigFunc and runFunc.
// Do not use t.Parallel(); each test restores the globals via t.Cleanup().

func stubSeams(t *testing.T, load func() (*release.Config, error), run func(context.Context, *release.Config, []string, dispatch.Options) (int, error)) {
	t.Helper()
	origLoad, origRun := loadConfigFunc, runFunc
	t.Cleanup(func() {
		loadConfigFunc = origLoad
		runFunc = origRun
	})
	if load != nil {
		loadConfigFunc = load
	}
	if run != nil {
		runFunc = run
	}
}

func TestRunMainForwardsArgsAndExitCode(t *testing.T) {
	cfg := &release.Config{BinaryPath: "/opt/xmit/xmit"}
	var gotArgs []string
	stubSeams(t,
		func() (*release.Config, error) { return cfg, nil },
		func(_ context.Context, got *release.Config, args []string, _ dispatch.Options) (int, error) {
			if got != cfg {
				t.Fatalf("unexpected config %+v", got)
			}
			gotArgs = args
			return 3, nil
		},
	)

	var stderr bytes.Buffer
	code := -1
	runMain([]string{"xmit", "deploy", "--help", "-v"}, &stderr, func(c int) { code = c })

	if code != 3 {
		t.Fatalf("expected exit 3, got %d", code)
	}
	if !reflect.DeepEqual(gotArgs, []string{"deploy", "--help", "-v"}) {
		t.Fatalf("unexpected args %q", gotArgs)
	}
	if stderr.Len() != 0 {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestRunMainWithoutArgs(t *testing.T) {
	var gotArgs []string
	stubSeams(t,
		func() (*release.Config, error) { return &release.Config{}, nil },
		func(_ context.Context, _ *release.Config, args []string, _ dispatch.Options) (int, error) {
			gotArgs = args
			return 0, nil
		},
	)

	code := -1
	runMain([]string{"xmit"}, &bytes.Buffer{}, func(c int) { code = c })
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if len(gotArgs) != 0 {
		t.Fatalf("expected no args, got %q", gotArgs)
	}
}

func TestRunMainUnsupportedPlatform(t *testing.T) {
	ran := false
	stubSeams(t,
		func() (*release.Config, error) {
			return release.Load(release.Options{Host: &platform.Host{OSType: "Plan9", Arch: "x64"}})
		},
		func(context.Context, *release.Config, []string, dispatch.Options) (int, error) {
			ran = true
			return 0, nil
		},
	)

	var stderr bytes.Buffer
	code := -1
	runMain([]string{"xmit"}, &stderr, func(c int) { code = c })

	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if ran {
		t.Fatalf("runner must not be called for an unsupported platform")
	}
	if !strings.Contains(stderr.String(), "Unsupported OS: Plan9 x64") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestRunMainRunnerError(t *testing.T) {
	stubSeams(t,
		func() (*release.Config, error) { return &release.Config{}, nil },
		func(context.Context, *release.Config, []string, dispatch.Options) (int, error) {
			return 1, errors.New("resolve working directory: gone")
		},
	)

	var stderr bytes.Buffer
	code := -1
	runMain([]string{"xmit"}, &stderr, func(c int) { code = c })
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "gone") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestRunMainRunsInstalledBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a unix shell")
	}
	root := t.TempDir()
	m := release.Manifest{Name: "xmit", Version: "1.0.0", Host: "github.com", Org: "xmit-co", Repo: "xmit"}
	cfg, err := release.New(m, platform.Platform{GOOS: "linux", GOARCH: "amd64"}, root)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	marker := filepath.Join(t.TempDir(), "args")
	testutil.WriteScript(t, cfg.InstallDir, "xmit", "#!/bin/sh\necho \"$@\" > '"+marker+"'\nexit 5\n")
	cfg.URL = "http://127.0.0.1:0/never-fetched.tgz"
	stubSeams(t, func() (*release.Config, error) { return cfg, nil }, nil)

	code := -1
	runMain([]string{"xmit", "status", "--json"}, &bytes.Buffer{}, func(c int) { code = c })
	if code != 5 {
		t.Fatalf("expected exit 5, got %d", code)
	}
	got, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("read marker: %v", err)
	}
	if strings.TrimSpace(string(got)) != "status --json" {
		t.Fatalf("unexpected args %q", got)
	}
}
