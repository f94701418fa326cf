//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/richtext"

var Default = Build

var Aliases = map[string]any{
	"b":  Build,
	"t":  Test,
	"l":  Lint,
	"g":  Gate,
	"bc": Bench.Corpus,
	"bm": Bench.Markup,
}

type Bench st.Namespace

// Build compiles bin/richtext when any Go source or module file changed.
func Build() error {
	stale, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !stale {
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/richtext")
}

// Install runs go install with the release linker flags.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/richtext")
}

// Clean removes bin/ and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Test runs every package under the race detector with coverage.
func Test() error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go", "tool", "gotestsum", "-f", "pkgname-and-test-fails", "--",
		"-race", "-p", procs, "-parallel", procs,
		"-coverprofile=coverage.out", "-covermode=atomic", "./...")
}

// Lint runs gofmt, go vet and golangci-lint without modifying files.
func Lint() error {
	unformatted, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if unformatted != "" {
		return fmt.Errorf("unformatted files:\n%s", unformatted)
	}
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Gate is the CI entry point.
func Gate() error {
	st.SerialDeps(Lint, Build, Test, Tidy)
	return nil
}

// Tidy fails when go mod tidy would change go.mod or go.sum.
func Tidy() error {
	read := func() string {
		mod, _ := os.ReadFile("go.mod")
		sum, _ := os.ReadFile("go.sum")
		return string(mod) + string(sum)
	}
	before := read()
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	if read() != before {
		return errors.New("go.mod or go.sum is not tidy")
	}
	return nil
}

// Markup runs the converter and language detection benchmarks.
func (Bench) Markup() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem",
		"./pkg/markup/...", "./pkg/langdetect/...")
}

// Corpus times a report-only normalize run over $RICHTEXT_BENCH_DIR
// (default testdata).
func (Bench) Corpus() error {
	st.Deps(Build)
	dir := cmp.Or(os.Getenv("RICHTEXT_BENCH_DIR"), "testdata")
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("benchmark corpus: %w", err)
	}
	started := time.Now()
	if err := sh.RunV(binary, "normalize", "--format", "summary", "--no-config", dir); err != nil {
		return err
	}
	fmt.Printf("%s normalized in %s\n", dir, time.Since(started).Round(time.Millisecond))
	return nil
}

func ldflags() string {
	git := func(args ...string) string {
		out, err := sh.Output("git", args...)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(out)
	}
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339))
}
