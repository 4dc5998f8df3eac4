//go:build stave

package main

import (
	"cmp"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":       Build,
	"t":       Test.Default,
	"l":       Lint.Default,
	"c":       Check,
	"i":       Install,
	"fmt":     Lint.Fmt,
	"smoke":   Bench.Smoke,
	"resolve": Bench.Resolve,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	Bench st.Namespace
)

// ---------------------------------------------------------------------------
// Top-level targets
// ---------------------------------------------------------------------------

// Build compiles the excmd binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir("bin/excmd", "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println("bin/excmd is up to date")
		return nil
	}
	fmt.Println("Building excmd...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", "bin/excmd", "./cmd/excmd")
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return sh.Rm("coverage.out")
}

// Install installs excmd to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing excmd...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/excmd")
}

// Deps ensures all dependencies are downloaded.
func Deps() error {
	fmt.Println("Downloading dependencies...")
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// ---------------------------------------------------------------------------
// Test namespace
// ---------------------------------------------------------------------------

// Default runs all tests using gotestsum with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-v", "-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// ---------------------------------------------------------------------------
// Lint namespace
// ---------------------------------------------------------------------------

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-w", ".")
}

// ---------------------------------------------------------------------------
// Bench namespace
// ---------------------------------------------------------------------------

// Smoke builds the binary and checks the repository's own scripts with it.
func (Bench) Smoke() error {
	st.Deps(Build)
	fmt.Println("Checking ex sources in the repository...")
	start := time.Now()
	if err := sh.RunV("bin/excmd", "check", "--format", "summary", "--ignore", "_examples/**", "."); err != nil {
		return fmt.Errorf("check repository: %w", err)
	}
	fmt.Printf("✓ Checked in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// Resolve times address resolution against a generated buffer.
func (Bench) Resolve() error {
	st.Deps(Build)
	lines := cmp.Or(os.Getenv("BENCH_LINES"), "200000")
	path, err := writeBenchBuffer(lines)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	for _, line := range []string{"%", "/needle/,$", "?needle?-3,.+10", "g/needle/d"} {
		start := time.Now()
		if err := sh.RunV("bin/excmd", "resolve", "--file", path, "--line", "1", line); err != nil {
			return fmt.Errorf("resolve %q: %w", line, err)
		}
		fmt.Printf("  %-20s %s\n", line, time.Since(start).Round(time.Microsecond))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers (unexported — not targets)
// ---------------------------------------------------------------------------

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}

// writeBenchBuffer writes a buffer of the given line count with a match near the end.
func writeBenchBuffer(count string) (string, error) {
	var total int
	if _, err := fmt.Sscan(count, &total); err != nil || total < 1 {
		return "", fmt.Errorf("invalid BENCH_LINES %q", count)
	}
	file, err := os.CreateTemp("", "excmd-bench-*.txt")
	if err != nil {
		return "", fmt.Errorf("create buffer: %w", err)
	}
	defer file.Close()

	var builder strings.Builder
	for i := range total {
		if i == total-total/10 {
			builder.WriteString("needle\n")
			continue
		}
		fmt.Fprintf(&builder, "line %d of the haystack\n", i+1)
	}
	if _, err := file.WriteString(builder.String()); err != nil {
		return "", fmt.Errorf("write buffer: %w", err)
	}
	return file.Name(), nil
}
