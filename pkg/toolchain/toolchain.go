// Package toolchain compiles a generated translation unit with the host C++
// compiler.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Compiler is a C++ compiler driver name.
type Compiler string

const (
	GXX   Compiler = "g++"
	Clang Compiler = "clang++"
)

// Standard is a C++ language standard.
type Standard string

const (
	CXX98 Standard = "c++98"
	CXX11 Standard = "c++11"
	CXX14 Standard = "c++14"
	CXX17 Standard = "c++17"
	CXX20 Standard = "c++20"
)

// Flag returns the -std flag for s.
func (s Standard) Flag() string {
	return "-std=" + string(s)
}

// Optimization is an optimization profile.
type Optimization string

const (
	None     Optimization = "none"
	Size     Optimization = "size"
	Speed    Optimization = "speed"
	Balanced Optimization = "balanced"
)

var optimizationFlags = map[Optimization]string{
	None:     "-O0",
	Size:     "-Os",
	Speed:    "-Ofast",
	Balanced: "-O2",
}

// Flag returns the -O flag for o.
func (o Optimization) Flag() string {
	return optimizationFlags[o]
}

// minimumVersions gives, per compiler, the version constraint under which
// each standard's -std spelling is accepted.
var minimumVersions = map[Compiler]map[Standard]string{
	GXX: {
		CXX98: ">=3.0",
		CXX11: ">=4.7",
		CXX14: ">=5",
		CXX17: ">=5",
		CXX20: ">=10",
	},
	Clang: {
		CXX98: ">=2.7",
		CXX11: ">=3.3",
		CXX14: ">=3.5",
		CXX17: ">=5",
		CXX20: ">=10",
	},
}

// ErrUnsupportedStandard reports a compiler too old for the requested standard.
var ErrUnsupportedStandard = errors.New("compiler does not support the requested standard")

// Config selects the compiler, standard and optimization profile.
type Config struct {
	Compiler     Compiler
	Standard     Standard
	Optimization Optimization
}

// DefaultConfig returns g++ with C++17 at the Speed profile.
func DefaultConfig() Config {
	return Config{Compiler: GXX, Standard: CXX17, Optimization: Speed}
}

// ParseConfig converts configuration strings. Empty strings keep the default.
func ParseConfig(compiler, standard, optimization string) (Config, error) {
	cfg := DefaultConfig()

	if compiler != "" {
		c := Compiler(strings.ToLower(compiler))
		if _, ok := minimumVersions[c]; !ok {
			return cfg, fmt.Errorf("unknown compiler: %s (must be g++ or clang++)", compiler)
		}
		cfg.Compiler = c
	}

	if standard != "" {
		s := Standard(strings.ToLower(standard))
		if _, ok := minimumVersions[GXX][s]; !ok {
			return cfg, fmt.Errorf("unknown standard: %s (must be c++98, c++11, c++14, c++17 or c++20)", standard)
		}
		cfg.Standard = s
	}

	if optimization != "" {
		o := Optimization(strings.ToLower(optimization))
		if _, ok := optimizationFlags[o]; !ok {
			return cfg, fmt.Errorf("unknown optimization: %s (must be none, size, speed or balanced)", optimization)
		}
		cfg.Optimization = o
	}

	return cfg, nil
}

// Runner runs an external command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// BuildError is returned when the compiler rejects the translation unit.
type BuildError struct {
	Compiler Compiler
	Output   string
	Err      error
}

func (e *BuildError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Compiler, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Toolchain invokes one configured compiler.
type Toolchain struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

// New creates a Toolchain. A nil runner uses ExecRunner and a nil logger
// discards output.
func New(cfg Config, runner Runner, logger *slog.Logger) *Toolchain {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Toolchain{cfg: cfg, runner: runner, logger: logger}
}

// Config returns the toolchain configuration.
func (t *Toolchain) Config() Config {
	return t.cfg
}

// Version asks the compiler for its version.
func (t *Toolchain) Version(ctx context.Context) (*semver.Version, error) {
	out, err := t.runner.Run(ctx, string(t.cfg.Compiler), "-dumpversion")
	if err != nil {
		return nil, fmt.Errorf("failed to query %s version: %w", t.cfg.Compiler, err)
	}
	raw := strings.TrimSpace(string(bytes.SplitN(out, []byte("\n"), 2)[0]))
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("unrecognized %s version %q: %w", t.cfg.Compiler, raw, err)
	}
	return v, nil
}

// Check verifies that the installed compiler accepts the configured standard.
func (t *Toolchain) Check(ctx context.Context) error {
	expr, ok := minimumVersions[t.cfg.Compiler][t.cfg.Standard]
	if !ok {
		return fmt.Errorf("%w: %s with %s", ErrUnsupportedStandard, t.cfg.Compiler, t.cfg.Standard)
	}
	constraint, err := semver.NewConstraint(expr)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", expr, err)
	}

	v, err := t.Version(ctx)
	if err != nil {
		return err
	}
	t.logger.Debug("Detected compiler", "compiler", t.cfg.Compiler, "version", v.String())

	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s %s needs %s for %s",
			ErrUnsupportedStandard, t.cfg.Compiler, v, expr, t.cfg.Standard)
	}
	return nil
}

// Args returns the compiler arguments that build source into executable.
func (t *Toolchain) Args(source, executable string) []string {
	return []string{
		t.cfg.Standard.Flag(),
		t.cfg.Optimization.Flag(),
		source,
		"-o", executable,
		"-Wall",
	}
}

// Compile checks the compiler version and builds source into executable.
func (t *Toolchain) Compile(ctx context.Context, source, executable string) error {
	if err := t.Check(ctx); err != nil {
		return err
	}

	args := t.Args(source, executable)
	t.logger.Info("Compiling", "compiler", t.cfg.Compiler, "args", strings.Join(args, " "))

	out, err := t.runner.Run(ctx, string(t.cfg.Compiler), args...)
	if err != nil {
		return &BuildError{Compiler: t.cfg.Compiler, Output: string(out), Err: err}
	}
	if len(out) > 0 {
		// -Wall の警告はそのまま記録する
		t.logger.Warn("Compiler output", "output", strings.TrimSpace(string(out)))
	}
	return nil
}
