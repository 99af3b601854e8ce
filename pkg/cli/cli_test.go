package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"
)

// clearEnv 設定に影響する環境変数を空にする
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"LOG_LEVEL", "INTC_CXX", "INTC_STD", "INTC_OPT", "TIMEOUT"} {
		t.Setenv(name, "")
	}
}

func defaults() Config {
	return Config{
		Command:      CommandBuild,
		Input:        DefaultInput,
		Output:       DefaultOutput,
		Executable:   DefaultExecutable,
		HeaderDir:    DefaultHeaderDir,
		LogLevel:     "info",
		LogFormat:    "text",
		Compiler:     "g++",
		Standard:     "c++17",
		Optimization: "speed",
	}
}

func TestParseArgs_ValidArgs(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name   string
		args   []string
		modify func(c *Config)
	}{
		{
			name:   "デフォルト設定",
			args:   []string{},
			modify: func(c *Config) {},
		},
		{
			name:   "入力ファイル指定",
			args:   []string{"src/app.int"},
			modify: func(c *Config) { c.Input = "src/app.int" },
		},
		{
			name:   "入力ファイル指定（フラグ）",
			args:   []string{"-i", "other.int"},
			modify: func(c *Config) { c.Input = "other.int" },
		},
		{
			name:   "translateサブコマンド",
			args:   []string{"translate", "a.int", "-o", "a.cpp"},
			modify: func(c *Config) { c.Command = CommandTranslate; c.Input = "a.int"; c.Output = "a.cpp" },
		},
		{
			name:   "tokensサブコマンド",
			args:   []string{"tokens"},
			modify: func(c *Config) { c.Command = CommandTokens },
		},
		{
			name:   "buildサブコマンドと出力先",
			args:   []string{"build", "--exe", "app", "--output", "app.cpp"},
			modify: func(c *Config) { c.Executable = "app"; c.Output = "app.cpp" },
		},
		{
			name: "コンパイラ設定",
			args: []string{"--cxx", "clang++", "--std", "c++20", "--opt", "size"},
			modify: func(c *Config) {
				c.Compiler = "clang++"
				c.Standard = "c++20"
				c.Optimization = "size"
			},
		},
		{
			name:   "タイムアウト指定（短縮形）",
			args:   []string{"-t", "5"},
			modify: func(c *Config) { c.Timeout = 5 * time.Second },
		},
		{
			name:   "ログ設定",
			args:   []string{"-l", "debug", "--log-format", "json"},
			modify: func(c *Config) { c.LogLevel = "debug"; c.LogFormat = "json" },
		},
		{
			name:   "監視モード",
			args:   []string{"--watch", "--no-compile"},
			modify: func(c *Config) { c.Watch = true; c.NoCompile = true },
		},
		{
			name:   "位置引数の後にフラグ（順序に関係なく動作）",
			args:   []string{"main2.int", "--header-dir", "include", "-w"},
			modify: func(c *Config) { c.Input = "main2.int"; c.HeaderDir = "include"; c.Watch = true },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := parse(tt.args, io.Discard)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := defaults()
			tt.modify(&want)
			if *config != want {
				t.Errorf("config = %+v, want %+v", *config, want)
			}
		})
	}
}

func TestParseArgs_Help(t *testing.T) {
	clearEnv(t)

	for _, args := range [][]string{{"--help"}, {"-h"}, {"help"}, {"translate", "--help"}} {
		var out bytes.Buffer
		config, err := parse(args, &out)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", args, err)
		}
		if !config.ShowHelp {
			t.Errorf("%v: ShowHelp = false, want true", args)
		}
		if !strings.Contains(out.String(), "Usage:") {
			t.Errorf("%v: help was not printed: %q", args, out.String())
		}
	}
}

func TestParseArgs_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("INTC_CXX", "clang++")
	t.Setenv("INTC_STD", "c++14")
	t.Setenv("INTC_OPT", "balanced")
	t.Setenv("TIMEOUT", "30")

	config, err := parse(nil, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", config.LogLevel)
	}
	if config.Compiler != "clang++" || config.Standard != "c++14" || config.Optimization != "balanced" {
		t.Errorf("toolchain = %s %s %s, want clang++ c++14 balanced", config.Compiler, config.Standard, config.Optimization)
	}
	if config.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", config.Timeout)
	}
}

func TestParseArgs_FlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("INTC_STD", "c++98")
	t.Setenv("TIMEOUT", "30")

	config, err := parse([]string{"--log-level", "warn", "--std", "c++11", "--timeout", "2"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", config.LogLevel)
	}
	if config.Standard != "c++11" {
		t.Errorf("Standard = %q, want c++11", config.Standard)
	}
	if config.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", config.Timeout)
	}
}

func TestParseArgs_InvalidArgs(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{
			name: "負のタイムアウト",
			args: []string{"--timeout", "-10"},
			msg:  "timeout must be non-negative",
		},
		{
			name: "無効なログレベル",
			args: []string{"--log-level", "invalid"},
			msg:  "invalid log-level: invalid (must be one of debug, info, warn, error)",
		},
		{
			name: "無効なログ形式",
			args: []string{"--log-format", "xml"},
			msg:  "invalid log-format",
		},
		{
			name: "無効なコンパイラ",
			args: []string{"--cxx", "cl"},
			msg:  "invalid cxx",
		},
		{
			name: "無効な標準",
			args: []string{"--std", "c++23"},
			msg:  "invalid std",
		},
		{
			name: "無効な最適化",
			args: []string{"--opt", "max"},
			msg:  "invalid opt",
		},
		{
			name: "空の出力先",
			args: []string{"-o", ""},
			msg:  "output must not be empty",
		},
		{
			name: "位置引数が多すぎる",
			args: []string{"a.int", "b.int"},
			msg:  "accepts at most 1 arg",
		},
		{
			name: "未知のフラグ",
			args: []string{"--headless"},
			msg:  "unknown flag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(tt.args, io.Discard)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.msg)
			}
		})
	}
}
