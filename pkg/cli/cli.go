package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Command は実行するサブコマンド
type Command string

const (
	CommandBuild     Command = "build"     // 変換してからコンパイル（デフォルト）
	CommandTranslate Command = "translate" // C++への変換のみ
	CommandTokens    Command = "tokens"    // トークン列の表示
)

// 既定のファイル名
const (
	DefaultInput      = "main.int"
	DefaultOutput     = "main_intermediate.cpp"
	DefaultExecutable = "main.exe"
	DefaultHeaderDir  = "cppstd"
)

// Config はコマンドライン引数から解析された設定を保持する
type Config struct {
	Command      Command       `flag:"command" validate:"oneof=build translate tokens"`
	Input        string        `flag:"input" validate:"required"`
	Output       string        `flag:"output" validate:"required"`
	Executable   string        `flag:"exe" validate:"required"`
	LogLevel     string        `flag:"log-level" validate:"oneof=debug info warn error"`
	LogFormat    string        `flag:"log-format" validate:"oneof=text json"`
	Compiler     string        `flag:"cxx" validate:"oneof=g++ clang++"`
	Standard     string        `flag:"std" validate:"oneof=c++98 c++11 c++14 c++17 c++20"`
	Optimization string        `flag:"opt" validate:"oneof=none size speed balanced"`
	HeaderDir    string        // importで読むヘッダーのディレクトリ
	Timeout      time.Duration // コンパイラ実行のタイムアウト（0は無制限）
	NoCompile    bool          // C++ファイルの生成のみ行う
	Watch        bool          // 入力ファイルの変更を監視して再変換
	ShowHelp     bool          // ヘルプ表示フラグ
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// エラーメッセージにはフラグ名を使う
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("flag")
	})
	return v
}

// ParseArgs コマンドライン引数を解析してConfigを返す
// ヘルプはcobraが標準出力に表示し、ShowHelpがtrueになる
func ParseArgs(args []string) (*Config, error) {
	return parse(args, os.Stdout)
}

func parse(args []string, out io.Writer) (*Config, error) {
	config := &Config{}
	var timeoutSec int
	ran := false

	bind := func(command Command) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, positional []string) error {
			ran = true
			config.Command = command
			// 位置引数が--inputより優先
			if len(positional) > 0 {
				config.Input = positional[0]
			}
			applyEnv(cmd.Flags(), config, &timeoutSec)
			return nil
		}
	}

	root := &cobra.Command{
		Use:   "intc [input]",
		Short: "intc - .int から C++ へのトランスパイラ",
		Long: `intc は .int ソースを C++ の翻訳単位に変換し、C++ コンパイラで実行ファイルを生成する。

環境変数（フラグ未指定時に使用）:
  LOG_LEVEL=<level>   ログレベル
  INTC_CXX=<name>     コンパイラ（g++, clang++）
  INTC_STD=<std>      C++ 標準（c++98, c++11, c++14, c++17, c++20）
  INTC_OPT=<profile>  最適化（none, size, speed, balanced）
  TIMEOUT=<seconds>   コンパイラ実行のタイムアウト（秒）`,
		Example: `  intc                         main.int を変換して main.exe を生成
  intc translate src/app.int   C++ への変換のみ
  intc tokens main.int         トークン列を表示
  intc --std c++20 --opt size  標準と最適化を指定
  intc --watch --no-compile    変更のたびに再変換`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE:              bind(CommandBuild),
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "build [input]",
			Short: "C++ に変換してコンパイルする（デフォルト）",
			Args:  cobra.MaximumNArgs(1),
			RunE:  bind(CommandBuild),
		},
		&cobra.Command{
			Use:   "translate [input]",
			Short: "C++ への変換のみ行う",
			Args:  cobra.MaximumNArgs(1),
			RunE:  bind(CommandTranslate),
		},
		&cobra.Command{
			Use:   "tokens [input]",
			Short: "トークン列を1行に1つずつ表示する",
			Args:  cobra.MaximumNArgs(1),
			RunE:  bind(CommandTokens),
		},
	)

	flags := root.PersistentFlags()
	flags.StringVarP(&config.Input, "input", "i", DefaultInput, "入力ファイル")
	flags.StringVarP(&config.Output, "output", "o", DefaultOutput, "生成する C++ ファイル")
	flags.StringVarP(&config.Executable, "exe", "e", DefaultExecutable, "生成する実行ファイル")
	flags.StringVar(&config.HeaderDir, "header-dir", DefaultHeaderDir, "import で読むヘッダーのディレクトリ（無ければ組み込みライブラリ）")
	flags.StringVarP(&config.LogLevel, "log-level", "l", "info", "ログレベル（debug, info, warn, error）")
	flags.StringVar(&config.LogFormat, "log-format", "text", "ログ形式（text, json）")
	flags.StringVar(&config.Compiler, "cxx", "g++", "C++ コンパイラ（g++, clang++）")
	flags.StringVar(&config.Standard, "std", "c++17", "C++ 標準（c++98, c++11, c++14, c++17, c++20）")
	flags.StringVar(&config.Optimization, "opt", "speed", "最適化（none, size, speed, balanced）")
	flags.IntVarP(&timeoutSec, "timeout", "t", 0, "コンパイラ実行のタイムアウト（秒）")
	flags.BoolVar(&config.NoCompile, "no-compile", false, "C++ ファイルの生成のみ行う")
	flags.BoolVarP(&config.Watch, "watch", "w", false, "入力ファイルの変更を監視して再変換")

	// nilだとcobraはos.Argsを読む
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)

	if err := root.Execute(); err != nil {
		return nil, err
	}

	// --help や help サブコマンドではRunEが呼ばれない
	if !ran {
		config.ShowHelp = true
		return config, nil
	}

	// タイムアウトの検証
	if timeoutSec < 0 {
		return nil, fmt.Errorf("timeout must be non-negative, got %d", timeoutSec)
	}
	config.Timeout = time.Duration(timeoutSec) * time.Second

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnv 環境変数からの設定（コマンドラインフラグが優先）
func applyEnv(flags *pflag.FlagSet, config *Config, timeoutSec *int) {
	overrides := []struct {
		flag string
		env  string
		dst  *string
	}{
		{"log-level", "LOG_LEVEL", &config.LogLevel},
		{"cxx", "INTC_CXX", &config.Compiler},
		{"std", "INTC_STD", &config.Standard},
		{"opt", "INTC_OPT", &config.Optimization},
	}
	for _, o := range overrides {
		if flags.Changed(o.flag) {
			continue
		}
		if v := os.Getenv(o.env); v != "" {
			*o.dst = strings.ToLower(v)
		}
	}

	if !flags.Changed("timeout") {
		if timeoutEnv := os.Getenv("TIMEOUT"); timeoutEnv != "" {
			if t, err := strconv.Atoi(timeoutEnv); err == nil && t > 0 {
				*timeoutSec = t
			}
		}
	}
}

// validateConfig 設定値の検証
func validateConfig(config *Config) error {
	err := validate.Struct(config)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s must not be empty", fe.Field())
	case "oneof":
		choices := strings.Join(strings.Fields(fe.Param()), ", ")
		return fmt.Errorf("invalid %s: %v (must be one of %s)", fe.Field(), fe.Value(), choices)
	default:
		return fmt.Errorf("invalid %s: %v", fe.Field(), fe.Value())
	}
}
