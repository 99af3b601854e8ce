package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/google/uuid"

	"github.com/zurustar/intc/pkg/cli"
	"github.com/zurustar/intc/pkg/compiler"
	"github.com/zurustar/intc/pkg/headers"
	"github.com/zurustar/intc/pkg/logger"
	"github.com/zurustar/intc/pkg/toolchain"
	"github.com/zurustar/intc/pkg/watch"
)

// 結果メッセージ
const (
	successMessage = "The program was translated successfully in %s seconds!\n"
	failureMessage = "The program failed to translate due to an error\n"
)

// ErrTranslate は変換に失敗したことを示す（詳細はログに出力済み）
var ErrTranslate = errors.New("translation failed")

// Application はアプリケーションのメインロジックを管理する
type Application struct {
	config   *cli.Config
	log      *slog.Logger
	stdout   io.Writer
	stderr   io.Writer
	runner   toolchain.Runner
	resolver *headers.Resolver
	tc       *toolchain.Toolchain
}

// New Applicationを作成
func New() *Application {
	return &Application{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Run アプリケーションを実行
func (app *Application) Run(args []string) error {
	// 1. コマンドライン引数の解析
	if err := app.parseArgs(args); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if app.config.ShowHelp {
		return nil
	}

	// 2. ロガーの初期化
	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.log.Info("Application started", "command", app.config.Command, "input", app.config.Input)

	// 3. トークン表示のみ
	if app.config.Command == cli.CommandTokens {
		return app.printTokens()
	}

	// 4. ツールチェーンとヘッダーの準備
	if err := app.initToolchain(); err != nil {
		return err
	}
	app.resolver = headers.NewDefaultResolver(app.config.HeaderDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// 5. 変換とコンパイル
	err := app.runOnce(ctx)
	if !app.config.Watch {
		if err == nil {
			app.log.Info("Application terminated normally")
		}
		return err
	}

	// 6. 監視モード（失敗しても監視を続ける）
	if err != nil {
		app.log.Error("Build failed", "error", err)
	}
	return app.watch(ctx)
}

// parseArgs コマンドライン引数を解析
func (app *Application) parseArgs(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	app.config = config
	return nil
}

// initLogger ロガーを初期化（実行ごとにrun_idを付与）
func (app *Application) initLogger() error {
	if err := logger.Setup(app.stderr, app.config.LogLevel, app.config.LogFormat); err != nil {
		return err
	}
	app.log = logger.GetLogger().With("run_id", uuid.NewString())
	return nil
}

// initToolchain 設定文字列からツールチェーンを構築
func (app *Application) initToolchain() error {
	cfg, err := toolchain.ParseConfig(app.config.Compiler, app.config.Standard, app.config.Optimization)
	if err != nil {
		return fmt.Errorf("invalid toolchain configuration: %w", err)
	}
	app.tc = toolchain.New(cfg, app.runner, app.log)
	return nil
}

// printTokens トークン列を1行に1つずつ表示
func (app *Application) printTokens() error {
	tokens, err := compiler.TokenizeFile(app.config.Input)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		fmt.Fprintln(app.stdout, tok.String())
	}
	app.log.Info("Tokens printed", "count", len(tokens))
	return nil
}

// runOnce 変換を1回行い、必要ならコンパイルする
func (app *Application) runOnce(ctx context.Context) error {
	if err := app.translate(); err != nil {
		return err
	}

	if app.config.Command != cli.CommandBuild || app.config.NoCompile {
		return nil
	}
	return app.compile(ctx)
}

// translate 入力ファイルをC++に変換して出力ファイルに書き込む
func (app *Application) translate() error {
	result, err := compiler.CompileFile(app.config.Input, compiler.CompileOptions{
		Resolver: app.resolver,
		Logger:   app.log,
	})
	if err == nil {
		err = compiler.WriteOutput(app.config.Output, result.Output)
	}
	if err != nil {
		app.log.Error("Translation failed", "input", app.config.Input, "error", err)
		fmt.Fprint(app.stdout, failureMessage)
		return fmt.Errorf("%w: %w", ErrTranslate, err)
	}

	app.log.Info("Translation unit written",
		"output", app.config.Output,
		"functions", len(result.Program.Order),
		"bytes", len(result.Output))
	fmt.Fprintf(app.stdout, successMessage, strconv.FormatFloat(result.TranslateTime.Seconds(), 'f', -1, 64))
	return nil
}

// compile 生成したC++ファイルをコンパイル
func (app *Application) compile(ctx context.Context) error {
	if app.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, app.config.Timeout)
		defer cancel()
	}

	if err := app.tc.Compile(ctx, app.config.Output, app.config.Executable); err != nil {
		return fmt.Errorf("failed to compile %s: %w", app.config.Output, err)
	}

	app.log.Info("Executable built", "path", app.config.Executable)
	return nil
}

// watch 入力ファイルの変更を監視して再実行
func (app *Application) watch(ctx context.Context) error {
	w, err := watch.New(app.config.Input, app.log)
	if err != nil {
		return err
	}
	defer w.Close()

	app.log.Info("Watching for changes", "path", w.Path())
	err = w.Run(ctx, func() {
		if err := app.runOnce(ctx); err != nil {
			app.log.Error("Build failed", "error", err)
		}
	})
	app.log.Info("Stopped watching")
	return err
}
