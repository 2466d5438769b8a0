package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/zurustar/brew/pkg/cli"
	"github.com/zurustar/brew/pkg/compiler"
	"github.com/zurustar/brew/pkg/fileutil"
	"github.com/zurustar/brew/pkg/logger"
	"github.com/zurustar/brew/pkg/script"
	"github.com/zurustar/brew/pkg/vm"
)

// Application はアプリケーションのメインロジックを管理する
type Application struct {
	config *cli.Config
	log    *slog.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// New Applicationを作成
func New(stdin io.Reader, stdout, stderr io.Writer) *Application {
	return &Application{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

// Run アプリケーションを実行
// スクリプトのパスが指定されていなければ REPL を起動する
func (app *Application) Run(ctx context.Context, args []string) error {
	// 1. コマンドライン引数の解析
	if err := app.parseArgs(args); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if app.config.ShowHelp {
		cli.PrintHelp(app.stdout)
		return nil
	}

	// 2. ロガーの初期化
	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.log.Info("Application started", "config", app.config.ConfigPath)

	// 3. スクリプトの実行、または REPL
	if app.config.ScriptPath == "" {
		return app.runREPL(ctx)
	}
	if err := app.runScript(ctx, app.config.ScriptPath); err != nil {
		return err
	}

	app.log.Info("Application terminated normally")
	return nil
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

// initLogger ロガーを初期化
func (app *Application) initLogger() error {
	if err := logger.InitLogger(app.config.LogLevel, app.stderr); err != nil {
		return err
	}
	app.log = logger.GetLogger()
	return nil
}

// newVM 設定に従って VM を作成
// file モジュールの相対パスは baseDir を基準に解決される
func (app *Application) newVM(baseDir string) *vm.VM {
	return vm.New(
		vm.WithLogger(app.log),
		vm.WithStdout(app.stdout),
		vm.WithStderr(app.stderr),
		vm.WithFileSystem(fileutil.NewRealFS(baseDir)),
		vm.WithTimeout(app.config.Timeout),
		vm.WithColor(app.config.Color),
		vm.WithMaxDepth(app.config.MaxDepth),
	)
}

// runScript スクリプトファイルを読み込んで実行する
func (app *Application) runScript(ctx context.Context, path string) error {
	// スクリプトファイルの読み込み
	s, err := script.NewLoader(app.config.Encoding).Load(path)
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}

	app.log.Info("Script loaded", "name", s.FileName, "size", s.Size)
	app.log.Debug("Script content preview", "name", s.FileName, "preview", truncate(s.Content, 100))

	// スクリプトのコンパイル（失敗したら評価は開始しない）
	program, err := compiler.CompileScript(s)
	if err != nil {
		app.log.Error("Compilation failed", "file", s.FileName, "error", err)
		return err
	}

	app.log.Info("Script compiled successfully", "statements", len(program.Statements))

	// 実行
	machine := app.newVM(s.Dir)
	if err := machine.RunProgram(ctx, program, s.Content); err != nil {
		app.log.Error("Script failed", "file", s.FileName, "error", err)
		return fmt.Errorf("%s: %w", s.FileName, err)
	}
	return nil
}

// truncate 文字列を指定した長さで切り詰める
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
