package cli

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zurustar/brew/pkg/console"
	"github.com/zurustar/brew/pkg/fileutil"
)

// DefaultMaxDepth は関数呼び出しの最大ネスト数のデフォルト値
const DefaultMaxDepth = 1000

// Config はコマンドライン引数から解析された設定を保持する
type Config struct {
	ScriptPath string        // 実行する .brew ファイル、またはディレクトリ（空なら REPL）
	Timeout    time.Duration // タイムアウト時間（0は無制限）
	LogLevel   string        // ログレベル（debug, info, warn, error）
	Color      console.Mode  // カラー出力（auto, always, never）
	MaxDepth   int           // 関数呼び出しの最大深さ
	Encoding   string        // スクリプトファイルの文字コード（空なら UTF-8）
	ConfigPath string        // 読み込んだ設定ファイルのパス
	ShowHelp   bool          // ヘルプ表示フラグ
}

// FileConfig は YAML 設定ファイルの内容
type FileConfig struct {
	LogLevel string `yaml:"log_level"`
	Timeout  string `yaml:"timeout"`
	Color    string `yaml:"color"`
	MaxDepth int    `yaml:"max_depth"`
	Encoding string `yaml:"encoding"`
}

// 環境変数名
const (
	EnvLogLevel = "BREW_LOG_LEVEL"
	EnvTimeout  = "BREW_TIMEOUT"
	EnvColor    = "BREW_COLOR"
	EnvConfig   = "BREW_CONFIG"
)

// rawSettings は各設定元から集めた未検証の値
type rawSettings struct {
	logLevel string
	timeout  string
	color    string
	maxDepth string
	encoding string
}

// ParseArgs コマンドライン引数を解析してConfigを返す
// 優先順位: コマンドラインフラグ > 環境変数 > 設定ファイル > デフォルト値
func ParseArgs(args []string) (*Config, error) {
	// 引数を並べ替え：フラグを前に、位置引数を後ろに
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("brew", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	config := &Config{}
	var flags rawSettings

	fs.StringVar(&flags.timeout, "timeout", "", "タイムアウト時間（秒、または 500ms などの期間）")
	fs.StringVar(&flags.timeout, "t", "", "タイムアウト時間（短縮形）")
	fs.StringVar(&flags.logLevel, "log-level", "", "ログレベル（debug, info, warn, error）")
	fs.StringVar(&flags.logLevel, "l", "", "ログレベル（短縮形）")
	fs.StringVar(&flags.color, "color", "", "カラー出力（auto, always, never）")
	fs.StringVar(&flags.maxDepth, "max-depth", "", "関数呼び出しの最大深さ")
	fs.StringVar(&flags.encoding, "encoding", "", "スクリプトの文字コード（utf-8, shift_jis など）")
	fs.StringVar(&config.ConfigPath, "config", "", "YAML設定ファイルのパス")
	fs.StringVar(&config.ConfigPath, "c", "", "YAML設定ファイルのパス（短縮形）")
	fs.BoolVar(&config.ShowHelp, "help", false, "ヘルプを表示")
	fs.BoolVar(&config.ShowHelp, "h", false, "ヘルプを表示（短縮形）")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	settings := rawSettings{logLevel: "warn", color: string(console.ModeAuto)}

	// 設定ファイル（フラグ未指定なら環境変数から）
	if config.ConfigPath == "" {
		config.ConfigPath = os.Getenv(EnvConfig)
	}
	if config.ConfigPath != "" {
		fc, err := LoadConfigFile(config.ConfigPath)
		if err != nil {
			return nil, err
		}
		settings.merge(fc.raw())
	}

	// 環境変数からの設定（コマンドラインフラグが優先）
	settings.merge(rawSettings{
		logLevel: os.Getenv(EnvLogLevel),
		timeout:  os.Getenv(EnvTimeout),
		color:    os.Getenv(EnvColor),
	})

	settings.merge(flags)

	if err := settings.apply(config); err != nil {
		return nil, err
	}

	// 位置引数（スクリプトのパス）
	if fs.NArg() > 0 {
		config.ScriptPath = fs.Arg(0)
	}

	return config, nil
}

// LoadConfigFile YAML設定ファイルを読み込む
// 未知のキーはエラーにする
func LoadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	fc := &FileConfig{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return fc, nil
}

func (fc *FileConfig) raw() rawSettings {
	r := rawSettings{
		logLevel: fc.LogLevel,
		timeout:  fc.Timeout,
		color:    fc.Color,
		encoding: fc.Encoding,
	}
	if fc.MaxDepth != 0 {
		r.maxDepth = strconv.Itoa(fc.MaxDepth)
	}
	return r
}

// merge 空でない値で上書きする
func (r *rawSettings) merge(o rawSettings) {
	if o.logLevel != "" {
		r.logLevel = strings.ToLower(o.logLevel)
	}
	if o.timeout != "" {
		r.timeout = o.timeout
	}
	if o.color != "" {
		r.color = o.color
	}
	if o.maxDepth != "" {
		r.maxDepth = o.maxDepth
	}
	if o.encoding != "" {
		r.encoding = o.encoding
	}
}

// apply 値を検証して Config に設定する
func (r *rawSettings) apply(config *Config) error {
	// ログレベルの検証
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[r.logLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", r.logLevel)
	}
	config.LogLevel = r.logLevel

	// タイムアウトの検証
	timeout, err := parseTimeout(r.timeout)
	if err != nil {
		return err
	}
	config.Timeout = timeout

	mode, err := console.ParseMode(r.color)
	if err != nil {
		return err
	}
	config.Color = mode

	config.MaxDepth = DefaultMaxDepth
	if r.maxDepth != "" {
		depth, err := strconv.Atoi(r.maxDepth)
		if err != nil || depth <= 0 {
			return fmt.Errorf("max depth must be a positive integer, got %q", r.maxDepth)
		}
		config.MaxDepth = depth
	}

	if r.encoding != "" {
		if _, err := fileutil.LookupEncoding(r.encoding); err != nil {
			return err
		}
	}
	config.Encoding = r.encoding

	return nil
}

// parseTimeout 整数は秒として、それ以外は time.ParseDuration の形式として解釈する
func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	var d time.Duration
	if sec, err := strconv.Atoi(s); err == nil {
		d = time.Duration(sec) * time.Second
	} else {
		d, err = time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid timeout: %s", s)
		}
	}

	if d < 0 {
		return 0, fmt.Errorf("timeout must be non-negative, got %s", s)
	}
	return d, nil
}

// reorderArgs 引数を並べ替えて、フラグを前に、位置引数を後ろに配置する
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// フラグかどうかを判定（-または--で始まる）
		if len(arg) > 1 && arg[0] == '-' {
			flags = append(flags, arg)

			// 次の引数が値である可能性をチェック
			// （-t 5 のような場合。--timeout=5 の形式は値を含む）
			if strings.Contains(arg, "=") {
				continue
			}
			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				// ブール型フラグでない場合は次の引数も追加
				if arg != "-h" && arg != "--help" && arg != "-help" {
					i++
					flags = append(flags, args[i])
				}
			}
		} else {
			// 位置引数
			positional = append(positional, arg)
		}
	}

	// フラグを前に、位置引数を後ろに配置
	return append(flags, positional...)
}

// PrintHelp ヘルプメッセージを表示
func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `brew - brew script interpreter

Usage:
  brew [options] [script]

Arguments:
  script        実行する .brew ファイル、または .brew ファイルを含むディレクトリ（省略可）
                ディレクトリを指定した場合、main.brew を優先して実行
                省略した場合は対話モード（REPL）を起動

Options:
  -t, --timeout <duration>    指定時間後に実行を中断（10 または 1500ms など、デフォルト: 無制限）
  -l, --log-level <level>     ログレベル: debug, info, warn, error（デフォルト: warn）
  --color <mode>              カラー出力: auto, always, never（デフォルト: auto）
  --max-depth <n>             関数呼び出しの最大深さ（デフォルト: %d）
  --encoding <name>           スクリプトの文字コード（utf-8, shift_jis, euc-jp など）
  -c, --config <path>         YAML設定ファイル
  -h, --help                  このヘルプを表示

Environment Variables:
  BREW_LOG_LEVEL=<level>      ログレベル
  BREW_TIMEOUT=<duration>     タイムアウト時間
  BREW_COLOR=<mode>           カラー出力
  BREW_CONFIG=<path>          YAML設定ファイル

Config File (YAML):
  log_level: debug
  timeout: 30s
  color: never
  max_depth: 500
  encoding: shift_jis

Examples:
  brew hello.brew                 スクリプトを実行
  brew ./project                  ディレクトリ内の main.brew を実行
  brew --timeout 10 loop.brew     10秒後に中断
  brew --log-level debug app.brew デバッグログを有効化
  brew                            REPLを起動
`, DefaultMaxDepth)
}
