package logger

import (
	"fmt"
	"io"
	"log/slog"
)

var globalLogger *slog.Logger

// ParseLevel ログレベル名を slog.Level に変換
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", level)
	}
}

// New 指定した出力先に書き込むテキスト形式のロガーを作成
func New(level string, w io.Writer) (*slog.Logger, error) {
	slogLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slogLevel,
	})
	return slog.New(handler), nil
}

// InitLogger ログレベルに応じてslogを初期化
// スクリプトの標準出力と混ざらないよう、w には通常 stderr を渡す
func InitLogger(level string, w io.Writer) error {
	l, err := New(level, w)
	if err != nil {
		return err
	}

	globalLogger = l
	slog.SetDefault(globalLogger)

	return nil
}

// GetLogger グローバルロガーを取得
func GetLogger() *slog.Logger {
	if globalLogger == nil {
		// デフォルトロガーを返す
		return slog.Default()
	}
	return globalLogger
}
