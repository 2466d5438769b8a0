package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zurustar/brew/pkg/fileutil"
)

// Extension は brew スクリプトの拡張子
const Extension = ".brew"

// MainScript はディレクトリ指定時に優先して実行されるファイル名
const MainScript = "main" + Extension

// Script はスクリプトファイルを表す
type Script struct {
	Path     string // 絶対パス
	FileName string // ファイル名
	Dir      string // スクリプトのあるディレクトリ（file.* の相対パス基準）
	Content  string // UTF-8に変換された内容
	Size     int64  // ファイルサイズ
}

// Loader はスクリプトファイルの読み込みを行う
type Loader struct {
	encoding string
}

// NewLoader Loaderを作成
// encoding が空の場合は UTF-8 として読み込む
func NewLoader(encoding string) *Loader {
	return &Loader{encoding: encoding}
}

// Load はファイルまたはディレクトリからスクリプトを読み込む
// ディレクトリの場合は main.brew、なければ唯一の .brew ファイルを使う
func (l *Loader) Load(path string) (*Script, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if info.IsDir() {
		path, err = l.findEntryScript(path)
		if err != nil {
			return nil, err
		}
	}

	return l.loadScript(path)
}

// findEntryScript ディレクトリ内の実行対象スクリプトを決定する
func (l *Loader) findEntryScript(dir string) (string, error) {
	scriptFiles, err := l.findScriptFiles(dir)
	if err != nil {
		return "", fmt.Errorf("failed to find script files: %w", err)
	}

	if len(scriptFiles) == 0 {
		return "", fmt.Errorf("no script files found in %s", dir)
	}

	for _, f := range scriptFiles {
		if strings.EqualFold(filepath.Base(f), MainScript) {
			return f, nil
		}
	}

	if len(scriptFiles) > 1 {
		return "", fmt.Errorf("multiple script files in %s and no %s", dir, MainScript)
	}
	return scriptFiles[0], nil
}

// findScriptFiles 直下の.brewファイルを検出（case-insensitive）
func (l *Loader) findScriptFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var scriptFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		// 拡張子をcase-insensitiveで比較
		if strings.EqualFold(filepath.Ext(entry.Name()), Extension) {
			scriptFiles = append(scriptFiles, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(scriptFiles)
	return scriptFiles, nil
}

// loadScript 単一のスクリプトファイルを読み込む
func (l *Loader) loadScript(path string) (*Script, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	content, err := fileutil.Decode(data, l.encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to convert encoding: %w", err)
	}

	return &Script{
		Path:     absPath,
		FileName: filepath.Base(absPath),
		Dir:      filepath.Dir(absPath),
		Content:  strings.TrimPrefix(content, "\ufeff"),
		Size:     int64(len(data)),
	}, nil
}
