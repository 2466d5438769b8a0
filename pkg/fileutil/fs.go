// Package fileutil provides file access for brew scripts, both on disk and in memory.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileSystem は file モジュールが使うファイルアクセスを抽象化するインターフェース
type FileSystem interface {
	// ReadFile はファイルの内容を読み込む
	ReadFile(name string) ([]byte, error)
	// WriteFile はファイルを作成または上書きする
	WriteFile(name string, data []byte) error
	// AppendFile はファイル末尾に追記する（存在しなければ作成）
	AppendFile(name string, data []byte) error
	// Exists はファイルが存在するかを返す
	Exists(name string) bool
	// BasePath は相対パスの基準ディレクトリを返す
	BasePath() string
}

// RealFS は実ファイルシステムへのアクセスを提供する
type RealFS struct {
	basePath string
}

// NewRealFS は実ファイルシステム用のFileSystemを作成する
// basePath が空の場合はカレントディレクトリを基準にする
func NewRealFS(basePath string) *RealFS {
	return &RealFS{basePath: basePath}
}

func (r *RealFS) ReadFile(name string) ([]byte, error) {
	path := r.resolvePath(name)
	data, err := os.ReadFile(path)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return data, err
	}

	// 大文字小文字を無視して検索
	actualPath, findErr := FindFileCaseInsensitive(filepath.Dir(path), filepath.Base(path))
	if findErr != nil {
		return nil, err
	}
	return os.ReadFile(actualPath)
}

func (r *RealFS) WriteFile(name string, data []byte) error {
	return os.WriteFile(r.resolvePath(name), data, 0644)
}

func (r *RealFS) AppendFile(name string, data []byte) error {
	f, err := os.OpenFile(r.resolvePath(name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (r *RealFS) Exists(name string) bool {
	_, err := os.Stat(r.resolvePath(name))
	return err == nil
}

func (r *RealFS) BasePath() string {
	return r.basePath
}

// resolvePath は相対パスを basePath 基準に解決する（絶対パスはそのまま）
func (r *RealFS) resolvePath(name string) string {
	if filepath.IsAbs(name) || r.basePath == "" {
		return name
	}
	return filepath.Join(r.basePath, name)
}

// MemFS はメモリ上のファイルシステム（テストやREPL用）
type MemFS struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemFS は初期ファイルを持つ MemFS を作成する
func NewMemFS(files map[string]string) *MemFS {
	m := &MemFS{files: make(map[string][]byte)}
	for name, content := range files {
		m.files[filepath.Clean(name)] = []byte(content)
	}
	return m
}

func (m *MemFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[filepath.Clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *MemFS) WriteFile(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Clean(name)] = append([]byte(nil), data...)
	return nil
}

func (m *MemFS) AppendFile(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := filepath.Clean(name)
	m.files[key] = append(m.files[key], data...)
	return nil
}

func (m *MemFS) Exists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[filepath.Clean(name)]
	return ok
}

func (m *MemFS) BasePath() string {
	return ""
}

// Names はファイル名をソートして返す
func (m *MemFS) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReadText はファイルを読み込み、指定されたエンコーディングから UTF-8 に変換する
func ReadText(fsys FileSystem, name, encoding string) (string, error) {
	data, err := fsys.ReadFile(name)
	if err != nil {
		return "", err
	}
	text, err := Decode(data, encoding)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return text, nil
}
