package vm

import (
	"github.com/zurustar/brew/pkg/fileutil"
)

// registerFileBuiltins registers whole-file text I/O.
// 相対パスはVMのFileSystemの基準ディレクトリ（スクリプトのディレクトリ）から解決する
// 第3引数（readは第2引数）で文字エンコーディングを指定できる（既定はutf-8）
func registerFileBuiltins(b *registryBuilder) {
	// file.read(path [, encoding]) - ファイル全体を文字列として読み込む
	b.RegisterBuiltinFunction("file", "read", 1, 2, func(th *Thread, args []Value) (Value, error) {
		path, err := argString("file.read", args, 0)
		if err != nil {
			return nil, err
		}
		enc, err := optString("file.read", args, 1, fileutil.DefaultEncoding)
		if err != nil {
			return nil, err
		}

		text, err := fileutil.ReadText(th.vm.fs, path, enc)
		if err != nil {
			return nil, wrapNativeError(err, "file.read failed for %q", path)
		}
		th.vm.log.Debug("file.read called", "path", path, "encoding", enc, "length", len(text))
		return String(text), nil
	})

	// file.write(path, content [, encoding]) - ファイルを作成または上書きする
	b.RegisterBuiltinFunction("file", "write", 2, 3, func(th *Thread, args []Value) (Value, error) {
		return nil, writeFile(th, "file.write", args, th.vm.fs.WriteFile)
	})

	// file.append(path, content [, encoding]) - ファイル末尾に追記する
	b.RegisterBuiltinFunction("file", "append", 2, 3, func(th *Thread, args []Value) (Value, error) {
		return nil, writeFile(th, "file.append", args, th.vm.fs.AppendFile)
	})

	// file.exists(path)
	b.RegisterBuiltinFunction("file", "exists", 1, 1, func(th *Thread, args []Value) (Value, error) {
		path, err := argString("file.exists", args, 0)
		if err != nil {
			return nil, err
		}
		return Bool(th.vm.fs.Exists(path)), nil
	})
}

// writeFile はcontentを文字列化してエンコードし、sinkに渡す
func writeFile(th *Thread, fn string, args []Value, sink func(string, []byte) error) error {
	path, err := argString(fn, args, 0)
	if err != nil {
		return err
	}
	enc, err := optString(fn, args, 2, fileutil.DefaultEncoding)
	if err != nil {
		return err
	}

	data, err := fileutil.Encode(argText(args, 1), enc)
	if err != nil {
		return wrapNativeError(err, "%s failed for %q", fn, path)
	}
	if err := sink(path, data); err != nil {
		return wrapNativeError(err, "%s failed for %q", fn, path)
	}
	th.vm.log.Debug(fn+" called", "path", path, "encoding", enc, "bytes", len(data))
	return nil
}
