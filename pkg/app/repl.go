package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/zurustar/brew/pkg/compiler"
	"github.com/zurustar/brew/pkg/vm"
)

const (
	promptMain  = "brew> "
	promptCont  = "....> "
	historyFile = ".brew_history"
	banner      = "brew REPL. Type :help for commands, :quit to exit."
)

// lineReader は1行ずつ入力を読む。*liner.State が実装する
type lineReader interface {
	Prompt(prompt string) (string, error)
}

// scanReader は端末でない入力（パイプなど）から行を読む
// プロンプトは表示しない
type scanReader struct {
	sc *bufio.Scanner
}

func (r *scanReader) Prompt(string) (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

// Session は REPL の1セッション
// グローバルスコープは入力をまたいで保持される
type Session struct {
	vm  *vm.VM
	out io.Writer
	err io.Writer
}

// NewSession セッションを作成
func NewSession(machine *vm.VM, out, errOut io.Writer) *Session {
	return &Session{vm: machine, out: out, err: errOut}
}

// Handle 1つの入力を処理する。セッションを終了すべきときは false を返す
func (s *Session) Handle(ctx context.Context, src string) bool {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return true
	}

	if strings.HasPrefix(trimmed, ":") {
		switch strings.ToLower(trimmed) {
		case ":quit", ":exit", ":q":
			return false
		case ":help":
			fmt.Fprintln(s.out, "  :help         このヘルプを表示")
			fmt.Fprintln(s.out, "  :globals      定義済みの変数を表示")
			fmt.Fprintln(s.out, "  :modules      組み込みモジュールを表示")
			fmt.Fprintln(s.out, "  :quit         終了")
		case ":globals":
			for _, name := range s.vm.Globals().Keys() {
				v, _ := s.vm.Globals().Get(name)
				fmt.Fprintf(s.out, "%s = %s\n", name, vm.Inspect(v))
			}
		case ":modules":
			for _, name := range s.vm.Registry().Names() {
				members := s.vm.Registry().Members(name)
				if members == nil {
					fmt.Fprintln(s.out, name)
					continue
				}
				fmt.Fprintf(s.out, "%s: %s\n", name, strings.Join(members, ", "))
			}
		default:
			fmt.Fprintf(s.err, "unknown command %s. Type :help for commands.\n", trimmed)
		}
		return true
	}

	v, err := s.vm.Eval(ctx, src)
	if err != nil {
		fmt.Fprintln(s.err, err)
		return true
	}
	if v != vm.NullValue {
		fmt.Fprintln(s.out, vm.Inspect(v))
	}
	return true
}

var replKeywords = []string{
	"let", "obj", "function", "fn", "if", "else", "while", "for", "return",
	"break", "continue", "try", "catch", "finally", "throw", "true", "false", "null",
}

// Complete 入力行の末尾の名前を補完する
// "string.up" のようなモジュールメンバーも補完対象
func (s *Session) Complete(line string) []string {
	start := len(line)
	for start > 0 && isNameByte(line[start-1]) {
		start--
	}
	head, word := line[:start], line[start:]

	var candidates []string
	if dot := strings.LastIndexByte(word, '.'); dot >= 0 {
		module, prefix := word[:dot], word[dot+1:]
		for _, member := range s.vm.Registry().Members(module) {
			if strings.HasPrefix(member, prefix) {
				candidates = append(candidates, head+module+"."+member)
			}
		}
		return candidates
	}

	if word == "" {
		return nil
	}

	seen := map[string]bool{}
	names := append(append(s.vm.Registry().Names(), s.vm.Globals().Keys()...), replKeywords...)
	for _, name := range names {
		if strings.HasPrefix(name, word) && !seen[name] {
			seen[name] = true
			candidates = append(candidates, head+name)
		}
	}
	sort.Strings(candidates)
	return candidates
}

func isNameByte(c byte) bool {
	return c == '_' || c == '.' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// readByParseProbe 構文として完結するまで行を読み足す
// 入力が終わったら false を返す
func readByParseProbe(r lineReader, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = r.Prompt(prompt)
		} else {
			line, err = r.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				// 未完のまま終わった入力はそのまま評価してエラーを表示する
				return b.String(), true
			}
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := compiler.Compile(src); perr != nil && compiler.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}

// runREPL 対話モードを実行
// 端末からの入力では liner で行編集・履歴・補完を提供する
func (app *Application) runREPL(ctx context.Context) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	session := NewSession(app.newVM(wd), app.stdout, app.stderr)

	var reader lineReader
	if f, ok := app.stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		ln := liner.NewLiner()
		defer ln.Close()
		ln.SetCtrlCAborts(true)
		ln.SetCompleter(session.Complete)

		histPath := ""
		if home, err := os.UserHomeDir(); err == nil {
			histPath = filepath.Join(home, historyFile)
			if f, err := os.Open(histPath); err == nil {
				_, _ = ln.ReadHistory(f)
				_ = f.Close()
			}
		}
		defer func() {
			if histPath == "" {
				return
			}
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()

		reader = &historyReader{State: ln}
		fmt.Fprintln(app.stdout, banner)
	} else {
		reader = &scanReader{sc: bufio.NewScanner(app.stdin)}
	}

	app.log.Info("REPL started")
	for ctx.Err() == nil {
		src, ok := readByParseProbe(reader, promptMain, promptCont)
		if !ok {
			break
		}
		if !session.Handle(ctx, src) {
			break
		}
	}
	app.log.Info("REPL finished")
	return nil
}

// historyReader は入力した行を履歴に追加する
type historyReader struct {
	*liner.State
}

func (h *historyReader) Prompt(prompt string) (string, error) {
	line, err := h.State.Prompt(prompt)
	if err == nil && strings.TrimSpace(line) != "" {
		h.AppendHistory(line)
	}
	return line, err
}
