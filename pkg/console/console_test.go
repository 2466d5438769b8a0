package console

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestColorize(t *testing.T) {
	tests := []struct {
		text, color, want string
	}{
		{"hi", "red", "\x1b[31mhi\x1b[0m"},
		{"hi", "Green", "\x1b[32mhi\x1b[0m"},
		{"hi", "gray", "\x1b[90mhi\x1b[0m"},
		{"hi", "chartreuse", "hi"},
		{"hi", "", "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			if got := Colorize(tt.text, tt.color); got != tt.want {
				t.Errorf("Colorize(%q, %q) = %q, want %q", tt.text, tt.color, got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"auto", "ALWAYS", "never", ""} {
		if _, err := ParseMode(s); err != nil {
			t.Errorf("ParseMode(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseMode("sometimes"); err == nil {
		t.Error("expected error for invalid mode")
	}
}

func TestMode_Enabled(t *testing.T) {
	var buf bytes.Buffer
	if ModeAuto.Enabled(&buf) {
		t.Error("auto mode should not color a buffer")
	}
	if !ModeAlways.Enabled(&buf) {
		t.Error("always mode should color")
	}
	if ModeNever.Enabled(&buf) {
		t.Error("never mode should not color")
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, ModeAlways)
	if err := p.Println(Styled{Text: "warn", Color: "yellow"}); err != nil {
		t.Fatal(err)
	}
	if err := p.Println(Styled{Text: "plain"}); err != nil {
		t.Fatal(err)
	}

	want := "\x1b[33mwarn\x1b[0m\nplain\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestPrinter_ConcurrentLinesStayWhole(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, ModeNever)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Println(Styled{Text: "abcdefghij", Color: "red"})
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if line != "abcdefghij" {
			t.Errorf("interleaved line %q", line)
		}
	}
}
