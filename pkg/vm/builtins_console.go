package vm

import (
	"strings"

	"github.com/zurustar/brew/pkg/console"
)

// registerConsoleBuiltins registers console output functions.
func registerConsoleBuiltins(b *registryBuilder) {
	// console.log(...values) prints its arguments separated by spaces. A
	// trailing {text, color} object supplies the last piece of text and the color.
	b.RegisterBuiltinFunction("console", "log", 0, -1, func(th *Thread, args []Value) (Value, error) {
		return nil, th.println(consoleLine(args, ""))
	})

	// info, warn and error print in fixed colors unless a style object overrides it
	levels := []struct{ name, color string }{
		{"info", "cyan"},
		{"warn", "yellow"},
		{"error", "red"},
	}
	for _, level := range levels {
		color := level.color
		b.RegisterBuiltinFunction("console", level.name, 0, -1, func(th *Thread, args []Value) (Value, error) {
			return nil, th.println(consoleLine(args, color))
		})
	}

	// console.colorize(text, color) returns the color-tagged text without printing
	b.RegisterBuiltinFunction("console", "colorize", 2, 2, func(th *Thread, args []Value) (Value, error) {
		color, err := argString("console.colorize", args, 1)
		if err != nil {
			return nil, err
		}
		return String(console.Colorize(argText(args, 0), color)), nil
	})
}

// consoleLine builds the (text, color) pair printed by the console functions.
func consoleLine(args []Value, color string) console.Styled {
	parts := make([]string, 0, len(args))
	for i, arg := range args {
		if obj, ok := arg.(*Object); ok && i == len(args)-1 && isStyleObject(obj) {
			if text, ok := obj.Get("text"); ok {
				parts = append(parts, ToString(text))
			}
			if c, ok := obj.Get("color"); ok && c != NullValue {
				color = ToString(c)
			}
			continue
		}
		parts = append(parts, ToString(arg))
	}
	return console.Styled{Text: strings.Join(parts, " "), Color: color}
}

func isStyleObject(obj *Object) bool {
	if _, _, isErr := obj.errorParts(); isErr {
		return false
	}
	_, hasText := obj.Get("text")
	_, hasColor := obj.Get("color")
	return hasText || hasColor
}

func (th *Thread) println(line console.Styled) error {
	if err := th.vm.printer.Println(line); err != nil {
		return wrapNativeError(err, "console output failed")
	}
	return nil
}
