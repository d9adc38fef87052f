package modules

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/runtime"
)

const (
	asciiLowercase = "abcdefghijklmnopqrstuvwxyz"
	asciiUppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits         = "0123456789"
	hexDigits      = "0123456789abcdefABCDEF"
	octDigits      = "01234567"
	punctuation    = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	whitespace     = " \t\n\r\x0b\x0c"
)

// String returns the string module: character-class constants and text
// helpers with Unicode-aware case mapping.
func String() *Module {
	m := New("string")
	for name, val := range map[string]string{
		"ascii_letters":   asciiLowercase + asciiUppercase,
		"ascii_lowercase": asciiLowercase,
		"ascii_uppercase": asciiUppercase,
		"digits":          digits,
		"hex_digits":      hexDigits,
		"oct_digits":      octDigits,
		"punctuation":     punctuation,
		"printable":       digits + asciiLowercase + asciiUppercase + punctuation + whitespace,
		"whitespace":      whitespace,
	} {
		m.Var(name, func() runtime.Value { return runtime.NewString(val) })
	}

	caser := func(name string, newCaser func(language.Tag) cases.Caser) {
		m.FuncOpt(name, []string{"text"}, []string{"lang"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			text, err := stringArg(call, name, args, 0)
			if err != nil {
				return nil, err
			}
			tag, err := languageOpt(call, name, args, 1)
			if err != nil {
				return nil, err
			}
			return runtime.NewString(newCaser(tag).String(text)), nil
		})
	}
	caser("upper", func(t language.Tag) cases.Caser { return cases.Upper(t) })
	caser("lower", func(t language.Tag) cases.Caser { return cases.Lower(t) })
	caser("title", func(t language.Tag) cases.Caser { return cases.Title(t) })

	m.FuncOpt("split", []string{"text"}, []string{"sep"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
		text, err := stringArg(call, "split", args, 0)
		if err != nil {
			return nil, err
		}
		var parts []string
		if len(args) > 1 {
			sep, err := stringArg(call, "split", args, 1)
			if err != nil {
				return nil, err
			}
			if sep == "" {
				return nil, call.Error(diagnostics.RuntimeError, "empty separator")
			}
			parts = strings.Split(text, sep)
		} else {
			parts = strings.Fields(text)
		}
		out := runtime.NewList()
		for _, p := range parts {
			out.Append(runtime.NewString(p))
		}
		return out, nil
	})

	m.Func("join", []string{"list", "sep"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
		list, err := listArg(call, "join", args, 0)
		if err != nil {
			return nil, err
		}
		sep, err := stringArg(call, "join", args, 1)
		if err != nil {
			return nil, err
		}
		parts := make([]string, 0, list.Len())
		for _, item := range list.Elements() {
			parts = append(parts, runtime.Display(item))
		}
		return runtime.NewString(strings.Join(parts, sep)), nil
	})

	m.Func("trim", []string{"text"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
		text, err := stringArg(call, "trim", args, 0)
		if err != nil {
			return nil, err
		}
		return runtime.NewString(strings.TrimSpace(text)), nil
	})

	m.FuncOpt("format_number", []string{"value"}, []string{"lang"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
		n, err := numberArg(call, "format_number", args, 0)
		if err != nil {
			return nil, err
		}
		tag := language.English
		if len(args) > 1 {
			if tag, err = languageOpt(call, "format_number", args, 1); err != nil {
				return nil, err
			}
		}
		p := message.NewPrinter(tag)
		if i, ok := n.Int(); ok && !n.Float {
			return runtime.NewString(p.Sprintf("%d", i)), nil
		}
		return runtime.NewString(p.Sprintf("%v", n.Val)), nil
	})
	return m
}

// languageOpt parses optional argument i as a BCP 47 tag.
func languageOpt(call *runtime.NativeCall, fn string, args []runtime.Value, i int) (language.Tag, error) {
	if i >= len(args) {
		return language.Und, nil
	}
	raw, err := stringArg(call, fn, args, i)
	if err != nil {
		return language.Und, err
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Und, call.Errorf(diagnostics.RuntimeError, "Unknown language tag '%s'", raw)
	}
	return tag, nil
}
