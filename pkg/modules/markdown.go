package modules

import (
	"bytes"

	"github.com/yuin/goldmark"

	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/runtime"
)

var markdownRenderer = goldmark.New()

// Markdown renders CommonMark text to HTML.
func Markdown() *Module {
	return New("markdown").
		Func("to_html", []string{"text"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			text, err := stringArg(call, "to_html", args, 0)
			if err != nil {
				return nil, err
			}
			var buf bytes.Buffer
			if err := markdownRenderer.Convert([]byte(text), &buf); err != nil {
				return nil, call.Errorf(diagnostics.RuntimeError, "markdown: %v", err)
			}
			return runtime.NewString(buf.String()), nil
		})
}
