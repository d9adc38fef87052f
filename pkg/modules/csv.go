package modules

import (
	"encoding/csv"
	"strings"
	"unicode/utf8"

	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/runtime"
)

// CSV parses delimited text into a list of rows, each a list of strings.
func CSV() *Module {
	return New("csv").
		FuncOpt("read", []string{"contents"}, []string{"delimiter"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			contents, err := stringArg(call, "read", args, 0)
			if err != nil {
				return nil, err
			}
			delim, err := stringOpt(call, "read", args, 1, ",")
			if err != nil {
				return nil, err
			}
			if utf8.RuneCountInString(delim) != 1 {
				return nil, call.Error(diagnostics.RuntimeError, `"delimiter" must be a 1-character string`)
			}
			r := csv.NewReader(strings.NewReader(contents))
			r.Comma, _ = utf8.DecodeRuneInString(delim)
			r.FieldsPerRecord = -1
			r.LazyQuotes = true
			records, err := r.ReadAll()
			if err != nil {
				return nil, call.Errorf(diagnostics.RuntimeError, "csv: %v", err)
			}
			rows := runtime.NewList()
			for _, record := range records {
				row := runtime.NewList()
				for _, field := range record {
					row.Append(runtime.NewString(field))
				}
				rows.Append(row)
			}
			return rows, nil
		})
}
