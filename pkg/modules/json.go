package modules

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/runtime"
)

// JSON returns the json module. Objects decode into dictionaries that keep
// the document's key order.
func JSON() *Module {
	return New("json").
		Func("load", []string{"text"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			text, err := stringArg(call, "load", args, 0)
			if err != nil {
				return nil, err
			}
			v, err := decodeJSON(text)
			if err != nil {
				return nil, call.Errorf(diagnostics.RuntimeError, "Invalid JSON: %v", err)
			}
			return v, nil
		}).
		Func("dump", []string{"value"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			var b strings.Builder
			if err := encodeJSON(&b, args[0]); err != nil {
				return nil, call.Error(diagnostics.RuntimeError, err.Error())
			}
			return runtime.NewString(b.String()), nil
		})
}

func decodeJSON(text string) (runtime.Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("extra data after value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (runtime.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			list := runtime.NewList()
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				list.Append(item)
			}
			_, err := dec.Token()
			return list, err
		case '{':
			dict := runtime.NewDictionary()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				dict.Set(runtime.NewString(keyTok.(string)), item)
			}
			_, err := dec.Token()
			return dict, err
		}
		return nil, fmt.Errorf("unexpected %v", t)
	case json.Number:
		if i, err := strconv.Atoi(t.String()); err == nil {
			return runtime.NewInt(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return runtime.NewFloat(f), nil
	case string:
		return runtime.NewString(t), nil
	case bool:
		return runtime.NewBool(t), nil
	case nil:
		return runtime.NewNull(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// encodeJSON writes v using ", " and ": " separators.
func encodeJSON(b *strings.Builder, v runtime.Value) error {
	switch val := runtime.Resolve(v).(type) {
	case runtime.Null:
		b.WriteString("null")
	case runtime.Boolean:
		b.WriteString(strconv.FormatBool(val.Val))
	case runtime.Number:
		if math.IsNaN(val.Val) || math.IsInf(val.Val, 0) {
			return fmt.Errorf("Out of range float values are not JSON compliant")
		}
		b.WriteString(runtime.FormatNumber(val))
	case runtime.String:
		writeJSONString(b, val.Val)
	case runtime.List:
		b.WriteByte('[')
		for i, item := range val.Elements() {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := encodeJSON(b, item); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case runtime.Dictionary:
		var err error
		first := true
		b.WriteByte('{')
		val.Each(func(key, item runtime.Value) bool {
			var name string
			switch k := key.(type) {
			case runtime.String:
				name = k.Val
			case runtime.Number, runtime.Boolean, runtime.Null:
				name = runtime.Display(k)
			default:
				err = fmt.Errorf("Invalid Json Serializable Key")
				return false
			}
			if !first {
				b.WriteString(", ")
			}
			first = false
			writeJSONString(b, name)
			b.WriteString(": ")
			err = encodeJSON(b, item)
			return err == nil
		})
		if err != nil {
			return err
		}
		b.WriteByte('}')
	default:
		return fmt.Errorf("Object of type %s is not JSON serializable", val.Kind())
	}
	return nil
}

func writeJSONString(b *strings.Builder, s string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	b.Write(bytes.TrimRight(buf.Bytes(), "\n"))
}
