package interpreter

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/runtime"
)

// clearScreen moves the cursor home and erases the terminal.
const clearScreen = "\x1b[H\x1b[2J"

var errEndOfInput = errors.New("unexpected end of input")

func (i *Interpreter) defineGlobals() {
	g := i.globals
	g.Define("null", runtime.NewNull())
	g.Define("true", runtime.NewBool(true))
	g.Define("false", runtime.NewBool(false))
	g.Define("MATH_PI", runtime.NewFloat(math.Pi))

	builtin := func(global, name string, params []string, impl runtime.NativeFunc) {
		g.Define(global, runtime.NewBuiltIn(name, params, impl))
	}
	value := []string{"value"}

	builtin("PRINT", "print", value, i.builtinPrint)
	builtin("INPUT", "input", nil, i.builtinInput)
	builtin("INPUT_INT", "input_int", nil, i.builtinInputInt)
	builtin("INPUT_FLOAT", "input_float", nil, i.builtinInputFloat)
	builtin("CLEAR", "clear", nil, i.builtinClear)
	builtin("IS_NUM", "is_num", value, isKind(runtime.KindNumber))
	builtin("IS_STR", "is_str", value, isKind(runtime.KindString))
	builtin("IS_LIST", "is_list", value, isKind(runtime.KindList))
	builtin("IS_FUNC", "is_func", value, isKind(runtime.KindFunction, runtime.KindBuiltInFunction))
	builtin("IS_DICT", "is_dict", value, isKind(runtime.KindDictionary))
	builtin("LS_APPEND", "ls_append", []string{"list", "value"}, builtinAppend)
	builtin("LS_POP", "ls_pop", []string{"list", "index"}, builtinPop)
	builtin("LS_EXTEND", "ls_extend", []string{"list1", "list2"}, builtinExtend)
	builtin("DICT_GET", "dict_get", []string{"dict", "key"}, builtinDictGet)
	builtin("DICT_SET", "dict_set", []string{"dict", "key", "value"}, builtinDictSet)
	builtin("DICT_KEYS", "dict_keys", []string{"dict"}, builtinDictKeys)
	builtin("LEN", "len", []string{"item"}, builtinLen)
	builtin("TO_STR", "to_str", value, builtinToStr)
	builtin("TO_NUM", "to_num", value, builtinToNum)
	builtin("RUN", "run", []string{"fn"}, i.builtinRun)
}

func (i *Interpreter) builtinPrint(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
	fmt.Fprintln(i.stdout, runtime.Display(args[0]))
	return runtime.NewNull(), nil
}

// readLine returns the next input line without its terminator. A final
// line without a newline is still returned; only a read at end of input
// fails.
func (i *Interpreter) readLine() (string, error) {
	line, err := i.stdin.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", errEndOfInput
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (i *Interpreter) builtinInput(call *runtime.NativeCall, _ []runtime.Value) (runtime.Value, error) {
	line, err := i.readLine()
	if errors.Is(err, errEndOfInput) {
		return runtime.NewString(""), nil
	}
	if err != nil {
		return nil, call.Error(diagnostics.RuntimeError, err.Error())
	}
	return runtime.NewString(line), nil
}

// promptNumber re-reads until parse accepts a line.
func (i *Interpreter) promptNumber(call *runtime.NativeCall, retry string, parse func(string) (runtime.Number, bool)) (runtime.Value, error) {
	for {
		line, err := i.readLine()
		if err != nil {
			return nil, call.Error(diagnostics.RuntimeError, err.Error())
		}
		if n, ok := parse(strings.TrimSpace(line)); ok {
			return n, nil
		}
		fmt.Fprintln(i.stdout, retry)
	}
}

func (i *Interpreter) builtinInputInt(call *runtime.NativeCall, _ []runtime.Value) (runtime.Value, error) {
	return i.promptNumber(call, "Input must be an integer", func(s string) (runtime.Number, bool) {
		n, err := strconv.Atoi(s)
		return runtime.NewInt(n), err == nil
	})
}

func (i *Interpreter) builtinInputFloat(call *runtime.NativeCall, _ []runtime.Value) (runtime.Value, error) {
	return i.promptNumber(call, "Input must be a float", func(s string) (runtime.Number, bool) {
		f, err := strconv.ParseFloat(s, 64)
		return runtime.NewFloat(f), err == nil
	})
}

func (i *Interpreter) builtinClear(_ *runtime.NativeCall, _ []runtime.Value) (runtime.Value, error) {
	io.WriteString(i.stdout, clearScreen)
	return runtime.NewNull(), nil
}

func isKind(kinds ...runtime.Kind) runtime.NativeFunc {
	return func(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
		got := runtime.Resolve(args[0]).Kind()
		for _, k := range kinds {
			if got == k {
				return runtime.NewBool(true), nil
			}
		}
		return runtime.NewBool(false), nil
	}
}

func builtinAppend(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
	list, ok := runtime.Resolve(args[0]).(runtime.List)
	if !ok {
		return nil, call.Error(diagnostics.RuntimeError, "First argument of 'append' must be a list")
	}
	list.Append(args[1])
	return runtime.NewNull(), nil
}

func builtinPop(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
	list, ok := runtime.Resolve(args[0]).(runtime.List)
	if !ok {
		return nil, call.Error(diagnostics.RuntimeError, "First argument of 'pop' must be a list")
	}
	index, ok := runtime.Resolve(args[1]).(runtime.Number)
	if !ok {
		return nil, call.Error(diagnostics.RuntimeError, "Second argument of 'pop' must be a number")
	}
	idx, ok := index.Int()
	if !ok {
		return nil, call.Error(diagnostics.RuntimeError, "Second argument of 'pop' must be an integer")
	}
	item, ok := list.Pop(idx)
	if !ok {
		return nil, call.Error(diagnostics.IndexOutOfBounds, "Index out of bounds")
	}
	return item, nil
}

func builtinExtend(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
	first, ok := runtime.Resolve(args[0]).(runtime.List)
	if !ok {
		return nil, call.Error(diagnostics.RuntimeError, "First argument of 'extend' must be a list")
	}
	second, ok := runtime.Resolve(args[1]).(runtime.List)
	if !ok {
		return nil, call.Error(diagnostics.RuntimeError, "Second argument of 'extend' must be a list")
	}
	// second may share storage with first.
	first.Extend(append([]runtime.Value(nil), second.Elements()...))
	return runtime.NewNull(), nil
}

func dictArg(call *runtime.NativeCall, fn string, v runtime.Value) (runtime.Dictionary, error) {
	d, ok := runtime.Resolve(v).(runtime.Dictionary)
	if !ok {
		return runtime.Dictionary{}, call.Errorf(diagnostics.RuntimeError, "First argument of '%s' must be a dictionary", fn)
	}
	return d, nil
}

func builtinDictGet(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
	dict, err := dictArg(call, "dict_get", args[0])
	if err != nil {
		return nil, err
	}
	key := runtime.Resolve(args[1])
	val, ok := dict.Get(key)
	if !ok {
		return nil, call.Errorf(diagnostics.KeyNotFound, "Key '%s' is not in dictionary", runtime.Display(key))
	}
	return val, nil
}

func builtinDictSet(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
	dict, err := dictArg(call, "dict_set", args[0])
	if err != nil {
		return nil, err
	}
	dict.Set(runtime.Resolve(args[1]), args[2])
	return runtime.NewNull(), nil
}

func builtinDictKeys(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
	dict, err := dictArg(call, "dict_keys", args[0])
	if err != nil {
		return nil, err
	}
	return runtime.NewList(dict.Keys()...), nil
}

func builtinLen(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
	switch item := runtime.Resolve(args[0]).(type) {
	case runtime.List:
		return runtime.NewInt(item.Len()), nil
	case runtime.Dictionary:
		return runtime.NewInt(item.Len()), nil
	}
	return nil, call.Error(diagnostics.RuntimeError, "Argument must be list or dictionary")
}

func builtinToStr(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
	return runtime.NewString(runtime.Display(args[0])), nil
}

// builtinToNum parses integers into integer form and anything else
// strconv accepts as a float.
func builtinToNum(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
	switch v := runtime.Resolve(args[0]).(type) {
	case runtime.Number:
		return v, nil
	case runtime.Boolean:
		return v.Number(), nil
	case runtime.String:
		text := strings.TrimSpace(v.Val)
		if n, err := strconv.Atoi(text); err == nil {
			return runtime.NewInt(n), nil
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return runtime.NewFloat(f), nil
		}
		return nil, call.Errorf(diagnostics.ConversionError, "Could not convert '%s' to a number", v.Val)
	default:
		return nil, call.Errorf(diagnostics.ConversionError, "Could not convert %s to a number", v.Kind())
	}
}

// builtinRun executes a script file as a separate program sharing the
// globals.
func (i *Interpreter) builtinRun(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
	fn, ok := runtime.Resolve(args[0]).(runtime.String)
	if !ok {
		return nil, call.Error(diagnostics.RuntimeError, "Argument must be string")
	}
	text, err := os.ReadFile(fn.Val)
	if err != nil {
		return nil, call.Errorf(diagnostics.RuntimeError, "Failed to load script \"%s\"\n%s", fn.Val, err)
	}
	if _, err := i.Run(fn.Val, string(text)); err != nil {
		return nil, call.Errorf(diagnostics.RuntimeError, "Failed to finish executing script \"%s\"\n%s", fn.Val, renderError(err))
	}
	return runtime.NewNull(), nil
}
