package modules

import (
	"errors"
	"os"
	"os/exec"
	goruntime "runtime"

	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/runtime"
)

// OS exposes a few process-level services. system runs a shell command
// wired to the interpreter's streams and returns its exit status.
func OS() *Module {
	return New("os").
		Var("name", func() runtime.Value {
			if goruntime.GOOS == "windows" {
				return runtime.NewString("nt")
			}
			return runtime.NewString("posix")
		}).
		Func("get_uid", nil, func(call *runtime.NativeCall, _ []runtime.Value) (runtime.Value, error) {
			uid, ok := currentUID()
			if !ok {
				return nil, call.Error(diagnostics.RuntimeError, "get_uid is not supported on "+goruntime.GOOS)
			}
			return runtime.NewInt(uid), nil
		}).
		FuncOpt("getenv", []string{"name"}, []string{"default"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			name, err := stringArg(call, "getenv", args, 0)
			if err != nil {
				return nil, err
			}
			if val, ok := os.LookupEnv(name); ok {
				return runtime.NewString(val), nil
			}
			if len(args) > 1 {
				return args[1], nil
			}
			return runtime.NewNull(), nil
		}).
		Func("system", []string{"command"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			command, err := stringArg(call, "system", args, 0)
			if err != nil {
				return nil, err
			}
			cmd := shellCommand(command)
			if call.Host != nil {
				cmd.Stdout = call.Host.Stdout()
				cmd.Stderr = call.Host.Stdout()
				cmd.Stdin = call.Host.Stdin()
			}
			err = cmd.Run()
			var exit *exec.ExitError
			switch {
			case err == nil:
				return runtime.NewInt(0), nil
			case errors.As(err, &exit):
				return runtime.NewInt(exit.ExitCode()), nil
			default:
				return nil, call.Errorf(diagnostics.RuntimeError, "system: %v", err)
			}
		})
}
