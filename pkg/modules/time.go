package modules

import (
	"time"

	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/runtime"
)

// Time returns the time module. curr_time is re-read on every access.
func Time() *Module {
	return New("time").
		Var("curr_time", func() runtime.Value {
			return runtime.NewFloat(float64(time.Now().UnixNano()) / float64(time.Second))
		}).
		Func("pause", []string{"seconds"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			secs, err := floatArg(call, "pause", args, 0)
			if err != nil {
				return nil, err
			}
			if secs < 0 {
				return nil, call.Error(diagnostics.RuntimeError, "sleep length must be non-negative")
			}
			time.Sleep(time.Duration(secs * float64(time.Second)))
			return runtime.NewNull(), nil
		})
}
