package modules

import (
	"os/exec"
	goruntime "runtime"

	"eel/interpreter-go/pkg/runtime"
)

// browserCommand builds the platform command that opens url.
var browserCommand = func(url string) *exec.Cmd {
	switch goruntime.GOOS {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}

// WebBrowser opens URLs in the system browser. Each function returns true
// when the launcher started.
func WebBrowser() *Module {
	m := New("webbrowser")
	open := func(name string, optional []string) {
		m.FuncOpt(name, []string{"url"}, optional, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			url, err := stringArg(call, name, args, 0)
			if err != nil {
				return nil, err
			}
			cmd := browserCommand(url)
			if err := cmd.Start(); err != nil {
				return runtime.NewBool(false), nil
			}
			go cmd.Wait()
			return runtime.NewBool(true), nil
		})
	}
	open("open", []string{"new", "autoraise"})
	open("open_new", nil)
	open("open_new_tab", nil)
	return m
}
