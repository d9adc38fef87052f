// Package modules holds the native modules reachable through IMPORT.
//
// A module exposes variables, which are zero-argument providers evaluated on
// every read, and functions, which are built-ins with fixed required and
// optional parameters. IMPORT "name" binds each member as name::member.
package modules

import (
	"sort"

	"eel/interpreter-go/pkg/runtime"
)

// Module is one native module.
type Module struct {
	Name      string
	Variables map[string]func() runtime.Value
	Functions map[string]*runtime.BuiltInFunction
}

// New returns an empty module called name.
func New(name string) *Module {
	return &Module{
		Name:      name,
		Variables: make(map[string]func() runtime.Value),
		Functions: make(map[string]*runtime.BuiltInFunction),
	}
}

// Var registers a provider.
func (m *Module) Var(name string, read func() runtime.Value) *Module {
	m.Variables[name] = read
	return m
}

// Func registers a function with required parameters only.
func (m *Module) Func(name string, params []string, impl runtime.NativeFunc) *Module {
	m.Functions[name] = runtime.NewBuiltIn(name, params, impl)
	return m
}

// FuncOpt registers a function that also accepts trailing optional
// parameters.
func (m *Module) FuncOpt(name string, params, optional []string, impl runtime.NativeFunc) *Module {
	m.Functions[name] = &runtime.BuiltInFunction{Name: name, Params: params, Optional: optional, Impl: impl}
	return m
}

// Members returns every variable and function name, sorted.
func (m *Module) Members() []string {
	names := make([]string, 0, len(m.Variables)+len(m.Functions))
	for name := range m.Variables {
		names = append(names, name)
	}
	for name := range m.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry maps module names to modules.
type Registry struct {
	modules map[string]*Module
}

func NewRegistry(mods ...*Module) *Registry {
	r := &Registry{modules: make(map[string]*Module, len(mods))}
	for _, m := range mods {
		r.Register(m)
	}
	return r
}

// Register adds m, replacing any module with the same name.
func (r *Registry) Register(m *Module) {
	if m == nil {
		return
	}
	r.modules[m.Name] = m
}

func (r *Registry) Lookup(name string) (*Module, bool) {
	if r == nil {
		return nil, false
	}
	m, ok := r.modules[name]
	return m, ok
}

// Names returns the registered module names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Standard returns a registry holding every built-in native module.
func Standard() *Registry {
	return NewRegistry(
		Math(),
		JSON(),
		YAML(),
		CSV(),
		Random(),
		String(),
		Time(),
		OS(),
		SQLite(),
		Operator(),
		Colors(),
		WebBrowser(),
		Markdown(),
	)
}
