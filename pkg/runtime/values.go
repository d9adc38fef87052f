package runtime

import (
	"fmt"
	"io"

	"eel/interpreter-go/pkg/ast"
	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/token"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindBoolean
	KindString
	KindList
	KindDictionary
	KindFunction
	KindBuiltInFunction
	KindHandle
	KindProvider
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindNumber:
		return "Number"
	case KindBoolean:
		return "Boolean"
	case KindString:
		return "String"
	case KindList:
		return "List"
	case KindDictionary:
		return "Dictionary"
	case KindFunction:
		return "Function"
	case KindBuiltInFunction:
		return "BuiltInFunction"
	case KindHandle:
		return "Handle"
	case KindProvider:
		return "Provider"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Meta records where a value was produced. Context is a back-reference used
// only when reporting errors.
type Meta struct {
	Start   token.Position
	End     token.Position
	Context *Context
}

// Origin returns the value's position metadata.
func (m Meta) Origin() Meta { return m }

// Value is the shared behaviour for all runtime values. The set is closed:
// only this package defines value kinds.
type Value interface {
	Kind() Kind
	Origin() Meta
	withMeta(Meta) Value
}

// Positioned returns v re-tagged with a new span and context. Scalars,
// lists and dictionaries are copied (collections keep sharing their
// storage); functions, built-ins and handles are returned as-is so their
// identity survives.
func Positioned(v Value, start, end token.Position, ctx *Context) Value {
	return v.withMeta(Meta{Start: start, End: end, Context: ctx})
}

// At is Positioned with an AST span.
func At(v Value, span ast.Span, ctx *Context) Value {
	return Positioned(v, span.Start, span.End, ctx)
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type Null struct {
	Meta
}

func (Null) Kind() Kind { return KindNull }
func (v Null) withMeta(m Meta) Value { v.Meta = m; return v }

func NewNull() Null { return Null{} }

// Number holds both integer and floating values. Float records the form so
// integer arithmetic stays integral.
type Number struct {
	Meta
	Val   float64
	Float bool
}

func (Number) Kind() Kind { return KindNumber }
func (v Number) withMeta(m Meta) Value { v.Meta = m; return v }

// NewInt returns an integer Number.
func NewInt(n int) Number { return Number{Val: float64(n)} }

// NewFloat returns a floating Number.
func NewFloat(f float64) Number { return Number{Val: f, Float: true} }

// Int returns the number as an int when its value is integral.
func (v Number) Int() (int, bool) {
	if v.Val != float64(int(v.Val)) {
		return 0, false
	}
	return int(v.Val), true
}

// Boolean behaves as the number 0 or 1 in arithmetic.
type Boolean struct {
	Meta
	Val bool
}

func (Boolean) Kind() Kind { return KindBoolean }
func (v Boolean) withMeta(m Meta) Value { v.Meta = m; return v }

func NewBool(b bool) Boolean { return Boolean{Val: b} }

// Number returns the numeric form of the boolean.
func (v Boolean) Number() Number {
	if v.Val {
		return Number{Meta: v.Meta, Val: 1}
	}
	return Number{Meta: v.Meta, Val: 0}
}

type String struct {
	Meta
	Val string
}

func (String) Kind() Kind { return KindString }
func (v String) withMeta(m Meta) Value { v.Meta = m; return v }

func NewString(s string) String { return String{Val: s} }

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

type listStore struct {
	items []Value
}

// List is an ordered, mutable sequence. Copies share storage.
type List struct {
	Meta
	store *listStore
}

func (List) Kind() Kind { return KindList }
func (v List) withMeta(m Meta) Value { v.Meta = m; return v }

// NewList returns a list with its own storage holding elements.
func NewList(elements ...Value) List {
	items := make([]Value, len(elements))
	copy(items, elements)
	return List{store: &listStore{items: items}}
}

// Elements exposes the backing elements. Callers must not retain the slice
// across mutations.
func (v List) Elements() []Value {
	if v.store == nil {
		return nil
	}
	return v.store.items
}

func (v List) Len() int { return len(v.Elements()) }

// Append adds value in place; every alias observes it.
func (v List) Append(value Value) {
	v.store.items = append(v.store.items, value)
}

// Extend appends all of values in place.
func (v List) Extend(values []Value) {
	v.store.items = append(v.store.items, values...)
}

// index normalises i, counting negative indices from the end.
func (v List) index(i int) (int, bool) {
	n := v.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

// At returns the element at i; negative indices count from the end.
func (v List) At(i int) (Value, bool) {
	idx, ok := v.index(i)
	if !ok {
		return nil, false
	}
	return v.store.items[idx], true
}

// Pop removes and returns the element at i.
func (v List) Pop(i int) (Value, bool) {
	idx, ok := v.index(i)
	if !ok {
		return nil, false
	}
	item := v.store.items[idx]
	v.store.items = append(v.store.items[:idx], v.store.items[idx+1:]...)
	return item, true
}

// SameStorage reports whether v and other alias the same elements.
func (v List) SameStorage(other List) bool {
	return v.store != nil && v.store == other.store
}

//-----------------------------------------------------------------------------
// Callables
//-----------------------------------------------------------------------------

// Function is a user-defined function. It is always handled by pointer so
// every binding refers to the same function.
type Function struct {
	Meta
	Name       string
	Params     []string
	Body       ast.Node
	AutoReturn bool
	Closure    *Context
}

func (*Function) Kind() Kind { return KindFunction }
func (f *Function) withMeta(Meta) Value { return f }

// AnonymousName is the display name of a function defined without one.
const AnonymousName = "<anonymous>"

// DisplayName returns Name, or AnonymousName when the function has none.
func (f *Function) DisplayName() string {
	if f.Name == "" {
		return AnonymousName
	}
	return f.Name
}

// Host exposes interpreter services to native functions.
type Host interface {
	Stdout() io.Writer
	Stdin() io.Reader
}

// NativeCall carries the state of one native invocation. Context is the
// fresh frame holding the bound arguments; Start and End span the call.
type NativeCall struct {
	Context *Context
	Start   token.Position
	End     token.Position
	Host    Host
}

// Error builds a runtime diagnostic located at the call.
func (c *NativeCall) Error(kind diagnostics.Kind, details string) *diagnostics.Error {
	return diagnostics.Runtime(kind, details, c.Start, c.End, c.Context.Frame())
}

// Errorf is Error with a formatted message.
func (c *NativeCall) Errorf(kind diagnostics.Kind, format string, args ...any) *diagnostics.Error {
	return c.Error(kind, fmt.Sprintf(format, args...))
}

// NativeFunc implements a built-in. args holds the required arguments
// followed by whichever optional arguments the caller supplied.
type NativeFunc func(call *NativeCall, args []Value) (Value, error)

type BuiltInFunction struct {
	Meta
	Name     string
	Params   []string
	Optional []string
	Impl     NativeFunc
}

func (*BuiltInFunction) Kind() Kind { return KindBuiltInFunction }
func (f *BuiltInFunction) withMeta(Meta) Value { return f }

// NewBuiltIn is a shorthand for a built-in without optional parameters.
func NewBuiltIn(name string, params []string, impl NativeFunc) *BuiltInFunction {
	return &BuiltInFunction{Name: name, Params: params, Impl: impl}
}

//-----------------------------------------------------------------------------
// Host extensions
//-----------------------------------------------------------------------------

// Handle carries an opaque host object such as a database connection.
type Handle struct {
	Meta
	TypeName string
	Value    any
}

func (*Handle) Kind() Kind { return KindHandle }
func (h *Handle) withMeta(Meta) Value { return h }

// Provider is a native variable evaluated on every read.
type Provider struct {
	Meta
	Name string
	Read func() Value
}

func (*Provider) Kind() Kind { return KindProvider }
func (p *Provider) withMeta(Meta) Value { return p }

// Resolve evaluates providers and returns any other value unchanged.
func Resolve(v Value) Value {
	if p, ok := v.(*Provider); ok {
		return p.Read()
	}
	return v
}
