package runtime

import (
	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/token"
)

// Context is one frame of execution: the program, a function call or a
// script import. Parent is the frame that was active at entry and EntryPos
// is where that happened; both drive tracebacks.
type Context struct {
	Name     string
	Parent   *Context
	EntryPos token.Position
	Scope    *Scope
}

// NewContext creates a frame. A nil scope gets a fresh one with no parent.
func NewContext(name string, parent *Context, entry token.Position, scope *Scope) *Context {
	if scope == nil {
		scope = NewScope(nil)
	}
	return &Context{Name: name, Parent: parent, EntryPos: entry, Scope: scope}
}

// Frame returns c as a diagnostics frame, or a nil interface for a nil
// context.
func (c *Context) Frame() diagnostics.Frame {
	if c == nil {
		return nil
	}
	return c
}

func (c *Context) FrameName() string { return c.Name }

func (c *Context) CallerFrame() diagnostics.Frame { return c.Parent.Frame() }

func (c *Context) CallSite() token.Position { return c.EntryPos }

// Depth counts the frames from c to the root.
func (c *Context) Depth() int {
	depth := 0
	for frame := c; frame != nil; frame = frame.Parent {
		depth++
	}
	return depth
}
