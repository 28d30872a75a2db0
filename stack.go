// Package dynamic implements dynamically scoped bindings: named mutable
// values visible to all code executed within a scope and everything it
// transitively calls, without being passed as parameters.  Visibility
// follows the run-time call stack rather than source nesting: a binding
// established by an enclosing scope is found from arbitrary call depth,
// is restored automatically when that scope exits, and is gone once
// control returns past the scope that introduced it.
//
// The Stack is the resolver.  Stack.Enter pushes one frame per listed
// binding and returns a Scope handle whose Exit pops exactly those
// frames; Stack.Run wraps the pair so Exit runs on every path out of
// the body, panics included.  Resolution scans the frames innermost
// first, so nested scopes shadow outer ones name by name.
//
// A Stack assumes one sequential flow of control and carries no lock.
// Code running on multiple goroutines must give each goroutine its own
// Stack; nothing is shared between instances.
package dynamic

import (
	"fmt"

	"github.com/segmentio/ksuid"
)

// Stack is the frame stack for one logical thread of control: the
// ordered set of active frames, most recently introduced last.
type Stack struct {
	frames []*Frame
}

func NewStack() *Stack {
	return &Stack{}
}

// Depth returns the number of active frames.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Active returns the active frames ordered innermost first.  The slice
// is a copy; the frames are live.
func (s *Stack) Active() []*Frame {
	out := make([]*Frame, 0, len(s.frames))
	for i := len(s.frames) - 1; i >= 0; i-- {
		out = append(out, s.frames[i])
	}
	return out
}

// lookup returns the innermost active frame bound to name, or nil.
func (s *Stack) lookup(name string) *Frame {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].name == name {
			return s.frames[i]
		}
	}
	return nil
}

// Resolve returns the value of the innermost active frame bound to
// name.  The second return is false when no frame matches; that case
// is not an error at this layer.
func (s *Stack) Resolve(name string) (interface{}, bool) {
	if f := s.lookup(name); f != nil {
		return f.value, true
	}
	return nil, false
}

// Rebind writes v to the innermost active frame bound to name and
// returns (v, true, nil).  When no frame matches it performs no
// mutation and returns (v, false, nil); an out-of-scope write is
// defined as a no-op, not an error.  A write rejected by the frame's
// declared type returns a *TypeMismatchError and mutates nothing.
func (s *Stack) Rebind(name string, v interface{}) (interface{}, bool, error) {
	f := s.lookup(name)
	if f == nil {
		return v, false, nil
	}
	if _, err := f.Write(v); err != nil {
		return nil, true, err
	}
	return v, true, nil
}

// Get returns the value of the innermost active frame bound to name,
// or a *NotInScopeError if there is none.
func (s *Stack) Get(name string) (interface{}, error) {
	if v, ok := s.Resolve(name); ok {
		return v, nil
	}
	return nil, &NotInScopeError{Name: name}
}

// GetDefault is Get with a fallback: when no frame matches, def is
// evaluated and its result returned.  def runs only on the not-found
// path.
func (s *Stack) GetDefault(name string, def func() interface{}) interface{} {
	if v, ok := s.Resolve(name); ok {
		return v
	}
	return def()
}

// Set writes v to the innermost active frame bound to name and returns
// the value written.  When no frame matches, Set still returns v and
// changes nothing.
func (s *Stack) Set(name string, v interface{}) (interface{}, error) {
	v, _, err := s.Rebind(name, v)
	return v, err
}

// A Scope is the handle returned by Enter, capturing exactly the frames
// that call pushed.  Exit retires them; it is safe to call Exit more
// than once, so the handle can be released both explicitly and by a
// defer.
type Scope struct {
	id     ksuid.KSUID
	stack  *Stack
	base   int
	frames []*Frame
	done   bool
}

// ID returns the scope's unique identity, useful in diagnostics.
func (s *Scope) ID() ksuid.KSUID {
	return s.id
}

// Enter evaluates each binding's initializer in listed order, creates
// one frame per binding, and pushes the frames onto the stack in that
// order, so later listings shadow earlier ones.  No binding in the
// group sees its siblings: every initializer resolves against the
// frames that were active before this call, because nothing is pushed
// until the whole group has been evaluated and validated.  If any
// initializer fails or an initial value is rejected by its declared
// type, the error returns with the stack exactly as it was; no partial
// frame from the group is left active.
//
// An empty binding list is valid and yields a scope that retires
// nothing.
func (s *Stack) Enter(bindings []Binding) (*Scope, error) {
	frames := make([]*Frame, 0, len(bindings))
	for _, b := range bindings {
		v, err := b.eval()
		if err != nil {
			return nil, err
		}
		f, err := NewFrame(b.Name, b.Type, v)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	scope := &Scope{
		id:     ksuid.New(),
		stack:  s,
		base:   len(s.frames),
		frames: frames,
	}
	s.frames = append(s.frames, frames...)
	return scope, nil
}

// Exit retires, in reverse order of introduction, exactly the frames
// this scope's Enter pushed.  Scopes must exit innermost first; an
// out-of-order Exit means the program broke the stack discipline and
// panics.  Exit of an already-exited scope is a no-op.
func (s *Scope) Exit() {
	if s.done {
		return
	}
	stack := s.stack
	if len(stack.frames) < s.base+len(s.frames) {
		panic(fmt.Sprintf("dynamic: scope %s exited out of order", s.id))
	}
	for i, f := range stack.frames[s.base : s.base+len(s.frames)] {
		if f != s.frames[i] {
			panic(fmt.Sprintf("dynamic: scope %s exited out of order", s.id))
		}
	}
	if len(stack.frames) > s.base+len(s.frames) {
		panic(fmt.Sprintf("dynamic: scope %s exited with inner scope still active", s.id))
	}
	stack.frames = stack.frames[:s.base]
	s.frames = nil
	s.done = true
}

// Run enters a scope around body and guarantees the scope exits on
// every path out: normal return, error return, or panic.  This is the
// structured form of Enter/Exit and the one most callers want.
func (s *Stack) Run(bindings []Binding, body func() error) error {
	scope, err := s.Enter(bindings)
	if err != nil {
		return err
	}
	defer scope.Exit()
	return body()
}
