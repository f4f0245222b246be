package runtime

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrBottomFrame is returned when popping would leave a stack without scopes.
var ErrBottomFrame = errors.New("cannot pop the bottom scope frame")

// Stack is an ordered collection of scopes where only the top one is visible.
type Stack struct {
	frames []Scope
}

// NewStack returns a stack holding a single empty scope.
func NewStack() *Stack {
	return &Stack{frames: []Scope{NewScope()}}
}

// Top returns the current scope.
func (s *Stack) Top() Scope {
	return s.frames[len(s.frames)-1]
}

// ReplaceTop swaps the current scope for scope. Lower frames are untouched.
func (s *Stack) ReplaceTop(scope Scope) {
	s.frames[len(s.frames)-1] = scope
}

// Push enters a new scope.
func (s *Stack) Push(scope Scope) {
	s.frames = append(s.frames, scope)
}

// Pop removes and returns the current scope. The last scope is never popped.
func (s *Stack) Pop() (Scope, error) {
	if len(s.frames) <= 1 {
		return Scope{}, ErrBottomFrame
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top, nil
}

// Depth returns the number of scopes on the stack.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Lookup returns the value bound to name in the top scope of s.
func (s *Stack) Lookup(name string) (Value, bool) {
	return s.Top().Lookup(name)
}

// Environment holds the local and global scope stacks for one program run.
type Environment struct {
	locals  *Stack
	globals *Stack
	logger  zerolog.Logger
}

// NewEnvironment creates an environment with one empty scope on each stack.
func NewEnvironment() *Environment {
	return &Environment{
		locals:  NewStack(),
		globals: NewStack(),
		logger:  zerolog.Nop(),
	}
}

// SetLogger sets the logger used to trace variable placement.
func (e *Environment) SetLogger(logger zerolog.Logger) {
	e.logger = logger
}

func (e *Environment) Locals() *Stack  { return e.locals }
func (e *Environment) Globals() *Stack { return e.globals }

// DefineGlobal binds name in the global scope regardless of local bindings.
func (e *Environment) DefineGlobal(name string, value Value) {
	e.globals.ReplaceTop(e.globals.Top().With(name, value))
	e.logger.Trace().Str("variable", name).Float64("value", float64(value)).Str("scope", "global").Msg("define")
}

// DefineLocal binds name in the current local scope, shadowing any global.
func (e *Environment) DefineLocal(name string, value Value) {
	e.locals.ReplaceTop(e.locals.Top().With(name, value))
	e.logger.Trace().Str("variable", name).Float64("value", float64(value)).Str("scope", "local").Msg("define")
}

// Assign rebinds name where it already lives: the local scope first, then the
// global scope. Names bound in neither become new locals.
func (e *Environment) Assign(name string, value Value) {
	local := e.locals.Top()
	if local.Has(name) {
		e.locals.ReplaceTop(local.With(name, value))
		e.logger.Trace().Str("variable", name).Float64("value", float64(value)).Str("scope", "local").Msg("assign")
		return
	}
	global := e.globals.Top()
	if global.Has(name) {
		e.globals.ReplaceTop(global.With(name, value))
		e.logger.Trace().Str("variable", name).Float64("value", float64(value)).Str("scope", "global").Msg("assign")
		return
	}
	e.locals.ReplaceTop(local.With(name, value))
	e.logger.Trace().Str("variable", name).Float64("value", float64(value)).Str("scope", "local").Bool("new", true).Msg("assign")
}

// Resolve reads name from the local scope, then the global scope. An unbound
// name is created as a local with value 0 and 0 is returned.
func (e *Environment) Resolve(name string) Value {
	if v, ok := e.locals.Lookup(name); ok {
		return v
	}
	if v, ok := e.globals.Lookup(name); ok {
		return v
	}
	e.logger.Debug().Str("variable", name).Msg("autovivify")
	e.Assign(name, False)
	return False
}

// PushFrame enters a fresh local scope.
func (e *Environment) PushFrame() {
	e.locals.Push(NewScope())
}

// PopFrame discards the current local scope.
func (e *Environment) PopFrame() error {
	_, err := e.locals.Pop()
	return err
}
