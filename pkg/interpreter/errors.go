package interpreter

import (
	"errors"
	"fmt"

	"calc/interpreter-go/pkg/ast"
	"calc/interpreter-go/pkg/runtime"
)

// ErrReturnOutsideFunction is reported when a return statement unwinds past
// the top-level block.
var ErrReturnOutsideFunction = errors.New("return outside function")

// UnsupportedOperatorError is raised in strict mode for operators the
// evaluator does not know.
type UnsupportedOperatorError struct {
	Operator string
	Unary    bool
}

func (e *UnsupportedOperatorError) Error() string {
	if e.Unary {
		return fmt.Sprintf("unsupported unary operator '%s'", e.Operator)
	}
	return fmt.Sprintf("unsupported binary operator '%s'", e.Operator)
}

// InvalidOperandError is raised in strict mode when ++ or -- is applied to
// something other than a variable.
type InvalidOperandError struct {
	Operator ast.UnaryOperator
	Operand  ast.NodeType
}

func (e *InvalidOperandError) Error() string {
	return fmt.Sprintf("operator '%s' requires a variable operand, got %s", e.Operator, e.Operand)
}

// UndefinedFunctionError is raised in strict mode for calls with no matching
// name and arity.
type UndefinedFunctionError struct {
	Name  string
	Arity int
}

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("Undefined function '%s' with %d arguments", e.Name, e.Arity)
}

// CallDepthError is raised when nested calls exceed the configured limit.
type CallDepthError struct {
	Limit int
}

func (e *CallDepthError) Error() string {
	return fmt.Sprintf("call depth limit %d exceeded", e.Limit)
}

type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string {
	return "return"
}
