package interpreter

import (
	"fmt"
	"math"

	"calc/interpreter-go/pkg/ast"
	"calc/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression) (runtime.Value, error) {
	if node == nil {
		return 0, fmt.Errorf("missing expression")
	}
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.Value(n.Value), nil
	case *ast.Identifier:
		return i.env.Resolve(n.Name), nil
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n)
	default:
		return 0, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression) (runtime.Value, error) {
	switch expr.Operator {
	case ast.UnaryOperatorIncrement:
		return i.step(expr, 1)
	case ast.UnaryOperatorDecrement:
		return i.step(expr, -1)
	case ast.UnaryOperatorNot:
		operand, err := i.evaluateExpression(expr.Operand)
		if err != nil {
			return 0, err
		}
		return runtime.Bool(operand == 0), nil
	case ast.UnaryOperatorNegate:
		operand, err := i.evaluateExpression(expr.Operand)
		if err != nil {
			return 0, err
		}
		return operand * -1, nil
	default:
		if i.strict {
			return 0, &UnsupportedOperatorError{Operator: string(expr.Operator), Unary: true}
		}
		i.logger.Debug().Str("operator", string(expr.Operator)).Msg("unsupported unary operator evaluates to 0")
		return 0, nil
	}
}

// step applies a pre-increment or pre-decrement and yields the updated value.
func (i *Interpreter) step(expr *ast.UnaryExpression, delta runtime.Value) (runtime.Value, error) {
	target, ok := expr.Operand.(*ast.Identifier)
	if !ok {
		if i.strict {
			operand := ast.NodeType("nil")
			if expr.Operand != nil {
				operand = expr.Operand.NodeType()
			}
			return 0, &InvalidOperandError{Operator: expr.Operator, Operand: operand}
		}
		return 0, nil
	}
	next := i.env.Resolve(target.Name) + delta
	i.env.Assign(target.Name, next)
	return next, nil
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression) (runtime.Value, error) {
	leftVal, err := i.evaluateExpression(expr.Left)
	if err != nil {
		return 0, err
	}
	rightVal, err := i.evaluateExpression(expr.Right)
	if err != nil {
		return 0, err
	}
	result, ok := applyBinaryOperator(expr.Operator, leftVal, rightVal)
	if !ok {
		if i.strict {
			return 0, &UnsupportedOperatorError{Operator: string(expr.Operator)}
		}
		i.logger.Debug().Str("operator", string(expr.Operator)).Msg("unsupported binary operator evaluates to 0")
		return 0, nil
	}
	return result, nil
}

// applyBinaryOperator reports false for operators outside the language.
func applyBinaryOperator(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, bool) {
	switch op {
	case ast.BinaryOperatorAdd:
		return left + right, true
	case ast.BinaryOperatorSubtract:
		return left - right, true
	case ast.BinaryOperatorMultiply:
		return left * right, true
	case ast.BinaryOperatorDivide:
		return left / right, true
	case ast.BinaryOperatorPower:
		return runtime.Value(math.Pow(float64(left), float64(right))), true
	case ast.BinaryOperatorGreater, ast.BinaryOperatorLess, ast.BinaryOperatorGreaterEqual,
		ast.BinaryOperatorLessEqual, ast.BinaryOperatorEqual, ast.BinaryOperatorNotEqual:
		return runtime.Bool(comparisonOp(op, left-right)), true
	case ast.BinaryOperatorAnd:
		return runtime.Bool(left.Truthy() && right.Truthy()), true
	case ast.BinaryOperatorOr:
		return runtime.Bool(left.Truthy() || right.Truthy()), true
	default:
		return 0, false
	}
}

// comparisonOp compares the difference of the operands against zero.
func comparisonOp(op ast.BinaryOperator, diff runtime.Value) bool {
	switch op {
	case ast.BinaryOperatorLess:
		return diff < 0
	case ast.BinaryOperatorLessEqual:
		return diff <= 0
	case ast.BinaryOperatorGreater:
		return diff > 0
	case ast.BinaryOperatorGreaterEqual:
		return diff >= 0
	case ast.BinaryOperatorEqual:
		return diff == 0
	case ast.BinaryOperatorNotEqual:
		return diff != 0
	default:
		return false
	}
}

func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall) (runtime.Value, error) {
	if call.Callee == nil {
		return 0, fmt.Errorf("function call missing callee")
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		val, err := i.evaluateExpression(argExpr)
		if err != nil {
			return 0, err
		}
		args = append(args, val)
	}
	fn, ok := i.functions[functionKey(call.Callee.Name, len(args))]
	if !ok {
		if i.strict {
			return 0, &UndefinedFunctionError{Name: call.Callee.Name, Arity: len(args)}
		}
		i.logger.Debug().Str("function", call.Callee.Name).Int("arity", len(args)).Msg("undefined function evaluates to 0")
		return 0, nil
	}
	return i.invokeFunction(fn, args)
}

func (i *Interpreter) invokeFunction(fn *functionEntry, args []runtime.Value) (runtime.Value, error) {
	if i.maxCallDepth > 0 && i.callDepth >= i.maxCallDepth {
		return 0, &CallDepthError{Limit: i.maxCallDepth}
	}
	i.callDepth++
	i.env.PushFrame()
	defer func() {
		i.callDepth--
		// The frame pushed above is always above the bottom one.
		_ = i.env.PopFrame()
	}()

	for idx, param := range fn.params {
		i.env.DefineLocal(param, args[idx])
	}
	i.logger.Trace().Str("function", fn.name).Int("depth", i.callDepth).Msg("call")
	err := i.runBlock(fn.body)
	if err != nil {
		if ret, ok := err.(returnSignal); ok {
			return ret.value, nil
		}
		return 0, err
	}
	return 0, nil
}
