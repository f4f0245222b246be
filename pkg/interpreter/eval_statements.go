package interpreter

import (
	"fmt"

	"calc/interpreter-go/pkg/ast"
)

func (i *Interpreter) evaluateStatement(node ast.Statement) error {
	if node == nil {
		return fmt.Errorf("missing statement")
	}
	switch n := node.(type) {
	case *ast.AssignmentStatement:
		return i.evaluateAssignment(n)
	case *ast.ExpressionStatement:
		val, err := i.evaluateExpression(n.Expression)
		if err != nil {
			return err
		}
		return i.emit(val)
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n)
	case *ast.IfStatement:
		return i.evaluateIfStatement(n)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n)
	case *ast.ForLoop:
		return i.evaluateForLoop(n)
	case *ast.FunctionDefinition:
		return i.evaluateFunctionDefinition(n)
	default:
		return fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

// runBlock shares the enclosing frame; blocks do not open a scope.
func (i *Interpreter) runBlock(block *ast.Block) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Body {
		if err := i.evaluateStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluateAssignment(assign *ast.AssignmentStatement) error {
	if assign.Target == nil {
		return fmt.Errorf("assignment missing target")
	}
	val, err := i.evaluateExpression(assign.Value)
	if err != nil {
		return err
	}
	i.env.Assign(assign.Target.Name, val)
	return nil
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement) error {
	var result returnSignal
	if stmt.Argument != nil {
		val, err := i.evaluateExpression(stmt.Argument)
		if err != nil {
			return err
		}
		result.value = val
	}
	return result
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement) error {
	cond, err := i.evaluateExpression(stmt.Condition)
	if err != nil {
		return err
	}
	if cond > 0 {
		return i.runBlock(stmt.Then)
	}
	return i.runBlock(stmt.Else)
}

// Loops continue only while the condition is exactly 1.

func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop) error {
	for {
		cond, err := i.evaluateExpression(loop.Condition)
		if err != nil {
			return err
		}
		if cond != 1 {
			return nil
		}
		if err := i.runBlock(loop.Body); err != nil {
			return err
		}
	}
}

func (i *Interpreter) evaluateForLoop(loop *ast.ForLoop) error {
	if err := i.evaluateClause(loop.Init); err != nil {
		return err
	}
	for {
		cond, err := i.evaluateExpression(loop.Condition)
		if err != nil {
			return err
		}
		if cond != 1 {
			return nil
		}
		if err := i.runBlock(loop.Body); err != nil {
			return err
		}
		if err := i.evaluateClause(loop.Update); err != nil {
			return err
		}
	}
}

// evaluateClause runs a for-loop init or update clause. Bare expressions are
// evaluated for their side effects only and print nothing.
func (i *Interpreter) evaluateClause(stmt ast.Statement) error {
	switch n := stmt.(type) {
	case nil:
		return nil
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expression)
		return err
	default:
		return i.evaluateStatement(n)
	}
}

func (i *Interpreter) evaluateFunctionDefinition(def *ast.FunctionDefinition) error {
	if def.ID == nil {
		return fmt.Errorf("function definition missing name")
	}
	params := make([]string, 0, len(def.Params))
	for idx, param := range def.Params {
		if param == nil {
			return fmt.Errorf("function parameter %d is nil", idx)
		}
		params = append(params, param.Name)
	}
	key := functionKey(def.ID.Name, len(params))
	i.functions[key] = &functionEntry{name: def.ID.Name, params: params, body: def.Body}
	i.logger.Debug().Str("function", key).Msg("define")
	return nil
}
