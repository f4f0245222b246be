package driver

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"calc/interpreter-go/pkg/ast"
)

// LoadModule reads a serialized program tree (JSON or YAML) from path.
func LoadModule(path string) (*ast.Module, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("program: open %s: %w", path, err)
	}
	defer file.Close()
	mod, err := DecodeModule(file)
	if err != nil {
		return nil, fmt.Errorf("program: %s: %w", path, err)
	}
	return mod, nil
}

// DecodeModule decodes a program tree whose nodes carry a "type" field naming
// their ast.NodeType. JSON documents are accepted as YAML.
func DecodeModule(r io.Reader) (*ast.Module, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty document")
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	mod, ok := node.(*ast.Module)
	if !ok {
		return nil, fmt.Errorf("root node is %s, want %s", node.NodeType(), ast.NodeModule)
	}
	return mod, nil
}

func decodeNode(node map[string]any) (ast.Node, error) {
	typ, _ := node["type"].(string)
	switch ast.NodeType(typ) {
	case ast.NodeModule:
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, fmt.Errorf("Module.body: %w", err)
		}
		return ast.NewModule(body), nil
	case ast.NodeBlock:
		return decodeBlock(node)
	case ast.NodeIdentifier:
		name, _ := node["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("Identifier missing name")
		}
		return ast.NewIdentifier(name), nil
	case ast.NodeNumberLiteral:
		val, err := decodeNumber(node["value"])
		if err != nil {
			return nil, fmt.Errorf("NumberLiteral.value: %w", err)
		}
		return ast.NewNumberLiteral(val), nil
	case ast.NodeUnaryExpression:
		op, _ := node["operator"].(string)
		operand, err := decodeExpression(node["operand"])
		if err != nil {
			return nil, fmt.Errorf("UnaryExpression.operand: %w", err)
		}
		return ast.NewUnaryExpression(ast.UnaryOperator(op), operand), nil
	case ast.NodeBinaryExpression:
		op, _ := node["operator"].(string)
		left, err := decodeExpression(node["left"])
		if err != nil {
			return nil, fmt.Errorf("BinaryExpression.left: %w", err)
		}
		right, err := decodeExpression(node["right"])
		if err != nil {
			return nil, fmt.Errorf("BinaryExpression.right: %w", err)
		}
		return ast.NewBinaryExpression(ast.BinaryOperator(op), left, right), nil
	case ast.NodeFunctionCall:
		callee, err := decodeIdentifier(node["callee"])
		if err != nil {
			return nil, fmt.Errorf("FunctionCall.callee: %w", err)
		}
		rawArgs, _ := node["arguments"].([]any)
		args := make([]ast.Expression, 0, len(rawArgs))
		for idx, raw := range rawArgs {
			arg, err := decodeExpression(raw)
			if err != nil {
				return nil, fmt.Errorf("FunctionCall.arguments[%d]: %w", idx, err)
			}
			args = append(args, arg)
		}
		return ast.NewFunctionCall(callee, args), nil
	case ast.NodeAssignmentStatement:
		target, err := decodeIdentifier(node["target"])
		if err != nil {
			return nil, fmt.Errorf("AssignmentStatement.target: %w", err)
		}
		value, err := decodeExpression(node["value"])
		if err != nil {
			return nil, fmt.Errorf("AssignmentStatement.value: %w", err)
		}
		return ast.NewAssignmentStatement(target, value), nil
	case ast.NodeReturnStatement:
		if node["argument"] == nil {
			return ast.NewReturnStatement(nil), nil
		}
		arg, err := decodeExpression(node["argument"])
		if err != nil {
			return nil, fmt.Errorf("ReturnStatement.argument: %w", err)
		}
		return ast.NewReturnStatement(arg), nil
	case ast.NodeExpressionStatement:
		expr, err := decodeExpression(node["expression"])
		if err != nil {
			return nil, fmt.Errorf("ExpressionStatement.expression: %w", err)
		}
		return ast.NewExpressionStatement(expr), nil
	case ast.NodeIfStatement:
		cond, err := decodeExpression(node["condition"])
		if err != nil {
			return nil, fmt.Errorf("IfStatement.condition: %w", err)
		}
		then, err := decodeBlockValue(node["then"])
		if err != nil {
			return nil, fmt.Errorf("IfStatement.then: %w", err)
		}
		els, err := decodeBlockValue(node["else"])
		if err != nil {
			return nil, fmt.Errorf("IfStatement.else: %w", err)
		}
		return ast.NewIfStatement(cond, then, els), nil
	case ast.NodeWhileLoop:
		cond, err := decodeExpression(node["condition"])
		if err != nil {
			return nil, fmt.Errorf("WhileLoop.condition: %w", err)
		}
		body, err := decodeBlockValue(node["body"])
		if err != nil {
			return nil, fmt.Errorf("WhileLoop.body: %w", err)
		}
		return ast.NewWhileLoop(cond, body), nil
	case ast.NodeForLoop:
		initStmt, err := decodeOptionalStatement(node["init"])
		if err != nil {
			return nil, fmt.Errorf("ForLoop.init: %w", err)
		}
		cond, err := decodeExpression(node["condition"])
		if err != nil {
			return nil, fmt.Errorf("ForLoop.condition: %w", err)
		}
		update, err := decodeOptionalStatement(node["update"])
		if err != nil {
			return nil, fmt.Errorf("ForLoop.update: %w", err)
		}
		body, err := decodeBlockValue(node["body"])
		if err != nil {
			return nil, fmt.Errorf("ForLoop.body: %w", err)
		}
		return ast.NewForLoop(initStmt, cond, update, body), nil
	case ast.NodeFunctionDefinition:
		id, err := decodeIdentifier(node["id"])
		if err != nil {
			return nil, fmt.Errorf("FunctionDefinition.id: %w", err)
		}
		rawParams, _ := node["params"].([]any)
		params := make([]*ast.Identifier, 0, len(rawParams))
		for idx, raw := range rawParams {
			param, err := decodeIdentifier(raw)
			if err != nil {
				return nil, fmt.Errorf("FunctionDefinition.params[%d]: %w", idx, err)
			}
			params = append(params, param)
		}
		body, err := decodeBlockValue(node["body"])
		if err != nil {
			return nil, fmt.Errorf("FunctionDefinition.body: %w", err)
		}
		return ast.NewFunctionDefinition(id, params, body), nil
	case "":
		return nil, fmt.Errorf("node missing type")
	default:
		return nil, fmt.Errorf("unsupported node type %q", typ)
	}
}

func decodeChild(raw any) (ast.Node, error) {
	child, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected node, got %T", raw)
	}
	return decodeNode(child)
}

func decodeExpression(raw any) (ast.Expression, error) {
	node, err := decodeChild(raw)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(ast.Expression)
	if !ok {
		return nil, fmt.Errorf("%s is not an expression", node.NodeType())
	}
	return expr, nil
}

func decodeStatement(raw any) (ast.Statement, error) {
	node, err := decodeChild(raw)
	if err != nil {
		return nil, err
	}
	stmt, ok := node.(ast.Statement)
	if !ok {
		return nil, fmt.Errorf("%s is not a statement", node.NodeType())
	}
	return stmt, nil
}

func decodeOptionalStatement(raw any) (ast.Statement, error) {
	if raw == nil {
		return nil, nil
	}
	return decodeStatement(raw)
}

func decodeStatements(raw any) ([]ast.Statement, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("expected statement list, got %T", raw)
	}
	stmts := make([]ast.Statement, 0, len(list))
	for idx, item := range list {
		stmt, err := decodeStatement(item)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", idx, err)
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeBlock(node map[string]any) (*ast.Block, error) {
	body, err := decodeStatements(node["body"])
	if err != nil {
		return nil, fmt.Errorf("Block.body: %w", err)
	}
	return ast.NewBlock(body), nil
}

// decodeBlockValue accepts a Block node or a bare statement list; a missing
// value decodes to nil.
func decodeBlockValue(raw any) (*ast.Block, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		body, err := decodeStatements(v)
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(body), nil
	case map[string]any:
		node, err := decodeNode(v)
		if err != nil {
			return nil, err
		}
		block, ok := node.(*ast.Block)
		if !ok {
			return nil, fmt.Errorf("%s is not a block", node.NodeType())
		}
		return block, nil
	default:
		return nil, fmt.Errorf("expected block, got %T", raw)
	}
}

// decodeIdentifier accepts an Identifier node or a plain name.
func decodeIdentifier(raw any) (*ast.Identifier, error) {
	if name, ok := raw.(string); ok {
		if name == "" {
			return nil, fmt.Errorf("empty identifier")
		}
		return ast.NewIdentifier(name), nil
	}
	node, err := decodeChild(raw)
	if err != nil {
		return nil, err
	}
	id, ok := node.(*ast.Identifier)
	if !ok {
		return nil, fmt.Errorf("%s is not an identifier", node.NodeType())
	}
	return id, nil
}

func decodeNumber(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", raw)
	}
}
