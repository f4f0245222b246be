package driver

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"calc/interpreter-go/pkg/ast"
)

// treeJSON renders a tree through its json tags so that trees built by the
// decoder and by the ast helpers compare structurally.
func treeJSON(t *testing.T, node ast.Node) string {
	t.Helper()
	data, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		t.Fatalf("marshal %s: %v", node.NodeType(), err)
	}
	return string(data)
}

func TestDecodeModuleJSON(t *testing.T) {
	doc := `{
  "type": "Module",
  "body": [
    {"type": "AssignmentStatement", "target": {"type": "Identifier", "name": "v"}, "value": {"type": "NumberLiteral", "value": 4.0}},
    {"type": "ExpressionStatement", "expression": {"type": "UnaryExpression", "operator": "++", "operand": {"type": "Identifier", "name": "v"}}},
    {"type": "IfStatement",
     "condition": {"type": "BinaryExpression", "operator": "<", "left": {"type": "Identifier", "name": "v"}, "right": {"type": "NumberLiteral", "value": 10}},
     "then": {"type": "Block", "body": [{"type": "ReturnStatement"}]}}
  ]
}`
	mod, err := DecodeModule(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeModule: %v", err)
	}
	want := ast.Mod(
		ast.Assign("v", ast.Num(4)),
		ast.Out(ast.Inc("v")),
		ast.If(ast.Bin(ast.BinaryOperatorLess, ast.ID("v"), ast.Num(10)), ast.Seq(ast.Ret(nil)), nil),
	)
	if diff := cmp.Diff(treeJSON(t, want), treeJSON(t, mod)); diff != "" {
		t.Fatalf("module mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeModuleYAMLShorthand(t *testing.T) {
	doc := `
type: Module
body:
  - type: FunctionDefinition
    id: square
    params: [x]
    body:
      - type: ReturnStatement
        argument:
          type: BinaryExpression
          operator: "*"
          left: {type: Identifier, name: x}
          right: {type: Identifier, name: x}
  - type: ForLoop
    init: {type: AssignmentStatement, target: i, value: {type: NumberLiteral, value: 0}}
    condition: {type: BinaryExpression, operator: "<", left: {type: Identifier, name: i}, right: {type: NumberLiteral, value: 3}}
    update: {type: ExpressionStatement, expression: {type: UnaryExpression, operator: "++", operand: {type: Identifier, name: i}}}
    body:
      - type: ExpressionStatement
        expression: {type: FunctionCall, callee: square, arguments: [{type: Identifier, name: i}]}
`
	mod, err := DecodeModule(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeModule: %v", err)
	}
	want := ast.Mod(
		ast.Fn("square", []string{"x"}, ast.Seq(
			ast.Ret(ast.Bin(ast.BinaryOperatorMultiply, ast.ID("x"), ast.ID("x"))),
		)),
		ast.For(
			ast.Assign("i", ast.Num(0)),
			ast.Bin(ast.BinaryOperatorLess, ast.ID("i"), ast.Num(3)),
			ast.Out(ast.Inc("i")),
			ast.Seq(ast.Out(ast.Call("square", ast.ID("i")))),
		),
	)
	if diff := cmp.Diff(treeJSON(t, want), treeJSON(t, mod)); diff != "" {
		t.Fatalf("module mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeModuleErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		msg  string
	}{
		{"Empty", "", "empty document"},
		{"NotModule", `{"type": "Identifier", "name": "x"}`, "root node is Identifier"},
		{"MissingType", `{"type": "Module", "body": [{"name": "x"}]}`, "node missing type"},
		{"UnknownType", `{"type": "Module", "body": [{"type": "Lambda"}]}`, `unsupported node type "Lambda"`},
		{"ExpressionAsStatement", `{"type": "Module", "body": [{"type": "NumberLiteral", "value": 1}]}`, "NumberLiteral is not a statement"},
		{"BadNumber", `{"type": "Module", "body": [{"type": "ExpressionStatement", "expression": {"type": "NumberLiteral", "value": "one"}}]}`, "expected number"},
	}
	for _, tc := range cases {
		_, err := DecodeModule(strings.NewReader(tc.doc))
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.msg) {
			t.Fatalf("%s: expected error containing %q, got %q", tc.name, tc.msg, err.Error())
		}
	}
}

func TestLoadModuleFromFixture(t *testing.T) {
	path := filepath.Join("..", "..", "fixtures", "ast", "scenario_a", "module.json")
	mod, err := LoadModule(path)
	if err != nil {
		t.Fatalf("LoadModule: %v", err)
	}
	if len(mod.Body) != 7 {
		t.Fatalf("expected 7 statements, got %d", len(mod.Body))
	}
}

func TestLoadModuleMissingFile(t *testing.T) {
	_, err := LoadModule(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil || !strings.Contains(err.Error(), "program: open") {
		t.Fatalf("expected open error, got %v", err)
	}
}
