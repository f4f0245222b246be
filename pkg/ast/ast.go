package ast

type NodeType string

const (
	NodeIdentifier          NodeType = "Identifier"
	NodeNumberLiteral       NodeType = "NumberLiteral"
	NodeUnaryExpression     NodeType = "UnaryExpression"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeFunctionCall        NodeType = "FunctionCall"
	NodeAssignmentStatement NodeType = "AssignmentStatement"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeIfStatement         NodeType = "IfStatement"
	NodeWhileLoop           NodeType = "WhileLoop"
	NodeForLoop             NodeType = "ForLoop"
	NodeFunctionDefinition  NodeType = "FunctionDefinition"
	NodeBlock               NodeType = "Block"
	NodeModule              NodeType = "Module"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

// Expressions

type UnaryOperator string

const (
	UnaryOperatorIncrement UnaryOperator = "++"
	UnaryOperatorDecrement UnaryOperator = "--"
	UnaryOperatorNot       UnaryOperator = "!"
	UnaryOperatorNegate    UnaryOperator = "-"
)

// Valid reports whether op is one of the language's unary operators.
func (op UnaryOperator) Valid() bool {
	switch op {
	case UnaryOperatorIncrement, UnaryOperatorDecrement, UnaryOperatorNot, UnaryOperatorNegate:
		return true
	default:
		return false
	}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(operator UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryOperator string

const (
	BinaryOperatorAdd          BinaryOperator = "+"
	BinaryOperatorSubtract     BinaryOperator = "-"
	BinaryOperatorMultiply     BinaryOperator = "*"
	BinaryOperatorDivide       BinaryOperator = "/"
	BinaryOperatorPower        BinaryOperator = "^"
	BinaryOperatorGreater      BinaryOperator = ">"
	BinaryOperatorLess         BinaryOperator = "<"
	BinaryOperatorGreaterEqual BinaryOperator = ">="
	BinaryOperatorLessEqual    BinaryOperator = "<="
	BinaryOperatorEqual        BinaryOperator = "=="
	BinaryOperatorNotEqual     BinaryOperator = "!="
	BinaryOperatorAnd          BinaryOperator = "&&"
	BinaryOperatorOr           BinaryOperator = "||"
)

// Valid reports whether op is one of the language's binary operators.
func (op BinaryOperator) Valid() bool {
	return op.IsArithmetic() || op.IsRelational() || op.IsLogical()
}

func (op BinaryOperator) IsArithmetic() bool {
	switch op {
	case BinaryOperatorAdd, BinaryOperatorSubtract, BinaryOperatorMultiply, BinaryOperatorDivide, BinaryOperatorPower:
		return true
	default:
		return false
	}
}

func (op BinaryOperator) IsRelational() bool {
	switch op {
	case BinaryOperatorGreater, BinaryOperatorLess, BinaryOperatorGreaterEqual,
		BinaryOperatorLessEqual, BinaryOperatorEqual, BinaryOperatorNotEqual:
		return true
	default:
		return false
	}
}

func (op BinaryOperator) IsLogical() bool {
	return op == BinaryOperatorAnd || op == BinaryOperatorOr
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryExpression(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker

	Callee    *Identifier  `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee *Identifier, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

// Blocks

type Block struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewBlock(body []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Body: body}
}

// Statements

type AssignmentStatement struct {
	nodeImpl
	statementMarker

	Target *Identifier `json:"target"`
	Value  Expression  `json:"value"`
}

func NewAssignmentStatement(target *Identifier, value Expression) *AssignmentStatement {
	return &AssignmentStatement{nodeImpl: newNodeImpl(NodeAssignmentStatement), Target: target, Value: value}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

// ExpressionStatement evaluates its expression and emits the value as one
// line of program output.
type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

// Control flow

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Then      *Block     `json:"then"`
	Else      *Block     `json:"else,omitempty"`
}

func NewIfStatement(condition Expression, then, els *Block) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Then: then, Else: els}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      *Block     `json:"body"`
}

func NewWhileLoop(condition Expression, body *Block) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}

type ForLoop struct {
	nodeImpl
	statementMarker

	Init      Statement  `json:"init"`
	Condition Expression `json:"condition"`
	Update    Statement  `json:"update"`
	Body      *Block     `json:"body"`
}

func NewForLoop(init Statement, condition Expression, update Statement, body *Block) *ForLoop {
	return &ForLoop{nodeImpl: newNodeImpl(NodeForLoop), Init: init, Condition: condition, Update: update, Body: body}
}

// Definitions

type FunctionDefinition struct {
	nodeImpl
	statementMarker

	ID     *Identifier   `json:"id"`
	Params []*Identifier `json:"params"`
	Body   *Block        `json:"body"`
}

func NewFunctionDefinition(id *Identifier, params []*Identifier, body *Block) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), ID: id, Params: params, Body: body}
}

// Module root

type Module struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewModule(body []Statement) *Module {
	return &Module{nodeImpl: newNodeImpl(NodeModule), Body: body}
}

// Block returns the module body as a runnable block.
func (m *Module) Block() *Block {
	return NewBlock(m.Body)
}
