package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

// Expression helpers.

func Un(operator UnaryOperator, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func Inc(name string) *UnaryExpression {
	return Un(UnaryOperatorIncrement, ID(name))
}

func Dec(name string) *UnaryExpression {
	return Un(UnaryOperatorDecrement, ID(name))
}

func Bin(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Call(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(ID(name), args)
}

// Statement helpers.

// Seq builds a block from statements.
func Seq(statements ...Statement) *Block {
	return NewBlock(statements)
}

func Assign(name string, value Expression) *AssignmentStatement {
	return NewAssignmentStatement(ID(name), value)
}

func Out(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Ret(expr Expression) *ReturnStatement {
	return NewReturnStatement(expr)
}

func If(condition Expression, then, els *Block) *IfStatement {
	return NewIfStatement(condition, then, els)
}

func While(condition Expression, body *Block) *WhileLoop {
	return NewWhileLoop(condition, body)
}

func For(init Statement, condition Expression, update Statement, body *Block) *ForLoop {
	return NewForLoop(init, condition, update, body)
}

func Fn(name string, params []string, body *Block) *FunctionDefinition {
	ids := make([]*Identifier, 0, len(params))
	for _, p := range params {
		ids = append(ids, ID(p))
	}
	return NewFunctionDefinition(ID(name), ids, body)
}

func Mod(statements ...Statement) *Module {
	return NewModule(statements)
}
