package interpreter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"calc/interpreter-go/pkg/ast"
	"calc/interpreter-go/pkg/runtime"
)

// Interpreter drives evaluation of calc AST nodes. Each interpreter owns its
// environment and function table; nothing is shared between instances.
type Interpreter struct {
	env       *runtime.Environment
	functions map[string]*functionEntry
	out       io.Writer
	logger    zerolog.Logger

	strict       bool
	maxCallDepth int
	callDepth    int
}

type functionEntry struct {
	name   string
	params []string
	body   *ast.Block
}

func functionKey(name string, arity int) string {
	return fmt.Sprintf("%s/%d", name, arity)
}

// New returns an interpreter with empty local and global scopes that writes
// program output to stdout.
func New() *Interpreter {
	return &Interpreter{
		env:       runtime.NewEnvironment(),
		functions: make(map[string]*functionEntry),
		out:       os.Stdout,
		logger:    zerolog.Nop(),
	}
}

// Environment returns the interpreter's scope stacks.
func (i *Interpreter) Environment() *runtime.Environment {
	return i.env
}

// SetOutput redirects program output.
func (i *Interpreter) SetOutput(w io.Writer) {
	i.out = w
}

// SetLogger installs logger on the interpreter and its environment.
func (i *Interpreter) SetLogger(logger zerolog.Logger) {
	i.logger = logger
	i.env.SetLogger(logger)
}

// SetStrict toggles strict mode. Lenient mode evaluates unsupported operators,
// malformed ++/-- targets and unknown functions to 0; strict mode reports them
// as errors.
func (i *Interpreter) SetStrict(strict bool) {
	i.strict = strict
}

// SetMaxCallDepth bounds nested function calls; 0 means unlimited.
func (i *Interpreter) SetMaxCallDepth(depth int) {
	i.maxCallDepth = depth
}

// Functions lists the registered functions as name/arity keys.
func (i *Interpreter) Functions() []string {
	keys := make([]string, 0, len(i.functions))
	for k := range i.functions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EvaluateModule runs the module body as the top-level block.
func (i *Interpreter) EvaluateModule(module *ast.Module) error {
	if module == nil {
		return fmt.Errorf("nil module")
	}
	return i.RunBlock(module.Block())
}

// RunBlock executes the statements of block in order against the shared
// environment.
func (i *Interpreter) RunBlock(block *ast.Block) error {
	return topLevel(i.runBlock(block))
}

// Execute runs a single statement.
func (i *Interpreter) Execute(stmt ast.Statement) error {
	return topLevel(i.evaluateStatement(stmt))
}

// Evaluate computes the value of expr.
func (i *Interpreter) Evaluate(expr ast.Expression) (runtime.Value, error) {
	val, err := i.evaluateExpression(expr)
	if err != nil {
		return 0, topLevel(err)
	}
	return val, nil
}

func topLevel(err error) error {
	var ret returnSignal
	if errors.As(err, &ret) {
		return ErrReturnOutsideFunction
	}
	return err
}

func (i *Interpreter) emit(val runtime.Value) error {
	if _, err := fmt.Fprintln(i.out, runtime.FormatValue(val)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
