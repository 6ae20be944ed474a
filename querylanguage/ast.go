package querylanguage

// Node is a node of a parsed condition.
type Node interface {
	node()
}

type (
	// ConditionalExpression is a disjunction of terms.
	ConditionalExpression struct {
		Terms []Node
	}

	// ConditionalTerm is a conjunction of factors.
	ConditionalTerm struct {
		Factors []Node
	}

	// ConditionalFactor is an optionally negated condition.
	ConditionalFactor struct {
		Not     bool
		Primary Node
	}

	// ParenthesizedExpression is an expression in parentheses.
	ParenthesizedExpression struct {
		Expr Node
	}

	// ComparisonExpression compares two arithmetic expressions.
	ComparisonExpression struct {
		Left     Node
		Operator string
		Right    Node
	}

	// LikeExpression is a LIKE pattern match.
	LikeExpression struct {
		Not     bool
		Subject Node
		Pattern Node
		Escape  Node // optional
	}

	// NullComparisonExpression is an IS [NOT] NULL check.
	NullComparisonExpression struct {
		Not     bool
		Subject Node
	}

	// BetweenExpression is a [NOT] BETWEEN check.
	BetweenExpression struct {
		Not     bool
		Subject Node
		Lower   Node
		Upper   Node
	}

	// InExpression is a [NOT] IN check against a value list.
	InExpression struct {
		Not     bool
		Subject Node
		Values  []Node
	}

	// ArithmeticExpression is a chain of operands joined by +, -, * or /.
	ArithmeticExpression struct {
		Operands  []Node
		Operators []string
	}

	// UnaryExpression is a signed operand.
	UnaryExpression struct {
		Sign    string
		Operand Node
	}

	// PathExpression references a property of an aliased entity.
	PathExpression struct {
		Alias    string
		Property string
		Offset   int
	}

	// Literal is a string, number, boolean or null literal.
	Literal struct {
		Kind  LiteralKind
		Value string
	}

	// InputParameter is a positional (?1) or named (:name) parameter.
	InputParameter struct {
		Name string
	}

	// FunctionCall is a call of a built-in function.
	FunctionCall struct {
		Name string
		Args []Node
	}

	// CustomFunction is a call of a registered function.
	CustomFunction struct {
		Name     string
		Function FunctionNode
	}
)

// LiteralKind is the kind of a Literal.
type LiteralKind int

// Literal kinds.
const (
	StringLiteral LiteralKind = iota
	NumericLiteral
	BooleanLiteral
	NullLiteral
)

func (*ConditionalExpression) node()    {}
func (*ConditionalTerm) node()          {}
func (*ConditionalFactor) node()        {}
func (*ParenthesizedExpression) node()  {}
func (*ComparisonExpression) node()     {}
func (*LikeExpression) node()           {}
func (*NullComparisonExpression) node() {}
func (*BetweenExpression) node()        {}
func (*InExpression) node()             {}
func (*ArithmeticExpression) node()     {}
func (*UnaryExpression) node()          {}
func (*PathExpression) node()           {}
func (*Literal) node()                  {}
func (*InputParameter) node()           {}
func (*FunctionCall) node()             {}
func (*CustomFunction) node()           {}
