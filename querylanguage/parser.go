package querylanguage

import (
	"fmt"
	"strings"
)

// Parser is a recursive descent parser for conditional expressions.
//
// Custom functions receive the parser in their Parse method with the
// function name as the current token, and consume their own arguments:
//
//	func (f *MyFunc) Parse(p *querylanguage.Parser) (err error) {
//		if _, err = p.Match(querylanguage.TokenIdentifier); err != nil {
//			return err
//		}
//		if _, err = p.Match(querylanguage.TokenOpenParenthesis); err != nil {
//			return err
//		}
//		if f.arg, err = p.StringPrimary(); err != nil {
//			return err
//		}
//		_, err = p.Match(querylanguage.TokenCloseParenthesis)
//		return err
//	}
type Parser struct {
	tokens []Token
	pos    int
	config *Configuration
}

// NewParser tokenizes the query and returns a Parser for it. A nil
// configuration knows no custom functions.
func NewParser(query string, config *Configuration) (*Parser, error) {
	tokens, err := Tokenize(query)
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = NewConfiguration()
	}
	return &Parser{tokens: tokens, config: config}, nil
}

// Parse parses a complete conditional expression.
func Parse(query string, config *Configuration) (Node, error) {
	p, err := NewParser(query, config)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// Parse parses the tokens as one conditional expression followed by the end
// of input.
func (p *Parser) Parse() (Node, error) {
	n, err := p.ConditionalExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.Match(TokenEOF); err != nil {
		return nil, err
	}
	return n, nil
}

// Lookahead returns the current token without consuming it.
func (p *Parser) Lookahead() Token {
	return p.Peek(0)
}

// Peek returns the token n positions after the current one.
func (p *Parser) Peek(n int) Token {
	if i := p.pos + n; i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.tokens[len(p.tokens)-1]
}

// Match consumes the current token if it has the given type.
func (p *Parser) Match(t TokenType) (Token, error) {
	tok := p.Lookahead()
	if tok.Type != t {
		return tok, p.syntaxError(t.String())
	}
	p.pos++
	return tok, nil
}

func (p *Parser) next() Token {
	tok := p.Lookahead()
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) syntaxError(expected string) error {
	tok := p.Lookahead()
	got := fmt.Sprintf("%q", tok.Value)
	switch tok.Type {
	case TokenEOF:
		got = "end of input"
	case TokenString:
		got = "'" + tok.Value + "'"
	}
	return &SyntaxError{Offset: tok.Offset, Msg: fmt.Sprintf("expected %s, got %s", expected, got)}
}

// ConditionalExpression parses terms joined by OR.
func (p *Parser) ConditionalExpression() (Node, error) {
	term, err := p.conditionalTerm()
	if err != nil {
		return nil, err
	}
	terms := []Node{term}
	for p.Lookahead().Type == TokenOr {
		p.next()
		if term, err = p.conditionalTerm(); err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return &ConditionalExpression{Terms: terms}, nil
}

func (p *Parser) conditionalTerm() (Node, error) {
	factor, err := p.conditionalFactor()
	if err != nil {
		return nil, err
	}
	factors := []Node{factor}
	for p.Lookahead().Type == TokenAnd {
		p.next()
		if factor, err = p.conditionalFactor(); err != nil {
			return nil, err
		}
		factors = append(factors, factor)
	}
	if len(factors) == 1 {
		return factors[0], nil
	}
	return &ConditionalTerm{Factors: factors}, nil
}

func (p *Parser) conditionalFactor() (Node, error) {
	not := false
	if p.Lookahead().Type == TokenNot {
		p.next()
		not = true
	}
	primary, err := p.conditionalPrimary()
	if err != nil {
		return nil, err
	}
	if !not {
		return primary, nil
	}
	return &ConditionalFactor{Not: true, Primary: primary}, nil
}

func (p *Parser) conditionalPrimary() (Node, error) {
	if p.Lookahead().Type == TokenOpenParenthesis {
		start := p.pos
		p.next()
		if expr, err := p.ConditionalExpression(); err == nil {
			if _, err := p.Match(TokenCloseParenthesis); err == nil && !continuesSimpleCondition(p.Lookahead().Type) {
				return &ParenthesizedExpression{Expr: expr}, nil
			}
		}
		// A parenthesized arithmetic expression, e.g. "(a.x + 1) > 2".
		p.pos = start
	}
	return p.simpleConditional()
}

func continuesSimpleCondition(t TokenType) bool {
	switch t {
	case TokenComparison, TokenLike, TokenNot, TokenIs, TokenIn, TokenBetween,
		TokenPlus, TokenMinus, TokenMultiply, TokenDivide:
		return true
	}
	return false
}

func (p *Parser) simpleConditional() (Node, error) {
	subject, err := p.SimpleArithmeticExpression()
	if err != nil {
		return nil, err
	}
	not := false
	if p.Lookahead().Type == TokenNot {
		p.next()
		not = true
	}
	switch tok := p.Lookahead(); tok.Type {
	case TokenComparison:
		if not {
			return nil, p.syntaxError("LIKE, IN or BETWEEN")
		}
		p.next()
		right, err := p.SimpleArithmeticExpression()
		if err != nil {
			return nil, err
		}
		return &ComparisonExpression{Left: subject, Operator: tok.Value, Right: right}, nil
	case TokenLike:
		p.next()
		pattern, err := p.StringPrimary()
		if err != nil {
			return nil, err
		}
		expr := &LikeExpression{Not: not, Subject: subject, Pattern: pattern}
		if p.Lookahead().Type == TokenEscape {
			p.next()
			if expr.Escape, err = p.StringPrimary(); err != nil {
				return nil, err
			}
		}
		return expr, nil
	case TokenIs:
		if not {
			return nil, p.syntaxError("LIKE, IN or BETWEEN")
		}
		p.next()
		expr := &NullComparisonExpression{Subject: subject}
		if p.Lookahead().Type == TokenNot {
			p.next()
			expr.Not = true
		}
		if _, err := p.Match(TokenNull); err != nil {
			return nil, err
		}
		return expr, nil
	case TokenBetween:
		p.next()
		lower, err := p.SimpleArithmeticExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.Match(TokenAnd); err != nil {
			return nil, err
		}
		upper, err := p.SimpleArithmeticExpression()
		if err != nil {
			return nil, err
		}
		return &BetweenExpression{Not: not, Subject: subject, Lower: lower, Upper: upper}, nil
	case TokenIn:
		p.next()
		values, err := p.argumentList()
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			return nil, &SyntaxError{Offset: tok.Offset, Msg: "IN requires at least one value"}
		}
		return &InExpression{Not: not, Subject: subject, Values: values}, nil
	default:
		return nil, p.syntaxError("comparison operator")
	}
}

// SimpleArithmeticExpression parses terms joined by + and -.
func (p *Parser) SimpleArithmeticExpression() (Node, error) {
	return p.arithmetic(p.arithmeticTerm, TokenPlus, TokenMinus)
}

func (p *Parser) arithmeticTerm() (Node, error) {
	return p.arithmetic(p.arithmeticFactor, TokenMultiply, TokenDivide)
}

func (p *Parser) arithmetic(operand func() (Node, error), ops ...TokenType) (Node, error) {
	first, err := operand()
	if err != nil {
		return nil, err
	}
	expr := &ArithmeticExpression{Operands: []Node{first}}
	for isOneOf(p.Lookahead().Type, ops) {
		expr.Operators = append(expr.Operators, p.next().Value)
		n, err := operand()
		if err != nil {
			return nil, err
		}
		expr.Operands = append(expr.Operands, n)
	}
	if len(expr.Operators) == 0 {
		return first, nil
	}
	return expr, nil
}

func (p *Parser) arithmeticFactor() (Node, error) {
	if t := p.Lookahead().Type; t == TokenPlus || t == TokenMinus {
		sign := p.next().Value
		operand, err := p.ArithmeticPrimary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpression{Sign: sign, Operand: operand}, nil
	}
	return p.ArithmeticPrimary()
}

// ArithmeticPrimary parses a path, literal, parameter, function call or a
// parenthesized arithmetic expression.
func (p *Parser) ArithmeticPrimary() (Node, error) {
	switch tok := p.Lookahead(); tok.Type {
	case TokenOpenParenthesis:
		p.next()
		expr, err := p.SimpleArithmeticExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.Match(TokenCloseParenthesis); err != nil {
			return nil, err
		}
		return &ParenthesizedExpression{Expr: expr}, nil
	case TokenNumber:
		p.next()
		return &Literal{Kind: NumericLiteral, Value: tok.Value}, nil
	case TokenTrue, TokenFalse:
		p.next()
		return &Literal{Kind: BooleanLiteral, Value: strings.ToUpper(tok.Value)}, nil
	case TokenNull:
		p.next()
		return &Literal{Kind: NullLiteral, Value: "NULL"}, nil
	}
	return p.StringPrimary()
}

// StringPrimary parses a path, string literal, parameter or function call.
func (p *Parser) StringPrimary() (Node, error) {
	switch tok := p.Lookahead(); tok.Type {
	case TokenString:
		p.next()
		return &Literal{Kind: StringLiteral, Value: tok.Value}, nil
	case TokenParameter:
		p.next()
		return &InputParameter{Name: tok.Value}, nil
	case TokenIdentifier:
		switch p.Peek(1).Type {
		case TokenOpenParenthesis:
			return p.functionDeclaration()
		case TokenDot:
			return p.pathExpression()
		}
	}
	return nil, p.syntaxError("path expression, string or function")
}

func (p *Parser) pathExpression() (Node, error) {
	alias, err := p.Match(TokenIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.Match(TokenDot); err != nil {
		return nil, err
	}
	// Keywords are valid property names after the dot.
	prop := p.Lookahead()
	if prop.Type != TokenIdentifier && prop.Type < TokenAnd {
		return nil, p.syntaxError("property name")
	}
	p.next()
	return &PathExpression{Alias: alias.Value, Property: prop.Value, Offset: alias.Offset}, nil
}

func (p *Parser) functionDeclaration() (Node, error) {
	tok := p.Lookahead()
	name := strings.ToUpper(tok.Value)
	if factory, ok := p.config.CustomStringFunction(name); ok {
		fn := factory(name)
		if err := fn.Parse(p); err != nil {
			return nil, err
		}
		return &CustomFunction{Name: name, Function: fn}, nil
	}
	if !IsBuiltinFunction(name) {
		return nil, fmt.Errorf("%w %q at offset %d", ErrUnknownFunction, tok.Value, tok.Offset)
	}
	p.next()
	args, err := p.argumentList()
	if err != nil {
		return nil, err
	}
	return &FunctionCall{Name: name, Args: args}, nil
}

// argumentList parses "(" [expr {"," expr}] ")".
func (p *Parser) argumentList() ([]Node, error) {
	if _, err := p.Match(TokenOpenParenthesis); err != nil {
		return nil, err
	}
	var args []Node
	if p.Lookahead().Type != TokenCloseParenthesis {
		for {
			arg, err := p.SimpleArithmeticExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.Lookahead().Type != TokenComma {
				break
			}
			p.next()
		}
	}
	if _, err := p.Match(TokenCloseParenthesis); err != nil {
		return nil, err
	}
	return args, nil
}

func isOneOf(t TokenType, types []TokenType) bool {
	for _, o := range types {
		if t == o {
			return true
		}
	}
	return false
}
