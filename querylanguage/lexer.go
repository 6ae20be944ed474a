package querylanguage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// TokenType identifies the kind of a Token.
type TokenType int

// Token types.
const (
	TokenEOF TokenType = iota
	TokenIdentifier
	TokenString
	TokenNumber
	TokenParameter
	TokenOpenParenthesis
	TokenCloseParenthesis
	TokenComma
	TokenDot
	TokenComparison
	TokenPlus
	TokenMinus
	TokenMultiply
	TokenDivide
	TokenAnd
	TokenOr
	TokenNot
	TokenLike
	TokenEscape
	TokenIs
	TokenNull
	TokenTrue
	TokenFalse
	TokenIn
	TokenBetween
)

var tokenNames = [...]string{
	TokenEOF:              "end of input",
	TokenIdentifier:       "identifier",
	TokenString:           "string",
	TokenNumber:           "number",
	TokenParameter:        "parameter",
	TokenOpenParenthesis:  "'('",
	TokenCloseParenthesis: "')'",
	TokenComma:            "','",
	TokenDot:              "'.'",
	TokenComparison:       "comparison operator",
	TokenPlus:             "'+'",
	TokenMinus:            "'-'",
	TokenMultiply:         "'*'",
	TokenDivide:           "'/'",
	TokenAnd:              "AND",
	TokenOr:               "OR",
	TokenNot:              "NOT",
	TokenLike:             "LIKE",
	TokenEscape:           "ESCAPE",
	TokenIs:               "IS",
	TokenNull:             "NULL",
	TokenTrue:             "TRUE",
	TokenFalse:            "FALSE",
	TokenIn:               "IN",
	TokenBetween:          "BETWEEN",
}

// String implements the fmt.Stringer interface.
func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", int(t))
}

var keywords = map[string]TokenType{
	"AND":     TokenAnd,
	"OR":      TokenOr,
	"NOT":     TokenNot,
	"LIKE":    TokenLike,
	"ESCAPE":  TokenEscape,
	"IS":      TokenIs,
	"NULL":    TokenNull,
	"TRUE":    TokenTrue,
	"FALSE":   TokenFalse,
	"IN":      TokenIn,
	"BETWEEN": TokenBetween,
}

// Token is a lexed token. String tokens hold the unquoted value.
type Token struct {
	Type   TokenType
	Value  string
	Offset int
}

var queryLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `'(?:[^']|'')*'`},
	{Name: "Number", Pattern: `\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`},
	{Name: "Parameter", Pattern: `:[A-Za-z_][A-Za-z0-9_]*|\?[0-9]*`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Operator", Pattern: `<>|!=|<=|>=|[=<>+\-*/]`},
	{Name: "Punct", Pattern: `[(),.]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// symbolNames maps lexer token types back to rule names.
var symbolNames = func() map[lexer.TokenType]string {
	names := make(map[lexer.TokenType]string)
	for name, typ := range queryLexer.Symbols() {
		names[typ] = name
	}
	return names
}()

// Tokenize splits a query into tokens. Whitespace is dropped and the last
// token is always TokenEOF.
func Tokenize(query string) ([]Token, error) {
	lex, err := queryLexer.LexString("", query)
	if err != nil {
		return nil, lexError(err)
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, lexError(err)
	}
	tokens := make([]Token, 0, len(raw))
	for _, t := range raw {
		if t.EOF() {
			tokens = append(tokens, Token{Type: TokenEOF, Offset: t.Pos.Offset})
			break
		}
		tok := Token{Value: t.Value, Offset: t.Pos.Offset}
		switch symbolNames[t.Type] {
		case "Whitespace":
			continue
		case "String":
			tok.Type = TokenString
			tok.Value = strings.ReplaceAll(t.Value[1:len(t.Value)-1], "''", "'")
		case "Number":
			tok.Type = TokenNumber
		case "Parameter":
			tok.Type = TokenParameter
		case "Ident":
			tok.Type = TokenIdentifier
			if kw, ok := keywords[strings.ToUpper(t.Value)]; ok {
				tok.Type = kw
			}
		case "Operator":
			tok.Type = operatorType(t.Value)
		case "Punct":
			switch t.Value {
			case "(":
				tok.Type = TokenOpenParenthesis
			case ")":
				tok.Type = TokenCloseParenthesis
			case ",":
				tok.Type = TokenComma
			default:
				tok.Type = TokenDot
			}
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func operatorType(op string) TokenType {
	switch op {
	case "+":
		return TokenPlus
	case "-":
		return TokenMinus
	case "*":
		return TokenMultiply
	case "/":
		return TokenDivide
	default:
		return TokenComparison
	}
}

func lexError(err error) error {
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		return &SyntaxError{Offset: lerr.Pos.Offset, Msg: lerr.Msg}
	}
	return &SyntaxError{Offset: -1, Msg: err.Error()}
}
