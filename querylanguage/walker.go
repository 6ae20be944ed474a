package querylanguage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/velox-search/dialect"
	"github.com/syssam/velox-search/dialect/sql"
)

// SQLWalker renders parsed conditions as native SQL for one dialect.
type SQLWalker struct {
	em      *EntityManager
	dialect string
	aliases map[string]string
	params  []string
}

// NewSQLWalker returns a walker for the dialect of the entity manager.
// aliases maps the query aliases to entity names; when it is empty any
// alias is accepted.
func NewSQLWalker(em *EntityManager, aliases map[string]string) *SQLWalker {
	return &SQLWalker{em: em, dialect: em.Dialect(), aliases: aliases}
}

// Dialect returns the SQL dialect the walker renders for.
func (w *SQLWalker) Dialect() string { return w.dialect }

// Params returns the input parameters in the order they were rendered.
func (w *SQLWalker) Params() []string { return w.params }

// Walk renders a node.
func (w *SQLWalker) Walk(n Node) (string, error) {
	switch n := n.(type) {
	case *ConditionalExpression:
		return w.join(n.Terms, " OR ")
	case *ConditionalTerm:
		return w.join(n.Factors, " AND ")
	case *ConditionalFactor:
		s, err := w.Walk(n.Primary)
		if err != nil {
			return "", err
		}
		if n.Not {
			return "NOT " + s, nil
		}
		return s, nil
	case *ParenthesizedExpression:
		s, err := w.Walk(n.Expr)
		if err != nil {
			return "", err
		}
		return "(" + s + ")", nil
	case *ComparisonExpression:
		return w.comparison(n)
	case *LikeExpression:
		return w.like(n)
	case *NullComparisonExpression:
		s, err := w.Walk(n.Subject)
		if err != nil {
			return "", err
		}
		if n.Not {
			return s + " IS NOT NULL", nil
		}
		return s + " IS NULL", nil
	case *BetweenExpression:
		parts, err := w.walkAll(n.Subject, n.Lower, n.Upper)
		if err != nil {
			return "", err
		}
		return parts[0] + not(n.Not) + " BETWEEN " + parts[1] + " AND " + parts[2], nil
	case *InExpression:
		subject, err := w.Walk(n.Subject)
		if err != nil {
			return "", err
		}
		values, err := w.join(n.Values, ", ")
		if err != nil {
			return "", err
		}
		return subject + not(n.Not) + " IN (" + values + ")", nil
	case *ArithmeticExpression:
		var b strings.Builder
		for i, operand := range n.Operands {
			s, err := w.Walk(operand)
			if err != nil {
				return "", err
			}
			if i > 0 {
				b.WriteString(" " + n.Operators[i-1] + " ")
			}
			b.WriteString(s)
		}
		return b.String(), nil
	case *UnaryExpression:
		s, err := w.Walk(n.Operand)
		if err != nil {
			return "", err
		}
		return n.Sign + s, nil
	case *PathExpression:
		return w.path(n)
	case *Literal:
		return w.literal(n), nil
	case *InputParameter:
		w.params = append(w.params, n.Name)
		if w.dialect == dialect.Postgres {
			return "$" + strconv.Itoa(len(w.params)), nil
		}
		return "?", nil
	case *FunctionCall:
		args, err := w.join(n.Args, ", ")
		if err != nil {
			return "", err
		}
		return n.Name + "(" + args + ")", nil
	case *CustomFunction:
		return n.Function.SQL(w)
	default:
		return "", fmt.Errorf("querylanguage: unexpected node %T", n)
	}
}

func (w *SQLWalker) comparison(n *ComparisonExpression) (string, error) {
	parts, err := w.walkAll(n.Left, n.Right)
	if err != nil {
		return "", err
	}
	op := n.Operator
	if op == "!=" {
		op = "<>"
	}
	return parts[0] + " " + op + " " + parts[1], nil
}

func (w *SQLWalker) like(n *LikeExpression) (string, error) {
	parts, err := w.walkAll(n.Subject, n.Pattern)
	if err != nil {
		return "", err
	}
	s := parts[0] + not(n.Not) + " LIKE " + parts[1]
	if n.Escape != nil {
		e, err := w.Walk(n.Escape)
		if err != nil {
			return "", err
		}
		s += " ESCAPE " + e
	}
	return s, nil
}

func (w *SQLWalker) path(n *PathExpression) (string, error) {
	entity, ok := w.aliases[n.Alias]
	if !ok && len(w.aliases) > 0 {
		return "", fmt.Errorf("%w %q at offset %d", ErrUnknownAlias, n.Alias, n.Offset)
	}
	column := DefaultColumnName(n.Property)
	if md, ok := w.em.Metadata(entity); ok && entity != "" {
		column = md.ColumnName(n.Property)
	}
	return n.Alias + "." + column, nil
}

func (w *SQLWalker) literal(n *Literal) string {
	if n.Kind == StringLiteral {
		return sql.QuoteLiteral(w.dialect, n.Value)
	}
	return n.Value
}

func (w *SQLWalker) walkAll(nodes ...Node) ([]string, error) {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		s, err := w.Walk(n)
		if err != nil {
			return nil, err
		}
		parts[i] = s
	}
	return parts, nil
}

func (w *SQLWalker) join(nodes []Node, sep string) (string, error) {
	parts, err := w.walkAll(nodes...)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, sep), nil
}

func not(b bool) string {
	if b {
		return " NOT"
	}
	return ""
}
