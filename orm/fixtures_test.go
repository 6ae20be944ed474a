package orm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/velox-search/condition"
	"github.com/syssam/velox-search/dialect/sql"
	"github.com/syssam/velox-search/orm"
	"github.com/syssam/velox-search/querylanguage"
)

// getCustomerTypeFunction renders GET_CUSTOMER_TYPE(x) as get_customer_type(x).
type getCustomerTypeFunction struct {
	stringPrimary querylanguage.Node
}

func (f *getCustomerTypeFunction) Parse(p *querylanguage.Parser) (err error) {
	if _, err = p.Match(querylanguage.TokenIdentifier); err != nil {
		return err
	}
	if _, err = p.Match(querylanguage.TokenOpenParenthesis); err != nil {
		return err
	}
	if f.stringPrimary, err = p.StringPrimary(); err != nil {
		return err
	}
	_, err = p.Match(querylanguage.TokenCloseParenthesis)
	return err
}

func (f *getCustomerTypeFunction) SQL(w *querylanguage.SQLWalker) (string, error) {
	expr, err := w.Walk(f.stringPrimary)
	if err != nil {
		return "", err
	}
	return "get_customer_type(" + expr + ")", nil
}

func invoiceFieldSet() *condition.FieldSet {
	return condition.NewFieldSet("invoice",
		condition.Field{Name: "customerType"},
		condition.Field{Name: "id", Type: "integer"},
		condition.Field{Name: "name"},
		condition.Field{Name: "label", Entity: "Invoice"},
		condition.Field{Name: "total", Type: "decimal"},
		condition.Field{Name: "createdAt", Entity: "Customer", Property: "createdAt"},
	)
}

func newEntityManager(t testing.TB, name string) *querylanguage.EntityManager {
	t.Helper()
	em := querylanguage.NewEntityManager(sql.Static(name))
	require.NoError(t, orm.RegisterFunctions(querylanguage.SingleManager(em)))
	require.NoError(t, em.RegisterFunction("GET_CUSTOMER_TYPE", func(string) querylanguage.FunctionNode {
		return &getCustomerTypeFunction{}
	}))
	require.NoError(t, em.RegisterEntity(querylanguage.NewClassMetadata("Customer").
		AddProperty("customerType", "type", "string").
		AddProperty("createdAt", "", "date").
		AddProperty("id", "", "integer")))
	return em
}

func build(t testing.TB, b *condition.Builder) *condition.SearchCondition {
	t.Helper()
	cond, err := b.Build()
	require.NoError(t, err)
	return cond
}

func newWhereBuilder(t *testing.T, em orm.EntityManager, cond *condition.SearchCondition) *orm.WhereBuilder {
	t.Helper()
	wb, err := orm.NewWhereBuilder(cond, em)
	require.NoError(t, err)
	return wb
}
