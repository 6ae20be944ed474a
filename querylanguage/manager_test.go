package querylanguage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/velox-search/dialect"
	"github.com/syssam/velox-search/dialect/sql"
	"github.com/syssam/velox-search/querylanguage"
)

func TestConfiguration(t *testing.T) {
	c := querylanguage.NewConfiguration()
	factory := func(string) querylanguage.FunctionNode { return &customerType{} }

	require.NoError(t, c.AddCustomStringFunction("get_customer_type", factory))
	require.NoError(t, c.AddCustomStringFunction("GET_CUSTOMER_TYPE", factory))
	assert.Equal(t, []string{"GET_CUSTOMER_TYPE"}, c.CustomStringFunctions())

	_, ok := c.CustomStringFunction("Get_Customer_Type")
	assert.True(t, ok)

	err := c.AddCustomStringFunction("lower", factory)
	assert.True(t, errors.Is(err, querylanguage.ErrReservedFunction))
	assert.Error(t, c.AddCustomStringFunction("x", nil))
	assert.Error(t, c.AddCustomStringFunction(" ", factory))
}

func TestClassMetadata(t *testing.T) {
	md := querylanguage.NewClassMetadata("CustomerInvoice").
		AddProperty("invoiceNumber", "", "string").
		AddProperty("customerType", "type", "string")

	assert.Equal(t, "customer_invoices", md.TableName())
	assert.Equal(t, "invoice_number", md.ColumnName("invoiceNumber"))
	assert.Equal(t, "type", md.ColumnName("customerType"))
	assert.Equal(t, "undeclared_prop", md.ColumnName("undeclaredProp"))
	assert.True(t, md.HasProperty("customerType"))
	assert.False(t, md.HasProperty("undeclaredProp"))
	assert.Equal(t, "string", md.TypeOf("invoiceNumber"))
	assert.Equal(t, []string{"customerType", "invoiceNumber"}, md.Properties())

	md.Table = "invoices"
	assert.Equal(t, "invoices", md.TableName())
}

func TestRegisterEntity(t *testing.T) {
	em := querylanguage.NewEntityManager(sql.Static(dialect.SQLite))

	err := em.RegisterEntity(querylanguage.NewClassMetadata(""))
	assert.Error(t, err)

	bad := querylanguage.NewClassMetadata("Customer").AddProperty("name", "name; DROP", "string")
	assert.Error(t, em.RegisterEntity(bad))

	require.NoError(t, em.RegisterEntity(querylanguage.NewClassMetadata("Customer")))
	md, ok := em.Metadata("Customer")
	require.True(t, ok)
	assert.Equal(t, "customers", md.TableName())

	_, ok = em.Metadata("Invoice")
	assert.False(t, ok)
}

func TestRegistry(t *testing.T) {
	em := querylanguage.NewEntityManager(sql.Static(dialect.Postgres))
	r := querylanguage.SingleManager(em)

	m, err := r.Manager("")
	require.NoError(t, err)
	assert.Same(t, em, m)

	r.Register("documents", struct{}{})
	assert.Equal(t, []string{"default", "documents"}, r.Names())

	_, err = r.Manager("missing")
	assert.True(t, errors.Is(err, querylanguage.ErrUnknownManager))
}

func TestEntityManagerDialect(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	em := querylanguage.NewEntityManager(sql.OpenDB("pgx", db))
	assert.Equal(t, dialect.Postgres, em.Dialect())

	out, err := em.CompileCondition(`c.name = 'o''neil'`, nil)
	require.NoError(t, err)
	assert.Equal(t, `c.name = 'o''neil'`, out)
	// Compilation never touches the session.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompileConditionSQLite(t *testing.T) {
	drv, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer drv.Close()
	db := drv.DB()
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	_, err = db.ExecContext(ctx, `CREATE TABLE customers (id INTEGER PRIMARY KEY, type TEXT, first_name TEXT)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO customers (id, type, first_name) VALUES
		(1, 'vip', 'John'), (2, 'regular', 'Jane'), (3, 'vip', 'O''Neil'), (4, 'gold', 'Joe_')`)
	require.NoError(t, err)

	em := newManager(t, drv.Dialect())
	require.Equal(t, dialect.SQLite, em.Dialect())

	tests := []struct {
		cond string
		want []int
	}{
		{`c.customerType = 'vip'`, []int{1, 3}},
		{`c.firstName = 'O''Neil'`, []int{3}},
		{`NOT (c.id >= 2 AND c.id <= 3)`, []int{1, 4}},
		{`LOWER(c.firstName) LIKE 'jo%' ESCAPE '!'`, []int{1, 4}},
		{`c.firstName LIKE '%!_' ESCAPE '!'`, []int{4}},
		{`c.customerType IN ('gold', 'regular') OR c.id = 1`, []int{1, 2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.cond, func(t *testing.T) {
			where, err := em.CompileCondition(tt.cond, map[string]string{"c": "Customer"})
			require.NoError(t, err)

			rows, err := db.QueryContext(ctx, "SELECT c.id FROM customers c WHERE "+where+" ORDER BY c.id")
			require.NoError(t, err)
			defer rows.Close()
			var ids []int
			for rows.Next() {
				var id int
				require.NoError(t, rows.Scan(&id))
				ids = append(ids, id)
			}
			require.NoError(t, rows.Err())
			assert.Equal(t, tt.want, ids)
		})
	}
}
