package orm_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	veloxsearch "github.com/syssam/velox-search"
	"github.com/syssam/velox-search/condition"
	"github.com/syssam/velox-search/dialect"
	"github.com/syssam/velox-search/orm"
	"github.com/syssam/velox-search/orm/conversion"
)

func customerTypeCondition(t *testing.T) *condition.SearchCondition {
	return build(t, condition.NewBuilder(invoiceFieldSet(), condition.And).
		Field("customerType").
		AddPatternMatch(condition.PatternMatch{Type: condition.PatternEquals, Value: "vip"}).
		End())
}

func TestWhereBuilderSimpleField(t *testing.T) {
	em := newEntityManager(t, dialect.Postgres)
	wb := newWhereBuilder(t, em, customerTypeCondition(t))
	require.NoError(t, wb.SetField("customerType", "c", orm.WithProperty("type")))

	clause, err := wb.Generate()
	require.NoError(t, err)
	assert.Equal(t, "c.type = 'vip'", clause)

	sql, err := wb.GenerateSQL()
	require.NoError(t, err)
	assert.Equal(t, "c.type = 'vip'", sql)
}

func TestWhereBuilderSQLFieldConverter(t *testing.T) {
	em := newEntityManager(t, dialect.Postgres)
	wb := newWhereBuilder(t, em, customerTypeCondition(t))
	require.NoError(t, wb.SetField("customerType", "c", orm.WithProperty("type")))
	require.NoError(t, wb.SetConverter("customerType", conversion.SQLFunction("get_customer_type")))

	clause, err := wb.Generate()
	require.NoError(t, err)
	assert.Equal(t, "get_customer_type(c.type) = 'vip'", clause)

	sql, err := wb.GenerateSQL()
	require.NoError(t, err)
	assert.Equal(t, "get_customer_type(c.type) = 'vip'", sql)
}

func TestWhereBuilderConverters(t *testing.T) {
	upper := orm.ValueConverterFunc(func(v any, _ orm.ConversionHints) (string, error) {
		return orm.QuoteString(strings.ToUpper(fmt.Sprint(v))), nil
	})
	wrap := orm.SQLFieldConverterFunc(func(column string, _ orm.ConversionHints) (string, error) {
		return "get_customer_type(" + column + ")", nil
	})
	tests := []struct {
		name      string
		configure func(*orm.WhereBuilder) error
		want      string
	}{
		{
			name: "value only",
			configure: func(wb *orm.WhereBuilder) error {
				return wb.SetValueConverter("customerType", upper)
			},
			want: "c.type = 'VIP'",
		},
		{
			name: "sql only",
			configure: func(wb *orm.WhereBuilder) error {
				return wb.SetSQLFieldConverter("customerType", wrap)
			},
			want: "get_customer_type(c.type) = 'vip'",
		},
		{
			name: "both",
			configure: func(wb *orm.WhereBuilder) error {
				if err := wb.SetConverter("customerType", upper); err != nil {
					return err
				}
				return wb.SetConverter("customerType", wrap)
			},
			want: "get_customer_type(c.type) = 'VIP'",
		},
		{
			name: "converter set before field",
			configure: func(wb *orm.WhereBuilder) error {
				if err := wb.SetConverter("customerType", wrap); err != nil {
					return err
				}
				return wb.SetField("customerType", "c", orm.WithProperty("type"))
			},
			want: "get_customer_type(c.type) = 'vip'",
		},
		{
			name: "cleared",
			configure: func(wb *orm.WhereBuilder) error {
				if err := wb.SetConverter("customerType", wrap); err != nil {
					return err
				}
				return wb.SetSQLFieldConverter("customerType", nil)
			},
			want: "c.type = 'vip'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := newWhereBuilder(t, newEntityManager(t, dialect.Postgres), customerTypeCondition(t))
			require.NoError(t, wb.SetField("customerType", "c", orm.WithProperty("type")))
			require.NoError(t, tt.configure(wb))
			clause, err := wb.Generate()
			require.NoError(t, err)
			assert.Equal(t, tt.want, clause)
		})
	}
}

func TestWhereBuilderConverterHints(t *testing.T) {
	var got orm.ConversionHints
	wb := newWhereBuilder(t, newEntityManager(t, dialect.MySQL), customerTypeCondition(t))
	require.NoError(t, wb.SetField("customerType", "c", orm.WithProperty("type"), orm.WithMappingType("customer_type")))
	require.NoError(t, wb.SetValueConverter("customerType", orm.ValueConverterFunc(func(v any, hints orm.ConversionHints) (string, error) {
		got = hints
		return orm.Literal(v, hints.MappingType)
	})))
	_, err := wb.Generate()
	require.NoError(t, err)
	assert.Equal(t, orm.ConversionHints{
		Field:       "customerType",
		Column:      "c.type",
		MappingType: "customer_type",
		Dialect:     dialect.MySQL,
	}, got)
}

func TestWhereBuilderConversionError(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name      string
		configure func(*orm.WhereBuilder) error
	}{
		{
			name: "value",
			configure: func(wb *orm.WhereBuilder) error {
				return wb.SetValueConverter("customerType", orm.ValueConverterFunc(func(any, orm.ConversionHints) (string, error) {
					return "", cause
				}))
			},
		},
		{
			name: "sql",
			configure: func(wb *orm.WhereBuilder) error {
				return wb.SetSQLFieldConverter("customerType", orm.SQLFieldConverterFunc(func(string, orm.ConversionHints) (string, error) {
					return "", cause
				}))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := newWhereBuilder(t, newEntityManager(t, dialect.Postgres), customerTypeCondition(t))
			require.NoError(t, wb.SetField("customerType", "c"))
			require.NoError(t, tt.configure(wb))
			_, err := wb.Generate()
			require.Error(t, err)
			assert.True(t, veloxsearch.IsConversionError(err))
			assert.ErrorIs(t, err, cause)
			var cerr *veloxsearch.ConversionError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.name, cerr.Kind)
		})
	}
}

func TestWhereBuilderSetConverterErrors(t *testing.T) {
	wb := newWhereBuilder(t, newEntityManager(t, dialect.Postgres), customerTypeCondition(t))

	err := wb.SetConverter("customerType", 42)
	assert.ErrorIs(t, err, veloxsearch.ErrInvalidConverter)

	err = wb.SetConverter("unknown", conversion.SQLFunction("f"))
	assert.True(t, veloxsearch.IsUnknownField(err))

	err = wb.SetConverter("unknown", 42)
	assert.True(t, veloxsearch.IsUnknownField(err))
	assert.NotErrorIs(t, err, veloxsearch.ErrInvalidConverter)

	err = wb.SetValueConverter("unknown", conversion.UUID{})
	assert.True(t, veloxsearch.IsUnknownField(err))
}

func TestWhereBuilderSetField(t *testing.T) {
	em := newEntityManager(t, dialect.Postgres)

	t.Run("unknown field", func(t *testing.T) {
		wb := newWhereBuilder(t, em, customerTypeCondition(t))
		err := wb.SetField("unknown", "c")
		require.Error(t, err)
		assert.True(t, veloxsearch.IsUnknownField(err))
		var uerr *veloxsearch.UnknownFieldError
		require.True(t, errors.As(err, &uerr))
		assert.Equal(t, "unknown", uerr.Field)
		assert.Equal(t, "invoice", uerr.FieldSet)
	})

	t.Run("last write wins", func(t *testing.T) {
		wb := newWhereBuilder(t, em, customerTypeCondition(t))
		require.NoError(t, wb.SetField("customerType", "x", orm.WithProperty("kind")))
		require.NoError(t, wb.SetField("customerType", "c", orm.WithProperty("type")))
		require.NoError(t, wb.SetField("customerType", "c", orm.WithProperty("type")))
		clause, err := wb.Generate()
		require.NoError(t, err)
		assert.Equal(t, "c.type = 'vip'", clause)
	})

	t.Run("unknown property", func(t *testing.T) {
		wb := newWhereBuilder(t, em, customerTypeCondition(t))
		err := wb.SetField("customerType", "c", orm.WithEntity("Customer"), orm.WithProperty("kind"))
		require.Error(t, err)
		assert.True(t, veloxsearch.IsUnknownProperty(err))
	})

	t.Run("entity property", func(t *testing.T) {
		wb := newWhereBuilder(t, em, customerTypeCondition(t))
		require.NoError(t, wb.SetField("customerType", "c", orm.WithEntity("Customer")))
		clause, err := wb.Generate()
		require.NoError(t, err)
		assert.Equal(t, "c.customerType = 'vip'", clause)
		sql, err := wb.GenerateSQL()
		require.NoError(t, err)
		assert.Equal(t, "c.type = 'vip'", sql)
	})

	t.Run("fields config", func(t *testing.T) {
		wb := newWhereBuilder(t, em, customerTypeCondition(t))
		require.NoError(t, wb.SetField("name", "c"))
		require.NoError(t, wb.SetField("customerType", "c", orm.WithEntity("Customer")))
		fields := wb.FieldsConfig()
		require.Len(t, fields, 2)
		assert.Equal(t, "customerType", fields[0].FieldName)
		assert.Equal(t, "c.customerType", fields[0].Column())
		assert.Equal(t, "string", fields[0].MappingType)
		assert.Equal(t, "name", fields[1].FieldName)
		assert.Equal(t, "c.name", fields[1].Column())
	})
}

func TestWhereBuilderEntityMapping(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	cond := build(t, condition.NewBuilder(invoiceFieldSet(), condition.And).
		Field("createdAt").SimpleValue(ts).End().
		Field("label").SimpleValue("x").End())
	wb := newWhereBuilder(t, newEntityManager(t, dialect.Postgres), cond)
	require.NoError(t, wb.SetEntityMappings(map[string]string{"Customer": "c", "Invoice": "i"}))

	clause, err := wb.Generate()
	require.NoError(t, err)
	assert.Equal(t, "c.createdAt = '2024-03-01' AND i.label = 'x'", clause)

	sql, err := wb.GenerateSQL()
	require.NoError(t, err)
	assert.Equal(t, "c.created_at = '2024-03-01' AND i.label = 'x'", sql)
}

func TestWhereBuilderUnresolvedField(t *testing.T) {
	cond := build(t, condition.NewBuilder(invoiceFieldSet(), condition.And).
		Field("label").SimpleValue("x").End().
		Field("total").SimpleValue(10).End())
	wb := newWhereBuilder(t, newEntityManager(t, dialect.Postgres), cond)

	_, err := wb.Generate()
	require.Error(t, err)
	assert.True(t, veloxsearch.IsUnresolvedField(err))
	assert.Contains(t, err.Error(), `no alias configured for entity "Invoice"`)

	require.NoError(t, wb.SetEntityMapping("Invoice", "i"))
	_, err = wb.Generate()
	require.Error(t, err)
	assert.True(t, veloxsearch.IsUnresolvedField(err))
	assert.Contains(t, err.Error(), "no alias configured and the field has no entity")

	// A failed generation leaves the builder configurable.
	require.NoError(t, wb.SetField("total", "i"))
	clause, err := wb.Generate()
	require.NoError(t, err)
	assert.Equal(t, "i.label = 'x' AND i.total = 10", clause)
}

func TestWhereBuilderUnusedFieldsNotResolved(t *testing.T) {
	cond := build(t, condition.NewBuilder(invoiceFieldSet(), condition.And).
		Field("total").End().
		Field("id").SimpleValue(1).End())
	wb := newWhereBuilder(t, newEntityManager(t, dialect.Postgres), cond)
	require.NoError(t, wb.SetField("id", "i"))
	clause, err := wb.Generate()
	require.NoError(t, err)
	assert.Equal(t, "i.id = 1", clause)
}

func TestWhereBuilderLocked(t *testing.T) {
	wb := newWhereBuilder(t, newEntityManager(t, dialect.Postgres), customerTypeCondition(t))
	require.NoError(t, wb.SetField("customerType", "c", orm.WithProperty("type")))
	clause, err := wb.Generate()
	require.NoError(t, err)

	calls := map[string]func() error{
		"SetField":             func() error { return wb.SetField("customerType", "x") },
		"SetConverter":         func() error { return wb.SetConverter("customerType", conversion.SQLFunction("f")) },
		"SetValueConverter":    func() error { return wb.SetValueConverter("customerType", conversion.UUID{}) },
		"SetSQLFieldConverter": func() error { return wb.SetSQLFieldConverter("customerType", conversion.SQLFunction("f")) },
		"SetEntityMapping":     func() error { return wb.SetEntityMapping("Customer", "x") },
		"SetEntityMappings":    func() error { return wb.SetEntityMappings(nil) },
	}
	for op, call := range calls {
		err := call()
		require.Error(t, err, op)
		assert.True(t, veloxsearch.IsLocked(err), op)
		assert.Contains(t, err.Error(), op)
	}

	again, err := wb.Generate()
	require.NoError(t, err)
	assert.Equal(t, clause, again)
	assert.Equal(t, "c.type = 'vip'", again)
}

func TestWhereBuilderPrecondition(t *testing.T) {
	fs := invoiceFieldSet()
	root := condition.NewValuesGroup(condition.And)
	root.AddField("id", condition.NewValuesBag().
		AddSimpleValue(1).
		AddError(veloxsearch.ValuesError{Path: "[id][simple-values][1]", Message: "invalid"}))
	_, err := orm.NewWhereBuilder(condition.New(fs, root), newEntityManager(t, dialect.Postgres))
	require.Error(t, err)
	assert.True(t, veloxsearch.IsPrecondition(err))
	assert.Contains(t, err.Error(), "invoice")

	nested := condition.NewValuesGroup(condition.And)
	nested.AddGroup(condition.NewValuesGroup(condition.Or).
		AddError(veloxsearch.ValuesError{Path: "[groups][0]", Message: "invalid"}))
	_, err = orm.NewWhereBuilder(condition.New(fs, nested), newEntityManager(t, dialect.Postgres))
	assert.True(t, veloxsearch.IsPrecondition(err))

	_, err = orm.NewWhereBuilder(nil, newEntityManager(t, dialect.Postgres))
	assert.Error(t, err)
	_, err = orm.NewWhereBuilder(condition.New(fs, nil), nil)
	assert.Error(t, err)
}

func TestWhereBuilderRender(t *testing.T) {
	tests := []struct {
		name    string
		builder func(*condition.Builder) *condition.Builder
		want    string
	}{
		{
			name:    "empty",
			builder: func(b *condition.Builder) *condition.Builder { return b },
			want:    "",
		},
		{
			name: "empty groups",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Group(condition.Or).Group(condition.And).End().End()
			},
			want: "",
		},
		{
			name: "empty group elided",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Group(condition.Or).End().Field("id").SimpleValue(1).End()
			},
			want: "c.id = 1",
		},
		{
			name: "simple values",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Field("id").SimpleValue(1).SimpleValue(2).End()
			},
			want: "c.id = 1 OR c.id = 2",
		},
		{
			name: "excluded simple values",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Field("id").ExcludedSimpleValue(1).ExcludedSimpleValue(2).End()
			},
			want: "NOT (c.id = 1) AND NOT (c.id = 2)",
		},
		{
			name: "range",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Field("id").Range(1, 10).End()
			},
			want: "(c.id >= 1 AND c.id <= 10)",
		},
		{
			name: "exclusive range",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Field("id").AddRange(condition.Range{Lower: 1, Upper: 10, ExclusiveLower: true, ExclusiveUpper: true}).End()
			},
			want: "(c.id > 1 AND c.id < 10)",
		},
		{
			name: "excluded range",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Field("id").ExcludedRange(1, 10).End()
			},
			want: "NOT (c.id >= 1 AND c.id <= 10)",
		},
		{
			name: "comparisons",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Field("id").Compare(condition.GreaterThan, 5).Compare(condition.NotEqual, 7).End()
			},
			want: "c.id > 5 AND c.id <> 7",
		},
		{
			name: "contains",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Field("name").Pattern(condition.PatternContains, "foo").End()
			},
			want: "c.name LIKE '%foo%' ESCAPE '!'",
		},
		{
			name: "starts with escaped",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Field("name").Pattern(condition.PatternStartsWith, "10%_!").End()
			},
			want: "c.name LIKE '10!%!_!!%' ESCAPE '!'",
		},
		{
			name: "ends with quote",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Field("name").Pattern(condition.PatternEndsWith, "o'neil").End()
			},
			want: "c.name LIKE '%o''neil' ESCAPE '!'",
		},
		{
			name: "case insensitive",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Field("name").AddPatternMatch(condition.PatternMatch{Type: condition.PatternContains, Value: "Foo", CaseInsensitive: true}).End()
			},
			want: "RW_SEARCH_MATCH(c.name) LIKE RW_SEARCH_VALUE_CONVERSION('%Foo%') ESCAPE '!'",
		},
		{
			name: "case insensitive equals",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Field("name").AddPatternMatch(condition.PatternMatch{Type: condition.PatternEquals, Value: "Foo", CaseInsensitive: true}).End()
			},
			want: "RW_SEARCH_MATCH(c.name) = RW_SEARCH_VALUE_CONVERSION('Foo')",
		},
		{
			name: "negated pattern",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Field("name").AddPatternMatch(condition.PatternMatch{Type: condition.PatternStartsWith, Value: "a", Negated: true}).End()
			},
			want: "NOT (c.name LIKE 'a%' ESCAPE '!')",
		},
		{
			name: "non-text pattern",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Field("id").Pattern(condition.PatternContains, "12").End()
			},
			want: "RW_SEARCH_FIELD_CONVERSION(c.id) LIKE '%12%' ESCAPE '!'",
		},
		{
			name: "negated group",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Group(condition.And).Negate().Field("id").SimpleValue(1).End().End()
			},
			want: "NOT (c.id = 1)",
		},
		{
			name: "negated root",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Negate().Field("id").SimpleValue(1).SimpleValue(2).End()
			},
			want: "NOT (c.id = 1 OR c.id = 2)",
		},
		{
			name: "groups before fields",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Field("name").SimpleValue("a").End().
					Group(condition.Or).Field("id").SimpleValue(1).SimpleValue(2).End().End()
			},
			want: "(c.id = 1 OR c.id = 2) AND c.name = 'a'",
		},
		{
			name: "inclusions and exclusions",
			builder: func(b *condition.Builder) *condition.Builder {
				return b.Field("id").SimpleValue(1).SimpleValue(2).ExcludedSimpleValue(3).End().
					Field("name").SimpleValue("a").End()
			},
			want: "((c.id = 1 OR c.id = 2) AND NOT (c.id = 3)) AND c.name = 'a'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := build(t, tt.builder(condition.NewBuilder(invoiceFieldSet(), condition.And)))
			wb := newWhereBuilder(t, newEntityManager(t, dialect.Postgres), cond)
			require.NoError(t, wb.SetEntityMapping("Invoice", "c"))
			for _, name := range []string{"id", "name"} {
				require.NoError(t, wb.SetField(name, "c"))
			}
			clause, err := wb.Generate()
			require.NoError(t, err)
			assert.Equal(t, tt.want, clause)
			_, err = wb.GenerateSQL()
			require.NoError(t, err)
		})
	}
}

func TestWhereBuilderUnsupportedValue(t *testing.T) {
	cond := build(t, condition.NewBuilder(invoiceFieldSet(), condition.And).
		Field("id").SimpleValue(struct{}{}).End())
	wb := newWhereBuilder(t, newEntityManager(t, dialect.Postgres), cond)
	require.NoError(t, wb.SetField("id", "c"))
	_, err := wb.Generate()
	require.Error(t, err)
	assert.ErrorIs(t, err, veloxsearch.ErrUnsupportedValue)
	assert.Contains(t, err.Error(), `field "id"`)
}

func TestWhereBuilderNonFiniteFloat(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		cond := build(t, condition.NewBuilder(invoiceFieldSet(), condition.And).
			Field("total").SimpleValue(v).End())
		wb := newWhereBuilder(t, newEntityManager(t, dialect.Postgres), cond)
		require.NoError(t, wb.SetField("total", "i"))
		clause, err := wb.Generate()
		assert.ErrorIs(t, err, veloxsearch.ErrUnsupportedValue)
		assert.Empty(t, clause)
		_, err = wb.GenerateSQL()
		assert.ErrorIs(t, err, veloxsearch.ErrUnsupportedValue)
	}
}

func complexCondition(t testing.TB) *condition.SearchCondition {
	return build(t, condition.NewBuilder(invoiceFieldSet(), condition.Or).
		Group(condition.And).Negate().
		Field("id").Range(1, 10).ExcludedSimpleValue(5).End().
		End().
		Group(condition.And).End().
		Field("customerType").SimpleValue("vip").SimpleValue("gold").End().
		Field("name").
		AddPatternMatch(condition.PatternMatch{Type: condition.PatternContains, Value: "50%_off", CaseInsensitive: true}).
		AddPatternMatch(condition.PatternMatch{Type: condition.PatternStartsWith, Value: "Jo", Negated: true}).
		End().
		Field("id").
		Compare(condition.GreaterThan, 100).
		Compare(condition.NotEqual, 150).
		AddExcludedRange(condition.Range{Lower: 200, Upper: 300, ExclusiveLower: true}).
		End())
}

func TestWhereBuilderGolden(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	for _, name := range []string{dialect.Postgres, dialect.MySQL, dialect.SQLite} {
		t.Run(name, func(t *testing.T) {
			wb := newWhereBuilder(t, newEntityManager(t, name), complexCondition(t))
			require.NoError(t, wb.SetField("customerType", "c", orm.WithProperty("type")))
			require.NoError(t, wb.SetField("id", "c"))
			require.NoError(t, wb.SetField("name", "c"))

			clause, err := wb.Generate()
			require.NoError(t, err)
			g.Assert(t, "complex_condition", []byte(clause+"\n"))

			sql, err := wb.GenerateSQL()
			require.NoError(t, err)
			g.Assert(t, "complex_condition_"+name, []byte(sql+"\n"))
		})
	}
}

func TestWhereBuilderLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	wb, err := orm.NewWhereBuilder(customerTypeCondition(t), newEntityManager(t, dialect.Postgres), orm.WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, wb.SetField("customerType", "c", orm.WithProperty("type")))
	_, err = wb.Generate()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "where-clause generated")
	assert.Contains(t, buf.String(), "fieldset=invoice")
}

func TestWhereBuilderAccessors(t *testing.T) {
	em := newEntityManager(t, dialect.Postgres)
	cond := customerTypeCondition(t)
	wb := newWhereBuilder(t, em, cond)
	assert.Same(t, cond, wb.SearchCondition())
	assert.Equal(t, orm.EntityManager(em), wb.EntityManager())
	assert.Empty(t, wb.FieldsConfig())
}
