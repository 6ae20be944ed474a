// Package orm renders search conditions as where-clauses of the query
// language.
//
// A WhereBuilder maps every search field onto an entity alias and property,
// applies the value and SQL converters of the field, and renders the
// condition tree once:
//
//	wb, err := orm.NewWhereBuilder(cond, em)
//	if err != nil {
//		return err
//	}
//	if err := wb.SetField("customerType", "c", orm.WithProperty("type")); err != nil {
//		return err
//	}
//	clause, err := wb.Generate() // c.type = 'vip'
//
// Nested groups are rendered first, each in parentheses, then the values of
// every field in field order. Values of one field are joined as
//
//	(inclusion OR inclusion ...) AND exclusion AND exclusion ...
//
// and parts that join several expressions are parenthesized when combined
// with other parts. Groups and fields without values render nothing.
//
// Pattern matches use three query functions that must be registered on the
// entity manager with RegisterFunctions before the clause is compiled.
package orm
