// Package querylanguage implements the condition language search clauses are
// written in, and compiles it into native SQL.
//
// A condition references entity properties through aliases (c.type), and may
// call built-in functions (LOWER, UPPER, ...) and custom functions registered
// on the Configuration:
//
//	em := querylanguage.NewEntityManager(sql.Static(dialect.Postgres))
//	_ = em.RegisterEntity(querylanguage.NewClassMetadata("Customer").
//		AddProperty("customerType", "type", "string"))
//
//	out, err := em.CompileCondition(`c.customerType = 'vip'`, map[string]string{"c": "Customer"})
//	// c.type = 'vip'
//
// Custom functions implement FunctionNode: they parse their own arguments from
// the Parser and render themselves through the SQLWalker.
package querylanguage
