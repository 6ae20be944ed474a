// Package veloxsearch translates field-based search conditions into where-clauses
// of the Velox query language.
//
// A search condition is a tree of value groups over named search fields (see package
// condition). The orm package maps those fields onto entity aliases and properties,
// applies optional value and SQL conversions, and renders the tree into a clause that
// the querylanguage package compiles into native SQL for the session dialect.
//
// # Usage
//
//	em := querylanguage.NewEntityManager(drv)
//	if err := orm.RegisterFunctions(querylanguage.SingleManager(em)); err != nil {
//	    log.Fatal(err)
//	}
//
//	wb, err := orm.NewWhereBuilder(cond, em)
//	if err != nil {
//	    log.Fatal(err) // the condition contains errors
//	}
//	_ = wb.SetField("customerType", "c", orm.WithProperty("type"))
//	_ = wb.SetConverter("customerType", conversion.SQLFunction("get_customer_type"))
//
//	clause, err := wb.Generate() // get_customer_type(c.type) = 'vip'
//
// # Errors
//
// This package holds the error taxonomy shared by all sub-packages. Every typed
// error matches its sentinel with errors.Is:
//
//	errors.Is(err, veloxsearch.ErrLocked)
//	veloxsearch.IsUnknownField(err)
package veloxsearch
