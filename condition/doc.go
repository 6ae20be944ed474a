// Package condition holds the search condition model: a FieldSet of named
// search fields and a tree of ValuesGroups holding, per field, simple values,
// ranges, comparisons and pattern matches.
//
// Conditions are built with a Builder or decoded from a document with the
// input sub-package. A condition that reports HasErrors(true) cannot be turned
// into a where-clause.
package condition
