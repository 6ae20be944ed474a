package condition

// SearchCondition pairs a root ValuesGroup with the FieldSet it was built for.
type SearchCondition struct {
	fieldSet *FieldSet
	group    *ValuesGroup
}

// New returns a SearchCondition. A nil group is replaced by an empty AND group.
func New(fs *FieldSet, group *ValuesGroup) *SearchCondition {
	if group == nil {
		group = NewValuesGroup(And)
	}
	return &SearchCondition{fieldSet: fs, group: group}
}

// FieldSet returns the FieldSet of the condition.
func (c *SearchCondition) FieldSet() *FieldSet { return c.fieldSet }

// ValuesGroup returns the root group.
func (c *SearchCondition) ValuesGroup() *ValuesGroup { return c.group }

// HasErrors reports whether the root group has errors.
func (c *SearchCondition) HasErrors(recursive bool) bool {
	return c.group.HasErrors(recursive)
}

// Errors collects every values error in the tree, depth first.
func (c *SearchCondition) Errors() []error {
	var errs []error
	var walk func(*ValuesGroup)
	walk = func(g *ValuesGroup) {
		for _, e := range g.Errors() {
			errs = append(errs, e)
		}
		for _, name := range g.Fields() {
			for _, e := range g.Field(name).Errors() {
				errs = append(errs, e)
			}
		}
		for _, child := range g.Groups() {
			walk(child)
		}
	}
	walk(c.group)
	return errs
}
