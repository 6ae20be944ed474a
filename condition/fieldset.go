package condition

// Field describes a search field of a FieldSet.
//
// Entity, Property and Type are optional model references. When set, a
// where-builder can derive the field configuration without an explicit
// SetField call.
type Field struct {
	Name     string
	Entity   string
	Property string
	Type     string
}

// FieldSet is the ordered collection of search fields a condition is
// built against.
type FieldSet struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewFieldSet returns a FieldSet with the given name and fields.
// A field added twice replaces the earlier definition and keeps its position.
func NewFieldSet(name string, fields ...Field) *FieldSet {
	fs := &FieldSet{name: name, index: make(map[string]int, len(fields))}
	for _, f := range fields {
		fs.Add(f)
	}
	return fs
}

// Name returns the name of the FieldSet.
func (fs *FieldSet) Name() string {
	if fs == nil {
		return ""
	}
	return fs.name
}

// Add adds or replaces a field.
func (fs *FieldSet) Add(f Field) *FieldSet {
	if i, ok := fs.index[f.Name]; ok {
		fs.fields[i] = f
		return fs
	}
	fs.index[f.Name] = len(fs.fields)
	fs.fields = append(fs.fields, f)
	return fs
}

// Has reports whether the FieldSet contains a field with the given name.
func (fs *FieldSet) Has(name string) bool {
	if fs == nil {
		return false
	}
	_, ok := fs.index[name]
	return ok
}

// Get returns the field with the given name.
func (fs *FieldSet) Get(name string) (Field, bool) {
	if fs == nil {
		return Field{}, false
	}
	i, ok := fs.index[name]
	if !ok {
		return Field{}, false
	}
	return fs.fields[i], true
}

// Fields returns a copy of the fields in insertion order.
func (fs *FieldSet) Fields() []Field {
	return append([]Field(nil), fs.fields...)
}

// Len returns the number of fields.
func (fs *FieldSet) Len() int { return len(fs.fields) }
