package querylanguage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-openapi/inflect"

	"github.com/syssam/velox-search/dialect"
	"github.com/syssam/velox-search/dialect/sql"
)

// DefaultColumnName returns the column of a property without explicit
// mapping: the snake_case form of the property name.
func DefaultColumnName(property string) string {
	return inflect.Underscore(property)
}

// ClassMetadata describes how an entity is stored.
type ClassMetadata struct {
	Name    string
	Table   string            // defaults to the plural snake_case entity name
	Columns map[string]string // property -> column
	Types   map[string]string // property -> mapping type
}

// NewClassMetadata returns metadata for the named entity.
func NewClassMetadata(name string) *ClassMetadata {
	return &ClassMetadata{Name: name, Columns: map[string]string{}, Types: map[string]string{}}
}

// AddProperty declares a property. An empty column uses DefaultColumnName.
func (m *ClassMetadata) AddProperty(property, column, mappingType string) *ClassMetadata {
	if m.Columns == nil {
		m.Columns = map[string]string{}
	}
	if m.Types == nil {
		m.Types = map[string]string{}
	}
	if column == "" {
		column = DefaultColumnName(property)
	}
	m.Columns[property] = column
	m.Types[property] = mappingType
	return m
}

// TableName returns the table of the entity.
func (m *ClassMetadata) TableName() string {
	if m.Table != "" {
		return m.Table
	}
	return inflect.Underscore(inflect.Pluralize(m.Name))
}

// HasProperty reports whether the property is declared.
func (m *ClassMetadata) HasProperty(property string) bool {
	if _, ok := m.Columns[property]; ok {
		return true
	}
	_, ok := m.Types[property]
	return ok
}

// ColumnName returns the column of a property.
func (m *ClassMetadata) ColumnName(property string) string {
	if c, ok := m.Columns[property]; ok && c != "" {
		return c
	}
	return DefaultColumnName(property)
}

// TypeOf returns the mapping type of a property, or "".
func (m *ClassMetadata) TypeOf(property string) string {
	return m.Types[property]
}

// Properties returns the declared properties, sorted.
func (m *ClassMetadata) Properties() []string {
	seen := make(map[string]struct{}, len(m.Columns)+len(m.Types))
	for p := range m.Columns {
		seen[p] = struct{}{}
	}
	for p := range m.Types {
		seen[p] = struct{}{}
	}
	props := make([]string, 0, len(seen))
	for p := range seen {
		props = append(props, p)
	}
	sort.Strings(props)
	return props
}

func (m *ClassMetadata) validate() error {
	if m.Name == "" {
		return fmt.Errorf("querylanguage: entity without name")
	}
	if !sql.IsValidIdentifier(m.TableName()) {
		return fmt.Errorf("querylanguage: entity %q: invalid table name %q", m.Name, m.TableName())
	}
	for p, c := range m.Columns {
		if !sql.IsValidIdentifier(m.ColumnName(p)) {
			return fmt.Errorf("querylanguage: entity %q: invalid column %q for property %q", m.Name, c, p)
		}
	}
	return nil
}

// EntityManager is the query language entry point for one storage session:
// it owns the function configuration and the entity metadata, and compiles
// conditions into SQL of the session dialect.
type EntityManager struct {
	drv    dialect.Driver
	config *Configuration
	log    *slog.Logger
	stats  *CompileStats

	mu       sync.RWMutex
	metadata map[string]*ClassMetadata
}

// Option configures an EntityManager.
type Option func(*EntityManager)

// WithConfiguration sets the function configuration. Managers created with
// the same configuration share their custom functions.
func WithConfiguration(c *Configuration) Option {
	return func(em *EntityManager) { em.config = c }
}

// WithLogger sets the logger used for compilation debug output.
func WithLogger(l *slog.Logger) Option {
	return func(em *EntityManager) { em.log = l }
}

// WithStats records compilation statistics in s.
func WithStats(s *CompileStats) Option {
	return func(em *EntityManager) { em.stats = s }
}

// NewEntityManager returns an EntityManager for the driver.
func NewEntityManager(drv dialect.Driver, opts ...Option) *EntityManager {
	em := &EntityManager{
		drv:      drv,
		metadata: make(map[string]*ClassMetadata),
	}
	for _, opt := range opts {
		opt(em)
	}
	if em.config == nil {
		em.config = NewConfiguration()
	}
	if em.log == nil {
		em.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return em
}

// Driver returns the storage session.
func (em *EntityManager) Driver() dialect.Driver { return em.drv }

// Dialect returns the dialect of the storage session.
func (em *EntityManager) Dialect() string { return em.drv.Dialect() }

// Configuration returns the function configuration.
func (em *EntityManager) Configuration() *Configuration { return em.config }

// Stats returns the compilation statistics, or nil when not recorded.
func (em *EntityManager) Stats() *CompileStats { return em.stats }

// RegisterFunction registers a custom string function.
func (em *EntityManager) RegisterFunction(name string, factory FunctionFactory) error {
	return em.config.AddCustomStringFunction(name, factory)
}

// RegisterEntity registers entity metadata, replacing earlier metadata of
// the same entity.
func (em *EntityManager) RegisterEntity(md *ClassMetadata) error {
	if err := md.validate(); err != nil {
		return err
	}
	em.mu.Lock()
	defer em.mu.Unlock()
	em.metadata[md.Name] = md
	return nil
}

// Metadata returns the metadata of an entity.
func (em *EntityManager) Metadata(entity string) (*ClassMetadata, bool) {
	em.mu.RLock()
	defer em.mu.RUnlock()
	md, ok := em.metadata[entity]
	return md, ok
}

// Parse parses a condition with the manager's custom functions.
func (em *EntityManager) Parse(condition string) (Node, error) {
	return Parse(condition, em.config)
}

// CompileCondition compiles a condition into SQL. aliases maps the aliases
// used in the condition to entity names. An empty condition compiles to "".
func (em *EntityManager) CompileCondition(condition string, aliases map[string]string) (string, error) {
	if strings.TrimSpace(condition) == "" {
		return "", nil
	}
	start := time.Now()
	out, err := em.compile(condition, aliases)
	if em.stats != nil {
		em.stats.record(condition, time.Since(start), err)
	}
	if err != nil {
		return "", err
	}
	em.log.LogAttrs(context.Background(), slog.LevelDebug, "compiled condition",
		slog.String("dialect", em.Dialect()),
		slog.String("condition", condition),
		slog.String("sql", out),
	)
	return out, nil
}

func (em *EntityManager) compile(condition string, aliases map[string]string) (string, error) {
	n, err := em.Parse(condition)
	if err != nil {
		return "", err
	}
	return NewSQLWalker(em, aliases).Walk(n)
}

// Registry holds named managers. Managers are stored as any because a
// registry may hold managers of other storage layers.
type Registry struct {
	mu          sync.RWMutex
	managers    map[string]any
	defaultName string
}

// DefaultManagerName is the name used when none is given.
const DefaultManagerName = "default"

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{managers: make(map[string]any), defaultName: DefaultManagerName}
}

// SingleManager returns a Registry holding em as the default manager.
func SingleManager(em *EntityManager) *Registry {
	r := NewRegistry()
	r.Register(DefaultManagerName, em)
	return r
}

// Register adds or replaces a manager.
func (r *Registry) Register(name string, manager any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.managers[name] = manager
}

// Manager returns the named manager. An empty name selects the default.
func (r *Registry) Manager(name string) (any, error) {
	if name == "" {
		name = r.defaultName
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.managers[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownManager, name)
	}
	return m, nil
}

// Names returns the registered manager names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.managers))
	for name := range r.managers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
