package orm

import (
	veloxsearch "github.com/syssam/velox-search"
	"github.com/syssam/velox-search/orm/functions"
	"github.com/syssam/velox-search/querylanguage"
)

// DefaultManagerName is the manager RegisterFunctions uses when no names are given.
const DefaultManagerName = querylanguage.DefaultManagerName

// ManagerRegistry gives access to named managers.
type ManagerRegistry interface {
	Manager(name string) (any, error)
}

// FunctionRegistrar is a manager that accepts custom query functions.
// *querylanguage.EntityManager implements it.
type FunctionRegistrar interface {
	RegisterFunction(name string, factory querylanguage.FunctionFactory) error
}

// RegisterFunctions registers the search functions on the named managers of
// the registry, or on the default manager when no names are given.
// Registering again replaces the earlier registration.
//
// Every manager is checked before anything is registered: a missing manager
// or one that does not accept query functions fails with a ConfigurationError.
func RegisterFunctions(registry ManagerRegistry, managerNames ...string) error {
	if len(managerNames) == 0 {
		managerNames = []string{DefaultManagerName}
	}
	registrars := make([]FunctionRegistrar, 0, len(managerNames))
	for _, name := range managerNames {
		m, err := registry.Manager(name)
		if err != nil {
			return veloxsearch.NewConfigurationError(name, "%v", err)
		}
		r, ok := m.(FunctionRegistrar)
		if !ok {
			return veloxsearch.NewConfigurationError(name, "manager of type %T is not an entity manager", m)
		}
		registrars = append(registrars, r)
	}
	for i, r := range registrars {
		for _, def := range functions.Definitions() {
			if err := r.RegisterFunction(def.Name, def.Factory); err != nil {
				return veloxsearch.NewConfigurationError(managerNames[i], "register %s: %v", def.Name, err)
			}
		}
	}
	return nil
}
