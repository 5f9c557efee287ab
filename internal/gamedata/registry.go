package gamedata

// ModuleRegistry holds the module descriptors known to a session.
type ModuleRegistry struct {
	modules map[string]*Module
	all     []Module
}

// NewModuleRegistry creates a registry from loaded module descriptors.
// When two descriptors share an id the first one wins lookups.
func NewModuleRegistry(modules []Module) *ModuleRegistry {
	registry := &ModuleRegistry{
		modules: make(map[string]*Module, len(modules)),
		all:     modules,
	}
	for i := range modules {
		if _, ok := registry.modules[modules[i].ID]; !ok {
			registry.modules[modules[i].ID] = &modules[i]
		}
	}
	return registry
}

// EmptyModuleRegistry returns a registry with no modules.
func EmptyModuleRegistry() *ModuleRegistry {
	return NewModuleRegistry(nil)
}

// GetByID returns the module with the given ID, or nil if not found.
func (r *ModuleRegistry) GetByID(id string) *Module {
	return r.modules[id]
}

// All returns all module descriptors in registry order.
func (r *ModuleRegistry) All() []Module {
	return r.all
}

// Count returns the number of modules in the registry.
func (r *ModuleRegistry) Count() int {
	return len(r.all)
}

// Config returns the registry as a modules document.
func (r *ModuleRegistry) Config() ModulesConfig {
	modules := r.all
	if modules == nil {
		modules = []Module{}
	}
	return ModulesConfig{Modules: modules}
}
