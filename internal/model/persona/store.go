package persona

// Store exposes roster lookup for the orchestrator and HTTP handlers.
type Store interface {
	List() []*Persona
	FindByName(name string) (*Persona, bool)
}

// MemoryStore implements Store with a fixed in-memory roster. Order is
// registration order and determines persona turn order within a round.
type MemoryStore struct {
	items []*Persona
}

// NewMemoryStore returns a MemoryStore holding the supplied personas.
func NewMemoryStore(items []*Persona) *MemoryStore {
	return &MemoryStore{items: append([]*Persona(nil), items...)}
}

// List returns the roster in registration order.
func (s *MemoryStore) List() []*Persona {
	return append([]*Persona(nil), s.items...)
}

// FindByName looks up a persona by its unique name.
func (s *MemoryStore) FindByName(name string) (*Persona, bool) {
	for _, item := range s.items {
		if item.Name == name {
			return item, true
		}
	}
	return nil, false
}
