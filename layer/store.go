package layer

import (
	"github.com/google/uuid"
)

// Store is the ordered layer collection plus the selection pointer for one
// editing session. It is owned by a single goroutine and does no locking.
type Store struct {
	layers   []Layer
	index    map[ID]int
	selected ID
	newID    func() ID
	originX  float64
	originY  float64
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default UUID generator. The generator must not
// repeat values; Add panics on a duplicate.
func WithIDGenerator(gen func() ID) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithOrigin sets where newly added layers are anchored.
func WithOrigin(x, y float64) Option {
	return func(s *Store) {
		s.originX = x
		s.originY = y
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		index:   make(map[ID]int),
		newID:   func() ID { return ID(uuid.NewString()) },
		originX: DefaultX,
		originY: DefaultY,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a new layer with kind defaults and selects it.
func (s *Store) Add(kind Kind, content string) ID {
	id := s.newID()
	if _, dup := s.index[id]; dup {
		panic("layer: id generator returned duplicate id " + string(id))
	}
	s.layers = append(s.layers, newLayer(id, kind, content, s.originX, s.originY))
	s.index[id] = len(s.layers) - 1
	s.selected = id
	return id
}

// Update merges p into the layer. Unknown ids are ignored: drag moves can
// arrive after the layer was deleted.
func (s *Store) Update(id ID, p Patch) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	p.apply(&s.layers[i])
}

// Remove deletes the layer and always clears the selection, even when a
// different layer was selected.
func (s *Store) Remove(id ID) {
	defer s.ClearSelection()

	i, ok := s.index[id]
	if !ok {
		return
	}
	s.layers = append(s.layers[:i], s.layers[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.layers); j++ {
		s.index[s.layers[j].ID] = j
	}
}

// Get returns a copy of the layer.
func (s *Store) Get(id ID) (Layer, bool) {
	i, ok := s.index[id]
	if !ok {
		return Layer{}, false
	}
	return s.layers[i], true
}

// All returns a copy of the layers in insertion order.
func (s *Store) All() []Layer {
	out := make([]Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

func (s *Store) Len() int { return len(s.layers) }

// Selected returns the selected id, if any.
func (s *Store) Selected() (ID, bool) {
	return s.selected, s.selected != ""
}

// SelectedLayer returns a copy of the selected layer, if it still exists.
func (s *Store) SelectedLayer() (Layer, bool) {
	id, ok := s.Selected()
	if !ok {
		return Layer{}, false
	}
	return s.Get(id)
}

// Select points the selection at id. An empty id clears it.
func (s *Store) Select(id ID) {
	s.selected = id
}

func (s *Store) ClearSelection() {
	s.selected = ""
}
