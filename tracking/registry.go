package tracking

import "sort"

// Registry stores tracked flights keyed by id.
type Registry struct {
	flights map[string]*Entity
}

func NewRegistry() *Registry {
	return &Registry{flights: map[string]*Entity{}}
}

// Upsert creates the flight on first sight or refreshes position, heading and
// score of an existing one. Name and selection survive a refresh.
func (r *Registry) Upsert(u Update) (Entity, bool) {
	if e, ok := r.flights[u.ID]; ok {
		e.Position = u.Position
		e.Heading = u.Heading
		e.Score = u.Score
		return *e, false
	}
	e := &Entity{
		ID:       u.ID,
		Name:     u.Name,
		Position: u.Position,
		Heading:  u.Heading,
		Score:    u.Score,
	}
	r.flights[u.ID] = e
	return *e, true
}

func (r *Registry) Get(id string) (Entity, error) {
	e, ok := r.flights[id]
	if !ok {
		return Entity{}, ErrNotFound
	}
	return *e, nil
}

// SetSelected sets the selection flag of a single flight. Clearing the
// previous selection is the caller's job.
func (r *Registry) SetSelected(id string, value bool) error {
	e, ok := r.flights[id]
	if !ok {
		return ErrNotFound
	}
	e.Selected = value
	return nil
}

func (r *Registry) Has(id string) bool {
	_, ok := r.flights[id]
	return ok
}

func (r *Registry) Len() int { return len(r.flights) }

// Entities returns a copy of every tracked flight ordered by id.
func (r *Registry) Entities() []Entity {
	out := make([]Entity, 0, len(r.flights))
	for _, e := range r.flights {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Registry) Clear() {
	r.flights = map[string]*Entity{}
}
