package selection

import (
	"folioadmin/internal/eventbus"
)

// Service owns one Selection Set. It is not safe for concurrent use; the
// UI update loop is its only caller.
type Service struct {
	state *State
	bus   eventbus.EventBus
}

// NewService creates an empty selection. bus may be nil.
func NewService(bus eventbus.EventBus) *Service {
	return &Service{
		state: newState(),
		bus:   bus,
	}
}

// Toggle adds id if absent, removes it otherwise, and reports whether id
// is selected afterwards.
func (s *Service) Toggle(id int) bool {
	var added, removed []int
	selected := !s.state.contains(id)

	if selected {
		s.state.add(id)
		added = append(added, id)
	} else {
		s.state.remove(id)
		removed = append(removed, id)
	}

	if s.bus != nil {
		s.bus.Publish(eventbus.SelectionChangedEvent{
			Added:   added,
			Removed: removed,
			Total:   s.Count(),
		})
	}
	return selected
}

// IsSelected checks if a photo is selected
func (s *Service) IsSelected(id int) bool {
	return s.state.contains(id)
}

// Selected returns a copy of the selected ids in selection order
func (s *Service) Selected() []int {
	out := make([]int, len(s.state.order))
	copy(out, s.state.order)
	return out
}

// Count returns the number of selected items
func (s *Service) Count() int {
	return len(s.state.order)
}

// HasSelection returns true if anything is selected
func (s *Service) HasSelection() bool {
	return s.Count() > 0
}
