package selection

// State holds the Selection Set: unique photo ids in the order they were
// first selected.
type State struct {
	order   []int
	members map[int]struct{}
}

func newState() *State {
	return &State{members: make(map[int]struct{})}
}

func (s *State) contains(id int) bool {
	_, ok := s.members[id]
	return ok
}

func (s *State) add(id int) {
	s.members[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *State) remove(id int) {
	delete(s.members, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
