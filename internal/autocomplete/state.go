package autocomplete

// State tracks the currently offered suggestion set and which entry is
// selected. Cycling wraps around in both directions and is a no-op while
// the set is empty.
type State struct {
	Active       bool
	Suggestions  []Suggestion
	Selected     int
	TriggerStart int
}

// Activate replaces the offered set and resets the selection.
func (s *State) Activate(suggestions []Suggestion, triggerStart int) {
	s.Active = true
	s.Suggestions = suggestions
	s.Selected = 0
	s.TriggerStart = triggerStart
}

// Deactivate clears the offered set.
func (s *State) Deactivate() {
	s.Active = false
	s.Suggestions = nil
	s.Selected = 0
}

// Next rotates the selection forward.
func (s *State) Next() {
	if len(s.Suggestions) > 0 {
		s.Selected = (s.Selected + 1) % len(s.Suggestions)
	}
}

// Prev rotates the selection backward.
func (s *State) Prev() {
	if len(s.Suggestions) == 0 {
		return
	}
	if s.Selected == 0 {
		s.Selected = len(s.Suggestions) - 1
	} else {
		s.Selected--
	}
}

// Current returns the selected suggestion, if any.
func (s *State) Current() (Suggestion, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Suggestions) {
		return Suggestion{}, false
	}
	return s.Suggestions[s.Selected], true
}
