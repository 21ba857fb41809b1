package resolve

import "sort"

// State maps each tracked function-pointer variable to the name of
// the function most recently assigned to it, as of one program point.
// An empty target means the variable is declared but unresolved.
//
// States are cloned, never shared, when the walk enters a conditional
// branch or nested block; loop bodies mutate the live state so their
// effect is visible to the statements that follow (fold-back).
type State struct {
	targets map[string]string
}

// NewState creates an empty resolution state.
func NewState() *State {
	return &State{targets: make(map[string]string)}
}

// Declare starts tracking a function-pointer variable with no target.
// Re-declaring a tracked variable resets its resolution.
func (s *State) Declare(name string) {
	s.targets[name] = ""
}

// Bind records target as the current resolution of a tracked
// variable. Binding an untracked name is a no-op.
func (s *State) Bind(name, target string) {
	if _, ok := s.targets[name]; ok {
		s.targets[name] = target
	}
}

// Tracked reports whether name is a tracked function-pointer variable.
func (s *State) Tracked(name string) bool {
	_, ok := s.targets[name]
	return ok
}

// Lookup returns the resolved target of name. ok is false when the
// variable is untracked or has no known target at this point.
func (s *State) Lookup(name string) (target string, ok bool) {
	t, tracked := s.targets[name]
	if !tracked || t == "" {
		return "", false
	}
	return t, true
}

// Clone returns an independent copy of the state.
func (s *State) Clone() *State {
	out := &State{targets: make(map[string]string, len(s.targets))}
	for k, v := range s.targets {
		out.targets[k] = v
	}
	return out
}

// Names returns the tracked variable names in sorted order.
func (s *State) Names() []string {
	names := make([]string, 0, len(s.targets))
	for k := range s.targets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of tracked variables.
func (s *State) Len() int {
	return len(s.targets)
}
