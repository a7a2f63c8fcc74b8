package location

// Action is the outcome of a history decision.
type Action int

const (
	// ActionNone leaves the history untouched.
	ActionNone Action = iota
	// ActionPush appends a new entry.
	ActionPush
)

func (a Action) String() string {
	if a == ActionPush {
		return "push"
	}
	return "none"
}

// Policy decides whether a user-driven change grows the history. It never
// replaces entries, so every distinct edit can be undone on its own.
type Policy struct{}

// Decide returns ActionPush unless next is identical to prev.
func (Policy) Decide(prev, next Location) Action {
	if prev.Equal(next) {
		return ActionNone
	}
	return ActionPush
}

// History is an ordered stack of locations with a cursor, like a browser's
// session history. It is not safe for concurrent use.
type History struct {
	entries []Location
	index   int
}

// NewHistory starts a history whose only entry is initial.
func NewHistory(initial Location) *History {
	return &History{entries: []Location{initial}}
}

// Current returns the entry under the cursor.
func (h *History) Current() Location {
	if h == nil || len(h.entries) == 0 {
		return Location{}
	}
	return h.entries[h.index]
}

// Push drops any forward entries and appends loc as the new current entry.
func (h *History) Push(loc Location) {
	if len(h.entries) == 0 {
		h.entries = []Location{loc}
		h.index = 0
		return
	}
	h.entries = append(h.entries[:h.index+1], loc)
	h.index = len(h.entries) - 1
}

// Replace overwrites the entry under the cursor without growing the stack.
func (h *History) Replace(loc Location) {
	if len(h.entries) == 0 {
		h.entries = []Location{loc}
		h.index = 0
		return
	}
	h.entries[h.index] = loc
}

// Back moves the cursor one entry back.
func (h *History) Back() (Location, bool) {
	if h.index == 0 {
		return h.Current(), false
	}
	h.index--
	return h.entries[h.index], true
}

// Forward moves the cursor one entry forward.
func (h *History) Forward() (Location, bool) {
	if h.index >= len(h.entries)-1 {
		return h.Current(), false
	}
	h.index++
	return h.entries[h.index], true
}

// CanBack reports whether Back would move.
func (h *History) CanBack() bool { return h.index > 0 }

// CanForward reports whether Forward would move.
func (h *History) CanForward() bool { return h.index < len(h.entries)-1 }

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Index returns the cursor position (zero based).
func (h *History) Index() int { return h.index }

// Entries returns a copy of the stack.
func (h *History) Entries() []Location {
	dup := make([]Location, len(h.entries))
	copy(dup, h.entries)
	return dup
}
