package settings

// Priority bounds of a course.
const (
	MinPriority = 0
	MaxPriority = 10
)

// ProtectedPriority is the priority index from which a course keeps its
// computed dates regardless of daily load.
const ProtectedPriority = 7

// DefaultSessionCount is used for a priority with no table entry.
const DefaultSessionCount = 3

// DefaultRevisionTable is seeded into an empty store.
var DefaultRevisionTable = map[int]int{
	0:  2,
	1:  2,
	2:  3,
	3:  4,
	4:  5,
	5:  6,
	6:  6,
	7:  7,
	8:  8,
	9:  9,
	10: 10,
}

// RevisionTable maps a priority index to the number of sessions planned for
// a course.
type RevisionTable map[int]int

// ClampPriority forces a priority index into [MinPriority, MaxPriority].
func ClampPriority(priority int) int {
	return max(MinPriority, min(MaxPriority, priority))
}

// SessionsFor returns the number of sessions for a priority index. Out of
// range indices are clamped; missing entries fall back to DefaultSessionCount.
func (t RevisionTable) SessionsFor(priority int) int {
	n, ok := t[ClampPriority(priority)]
	if !ok {
		return DefaultSessionCount
	}
	return max(1, n)
}
