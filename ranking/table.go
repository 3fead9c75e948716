package ranking

// DefaultCapacity is the leaderboard size used when none is configured.
const DefaultCapacity = 10

// Entry is the leaderboard projection of a tracked flight.
type Entry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Symbol string `json:"symbol"`
}

// Table is a leaderboard bounded to a fixed capacity.
type Table struct {
	capacity int
	entries  []Entry
}

// New returns an empty table. A non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *Table {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Table{capacity: capacity, entries: make([]Entry, 0, capacity+1)}
}

func (t *Table) Cap() int { return t.capacity }

func (t *Table) Len() int { return len(t.entries) }

// Floor returns the lowest ranked score; ok is false when the table is empty.
func (t *Table) Floor() (int, bool) {
	if len(t.entries) == 0 {
		return 0, false
	}
	return t.entries[len(t.entries)-1].Score, true
}

func (t *Table) full() bool { return len(t.entries) >= t.capacity }

// Rank inserts e at its score position and returns the 0-based index. It
// reports false, leaving the table untouched, when the table is full and
// e.Score does not beat the floor. Callers must Remove e.ID first if it may
// already be ranked.
func (t *Table) Rank(e Entry) (int, bool) {
	if t.full() && e.Score <= t.entries[len(t.entries)-1].Score {
		return -1, false
	}
	idx := t.insertionIndex(e.Score)
	t.entries = append(t.entries, Entry{})
	copy(t.entries[idx+1:], t.entries[idx:])
	t.entries[idx] = e
	if len(t.entries) > t.capacity {
		t.entries = t.entries[:t.capacity]
	}
	return idx, true
}

// insertionIndex is the first index whose score is not greater than score,
// which places a new entry ahead of existing equal scores.
func (t *Table) insertionIndex(score int) int {
	for i, cur := range t.entries {
		if cur.Score <= score {
			return i
		}
	}
	return len(t.entries)
}

// Remove drops the entry for id, if any.
func (t *Table) Remove(id string) bool {
	i := t.Position(id)
	if i < 0 {
		return false
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	return true
}

// Upsert replaces any entry for e.ID with e at its new rank and reports
// whether the table content changed. An id that was ranked always gets its
// slot back since removing it freed one.
func (t *Table) Upsert(e Entry) bool {
	before := t.Position(e.ID)
	var prev Entry
	if before >= 0 {
		prev = t.entries[before]
	}
	t.Remove(e.ID)
	after, inserted := t.Rank(e)
	if before < 0 {
		return inserted
	}
	return after != before || prev != e
}

// Position returns the 0-based rank of id or -1.
func (t *Table) Position(id string) int {
	for i, cur := range t.entries {
		if cur.ID == id {
			return i
		}
	}
	return -1
}

// Entries returns a copy of the ranked entries, highest score first.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Table) Clear() {
	t.entries = t.entries[:0]
}
