package record

// LatestIndex incrementally tracks the winning record per addressable
// slot as records arrive, so views never rescan the whole result set
// to answer "which definition is current".
//
// Conflict rule (latest-writer-wins): higher CreatedAt wins; on a
// CreatedAt tie the lexically smaller ID wins, matching how relays
// break ties, so every client converges on the same winner regardless
// of arrival order.
type LatestIndex struct {
	latest map[Coordinate]Record
}

// NewLatestIndex returns an empty index.
func NewLatestIndex() *LatestIndex {
	return &LatestIndex{latest: make(map[Coordinate]Record)}
}

// Add offers a record to the index. Non-addressable records are
// ignored. Returns true when the record became (or already was) the
// winner for its slot.
func (ix *LatestIndex) Add(r Record) bool {
	coord, ok := CoordinateOf(r)
	if !ok {
		return false
	}
	cur, exists := ix.latest[coord]
	if !exists || Supersedes(r, cur) {
		ix.latest[coord] = r
		return true
	}
	return cur.ID == r.ID
}

// Get returns the current winner for a coordinate.
func (ix *LatestIndex) Get(coord Coordinate) (Record, bool) {
	r, ok := ix.latest[coord]
	return r, ok
}

// Records returns every current winner. Order is unspecified.
func (ix *LatestIndex) Records() []Record {
	out := make([]Record, 0, len(ix.latest))
	for _, r := range ix.latest {
		out = append(out, r)
	}
	return out
}

// Supersedes reports whether a should replace b in a derived view.
// Both records are assumed to share an addressable slot.
func Supersedes(a, b Record) bool {
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt > b.CreatedAt
	}
	return a.ID < b.ID
}

// Latest reduces a record set to the winner per addressable slot.
// Input order is irrelevant; the result is the same for any
// permutation of the same set.
func Latest(records []Record) []Record {
	ix := NewLatestIndex()
	for _, r := range records {
		ix.Add(r)
	}
	return ix.Records()
}

// Dedupe removes records with duplicate IDs, keeping first occurrence
// order. Two records with the same ID are the same record.
func Dedupe(records []Record) []Record {
	seen := make(map[string]bool, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out
}
