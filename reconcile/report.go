package reconcile

// Status classifies a key in a change report.
type Status string

const (
	StatusUnused           Status = "unused"
	StatusNew              Status = "new item added"
	StatusNeedsTranslation Status = "needs translation"
)

// Entry is one line of a report.
type Entry struct {
	Key    string
	Status Status
}

// Report maps dotted keys to statuses in the order they were recorded.
type Report struct {
	entries []Entry
	index   map[string]int
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{index: make(map[string]int)}
}

// Add records status for key unless the key already has one.
// It returns false when the key was already present.
func (r *Report) Add(key string, status Status) bool {
	if _, ok := r.index[key]; ok {
		return false
	}
	r.index[key] = len(r.entries)
	r.entries = append(r.entries, Entry{Key: key, Status: status})
	return true
}

// Get returns the status recorded for key.
func (r *Report) Get(key string) (Status, bool) {
	i, ok := r.index[key]
	if !ok {
		return "", false
	}
	return r.entries[i].Status, true
}

// Len returns the number of entries.
func (r *Report) Len() int { return len(r.entries) }

// Entries returns the entries in recording order.
func (r *Report) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Count returns how many entries carry status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, e := range r.entries {
		if e.Status == status {
			n++
		}
	}
	return n
}
