// Package slugs turns user input into the ordered list of article slugs.
// Maintains a seen set so the same article is processed only once per run.
package slugs

// Queue is a FIFO of slugs with deduplication.
type Queue struct {
	items []string
	seen  map[string]bool
	idx   int // current read position
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		seen: make(map[string]bool),
	}
}

// Add enqueues a slug if it hasn't been seen before. It reports whether the
// slug was added.
func (q *Queue) Add(slug string) bool {
	if q.seen[slug] {
		return false
	}
	q.seen[slug] = true
	q.items = append(q.items, slug)
	return true
}

// HasNext returns true if there are unprocessed slugs.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed slug and advances the pointer.
func (q *Queue) Next() string {
	slug := q.items[q.idx]
	q.idx++
	return slug
}

// Len returns the number of unique slugs queued.
func (q *Queue) Len() int {
	return len(q.items)
}

// All returns all queued slugs in first-seen order.
func (q *Queue) All() []string {
	return q.items
}
