package crawl

// Queue is a bounded FIFO of URLs that admits each URL once.
type Queue struct {
	items []string
	seen  map[string]struct{}
	next  int
	limit int
}

// NewQueue creates a queue that accepts at most limit URLs.
func NewQueue(limit int) *Queue {
	return &Queue{seen: make(map[string]struct{}), limit: limit}
}

// Add enqueues url unless it was seen before or the queue is full.
// It reports whether url was added.
func (q *Queue) Add(url string) bool {
	if _, ok := q.seen[url]; ok || len(q.items) >= q.limit {
		return false
	}
	q.seen[url] = struct{}{}
	q.items = append(q.items, url)
	return true
}

// HasNext reports whether unprocessed URLs remain.
func (q *Queue) HasNext() bool {
	return q.next < len(q.items)
}

// Next returns the next unprocessed URL.
func (q *Queue) Next() string {
	url := q.items[q.next]
	q.next++
	return url
}

// All returns every admitted URL in admission order.
func (q *Queue) All() []string {
	return q.items
}
