// Package banner keeps the ordered queue of success and error banners shown
// above each screen.
package banner

import (
	"sync"
	"time"
)

// Kind is the banner severity
type Kind int

const (
	Info Kind = iota
	Success
	Error
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Banner is one queued message
type Banner struct {
	ID      uint64
	Kind    Kind
	Text    string
	Repeats int // number of identical banners merged into this one
	Posted  time.Time
}

// Queue is an ordered list of banners with explicit dismissal and expiry.
// Error banners stay until dismissed; other kinds expire after the TTL.
type Queue struct {
	mu      sync.Mutex
	items   []Banner
	nextID  uint64
	ttl     time.Duration
	limit   int
	nowFunc func() time.Time
}

// NewQueue creates a queue. A zero ttl disables expiry; limit caps the number
// of stored banners, dropping the oldest first.
func NewQueue(ttl time.Duration, limit int) *Queue {
	if limit <= 0 {
		limit = 20
	}
	return &Queue{ttl: ttl, limit: limit, nowFunc: time.Now}
}

// Push appends a banner and returns its ID. A banner identical to the newest
// one is merged into it instead.
func (q *Queue) Push(kind Kind, text string) uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.nowFunc()
	if n := len(q.items); n > 0 {
		last := &q.items[n-1]
		if last.Kind == kind && last.Text == text {
			last.Repeats++
			last.Posted = now
			return last.ID
		}
	}

	q.nextID++
	q.items = append(q.items, Banner{ID: q.nextID, Kind: kind, Text: text, Posted: now})
	if len(q.items) > q.limit {
		q.items = append([]Banner(nil), q.items[len(q.items)-q.limit:]...)
	}
	return q.nextID
}

// Success queues a success banner
func (q *Queue) Success(text string) uint64 { return q.Push(Success, text) }

// Error queues an error banner
func (q *Queue) Error(text string) uint64 { return q.Push(Error, text) }

// Info queues an informational banner
func (q *Queue) Info(text string) uint64 { return q.Push(Info, text) }

// Dismiss removes the banner with the given ID
func (q *Queue) Dismiss(id uint64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, b := range q.items {
		if b.ID == id {
			q.items = append(q.items[:i:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// DismissNewest removes the most recent banner
func (q *Queue) DismissNewest() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return false
	}
	q.items = q.items[:len(q.items)-1]
	return true
}

// Clear removes every banner
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
}

// Expire drops non-error banners older than the TTL and returns how many went
func (q *Queue) Expire(now time.Time) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.ttl <= 0 {
		return 0
	}
	kept := q.items[:0]
	dropped := 0
	for _, b := range q.items {
		if b.Kind != Error && now.Sub(b.Posted) >= q.ttl {
			dropped++
			continue
		}
		kept = append(kept, b)
	}
	q.items = kept
	return dropped
}

// Visible returns up to n banners, newest last
func (q *Queue) Visible(n int) []Banner {
	q.mu.Lock()
	defer q.mu.Unlock()

	start := 0
	if n > 0 && len(q.items) > n {
		start = len(q.items) - n
	}
	return append([]Banner(nil), q.items[start:]...)
}

// Len returns the number of queued banners
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
