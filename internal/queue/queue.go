// Package queue provides a bounded top-k candidate set for similarity
// search.
package queue

// Item is a scored candidate.
type Item struct {
	ID    string
	Score float32
}

// TopK keeps the k best candidates seen so far in a min-heap keyed on
// (score, id): the root is always the current worst member. Ordering is
// score descending with ties broken by id ascending, so membership at the
// k boundary is deterministic.
type TopK struct {
	k     int
	items []Item
}

// NewTopK creates a bounded candidate set of capacity k.
func NewTopK(k int) *TopK {
	hint := k
	if hint > 1024 {
		hint = 1024 // avoid huge upfront allocations for oversized k
	}
	if hint < 0 {
		hint = 0
	}
	return &TopK{
		k:     k,
		items: make([]Item, 0, hint),
	}
}

// Len returns the number of candidates currently held.
func (q *TopK) Len() int {
	return len(q.items)
}

// Consider offers a candidate. While the set holds fewer than k members
// the candidate is always admitted; afterwards it replaces the current
// worst member only if it beats it.
func (q *TopK) Consider(it Item) {
	if len(q.items) < q.k {
		q.items = append(q.items, it)
		q.siftUp(len(q.items) - 1)
		return
	}
	if q.k <= 0 || !worse(q.items[0], it) {
		return
	}
	q.items[0] = it
	q.siftDown(0)
}

// Results drains the set, ordered by score descending then id ascending.
func (q *TopK) Results() []Item {
	out := make([]Item, len(q.items))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = q.pop()
	}
	return out
}

// worse reports whether a ranks strictly below b.
func worse(a, b Item) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.ID > b.ID
}

func (q *TopK) pop() Item {
	n := len(q.items)
	root := q.items[0]
	last := q.items[n-1]
	q.items = q.items[:n-1]
	if n-1 > 0 {
		q.items[0] = last
		q.siftDown(0)
	}
	return root
}

func (q *TopK) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !worse(q.items[i], q.items[p]) {
			return
		}
		q.items[i], q.items[p] = q.items[p], q.items[i]
		i = p
	}
}

func (q *TopK) siftDown(i int) {
	n := len(q.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		w := l
		if r := l + 1; r < n && worse(q.items[r], q.items[l]) {
			w = r
		}
		if !worse(q.items[w], q.items[i]) {
			return
		}
		q.items[i], q.items[w] = q.items[w], q.items[i]
		i = w
	}
}
