package navigation

import "github.com/lixenwraith/tilepath/core"

// --- Frontier: min-heap on (f, insertion order) ---

// frontierEntry references an arena node
// seq preserves first-seen preference among equal f, matching a linear scan over an insertion-ordered list
type frontierEntry struct {
	idx int
	f   int
	seq int
}

func (a frontierEntry) less(b frontierEntry) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

type frontier struct {
	heap []frontierEntry
	seq  int
}

func newFrontier(capacity int) frontier {
	return frontier{heap: make([]frontierEntry, 0, capacity)}
}

func (q *frontier) len() int {
	return len(q.heap)
}

func (q *frontier) push(idx, f int) {
	q.heap = append(q.heap, frontierEntry{idx: idx, f: f, seq: q.seq})
	q.seq++

	// Sift up
	h := q.heap
	i := len(h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !h[i].less(h[parent]) {
			break
		}
		h[parent], h[i] = h[i], h[parent]
		i = parent
	}
}

// pop removes the cheapest entry, false when empty
func (q *frontier) pop() (int, bool) {
	n := len(q.heap)
	if n == 0 {
		return 0, false
	}
	h := q.heap
	top := h[0]
	h[0] = h[n-1]
	h = h[:n-1]
	q.heap = h

	// Sift down
	i := 0
	for {
		left := 2*i + 1
		if left >= len(h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(h) && h[right].less(h[left]) {
			smallest = right
		}
		if !h[smallest].less(h[i]) {
			break
		}
		h[i], h[smallest] = h[smallest], h[i]
		i = smallest
	}
	return top.idx, true
}

// --- Visited: cheapest known node per cell ---

type visitEntry struct {
	idx     int
	blocked bool // Cell answered impassable; node was never expanded
}

type visited map[core.Cell]visitEntry

// admit records node idx for its cell, replacing the current entry only if strictly cheaper
// Descendants of a replaced entry are left as they are
func (v visited) admit(arena []searchNode, idx int, blocked bool) {
	pos := arena[idx].pos
	cur, ok := v[pos]
	if !ok || arena[idx].f < arena[cur.idx].f {
		v[pos] = visitEntry{idx: idx, blocked: blocked}
	}
}
