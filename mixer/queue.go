// SPDX-License-Identifier: EPL-2.0

package mixer

const (
	// sentinel is the permanent head node. It is never played and never
	// unlinked.
	sentinel int32 = 0
	none     int32 = -1
)

type node struct {
	voice Voice
	next  int32
	live  bool
}

// PlaybackQueue is a singly-linked list of voices stored in an arena. Links
// are indexes, so unlinking a node while walking the list cannot leave the
// walker holding a dangling predecessor. Freed nodes are chained through
// the same next field and reused, which keeps removal allocation free.
//
// PlaybackQueue is not safe for concurrent use.
type PlaybackQueue struct {
	nodes []node
	tail  int32
	free  int32
	size  int
}

// NewPlaybackQueue preallocates room for capacity voices.
func NewPlaybackQueue(capacity int) *PlaybackQueue {
	q := &PlaybackQueue{
		nodes: make([]node, 1, 1+max(capacity, 0)),
		tail:  sentinel,
		free:  none,
	}
	q.nodes[sentinel] = node{next: none, live: true}

	return q
}

// Len is the number of queued voices, not counting the sentinel.
func (q *PlaybackQueue) Len() int { return q.size }

// push appends v at the tail. It may grow the arena, so it must not run
// while the list is being walked.
func (q *PlaybackQueue) push(v Voice) int32 {
	idx := q.free
	if idx != none {
		q.free = q.nodes[idx].next
	} else {
		q.nodes = append(q.nodes, node{})
		idx = int32(len(q.nodes) - 1)
	}

	q.nodes[idx] = node{voice: v, next: none, live: true}
	q.nodes[q.tail].next = idx
	q.tail = idx
	q.size++

	return idx
}

func (q *PlaybackQueue) first() int32 { return q.nodes[sentinel].next }

func (q *PlaybackQueue) next(idx int32) int32 { return q.nodes[idx].next }

func (q *PlaybackQueue) voice(idx int32) *Voice { return &q.nodes[idx].voice }

// unlink removes cur, whose predecessor is prev, and returns the node that
// followed it.
func (q *PlaybackQueue) unlink(prev, cur int32) int32 {
	if cur == sentinel || cur == none {
		return none
	}

	next := q.nodes[cur].next
	q.nodes[prev].next = next
	if q.tail == cur {
		q.tail = prev
	}

	q.nodes[cur] = node{next: q.free}
	q.free = cur
	q.size--

	return next
}

// each visits queued voices in order until fn returns false.
func (q *PlaybackQueue) each(fn func(*Voice) bool) {
	for idx := q.first(); idx != none; idx = q.next(idx) {
		if !fn(q.voice(idx)) {
			return
		}
	}
}
