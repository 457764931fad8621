package analysis

import (
	"container/heap"
	"fmt"

	"github.com/speleotools/caveline/stationgraph"
)

// ShortestPath returns the minimum-weight path between two stations as a
// Section. The boolean reports whether a path exists; a disconnected pair
// is a normal (Section{}, false, nil) outcome. Ties between equal-weight
// paths resolve by discovery order, so repeated runs return the same
// Section. Asking for from == to yields the single-station section of
// length zero.
//
// Complexity: O((V + E) log V)
func ShortestPath(g *stationgraph.Graph, from, to string) (Section, bool, error) {
	if g == nil {
		return Section{}, false, ErrNilGraph
	}
	if !g.HasStation(from) {
		return Section{}, false, fmt.Errorf("%w: %q", ErrStationNotFound, from)
	}
	if !g.HasStation(to) {
		return Section{}, false, fmt.Errorf("%w: %q", ErrStationNotFound, to)
	}
	if from == to {
		return Section{From: from, To: to, Path: []string{from}}, true, nil
	}

	// 1) Initialize tentative distances; lazy-deletion priority queue.
	dist := map[string]float64{from: 0}
	prev := make(map[string]string)
	done := make(map[string]struct{})

	pq := &stationQueue{}
	heap.Init(pq)
	pq.push(from, 0)

	// 2) Settle stations in distance order until `to` settles or the
	//    queue drains.
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*queueItem)
		if _, settled := done[cur.name]; settled {
			continue // stale entry left behind by a later relaxation
		}
		done[cur.name] = struct{}{}
		if cur.name == to {
			break
		}

		incident, err := g.Incident(cur.name)
		if err != nil {
			return Section{}, false, err
		}
		for _, e := range incident {
			next := e.Other(cur.name)
			if _, settled := done[next]; settled {
				continue
			}
			cand := cur.dist + e.Weight
			if old, seen := dist[next]; !seen || cand < old {
				dist[next] = cand
				prev[next] = cur.name
				pq.push(next, cand)
			}
		}
	}

	if _, reached := done[to]; !reached {
		return Section{}, false, nil
	}

	// 3) Rebuild the path backwards over the predecessor map.
	path := []string{to}
	for at := to; at != from; at = prev[at] {
		path = append(path, prev[at])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return Section{From: from, To: to, Path: path, Length: dist[to]}, true, nil
}

// queueItem is one pending station in the Dijkstra frontier. seq is the
// insertion counter used to break distance ties deterministically.
type queueItem struct {
	name string
	dist float64
	seq  int
}

// stationQueue is a min-heap over (dist, seq).
type stationQueue struct {
	items []*queueItem
	next  int
}

func (q *stationQueue) push(name string, dist float64) {
	heap.Push(q, &queueItem{name: name, dist: dist, seq: q.next})
	q.next++
}

func (q *stationQueue) Len() int { return len(q.items) }

func (q *stationQueue) Less(i, j int) bool {
	if q.items[i].dist != q.items[j].dist {
		return q.items[i].dist < q.items[j].dist
	}

	return q.items[i].seq < q.items[j].seq
}

func (q *stationQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *stationQueue) Push(x any) { q.items = append(q.items, x.(*queueItem)) }

func (q *stationQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]

	return item
}
