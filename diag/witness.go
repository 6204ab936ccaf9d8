package diag

import "github.com/smlang/smsolve/explode"

// witnessQueueItem pairs an exploded node with the path of edges taken to
// reach it, mirroring the teacher's bfs.queueItem (id/depth/parent) —
// adapted to carry a full edge path instead of a parent pointer, since the
// witness itself (not just its length) is the result EmitAll needs.
type witnessQueueItem struct {
	node *explode.ExplodedNode
	path []*explode.ExplodedEdge
}

// witnessWalker finds the shortest sequence of exploded edges from an
// entrypoint to a target node, adapted from the teacher's bfs.walker
// (queue/visited/enqueue/loop shape) to return the path rather than
// distance/parent maps.
type witnessWalker struct {
	queue   []witnessQueueItem
	visited map[*explode.ExplodedNode]bool
}

func newWitnessWalker() *witnessWalker {
	return &witnessWalker{visited: make(map[*explode.ExplodedNode]bool)}
}

// find returns the shortest witness path from entry to target, or nil if
// target is unreachable from entry.
func (w *witnessWalker) find(entry, target *explode.ExplodedNode) []*explode.ExplodedEdge {
	if entry == target {
		return nil
	}
	w.enqueue(entry, nil)
	return w.loop(target)
}

func (w *witnessWalker) enqueue(n *explode.ExplodedNode, path []*explode.ExplodedEdge) {
	if w.visited[n] {
		return
	}
	w.visited[n] = true
	w.queue = append(w.queue, witnessQueueItem{node: n, path: path})
}

func (w *witnessWalker) loop(target *explode.ExplodedNode) []*explode.ExplodedEdge {
	for len(w.queue) > 0 {
		item := w.dequeue()
		for _, e := range item.node.Succs() {
			nextPath := append(append([]*explode.ExplodedEdge(nil), item.path...), e)
			if e.Dst == target {
				return nextPath
			}
			w.enqueue(e.Dst, nextPath)
		}
	}
	return nil
}

func (w *witnessWalker) dequeue() witnessQueueItem {
	item := w.queue[0]
	w.queue = w.queue[1:]
	return item
}

// shortestWitness runs witnessWalker once per entrypoint and keeps the
// minimum-length result (spec.md §4.5).
func shortestWitness(entries []*explode.ExplodedNode, target *explode.ExplodedNode) []*explode.ExplodedEdge {
	var best []*explode.ExplodedEdge
	for _, entry := range entries {
		path := newWitnessWalker().find(entry, target)
		if path == nil {
			continue
		}
		if best == nil || len(path) < len(best) {
			best = path
		}
	}
	return best
}
