package meshdog

import (
	list "github.com/bahlo/generic-list-go"
)

// BoundaryLoops returns the boundary loops of the mesh as vertex index lists.
// Each loop follows the winding of the faces adjacent to it.
// A closed mesh has no boundary loops.
func (m *Mesh) BoundaryLoops() [][]int {
	visited := make(map[int]bool)
	var loops [][]int

	for b, he := range m.halfedges {
		if he.Face >= 0 || visited[b] {
			continue
		}

		// walking boundary half-edges runs against the face winding,
		// so the loop is built front-first
		loop := list.New[int]()
		h := b
		for h >= 0 && !visited[h] {
			visited[h] = true
			loop.PushFront(m.halfedges[h].From)
			h = m.halfedges[h].Next
		}

		vs := make([]int, 0, loop.Len())
		for e := loop.Front(); e != nil; e = e.Next() {
			vs = append(vs, e.Value)
		}
		loops = append(loops, vs)
	}

	return loops
}
