// SPDX-License-Identifier: MIT

package pivot

// Components partitions the nodes that have at least one neighbour into the
// connected components of the correlation graph, discovered breadth-first.
// Each component lists its nodes in visit order starting from its smallest
// node; components are ordered by that smallest node. Isolated nodes are
// omitted.
// Complexity: O(N²) over the adjacency matrix.
func (g *Graph) Components() [][]int {
	n := len(g.Adjacency)
	visited := make([]bool, n)
	var out [][]int
	queue := make([]int, 0, n)

	for root := 0; root < n; root++ {
		if visited[root] || g.Degree(root) == 0 {
			continue
		}
		visited[root] = true
		queue = append(queue[:0], root)
		var comp []int
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			comp = append(comp, u)
			for v, ok := range g.Adjacency[u] {
				if ok && v != u && !visited[v] {
					visited[v] = true
					queue = append(queue, v)
				}
			}
		}
		out = append(out, comp)
	}

	return out
}
