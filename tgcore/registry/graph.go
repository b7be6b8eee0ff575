/*
   Copyright 2026 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

// graph is the dependency graph of registered types. An edge from A to B
// means B has a field of type A, so A sorts before B.
type graph struct {
	adjacency map[string][]string
	nodes     []string
	nodeSet   map[string]bool
}

func newGraph() *graph {
	return &graph{
		adjacency: make(map[string][]string),
		nodeSet:   make(map[string]bool),
	}
}

func (g *graph) addNode(name string) {
	if g.nodeSet[name] {
		return
	}
	g.nodeSet[name] = true
	g.nodes = append(g.nodes, name)
}

func (g *graph) addEdge(from, to string) {
	g.addNode(from)
	g.addNode(to)
	g.adjacency[from] = append(g.adjacency[from], to)
}

// sort orders the nodes with Kahn's algorithm. Nodes at the same level keep
// insertion order. When the graph has a cycle, sort returns ok == false and
// the nodes left with incoming edges.
func (g *graph) sort() (order []string, stuck []string, ok bool) {
	inDegree := make(map[string]int, len(g.nodes))
	for _, node := range g.nodes {
		inDegree[node] = 0
	}
	for _, neighbors := range g.adjacency {
		for _, n := range neighbors {
			inDegree[n]++
		}
	}

	queue := make([]string, 0, len(g.nodes))
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		for _, n := range g.adjacency[node] {
			inDegree[n]--
			if inDegree[n] == 0 {
				queue = append(queue, n)
			}
		}
	}

	if len(order) == len(g.nodes) {
		return order, nil, true
	}
	for _, node := range g.nodes {
		if inDegree[node] > 0 {
			stuck = append(stuck, node)
		}
	}
	return nil, stuck, false
}

// path returns a path of edges from -> ... -> to, or nil.
func (g *graph) path(from, to string) []string {
	visited := make(map[string]bool)
	var walk func(node string) []string
	walk = func(node string) []string {
		if visited[node] {
			return nil
		}
		visited[node] = true
		for _, n := range g.adjacency[node] {
			if n == to {
				return []string{node, n}
			}
			if rest := walk(n); rest != nil {
				return append([]string{node}, rest...)
			}
		}
		return nil
	}
	return walk(from)
}
