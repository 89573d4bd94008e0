package graph

import "sort"

// Degree holds the in- and out-degree of a unit.
type Degree struct {
	In  int `json:"in"`
	Out int `json:"out"`
}

// Diagnostics summarizes the structural shape of the graph: cycles,
// connectivity, degree distribution, and axiom usage. It is purely
// structural and never inspects claim content.
type Diagnostics struct {
	NodeCount        int                 `json:"node_count"`
	RelationCount    int                 `json:"relation_count"`
	AttackEdgeCount  int                 `json:"attack_edge_count"`
	SupportEdgeCount int                 `json:"support_edge_count"`
	Cycles           [][]string          `json:"cycles"`
	WeakComponents   [][]string          `json:"components"`
	StrongComponents [][]string          `json:"strongly_connected_components"`
	Degrees          map[string]Degree   `json:"degrees"`
	IsolatedUnits    []string            `json:"isolated_units"`
	UnsupportedUnits []string            `json:"unsupported_units"`
	AxiomClaims      []string            `json:"axiom_claims"`
	AxiomWarrants    []string            `json:"axiom_warrants"`
}

// Diagnostics computes structural diagnostics over the claim-level graph.
// Results use canonical ordering throughout so repeated calls are identical.
func (m *Model) Diagnostics() *Diagnostics {
	nodes := m.UnitIDs()
	adjacency := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		adjacency[n] = nil
	}
	degrees := make(map[string]Degree, len(nodes))
	supportIn := make(map[string]int, len(nodes))
	attackCount, supportCount := 0, 0
	for _, r := range m.relations {
		adjacency[r.Src] = append(adjacency[r.Src], r.Dst)
		d := degrees[r.Src]
		d.Out++
		degrees[r.Src] = d
		d = degrees[r.Dst]
		d.In++
		degrees[r.Dst] = d
		if r.Kind == KindSupport {
			supportCount++
			supportIn[r.Dst]++
		} else {
			attackCount++
		}
	}
	for _, n := range nodes {
		if _, ok := degrees[n]; !ok {
			degrees[n] = Degree{}
		}
		sort.Strings(adjacency[n])
	}

	var isolated, unsupported []string
	for _, n := range nodes {
		d := degrees[n]
		if d.In == 0 && d.Out == 0 {
			isolated = append(isolated, n)
		}
		if supportIn[n] == 0 {
			unsupported = append(unsupported, n)
		}
	}

	var axiomClaims []string
	for _, n := range nodes {
		if m.units[n].IsAxiom {
			axiomClaims = append(axiomClaims, n)
		}
	}
	var axiomWarrants []string
	for _, w := range m.WarrantIDs() {
		if m.warrants[w].IsAxiom {
			axiomWarrants = append(axiomWarrants, w)
		}
	}

	return &Diagnostics{
		NodeCount:        len(nodes),
		RelationCount:    len(m.relations),
		AttackEdgeCount:  attackCount,
		SupportEdgeCount: supportCount,
		Cycles:           findCycles(nodes, adjacency),
		WeakComponents:   weakComponents(nodes, m.relations),
		StrongComponents: stronglyConnected(nodes, adjacency),
		Degrees:          degrees,
		IsolatedUnits:    isolated,
		UnsupportedUnits: unsupported,
		AxiomClaims:      axiomClaims,
		AxiomWarrants:    axiomWarrants,
	}
}

// findCycles records every elementary cycle reachable by DFS, rotated so the
// lexicographically smallest node leads, deduplicated and sorted.
func findCycles(nodes []string, adjacency map[string][]string) [][]string {
	seen := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string
	found := make(map[string][]string)

	var dfs func(node string)
	dfs = func(node string) {
		seen[node] = true
		onStack[node] = true
		stack = append(stack, node)
		for _, next := range adjacency[node] {
			if !seen[next] {
				dfs(next)
			} else if onStack[next] {
				start := 0
				for i, n := range stack {
					if n == next {
						start = i
						break
					}
				}
				cycle := canonicalRotation(stack[start:])
				found[cycleKey(cycle)] = cycle
			}
		}
		stack = stack[:len(stack)-1]
		onStack[node] = false
	}
	for _, n := range nodes {
		if !seen[n] {
			dfs(n)
		}
	}

	keys := make([]string, 0, len(found))
	for k := range found {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, found[k])
	}
	return out
}

func canonicalRotation(cycle []string) []string {
	if len(cycle) == 0 {
		return nil
	}
	minIdx := 0
	for i, n := range cycle {
		if n < cycle[minIdx] {
			minIdx = i
		}
	}
	out := make([]string, 0, len(cycle))
	out = append(out, cycle[minIdx:]...)
	out = append(out, cycle[:minIdx]...)
	return out
}

func cycleKey(cycle []string) string {
	key := ""
	for _, n := range cycle {
		key += n + "\x00"
	}
	return key
}

func weakComponents(nodes []string, relations []Relation) [][]string {
	neighbors := make(map[string][]string, len(nodes))
	for _, r := range relations {
		neighbors[r.Src] = append(neighbors[r.Src], r.Dst)
		neighbors[r.Dst] = append(neighbors[r.Dst], r.Src)
	}
	visited := make(map[string]bool, len(nodes))
	var components [][]string
	for _, start := range nodes {
		if visited[start] {
			continue
		}
		var component []string
		queue := []string{start}
		visited[start] = true
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			component = append(component, n)
			for _, next := range neighbors[n] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
		sort.Strings(component)
		components = append(components, component)
	}
	sort.Slice(components, func(i, j int) bool { return components[i][0] < components[j][0] })
	return components
}

// stronglyConnected is Tarjan's algorithm; components come out sorted by
// their smallest member.
func stronglyConnected(nodes []string, adjacency map[string][]string) [][]string {
	index := 0
	indexOf := make(map[string]int, len(nodes))
	lowlink := make(map[string]int, len(nodes))
	onStack := make(map[string]bool, len(nodes))
	var stack []string
	var components [][]string

	var visit func(node string)
	visit = func(node string) {
		indexOf[node] = index
		lowlink[node] = index
		index++
		stack = append(stack, node)
		onStack[node] = true

		for _, next := range adjacency[node] {
			if _, ok := indexOf[next]; !ok {
				visit(next)
				if lowlink[next] < lowlink[node] {
					lowlink[node] = lowlink[next]
				}
			} else if onStack[next] && indexOf[next] < lowlink[node] {
				lowlink[node] = indexOf[next]
			}
		}

		if lowlink[node] == indexOf[node] {
			var component []string
			for {
				member := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[member] = false
				component = append(component, member)
				if member == node {
					break
				}
			}
			sort.Strings(component)
			components = append(components, component)
		}
	}
	for _, n := range nodes {
		if _, ok := indexOf[n]; !ok {
			visit(n)
		}
	}
	sort.Slice(components, func(i, j int) bool { return components[i][0] < components[j][0] })
	return components
}
