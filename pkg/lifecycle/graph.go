package lifecycle

import "fmt"

// graph is the transient adjacency structure built from the registered
// module list. Nodes are identified by registration index. It is discarded
// after sorting.
type graph struct {
	inDegree   []int
	dependents [][]int
}

// buildGraph computes the in-degree of every module and a forward map from
// each module to the modules that depend on it. An edge runs from dependency
// D to dependent M for every name in M.Dependencies. A dependency name with
// no matching registered module makes the set inconsistent and is reported
// before sorting begins.
func buildGraph(modules []Module) (*graph, error) {
	index := make(map[string]int, len(modules))
	for i, m := range modules {
		if _, exists := index[m.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrModuleAlreadyRegistered, m.Name)
		}
		index[m.Name] = i
	}

	g := &graph{
		inDegree:   make([]int, len(modules)),
		dependents: make([][]int, len(modules)),
	}
	for i, m := range modules {
		for _, dep := range m.Dependencies {
			j, ok := index[dep]
			if !ok {
				return nil, fmt.Errorf("%w: module %q depends on unknown module %q",
					ErrUnresolvedDependency, m.Name, dep)
			}
			g.inDegree[i]++
			g.dependents[j] = append(g.dependents[j], i)
		}
	}
	return g, nil
}
