package lifecycle

import (
	"fmt"
	"strings"
)

// sortModules linearizes the modules with Kahn's algorithm so that every
// module appears after all of its dependencies. Ties among ready modules are
// broken by registration order (first registered, first started), which makes
// the startup sequence deterministic across runs given identical registration
// order. Returns the order as registration indexes.
//
// If the output is shorter than the module count, a cycle exists among the
// unresolved modules and the returned error names them.
func sortModules(modules []Module, g *graph) ([]int, error) {
	inDegree := make([]int, len(g.inDegree))
	copy(inDegree, g.inDegree)

	order := make([]int, 0, len(modules))
	placed := make([]bool, len(modules))

	for len(order) < len(modules) {
		// Lowest registration index among ready modules wins.
		next := -1
		for i := range modules {
			if !placed[i] && inDegree[i] == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			break
		}
		placed[next] = true
		order = append(order, next)
		for _, d := range g.dependents[next] {
			inDegree[d]--
		}
	}

	if len(order) < len(modules) {
		var unresolved []string
		for i, m := range modules {
			if !placed[i] {
				unresolved = append(unresolved, m.Name)
			}
		}
		return nil, fmt.Errorf("%w among modules: %s",
			ErrDependencyCycle, strings.Join(unresolved, ", "))
	}
	return order, nil
}

// Order computes the deterministic startup order for a set of module
// descriptors without registering or starting anything. It is used by tools
// that want to inspect or validate a boot plan.
func Order(modules []Module) ([]string, error) {
	for _, m := range modules {
		if err := m.validate(); err != nil {
			return nil, err
		}
	}
	g, err := buildGraph(modules)
	if err != nil {
		return nil, err
	}
	order, err := sortModules(modules, g)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(order))
	for i, idx := range order {
		names[i] = modules[idx].Name
	}
	return names, nil
}
