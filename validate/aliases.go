package validate

import (
	"github.com/nswarm/apyxl/apyxlerr"
	"github.com/nswarm/apyxl/model"
)

// aliasAcyclicity is the fifth and final validation pass: build the directed graph
// of TypeAlias -> TypeAlias edges (an alias whose, now-qualified,
// target is itself another alias) and report one AliasCycle error per
// cycle found, rather than one error per node in the cycle.
func aliasAcyclicity(m *model.Model, errs *apyxlerr.List) {
	edges := map[string]string{} // alias id string -> target alias id string
	ids := map[string]model.EntityId{}

	var collect func(ns *model.Namespace)
	collect = func(ns *model.Namespace) {
		for _, child := range ns.Children() {
			switch c := child.(type) {
			case *model.Namespace:
				collect(c)
			case *model.TypeAlias:
				id, _ := c.Attributes().EntityId()
				ids[id.String()] = id
				if c.Target.Kind == model.TypeApi {
					if ref, ok := m.Resolve(c.Target.Api); ok && ref.Kind == model.KindTypeAlias {
						edges[id.String()] = c.Target.Api.String()
					}
				}
			}
		}
	}
	collect(m.Root)

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[string]int{}
	var stack []string

	var visit func(key string)
	visit = func(key string) {
		color[key] = gray
		stack = append(stack, key)
		if next, ok := edges[key]; ok {
			switch color[next] {
			case white:
				visit(next)
			case gray:
				cycleStart := indexOf(stack, next)
				cycle := append([]string{}, stack[cycleStart:]...)
				reportCycle(cycle, ids, errs)
				for _, k := range cycle {
					color[k] = black
				}
			}
		}
		stack = stack[:len(stack)-1]
		if color[key] == gray {
			color[key] = black
		}
	}

	for key := range edges {
		if color[key] == white {
			visit(key)
		}
	}
}

func indexOf(stack []string, key string) int {
	for i, s := range stack {
		if s == key {
			return i
		}
	}
	return 0
}

// reportCycle rotates cycleKeys to start at its lexicographically
// smallest id string before reporting, so the emitted AliasCycle.Ids
// order (and hence its Error() string) is independent of which node
// the DFS over the edges map happened to start from.
func reportCycle(cycleKeys []string, ids map[string]model.EntityId, errs *apyxlerr.List) {
	start := 0
	for i, k := range cycleKeys {
		if k < cycleKeys[start] {
			start = i
		}
	}
	out := make([]model.EntityId, len(cycleKeys))
	for i := range cycleKeys {
		out[i] = ids[cycleKeys[(start+i)%len(cycleKeys)]]
	}
	errs.Add(&apyxlerr.AliasCycle{Ids: out})
}
