package structdiff

// Walk calls fn for every change in changes and, while fn returns true, for
// the changes nested inside it. changes are visited depth first in order,
// parents before their children
func Walk(changes Changes, fn func(depth int, c Change) bool) {
	walk(changes, 0, fn)
}

func walk(changes Changes, depth int, fn func(depth int, c Change) bool) {
	for _, c := range changes {
		if !fn(depth, c) {
			continue
		}
		if cmp, ok := c.(Compound); ok {
			walk(cmp.Children(), depth+1, fn)
		}
	}
}

// Leaves returns every change that has no nested changes, in Walk order
func Leaves(changes Changes) Changes {
	var leaves Changes
	Walk(changes, func(_ int, c Change) bool {
		if _, ok := c.(Compound); !ok {
			leaves = append(leaves, c)
		}
		return true
	})
	return leaves
}
