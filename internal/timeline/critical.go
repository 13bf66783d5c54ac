package timeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/slok/fourd/internal/model"
)

// CriticalPath returns the IDs of the tasks lying on the longest dependency
// chain, weighting every task with its duration in days. When more than one
// chain has the maximum total, the tasks of all of them are returned.
//
// Dependencies on missing tasks are ignored. Cyclic dependencies return an
// error wrapping model.ErrCyclicDependency.
func CriticalPath(tasks []model.Task) (map[int]bool, error) {
	critical := map[int]bool{}
	if len(tasks) == 0 {
		return critical, nil
	}

	ids := make([]int, 0, len(tasks))
	weight := make(map[int]int, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
		weight[t.ID] = model.DaysBetween(t.Start, t.End) + 1
	}

	// Successor -> predecessors, only for known and unique predecessors.
	preds := make(map[int][]int, len(tasks))
	for _, t := range tasks {
		seen := map[int]bool{}
		for _, dep := range t.Dependencies {
			if _, ok := weight[dep]; !ok || seen[dep] {
				continue
			}
			seen[dep] = true
			preds[t.ID] = append(preds[t.ID], dep)
		}
	}

	order, err := topologicalOrder(ids, preds)
	if err != nil {
		return nil, err
	}

	// Longest accumulated duration of a chain ending on each task.
	dist := make(map[int]int, len(tasks))
	best := 0
	for _, id := range order {
		longest := 0
		for _, p := range preds[id] {
			longest = max(longest, dist[p])
		}
		dist[id] = longest + weight[id]
		best = max(best, dist[id])
	}

	// Walk back from every chain end that reaches the maximum.
	var visit func(id int)
	visit = func(id int) {
		if critical[id] {
			return
		}
		critical[id] = true
		for _, p := range preds[id] {
			if dist[p] == dist[id]-weight[id] {
				visit(p)
			}
		}
	}
	for _, id := range order {
		if dist[id] == best {
			visit(id)
		}
	}

	return critical, nil
}

// topologicalOrder sorts the tasks so predecessors come first using Kahn's
// algorithm. On cycles it reports one of the cycle paths.
func topologicalOrder(ids []int, preds map[int][]int) ([]int, error) {
	inDegree := make(map[int]int, len(ids))
	forward := make(map[int][]int)
	for _, id := range ids {
		inDegree[id] = len(preds[id])
		for _, p := range preds[id] {
			forward[p] = append(forward[p], id)
		}
	}

	var queue []int
	for _, id := range ids {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]int, 0, len(ids))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		sorted = append(sorted, id)

		for _, succ := range forward[id] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	if len(sorted) == len(ids) {
		return sorted, nil
	}

	path := findCyclePath(ids, preds, inDegree)
	return nil, fmt.Errorf("tasks %s: %w", strings.Join(path, " -> "), model.ErrCyclicDependency)
}

// findCyclePath finds a cycle path among the tasks left with in-degree.
func findCyclePath(ids []int, preds map[int][]int, inDegree map[int]int) []string {
	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // finished
	)

	color := make(map[int]int)
	parent := make(map[int]int)
	var cycle []int

	var dfs func(id int) bool
	dfs = func(id int) bool {
		color[id] = gray
		for _, p := range preds[id] {
			if color[p] == gray {
				cycle = []int{p}
				for cur := id; cur != p; cur = parent[cur] {
					cycle = append(cycle, cur)
				}
				cycle = append(cycle, p)
				return true
			}
			if color[p] == white {
				parent[p] = id
				if dfs(p) {
					return true
				}
			}
		}
		color[id] = black
		return false
	}

	for _, id := range ids {
		if inDegree[id] > 0 && color[id] == white && dfs(id) {
			break
		}
	}
	if len(cycle) == 0 {
		return []string{"(cycle detected)"}
	}

	path := make([]string, 0, len(cycle))
	for _, id := range cycle {
		path = append(path, strconv.Itoa(id))
	}
	return path
}
