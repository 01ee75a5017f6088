// Package graph validates subtask dependency graphs at plan-acceptance time.
package graph

import (
	"errors"
	"fmt"

	"github.com/dowserhq/dowser/pkg/models"
)

// ErrCycleDetected indicates a circular dependency among subtasks.
var ErrCycleDetected = errors.New("circular dependency detected")

// Validate checks that every dependency references a subtask present in the
// same plan and that the graph is acyclic. A plan that fails validation is
// rejected before any research runs; the scheduler would otherwise stall
// silently on it.
func Validate(specs []models.SubtaskSpec) error {
	edges := make(map[int][]int, len(specs))
	for _, spec := range specs {
		if _, dup := edges[spec.ID]; dup {
			return fmt.Errorf("duplicate subtask id %d", spec.ID)
		}
		edges[spec.ID] = spec.DependsOn
	}

	for _, spec := range specs {
		for _, depID := range spec.DependsOn {
			if _, ok := edges[depID]; !ok {
				return fmt.Errorf("subtask %d depends on unknown subtask %d", spec.ID, depID)
			}
		}
	}

	if hasCycle(edges) {
		return ErrCycleDetected
	}
	return nil
}

// hasCycle runs depth-first search with coloring to find back edges.
// Colors: 0 = unvisited, 1 = in progress, 2 = done.
func hasCycle(edges map[int][]int) bool {
	colors := make(map[int]int, len(edges))

	var visit func(id int) bool
	visit = func(id int) bool {
		colors[id] = 1
		for _, depID := range edges[id] {
			switch colors[depID] {
			case 1:
				return true
			case 0:
				if visit(depID) {
					return true
				}
			}
		}
		colors[id] = 2
		return false
	}

	for id := range edges {
		if colors[id] == 0 {
			if visit(id) {
				return true
			}
		}
	}
	return false
}
