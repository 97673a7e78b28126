// Package saga runs the ordered best-effort writes that follow a parent
// insert: recipe tags/ingredients/equipment/steps/categories, venue damage
// tiers and menu items. Each step is awaited and fault-reported on its own;
// a failing step never blocks the ones after it and nothing is rolled back.
package saga

import (
	"context"

	applog "barboard/internal/log"
)

// Step is one related-collection write keyed by the new parent row's id.
type Step struct {
	Description string
	Execute     func(ctx context.Context, parentID uint) error
}

// Result records the outcome of a single step.
type Result struct {
	Description string
	Err         error
}

// Run executes the steps in order. Failures are logged, captured, and
// swallowed; the returned results preserve step order.
func Run(ctx context.Context, parentID uint, steps []Step) []Result {
	results := make([]Result, 0, len(steps))
	for _, step := range steps {
		err := step.Execute(ctx, parentID)
		if err != nil {
			applog.Error(ctx, "related write failed", "step", step.Description, "parentID", parentID, "error", err)
		}
		results = append(results, Result{Description: step.Description, Err: err})
	}
	return results
}

// Failed filters the results down to the steps that errored.
func Failed(results []Result) []Result {
	failed := make([]Result, 0)
	for _, result := range results {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}
	return failed
}
