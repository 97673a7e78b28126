package saga

import (
	"context"
	"errors"
	"testing"
)

func TestRunExecutesEveryStepDespiteFailures(t *testing.T) {
	t.Parallel()

	var order []string
	boom := errors.New("insert failed")

	steps := []Step{
		{Description: "recipe tags", Execute: func(ctx context.Context, id uint) error {
			order = append(order, "tags")
			return nil
		}},
		{Description: "recipe ingredients", Execute: func(ctx context.Context, id uint) error {
			order = append(order, "ingredients")
			return boom
		}},
		{Description: "recipe steps", Execute: func(ctx context.Context, id uint) error {
			order = append(order, "steps")
			return nil
		}},
	}

	results := Run(context.Background(), 42, steps)

	if len(order) != 3 {
		t.Fatalf("executed %d steps, want 3: %v", len(order), order)
	}
	if order[0] != "tags" || order[1] != "ingredients" || order[2] != "steps" {
		t.Fatalf("steps ran out of order: %v", order)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if results[1].Err == nil || !errors.Is(results[1].Err, boom) {
		t.Fatalf("results[1].Err = %v, want the step error", results[1].Err)
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("unexpected errors in results: %+v", results)
	}
}

func TestRunPassesParentID(t *testing.T) {
	t.Parallel()

	var seen uint
	Run(context.Background(), 7, []Step{{
		Description: "capture",
		Execute: func(ctx context.Context, id uint) error {
			seen = id
			return nil
		},
	}})
	if seen != 7 {
		t.Fatalf("parent id = %d, want 7", seen)
	}
}

func TestFailed(t *testing.T) {
	t.Parallel()

	results := []Result{
		{Description: "a", Err: nil},
		{Description: "b", Err: errors.New("x")},
		{Description: "c", Err: nil},
	}
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Description != "b" {
		t.Fatalf("Failed = %+v", failed)
	}
}
