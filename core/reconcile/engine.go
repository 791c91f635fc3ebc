package reconcile

import (
	"context"
	"sync"
)

// Execute dispatches every create and update in the plan to the publisher
// concurrently and waits for all of them to settle.
//
// Each call runs in its own goroutine and writes into its own outcome
// slot, so completion order is irrelevant and a failure neither cancels
// nor blocks sibling calls. The returned slice contains one outcome per
// dispatched action, successes and failures interleaved in plan order;
// skips are not represented.
//
// Per-call timeouts are the publisher's responsibility. ctx is passed
// through so a process-level deadline still bounds the whole batch.
func Execute(ctx context.Context, plan Plan, publisher Publisher) []Outcome {
	dispatch := make([]Action, 0, plan.Pending())
	for _, action := range plan.Actions {
		if action.Type != ActionSkip {
			dispatch = append(dispatch, action)
		}
	}

	outcomes := make([]Outcome, len(dispatch))
	var wg sync.WaitGroup
	wg.Add(len(dispatch))

	for i, action := range dispatch {
		go func(i int, action Action) {
			defer wg.Done()
			outcomes[i] = settle(ctx, action, publisher)
		}(i, action)
	}

	wg.Wait()
	return outcomes
}

// settle runs a single action to its terminal state.
func settle(ctx context.Context, action Action, publisher Publisher) Outcome {
	switch action.Type {
	case ActionUpdate:
		remote, err := publisher.Update(ctx, action.Doc, action.RemoteID)
		return Outcome{Kind: OutcomeUpdated, Doc: action.Doc, Remote: remote, Err: err}
	default:
		remote, err := publisher.Create(ctx, action.Doc)
		return Outcome{Kind: OutcomeCreated, Doc: action.Doc, Remote: remote, Err: err}
	}
}

// Partition splits settled outcomes into successes and failures.
func Partition(outcomes []Outcome) (succeeded, failed []Outcome) {
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed = append(failed, outcome)
		} else {
			succeeded = append(succeeded, outcome)
		}
	}
	return succeeded, failed
}
