package reconcile

import (
	"postsync/core/content"
	"postsync/core/lockfile"
)

// BuildPlan classifies each local document against the prior lockfile.
//
// Matching is strictly by path. A document with no entry is a create, a
// matching entry with an equal hash is a skip, and a differing hash is an
// update carrying the entry's existing remote id. Drafts are excluded
// before the lockfile is even consulted.
//
// BuildPlan is pure: it performs no I/O and does not mutate lock.
func BuildPlan(docs []content.Document, lock lockfile.Lockfile) Plan {
	var plan Plan
	plan.Actions = make([]Action, 0, len(docs))

	for _, doc := range docs {
		action := classify(doc, lock)
		plan.Actions = append(plan.Actions, action)

		switch {
		case action.Type == ActionCreate:
			plan.Summary.Creates++
		case action.Type == ActionUpdate:
			plan.Summary.Updates++
		case action.Reason == SkipDraft:
			plan.Summary.Drafts++
		default:
			plan.Summary.Unchanged++
		}
	}

	return plan
}

func classify(doc content.Document, lock lockfile.Lockfile) Action {
	if doc.Attributes.Draft {
		return Action{Type: ActionSkip, Doc: doc, Reason: SkipDraft}
	}

	entry := lock.Find(doc.Path)
	switch {
	case entry == nil:
		return Action{Type: ActionCreate, Doc: doc}
	case entry.Hash == doc.Hash:
		return Action{Type: ActionSkip, Doc: doc, Reason: SkipUnchanged}
	default:
		return Action{Type: ActionUpdate, Doc: doc, RemoteID: entry.ID}
	}
}
