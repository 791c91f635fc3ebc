package reconcile

import (
	"context"

	"postsync/core/content"
)

// ActionType represents the per-document decision.
type ActionType string

const (
	// ActionCreate publishes a document the platform has never seen.
	ActionCreate ActionType = "create"
	// ActionUpdate republishes a changed document under its existing id.
	ActionUpdate ActionType = "update"
	// ActionSkip leaves the document alone.
	ActionSkip ActionType = "skip"
)

// SkipReason explains why a document was skipped.
type SkipReason string

const (
	// SkipUnchanged means the lockfile already records this exact content.
	SkipUnchanged SkipReason = "unchanged"
	// SkipDraft means the document is marked as a draft.
	SkipDraft SkipReason = "draft"
)

// Action is one planned operation for one document.
type Action struct {
	// Type specifies the operation.
	Type ActionType

	// Doc is the document the action applies to.
	Doc content.Document

	// RemoteID is the existing platform id. Only set for ActionUpdate.
	RemoteID string

	// Reason explains a skip. Only set for ActionSkip.
	Reason SkipReason
}

// Plan is the full set of decisions for one run.
type Plan struct {
	// Actions holds one entry per non-draft local document, in input order.
	Actions []Action

	// Summary provides aggregate counts.
	Summary PlanSummary
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// Creates counts documents unknown to the lockfile.
	Creates int
	// Updates counts documents whose fingerprint changed.
	Updates int
	// Unchanged counts documents skipped because nothing changed.
	Unchanged int
	// Drafts counts documents excluded as drafts.
	Drafts int
}

// Pending reports whether the plan contains any work to dispatch.
func (p *Plan) Pending() int {
	return p.Summary.Creates + p.Summary.Updates
}

// Remote is the platform's identity for a published document.
type Remote struct {
	// ID is the platform-assigned opaque identity.
	ID string
	// Slug is the platform's slug for the resource.
	Slug string
	// URL is the canonical URL.
	URL string
}

// Publisher executes single publish operations against the platform.
// Both calls are single-attempt with a bounded timeout; retries, if any,
// belong to a future run.
type Publisher interface {
	// Create publishes doc as a new resource.
	Create(ctx context.Context, doc content.Document) (Remote, error)
	// Update republishes doc over the resource identified by id.
	Update(ctx context.Context, doc content.Document, id string) (Remote, error)
}

// OutcomeKind distinguishes how a document reached the platform.
type OutcomeKind string

const (
	// OutcomeCreated means the document was published as a new resource.
	OutcomeCreated OutcomeKind = "created"
	// OutcomeUpdated means an existing resource was republished.
	OutcomeUpdated OutcomeKind = "updated"
)

// Outcome is the settled result of one dispatched action. It always
// carries the originating document so the merge step can key the result
// by path without consulting the platform response.
type Outcome struct {
	// Kind records whether this was a create or an update.
	Kind OutcomeKind

	// Doc is the document that triggered the call.
	Doc content.Document

	// Remote is the platform identity. Only valid when Err is nil.
	Remote Remote

	// Err is the failure, if the call did not succeed.
	Err error
}
