// Package reconcile decides, per local document, whether the publishing
// platform needs a create, an update, or nothing, and folds the results
// back into the next lockfile snapshot.
//
// # Architecture
//
// The run is split into three phases with a pure function at each end:
//
//  1. BuildPlan diffs the local document set against the prior lockfile.
//     Matching is strictly by document path; hash equality means the
//     document is unchanged. Drafts never reach the platform.
//
//  2. Execute fans the planned creates and updates out to the Publisher
//     concurrently and waits for every call to settle. One failed call
//     never cancels or blocks its siblings; the result is the full set of
//     per-document outcomes, successes and failures alike.
//
//  3. Merge computes the next lockfile from the prior snapshot plus only
//     the successful outcomes. Failed documents keep their last-known-good
//     entry; skipped-as-unchanged entries carry over untouched.
//
// Because BuildPlan and Merge are pure, the only I/O in a run is the
// publish fan-out itself, which keeps the invariants (exactly one publish
// per content change, merge correctness under partial failure) directly
// testable without a platform.
package reconcile
