package reconcile

import (
	"time"

	"postsync/core/lockfile"
)

// Merge computes the next lockfile from the pre-run snapshot and the
// successful outcomes of this run.
//
// Updated documents replace their entry's id, url, and hash in place,
// keyed by path against the outcome's originating document. Created
// documents append a new entry. Every entry not touched by a successful
// outcome carries over unchanged, which is exactly what keeps a failed
// publish at its last-known-good state: failures simply are not in the
// input.
//
// Merge is pure; prev is not mutated. CreatedAt is fixed on first merge
// and UpdatedAt is refreshed to now on every merge.
func Merge(prev lockfile.Lockfile, succeeded []Outcome, now time.Time) lockfile.Lockfile {
	byPath := make(map[string]Outcome, len(succeeded))
	for _, outcome := range succeeded {
		if outcome.Err != nil {
			continue
		}
		byPath[outcome.Doc.Path] = outcome
	}

	next := lockfile.Lockfile{
		ID:             prev.ID,
		RepositoryID:   prev.RepositoryID,
		RepositoryName: prev.RepositoryName,
		Content:        make([]lockfile.Entry, 0, len(prev.Content)+len(byPath)),
		CreatedAt:      prev.CreatedAt,
		UpdatedAt:      now,
	}
	if next.CreatedAt.IsZero() {
		next.CreatedAt = now
	}

	// Carry over prior entries, replacing the ones this run republished.
	for _, entry := range prev.Content {
		if outcome, ok := byPath[entry.Path]; ok {
			next.Content = append(next.Content, entryFrom(outcome))
			delete(byPath, entry.Path)
			continue
		}
		next.Content = append(next.Content, entry)
	}

	// Remaining successes have no prior entry: these are the creates.
	// Plan order is lost in the map, so restore it from the input slice.
	for _, outcome := range succeeded {
		if _, ok := byPath[outcome.Doc.Path]; ok {
			next.Content = append(next.Content, entryFrom(outcome))
			delete(byPath, outcome.Doc.Path)
		}
	}

	return next
}

func entryFrom(outcome Outcome) lockfile.Entry {
	return lockfile.Entry{
		ID:   outcome.Remote.ID,
		Path: outcome.Doc.Path,
		Hash: outcome.Doc.Hash,
		URL:  outcome.Remote.URL,
	}
}
