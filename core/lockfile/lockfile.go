package lockfile

import "time"

// Entry records the last successful publish of one document.
type Entry struct {
	// ID is the platform-assigned identity, the join key for updates.
	ID string `json:"id"`
	// Path mirrors the document's repository-relative path.
	Path string `json:"path"`
	// Hash mirrors the document's fingerprint at last publish.
	Hash string `json:"hash"`
	// URL is the platform's canonical URL for the document.
	URL string `json:"url"`
}

// Lockfile is the per-repository snapshot of published state.
// At most one Entry exists per path.
type Lockfile struct {
	ID             string    `json:"id"`
	RepositoryID   string    `json:"repositoryId"`
	RepositoryName string    `json:"repositoryName"`
	Content        []Entry   `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Find returns the entry for path, or nil if none exists.
func (l *Lockfile) Find(path string) *Entry {
	for i := range l.Content {
		if l.Content[i].Path == path {
			return &l.Content[i]
		}
	}
	return nil
}

// Empty returns a fresh lockfile for a repository that has never been
// synced. CreatedAt stays zero until the first persist.
func Empty(repositoryID, repositoryName string) Lockfile {
	return Lockfile{
		RepositoryID:   repositoryID,
		RepositoryName: repositoryName,
	}
}
